package wm

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"reflect"
	"testing"

	"github.com/deurzen/wzrd/internal/client"
	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/stack"
	"github.com/deurzen/wzrd/internal/winsys"
)

// fakeConn satisfies winsys.Connection with just enough bookkeeping to
// observe what the model asks of the window system.
type fakeConn struct {
	screens  []*winsys.Screen
	topLevel []winsys.Window

	nextID winsys.Window

	geometries map[winsys.Window]geometry.Region
	pids       map[winsys.Window]winsys.Pid
	instances  map[winsys.Window]string

	mapped   map[winsys.Window]bool
	focused  winsys.Window
	killed   []winsys.Window
	restacks []restack
}

// restack is one StackWindowAbove request: window placed directly above
// sibling.
type restack struct {
	window  winsys.Window
	sibling winsys.Window
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		screens: []*winsys.Screen{
			winsys.NewScreen(geometry.NewRegion(0, 0, 1920, 1080), 0),
		},
		nextID:     0x8000,
		geometries: make(map[winsys.Window]geometry.Region),
		pids:       make(map[winsys.Window]winsys.Pid),
		instances:  make(map[winsys.Window]string),
		mapped:     make(map[winsys.Window]bool),
	}
}

func (f *fakeConn) addWindow(window winsys.Window, region geometry.Region) {
	f.topLevel = append(f.topLevel, window)
	f.geometries[window] = region
}

func (f *fakeConn) Flush() bool                     { return true }
func (f *fakeConn) Step() winsys.Event              { return nil }
func (f *fakeConn) Poke()                           {}
func (f *fakeConn) ConnectedOutputs() []*winsys.Screen {
	return f.screens
}
func (f *fakeConn) TopLevelWindows() []winsys.Window { return f.topLevel }
func (f *fakeConn) GetPointerPosition() geometry.Pos { return geometry.Pos{} }
func (f *fakeConn) WarpPointerCenterOfWindowOrRoot(winsys.Window, *winsys.Screen) {}
func (f *fakeConn) WarpPointer(geometry.Pos)                                      {}
func (f *fakeConn) WarpPointerRPos(winsys.Window, geometry.Pos)                   {}
func (f *fakeConn) ConfinePointer(winsys.Window)                                  {}
func (f *fakeConn) ReleasePointer()                                               {}
func (f *fakeConn) IsMappingRequest(uint8) bool                                   { return false }
func (f *fakeConn) Cleanup()                                                      {}

func (f *fakeConn) CreateFrame(region geometry.Region) winsys.Window {
	f.nextID++
	f.geometries[f.nextID] = region
	return f.nextID
}

func (f *fakeConn) CreateHandle() winsys.Window {
	f.nextID++
	return f.nextID
}

func (f *fakeConn) InitWindow(winsys.Window, bool)  {}
func (f *fakeConn) InitFrame(winsys.Window, bool)   {}
func (f *fakeConn) InitUnmanaged(winsys.Window)     {}
func (f *fakeConn) CleanupWindow(winsys.Window)     {}

func (f *fakeConn) MapWindow(window winsys.Window)   { f.mapped[window] = true }
func (f *fakeConn) UnmapWindow(window winsys.Window) { delete(f.mapped, window) }

func (f *fakeConn) ReparentWindow(winsys.Window, winsys.Window, geometry.Pos) {}
func (f *fakeConn) UnparentWindow(winsys.Window, geometry.Pos)                {}
func (f *fakeConn) DestroyWindow(winsys.Window)                               {}
func (f *fakeConn) CloseWindow(winsys.Window) bool                            { return true }

func (f *fakeConn) KillWindow(window winsys.Window) bool {
	f.killed = append(f.killed, window)
	return true
}

func (f *fakeConn) PlaceWindow(window winsys.Window, region geometry.Region) {
	f.geometries[window] = region
}

func (f *fakeConn) MoveWindow(window winsys.Window, pos geometry.Pos) {
	region := f.geometries[window]
	region.Pos = pos
	f.geometries[window] = region
}

func (f *fakeConn) ResizeWindow(window winsys.Window, dim geometry.Dim) {
	region := f.geometries[window]
	region.Dim = dim
	f.geometries[window] = region
}

func (f *fakeConn) FocusWindow(window winsys.Window) { f.focused = window }

func (f *fakeConn) StackWindowAbove(window, sibling winsys.Window) {
	f.restacks = append(f.restacks, restack{window, sibling})
}

func (f *fakeConn) StackWindowBelow(winsys.Window, winsys.Window) {}
func (f *fakeConn) InsertWindowInSaveSet(winsys.Window)           {}
func (f *fakeConn) GrabBindings([]winsys.KeyCode, []winsys.MouseInput) {}
func (f *fakeConn) RegrabButtons(winsys.Window)                        {}
func (f *fakeConn) UngrabButtons(winsys.Window)                        {}
func (f *fakeConn) Unfocus()                                           { f.focused = 0 }
func (f *fakeConn) SetWindowBorderWidth(winsys.Window, uint)           {}
func (f *fakeConn) SetWindowBorderColor(winsys.Window, uint32)         {}
func (f *fakeConn) SetWindowBackgroundColor(winsys.Window, uint32)     {}
func (f *fakeConn) UpdateWindowOffset(winsys.Window, winsys.Window)    {}
func (f *fakeConn) GetFocusedWindow() winsys.Window                    { return f.focused }

func (f *fakeConn) GetWindowGeometry(window winsys.Window) (geometry.Region, error) {
	if region, ok := f.geometries[window]; ok {
		return region, nil
	}
	return geometry.Region{}, errors.New("unknown window")
}

func (f *fakeConn) GetWindowPid(window winsys.Window) (winsys.Pid, bool) {
	pid, ok := f.pids[window]
	return pid, ok
}

func (f *fakeConn) MustManageWindow(winsys.Window) bool { return true }
func (f *fakeConn) MustFreeWindow(winsys.Window) bool   { return false }
func (f *fakeConn) WindowIsMappable(winsys.Window) bool { return true }

func (f *fakeConn) SetIcccmWindowState(winsys.Window, winsys.IcccmWindowState) {}
func (f *fakeConn) SetIcccmWindowHints(winsys.Window, winsys.Hints)            {}
func (f *fakeConn) GetIcccmWindowName(winsys.Window) string                    { return "term" }
func (f *fakeConn) GetIcccmWindowClass(winsys.Window) string                   { return "Term" }

func (f *fakeConn) GetIcccmWindowInstance(window winsys.Window) string {
	if instance, ok := f.instances[window]; ok {
		return instance
	}
	return "term"
}

func (f *fakeConn) GetIcccmWindowTransientFor(winsys.Window) (winsys.Window, bool) {
	return 0, false
}

func (f *fakeConn) GetIcccmWindowClientLeader(winsys.Window) (winsys.Window, bool) {
	return 0, false
}

func (f *fakeConn) GetIcccmWindowHints(winsys.Window) (winsys.Hints, bool) {
	return winsys.Hints{}, false
}

func (f *fakeConn) GetIcccmWindowSizeHints(
	winsys.Window, *geometry.Dim, *geometry.SizeHints,
) (bool, *geometry.SizeHints) {
	return false, nil
}

func (f *fakeConn) InitWmProperties(string, []string)                  {}
func (f *fakeConn) SetCurrentDesktop(int)                              {}
func (f *fakeConn) SetRootWindowName(string)                           {}
func (f *fakeConn) SetWindowDesktop(winsys.Window, int)                {}
func (f *fakeConn) SetWindowFullscreen(winsys.Window, bool)            {}
func (f *fakeConn) SetWindowAbove(winsys.Window, bool)                 {}
func (f *fakeConn) SetWindowBelow(winsys.Window, bool)                 {}
func (f *fakeConn) SetWindowState(winsys.Window, winsys.WindowState, bool) {}
func (f *fakeConn) SetWindowFrameExtents(winsys.Window, geometry.Extents)  {}
func (f *fakeConn) SetDesktopGeometry([]geometry.Region)                   {}
func (f *fakeConn) SetDesktopViewport([]geometry.Region)                   {}
func (f *fakeConn) SetWorkarea([]geometry.Region)                          {}
func (f *fakeConn) UpdateDesktops([]string)                                {}
func (f *fakeConn) UpdateClientList([]winsys.Window)                       {}
func (f *fakeConn) UpdateClientListStacking([]winsys.Window)               {}

func (f *fakeConn) GetWindowStrut(winsys.Window) ([4]*winsys.Strut, bool) {
	return [4]*winsys.Strut{}, false
}

func (f *fakeConn) GetWindowStrutPartial(winsys.Window) ([4]*winsys.Strut, bool) {
	return [4]*winsys.Strut{}, false
}

func (f *fakeConn) GetWindowDesktop(winsys.Window) (int, bool) { return 0, false }

func (f *fakeConn) GetWindowPreferredType(winsys.Window) winsys.WindowType {
	return winsys.WindowTypeNormal
}

func (f *fakeConn) GetWindowTypes(winsys.Window) []winsys.WindowType { return nil }

func (f *fakeConn) GetWindowPreferredState(winsys.Window) (winsys.WindowState, bool) {
	return 0, false
}

func (f *fakeConn) GetWindowStates(winsys.Window) []winsys.WindowState { return nil }
func (f *fakeConn) WindowIsFullscreen(winsys.Window) bool              { return false }
func (f *fakeConn) WindowIsAbove(winsys.Window) bool                   { return false }
func (f *fakeConn) WindowIsBelow(winsys.Window) bool                   { return false }
func (f *fakeConn) WindowIsSticky(winsys.Window) bool                  { return false }

var _ winsys.Connection = (*fakeConn)(nil)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestModel(t *testing.T, conn *fakeConn) *Model {
	t.Helper()

	return New(conn, Config{
		WorkspaceNames: []string{"one", "two", "three"},
		ParentPID: func(winsys.Pid) (winsys.Pid, bool) {
			return 0, false
		},
		Logger: quietLogger(),
	})
}

func TestManageRegistersTopLevelWindows(t *testing.T) {
	conn := newFakeConn()
	conn.addWindow(0x100, geometry.NewRegion(100, 100, 640, 480))
	conn.addWindow(0x200, geometry.NewRegion(300, 200, 640, 480))

	m := newTestModel(t, conn)

	if m.clients.Len() != 2 {
		t.Fatalf("clients.Len() = %d, want 2", m.clients.Len())
	}

	ws := m.workspace(m.ActiveWorkspace())
	if !ws.Contains(0x100) || !ws.Contains(0x200) {
		t.Fatalf("active workspace missing managed windows: %v", ws.Clients())
	}

	// The last managed window holds the focus.
	if m.focus != 0x200 {
		t.Fatalf("focus = %#x, want 0x200", m.focus)
	}

	c, ok := m.client(0x100)
	if !ok {
		t.Fatalf("client 0x100 not registered")
	}
	if !c.IsMapped() {
		t.Fatalf("managed client not mapped")
	}
}

func TestMoveClientToWorkspaceTransfersMembership(t *testing.T) {
	conn := newFakeConn()
	conn.addWindow(0x100, geometry.NewRegion(100, 100, 640, 480))

	m := newTestModel(t, conn)
	m.MoveFocusToWorkspace(1)

	if m.workspace(0).Contains(0x100) {
		t.Fatalf("window still on source workspace")
	}
	if !m.workspace(1).Contains(0x100) {
		t.Fatalf("window missing from target workspace")
	}

	c, _ := m.client(0x100)
	if c.Workspace() != 1 {
		t.Fatalf("client workspace = %d, want 1", c.Workspace())
	}
	if c.IsMapped() {
		t.Fatalf("client still mapped after leaving the active workspace")
	}
}

func TestActivateWorkspaceRemapsClients(t *testing.T) {
	conn := newFakeConn()
	conn.addWindow(0x100, geometry.NewRegion(100, 100, 640, 480))

	m := newTestModel(t, conn)
	m.MoveFocusToWorkspace(2)
	m.ActivateWorkspace(2)

	if m.ActiveWorkspace() != 2 {
		t.Fatalf("active workspace = %d, want 2", m.ActiveWorkspace())
	}

	c, _ := m.client(0x100)
	if !c.IsMapped() {
		t.Fatalf("client not remapped on its workspace")
	}
	if m.focus != 0x100 {
		t.Fatalf("focus = %#x, want 0x100", m.focus)
	}

	m.ToggleWorkspace()
	if m.ActiveWorkspace() != 0 {
		t.Fatalf("toggle returned to workspace %d, want 0", m.ActiveWorkspace())
	}
}

func TestFullscreenRestoresFreeRegion(t *testing.T) {
	conn := newFakeConn()
	conn.addWindow(0x100, geometry.NewRegion(100, 100, 640, 480))

	m := newTestModel(t, conn)
	c, _ := m.client(0x100)
	before := c.FreeRegion()

	m.SetFullscreenFocus(client.On)
	if !c.IsFullscreen() {
		t.Fatalf("client not fullscreen after request")
	}
	if _, ok := m.fullscreenRegions[0x100]; !ok {
		t.Fatalf("free region not remembered for fullscreen client")
	}

	m.SetFullscreenFocus(client.Off)
	if c.IsFullscreen() {
		t.Fatalf("client still fullscreen after removal")
	}
	if c.FreeRegion() != before {
		t.Fatalf("free region = %v, want %v", c.FreeRegion(), before)
	}
	if _, ok := m.fullscreenRegions[0x100]; ok {
		t.Fatalf("fullscreen region not cleared")
	}
}

func TestStickSpansAllWorkspaces(t *testing.T) {
	conn := newFakeConn()
	conn.addWindow(0x100, geometry.NewRegion(100, 100, 640, 480))

	m := newTestModel(t, conn)
	m.SetStickFocus(client.On)

	for i := 0; i < m.workspaces.Len(); i++ {
		if !m.workspace(i).Contains(0x100) {
			t.Fatalf("sticky window missing from workspace %d", i)
		}
	}

	m.SetStickFocus(client.Off)

	for i := 1; i < m.workspaces.Len(); i++ {
		if m.workspace(i).Contains(0x100) {
			t.Fatalf("unstuck window still on workspace %d", i)
		}
	}
	if !m.workspace(0).Contains(0x100) {
		t.Fatalf("unstuck window lost its home workspace")
	}
}

func TestIconifyRoundTrip(t *testing.T) {
	conn := newFakeConn()
	conn.addWindow(0x100, geometry.NewRegion(100, 100, 640, 480))

	m := newTestModel(t, conn)
	c, _ := m.client(0x100)

	m.SetIconifyFocus(client.On)
	if !c.IsIconified() {
		t.Fatalf("client not iconified")
	}
	if c.IsMapped() {
		t.Fatalf("iconified client still mapped")
	}
	if m.workspace(0).Contains(0x100) {
		t.Fatalf("iconified client still among workspace clients")
	}

	m.PopDeiconify()
	if c.IsIconified() {
		t.Fatalf("client still iconified after pop")
	}
	if !m.workspace(0).Contains(0x100) {
		t.Fatalf("deiconified client not restored to workspace")
	}
}

func TestConsumeReplacesProducer(t *testing.T) {
	wmPid := winsys.Pid(os.Getpid())

	conn := newFakeConn()
	conn.addWindow(0x100, geometry.NewRegion(100, 100, 640, 480))
	conn.addWindow(0x200, geometry.NewRegion(200, 200, 640, 480))
	conn.pids[0x100] = 1000
	conn.pids[0x200] = 2000

	// 2000 was spawned by 1000, which the manager spawned directly.
	lineage := map[winsys.Pid]winsys.Pid{
		2000:  1000,
		1000:  wmPid,
		wmPid: 1,
	}

	m := New(conn, Config{
		WorkspaceNames: []string{"one", "two"},
		ParentPID: func(pid winsys.Pid) (winsys.Pid, bool) {
			ppid, ok := lineage[pid]
			return ppid, ok
		},
		Logger: quietLogger(),
	})

	producer, ok := m.clientAny(0x100)
	if !ok {
		t.Fatalf("producer not registered")
	}
	consumer, _ := m.client(0x200)

	if producer.IsManaged() {
		t.Fatalf("producer still managed after being consumed")
	}
	if got, ok := consumer.Producer(); !ok || got != 0x100 {
		t.Fatalf("consumer producer = %#x (ok=%v), want 0x100", got, ok)
	}

	ws := m.workspace(0)
	if ws.Contains(0x100) {
		t.Fatalf("consumed producer still among workspace clients")
	}
	if !ws.Contains(0x200) {
		t.Fatalf("consumer missing from workspace")
	}

	m.unconsumeClient(consumer)

	if !producer.IsManaged() {
		t.Fatalf("producer not remanaged after unconsume")
	}
	if !ws.Contains(0x100) {
		t.Fatalf("producer not restored to workspace")
	}
}

func TestKillWindowSparesInvincibleClients(t *testing.T) {
	conn := newFakeConn()
	conn.addWindow(0x100, geometry.NewRegion(100, 100, 640, 480))

	m := newTestModel(t, conn)

	m.SetInvincibleFocus(client.On)
	m.KillFocus()
	if len(conn.killed) != 0 {
		t.Fatalf("invincible client was killed")
	}

	m.SetInvincibleFocus(client.Off)
	m.KillFocus()
	if len(conn.killed) != 1 || conn.killed[0] != 0x100 {
		t.Fatalf("killed = %v, want [0x100]", conn.killed)
	}
}

func TestDetectRulesParsesInstanceFlags(t *testing.T) {
	rules := detectRules("wzrd:w2fc", 10)

	if rules.Workspace == nil || *rules.Workspace != 2 {
		t.Fatalf("workspace rule = %v, want 2", rules.Workspace)
	}
	if !rules.float() {
		t.Fatalf("float rule not set")
	}
	if !rules.center() {
		t.Fatalf("center rule not set")
	}
	if rules.fullscreen() {
		t.Fatalf("fullscreen rule set without flag")
	}

	inverted := detectRules("wzrd:!f", 10)
	if inverted.Float == nil || *inverted.Float {
		t.Fatalf("inverted float rule = %v, want false", inverted.Float)
	}

	if plain := detectRules("term", 10); plain.Float != nil || plain.Workspace != nil {
		t.Fatalf("rules detected on unprefixed instance")
	}

	if bounds := detectRules("wzrd:w9", 3); bounds.Workspace != nil {
		t.Fatalf("workspace rule accepted beyond workspace count")
	}
}

func TestStateRequestTogglesUrgency(t *testing.T) {
	conn := newFakeConn()
	conn.addWindow(0x100, geometry.NewRegion(100, 100, 640, 480))
	conn.addWindow(0x200, geometry.NewRegion(300, 100, 640, 480))

	m := newTestModel(t, conn)

	// 0x200 holds the focus; flag 0x100 as demanding attention.
	m.handleStateRequest(0x100, winsys.StateDemandsAttention, winsys.ActionAdd, false)

	c, _ := m.client(0x100)
	if !c.IsUrgent() {
		t.Fatalf("client not urgent after demands-attention add")
	}

	// Focusing clears the urgency.
	m.focusWindow(0x100)
	if c.IsUrgent() {
		t.Fatalf("urgency not cleared on focus")
	}
}

func TestApplyStackComposesLayerOrder(t *testing.T) {
	conn := newFakeConn()
	conn.addWindow(0x100, geometry.NewRegion(100, 100, 640, 480))
	conn.addWindow(0x200, geometry.NewRegion(300, 200, 640, 480))
	conn.addWindow(0x300, geometry.NewRegion(500, 300, 640, 480))

	m := newTestModel(t, conn)

	// 0x300 holds the focus; fullscreen clients paint above the tiled ones.
	m.SetFullscreenFocus(client.On)

	desktop := winsys.Window(0x400)
	below := winsys.Window(0x500)
	dock := winsys.Window(0x600)
	above := winsys.Window(0x700)
	notification := winsys.Window(0x800)
	pinned := winsys.Window(0x900)

	m.stack.AddWindow(desktop, stack.LayerDesktop)
	m.stack.AddWindow(below, stack.LayerBelow)
	m.stack.AddWindow(dock, stack.LayerDock)
	m.stack.AddWindow(above, stack.LayerAbove)
	m.stack.AddWindow(notification, stack.LayerNotification)

	// The pin pulls the window out of its layer, directly above the dock.
	m.stack.AddWindow(pinned, stack.LayerAbove)
	m.stack.AddAboveOther(pinned, dock)

	conn.restacks = nil
	m.applyStack(m.ActiveWorkspace())

	first, _ := m.frame(0x100)
	second, _ := m.frame(0x200)
	fullscreen, _ := m.frame(0x300)

	want := []winsys.Window{
		desktop, below, dock, pinned,
		first, second, fullscreen,
		above, notification,
	}

	if len(conn.restacks) == 0 {
		t.Fatalf("no restack requests issued")
	}

	// Each request stacks its window directly above the previous one, so
	// the chain reconstructs the bottom-to-top paint order.
	got := []winsys.Window{conn.restacks[0].sibling}
	for _, r := range conn.restacks {
		if r.sibling != got[len(got)-1] {
			t.Fatalf("restack %+v does not chain onto %v", r, got)
		}
		got = append(got, r.window)
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("stacking order = %v, want %v", got, want)
	}
}
