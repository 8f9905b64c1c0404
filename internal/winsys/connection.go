package winsys

import (
	"github.com/deurzen/wzrd/internal/geometry"
)

// Connection abstracts the window system the manager drives. The concrete
// X implementation lives in internal/x11; tests substitute a fake.
type Connection interface {
	// Flush pushes buffered requests to the server.
	Flush() bool
	// Step blocks for the next event. A nil event means the connection
	// yielded nothing actionable this round.
	Step() Event
	// Poke wakes a blocked Step so queued commands get a turn.
	Poke()
	ConnectedOutputs() []*Screen
	TopLevelWindows() []Window
	GetPointerPosition() geometry.Pos
	WarpPointerCenterOfWindowOrRoot(window Window, screen *Screen)
	WarpPointer(pos geometry.Pos)
	WarpPointerRPos(window Window, pos geometry.Pos)
	ConfinePointer(window Window)
	ReleasePointer()
	IsMappingRequest(request uint8) bool
	Cleanup()

	// Window manipulation
	CreateFrame(region geometry.Region) Window
	CreateHandle() Window
	InitWindow(window Window, focusFollowsMouse bool)
	InitFrame(window Window, focusFollowsMouse bool)
	InitUnmanaged(window Window)
	CleanupWindow(window Window)
	MapWindow(window Window)
	UnmapWindow(window Window)
	ReparentWindow(window Window, parent Window, pos geometry.Pos)
	UnparentWindow(window Window, pos geometry.Pos)
	DestroyWindow(window Window)
	CloseWindow(window Window) bool
	KillWindow(window Window) bool
	PlaceWindow(window Window, region geometry.Region)
	MoveWindow(window Window, pos geometry.Pos)
	ResizeWindow(window Window, dim geometry.Dim)
	FocusWindow(window Window)
	StackWindowAbove(window Window, sibling Window)
	StackWindowBelow(window Window, sibling Window)
	InsertWindowInSaveSet(window Window)
	GrabBindings(keyCodes []KeyCode, mouseInputs []MouseInput)
	RegrabButtons(window Window)
	UngrabButtons(window Window)
	Unfocus()
	SetWindowBorderWidth(window Window, width uint)
	SetWindowBorderColor(window Window, color uint32)
	SetWindowBackgroundColor(window Window, color uint32)
	UpdateWindowOffset(window Window, frame Window)
	GetFocusedWindow() Window
	GetWindowGeometry(window Window) (geometry.Region, error)
	GetWindowPid(window Window) (Pid, bool)
	MustManageWindow(window Window) bool
	MustFreeWindow(window Window) bool
	WindowIsMappable(window Window) bool

	// ICCCM
	SetIcccmWindowState(window Window, state IcccmWindowState)
	SetIcccmWindowHints(window Window, hints Hints)
	GetIcccmWindowName(window Window) string
	GetIcccmWindowClass(window Window) string
	GetIcccmWindowInstance(window Window) string
	GetIcccmWindowTransientFor(window Window) (Window, bool)
	GetIcccmWindowClientLeader(window Window) (Window, bool)
	GetIcccmWindowHints(window Window) (Hints, bool)
	GetIcccmWindowSizeHints(window Window, minWindowDim *geometry.Dim, current *geometry.SizeHints) (bool, *geometry.SizeHints)

	// EWMH
	InitWmProperties(wmName string, desktopNames []string)
	SetCurrentDesktop(index int)
	SetRootWindowName(name string)
	SetWindowDesktop(window Window, index int)
	SetWindowFullscreen(window Window, on bool)
	SetWindowAbove(window Window, on bool)
	SetWindowBelow(window Window, on bool)
	SetWindowState(window Window, state WindowState, on bool)
	SetWindowFrameExtents(window Window, extents geometry.Extents)
	SetDesktopGeometry(geometries []geometry.Region)
	SetDesktopViewport(viewports []geometry.Region)
	SetWorkarea(workareas []geometry.Region)
	UpdateDesktops(desktopNames []string)
	UpdateClientList(clients []Window)
	UpdateClientListStacking(clients []Window)
	GetWindowStrut(window Window) ([4]*Strut, bool)
	GetWindowStrutPartial(window Window) ([4]*Strut, bool)
	GetWindowDesktop(window Window) (int, bool)
	GetWindowPreferredType(window Window) WindowType
	GetWindowTypes(window Window) []WindowType
	GetWindowPreferredState(window Window) (WindowState, bool)
	GetWindowStates(window Window) []WindowState
	WindowIsFullscreen(window Window) bool
	WindowIsAbove(window Window) bool
	WindowIsBelow(window Window) bool
	WindowIsSticky(window Window) bool
}
