package wm

import (
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/deurzen/wzrd/internal/client"
	"github.com/deurzen/wzrd/internal/cycle"
	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/stack"
	"github.com/deurzen/wzrd/internal/winsys"
	"github.com/deurzen/wzrd/internal/workspace"
	"github.com/deurzen/wzrd/internal/zone"
)

const wmName = "wzrd"

var defaultWorkspaceNames = []string{
	"main", "web", "term", "4", "5", "6", "7", "8", "9", "10",
}

// Command is queued from outside the event loop and drained between
// transitions, keeping the model single-threaded.
type Command func(*Model)

// Config carries the model's collaborators and tunables.
type Config struct {
	WorkspaceNames    []string
	DefaultLayout     zone.LayoutKind
	GapSize           int
	Margin            geometry.Padding
	FocusFollowsMouse bool
	IgnoredClasses    []string
	IgnoredInstances  []string
	KeyBindings       KeyBindings
	MouseBindings     MouseBindings
	ParentPID         ParentPID
	Logger            *slog.Logger
}

// Model owns all window manager state and is the sole writer of it.
type Model struct {
	conn  winsys.Connection
	zones *zone.Manager
	stack *stack.Manager

	stackingOrder []winsys.Window

	pidMap  map[winsys.Pid]winsys.Window
	clients *client.Registry

	stickyClients     map[winsys.Window]struct{}
	unmanagedWindows  map[winsys.Window]struct{}
	fullscreenRegions map[winsys.Window]geometry.Region

	partitions *cycle.Cycle[*Partition]
	workspaces *cycle.Cycle[*workspace.Workspace]

	moveBuffer   *workspace.Buffer
	resizeBuffer *workspace.Buffer

	prevPartition cycle.Index
	prevWorkspace cycle.Index

	running    bool
	focus      winsys.Window
	jumpedFrom winsys.Window

	focusFollowsMouse bool
	ignoredClasses    map[string]struct{}
	ignoredInstances  map[string]struct{}

	keyBindings   KeyBindings
	mouseBindings MouseBindings

	parentPID ParentPID
	wmPid     winsys.Pid

	commands chan Command

	logger *slog.Logger
}

// New builds a model bound to conn and takes over the existing top level
// windows.
func New(conn winsys.Connection, cfg Config) *Model {
	names := cfg.WorkspaceNames
	if len(names) == 0 {
		names = defaultWorkspaceNames
	}

	parentPID := cfg.ParentPID
	if parentPID == nil {
		parentPID = ProcParentPID
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	defaultLayout := cfg.DefaultLayout
	if defaultLayout == 0 {
		defaultLayout = zone.Stack
	}

	m := &Model{
		conn:              conn,
		zones:             zone.NewManager(),
		stack:             stack.NewManager(),
		stackingOrder:     make([]winsys.Window, 0, 200),
		pidMap:            make(map[winsys.Pid]winsys.Window),
		clients:           client.NewRegistry(),
		stickyClients:     make(map[winsys.Window]struct{}),
		unmanagedWindows:  make(map[winsys.Window]struct{}),
		fullscreenRegions: make(map[winsys.Window]geometry.Region),
		moveBuffer:        workspace.NewBuffer(workspace.BufferMove, conn.CreateHandle()),
		resizeBuffer:      workspace.NewBuffer(workspace.BufferResize, conn.CreateHandle()),
		running:           true,
		focusFollowsMouse: cfg.FocusFollowsMouse,
		ignoredClasses:    stringSet(cfg.IgnoredClasses),
		ignoredInstances:  stringSet(cfg.IgnoredInstances),
		keyBindings:       cfg.KeyBindings,
		mouseBindings:     cfg.MouseBindings,
		parentPID:         parentPID,
		wmPid:             winsys.Pid(os.Getpid()),
		commands:          make(chan Command, 16),
		logger:            logger,
	}

	m.logger.Info("initializing window manager")

	m.acquirePartitions()

	active, ok := m.partitions.ActiveElement()
	if !ok {
		m.logger.Error("no screen region found")
		return m
	}
	screenRegion := active.PlaceableRegion()

	workspaces := make([]*workspace.Workspace, 0, len(names))
	for i, name := range names {
		rootID := m.zones.New(0, zone.LayoutContent(
			zone.LayoutWithDefaults(defaultLayout, cfg.GapSize, cfg.Margin),
			cycle.New[zone.ID](nil, true),
		))
		m.zones.Zone(rootID).SetRegion(screenRegion)

		workspaces = append(workspaces, workspace.New(name, cycle.Ident(i), rootID))
	}

	m.workspaces = cycle.New(workspaces, false)
	m.workspaces.ActivateFor(cycle.AtIndex[*workspace.Workspace](0))
	m.conn.SetCurrentDesktop(0)
	m.conn.InitWmProperties(wmName, names)

	m.conn.GrabBindings(m.keyBindings.keyCodes(), m.mouseBindings.inputs())

	for _, window := range m.conn.TopLevelWindows() {
		m.manage(window, !m.conn.MustManageWindow(window))
	}

	return m
}

// SetBindings replaces the binding tables and regrabs them, for
// configuration reload.
func (m *Model) SetBindings(keyBindings KeyBindings, mouseBindings MouseBindings) {
	m.keyBindings = keyBindings
	m.mouseBindings = mouseBindings
	m.conn.GrabBindings(keyBindings.keyCodes(), mouseBindings.inputs())
}

// SetIgnores replaces the window class and instance ignore lists, for
// configuration reload. Already managed clients are unaffected.
func (m *Model) SetIgnores(classes, instances []string) {
	m.ignoredClasses = stringSet(classes)
	m.ignoredInstances = stringSet(instances)
}

// SetFocusFollowsMouse changes the focus model for windows managed from
// here on.
func (m *Model) SetFocusFollowsMouse(value bool) {
	m.focusFollowsMouse = value
}

func (m *Model) windowIsIgnored(window winsys.Window) bool {
	if len(m.ignoredClasses) == 0 && len(m.ignoredInstances) == 0 {
		return false
	}

	if _, ok := m.ignoredClasses[m.conn.GetIcccmWindowClass(window)]; ok {
		return true
	}
	_, ok := m.ignoredInstances[m.conn.GetIcccmWindowInstance(window)]
	return ok
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

// Enqueue schedules a command to run on the event loop. Callers may
// invoke it from any goroutine.
func (m *Model) Enqueue(command Command) {
	m.commands <- command
	m.conn.Poke()
}

func (m *Model) window(window winsys.Window) (winsys.Window, bool) {
	if _, ok := m.clients.GetByWindow(window); ok {
		return window, true
	}
	return m.clients.WindowFor(window)
}

func (m *Model) frame(window winsys.Window) (winsys.Window, bool) {
	if _, ok := m.clients.WindowFor(window); ok {
		return window, true
	}
	return m.clients.FrameFor(window)
}

// clientAny resolves window or frame to its client, managed or not.
func (m *Model) clientAny(window winsys.Window) (*client.Client, bool) {
	return m.clients.Get(window)
}

// client resolves window or frame to its client, managed only.
func (m *Model) client(window winsys.Window) (*client.Client, bool) {
	c, ok := m.clients.Get(window)
	if !ok || !c.IsManaged() {
		return nil, false
	}
	return c, true
}

func (m *Model) activeScreen() *winsys.Screen {
	partition, _ := m.partitions.ActiveElement()
	return partition.Screen()
}

// ActiveWorkspace returns the index of the active workspace.
func (m *Model) ActiveWorkspace() cycle.Index {
	return m.workspaces.ActiveIndex()
}

func (m *Model) workspace(index cycle.Index) *workspace.Workspace {
	ws, _ := m.workspaces.Get(index)
	return ws
}

func (m *Model) focusedClient() (*client.Client, bool) {
	focus := m.focus
	if focus == 0 {
		window, ok := m.workspace(m.ActiveWorkspace()).FocusedClient()
		if !ok {
			return nil, false
		}
		focus = window
	}
	return m.clients.GetByWindow(focus)
}

func (m *Model) acquirePartitions() {
	outputs := m.conn.ConnectedOutputs()
	if len(outputs) == 0 {
		m.logger.Error("no screen resources found, keeping old partitions")
		return
	}

	partitions := make([]*Partition, 0, len(outputs))
	for i, screen := range outputs {
		screen.ComputePlaceableRegion()
		partitions = append(partitions, NewPartition(screen, i))
	}

	m.logger.Info("acquired partitions", "count", len(partitions))
	m.partitions = cycle.New(partitions, false)
}

// ToggleScreenStruts shows or hides the strut windows of the active
// screen and rearranges around the changed placeable region.
func (m *Model) ToggleScreenStruts() {
	screen := m.activeScreen()

	var struts []winsys.Window
	show := !screen.ShowingStruts()

	if show {
		struts = screen.ShowAndYieldStruts()
	} else {
		struts = screen.HideAndYieldStruts()
	}

	for _, strut := range struts {
		if show {
			m.conn.MapWindow(strut)
		} else {
			m.conn.UnmapWindow(strut)
		}
	}

	m.applyLayout(m.ActiveWorkspace())
}

func isApplyable(c *client.Client) bool {
	return !c.IsFloating() &&
		!c.IsDisowned() &&
		c.IsManaged() &&
		(!c.IsFullscreen() || c.IsContained())
}

func (m *Model) isFree(c *client.Client) bool {
	return c.IsFree() || m.zones.Zone(c.Zone()).Method() == zone.PlaceFree
}

func isFocusable(c *client.Client) bool {
	return !c.IsDisowned() && !c.IsIconified()
}

func (m *Model) applyLayout(index cycle.Index) {
	if index != m.ActiveWorkspace() {
		return
	}
	ws := m.workspace(index)
	if ws == nil {
		return
	}

	m.logger.Info("applying layout", "workspace", index)

	active, _ := m.partitions.ActiveElement()
	placements := ws.Arrange(
		m.zones,
		m.clients,
		active.PlaceableRegion(),
		func(c *client.Client) bool {
			return !isApplyable(c) || c.IsIconified()
		},
	)

	for _, placement := range placements {
		if placement.Target.Kind != zone.TargetClient {
			continue
		}

		c, ok := m.clients.GetByWindow(placement.Target.Window)
		if !ok {
			continue
		}

		if placement.Region.Kind == zone.NoRegion {
			m.unmapClient(c)
			continue
		}

		m.updateClientPlacement(c, placement)
		m.placeClient(c, placement.Method)
		m.mapClient(c)
	}
}

func (m *Model) applyStack(index cycle.Index) {
	if index != m.ActiveWorkspace() {
		return
	}
	ws := m.workspace(index)
	if ws == nil {
		return
	}

	m.logger.Info("applying stack", "workspace", index)

	stackFrames := make([]winsys.Window, 0, ws.Len())
	for _, window := range ws.StackAfterFocus() {
		frame, _ := m.frame(window)
		stackFrames = append(stackFrames, frame)
	}

	var regular, fullscreen, free []winsys.Window
	for _, frame := range stackFrames {
		c, _ := m.clients.Get(frame)
		switch {
		case c.IsFullscreen() && !c.IsContained():
			fullscreen = append(fullscreen, frame)
		case m.isFree(c):
			free = append(free, frame)
		default:
			regular = append(regular, frame)
		}
	}

	windows := make([]winsys.Window, 0, len(stackFrames)+8)
	windows = append(windows, m.stack.LayerWindows(stack.LayerDesktop)...)
	windows = append(windows, m.stack.LayerWindows(stack.LayerBelow)...)
	windows = append(windows, m.stack.LayerWindows(stack.LayerDock)...)
	windows = append(windows, regular...)
	windows = append(windows, fullscreen...)
	windows = append(windows, free...)
	windows = append(windows, m.stack.LayerWindows(stack.LayerAbove)...)
	windows = append(windows, m.stack.LayerWindows(stack.LayerNotification)...)

	windows = m.stack.ApplyRelative(windows)

	orderChanged := false
	var prev winsys.Window
	if len(windows) > 0 {
		prev = windows[0]
	}

	for i := 1; i < len(windows); i++ {
		window := windows[i]

		if !orderChanged {
			orderChanged = i >= len(m.stackingOrder) || m.stackingOrder[i] != window
		}
		if orderChanged {
			m.conn.StackWindowAbove(window, prev)
		}

		prev = window
	}

	if !orderChanged {
		return
	}

	m.stackingOrder = windows

	clientList := m.clients.All()
	sort.Slice(clientList, func(i, j int) bool {
		return clientList[i].ManagedSince().Before(clientList[j].ManagedSince())
	})

	clientWindows := make([]winsys.Window, 0, len(clientList))
	for _, c := range clientList {
		clientWindows = append(clientWindows, c.Window())
	}

	m.conn.UpdateClientList(clientWindows)

	stackWindows := make(map[winsys.Window]struct{}, len(stackFrames))
	stacked := make([]winsys.Window, 0, len(stackFrames))
	for _, frame := range stackFrames {
		window, _ := m.window(frame)
		stackWindows[window] = struct{}{}
		stacked = append(stacked, window)
	}

	clientListStacking := make([]winsys.Window, 0, len(clientWindows))
	for _, window := range clientWindows {
		if _, ok := stackWindows[window]; !ok {
			clientListStacking = append(clientListStacking, window)
		}
	}
	clientListStacking = append(clientListStacking, stacked...)

	m.conn.UpdateClientListStacking(clientListStacking)
}

func (m *Model) manage(window winsys.Window, ignore bool) {
	if ignore || m.windowIsIgnored(window) {
		if m.conn.WindowIsMappable(window) {
			m.conn.MapWindow(window)
		}

		m.conn.InitUnmanaged(window)
		m.unmanagedWindows[window] = struct{}{}

		return
	}

	pid, hasPid := m.conn.GetWindowPid(window)

	var ppid winsys.Pid
	var hasPpid bool
	if hasPid {
		ppid, hasPpid = m.spawnerPid(pid)
	}

	name := m.conn.GetIcccmWindowName(window)
	class := m.conn.GetIcccmWindowClass(window)
	instance := m.conn.GetIcccmWindowInstance(window)

	preferredState, hasPreferredState := m.conn.GetWindowPreferredState(window)
	preferredType := m.conn.GetWindowPreferredType(window)

	geom, err := m.conn.GetWindowGeometry(window)
	if err != nil {
		return
	}

	m.StopMoving()
	m.StopResizing()

	atOrigin := geom.Pos.IsOrigin()
	frame := m.conn.CreateFrame(geom)
	rules := detectRules(instance, m.workspaces.Len())
	hints, hasHints := m.conn.GetIcccmWindowHints(window)
	minDim := client.MinDim
	_, sizeHints := m.conn.GetIcccmWindowSizeHints(window, &minDim, nil)

	if sizeHints != nil {
		geom = geom.WithSizeHints(sizeHints).
			WithExtents(zone.FreeDecoration.Extents())
	} else {
		geom = geom.WithMinimumDim(client.MinDim).
			WithExtents(zone.FreeDecoration.Extents())
	}

	parent, hasParent := m.conn.GetIcccmWindowTransientFor(window)
	screen := m.activeScreen()

	workspaceIndex := m.ActiveWorkspace()
	if rules.Workspace != nil {
		workspaceIndex = *rules.Workspace
	} else if desktop, ok := m.conn.GetWindowDesktop(window); ok && desktop < m.workspaces.Len() {
		workspaceIndex = desktop
	}

	byUser := sizeHints != nil && sizeHints.ByUser
	if rules.center() || !byUser && atOrigin {
		geom = screen.FullRegion().FromAbsoluteInnerCenter(geom.Dim)
	}

	ws := m.workspace(workspaceIndex)
	parentZone := zone.ID(0)
	if id, ok := ws.ActiveSpawnZone(); ok {
		parentZone = m.zones.NearestCycle(id)
	}

	zoneID := m.zones.New(parentZone, zone.ClientContent(window))

	c := client.New(zoneID, window, frame, name, class, instance, preferredType, pid, ppid)

	floating := m.conn.MustFreeWindow(window) || rules.float()
	fullscreen := m.conn.WindowIsFullscreen(window) || rules.fullscreen()
	sticky := m.conn.WindowIsSticky(window)

	if hasParent {
		floating = true
		c.SetParent(parent)
	}

	if leaderWindow, ok := m.conn.GetIcccmWindowClientLeader(window); ok {
		if leader, ok := m.clientAny(leaderWindow); ok && leader.Window() != window {
			floating = true
			c.SetLeader(leader.Window())
		}
	}

	if hasHints {
		c.SetUrgent(client.ToggleFrom(hints.Urgent))
	}

	c.SetFloating(client.ToggleFrom(floating))
	c.SetRegion(zone.PlaceFree, geom)
	c.SetSizeHints(sizeHints)
	c.SetWorkspace(workspaceIndex)

	extents := zone.FreeDecoration.Extents()
	m.conn.ReparentWindow(window, frame, geometry.Pos{X: extents.Left, Y: extents.Top})

	if hasParent {
		if parentClient, ok := m.clientAny(parent); ok {
			parentClient.AddChild(window)
			m.stack.AddAboveOther(frame, parentClient.Frame())
		}
	}

	if hasPid {
		m.pidMap[pid] = window
	}

	ws.AddClient(window, cycle.AfterActive())
	m.clients.Add(c)

	m.conn.InsertWindowInSaveSet(window)
	m.conn.InitWindow(window, m.focusFollowsMouse)
	m.conn.InitFrame(frame, m.focusFollowsMouse)
	m.conn.SetWindowBorderWidth(window, 0)
	m.conn.SetWindowDesktop(window, workspaceIndex)
	m.conn.SetIcccmWindowState(window, winsys.IcccmNormal)

	m.applyLayout(workspaceIndex)
	m.focusWindow(window)

	if hasPreferredState && preferredState == winsys.StateDemandsAttention {
		m.handleStateRequest(window, winsys.StateDemandsAttention, winsys.ActionAdd, false)
	}

	if sticky {
		m.stick(c)
	}

	if fullscreen {
		m.fullscreen(c)
	}

	if hasPpid {
		if producerWindow, ok := m.pidMap[ppid]; ok {
			if producer, ok := m.client(producerWindow); ok && producer.IsProducing() {
				m.consumeClient(c, producer)
			}
		}
	}

	if warpPos, ok := c.ActiveRegion().QuadrantCenter(m.conn.GetPointerPosition()); ok {
		m.conn.WarpPointer(warpPos)
	}

	m.logger.Info("managing client", "window", window, "name", name, "class", class)
}

func (m *Model) remanage(c *client.Client, mustAlterWorkspace bool) {
	if c.IsManaged() {
		return
	}

	window := c.Window()
	m.logger.Info("remanaging client", "window", window)

	c.SetManaged(client.On)

	if mustAlterWorkspace {
		if leaderWindow, ok := c.Leader(); ok {
			if leader, ok := m.client(leaderWindow); ok {
				c.SetWorkspace(leader.Workspace())

				ws := m.workspace(leader.Workspace())
				if !ws.Contains(window) {
					ws.AddClient(window, cycle.Back())
				}
			}
		}
	}

	if c.IsSticky() {
		c.SetSticky(client.Off)
		m.stick(c)
		m.mapClient(c)
	}

	m.focusClient(c)
}

func (m *Model) unmanage(c *client.Client) {
	if !c.IsManaged() {
		return
	}

	window := c.Window()
	m.logger.Info("unmanaging client", "window", window)

	c.SetManaged(client.Off)

	if c.IsSticky() {
		m.unstick(c)
		c.SetSticky(client.On)
	}

	m.unmapClient(c)
	m.workspace(c.Workspace()).RemoveClient(window)
}

// CreateLayoutZone inserts a fresh layout zone under the nearest cycle of
// the active focus zone.
func (m *Model) CreateLayoutZone() {
	index := m.ActiveWorkspace()
	ws := m.workspace(index)

	parent, ok := ws.ActiveFocusZone()
	if !ok {
		return
	}

	id := m.zones.New(m.zones.NearestCycle(parent), zone.LayoutContent(
		zone.NewLayout(),
		cycle.New[zone.ID](nil, true),
	))

	ws.AddZone(id, cycle.Back())
	m.applyLayout(index)
	m.applyStack(index)
}

// CreateTabZone inserts a fresh tab zone under the nearest cycle of the
// active focus zone.
func (m *Model) CreateTabZone() {
	index := m.ActiveWorkspace()
	ws := m.workspace(index)

	parent, ok := ws.ActiveFocusZone()
	if !ok {
		return
	}

	id := m.zones.New(m.zones.NearestCycle(parent), zone.TabContent(
		cycle.New[zone.ID](nil, true),
	))

	ws.AddZone(id, cycle.Back())
	m.applyLayout(index)
	m.applyStack(index)
}

// DeleteZone removes the nearest cycle of the active spawn zone, unless it
// is the workspace root.
func (m *Model) DeleteZone() {
	index := m.ActiveWorkspace()
	ws := m.workspace(index)

	id, ok := ws.ActiveSpawnZone()
	if !ok {
		return
	}

	nearest := m.zones.NearestCycle(id)
	if nearest == ws.RootZone() {
		return
	}

	m.zones.Remove(nearest)
	ws.RemoveZone(nearest)
}

func (m *Model) removeWindow(window winsys.Window) {
	c, ok := m.clientAny(window)
	if !ok || c.ConsumeUnmapIfExpecting() {
		return
	}

	window, frame := c.Windows()
	workspaceIndex := c.Workspace()

	m.logger.Info("removing client", "window", window)

	if !c.IsManaged() {
		m.remanage(c, true)
	}

	if geom, err := m.conn.GetWindowGeometry(frame); err == nil {
		m.conn.UnparentWindow(window, geom.Pos)
	}

	m.conn.CleanupWindow(window)
	m.conn.DestroyWindow(frame)

	if c.IsSticky() {
		m.unstick(c)
	}

	if m.jumpedFrom == window {
		m.jumpedFrom = 0
	}

	if _, ok := c.Producer(); ok {
		m.unconsumeClient(c)
	}

	if parentWindow, ok := c.Parent(); ok {
		if parent, ok := m.client(parentWindow); ok {
			parent.RemoveChild(window)
		}
	}

	m.zones.Remove(c.Zone())

	ws := m.workspace(workspaceIndex)
	ws.RemoveClient(window)
	ws.RemoveIcon(window)

	m.stack.RemoveWindow(window)
	m.clients.Remove(window)
	delete(m.pidMap, c.Pid())
	delete(m.fullscreenRegions, window)

	m.syncFocus()
	m.applyLayout(workspaceIndex)
}

func (m *Model) renderDecoration(c *client.Client) {
	border, frameColor := c.DecorationColors()

	if border != nil {
		m.conn.SetWindowBorderWidth(c.Frame(), uint(border.Width))
		m.conn.SetWindowBorderColor(c.Frame(), border.Color)
	}

	if frameColor != nil {
		m.conn.SetWindowBackgroundColor(c.Frame(), *frameColor)
	}
}

func (m *Model) updateClientPlacement(c *client.Client, placement zone.Placement) {
	var region geometry.Region

	switch placement.Region.Kind {
	case zone.FreeRegion:
		region = c.FreeRegion()
	case zone.NewRegion:
		region = placement.Region.Region
	default:
		return
	}

	z := m.zones.Zone(c.Zone())
	z.SetMethod(placement.Method)

	c.SetDecoration(placement.Decoration)

	if placement.Method == zone.PlaceFree {
		z.SetRegion(region)
	}
	c.SetRegion(placement.Method, region)
}

func (m *Model) placeClient(c *client.Client, method zone.PlacementMethod) {
	window, frame := c.Windows()

	m.conn.PlaceWindow(window, c.InnerRegion())

	if method == zone.PlaceFree {
		m.conn.PlaceWindow(frame, c.FreeRegion())
	} else {
		m.conn.PlaceWindow(frame, c.TileRegion())
	}

	m.renderDecoration(c)
	m.conn.UpdateWindowOffset(window, frame)
}

func (m *Model) mapClient(c *client.Client) {
	if c.IsMapped() {
		return
	}

	window, frame := c.Windows()
	m.logger.Debug("mapping client", "window", window)

	m.conn.MapWindow(window)
	m.conn.MapWindow(frame)
	m.renderDecoration(c)
	c.SetMapped(client.On)
}

func (m *Model) unmapClient(c *client.Client) {
	if !c.IsMapped() {
		return
	}

	window, frame := c.Windows()
	m.logger.Debug("unmapping client", "window", window)

	m.conn.UnmapWindow(frame)
	c.ExpectUnmap()
	c.SetMapped(client.Off)
}

func (m *Model) consumeClient(consumer, producer *client.Client) {
	if producer.IsIconified() || consumer.IsIconified() {
		return
	}

	cwindow, pwindow := consumer.Window(), producer.Window()
	cworkspace, pworkspace := consumer.Workspace(), producer.Workspace()

	m.logger.Info("consuming client", "window", cwindow, "producer", pwindow)

	consumer.SetProducer(pwindow)

	if producer.ConsumerLen() == 0 {
		ws := m.workspace(pworkspace)

		if pworkspace == cworkspace {
			ws.ReplaceClient(pwindow, cwindow)
		} else {
			ws.RemoveClient(pwindow)
		}

		m.applyLayout(cworkspace)
		m.applyStack(cworkspace)
	}

	producer.AddConsumer(cwindow)
	m.unmanage(producer)
}

func (m *Model) unconsumeClient(consumer *client.Client) {
	producerWindow, ok := consumer.Producer()
	if !ok {
		return
	}

	producer, ok := m.clientAny(producerWindow)
	if !ok {
		return
	}

	m.logger.Info("unconsuming client",
		"window", consumer.Window(), "producer", producer.Window())

	producer.RemoveConsumer(consumer.Window())

	if producer.ConsumerLen() == 0 {
		workspaceIndex := consumer.Workspace()
		ws := m.workspace(workspaceIndex)

		if ws.Contains(consumer.Window()) {
			ws.ReplaceClient(consumer.Window(), producer.Window())
		} else {
			ws.AddClient(producer.Window(), cycle.Back())
		}

		producer.SetWorkspace(workspaceIndex)
		m.remanage(producer, false)
		m.applyLayout(workspaceIndex)
		m.applyStack(workspaceIndex)
	}

	consumer.UnsetProducer()
}

func (m *Model) focusWindow(window winsys.Window) {
	if c, ok := m.client(window); ok {
		m.focusClient(c)
	}
}

func (m *Model) focusClient(c *client.Client) {
	if !isFocusable(c) || c.Window() == m.focus {
		return
	}

	window, frame := c.Windows()
	m.logger.Debug("focusing client", "window", window)

	if m.ActiveWorkspace() != c.Workspace() {
		m.ActivateWorkspace(c.Workspace())
	}

	workspaceIndex := c.Workspace()

	if m.focus != 0 {
		m.unfocusWindow(m.focus)
	}

	m.conn.UngrabButtons(frame)

	c.SetFocused(client.On)
	c.SetUrgent(client.Off)
	c.SetLastFocused(time.Now())

	id := c.Zone()
	nearest := m.zones.NearestCycle(id)
	m.zones.Activate(id)

	ws := m.workspace(workspaceIndex)
	ws.ActivateZone(nearest)
	ws.FocusClient(window)

	if m.zones.IsWithinPersistent(id) {
		m.applyLayout(workspaceIndex)
	}

	if m.conn.GetFocusedWindow() != window {
		m.conn.FocusWindow(window)
	}

	m.focus = window
	m.renderDecoration(c)
	m.applyStack(workspaceIndex)
}

func (m *Model) unfocusWindow(window winsys.Window) {
	if c, ok := m.client(window); ok {
		m.unfocus(c)
	}
}

func (m *Model) unfocus(c *client.Client) {
	_, frame := c.Windows()

	c.SetWarpPos(m.conn.GetPointerPosition())
	c.SetFocused(client.Off)

	m.conn.RegrabButtons(frame)
	m.renderDecoration(c)
}

func (m *Model) syncFocus() {
	ws := m.workspace(m.ActiveWorkspace())

	if focus, ok := ws.FocusedClient(); ok {
		if focus != m.focus {
			m.focusWindow(focus)
		}
	} else if ws.IsEmpty() {
		m.conn.Unfocus()
		m.focus = 0
	}
}

// JumpClient focuses the client matching the criterium. Jumping onto the
// current focus jumps back to where the previous jump came from.
func (m *Model) JumpClient(criterium JumpCriterium) {
	window, ok := m.jumpTarget(criterium)
	if !ok {
		return
	}

	if m.focus != 0 {
		if window == m.focus && m.jumpedFrom != 0 && m.jumpedFrom != m.focus {
			window = m.jumpedFrom
		}

		m.jumpedFrom = m.focus
	}

	m.logger.Info("jumping to client", "window", window)
	m.focusWindow(window)
}

func (m *Model) jumpTarget(criterium JumpCriterium) (winsys.Window, bool) {
	switch criterium.kind {
	case jumpOnWorkspace:
		if criterium.workspace >= m.workspaces.Len() {
			return 0, false
		}
		return m.workspace(criterium.workspace).GetClientFor(criterium.selector, m.zones)
	case jumpByName:
		return m.latestMatch(func(c *client.Client) bool {
			return c.NameMatches(criterium.method, criterium.pattern)
		})
	case jumpByClass:
		return m.latestMatch(func(c *client.Client) bool {
			return c.ClassMatches(criterium.method, criterium.pattern)
		})
	case jumpByInstance:
		return m.latestMatch(func(c *client.Client) bool {
			return c.InstanceMatches(criterium.method, criterium.pattern)
		})
	case jumpForCond:
		return m.latestMatch(criterium.cond)
	}

	return 0, false
}

func (m *Model) latestMatch(cond func(*client.Client) bool) (winsys.Window, bool) {
	var best *client.Client

	for _, c := range m.clients.All() {
		if !c.IsManaged() || !cond(c) {
			continue
		}
		if best == nil || c.LastFocused().After(best.LastFocused()) {
			best = c
		}
	}

	if best == nil {
		return 0, false
	}
	return best.Window(), true
}

// Exit unwinds all managed clients and stops the event loop.
func (m *Model) Exit() {
	m.logger.Info("shutting down")

	for i := 0; i < m.workspaces.Len(); i++ {
		m.DeiconifyAll(i)
	}

	for _, c := range m.clients.All() {
		m.conn.UnparentWindow(c.Window(), c.FreeRegion().Pos)
	}

	m.conn.Cleanup()
	m.conn.Flush()

	m.running = false
}
