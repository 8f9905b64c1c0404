package wm

import (
	"github.com/deurzen/wzrd/internal/client"
	"github.com/deurzen/wzrd/internal/cycle"
	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/stack"
	"github.com/deurzen/wzrd/internal/winsys"
	"github.com/deurzen/wzrd/internal/workspace"
	"github.com/deurzen/wzrd/internal/zone"
)

// Run drives the event loop until Exit is called. Commands enqueued from
// other goroutines are drained between transitions.
func (m *Model) Run() {
	for m.running {
		if event := m.conn.Step(); event != nil {
			m.dispatch(event)
		}

		for {
			select {
			case command := <-m.commands:
				command(m)
				continue
			default:
			}
			break
		}

		m.conn.Flush()
	}
}

func (m *Model) dispatch(event winsys.Event) {
	switch e := event.(type) {
	case winsys.MouseInputEvent:
		m.handleMouse(e.Event, e.OnRoot)
	case winsys.KeyInputEvent:
		m.handleKey(e.KeyCode)
	case winsys.MapRequestEvent:
		m.handleMapRequest(e.Window, e.Ignore)
	case winsys.MapEvent:
		m.handleMap(e.Window, e.Ignore)
	case winsys.EnterEvent:
		m.handleEnter(e.Window)
	case winsys.LeaveEvent:
		m.handleLeave(e.Window)
	case winsys.DestroyEvent:
		m.handleDestroy(e.Window)
	case winsys.ExposeEvent:
	case winsys.UnmapEvent:
		m.handleUnmap(e.Window, e.Ignore)
	case winsys.ConfigureEvent:
		m.handleConfigure(e.Window, e.Region, e.OnRoot)
	case winsys.StateRequestEvent:
		m.handleStateRequest(e.Window, e.State, e.Action, e.OnRoot)
	case winsys.FocusRequestEvent:
		m.handleFocusRequest(e.Window, e.OnRoot)
	case winsys.CloseRequestEvent:
		m.handleCloseRequest(e.Window, e.OnRoot)
	case winsys.WorkspaceRequestEvent:
		m.handleWorkspaceRequest(e.Window, e.Index, e.OnRoot)
	case winsys.PlacementRequestEvent:
		m.handlePlacementRequest(e)
	case winsys.GripRequestEvent:
		m.handleGripRequest(e)
	case winsys.RestackRequestEvent:
		m.handleRestackRequest(e.Window, e.Sibling, e.Mode)
	case winsys.PropertyEvent:
		m.handleProperty(e.Window, e.Kind)
	case winsys.FrameExtentsRequestEvent:
		m.handleFrameExtentsRequest(e.Window)
	case winsys.MappingEvent:
		m.handleMapping(e.Request)
	case winsys.ScreenChangeEvent, winsys.RandrEvent:
		m.handleScreenChange()
	}
}

func (m *Model) handleMouse(event winsys.MouseEvent, onRoot bool) {
	input := event.Input

	switch event.Kind {
	case winsys.MouseRelease:
		m.StopMoving()
		m.StopResizing()
		return
	case winsys.MouseMotion:
		m.handleMove(event.RootPos)
		m.handleResize(event.RootPos)
		return
	}

	input.Target = winsys.TargetGlobal
	if action, ok := m.mouseBindings[input]; ok {
		action.Do(m, event.Window, event.OnWindow)

		if action.Focus && m.focus != 0 &&
			event.OnWindow && event.Window != m.focus {
			m.focusWindow(event.Window)
		}

		return
	}

	if onRoot {
		input.Target = winsys.TargetRoot
		if action, ok := m.mouseBindings[input]; ok {
			action.Do(m, event.Window, event.OnWindow)
			return
		}
	}

	if !event.OnWindow {
		return
	}

	window, ok := m.window(event.Window)
	if !ok {
		return
	}

	input.Target = winsys.TargetClient
	if action, ok := m.mouseBindings[input]; ok {
		action.Do(m, window, true)

		if action.Focus && m.focus != 0 && window != m.focus {
			m.focusWindow(window)
		}
	} else if m.focus != 0 && window != m.focus {
		m.focusWindow(window)
	}
}

func (m *Model) handleKey(keyCode winsys.KeyCode) {
	if action, ok := m.keyBindings[keyCode]; ok {
		m.logger.Debug("processing key binding",
			"mask", keyCode.Mask, "code", keyCode.Code)
		action(m)
	}
}

func (m *Model) handleMapRequest(window winsys.Window, ignore bool) {
	m.logger.Debug("map request", "window", window)

	index := m.ActiveWorkspace()

	if ignore {
		if struts, ok := m.conn.GetWindowStrut(window); ok {
			screen := m.activeScreen()
			screen.AddStruts(struts)

			if !screen.ShowingStruts() {
				m.conn.UnmapWindow(window)
			} else {
				screen.ComputePlaceableRegion()
				m.applyLayout(index)
				m.applyStack(index)
			}
		}

		preferredState, hasPreferredState := m.conn.GetWindowPreferredState(window)
		preferredType := m.conn.GetWindowPreferredType(window)

		layer, hasLayer := stack.LayerDesktop, false
		switch {
		case hasPreferredState && preferredState == winsys.StateBelow:
			layer, hasLayer = stack.LayerBelow, true
		case preferredType == winsys.WindowTypeDesktop:
			layer, hasLayer = stack.LayerDesktop, true
		case preferredType == winsys.WindowTypeDock:
			m.inferDockStrut(window)
			layer, hasLayer = stack.LayerDock, true
		case preferredType == winsys.WindowTypeNotification:
			layer, hasLayer = stack.LayerNotification, true
		case hasPreferredState && preferredState == winsys.StateAbove:
			layer, hasLayer = stack.LayerAbove, true
		}

		if hasLayer {
			m.stack.AddWindow(window, layer)
		}

		m.applyStack(m.ActiveWorkspace())
	}

	if _, ok := m.clients.GetByWindow(window); ok {
		return
	}

	m.manage(window, ignore)
}

// inferDockStrut derives a strut for a dock window that does not announce
// one, from where its geometry touches the screen.
func (m *Model) inferDockStrut(window winsys.Window) {
	geom, err := m.conn.GetWindowGeometry(window)
	if err != nil {
		return
	}

	screen := m.activeScreen()
	if screen.ContainsWindow(window) {
		return
	}

	full := screen.FullRegion()

	var edge geometry.Edge
	var width int

	switch {
	case geom.Pos.IsOrigin() && geom.Dim.W == full.Dim.W:
		edge, width = geometry.EdgeTop, geom.Dim.H
	case geom.Pos.IsOrigin() && geom.Dim.H == full.Dim.H:
		edge, width = geometry.EdgeLeft, geom.Dim.W
	case geom.Pos.IsOrigin() && geom.Dim.W > geom.Dim.H:
		edge, width = geometry.EdgeTop, geom.Dim.H
	case geom.Pos.IsOrigin() && geom.Dim.W < geom.Dim.H:
		edge, width = geometry.EdgeLeft, geom.Dim.W
	case geom.Pos.Y == full.Dim.H-geom.Dim.H:
		edge, width = geometry.EdgeBottom, geom.Dim.H
	case geom.Pos.X == full.Dim.W-geom.Dim.W:
		edge, width = geometry.EdgeRight, geom.Dim.W
	default:
		return
	}

	screen.AddStrut(edge, window, uint(width))

	if !screen.ShowingStruts() {
		m.conn.UnmapWindow(window)
		return
	}

	screen.ComputePlaceableRegion()

	index := m.ActiveWorkspace()
	m.applyLayout(index)
	m.applyStack(index)
}

func (m *Model) handleMap(window winsys.Window, _ bool) {
	m.logger.Debug("map", "window", window)
}

func (m *Model) handleEnter(window winsys.Window) {
	c, ok := m.client(window)
	if !ok {
		return
	}

	if m.focus != 0 {
		if c.Window() == m.focus {
			return
		}
		m.unfocusWindow(m.focus)
	}

	m.focusClient(c)
}

func (m *Model) handleLeave(window winsys.Window) {
	m.unfocusWindow(window)
}

func (m *Model) handleDestroy(window winsys.Window) {
	m.logger.Debug("destroy", "window", window)

	screen := m.activeScreen()
	if screen.HasStrutWindow(window) {
		screen.RemoveWindowStrut(window)
		screen.ComputePlaceableRegion()

		index := m.ActiveWorkspace()
		m.applyLayout(index)
		m.applyStack(index)
	}

	delete(m.unmanagedWindows, window)
	m.removeWindow(window)
}

func (m *Model) handleUnmap(window winsys.Window, _ bool) {
	if _, ok := m.unmanagedWindows[window]; ok {
		return
	}

	m.handleDestroy(window)
}

func (m *Model) handleConfigure(window winsys.Window, _ geometry.Region, onRoot bool) {
	if onRoot {
		m.logger.Debug("root configure", "window", window)
		m.acquirePartitions()
	}
}

func (m *Model) handleStateRequest(
	window winsys.Window,
	state winsys.WindowState,
	action winsys.ToggleAction,
	onRoot bool,
) {
	c, ok := m.clientAny(window)
	if !ok {
		return
	}

	m.logger.Debug("state request",
		"window", window, "state", state, "action", action)

	switch action {
	case winsys.ActionAdd:
		switch state {
		case winsys.StateFullscreen:
			m.fullscreen(c)
		case winsys.StateSticky:
			m.stick(c)
		case winsys.StateDemandsAttention:
			m.conn.SetIcccmWindowHints(window, winsys.Hints{Urgent: true})
			c.SetUrgent(client.On)
			m.renderDecoration(c)
		}
	case winsys.ActionRemove:
		switch state {
		case winsys.StateFullscreen:
			m.unfullscreen(c)
		case winsys.StateSticky:
			m.unstick(c)
		case winsys.StateDemandsAttention:
			m.conn.SetIcccmWindowHints(window, winsys.Hints{Urgent: false})
			c.SetUrgent(client.Off)
			m.renderDecoration(c)
		}
	case winsys.ActionToggle:
		toggled := winsys.ActionAdd
		if c.IsFullscreen() {
			toggled = winsys.ActionRemove
		}
		m.handleStateRequest(window, state, toggled, onRoot)
	}
}

func (m *Model) handleFocusRequest(window winsys.Window, onRoot bool) {
	if !onRoot {
		m.focusWindow(window)
	}
}

func (m *Model) handleCloseRequest(window winsys.Window, onRoot bool) {
	if !onRoot {
		m.conn.KillWindow(window)
	}
}

func (m *Model) handleWorkspaceRequest(_ winsys.Window, index int, onRoot bool) {
	if onRoot {
		m.ActivateWorkspace(index)
	}
}

func (m *Model) handlePlacementRequest(e winsys.PlacementRequestEvent) {
	if !e.HasPos && !e.HasDim {
		return
	}

	m.logger.Debug("placement request",
		"window", e.Window, "pos", e.Pos, "dim", e.Dim)

	c, ok := m.client(e.Window)
	if !ok {
		// Unmanaged windows get placed exactly as they ask.
		if geom, err := m.conn.GetWindowGeometry(e.Window); err == nil {
			if e.HasPos {
				geom.Pos = e.Pos
			}
			if e.HasDim {
				geom.Dim = e.Dim
			}
			m.conn.PlaceWindow(e.Window, geom)
		}
		return
	}

	if !m.isFree(c) {
		return
	}

	extents := c.FrameExtents()
	region := c.FreeRegion()

	if e.Window == c.Window() {
		if e.HasPos {
			region.Pos = geometry.Pos{
				X: e.Pos.X - extents.Left,
				Y: e.Pos.Y - extents.Top,
			}
		}
		if e.HasDim {
			region.Dim = geometry.Dim{
				W: e.Dim.W + extents.Left + extents.Right,
				H: e.Dim.H + extents.Top + extents.Bottom,
			}
		}
	} else {
		if e.HasPos {
			region.Pos = e.Pos
		}
		if e.HasDim {
			region.Dim = e.Dim
		}
	}

	region = region.
		WithoutExtents(extents).
		WithSizeHints(c.SizeHints()).
		WithMinimumDim(client.MinDim).
		WithExtents(extents)

	c.SetRegion(zone.PlaceFree, region)
	m.replaceFree(c, zone.FreePlacementRegion())
}

func (m *Model) handleGripRequest(e winsys.GripRequestEvent) {
	m.logger.Debug("grip request", "window", e.Window, "pos", e.Pos)

	if !e.HasGrip {
		m.StartMoving(e.Window)
		return
	}

	m.moveBuffer.Unset()
	m.resizeBuffer.Unset()

	if c, ok := m.client(e.Window); ok {
		m.resizeBuffer.Set(
			c.Window(),
			e.Grip,
			m.conn.GetPointerPosition(),
			c.FreeRegion(),
		)

		m.conn.ConfinePointer(m.resizeBuffer.Handle())
	}
}

func (m *Model) handleRestackRequest(window, sibling winsys.Window, mode winsys.StackMode) {
	m.logger.Debug("restack request",
		"window", window, "sibling", sibling, "mode", mode.String())

	switch mode {
	case winsys.StackAbove:
		m.stack.AddAboveOther(window, sibling)
	case winsys.StackBelow:
		m.stack.AddBelowOther(window, sibling)
	}

	m.applyStack(m.ActiveWorkspace())
}

func (m *Model) handleProperty(window winsys.Window, kind winsys.PropertyKind) {
	switch kind {
	case winsys.PropertyName:
		if c, ok := m.clientAny(window); ok {
			c.SetName(m.conn.GetIcccmWindowName(window))
		}
	case winsys.PropertyClass:
		if c, ok := m.clientAny(window); ok {
			c.SetClass(m.conn.GetIcccmWindowClass(window))
			c.SetInstance(m.conn.GetIcccmWindowInstance(window))
		}
	case winsys.PropertySize:
		m.handleSizeProperty(window)
	case winsys.PropertyStrut:
		struts, ok := m.conn.GetWindowStrut(window)
		if !ok {
			return
		}

		screen := m.activeScreen()
		screen.RemoveWindowStrut(window)
		screen.AddStruts(struts)
		screen.ComputePlaceableRegion()

		index := m.ActiveWorkspace()
		m.applyLayout(index)
		m.applyStack(index)
	}
}

func (m *Model) handleSizeProperty(window winsys.Window) {
	c, ok := m.clientAny(window)
	if !ok {
		return
	}

	window = c.Window()
	minDim := client.MinDim
	_, sizeHints := m.conn.GetIcccmWindowSizeHints(window, &minDim, c.SizeHints())

	geom, err := m.conn.GetWindowGeometry(window)
	if err != nil {
		return
	}

	geom = geom.
		WithSizeHints(sizeHints).
		WithMinimumDim(client.MinDim)

	extents := c.FrameExtents()
	geom.Pos = c.FreeRegion().Pos
	geom.Dim.W += extents.Left + extents.Right
	geom.Dim.H += extents.Top + extents.Bottom

	c.SetSizeHints(sizeHints)
	c.SetRegion(zone.PlaceFree, geom)

	if c.IsManaged() {
		index := c.Workspace()
		m.applyLayout(index)
		m.applyStack(index)
	}
}

func (m *Model) handleFrameExtentsRequest(window winsys.Window) {
	extents := zone.NoDecoration.Extents()
	if c, ok := m.clientAny(window); ok {
		extents = c.FrameExtents()
	}

	m.conn.SetWindowFrameExtents(window, extents)
}

func (m *Model) handleMapping(request uint8) {
	if m.conn.IsMappingRequest(request) {
		m.conn.GrabBindings(m.keyBindings.keyCodes(), m.mouseBindings.inputs())
	}
}

func (m *Model) handleScreenChange() {
	m.logger.Debug("screen change")

	m.acquirePartitions()
	m.workspaces.ActivateFor(
		cycle.AtIndex[*workspace.Workspace](cycle.Index(m.activeScreen().Number())),
	)
}
