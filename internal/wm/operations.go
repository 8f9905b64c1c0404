package wm

import (
	"github.com/deurzen/wzrd/internal/client"
	"github.com/deurzen/wzrd/internal/cycle"
	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/winsys"
	"github.com/deurzen/wzrd/internal/workspace"
	"github.com/deurzen/wzrd/internal/zone"
)

// KillFocus closes the focused client.
func (m *Model) KillFocus() {
	if m.focus != 0 {
		m.KillWindow(m.focus)
	}
}

// KillWindow closes the client owning window, unless it is invincible.
func (m *Model) KillWindow(window winsys.Window) {
	c, ok := m.clientAny(window)
	if !ok || c.IsInvincible() {
		return
	}

	m.logger.Info("killing client", "window", window)

	m.conn.KillWindow(window)
	m.conn.Flush()
}

// CycleZones moves the active spawn zone in dir.
func (m *Model) CycleZones(dir cycle.Direction) {
	m.workspace(m.ActiveWorkspace()).CycleZones(dir, m.zones)
}

// CycleFocus moves focus to the neighboring client in dir.
func (m *Model) CycleFocus(dir cycle.Direction) {
	if _, window, ok := m.workspace(m.ActiveWorkspace()).CycleFocus(dir, m.clients, m.zones); ok {
		m.focusWindow(window)
		m.syncFocus()
	}
}

// DragFocus swaps the focused client with its neighbor in dir.
func (m *Model) DragFocus(dir cycle.Direction) {
	if m.focus == 0 {
		return
	}

	index := m.ActiveWorkspace()
	m.workspace(index).DragFocus(dir)
	m.applyLayout(index)
	m.focusWindow(m.focus)
}

// RotateClients rotates the client order in dir, keeping focus on the
// same ordinal position.
func (m *Model) RotateClients(dir cycle.Direction) {
	ws := m.workspace(m.ActiveWorkspace())

	next, ok := ws.NextClient(dir.Reverse())
	if !ok {
		return
	}

	ws.RotateClients(dir)
	m.applyLayout(m.ActiveWorkspace())
	m.focusWindow(next)
}

// MoveFocusToNextWorkspace moves the focused client one workspace over.
func (m *Model) MoveFocusToNextWorkspace(dir cycle.Direction) {
	if m.focus != 0 {
		m.MoveWindowToNextWorkspace(m.focus, dir)
	}
}

func (m *Model) MoveWindowToNextWorkspace(window winsys.Window, dir cycle.Direction) {
	if c, ok := m.client(window); ok {
		m.moveClientToWorkspace(c, m.nextWorkspaceIndex(dir))
	}
}

// MoveFocusToWorkspace moves the focused client to workspace index to.
func (m *Model) MoveFocusToWorkspace(to cycle.Index) {
	if m.focus != 0 {
		if c, ok := m.client(m.focus); ok {
			m.moveClientToWorkspace(c, to)
		}
	}
}

func (m *Model) moveClientToWorkspace(c *client.Client, to cycle.Index) {
	if to == m.ActiveWorkspace() || to >= m.workspaces.Len() || c.IsSticky() {
		return
	}

	window := c.Window()
	from := c.Workspace()

	m.logger.Info("moving client to workspace", "window", window, "workspace", to)

	c.SetWorkspace(to)
	m.unmapClient(c)

	m.workspace(to).AddClient(window, cycle.Back())
	m.applyLayout(to)
	m.applyStack(to)

	m.workspace(from).RemoveClient(window)
	m.applyLayout(from)
	m.applyStack(from)

	m.syncFocus()
}

func (m *Model) nextWorkspaceIndex(dir cycle.Direction) cycle.Index {
	index := m.ActiveWorkspace()
	n := m.workspaces.Len()

	if dir == cycle.Forward {
		return (index + 1) % n
	}
	if index == 0 {
		return n - 1
	}
	return index - 1
}

// ToggleWorkspace switches back to the previously active workspace.
func (m *Model) ToggleWorkspace() {
	m.ActivateWorkspace(m.prevWorkspace)
}

// ActivateNextWorkspace activates the neighboring workspace in dir.
func (m *Model) ActivateNextWorkspace(dir cycle.Direction) {
	m.ActivateWorkspace(m.nextWorkspaceIndex(dir))
}

// ActivateWorkspace switches to workspace index to, carrying sticky
// clients along.
func (m *Model) ActivateWorkspace(to cycle.Index) {
	if to == m.ActiveWorkspace() || to >= m.workspaces.Len() {
		return
	}

	m.logger.Info("activating workspace", "workspace", to)

	m.StopMoving()
	m.StopResizing()

	from := m.workspaces.ActiveIndex()
	m.prevWorkspace = from

	m.workspace(to).OnEachClient(m.clients, func(c *client.Client) {
		if !c.IsMapped() {
			m.mapClient(c)
		}
	})

	m.workspace(from).OnEachClient(m.clients, func(c *client.Client) {
		if c.IsMapped() && !c.IsSticky() {
			m.unmapClient(c)
		}
	})

	for window := range m.stickyClients {
		if c, ok := m.clients.GetByWindow(window); ok {
			c.SetWorkspace(to)
		}
	}

	m.conn.SetCurrentDesktop(to)

	m.workspaces.ActivateFor(cycle.AtIndex[*workspace.Workspace](to))
	m.applyLayout(to)
	m.applyStack(to)

	m.syncFocus()
}

func (m *Model) rearrangeAfter(mutate func(*workspace.Workspace) error) error {
	index := m.ActiveWorkspace()

	if err := mutate(m.workspace(index)); err != nil {
		return err
	}

	m.applyLayout(index)
	m.applyStack(index)

	return nil
}

// ChangeGapSize steps the active layout's gap size.
func (m *Model) ChangeGapSize(change workspace.Change, delta int) error {
	return m.rearrangeAfter(func(ws *workspace.Workspace) error {
		return ws.ChangeGapSize(m.zones, change, delta)
	})
}

// CopyPrevLayoutData copies the previous kind's data onto the active kind.
func (m *Model) CopyPrevLayoutData() error {
	return m.rearrangeAfter(func(ws *workspace.Workspace) error {
		return ws.CopyPrevLayoutData(m.zones)
	})
}

// ResetLayoutData restores the active layout's default data.
func (m *Model) ResetLayoutData() error {
	return m.rearrangeAfter(func(ws *workspace.Workspace) error {
		return ws.ResetLayoutData(m.zones)
	})
}

// ResetGapSize restores the active layout's default gap size.
func (m *Model) ResetGapSize() error {
	return m.rearrangeAfter(func(ws *workspace.Workspace) error {
		return ws.ResetGapSize(m.zones)
	})
}

// ChangeMainCount steps the active layout's main client count.
func (m *Model) ChangeMainCount(change workspace.Change, delta int) error {
	return m.rearrangeAfter(func(ws *workspace.Workspace) error {
		return ws.ChangeMainCount(m.zones, change, delta)
	})
}

// ChangeMainFactor steps the active layout's main size factor.
func (m *Model) ChangeMainFactor(change workspace.Change, delta float64) error {
	return m.rearrangeAfter(func(ws *workspace.Workspace) error {
		return ws.ChangeMainFactor(m.zones, change, delta)
	})
}

// ChangeMargin steps the active layout's margin at edge.
func (m *Model) ChangeMargin(edge geometry.Edge, change workspace.Change, delta int) error {
	return m.rearrangeAfter(func(ws *workspace.Workspace) error {
		return ws.ChangeMargin(m.zones, edge, change, delta)
	})
}

// ResetMargin restores the active layout's default margin.
func (m *Model) ResetMargin() error {
	return m.rearrangeAfter(func(ws *workspace.Workspace) error {
		return ws.ResetMargin(m.zones)
	})
}

// SetLayout activates the given layout kind on the active focus zone.
func (m *Model) SetLayout(kind zone.LayoutKind) error {
	index := m.ActiveWorkspace()

	id, ok := m.workspace(index).ActiveFocusZone()
	if !ok {
		return nil
	}

	m.logger.Info("activating layout", "layout", kind.String(), "workspace", index)

	if _, err := m.zones.SetKind(id, kind); err != nil {
		return err
	}

	m.applyLayout(index)
	m.applyStack(index)

	return nil
}

// ToggleLayout switches back to the previously active layout kind.
func (m *Model) ToggleLayout() {
	index := m.ActiveWorkspace()

	id, ok := m.workspace(index).ActiveFocusZone()
	if !ok {
		return
	}

	if kind, err := m.zones.SetPrevKind(id); err == nil {
		m.logger.Info("activating layout", "layout", kind.String(), "workspace", index)
		m.applyLayout(index)
		m.applyStack(index)
	}
}

// ApplyFloatRetainRegion switches the active workspace to the float layout
// with every client keeping its current visible region.
func (m *Model) ApplyFloatRetainRegion() {
	index := m.ActiveWorkspace()

	for _, window := range m.workspace(index).Clients() {
		if c, ok := m.clients.GetByWindow(window); ok {
			c.SetRegion(zone.PlaceFree, c.ActiveRegion())
		}
	}

	m.SetLayout(zone.Float)
	m.applyLayout(index)
}

// SetFloatingFocus floats or sinks the focused client.
func (m *Model) SetFloatingFocus(toggle client.Toggle) {
	if m.focus != 0 {
		m.SetFloatingWindow(m.focus, toggle)
	}
}

func (m *Model) SetFloatingWindow(window winsys.Window, toggle client.Toggle) {
	c, ok := m.client(window)
	if !ok {
		return
	}

	m.logger.Info("setting floating", "window", window, "floating", toggle.Eval(c.IsFloating()))

	workspaceIndex := c.Workspace()

	c.SetFloating(toggle)
	m.applyLayout(workspaceIndex)
	m.applyStack(workspaceIndex)
}

// SetFullscreenFocus toggles fullscreen on the focused client.
func (m *Model) SetFullscreenFocus(toggle client.Toggle) {
	if m.focus != 0 {
		m.SetFullscreenWindow(m.focus, toggle)
	}
}

func (m *Model) SetFullscreenWindow(window winsys.Window, toggle client.Toggle) {
	if c, ok := m.client(window); ok {
		m.setFullscreenClient(c, toggle)
	}
}

func (m *Model) setFullscreenClient(c *client.Client, toggle client.Toggle) {
	if toggle.Eval(c.IsFullscreen()) {
		m.fullscreen(c)
	} else {
		m.unfullscreen(c)
	}
}

// fullscreen remembers the client's free region so that leaving
// fullscreen restores it.
func (m *Model) fullscreen(c *client.Client) {
	if c.IsFullscreen() {
		return
	}

	window := c.Window()
	workspaceIndex := c.Workspace()
	m.logger.Info("enabling fullscreen", "window", window)

	m.conn.SetWindowState(window, winsys.StateFullscreen, true)

	c.SetFullscreen(client.On)
	m.applyLayout(workspaceIndex)
	m.applyStack(workspaceIndex)

	m.fullscreenRegions[window] = c.FreeRegion()
}

func (m *Model) unfullscreen(c *client.Client) {
	if !c.IsFullscreen() {
		return
	}

	window := c.Window()
	workspaceIndex := c.Workspace()
	m.logger.Info("disabling fullscreen", "window", window)

	if region, ok := m.fullscreenRegions[window]; ok {
		c.SetRegion(zone.PlaceFree, region)
	}

	m.conn.SetWindowState(window, winsys.StateFullscreen, false)

	c.SetFullscreen(client.Off)
	m.applyLayout(workspaceIndex)
	m.applyStack(workspaceIndex)

	delete(m.fullscreenRegions, window)
}

// SetContainedFocus toggles whether the focused client tiles while
// fullscreen.
func (m *Model) SetContainedFocus(toggle client.Toggle) {
	if m.focus != 0 {
		m.SetContainedWindow(m.focus, toggle)
	}
}

func (m *Model) SetContainedWindow(window winsys.Window, toggle client.Toggle) {
	c, ok := m.client(window)
	if !ok {
		return
	}

	c.SetContained(toggle)
	m.setFullscreenClient(c, client.ToggleFrom(!c.IsContained()))
}

// SetInvincibleFocus toggles kill protection on the focused client.
func (m *Model) SetInvincibleFocus(toggle client.Toggle) {
	if m.focus != 0 {
		m.SetInvincibleWindow(m.focus, toggle)
	}
}

func (m *Model) SetInvincibleWindow(window winsys.Window, toggle client.Toggle) {
	if c, ok := m.client(window); ok {
		c.SetInvincible(toggle)
	}
}

// SetProducingFocus toggles whether the focused client adopts windows its
// process spawns.
func (m *Model) SetProducingFocus(toggle client.Toggle) {
	if m.focus != 0 {
		m.SetProducingWindow(m.focus, toggle)
	}
}

func (m *Model) SetProducingWindow(window winsys.Window, toggle client.Toggle) {
	if c, ok := m.client(window); ok {
		c.SetProducing(toggle)
	}
}

// SetIconifyableFocus toggles whether the focused client may be iconified.
func (m *Model) SetIconifyableFocus(toggle client.Toggle) {
	if m.focus != 0 {
		m.SetIconifyableWindow(m.focus, toggle)
	}
}

func (m *Model) SetIconifyableWindow(window winsys.Window, toggle client.Toggle) {
	if c, ok := m.client(window); ok {
		c.SetIconifyable(toggle)
	}
}

// SetIconifyFocus iconifies or deiconifies the focused client.
func (m *Model) SetIconifyFocus(toggle client.Toggle) {
	if m.focus != 0 {
		m.SetIconifyWindow(m.focus, toggle)
	}
}

func (m *Model) SetIconifyWindow(window winsys.Window, toggle client.Toggle) {
	c, ok := m.client(window)
	if !ok {
		return
	}

	if toggle.Eval(c.IsIconified()) {
		if c.IsIconifyable() {
			m.iconify(c)
		}
	} else {
		m.deiconify(c)
	}
}

// PopDeiconify deiconifies the most recently iconified client on the
// active workspace.
func (m *Model) PopDeiconify() {
	if icon, ok := m.workspace(m.ActiveWorkspace()).FocusedIcon(); ok {
		m.SetIconifyWindow(icon, client.Off)
	}
}

// DeiconifyAll deiconifies every icon on the given workspace.
func (m *Model) DeiconifyAll(index cycle.Index) {
	if index >= m.workspaces.Len() {
		m.logger.Warn("deiconify on nonexistent workspace", "workspace", index)
		return
	}

	ws := m.workspace(index)
	for {
		icon, ok := ws.FocusedIcon()
		if !ok {
			return
		}
		m.SetIconifyWindow(icon, client.Off)
	}
}

func (m *Model) iconify(c *client.Client) {
	if c.IsIconified() {
		return
	}

	window := c.Window()
	workspaceIndex := c.Workspace()

	m.logger.Info("iconifying client", "window", window)

	m.workspace(workspaceIndex).ClientToIcon(window)
	m.conn.SetIcccmWindowState(window, winsys.IcccmIconic)

	c.SetIconified(client.On)
	m.unmapClient(c)

	m.applyLayout(workspaceIndex)
	m.applyStack(workspaceIndex)

	m.syncFocus()
}

func (m *Model) deiconify(c *client.Client) {
	if !c.IsIconified() {
		return
	}

	window := c.Window()
	workspaceIndex := c.Workspace()

	m.logger.Info("deiconifying client", "window", window)

	m.workspace(workspaceIndex).IconToClient(window)
	m.conn.SetIcccmWindowState(window, winsys.IcccmNormal)

	c.SetIconified(client.Off)
	m.mapClient(c)

	m.applyLayout(workspaceIndex)
	m.applyStack(workspaceIndex)

	m.syncFocus()
}

// SetStickFocus toggles stickiness on the focused client.
func (m *Model) SetStickFocus(toggle client.Toggle) {
	if m.focus != 0 {
		m.SetStickWindow(m.focus, toggle)
	}
}

func (m *Model) SetStickWindow(window winsys.Window, toggle client.Toggle) {
	c, ok := m.client(window)
	if !ok {
		return
	}

	if toggle.Eval(c.IsSticky()) {
		m.stick(c)
	} else {
		m.unstick(c)
	}
}

// stick adds the client to every other workspace so it follows the user.
func (m *Model) stick(c *client.Client) {
	if c.IsSticky() {
		return
	}

	window := c.Window()
	m.logger.Info("sticking client", "window", window)

	for _, ws := range m.workspaces.Elements() {
		if cycle.Index(ws.Number()) != c.Workspace() {
			ws.AddClient(window, cycle.Back())
		}
	}

	m.conn.SetWindowState(window, winsys.StateSticky, true)

	c.SetSticky(client.On)
	m.renderDecoration(c)

	m.stickyClients[window] = struct{}{}
}

func (m *Model) unstick(c *client.Client) {
	if !c.IsSticky() {
		return
	}

	window := c.Window()
	m.logger.Info("unsticking client", "window", window)

	for _, ws := range m.workspaces.Elements() {
		if cycle.Index(ws.Number()) != c.Workspace() {
			ws.RemoveClient(window)
			ws.RemoveIcon(window)
		}
	}

	m.conn.SetWindowState(window, winsys.StateSticky, false)

	c.SetSticky(client.Off)
	m.renderDecoration(c)

	delete(m.stickyClients, window)
}

// CenterFocus recenters the focused client on the screen.
func (m *Model) CenterFocus() {
	if m.focus != 0 {
		m.CenterWindow(m.focus)
	}
}

func (m *Model) CenterWindow(window winsys.Window) {
	c, ok := m.client(window)
	if !ok || !m.isFree(c) {
		return
	}

	m.logger.Info("centering client", "window", c.Window())

	region := c.FreeRegion()
	region.Pos = m.activeScreen().
		FullRegion().
		FromAbsoluteInnerCenter(region.Dim).
		Pos

	m.conn.MoveWindow(c.Frame(), region.Pos)
	c.SetRegion(zone.PlaceFree, region)
}

// SnapFocus pushes the focused client flush against edge.
func (m *Model) SnapFocus(edge geometry.Edge) {
	if m.focus != 0 {
		m.SnapWindow(m.focus, edge)
	}
}

func (m *Model) SnapWindow(window winsys.Window, edge geometry.Edge) {
	c, ok := m.client(window)
	if !ok || !m.isFree(c) {
		return
	}

	m.logger.Info("snapping client", "window", c.Window(), "edge", edge.String())

	placeable := m.activeScreen().PlaceableRegion()
	region := c.FreeRegion()

	switch edge {
	case geometry.EdgeLeft:
		region.Pos.X = placeable.Pos.X
	case geometry.EdgeRight:
		region.Pos.X = max(0, placeable.Dim.W+placeable.Pos.X-region.Dim.W)
	case geometry.EdgeTop:
		region.Pos.Y = placeable.Pos.Y
	case geometry.EdgeBottom:
		region.Pos.Y = max(0, placeable.Dim.H+placeable.Pos.Y-region.Dim.H)
	}

	c.SetRegion(zone.PlaceFree, region)
	m.replaceFree(c, zone.FreePlacementRegion())
}

// NudgeFocus moves the focused client by step toward edge.
func (m *Model) NudgeFocus(edge geometry.Edge, step int) {
	if m.focus != 0 {
		m.NudgeWindow(m.focus, edge, step)
	}
}

func (m *Model) NudgeWindow(window winsys.Window, edge geometry.Edge, step int) {
	c, ok := m.client(window)
	if !ok || !m.isFree(c) {
		return
	}

	m.logger.Info("nudging client", "window", c.Window(), "edge", edge.String(), "step", step)

	region := c.FreeRegion()

	switch edge {
	case geometry.EdgeLeft:
		region.Pos.X -= step
	case geometry.EdgeRight:
		region.Pos.X += step
	case geometry.EdgeTop:
		region.Pos.Y -= step
	case geometry.EdgeBottom:
		region.Pos.Y += step
	}

	c.SetRegion(zone.PlaceFree, region)
	m.replaceFree(c, zone.FreePlacementRegion())
}

// GrowRatioFocus grows or shrinks the focused client by step, split over
// width and height proportionally, keeping the center fixed.
func (m *Model) GrowRatioFocus(step int) {
	if m.focus != 0 {
		m.GrowRatioWindow(m.focus, step)
	}
}

func (m *Model) GrowRatioWindow(window winsys.Window, step int) {
	c, ok := m.client(window)
	if !ok || !m.isFree(c) {
		return
	}

	frameExtents := c.FrameExtents()
	originalRegion := c.FreeRegion()
	width, height := originalRegion.Dim.W, originalRegion.Dim.H

	fraction := float64(width) / float64(width+height)
	widthInc := int(fraction*float64(step) + 0.5)
	heightInc := step - widthInc

	region := originalRegion.WithoutExtents(frameExtents)

	if (widthInc < 0 && -widthInc >= region.Dim.W) ||
		(heightInc < 0 && -heightInc >= region.Dim.H) ||
		(region.Dim.W+widthInc <= client.MinDim.W) ||
		(region.Dim.H+heightInc <= client.MinDim.H) {
		return
	}

	m.logger.Info("resizing client by ratio", "window", c.Window(), "step", step)

	region.Dim.W += widthInc
	region.Dim.H += heightInc

	region = region.WithExtents(frameExtents)
	dx := region.Dim.W - originalRegion.Dim.W
	dy := region.Dim.H - originalRegion.Dim.H

	region.Pos.X -= dx / 2
	region.Pos.Y -= dy / 2

	c.SetRegion(zone.PlaceFree, region)
	m.replaceFree(c, zone.FreePlacementRegion())
}

// StretchFocus grows or shrinks the focused client at edge by step.
func (m *Model) StretchFocus(edge geometry.Edge, step int) {
	if m.focus != 0 {
		m.StretchWindow(m.focus, edge, step)
	}
}

func (m *Model) StretchWindow(window winsys.Window, edge geometry.Edge, step int) {
	c, ok := m.client(window)
	if !ok || !m.isFree(c) {
		return
	}

	m.logger.Info("stretching client", "window", c.Window(), "edge", edge.String(), "step", step)

	frameExtents := c.FrameExtents()
	region := c.FreeRegion().WithoutExtents(frameExtents)

	switch edge {
	case geometry.EdgeLeft:
		if step < 0 && -step >= region.Dim.W {
			return
		}
		if region.Dim.W+step <= client.MinDim.W {
			region.Pos.X -= client.MinDim.W - region.Dim.W
			region.Dim.W = client.MinDim.W
		} else {
			region.Pos.X -= step
			region.Dim.W += step
		}
	case geometry.EdgeRight:
		if step < 0 && -step >= region.Dim.W {
			return
		}
		if region.Dim.W+step <= client.MinDim.W {
			region.Dim.W = client.MinDim.W
		} else {
			region.Dim.W += step
		}
	case geometry.EdgeTop:
		if step < 0 && -step >= region.Dim.H {
			return
		}
		if region.Dim.H+step <= client.MinDim.H {
			region.Pos.Y -= client.MinDim.H - region.Dim.H
			region.Dim.H = client.MinDim.H
		} else {
			region.Pos.Y -= step
			region.Dim.H += step
		}
	case geometry.EdgeBottom:
		if step < 0 && -step >= region.Dim.H {
			return
		}
		if region.Dim.H+step <= client.MinDim.H {
			region.Dim.H = client.MinDim.H
		} else {
			region.Dim.H += step
		}
	default:
		return
	}

	c.SetRegion(zone.PlaceFree, region.WithExtents(frameExtents))
	m.replaceFree(c, zone.FreePlacementRegion())
}

// replaceFree funnels a free-region mutation through the placement path.
func (m *Model) replaceFree(c *client.Client, region zone.PlacementRegion) {
	placement := zone.Placement{
		Method:     zone.PlaceFree,
		Target:     zone.ClientTarget(c.Window()),
		Zone:       c.Zone(),
		Region:     region,
		Decoration: c.Decoration(),
	}

	m.updateClientPlacement(c, placement)
	m.placeClient(c, placement.Method)
}

// StartMoving begins a pointer-driven move of window.
func (m *Model) StartMoving(window winsys.Window) {
	if m.moveBuffer.IsOccupied() || m.resizeBuffer.IsOccupied() {
		return
	}

	if c, ok := m.client(window); ok {
		m.moveBuffer.Set(
			c.Window(),
			winsys.CornerGrip(geometry.CornerTopLeft),
			m.conn.GetPointerPosition(),
			c.FreeRegion(),
		)

		m.conn.ConfinePointer(m.moveBuffer.Handle())
	}
}

// StopMoving ends an in-progress pointer-driven move.
func (m *Model) StopMoving() {
	if m.moveBuffer.IsOccupied() {
		m.conn.ReleasePointer()
		m.moveBuffer.Unset()
	}
}

func (m *Model) handleMove(pos geometry.Pos) {
	if !m.moveBuffer.IsOccupied() {
		return
	}

	window, _ := m.moveBuffer.Window()
	c, ok := m.client(window)
	if !ok || !m.isFree(c) {
		return
	}

	windowRegion, _ := m.moveBuffer.WindowRegion()
	gripPos, _ := m.moveBuffer.GripPos()

	region := c.FreeRegion()
	region.Pos = windowRegion.Pos.Add(gripPos.Dist(pos))

	c.SetRegion(zone.PlaceFree, region)
	m.replaceFree(c, zone.FreePlacementRegion())
}

// StartResizing begins a pointer-driven resize of window, gripping the
// corner nearest the pointer.
func (m *Model) StartResizing(window winsys.Window) {
	if m.moveBuffer.IsOccupied() || m.resizeBuffer.IsOccupied() {
		return
	}

	if c, ok := m.client(window); ok {
		pos := m.conn.GetPointerPosition()

		m.resizeBuffer.Set(
			c.Window(),
			winsys.CornerGrip(c.FreeRegion().NearestCorner(pos)),
			pos,
			c.FreeRegion(),
		)

		m.conn.ConfinePointer(m.resizeBuffer.Handle())
	}
}

// StopResizing ends an in-progress pointer-driven resize.
func (m *Model) StopResizing() {
	if m.resizeBuffer.IsOccupied() {
		m.conn.ReleasePointer()
		m.resizeBuffer.Unset()
	}
}

func (m *Model) handleResize(pos geometry.Pos) {
	if !m.resizeBuffer.IsOccupied() {
		return
	}

	window, _ := m.resizeBuffer.Window()
	c, ok := m.client(window)
	if !ok || !m.isFree(c) {
		return
	}

	region := c.FreeRegion().WithoutExtents(c.FrameExtents())

	windowRegion, _ := m.resizeBuffer.WindowRegion()
	grip, _ := m.resizeBuffer.Grip()
	gripPos, _ := m.resizeBuffer.GripPos()

	topGrip := grip.IsTopGrip()
	leftGrip := grip.IsLeftGrip()
	delta := gripPos.Dist(pos)

	destW := windowRegion.Dim.W + delta.DX
	if leftGrip {
		destW = windowRegion.Dim.W - delta.DX
	}

	destH := windowRegion.Dim.H + delta.DY
	if topGrip {
		destH = windowRegion.Dim.H - delta.DY
	}

	region.Dim.W = max(0, destW)
	region.Dim.H = max(0, destH)

	if hints := c.SizeHints(); hints != nil {
		hints.Apply(&region.Dim)
	}

	region = region.WithExtents(c.FrameExtents())

	if topGrip {
		region.Pos.Y = windowRegion.Pos.Y + (windowRegion.Dim.H - region.Dim.H)
	}
	if leftGrip {
		region.Pos.X = windowRegion.Pos.X + (windowRegion.Dim.W - region.Dim.W)
	}

	if region == c.PreviousRegion() {
		return
	}

	m.replaceFree(c, zone.NewPlacementRegion(region))
}
