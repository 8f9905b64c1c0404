package x11

import (
	"github.com/BurntSushi/xgb/res"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/winsys"
)

func (c *Connection) CreateFrame(region geometry.Region) winsys.Window {
	id, err := c.conn.NewId()
	if err != nil {
		c.log.Error("allocating frame window", "error", err)
		return 0
	}
	frame := xproto.Window(id)

	xproto.CreateWindow(c.conn, xproto.WindowClassCopyFromParent, frame, c.root,
		int16(region.Pos.X), int16(region.Pos.Y),
		uint16(region.Dim.W), uint16(region.Dim.H),
		0, xproto.WindowClassInputOutput, xproto.WindowNone,
		xproto.CwBackingStore|xproto.CwEventMask,
		[]uint32{
			xproto.BackingStoreAlways,
			xproto.EventMaskExposure | xproto.EventMaskKeyPress,
		})

	c.conn.Sync()
	return winsys.Window(frame)
}

func (c *Connection) CreateHandle() winsys.Window {
	id, err := c.conn.NewId()
	if err != nil {
		c.log.Error("allocating handle window", "error", err)
		return 0
	}
	handle := xproto.Window(id)

	xproto.CreateWindow(c.conn, xproto.WindowClassCopyFromParent, handle, c.root,
		-2, -2, 1, 1, 0, xproto.WindowClassInputOnly, xproto.WindowNone,
		xproto.CwOverrideRedirect, []uint32{1})

	c.conn.Sync()
	return winsys.Window(handle)
}

func (c *Connection) InitWindow(window winsys.Window, focusFollowsMouse bool) {
	mask := uint32(windowEventMask)
	if focusFollowsMouse {
		mask |= xproto.EventMaskEnterWindow
	}
	xproto.ChangeWindowAttributes(c.conn, xproto.Window(window),
		xproto.CwEventMask, []uint32{mask})
}

func (c *Connection) InitFrame(window winsys.Window, focusFollowsMouse bool) {
	mask := uint32(frameEventMask)
	if focusFollowsMouse {
		mask |= xproto.EventMaskEnterWindow
	}
	xproto.ChangeWindowAttributes(c.conn, xproto.Window(window),
		xproto.CwEventMask, []uint32{mask})
}

func (c *Connection) InitUnmanaged(window winsys.Window) {
	xproto.ChangeWindowAttributes(c.conn, xproto.Window(window),
		xproto.CwEventMask, []uint32{xproto.EventMaskStructureNotify})
}

func (c *Connection) CleanupWindow(window winsys.Window) {
	xproto.DeleteProperty(c.conn, xproto.Window(window), c.atom("_NET_WM_STATE"))
	xproto.DeleteProperty(c.conn, xproto.Window(window), c.atom("_NET_WM_DESKTOP"))
}

func (c *Connection) MapWindow(window winsys.Window) {
	xproto.MapWindow(c.conn, xproto.Window(window))
}

func (c *Connection) UnmapWindow(window winsys.Window) {
	xproto.UnmapWindow(c.conn, xproto.Window(window))
}

func (c *Connection) ReparentWindow(window winsys.Window, parent winsys.Window, pos geometry.Pos) {
	xproto.ReparentWindow(c.conn, xproto.Window(window), xproto.Window(parent),
		int16(pos.X), int16(pos.Y))
}

func (c *Connection) UnparentWindow(window winsys.Window, pos geometry.Pos) {
	xproto.ReparentWindow(c.conn, xproto.Window(window), c.root,
		int16(pos.X), int16(pos.Y))
}

func (c *Connection) DestroyWindow(window winsys.Window) {
	xproto.DestroyWindow(c.conn, xproto.Window(window))
}

func (c *Connection) CloseWindow(window winsys.Window) bool {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(window),
		Type:   c.atom("WM_PROTOCOLS"),
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(c.atom("WM_DELETE_WINDOW")),
			uint32(xproto.TimeCurrentTime),
			0, 0, 0,
		}),
	}

	err := xproto.SendEventChecked(c.conn, false, xproto.Window(window),
		xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
	return err == nil
}

// KillWindow asks the client to close itself when it speaks WM_DELETE_WINDOW
// and severs the connection otherwise.
func (c *Connection) KillWindow(window winsys.Window) bool {
	protocols, err := icccm.WmProtocolsGet(c.xu, xproto.Window(window))
	if err == nil {
		for _, protocol := range protocols {
			if protocol == "WM_DELETE_WINDOW" {
				return c.CloseWindow(window)
			}
		}
	}

	xproto.KillClient(c.conn, uint32(window))
	return true
}

func (c *Connection) PlaceWindow(window winsys.Window, region geometry.Region) {
	xproto.ConfigureWindow(c.conn, xproto.Window(window),
		xproto.ConfigWindowX|xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{
			uint32(region.Pos.X), uint32(region.Pos.Y),
			uint32(region.Dim.W), uint32(region.Dim.H),
		})
}

func (c *Connection) MoveWindow(window winsys.Window, pos geometry.Pos) {
	xproto.ConfigureWindow(c.conn, xproto.Window(window),
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(pos.X), uint32(pos.Y)})
}

func (c *Connection) ResizeWindow(window winsys.Window, dim geometry.Dim) {
	xproto.ConfigureWindow(c.conn, xproto.Window(window),
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(dim.W), uint32(dim.H)})
}

func (c *Connection) FocusWindow(window winsys.Window) {
	xproto.SetInputFocus(c.conn, xproto.InputFocusParent,
		xproto.Window(window), xproto.TimeCurrentTime)
	ewmh.ActiveWindowSet(c.xu, xproto.Window(window))
}

func (c *Connection) Unfocus() {
	xproto.SetInputFocus(c.conn, xproto.InputFocusParent,
		c.check, xproto.TimeCurrentTime)
	xproto.DeleteProperty(c.conn, c.root, c.atom("_NET_ACTIVE_WINDOW"))
}

func (c *Connection) StackWindowAbove(window winsys.Window, sibling winsys.Window) {
	xproto.ConfigureWindow(c.conn, xproto.Window(window),
		xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
		[]uint32{uint32(sibling), xproto.StackModeAbove})
}

func (c *Connection) StackWindowBelow(window winsys.Window, sibling winsys.Window) {
	xproto.ConfigureWindow(c.conn, xproto.Window(window),
		xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
		[]uint32{uint32(sibling), xproto.StackModeBelow})
}

func (c *Connection) InsertWindowInSaveSet(window winsys.Window) {
	xproto.ChangeSaveSet(c.conn, xproto.SetModeInsert, xproto.Window(window))
}

func (c *Connection) SetWindowBorderWidth(window winsys.Window, width uint) {
	xproto.ConfigureWindow(c.conn, xproto.Window(window),
		xproto.ConfigWindowBorderWidth, []uint32{uint32(width)})
}

func (c *Connection) SetWindowBorderColor(window winsys.Window, color uint32) {
	xproto.ChangeWindowAttributes(c.conn, xproto.Window(window),
		xproto.CwBorderPixel, []uint32{color})
}

func (c *Connection) SetWindowBackgroundColor(window winsys.Window, color uint32) {
	geom, err := c.GetWindowGeometry(window)
	if err != nil {
		return
	}

	xproto.ChangeGC(c.conn, c.gc, xproto.GcForeground, []uint32{color})
	xproto.PolyFillRectangle(c.conn, xproto.Drawable(window), c.gc,
		[]xproto.Rectangle{{
			X: 0, Y: 0,
			Width:  uint16(geom.Dim.W),
			Height: uint16(geom.Dim.H),
		}})
}

// UpdateWindowOffset tells a reparented client where it sits in root
// coordinates, via a synthetic ConfigureNotify.
func (c *Connection) UpdateWindowOffset(window winsys.Window, frame winsys.Window) {
	frameGeom, err := c.GetWindowGeometry(frame)
	if err != nil {
		return
	}
	windowGeom, err := c.GetWindowGeometry(window)
	if err != nil {
		return
	}

	ev := xproto.ConfigureNotifyEvent{
		Event:        xproto.Window(window),
		Window:       xproto.Window(window),
		AboveSibling: xproto.WindowNone,
		X:            int16(frameGeom.Pos.X + windowGeom.Pos.X),
		Y:            int16(frameGeom.Pos.Y + windowGeom.Pos.Y),
		Width:        uint16(windowGeom.Dim.W),
		Height:       uint16(windowGeom.Dim.H),
	}

	xproto.SendEvent(c.conn, false, xproto.Window(window),
		xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

func (c *Connection) GetFocusedWindow() winsys.Window {
	focus, err := xproto.GetInputFocus(c.conn).Reply()
	if err != nil {
		return 0
	}
	return winsys.Window(focus.Focus)
}

func (c *Connection) GetWindowGeometry(window winsys.Window) (geometry.Region, error) {
	geom, err := xproto.GetGeometry(c.conn, xproto.Drawable(window)).Reply()
	if err != nil {
		return geometry.Region{}, err
	}
	return geometry.NewRegion(int(geom.X), int(geom.Y), int(geom.Width), int(geom.Height)), nil
}

func (c *Connection) GetWindowPid(window winsys.Window) (winsys.Pid, bool) {
	if c.hasXres {
		specs := []res.ClientIdSpec{{
			Client: uint32(window),
			Mask:   res.ClientIdMaskLocalClientPID,
		}}
		reply, err := res.QueryClientIds(c.conn, uint32(len(specs)), specs).Reply()
		if err == nil {
			for _, id := range reply.Ids {
				if len(id.Value) > 0 && id.Value[0] != 0 {
					return winsys.Pid(id.Value[0]), true
				}
			}
		}
	}

	pid, err := ewmh.WmPidGet(c.xu, xproto.Window(window))
	if err != nil || pid == 0 {
		return 0, false
	}
	return winsys.Pid(pid), true
}

func (c *Connection) MustManageWindow(window winsys.Window) bool {
	attrs, err := xproto.GetWindowAttributes(c.conn, xproto.Window(window)).Reply()
	if err != nil || attrs.OverrideRedirect ||
		attrs.Class == xproto.WindowClassInputOnly {
		return false
	}

	for _, windowType := range c.GetWindowTypes(window) {
		if windowType == winsys.WindowTypeDock || windowType == winsys.WindowTypeToolbar {
			return false
		}
	}
	return true
}

// MustFreeWindow reports whether a window belongs outside tiled layouts:
// dialogs and splashes, modal windows, windows pinned to all desktops, and
// windows whose size hints forbid resizing.
func (c *Connection) MustFreeWindow(window winsys.Window) bool {
	for _, windowType := range c.GetWindowTypes(window) {
		switch windowType {
		case winsys.WindowTypeDialog, winsys.WindowTypeUtility,
			winsys.WindowTypeToolbar, winsys.WindowTypeSplash:
			return true
		}
	}

	for _, state := range c.GetWindowStates(window) {
		if state == winsys.StateModal {
			return true
		}
	}

	if desktop, err := ewmh.WmDesktopGet(c.xu, xproto.Window(window)); err == nil &&
		desktop == 0xFFFFFFFF {
		return true
	}

	if hints, err := icccm.WmNormalHintsGet(c.xu, xproto.Window(window)); err == nil {
		fixed := hints.Flags&icccm.SizeHintPMinSize != 0 &&
			hints.Flags&icccm.SizeHintPMaxSize != 0 &&
			hints.MinWidth > 0 && hints.MinHeight > 0 &&
			hints.MinWidth == hints.MaxWidth &&
			hints.MinHeight == hints.MaxHeight
		if fixed {
			return true
		}
	}

	return false
}

func (c *Connection) WindowIsMappable(window winsys.Window) bool {
	attrs, err := xproto.GetWindowAttributes(c.conn, xproto.Window(window)).Reply()
	if err != nil || attrs.Class == xproto.WindowClassInputOnly {
		return false
	}

	for _, state := range c.GetWindowStates(window) {
		if state == winsys.StateHidden {
			return false
		}
	}

	if hints, ok := c.GetIcccmWindowHints(window); ok && hints.HasInitialState {
		return hints.InitialState == winsys.IcccmNormal
	}
	return true
}
