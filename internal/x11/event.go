package x11

import (
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/winsys"
)

// Poke sends a no-op client message to the check window so a blocked
// WaitForEvent returns and the event loop gets to drain its commands.
// Safe to call from any goroutine.
func (c *Connection) Poke() {
	atom, err := xprop.Atm(c.xu, "_WZRD_POKE")
	if err != nil {
		return
	}

	poke := xproto.ClientMessageEvent{
		Format: 32,
		Window: c.check,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	}
	xproto.SendEvent(c.conn, false, c.check, xproto.EventMaskNoEvent, string(poke.Bytes()))
	c.conn.Sync()
}

// Step blocks for the next protocol event and translates it into manager
// terms. Events with no manager-level meaning yield nil.
func (c *Connection) Step() winsys.Event {
	ev, err := c.conn.WaitForEvent()
	if ev == nil && err == nil {
		return nil
	}
	if err != nil {
		c.log.Debug("protocol error", "error", err)
		return nil
	}

	switch e := ev.(type) {
	case xproto.ButtonPressEvent:
		return c.mouseEvent(winsys.MousePress, byte(e.Detail), e.State, e.Event, e.Child, e.RootX, e.RootY)
	case xproto.ButtonReleaseEvent:
		return c.mouseEvent(winsys.MouseRelease, byte(e.Detail), e.State, e.Event, e.Child, e.RootX, e.RootY)
	case xproto.MotionNotifyEvent:
		return c.mouseEvent(winsys.MouseMotion, byte(e.Detail), e.State, e.Event, e.Child, e.RootX, e.RootY)
	case xproto.KeyPressEvent:
		// Mod2 is numlock, irrelevant to bindings.
		return winsys.KeyInputEvent{
			KeyCode: winsys.KeyCode{
				Mask: e.State &^ xproto.ModMask2,
				Code: uint8(e.Detail),
			},
		}
	case xproto.MapRequestEvent:
		return winsys.MapRequestEvent{
			Window: winsys.Window(e.Window),
			Ignore: !c.MustManageWindow(winsys.Window(e.Window)),
		}
	case xproto.MapNotifyEvent:
		return winsys.MapEvent{
			Window: winsys.Window(e.Window),
			Ignore: !c.MustManageWindow(winsys.Window(e.Window)),
		}
	case xproto.EnterNotifyEvent:
		return winsys.EnterEvent{
			Window:     winsys.Window(e.Event),
			RootRPos:   geometry.Pos{X: int(e.RootX), Y: int(e.RootY)},
			WindowRPos: geometry.Pos{X: int(e.EventX), Y: int(e.EventY)},
		}
	case xproto.LeaveNotifyEvent:
		return winsys.LeaveEvent{
			Window:     winsys.Window(e.Event),
			RootRPos:   geometry.Pos{X: int(e.RootX), Y: int(e.RootY)},
			WindowRPos: geometry.Pos{X: int(e.EventX), Y: int(e.EventY)},
		}
	case xproto.DestroyNotifyEvent:
		return winsys.DestroyEvent{Window: winsys.Window(e.Window)}
	case xproto.ExposeEvent:
		return winsys.ExposeEvent{Window: winsys.Window(e.Window)}
	case xproto.UnmapNotifyEvent:
		return winsys.UnmapEvent{
			Window: winsys.Window(e.Window),
			Ignore: c.isOverrideRedirect(xproto.Window(e.Window)),
		}
	case xproto.ConfigureRequestEvent:
		return c.configureRequestEvent(e)
	case xproto.ConfigureNotifyEvent:
		return winsys.ConfigureEvent{
			Window: winsys.Window(e.Window),
			Region: geometry.NewRegion(int(e.X), int(e.Y), int(e.Width), int(e.Height)),
			OnRoot: e.Window == c.root,
		}
	case xproto.PropertyNotifyEvent:
		return c.propertyEvent(e)
	case xproto.ClientMessageEvent:
		return c.clientMessageEvent(e)
	case xproto.MappingNotifyEvent:
		return winsys.MappingEvent{Request: uint8(e.Request)}
	case randr.ScreenChangeNotifyEvent:
		return winsys.ScreenChangeEvent{}
	case randr.NotifyEvent:
		return winsys.RandrEvent{}
	}

	return nil
}

func (c *Connection) mouseEvent(kind winsys.MouseEventKind,
	detail byte, state uint16, event, child xproto.Window,
	rootX, rootY int16) winsys.Event {

	window := event
	if child != xproto.WindowNone {
		window = child
	}

	input := winsys.MouseInput{Modifiers: modifiersFromState(state &^ xproto.ModMask2)}
	if kind != winsys.MouseMotion {
		button, known := buttonFromDetail(detail)
		if !known {
			return nil
		}
		input.Button = button
	}

	return winsys.MouseInputEvent{
		Event: winsys.MouseEvent{
			Kind:     kind,
			Input:    input,
			Window:   winsys.Window(window),
			OnWindow: window != c.root,
			RootPos:  geometry.Pos{X: int(rootX), Y: int(rootY)},
		},
		OnRoot: event == c.root,
	}
}

func (c *Connection) configureRequestEvent(e xproto.ConfigureRequestEvent) winsys.Event {
	if e.ValueMask&xproto.ConfigWindowStackMode != 0 &&
		e.ValueMask&xproto.ConfigWindowSibling != 0 {

		mode := winsys.StackAbove
		if e.StackMode == xproto.StackModeBelow {
			mode = winsys.StackBelow
		}
		return winsys.RestackRequestEvent{
			Window:  winsys.Window(e.Window),
			Sibling: winsys.Window(e.Sibling),
			Mode:    mode,
			OnRoot:  e.Window == c.root,
		}
	}

	hasPos := e.ValueMask&(xproto.ConfigWindowX|xproto.ConfigWindowY) != 0
	hasDim := e.ValueMask&(xproto.ConfigWindowWidth|xproto.ConfigWindowHeight) != 0
	if !hasPos && !hasDim {
		return nil
	}

	// Halves the request leaves out keep their current geometry.
	var current geometry.Region
	if geom, err := c.GetWindowGeometry(winsys.Window(e.Window)); err == nil {
		current = geom
	}

	pos := current.Pos
	dim := current.Dim
	if e.ValueMask&xproto.ConfigWindowX != 0 {
		pos.X = int(e.X)
	}
	if e.ValueMask&xproto.ConfigWindowY != 0 {
		pos.Y = int(e.Y)
	}
	if e.ValueMask&xproto.ConfigWindowWidth != 0 {
		dim.W = int(e.Width)
	}
	if e.ValueMask&xproto.ConfigWindowHeight != 0 {
		dim.H = int(e.Height)
	}

	return winsys.PlacementRequestEvent{
		Window: winsys.Window(e.Window),
		Pos:    pos,
		Dim:    dim,
		HasPos: hasPos,
		HasDim: hasDim,
		OnRoot: e.Window == c.root,
	}
}

func (c *Connection) propertyEvent(e xproto.PropertyNotifyEvent) winsys.Event {
	onRoot := e.Window == c.root
	window := winsys.Window(e.Window)
	newValue := e.State == xproto.PropertyNewValue

	switch e.Atom {
	case c.atom("WM_NAME"), c.atom("_NET_WM_NAME"):
		if !newValue {
			return nil
		}
		return winsys.PropertyEvent{Window: window, Kind: winsys.PropertyName, OnRoot: onRoot}
	case c.atom("WM_CLASS"):
		if !newValue {
			return nil
		}
		return winsys.PropertyEvent{Window: window, Kind: winsys.PropertyClass, OnRoot: onRoot}
	case c.atom("WM_NORMAL_HINTS"):
		if !newValue {
			return nil
		}
		return winsys.PropertyEvent{Window: window, Kind: winsys.PropertySize, OnRoot: onRoot}
	case c.atom("_NET_WM_STRUT"), c.atom("_NET_WM_STRUT_PARTIAL"):
		return winsys.PropertyEvent{Window: window, Kind: winsys.PropertyStrut, OnRoot: onRoot}
	}

	return nil
}

func (c *Connection) clientMessageEvent(e xproto.ClientMessageEvent) winsys.Event {
	onRoot := e.Window == c.root
	window := winsys.Window(e.Window)

	switch e.Type {
	case c.atom("_NET_WM_STATE"):
		if e.Format != 32 {
			return nil
		}
		data := e.Data.Data32

		var action winsys.ToggleAction
		switch data[0] {
		case 0:
			action = winsys.ActionRemove
		case 1:
			action = winsys.ActionAdd
		case 2:
			action = winsys.ActionToggle
		default:
			return nil
		}

		for _, atom := range []xproto.Atom{xproto.Atom(data[1]), xproto.Atom(data[2])} {
			if state, ok := c.windowState(atom); ok {
				return winsys.StateRequestEvent{
					Window: window,
					State:  state,
					Action: action,
					OnRoot: onRoot,
				}
			}
		}
		return nil

	case c.atom("_NET_MOVERESIZE_WINDOW"):
		if e.Format != 32 {
			return nil
		}
		data := e.Data.Data32
		return winsys.PlacementRequestEvent{
			Window: window,
			Pos:    geometry.Pos{X: int(int32(data[1])), Y: int(int32(data[2]))},
			Dim:    geometry.Dim{W: int(data[3]), H: int(data[4])},
			HasPos: true,
			HasDim: true,
			OnRoot: onRoot,
		}

	case c.atom("_NET_WM_MOVERESIZE"):
		if e.Format != 32 {
			return nil
		}
		data := e.Data.Data32
		grip, hasGrip := moveresizeGrip(data[2])
		return winsys.GripRequestEvent{
			Window:  window,
			Pos:     geometry.Pos{X: int(int32(data[0])), Y: int(int32(data[1]))},
			Grip:    grip,
			HasGrip: hasGrip,
			OnRoot:  onRoot,
		}

	case c.atom("_NET_REQUEST_FRAME_EXTENTS"):
		return winsys.FrameExtentsRequestEvent{Window: window, OnRoot: onRoot}

	case c.atom("_NET_CURRENT_DESKTOP"):
		if e.Format != 32 {
			return nil
		}
		return winsys.WorkspaceRequestEvent{
			Window: 0,
			Index:  int(e.Data.Data32[0]),
			OnRoot: true,
		}

	case c.atom("_NET_CLOSE_WINDOW"):
		return winsys.CloseRequestEvent{Window: window, OnRoot: onRoot}

	case c.atom("_NET_ACTIVE_WINDOW"):
		if e.Format != 32 || e.Data.Data32[0] > 2 {
			return nil
		}
		return winsys.FocusRequestEvent{Window: window, OnRoot: onRoot}
	}

	return nil
}

// moveresizeGrip maps a _NET_WM_MOVERESIZE direction to a resize grip.
// Direction 8 is a plain move and carries no grip.
func moveresizeGrip(direction uint32) (winsys.Grip, bool) {
	switch direction {
	case 0:
		return winsys.CornerGrip(geometry.CornerTopLeft), true
	case 1:
		return winsys.EdgeGrip(geometry.EdgeTop), true
	case 2:
		return winsys.CornerGrip(geometry.CornerTopRight), true
	case 3:
		return winsys.EdgeGrip(geometry.EdgeRight), true
	case 4:
		return winsys.CornerGrip(geometry.CornerBottomRight), true
	case 5:
		return winsys.EdgeGrip(geometry.EdgeBottom), true
	case 6:
		return winsys.CornerGrip(geometry.CornerBottomLeft), true
	case 7:
		return winsys.EdgeGrip(geometry.EdgeLeft), true
	}
	return winsys.Grip{}, false
}

func (c *Connection) isOverrideRedirect(window xproto.Window) bool {
	attrs, err := xproto.GetWindowAttributes(c.conn, window).Reply()
	return err == nil && attrs.OverrideRedirect
}
