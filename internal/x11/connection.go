// Package x11 implements the winsys.Connection interface on top of the
// X protocol, using xgb for the wire format and xgbutil for the ICCCM
// and EWMH conventions.
package x11

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/res"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/winsys"
)

const (
	rootEventMask = xproto.EventMaskPropertyChange |
		xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskButtonPress |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskFocusChange

	windowEventMask = xproto.EventMaskPropertyChange |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskFocusChange

	frameEventMask = xproto.EventMaskStructureNotify |
		xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion

	mouseEventMask = xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskButtonMotion

	regrabEventMask = xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease
)

// Connection talks to one X display. It owns the substructure redirection
// on the root window, so at most one instance can exist per display.
type Connection struct {
	xu    *xgbutil.XUtil
	conn  *xgb.Conn
	root  xproto.Window
	check xproto.Window
	gc    xproto.Gcontext
	log   *slog.Logger

	confined    xproto.Window
	hasConfined bool
	hasXres     bool
}

var _ winsys.Connection = (*Connection)(nil)

// Connect establishes the display connection and claims window management
// rights on the root window. It fails when another window manager is
// already running.
func Connect(logger *slog.Logger) (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connecting to display: %w", err)
	}

	conn := xu.Conn()
	root := xu.RootWin()

	err = xproto.ChangeWindowAttributesChecked(conn, root,
		xproto.CwEventMask, []uint32{
			xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify,
		}).Check()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("another window manager is running: %w", err)
	}

	keybind.Initialize(xu)

	c := &Connection{
		xu:   xu,
		conn: conn,
		root: root,
		log:  logger,
	}

	if err := randr.Init(conn); err != nil {
		c.log.Warn("randr unavailable, using static screen layout", "error", err)
	}
	if err := res.Init(conn); err == nil {
		c.hasXres = true
	}

	if err := c.createCheckWindow(); err != nil {
		conn.Close()
		return nil, err
	}

	gc, err := conn.NewId()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("allocating graphics context: %w", err)
	}
	c.gc = xproto.Gcontext(gc)
	xproto.CreateGC(conn, c.gc, xproto.Drawable(root), 0, nil)

	if cursor, err := xcursor.CreateCursor(xu, xcursor.LeftPtr); err == nil {
		xproto.ChangeWindowAttributes(conn, root,
			xproto.CwCursor, []uint32{uint32(cursor)})
	}

	conn.Sync()
	return c, nil
}

// createCheckWindow sets up the _NET_SUPPORTING_WM_CHECK window, which
// doubles as the destination for randr change notifications.
func (c *Connection) createCheckWindow() error {
	id, err := c.conn.NewId()
	if err != nil {
		return fmt.Errorf("allocating check window: %w", err)
	}
	c.check = xproto.Window(id)

	xproto.CreateWindow(c.conn, xproto.WindowClassCopyFromParent, c.check, c.root,
		-1, -1, 1, 1, 0, xproto.WindowClassInputOnly, xproto.WindowNone,
		xproto.CwOverrideRedirect, []uint32{1})
	xproto.MapWindow(c.conn, c.check)
	xproto.ConfigureWindow(c.conn, c.check,
		xproto.ConfigWindowStackMode, []uint32{xproto.StackModeBelow})

	randr.SelectInput(c.conn, c.check,
		randr.NotifyMaskOutputChange|randr.NotifyMaskCrtcChange|randr.NotifyMaskScreenChange)

	return nil
}

func (c *Connection) atom(name string) xproto.Atom {
	atom, err := xprop.Atm(c.xu, name)
	if err != nil {
		c.log.Error("interning atom", "name", name, "error", err)
		return xproto.AtomNone
	}
	return atom
}

func (c *Connection) Flush() bool {
	c.conn.Sync()
	return true
}

func (c *Connection) ConnectedOutputs() []*winsys.Screen {
	resources, err := randr.GetScreenResources(c.conn, c.check).Reply()
	if err != nil {
		geom, gerr := xproto.GetGeometry(c.conn, xproto.Drawable(c.root)).Reply()
		if gerr != nil {
			return nil
		}
		region := geometry.NewRegion(int(geom.X), int(geom.Y), int(geom.Width), int(geom.Height))
		return []*winsys.Screen{winsys.NewScreen(region, 0)}
	}

	screens := make([]*winsys.Screen, 0, len(resources.Crtcs))
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.conn, crtc, 0).Reply()
		if err != nil || info.Width == 0 {
			continue
		}
		region := geometry.NewRegion(int(info.X), int(info.Y), int(info.Width), int(info.Height))
		screens = append(screens, winsys.NewScreen(region, i))
	}
	return screens
}

func (c *Connection) TopLevelWindows() []winsys.Window {
	tree, err := xproto.QueryTree(c.conn, c.root).Reply()
	if err != nil {
		return nil
	}

	windows := make([]winsys.Window, 0, len(tree.Children))
	for _, child := range tree.Children {
		window := winsys.Window(child)
		if c.MustManageWindow(window) {
			windows = append(windows, window)
		}
	}
	return windows
}

func (c *Connection) GetPointerPosition() geometry.Pos {
	pointer, err := xproto.QueryPointer(c.conn, c.root).Reply()
	if err != nil {
		return geometry.Pos{}
	}
	return geometry.Pos{X: int(pointer.RootX), Y: int(pointer.RootY)}
}

func (c *Connection) WarpPointerCenterOfWindowOrRoot(window winsys.Window, screen *winsys.Screen) {
	if window != 0 {
		region, err := c.GetWindowGeometry(window)
		if err != nil {
			return
		}
		center := region.Dim.Center()
		xproto.WarpPointer(c.conn, xproto.WindowNone, xproto.Window(window),
			0, 0, 0, 0, int16(center.X), int16(center.Y))
		return
	}

	center := geometry.PosFromCenter(screen.FullRegion())
	xproto.WarpPointer(c.conn, xproto.WindowNone, c.root,
		0, 0, 0, 0, int16(center.X), int16(center.Y))
}

func (c *Connection) WarpPointer(pos geometry.Pos) {
	xproto.WarpPointer(c.conn, xproto.WindowNone, c.root,
		0, 0, 0, 0, int16(pos.X), int16(pos.Y))
}

func (c *Connection) WarpPointerRPos(window winsys.Window, pos geometry.Pos) {
	xproto.WarpPointer(c.conn, xproto.WindowNone, xproto.Window(window),
		0, 0, 0, 0, int16(pos.X), int16(pos.Y))
}

func (c *Connection) ConfinePointer(window winsys.Window) {
	if c.hasConfined {
		return
	}

	reply, err := xproto.GrabPointer(c.conn, false, c.root,
		xproto.EventMaskPointerMotion|xproto.EventMaskButtonRelease,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		c.root, xproto.CursorNone, xproto.TimeCurrentTime).Reply()
	if err != nil || reply.Status != xproto.GrabStatusSuccess {
		return
	}

	xproto.GrabKeyboard(c.conn, false, c.root, xproto.TimeCurrentTime,
		xproto.GrabModeAsync, xproto.GrabModeAsync)

	c.confined = xproto.Window(window)
	c.hasConfined = true
}

func (c *Connection) ReleasePointer() {
	if !c.hasConfined {
		return
	}

	xproto.UngrabPointer(c.conn, xproto.TimeCurrentTime)
	xproto.UngrabKeyboard(c.conn, xproto.TimeCurrentTime)
	c.hasConfined = false
}

func (c *Connection) IsMappingRequest(request uint8) bool {
	return request == xproto.MappingKeyboard || request == xproto.MappingModifier
}

func (c *Connection) GrabBindings(keyCodes []winsys.KeyCode, mouseInputs []winsys.MouseInput) {
	// Grab each binding twice so numlock does not shadow it.
	for _, extra := range []uint16{0, xproto.ModMask2} {
		for _, kc := range keyCodes {
			xproto.GrabKey(c.conn, false, c.root, kc.Mask|extra,
				xproto.Keycode(kc.Code), xproto.GrabModeAsync, xproto.GrabModeAsync)
		}
		for _, input := range mouseInputs {
			xproto.GrabButton(c.conn, false, c.root, mouseEventMask,
				xproto.GrabModeAsync, xproto.GrabModeAsync,
				xproto.WindowNone, xproto.CursorNone,
				buttonDetail(input.Button),
				modifierMask(input.Modifiers)|extra)
		}
	}

	xproto.ChangeWindowAttributes(c.conn, c.root,
		xproto.CwEventMask, []uint32{rootEventMask})
	c.conn.Sync()
}

func (c *Connection) RegrabButtons(window winsys.Window) {
	xproto.GrabButton(c.conn, true, xproto.Window(window), regrabEventMask,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, xproto.CursorNone,
		xproto.ButtonIndexAny, xproto.ModMaskAny)
}

func (c *Connection) UngrabButtons(window winsys.Window) {
	xproto.UngrabButton(c.conn, xproto.ButtonIndexAny,
		xproto.Window(window), xproto.ModMaskAny)
}

// Cleanup releases every grab and root property this connection installed
// so the next window manager starts from a clean slate.
func (c *Connection) Cleanup() {
	xproto.UngrabKey(c.conn, 0, c.root, xproto.ModMaskAny)
	xproto.UngrabButton(c.conn, xproto.ButtonIndexAny, c.root, xproto.ModMaskAny)
	xproto.DestroyWindow(c.conn, c.check)

	for _, name := range []string{
		"_NET_ACTIVE_WINDOW",
		"_NET_SUPPORTING_WM_CHECK",
		"_NET_WM_NAME",
		"WM_CLASS",
		"_NET_SUPPORTED",
		"_NET_WM_PID",
		"_NET_CLIENT_LIST",
	} {
		xproto.DeleteProperty(c.conn, c.root, c.atom(name))
	}

	xproto.SetInputFocus(c.conn, xproto.InputFocusPointerRoot,
		xproto.Window(xproto.InputFocusPointerRoot), xproto.TimeCurrentTime)
	c.conn.Sync()
}

// ResolveKey translates a binding string like "mod4-shift-q" into the
// keycode and modifier mask the server reports for it.
func (c *Connection) ResolveKey(combo string) (winsys.KeyCode, bool) {
	mods, keycodes, err := keybind.ParseString(c.xu, combo)
	if err != nil || len(keycodes) == 0 {
		return winsys.KeyCode{}, false
	}
	return winsys.KeyCode{Mask: mods, Code: uint8(keycodes[0])}, true
}

func (c *Connection) pid() uint32 {
	return uint32(os.Getpid())
}

func buttonDetail(button winsys.Button) byte {
	switch button {
	case winsys.ButtonLeft:
		return xproto.ButtonIndex1
	case winsys.ButtonMiddle:
		return xproto.ButtonIndex2
	case winsys.ButtonRight:
		return xproto.ButtonIndex3
	case winsys.ButtonScrollUp:
		return xproto.ButtonIndex4
	case winsys.ButtonScrollDown:
		return xproto.ButtonIndex5
	case winsys.ButtonBackward:
		return 8
	case winsys.ButtonForward:
		return 9
	}
	return 0
}

func buttonFromDetail(detail byte) (winsys.Button, bool) {
	switch detail {
	case xproto.ButtonIndex1:
		return winsys.ButtonLeft, true
	case xproto.ButtonIndex2:
		return winsys.ButtonMiddle, true
	case xproto.ButtonIndex3:
		return winsys.ButtonRight, true
	case xproto.ButtonIndex4:
		return winsys.ButtonScrollUp, true
	case xproto.ButtonIndex5:
		return winsys.ButtonScrollDown, true
	case 8:
		return winsys.ButtonBackward, true
	case 9:
		return winsys.ButtonForward, true
	}
	return 0, false
}

func modifierMask(modifiers winsys.Modifier) uint16 {
	var mask uint16
	if modifiers&winsys.ModCtrl != 0 {
		mask |= xproto.ModMaskControl
	}
	if modifiers&winsys.ModShift != 0 {
		mask |= xproto.ModMaskShift
	}
	if modifiers&winsys.ModAlt != 0 {
		mask |= xproto.ModMask1
	}
	if modifiers&winsys.ModSuper != 0 {
		mask |= xproto.ModMask4
	}
	if modifiers&winsys.ModAltGr != 0 {
		mask |= xproto.ModMask5
	}
	return mask
}

func modifiersFromState(state uint16) winsys.Modifier {
	var modifiers winsys.Modifier
	if state&xproto.ModMaskControl != 0 {
		modifiers |= winsys.ModCtrl
	}
	if state&xproto.ModMaskShift != 0 {
		modifiers |= winsys.ModShift
	}
	if state&xproto.ModMask1 != 0 {
		modifiers |= winsys.ModAlt
	}
	if state&xproto.ModMask4 != 0 {
		modifiers |= winsys.ModSuper
	}
	if state&xproto.ModMask5 != 0 {
		modifiers |= winsys.ModAltGr
	}
	return modifiers
}
