package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/winsys"
)

var windowStateNames = map[winsys.WindowState]string{
	winsys.StateModal:            "_NET_WM_STATE_MODAL",
	winsys.StateSticky:           "_NET_WM_STATE_STICKY",
	winsys.StateMaximizedVert:    "_NET_WM_STATE_MAXIMIZED_VERT",
	winsys.StateMaximizedHorz:    "_NET_WM_STATE_MAXIMIZED_HORZ",
	winsys.StateShaded:           "_NET_WM_STATE_SHADED",
	winsys.StateSkipTaskbar:      "_NET_WM_STATE_SKIP_TASKBAR",
	winsys.StateSkipPager:        "_NET_WM_STATE_SKIP_PAGER",
	winsys.StateHidden:           "_NET_WM_STATE_HIDDEN",
	winsys.StateFullscreen:       "_NET_WM_STATE_FULLSCREEN",
	winsys.StateAbove:            "_NET_WM_STATE_ABOVE",
	winsys.StateBelow:            "_NET_WM_STATE_BELOW",
	winsys.StateDemandsAttention: "_NET_WM_STATE_DEMANDS_ATTENTION",
}

var windowTypeNames = map[winsys.WindowType]string{
	winsys.WindowTypeDesktop:      "_NET_WM_WINDOW_TYPE_DESKTOP",
	winsys.WindowTypeDock:         "_NET_WM_WINDOW_TYPE_DOCK",
	winsys.WindowTypeToolbar:      "_NET_WM_WINDOW_TYPE_TOOLBAR",
	winsys.WindowTypeMenu:         "_NET_WM_WINDOW_TYPE_MENU",
	winsys.WindowTypeUtility:      "_NET_WM_WINDOW_TYPE_UTILITY",
	winsys.WindowTypeSplash:       "_NET_WM_WINDOW_TYPE_SPLASH",
	winsys.WindowTypeDialog:       "_NET_WM_WINDOW_TYPE_DIALOG",
	winsys.WindowTypeDropdownMenu: "_NET_WM_WINDOW_TYPE_DROPDOWN_MENU",
	winsys.WindowTypePopupMenu:    "_NET_WM_WINDOW_TYPE_POPUP_MENU",
	winsys.WindowTypeTooltip:      "_NET_WM_WINDOW_TYPE_TOOLTIP",
	winsys.WindowTypeNotification: "_NET_WM_WINDOW_TYPE_NOTIFICATION",
	winsys.WindowTypeCombo:        "_NET_WM_WINDOW_TYPE_COMBO",
	winsys.WindowTypeDnd:          "_NET_WM_WINDOW_TYPE_DND",
	winsys.WindowTypeNormal:       "_NET_WM_WINDOW_TYPE_NORMAL",
}

var windowStateFromName = invert(windowStateNames)
var windowTypeFromName = invert(windowTypeNames)

func invert[K comparable, V comparable](m map[K]V) map[V]K {
	inverted := make(map[V]K, len(m))
	for k, v := range m {
		inverted[v] = k
	}
	return inverted
}

func (c *Connection) windowState(atom xproto.Atom) (winsys.WindowState, bool) {
	name, err := xprop.AtomName(c.xu, atom)
	if err != nil {
		return 0, false
	}
	state, ok := windowStateFromName[name]
	return state, ok
}

// supportedAtoms is advertised through _NET_SUPPORTED.
var supportedAtoms = []string{
	"_NET_ACTIVE_WINDOW",
	"_NET_CLIENT_LIST",
	"_NET_CLIENT_LIST_STACKING",
	"_NET_CLOSE_WINDOW",
	"_NET_CURRENT_DESKTOP",
	"_NET_DESKTOP_NAMES",
	"_NET_DESKTOP_GEOMETRY",
	"_NET_DESKTOP_VIEWPORT",
	"_NET_FRAME_EXTENTS",
	"_NET_MOVERESIZE_WINDOW",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_REQUEST_FRAME_EXTENTS",
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_DESKTOP",
	"_NET_WM_MOVERESIZE",
	"_NET_WM_NAME",
	"_NET_WM_PID",
	"_NET_WM_STATE",
	"_NET_WM_STATE_DEMANDS_ATTENTION",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_WM_STATE_HIDDEN",
	"_NET_WM_STATE_STICKY",
	"_NET_WM_STRUT",
	"_NET_WM_STRUT_PARTIAL",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WORKAREA",
}

func (c *Connection) InitWmProperties(wmName string, desktopNames []string) {
	class := append([]byte(wmName+"\x00"), []byte(wmName+"\x00")...)

	for _, window := range []xproto.Window{c.check, c.root} {
		ewmh.WmNameSet(c.xu, window, wmName)
		xprop.ChangeProp(c.xu, window, 8, "WM_CLASS", "STRING", class)
		xprop.ChangeProp32(c.xu, window, "_NET_WM_PID", "CARDINAL", uint(c.pid()))
		xprop.ChangeProp32(c.xu, window, "_NET_SUPPORTING_WM_CHECK", "WINDOW", uint(c.check))
	}

	ewmh.SupportedSet(c.xu, supportedAtoms)
	xproto.DeleteProperty(c.conn, c.root, c.atom("_NET_CLIENT_LIST"))

	c.UpdateDesktops(desktopNames)
}

func (c *Connection) SetCurrentDesktop(index int) {
	ewmh.CurrentDesktopSet(c.xu, uint(index))
}

func (c *Connection) SetRootWindowName(name string) {
	ewmh.WmNameSet(c.xu, c.root, name)
}

func (c *Connection) SetWindowDesktop(window winsys.Window, index int) {
	ewmh.WmDesktopSet(c.xu, xproto.Window(window), uint(index))
}

func (c *Connection) SetWindowFullscreen(window winsys.Window, on bool) {
	c.SetWindowState(window, winsys.StateFullscreen, on)
}

func (c *Connection) SetWindowAbove(window winsys.Window, on bool) {
	c.SetWindowState(window, winsys.StateAbove, on)
}

func (c *Connection) SetWindowBelow(window winsys.Window, on bool) {
	c.SetWindowState(window, winsys.StateBelow, on)
}

func (c *Connection) SetWindowState(window winsys.Window, state winsys.WindowState, on bool) {
	name, ok := windowStateNames[state]
	if !ok {
		return
	}

	current, _ := ewmh.WmStateGet(c.xu, xproto.Window(window))

	states := make([]string, 0, len(current)+1)
	for _, s := range current {
		if s != name {
			states = append(states, s)
		}
	}
	if on {
		states = append(states, name)
	}

	ewmh.WmStateSet(c.xu, xproto.Window(window), states)
}

func (c *Connection) SetWindowFrameExtents(window winsys.Window, extents geometry.Extents) {
	ewmh.FrameExtentsSet(c.xu, xproto.Window(window), &ewmh.FrameExtents{
		Left:   extents.Left,
		Right:  extents.Right,
		Top:    extents.Top,
		Bottom: extents.Bottom,
	})
}

func regionQuads(regions []geometry.Region) []uint {
	quads := make([]uint, 0, 4*len(regions))
	for _, region := range regions {
		quads = append(quads,
			uint(uint32(int32(region.Pos.X))),
			uint(uint32(int32(region.Pos.Y))),
			uint(region.Dim.W),
			uint(region.Dim.H))
	}
	return quads
}

func (c *Connection) SetDesktopGeometry(geometries []geometry.Region) {
	xprop.ChangeProp32(c.xu, c.root, "_NET_DESKTOP_GEOMETRY", "CARDINAL",
		regionQuads(geometries)...)
}

func (c *Connection) SetDesktopViewport(viewports []geometry.Region) {
	xprop.ChangeProp32(c.xu, c.root, "_NET_DESKTOP_VIEWPORT", "CARDINAL",
		regionQuads(viewports)...)
}

func (c *Connection) SetWorkarea(workareas []geometry.Region) {
	xprop.ChangeProp32(c.xu, c.root, "_NET_WORKAREA", "CARDINAL",
		regionQuads(workareas)...)
}

func (c *Connection) UpdateDesktops(desktopNames []string) {
	ewmh.NumberOfDesktopsSet(c.xu, uint(len(desktopNames)))
	ewmh.DesktopNamesSet(c.xu, desktopNames)
}

func (c *Connection) UpdateClientList(clients []winsys.Window) {
	ewmh.ClientListSet(c.xu, clientWindows(clients))
}

func (c *Connection) UpdateClientListStacking(clients []winsys.Window) {
	ewmh.ClientListStackingSet(c.xu, clientWindows(clients))
}

func clientWindows(clients []winsys.Window) []xproto.Window {
	windows := make([]xproto.Window, len(clients))
	for i, client := range clients {
		windows[i] = xproto.Window(client)
	}
	return windows
}

func (c *Connection) GetWindowStrut(window winsys.Window) ([4]*winsys.Strut, bool) {
	if struts, ok := c.GetWindowStrutPartial(window); ok {
		return struts, true
	}
	return c.windowStrut(window, "_NET_WM_STRUT")
}

func (c *Connection) GetWindowStrutPartial(window winsys.Window) ([4]*winsys.Strut, bool) {
	return c.windowStrut(window, "_NET_WM_STRUT_PARTIAL")
}

// windowStrut reads the first four values of a strut property, in left,
// right, top, bottom order. Zero-width reservations yield nil entries.
func (c *Connection) windowStrut(window winsys.Window, property string) ([4]*winsys.Strut, bool) {
	var struts [4]*winsys.Strut

	nums, err := xprop.PropValNums(
		xprop.GetProperty(c.xu, xproto.Window(window), property))
	if err != nil || len(nums) < 4 {
		return struts, false
	}

	any := false
	for i := 0; i < 4; i++ {
		if nums[i] != 0 {
			struts[i] = &winsys.Strut{Window: window, Width: nums[i]}
			any = true
		}
	}
	return struts, any
}

func (c *Connection) GetWindowDesktop(window winsys.Window) (int, bool) {
	desktop, err := ewmh.WmDesktopGet(c.xu, xproto.Window(window))
	if err != nil {
		return 0, false
	}
	return int(int32(desktop)), true
}

func (c *Connection) GetWindowPreferredType(window winsys.Window) winsys.WindowType {
	types := c.GetWindowTypes(window)
	if len(types) == 0 {
		return winsys.WindowTypeNormal
	}
	return types[0]
}

func (c *Connection) GetWindowTypes(window winsys.Window) []winsys.WindowType {
	names, err := ewmh.WmWindowTypeGet(c.xu, xproto.Window(window))
	if err != nil {
		return nil
	}

	types := make([]winsys.WindowType, 0, len(names))
	for _, name := range names {
		if windowType, ok := windowTypeFromName[name]; ok {
			types = append(types, windowType)
		}
	}
	return types
}

func (c *Connection) GetWindowPreferredState(window winsys.Window) (winsys.WindowState, bool) {
	states := c.GetWindowStates(window)
	if len(states) == 0 {
		return 0, false
	}
	return states[0], true
}

func (c *Connection) GetWindowStates(window winsys.Window) []winsys.WindowState {
	names, err := ewmh.WmStateGet(c.xu, xproto.Window(window))
	if err != nil {
		return nil
	}

	states := make([]winsys.WindowState, 0, len(names))
	for _, name := range names {
		if state, ok := windowStateFromName[name]; ok {
			states = append(states, state)
		}
	}
	return states
}

func (c *Connection) hasState(window winsys.Window, target winsys.WindowState) bool {
	for _, state := range c.GetWindowStates(window) {
		if state == target {
			return true
		}
	}
	return false
}

func (c *Connection) WindowIsFullscreen(window winsys.Window) bool {
	return c.hasState(window, winsys.StateFullscreen)
}

func (c *Connection) WindowIsAbove(window winsys.Window) bool {
	return c.hasState(window, winsys.StateAbove)
}

func (c *Connection) WindowIsBelow(window winsys.Window) bool {
	return c.hasState(window, winsys.StateBelow)
}

func (c *Connection) WindowIsSticky(window winsys.Window) bool {
	if c.hasState(window, winsys.StateSticky) {
		return true
	}

	desktop, err := ewmh.WmDesktopGet(c.xu, xproto.Window(window))
	return err == nil && desktop == 0xFFFFFFFF
}
