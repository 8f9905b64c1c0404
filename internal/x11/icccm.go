package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/winsys"
)

// unknownName is reported for windows that set no readable name or class.
const unknownName = "n/a"

func (c *Connection) SetIcccmWindowState(window winsys.Window, state winsys.IcccmWindowState) {
	value := icccm.StateWithdrawn
	switch state {
	case winsys.IcccmNormal:
		value = icccm.StateNormal
	case winsys.IcccmIconic:
		value = icccm.StateIconic
	}

	icccm.WmStateSet(c.xu, xproto.Window(window), &icccm.WmState{State: uint(value)})
}

func (c *Connection) SetIcccmWindowHints(window winsys.Window, hints winsys.Hints) {
	wmHints := icccm.Hints{}

	if hints.Urgent {
		wmHints.Flags |= icccm.HintUrgency
	}
	if hints.HasInput {
		wmHints.Flags |= icccm.HintInput
		if hints.Input {
			wmHints.Input = 1
		}
	}
	if hints.HasInitialState {
		wmHints.Flags |= icccm.HintState
		switch hints.InitialState {
		case winsys.IcccmNormal:
			wmHints.InitialState = icccm.StateNormal
		case winsys.IcccmIconic:
			wmHints.InitialState = icccm.StateIconic
		}
	}
	if hints.HasGroup {
		wmHints.Flags |= icccm.HintWindowGroup
		wmHints.WindowGroup = xproto.Window(hints.Group)
	}

	icccm.WmHintsSet(c.xu, xproto.Window(window), &wmHints)
}

func (c *Connection) GetIcccmWindowName(window winsys.Window) string {
	if name, err := ewmh.WmNameGet(c.xu, xproto.Window(window)); err == nil && name != "" {
		return name
	}
	if name, err := icccm.WmNameGet(c.xu, xproto.Window(window)); err == nil && name != "" {
		return name
	}
	return unknownName
}

func (c *Connection) GetIcccmWindowClass(window winsys.Window) string {
	class, err := icccm.WmClassGet(c.xu, xproto.Window(window))
	if err != nil || class.Class == "" {
		return unknownName
	}
	return class.Class
}

func (c *Connection) GetIcccmWindowInstance(window winsys.Window) string {
	class, err := icccm.WmClassGet(c.xu, xproto.Window(window))
	if err != nil || class.Instance == "" {
		return unknownName
	}
	return class.Instance
}

func (c *Connection) GetIcccmWindowTransientFor(window winsys.Window) (winsys.Window, bool) {
	parent, err := icccm.WmTransientForGet(c.xu, xproto.Window(window))
	if err != nil || parent == xproto.WindowNone {
		return 0, false
	}
	return winsys.Window(parent), true
}

func (c *Connection) GetIcccmWindowClientLeader(window winsys.Window) (winsys.Window, bool) {
	leader, err := xprop.PropValWindow(
		xprop.GetProperty(c.xu, xproto.Window(window), "WM_CLIENT_LEADER"))
	if err != nil || leader == xproto.WindowNone {
		return 0, false
	}
	return winsys.Window(leader), true
}

func (c *Connection) GetIcccmWindowHints(window winsys.Window) (winsys.Hints, bool) {
	wmHints, err := icccm.WmHintsGet(c.xu, xproto.Window(window))
	if err != nil {
		return winsys.Hints{}, false
	}

	hints := winsys.Hints{
		Urgent:          wmHints.Flags&icccm.HintUrgency != 0,
		HasInput:        wmHints.Flags&icccm.HintInput != 0,
		HasInitialState: wmHints.Flags&icccm.HintState != 0,
		HasGroup:        wmHints.Flags&icccm.HintWindowGroup != 0,
	}
	if hints.HasInput {
		hints.Input = wmHints.Input != 0
	}
	if hints.HasInitialState {
		switch wmHints.InitialState {
		case icccm.StateNormal:
			hints.InitialState = winsys.IcccmNormal
		case icccm.StateIconic:
			hints.InitialState = winsys.IcccmIconic
		default:
			hints.InitialState = winsys.IcccmWithdrawn
		}
	}
	if hints.HasGroup {
		hints.Group = winsys.Window(wmHints.WindowGroup)
	}

	return hints, true
}

// GetIcccmWindowSizeHints normalizes a window's WM_NORMAL_HINTS: the minimum
// and base dimensions substitute for each other when only one is given, the
// minimum is clamped up to minWindowDim, and degenerate increments and
// aspect ratios are discarded. The bool reports whether the result matches
// current.
func (c *Connection) GetIcccmWindowSizeHints(window winsys.Window,
	minWindowDim *geometry.Dim, current *geometry.SizeHints) (bool, *geometry.SizeHints) {

	normal, err := icccm.WmNormalHintsGet(c.xu, xproto.Window(window))
	if err != nil {
		return current == nil, nil
	}

	hints := &geometry.SizeHints{
		ByUser: normal.Flags&icccm.SizeHintUSPosition != 0,
	}

	if normal.Flags&(icccm.SizeHintUSPosition|icccm.SizeHintPPosition) != 0 {
		pos := geometry.Pos{X: int(normal.X), Y: int(normal.Y)}
		if !pos.IsOrigin() {
			hints.Pos = &pos
		}
	}

	minW, minH := 0, 0
	if normal.Flags&icccm.SizeHintPMinSize != 0 {
		minW, minH = int(normal.MinWidth), int(normal.MinHeight)
	} else if normal.Flags&icccm.SizeHintPBaseSize != 0 {
		minW, minH = int(normal.BaseWidth), int(normal.BaseHeight)
	}

	baseW, baseH := minW, minH
	if normal.Flags&icccm.SizeHintPBaseSize != 0 {
		baseW, baseH = int(normal.BaseWidth), int(normal.BaseHeight)
	}

	if minWindowDim != nil {
		if minW < minWindowDim.W {
			minW = minWindowDim.W
		}
		if minH < minWindowDim.H {
			minH = minWindowDim.H
		}
	}
	hints.MinWidth = minW
	hints.MinHeight = minH
	hints.BaseWidth = baseW
	hints.BaseHeight = baseH

	if normal.Flags&icccm.SizeHintPMaxSize != 0 {
		if int(normal.MaxWidth) >= minW {
			hints.MaxWidth = int(normal.MaxWidth)
		}
		if int(normal.MaxHeight) >= minH {
			hints.MaxHeight = int(normal.MaxHeight)
		}
	}

	if normal.Flags&icccm.SizeHintPResizeInc != 0 {
		if normal.WidthInc > 0 && normal.WidthInc < 0xFFFF {
			hints.IncWidth = int(normal.WidthInc)
		}
		if normal.HeightInc > 0 && normal.HeightInc < 0xFFFF {
			hints.IncHeight = int(normal.HeightInc)
		}
	}

	if normal.Flags&icccm.SizeHintPAspect != 0 {
		if normal.MinAspectDen > 0 {
			hints.MinRatio = float64(normal.MinAspectNum) / float64(normal.MinAspectDen)
			hints.MinRatioVulgar = geometry.Ratio{
				Numerator:   int(normal.MinAspectNum),
				Denominator: int(normal.MinAspectDen),
			}
		}
		if normal.MaxAspectDen > 0 {
			hints.MaxRatio = float64(normal.MaxAspectNum) / float64(normal.MaxAspectDen)
			hints.MaxRatioVulgar = geometry.Ratio{
				Numerator:   int(normal.MaxAspectNum),
				Denominator: int(normal.MaxAspectDen),
			}
		}
	}

	return sizeHintsEqual(hints, current), hints
}

func sizeHintsEqual(a, b *geometry.SizeHints) bool {
	if a == nil || b == nil {
		return a == b
	}
	if (a.Pos == nil) != (b.Pos == nil) {
		return false
	}
	if a.Pos != nil && *a.Pos != *b.Pos {
		return false
	}

	return a.ByUser == b.ByUser &&
		a.MinWidth == b.MinWidth && a.MinHeight == b.MinHeight &&
		a.MaxWidth == b.MaxWidth && a.MaxHeight == b.MaxHeight &&
		a.BaseWidth == b.BaseWidth && a.BaseHeight == b.BaseHeight &&
		a.IncWidth == b.IncWidth && a.IncHeight == b.IncHeight &&
		a.MinRatio == b.MinRatio && a.MaxRatio == b.MaxRatio
}
