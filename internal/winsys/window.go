package winsys

import (
	"github.com/deurzen/wzrd/internal/cycle"
)

// Window is an X window identifier.
type Window uint32

// ID satisfies cycle.Identify so windows can be tracked in cycles.
func (w Window) ID() cycle.Ident {
	return cycle.Ident(w)
}

// Pid is an operating system process identifier.
type Pid = uint32

// WindowType is the EWMH _NET_WM_WINDOW_TYPE of a window.
type WindowType int

const (
	WindowTypeDesktop WindowType = iota
	WindowTypeDock
	WindowTypeToolbar
	WindowTypeMenu
	WindowTypeUtility
	WindowTypeSplash
	WindowTypeDialog
	WindowTypeDropdownMenu
	WindowTypePopupMenu
	WindowTypeTooltip
	WindowTypeNotification
	WindowTypeCombo
	WindowTypeDnd
	WindowTypeNormal
)

// IcccmWindowState is the ICCCM WM_STATE of a client window.
type IcccmWindowState int

const (
	IcccmWithdrawn IcccmWindowState = iota
	IcccmNormal
	IcccmIconic
)
