package winsys

// WindowState is an EWMH _NET_WM_STATE value.
type WindowState int

const (
	StateModal WindowState = iota
	StateSticky
	StateMaximizedVert
	StateMaximizedHorz
	StateShaded
	StateSkipTaskbar
	StateSkipPager
	StateHidden
	StateFullscreen
	StateAbove
	StateBelow
	StateDemandsAttention
)

// Hints carries the ICCCM WM_HINTS fields relevant to window management.
// Input, InitialState and Group are only meaningful when the corresponding
// Has flag is set.
type Hints struct {
	Urgent          bool
	Input           bool
	InitialState    IcccmWindowState
	Group           Window
	HasInput        bool
	HasInitialState bool
	HasGroup        bool
}

// Strut is a window's reservation of space along one screen edge.
type Strut struct {
	Window Window
	Width  uint
}
