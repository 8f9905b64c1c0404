package winsys

import (
	"github.com/deurzen/wzrd/internal/geometry"
)

// StackMode is the direction of a restack request relative to a sibling.
type StackMode int

const (
	StackAbove StackMode = iota
	StackBelow
)

func (m StackMode) String() string {
	if m == StackBelow {
		return "below"
	}
	return "above"
}

// ToggleAction is the requested effect of a _NET_WM_STATE client message.
type ToggleAction int

const (
	ActionToggle ToggleAction = iota
	ActionAdd
	ActionRemove
)

// PropertyKind classifies property change notifications the manager reacts to.
type PropertyKind int

const (
	PropertyName PropertyKind = iota
	PropertyClass
	PropertySize
	PropertyStrut
)

// Event is a window system event, decoded into manager-level terms.
type Event interface {
	event()
}

type MouseInputEvent struct {
	Event  MouseEvent
	OnRoot bool
}

type KeyInputEvent struct {
	KeyCode KeyCode
}

type MapRequestEvent struct {
	Window Window
	Ignore bool
}

type MapEvent struct {
	Window Window
	Ignore bool
}

type EnterEvent struct {
	Window     Window
	RootRPos   geometry.Pos
	WindowRPos geometry.Pos
}

type LeaveEvent struct {
	Window     Window
	RootRPos   geometry.Pos
	WindowRPos geometry.Pos
}

type DestroyEvent struct {
	Window Window
}

type ExposeEvent struct {
	Window Window
}

type UnmapEvent struct {
	Window Window
	Ignore bool
}

type StateRequestEvent struct {
	Window Window
	State  WindowState
	Action ToggleAction
	OnRoot bool
}

type FocusRequestEvent struct {
	Window Window
	OnRoot bool
}

type CloseRequestEvent struct {
	Window Window
	OnRoot bool
}

// WorkspaceRequestEvent asks for a workspace switch. Window is zero when the
// request does not concern a particular client.
type WorkspaceRequestEvent struct {
	Window Window
	Index  int
	OnRoot bool
}

// PlacementRequestEvent carries a configure request for a floating client.
// HasPos and HasDim flag which halves of the request were supplied.
type PlacementRequestEvent struct {
	Window Window
	Pos    geometry.Pos
	Dim    geometry.Dim
	HasPos bool
	HasDim bool
	OnRoot bool
}

// GripRequestEvent starts a pointer-driven move or resize. HasGrip is false
// for a move request.
type GripRequestEvent struct {
	Window  Window
	Pos     geometry.Pos
	Grip    Grip
	HasGrip bool
	OnRoot  bool
}

type RestackRequestEvent struct {
	Window  Window
	Sibling Window
	Mode    StackMode
	OnRoot  bool
}

type ConfigureEvent struct {
	Window Window
	Region geometry.Region
	OnRoot bool
}

type PropertyEvent struct {
	Window Window
	Kind   PropertyKind
	OnRoot bool
}

type FrameExtentsRequestEvent struct {
	Window Window
	OnRoot bool
}

type MappingEvent struct {
	Request uint8
}

type ScreenChangeEvent struct{}

type RandrEvent struct{}

func (MouseInputEvent) event()          {}
func (KeyInputEvent) event()            {}
func (MapRequestEvent) event()          {}
func (MapEvent) event()                 {}
func (EnterEvent) event()               {}
func (LeaveEvent) event()               {}
func (DestroyEvent) event()             {}
func (ExposeEvent) event()              {}
func (UnmapEvent) event()               {}
func (StateRequestEvent) event()        {}
func (FocusRequestEvent) event()        {}
func (CloseRequestEvent) event()        {}
func (WorkspaceRequestEvent) event()    {}
func (PlacementRequestEvent) event()    {}
func (GripRequestEvent) event()         {}
func (RestackRequestEvent) event()      {}
func (ConfigureEvent) event()           {}
func (PropertyEvent) event()            {}
func (FrameExtentsRequestEvent) event() {}
func (MappingEvent) event()             {}
func (ScreenChangeEvent) event()        {}
func (RandrEvent) event()               {}
