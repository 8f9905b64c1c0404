package winsys

import (
	"github.com/deurzen/wzrd/internal/geometry"
)

// Modifier is a keyboard modifier, usable as a bitmask.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModShift
	ModAlt
	ModAltGr
	ModSuper
	ModNumLock
	ModScrollLock
)

// KeyCode is an X keycode together with its active modifier mask.
type KeyCode struct {
	Mask uint16
	Code uint8
}

// Button is a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
	ButtonScrollUp
	ButtonScrollDown
	ButtonBackward
	ButtonForward
)

// MouseEventKind distinguishes presses, releases and motion.
type MouseEventKind int

const (
	MousePress MouseEventKind = iota
	MouseRelease
	MouseMotion
)

// MouseInputTarget is the surface a mouse binding applies to.
type MouseInputTarget int

const (
	TargetGlobal MouseInputTarget = iota
	TargetRoot
	TargetClient
)

// MouseInput identifies a mouse binding. Modifiers is a ModCtrl..ModSuper
// bitmask, with lock modifiers masked out.
type MouseInput struct {
	Target    MouseInputTarget
	Button    Button
	Modifiers Modifier
}

// MouseEvent is a dispatched pointer event.
type MouseEvent struct {
	Kind     MouseEventKind
	Input    MouseInput
	Window   Window
	OnWindow bool
	RootPos  geometry.Pos
}

// GripKind distinguishes edge grips from corner grips.
type GripKind int

const (
	GripEdge GripKind = iota
	GripCorner
)

// Grip is the part of a window a pointer-driven resize takes hold of.
type Grip struct {
	Kind   GripKind
	Edge   geometry.Edge
	Corner geometry.Corner
}

func EdgeGrip(edge geometry.Edge) Grip {
	return Grip{Kind: GripEdge, Edge: edge}
}

func CornerGrip(corner geometry.Corner) Grip {
	return Grip{Kind: GripCorner, Corner: corner}
}

// IsTopGrip reports whether resizing from this grip moves the top edge.
func (g Grip) IsTopGrip() bool {
	if g.Kind == GripEdge {
		return g.Edge == geometry.EdgeTop
	}
	return g.Corner == geometry.CornerTopLeft || g.Corner == geometry.CornerTopRight
}

// IsLeftGrip reports whether resizing from this grip moves the left edge.
func (g Grip) IsLeftGrip() bool {
	if g.Kind == GripEdge {
		return g.Edge == geometry.EdgeLeft
	}
	return g.Corner == geometry.CornerTopLeft || g.Corner == geometry.CornerBottomLeft
}
