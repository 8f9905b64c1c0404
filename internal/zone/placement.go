package zone

import (
	"errors"

	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/winsys"
)

// State transitions that cannot be carried out report one of these.
var (
	ErrEarlyStop      = errors.New("state change stopped early")
	ErrLimitReached   = errors.New("state change limit reached")
	ErrStateUnchanged = errors.New("state unchanged")
	ErrInvalidCaller  = errors.New("state change requested by invalid caller")
)

// PlacementMethod distinguishes freely movable placements from tiled ones.
type PlacementMethod int

const (
	PlaceFree PlacementMethod = iota
	PlaceTile
)

func (m PlacementMethod) String() string {
	if m == PlaceFree {
		return "free"
	}
	return "tile"
}

// PlacementTargetKind names what a placement applies to.
type PlacementTargetKind int

const (
	TargetClient PlacementTargetKind = iota
	TargetTab
	TargetLayout
)

// PlacementTarget identifies the entity a placement is directed at: a
// client window, a tab group of n zones, or a layout group.
type PlacementTarget struct {
	Kind   PlacementTargetKind
	Window winsys.Window
	Count  int
}

func ClientTarget(window winsys.Window) PlacementTarget {
	return PlacementTarget{Kind: TargetClient, Window: window}
}

func TabTarget(count int) PlacementTarget {
	return PlacementTarget{Kind: TargetTab, Count: count}
}

func LayoutTarget() PlacementTarget {
	return PlacementTarget{Kind: TargetLayout}
}

// PlacementRegionKind selects how the region of a placement is derived.
type PlacementRegionKind int

const (
	// NoRegion hides the placed entity.
	NoRegion PlacementRegionKind = iota
	// FreeRegion keeps the entity at its client-remembered free region.
	FreeRegion
	// NewRegion imposes the region carried by the placement.
	NewRegion
)

// PlacementRegion is the region directive attached to a placement.
type PlacementRegion struct {
	Kind   PlacementRegionKind
	Region geometry.Region
}

func NoPlacementRegion() PlacementRegion {
	return PlacementRegion{Kind: NoRegion}
}

func FreePlacementRegion() PlacementRegion {
	return PlacementRegion{Kind: FreeRegion}
}

func NewPlacementRegion(region geometry.Region) PlacementRegion {
	return PlacementRegion{Kind: NewRegion, Region: region}
}

// Placement is a single arrangement directive produced by Arrange. The
// consumer maps placements onto window configure, map and unmap calls.
type Placement struct {
	Method     PlacementMethod
	Target     PlacementTarget
	Zone       ID
	Region     PlacementRegion
	Decoration Decoration
}
