package wm

import (
	"github.com/deurzen/wzrd/internal/cycle"
	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/winsys"
)

// Partition ties a connected output to its position in the partition cycle.
type Partition struct {
	screen *winsys.Screen
	index  cycle.Index
}

func NewPartition(screen *winsys.Screen, index cycle.Index) *Partition {
	return &Partition{
		screen: screen,
		index:  index,
	}
}

func (p *Partition) ID() cycle.Ident {
	return cycle.Ident(p.screen.Number())
}

func (p *Partition) Screen() *winsys.Screen {
	return p.screen
}

func (p *Partition) Index() cycle.Index {
	return p.index
}

func (p *Partition) FullRegion() geometry.Region {
	return p.screen.FullRegion()
}

func (p *Partition) PlaceableRegion() geometry.Region {
	return p.screen.PlaceableRegion()
}
