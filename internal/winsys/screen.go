package winsys

import (
	"sort"

	"github.com/deurzen/wzrd/internal/geometry"
)

// Screen is a connected output together with the struts reserved on it.
// The placeable region is the full region minus the widest strut at each
// edge, recomputed whenever struts change or visibility toggles.
type Screen struct {
	number          int
	fullRegion      geometry.Region
	placeableRegion geometry.Region
	windows         map[Window][]geometry.Edge
	struts          map[geometry.Edge][]Strut
	showingStruts   bool
}

func NewScreen(region geometry.Region, number int) *Screen {
	return &Screen{
		number:          number,
		fullRegion:      region,
		placeableRegion: region,
		windows:         make(map[Window][]geometry.Edge),
		struts: map[geometry.Edge][]Strut{
			geometry.EdgeLeft:   nil,
			geometry.EdgeRight:  nil,
			geometry.EdgeTop:    nil,
			geometry.EdgeBottom: nil,
		},
		showingStruts: true,
	}
}

func (s *Screen) Number() int {
	return s.number
}

func (s *Screen) SetNumber(number int) {
	s.number = number
}

func (s *Screen) ShowingStruts() bool {
	return s.showingStruts
}

// ShowAndYieldStruts makes struts count toward the placeable region again
// and returns the windows whose struts should be remapped.
func (s *Screen) ShowAndYieldStruts() []Window {
	s.showingStruts = true
	s.ComputePlaceableRegion()
	return s.strutWindows()
}

// HideAndYieldStruts stops struts from counting toward the placeable region
// and returns the windows whose struts should be unmapped.
func (s *Screen) HideAndYieldStruts() []Window {
	s.showingStruts = false
	s.ComputePlaceableRegion()
	return s.strutWindows()
}

func (s *Screen) strutWindows() []Window {
	windows := make([]Window, 0, len(s.windows))
	for window := range s.windows {
		windows = append(windows, window)
	}
	return windows
}

func (s *Screen) FullRegion() geometry.Region {
	return s.fullRegion
}

func (s *Screen) PlaceableRegion() geometry.Region {
	return s.placeableRegion
}

func (s *Screen) ContainsWindow(window Window) bool {
	_, ok := s.windows[window]
	return ok
}

// HasStrutWindow reports whether the window reserves a strut on this screen.
func (s *Screen) HasStrutWindow(window Window) bool {
	return s.ContainsWindow(window)
}

// ComputePlaceableRegion subtracts the widest strut at each edge from the
// full region. Struts are kept sorted by width, so the widest is last.
func (s *Screen) ComputePlaceableRegion() {
	region := s.fullRegion

	if s.showingStruts {
		if strut, ok := widest(s.struts[geometry.EdgeLeft]); ok {
			region.Pos.X += int(strut.Width)
			region.Dim.W -= int(strut.Width)
		}
		if strut, ok := widest(s.struts[geometry.EdgeRight]); ok {
			region.Dim.W -= int(strut.Width)
		}
		if strut, ok := widest(s.struts[geometry.EdgeTop]); ok {
			region.Pos.Y += int(strut.Width)
			region.Dim.H -= int(strut.Width)
		}
		if strut, ok := widest(s.struts[geometry.EdgeBottom]); ok {
			region.Dim.H -= int(strut.Width)
		}
	}

	s.placeableRegion = region
}

func widest(struts []Strut) (Strut, bool) {
	if len(struts) == 0 {
		return Strut{}, false
	}
	return struts[len(struts)-1], true
}

// AddStrut records a strut at the given edge, keeping the edge's strut list
// sorted by width.
func (s *Screen) AddStrut(edge geometry.Edge, window Window, width uint) {
	struts := s.struts[edge]
	index := sort.Search(len(struts), func(i int) bool {
		return struts[i].Width >= width
	})

	struts = append(struts, Strut{})
	copy(struts[index+1:], struts[index:])
	struts[index] = Strut{Window: window, Width: width}
	s.struts[edge] = struts

	s.windows[window] = append(s.windows[window], edge)
}

// AddStruts records the four _NET_WM_STRUT(_PARTIAL) reservations, in
// left, right, top, bottom order. Nil entries are skipped.
func (s *Screen) AddStruts(struts [4]*Strut) {
	edges := [4]geometry.Edge{
		geometry.EdgeLeft,
		geometry.EdgeRight,
		geometry.EdgeTop,
		geometry.EdgeBottom,
	}

	for i, strut := range struts {
		if strut != nil {
			s.AddStrut(edges[i], strut.Window, strut.Width)
		}
	}
}

// RemoveWindowStrut drops every strut the window reserved on this screen.
func (s *Screen) RemoveWindowStrut(window Window) {
	for edge, struts := range s.struts {
		kept := struts[:0]
		for _, strut := range struts {
			if strut.Window != window {
				kept = append(kept, strut)
			}
		}
		s.struts[edge] = kept
	}

	delete(s.windows, window)
}

// UpdateStrut replaces the window's struts with a single strut at edge.
func (s *Screen) UpdateStrut(edge geometry.Edge, window Window, width uint) {
	s.RemoveWindowStrut(window)
	s.AddStrut(edge, window, width)
}

// MaxStrutVal returns the widest strut width at the given edge.
func (s *Screen) MaxStrutVal(edge geometry.Edge) (uint, bool) {
	if strut, ok := widest(s.struts[edge]); ok {
		return strut.Width, true
	}
	return 0, false
}

func (s *Screen) FullEncompasses(pos geometry.Pos) bool {
	return s.fullRegion.Encompasses(pos)
}

func (s *Screen) PlaceableEncompasses(pos geometry.Pos) bool {
	return s.placeableRegion.Encompasses(pos)
}

func (s *Screen) FullContains(region geometry.Region) bool {
	return s.fullRegion.Contains(region)
}

func (s *Screen) PlaceableContains(region geometry.Region) bool {
	return s.placeableRegion.Contains(region)
}

func (s *Screen) FullOccludes(region geometry.Region) bool {
	return s.fullRegion.Occludes(region)
}

func (s *Screen) PlaceableOccludes(region geometry.Region) bool {
	return s.placeableRegion.Occludes(region)
}
