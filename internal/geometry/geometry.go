// Package geometry provides the positional value types shared by the layout
// engine and the X11 backend: positions, dimensions, regions, edge extents
// and the arithmetic between them.
package geometry

import "math"

// Edge identifies one side of a region.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	}
	return "unknown"
}

// Corner identifies one corner of a region.
type Corner int

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// Pos is a point in root-window coordinates.
type Pos struct {
	X int
	Y int
}

// PosFromCenter returns the center point of region.
func PosFromCenter(region Region) Pos {
	return Pos{
		X: region.Pos.X + region.Dim.W/2,
		Y: region.Pos.Y + region.Dim.H/2,
	}
}

// Dist returns the component distance from p to other.
func (p Pos) Dist(other Pos) Distance {
	return Distance{
		DX: other.X - p.X,
		DY: other.Y - p.Y,
	}
}

// RelativeTo translates p into the coordinate space rooted at origin.
func (p Pos) RelativeTo(origin Pos) Pos {
	return Pos{
		X: p.X - origin.X,
		Y: p.Y - origin.Y,
	}
}

func (p Pos) IsOrigin() bool {
	return p == Pos{}
}

// Add returns p shifted by dist.
func (p Pos) Add(dist Distance) Pos {
	return Pos{
		X: p.X + dist.DX,
		Y: p.Y + dist.DY,
	}
}

// Dim is a width/height pair.
type Dim struct {
	W int
	H int
}

// Center returns the center point of a dimension anchored at the origin.
func (d Dim) Center() Pos {
	return Pos{
		X: d.W / 2,
		Y: d.H / 2,
	}
}

// NearestCorner returns the corner of d closest to pos, with pos given
// relative to d's origin.
func (d Dim) NearestCorner(pos Pos) Corner {
	center := d.Center()

	if pos.X >= center.X {
		if pos.Y >= center.Y {
			return CornerBottomRight
		}
		return CornerTopRight
	}
	if pos.Y >= center.Y {
		return CornerBottomLeft
	}
	return CornerTopLeft
}

// AddExtents grows d by the given extents on each axis.
func (d Dim) AddExtents(extents Extents) Dim {
	return Dim{
		W: d.W + extents.Left + extents.Right,
		H: d.H + extents.Top + extents.Bottom,
	}
}

// SubExtents shrinks d by the given extents on each axis.
func (d Dim) SubExtents(extents Extents) Dim {
	return Dim{
		W: d.W - extents.Left - extents.Right,
		H: d.H - extents.Top - extents.Bottom,
	}
}

// Region is a rectangle in root-window coordinates.
type Region struct {
	Pos Pos
	Dim Dim
}

// NewRegion constructs a region from its components.
func NewRegion(x, y, w, h int) Region {
	return Region{
		Pos: Pos{X: x, Y: y},
		Dim: Dim{W: w, H: h},
	}
}

// Encompasses reports whether pos lies within r, boundary included.
func (r Region) Encompasses(pos Pos) bool {
	return pos.X >= r.Pos.X && pos.Y >= r.Pos.Y &&
		pos.X <= r.Pos.X+r.Dim.W && pos.Y <= r.Pos.Y+r.Dim.H
}

// Contains reports whether other lies entirely within r.
func (r Region) Contains(other Region) bool {
	return r.Encompasses(other.Pos) && r.Encompasses(other.BottomRight())
}

// Occludes reports whether r and other overlap at either's origin.
func (r Region) Occludes(other Region) bool {
	return r.Encompasses(other.Pos) || other.Encompasses(r.Pos)
}

// NearestCorner returns the corner of r closest to the absolute position pos.
func (r Region) NearestCorner(pos Pos) Corner {
	return r.Dim.NearestCorner(pos.Add(r.Pos.Dist(Pos{})))
}

// QuadrantCenter returns the center of the quadrant of r nearest to pos, or
// false when pos already lies within r.
func (r Region) QuadrantCenter(pos Pos) (Pos, bool) {
	if r.Encompasses(pos) {
		return Pos{}, false
	}

	type cornerDist struct {
		corner Corner
		dist   int
	}

	dists := []cornerDist{
		{CornerTopLeft, r.Pos.Dist(pos).Pythagorean()},
		{CornerTopRight, r.TopRight().Dist(pos).Pythagorean()},
		{CornerBottomLeft, r.BottomLeft().Dist(pos).Pythagorean()},
		{CornerBottomRight, r.BottomRight().Dist(pos).Pythagorean()},
	}

	nearest := dists[0]
	for _, cd := range dists[1:] {
		if cd.dist < nearest.dist {
			nearest = cd
		}
	}

	left, right := r.SplitAtWidth(int(math.Round(float64(r.Dim.W) / 2)))

	switch nearest.corner {
	case CornerTopLeft:
		quadrant, _ := left.SplitAtHeight(int(math.Round(float64(left.Dim.H) / 2)))
		return PosFromCenter(quadrant), true
	case CornerTopRight:
		quadrant, _ := right.SplitAtHeight(int(math.Round(float64(right.Dim.H) / 2)))
		return PosFromCenter(quadrant), true
	case CornerBottomLeft:
		_, quadrant := left.SplitAtHeight(int(math.Round(float64(left.Dim.H) / 2)))
		return PosFromCenter(quadrant), true
	default:
		_, quadrant := right.SplitAtHeight(int(math.Round(float64(right.Dim.H) / 2)))
		return PosFromCenter(quadrant), true
	}
}

// SplitAtWidth divides r into a left part of the given width and the
// remainder to its right.
func (r Region) SplitAtWidth(width int) (Region, Region) {
	if width > r.Dim.W {
		width = r.Dim.W
	}

	left := r
	left.Dim.W = width

	right := r
	right.Pos.X += width
	right.Dim.W = r.Dim.W - width

	return left, right
}

// SplitAtHeight divides r into a top part of the given height and the
// remainder below it.
func (r Region) SplitAtHeight(height int) (Region, Region) {
	if height > r.Dim.H {
		height = r.Dim.H
	}

	top := r
	top.Dim.H = height

	bottom := r
	bottom.Pos.Y += height
	bottom.Dim.H = r.Dim.H - height

	return top, bottom
}

// WithSizeHints applies hints to r's dimension when hints is non-nil.
func (r Region) WithSizeHints(hints *SizeHints) Region {
	if hints != nil {
		hints.Apply(&r.Dim)
	}
	return r
}

// WithMinimumDim clamps r's dimension up to min.
func (r Region) WithMinimumDim(min Dim) Region {
	if r.Dim.W < min.W {
		r.Dim.W = min.W
	}
	if r.Dim.H < min.H {
		r.Dim.H = min.H
	}
	return r
}

// WithMaximumDim clamps r's dimension down to max.
func (r Region) WithMaximumDim(max Dim) Region {
	if r.Dim.W > max.W {
		r.Dim.W = max.W
	}
	if r.Dim.H > max.H {
		r.Dim.H = max.H
	}
	return r
}

// FromAbsoluteInnerCenter returns a region of dimension dim centered inside
// r. A dimension exceeding r keeps r's origin on that axis.
func (r Region) FromAbsoluteInnerCenter(dim Dim) Region {
	centered := Region{Pos: r.Pos, Dim: dim}

	if dim.W <= r.Dim.W {
		centered.Pos.X = r.Pos.X + (r.Dim.W-dim.W)/2
	}
	if dim.H <= r.Dim.H {
		centered.Pos.Y = r.Pos.Y + (r.Dim.H-dim.H)/2
	}

	return centered
}

// WithoutExtents shrinks r inward by extents.
func (r Region) WithoutExtents(extents Extents) Region {
	r.Pos.X += extents.Left
	r.Pos.Y += extents.Top
	r.Dim.W -= extents.Left + extents.Right
	r.Dim.H -= extents.Top + extents.Bottom
	return r
}

// WithExtents grows r outward by extents.
func (r Region) WithExtents(extents Extents) Region {
	r.Pos.X -= extents.Left
	r.Pos.Y -= extents.Top
	r.Dim.W += extents.Left + extents.Right
	r.Dim.H += extents.Top + extents.Bottom
	return r
}

// AddPadding grows r outward by padding on each edge.
func (r Region) AddPadding(padding Padding) Region {
	return r.WithExtents(padding)
}

// SubPadding shrinks r inward by padding on each edge.
func (r Region) SubPadding(padding Padding) Region {
	return r.WithoutExtents(padding)
}

func (r Region) TopRight() Pos {
	return Pos{X: r.Pos.X + r.Dim.W, Y: r.Pos.Y}
}

func (r Region) BottomLeft() Pos {
	return Pos{X: r.Pos.X, Y: r.Pos.Y + r.Dim.H}
}

func (r Region) BottomRight() Pos {
	return Pos{X: r.Pos.X + r.Dim.W, Y: r.Pos.Y + r.Dim.H}
}

// Extents are per-edge thicknesses, outermost decoration included.
type Extents struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// Padding is per-edge spacing with the same shape as Extents.
type Padding = Extents

// PaddingWithEachEdge returns uniform padding of the given size.
func PaddingWithEachEdge(size int) Padding {
	return Padding{
		Left:   size,
		Right:  size,
		Top:    size,
		Bottom: size,
	}
}

// Distance is a displacement between two positions.
type Distance struct {
	DX int
	DY int
}

// Pythagorean returns the rounded euclidean length of d.
func (d Distance) Pythagorean() int {
	dx := float64(d.DX)
	dy := float64(d.DY)
	return int(math.Round(math.Sqrt(dx*dx + dy*dy)))
}

// Ratio is a vulgar fraction, kept unreduced for hint comparison.
type Ratio struct {
	Numerator   int
	Denominator int
}
