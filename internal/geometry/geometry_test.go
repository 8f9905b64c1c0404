package geometry

import "testing"

func TestRegionEncompasses(t *testing.T) {
	region := NewRegion(100, 100, 400, 300)

	cases := []struct {
		pos  Pos
		want bool
	}{
		{Pos{X: 100, Y: 100}, true},
		{Pos{X: 300, Y: 250}, true},
		{Pos{X: 500, Y: 400}, true},
		{Pos{X: 501, Y: 250}, false},
		{Pos{X: 300, Y: 401}, false},
		{Pos{X: 99, Y: 100}, false},
	}
	for _, tc := range cases {
		if got := region.Encompasses(tc.pos); got != tc.want {
			t.Errorf("Encompasses(%+v) = %v, want %v", tc.pos, got, tc.want)
		}
	}
}

func TestRegionContains(t *testing.T) {
	outer := NewRegion(0, 0, 800, 600)

	if !outer.Contains(NewRegion(100, 100, 200, 200)) {
		t.Error("inner region not contained")
	}
	if outer.Contains(NewRegion(700, 500, 200, 200)) {
		t.Error("overhanging region reported as contained")
	}
}

func TestDimNearestCorner(t *testing.T) {
	dim := Dim{W: 100, H: 100}

	cases := []struct {
		pos  Pos
		want Corner
	}{
		{Pos{X: 10, Y: 10}, CornerTopLeft},
		{Pos{X: 90, Y: 10}, CornerTopRight},
		{Pos{X: 10, Y: 90}, CornerBottomLeft},
		{Pos{X: 90, Y: 90}, CornerBottomRight},
	}
	for _, tc := range cases {
		if got := dim.NearestCorner(tc.pos); got != tc.want {
			t.Errorf("NearestCorner(%+v) = %v, want %v", tc.pos, got, tc.want)
		}
	}
}

func TestRegionQuadrantCenter(t *testing.T) {
	region := NewRegion(0, 0, 400, 400)

	if _, ok := region.QuadrantCenter(Pos{X: 200, Y: 200}); ok {
		t.Fatal("pos inside region should yield no quadrant")
	}

	center, ok := region.QuadrantCenter(Pos{X: -50, Y: -50})
	if !ok {
		t.Fatal("pos outside region should yield a quadrant")
	}
	if center.X != 100 || center.Y != 100 {
		t.Fatalf("top left quadrant center = %+v, want {100 100}", center)
	}

	center, ok = region.QuadrantCenter(Pos{X: 450, Y: 450})
	if !ok {
		t.Fatal("pos outside region should yield a quadrant")
	}
	if center.X != 300 || center.Y != 300 {
		t.Fatalf("bottom right quadrant center = %+v, want {300 300}", center)
	}
}

func TestRegionSplit(t *testing.T) {
	region := NewRegion(0, 0, 300, 200)

	left, right := region.SplitAtWidth(100)
	if left.Dim.W != 100 || right.Dim.W != 200 || right.Pos.X != 100 {
		t.Fatalf("SplitAtWidth: left %+v right %+v", left, right)
	}

	top, bottom := region.SplitAtHeight(50)
	if top.Dim.H != 50 || bottom.Dim.H != 150 || bottom.Pos.Y != 50 {
		t.Fatalf("SplitAtHeight: top %+v bottom %+v", top, bottom)
	}
}

func TestRegionExtentsRoundTrip(t *testing.T) {
	extents := Extents{Left: 3, Right: 1, Top: 20, Bottom: 5}
	region := NewRegion(50, 60, 640, 480)

	grown := region.WithExtents(extents)
	if grown.Dim.W != 644 || grown.Dim.H != 505 {
		t.Fatalf("WithExtents dim = %+v", grown.Dim)
	}

	back := grown.WithoutExtents(extents)
	if back != region {
		t.Fatalf("extents round trip: got %+v, want %+v", back, region)
	}
}

func TestFromAbsoluteInnerCenter(t *testing.T) {
	screen := NewRegion(0, 0, 800, 600)

	centered := screen.FromAbsoluteInnerCenter(Dim{W: 400, H: 300})
	if centered.Pos.X != 200 || centered.Pos.Y != 150 {
		t.Fatalf("centered at %+v, want {200 150}", centered.Pos)
	}
	if centered.Dim.W != 400 || centered.Dim.H != 300 {
		t.Fatalf("dim changed: %+v", centered.Dim)
	}
}

func TestSizeHintsApplyClampsToMinMax(t *testing.T) {
	hints := SizeHints{
		MinWidth:  200,
		MinHeight: 150,
		MaxWidth:  600,
		MaxHeight: 450,
	}

	dim := Dim{W: 100, H: 100}
	hints.Apply(&dim)
	if dim.W != 200 || dim.H != 150 {
		t.Fatalf("min clamp: got %+v", dim)
	}

	dim = Dim{W: 1000, H: 1000}
	hints.Apply(&dim)
	if dim.W != 600 || dim.H != 450 {
		t.Fatalf("max clamp: got %+v", dim)
	}

	dim = Dim{W: 300, H: 300}
	hints.Apply(&dim)
	if dim.W != 300 || dim.H != 300 {
		t.Fatalf("in-range dim changed: %+v", dim)
	}
}

func TestSizeHintsApplySnapsToIncrements(t *testing.T) {
	hints := SizeHints{
		BaseWidth:  10,
		BaseHeight: 20,
		IncWidth:   7,
		IncHeight:  13,
	}

	dim := Dim{W: 100, H: 100}
	hints.Apply(&dim)

	if (dim.W-10)%7 != 0 {
		t.Errorf("width %d not on a 7px increment from base 10", dim.W)
	}
	if (dim.H-20)%13 != 0 {
		t.Errorf("height %d not on a 13px increment from base 20", dim.H)
	}
	if dim.W > 100 || dim.H > 100 {
		t.Errorf("increment snap grew the dimension: %+v", dim)
	}
}

func TestSizeHintsApplyEnforcesAspectRatio(t *testing.T) {
	hints := SizeHints{
		MinRatio: 1.0,
		MaxRatio: 2.0,
	}

	dim := Dim{W: 100, H: 400}
	hints.Apply(&dim)
	if ratio := float64(dim.W) / float64(dim.H); ratio < 0.99 {
		t.Errorf("min ratio not enforced: %+v (ratio %f)", dim, ratio)
	}

	dim = Dim{W: 900, H: 100}
	hints.Apply(&dim)
	if ratio := float64(dim.W) / float64(dim.H); ratio > 2.01 {
		t.Errorf("max ratio not enforced: %+v (ratio %f)", dim, ratio)
	}
}

func TestDistancePythagorean(t *testing.T) {
	dist := Pos{X: 0, Y: 0}.Dist(Pos{X: 3, Y: 4})
	if got := dist.Pythagorean(); got != 5 {
		t.Fatalf("Pythagorean() = %d, want 5", got)
	}
}

func TestPosFromCenter(t *testing.T) {
	pos := PosFromCenter(NewRegion(10, 20, 100, 60))
	if pos.X != 60 || pos.Y != 50 {
		t.Fatalf("PosFromCenter = %+v, want {60 50}", pos)
	}
}
