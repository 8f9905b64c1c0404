package zone

import (
	"errors"
	"testing"

	"github.com/deurzen/wzrd/internal/geometry"
)

func TestStackLayoutSingleClientFillsRegion(t *testing.T) {
	layout := NewLayout()
	screen := geometry.NewRegion(0, 0, 1920, 1080)

	method, dispositions := layout.Apply(screen, []bool{true})

	if method != PlaceTile {
		t.Fatalf("expected tile method, got %v", method)
	}
	if len(dispositions) != 1 {
		t.Fatalf("expected 1 disposition, got %d", len(dispositions))
	}

	d := dispositions[0]
	if !d.Changed || !d.Visible {
		t.Fatalf("expected changed, visible disposition, got %+v", d)
	}

	// A lone client ignores main factor and decoration.
	if d.Region != screen {
		t.Fatalf("expected %+v, got %+v", screen, d.Region)
	}
	if !d.Decoration.Equal(NoDecoration) {
		t.Fatalf("expected no decoration, got %+v", d.Decoration)
	}
}

func TestStackLayoutSplitsMainAndStack(t *testing.T) {
	layout := NewLayout()
	screen := geometry.NewRegion(0, 0, 1920, 1080)

	// main_count=1, main_factor=0.5: 1920*0.5 = 960 wide main column.
	_, dispositions := layout.Apply(screen, []bool{true, false})

	if len(dispositions) != 2 {
		t.Fatalf("expected 2 dispositions, got %d", len(dispositions))
	}

	main := geometry.NewRegion(0, 0, 960, 1080)
	stack := geometry.NewRegion(960, 0, 960, 1080)

	if dispositions[0].Region != main {
		t.Fatalf("expected main region %+v, got %+v", main, dispositions[0].Region)
	}
	if dispositions[1].Region != stack {
		t.Fatalf("expected stack region %+v, got %+v", stack, dispositions[1].Region)
	}
}

func TestStackLayoutDividesStackColumnEvenly(t *testing.T) {
	layout := NewLayout()
	screen := geometry.NewRegion(0, 0, 1920, 1080)

	// 1 main, 3 stacked: stack column 960 wide, 1080/3 = 360 each.
	_, dispositions := layout.Apply(screen, []bool{true, false, false, false})

	expected := []geometry.Region{
		geometry.NewRegion(0, 0, 960, 1080),
		geometry.NewRegion(960, 0, 960, 360),
		geometry.NewRegion(960, 360, 960, 360),
		geometry.NewRegion(960, 720, 960, 360),
	}

	for i, want := range expected {
		if dispositions[i].Region != want {
			t.Fatalf("disposition %d: expected %+v, got %+v", i, want, dispositions[i].Region)
		}
	}
}

func TestStackLayoutAppliesGapSize(t *testing.T) {
	layout := NewLayout()
	layout.UpdateData(func(data *LayoutData) {
		data.GapSize = 10
	})
	screen := geometry.NewRegion(0, 0, 1920, 1080)

	_, dispositions := layout.Apply(screen, []bool{true, false})

	// Each half is inset by the gap on all sides: 960-20 x 1080-20.
	main := geometry.NewRegion(10, 10, 940, 1060)
	stack := geometry.NewRegion(970, 10, 940, 1060)

	if dispositions[0].Region != main {
		t.Fatalf("expected main region %+v, got %+v", main, dispositions[0].Region)
	}
	if dispositions[1].Region != stack {
		t.Fatalf("expected stack region %+v, got %+v", stack, dispositions[1].Region)
	}
}

func TestStackLayoutAppliesMargin(t *testing.T) {
	layout := NewLayout()
	layout.UpdateData(func(data *LayoutData) {
		data.Margin = geometry.Padding{Left: 20, Right: 40, Top: 10, Bottom: 30}
	})
	screen := geometry.NewRegion(0, 0, 1920, 1080)

	_, dispositions := layout.Apply(screen, []bool{true})

	// Margin shrinks the root region before the layout runs.
	want := geometry.NewRegion(20, 10, 1860, 1040)
	if dispositions[0].Region != want {
		t.Fatalf("expected %+v, got %+v", want, dispositions[0].Region)
	}
}

func TestBStackLayoutStacksBelowMain(t *testing.T) {
	layout := NewLayout()
	if _, err := layout.SetKind(BStack); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	screen := geometry.NewRegion(0, 0, 1920, 1080)
	_, dispositions := layout.Apply(screen, []bool{true, false, false})

	// div = 1920*0.5 = 960; main spans the full width above the divide,
	// the two stacked clients split the width below it.
	expected := []geometry.Region{
		geometry.NewRegion(0, 0, 1920, 960),
		geometry.NewRegion(0, 960, 960, 120),
		geometry.NewRegion(960, 960, 960, 120),
	}

	for i, want := range expected {
		if dispositions[i].Region != want {
			t.Fatalf("disposition %d: expected %+v, got %+v", i, want, dispositions[i].Region)
		}
	}
}

func TestMonocleLayoutGivesEveryClientTheFullRegion(t *testing.T) {
	layout := NewLayout()
	if _, err := layout.SetKind(Monocle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	screen := geometry.NewRegion(0, 0, 1280, 720)
	_, dispositions := layout.Apply(screen, []bool{false, true, false})

	for i, d := range dispositions {
		if d.Region != screen {
			t.Fatalf("disposition %d: expected %+v, got %+v", i, screen, d.Region)
		}
		if !d.Visible {
			t.Fatalf("disposition %d: expected visible", i)
		}
	}
}

func TestPaperLayoutWidensActiveClient(t *testing.T) {
	layout := NewLayout()
	if _, err := layout.SetKind(Paper); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	screen := geometry.NewRegion(0, 0, 1920, 1080)
	_, dispositions := layout.Apply(screen, []bool{false, true, false})

	// cw = 1920*0.5 = 960, the rest split over n-1 = 2 slices of 480.
	// Clients after the active one shift right by cw-w = 480.
	expected := []geometry.Region{
		geometry.NewRegion(0, 0, 480, 1080),
		geometry.NewRegion(480, 0, 960, 1080),
		geometry.NewRegion(1440, 0, 480, 1080),
	}

	for i, want := range expected {
		if dispositions[i].Region != want {
			t.Fatalf("disposition %d: expected %+v, got %+v", i, want, dispositions[i].Region)
		}
	}
}

func TestSingleFloatLayoutShowsOnlyActiveClient(t *testing.T) {
	layout := NewLayout()
	if _, err := layout.SetKind(SingleFloat); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	method, dispositions := layout.Apply(geometry.NewRegion(0, 0, 800, 600), []bool{false, true, false})

	if method != PlaceFree {
		t.Fatalf("expected free method, got %v", method)
	}
	for i, d := range dispositions {
		if d.Changed {
			t.Fatalf("disposition %d: expected unchanged", i)
		}
		if d.Visible != (i == 1) {
			t.Fatalf("disposition %d: unexpected visibility %v", i, d.Visible)
		}
	}
}

func TestCenterLayoutCentersWithinRegion(t *testing.T) {
	layout := NewLayout()
	if _, err := layout.SetKind(Center); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	screen := geometry.NewRegion(0, 0, 1900, 1600)
	_, dispositions := layout.Apply(screen, []bool{true, false})

	// main_factor 0.40, main_count 5: w = 1900*(0.40/0.95) = 800,
	// h = 1600*(16-5)/16 = 1100, centered within the screen.
	want := geometry.NewRegion(550, 250, 800, 1100)
	for i, d := range dispositions {
		if d.Region != want {
			t.Fatalf("disposition %d: expected %+v, got %+v", i, want, d.Region)
		}
	}
}

func TestSetKindRemembersPreviousKind(t *testing.T) {
	layout := NewLayout()

	prev, err := layout.SetKind(Monocle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prev != Stack {
		t.Fatalf("expected previous kind Stack, got %v", prev)
	}
	if layout.Kind() != Monocle || layout.PrevKind() != Stack {
		t.Fatalf("unexpected kinds: %v / %v", layout.Kind(), layout.PrevKind())
	}
}

func TestSetSameKindStopsEarly(t *testing.T) {
	layout := NewLayout()

	if _, err := layout.SetKind(Stack); !errors.Is(err, ErrEarlyStop) {
		t.Fatalf("expected ErrEarlyStop, got %v", err)
	}
}

func TestLayoutDataIsKeptPerKind(t *testing.T) {
	layout := NewLayout()
	layout.UpdateData(func(data *LayoutData) {
		data.MainFactor = 0.75
	})

	if _, err := layout.SetKind(Monocle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := layout.SetKind(Stack); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if factor := layout.Data().MainFactor; factor != 0.75 {
		t.Fatalf("expected main factor 0.75 to survive kind switches, got %v", factor)
	}
}

func TestGapAdjustmentRespectsMinimumDim(t *testing.T) {
	region := geometry.NewRegion(0, 0, 40, 40)

	// A 20px gap would leave 0x0; the region is clamped to the minimum
	// and recentered: offset (40-25)/2 = 7.
	adjustForGapSize(&region, 20, MinZoneDim)

	want := geometry.NewRegion(7, 7, 25, 25)
	if region != want {
		t.Fatalf("expected %+v, got %+v", want, region)
	}
}

func TestBorderAdjustmentRespectsMinimumDim(t *testing.T) {
	region := geometry.NewRegion(5, 5, 30, 200)

	adjustForBorder(&region, 10, MinZoneDim)

	// Width 30-20 < 25 clamps, height 200-20 shrinks in place.
	want := geometry.NewRegion(5, 5, 25, 180)
	if region != want {
		t.Fatalf("expected %+v, got %+v", want, region)
	}
}

func TestStackSplit(t *testing.T) {
	if nMain, nStack := stackSplit(3, 5); nMain != 3 || nStack != 0 {
		t.Fatalf("expected (3, 0), got (%d, %d)", nMain, nStack)
	}
	if nMain, nStack := stackSplit(7, 2); nMain != 2 || nStack != 5 {
		t.Fatalf("expected (2, 5), got (%d, %d)", nMain, nStack)
	}
}

func TestLayoutKindSymbols(t *testing.T) {
	pairs := map[LayoutKind]rune{
		Float:   'f',
		Monocle: '%',
		Stack:   's',
		SStack:  'S',
		BStack:  'b',
		Paper:   'p',
		Center:  ';',
	}

	for kind, symbol := range pairs {
		if kind.Symbol() != symbol {
			t.Fatalf("kind %v: expected symbol %q, got %q", kind, symbol, kind.Symbol())
		}
	}
}
