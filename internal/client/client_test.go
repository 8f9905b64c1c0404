package client

import (
	"testing"

	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/winsys"
	"github.com/deurzen/wzrd/internal/zone"
)

func newTestClient(window, frame winsys.Window) *Client {
	return New(1, window, frame, "term", "Alacritty", "alacritty",
		winsys.WindowTypeNormal, 1000, 999)
}

func TestSetRegionTracksFreeAndTileSeparately(t *testing.T) {
	c := newTestClient(0x100, 0x200)

	free := geometry.NewRegion(50, 50, 640, 480)
	tile := geometry.NewRegion(0, 0, 960, 1080)

	c.SetRegion(zone.PlaceFree, free)
	c.SetRegion(zone.PlaceTile, tile)

	if c.FreeRegion() != free {
		t.Fatalf("expected free region %+v, got %+v", free, c.FreeRegion())
	}
	if c.TileRegion() != tile {
		t.Fatalf("expected tile region %+v, got %+v", tile, c.TileRegion())
	}
	if c.ActiveRegion() != tile {
		t.Fatalf("expected active region %+v, got %+v", tile, c.ActiveRegion())
	}
	if c.PreviousRegion() != free {
		t.Fatalf("expected previous region %+v, got %+v", free, c.PreviousRegion())
	}
}

func TestInnerRegionAccountsForFrame(t *testing.T) {
	c := newTestClient(0x100, 0x200)
	c.SetDecoration(zone.FreeDecoration)

	c.SetRegion(zone.PlaceFree, geometry.NewRegion(10, 20, 500, 400))

	// FreeDecoration frames with extents left 3, right 1, top 1, bottom 1.
	want := geometry.NewRegion(3, 1, 496, 398)
	if c.InnerRegion() != want {
		t.Fatalf("expected inner region %+v, got %+v", want, c.InnerRegion())
	}
}

func TestFocusFlipsOutsideState(t *testing.T) {
	c := newTestClient(0x100, 0x200)

	if c.OutsideState() != StateUnfocused {
		t.Fatalf("expected initial state unfocused, got %v", c.OutsideState())
	}

	c.SetFocused(On)
	if !c.IsFocused() || c.OutsideState() != StateFocused {
		t.Fatalf("expected focused state, got %v", c.OutsideState())
	}

	// Toggling to the current state must not flip anything.
	c.SetFocused(On)
	if c.OutsideState() != StateFocused {
		t.Fatalf("expected focused state to be stable, got %v", c.OutsideState())
	}

	c.SetFocused(Reverse)
	if c.IsFocused() || c.OutsideState() != StateUnfocused {
		t.Fatalf("expected unfocused state, got %v", c.OutsideState())
	}
}

func TestStickyTransitionsOutsideState(t *testing.T) {
	c := newTestClient(0x100, 0x200)

	c.SetSticky(On)
	if c.OutsideState() != StateUnfocusedSticky {
		t.Fatalf("expected unfocused sticky, got %v", c.OutsideState())
	}

	c.SetFocused(On)
	if c.OutsideState() != StateFocusedSticky {
		t.Fatalf("expected focused sticky, got %v", c.OutsideState())
	}

	c.SetSticky(Off)
	if c.OutsideState() != StateFocused {
		t.Fatalf("expected focused, got %v", c.OutsideState())
	}
}

func TestUrgencyOverridesOutsideState(t *testing.T) {
	c := newTestClient(0x100, 0x200)
	c.SetFocused(On)

	c.SetUrgent(On)
	if c.OutsideState() != StateUrgent {
		t.Fatalf("expected urgent, got %v", c.OutsideState())
	}

	border, frameColor := c.DecorationColors()
	if border != nil || frameColor != nil {
		t.Fatalf("expected no colors without decoration, got %v / %v", border, frameColor)
	}

	c.SetDecoration(zone.FreeDecoration)
	_, frameColor = c.DecorationColors()
	if frameColor == nil || *frameColor != zone.DefaultColorScheme.Urgent {
		t.Fatalf("expected urgent frame color, got %v", frameColor)
	}
}

func TestIsFree(t *testing.T) {
	c := newTestClient(0x100, 0x200)

	if c.IsFree() {
		t.Fatalf("expected tiled client not to be free")
	}

	c.SetFloating(On)
	if !c.IsFree() {
		t.Fatalf("expected floating client to be free")
	}

	// Fullscreen pins a floating client back into place unless contained.
	c.SetFullscreen(On)
	if c.IsFree() {
		t.Fatalf("expected fullscreen client not to be free")
	}

	c.SetContained(On)
	if !c.IsFree() {
		t.Fatalf("expected contained fullscreen client to be free")
	}

	c = newTestClient(0x100, 0x200)
	c.SetDisowned(On)
	if !c.IsFree() {
		t.Fatalf("expected disowned client to be free")
	}
}

func TestExpectedUnmapsAreConsumedOneByOne(t *testing.T) {
	c := newTestClient(0x100, 0x200)

	c.ExpectUnmap()
	c.ExpectUnmap()

	if !c.IsExpectingUnmap() {
		t.Fatalf("expected pending unmaps")
	}
	if !c.ConsumeUnmapIfExpecting() || !c.ConsumeUnmapIfExpecting() {
		t.Fatalf("expected two consumable unmaps")
	}
	if c.ConsumeUnmapIfExpecting() {
		t.Fatalf("expected no further unmaps to consume")
	}
}

func TestConsumerBookkeeping(t *testing.T) {
	c := newTestClient(0x100, 0x200)

	c.AddConsumer(0x300)
	c.AddConsumer(0x400)
	if c.ConsumerLen() != 2 {
		t.Fatalf("expected 2 consumers, got %d", c.ConsumerLen())
	}

	c.RemoveConsumer(0x300)
	if c.ConsumerLen() != 1 {
		t.Fatalf("expected 1 consumer, got %d", c.ConsumerLen())
	}

	if c.IsConsuming() {
		t.Fatalf("expected client without producer not to be consuming")
	}
	c.SetProducer(0x500)
	if !c.IsConsuming() {
		t.Fatalf("expected client with producer to be consuming")
	}
}

func TestMatching(t *testing.T) {
	c := newTestClient(0x100, 0x200)

	if !c.ClassMatches(MatchEquals, "Alacritty") {
		t.Fatalf("expected class to match exactly")
	}
	if !c.NameMatches(MatchContains, "er") {
		t.Fatalf("expected name to match by substring")
	}
	if c.InstanceMatches(MatchEquals, "Alacritty") {
		t.Fatalf("expected instance not to match class string")
	}
}

func TestRegistryResolvesWindowAndFrame(t *testing.T) {
	r := NewRegistry()
	c := newTestClient(0x100, 0x200)
	r.Add(c)

	if got, ok := r.Get(0x100); !ok || got != c {
		t.Fatalf("expected lookup by window to succeed")
	}
	if got, ok := r.Get(0x200); !ok || got != c {
		t.Fatalf("expected lookup by frame to succeed")
	}
	if frame, ok := r.FrameFor(0x100); !ok || frame != 0x200 {
		t.Fatalf("expected frame 0x200, got %#x", uint32(frame))
	}
	if window, ok := r.WindowFor(0x200); !ok || window != 0x100 {
		t.Fatalf("expected window 0x100, got %#x", uint32(window))
	}

	r.Remove(0x100)
	if _, ok := r.Get(0x200); ok {
		t.Fatalf("expected frame mapping to be dropped with the client")
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}
}
