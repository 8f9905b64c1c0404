package workspace

import (
	"errors"
	"testing"

	"github.com/deurzen/wzrd/internal/client"
	"github.com/deurzen/wzrd/internal/cycle"
	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/winsys"
	"github.com/deurzen/wzrd/internal/zone"
)

type fixture struct {
	zm       *zone.Manager
	registry *client.Registry
	ws       *Workspace
	root     zone.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	zm := zone.NewManager()
	root := zm.New(0, zone.LayoutContent(zone.NewLayout(), cycle.New[zone.ID](nil, true)))
	zm.Zone(root).SetRegion(geometry.NewRegion(0, 0, 1920, 1080))

	return &fixture{
		zm:       zm,
		registry: client.NewRegistry(),
		ws:       New("main", 0, root),
		root:     root,
	}
}

func (f *fixture) addClient(t *testing.T, window winsys.Window) *client.Client {
	t.Helper()

	zoneID := f.zm.New(f.root, zone.ClientContent(window))
	c := client.New(zoneID, window, window+0x1000, "term", "Term", "term",
		winsys.WindowTypeNormal, 0, 0)
	f.registry.Add(c)
	f.ws.AddClient(window, cycle.AfterActive())
	return c
}

func TestArrangeTilesTwoClients(t *testing.T) {
	f := newFixture(t)
	f.addClient(t, 0x100)
	f.addClient(t, 0x200)

	placements := f.ws.Arrange(f.zm, f.registry, geometry.NewRegion(0, 0, 1920, 1080),
		func(*client.Client) bool { return false })

	var regions []geometry.Region
	for _, p := range placements {
		if p.Target.Kind == zone.TargetClient {
			regions = append(regions, p.Region.Region)
		}
	}

	if len(regions) != 2 {
		t.Fatalf("expected 2 client placements, got %d", len(regions))
	}

	main := geometry.NewRegion(0, 0, 960, 1080)
	stack := geometry.NewRegion(960, 0, 960, 1080)
	if regions[0] != main || regions[1] != stack {
		t.Fatalf("expected %+v and %+v, got %v", main, stack, regions)
	}
}

func TestArrangeRoutesIgnoredClientsAroundTheTree(t *testing.T) {
	f := newFixture(t)
	f.addClient(t, 0x100)
	floater := f.addClient(t, 0x200)
	floater.SetFloating(client.On)

	placements := f.ws.Arrange(f.zm, f.registry, geometry.NewRegion(0, 0, 1920, 1080),
		func(c *client.Client) bool { return c.IsFree() })

	byWindow := make(map[winsys.Window]zone.Placement)
	for _, p := range placements {
		if p.Target.Kind == zone.TargetClient {
			byWindow[p.Target.Window] = p
		}
	}

	// The remaining tiled client gets the whole region.
	tiled := byWindow[0x100]
	if tiled.Region.Kind != zone.NewRegion || tiled.Region.Region != geometry.NewRegion(0, 0, 1920, 1080) {
		t.Fatalf("expected full-screen tile, got %+v", tiled.Region)
	}

	free := byWindow[0x200]
	if free.Method != zone.PlaceFree || free.Region.Kind != zone.FreeRegion {
		t.Fatalf("expected free placement, got %+v", free)
	}
	if free.Decoration.Frame == nil {
		t.Fatalf("expected free decoration to carry a frame")
	}
}

func TestArrangeFullscreenIgnoredClientCoversScreen(t *testing.T) {
	f := newFixture(t)
	full := f.addClient(t, 0x100)
	full.SetFullscreen(client.On)

	screen := geometry.NewRegion(0, 0, 1920, 1080)
	placements := f.ws.Arrange(f.zm, f.registry, screen,
		func(c *client.Client) bool { return c.IsFullscreen() })

	var got *zone.Placement
	for i := range placements {
		if placements[i].Target.Kind == zone.TargetClient {
			got = &placements[i]
		}
	}
	if got == nil {
		t.Fatalf("expected a client placement")
	}
	if got.Region.Kind != zone.NewRegion || got.Region.Region != screen {
		t.Fatalf("expected full-screen placement, got %+v", got.Region)
	}
	if !got.Decoration.Equal(zone.NoDecoration) {
		t.Fatalf("expected bare fullscreen client, got %+v", got.Decoration)
	}
}

func TestArrangeIconifiedClientIsHidden(t *testing.T) {
	f := newFixture(t)
	f.addClient(t, 0x100)
	icon := f.addClient(t, 0x200)
	icon.SetIconified(client.On)
	f.ws.ClientToIcon(0x200)

	placements := f.ws.Arrange(f.zm, f.registry, geometry.NewRegion(0, 0, 1920, 1080),
		func(c *client.Client) bool { return c.IsIconified() })

	var hidden bool
	for _, p := range placements {
		if p.Target.Kind == zone.TargetClient && p.Target.Window == 0x200 {
			hidden = p.Region.Kind == zone.NoRegion
		}
	}
	if !hidden {
		t.Fatalf("expected iconified client to receive a no-region placement")
	}
}

func TestReplaceClientPreservesOrdinalPosition(t *testing.T) {
	f := newFixture(t)
	f.addClient(t, 0x100)
	f.addClient(t, 0x200)
	f.addClient(t, 0x300)

	f.ws.ReplaceClient(0x200, 0x300)

	want := []winsys.Window{0x100, 0x300}
	got := f.ws.Clients()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCycleFocusSkipsWhenLayoutDoesNotWrap(t *testing.T) {
	f := newFixture(t)
	f.addClient(t, 0x100)
	f.addClient(t, 0x200)

	// Paper does not wrap; the active client is the last one, so a
	// forward step would wrap and must be refused.
	if _, err := f.zm.SetKind(f.root, zone.Paper); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, ok := f.ws.CycleFocus(cycle.Forward, f.registry, f.zm); ok {
		t.Fatalf("expected focus cycling to refuse wrapping")
	}

	prev, now, ok := f.ws.CycleFocus(cycle.Backward, f.registry, f.zm)
	if !ok || prev != 0x200 || now != 0x100 {
		t.Fatalf("expected backward step 0x200 to 0x100, got %#x to %#x (%v)",
			uint32(prev), uint32(now), ok)
	}
}

func TestChangeGapSizeClampsAtLimits(t *testing.T) {
	f := newFixture(t)
	f.addClient(t, 0x100)

	if err := f.ws.ChangeGapSize(f.zm, Dec, 10); !errors.Is(err, zone.ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached below zero, got %v", err)
	}

	if err := f.ws.ChangeGapSize(f.zm, Inc, 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := f.zm.ActiveData(f.root)
	if data.GapSize != zone.MaxGapSize {
		t.Fatalf("expected gap size clamped to %d, got %d", zone.MaxGapSize, data.GapSize)
	}

	if err := f.ws.ChangeGapSize(f.zm, Inc, 1); !errors.Is(err, zone.ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached at ceiling, got %v", err)
	}
}

func TestChangeMainCountAndFactorClamp(t *testing.T) {
	f := newFixture(t)
	f.addClient(t, 0x100)

	if err := f.ws.ChangeMainCount(f.zm, Inc, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := f.zm.ActiveData(f.root)
	if data.MainCount != zone.MaxMainCount {
		t.Fatalf("expected main count %d, got %d", zone.MaxMainCount, data.MainCount)
	}

	if err := f.ws.ChangeMainFactor(f.zm, Dec, 2.0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ = f.zm.ActiveData(f.root)
	if data.MainFactor != 0.05 {
		t.Fatalf("expected main factor clamped to 0.05, got %v", data.MainFactor)
	}
}

func TestChangeMarginClampsPerEdge(t *testing.T) {
	f := newFixture(t)
	f.addClient(t, 0x100)

	if err := f.ws.ChangeMargin(f.zm, geometry.EdgeTop, Inc, 1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := f.zm.ActiveData(f.root)
	if data.Margin.Top != zone.MaxMargin.Top {
		t.Fatalf("expected top margin %d, got %d", zone.MaxMargin.Top, data.Margin.Top)
	}

	if err := f.ws.ChangeMargin(f.zm, geometry.EdgeLeft, Dec, 5); !errors.Is(err, zone.ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached at floor, got %v", err)
	}

	if err := f.ws.ResetMargin(f.zm); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ = f.zm.ActiveData(f.root)
	if data.Margin != (geometry.Padding{}) {
		t.Fatalf("expected margin reset to zero, got %+v", data.Margin)
	}
}

func TestIconRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.addClient(t, 0x100)
	f.addClient(t, 0x200)

	f.ws.ClientToIcon(0x100)

	if f.ws.Contains(0x100) {
		t.Fatalf("expected iconified window to leave the client cycle")
	}
	if icons := f.ws.Icons(); len(icons) != 1 || icons[0] != 0x100 {
		t.Fatalf("expected icon 0x100, got %v", icons)
	}

	f.ws.IconToClient(0x100)

	if !f.ws.Contains(0x100) {
		t.Fatalf("expected window back in the client cycle")
	}
	// Deiconified windows reenter at the back of the cycle.
	clients := f.ws.Clients()
	if clients[len(clients)-1] != 0x100 {
		t.Fatalf("expected 0x100 at the back, got %v", clients)
	}
}

func TestBufferLifecycle(t *testing.T) {
	b := NewBuffer(BufferMove, 0x42)

	if b.IsOccupied() {
		t.Fatalf("expected fresh buffer to be unoccupied")
	}

	region := geometry.NewRegion(10, 10, 300, 200)
	b.Set(0x100, winsys.CornerGrip(geometry.CornerBottomRight), geometry.Pos{X: 5, Y: 6}, region)

	if !b.IsOccupied() {
		t.Fatalf("expected armed buffer to be occupied")
	}
	if window, _ := b.Window(); window != 0x100 {
		t.Fatalf("expected window 0x100, got %#x", uint32(window))
	}
	if got, _ := b.WindowRegion(); got != region {
		t.Fatalf("expected region %+v, got %+v", region, got)
	}

	b.Unset()
	if b.IsOccupied() {
		t.Fatalf("expected disarmed buffer to be unoccupied")
	}
	if _, ok := b.Grip(); ok {
		t.Fatalf("expected no grip after unset")
	}
}
