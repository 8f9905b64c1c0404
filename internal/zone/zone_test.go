package zone

import (
	"errors"
	"reflect"
	"testing"

	"github.com/deurzen/wzrd/internal/cycle"
	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/winsys"
)

func newLayoutRoot(m *Manager, kind LayoutKind, region geometry.Region) ID {
	root := m.New(0, LayoutContent(LayoutWithKind(kind), cycle.New[ID](nil, true)))
	m.Zone(root).SetRegion(region)
	return root
}

func clientPlacements(placements []Placement) []Placement {
	var clients []Placement
	for _, placement := range placements {
		if placement.Target.Kind == TargetClient {
			clients = append(clients, placement)
		}
	}
	return clients
}

func TestArrangeSingleClientFillsScreen(t *testing.T) {
	m := NewManager()
	screen := geometry.NewRegion(0, 0, 1920, 1080)
	root := newLayoutRoot(m, Stack, screen)
	client := m.New(root, ClientContent(winsys.Window(0x100)))

	placements := m.Arrange(client, nil)

	clients := clientPlacements(placements)
	if len(clients) != 1 {
		t.Fatalf("expected 1 client placement, got %d", len(clients))
	}

	p := clients[0]
	if p.Method != PlaceTile {
		t.Fatalf("expected tile placement, got %v", p.Method)
	}
	if p.Region.Kind != NewRegion || p.Region.Region != screen {
		t.Fatalf("expected full-screen region, got %+v", p.Region)
	}
	if p.Target.Window != winsys.Window(0x100) {
		t.Fatalf("expected window 0x100, got %#x", uint32(p.Target.Window))
	}
}

func TestArrangeTwoClientsSplitsScreen(t *testing.T) {
	m := NewManager()
	screen := geometry.NewRegion(0, 0, 1920, 1080)
	root := newLayoutRoot(m, Stack, screen)
	first := m.New(root, ClientContent(winsys.Window(0x100)))
	second := m.New(root, ClientContent(winsys.Window(0x200)))

	placements := m.Arrange(root, nil)

	clients := clientPlacements(placements)
	if len(clients) != 2 {
		t.Fatalf("expected 2 client placements, got %d", len(clients))
	}

	// Insertion order is preserved: first client takes the main column.
	main := geometry.NewRegion(0, 0, 960, 1080)
	stack := geometry.NewRegion(960, 0, 960, 1080)

	if clients[0].Zone != first || clients[0].Region.Region != main {
		t.Fatalf("expected main %+v for zone %d, got %+v", main, first, clients[0])
	}
	if clients[1].Zone != second || clients[1].Region.Region != stack {
		t.Fatalf("expected stack %+v for zone %d, got %+v", stack, second, clients[1])
	}
}

func TestArrangeRepeatsYieldIdenticalPlacements(t *testing.T) {
	kinds := []LayoutKind{
		Float, BLFloat, SingleFloat, BLSingleFloat, Center, Monocle,
		Paper, SPaper, Stack, SStack, BStack, SBStack,
	}
	screen := geometry.NewRegion(0, 0, 1920, 1080)

	for _, kind := range kinds {
		m := NewManager()
		root := newLayoutRoot(m, kind, screen)
		for i := 0; i < 4; i++ {
			m.New(root, ClientContent(winsys.Window(0x100+i)))
		}

		first := m.Arrange(root, nil)
		second := m.Arrange(root, nil)

		if !reflect.DeepEqual(first, second) {
			t.Fatalf("%v: repeated arrange moved placements:\nfirst:  %+v\nsecond: %+v",
				kind, first, second)
		}
	}
}

func TestArrangeUpdatesZoneRegions(t *testing.T) {
	m := NewManager()
	screen := geometry.NewRegion(0, 0, 1920, 1080)
	root := newLayoutRoot(m, Stack, screen)
	first := m.New(root, ClientContent(winsys.Window(0x100)))
	second := m.New(root, ClientContent(winsys.Window(0x200)))

	m.Arrange(root, nil)

	// Group zones record the region they were arranged into; client
	// zones are only repositioned through their placements.
	if region := m.Zone(root).Region(); region != screen {
		t.Fatalf("expected root region %+v, got %+v", screen, region)
	}
	if method := m.Zone(root).Method(); method != PlaceTile {
		t.Fatalf("expected root method tile, got %v", method)
	}
	_ = first
	_ = second
}

func TestArrangeIgnoresListedZones(t *testing.T) {
	m := NewManager()
	screen := geometry.NewRegion(0, 0, 1920, 1080)
	root := newLayoutRoot(m, Stack, screen)
	first := m.New(root, ClientContent(winsys.Window(0x100)))
	second := m.New(root, ClientContent(winsys.Window(0x200)))

	placements := m.Arrange(root, []ID{second})

	clients := clientPlacements(placements)
	if len(clients) != 1 {
		t.Fatalf("expected 1 client placement, got %d", len(clients))
	}
	if clients[0].Zone != first {
		t.Fatalf("expected placement for zone %d, got %d", first, clients[0].Zone)
	}

	// With the second client ignored, the first is alone again.
	if clients[0].Region.Region != screen {
		t.Fatalf("expected full-screen region, got %+v", clients[0].Region)
	}
}

func TestSingleFloatHidesInactiveClients(t *testing.T) {
	m := NewManager()
	screen := geometry.NewRegion(0, 0, 1920, 1080)
	root := newLayoutRoot(m, SingleFloat, screen)
	first := m.New(root, ClientContent(winsys.Window(0x100)))
	second := m.New(root, ClientContent(winsys.Window(0x200)))

	// The most recently inserted zone is the cycle's active element.
	placements := m.Arrange(root, nil)

	var hidden, shown []Placement
	for _, placement := range placements {
		if placement.Target.Kind != TargetClient {
			continue
		}
		if placement.Region.Kind == NoRegion {
			hidden = append(hidden, placement)
		} else {
			shown = append(shown, placement)
		}
	}

	if len(hidden) != 1 || hidden[0].Zone != first {
		t.Fatalf("expected zone %d hidden, got %+v", first, hidden)
	}
	if len(shown) != 1 || shown[0].Zone != second {
		t.Fatalf("expected zone %d shown, got %+v", second, shown)
	}
	if shown[0].Region.Kind != FreeRegion {
		t.Fatalf("expected free-region placement, got %+v", shown[0].Region)
	}
}

func TestTabArrangePlacesChildrenWithinBorder(t *testing.T) {
	m := NewManager()
	screen := geometry.NewRegion(0, 0, 800, 600)
	root := m.New(0, TabContent(cycle.New[ID](nil, true)))
	m.Zone(root).SetRegion(screen)

	first := m.New(root, ClientContent(winsys.Window(0x100)))
	second := m.New(root, ClientContent(winsys.Window(0x200)))

	placements := m.Arrange(root, nil)

	if placements[0].Target.Kind != TargetTab || placements[0].Target.Count != 2 {
		t.Fatalf("expected tab group placement of 2, got %+v", placements[0].Target)
	}

	clients := clientPlacements(placements)
	if len(clients) != 2 {
		t.Fatalf("expected 2 client placements, got %d", len(clients))
	}

	// Children share the region inset by the 1px tab border.
	inner := geometry.NewRegion(0, 0, 798, 598)
	for i, placement := range clients {
		if placement.Region.Region != inner {
			t.Fatalf("placement %d: expected %+v, got %+v", i, inner, placement.Region)
		}
		if placement.Decoration.Border == nil || placement.Decoration.Border.Width != 1 {
			t.Fatalf("placement %d: expected 1px border, got %+v", i, placement.Decoration)
		}
	}
	_ = first
	_ = second
}

func TestActivatePropagatesThroughCycles(t *testing.T) {
	m := NewManager()
	screen := geometry.NewRegion(0, 0, 1920, 1080)
	root := newLayoutRoot(m, Stack, screen)

	tab := m.New(root, TabContent(cycle.New[ID](nil, true)))
	inTab := m.New(tab, ClientContent(winsys.Window(0x100)))
	sibling := m.New(root, ClientContent(winsys.Window(0x200)))

	// The sibling was inserted last, so both cycles point away from inTab.
	m.Activate(inTab)

	rootActive, ok := m.Zone(root).Content().Zones.ActiveElement()
	if !ok || rootActive != tab {
		t.Fatalf("expected root cycle active %d, got %d", tab, rootActive)
	}
	tabActive, ok := m.Zone(tab).Content().Zones.ActiveElement()
	if !ok || tabActive != inTab {
		t.Fatalf("expected tab cycle active %d, got %d", inTab, tabActive)
	}
	_ = sibling
}

func TestRemoveDetachesZoneFromItsCycle(t *testing.T) {
	m := NewManager()
	screen := geometry.NewRegion(0, 0, 1920, 1080)
	root := newLayoutRoot(m, Stack, screen)
	first := m.New(root, ClientContent(winsys.Window(0x100)))
	second := m.New(root, ClientContent(winsys.Window(0x200)))

	m.Remove(first)

	if _, ok := m.ZoneChecked(first); ok {
		t.Fatalf("expected zone %d to be gone", first)
	}
	if m.Zone(root).Content().Zones.Contains(cycle.Ident(first)) {
		t.Fatalf("expected cycle to no longer contain %d", first)
	}
	if !m.Zone(root).Content().Zones.Contains(cycle.Ident(second)) {
		t.Fatalf("expected cycle to still contain %d", second)
	}
}

func TestSetKindCarriesDataToNewKind(t *testing.T) {
	m := NewManager()
	screen := geometry.NewRegion(0, 0, 1920, 1080)
	root := newLayoutRoot(m, Stack, screen)
	client := m.New(root, ClientContent(winsys.Window(0x100)))

	ok := m.UpdateActiveData(client, func(data *LayoutData) {
		data.GapSize = 25
	})
	if !ok {
		t.Fatalf("expected layout data update to apply")
	}

	prev, err := m.SetKind(client, Monocle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prev != Stack {
		t.Fatalf("expected previous kind Stack, got %v", prev)
	}

	data, ok := m.ActiveData(client)
	if !ok || data.GapSize != 25 {
		t.Fatalf("expected gap size 25 carried over, got %+v", data)
	}
}

func TestSetPrevKindTogglesBack(t *testing.T) {
	m := NewManager()
	screen := geometry.NewRegion(0, 0, 1920, 1080)
	root := newLayoutRoot(m, Stack, screen)
	client := m.New(root, ClientContent(winsys.Window(0x100)))

	if _, err := m.SetKind(client, Monocle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.SetPrevKind(client); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	kind, err := m.Zone(root).Kind()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != Stack {
		t.Fatalf("expected kind Stack, got %v", kind)
	}
}

func TestSetKindOnClientCycleOnlyAffectsNearestCycle(t *testing.T) {
	m := NewManager()
	screen := geometry.NewRegion(0, 0, 1920, 1080)
	root := newLayoutRoot(m, Stack, screen)
	client := m.New(root, ClientContent(winsys.Window(0x100)))

	if _, err := m.Zone(client).Kind(); !errors.Is(err, ErrInvalidCaller) {
		t.Fatalf("expected ErrInvalidCaller for client zone kind")
	}

	if _, err := m.SetKind(client, BStack); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kind, err := m.Zone(root).Kind()
	if err != nil || kind != BStack {
		t.Fatalf("expected root kind BStack, got %v (%v)", kind, err)
	}
}

func TestIsWithinPersistent(t *testing.T) {
	m := NewManager()
	screen := geometry.NewRegion(0, 0, 1920, 1080)

	stackRoot := newLayoutRoot(m, Stack, screen)
	inStack := m.New(stackRoot, ClientContent(winsys.Window(0x100)))
	if m.IsWithinPersistent(inStack) {
		t.Fatalf("expected client under Stack not to be persistent")
	}

	paperRoot := newLayoutRoot(m, Paper, screen)
	inPaper := m.New(paperRoot, ClientContent(winsys.Window(0x200)))
	if !m.IsWithinPersistent(inPaper) {
		t.Fatalf("expected client under Paper to be persistent")
	}

	tabRoot := m.New(0, TabContent(cycle.New[ID](nil, true)))
	inTab := m.New(tabRoot, ClientContent(winsys.Window(0x300)))
	if !m.IsWithinPersistent(inTab) {
		t.Fatalf("expected client under tab to be persistent")
	}
}

func TestGatherSubzonesRecurses(t *testing.T) {
	m := NewManager()
	screen := geometry.NewRegion(0, 0, 1920, 1080)
	root := newLayoutRoot(m, Stack, screen)
	tab := m.New(root, TabContent(cycle.New[ID](nil, true)))
	inTab := m.New(tab, ClientContent(winsys.Window(0x100)))
	sibling := m.New(root, ClientContent(winsys.Window(0x200)))

	flat := m.GatherSubzones(root, false)
	if len(flat) != 2 {
		t.Fatalf("expected 2 direct subzones, got %v", flat)
	}

	deep := m.GatherSubzones(root, true)
	if len(deep) != 3 {
		t.Fatalf("expected 3 recursive subzones, got %v", deep)
	}

	seen := make(map[ID]bool, len(deep))
	for _, id := range deep {
		seen[id] = true
	}
	for _, id := range []ID{tab, inTab, sibling} {
		if !seen[id] {
			t.Fatalf("expected %d among subzones %v", id, deep)
		}
	}
}

func TestNearestAndNextCycle(t *testing.T) {
	m := NewManager()
	screen := geometry.NewRegion(0, 0, 1920, 1080)
	root := newLayoutRoot(m, Stack, screen)
	tab := m.New(root, TabContent(cycle.New[ID](nil, true)))
	client := m.New(tab, ClientContent(winsys.Window(0x100)))

	if nearest := m.NearestCycle(client); nearest != tab {
		t.Fatalf("expected nearest cycle %d, got %d", tab, nearest)
	}
	if nearest := m.NearestCycle(tab); nearest != tab {
		t.Fatalf("expected a cycle to be its own nearest cycle")
	}

	next, ok := m.NextCycle(tab)
	if !ok || next != root {
		t.Fatalf("expected next cycle %d, got %d (%v)", root, next, ok)
	}
	if _, ok := m.NextCycle(root); ok {
		t.Fatalf("expected no cycle above the root")
	}
}
