package zone

import (
	"fmt"

	"github.com/deurzen/wzrd/internal/cycle"
	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/winsys"
)

// ID identifies a zone within its Manager. The zero ID is never handed
// out and doubles as the absent-parent sentinel.
type ID uint32

// ID satisfies cycle.Identify so zones can be tracked in cycles.
func (id ID) ID() cycle.Ident {
	return cycle.Ident(id)
}

// ContentKind names what a zone holds.
type ContentKind int

const (
	ContentClient ContentKind = iota
	ContentTab
	ContentLayout
)

// Content is the payload of a zone: a single client window, a tabbed
// group of zones, or a layout applied over a group of zones.
type Content struct {
	Kind   ContentKind
	Window winsys.Window
	Layout *Layout
	Zones  *cycle.Cycle[ID]
}

func ClientContent(window winsys.Window) Content {
	return Content{Kind: ContentClient, Window: window}
}

func TabContent(zones *cycle.Cycle[ID]) Content {
	return Content{Kind: ContentTab, Zones: zones}
}

func LayoutContent(layout *Layout, zones *cycle.Cycle[ID]) Content {
	return Content{Kind: ContentLayout, Layout: layout, Zones: zones}
}

// IsCycle reports whether the content groups other zones.
func (c Content) IsCycle() bool {
	return c.Kind == ContentTab || c.Kind == ContentLayout
}

func placementTargetFor(content Content) PlacementTarget {
	switch content.Kind {
	case ContentClient:
		return ClientTarget(content.Window)
	case ContentTab:
		return TabTarget(content.Zones.Len())
	default:
		return LayoutTarget()
	}
}

// Zone is a node in the arrangement tree of a workspace.
type Zone struct {
	id         ID
	parent     ID
	method     PlacementMethod
	content    Content
	region     geometry.Region
	decoration Decoration
	visible    bool
}

func (z *Zone) ID() ID {
	return z.id
}

func (z *Zone) Parent() ID {
	return z.parent
}

func (z *Zone) Content() Content {
	return z.content
}

func (z *Zone) SetContent(content Content) {
	z.content = content
}

func (z *Zone) Region() geometry.Region {
	return z.region
}

func (z *Zone) SetRegion(region geometry.Region) {
	z.region = region
}

func (z *Zone) Method() PlacementMethod {
	return z.method
}

func (z *Zone) SetMethod(method PlacementMethod) {
	z.method = method
}

func (z *Zone) Decoration() Decoration {
	return z.decoration
}

func (z *Zone) IsVisible() bool {
	return z.visible
}

func (z *Zone) SetVisible(visible bool) {
	z.visible = visible
}

// Kind returns the layout kind, for layout zones only.
func (z *Zone) Kind() (LayoutKind, error) {
	if z.content.Kind != ContentLayout {
		return 0, ErrInvalidCaller
	}
	return z.content.Layout.Kind(), nil
}

// PrevKind returns the previously active layout kind, for layout zones only.
func (z *Zone) PrevKind() (LayoutKind, error) {
	if z.content.Kind != ContentLayout {
		return 0, ErrInvalidCaller
	}
	return z.content.Layout.PrevKind(), nil
}

func (z *Zone) setKind(kind LayoutKind) (LayoutKind, error) {
	if z.content.Kind != ContentLayout {
		return 0, ErrInvalidCaller
	}
	return z.content.Layout.SetKind(kind)
}

// Config returns the layout configuration, for layout zones only.
func (z *Zone) Config() (LayoutConfig, bool) {
	if z.content.Kind != ContentLayout {
		return LayoutConfig{}, false
	}
	return z.content.Layout.Config(), true
}

// Data returns the active layout data, for layout zones only.
func (z *Zone) Data() (LayoutData, bool) {
	if z.content.Kind != ContentLayout {
		return LayoutData{}, false
	}
	return z.content.Layout.Data(), true
}

type changeKind int

const (
	changeVisible changeKind = iota
	changeRegion
	changeMethod
)

type zoneChange struct {
	id      ID
	kind    changeKind
	visible bool
	region  geometry.Region
	method  PlacementMethod
}

// Manager owns the zone tree of all workspaces and hands out zone ids.
type Manager struct {
	zones              map[ID]*Zone
	nextID             ID
	persistentDataCopy bool
}

func NewManager() *Manager {
	return &Manager{
		zones:              make(map[ID]*Zone),
		nextID:             1,
		persistentDataCopy: true,
	}
}

// New creates a zone beneath parent, inserting it after the parent
// cycle's active element. A zero parent creates a root zone.
func (m *Manager) New(parent ID, content Content) ID {
	id := m.nextID
	m.nextID++

	if parent != 0 {
		parentZone, ok := m.zones[parent]
		if !ok || !parentZone.content.IsCycle() {
			panic("attempted to insert into non-cycle")
		}
		parentZone.content.Zones.InsertAt(cycle.AfterActive(), id)
	}

	m.zones[id] = &Zone{
		id:         id,
		parent:     parent,
		method:     PlaceFree,
		content:    content,
		region:     geometry.Region{},
		decoration: NoDecoration,
		visible:    true,
	}

	return id
}

// Remove detaches id from its nearest enclosing cycle and drops it.
func (m *Manager) Remove(id ID) {
	cycleZone := m.zones[m.NearestCycle(id)]

	if cycleZone.content.IsCycle() {
		cycleZone.content.Zones.RemoveFor(cycle.AtIdent[ID](cycle.Ident(id)))
	}

	delete(m.zones, id)
}

// Activate makes id the active element of every cycle above it.
func (m *Manager) Activate(id ID) {
	cycleID, ok := m.NextCycle(id)
	if !ok {
		return
	}

	cycleZone := m.zones[cycleID]
	if cycleZone.content.IsCycle() {
		cycleZone.content.Zones.ActivateFor(cycle.AtIdent[ID](cycle.Ident(id)))
		m.Activate(cycleID)
	}
}

// SetKind switches the layout kind of the nearest cycle above id,
// carrying the previous kind's data over to the new kind.
func (m *Manager) SetKind(id ID, kind LayoutKind) (LayoutKind, error) {
	cycleZone := m.zones[m.NearestCycle(id)]

	prevKind, err := cycleZone.setKind(kind)
	if err != nil {
		return prevKind, err
	}

	if m.persistentDataCopy {
		layout := cycleZone.content.Layout
		layout.SetData(layout.PrevData())
	}

	return prevKind, nil
}

// SetPrevKind switches the nearest cycle back to its previous layout kind.
func (m *Manager) SetPrevKind(id ID) (LayoutKind, error) {
	cycleZone := m.zones[m.NearestCycle(id)]

	kind, err := cycleZone.PrevKind()
	if err != nil {
		return kind, err
	}

	prevKind, err := cycleZone.setKind(kind)
	if err != nil {
		return prevKind, err
	}

	if m.persistentDataCopy {
		layout := cycleZone.content.Layout
		layout.SetData(layout.PrevData())
	}

	return prevKind, nil
}

// ActiveData returns the layout data of the nearest cycle above id.
func (m *Manager) ActiveData(id ID) (LayoutData, bool) {
	return m.zones[m.NearestCycle(id)].Data()
}

// ActiveDefaultData returns the pristine layout data of the nearest cycle.
func (m *Manager) ActiveDefaultData(id ID) (LayoutData, bool) {
	cycleZone := m.zones[m.NearestCycle(id)]
	if cycleZone.content.Kind != ContentLayout {
		return LayoutData{}, false
	}
	return cycleZone.content.Layout.DefaultData(), true
}

// UpdateActiveData mutates the layout data of the nearest cycle above id.
func (m *Manager) UpdateActiveData(id ID, f func(*LayoutData)) bool {
	cycleZone := m.zones[m.NearestCycle(id)]
	if cycleZone.content.Kind != ContentLayout {
		return false
	}
	cycleZone.content.Layout.UpdateData(f)
	return true
}

// ActiveConfig returns the layout configuration of the nearest cycle.
func (m *Manager) ActiveConfig(id ID) (LayoutConfig, bool) {
	return m.zones[m.NearestCycle(id)].Config()
}

// CycleConfig returns the next enclosing cycle of id and its layout
// configuration, if any.
func (m *Manager) CycleConfig(id ID) (ID, LayoutConfig, bool) {
	cycleID, ok := m.NextCycle(id)
	if !ok {
		return 0, LayoutConfig{}, false
	}
	config, _ := m.zones[cycleID].Config()
	return cycleID, config, true
}

// Zone returns the zone for id. The id must be live.
func (m *Manager) Zone(id ID) *Zone {
	zone, ok := m.zones[id]
	if !ok {
		panic(fmt.Sprintf("unknown zone %d", id))
	}
	return zone
}

// ZoneChecked returns the zone for id if it is live.
func (m *Manager) ZoneChecked(id ID) (*Zone, bool) {
	zone, ok := m.zones[id]
	return zone, ok
}

// ParentID returns the parent of id, zero if id is a root.
func (m *Manager) ParentID(id ID) ID {
	if zone, ok := m.zones[id]; ok {
		return zone.parent
	}
	return 0
}

// IsCycle reports whether id groups other zones.
func (m *Manager) IsCycle(id ID) bool {
	return m.Zone(id).content.IsCycle()
}

// NearestCycle returns id itself if it is a cycle, or the closest
// enclosing cycle otherwise.
func (m *Manager) NearestCycle(id ID) ID {
	next := id

	for {
		zone := m.Zone(next)
		if zone.content.IsCycle() {
			return next
		}
		if zone.parent == 0 {
			panic("no nearest cycle found")
		}
		next = zone.parent
	}
}

// NextCycle returns the closest cycle strictly above id.
func (m *Manager) NextCycle(id ID) (ID, bool) {
	for {
		parent := m.ParentID(id)
		if parent == 0 {
			return 0, false
		}
		if m.Zone(parent).content.IsCycle() {
			return parent, true
		}
		id = parent
	}
}

// IsWithinPersistent reports whether any cycle above id keeps its
// children placed regardless of focus.
func (m *Manager) IsWithinPersistent(id ID) bool {
	for {
		parent := m.ParentID(id)
		if parent == 0 {
			return false
		}

		zone := m.Zone(parent)
		switch zone.content.Kind {
		case ContentTab:
			return true
		case ContentLayout:
			if zone.content.Layout.Config().Persistent {
				return true
			}
		}

		id = parent
	}
}

// GatherSubzones collects the children of id, recursively when asked.
func (m *Manager) GatherSubzones(id ID, recurse bool) []ID {
	zone, ok := m.zones[id]
	if !ok || !zone.content.IsCycle() {
		return nil
	}

	zones := zone.content.Zones.Elements()
	ids := make([]ID, 0, len(zones))
	ids = append(ids, zones...)

	if recurse {
		for _, child := range zones {
			ids = append(ids, m.GatherSubzones(child, recurse)...)
		}
	}

	return ids
}

// Arrange computes placements for the nearest cycle above zone and all
// of its subzones, within that cycle's current region. Zones listed in
// toIgnore are left out of non-single layouts.
func (m *Manager) Arrange(id ID, toIgnore []ID) []Placement {
	cycleID := m.NearestCycle(id)
	zone := m.Zone(cycleID)

	var method PlacementMethod
	switch zone.content.Kind {
	case ContentTab:
		method = PlaceTile
	case ContentLayout:
		method = zone.content.Layout.Config().Method
	default:
		panic("attempting to derive method from non-cycle")
	}

	return m.arrangeSubzones(cycleID, zone.region, zone.decoration, method, toIgnore)
}

func ignored(toIgnore []ID, id ID) bool {
	for _, ignore := range toIgnore {
		if ignore == id {
			return true
		}
	}
	return false
}

func (m *Manager) arrangeSubzones(
	id ID,
	region geometry.Region,
	decoration Decoration,
	method PlacementMethod,
	toIgnore []ID,
) []Placement {
	zone := m.Zone(id)

	var changes []zoneChange
	var placements []Placement

	switch zone.content.Kind {
	case ContentClient:
		placementRegion := NewPlacementRegion(region)
		if method == PlaceFree {
			placementRegion = FreePlacementRegion()
		}
		return []Placement{{
			Method:     method,
			Target:     ClientTarget(zone.content.Window),
			Zone:       id,
			Region:     placementRegion,
			Decoration: decoration,
		}}

	case ContentTab:
		zones := zone.content.Zones
		placementRegion := NewPlacementRegion(region)
		if method == PlaceFree {
			placementRegion = FreePlacementRegion()
		} else {
			changes = append(changes, zoneChange{id: id, kind: changeRegion, region: region})
		}

		placements = append(placements, Placement{
			Method:     method,
			Target:     TabTarget(zones.Len()),
			Zone:       id,
			Region:     placementRegion,
			Decoration: decoration,
		})

		inner := region
		adjustForBorder(&inner, 1, MinZoneDim)

		activeElement, hasActive := zones.ActiveElement()

		for _, child := range zones.Elements() {
			if ignored(toIgnore, child) {
				continue
			}

			isActive := hasActive && child == activeElement
			for _, subzone := range m.GatherSubzones(child, !isActive) {
				changes = append(changes,
					zoneChange{id: subzone, kind: changeVisible, visible: isActive},
					zoneChange{id: subzone, kind: changeRegion, region: inner},
					zoneChange{id: subzone, kind: changeMethod, method: PlaceTile},
				)
			}

			placements = append(placements, m.arrangeSubzones(
				child,
				inner,
				Decoration{Border: &Border{Width: 1, Colors: DefaultColorScheme}},
				PlaceTile,
				toIgnore,
			)...)
		}

	case ContentLayout:
		layout := zone.content.Layout
		zones := zone.content.Zones

		placementRegion := NewPlacementRegion(region)
		if method == PlaceFree {
			placementRegion = FreePlacementRegion()
		}

		placements = append(placements, Placement{
			Method:     method,
			Target:     LayoutTarget(),
			Zone:       id,
			Region:     placementRegion,
			Decoration: decoration,
		})

		single := layout.Config().Single
		activeElement, hasActive := zones.ActiveElement()

		var children []ID
		for _, child := range zones.Elements() {
			if single || !ignored(toIgnore, child) {
				children = append(children, child)
			}
		}

		activeMap := make([]bool, len(children))
		for i, child := range children {
			activeMap[i] = hasActive && child == activeElement
		}

		childMethod, dispositions := layout.Apply(region, activeMap)

		type subplacement struct {
			id         ID
			region     geometry.Region
			decoration Decoration
		}
		var subplacements []subplacement

		for i, child := range children {
			disposition := dispositions[i]

			childRegion := disposition.Region
			if !disposition.Changed {
				childRegion = m.Zone(child).region
			}

			if !disposition.Visible {
				placements = append(placements, Placement{
					Method:     childMethod,
					Target:     placementTargetFor(m.Zone(child).content),
					Zone:       child,
					Region:     NoPlacementRegion(),
					Decoration: disposition.Decoration,
				})

				for _, subzone := range m.GatherSubzones(child, true) {
					placements = append(placements, Placement{
						Method:     childMethod,
						Target:     placementTargetFor(m.Zone(subzone).content),
						Zone:       subzone,
						Region:     NoPlacementRegion(),
						Decoration: disposition.Decoration,
					})
					changes = append(changes,
						zoneChange{id: subzone, kind: changeVisible, visible: false})
				}
				continue
			}

			subplacements = append(subplacements, subplacement{
				id:         child,
				region:     childRegion,
				decoration: disposition.Decoration,
			})
		}

		for _, sub := range subplacements {
			placements = append(placements,
				m.arrangeSubzones(sub.id, sub.region, sub.decoration, childMethod, toIgnore)...)
		}
	}

	zone.region = region
	zone.decoration = decoration
	zone.method = method

	for _, change := range changes {
		target, ok := m.zones[change.id]
		if !ok {
			continue
		}
		switch change.kind {
		case changeVisible:
			target.visible = change.visible
		case changeRegion:
			target.region = change.region
		case changeMethod:
			target.method = change.method
		}
	}

	return placements
}
