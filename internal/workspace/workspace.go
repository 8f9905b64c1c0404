// Package workspace keeps the per-workspace bookkeeping: the client and
// icon cycles, the focus and spawn zone cycles, and the layout-data
// mutations driven by user commands.
package workspace

import (
	"github.com/deurzen/wzrd/internal/client"
	"github.com/deurzen/wzrd/internal/cycle"
	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/winsys"
	"github.com/deurzen/wzrd/internal/zone"
)

// Change is the direction of a stepwise layout-data mutation.
type Change int

const (
	Inc Change = iota
	Dec
)

// ClientSelector picks a client within a workspace.
type ClientSelector struct {
	kind   clientSelectorKind
	index  cycle.Index
	window winsys.Window
}

type clientSelectorKind int

const (
	selClientAtActive clientSelectorKind = iota
	selClientAtMaster
	selClientAtIndex
	selClientAtIdent
	selClientFirst
	selClientLast
)

func SelectAtActive() ClientSelector { return ClientSelector{kind: selClientAtActive} }
func SelectAtMaster() ClientSelector { return ClientSelector{kind: selClientAtMaster} }
func SelectAtIndex(index cycle.Index) ClientSelector {
	return ClientSelector{kind: selClientAtIndex, index: index}
}
func SelectAtIdent(window winsys.Window) ClientSelector {
	return ClientSelector{kind: selClientAtIdent, window: window}
}
func SelectFirst() ClientSelector { return ClientSelector{kind: selClientFirst} }
func SelectLast() ClientSelector  { return ClientSelector{kind: selClientLast} }

// Workspace is one virtual desktop: an ordered cycle of clients, the
// iconified windows, and the zone cycles used for focus and spawning.
type Workspace struct {
	number     cycle.Ident
	name       string
	rootZone   zone.ID
	focusZones *cycle.Cycle[zone.ID]
	spawnZones *cycle.Cycle[zone.ID]
	clients    *cycle.Cycle[winsys.Window]
	icons      *cycle.Cycle[winsys.Window]
}

func New(name string, number cycle.Ident, rootZone zone.ID) *Workspace {
	return &Workspace{
		number:     number,
		name:       name,
		rootZone:   rootZone,
		focusZones: cycle.New([]zone.ID{rootZone}, true),
		spawnZones: cycle.New([]zone.ID{rootZone}, true),
		clients:    cycle.New[winsys.Window](nil, true),
		icons:      cycle.New[winsys.Window](nil, true),
	}
}

// ID satisfies cycle.Identify; workspaces are identified by number.
func (w *Workspace) ID() cycle.Ident {
	return w.number
}

func (w *Workspace) Number() cycle.Ident {
	return w.number
}

func (w *Workspace) Name() string {
	return w.name
}

func (w *Workspace) RootZone() zone.ID {
	return w.rootZone
}

func (w *Workspace) Len() int {
	return w.clients.Len()
}

func (w *Workspace) IsEmpty() bool {
	return w.clients.IsEmpty()
}

func (w *Workspace) Contains(window winsys.Window) bool {
	return w.clients.Contains(cycle.Ident(window))
}

// Clients returns the client windows in cycle order.
func (w *Workspace) Clients() []winsys.Window {
	return w.clients.Elements()
}

// OnEachClient applies f to every client of the workspace.
func (w *Workspace) OnEachClient(registry *client.Registry, f func(*client.Client)) {
	for _, window := range w.clients.Elements() {
		if c, ok := registry.GetByWindow(window); ok {
			f(c)
		}
	}
}

// Stack returns the focus history, least recently focused first.
func (w *Workspace) Stack() []winsys.Window {
	return identsToWindows(w.clients.Stack())
}

// StackAfterFocus returns the focus history with the active client last.
func (w *Workspace) StackAfterFocus() []winsys.Window {
	return identsToWindows(w.clients.StackAfterFocus())
}

func identsToWindows(ids []cycle.Ident) []winsys.Window {
	windows := make([]winsys.Window, len(ids))
	for i, id := range ids {
		windows[i] = winsys.Window(id)
	}
	return windows
}

func (w *Workspace) ActiveFocusZone() (zone.ID, bool) {
	return w.focusZones.ActiveElement()
}

func (w *Workspace) ActiveSpawnZone() (zone.ID, bool) {
	return w.spawnZones.ActiveElement()
}

func (w *Workspace) FocusedClient() (winsys.Window, bool) {
	return w.clients.ActiveElement()
}

// GetClientFor resolves sel against the client cycle. The master
// selector indexes past the main zone of the active layout.
func (w *Workspace) GetClientFor(sel ClientSelector, zm *zone.Manager) (winsys.Window, bool) {
	var cycleSel cycle.Selector[winsys.Window]

	switch sel.kind {
	case selClientAtActive:
		cycleSel = cycle.AtActive[winsys.Window]()
	case selClientAtMaster:
		id, ok := w.focusZones.ActiveElement()
		if !ok {
			return 0, false
		}
		data, ok := zm.ActiveData(id)
		if !ok {
			return 0, false
		}
		index := data.MainCount
		if n := w.clients.Len(); n < index {
			index = n
		}
		cycleSel = cycle.AtIndex[winsys.Window](index)
	case selClientAtIndex:
		cycleSel = cycle.AtIndex[winsys.Window](sel.index)
	case selClientAtIdent:
		cycleSel = cycle.AtIdent[winsys.Window](cycle.Ident(sel.window))
	case selClientFirst:
		cycleSel = cycle.First[winsys.Window]()
	case selClientLast:
		cycleSel = cycle.Last[winsys.Window]()
	}

	return w.clients.GetFor(cycleSel)
}

func (w *Workspace) NextClient(dir cycle.Direction) (winsys.Window, bool) {
	return w.clients.NextElement(dir)
}

// AddZone inserts a zone into both the focus and spawn cycles.
func (w *Workspace) AddZone(id zone.ID, insert cycle.InsertPos) {
	w.focusZones.InsertAt(insert, id)
	w.spawnZones.InsertAt(insert, id)
}

func (w *Workspace) AddClient(window winsys.Window, insert cycle.InsertPos) {
	w.clients.InsertAt(insert, window)
}

// ReplaceClient puts replacement in window's ordinal position and
// removes window from the cycle.
func (w *Workspace) ReplaceClient(window, replacement winsys.Window) {
	w.clients.RemoveFor(cycle.AtIdent[winsys.Window](cycle.Ident(replacement)))
	w.clients.InsertAt(cycle.BeforeIdent(cycle.Ident(window)), replacement)
	w.clients.RemoveFor(cycle.AtIdent[winsys.Window](cycle.Ident(window)))
}

// ActivateZone makes id the active focus zone, returning the previous one.
func (w *Workspace) ActivateZone(id zone.ID) (zone.ID, bool) {
	prev, ok := w.focusZones.ActiveElement()
	if !ok {
		return 0, false
	}
	w.focusZones.ActivateFor(cycle.AtIdent[zone.ID](cycle.Ident(id)))
	return prev, true
}

// FocusClient makes window the active client, returning the previous one.
func (w *Workspace) FocusClient(window winsys.Window) (winsys.Window, bool) {
	prev, ok := w.clients.ActiveElement()
	if !ok {
		return 0, false
	}
	w.clients.ActivateFor(cycle.AtIdent[winsys.Window](cycle.Ident(window)))
	return prev, true
}

func (w *Workspace) RemoveZone(id zone.ID) {
	w.focusZones.RemoveFor(cycle.AtIdent[zone.ID](cycle.Ident(id)))
	w.spawnZones.RemoveFor(cycle.AtIdent[zone.ID](cycle.Ident(id)))
}

func (w *Workspace) RemoveClient(window winsys.Window) (winsys.Window, bool) {
	return w.clients.RemoveFor(cycle.AtIdent[winsys.Window](cycle.Ident(window)))
}

func (w *Workspace) RemoveFocusedClient() (winsys.Window, bool) {
	return w.clients.RemoveFor(cycle.AtActive[winsys.Window]())
}

// Arrange computes placements for every client of the workspace within
// screenRegion. Clients matching ignoreFilter bypass the zone tree and
// are placed directly according to their state.
func (w *Workspace) Arrange(
	zm *zone.Manager,
	registry *client.Registry,
	screenRegion geometry.Region,
	ignoreFilter func(*client.Client) bool,
) []zone.Placement {
	if w.clients.IsEmpty() {
		return nil
	}

	zm.Zone(w.rootZone).SetRegion(screenRegion)

	var toIgnoreIDs []zone.ID
	var toIgnoreClients []*client.Client

	consider := append(w.clients.Elements(), w.icons.Elements()...)
	for _, window := range consider {
		c, ok := registry.GetByWindow(window)
		if !ok || !ignoreFilter(c) {
			continue
		}
		toIgnoreIDs = append(toIgnoreIDs, c.Zone())
		toIgnoreClients = append(toIgnoreClients, c)
	}

	placements := zm.Arrange(w.rootZone, toIgnoreIDs)

	for _, c := range toIgnoreClients {
		var placement zone.Placement

		switch {
		case c.IsFullscreen() && !c.IsContained():
			placement = zone.Placement{
				Method:     zone.PlaceTile,
				Target:     zone.ClientTarget(c.Window()),
				Zone:       c.Zone(),
				Region:     zone.NewPlacementRegion(screenRegion),
				Decoration: zone.NoDecoration,
			}
		case c.IsIconified():
			placement = zone.Placement{
				Method:     zone.PlaceTile,
				Target:     zone.ClientTarget(c.Window()),
				Zone:       c.Zone(),
				Region:     zone.NoPlacementRegion(),
				Decoration: zone.NoDecoration,
			}
		default:
			placement = zone.Placement{
				Method:     zone.PlaceFree,
				Target:     zone.ClientTarget(c.Window()),
				Zone:       c.Zone(),
				Region:     zone.FreePlacementRegion(),
				Decoration: zone.FreeDecoration,
			}
		}

		placements = append(placements, placement)
	}

	return placements
}

// CycleZones moves the active spawn zone to the next cycle zone in dir,
// returning the previous and new active zones.
func (w *Workspace) CycleZones(dir cycle.Direction, zm *zone.Manager) (zone.ID, zone.ID, bool) {
	if w.spawnZones.Len() < 2 {
		return 0, 0, false
	}

	prev, ok := w.spawnZones.ActiveElement()
	if !ok {
		return 0, 0, false
	}

	for {
		now, ok := w.spawnZones.CycleActive(dir)
		if !ok {
			return 0, 0, false
		}
		if zm.IsCycle(now) {
			return prev, now, true
		}
	}
}

// CycleFocus moves the focused client in dir, honoring non-wrapping
// layouts. It returns the previously and newly focused windows.
func (w *Workspace) CycleFocus(
	dir cycle.Direction,
	registry *client.Registry,
	zm *zone.Manager,
) (winsys.Window, winsys.Window, bool) {
	if w.clients.Len() < 2 {
		return 0, 0, false
	}

	prev, ok := w.clients.ActiveElement()
	if !ok {
		return 0, 0, false
	}

	if c, ok := registry.GetByWindow(prev); ok {
		if config, ok := zm.ActiveConfig(c.Zone()); ok {
			if !config.Wraps && w.clients.NextWillWrap(dir) {
				return 0, 0, false
			}
		}
	}

	now, ok := w.clients.CycleActive(dir)
	if !ok || now == prev {
		return 0, 0, false
	}

	return prev, now, true
}

// DragFocus swaps the focused client with its neighbor in dir.
func (w *Workspace) DragFocus(dir cycle.Direction) (winsys.Window, bool) {
	return w.clients.DragActive(dir)
}

// RotateClients rotates the client order in dir, returning the
// previously and newly active windows.
func (w *Workspace) RotateClients(dir cycle.Direction) (winsys.Window, winsys.Window, bool) {
	if w.clients.Len() < 2 {
		return 0, 0, false
	}

	prev, ok := w.clients.ActiveElement()
	if !ok {
		return 0, 0, false
	}

	w.clients.Rotate(dir)

	now, ok := w.clients.ActiveElement()
	if !ok || now == prev {
		return 0, 0, false
	}

	return prev, now, true
}

func (w *Workspace) activeLayoutData(zm *zone.Manager) (zone.ID, zone.LayoutData, error) {
	id, ok := w.focusZones.ActiveElement()
	if !ok {
		return 0, zone.LayoutData{}, zone.ErrEarlyStop
	}
	data, ok := zm.ActiveData(id)
	if !ok {
		return 0, zone.LayoutData{}, zone.ErrEarlyStop
	}
	return id, data, nil
}

// CopyPrevLayoutData overwrites the active layout data with the data of
// the previously active kind.
func (w *Workspace) CopyPrevLayoutData(zm *zone.Manager) error {
	id, ok := w.focusZones.ActiveElement()
	if !ok {
		return zone.ErrEarlyStop
	}

	cycleZone := zm.Zone(zm.NearestCycle(id))
	if cycleZone.Content().Kind != zone.ContentLayout {
		return zone.ErrEarlyStop
	}

	layout := cycleZone.Content().Layout
	layout.SetData(layout.PrevData())
	return nil
}

// ResetLayoutData restores the active layout data to its defaults.
func (w *Workspace) ResetLayoutData(zm *zone.Manager) error {
	id, ok := w.focusZones.ActiveElement()
	if !ok {
		return zone.ErrEarlyStop
	}

	defaultData, ok := zm.ActiveDefaultData(id)
	if !ok {
		return zone.ErrEarlyStop
	}

	if !zm.UpdateActiveData(id, func(data *zone.LayoutData) {
		*data = defaultData
	}) {
		return zone.ErrEarlyStop
	}
	return nil
}

// ChangeGapSize steps the gap size by delta, clamped to [0, MaxGapSize].
func (w *Workspace) ChangeGapSize(zm *zone.Manager, change Change, delta int) error {
	id, data, err := w.activeLayoutData(zm)
	if err != nil {
		return err
	}

	newGapSize := data.GapSize
	if change == Inc {
		newGapSize += delta
		if newGapSize > zone.MaxGapSize {
			newGapSize = zone.MaxGapSize
		}
	} else {
		newGapSize -= delta
		if newGapSize < 0 {
			newGapSize = 0
		}
	}

	if newGapSize == data.GapSize {
		return zone.ErrLimitReached
	}

	zm.UpdateActiveData(id, func(data *zone.LayoutData) {
		data.GapSize = newGapSize
	})
	return nil
}

// ResetGapSize restores the default gap size of the active layout kind.
func (w *Workspace) ResetGapSize(zm *zone.Manager) error {
	id, ok := w.focusZones.ActiveElement()
	if !ok {
		return zone.ErrEarlyStop
	}

	defaultData, ok := zm.ActiveDefaultData(id)
	if !ok {
		return zone.ErrEarlyStop
	}

	if !zm.UpdateActiveData(id, func(data *zone.LayoutData) {
		data.GapSize = defaultData.GapSize
	}) {
		return zone.ErrEarlyStop
	}
	return nil
}

// ChangeMainCount steps the main count by delta, clamped to
// [0, MaxMainCount].
func (w *Workspace) ChangeMainCount(zm *zone.Manager, change Change, delta int) error {
	id, data, err := w.activeLayoutData(zm)
	if err != nil {
		return err
	}

	newMainCount := data.MainCount
	if change == Inc {
		newMainCount += delta
		if newMainCount > zone.MaxMainCount {
			newMainCount = zone.MaxMainCount
		}
	} else {
		newMainCount -= delta
		if newMainCount < 0 {
			newMainCount = 0
		}
	}

	if newMainCount == data.MainCount {
		return zone.ErrLimitReached
	}

	zm.UpdateActiveData(id, func(data *zone.LayoutData) {
		data.MainCount = newMainCount
	})
	return nil
}

// ChangeMainFactor steps the main factor by delta, clamped to
// [0.05, 0.95].
func (w *Workspace) ChangeMainFactor(zm *zone.Manager, change Change, delta float64) error {
	id, _, err := w.activeLayoutData(zm)
	if err != nil {
		return err
	}

	zm.UpdateActiveData(id, func(data *zone.LayoutData) {
		if change == Inc {
			data.MainFactor += delta
		} else {
			data.MainFactor -= delta
		}

		if data.MainFactor < 0.05 {
			data.MainFactor = 0.05
		} else if data.MainFactor > 0.95 {
			data.MainFactor = 0.95
		}
	})
	return nil
}

// ChangeMargin steps one margin edge by delta, clamped to the per-edge
// margin ceiling.
func (w *Workspace) ChangeMargin(zm *zone.Manager, edge geometry.Edge, change Change, delta int) error {
	id, data, err := w.activeLayoutData(zm)
	if err != nil {
		return err
	}

	deltaChange := delta
	if change == Dec {
		deltaChange = -delta
	}

	var current int
	switch edge {
	case geometry.EdgeLeft:
		current = data.Margin.Left
	case geometry.EdgeRight:
		current = data.Margin.Right
	case geometry.EdgeTop:
		current = data.Margin.Top
	case geometry.EdgeBottom:
		current = data.Margin.Bottom
	}

	changed := current + deltaChange
	if changed < 0 {
		changed = 0
	}
	if max := MaxMarginFor(edge); changed > max {
		changed = max
	}

	if changed == current {
		return zone.ErrLimitReached
	}

	zm.UpdateActiveData(id, func(data *zone.LayoutData) {
		switch edge {
		case geometry.EdgeLeft:
			data.Margin.Left = changed
		case geometry.EdgeRight:
			data.Margin.Right = changed
		case geometry.EdgeTop:
			data.Margin.Top = changed
		case geometry.EdgeBottom:
			data.Margin.Bottom = changed
		}
	})
	return nil
}

// MaxMarginFor returns the margin ceiling for edge.
func MaxMarginFor(edge geometry.Edge) int {
	switch edge {
	case geometry.EdgeLeft:
		return zone.MaxMargin.Left
	case geometry.EdgeRight:
		return zone.MaxMargin.Right
	case geometry.EdgeTop:
		return zone.MaxMargin.Top
	default:
		return zone.MaxMargin.Bottom
	}
}

// ResetMargin restores the default margin of the active layout kind.
func (w *Workspace) ResetMargin(zm *zone.Manager) error {
	id, ok := w.focusZones.ActiveElement()
	if !ok {
		return zone.ErrEarlyStop
	}

	defaultData, ok := zm.ActiveDefaultData(id)
	if !ok {
		return zone.ErrEarlyStop
	}

	if !zm.UpdateActiveData(id, func(data *zone.LayoutData) {
		data.Margin = defaultData.Margin
	}) {
		return zone.ErrEarlyStop
	}
	return nil
}

func (w *Workspace) FocusedIcon() (winsys.Window, bool) {
	return w.icons.ActiveElement()
}

// IconToClient reinstates an iconified window at the back of the client
// cycle.
func (w *Workspace) IconToClient(window winsys.Window) {
	if icon, ok := w.RemoveIcon(window); ok {
		w.AddClient(icon, cycle.Back())
	}
}

// ClientToIcon iconifies a client, moving it to the icon cycle.
func (w *Workspace) ClientToIcon(window winsys.Window) {
	if c, ok := w.RemoveClient(window); ok {
		w.AddIcon(c)
	}
}

func (w *Workspace) AddIcon(window winsys.Window) {
	w.icons.InsertAt(cycle.Back(), window)
}

func (w *Workspace) RemoveIcon(window winsys.Window) (winsys.Window, bool) {
	return w.icons.RemoveFor(cycle.AtIdent[winsys.Window](cycle.Ident(window)))
}

func (w *Workspace) Icons() []winsys.Window {
	return w.icons.Elements()
}
