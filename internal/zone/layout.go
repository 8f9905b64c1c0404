package zone

import (
	"github.com/deurzen/wzrd/internal/geometry"
)

// Hard limits on layout data mutation.
const (
	MaxMainCount = 15
	MaxGapSize   = 300
)

// MaxMargin bounds each margin edge independently.
var MaxMargin = geometry.Padding{Left: 700, Right: 700, Top: 400, Bottom: 400}

// MinZoneDim is the smallest region a layout will shrink a zone to.
var MinZoneDim = geometry.Dim{W: 25, H: 25}

// LayoutKind selects a layout algorithm. The underlying byte doubles as
// the single-character symbol shown in status output.
type LayoutKind byte

const (
	// Free layouts.
	Float         LayoutKind = 'f'
	BLFloat       LayoutKind = 'F'
	SingleFloat   LayoutKind = 'z'
	BLSingleFloat LayoutKind = 'Z'

	// Tiled, overlapping.
	Center  LayoutKind = ';'
	Monocle LayoutKind = '%'

	// Tiled, non-overlapping.
	Paper   LayoutKind = 'p'
	SPaper  LayoutKind = 'P'
	Stack   LayoutKind = 's'
	SStack  LayoutKind = 'S'
	BStack  LayoutKind = 'b'
	SBStack LayoutKind = 'B'
)

var layoutKinds = []LayoutKind{
	Float, BLFloat, SingleFloat, BLSingleFloat,
	Center, Monocle,
	Paper, SPaper, Stack, SStack, BStack, SBStack,
}

// Symbol returns the one-character identifier of the kind.
func (k LayoutKind) Symbol() rune {
	return rune(k)
}

func (k LayoutKind) String() string {
	switch k {
	case Float:
		return "Float"
	case BLFloat:
		return "BLFloat"
	case SingleFloat:
		return "SingleFloat"
	case BLSingleFloat:
		return "BLSingleFloat"
	case Center:
		return "Center"
	case Monocle:
		return "Monocle"
	case Paper:
		return "Paper"
	case SPaper:
		return "SPaper"
	case Stack:
		return "Stack"
	case SStack:
		return "SStack"
	case BStack:
		return "BStack"
	case SBStack:
		return "SBStack"
	}
	return "Unknown"
}

// LayoutConfig is the static behavior profile of a layout kind.
type LayoutConfig struct {
	Method     PlacementMethod
	Decoration Decoration
	RootOnly   bool
	Margin     bool
	Gap        bool
	Persistent bool
	Single     bool
	Wraps      bool
}

var paperDecoration = Decoration{
	Frame: &Frame{
		Extents: geometry.Extents{Left: 1, Right: 1, Top: 0, Bottom: 0},
		Colors:  DefaultColorScheme,
	},
}

var stackDecoration = Decoration{
	Frame: &Frame{
		Extents: geometry.Extents{Left: 0, Right: 0, Top: 3, Bottom: 0},
		Colors:  DefaultColorScheme,
	},
}

// Config returns the behavior profile of the kind.
func (k LayoutKind) Config() LayoutConfig {
	switch k {
	case Float:
		return LayoutConfig{
			Method:     PlaceFree,
			Decoration: FreeDecoration,
			RootOnly:   true,
			Wraps:      true,
		}
	case BLFloat:
		return LayoutConfig{
			Method:     PlaceFree,
			Decoration: NoDecoration,
			RootOnly:   true,
			Wraps:      true,
		}
	case SingleFloat:
		return LayoutConfig{
			Method:     PlaceFree,
			Decoration: FreeDecoration,
			RootOnly:   true,
			Persistent: true,
			Single:     true,
			Wraps:      true,
		}
	case BLSingleFloat:
		return LayoutConfig{
			Method:     PlaceFree,
			Decoration: NoDecoration,
			RootOnly:   true,
			Persistent: true,
			Single:     true,
			Wraps:      true,
		}
	case Center, Monocle:
		return LayoutConfig{
			Method:     PlaceTile,
			Decoration: NoDecoration,
			Margin:     true,
			Gap:        true,
			Wraps:      true,
		}
	case Paper:
		return LayoutConfig{
			Method:     PlaceTile,
			Decoration: paperDecoration,
			Margin:     true,
			Gap:        true,
			Persistent: true,
		}
	case SPaper:
		return LayoutConfig{
			Method:     PlaceTile,
			Decoration: paperDecoration,
			Margin:     true,
			Persistent: true,
		}
	case Stack, BStack:
		return LayoutConfig{
			Method:     PlaceTile,
			Decoration: stackDecoration,
			Margin:     true,
			Gap:        true,
			Wraps:      true,
		}
	case SStack, SBStack:
		return LayoutConfig{
			Method:     PlaceTile,
			Decoration: stackDecoration,
			Margin:     true,
			Wraps:      true,
		}
	}
	return LayoutConfig{Method: PlaceFree, RootOnly: true, Wraps: true}
}

// LayoutData is the per-kind tunable state of a layout.
type LayoutData struct {
	Margin  geometry.Padding
	GapSize int

	MainCount  int
	MainFactor float64
}

// DefaultData returns the initial layout data for the kind.
func (k LayoutKind) DefaultData() LayoutData {
	switch k {
	case Center:
		return LayoutData{MainCount: 5, MainFactor: 0.40}
	default:
		return LayoutData{MainCount: 1, MainFactor: 0.50}
	}
}

// Disposition is the per-zone outcome of applying a layout. Changed
// dispositions impose Region; unchanged ones keep the zone where it is.
type Disposition struct {
	Changed    bool
	Region     geometry.Region
	Decoration Decoration
	Visible    bool
}

func unchanged(decoration Decoration, visible bool) Disposition {
	return Disposition{Decoration: decoration, Visible: visible}
}

func changed(region geometry.Region, decoration Decoration) Disposition {
	return Disposition{Changed: true, Region: region, Decoration: decoration, Visible: true}
}

func stackSplit(n, nMain int) (int, int) {
	if n <= nMain {
		return n, 0
	}
	return nMain, n - nMain
}

type layoutFn func(region geometry.Region, data *LayoutData, activeMap []bool) []Disposition

func (k LayoutKind) fn() layoutFn {
	switch k {
	case Float, BLFloat:
		return func(_ geometry.Region, _ *LayoutData, activeMap []bool) []Disposition {
			config := k.Config()
			dispositions := make([]Disposition, len(activeMap))
			for i := range dispositions {
				dispositions[i] = unchanged(config.Decoration, true)
			}
			return dispositions
		}
	case SingleFloat, BLSingleFloat:
		return func(_ geometry.Region, _ *LayoutData, activeMap []bool) []Disposition {
			config := k.Config()
			dispositions := make([]Disposition, len(activeMap))
			for i, active := range activeMap {
				dispositions[i] = unchanged(config.Decoration, active)
			}
			return dispositions
		}
	case Center:
		return layoutCenter
	case Monocle:
		return layoutMonocle
	case Paper:
		return layoutPaper
	case SPaper:
		return gapCompensated(layoutPaper)
	case Stack:
		return layoutStack
	case SStack:
		return gapCompensated(layoutStack)
	case BStack:
		return layoutBStack
	case SBStack:
		return gapCompensated(layoutBStack)
	}
	return Float.fn()
}

// gapCompensated shrinks the root region by the configured gap size
// before delegating, for kinds whose children themselves remain gapless.
func gapCompensated(fn layoutFn) layoutFn {
	return func(region geometry.Region, data *LayoutData, activeMap []bool) []Disposition {
		adjustForGapSize(&region, data.GapSize, MinZoneDim)
		return fn(region, data, activeMap)
	}
}

func layoutCenter(region geometry.Region, data *LayoutData, activeMap []bool) []Disposition {
	config := Center.Config()

	hComp := MaxMainCount + 1
	wRatio := data.MainFactor / 0.95
	hRatio := float64(hComp-data.MainCount) / float64(hComp)

	centered := region.FromAbsoluteInnerCenter(geometry.Dim{
		W: int(float64(region.Dim.W) * wRatio),
		H: int(float64(region.Dim.H) * hRatio),
	})

	dispositions := make([]Disposition, len(activeMap))
	for i := range dispositions {
		dispositions[i] = changed(centered, config.Decoration)
	}
	return dispositions
}

func layoutMonocle(region geometry.Region, _ *LayoutData, activeMap []bool) []Disposition {
	config := Monocle.Config()

	dispositions := make([]Disposition, len(activeMap))
	for i := range dispositions {
		dispositions[i] = changed(region, config.Decoration)
	}
	return dispositions
}

func layoutPaper(region geometry.Region, data *LayoutData, activeMap []bool) []Disposition {
	const minWidthRatio = 0.5

	config := Paper.Config()
	pos, dim := region.Pos, region.Dim
	n := len(activeMap)

	if n == 1 {
		return []Disposition{changed(region, NoDecoration)}
	}

	factor := data.MainFactor
	if factor < minWidthRatio {
		factor = minWidthRatio
	}

	cw := int(float64(dim.W) * factor)
	w := (dim.W - cw) / (n - 1)
	afterActive := false

	dispositions := make([]Disposition, n)
	for i, active := range activeMap {
		if active {
			afterActive = true
			dispositions[i] = changed(
				geometry.NewRegion(pos.X+i*w, pos.Y, cw, dim.H),
				config.Decoration,
			)
		} else {
			x := pos.X + i*w
			if afterActive {
				x += cw - w
			}
			dispositions[i] = changed(
				geometry.NewRegion(x, pos.Y, w, dim.H),
				config.Decoration,
			)
		}
	}
	return dispositions
}

func layoutStack(region geometry.Region, data *LayoutData, activeMap []bool) []Disposition {
	pos, dim := region.Pos, region.Dim
	n := len(activeMap)

	if n == 1 {
		return []Disposition{changed(region, NoDecoration)}
	}

	nMain, nStack := stackSplit(n, data.MainCount)

	hStack := 0
	if nStack > 0 {
		hStack = dim.H / nStack
	}

	hMain := 0
	if nMain > 0 {
		hMain = dim.H / nMain
	}

	div := 0
	if data.MainCount > 0 {
		div = int(float64(dim.W) * data.MainFactor)
	}

	config := Stack.Config()

	dispositions := make([]Disposition, n)
	for i := range activeMap {
		if i < data.MainCount {
			mainWidth := div
			if nStack == 0 {
				mainWidth = dim.W
			}
			dispositions[i] = changed(
				geometry.NewRegion(pos.X, pos.Y+i*hMain, mainWidth, hMain),
				config.Decoration,
			)
		} else {
			dispositions[i] = changed(
				geometry.NewRegion(pos.X+div, pos.Y+(i-data.MainCount)*hStack, dim.W-div, hStack),
				config.Decoration,
			)
		}
	}
	return dispositions
}

func layoutBStack(region geometry.Region, data *LayoutData, activeMap []bool) []Disposition {
	pos, dim := region.Pos, region.Dim
	n := len(activeMap)

	if n == 1 {
		return []Disposition{changed(region, NoDecoration)}
	}

	nMain, nStack := stackSplit(n, data.MainCount)

	div := 0
	if data.MainCount > 0 {
		div = int(float64(dim.W) * data.MainFactor)
	}

	hMain := 0
	if nMain > 0 {
		if nStack > 0 {
			hMain = div / nMain
		} else {
			hMain = dim.H / nMain
		}
	}

	wStack := 0
	if nStack > 0 {
		wStack = dim.W / nStack
	}

	config := Stack.Config()

	dispositions := make([]Disposition, n)
	for i := range activeMap {
		if i < data.MainCount {
			dispositions[i] = changed(
				geometry.NewRegion(pos.X, pos.Y+i*hMain, dim.W, hMain),
				config.Decoration,
			)
		} else {
			dispositions[i] = changed(
				geometry.NewRegion(pos.X+(i-data.MainCount)*wStack, pos.Y+div, wStack, dim.H-div),
				config.Decoration,
			)
		}
	}
	return dispositions
}

// Layout pairs an active kind with per-kind tunable data. Data edits made
// under one kind survive switching away and back.
type Layout struct {
	kind       LayoutKind
	prevKind   LayoutKind
	baseGap    int
	baseMargin geometry.Padding
	data       map[LayoutKind]LayoutData
}

// NewLayout returns a layout in the default Stack kind.
func NewLayout() *Layout {
	return LayoutWithKind(Stack)
}

// LayoutWithKind returns a layout starting out in the given kind.
func LayoutWithKind(kind LayoutKind) *Layout {
	return LayoutWithDefaults(kind, 0, geometry.Padding{})
}

// LayoutWithDefaults returns a layout starting out in the given kind,
// with gapSize and margin as the baseline every kind starts from and
// resets back to.
func LayoutWithDefaults(kind LayoutKind, gapSize int, margin geometry.Padding) *Layout {
	data := make(map[LayoutKind]LayoutData, len(layoutKinds))
	for _, k := range layoutKinds {
		d := k.DefaultData()
		d.GapSize = gapSize
		d.Margin = margin
		data[k] = d
	}

	return &Layout{
		kind:       kind,
		prevKind:   kind,
		baseGap:    gapSize,
		baseMargin: margin,
		data:       data,
	}
}

func (l *Layout) Kind() LayoutKind {
	return l.kind
}

func (l *Layout) PrevKind() LayoutKind {
	return l.prevKind
}

func (l *Layout) Config() LayoutConfig {
	return l.kind.Config()
}

// Data returns the tunable data of the active kind.
func (l *Layout) Data() LayoutData {
	return l.data[l.kind]
}

// SetData replaces the tunable data of the active kind.
func (l *Layout) SetData(data LayoutData) {
	l.data[l.kind] = data
}

// UpdateData mutates the tunable data of the active kind in place.
func (l *Layout) UpdateData(f func(*LayoutData)) {
	data := l.data[l.kind]
	f(&data)
	l.data[l.kind] = data
}

// PrevData returns the tunable data of the previously active kind.
func (l *Layout) PrevData() LayoutData {
	return l.data[l.prevKind]
}

// DefaultData returns the pristine data of the active kind, with the
// layout's baseline gap size and margin applied.
func (l *Layout) DefaultData() LayoutData {
	data := l.kind.DefaultData()
	data.GapSize = l.baseGap
	data.Margin = l.baseMargin
	return data
}

// SetKind switches the active kind, remembering the current one. Setting
// the already active kind reports ErrEarlyStop.
func (l *Layout) SetKind(kind LayoutKind) (LayoutKind, error) {
	if kind == l.kind {
		return l.kind, ErrEarlyStop
	}

	l.prevKind = l.kind
	l.kind = kind

	return l.prevKind, nil
}

// Apply arranges len(activeMap) zones within region, where activeMap
// flags the cycle-active zone. Margin, per-disposition border and gap
// adjustments are folded in here.
func (l *Layout) Apply(region geometry.Region, activeMap []bool) (PlacementMethod, []Disposition) {
	config := l.kind.Config()
	data := l.data[l.kind]

	if config.Margin {
		region = adjustForMargin(region, data.Margin)
	}

	dispositions := l.kind.fn()(region, &data, activeMap)

	for i := range dispositions {
		if !dispositions[i].Changed {
			continue
		}
		if border := dispositions[i].Decoration.Border; border != nil {
			adjustForGapSize(&dispositions[i].Region, border.Width, MinZoneDim)
		}
		if config.Gap {
			adjustForGapSize(&dispositions[i].Region, data.GapSize, MinZoneDim)
		}
	}

	return config.Method, dispositions
}

func adjustForMargin(region geometry.Region, margin geometry.Padding) geometry.Region {
	return geometry.Region{
		Pos: geometry.Pos{
			X: region.Pos.X + margin.Left,
			Y: region.Pos.Y + margin.Top,
		},
		Dim: geometry.Dim{
			W: region.Dim.W - margin.Left - margin.Right,
			H: region.Dim.H - margin.Top - margin.Bottom,
		},
	}
}

// adjustForGapSize insets region by gapSize on every side, centering it
// at minDim instead when the inset would fall below the minimum.
func adjustForGapSize(region *geometry.Region, gapSize int, minDim geometry.Dim) {
	dimGap := 2 * gapSize

	if newW := region.Dim.W - dimGap; newW < minDim.W {
		region.Pos.X += (region.Dim.W - minDim.W) / 2
		region.Dim.W = minDim.W
	} else {
		region.Dim.W = newW
		region.Pos.X += gapSize
	}

	if newH := region.Dim.H - dimGap; newH < minDim.H {
		region.Pos.Y += (region.Dim.H - minDim.H) / 2
		region.Dim.H = minDim.H
	} else {
		region.Dim.H = newH
		region.Pos.Y += gapSize
	}
}

// adjustForBorder shrinks region by the border width on every side,
// never going below minDim. The position is left untouched.
func adjustForBorder(region *geometry.Region, borderWidth int, minDim geometry.Dim) {
	borderPadding := 2 * borderWidth

	if newW := region.Dim.W - borderPadding; newW > minDim.W {
		region.Dim.W = newW
	} else {
		region.Dim.W = minDim.W
	}

	if newH := region.Dim.H - borderPadding; newH > minDim.H {
		region.Dim.H = newH
	} else {
		region.Dim.H = minDim.H
	}
}
