package client

import (
	"strings"
	"time"

	"github.com/deurzen/wzrd/internal/cycle"
	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/winsys"
	"github.com/deurzen/wzrd/internal/zone"
)

// MinDim is the smallest size a client window may be resized to.
var MinDim = geometry.Dim{W: 75, H: 50}

// PreferredDim is the size handed to clients that express no preference.
var PreferredDim = geometry.Dim{W: 480, H: 260}

// Toggle switches a boolean state on, off, or to its opposite.
type Toggle int

const (
	Off Toggle = iota
	On
	Reverse
)

// Eval resolves the toggle against the current state.
func (t Toggle) Eval(current bool) bool {
	switch t {
	case On:
		return true
	case Off:
		return false
	default:
		return !current
	}
}

// ToggleFrom converts a boolean into its corresponding non-reversing toggle.
func ToggleFrom(b bool) Toggle {
	if b {
		return On
	}
	return Off
}

// MatchMethod selects how string properties are compared.
type MatchMethod int

const (
	MatchEquals MatchMethod = iota
	MatchContains
)

func matches(value, comp string, method MatchMethod) bool {
	if method == MatchEquals {
		return value == comp
	}
	return strings.Contains(value, comp)
}

// OutsideState is the decoration-facing focus state of a client.
type OutsideState int

const (
	StateFocused OutsideState = iota
	StateFocusedDisowned
	StateFocusedSticky
	StateUnfocused
	StateUnfocusedDisowned
	StateUnfocusedSticky
	StateUrgent
)

// Flip exchanges the focused and unfocused variants.
func (s OutsideState) Flip() OutsideState {
	switch s {
	case StateFocused:
		return StateUnfocused
	case StateFocusedDisowned:
		return StateUnfocusedDisowned
	case StateFocusedSticky:
		return StateUnfocusedSticky
	case StateUnfocused:
		return StateFocused
	case StateUnfocusedDisowned:
		return StateFocusedDisowned
	case StateUnfocusedSticky:
		return StateFocusedSticky
	}
	return s
}

// Client is the window manager's record of a managed window and the frame
// wrapped around it.
type Client struct {
	zone     zone.ID
	window   winsys.Window
	frame    winsys.Window
	name     string
	class    string
	instance string

	context    int
	workspace  int
	windowType winsys.WindowType

	activeRegion   geometry.Region
	previousRegion geometry.Region
	innerRegion    geometry.Region
	freeRegion     geometry.Region
	tileRegion     geometry.Region

	decoration zone.Decoration
	sizeHints  *geometry.SizeHints
	warpPos    *geometry.Pos

	parent    winsys.Window
	hasParent bool
	children  []winsys.Window
	leader    winsys.Window
	hasLeader bool
	producer  winsys.Window
	consumers []winsys.Window

	focused     bool
	mapped      bool
	managed     bool
	urgent      bool
	floating    bool
	fullscreen  bool
	contained   bool
	invincible  bool
	sticky      bool
	iconifyable bool
	iconified   bool
	disowned    bool
	producing   bool

	outsideState OutsideState

	pid  winsys.Pid
	ppid winsys.Pid

	lastFocused  time.Time
	managedSince time.Time

	expectedUnmapCount int
}

// New records a freshly managed window. pid and ppid may be zero when
// the process behind the window could not be determined.
func New(
	zoneID zone.ID,
	window, frame winsys.Window,
	name, class, instance string,
	windowType winsys.WindowType,
	pid, ppid winsys.Pid,
) *Client {
	now := time.Now()

	return &Client{
		zone:         zoneID,
		window:       window,
		frame:        frame,
		name:         name,
		class:        class,
		instance:     instance,
		windowType:   windowType,
		managed:      true,
		iconifyable:  true,
		producing:    true,
		outsideState: StateUnfocused,
		pid:          pid,
		ppid:         ppid,
		lastFocused:  now,
		managedSince: now,
	}
}

// ID satisfies cycle.Identify; a client is identified by its window.
func (c *Client) ID() cycle.Ident {
	return cycle.Ident(c.window)
}

func (c *Client) Zone() zone.ID {
	return c.zone
}

func (c *Client) Window() winsys.Window {
	return c.window
}

func (c *Client) Frame() winsys.Window {
	return c.frame
}

// Windows returns the client window and its frame.
func (c *Client) Windows() (winsys.Window, winsys.Window) {
	return c.window, c.frame
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) SetName(name string) {
	c.name = name
}

func (c *Client) NameMatches(method MatchMethod, comp string) bool {
	return matches(c.name, comp, method)
}

func (c *Client) Class() string {
	return c.class
}

func (c *Client) SetClass(class string) {
	c.class = class
}

func (c *Client) ClassMatches(method MatchMethod, comp string) bool {
	return matches(c.class, comp, method)
}

func (c *Client) Instance() string {
	return c.instance
}

func (c *Client) SetInstance(instance string) {
	c.instance = instance
}

func (c *Client) InstanceMatches(method MatchMethod, comp string) bool {
	return matches(c.instance, comp, method)
}

func (c *Client) Context() int {
	return c.context
}

func (c *Client) SetContext(context int) {
	c.context = context
}

func (c *Client) Workspace() int {
	return c.workspace
}

func (c *Client) SetWorkspace(workspace int) {
	c.workspace = workspace
}

func (c *Client) WindowType() winsys.WindowType {
	return c.windowType
}

// SetRegion records region as the client's free or tiled position and
// makes it the active region.
func (c *Client) SetRegion(method zone.PlacementMethod, region geometry.Region) {
	if method == zone.PlaceFree {
		c.freeRegion = region
	} else {
		c.tileRegion = region
	}
	c.setActiveRegion(region)
}

func (c *Client) setActiveRegion(region geometry.Region) {
	c.setInnerRegion(region)
	c.previousRegion = c.activeRegion
	c.activeRegion = region
}

// setInnerRegion derives the content area within the frame window.
func (c *Client) setInnerRegion(region geometry.Region) {
	if frame := c.decoration.Frame; frame != nil {
		c.innerRegion = geometry.Region{
			Pos: geometry.Pos{
				X: frame.Extents.Left,
				Y: frame.Extents.Top,
			},
			Dim: geometry.Dim{
				W: region.Dim.W - frame.Extents.Left - frame.Extents.Right,
				H: region.Dim.H - frame.Extents.Top - frame.Extents.Bottom,
			},
		}
	} else {
		c.innerRegion = geometry.Region{Dim: region.Dim}
	}
}

func (c *Client) ActiveRegion() geometry.Region {
	return c.activeRegion
}

func (c *Client) PreviousRegion() geometry.Region {
	return c.previousRegion
}

func (c *Client) InnerRegion() geometry.Region {
	return c.innerRegion
}

func (c *Client) FreeRegion() geometry.Region {
	return c.freeRegion
}

func (c *Client) TileRegion() geometry.Region {
	return c.tileRegion
}

func (c *Client) Decoration() zone.Decoration {
	return c.decoration
}

func (c *Client) SetDecoration(decoration zone.Decoration) {
	c.decoration = decoration
}

// FrameExtents returns the padding the current decoration adds.
func (c *Client) FrameExtents() geometry.Extents {
	return c.decoration.Extents()
}

// BorderColor pairs a border width with the color to paint it in.
type BorderColor struct {
	Width int
	Color zone.Color
}

// DecorationColors resolves the colors matching the client's outside
// state. Nil return values mean the respective part is absent.
func (c *Client) DecorationColors() (*BorderColor, *zone.Color) {
	var pick func(ColorScheme zone.ColorScheme) zone.Color

	switch c.OutsideState() {
	case StateFocused:
		pick = func(s zone.ColorScheme) zone.Color { return s.Focused }
	case StateFocusedDisowned:
		pick = func(s zone.ColorScheme) zone.Color { return s.FDisowned }
	case StateFocusedSticky:
		pick = func(s zone.ColorScheme) zone.Color { return s.FSticky }
	case StateUnfocused:
		pick = func(s zone.ColorScheme) zone.Color { return s.Unfocused }
	case StateUnfocusedDisowned:
		pick = func(s zone.ColorScheme) zone.Color { return s.UDisowned }
	case StateUnfocusedSticky:
		pick = func(s zone.ColorScheme) zone.Color { return s.USticky }
	default:
		pick = func(s zone.ColorScheme) zone.Color { return s.Urgent }
	}

	var border *BorderColor
	var frameColor *zone.Color

	if b := c.decoration.Border; b != nil {
		border = &BorderColor{Width: b.Width, Color: pick(b.Colors)}
	}
	if f := c.decoration.Frame; f != nil {
		color := pick(f.Colors)
		frameColor = &color
	}

	return border, frameColor
}

func (c *Client) SizeHints() *geometry.SizeHints {
	return c.sizeHints
}

func (c *Client) SetSizeHints(hints *geometry.SizeHints) {
	c.sizeHints = hints
}

func (c *Client) WarpPos() (geometry.Pos, bool) {
	if c.warpPos == nil {
		return geometry.Pos{}, false
	}
	return *c.warpPos, true
}

func (c *Client) SetWarpPos(pos geometry.Pos) {
	c.warpPos = &pos
}

func (c *Client) UnsetWarpPos() {
	c.warpPos = nil
}

func (c *Client) Parent() (winsys.Window, bool) {
	return c.parent, c.hasParent
}

func (c *Client) SetParent(parent winsys.Window) {
	c.parent = parent
	c.hasParent = true
}

func (c *Client) AddChild(child winsys.Window) {
	c.children = append(c.children, child)
}

func (c *Client) RemoveChild(child winsys.Window) {
	for i := len(c.children) - 1; i >= 0; i-- {
		if c.children[i] == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return
		}
	}
}

func (c *Client) Leader() (winsys.Window, bool) {
	return c.leader, c.hasLeader
}

func (c *Client) SetLeader(leader winsys.Window) {
	c.leader = leader
	c.hasLeader = true
}

// Producer returns the window this client was spawned from, if it is
// currently consuming one.
func (c *Client) Producer() (winsys.Window, bool) {
	return c.producer, c.producer != 0
}

func (c *Client) SetProducer(producer winsys.Window) {
	c.producer = producer
}

func (c *Client) UnsetProducer() {
	c.producer = 0
}

func (c *Client) IsConsuming() bool {
	return c.producer != 0
}

func (c *Client) AddConsumer(consumer winsys.Window) {
	c.consumers = append(c.consumers, consumer)
}

func (c *Client) RemoveConsumer(consumer winsys.Window) {
	for i := len(c.consumers) - 1; i >= 0; i-- {
		if c.consumers[i] == consumer {
			c.consumers = append(c.consumers[:i], c.consumers[i+1:]...)
			return
		}
	}
}

func (c *Client) ConsumerLen() int {
	return len(c.consumers)
}

// SetFocused flips the outside state along with the focus flag.
func (c *Client) SetFocused(toggle Toggle) {
	if c.focused != toggle.Eval(c.focused) {
		c.focused = !c.focused
		c.outsideState = c.outsideState.Flip()
	}
}

func (c *Client) IsFocused() bool {
	return c.focused
}

func (c *Client) SetMapped(toggle Toggle) {
	c.mapped = toggle.Eval(c.mapped)
}

func (c *Client) IsMapped() bool {
	return c.mapped
}

func (c *Client) SetManaged(toggle Toggle) {
	c.managed = toggle.Eval(c.managed)
}

func (c *Client) IsManaged() bool {
	return c.managed
}

func (c *Client) SetUrgent(toggle Toggle) {
	c.urgent = toggle.Eval(c.urgent)
	if c.urgent {
		c.outsideState = StateUrgent
	}
}

func (c *Client) IsUrgent() bool {
	return c.urgent
}

// IsFree reports whether the client escapes tiling.
func (c *Client) IsFree() bool {
	return c.floating && (!c.fullscreen || c.contained) ||
		c.disowned ||
		!c.managed
}

func (c *Client) SetFloating(toggle Toggle) {
	c.floating = toggle.Eval(c.floating)
}

func (c *Client) IsFloating() bool {
	return c.floating
}

func (c *Client) SetFullscreen(toggle Toggle) {
	c.fullscreen = toggle.Eval(c.fullscreen)
}

func (c *Client) IsFullscreen() bool {
	return c.fullscreen
}

func (c *Client) SetContained(toggle Toggle) {
	c.contained = toggle.Eval(c.contained)
}

func (c *Client) IsContained() bool {
	return c.contained
}

func (c *Client) SetInvincible(toggle Toggle) {
	c.invincible = toggle.Eval(c.invincible)
}

func (c *Client) IsInvincible() bool {
	return c.invincible
}

func (c *Client) SetIconifyable(toggle Toggle) {
	c.iconifyable = toggle.Eval(c.iconifyable)
}

func (c *Client) IsIconifyable() bool {
	return c.iconifyable
}

func (c *Client) SetIconified(toggle Toggle) {
	c.iconified = toggle.Eval(c.iconified)
}

func (c *Client) IsIconified() bool {
	return c.iconified
}

func (c *Client) SetProducing(toggle Toggle) {
	c.producing = toggle.Eval(c.producing)
}

func (c *Client) IsProducing() bool {
	return c.producing
}

func (c *Client) SetSticky(toggle Toggle) {
	c.sticky = toggle.Eval(c.sticky)

	switch {
	case c.sticky && c.outsideState == StateFocused:
		c.outsideState = StateFocusedSticky
	case c.sticky && c.outsideState == StateUnfocused:
		c.outsideState = StateUnfocusedSticky
	case !c.sticky && c.outsideState == StateFocusedSticky:
		c.outsideState = StateFocused
	case !c.sticky && c.outsideState == StateUnfocusedSticky:
		c.outsideState = StateUnfocused
	}
}

func (c *Client) IsSticky() bool {
	return c.sticky
}

func (c *Client) SetDisowned(toggle Toggle) {
	c.disowned = toggle.Eval(c.disowned)

	switch {
	case c.disowned && c.outsideState == StateFocused:
		c.outsideState = StateFocusedDisowned
	case c.disowned && c.outsideState == StateUnfocused:
		c.outsideState = StateUnfocusedDisowned
	case !c.disowned && c.outsideState == StateFocusedDisowned:
		c.outsideState = StateFocused
	case !c.disowned && c.outsideState == StateUnfocusedDisowned:
		c.outsideState = StateUnfocused
	}
}

func (c *Client) IsDisowned() bool {
	return c.disowned
}

// OutsideState returns the decoration state, with urgency overriding
// whatever focus state is recorded.
func (c *Client) OutsideState() OutsideState {
	if c.urgent {
		return StateUrgent
	}
	return c.outsideState
}

func (c *Client) Pid() winsys.Pid {
	return c.pid
}

func (c *Client) Ppid() winsys.Pid {
	return c.ppid
}

func (c *Client) LastFocused() time.Time {
	return c.lastFocused
}

func (c *Client) SetLastFocused(t time.Time) {
	c.lastFocused = t
}

func (c *Client) ManagedSince() time.Time {
	return c.managedSince
}

// ExpectUnmap records that the next unmap of the client window was
// triggered by the manager itself and must not be treated as withdrawal.
func (c *Client) ExpectUnmap() {
	c.expectedUnmapCount++
}

// ConsumeUnmapIfExpecting reports and consumes one expected unmap.
func (c *Client) ConsumeUnmapIfExpecting() bool {
	expecting := c.expectedUnmapCount > 0
	if expecting {
		c.expectedUnmapCount--
	}
	return expecting
}

func (c *Client) IsExpectingUnmap() bool {
	return c.expectedUnmapCount > 0
}
