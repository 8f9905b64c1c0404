package wm

import (
	"strconv"
	"strings"

	"github.com/deurzen/wzrd/internal/client"
	"github.com/deurzen/wzrd/internal/cycle"
	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/winsys"
	"github.com/deurzen/wzrd/internal/workspace"
	"github.com/deurzen/wzrd/internal/zone"
)

// Step sizes for chord-driven free-region adjustments, in pixels.
const (
	nudgeStep   = 15
	stretchStep = 15
	growStep    = 15
)

var layoutKindsByName = map[string]zone.LayoutKind{
	"float":         zone.Float,
	"blfloat":       zone.BLFloat,
	"singlefloat":   zone.SingleFloat,
	"blsinglefloat": zone.BLSingleFloat,
	"center":        zone.Center,
	"monocle":       zone.Monocle,
	"paper":         zone.Paper,
	"spaper":        zone.SPaper,
	"stack":         zone.Stack,
	"sstack":        zone.SStack,
	"bstack":        zone.BStack,
	"sbstack":       zone.SBStack,
}

// LayoutKindByName resolves a lowercase layout name as used in config
// files and control messages.
func LayoutKindByName(name string) (zone.LayoutKind, bool) {
	kind, ok := layoutKindsByName[strings.ToLower(name)]
	return kind, ok
}

var keyActions = map[string]KeyAction{
	"quit":        func(m *Model) { m.Exit() },
	"client-kill": func(m *Model) { m.KillFocus() },

	"focus-next":          func(m *Model) { m.CycleFocus(cycle.Forward) },
	"focus-prev":          func(m *Model) { m.CycleFocus(cycle.Backward) },
	"client-drag-next":    func(m *Model) { m.DragFocus(cycle.Forward) },
	"client-drag-prev":    func(m *Model) { m.DragFocus(cycle.Backward) },
	"clients-rotate-next": func(m *Model) { m.RotateClients(cycle.Forward) },
	"clients-rotate-prev": func(m *Model) { m.RotateClients(cycle.Backward) },
	"zone-cycle-next":     func(m *Model) { m.CycleZones(cycle.Forward) },
	"zone-cycle-prev":     func(m *Model) { m.CycleZones(cycle.Backward) },

	"workspace-next":           func(m *Model) { m.ActivateNextWorkspace(cycle.Forward) },
	"workspace-prev":           func(m *Model) { m.ActivateNextWorkspace(cycle.Backward) },
	"workspace-toggle":         func(m *Model) { m.ToggleWorkspace() },
	"client-to-next-workspace": func(m *Model) { m.MoveFocusToNextWorkspace(cycle.Forward) },
	"client-to-prev-workspace": func(m *Model) { m.MoveFocusToNextWorkspace(cycle.Backward) },

	"layout-toggle":       func(m *Model) { m.ToggleLayout() },
	"layout-float-retain": func(m *Model) { m.ApplyFloatRetainRegion() },

	"client-float-toggle":       func(m *Model) { m.SetFloatingFocus(client.Reverse) },
	"client-fullscreen-toggle":  func(m *Model) { m.SetFullscreenFocus(client.Reverse) },
	"client-contained-toggle":   func(m *Model) { m.SetContainedFocus(client.Reverse) },
	"client-invincible-toggle":  func(m *Model) { m.SetInvincibleFocus(client.Reverse) },
	"client-producing-toggle":   func(m *Model) { m.SetProducingFocus(client.Reverse) },
	"client-iconifyable-toggle": func(m *Model) { m.SetIconifyableFocus(client.Reverse) },
	"client-stick-toggle":       func(m *Model) { m.SetStickFocus(client.Reverse) },
	"client-iconify":            func(m *Model) { m.SetIconifyFocus(client.On) },
	"deiconify-pop":             func(m *Model) { m.PopDeiconify() },
	"deiconify-all":             func(m *Model) { m.DeiconifyAll(m.ActiveWorkspace()) },

	"client-center":     func(m *Model) { m.CenterFocus() },
	"client-snap-left":  func(m *Model) { m.SnapFocus(geometry.EdgeLeft) },
	"client-snap-right": func(m *Model) { m.SnapFocus(geometry.EdgeRight) },
	"client-snap-up":    func(m *Model) { m.SnapFocus(geometry.EdgeTop) },
	"client-snap-down":  func(m *Model) { m.SnapFocus(geometry.EdgeBottom) },

	"client-nudge-left":  func(m *Model) { m.NudgeFocus(geometry.EdgeLeft, nudgeStep) },
	"client-nudge-right": func(m *Model) { m.NudgeFocus(geometry.EdgeRight, nudgeStep) },
	"client-nudge-up":    func(m *Model) { m.NudgeFocus(geometry.EdgeTop, nudgeStep) },
	"client-nudge-down":  func(m *Model) { m.NudgeFocus(geometry.EdgeBottom, nudgeStep) },

	"client-stretch-left":  func(m *Model) { m.StretchFocus(geometry.EdgeLeft, stretchStep) },
	"client-stretch-right": func(m *Model) { m.StretchFocus(geometry.EdgeRight, stretchStep) },
	"client-stretch-up":    func(m *Model) { m.StretchFocus(geometry.EdgeTop, stretchStep) },
	"client-stretch-down":  func(m *Model) { m.StretchFocus(geometry.EdgeBottom, stretchStep) },
	"client-grow":          func(m *Model) { m.GrowRatioFocus(growStep) },
	"client-shrink":        func(m *Model) { m.GrowRatioFocus(-growStep) },

	"main-count-inc":  func(m *Model) { m.ChangeMainCount(workspace.Inc, 1) },
	"main-count-dec":  func(m *Model) { m.ChangeMainCount(workspace.Dec, 1) },
	"main-factor-inc": func(m *Model) { m.ChangeMainFactor(workspace.Inc, 0.05) },
	"main-factor-dec": func(m *Model) { m.ChangeMainFactor(workspace.Dec, 0.05) },

	"gap-inc":               func(m *Model) { m.ChangeGapSize(workspace.Inc, 5) },
	"gap-dec":               func(m *Model) { m.ChangeGapSize(workspace.Dec, 5) },
	"gap-reset":             func(m *Model) { m.ResetGapSize() },
	"margin-reset":          func(m *Model) { m.ResetMargin() },
	"layout-data-reset":     func(m *Model) { m.ResetLayoutData() },
	"layout-data-copy-prev": func(m *Model) { m.CopyPrevLayoutData() },

	"struts-toggle":      func(m *Model) { m.ToggleScreenStruts() },
	"zone-create-layout": func(m *Model) { m.CreateLayoutZone() },
	"zone-create-tab":    func(m *Model) { m.CreateTabZone() },
	"zone-delete":        func(m *Model) { m.DeleteZone() },

	"jump-urgent": func(m *Model) {
		m.JumpClient(JumpForCond(func(c *client.Client) bool {
			return c.IsUrgent()
		}))
	},
}

// ResolveKeyAction maps an action name from the config to its
// implementation. Besides the fixed table it accepts the parameterized
// families workspace-activate-<n>, client-to-workspace-<n> (1-based) and
// layout-set-<kind>.
func ResolveKeyAction(name string) (KeyAction, bool) {
	if action, ok := keyActions[name]; ok {
		return action, true
	}

	if rest, ok := strings.CutPrefix(name, "workspace-activate-"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 {
			return func(m *Model) { m.ActivateWorkspace(cycle.Index(n - 1)) }, true
		}
		return nil, false
	}

	if rest, ok := strings.CutPrefix(name, "client-to-workspace-"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 {
			return func(m *Model) { m.MoveFocusToWorkspace(cycle.Index(n - 1)) }, true
		}
		return nil, false
	}

	if rest, ok := strings.CutPrefix(name, "layout-set-"); ok {
		if kind, known := LayoutKindByName(rest); known {
			return func(m *Model) { m.SetLayout(kind) }, true
		}
		return nil, false
	}

	if rest, ok := strings.CutPrefix(name, "jump-workspace-"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 {
			return func(m *Model) {
				m.JumpClient(JumpOnWorkspace(cycle.Index(n-1), workspace.SelectAtActive()))
			}, true
		}
		return nil, false
	}

	return nil, false
}

// ResolveMouseAction maps an action name to a mouse action. The move and
// resize actions focus the pressed window first, matching click-to-drag
// expectations.
func ResolveMouseAction(name string) (MouseAction, bool) {
	switch name {
	case "client-move":
		return MouseAction{
			Focus: true,
			Do: func(m *Model, window winsys.Window, onWindow bool) {
				if onWindow {
					m.StartMoving(window)
				}
			},
		}, true
	case "client-resize":
		return MouseAction{
			Focus: true,
			Do: func(m *Model, window winsys.Window, onWindow bool) {
				if onWindow {
					m.StartResizing(window)
				}
			},
		}, true
	case "client-center":
		return MouseAction{
			Do: func(m *Model, window winsys.Window, onWindow bool) {
				if onWindow {
					m.CenterWindow(window)
				}
			},
		}, true
	case "client-kill":
		return MouseAction{
			Do: func(m *Model, window winsys.Window, onWindow bool) {
				if onWindow {
					m.KillWindow(window)
				}
			},
		}, true
	case "client-fullscreen-toggle":
		return MouseAction{
			Do: func(m *Model, window winsys.Window, onWindow bool) {
				if onWindow {
					m.SetFullscreenWindow(window, client.Reverse)
				}
			},
		}, true
	case "client-float-toggle":
		return MouseAction{
			Do: func(m *Model, window winsys.Window, onWindow bool) {
				if onWindow {
					m.SetFloatingWindow(window, client.Reverse)
				}
			},
		}, true
	}

	if action, ok := ResolveKeyAction(name); ok {
		return MouseAction{
			Do: func(m *Model, _ winsys.Window, _ bool) { action(m) },
		}, true
	}

	return MouseAction{}, false
}
