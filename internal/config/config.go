package config

import (
	"fmt"
)

// Config is the effective configuration after defaults and includes have
// been merged and validated.
type Config struct {
	LogLevel          string
	FocusFollowsMouse bool
	Workspaces        []string
	DefaultLayout     string
	GapSize           int
	Margin            Margin
	KeyBindings       map[string]string
	MouseBindings     map[string]string
	IgnoredClasses    []string
	IgnoredInstances  []string
}

type Margin struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// layoutNames are the accepted default_layout values, matching the layout
// kinds of the zone engine.
var layoutNames = map[string]struct{}{
	"float":         {},
	"blfloat":       {},
	"singlefloat":   {},
	"blsinglefloat": {},
	"center":        {},
	"monocle":       {},
	"paper":         {},
	"spaper":        {},
	"stack":         {},
	"sstack":        {},
	"bstack":        {},
	"sbstack":       {},
}

var logLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:          "info",
		FocusFollowsMouse: false,
		Workspaces: []string{
			"main", "web", "term", "4", "5", "6", "7", "8", "9", "10",
		},
		DefaultLayout: "stack",
		GapSize:       0,
		KeyBindings:   DefaultKeyBindings(),
		MouseBindings: DefaultMouseBindings(),
	}
}

// DefaultKeyBindings is the stock chord table. A config file entry for the
// same chord replaces the stock action; binding a chord to "none" unbinds
// it.
func DefaultKeyBindings() map[string]string {
	bindings := map[string]string{
		"super+ctrl+shift+q": "quit",
		"super+q":            "client-kill",

		"super+j":       "focus-next",
		"super+k":       "focus-prev",
		"super+shift+j": "client-drag-next",
		"super+shift+k": "client-drag-prev",
		"super+ctrl+j":  "clients-rotate-next",
		"super+ctrl+k":  "clients-rotate-prev",
		"super+c":       "zone-cycle-next",
		"super+shift+c": "zone-cycle-prev",

		"super+bracketright":       "workspace-next",
		"super+bracketleft":        "workspace-prev",
		"super+backslash":          "workspace-toggle",
		"super+shift+bracketright": "client-to-next-workspace",
		"super+shift+bracketleft":  "client-to-prev-workspace",

		"super+f":       "layout-set-float",
		"super+t":       "layout-set-stack",
		"super+shift+t": "layout-set-sstack",
		"super+b":       "layout-set-bstack",
		"super+m":       "layout-set-monocle",
		"super+g":       "layout-set-center",
		"super+p":       "layout-set-paper",
		"super+shift+p": "layout-set-spaper",
		"super+z":       "layout-toggle",
		"super+shift+f": "layout-float-retain",

		"super+space":       "client-float-toggle",
		"super+x":           "client-fullscreen-toggle",
		"super+shift+x":     "client-contained-toggle",
		"super+i":           "client-iconify",
		"super+shift+i":     "deiconify-pop",
		"super+ctrl+i":      "deiconify-all",
		"super+s":           "client-stick-toggle",
		"super+shift+v":     "client-invincible-toggle",
		"super+shift+o":     "client-producing-toggle",
		"super+shift+space": "client-center",

		"super+ctrl+left":  "client-snap-left",
		"super+ctrl+right": "client-snap-right",
		"super+ctrl+up":    "client-snap-up",
		"super+ctrl+down":  "client-snap-down",
		"super+alt+h":      "client-nudge-left",
		"super+alt+l":      "client-nudge-right",
		"super+alt+k":      "client-nudge-up",
		"super+alt+j":      "client-nudge-down",

		"super+alt+shift+h": "client-stretch-left",
		"super+alt+shift+l": "client-stretch-right",
		"super+alt+shift+k": "client-stretch-up",
		"super+alt+shift+j": "client-stretch-down",
		"super+equal":       "client-grow",
		"super+minus":       "client-shrink",

		"super+h":                 "main-factor-dec",
		"super+l":                 "main-factor-inc",
		"super+period":            "main-count-inc",
		"super+comma":             "main-count-dec",
		"super+shift+equal":       "gap-inc",
		"super+shift+minus":       "gap-dec",
		"super+ctrl+equal":        "gap-reset",
		"super+ctrl+shift+equal":  "margin-reset",
		"super+shift+d":           "layout-data-reset",
		"super+ctrl+d":            "layout-data-copy-prev",
		"super+shift+s":           "struts-toggle",
		"super+ctrl+z":            "zone-create-layout",
		"super+ctrl+t":            "zone-create-tab",
		"super+ctrl+x":            "zone-delete",
		"super+u":                 "jump-urgent",
	}

	for i := 1; i <= 10; i++ {
		key := fmt.Sprintf("%d", i%10)
		bindings[fmt.Sprintf("super+%s", key)] = fmt.Sprintf("workspace-activate-%d", i)
		bindings[fmt.Sprintf("super+shift+%s", key)] = fmt.Sprintf("client-to-workspace-%d", i)
	}

	return bindings
}

func DefaultMouseBindings() map[string]string {
	return map[string]string{
		"client:super+left":       "client-move",
		"client:super+right":      "client-resize",
		"client:super+middle":     "client-center",
		"global:super+scrollup":   "workspace-next",
		"global:super+scrolldown": "workspace-prev",
	}
}

// Build produces the effective config from a merged raw config.
func Build(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.FocusFollowsMouse != nil {
		cfg.FocusFollowsMouse = *raw.FocusFollowsMouse
	}
	if raw.Workspaces != nil {
		cfg.Workspaces = raw.Workspaces
	}
	if raw.DefaultLayout != nil {
		cfg.DefaultLayout = *raw.DefaultLayout
	}
	if raw.GapSize != nil {
		cfg.GapSize = *raw.GapSize
	}
	if raw.Margin != nil {
		cfg.Margin = Margin{
			Left:   derefInt(raw.Margin.Left, 0),
			Right:  derefInt(raw.Margin.Right, 0),
			Top:    derefInt(raw.Margin.Top, 0),
			Bottom: derefInt(raw.Margin.Bottom, 0),
		}
	}
	for chord, action := range raw.KeyBindings {
		if action == "none" {
			delete(cfg.KeyBindings, chord)
			continue
		}
		cfg.KeyBindings[chord] = action
	}
	for chord, action := range raw.MouseBindings {
		if action == "none" {
			delete(cfg.MouseBindings, chord)
			continue
		}
		cfg.MouseBindings[chord] = action
	}
	if raw.IgnoredClasses != nil {
		cfg.IgnoredClasses = raw.IgnoredClasses
	}
	if raw.IgnoredInstances != nil {
		cfg.IgnoredInstances = raw.IgnoredInstances
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}

	if len(c.Workspaces) == 0 {
		return fmt.Errorf("workspaces: at least one workspace is required")
	}
	seen := make(map[string]struct{}, len(c.Workspaces))
	for _, name := range c.Workspaces {
		if name == "" {
			return fmt.Errorf("workspaces: names must be non-empty")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("workspaces: duplicate name %q", name)
		}
		seen[name] = struct{}{}
	}

	if _, ok := layoutNames[c.DefaultLayout]; !ok {
		return fmt.Errorf("default_layout: unknown layout %q", c.DefaultLayout)
	}

	if c.GapSize < 0 {
		return fmt.Errorf("gap_size: must not be negative")
	}
	if c.Margin.Left < 0 || c.Margin.Right < 0 || c.Margin.Top < 0 || c.Margin.Bottom < 0 {
		return fmt.Errorf("margin: edges must not be negative")
	}

	for chord := range c.KeyBindings {
		if _, err := ParseKeyChord(chord); err != nil {
			return fmt.Errorf("key_bindings: %w", err)
		}
	}
	for chord := range c.MouseBindings {
		if _, err := ParseMouseChord(chord); err != nil {
			return fmt.Errorf("mouse_bindings: %w", err)
		}
	}

	return nil
}

func derefInt(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
