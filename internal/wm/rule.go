package wm

import (
	"strconv"

	"github.com/deurzen/wzrd/internal/client"
)

// Rules are per-client startup directives decoded from the WM_CLASS
// instance. An instance of the form "wzrd:<flags>" carries single-letter
// flags: "f" float, "F" fullscreen, "c" center, "w<n>" target workspace,
// each invertible with a leading "!".
type Rules struct {
	Float      *bool
	Center     *bool
	Fullscreen *bool
	Workspace  *int
	Context    *int
}

func (r Rules) Propagate(c *client.Client) {
	if r.Float != nil {
		c.SetFloating(client.ToggleFrom(*r.Float))
	}

	if r.Fullscreen != nil {
		c.SetFullscreen(client.ToggleFrom(*r.Fullscreen))
	}

	if r.Workspace != nil {
		c.SetWorkspace(*r.Workspace)
	}

	if r.Context != nil {
		c.SetContext(*r.Context)
	}
}

func (r Rules) float() bool {
	return r.Float != nil && *r.Float
}

func (r Rules) center() bool {
	return r.Center != nil && *r.Center
}

func (r Rules) fullscreen() bool {
	return r.Fullscreen != nil && *r.Fullscreen
}

func detectRules(instance string, workspaceCount int) Rules {
	const prefix = wmName + ":"

	var rules Rules

	if len(instance) <= len(prefix) || instance[:len(prefix)] != prefix {
		return rules
	}

	flags := instance[len(prefix):]
	invert := false
	workspace := false

	for _, flag := range flags {
		switch {
		case flag == '!':
			invert = true
			continue
		case flag == 'w':
			workspace = true
			continue
		case workspace:
			if number, err := strconv.Atoi(string(flag)); err == nil && number < workspaceCount {
				rules.Workspace = &number
			}
		case flag == 'f':
			float := !invert
			rules.Float = &float
		case flag == 'F':
			fullscreen := !invert
			rules.Fullscreen = &fullscreen
		case flag == 'c':
			center := !invert
			rules.Center = &center
		}

		invert = false
		workspace = false
	}

	return rules
}
