package config

import (
	"fmt"
	"strings"

	"github.com/deurzen/wzrd/internal/winsys"
)

// KeyChord is a parsed key binding. Spec is the normalized modifier-key
// string the X keybind machinery resolves.
type KeyChord struct {
	Spec string
}

// MouseChord is a parsed mouse binding with its target scope.
type MouseChord struct {
	Target    winsys.MouseInputTarget
	Button    winsys.Button
	Modifiers winsys.Modifier
}

var keyModifierNames = map[string]string{
	"ctrl":    "control",
	"control": "control",
	"shift":   "shift",
	"alt":     "mod1",
	"meta":    "mod1",
	"super":   "mod4",
	"mod4":    "mod4",
	"altgr":   "mod5",
}

var mouseModifiers = map[string]winsys.Modifier{
	"ctrl":    winsys.ModCtrl,
	"control": winsys.ModCtrl,
	"shift":   winsys.ModShift,
	"alt":     winsys.ModAlt,
	"meta":    winsys.ModAlt,
	"super":   winsys.ModSuper,
	"mod4":    winsys.ModSuper,
	"altgr":   winsys.ModAltGr,
}

var buttonNames = map[string]winsys.Button{
	"left":       winsys.ButtonLeft,
	"middle":     winsys.ButtonMiddle,
	"right":      winsys.ButtonRight,
	"scrollup":   winsys.ButtonScrollUp,
	"scrolldown": winsys.ButtonScrollDown,
	"backward":   winsys.ButtonBackward,
	"forward":    winsys.ButtonForward,
}

var mouseTargets = map[string]winsys.MouseInputTarget{
	"global": winsys.TargetGlobal,
	"root":   winsys.TargetRoot,
	"client": winsys.TargetClient,
}

// ParseKeyChord parses "super+shift+q" into a normalized chord. The final
// part is the key, everything before it a modifier.
func ParseKeyChord(chord string) (KeyChord, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(chord)), "+")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return KeyChord{}, fmt.Errorf("%q: missing key", chord)
	}

	key := parts[len(parts)-1]
	spec := make([]string, 0, len(parts))
	for _, part := range parts[:len(parts)-1] {
		name, ok := keyModifierNames[part]
		if !ok {
			return KeyChord{}, fmt.Errorf("%q: unknown modifier %q", chord, part)
		}
		spec = append(spec, name)
	}
	spec = append(spec, key)

	return KeyChord{Spec: strings.Join(spec, "-")}, nil
}

// ParseMouseChord parses "client:super+right". The target prefix is
// optional and defaults to client scope.
func ParseMouseChord(chord string) (MouseChord, error) {
	target := winsys.TargetClient
	body := strings.ToLower(strings.TrimSpace(chord))

	if scope, rest, found := strings.Cut(body, ":"); found {
		t, ok := mouseTargets[scope]
		if !ok {
			return MouseChord{}, fmt.Errorf("%q: unknown target %q", chord, scope)
		}
		target = t
		body = rest
	}

	parts := strings.Split(body, "+")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return MouseChord{}, fmt.Errorf("%q: missing button", chord)
	}

	button, ok := buttonNames[parts[len(parts)-1]]
	if !ok {
		return MouseChord{}, fmt.Errorf("%q: unknown button %q", chord, parts[len(parts)-1])
	}

	var modifiers winsys.Modifier
	for _, part := range parts[:len(parts)-1] {
		modifier, ok := mouseModifiers[part]
		if !ok {
			return MouseChord{}, fmt.Errorf("%q: unknown modifier %q", chord, part)
		}
		modifiers |= modifier
	}

	return MouseChord{Target: target, Button: button, Modifiers: modifiers}, nil
}
