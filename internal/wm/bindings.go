package wm

import (
	"github.com/deurzen/wzrd/internal/winsys"
)

// KeyAction runs in response to a bound key chord.
type KeyAction func(*Model)

// KeyBindings maps grabbed key codes to actions.
type KeyBindings map[winsys.KeyCode]KeyAction

// MouseAction runs in response to a bound mouse chord. The window argument
// is the zero Window for global and root bindings. Focus requests that the
// pressed window be focused after the action.
type MouseAction struct {
	Focus bool
	Do    func(m *Model, window winsys.Window, onWindow bool)
}

// MouseBindings maps mouse chords, keyed by target scope, to actions.
type MouseBindings map[winsys.MouseInput]MouseAction

func (b MouseBindings) inputs() []winsys.MouseInput {
	inputs := make([]winsys.MouseInput, 0, len(b))
	for input := range b {
		inputs = append(inputs, input)
	}
	return inputs
}

func (b KeyBindings) keyCodes() []winsys.KeyCode {
	keyCodes := make([]winsys.KeyCode, 0, len(b))
	for keyCode := range b {
		keyCodes = append(keyCodes, keyCode)
	}
	return keyCodes
}
