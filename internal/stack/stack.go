// Package stack tracks the restacking order of windows that live outside
// the tiled layer: desktop and dock windows, windows pinned above or
// below, and notifications.
package stack

import (
	"github.com/deurzen/wzrd/internal/winsys"
)

// Layer is a restacking stratum, ordered bottom to top.
type Layer int

const (
	LayerDesktop Layer = iota
	LayerBelow
	LayerDock
	LayerAbove
	LayerNotification
)

// Layers lists every layer bottom to top.
var Layers = []Layer{
	LayerDesktop,
	LayerBelow,
	LayerDock,
	LayerAbove,
	LayerNotification,
}

func (l Layer) String() string {
	switch l {
	case LayerDesktop:
		return "desktop"
	case LayerBelow:
		return "below"
	case LayerDock:
		return "dock"
	case LayerAbove:
		return "above"
	case LayerNotification:
		return "notification"
	}
	return "unknown"
}

// Manager records which layer each tracked window lives in, plus pairwise
// above/below pinning between arbitrary windows.
type Manager struct {
	windowLayers map[winsys.Window]Layer
	layerWindows map[Layer][]winsys.Window

	aboveOther map[winsys.Window]winsys.Window
	belowOther map[winsys.Window]winsys.Window
}

func NewManager() *Manager {
	layerWindows := make(map[Layer][]winsys.Window, len(Layers))
	for _, layer := range Layers {
		layerWindows[layer] = nil
	}

	return &Manager{
		windowLayers: make(map[winsys.Window]Layer),
		layerWindows: layerWindows,
		aboveOther:   make(map[winsys.Window]winsys.Window),
		belowOther:   make(map[winsys.Window]winsys.Window),
	}
}

// AddWindow appends window to layer. Windows already tracked keep their
// original layer.
func (m *Manager) AddWindow(window winsys.Window, layer Layer) {
	if _, ok := m.windowLayers[window]; ok {
		return
	}
	m.layerWindows[layer] = append(m.layerWindows[layer], window)
	m.windowLayers[window] = layer
}

// AddAboveOther pins window directly above sibling. The first pin wins.
func (m *Manager) AddAboveOther(window, sibling winsys.Window) {
	if _, ok := m.aboveOther[window]; !ok {
		m.aboveOther[window] = sibling
	}
}

// AddBelowOther pins window directly below sibling. The first pin wins.
func (m *Manager) AddBelowOther(window, sibling winsys.Window) {
	if _, ok := m.belowOther[window]; !ok {
		m.belowOther[window] = sibling
	}
}

// RemoveWindow drops window from its layer and from any pinning.
func (m *Manager) RemoveWindow(window winsys.Window) {
	if layer, ok := m.windowLayers[window]; ok {
		windows := m.layerWindows[layer]
		for i, w := range windows {
			if w == window {
				m.layerWindows[layer] = append(windows[:i], windows[i+1:]...)
				break
			}
		}
		delete(m.windowLayers, window)
	}

	delete(m.aboveOther, window)
	delete(m.belowOther, window)
}

// RelayerWindow moves window to another layer, placing it topmost there.
func (m *Manager) RelayerWindow(window winsys.Window, layer Layer) {
	m.RemoveWindow(window)
	m.AddWindow(window, layer)
}

// RaiseWindow moves window to the top of its layer.
func (m *Manager) RaiseWindow(window winsys.Window) {
	layer, ok := m.windowLayers[window]
	if !ok {
		return
	}

	windows := m.layerWindows[layer]
	for i, w := range windows {
		if w == window {
			windows = append(windows[:i], windows[i+1:]...)
			m.layerWindows[layer] = append(windows, window)
			return
		}
	}
}

// LayerWindows returns the windows of layer, bottom to top.
func (m *Manager) LayerWindows(layer Layer) []winsys.Window {
	windows := m.layerWindows[layer]
	out := make([]winsys.Window, len(windows))
	copy(out, windows)
	return out
}

// ApplyRelative splices pinned windows next to their siblings: a window
// pinned above its sibling directly follows it, one pinned below directly
// precedes it. Pinned windows are first removed from their natural slot;
// pins whose sibling is absent drop the window from the order.
func (m *Manager) ApplyRelative(order []winsys.Window) []winsys.Window {
	if len(m.aboveOther) == 0 && len(m.belowOther) == 0 {
		return order
	}

	pinned := make(map[winsys.Window]struct{}, len(m.aboveOther)+len(m.belowOther))
	for window := range m.aboveOther {
		pinned[window] = struct{}{}
	}
	for window := range m.belowOther {
		pinned[window] = struct{}{}
	}

	out := make([]winsys.Window, 0, len(order))
	for _, window := range order {
		if _, ok := pinned[window]; !ok {
			out = append(out, window)
		}
	}

	for window, sibling := range m.aboveOther {
		if i := indexOf(out, sibling); i >= 0 {
			out = append(out, 0)
			copy(out[i+2:], out[i+1:])
			out[i+1] = window
		}
	}

	for window, sibling := range m.belowOther {
		if i := indexOf(out, sibling); i >= 0 {
			out = append(out, 0)
			copy(out[i+1:], out[i:])
			out[i] = window
		}
	}

	return out
}

func indexOf(windows []winsys.Window, window winsys.Window) int {
	for i, candidate := range windows {
		if candidate == window {
			return i
		}
	}
	return -1
}

// AboveOther returns the sibling window is pinned above, if any.
func (m *Manager) AboveOther(window winsys.Window) (winsys.Window, bool) {
	sibling, ok := m.aboveOther[window]
	return sibling, ok
}

// BelowOther returns the sibling window is pinned below, if any.
func (m *Manager) BelowOther(window winsys.Window) (winsys.Window, bool) {
	sibling, ok := m.belowOther[window]
	return sibling, ok
}
