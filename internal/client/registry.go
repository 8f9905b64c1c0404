package client

import (
	"github.com/deurzen/wzrd/internal/winsys"
)

// Registry indexes managed clients by both their client window and the
// frame wrapped around it.
type Registry struct {
	clients map[winsys.Window]*Client
	frames  map[winsys.Window]winsys.Window
	windows map[winsys.Window]winsys.Window
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[winsys.Window]*Client),
		frames:  make(map[winsys.Window]winsys.Window),
		windows: make(map[winsys.Window]winsys.Window),
	}
}

// Add indexes a newly managed client.
func (r *Registry) Add(c *Client) {
	r.clients[c.Window()] = c
	r.frames[c.Frame()] = c.Window()
	r.windows[c.Window()] = c.Frame()
}

// Remove drops the client recorded for window, if any.
func (r *Registry) Remove(window winsys.Window) {
	if c, ok := r.clients[window]; ok {
		delete(r.frames, c.Frame())
		delete(r.windows, c.Window())
		delete(r.clients, window)
	}
}

// Get returns the client managing window, where window may be either
// the client window or its frame.
func (r *Registry) Get(window winsys.Window) (*Client, bool) {
	if c, ok := r.clients[window]; ok {
		return c, true
	}
	if inner, ok := r.frames[window]; ok {
		c, ok := r.clients[inner]
		return c, ok
	}
	return nil, false
}

// GetByWindow returns the client whose client window is window.
func (r *Registry) GetByWindow(window winsys.Window) (*Client, bool) {
	c, ok := r.clients[window]
	return c, ok
}

// FrameFor maps a client window to its frame.
func (r *Registry) FrameFor(window winsys.Window) (winsys.Window, bool) {
	frame, ok := r.windows[window]
	return frame, ok
}

// WindowFor maps a frame back to its client window.
func (r *Registry) WindowFor(frame winsys.Window) (winsys.Window, bool) {
	window, ok := r.frames[frame]
	return window, ok
}

// IsClientWindow reports whether window is a managed client window,
// as opposed to a frame or an unmanaged window.
func (r *Registry) IsClientWindow(window winsys.Window) bool {
	_, ok := r.clients[window]
	return ok
}

func (r *Registry) Len() int {
	return len(r.clients)
}

// All returns every managed client in unspecified order.
func (r *Registry) All() []*Client {
	clients := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		clients = append(clients, c)
	}
	return clients
}
