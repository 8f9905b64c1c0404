package workspace

import (
	"github.com/deurzen/wzrd/internal/geometry"
	"github.com/deurzen/wzrd/internal/winsys"
)

// BufferKind names the pointer-driven interaction a buffer backs.
type BufferKind int

const (
	BufferMove BufferKind = iota
	BufferResize
)

// Buffer captures the state of an in-progress pointer move or resize:
// the grabbed window, the grip it was grabbed by, and the pointer and
// window geometry when the grab started. The handle is an input-only
// window used to confine the pointer for the duration.
type Buffer struct {
	kind   BufferKind
	handle winsys.Window

	window       winsys.Window
	grip         winsys.Grip
	gripPos      geometry.Pos
	windowRegion geometry.Region
	occupied     bool
}

func NewBuffer(kind BufferKind, handle winsys.Window) *Buffer {
	return &Buffer{kind: kind, handle: handle}
}

func (b *Buffer) Kind() BufferKind {
	return b.kind
}

func (b *Buffer) Handle() winsys.Window {
	return b.handle
}

// Set arms the buffer for a grab of window.
func (b *Buffer) Set(window winsys.Window, grip winsys.Grip, pos geometry.Pos, region geometry.Region) {
	b.window = window
	b.grip = grip
	b.gripPos = pos
	b.windowRegion = region
	b.occupied = true
}

// Unset disarms the buffer.
func (b *Buffer) Unset() {
	b.window = 0
	b.grip = winsys.Grip{}
	b.gripPos = geometry.Pos{}
	b.windowRegion = geometry.Region{}
	b.occupied = false
}

func (b *Buffer) IsOccupied() bool {
	return b.occupied
}

func (b *Buffer) Window() (winsys.Window, bool) {
	return b.window, b.occupied
}

func (b *Buffer) Grip() (winsys.Grip, bool) {
	return b.grip, b.occupied
}

func (b *Buffer) GripPos() (geometry.Pos, bool) {
	return b.gripPos, b.occupied
}

func (b *Buffer) SetGripPos(pos geometry.Pos) {
	b.gripPos = pos
}

func (b *Buffer) WindowRegion() (geometry.Region, bool) {
	return b.windowRegion, b.occupied
}

func (b *Buffer) SetWindowRegion(region geometry.Region) {
	b.windowRegion = region
}
