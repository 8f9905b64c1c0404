package zone

import (
	"github.com/deurzen/wzrd/internal/geometry"
)

// Color is a 24-bit RGB pixel value.
type Color = uint32

// ColorScheme holds the border and frame colors used for each client state.
type ColorScheme struct {
	Focused   Color
	FDisowned Color
	FSticky   Color
	Unfocused Color
	UDisowned Color
	USticky   Color
	Urgent    Color
}

// DefaultColorScheme is the scheme applied to decorations that do not
// configure their own.
var DefaultColorScheme = ColorScheme{
	Focused:   0xe78a53,
	FDisowned: 0xc1c1c1,
	FSticky:   0x5f8787,
	Unfocused: 0x333333,
	UDisowned: 0x999999,
	USticky:   0x444444,
	Urgent:    0xfbcb97,
}

// Border is a uniform-width window border.
type Border struct {
	Width  int
	Colors ColorScheme
}

// Frame is a possibly non-uniform window frame.
type Frame struct {
	Extents geometry.Extents
	Colors  ColorScheme
}

// Decoration describes the border and frame drawn around a client window.
// A nil Border or Frame means that part is absent.
type Decoration struct {
	Border *Border
	Frame  *Frame
}

// NoDecoration leaves clients bare.
var NoDecoration = Decoration{}

// FreeDecoration is the frame applied to clients in free layouts.
var FreeDecoration = Decoration{
	Frame: &Frame{
		Extents: geometry.Extents{Left: 3, Right: 1, Top: 1, Bottom: 1},
		Colors:  DefaultColorScheme,
	},
}

// Extents returns the total padding the decoration adds on each edge.
func (d Decoration) Extents() geometry.Extents {
	var extents geometry.Extents
	if d.Border != nil {
		extents.Left += d.Border.Width
		extents.Right += d.Border.Width
		extents.Top += d.Border.Width
		extents.Bottom += d.Border.Width
	}
	if d.Frame != nil {
		extents.Left += d.Frame.Extents.Left
		extents.Right += d.Frame.Extents.Right
		extents.Top += d.Frame.Extents.Top
		extents.Bottom += d.Frame.Extents.Bottom
	}
	return extents
}

// Equal reports whether two decorations add the same visual surround.
func (d Decoration) Equal(other Decoration) bool {
	if (d.Border == nil) != (other.Border == nil) {
		return false
	}
	if (d.Frame == nil) != (other.Frame == nil) {
		return false
	}
	if d.Border != nil && *d.Border != *other.Border {
		return false
	}
	if d.Frame != nil && *d.Frame != *other.Frame {
		return false
	}
	return true
}
