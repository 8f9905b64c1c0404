package geometry

import "math"

// SizeHints carry a window's ICCCM WM_NORMAL_HINTS. A zero field means the
// window did not supply that hint.
type SizeHints struct {
	ByUser     bool
	Pos        *Pos
	MinWidth   int
	MinHeight  int
	MaxWidth   int
	MaxHeight  int
	BaseWidth  int
	BaseHeight int
	IncWidth   int
	IncHeight  int
	MinRatio   float64
	MaxRatio   float64

	MinRatioVulgar Ratio
	MaxRatioVulgar Ratio
}

// Apply constrains dim to the hints: min/max clamping, aspect-ratio
// enforcement relative to the base dimension, and resize-increment snapping.
func (sh *SizeHints) Apply(dim *Dim) {
	destWidth := dim.W
	destHeight := dim.H

	if sh.MinWidth > 0 && destWidth < sh.MinWidth {
		destWidth = sh.MinWidth
	}
	if sh.MinHeight > 0 && destHeight < sh.MinHeight {
		destHeight = sh.MinHeight
	}
	if sh.MaxWidth > 0 && destWidth > sh.MaxWidth {
		destWidth = sh.MaxWidth
	}
	if sh.MaxHeight > 0 && destHeight > sh.MaxHeight {
		destHeight = sh.MaxHeight
	}

	baseWidth := sh.BaseWidth
	baseHeight := sh.BaseHeight

	width := destWidth
	if baseWidth < destWidth {
		width = destWidth - baseWidth
	}

	height := destHeight
	if baseHeight < destHeight {
		height = destHeight - baseHeight
	}

	if sh.MinRatio > 0 || sh.MaxRatio > 0 {
		if height == 0 {
			height = 1
		}

		currentRatio := float64(width) / float64(height)
		newRatio := 0.0

		if sh.MinRatio > 0 && currentRatio < sh.MinRatio {
			newRatio = sh.MinRatio
		}
		if newRatio == 0 && sh.MaxRatio > 0 && currentRatio > sh.MaxRatio {
			newRatio = sh.MaxRatio
		}

		if newRatio > 0 {
			height = int(math.Round(float64(width) / newRatio))
			width = int(math.Round(float64(height) * newRatio))

			destWidth = width + baseWidth
			destHeight = height + baseHeight
		}
	}

	if sh.IncHeight > 0 && destHeight >= baseHeight {
		destHeight -= baseHeight
		destHeight -= destHeight % sh.IncHeight
		destHeight += baseHeight
	}

	if sh.IncWidth > 0 && destWidth >= baseWidth {
		destWidth -= baseWidth
		destWidth -= destWidth % sh.IncWidth
		destWidth += baseWidth
	}

	if destWidth < 0 {
		destWidth = 0
	}
	if destHeight < 0 {
		destHeight = 0
	}

	dim.W = destWidth
	dim.H = destHeight
}

// Equal compares the constraint-relevant hint fields, ignoring placement.
func (sh *SizeHints) Equal(other *SizeHints) bool {
	if other == nil {
		return false
	}
	return sh.MinWidth == other.MinWidth &&
		sh.MinHeight == other.MinHeight &&
		sh.MaxWidth == other.MaxWidth &&
		sh.MaxHeight == other.MaxHeight &&
		sh.BaseWidth == other.BaseWidth &&
		sh.BaseHeight == other.BaseHeight &&
		sh.IncWidth == other.IncWidth &&
		sh.IncHeight == other.IncHeight &&
		sh.MinRatioVulgar == other.MinRatioVulgar &&
		sh.MaxRatioVulgar == other.MaxRatioVulgar
}
