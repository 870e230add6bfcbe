// Package geometry maps a fixed-aspect video frame onto a display surface of
// arbitrary size. It is pure math: no package state, no side effects.
//
// All sizes are in square units. Terminal cells are not square, so callers
// convert with CellViewport before computing and Rect.Cells afterwards.
package geometry

import "math"

// Size is a width/height pair. It describes both the content (the negotiated
// video frame) and the viewport (the current render surface).
type Size struct {
	Width  float64
	Height float64
}

// Valid reports whether both dimensions are strictly positive. Every
// computation in this package is undefined for invalid sizes.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0 &&
		!math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0)
}

// Resolution is the displayed size of the content within a viewport.
type Resolution struct {
	Width  float64
	Height float64
}

// ComputeResolution returns the displayed size of content inside viewport
// under the given policy.
//
// Fit keeps the whole frame visible (letterboxed), Zoom covers the whole
// viewport (cropped by the container) and Stretch ignores the aspect ratio.
func ComputeResolution(content, viewport Size, policy Policy) Resolution {
	aspect := content.Height / content.Width

	switch policy {
	case Stretch:
		return Resolution{Width: viewport.Width, Height: viewport.Height}

	case Zoom:
		if viewport.Height > viewport.Width*aspect {
			zoom := viewport.Height / content.Height
			return Resolution{Width: content.Width * zoom, Height: viewport.Height}
		}
		zoom := viewport.Width / content.Width
		return Resolution{Width: viewport.Width, Height: content.Height * zoom}

	default:
		if viewport.Height > viewport.Width*aspect {
			return Resolution{Width: viewport.Width, Height: viewport.Width * aspect}
		}
		return Resolution{Width: viewport.Height / aspect, Height: viewport.Height}
	}
}

// Rect is an axis-aligned rectangle in viewport coordinates. X and Y may be
// negative when the content overshoots the viewport.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Centered returns r centered in viewport.
func Centered(r Resolution, viewport Size) Rect {
	return Rect{
		X:      (viewport.Width - r.Width) / 2,
		Y:      (viewport.Height - r.Height) / 2,
		Width:  r.Width,
		Height: r.Height,
	}
}

// Intersect returns the overlap of r and o. The result has zero size when
// they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.X+r.Width, o.X+o.Width)
	y1 := math.Min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
