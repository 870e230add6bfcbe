package geometry

import "math"

// Affine is a scale-then-translate transform for render targets that expect
// a matrix. The untransformed target stretches the frame over the whole
// viewport; the transform shrinks or grows it to the computed resolution and
// centers it.
type Affine struct {
	ScaleX, ScaleY         float64
	TranslateX, TranslateY float64
}

// TransformFor builds the transform that displays r centered in viewport.
func TransformFor(r Resolution, viewport Size) Affine {
	return Affine{
		ScaleX:     r.Width / viewport.Width,
		ScaleY:     r.Height / viewport.Height,
		TranslateX: (viewport.Width - r.Width) / 2,
		TranslateY: (viewport.Height - r.Height) / 2,
	}
}

// Apply maps a point of the untransformed target.
func (a Affine) Apply(x, y float64) (float64, float64) {
	return x*a.ScaleX + a.TranslateX, y*a.ScaleY + a.TranslateY
}

// Bounds returns where the full-viewport frame lands after the transform.
func (a Affine) Bounds(viewport Size) Rect {
	x0, y0 := a.Apply(0, 0)
	x1, y1 := a.Apply(viewport.Width, viewport.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// AspectContainer is the clipping render target: it is given only the
// content aspect ratio (width / height) and a policy, and lays its child out
// itself, cropping whatever overshoots.
type AspectContainer struct {
	AspectRatio float64
	Policy      Policy
}

// Measure returns the child's size inside viewport.
func (c AspectContainer) Measure(viewport Size) Resolution {
	return ComputeResolution(Size{Width: c.AspectRatio, Height: 1}, viewport, c.Policy)
}

// Layout returns the child's rectangle, which may extend past the viewport.
func (c AspectContainer) Layout(viewport Size) Rect {
	return Centered(c.Measure(viewport), viewport)
}

// Visible returns the part of the child left after clipping to the viewport.
func (c AspectContainer) Visible(viewport Size) Rect {
	return c.Layout(viewport).Intersect(Rect{Width: viewport.Width, Height: viewport.Height})
}

// CellViewport converts a cols x rows terminal area into square units.
// cellAspect is the height of a cell divided by its width.
func CellViewport(cols, rows int, cellAspect float64) Size {
	if cellAspect <= 0 {
		cellAspect = 1
	}
	return Size{Width: float64(cols), Height: float64(rows) * cellAspect}
}

// Cells converts r back to whole terminal cells.
func (r Rect) Cells(cellAspect float64) (x, y, w, h int) {
	if cellAspect <= 0 {
		cellAspect = 1
	}
	x = int(math.Round(r.X))
	y = int(math.Round(r.Y / cellAspect))
	w = int(math.Round(r.X+r.Width)) - x
	h = int(math.Round((r.Y+r.Height)/cellAspect)) - y
	return x, y, w, h
}
