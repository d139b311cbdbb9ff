package engine

import (
	"math"

	"github.com/marben/mandelgrid"
)

// MirrorEligible reports whether the evaluation may compute only the top
// half of the grid and reflect it: rows h and Height-1-h then hold identical
// results.
//
// This needs the recurrence to be symmetric about the real axis (classic
// Mandelbrot, or Julia with a real constant) and the viewport's vertical
// center to coincide with that axis, i.e. cy(h) == -cy(Height-1-h) for every
// row up to rounding.
func MirrorEligible(v mandelgrid.Viewport, p mandelgrid.FractalParams) bool {
	if p.Kind == mandelgrid.Julia && p.JuliaY != 0 {
		return false
	}
	if v.Height < 2 {
		return false
	}
	center := v.MinY + v.ScaleY*float64(v.Height-1)/2
	return math.Abs(center) <= math.Abs(v.ScaleY)*1e-9
}

// mirrorRow copies row h into its reflection Height-1-h. The caller computes
// only rows [0, (Height+1)/2); an odd center row is its own reflection and
// is never copied.
func mirrorRow(buf mandelgrid.PixelBuffer, width, height, h int) {
	src := buf[h*width : (h+1)*width]
	dst := buf[(height-1-h)*width : (height-h)*width]
	copy(dst, src)
}
