// Package eval implements the escape-time recurrence: a scalar per-point
// evaluator, a lane-wise batched evaluator and the analytic interior pruning
// that short-circuits both.
package eval

import "github.com/marben/mandelgrid"

// Params is the per-evaluation view of the recurrence, constant-folded once
// from the public FractalParams so the inner loops touch no struct methods.
type Params struct {
	Julia          bool
	ConstX, ConstY float64 // fixed c; read only when Julia is true
	EscapeSq       float64 // escape radius squared
	MaxIters       int
	Interior       []InteriorRegion // known-interior pruning, may be nil
}

// NewParams folds p and the iteration budget into loop-ready form.
func NewParams(p mandelgrid.FractalParams, maxIters int) Params {
	r := p.Radius()
	ep := Params{
		Julia:    p.Kind == mandelgrid.Julia,
		ConstX:   p.JuliaX,
		ConstY:   p.JuliaY,
		EscapeSq: r * r,
		MaxIters: maxIters,
	}
	if p.Kind == mandelgrid.Mandelbrot {
		ep.Interior = MandelbrotInterior
	}
	return ep
}

// Point returns the number of iterations the orbit of (cx, cy) survives
// before escaping, in [0, MaxIters]. A result equal to MaxIters means the
// point did not escape within the budget.
//
// The orbit starts at the pixel coordinate for both kinds: Mandelbrot has
// z₀ = c, Julia swaps the fixed constant in for c. The recurrence tracks
// real and imaginary parts directly; no complex values and no allocation.
func (p Params) Point(cx, cy float64) uint16 {
	zx, zy := cx, cy
	if p.Julia {
		cx, cy = p.ConstX, p.ConstY
	}
	for i := 0; i < p.MaxIters; i++ {
		zx2, zy2 := zx*zx, zy*zy
		if zx2+zy2 > p.EscapeSq {
			return uint16(i)
		}
		zx, zy = zx2-zy2+cx, 2*zx*zy+cy
	}
	return uint16(p.MaxIters)
}
