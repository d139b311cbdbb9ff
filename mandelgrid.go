// Package mandelgrid holds the shared data model of the escape-time fractal
// engine: the complex-plane window being sampled, the fractal recurrence
// parameters and the flat buffer of per-pixel escape counts.
package mandelgrid

import (
	"errors"
	"fmt"
)

// Configuration errors reported before any computation starts.
var (
	ErrBadViewport   = errors.New("viewport width and height must be positive")
	ErrBadBudget     = errors.New("iteration budget must be positive")
	ErrBadRadius     = errors.New("escape radius must be >= 2")
	ErrBadWorkers    = errors.New("worker count must be positive")
	ErrBadInterleave = errors.New("interleave factor must be positive")
)

// Region is a rectangular window in the complex plane.
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Viewport maps pixel indices to complex-plane coordinates:
//
//	cx = MinX + w*ScaleX
//	cy = MinY + h*ScaleY
//
// It is immutable for the duration of one grid evaluation.
type Viewport struct {
	MinX, MinY     float64
	ScaleX, ScaleY float64
	Width, Height  int
}

// NewViewport spans r across a Width x Height pixel grid, with the region
// corners landing exactly on the first and last sample of each axis.
func NewViewport(r Region, width, height int) Viewport {
	v := Viewport{
		MinX:   r.Xmin,
		MinY:   r.Ymin,
		Width:  width,
		Height: height,
	}
	if width > 1 {
		v.ScaleX = (r.Xmax - r.Xmin) / float64(width-1)
	}
	if height > 1 {
		v.ScaleY = (r.Ymax - r.Ymin) / float64(height-1)
	}
	return v
}

// Coord returns the complex-plane coordinate of pixel (w, h).
func (v Viewport) Coord(w, h int) (cx, cy float64) {
	return v.MinX + float64(w)*v.ScaleX, v.MinY + float64(h)*v.ScaleY
}

func (v Viewport) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadViewport, v.Width, v.Height)
	}
	return nil
}

// Kind selects the fractal recurrence.
type Kind int

const (
	// Mandelbrot iterates z = z² + c with z₀ = c, the pixel coordinate.
	Mandelbrot Kind = iota
	// Julia iterates z = z² + c with z₀ the pixel coordinate and c the
	// fixed Julia constant.
	Julia
)

func (k Kind) String() string {
	switch k {
	case Mandelbrot:
		return "mandelbrot"
	case Julia:
		return "julia"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// FractalParams selects the recurrence variant for one grid evaluation.
// JuliaX/JuliaY are read only when Kind is Julia; they stay constant within
// one evaluation but typically vary across animation frames.
type FractalParams struct {
	Kind           Kind
	EscapeRadius   float64 // must be >= 2; 0 means the default of 2
	JuliaX, JuliaY float64
}

// Radius returns the effective escape radius.
func (p FractalParams) Radius() float64 {
	if p.EscapeRadius == 0 {
		return 2
	}
	return p.EscapeRadius
}

func (p FractalParams) Validate() error {
	if r := p.Radius(); r < 2 {
		return fmt.Errorf("%w: got %v", ErrBadRadius, r)
	}
	return nil
}

// PixelBuffer is a flat row-major grid of escape counts, one per pixel
// (index = h*width + w). Every value lies in [0, maxIters]; a value equal to
// the iteration budget means the point did not escape within the budget and
// is treated as interior.
type PixelBuffer []uint16

// Sum returns the checksum consumed by the regression tooling: the plain sum
// of all escape counts.
func (b PixelBuffer) Sum() uint64 {
	var s uint64
	for _, v := range b {
		s += uint64(v)
	}
	return s
}

// Tile is a half-open contiguous row range [RowStart, RowEnd) assigned to
// one worker.
type Tile struct {
	RowStart, RowEnd int
}

// Rows returns the number of rows covered by the tile.
func (t Tile) Rows() int { return t.RowEnd - t.RowStart }

func (t Tile) String() string {
	return fmt.Sprintf("rows [%d,%d)", t.RowStart, t.RowEnd)
}
