package eval

import (
	"testing"

	"github.com/marben/mandelgrid"
)

func mandelParams(maxIters int) Params {
	return NewParams(mandelgrid.FractalParams{Kind: mandelgrid.Mandelbrot}, maxIters)
}

func TestPointKnownValues(t *testing.T) {
	p := mandelParams(500)

	tests := []struct {
		name   string
		cx, cy float64
		want   uint16
	}{
		{"origin is interior", 0, 0, 500},
		{"left tip -2 is interior", -2, 0, 500},
		{"period-2 center is interior", -1, 0, 500},
		{"c=2 escapes at 1", 2, 0, 1},
		{"outside the radius escapes at 0", 3, 0, 0},
		{"2i escapes at 1", 0, 2, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Point(tc.cx, tc.cy); got != tc.want {
				t.Errorf("Point(%v, %v) = %d, want %d", tc.cx, tc.cy, got, tc.want)
			}
		})
	}
}

func TestPointResultRange(t *testing.T) {
	const maxIters = 64
	p := mandelParams(maxIters)
	for cy := -1.25; cy <= 1.25; cy += 0.05 {
		for cx := -2.0; cx <= 0.5; cx += 0.05 {
			got := p.Point(cx, cy)
			if got > maxIters {
				t.Fatalf("Point(%v, %v) = %d, above budget %d", cx, cy, got, maxIters)
			}
		}
	}
}

func TestPointJulia(t *testing.T) {
	// c = 0 makes the recurrence z = z²: the unit disk is the Julia set's
	// filled interior, everything outside escapes.
	p := NewParams(mandelgrid.FractalParams{Kind: mandelgrid.Julia}, 100)

	if got := p.Point(0.5, 0); got != 100 {
		t.Errorf("interior Julia point: got %d, want 100", got)
	}
	if got := p.Point(2, 0); got != 1 {
		t.Errorf("Point(2, 0) = %d, want 1", got)
	}
}

func TestPointRadiusVariant(t *testing.T) {
	// A larger escape radius can only delay the escape, never change
	// which points are bounded.
	r2 := mandelParams(200)
	r4 := NewParams(mandelgrid.FractalParams{Kind: mandelgrid.Mandelbrot, EscapeRadius: 4}, 200)

	for cy := -1.2; cy <= 1.2; cy += 0.1 {
		for cx := -2.0; cx <= 0.5; cx += 0.1 {
			a, b := r2.Point(cx, cy), r4.Point(cx, cy)
			if (a == 200) != (b == 200) {
				t.Fatalf("membership differs at (%v, %v): radius2=%d radius4=%d", cx, cy, a, b)
			}
			if b < a {
				t.Fatalf("radius 4 escaped earlier at (%v, %v): %d < %d", cx, cy, b, a)
			}
		}
	}
}

func BenchmarkPoint(b *testing.B) {
	p := mandelParams(256)
	var sink uint16
	for i := 0; i < b.N; i++ {
		sink += p.Point(-0.7435, 0.1314) // near-boundary, costly pixel
	}
	_ = sink
}
