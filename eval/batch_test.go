package eval

import (
	"testing"

	"github.com/marben/mandelgrid"
)

// absDiff16 is the iteration-count distance between the two code paths.
func absDiff16(a, b uint16) uint16 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestBatchMatchesPoint(t *testing.T) {
	const maxIters = 300
	p := mandelParams(maxIters)
	batch := NewBatch(Lanes)

	cx := make([]float64, Lanes)
	cy := make([]float64, Lanes)
	out := make([]uint16, Lanes)

	// March lane groups across a band straddling the set boundary, where
	// counts are most sensitive.
	for row := 0; row < 40; row++ {
		y := -1.2 + float64(row)*0.06
		for col := 0; col < 80; col += Lanes {
			for i := 0; i < Lanes; i++ {
				cx[i] = -2.0 + float64(col+i)*0.03
				cy[i] = y
			}
			batch.Eval(p, cx, cy, out)
			for i := 0; i < Lanes; i++ {
				want := p.Point(cx[i], cy[i])
				// Identical arithmetic per lane; anything beyond a
				// single count is a logic divergence, not rounding.
				if absDiff16(out[i], want) > 1 {
					t.Fatalf("lane %d at (%v, %v): batch %d, scalar %d", i, cx[i], cy[i], out[i], want)
				}
			}
		}
	}
}

func TestBatchPartialWidth(t *testing.T) {
	p := mandelParams(100)
	batch := NewBatch(Lanes)

	n := Lanes - 1
	cx := make([]float64, n)
	cy := make([]float64, n)
	out := make([]uint16, n)
	for i := range cx {
		cx[i] = -0.5 + float64(i)*0.3
	}

	batch.Eval(p, cx, cy, out)
	for i := range out {
		if want := p.Point(cx[i], cy[i]); absDiff16(out[i], want) > 1 {
			t.Errorf("lane %d: batch %d, scalar %d", i, out[i], want)
		}
	}
}

func TestBatchJulia(t *testing.T) {
	p := NewParams(mandelgrid.FractalParams{
		Kind:   mandelgrid.Julia,
		JuliaX: -0.8,
		JuliaY: 0.156,
	}, 200)
	batch := NewBatch(Lanes)

	cx := make([]float64, Lanes)
	cy := make([]float64, Lanes)
	out := make([]uint16, Lanes)
	for i := 0; i < Lanes; i++ {
		cx[i] = -1.5 + float64(i)*0.4
		cy[i] = 0.3
	}

	batch.Eval(p, cx, cy, out)
	for i := 0; i < Lanes; i++ {
		if want := p.Point(cx[i], cy[i]); absDiff16(out[i], want) > 1 {
			t.Errorf("lane %d at (%v, %v): batch %d, scalar %d", i, cx[i], cy[i], out[i], want)
		}
	}
}

func TestBatchBoundedSentinel(t *testing.T) {
	const maxIters = 50
	p := mandelParams(maxIters)
	batch := NewBatch(Lanes)

	cx := make([]float64, Lanes)
	cy := make([]float64, Lanes)
	out := make([]uint16, Lanes)
	// All lanes interior: every count must be exactly the budget.
	for i := 0; i < Lanes; i++ {
		cx[i] = -0.1 + float64(i)*0.01
	}

	batch.Eval(p, cx, cy, out)
	for i, v := range out {
		if v != maxIters {
			t.Errorf("lane %d: got %d, want bounded sentinel %d", i, v, maxIters)
		}
	}
}

func TestBatchStartsOrbitAtCoordinate(t *testing.T) {
	p := mandelParams(50)
	batch := NewBatch(Lanes)

	cx := make([]float64, Lanes)
	cy := make([]float64, Lanes)
	out := make([]uint16, Lanes)
	// Lanes seeded beyond the escape radius: with z₀ = c the first check
	// already fails, so no iteration is ever credited.
	for i := 0; i < Lanes; i++ {
		cx[i] = 3 + float64(i)
	}

	batch.Eval(p, cx, cy, out)
	for i, v := range out {
		if v != 0 {
			t.Errorf("lane %d at (%v, 0): got %d, want 0", i, cx[i], v)
		}
	}
}

func BenchmarkBatch(b *testing.B) {
	p := mandelParams(256)
	batch := NewBatch(Lanes)
	cx := make([]float64, Lanes)
	cy := make([]float64, Lanes)
	out := make([]uint16, Lanes)
	for i := 0; i < Lanes; i++ {
		cx[i] = -0.7435 + float64(i)*1e-4
		cy[i] = 0.1314
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		batch.Eval(p, cx, cy, out)
	}
}
