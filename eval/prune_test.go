package eval

import (
	"testing"

	"github.com/marben/mandelgrid"
)

func TestKnownBoundedSpotChecks(t *testing.T) {
	tests := []struct {
		name   string
		cx, cy float64
		want   bool
	}{
		{"cardioid center", 0, 0, true},
		{"cardioid left lobe", -0.5, 0, true},
		{"period-2 center", -1, 0, true},
		{"bulb edge inside", -0.8, 0.1, true},
		{"outside right", 0.3, 0, false},
		{"outside top", 0, 1, false},
		{"seahorse valley", -0.75, 0.1, false},
		{"far outside", 2, 2, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := KnownBounded(MandelbrotInterior, tc.cx, tc.cy); got != tc.want {
				t.Errorf("KnownBounded(%v, %v) = %v, want %v", tc.cx, tc.cy, got, tc.want)
			}
		})
	}
}

// TestPruneSoundness verifies the under-approximation contract: every point
// the pruner calls bounded must survive the full budget in the unpruned
// evaluator. False negatives only cost time; a single false positive here is
// corrupted output.
func TestPruneSoundness(t *testing.T) {
	const maxIters = 1000
	p := mandelParams(maxIters)

	const steps = 160
	for _, r := range MandelbrotInterior {
		pruned := 0
		dx := (r.Xmax - r.Xmin) / steps
		dy := (r.Ymax - r.Ymin) / steps
		for iy := 0; iy <= steps; iy++ {
			cy := r.Ymin + float64(iy)*dy
			for ix := 0; ix <= steps; ix++ {
				cx := r.Xmin + float64(ix)*dx
				if !r.Contains(cx, cy) {
					continue
				}
				pruned++
				if got := p.Point(cx, cy); got != maxIters {
					t.Fatalf("%s claims (%v, %v) bounded but it escapes at %d", r.Name, cx, cy, got)
				}
			}
		}
		if pruned == 0 {
			t.Errorf("%s pruned nothing over its own bounding box", r.Name)
		}
	}
}

func TestKnownBoundedEmptyRegionList(t *testing.T) {
	// The Julia family runs with no interior regions; nothing may be pruned.
	p := NewParams(mandelgrid.FractalParams{Kind: mandelgrid.Julia}, 10)
	if p.Interior != nil {
		t.Fatalf("Julia params carry %d interior regions, want none", len(p.Interior))
	}
	if KnownBounded(nil, 0, 0) {
		t.Error("KnownBounded(nil, ...) = true, want false")
	}
}

func TestBoundingBoxRejectsBeforeTest(t *testing.T) {
	r := InteriorRegion{
		Name: "probe",
		Xmin: -1, Xmax: 1, Ymin: -1, Ymax: 1,
		Test: func(cx, cy float64) bool {
			panic("test ran for a point outside the box")
		},
	}
	if r.Contains(5, 5) {
		t.Error("Contains(5, 5) = true for a point outside the box")
	}
}
