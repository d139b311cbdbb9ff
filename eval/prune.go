package eval

// InteriorRegion is a closed-form membership test for an area known to lie
// inside the set. Tests must under-approximate: a true result guarantees the
// orbit never escapes, so failing to cover a bounded point only costs time
// while covering an escaping point would corrupt output.
//
// The bounding box is checked first; the exact test only runs for points
// inside it.
type InteriorRegion struct {
	Name                   string
	Xmin, Xmax, Ymin, Ymax float64
	Test                   func(cx, cy float64) bool
}

// Contains reports whether (cx, cy) is proven interior by this region.
func (r InteriorRegion) Contains(cx, cy float64) bool {
	if cx < r.Xmin || cx > r.Xmax || cy < r.Ymin || cy > r.Ymax {
		return false
	}
	return r.Test(cx, cy)
}

// MandelbrotInterior covers the two largest components of the set's
// interior: the main cardioid and the period-2 bulb. Ordered by hit rate.
//
// There is no closed-form interior for Julia sets, so the Julia family runs
// with an empty region list.
var MandelbrotInterior = []InteriorRegion{
	{
		Name: "main cardioid",
		Xmin: -0.76, Xmax: 0.26, Ymin: -0.66, Ymax: 0.66,
		Test: inCardioid,
	},
	{
		Name: "period-2 bulb",
		Xmin: -1.26, Xmax: -0.74, Ymin: -0.26, Ymax: 0.26,
		Test: inPeriod2Bulb,
	},
}

// KnownBounded reports whether (cx, cy) is proven interior by any region in
// the list, letting callers skip the evaluator entirely and write the
// bounded sentinel.
func KnownBounded(regions []InteriorRegion, cx, cy float64) bool {
	for _, r := range regions {
		if r.Contains(cx, cy) {
			return true
		}
	}
	return false
}

// inCardioid is the exact main-cardioid test:
// q(q + x - 1/4) <= y²/4 with q = (x - 1/4)² + y².
func inCardioid(cx, cy float64) bool {
	x := cx - 0.25
	q := x*x + cy*cy
	return q*(q+x) <= 0.25*cy*cy
}

// inPeriod2Bulb tests the disk of radius 1/4 centered at -1.
func inPeriod2Bulb(cx, cy float64) bool {
	x := cx + 1
	return x*x+cy*cy <= 0.0625
}
