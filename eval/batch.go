package eval

// Batch evaluates up to Lanes points at once by running the recurrence
// lane-wise over flat float64 arrays. All lanes execute the same arithmetic
// every iteration; a lane that has escaped simply stops being credited
// further counts. Its diverging trajectory may overflow to Inf or NaN, which
// is harmless: NaN fails the "still inside" comparison, so the lane is never
// credited again and its value is never read.
//
// A Batch is scratch state for a single goroutine; give each worker its own.
type Batch struct {
	zx, zy []float64
	cx, cy []float64
}

// NewBatch allocates lane scratch for batches up to `lanes` wide.
func NewBatch(lanes int) *Batch {
	return &Batch{
		zx: make([]float64, lanes),
		zy: make([]float64, lanes),
		cx: make([]float64, lanes),
		cy: make([]float64, lanes),
	}
}

// Eval runs the recurrence over len(cx) lanes and writes each lane's escape
// count to out. len(cy) and len(out) must equal len(cx), which must not
// exceed the batch's allocated width. Results match Point exactly: the
// per-lane arithmetic is the same operations in the same order.
func (b *Batch) Eval(p Params, cx, cy []float64, out []uint16) {
	n := len(cx)
	zx, zy := b.zx[:n], b.zy[:n]
	ccx, ccy := b.cx[:n], b.cy[:n]

	// Orbits start at the pixel coordinate for both kinds; only c differs.
	copy(zx, cx)
	copy(zy, cy)
	if p.Julia {
		for i := range ccx {
			ccx[i] = p.ConstX
			ccy[i] = p.ConstY
		}
	} else {
		copy(ccx, cx)
		copy(ccy, cy)
	}
	for i := range out[:n] {
		out[i] = 0
	}

	for it := 0; it < p.MaxIters; it++ {
		live := false
		for i := 0; i < n; i++ {
			zx2, zy2 := zx[i]*zx[i], zy[i]*zy[i]
			if zx2+zy2 <= p.EscapeSq {
				out[i]++
				live = true
			}
			zx[i], zy[i] = zx2-zy2+ccx[i], 2*zx[i]*zy[i]+ccy[i]
		}
		if !live {
			break
		}
	}
}
