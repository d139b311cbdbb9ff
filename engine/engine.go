// Package engine evaluates escape-time grids: it plans tiles, dispatches
// them to a long-lived worker pool, prunes known-interior points, runs the
// batched recurrence with a scalar remainder pass, and mirrors rows when the
// viewport is symmetric about the real axis.
package engine

import (
	"fmt"
	"math"

	"github.com/marben/mandelgrid"
	"github.com/marben/mandelgrid/eval"
)

// Options tune one Engine. The zero value is the fast path: batched
// evaluation, pruning, mirroring and an interleave factor of 4.
type Options struct {
	// Interleave is the number of tiles planned per worker; 0 means 4.
	Interleave int
	// ForceScalar disables the batched path; every pixel goes through the
	// scalar evaluator. Reference path for equivalence testing.
	ForceScalar bool
	// NoMirror computes every row directly even when the viewport is
	// symmetry-eligible.
	NoMirror bool
	// NoPrune disables the known-interior short circuit.
	NoPrune bool
	// OnTile, when set, is invoked as each tile (and its reflection)
	// finishes.
	OnTile mandelgrid.TileObserver
}

// Engine computes grids against a shared worker pool. The pool outlives the
// engine and may back several engines at once; the engine itself is
// stateless across calls and safe for concurrent use.
type Engine struct {
	pool *Pool
	opts Options
}

// New wires an engine to pool. The pool is borrowed, not owned: Close is the
// caller's job.
func New(pool *Pool, opts Options) *Engine {
	if opts.Interleave == 0 {
		opts.Interleave = 4
	}
	return &Engine{pool: pool, opts: opts}
}

var _ mandelgrid.GridEvaluator = (*Engine)(nil)

// EvaluateGrid computes the escape count of every pixel in v and returns the
// fully populated buffer. Configuration errors are reported before any
// computation starts; on error the buffer is nil.
func (e *Engine) EvaluateGrid(v mandelgrid.Viewport, params mandelgrid.FractalParams, maxIters int) (mandelgrid.PixelBuffer, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if maxIters <= 0 || maxIters > math.MaxUint16 {
		return nil, fmt.Errorf("%w: got %d", mandelgrid.ErrBadBudget, maxIters)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	p := eval.NewParams(params, maxIters)
	if e.opts.NoPrune {
		p.Interior = nil
	}

	mirror := !e.opts.NoMirror && MirrorEligible(v, params)
	rows := v.Height
	if mirror {
		rows = (v.Height + 1) / 2
	}

	tiles, err := Planner{Workers: e.pool.Workers(), Interleave: e.opts.Interleave}.Plan(rows)
	if err != nil {
		return nil, err
	}

	// Workers share the buffer by construction of disjointness: a tile owns
	// its rows and their reflections, so no two tasks ever write the same
	// index and no locks are needed.
	r := &run{
		engine: e,
		view:   v,
		params: p,
		mirror: mirror,
		buf:    make(mandelgrid.PixelBuffer, v.Width*v.Height),
	}
	tasks := make([]func(), len(tiles))
	for i, t := range tiles {
		t := t
		tasks[i] = func() { r.tile(t) }
	}
	// The only blocking point: await every tile before exposing the buffer.
	e.pool.runAll(tasks)
	return r.buf, nil
}

// run is the shared state of one grid evaluation.
type run struct {
	engine *Engine
	view   mandelgrid.Viewport
	params eval.Params
	mirror bool
	buf    mandelgrid.PixelBuffer
}

// row returns the output slot for row h.
func (r *run) row(h int) []uint16 {
	w := r.view.Width
	return r.buf[h*w : (h+1)*w]
}

// tile runs the full worker pipeline over one tile: prune, evaluate, mirror.
func (r *run) tile(t mandelgrid.Tile) {
	batch := eval.NewBatch(eval.Lanes)
	lane := laneScratch{
		cx: make([]float64, eval.Lanes),
		cy: make([]float64, eval.Lanes),
	}
	for h := t.RowStart; h < t.RowEnd; h++ {
		r.computeRow(h, batch, &lane)
		if r.mirror && h != r.view.Height-1-h {
			mirrorRow(r.buf, r.view.Width, r.view.Height, h)
		}
	}
	r.observe(t)
}

// observe reports the finished tile, and its reflection when mirroring.
func (r *run) observe(t mandelgrid.Tile) {
	on := r.engine.opts.OnTile
	if on == nil {
		return
	}
	w := r.view.Width
	on(t, r.buf[t.RowStart*w:t.RowEnd*w])
	if !r.mirror {
		return
	}
	rs, re := r.view.Height-t.RowEnd, r.view.Height-t.RowStart
	if rs < t.RowEnd {
		rs = t.RowEnd // odd-height center row is computed, not reflected
	}
	if rs < re {
		on(mandelgrid.Tile{RowStart: rs, RowEnd: re}, r.buf[rs*w:re*w])
	}
}

type laneScratch struct {
	cx, cy []float64
}

// computeRow fills the output row h. Full lane groups go through the batched
// evaluator unless the whole group is pruned; the trailing remainder (and
// everything, under ForceScalar) goes through the scalar evaluator so no
// pixel is ever dropped when the width does not divide by the lane count.
func (r *run) computeRow(h int, batch *eval.Batch, lane *laneScratch) {
	v := r.view
	p := r.params
	dst := r.row(h)
	bounded := uint16(p.MaxIters)
	cy := v.MinY + float64(h)*v.ScaleY

	w := 0
	if !r.engine.opts.ForceScalar {
		for ; w+eval.Lanes <= v.Width; w += eval.Lanes {
			pruned := 0
			for i := 0; i < eval.Lanes; i++ {
				lane.cx[i] = v.MinX + float64(w+i)*v.ScaleX
				lane.cy[i] = cy
				if eval.KnownBounded(p.Interior, lane.cx[i], cy) {
					pruned++
				}
			}
			if pruned == eval.Lanes {
				for i := 0; i < eval.Lanes; i++ {
					dst[w+i] = bounded
				}
				continue
			}
			// A mixed group costs nothing extra: its pruned lanes are
			// truly bounded, so the group iterates to the budget anyway.
			batch.Eval(p, lane.cx, lane.cy, dst[w:w+eval.Lanes])
		}
	}
	for ; w < v.Width; w++ {
		cx := v.MinX + float64(w)*v.ScaleX
		if eval.KnownBounded(p.Interior, cx, cy) {
			dst[w] = bounded
			continue
		}
		dst[w] = p.Point(cx, cy)
	}
}
