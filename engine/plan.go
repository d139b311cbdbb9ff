package engine

import (
	"fmt"

	"github.com/marben/mandelgrid"
)

// Planner partitions the rows to compute into tiles for the worker pool.
//
// With Interleave == 1 each worker receives one contiguous band. Larger
// factors split the range into Workers*Interleave equal blocks dispatched
// round-robin, so each worker gets a scattered sample of rows. Row cost is
// spatially correlated (rows near the real axis are cheap after pruning), so
// interleaving is what keeps the workers evenly loaded.
type Planner struct {
	Workers    int
	Interleave int
}

// Plan splits [0, height) into tiles. Tiles are ordered so that dispatching
// tile i to worker i%Workers realizes the round-robin assignment. Every row
// lands in exactly one tile; block boundaries never split a row.
func (pl Planner) Plan(height int) ([]mandelgrid.Tile, error) {
	if pl.Workers <= 0 {
		return nil, fmt.Errorf("%w: got %d", mandelgrid.ErrBadWorkers, pl.Workers)
	}
	if pl.Interleave <= 0 {
		return nil, fmt.Errorf("%w: got %d", mandelgrid.ErrBadInterleave, pl.Interleave)
	}
	if height <= 0 {
		return nil, nil
	}

	blocks := pl.Workers * pl.Interleave
	if blocks > height {
		blocks = height
	}
	size := (height + blocks - 1) / blocks

	tiles := make([]mandelgrid.Tile, 0, blocks)
	for start := 0; start < height; start += size {
		end := start + size
		if end > height {
			end = height
		}
		tiles = append(tiles, mandelgrid.Tile{RowStart: start, RowEnd: end})
	}
	return tiles, nil
}
