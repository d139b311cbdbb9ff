package mandelgrid

// GridEvaluator computes escape counts for every pixel of a viewport.
// Implementations must either return a fully populated buffer or an error;
// partially filled buffers are never handed out.
type GridEvaluator interface {
	EvaluateGrid(v Viewport, params FractalParams, maxIters int) (PixelBuffer, error)
}

// TileObserver is notified as tiles of an evaluation finish. rows holds the
// tile's escape counts in row-major order. Observers may be called from
// multiple goroutines at once and must not retain rows past the call.
type TileObserver func(t Tile, rows []uint16)
