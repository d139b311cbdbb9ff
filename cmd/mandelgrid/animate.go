package main

import (
	"fmt"
	"image/png"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/marben/mandelgrid"
	"github.com/marben/mandelgrid/colormap"
	"github.com/marben/mandelgrid/engine"
)

func animateCmd() *cobra.Command {
	var (
		frames int
		orbit  float64
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Render a Julia animation, sweeping the constant along a circle",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if frames < 1 {
				return fmt.Errorf("frames must be positive, got %d", frames)
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			region := mandelgrid.Region{Xmin: -1.6, Xmax: 1.6, Ymin: -1.2, Ymax: 1.2}
			vp := mandelgrid.NewViewport(region, cfg.Width, cfg.Height)

			pool := engine.NewPool(cfg.Workers)
			defer pool.Close()
			eng := engine.New(pool, cfg.engineOptions())
			mapper := colormap.NewMapper(cfg.Iters)

			// The pool parallelizes within a frame; a couple of frames in
			// flight keeps it busy across the per-frame barriers.
			g, _ := errgroup.WithContext(cmd.Context())
			g.SetLimit(2)
			for i := 0; i < frames; i++ {
				i := i
				g.Go(func() error {
					theta := 2 * math.Pi * float64(i) / float64(frames)
					params := mandelgrid.FractalParams{
						Kind:         mandelgrid.Julia,
						EscapeRadius: cfg.Radius,
						JuliaX:       orbit * math.Cos(theta),
						JuliaY:       orbit * math.Sin(theta),
					}
					buf, err := eng.EvaluateGrid(vp, params, cfg.Iters)
					if err != nil {
						return fmt.Errorf("frame %d: %w", i, err)
					}

					path := fmt.Sprintf("%s/julia_%04d.png", outDir, i)
					f, err := os.Create(path)
					if err != nil {
						return err
					}
					defer f.Close()
					if err := png.Encode(f, mapper.Image(buf, cfg.Width, cfg.Height)); err != nil {
						return fmt.Errorf("frame %d: encode: %w", i, err)
					}
					logrus.Debugf("frame %d saved to %s", i, path)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			logrus.Infof("%d frames saved to %s", frames, outDir)
			return nil
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 120, "number of animation frames")
	cmd.Flags().Float64Var(&orbit, "orbit", 0.7885, "radius of the Julia constant's circular sweep")
	cmd.Flags().StringVar(&outDir, "out-dir", "frames", "output directory")
	return cmd
}
