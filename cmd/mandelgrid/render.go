package main

import (
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/marben/mandelgrid/colormap"
	"github.com/marben/mandelgrid/engine"
)

func renderCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Evaluate one grid and save it as PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			vp, params, err := cfg.grid()
			if err != nil {
				return err
			}

			pool := engine.NewPool(cfg.Workers)
			defer pool.Close()
			eng := engine.New(pool, cfg.engineOptions())

			logrus.WithFields(logrus.Fields{
				"size":    fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
				"iters":   cfg.Iters,
				"kind":    params.Kind,
				"workers": pool.Workers(),
			}).Info("rendering")

			start := time.Now()
			buf, err := eng.EvaluateGrid(vp, params, cfg.Iters)
			if err != nil {
				return fmt.Errorf("evaluate grid: %w", err)
			}
			logrus.WithFields(logrus.Fields{
				"elapsed":  time.Since(start).Round(time.Microsecond),
				"checksum": buf.Sum(),
			}).Info("grid evaluated")

			img := colormap.NewMapper(cfg.Iters).Image(buf, cfg.Width, cfg.Height)
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := png.Encode(f, img); err != nil {
				return fmt.Errorf("encode png: %w", err)
			}
			logrus.Infof("image saved to %q", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "mandelgrid.png", "output PNG file")
	return cmd
}
