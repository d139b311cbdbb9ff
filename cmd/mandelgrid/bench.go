package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/marben/mandelgrid/engine"
)

func benchCmd() *cobra.Command {
	var runs int

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Evaluate the same grid repeatedly and report timing statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			vp, params, err := cfg.grid()
			if err != nil {
				return err
			}
			if runs < 1 {
				return fmt.Errorf("runs must be positive, got %d", runs)
			}

			// One pool for every run: pool reuse across evaluations is the
			// point of the measurement.
			pool := engine.NewPool(cfg.Workers)
			defer pool.Close()
			eng := engine.New(pool, cfg.engineOptions())

			var (
				total    time.Duration
				best     time.Duration
				worst    time.Duration
				checksum uint64
			)
			for i := 0; i < runs; i++ {
				start := time.Now()
				buf, err := eng.EvaluateGrid(vp, params, cfg.Iters)
				if err != nil {
					return fmt.Errorf("run %d: %w", i, err)
				}
				elapsed := time.Since(start)

				sum := buf.Sum()
				if i == 0 {
					checksum = sum
					best, worst = elapsed, elapsed
				} else if sum != checksum {
					return fmt.Errorf("run %d: checksum %d != %d, output is not deterministic", i, sum, checksum)
				}
				total += elapsed
				if elapsed < best {
					best = elapsed
				}
				if elapsed > worst {
					worst = elapsed
				}
				logrus.Debugf("run %d: %s", i, elapsed.Round(time.Microsecond))
			}

			logrus.WithFields(logrus.Fields{
				"runs":     runs,
				"best":     best.Round(time.Microsecond),
				"avg":      (total / time.Duration(runs)).Round(time.Microsecond),
				"worst":    worst.Round(time.Microsecond),
				"checksum": checksum,
			}).Info("bench complete")
			return nil
		},
	}
	cmd.Flags().IntVarP(&runs, "runs", "n", 10, "number of evaluations")
	return cmd
}
