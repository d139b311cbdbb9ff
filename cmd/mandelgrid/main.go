// mandelgrid is the CLI harness around the escape-time engine: render a
// region to PNG, benchmark repeated evaluations, animate a Julia sweep, or
// serve a progressive live view over websocket.
package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		logrus.Fatalf("run: %+v", err)
	}
}

func rootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "mandelgrid",
		Short:         "Vectorized, symmetry-aware, parallel escape-time fractal engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				viper.SetConfigFile(cfgFile)
				if err := viper.ReadInConfig(); err != nil {
					return fmt.Errorf("read config: %w", err)
				}
				logrus.Debugf("config loaded from %s", viper.ConfigFileUsed())
			}
			lvl, err := logrus.ParseLevel(viper.GetString("log-level"))
			if err != nil {
				return fmt.Errorf("parse log level: %w", err)
			}
			logrus.SetLevel(lvl)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (yaml)")
	pf.Int("width", 1920, "grid width in pixels")
	pf.Int("height", 1080, "grid height in pixels")
	pf.Int("iters", 256, "iteration budget per point")
	pf.Int("workers", 0, "worker count (0 = all cores)")
	pf.Int("interleave", 4, "tiles planned per worker")
	pf.String("region", "classic", "named region: "+strings.Join(regionNames(), ", "))
	pf.String("kind", "mandelbrot", "fractal kind: mandelbrot or julia")
	pf.Float64("julia-re", -0.8, "Julia constant, real part")
	pf.Float64("julia-im", 0.156, "Julia constant, imaginary part")
	pf.Float64("radius", 2, "escape radius (>= 2)")
	pf.Bool("scalar", false, "force the scalar evaluation path")
	pf.Bool("no-mirror", false, "disable symmetry mirroring")
	pf.Bool("no-prune", false, "disable known-interior pruning")
	pf.String("log-level", "info", "log level")

	viper.SetEnvPrefix("MANDELGRID")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(pf); err != nil {
		logrus.Fatalf("bind flags: %v", err)
	}

	cmd.AddCommand(renderCmd(), benchCmd(), animateCmd(), serveCmd(), configCmd())
	return cmd
}
