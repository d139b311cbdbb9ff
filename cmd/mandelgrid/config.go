package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/marben/mandelgrid"
	"github.com/marben/mandelgrid/engine"
)

// Config is the resolved evaluation setup, merged from flags, environment
// and an optional config file.
type Config struct {
	Width      int     `mapstructure:"width" yaml:"width"`
	Height     int     `mapstructure:"height" yaml:"height"`
	Iters      int     `mapstructure:"iters" yaml:"iters"`
	Workers    int     `mapstructure:"workers" yaml:"workers"`
	Interleave int     `mapstructure:"interleave" yaml:"interleave"`
	Region     string  `mapstructure:"region" yaml:"region"`
	Kind       string  `mapstructure:"kind" yaml:"kind"`
	JuliaRe    float64 `mapstructure:"julia-re" yaml:"julia-re"`
	JuliaIm    float64 `mapstructure:"julia-im" yaml:"julia-im"`
	Radius     float64 `mapstructure:"radius" yaml:"radius"`
	Scalar     bool    `mapstructure:"scalar" yaml:"scalar"`
	NoMirror   bool    `mapstructure:"no-mirror" yaml:"no-mirror"`
	NoPrune    bool    `mapstructure:"no-prune" yaml:"no-prune"`
	LogLevel   string  `mapstructure:"log-level" yaml:"log-level"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// grid resolves the viewport and recurrence parameters.
func (c Config) grid() (mandelgrid.Viewport, mandelgrid.FractalParams, error) {
	region, ok := mandelgrid.NamedRegions[c.Region]
	if !ok {
		return mandelgrid.Viewport{}, mandelgrid.FractalParams{}, fmt.Errorf("unknown region %q", c.Region)
	}
	params := mandelgrid.FractalParams{EscapeRadius: c.Radius}
	switch c.Kind {
	case "mandelbrot":
		params.Kind = mandelgrid.Mandelbrot
	case "julia":
		params.Kind = mandelgrid.Julia
		params.JuliaX, params.JuliaY = c.JuliaRe, c.JuliaIm
		// Julia sets live around the origin, not around the Mandelbrot
		// landmarks; use a centered window unless told otherwise.
		if c.Region == "classic" {
			region = mandelgrid.Region{Xmin: -1.6, Xmax: 1.6, Ymin: -1.2, Ymax: 1.2}
		}
	default:
		return mandelgrid.Viewport{}, mandelgrid.FractalParams{}, fmt.Errorf("unknown kind %q", c.Kind)
	}
	return mandelgrid.NewViewport(region, c.Width, c.Height), params, nil
}

func (c Config) engineOptions() engine.Options {
	return engine.Options{
		Interleave:  c.Interleave,
		ForceScalar: c.Scalar,
		NoMirror:    c.NoMirror,
		NoPrune:     c.NoPrune,
	}
}

func regionNames() []string {
	names := make([]string, 0, len(mandelgrid.NamedRegions))
	for name := range mandelgrid.NamedRegions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [file]",
		Short: "Write the current configuration as a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			path := "mandelgrid.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := os.WriteFile(path, out, 0o644); err != nil {
				return err
			}
			cmd.Printf("config written to %s\n", path)
			return nil
		},
	})
	return cmd
}
