package main

import (
	"fmt"
	"io"

	"github.com/chazu/voxtrack/internal/config"
	"github.com/chazu/voxtrack/internal/logging"
	"github.com/chazu/voxtrack/pkg/topology"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type trackFlags struct {
	configPath string

	min, max  int
	scale     float64
	margin    int
	adjacency string
	open      bool
	maxSteps  int
	seed      uint64
	output    string
	format    string
	logLevel  string
	logFormat string
}

func newTrackCmd(stdout io.Writer) *cobra.Command {
	var f trackFlags
	cmd := &cobra.Command{
		Use:   "track [input]",
		Short: "Track the boundary of a shape and report its BFS layers",
		Long: `Track the boundary of a shape and report its BFS layers.

The input is a .vol image or a .zy shape script; it may also be set in the
config file (input.path) or with VOXTRACK_INPUT_PATH.

Examples:
  # Surfels of voxels valued 1..255
  voxtrack track brain.vol

  # Exterior adjacency, mesh export
  voxtrack track --adjacency exterior -o brain.obj brain.vol

  # Digitise a script at 0.5 units per voxel
  voxtrack track --scale 0.5 part.zy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Input.Path = args[0]
			}
			applyFlags(cmd.Flags(), &f, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}
			if cfg.Input.Path == "" {
				return fmt.Errorf("no input: pass a .vol or .zy file")
			}

			log, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			defer logging.Sync(log)
			topology.SetLogger(log.Named("topology"))
			defer topology.SetLogger(nil)

			report, err := NewPipeline(cfg, log).Run()
			if err != nil {
				return err
			}
			return report.Print(stdout)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	fl.IntVar(&f.min, "min", 0, "lowest voxel value inside the shape")
	fl.IntVar(&f.max, "max", 0, "highest voxel value inside the shape")
	fl.Float64Var(&f.scale, "scale", 0, "world units per voxel for scripts")
	fl.IntVar(&f.margin, "margin", 0, "empty voxels around a script's bounding box")
	fl.StringVar(&f.adjacency, "adjacency", "", "surfel adjacency: interior or exterior")
	fl.BoolVar(&f.open, "open", false, "use an open space (no border surfels)")
	fl.IntVar(&f.maxSteps, "max-steps", 0, "predicate evaluations allowed to find a seed surfel")
	fl.Uint64Var(&f.seed, "seed", 0, "seed of the random seed-surfel search")
	fl.StringVarP(&f.output, "output", "o", "", "write the traversed surfels as a mesh")
	fl.StringVar(&f.format, "format", "", "mesh format: obj or json")
	fl.StringVar(&f.logLevel, "log-level", "", "log level")
	fl.StringVar(&f.logFormat, "log-format", "", "log format: console or json")
	return cmd
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(fs *pflag.FlagSet, f *trackFlags, cfg *config.Config) {
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("min", func() { cfg.Input.MinThreshold = f.min })
	set("max", func() { cfg.Input.MaxThreshold = f.max })
	set("scale", func() { cfg.Input.Scale = f.scale })
	set("margin", func() { cfg.Input.Margin = f.margin })
	set("adjacency", func() { cfg.Surface.Adjacency = f.adjacency })
	set("open", func() { cfg.Surface.Closed = !f.open })
	set("max-steps", func() { cfg.Surface.MaxSteps = f.maxSteps })
	set("seed", func() { cfg.Surface.Seed = f.seed })
	set("output", func() { cfg.Output.Path = f.output })
	set("format", func() { cfg.Output.Format = f.format })
	set("log-level", func() { cfg.Log.Level = f.logLevel })
	set("log-format", func() { cfg.Log.Format = f.logFormat })
}
