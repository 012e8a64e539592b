package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/phanxgames/zoompan"
)

var (
	// Global flags
	configPath string
	verbose    bool

	// cfg is loaded before any subcommand runs.
	cfg zoompan.Config
)

var rootCmd = &cobra.Command{
	Use:   "zoompan",
	Short: "Cursor-anchored pan and zoom viewport",
	Long: `Pan and zoom a 2D scene with the mouse. The wheel zooms around the
cursor; dragging with the pan button (right by default) moves the view.

Examples:
  zoompan run                                 # open the interactive window
  zoompan run --narrative                     # step through the anchor walkthrough
  zoompan replay script.json                  # replay an input script headless
  zoompan snapshot -o view.png --scale 2      # render the scene to PNG
  zoompan narrate -o walkthrough/             # render all walkthrough states
  zoompan config                              # print the effective configuration`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

		c, err := zoompan.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = c
		slog.Debug("config loaded", "path", configPath, "zoom_step", cfg.ZoomStep,
			"min_zoom", cfg.MinZoom, "max_zoom", cfg.MaxZoom, "pan_button", cfg.PanButton)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.Error("zoompan", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"YAML config file (ZOOMPAN_* environment variables override it)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// viewFlags selects an initial transform.
type viewFlags struct {
	scale, tx, ty float64
}

func (v *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&v.scale, "scale", 1, "initial zoom")
	cmd.Flags().Float64Var(&v.tx, "tx", 0, "initial horizontal translation in pixels")
	cmd.Flags().Float64Var(&v.ty, "ty", 0, "initial vertical translation in pixels")
}

func (v viewFlags) transform() (zoompan.Transform, error) {
	if !(v.scale > 0) {
		return zoompan.Transform{}, fmt.Errorf("--scale must be positive, got %v", v.scale)
	}
	return zoompan.NewTransform(v.scale, v.tx, v.ty), nil
}

// newEngine builds an engine from the loaded config and view flags.
func newEngine(v viewFlags) (*zoompan.Engine, error) {
	t, err := v.transform()
	if err != nil {
		return nil, err
	}
	return zoompan.NewEngine(cfg, zoompan.WithInitialTransform(t))
}
