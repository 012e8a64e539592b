package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/phanxgames/zoompan/ebitenview"
	"github.com/phanxgames/zoompan/scenery"
)

var (
	runView          viewFlags
	runOverlay       bool
	runNarrative     bool
	runScreenshotDir string
	runWidth         int
	runHeight        int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive viewport window",
	Long: `Open a window showing the reference scene.

Controls:
  wheel            zoom around the cursor
  pan button drag  move the view (right button unless configured)
  + / -            zoom one notch around the cursor
  R / Home         animate back to the initial view
  F3               toggle the stats overlay
  F12              save a screenshot
  Esc              quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine(runView)
		if err != nil {
			return err
		}
		e.SetDebugMode(cfg.Debug || verbose)
		slog.Info("opening window", "width", runWidth, "height", runHeight,
			"narrative", runNarrative, "tick_period", cfg.TickPeriod)
		return ebitenview.Run(cmd.Context(), e, ebitenview.Options{
			Width:         runWidth,
			Height:        runHeight,
			Overlay:       runOverlay,
			Narrative:     runNarrative,
			ScreenshotDir: runScreenshotDir,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runView.register(runCmd)
	runCmd.Flags().BoolVar(&runOverlay, "overlay", false, "show the stats overlay")
	runCmd.Flags().BoolVar(&runNarrative, "narrative", false, "step through the anchor walkthrough with the wheel")
	runCmd.Flags().StringVar(&runScreenshotDir, "screenshots", "screenshots", "directory for F12 screenshots")
	runCmd.Flags().IntVar(&runWidth, "width", scenery.WindowWidth, "window width")
	runCmd.Flags().IntVar(&runHeight, "height", scenery.WindowHeight, "window height")
}
