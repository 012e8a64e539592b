package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/phanxgames/zoompan/narrative"
	"github.com/phanxgames/zoompan/raster"
	"github.com/phanxgames/zoompan/scenery"
)

var (
	narrateOut   string
	narrateState int
)

var narrateCmd = &cobra.Command{
	Use:   "narrate",
	Short: "Render the anchor walkthrough states to PNG",
	Long: `Render the twelve walkthrough states that explain how the cursor anchor
is solved, one PNG per state, each captioned with its title.

Examples:
  zoompan narrate -o walkthrough/          # all twelve states
  zoompan narrate -o walkthrough/ -s 2     # only state 2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		states := make([]int, 0, narrative.States)
		if cmd.Flags().Changed("state") {
			states = append(states, narrateState)
		} else {
			for i := 0; i < narrative.States; i++ {
				states = append(states, i)
			}
		}

		c := raster.NewCanvas(scenery.WindowWidth, scenery.WindowHeight)
		for _, s := range states {
			f := narrative.Step(s)
			scenery.Draw(c, f.Transform)
			if hl := f.Highlight; hl != nil {
				scenery.DrawMarker(c, hl.X, hl.Y, hl.Radius)
			}
			scenery.DrawOverlay(c, f.Caption(), f.Transform.String())

			path := raster.SnapshotPath(narrateOut, f.Index, fmt.Sprintf("state-%d", f.Index))
			if err := raster.WritePNG(path, c.Image()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", path, f.Caption())
			slog.Debug("state rendered", "state", f.Index, "transform", f.Transform.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(narrateCmd)
	narrateCmd.Flags().StringVarP(&narrateOut, "output", "o", "walkthrough", "output directory")
	narrateCmd.Flags().IntVarP(&narrateState, "state", "s", 0, "render only this state (wraps like the wheel)")
}
