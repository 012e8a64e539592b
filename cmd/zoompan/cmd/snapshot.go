package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/phanxgames/zoompan/raster"
	"github.com/phanxgames/zoompan/scenery"
)

var (
	snapView    viewFlags
	snapOut     string
	snapWidth   int
	snapHeight  int
	snapOverlay bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render the reference scene at a given view to PNG",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := snapView.transform()
		if err != nil {
			return err
		}
		if snapWidth <= 0 || snapHeight <= 0 {
			return fmt.Errorf("size must be positive, got %dx%d", snapWidth, snapHeight)
		}
		r := raster.NewRenderer(snapWidth, snapHeight)
		r.Present(t)
		var overlay []string
		if snapOverlay {
			overlay = append(overlay, t.String())
		}
		if err := raster.WritePNG(snapOut, r.Render(overlay...)); err != nil {
			return err
		}
		slog.Info("snapshot written", "path", snapOut, "transform", t.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapView.register(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&snapOut, "output", "o", "snapshot.png", "output PNG path")
	snapshotCmd.Flags().IntVar(&snapWidth, "width", scenery.WindowWidth, "image width")
	snapshotCmd.Flags().IntVar(&snapHeight, "height", scenery.WindowHeight, "image height")
	snapshotCmd.Flags().BoolVar(&snapOverlay, "overlay", false, "print the transform in the image")
}
