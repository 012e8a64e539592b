package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/zoompan"
	"github.com/phanxgames/zoompan/raster"
	"github.com/phanxgames/zoompan/scenery"
)

var (
	replayView   viewFlags
	replayTicks  bool
	replayJSON   bool
	replayPNGDir string
)

// replayRecord is one output line in --json mode.
type replayRecord struct {
	Kind       string  `json:"kind"` // "tick" or "snapshot"
	Label      string  `json:"label,omitempty"`
	Tick       uint64  `json:"tick"`
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translate_x"`
	TranslateY float64 `json:"translate_y"`
}

var replayCmd = &cobra.Command{
	Use:   "replay <script.json>",
	Short: "Replay an input script against the engine without a window",
	Long: `Replay a JSON input script and print the transform at every snapshot
step (and every tick with --ticks).

Script format:
  {"steps": [
    {"action": "pointer", "x": 50, "y": 100},
    {"action": "wheel", "rotation": 1},
    {"action": "tick"},
    {"action": "drag", "fromX": 10, "fromY": 10, "toX": 110, "toY": 60, "frames": 5},
    {"action": "snapshot", "label": "after drag"}
  ]}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := zoompan.ParseScript(data)
		if err != nil {
			return err
		}
		e, err := newEngine(replayView)
		if err != nil {
			return err
		}
		slog.Debug("replaying", "script", args[0], "steps", script.Len())
		return replay(cmd.OutOrStdout(), e, script)
	},
}

func replay(out io.Writer, e *zoompan.Engine, script *zoompan.Script) error {
	var r *raster.Renderer
	if replayPNGDir != "" {
		r = raster.NewRenderer(scenery.WindowWidth, scenery.WindowHeight)
	}

	var writeErr error
	emit := func(rec replayRecord) {
		if writeErr != nil {
			return
		}
		if replayJSON {
			writeErr = json.NewEncoder(out).Encode(rec)
			return
		}
		_, writeErr = fmt.Fprintf(out, "%-8s %4d  scale=%.6g translate=(%.6g, %.6g)  %s\n",
			rec.Kind, rec.Tick, rec.Scale, rec.TranslateX, rec.TranslateY, rec.Label)
	}
	record := func(kind, label string, tick uint64, t zoompan.Transform) replayRecord {
		return replayRecord{Kind: kind, Label: label, Tick: tick, Scale: t.ScaleX,
			TranslateX: t.TranslateX, TranslateY: t.TranslateY}
	}

	p := zoompan.NewScriptPlayer(script)
	shots := 0
	p.OnSnapshot = func(s zoompan.Snapshot) {
		emit(record("snapshot", s.Label, s.Tick, s.Transform))
		if r == nil || writeErr != nil {
			return
		}
		r.Present(s.Transform)
		img := r.Render(fmt.Sprintf("%s  tick %d", s.Label, s.Tick), s.Transform.String())
		path := raster.SnapshotPath(replayPNGDir, shots, s.Label)
		shots++
		if err := raster.WritePNG(path, img); err != nil {
			writeErr = err
			return
		}
		slog.Debug("snapshot written", "path", path)
	}

	for p.Frame(e) {
		if replayTicks {
			st := e.State()
			emit(record("tick", "", st.Tick, st.Current))
		}
	}
	return writeErr
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayView.register(replayCmd)
	replayCmd.Flags().BoolVar(&replayTicks, "ticks", false, "print the transform after every tick")
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "print JSON lines instead of text")
	replayCmd.Flags().StringVar(&replayPNGDir, "png", "", "also render every snapshot to a PNG in this directory")
}
