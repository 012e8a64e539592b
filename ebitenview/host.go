// Package ebitenview hosts a zoompan engine in an Ebitengine window. The
// host polls mouse input every frame and forwards it to the engine; the
// engine's scheduler ticks independently and hands each transform back to
// the host, which draws the reference scene with it.
package ebitenview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/zoompan"
	"github.com/phanxgames/zoompan/narrative"
	"github.com/phanxgames/zoompan/raster"
	"github.com/phanxgames/zoompan/scenery"
)

// Options configures a Host.
type Options struct {
	Width, Height int
	Title         string
	// Overlay shows zoom, transform and tick stats in the top-left corner.
	// F3 toggles it at runtime.
	Overlay bool
	// Narrative replaces interactive pan/zoom with the walkthrough: the
	// wheel steps through its states.
	Narrative bool
	// ScreenshotDir receives F12 screenshots. Default "screenshots".
	ScreenshotDir string
}

func (o *Options) defaults() {
	if o.Width <= 0 {
		o.Width = scenery.WindowWidth
	}
	if o.Height <= 0 {
		o.Height = scenery.WindowHeight
	}
	if o.Title == "" {
		o.Title = scenery.WindowTitle
	}
	if o.ScreenshotDir == "" {
		o.ScreenshotDir = "screenshots"
	}
}

// inputFrame is the input state polled in one Update call.
type inputFrame struct {
	x, y   float64
	inside bool
	// wheel uses the engine convention: positive zooms in.
	wheel   float64
	pressed [3]bool // indexed by zoompan.MouseButton

	reset, zoomIn, zoomOut, toggleOverlay, screenshot, quit bool
}

// Host is an ebiten.Game and a zoompan.Renderer.
type Host struct {
	engine *zoompan.Engine
	sched  *zoompan.Scheduler
	opts   Options
	ctx    context.Context

	latest    atomic.Pointer[zoompan.Transform]
	presented atomic.Uint64

	cycler    narrative.Cycler
	lastState int

	held         [3]bool
	lastX, lastY float64
	inside       bool
	overlay      bool
	width        int
	height       int

	shots  []string
	canvas canvas
}

// New returns a host for e. Call Run, or attach it as the renderer of a
// scheduler and pass it to ebiten.RunGame yourself.
func New(e *zoompan.Engine, opts Options) *Host {
	opts.defaults()
	h := &Host{
		engine:    e,
		opts:      opts,
		ctx:       context.Background(),
		overlay:   opts.Overlay,
		width:     opts.Width,
		height:    opts.Height,
		lastState: -1,
	}
	t := e.Current()
	h.latest.Store(&t)
	return h
}

// Present stores t for the next Draw. Called from the scheduler goroutine.
func (h *Host) Present(t zoompan.Transform) {
	h.latest.Store(&t)
	h.presented.Add(1)
}

// Transform returns the most recently presented transform.
func (h *Host) Transform() zoompan.Transform {
	return *h.latest.Load()
}

// Screenshot queues a PNG capture of the next drawn frame.
func (h *Host) Screenshot(label string) {
	h.shots = append(h.shots, label)
}

// Update polls input and forwards it to the engine.
func (h *Host) Update() error {
	if err := h.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	return h.handle(h.poll())
}

// poll reads the current Ebitengine input state.
func (h *Host) poll() inputFrame {
	mx, my := ebiten.CursorPosition()
	_, yoff := ebiten.Wheel()
	f := inputFrame{
		x:      float64(mx),
		y:      float64(my),
		inside: ebiten.IsFocused() && mx >= 0 && my >= 0 && mx < h.width && my < h.height,
		// Ebitengine reports scrolling up as positive; the engine follows
		// the AWT convention where scrolling down is positive.
		wheel: -yoff,
		pressed: [3]bool{
			zoompan.MouseButtonLeft:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
			zoompan.MouseButtonRight:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
			zoompan.MouseButtonMiddle: ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
		},
		reset:         inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyHome),
		zoomIn:        inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd),
		zoomOut:       inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract),
		toggleOverlay: inpututil.IsKeyJustPressed(ebiten.KeyF3),
		screenshot:    inpututil.IsKeyJustPressed(ebiten.KeyF12),
		quit:          inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
	return f
}

// handle applies one frame of input.
func (h *Host) handle(f inputFrame) error {
	if f.quit {
		return ebiten.Termination
	}
	if f.toggleOverlay {
		h.overlay = !h.overlay
	}
	if f.screenshot {
		h.Screenshot(fmt.Sprintf("frame-%d", h.presented.Load()))
	}
	if h.opts.Narrative {
		if f.wheel != 0 {
			h.cycler.Wheel(f.wheel)
		}
		return nil
	}

	e := h.engine
	if f.inside {
		e.SetPointer(f.x, f.y)
	} else if h.inside {
		e.ClearPointer()
	}
	h.inside = f.inside

	if f.wheel != 0 {
		e.Wheel(f.wheel)
	}
	if f.zoomIn {
		e.Wheel(1)
	}
	if f.zoomOut {
		e.Wheel(-1)
	}
	if f.reset {
		e.ResetView()
	}

	anyHeld := h.held[0] || h.held[1] || h.held[2]
	if anyHeld && (f.x != h.lastX || f.y != h.lastY) {
		e.Move(f.x, f.y)
	}
	for b := range f.pressed {
		button := zoompan.MouseButton(b)
		switch {
		case f.pressed[b] && !h.held[b]:
			e.Press(f.x, f.y, button)
		case !f.pressed[b] && h.held[b]:
			e.ReleaseButton(button)
		}
	}
	h.held = f.pressed
	h.lastX, h.lastY = f.x, f.y
	return nil
}

// Draw renders the scene with the latest transform.
func (h *Host) Draw(screen *ebiten.Image) {
	h.canvas.dst = screen

	if h.opts.Narrative {
		fr := h.cycler.Frame()
		if fr.Index != h.lastState {
			h.lastState = fr.Index
			ebiten.SetWindowTitle(fr.Caption())
		}
		scenery.Draw(&h.canvas, fr.Transform)
		if hl := fr.Highlight; hl != nil {
			scenery.DrawMarker(&h.canvas, hl.X, hl.Y, hl.Radius)
		}
	} else {
		scenery.Draw(&h.canvas, h.Transform())
	}

	if h.overlay {
		h.drawOverlay(screen)
	}
	h.flushScreenshots(screen)
}

func (h *Host) overlayText() string {
	if h.opts.Narrative {
		fr := h.cycler.Frame()
		return fmt.Sprintf("state %d/%d\n%s\nwheel: next/previous", fr.Index, narrative.States, fr.Title)
	}
	st := h.engine.State()
	s := fmt.Sprintf("zoom: %.4g\ntranslate: (%.1f, %.1f)\ntick: %d  presented: %d",
		st.Zoom, st.Current.TranslateX, st.Current.TranslateY, st.Tick, h.presented.Load())
	if h.sched != nil {
		ss := h.sched.Stats()
		s += fmt.Sprintf("\nskipped: %d  max tick: %v", ss.Skipped, ss.MaxTick.Round(time.Microsecond))
	}
	s += fmt.Sprintf("\nFPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	return s
}

func (h *Host) drawOverlay(screen *ebiten.Image) {
	text := h.overlayText()
	lines := 1
	for _, r := range text {
		if r == '\n' {
			lines++
		}
	}
	h.canvas.FillRect(0, 0, 300, float64(lines*16+8), color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrintAt(screen, text, 4, 4)
}

// flushScreenshots writes every queued screenshot of the rendered frame.
func (h *Host) flushScreenshots(screen *ebiten.Image) {
	if len(h.shots) == 0 {
		return
	}
	bounds := screen.Bounds()
	w, ht := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*ht)
	screen.ReadPixels(pixels)

	// premultiplied RGBA to straight alpha
	img := image.NewNRGBA(image.Rect(0, 0, w, ht))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}

	stamp := time.Now().Format("20060102_150405")
	for i, label := range h.shots {
		path := raster.SnapshotPath(h.opts.ScreenshotDir, i, stamp+"_"+label)
		if err := raster.WritePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[zoompan] screenshot: %v\n", err)
		}
	}
	h.shots = h.shots[:0]
}

// Layout follows the window size so the viewport always matches it.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.width, h.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed or ctx is done. In
// interactive mode it starts a scheduler that ticks the engine and presents
// to the host.
func Run(ctx context.Context, e *zoompan.Engine, opts Options) error {
	h := New(e, opts)
	h.ctx = ctx
	if !h.opts.Narrative {
		h.sched = zoompan.NewScheduler(e, h, 0)
		h.sched.Start(ctx)
		defer h.sched.Stop()
	}

	ebiten.SetWindowSize(h.opts.Width, h.opts.Height)
	ebiten.SetWindowTitle(h.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
