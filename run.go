package rowan

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the Run window bootstrap. Zero values pick defaults.
type RunConfig struct {
	Title string
	// Window size in pixels. Nonpositive values default to the viewer's
	// viewport size.
	Width, Height int
	// ShowFPS draws the measured frame and tick rates in the corner.
	ShowFPS bool
}

// game adapts a Viewer to ebiten.Game, feeding it the fixed per-tick dt and
// resizing its viewport with the window.
type game struct {
	viewer  *Viewer
	showFPS bool
}

func (g *game) Update() error {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = 60
	}
	g.viewer.Update(1.0 / float64(tps))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.viewer.Draw(screen)
	if g.showFPS {
		h := screen.Bounds().Dy()
		msg := fmt.Sprintf("FPS %0.1f  TPS %0.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		ebitenutil.DebugPrintAt(screen, msg, 4, h-18)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.viewer.SetViewport(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a window and drives the viewer until the window closes or the
// game loop fails.
func Run(v *Viewer, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = int(v.view.Viewport.Width)
	}
	if h <= 0 {
		h = int(v.view.Viewport.Height)
	}
	title := cfg.Title
	if title == "" {
		title = "rowan"
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(&game{viewer: v, showFPS: cfg.ShowFPS}); err != nil {
		return fmt.Errorf("rowan: run: %w", err)
	}
	return nil
}
