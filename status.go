package rowan

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

// statusRefreshInterval is how often the status text is rebuilt, in seconds.
// Counting entities every tick would double the enumeration work for a
// readout nobody can read at that rate.
const statusRefreshInterval = 0.1

const (
	statusFontSize = 12
	statusMarginPx = 8
)

// statusReadout accumulates tick statistics and renders a small text block in
// the viewport corner: tick rate, entity counts, and collision pair counts
// when the source exposes them.
type statusReadout struct {
	face  text.Face
	lineH float64

	text    string
	elapsed float64
	ticks   int
}

func newStatusReadout() *statusReadout {
	r := &statusReadout{}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		// A nil face makes draw fall back to ebitenutil.DebugPrintAt.
		debugLogf("status font init failed: %v", err)
		return r
	}
	face := &text.GoTextFace{Source: src, Size: statusFontSize}
	m := face.Metrics()
	r.face = face
	r.lineH = m.HAscent + m.HDescent + m.HLineGap
	return r
}

// tick accumulates elapsed time and rebuilds the text block once enough has
// passed. The tick rate is measured over the accumulation window.
func (r *statusReadout) tick(dt float64, src Source) {
	r.elapsed += dt
	r.ticks++
	if r.elapsed < statusRefreshInterval {
		return
	}

	rate := float64(r.ticks) / r.elapsed
	bodies, joints := 0, 0
	src.EachBody(func(Body) { bodies++ })
	src.EachJoint(func(Joint) { joints++ })

	lines := make([]string, 0, 3)
	lines = append(lines, fmt.Sprintf("%.0f ticks/s", rate))
	lines = append(lines, fmt.Sprintf("bodies %d  joints %d", bodies, joints))
	if cs, ok := src.(ContactSource); ok {
		pc := cs.PairCounts()
		lines = append(lines, fmt.Sprintf("pairs broad %d / mid %d / narrow %d", pc.Broad, pc.Mid, pc.Narrow))
	}
	r.text = strings.Join(lines, "\n")
	r.elapsed = 0
	r.ticks = 0
}

// reset clears the readout. Disabling the status toggle calls this so stale
// text never reappears on re-enable.
func (r *statusReadout) reset() {
	r.text = ""
	r.elapsed = 0
	r.ticks = 0
}

func (r *statusReadout) draw(dst *ebiten.Image, viewport Rect) {
	if r.text == "" {
		return
	}
	x := viewport.X + statusMarginPx
	y := viewport.Y + statusMarginPx
	if r.face == nil {
		ebitenutil.DebugPrintAt(dst, r.text, int(x), int(y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.LineSpacing = r.lineH
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(dst, r.text, r.face, op)
}
