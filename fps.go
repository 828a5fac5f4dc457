package launchpad

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	statsRefresh = 0.5 // seconds between counter reads
	statsWidth   = 100
	statsHeight  = 32
)

// statsOverlay is the FPS/TPS readout drawn in the top-right corner while
// debug mode is on.
type statsOverlay struct {
	elapsed float64
	text    string
}

// update re-reads the counters every statsRefresh seconds.
func (o *statsOverlay) update(dt float64, rates func() (fps, tps float64)) {
	o.elapsed += dt
	if o.text != "" && o.elapsed < statsRefresh {
		return
	}
	o.elapsed = 0
	fps, tps := rates()
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
}

func ebitenRates() (float64, float64) {
	return ebiten.ActualFPS(), ebiten.ActualTPS()
}

func (o *statsOverlay) draw(dst *ebiten.Image) {
	if o.text == "" {
		return
	}
	x := float64(dst.Bounds().Dx() - statsWidth)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(statsWidth, statsHeight)
	op.GeoM.Translate(x, 0)
	op.ColorScale.Scale(0, 0, 0, 0.5)
	dst.DrawImage(fillImage(), &op)
	ebitenutil.DebugPrintAt(dst, o.text, int(x)+4, 0)
}
