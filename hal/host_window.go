//go:build !tinygo

package hal

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"spark/internal/buildinfo"
)

// RunLEDWindow opens a small desktop window showing the status LED's on/off
// state. It is a diagnostic aid for panic blink cadence, not a general
// display — the kernel has no framebuffer syscalls. It blocks until the
// window closes.
func RunLEDWindow(h HAL) error {
	led, ok := h.LED().(*hostLED)
	if !ok {
		return ErrNotImplemented
	}

	g := &ledGame{led: led}
	ebiten.SetWindowTitle("kernel LED (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(160, 160)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type ledGame struct {
	led *hostLED
	img *ebiten.Image
}

func (g *ledGame) Update() error { return nil }

func (g *ledGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImage(1, 1)
	}

	g.led.mu.Lock()
	on := g.led.on
	g.led.mu.Unlock()

	c := color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
	if on {
		c = color.RGBA{R: 0xFF, G: 0x40, B: 0x20, A: 0xFF}
	}
	g.img.Fill(c)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(160, 160)
	screen.DrawImage(g.img, op)
}

func (g *ledGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 160, 160
}
