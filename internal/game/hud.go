package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Tank-Ricochet/internal/session"
)

// basicfont glyphs are 13px tall; styles scale them to the arena's type sizes.
const glyphHeight = 13

var (
	hpColor       = color.RGBA{R: 0xe5, G: 0xf2, B: 0xff, A: 0xff}
	legendColor   = color.RGBA{R: 0x8f, G: 0xb3, B: 0xc9, A: 0xff}
	gameOverColor = color.RGBA{R: 0xff, G: 0x6b, B: 0x6b, A: 0xff}
	toastColor    = color.RGBA{R: 0xff, G: 0xd1, B: 0x66, A: 0xff}
)

// textStyle is a size, color and anchor for one HUD line.
type textStyle struct {
	px      float64 // target glyph height in pixels
	col     color.Color
	primary text.Align // horizontal anchor
	second  text.Align // vertical anchor
}

var (
	hpStyle       = textStyle{px: 18, col: hpColor, primary: text.AlignStart, second: text.AlignStart}
	legendStyle   = textStyle{px: 14, col: legendColor, primary: text.AlignStart, second: text.AlignEnd}
	gameOverStyle = textStyle{px: 48, col: gameOverColor, primary: text.AlignCenter, second: text.AlignCenter}
	toastStyle    = textStyle{px: 14, col: toastColor, primary: text.AlignEnd, second: text.AlignStart}
)

// hudRenderer draws session.HUD text with the built-in bitmap face.
type hudRenderer struct {
	face *text.GoXFace
}

func newHUDRenderer() *hudRenderer {
	return &hudRenderer{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (h *hudRenderer) draw(screen *ebiten.Image, hud session.HUD, w, ht, pad float64) {
	h.drawText(screen, hud.HP, pad, pad, hpStyle)
	h.drawText(screen, hud.Legend, pad, ht-pad, legendStyle)
	if hud.GameOver != "" {
		h.drawText(screen, hud.GameOver, w/2, ht/2, gameOverStyle)
	}
}

// drawToast shows a short status message in the top-right corner.
func (h *hudRenderer) drawToast(screen *ebiten.Image, msg string, w, pad float64) {
	if msg == "" {
		return
	}
	h.drawText(screen, msg, w-pad, pad, toastStyle)
}

func (h *hudRenderer) drawText(screen *ebiten.Image, s string, x, y float64, st textStyle) {
	scale := st.px / glyphHeight
	op := &text.DrawOptions{}
	op.LineSpacing = glyphHeight
	op.PrimaryAlign = st.primary
	op.SecondaryAlign = st.second
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(st.col)
	text.Draw(screen, s, h.face, op)
}
