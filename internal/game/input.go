package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Tank-Ricochet/internal/session"
)

// keyBindings maps each logical key to the physical keys that trigger it.
var keyBindings = map[session.Key][]ebiten.Key{
	session.KeyUp:      {ebiten.KeyW, ebiten.KeyArrowUp},
	session.KeyDown:    {ebiten.KeyS, ebiten.KeyArrowDown},
	session.KeyLeft:    {ebiten.KeyA, ebiten.KeyArrowLeft},
	session.KeyRight:   {ebiten.KeyD, ebiten.KeyArrowRight},
	session.KeyRestart: {ebiten.KeyR},
}

// ebitenInput implements session.Input on top of Ebiten's polled state.
type ebitenInput struct{}

func (ebitenInput) IsKeyPressed(k session.Key) bool {
	for _, ek := range keyBindings[k] {
		if ebiten.IsKeyPressed(ek) {
			return true
		}
	}
	return false
}

func (ebitenInput) IsKeyJustPressed(k session.Key) bool {
	for _, ek := range keyBindings[k] {
		if inpututil.IsKeyJustPressed(ek) {
			return true
		}
	}
	return false
}

// CursorPosition returns the pointer in logical screen coordinates, which
// match arena coordinates since Layout returns the arena size.
func (ebitenInput) CursorPosition() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

// pressedButtons returns the pointer buttons pressed this tick.
func pressedButtons() []session.MouseButton {
	var out []session.MouseButton
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		out = append(out, session.ButtonPrimary)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		out = append(out, session.ButtonSecondary)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		out = append(out, session.ButtonMiddle)
	}
	return out
}
