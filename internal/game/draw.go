package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Tank-Ricochet/internal/config"
	"github.com/Garsondee/Tank-Ricochet/internal/session"
)

var (
	backgroundColor   = color.RGBA{R: 0x0b, G: 0x0f, B: 0x13, A: 0xff}
	boundaryColor     = color.RGBA{R: 0x1f, G: 0x29, B: 0x33, A: 0xff}
	interiorColor     = color.RGBA{R: 0x24, G: 0x33, B: 0x41, A: 0xff}
	tankColor         = color.RGBA{R: 0x38, G: 0xc1, B: 0x72, A: 0xff}
	turretColor       = color.RGBA{R: 0x91, G: 0xe7, B: 0xa8, A: 0xff}
	projectileColor   = color.RGBA{R: 0xff, G: 0xd1, B: 0x66, A: 0xff}
	unarmedShotColor  = fade(projectileColor, 0.55)
	deadTankTintAlpha = float32(0.4)
)

// turretPivot is the fraction of the turret length behind the tank center.
const turretPivot = 0.2

func drawWalls(screen *ebiten.Image, walls []session.Wall) {
	for _, w := range walls {
		c := interiorColor
		if w.Boundary {
			c = boundaryColor
		}
		r := w.Rect
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
	}
}

func drawTank(screen *ebiten.Image, t session.Tank, tc config.TankConfig, dead bool) {
	body, top := tankColor, turretColor
	if dead {
		body = fade(body, deadTankTintAlpha)
		top = fade(top, deadTankTintAlpha)
	}

	half := tc.Size / 2
	vector.FillRect(screen, float32(t.X-half), float32(t.Y-half), float32(tc.Size), float32(tc.Size), body, false)

	// Turret: a rotated rectangle pivoting a fifth of the way along its length.
	cos, sin := math.Cos(t.Rotation), math.Sin(t.Rotation)
	back := -tc.TurretLength * turretPivot
	front := tc.TurretLength * (1 - turretPivot)
	hw := tc.TurretWidth / 2
	corner := func(along, across float64) (float32, float32) {
		return float32(t.X + along*cos - across*sin), float32(t.Y + along*sin + across*cos)
	}

	var path vector.Path
	path.MoveTo(corner(back, -hw))
	path.LineTo(corner(front, -hw))
	path.LineTo(corner(front, hw))
	path.LineTo(corner(back, hw))
	path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(top)
	vector.FillPath(screen, &path, &vector.FillOptions{}, op)
}

func drawProjectiles(screen *ebiten.Image, ps []session.Projectile, radius float64) {
	for _, p := range ps {
		c := projectileColor
		if !p.Armed {
			c = unarmedShotColor
		}
		vector.FillCircle(screen, float32(p.X), float32(p.Y), float32(radius), c, true)
	}
}

// fade scales a color's alpha, keeping it premultiplied.
func fade(c color.RGBA, a float32) color.RGBA {
	return color.RGBA{
		R: uint8(float32(c.R) * a),
		G: uint8(float32(c.G) * a),
		B: uint8(float32(c.B) * a),
		A: uint8(float32(c.A) * a),
	}
}
