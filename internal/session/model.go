package session

import (
	"time"

	"github.com/Garsondee/Tank-Ricochet/internal/config"
	"github.com/Garsondee/Tank-Ricochet/internal/physics"
)

// State is the session's top-level mode.
type State int

const (
	Playing State = iota
	Dead
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// Tank is a snapshot of the player tank.
type Tank struct {
	Body     physics.BodyID
	X, Y     float64
	VX, VY   float64
	Rotation float64 // turret angle in radians, 0 = +X
	HP       int
	MaxHP    int
}

// Projectile is a live shot.
type Projectile struct {
	Body      physics.BodyID
	X, Y      float64
	VX, VY    float64
	Bounces   int
	Armed     bool
	SpawnedAt time.Duration
	ExpiresAt time.Duration
}

// Wall is a static obstacle.
type Wall struct {
	Body     physics.BodyID
	Rect     physics.Rect
	Boundary bool // one of the four arena edges
}

// BuildWalls lays out the four boundary walls followed by the interior
// obstacles. Rects are centered the same way the arena is drawn.
func BuildWalls(arena config.ArenaConfig, obstacles []config.Obstacle) []Wall {
	w, h := arena.Width, arena.Height
	p, t := arena.Padding, arena.WallThickness

	walls := []Wall{
		{Rect: physics.CenterRect(w/2, p, w-p*2, t), Boundary: true},   // top
		{Rect: physics.CenterRect(w/2, h-p, w-p*2, t), Boundary: true}, // bottom
		{Rect: physics.CenterRect(p, h/2, t, h-p*2), Boundary: true},   // left
		{Rect: physics.CenterRect(w-p, h/2, t, h-p*2), Boundary: true}, // right
	}
	for _, o := range obstacles {
		walls = append(walls, Wall{Rect: physics.CenterRect(w*o.X, h*o.Y, o.W, o.H)})
	}
	return walls
}
