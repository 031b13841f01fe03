package physics

import (
	"sort"

	"github.com/solarlune/resolv"
)

// spatial hash cell size for the resolv space
const cellSize = 32

// tags let resolv filter which shapes a query tests against
var (
	tagWall       = resolv.NewTag("wall")
	tagTank       = resolv.NewTag("tank")
	tagProjectile = resolv.NewTag("projectile")
)

// BodyID identifies a body in a World. IDs are never reused, even across Reset.
type BodyID uint32

// Kind is the role a body plays in the arena.
type Kind int

const (
	KindWall Kind = iota
	KindTank
	KindProjectile
)

func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindTank:
		return "tank"
	case KindProjectile:
		return "projectile"
	default:
		return "unknown"
	}
}

// Handler receives contact callbacks during Step.
type Handler interface {
	// OnWallCollision fires after a projectile has been separated from a wall
	// and its velocity reflected.
	OnWallCollision(projectile BodyID)
	// OnOverlap fires every step a projectile overlaps the tank.
	OnOverlap(projectile, target BodyID)
}

// Options tunes the world. Drag and MaxVelocity only apply to the tank.
type Options struct {
	Width           float64
	Height          float64
	TankDrag        float64
	TankMaxVelocity float64
}

type body struct {
	id     BodyID
	kind   Kind
	x, y   float64 // center
	px, py float64 // center before the current step
	w, h   float64
	vx, vy float64

	shape      resolv.IShape
	offX, offY float64 // resolv position minus our top-left corner
}

func (b *body) rect() Rect {
	return CenterRect(b.x, b.y, b.w, b.h)
}

func (b *body) prevRect() Rect {
	return CenterRect(b.px, b.py, b.w, b.h)
}

// World is a small arcade-physics world: static walls, one dynamic tank that
// collides with walls and world bounds, and projectiles that bounce off walls.
// Integration is explicit Euler at the caller's fixed step.
type World struct {
	opts    Options
	space   *resolv.Space
	bodies  map[BodyID]*body
	byShape map[resolv.IShape]*body
	order   []BodyID
	nextID  BodyID
	handler Handler
}

// NewWorld creates an empty world.
func NewWorld(opts Options) *World {
	w := &World{opts: opts}
	w.Reset()
	return w
}

// SetHandler registers the contact callback receiver.
func (w *World) SetHandler(h Handler) {
	w.handler = h
}

// Reset removes every body. IDs keep counting up.
func (w *World) Reset() {
	w.space = resolv.NewSpace(int(w.opts.Width), int(w.opts.Height), cellSize, cellSize)
	w.bodies = make(map[BodyID]*body)
	w.byShape = make(map[resolv.IShape]*body)
	w.order = w.order[:0]
}

// Bounds returns the world size.
func (w *World) Bounds() (float64, float64) {
	return w.opts.Width, w.opts.Height
}

// AddWall adds a static wall.
func (w *World) AddWall(r Rect) BodyID {
	cx, cy := r.Center()
	return w.add(KindWall, cx, cy, r.W, r.H, 0, 0, tagWall)
}

// AddTank adds the player tank centered at (x,y).
func (w *World) AddTank(x, y, size float64) BodyID {
	return w.add(KindTank, x, y, size, size, 0, 0, tagTank)
}

// AddProjectile adds a projectile centered at (x,y) moving at (vx,vy).
func (w *World) AddProjectile(x, y, radius, vx, vy float64) BodyID {
	return w.add(KindProjectile, x, y, radius*2, radius*2, vx, vy, tagProjectile)
}

func (w *World) add(kind Kind, x, y, bw, bh, vx, vy float64, tag resolv.Tags) BodyID {
	w.nextID++
	b := &body{id: w.nextID, kind: kind, x: x, y: y, px: x, py: y, w: bw, h: bh, vx: vx, vy: vy}

	r := b.rect()
	sh := resolv.NewRectangleTopLeft(r.X, r.Y, r.W, r.H)
	sh.Tags().Set(tag)
	pos := sh.Position()
	b.offX, b.offY = pos.X-r.X, pos.Y-r.Y
	b.shape = sh

	w.space.Add(sh)
	w.bodies[b.id] = b
	w.byShape[sh] = b
	w.order = append(w.order, b.id)
	return b.id
}

// Remove deletes a body. Removing an unknown ID is a no-op.
func (w *World) Remove(id BodyID) {
	b, ok := w.bodies[id]
	if !ok {
		return
	}
	w.space.Remove(b.shape)
	delete(w.byShape, b.shape)
	delete(w.bodies, id)
	kept := w.order[:0]
	for _, o := range w.order {
		if o != id {
			kept = append(kept, o)
		}
	}
	w.order = kept
}

// Exists reports whether the body is still in the world.
func (w *World) Exists(id BodyID) bool {
	_, ok := w.bodies[id]
	return ok
}

// Kind returns the body's role; ok is false for unknown IDs.
func (w *World) Kind(id BodyID) (Kind, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return 0, false
	}
	return b.kind, true
}

// Position returns the body's center. Unknown IDs return (0,0).
func (w *World) Position(id BodyID) (float64, float64) {
	b, ok := w.bodies[id]
	if !ok {
		return 0, 0
	}
	return b.x, b.y
}

// Velocity returns the body's velocity in units/sec.
func (w *World) Velocity(id BodyID) (float64, float64) {
	b, ok := w.bodies[id]
	if !ok {
		return 0, 0
	}
	return b.vx, b.vy
}

// SetVelocity sets a dynamic body's velocity. Walls ignore it.
func (w *World) SetVelocity(id BodyID, vx, vy float64) {
	b, ok := w.bodies[id]
	if !ok || b.kind == KindWall {
		return
	}
	b.vx, b.vy = vx, vy
}

// Rect returns the body's bounding rectangle.
func (w *World) Rect(id BodyID) (Rect, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return Rect{}, false
	}
	return b.rect(), true
}

// Count returns how many bodies of the given kind exist.
func (w *World) Count(kind Kind) int {
	n := 0
	for _, b := range w.bodies {
		if b.kind == kind {
			n++
		}
	}
	return n
}

// Step advances the world by dt seconds:
//  1. integrate (tank gets drag, max velocity and world bounds)
//  2. separate the tank from walls
//  3. push projectiles back out of walls against their direction of travel,
//     reflect, then OnWallCollision
//  4. report projectile/tank overlaps via OnOverlap
//
// Handlers may remove bodies mid-step.
func (w *World) Step(dt float64) {
	ids := append([]BodyID(nil), w.order...)

	for _, id := range ids {
		b := w.bodies[id]
		b.px, b.py = b.x, b.y
		switch b.kind {
		case KindTank:
			w.integrateTank(b, dt)
		case KindProjectile:
			b.x += b.vx * dt
			b.y += b.vy * dt
			w.sync(b)
		}
	}

	var tank *body
	for _, id := range ids {
		if b, ok := w.bodies[id]; ok && b.kind == KindTank {
			tank = b
			w.collideTank(b)
			break
		}
	}

	for _, id := range ids {
		b, ok := w.bodies[id]
		if !ok || b.kind != KindProjectile {
			continue
		}
		w.collideProjectile(b)
	}

	if tank == nil || w.handler == nil {
		return
	}
	for _, id := range ids {
		b, ok := w.bodies[id]
		if !ok || b.kind != KindProjectile {
			continue
		}
		if !w.Exists(tank.id) {
			return
		}
		if b.rect().Overlaps(tank.rect()) {
			w.handler.OnOverlap(b.id, tank.id)
		}
	}
}

func (w *World) integrateTank(b *body, dt float64) {
	b.vx = applyDrag(b.vx, w.opts.TankDrag*dt)
	b.vy = applyDrag(b.vy, w.opts.TankDrag*dt)
	if m := w.opts.TankMaxVelocity; m > 0 {
		b.vx = clamp(b.vx, -m, m)
		b.vy = clamp(b.vy, -m, m)
	}
	b.x += b.vx * dt
	b.y += b.vy * dt

	// World bounds.
	hw, hh := b.w/2, b.h/2
	if b.x < hw {
		b.x, b.vx = hw, 0
	} else if b.x > w.opts.Width-hw {
		b.x, b.vx = w.opts.Width-hw, 0
	}
	if b.y < hh {
		b.y, b.vy = hh, 0
	} else if b.y > w.opts.Height-hh {
		b.y, b.vy = w.opts.Height-hh, 0
	}
	w.sync(b)
}

func (w *World) collideTank(t *body) {
	for _, wall := range w.touching(t, tagWall) {
		dx, dy, nx, ny, ok := separation(t.rect(), wall.rect())
		if !ok {
			continue
		}
		t.x += dx
		t.y += dy
		// Stop motion into the wall face.
		if nx != 0 && t.vx*nx < 0 {
			t.vx = 0
		}
		if ny != 0 && t.vy*ny < 0 {
			t.vy = 0
		}
		w.sync(t)
	}
}

func (w *World) collideProjectile(p *body) {
	vx, vy := p.vx, p.vy
	for _, wall := range w.touching(p, tagWall) {
		dx, dy, nx, ny, ok := sweptSeparation(p.rect(), p.prevRect(), wall.rect(), vx, vy)
		if !ok {
			continue
		}
		p.x += dx
		p.y += dy
		// Point the crossed component away from the face. A second wall on
		// the same axis this step leaves it unchanged.
		if nx != 0 {
			p.vx = nx * abs(p.vx)
		}
		if ny != 0 {
			p.vy = ny * abs(p.vy)
		}
		w.sync(p)
		if w.handler != nil {
			w.handler.OnWallCollision(p.id)
		}
		if !w.Exists(p.id) {
			return
		}
	}
}

// touching returns bodies with the given tag whose shapes intersect b,
// ordered by ID.
func (w *World) touching(b *body, tag resolv.Tags) []*body {
	var out []*body
	b.shape.IntersectionTest(resolv.IntersectionTestSettings{
		TestAgainst: b.shape.SelectTouchingCells(1).FilterShapes().ByTags(tag),
		OnIntersect: func(set resolv.IntersectionSet) bool {
			if other, ok := w.byShape[set.OtherShape]; ok {
				out = append(out, other)
			}
			return true
		},
	})
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (w *World) sync(b *body) {
	r := b.rect()
	b.shape.SetPosition(r.X+b.offX, r.Y+b.offY)
}

func applyDrag(v, amount float64) float64 {
	switch {
	case v > 0:
		v -= amount
		if v < 0 {
			return 0
		}
	case v < 0:
		v += amount
		if v > 0 {
			return 0
		}
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
