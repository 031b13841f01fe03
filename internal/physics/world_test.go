package physics

import (
	"math"
	"testing"
)

type recorder struct {
	wallHits []BodyID
	overlaps [][2]BodyID
	onWall   func(id BodyID)
}

func (r *recorder) OnWallCollision(id BodyID) {
	r.wallHits = append(r.wallHits, id)
	if r.onWall != nil {
		r.onWall(id)
	}
}

func (r *recorder) OnOverlap(p, t BodyID) {
	r.overlaps = append(r.overlaps, [2]BodyID{p, t})
}

func newTestWorld() *World {
	return NewWorld(Options{Width: 400, Height: 300, TankDrag: 0, TankMaxVelocity: 240})
}

const dt = 1.0 / 60.0

func TestSeparation(t *testing.T) {
	wall := Rect{X: 100, Y: 0, W: 20, H: 100}
	// Box poking 3 units into the wall's left face.
	dx, dy, nx, ny, ok := separation(Rect{X: 87, Y: 40, W: 16, H: 16}, wall)
	if !ok {
		t.Fatal("expected overlap")
	}
	if math.Abs(dx+3) > 1e-9 || dy != 0 || nx != -1 || ny != 0 {
		t.Fatalf("expected push (-3,0) through normal (-1,0), got (%.2f,%.2f) n=(%.0f,%.0f)", dx, dy, nx, ny)
	}

	if _, _, _, _, ok := separation(Rect{X: 84, Y: 40, W: 16, H: 16}, wall); ok {
		t.Fatal("edge contact should not count as overlap")
	}
}

func TestProjectile_ReflectsOffWall(t *testing.T) {
	w := newTestWorld()
	rec := &recorder{}
	w.SetHandler(rec)
	w.AddWall(Rect{X: 200, Y: 0, W: 20, H: 300})
	p := w.AddProjectile(180, 150, 6, 420, 0)

	for i := 0; i < 10; i++ {
		w.Step(dt)
	}
	if len(rec.wallHits) != 1 || rec.wallHits[0] != p {
		t.Fatalf("expected one wall collision for %d, got %v", p, rec.wallHits)
	}
	vx, vy := w.Velocity(p)
	if vx != -420 || vy != 0 {
		t.Fatalf("expected reflected velocity (-420,0), got (%.1f,%.1f)", vx, vy)
	}
	x, _ := w.Position(p)
	if x > 200-6 {
		t.Fatalf("projectile should be outside the wall, x=%.2f", x)
	}
}

func TestProjectile_RemovedByHandlerStopsProcessing(t *testing.T) {
	w := newTestWorld()
	rec := &recorder{}
	rec.onWall = func(id BodyID) { w.Remove(id) }
	w.SetHandler(rec)
	w.AddWall(Rect{X: 200, Y: 0, W: 20, H: 300})
	w.AddWall(Rect{X: 0, Y: 140, W: 400, H: 20})
	w.AddTank(196, 150, 4)
	p := w.AddProjectile(196, 150, 6, 0, 0)

	w.Step(dt)
	if w.Exists(p) {
		t.Fatal("projectile should have been removed by the handler")
	}
	if len(rec.wallHits) != 1 {
		t.Fatalf("expected exactly one callback before removal, got %d", len(rec.wallHits))
	}
	if len(rec.overlaps) != 0 {
		t.Fatalf("removed projectile must not report overlaps, got %v", rec.overlaps)
	}
}

func TestTank_BlockedByWall(t *testing.T) {
	w := newTestWorld()
	w.SetHandler(&recorder{})
	w.AddWall(Rect{X: 200, Y: 0, W: 20, H: 300})
	tank := w.AddTank(150, 150, 36)

	for i := 0; i < 120; i++ {
		w.SetVelocity(tank, 200, 0)
		w.Step(dt)
	}
	x, _ := w.Position(tank)
	if x > 200-18+1e-9 {
		t.Fatalf("tank pushed through wall: x=%.2f", x)
	}
	if x < 180 {
		t.Fatalf("tank should be resting against the wall, x=%.2f", x)
	}
}

func TestTank_DragAndWorldBounds(t *testing.T) {
	w := NewWorld(Options{Width: 400, Height: 300, TankDrag: 1200, TankMaxVelocity: 240})
	tank := w.AddTank(200, 150, 36)

	w.SetVelocity(tank, 200, 0)
	w.Step(dt)
	vx, _ := w.Velocity(tank)
	if math.Abs(vx-180) > 1e-9 {
		t.Fatalf("expected drag to take 20 off per step, got vx=%.3f", vx)
	}

	w.SetVelocity(tank, -1000, 0)
	w.Step(dt)
	vx, _ = w.Velocity(tank)
	if vx != -240 {
		t.Fatalf("expected max-velocity clamp to -240, got %.3f", vx)
	}

	for i := 0; i < 300; i++ {
		w.SetVelocity(tank, -200, -200)
		w.Step(dt)
	}
	x, y := w.Position(tank)
	if x != 18 || y != 18 {
		t.Fatalf("expected tank clamped to top-left corner (18,18), got (%.2f,%.2f)", x, y)
	}
}

func TestOverlap_ReportedWithTankID(t *testing.T) {
	w := newTestWorld()
	rec := &recorder{}
	w.SetHandler(rec)
	tank := w.AddTank(100, 100, 36)
	p := w.AddProjectile(120, 100, 6, 0, 0)

	w.Step(dt)
	if len(rec.overlaps) != 1 || rec.overlaps[0] != [2]BodyID{p, tank} {
		t.Fatalf("expected overlap (%d,%d), got %v", p, tank, rec.overlaps)
	}
}

func TestReset_KeepsIDsUnique(t *testing.T) {
	w := newTestWorld()
	a := w.AddTank(100, 100, 36)
	w.Reset()
	b := w.AddTank(100, 100, 36)
	if a == b {
		t.Fatalf("IDs reused across Reset: %d", a)
	}
	if w.Exists(a) {
		t.Fatal("old body should be gone after Reset")
	}
	if w.Count(KindTank) != 1 {
		t.Fatalf("expected one tank, got %d", w.Count(KindTank))
	}
}

func TestSweptSeparation_UsesEntryFace(t *testing.T) {
	wall := Rect{X: 100, Y: 100, W: 20, H: 20}
	// Falling onto the top face near the right edge. The shallowest way out
	// is sideways, but the box came in from above.
	prev := Rect{X: 113, Y: 84, W: 12, H: 12}
	cur := Rect{X: 114, Y: 96, W: 12, H: 12}

	if dx, _, _, _, _ := separation(cur, wall); dx <= 0 {
		t.Fatalf("test setup: shortest separation should be sideways, got dx=%.1f", dx)
	}
	dx, dy, nx, ny, ok := sweptSeparation(cur, prev, wall, 60, 720)
	if !ok {
		t.Fatal("expected overlap")
	}
	if dx != 0 || math.Abs(dy+8) > 1e-9 || nx != 0 || ny != -1 {
		t.Fatalf("expected push (0,-8) through normal (0,-1), got (%.2f,%.2f) n=(%.0f,%.0f)", dx, dy, nx, ny)
	}
}

func TestProjectile_PointBlankBouncesBack(t *testing.T) {
	tests := []struct {
		name     string
		wall     Rect
		tankX    float64
		tankY    float64
		shotX    float64
		shotY    float64
		vx, vy   float64
		outside  func(x, y float64) bool
		headedIn func(vx, vy float64) bool
	}{
		{
			// Bottom boundary of a 960x540 arena, tank resting on it.
			name:  "boundary wall",
			wall:  CenterRect(480, 516, 912, 18),
			tankX: 480, tankY: 489,
			shotX: 480, shotY: 519,
			vx: 0, vy: 420,
			outside:  func(_, y float64) bool { return y <= 507-6 },
			headedIn: func(_, vy float64) bool { return vy >= 0 },
		},
		{
			// Tank flush against the left face of a 20-unit obstacle.
			name:  "thin obstacle",
			wall:  Rect{X: 600, Y: 200, W: 20, H: 100},
			tankX: 582, tankY: 250,
			shotX: 612, shotY: 250,
			vx: 420, vy: 0,
			outside:  func(x, _ float64) bool { return x <= 600-6 },
			headedIn: func(vx, _ float64) bool { return vx >= 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld(Options{Width: 960, Height: 540, TankMaxVelocity: 240})
			rec := &recorder{}
			w.SetHandler(rec)
			w.AddWall(tt.wall)
			w.AddTank(tt.tankX, tt.tankY, 36)
			p := w.AddProjectile(tt.shotX, tt.shotY, 6, tt.vx, tt.vy)

			for i := 0; i < 10; i++ {
				w.Step(dt)
			}
			x, y := w.Position(p)
			vx, vy := w.Velocity(p)
			if len(rec.wallHits) != 1 {
				t.Fatalf("expected exactly one bounce, got %d (pos=(%.1f,%.1f))", len(rec.wallHits), x, y)
			}
			if tt.headedIn(vx, vy) {
				t.Fatalf("velocity not reflected: v=(%.0f,%.0f)", vx, vy)
			}
			if !tt.outside(x, y) {
				t.Fatalf("projectile went through the wall: pos=(%.1f,%.1f)", x, y)
			}
			if !(Rect{W: 960, H: 540}).Contains(x, y) {
				t.Fatalf("projectile left the world: pos=(%.1f,%.1f)", x, y)
			}
		})
	}
}

func TestBodyQueries(t *testing.T) {
	w := newTestWorld()
	if bw, bh := w.Bounds(); bw != 400 || bh != 300 {
		t.Fatalf("expected bounds 400x300, got %.0fx%.0f", bw, bh)
	}
	wall := w.AddWall(Rect{X: 10, Y: 20, W: 30, H: 40})
	tank := w.AddTank(100, 100, 36)

	if k, ok := w.Kind(wall); !ok || k != KindWall {
		t.Fatalf("expected wall kind, got %s ok=%v", k, ok)
	}
	if k, ok := w.Kind(tank); !ok || k != KindTank {
		t.Fatalf("expected tank kind, got %s ok=%v", k, ok)
	}
	if r, ok := w.Rect(wall); !ok || r != (Rect{X: 10, Y: 20, W: 30, H: 40}) {
		t.Fatalf("wall rect changed: %+v", r)
	}
	if r, _ := w.Rect(tank); !r.Contains(100, 100) || r.Contains(120, 100) {
		t.Fatalf("unexpected tank rect %+v", r)
	}

	w.Remove(tank)
	if _, ok := w.Kind(tank); ok {
		t.Fatal("removed body still has a kind")
	}
	if _, ok := w.Rect(tank); ok {
		t.Fatal("removed body still has a rect")
	}
}
