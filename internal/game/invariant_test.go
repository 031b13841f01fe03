package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Garsondee/Tank-Ricochet/internal/physics"
	"github.com/Garsondee/Tank-Ricochet/internal/session"
)

// --- Invariant helpers ---

// checkTankHP verifies HP stays in [0, MaxHP] and that Dead coincides with 0.
func checkTankHP(t *testing.T, ts *TestSim) {
	t.Helper()
	tank := ts.Session.Tank()
	if tank.HP < 0 || tank.HP > tank.MaxHP {
		t.Fatalf("T=%d hp %d outside [0,%d]", ts.CurrentTick(), tank.HP, tank.MaxHP)
	}
	if dead := ts.Session.State() == session.Dead; dead != (tank.HP == 0) {
		t.Fatalf("T=%d state %s inconsistent with hp %d", ts.CurrentTick(), ts.Session.State(), tank.HP)
	}
}

// checkProjectiles verifies every live projectile is under the bounce cap,
// inside its lifetime, unarmed during the arming window, and inside the arena.
func checkProjectiles(t *testing.T, ts *TestSim) {
	t.Helper()
	cfg := ts.Arena.Config
	armDelay := time.Duration(cfg.Projectile.ArmDelayMs) * time.Millisecond
	w, h := ts.Arena.World.Bounds()
	arena := physics.Rect{W: w, H: h}
	now := ts.Now()
	for _, p := range ts.Session.Projectiles() {
		if k, ok := ts.Arena.World.Kind(p.Body); !ok || k != physics.KindProjectile {
			t.Fatalf("T=%d P%d has no projectile body (kind=%s ok=%v)", ts.CurrentTick(), p.Body, k, ok)
		}
		if p.Bounces >= cfg.Projectile.MaxBounces {
			t.Fatalf("T=%d P%d alive with %d bounces", ts.CurrentTick(), p.Body, p.Bounces)
		}
		if now >= p.ExpiresAt {
			t.Fatalf("T=%d P%d alive past expiry %s", ts.CurrentTick(), p.Body, p.ExpiresAt)
		}
		if p.Armed && now-p.SpawnedAt < armDelay {
			t.Fatalf("T=%d P%d armed %s after spawn", ts.CurrentTick(), p.Body, now-p.SpawnedAt)
		}
		if !arena.Contains(p.X, p.Y) {
			t.Fatalf("T=%d P%d escaped the arena at (%.1f,%.1f)", ts.CurrentTick(), p.Body, p.X, p.Y)
		}
	}
}

// checkTankClear verifies the tank body is not sunk into any wall.
func checkTankClear(t *testing.T, ts *TestSim) {
	t.Helper()
	tr, ok := ts.Arena.World.Rect(ts.Session.Tank().Body)
	if !ok {
		t.Fatalf("T=%d tank body missing", ts.CurrentTick())
	}
	// Allow for float residue left by separation.
	const eps = 1e-6
	tr = physics.Rect{X: tr.X + eps, Y: tr.Y + eps, W: tr.W - 2*eps, H: tr.H - 2*eps}
	for _, wall := range ts.Session.Walls() {
		wr, ok := ts.Arena.World.Rect(wall.Body)
		if !ok {
			t.Fatalf("T=%d wall %d missing from the world", ts.CurrentTick(), wall.Body)
		}
		if tr.Overlaps(wr) {
			t.Fatalf("T=%d tank %+v inside wall %+v", ts.CurrentTick(), tr, wr)
		}
	}
}

// --- Long random drill ---

func TestInvariant_RandomDrill(t *testing.T) {
	ts := NewTestSim(WithSeed(7))
	const ticks = 60 * 60
	deadFor := 0

	for i := 0; i < ticks; i++ {
		if i%20 == 0 {
			ts.AimRandom()
		}
		if i%20 == 1 {
			ts.Fire()
		}
		if ts.Session.State() == session.Dead {
			deadFor++
			if deadFor == 30 {
				ts.PressRestart()
				deadFor = 0
			}
		}
		ts.RunTicks(1)
		checkTankHP(t, ts)
		checkProjectiles(t, ts)
	}
	dumpSummary(t, ts)

	for _, e := range ts.SimLog.Select(LogQuery{Category: "shot", Key: "bounced"}) {
		if int(e.NumVal) >= ts.Arena.Config.Projectile.MaxBounces {
			t.Errorf("bounce entry at or over the cap: %s", e.String())
		}
	}
	for _, e := range ts.SimLog.Select(LogQuery{Category: "shot", Key: "burned_out"}) {
		if int(e.NumVal) != ts.Arena.Config.Projectile.MaxBounces {
			t.Errorf("burn-out off the cap: %s", e.String())
		}
	}

	st := ts.Arena.Stats
	if st.Shots != ts.SimLog.Count("shot", "fired") {
		t.Errorf("stats shots %d != fired entries %d", st.Shots, ts.SimLog.Count("shot", "fired"))
	}
	if st.Hits != ts.SimLog.Count("tank", "hit") {
		t.Errorf("stats hits %d != hit entries %d", st.Hits, ts.SimLog.Count("tank", "hit"))
	}
	if st.Deaths*3 > st.Hits {
		t.Errorf("%d deaths need at least %d hits, got %d", st.Deaths, st.Deaths*3, st.Hits)
	}
	if st.Shots == 0 {
		t.Fatal("drill fired no shots")
	}
}

// --- Driving drill: shots from wherever the tank ends up, walls included ---

func TestInvariant_DrivingDrill(t *testing.T) {
	ts := NewTestSim(WithSeed(11))
	dirs := [][]session.Key{
		{session.KeyUp}, {session.KeyDown}, {session.KeyLeft}, {session.KeyRight},
		{session.KeyUp, session.KeyLeft}, {session.KeyUp, session.KeyRight},
		{session.KeyDown, session.KeyLeft}, {session.KeyDown, session.KeyRight},
	}
	all := []session.Key{session.KeyUp, session.KeyDown, session.KeyLeft, session.KeyRight}
	rng := rand.New(rand.NewSource(11)) // #nosec G404 -- test
	const ticks = 3 * 60 * 60
	deadFor := 0

	for i := 0; i < ticks; i++ {
		if i%90 == 0 {
			ts.Release(all...)
			ts.Hold(dirs[rng.Intn(len(dirs))]...)
		}
		if i%15 == 0 {
			ts.AimRandom()
		}
		if i%15 == 1 {
			ts.Fire()
		}
		if ts.Session.State() == session.Dead {
			deadFor++
			if deadFor == 30 {
				ts.PressRestart()
				deadFor = 0
			}
		}
		ts.RunTicks(1)
		checkTankHP(t, ts)
		checkTankClear(t, ts)
		checkProjectiles(t, ts)
	}
	dumpSummary(t, ts)

	if ts.Arena.Stats.Bounces == 0 {
		t.Fatal("drill produced no bounces")
	}
}

// --- Restart ---

func TestInvariant_RestartDropsPendingArming(t *testing.T) {
	ts := NewTestSim()
	ts.AimAngle(0)
	ts.RunTicks(1)
	ts.Fire()
	ts.RunTicks(1)
	if ts.Arena.Sched.Pending() != 1 {
		t.Fatalf("expected one pending arming callback, got %d", ts.Arena.Sched.Pending())
	}

	ts.Session.Restart()
	if ts.Arena.Sched.Pending() != 0 {
		t.Fatalf("restart should drop pending callbacks, got %d", ts.Arena.Sched.Pending())
	}
	ts.RunTicks(20)
	if n := ts.SimLog.Count("shot", "armed"); n != 0 {
		t.Fatalf("no projectile should arm after restart, got %d", n)
	}
}
