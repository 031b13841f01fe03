package game

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/Garsondee/Tank-Ricochet/internal/config"
	"github.com/Garsondee/Tank-Ricochet/internal/physics"
	"github.com/Garsondee/Tank-Ricochet/internal/session"
	"github.com/Garsondee/Tank-Ricochet/internal/timer"
)

// Arena wires the session controller to its physics world and deferred
// scheduler and advances all three one fixed tick at a time. Both the Ebiten
// host and the headless TestSim drive the game through it.
type Arena struct {
	Config  *config.Config
	World   *physics.World
	Sched   *timer.Scheduler
	Session *session.Controller
	Stats   *Stats

	tick  int
	tps   int
	dt    float64
	sinks []func(session.Event)
}

// NewArena builds a ready-to-play arena. sinks receive every session event
// after Stats has recorded it.
func NewArena(cfg *config.Config, input session.Input, logger *log.Logger, sinks ...func(session.Event)) *Arena {
	a := &Arena{
		Config: cfg,
		World: physics.NewWorld(physics.Options{
			Width:           cfg.Arena.Width,
			Height:          cfg.Arena.Height,
			TankDrag:        cfg.Tank.Drag,
			TankMaxVelocity: cfg.Tank.MaxVelocity,
		}),
		Sched: timer.NewScheduler(),
		Stats: NewStats(),
		tps:   cfg.Window.TPS,
		dt:    1.0 / float64(cfg.Window.TPS),
		sinks: sinks,
	}
	a.Session = session.New(cfg, a.World, input, a.Sched,
		session.WithLogger(logger.With("component", "session")),
		session.WithEventHandler(a.dispatch),
	)
	a.World.SetHandler(a.Session)
	return a
}

func (a *Arena) dispatch(e session.Event) {
	a.Stats.Record(e)
	for _, s := range a.sinks {
		s(e)
	}
}

// Tick runs one frame: deferred callbacks, this frame's pointer presses, the
// session's per-frame rules, then one physics step.
func (a *Arena) Tick(presses ...session.MouseButton) {
	a.tick++
	now := a.Now()
	a.Sched.Advance(now)
	for _, b := range presses {
		a.Session.PointerDown(b, now)
	}
	a.Session.Update(now)
	a.World.Step(a.dt)
}

// CurrentTick returns the number of ticks run so far.
func (a *Arena) CurrentTick() int {
	return a.tick
}

// Now returns game time derived from the tick count.
func (a *Arena) Now() time.Duration {
	return time.Duration(a.tick) * time.Second / time.Duration(a.tps)
}
