package game

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Garsondee/Tank-Ricochet/internal/config"
	"github.com/Garsondee/Tank-Ricochet/internal/session"
)

// TestSim is a headless simulation harness used by tests and the headless
// report. It drives the same Arena as Game.Update with scripted input, no
// Ebiten window, deterministic seeding, and structured logging.
type TestSim struct {
	Arena   *Arena
	Session *session.Controller
	SimLog  *SimLog

	cfg      *config.Config
	logger   *log.Logger
	input    *simInput
	rng      *rand.Rand
	fireNext bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // config, seed, logging: applied before the arena exists
	simOptScene                      // pointer and keys: applied once the scene is built
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithConfig replaces the default tuning.
func WithConfig(cfg *config.Config) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg = cfg
	}}
}

// WithSeed sets the RNG seed used by AimRandom.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithLogger routes session logs to l instead of discarding them.
func WithLogger(l *log.Logger) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.logger = l
	}}
}

// WithPointer places the pointer at (x,y) before the first tick.
func WithPointer(x, y float64) SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		ts.Aim(x, y)
	}}
}

// WithKeysHeld holds movement keys from the first tick.
func WithKeysHeld(keys ...session.Key) SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		ts.Hold(keys...)
	}}
}

// NewTestSim builds a headless arena. Infra options are applied first, then
// the scene is built, then scene options.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cfg:    config.Default(),
		logger: log.New(io.Discard),
		SimLog: NewSimLog(false),
		input:  newSimInput(),
		rng:    rand.New(rand.NewSource(1)), // #nosec G404 -- test harness
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}

	ts.Arena = NewArena(ts.cfg, ts.input, ts.logger, func(e session.Event) {
		ts.SimLog.AddEvent(ts.Arena.CurrentTick(), e)
	})
	ts.Session = ts.Arena.Session

	for _, o := range opts {
		if o.kind == simOptScene {
			o.fn(ts)
		}
	}
	return ts
}

// Aim moves the pointer. The turret follows on the next tick.
func (ts *TestSim) Aim(x, y float64) {
	ts.input.cx, ts.input.cy = x, y
}

// AimAngle points the turret theta radians from +X, relative to the tank.
func (ts *TestSim) AimAngle(theta float64) {
	t := ts.Session.Tank()
	ts.Aim(t.X+math.Cos(theta)*100, t.Y+math.Sin(theta)*100)
}

// AimRandom points the turret in a seeded random direction and returns the angle.
func (ts *TestSim) AimRandom() float64 {
	theta := ts.rng.Float64() * 2 * math.Pi
	ts.AimAngle(theta)
	return theta
}

// Fire presses the primary button on the next tick.
func (ts *TestSim) Fire() {
	ts.fireNext = true
}

// FireAt aims at (x,y), lets the turret settle for one tick, then fires.
func (ts *TestSim) FireAt(x, y float64) {
	ts.Aim(x, y)
	ts.RunTicks(1)
	ts.Fire()
	ts.RunTicks(1)
}

// Hold presses keys until Release.
func (ts *TestSim) Hold(keys ...session.Key) {
	for _, k := range keys {
		ts.input.held[k] = true
	}
}

// Release lifts keys.
func (ts *TestSim) Release(keys ...session.Key) {
	for _, k := range keys {
		delete(ts.input.held, k)
	}
}

// PressRestart taps R for exactly one tick.
func (ts *TestSim) PressRestart() {
	ts.input.just[session.KeyRestart] = true
}

// RunTicks advances the simulation by n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances until cond returns true or maxTicks have run. It reports
// whether cond was met.
func (ts *TestSim) RunUntil(maxTicks int, cond func(*TestSim) bool) bool {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if cond(ts) {
			return true
		}
	}
	return false
}

func (ts *TestSim) runOneTick() {
	if ts.fireNext {
		ts.fireNext = false
		ts.Arena.Tick(session.ButtonPrimary)
	} else {
		ts.Arena.Tick()
	}
	clear(ts.input.just)

	if !ts.SimLog.Verbose() {
		return
	}
	tick := ts.Arena.CurrentTick()
	t := ts.Session.Tank()
	ts.SimLog.AddVerbose(tick, "tank", "move", "position",
		fmt.Sprintf("(%.1f,%.1f)", t.X, t.Y), 0)
	for _, p := range ts.Session.Projectiles() {
		ts.SimLog.AddVerbose(tick, fmt.Sprintf("P%d", p.Body), "move", "position",
			fmt.Sprintf("(%.1f,%.1f) v=(%.0f,%.0f)", p.X, p.Y, p.VX, p.VY), float64(p.Bounces))
	}
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.Arena.CurrentTick()
}

// Now returns the current game time.
func (ts *TestSim) Now() time.Duration {
	return ts.Arena.Now()
}

// SimSnapshot is a lightweight copy of the session state at a tick.
type SimSnapshot struct {
	Tick        int
	Now         time.Duration
	State       session.State
	Tank        session.Tank
	Projectiles []session.Projectile
}

// Snapshot returns the current session state.
func (ts *TestSim) Snapshot() SimSnapshot {
	return SimSnapshot{
		Tick:        ts.Arena.CurrentTick(),
		Now:         ts.Arena.Now(),
		State:       ts.Session.State(),
		Tank:        ts.Session.Tank(),
		Projectiles: ts.Session.Projectiles(),
	}
}

// simInput is a scripted session.Input.
type simInput struct {
	held   map[session.Key]bool
	just   map[session.Key]bool
	cx, cy float64
}

func newSimInput() *simInput {
	return &simInput{
		held: map[session.Key]bool{},
		just: map[session.Key]bool{},
	}
}

func (in *simInput) IsKeyPressed(k session.Key) bool { return in.held[k] || in.just[k] }

func (in *simInput) IsKeyJustPressed(k session.Key) bool { return in.just[k] }

func (in *simInput) CursorPosition() (float64, float64) { return in.cx, in.cy }
