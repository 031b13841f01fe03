package session

import (
	"io"
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Garsondee/Tank-Ricochet/internal/config"
	"github.com/Garsondee/Tank-Ricochet/internal/physics"
)

// Key is a logical key the controller polls.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyRestart
)

// MouseButton identifies a pointer button.
type MouseButton int

const (
	ButtonPrimary MouseButton = iota
	ButtonSecondary
	ButtonMiddle
)

// Input is the key and pointer state the host exposes each frame.
type Input interface {
	IsKeyPressed(k Key) bool
	IsKeyJustPressed(k Key) bool
	CursorPosition() (x, y float64)
}

// World is the physics collaborator. *physics.World satisfies it.
type World interface {
	Reset()
	AddWall(r physics.Rect) physics.BodyID
	AddTank(x, y, size float64) physics.BodyID
	AddProjectile(x, y, radius, vx, vy float64) physics.BodyID
	Remove(id physics.BodyID)
	Exists(id physics.BodyID) bool
	Position(id physics.BodyID) (x, y float64)
	Velocity(id physics.BodyID) (vx, vy float64)
	SetVelocity(id physics.BodyID, vx, vy float64)
}

// Scheduler runs deferred callbacks. *timer.Scheduler satisfies it.
type Scheduler interface {
	After(now, delay time.Duration, fn func())
	Clear()
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes controller logs to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithEventHandler receives every gameplay Event.
func WithEventHandler(fn func(Event)) Option {
	return func(c *Controller) {
		c.onEvent = fn
	}
}

// Controller owns every gameplay rule of the arena: movement, aiming,
// the projectile lifecycle, damage and the death/restart loop.
//
// The host calls Update once per frame and PointerDown on button presses; the
// physics world calls OnWallCollision and OnOverlap while stepping. All of
// these run on the game loop goroutine.
type Controller struct {
	cfg     *config.Config
	world   World
	input   Input
	sched   Scheduler
	logger  *log.Logger
	onEvent func(Event)

	state       State
	tank        Tank
	walls       []Wall
	projectiles map[physics.BodyID]*Projectile
	hud         HUD
	now         time.Duration
}

// New builds a controller and initializes the scene.
func New(cfg *config.Config, world World, input Input, sched Scheduler, opts ...Option) *Controller {
	c := &Controller{
		cfg:    cfg,
		world:  world,
		input:  input,
		sched:  sched,
		logger: log.New(io.Discard),
	}
	for _, o := range opts {
		o(c)
	}
	c.reset()
	return c
}

// reset rebuilds the scene: walls, tank at arena center, full HP, Playing.
func (c *Controller) reset() {
	c.world.Reset()
	c.sched.Clear()

	c.walls = BuildWalls(c.cfg.Arena, c.cfg.Obstacles)
	for i := range c.walls {
		c.walls[i].Body = c.world.AddWall(c.walls[i].Rect)
	}

	cx, cy := c.cfg.Arena.Width/2, c.cfg.Arena.Height/2
	c.tank = Tank{
		Body:  c.world.AddTank(cx, cy, c.cfg.Tank.Size),
		X:     cx,
		Y:     cy,
		HP:    c.cfg.Tank.MaxHP,
		MaxHP: c.cfg.Tank.MaxHP,
	}
	c.projectiles = make(map[physics.BodyID]*Projectile)
	c.state = Playing
	c.hud = HUD{Legend: Legend}
	c.refreshHUD()
}

// Restart re-initializes the whole scene.
func (c *Controller) Restart() {
	c.reset()
	c.logger.Info("session restarted")
	c.emit(Event{Kind: EventRestart, At: c.now, HP: c.tank.HP})
}

// Update runs the per-frame rules at game time now.
func (c *Controller) Update(now time.Duration) {
	c.now = now

	if c.state == Dead {
		if c.input.IsKeyJustPressed(KeyRestart) {
			c.Restart()
		}
		return
	}

	// Movement: signed key sum, normalized, fixed speed. No input = stop.
	mx := axis(c.input.IsKeyPressed(KeyRight)) - axis(c.input.IsKeyPressed(KeyLeft))
	my := axis(c.input.IsKeyPressed(KeyDown)) - axis(c.input.IsKeyPressed(KeyUp))
	vx, vy := 0.0, 0.0
	if mx != 0 || my != 0 {
		l := math.Hypot(mx, my)
		vx = mx / l * c.cfg.Tank.Speed
		vy = my / l * c.cfg.Tank.Speed
	}
	c.world.SetVelocity(c.tank.Body, vx, vy)

	// Turret follows the pointer.
	tx, ty := c.world.Position(c.tank.Body)
	px, py := c.input.CursorPosition()
	c.tank.Rotation = math.Atan2(py-ty, px-tx)

	// Lifetime sweep.
	for _, id := range c.projectileIDs() {
		p := c.projectiles[id]
		if now >= p.ExpiresAt {
			c.destroy(id)
			c.logger.Debug("projectile expired", "id", id, "bounces", p.Bounces)
			c.emit(Event{Kind: EventExpired, At: now, Projectile: id, Bounces: p.Bounces, HP: c.tank.HP})
		}
	}
}

// PointerDown fires on a primary-button press. Ignored while Dead.
func (c *Controller) PointerDown(button MouseButton, now time.Duration) {
	if button != ButtonPrimary {
		return
	}
	c.Fire(now)
}

// Fire spawns a projectile at the muzzle along the turret direction and
// schedules it to arm after the arming delay.
func (c *Controller) Fire(now time.Duration) {
	if c.state == Dead {
		return
	}
	c.now = now

	pc := c.cfg.Projectile
	dx, dy := math.Cos(c.tank.Rotation), math.Sin(c.tank.Rotation)
	tx, ty := c.world.Position(c.tank.Body)
	sx := tx + dx*c.cfg.Tank.MuzzleOffset
	sy := ty + dy*c.cfg.Tank.MuzzleOffset

	id := c.world.AddProjectile(sx, sy, pc.Radius, dx*pc.Speed, dy*pc.Speed)
	p := &Projectile{
		Body:      id,
		SpawnedAt: now,
		ExpiresAt: now + time.Duration(pc.LifetimeMs)*time.Millisecond,
	}
	c.projectiles[id] = p

	c.sched.After(now, time.Duration(pc.ArmDelayMs)*time.Millisecond, func() {
		// The projectile may have burned out, expired, or been reset away.
		if cur, ok := c.projectiles[id]; ok && cur == p {
			cur.Armed = true
			c.emit(Event{Kind: EventArmed, At: c.now, Projectile: id, HP: c.tank.HP})
		}
	})

	c.logger.Debug("fired", "id", id, "angle", c.tank.Rotation)
	c.emit(Event{Kind: EventFired, At: now, Projectile: id, HP: c.tank.HP})
}

// OnWallCollision counts a bounce and retires the projectile at the cap.
// Reflection itself has already been applied by the physics world.
func (c *Controller) OnWallCollision(id physics.BodyID) {
	p, ok := c.projectiles[id]
	if !ok {
		return
	}
	p.Bounces++
	if p.Bounces >= c.cfg.Projectile.MaxBounces {
		c.destroy(id)
		c.logger.Debug("projectile burned out", "id", id, "bounces", p.Bounces)
		c.emit(Event{Kind: EventBurnedOut, At: c.now, Projectile: id, Bounces: p.Bounces, HP: c.tank.HP})
		return
	}
	c.emit(Event{Kind: EventBounced, At: c.now, Projectile: id, Bounces: p.Bounces, HP: c.tank.HP})
}

// OnOverlap applies damage when an armed projectile touches the tank.
func (c *Controller) OnOverlap(id, target physics.BodyID) {
	if c.state == Dead {
		return
	}
	p, ok := c.projectiles[id]
	if !ok || !p.Armed {
		return
	}
	if target != c.tank.Body {
		return
	}

	c.destroy(id)
	c.tank.HP = max(0, c.tank.HP-1)
	c.refreshHUD()
	c.logger.Info("tank hit", "hp", c.tank.HP, "bounces", p.Bounces)
	c.emit(Event{Kind: EventHit, At: c.now, Projectile: id, Bounces: p.Bounces, HP: c.tank.HP})

	if c.tank.HP <= 0 {
		c.gameOver()
	}
}

func (c *Controller) gameOver() {
	c.state = Dead
	c.hud.GameOver = DeathMessage
	c.world.SetVelocity(c.tank.Body, 0, 0)
	c.logger.Info("game over")
	c.emit(Event{Kind: EventGameOver, At: c.now, HP: c.tank.HP})
}

func (c *Controller) destroy(id physics.BodyID) {
	delete(c.projectiles, id)
	c.world.Remove(id)
}

func (c *Controller) refreshHUD() {
	c.hud.HP = hpText(c.tank.HP, c.tank.MaxHP)
	c.hud.Legend = Legend
}

func (c *Controller) emit(e Event) {
	if c.onEvent != nil {
		c.onEvent(e)
	}
}

// projectileIDs returns live projectile IDs in spawn order.
func (c *Controller) projectileIDs() []physics.BodyID {
	ids := make([]physics.BodyID, 0, len(c.projectiles))
	for id := range c.projectiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// State returns Playing or Dead.
func (c *Controller) State() State { return c.state }

// HUD returns the current overlay text.
func (c *Controller) HUD() HUD { return c.hud }

// Now returns the game time of the latest Update or Fire.
func (c *Controller) Now() time.Duration { return c.now }

// Tank returns a snapshot of the tank with its current physics state.
func (c *Controller) Tank() Tank {
	t := c.tank
	t.X, t.Y = c.world.Position(t.Body)
	t.VX, t.VY = c.world.Velocity(t.Body)
	return t
}

// Walls returns the arena walls.
func (c *Controller) Walls() []Wall {
	return c.walls
}

// Projectiles returns snapshots of live projectiles in spawn order.
func (c *Controller) Projectiles() []Projectile {
	out := make([]Projectile, 0, len(c.projectiles))
	for _, id := range c.projectileIDs() {
		p := *c.projectiles[id]
		p.X, p.Y = c.world.Position(id)
		p.VX, p.VY = c.world.Velocity(id)
		out = append(out, p)
	}
	return out
}

// Projectile returns one projectile snapshot; ok is false once it is gone.
func (c *Controller) Projectile(id physics.BodyID) (Projectile, bool) {
	p, ok := c.projectiles[id]
	if !ok {
		return Projectile{}, false
	}
	out := *p
	out.X, out.Y = c.world.Position(id)
	out.VX, out.VY = c.world.Velocity(id)
	return out, true
}

func axis(pressed bool) float64 {
	if pressed {
		return 1
	}
	return 0
}
