package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned (wrapped) when a loaded config fails validation.
var ErrInvalid = errors.New("invalid config")

// Config is the full tuning set for one game session.
//
// Every field has a default (see Default); a YAML file only needs to name the
// values it overrides.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Arena      ArenaConfig      `yaml:"arena"`
	Tank       TankConfig       `yaml:"tank"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Obstacles  []Obstacle       `yaml:"obstacles"`
	Log        LogConfig        `yaml:"log"`
}

// WindowConfig controls the host window.
type WindowConfig struct {
	Title string  `yaml:"title"`
	Scale float64 `yaml:"scale"` // window size = arena size * scale
	TPS   int     `yaml:"tps"`   // fixed update rate
	Mute  bool    `yaml:"mute"`
}

// ArenaConfig sizes the play area and its boundary walls.
type ArenaConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Padding       float64 `yaml:"padding"`       // inset of the boundary walls from the screen edge
	WallThickness float64 `yaml:"wallThickness"` // boundary wall thickness
}

// TankConfig holds the player tank's movement and health tuning.
type TankConfig struct {
	Size         float64 `yaml:"size"`
	Speed        float64 `yaml:"speed"`       // units/sec while a direction key is held
	MaxVelocity  float64 `yaml:"maxVelocity"` // per-axis clamp applied by the physics world
	Drag         float64 `yaml:"drag"`        // units/sec² of damping
	MaxHP        int     `yaml:"maxHP"` // fixed at 3; the HUD reads "HP: n / 3"
	MuzzleOffset float64 `yaml:"muzzleOffset"` // distance from tank center to projectile spawn
	TurretLength float64 `yaml:"turretLength"`
	TurretWidth  float64 `yaml:"turretWidth"`
}

// ProjectileConfig holds projectile tuning. Durations are in milliseconds.
type ProjectileConfig struct {
	Speed      float64 `yaml:"speed"`
	Radius     float64 `yaml:"radius"`
	MaxBounces int     `yaml:"maxBounces"`
	ArmDelayMs int     `yaml:"armDelayMs"`
	LifetimeMs int     `yaml:"lifetimeMs"`
}

// Obstacle is an interior wall. X and Y are the center as a fraction of the
// arena size; W and H are absolute.
type Obstacle struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// LogConfig sets the default log level; the -log-level flag overrides it.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the stock tuning.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title: "Tank Ricochet",
			Scale: 1,
			TPS:   60,
		},
		Arena: ArenaConfig{
			Width:         960,
			Height:        540,
			Padding:       24,
			WallThickness: 18,
		},
		Tank: TankConfig{
			Size:         36,
			Speed:        200,
			MaxVelocity:  240,
			Drag:         1200,
			MaxHP:        3,
			MuzzleOffset: 30,
			TurretLength: 40,
			TurretWidth:  12,
		},
		Projectile: ProjectileConfig{
			Speed:      420,
			Radius:     6,
			MaxBounces: 6,
			ArmDelayMs: 150,
			LifetimeMs: 4000,
		},
		Obstacles: []Obstacle{
			{X: 0.3, Y: 0.4, W: 120, H: 20},
			{X: 0.7, Y: 0.35, W: 20, H: 120},
			{X: 0.55, Y: 0.7, W: 160, H: 20},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML file and applies it over Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse applies YAML data over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every value can drive a session.
func (c *Config) Validate() error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(c.Window.Scale > 0, "window.scale must be > 0")
	check(c.Window.TPS > 0, "window.tps must be > 0")

	check(c.Arena.Width > 0 && c.Arena.Height > 0, "arena size must be > 0")
	check(c.Arena.Padding >= 0, "arena.padding must be >= 0")
	check(c.Arena.WallThickness > 0, "arena.wallThickness must be > 0")
	check(c.Arena.Padding*2 < c.Arena.Width && c.Arena.Padding*2 < c.Arena.Height,
		"arena.padding leaves no room to play")

	check(c.Tank.Size > 0, "tank.size must be > 0")
	check(c.Tank.Speed >= 0, "tank.speed must be >= 0")
	check(c.Tank.MaxVelocity > 0, "tank.maxVelocity must be > 0")
	check(c.Tank.Drag >= 0, "tank.drag must be >= 0")
	check(c.Tank.MaxHP == 3, "tank.maxHP must be 3")
	check(c.Tank.MuzzleOffset >= 0, "tank.muzzleOffset must be >= 0")

	check(c.Projectile.Speed > 0, "projectile.speed must be > 0")
	check(c.Projectile.Radius > 0, "projectile.radius must be > 0")
	check(c.Projectile.MaxBounces >= 1, "projectile.maxBounces must be >= 1")
	check(c.Projectile.ArmDelayMs >= 0, "projectile.armDelayMs must be >= 0")
	check(c.Projectile.LifetimeMs > 0, "projectile.lifetimeMs must be > 0")

	for i, o := range c.Obstacles {
		if o.X < 0 || o.X > 1 || o.Y < 0 || o.Y > 1 {
			problems = append(problems, fmt.Sprintf("obstacles[%d] position must be a fraction in [0,1]", i))
		}
		if o.W <= 0 || o.H <= 0 {
			problems = append(problems, fmt.Sprintf("obstacles[%d] size must be > 0", i))
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
