package game

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Tank-Ricochet/internal/config"
	"github.com/Garsondee/Tank-Ricochet/internal/session"
)

// toastDuration is how long a status message stays on screen.
const toastDuration = 2 * time.Second

// Game is the Ebiten host: it polls input, ticks the arena once per update,
// and draws the scene and HUD.
type Game struct {
	cfg    *config.Config
	logger *log.Logger
	arena  *Arena
	sound  *soundBank
	hud    *hudRenderer

	// writeClipboard receives the session report; nil uses the system clipboard.
	writeClipboard copyFunc

	toast      string
	toastUntil time.Duration
	showDebug  bool

	width  int
	height int
}

// New builds a game for cfg. Sound starts muted when cfg.Window.Mute is set.
func New(cfg *config.Config, logger *log.Logger) *Game {
	g := &Game{
		cfg:    cfg,
		logger: logger,
		sound:  newSoundBank(cfg.Window.Mute),
		hud:    newHUDRenderer(),
		width:  int(cfg.Arena.Width),
		height: int(cfg.Arena.Height),
	}
	g.arena = NewArena(cfg, ebitenInput{}, logger, g.sound.OnEvent, g.logEvent)
	return g
}

// Arena exposes the simulation the game drives.
func (g *Game) Arena() *Arena {
	return g.arena
}

func (g *Game) Update() error {
	g.handleHotkeys()
	g.arena.Tick(pressedButtons()...)
	return nil
}

// handleHotkeys processes the host-only keys (edge-triggered).
func (g *Game) handleHotkeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.CopyReport()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.ToggleMute()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showDebug = !g.showDebug
	}
}

// CopyReport puts the session statistics on the clipboard.
func (g *Game) CopyReport() {
	report := g.arena.Stats.Report(g.arena.Now())
	if copyReport(g.writeClipboard, report, g.logger) {
		g.showToast("report copied")
	} else {
		g.showToast("clipboard unavailable")
	}
}

// ToggleMute flips sound playback.
func (g *Game) ToggleMute() {
	if g.sound.Toggle() {
		g.showToast("sound off")
	} else {
		g.showToast("sound on")
	}
	g.logger.Debug("sound toggled", "muted", g.sound.Muted())
}

func (g *Game) showToast(msg string) {
	g.toast = msg
	g.toastUntil = g.arena.Now() + toastDuration
}

// logEvent mirrors the rarer session events into the host log.
func (g *Game) logEvent(e session.Event) {
	if e.Kind != session.EventGameOver {
		return
	}
	st := g.arena.Stats
	g.logger.Info("tank destroyed",
		"survived", st.CurrentLife(e.At).Round(time.Millisecond),
		"shots", st.Shots,
		"deaths", st.Deaths)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	s := g.arena.Session
	drawWalls(screen, s.Walls())
	drawTank(screen, s.Tank(), g.cfg.Tank, s.State() == session.Dead)
	drawProjectiles(screen, s.Projectiles(), g.cfg.Projectile.Radius)

	w, h, pad := g.cfg.Arena.Width, g.cfg.Arena.Height, g.cfg.Arena.Padding
	g.hud.draw(screen, s.HUD(), w, h, pad)
	if g.arena.Now() < g.toastUntil {
		g.hud.drawToast(screen, g.toast, w, pad)
	}
	if g.showDebug {
		ebitenutil.DebugPrintAt(screen, g.debugLine(), int(pad), int(pad)+24)
	}
}

// debugLine summarizes loop and world state for the F3 overlay.
func (g *Game) debugLine() string {
	s := g.arena.Session
	return fmt.Sprintf("TPS %.0f  FPS %.0f  T=%d  live=%d  timers=%d  shots=%d",
		ebiten.ActualTPS(), ebiten.ActualFPS(), g.arena.CurrentTick(),
		len(s.Projectiles()), g.arena.Sched.Pending(), g.arena.Stats.Shots)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
