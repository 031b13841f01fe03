package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Tank-Ricochet/internal/config"
	"github.com/Garsondee/Tank-Ricochet/internal/game"
)

func main() {
	var cfgPath string
	var level string
	var mute bool

	flag.StringVar(&cfgPath, "config", "", "YAML tuning file (built-in defaults when empty)")
	flag.StringVar(&level, "log-level", "", "debug, info, warn or error (overrides the config)")
	flag.BoolVar(&mute, "mute", false, "start with sound off")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tank",
	})

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", "path", cfgPath, "error", err)
	}
	if level == "" {
		level = cfg.Log.Level
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Fatal("Invalid log level", "level", level, "error", err)
	}
	logger.SetLevel(lvl)
	if mute {
		cfg.Window.Mute = true
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(int(cfg.Arena.Width*cfg.Window.Scale), int(cfg.Arena.Height*cfg.Window.Scale))
	ebiten.SetTPS(cfg.Window.TPS)

	logger.Info("Starting",
		"arena", [2]float64{cfg.Arena.Width, cfg.Arena.Height},
		"obstacles", len(cfg.Obstacles),
		"tps", cfg.Window.TPS,
		"muted", cfg.Window.Mute)
	if err := ebiten.RunGame(game.New(cfg, logger)); err != nil {
		logger.Fatal("Game exited", "error", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
