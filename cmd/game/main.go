package main

import (
	"os"
	"time"

	"github.com/Garsondee/tank-arena/internal/config"
	"github.com/Garsondee/tank-arena/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	fs := pflag.NewFlagSet("tank-arena", pflag.ExitOnError)
	cfgPath := fs.String("config", "", "optional config file (json, yaml or toml)")
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	if err := config.BindFlags(fs); err != nil {
		logger.Fatal().Err(err).Msg("binding flags")
	}
	_ = fs.Parse(os.Args[1:])
	if err := config.Load(*cfgPath); err != nil {
		logger.Fatal().Err(err).Str("path", *cfgPath).Msg("loading config")
	}
	logger = logger.Level(config.LogLevel())

	rules := config.Rules()
	g, err := game.New(game.Options{
		Rules:  rules,
		Seed:   config.Seed(),
		Logger: logger,
		Touch:  config.TouchEnabled(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("creating game")
	}

	w, h := g.Layout(0, 0)
	scale := config.WindowScale()
	ebiten.SetWindowTitle(config.WindowTitle())
	ebiten.SetWindowSize(int(float64(w)*scale), int(float64(h)*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal().Err(err).Msg("game exited")
	}
}
