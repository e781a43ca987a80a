package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/mwrenn/deepdelve/internal/audio"
	"github.com/mwrenn/deepdelve/internal/game"
	"github.com/mwrenn/deepdelve/internal/logger"
)

func main() {
	logger.Init()

	settings := game.LoadSettings("config.yaml")

	totals, err := game.LoadRunStats(settings.SavePath)
	if err != nil {
		logger.Log.WithError(err).Warn("could not load run stats, starting fresh")
		totals = game.RunStats{}
	}

	snd := audio.NewManager(settings.Volume)
	if err := snd.Init(); err != nil {
		logger.Log.WithError(err).Warn("audio unavailable, running silent")
	}
	defer snd.Close()

	ebiten.SetWindowTitle("Deep Delve")
	ebiten.SetWindowSize(1280, 800)
	if err := ebiten.RunGame(game.New(settings, snd, totals)); err != nil {
		logger.Log.WithError(err).Fatal("game loop failed")
	}
}
