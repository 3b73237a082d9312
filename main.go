package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"scratchcard/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// 1. Window Setup
	ebiten.SetWindowSize(cfg.Canvas.Width, cfg.Canvas.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// 2. Initialize Game
	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// 3. Run Loop
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
