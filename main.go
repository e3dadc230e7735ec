package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	os.Exit(run())
}

func run() int {
	debug := flag.Bool("debug", false, "enable debug overlay and prefab hot reload")
	seed := flag.Int64("seed", 0, "level seed (0 uses world.yaml, or a random seed)")
	pillars := flag.Int("pillars", 0, "number of pillars (0 uses world.yaml)")
	flag.Parse()

	game, err := NewGame(Options{Debug: *debug, Seed: *seed, Pillars: *pillars})
	if err != nil {
		log.Print(err)
		return 1
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(game.worldSpec.ScreenWidth, game.worldSpec.ScreenHeight)
	ebiten.SetWindowTitle("flickyfrog")

	if err := ebiten.RunGame(game); err != nil {
		log.Print(err)
		return 1
	}
	return 0
}
