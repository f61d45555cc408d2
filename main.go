package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"polybounce/config"
	"polybounce/game"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal(err)
	}

	cfg := game.DefaultConfig()

	seed, err := config.Int64(config.EnvSeed, cfg.Seed)
	if err != nil {
		log.Fatal(err)
	}

	flag.Int64Var(&cfg.Seed, "seed", seed, "random seed (or set "+config.EnvSeed+")")
	flag.StringVar(&cfg.ProfilesDir, "profiles", config.String(config.EnvProfileDir, ""), "directory for fps-drop profiles, empty to disable (or set "+config.EnvProfileDir+")")
	flag.IntVar(&cfg.ScreenWidth, "width", cfg.ScreenWidth, "window width")
	flag.IntVar(&cfg.ScreenHeight, "height", cfg.ScreenHeight, "window height")
	flag.Float64Var(&cfg.Sim.Gravity, "gravity", cfg.Sim.Gravity, "downward acceleration per frame")
	flag.Float64Var(&cfg.Sim.ChaosMagnitude, "chaos", cfg.Sim.ChaosMagnitude, "maximum random velocity kick per bounce")
	flag.Parse()

	g, err := game.NewGame(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle("Polybounce")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
