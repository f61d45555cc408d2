package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"polybounce/config"
	"polybounce/sim"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal(err)
	}

	seed, err := config.Int64(config.EnvSeed, time.Now().UnixNano())
	if err != nil {
		log.Fatal(err)
	}
	frames, err := config.Int64(config.EnvFrames, 600)
	if err != nil {
		log.Fatal(err)
	}

	cfg := sim.DefaultConfig()

	seedFlag := flag.Int64("seed", seed, "random seed (or set "+config.EnvSeed+")")
	framesFlag := flag.Int("frames", int(frames), "number of frames to simulate, 0 runs until interrupted (realtime only)")
	realtime := flag.Bool("realtime", false, "tick on a wall-clock timer instead of as fast as possible")
	chartWidth := flag.Int("chart-width", 60, "width of the ascii charts")
	flag.Float64Var(&cfg.Gravity, "gravity", cfg.Gravity, "downward acceleration per frame")
	flag.Float64Var(&cfg.ChaosMagnitude, "chaos", cfg.ChaosMagnitude, "maximum random velocity kick per bounce")
	flag.IntVar(&cfg.MaxIterations, "max-iterations", cfg.MaxIterations, "collision sub-steps per frame")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	if *framesFlag <= 0 && !*realtime {
		log.Fatal("-frames must be positive unless -realtime is set")
	}

	simulation := sim.NewSimulation(cfg, rand.New(rand.NewSource(*seedFlag)))
	stats := sim.NewStats(cfg)

	driver := sim.NewDriver(simulation, cfg.FrameInterval)
	driver.OnFrame(stats.Record)

	log.Printf("simulating seed=%d frames=%d realtime=%t", *seedFlag, *framesFlag, *realtime)
	start := time.Now()

	if *realtime {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		if err := driver.Run(ctx, *framesFlag); err != nil {
			log.Printf("stopped: %v", err)
		}
	} else {
		driver.RunFrames(start, *framesFlag)
	}

	log.Printf("finished %d frames in %v", stats.Frames, time.Since(start).Round(time.Millisecond))
	fmt.Println(renderReport(*seedFlag, simulation.Snapshot(), stats, *chartWidth))
}
