package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rocket-arcade/internal/config"
	"github.com/vovakirdan/rocket-arcade/internal/platform/headless"
)

var (
	flagSimScript  string
	flagSimFrames  int
	flagSimWidth   float64
	flagSimHeight  float64
	flagSimOut     string
	flagSimEvery   int
	flagSimEndless bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation headless",
	Long: `Run a fixed number of frames at 1/fps seconds each and print a summary
with the final state hash. The same seed, script and config always give the
same hash.

An input script presses and releases controls at given frames:

  frames: 1800
  inputs:
    - at: 0
      press: [boost, shoot]
    - at: 120
      release: [boost]
      press: [left]

Flags override the script's frames and arena when set; --seed and --fps
override its seed and step.

Examples:
  rocket sim
  rocket sim --seed 7 --frames 3600
  rocket sim --script run.yaml --out run.msgpack --every 6`,
	Run: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimScript, "script", "", "Input script YAML")
	simCmd.Flags().IntVar(&flagSimFrames, "frames", 0, "Frames to run (default: script or 600)")
	simCmd.Flags().Float64Var(&flagSimWidth, "width", 0, "Arena width (default: script or 800)")
	simCmd.Flags().Float64Var(&flagSimHeight, "height", 0, "Arena height (default: script or 600)")
	simCmd.Flags().StringVar(&flagSimOut, "out", "", "Write a msgpack snapshot stream to this file")
	simCmd.Flags().IntVar(&flagSimEvery, "every", 1, "Write every Nth frame to --out")
	simCmd.Flags().BoolVar(&flagSimEndless, "endless", false, "Hits never end the run")
}

func runSim(cmd *cobra.Command, _ []string) {
	tuning, err := loadTuning()
	if err != nil {
		fail("%v", err)
	}
	if flagSimEndless {
		tuning.Player.OnCollision = config.OnCollisionSurvive
	}
	logger := newLogger("rocket-sim")

	script := headless.DefaultScript()
	if flagSimScript != "" {
		if script, err = headless.LoadScript(flagSimScript); err != nil {
			fail("%v", err)
		}
	}
	if flagFPS > 0 && (flagSimScript == "" || cmd.Flags().Changed("fps")) {
		script.DT = 1 / float64(flagFPS)
	}
	if flagSimFrames > 0 {
		script.Frames = flagSimFrames
	}
	if flagSimWidth > 0 {
		script.Width = flagSimWidth
	}
	if flagSimHeight > 0 {
		script.Height = flagSimHeight
	}
	if cmd.Flags().Changed("seed") {
		script.Seed = uint64(flagSeed) //#nosec G115
	}

	opts := headless.Options{Config: tuning, StreamEvery: flagSimEvery, Logger: logger}
	if flagSimOut != "" {
		f, err := os.Create(flagSimOut)
		if err != nil {
			fail("%v", err)
		}
		defer f.Close()
		opts.Stream = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := headless.Run(ctx, script, opts)
	if err != nil {
		fail("%v", err)
	}

	logger.Info("run finished",
		"frames", sum.Frames,
		"clock", fmt.Sprintf("%.2fs", sum.Clock),
		"score", sum.Score,
		"kills", sum.Kills,
		"game_over", sum.GameOver,
	)
	fmt.Printf("seed      %d\n", script.Seed)
	fmt.Printf("frames    %d\n", sum.Frames)
	fmt.Printf("score     %d\n", sum.Score)
	fmt.Printf("kills     %d\n", sum.Kills)
	fmt.Printf("fired     %d\n", sum.Fired)
	fmt.Printf("spawned   %d\n", sum.Spawned)
	fmt.Printf("hits      %d (respawns %d)\n", sum.PlayerHits, sum.Respawns)
	fmt.Printf("alive     %d enemies, %d bullets, %d particles\n", sum.Enemies, sum.Bullets, sum.Particles)
	fmt.Printf("game over %t\n", sum.GameOver)
	fmt.Printf("hash      %016x\n", sum.Hash)
}
