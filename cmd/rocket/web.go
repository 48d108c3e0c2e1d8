package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rocket-arcade/internal/config"
	"github.com/vovakirdan/rocket-arcade/internal/games/rocket/sim"
	"github.com/vovakirdan/rocket-arcade/internal/platform/web"
	"github.com/vovakirdan/rocket-arcade/internal/storage"
)

var (
	flagWebAddr    string
	flagWebWidth   float64
	flagWebHeight  float64
	flagWebMax     int
	flagWebEndless bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the WebSocket server",
	Long: `Start an HTTP server with a /ws endpoint. Every connection gets its own
engine; the server streams msgpack snapshots at the tick rate.

Client messages are JSON envelopes:
  {"t":"input","d":{"action":"shoot","pressed":true}}
  {"t":"resize","d":{"w":1024,"h":768}}
  {"t":"restart"}

Examples:
  rocket web
  rocket web --addr :9000 --endless
  rocket web --width 1280 --height 720 --fps 30`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	webCmd.Flags().Float64Var(&flagWebWidth, "width", 800, "Arena width until the client resizes")
	webCmd.Flags().Float64Var(&flagWebHeight, "height", 600, "Arena height until the client resizes")
	webCmd.Flags().IntVar(&flagWebMax, "max-sessions", 64, "Maximum concurrent sessions (0 = unlimited)")
	webCmd.Flags().BoolVar(&flagWebEndless, "endless", false, "Hits never end the run")
}

func runWeb(_ *cobra.Command, _ []string) {
	tuning, err := loadTuning()
	if err != nil {
		fail("%v", err)
	}
	logger := newLogger("rocket-web")

	cfg := web.DefaultConfig()
	cfg.Address = flagWebAddr
	cfg.Width = flagWebWidth
	cfg.Height = flagWebHeight
	cfg.TickRate = flagFPS
	cfg.MaxSessions = flagWebMax
	cfg.Logger = logger
	cfg.Rocket = tuning
	cfg.Rocket.Player.OnCollision = config.OnCollisionGameOver
	if flagWebEndless {
		cfg.GameID = "rocket_endless"
		cfg.Rocket.Player.OnCollision = config.OnCollisionSurvive
	}
	cfg.Seed = sim.DefaultSeed
	if flagSeed != 0 {
		cfg.Seed = uint64(flagSeed) //#nosec G115
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
	} else {
		cfg.Store = store
		defer store.Close()
	}

	server, err := web.NewServer(cfg)
	if err != nil {
		fail("creating server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
