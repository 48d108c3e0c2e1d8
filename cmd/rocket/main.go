// rocket is a seeded asteroid-style shooter that runs in the terminal,
// over SSH, over WebSocket or headless.
//
// Usage:
//
//	rocket list              - List available modes
//	rocket play [mode]       - Play a mode (menu when omitted)
//	rocket serve             - Start SSH server for remote play
//	rocket web               - Start WebSocket server streaming snapshots
//	rocket sim               - Run the simulation headless
//	rocket scores <mode>     - Show high scores for a mode
//	rocket config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--config <path>      - Custom rocket.yaml
//	--difficulty <name>  - easy, normal, hard or fixed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rocket-arcade/internal/config"
	"github.com/vovakirdan/rocket-arcade/internal/games/rocket"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rocket",
	Short: "Rocket - a seeded asteroid shooter for your terminal",
	Long: `Rocket is a small arena shooter: steer the ship, thrust, and shoot the
enemies that drift or chase you. The simulation is deterministic for a
given seed, so runs can be replayed headless.

Available commands:
  list     - Show all modes
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  web      - Start WebSocket server
  sim      - Run headless and print a summary
  scores   - View high scores
  config   - Print the effective configuration

Examples:
  rocket play
  rocket play rocket_endless --difficulty hard
  rocket serve --ssh :2222
  rocket web --addr :8080
  rocket sim --frames 3600 --seed 7
  rocket scores rocket`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rocket config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadTuning resolves --config and --difficulty into the rocket config and
// installs it for registry-created games.
func loadTuning() (config.RocketConfig, error) {
	cfg, err := config.LoadRocket(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyRocketPreset(&cfg, preset)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	rocket.SetConfig(cfg)
	return cfg, nil
}

// newLogger creates a stderr logger at the --log-level level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// fail prints an error the way every command reports it and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
