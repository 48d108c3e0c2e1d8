package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rocket-arcade/internal/core"
	"github.com/vovakirdan/rocket-arcade/internal/platform/tui"
	"github.com/vovakirdan/rocket-arcade/internal/registry"
	"github.com/vovakirdan/rocket-arcade/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play in this terminal",
	Long: `Start playing. Without a mode, a menu lets you pick one or open the
scoreboard.

Controls:
  Left/A, Right/D  - Turn
  Up/W             - Thrust
  Space/F          - Fire
  P/Esc            - Pause
  R                - Restart
  B                - Back to menu
  Q/Ctrl+C         - Quit

Modes:
  rocket          - Classic: one hit ends the run
  rocket_endless  - Endless: hits cost nothing, play for score

Examples:
  rocket play
  rocket play rocket --difficulty easy
  rocket play rocket_endless --config ./my-rocket.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	if _, err := loadTuning(); err != nil {
		fail("%v", err)
	}

	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'rocket list' to see available modes.")
			os.Exit(1)
		}
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	runErr := playLoop(gameID, store, cfg)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fail("%v", runErr)
	}
}

// playLoop alternates between the menu, the scoreboard and games until
// the player quits. A preselected mode skips the first menu.
func playLoop(gameID string, store *storage.Store, cfg core.RuntimeConfig) error {
	for {
		if gameID == "" {
			res, err := tui.RunMenu(cfg)
			if err != nil {
				return err
			}
			cfg = res.Config
			switch {
			case res.Quit:
				return nil
			case res.WantsScoreboard:
				back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, cfg.TickRate)
				if err != nil || !back {
					return err
				}
				continue
			}
			gameID = res.GameID
		}

		game, err := registry.Create(gameID)
		if err != nil {
			return err
		}
		back, err := tui.Run(game, store, cfg)
		if err != nil || !back {
			return err
		}
		gameID = ""
	}
}
