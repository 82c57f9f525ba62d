package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/goldnoam/great-heist/internal/core"
	"github.com/goldnoam/great-heist/internal/platform/tui"
	"github.com/goldnoam/great-heist/internal/storage"
)

var (
	flagPlayer    string
	flagHoldTicks int
	flagMute      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play The Great Heist",
	Long: `Start a heist in this terminal.

Controls:
  W/A/S/D, arrows  - Move
  0-9, Enter       - Type and submit the door code at the terminal
  Esc              - Step back from the terminal
  P                - Pause
  R                - Restart (after game over)
  Tab              - Leaderboard (after game over)
  Esc/B            - Back to menu (paused or after game over)
  Ctrl+S           - Save a screenshot to ~/.heist/screenshots
  Q/Ctrl+C         - Quit

Runs are kept in an in-memory ledger for as long as the program runs.

Examples:
  heist play
  heist play --seed 42
  heist play --config ./my-heist.yaml --log-file heist.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Name recorded on the leaderboard")
	playCmd.Flags().IntVar(&flagHoldTicks, "hold-ticks", tui.DefaultHoldTicks, "Ticks a direction key stays held after its last repeat")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Do not ring the terminal bell")
}

func runPlay(_ *cobra.Command, _ []string) error {
	// The game owns stdout; logs go to --log-file or nowhere
	logger, closeLog, err := newLogger(nil)
	if err != nil {
		return err
	}
	//nolint:errcheck // Best-effort close on exit
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.OpenMemory()
	if err != nil {
		logger.Warn("could not open run ledger", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	sinks := tui.MultiSink{tui.NewLogSink(logger)}
	if !flagMute {
		sinks = append(sinks, tui.NewBellSink(os.Stderr))
	}

	opts := tui.Options{
		Store:     store,
		Player:    flagPlayer,
		Sink:      sinks,
		Logger:    logger,
		HoldTicks: flagHoldTicks,
	}
	if err := tui.Run("heist", cfg, opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}

	printSessionSummary(store)
	return nil
}

// printSessionSummary prints the best runs of this session after the
// screen is restored.
func printSessionSummary(store *storage.Store) {
	if store == nil {
		return
	}
	runs, err := store.TopRuns(5)
	if err != nil || len(runs) == 0 {
		return
	}

	fmt.Println("Best runs this session:")
	fmt.Printf("  %-4s  %-12s  %6s  %5s  %s\n", "Rank", "Player", "Score", "Floor", "End")
	for i, r := range runs {
		fmt.Printf("  #%-3d  %-12s  %6d  %5d  %s\n", i+1, r.Player, r.Score, r.FloorReached, r.EndReason)
	}
}
