package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/goldnoam/great-heist/internal/config"
	"github.com/goldnoam/great-heist/internal/games/heist"
)

var (
	flagSimTicks    int
	flagSimTurn     int
	flagSimAutoCode bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless seeded simulation",
	Long: `Drive the engine with a seeded random walk, without a screen, and print
the final state and how often each event fired. The run stops at the tick
limit or at game over. The same seed and flags always print the same report.

Examples:
  heist sim --seed 7
  heist sim --seed 7 --ticks 36000 --auto-code`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Maximum number of ticks to run")
	simCmd.Flags().IntVar(&flagSimTurn, "turn", 12, "Ticks between random direction changes")
	simCmd.Flags().BoolVar(&flagSimAutoCode, "auto-code", true, "Enter the door code once it has been found")
}

func runSim(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	//nolint:errcheck // Best-effort close on exit
	defer closeLog()

	cfg, err := config.LoadHeist(flagConfig)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Debug("simulation starting", "seed", seed, "ticks", flagSimTicks)
	report := heist.Simulate(cfg, heist.SimOptions{
		Ticks:    flagSimTicks,
		Seed:     seed,
		TickRate: flagFPS,
		Turn:     flagSimTurn,
		AutoCode: flagSimAutoCode,
	})
	logger.Debug("simulation finished", "ticks", report.Ticks, "hash", report.Final.Hash())

	printReport(os.Stdout, seed, report)
	return nil
}

func printReport(w io.Writer, seed int64, r heist.SimReport) {
	snap := r.Final
	fmt.Fprintf(w, "seed       %d\n", seed)
	fmt.Fprintf(w, "ticks      %d\n", r.Ticks)
	fmt.Fprintf(w, "phase      %s\n", snap.Phase)
	if snap.EndReason != "" {
		fmt.Fprintf(w, "end        %s\n", snap.EndReason)
	}
	fmt.Fprintf(w, "floor      %d (cleared %d, timeouts %d)\n", snap.Floor, snap.FloorsCleared, snap.Timeouts)
	fmt.Fprintf(w, "score      %d\n", snap.Score)
	fmt.Fprintf(w, "time left  %.2f\n", snap.TimeLeft)
	fmt.Fprintf(w, "player     (%.1f, %.1f)\n", snap.PlayerX, snap.PlayerY)
	fmt.Fprintf(w, "cash left  %d\n", snap.MoneyLeft)
	fmt.Fprintf(w, "code found %v\n", snap.FoundPassword)
	fmt.Fprintf(w, "hash       %016x\n", snap.Hash())

	if len(r.Events) == 0 {
		return
	}
	names := make([]string, 0, len(r.Events))
	for name := range r.Events {
		names = append(names, name)
	}
	slices.Sort(names)

	fmt.Fprintln(w, "events:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-18s %d\n", name, r.Events[name])
	}
}
