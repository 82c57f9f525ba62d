// heist is a terminal stealth game: sneak through procedurally generated
// floors, grab the cash, find the door code and stay away from the guards.
//
// Usage:
//
//	heist play      - Play in this terminal
//	heist serve     - Start SSH server for remote play
//	heist sim       - Run a headless seeded simulation
//	heist config    - Print the effective game configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Game tuning YAML
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Log destination while the game owns the screen
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/goldnoam/great-heist/internal/config"
	"github.com/goldnoam/great-heist/internal/games/heist"
	"github.com/goldnoam/great-heist/internal/logging"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "heist",
	Short: "The Great Heist - a stealth arcade game for your terminal",
	Long: `The Great Heist drops you into a guarded building, one floor at a time.
Collect the cash, read the door code at the station, then punch it into
the terminal at the exit before the floor timer runs out.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  sim      - Run a headless seeded simulation
  config   - Print the effective game configuration

Examples:
  heist play
  heist play --seed 42
  heist serve --ssh :2222
  heist sim --ticks 3600 --seed 7
  heist config --config ./my-heist.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		// Fail early on a bad tuning file instead of silently using defaults
		if _, err := config.LoadHeist(flagConfig); err != nil {
			return err
		}
		heist.SetConfigPath(flagConfig)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom heist config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (play discards logs when empty)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger opens the log destination: --log-file when set, otherwise
// fallback, or nowhere when fallback is nil. The close func is always safe to call.
func newLogger(fallback io.Writer) (*log.Logger, func() error, error) {
	w := fallback
	closeFn := func() error { return nil }
	if flagLogFile != "" || w == nil {
		fw, c, err := logging.OpenFile(flagLogFile)
		if err != nil {
			return nil, nil, err
		}
		w, closeFn = fw, c
	}

	logger, err := logging.New(w, logging.Options{Level: flagLogLevel})
	if err != nil {
		//nolint:errcheck // Already failing
		closeFn()
		return nil, nil, err
	}
	return logger, closeFn, nil
}
