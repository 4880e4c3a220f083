// tapper is Tuber Tapper for the terminal: keep the potato in the air by
// clicking it.
//
// Usage:
//
//	tapper play              - Play in this terminal (mouse required)
//	tapper serve             - Start SSH server for remote play
//	tapper sim [pilot...]    - Run autopilots headless and summarize
//	tapper pilots            - List available autopilots
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--config <path>        - Load game config from a YAML file
//	--difficulty <preset>  - easy, normal, hard or fixed
//	--log-level <level>    - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tuber-tapper/internal/config"

	// Import pilots to register them
	_ "github.com/vovakirdan/tuber-tapper/internal/pilots"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
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
	Use:   "tapper",
	Short: "Tuber Tapper - keep the potato in the air",
	Long: `Tuber Tapper is a one-button arcade game for the terminal.
Click the falling, spinning potato to knock it back up. Every hit
scores a point; let it drop off the bottom and the run is over.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  sim      - Run autopilots headless
  pilots   - List available autopilots

Examples:
  tapper play
  tapper play --difficulty hard
  tapper serve --ssh :2222
  tapper sim center jitter --runs 20 --seed 7`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(pilotsCmd)
}

// newLogger creates a stderr logger at the --log-level level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(flagLogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// loadConfig loads the game config and applies --difficulty.
func loadConfig() (config.TapperConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// seed returns --seed, or a clock-based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// fail prints an error and exits with status 1.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
