// arkanoid is a terminal brick breaker with replays and SSH play.
//
// Usage:
//
//	arkanoid                    - Title menu (play, replays, difficulty)
//	arkanoid play               - Play a game right away
//	arkanoid serve              - Start SSH server for remote play
//	arkanoid replay list        - Browse journaled replays
//	arkanoid replay verify <id> - Re-simulate a replay and check its outcome
//	arkanoid config dump        - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Override the tick rate from the config
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Use a custom arkanoid.yaml
//	--difficulty <preset> - easy, normal or hard
//	--db <path>           - Set replay journal path (default: ~/.arkanoid/replays.db)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arkanoid/internal/config"
	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagDBPath     string
	flagMute       bool
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arkanoid",
	Short: "Arkanoid - break bricks in your terminal",
	Long: `Arkanoid is a terminal brick breaker. Steer the paddle, launch the
ball and clear every block without letting the ball fall.

Running arkanoid without a command opens the title menu.

Available commands:
  play     - Start a game directly
  serve    - Start SSH server for remote play
  replay   - Browse, watch and verify recorded games
  config   - Inspect the game configuration

Examples:
  arkanoid
  arkanoid play --difficulty hard
  arkanoid play --seed 42 --mute
  arkanoid serve --ssh :2222
  arkanoid replay verify 3`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use loop.tick_rate from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arkanoid/replays.db", "Path to replay journal")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger creates the process logger. When the terminal belongs to the
// TUI, logs go to --log-file or nowhere; otherwise they go to stderr.
// The returned func closes the log file.
func newLogger(tuiOwned bool) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fatal("%v", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			fatal("open log file: %v", openErr)
		}
		w = f
		closeFn = func() { f.Close() }
	case tuiOwned:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arkanoid",
		Level:           level,
	})
	return logger, closeFn
}

// gameConfig loads the configuration and applies the difficulty preset.
func gameConfig(preset config.DifficultyPreset) config.ArkanoidConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatal("%v", err)
	}
	if flagFPS > 0 {
		cfg.Loop.TickRate = flagFPS
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		fatal("%s difficulty: %v", preset, err)
	}
	return cfg
}

// difficulty parses --difficulty.
func difficulty() config.DifficultyPreset {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fatal("%v", err)
	}
	return preset
}

// runtimeConfig returns the terminal size and seed for a local session.
func runtimeConfig(cfg config.ArkanoidConfig) core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.TickRate = cfg.Loop.TickRate
	rt.Seed = flagSeed
	return rt
}

// openStore opens the replay journal. Games still work without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay journal", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
