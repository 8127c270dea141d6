package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arkanoid/internal/arkanoid"
	"github.com/vovakirdan/arkanoid/internal/audio"
	"github.com/vovakirdan/arkanoid/internal/config"
	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/platform/tui"
	"github.com/vovakirdan/arkanoid/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing right away, skipping the title menu.

Controls:
  Left/A/H     - Move paddle left
  Right/D/L    - Move paddle right
  Down/S       - Stop paddle
  Space        - Launch the ball
  R            - Restart (after the game ends)
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower ball, wider paddle
  normal - Values from the config file
  hard   - Faster ball, narrower paddle

Every finished game is recorded to the replay journal.

Examples:
  arkanoid play
  arkanoid play --difficulty easy
  arkanoid play --seed 42 --log-file arkanoid.log
  arkanoid play --config ./my-arkanoid.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(true)
	defer closeLog()

	preset := difficulty()
	cfg := gameConfig(preset)

	store := openStore(logger)
	player := newAudio(cfg, logger)

	err := playGame(cfg, preset, runtimeConfig(cfg), store, player, logger)

	// Release resources before potential exit
	player.Close()
	if store != nil {
		store.Close()
	}

	if err != nil {
		closeLog()
		fatal("running game: %v", err)
	}
}

// newAudio creates the bounce sound player. With --mute the player is
// disabled and never touches the audio device.
func newAudio(cfg config.ArkanoidConfig, logger *log.Logger) *audio.Player {
	audioCfg := cfg.Audio
	if flagMute {
		audioCfg.Enabled = false
	}
	logger.Debug("audio", "enabled", audioCfg.Enabled, "rate", audioCfg.SampleRate)
	return audio.NewPlayer(audioCfg)
}

// playGame runs one interactive game until the user quits. The bounce
// sample and the audio device are loaded as resources; a missing audio
// device only costs the sound.
func playGame(
	cfg config.ArkanoidConfig,
	preset config.DifficultyPreset,
	rt core.RuntimeConfig,
	store *storage.Store,
	player *audio.Player,
	logger *log.Logger,
) error {
	opts := tui.Options{
		Config:     cfg,
		Difficulty: preset,
		Runtime:    rt,
		Store:      store,
		Logger:     logger,
		Resources: []tui.Resource{
			{Name: "game config", Load: cfg.Validate},
		},
	}

	listeners := arkanoid.Listeners{logListener(logger)}
	if player.Enabled() {
		listeners = append(listeners, player)
		opts.Resources = append(opts.Resources,
			tui.Resource{Name: "bounce sample", Load: player.Load},
			tui.Resource{Name: "audio device", Load: func() error {
				if err := player.Init(); err != nil {
					logger.Warn("playing without sound", "error", err)
				}
				return nil
			}},
		)
	}
	opts.Listener = listeners

	return tui.Run(opts)
}

// logListener logs session events at debug level.
func logListener(logger *log.Logger) arkanoid.Listener {
	return arkanoid.ListenerFunc(func(e arkanoid.Event) {
		switch e := e.(type) {
		case arkanoid.BounceEvent:
			logger.Debug("bounce", "source", e.Source)
		case arkanoid.GameEndedEvent:
			logger.Debug("session ended", "result", e.Result, "score", e.Score)
		}
	})
}
