package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arkanoid/internal/platform/tui"
)

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(true)
	defer closeLog()

	preset := difficulty()
	cfg := gameConfig(preset)
	rt := runtimeConfig(cfg)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	// One player for the whole process: the audio device opens once.
	player := newAudio(cfg, logger)
	defer player.Close()

	// Menu loop
	for {
		result, err := tui.RunMenu(rt, preset)
		if err != nil {
			logger.Error("menu failed", "error", err)
			return
		}

		// Keep size and difficulty changes for the next round
		rt = result.Config
		preset = result.Difficulty

		switch result.Choice {
		case tui.MenuPlay:
			cfg = gameConfig(preset)
			rt.TickRate = cfg.Loop.TickRate
			if err := playGame(cfg, preset, rt, store, player, logger); err != nil {
				logger.Error("game failed", "error", err)
				return
			}

		case tui.MenuReplays:
			if store == nil {
				logger.Warn("replay journal unavailable", "path", flagDBPath)
				continue
			}
			if err := browseReplays(store, rt, player, logger); err != nil {
				logger.Error("replay browser failed", "error", err)
				return
			}

		default:
			return
		}
	}
}
