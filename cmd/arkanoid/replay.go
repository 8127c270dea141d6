package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arkanoid/internal/audio"
	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/platform/tui"
	"github.com/vovakirdan/arkanoid/internal/replay"
	"github.com/vovakirdan/arkanoid/internal/storage"
)

const journalTimeout = 10 * time.Second

var (
	flagPlain bool
	flagLimit int
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Browse, watch and verify recorded games",
	Long: `Every finished game is recorded to the replay journal as its seed,
its configuration and the inputs applied at each tick. A replay is
re-simulated from those, so it always plays out exactly like the original.

Examples:
  arkanoid replay list
  arkanoid replay list --plain --limit 5
  arkanoid replay show 3
  arkanoid replay verify 3
  arkanoid replay watch 3
  arkanoid replay delete 3`,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "Browse recorded games",
	Long: `Open the replay browser. Enter watches the selected replay, X deletes it.
With --plain the journal is printed instead.`,
	Args: cobra.NoArgs,
	Run:  runReplayList,
}

var replayShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a recorded game and its inputs",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayShow,
}

var replayVerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Re-simulate a recorded game and check its outcome",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayVerify,
}

var replayWatchCmd = &cobra.Command{
	Use:   "watch <id>",
	Short: "Watch a recorded game",
	Long: `Play back a recorded game at its original tick rate.

Controls:
  Space/P   - Pause
  +/-       - Faster/slower
  Q/Esc     - Quit`,
	Args: cobra.ExactArgs(1),
	Run:  runReplayWatch,
}

var replayDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded game",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayDelete,
}

func init() {
	replayListCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the journal instead of opening the browser")
	replayListCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of replays to print with --plain")

	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayShowCmd)
	replayCmd.AddCommand(replayVerifyCmd)
	replayCmd.AddCommand(replayWatchCmd)
	replayCmd.AddCommand(replayDeleteCmd)
}

// mustOpenStore opens the replay journal or exits.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening replay journal: %v", err)
	}
	return store
}

func parseID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fatal("invalid replay id %q", arg)
	}
	return id
}

// loadReplay reads and decodes one journaled game.
func loadReplay(store *storage.Store, id int64) (replay.Journaled, error) {
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()

	rec, err := store.Replay(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return replay.Journaled{}, fmt.Errorf("replay #%d not found", id)
	}
	if err != nil {
		return replay.Journaled{}, err
	}
	return replay.FromRecord(rec)
}

func runReplayList(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	if flagPlain {
		printReplays(store)
		return
	}

	logger, closeLog := newLogger(true)
	defer closeLog()

	cfg := gameConfig(difficulty())
	player := newAudio(cfg, logger)
	defer player.Close()

	if err := browseReplays(store, runtimeConfig(cfg), player, logger); err != nil {
		logger.Error("replay browser failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func printReplays(store *storage.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()

	replays, err := store.ListReplays(ctx, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		return
	}

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'arkanoid play' and finish a game to record one!")
		return
	}

	// Print header
	fmt.Printf("  %-6s  %-7s  %-7s  %-8s  %-7s  %s\n", "ID", "Result", "Score", "Ticks", "Level", "Date")
	fmt.Printf("  %-6s  %-7s  %-7s  %-8s  %-7s  %s\n", "--", "------", "-----", "-----", "-----", "----")

	for _, r := range replays {
		row := tui.ReplayRow(r)
		fmt.Printf("  %-6s  %-7s  %-7s  %-8s  %-7s  %s\n", row[0], row[1], row[2], row[3], row[4], r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runReplayShow(_ *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	j, err := loadReplay(store, parseID(args[0]))
	if err != nil {
		store.Close()
		fatal("%v", err)
	}

	out := j.Replay.Outcome
	fmt.Printf("Replay #%d\n", j.ID)
	fmt.Println()
	fmt.Printf("  Recorded:   %s\n", j.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Difficulty: %s\n", j.Difficulty)
	fmt.Printf("  Seed:       %d\n", j.Replay.Seed)
	fmt.Printf("  Result:     %s\n", out.Phase)
	fmt.Printf("  Score:      %d/%d\n", out.Score, j.Total)
	fmt.Printf("  Ticks:      %d (%s at %d ticks/s)\n", out.Ticks, ticksDuration(out.Ticks, j.Config.Loop.TickRate), j.Config.Loop.TickRate)
	fmt.Println()

	if len(j.Replay.Inputs) == 0 {
		fmt.Println("No inputs recorded.")
		return
	}

	fmt.Printf("Inputs (%d):\n", len(j.Replay.Inputs))
	fmt.Printf("  %-8s  %s\n", "Tick", "Action")
	for _, in := range j.Replay.Inputs {
		fmt.Printf("  %-8d  %s\n", in.Tick, in.Action)
	}
}

func ticksDuration(ticks uint64, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return (time.Duration(ticks) * time.Second / time.Duration(rate)).Round(time.Second / 10) //#nosec G115 -- tick counts stay far below 2^63
}

func runReplayVerify(_ *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	j, err := loadReplay(store, parseID(args[0]))
	if err != nil {
		store.Close()
		fatal("%v", err)
	}

	if err := j.Verify(); err != nil {
		store.Close()
		fatal("%v", err)
	}

	out := j.Replay.Outcome
	fmt.Printf("replay #%d verified: %s %d/%d after %d ticks\n", j.ID, out.Phase, out.Score, j.Total, out.Ticks)
}

func runReplayWatch(_ *cobra.Command, args []string) {
	logger, closeLog := newLogger(true)
	defer closeLog()

	store := mustOpenStore()
	defer store.Close()

	j, err := loadReplay(store, parseID(args[0]))
	if err != nil {
		store.Close()
		closeLog()
		fatal("%v", err)
	}

	player := newAudio(j.Config, logger)
	defer player.Close()

	if err := watchReplay(j, runtimeConfig(j.Config), player, logger); err != nil {
		logger.Error("watch failed", "id", j.ID, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func runReplayDelete(_ *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	id := parseID(args[0])
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()

	err := store.DeleteReplay(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		store.Close()
		fatal("replay #%d not found", id)
	}
	if err != nil {
		store.Close()
		fatal("%v", err)
	}
	fmt.Printf("replay #%d deleted\n", id)
}

// browseReplays runs the replay browser, playing back each replay the user
// picks, until they quit the browser.
func browseReplays(store *storage.Store, rt core.RuntimeConfig, player *audio.Player, logger *log.Logger) error {
	for {
		id, err := tui.RunBrowser(store, rt.ScreenW, rt.ScreenH)
		if err != nil {
			return err
		}
		if id == 0 {
			return nil
		}

		j, err := loadReplay(store, id)
		if err != nil {
			logger.Warn("cannot watch replay", "id", id, "error", err)
			continue
		}
		if err := watchReplay(j, rt, player, logger); err != nil {
			return err
		}
	}
}

// watchReplay plays j back in the terminal. Sound is best-effort.
func watchReplay(j replay.Journaled, rt core.RuntimeConfig, player *audio.Player, logger *log.Logger) error {
	opts := tui.WatchOptions{
		Config:  j.Config,
		Replay:  j.Replay,
		Title:   fmt.Sprintf("replay #%d", j.ID),
		Runtime: rt,
	}

	if player.Enabled() {
		if err := player.Load(); err != nil {
			logger.Warn("playing without sound", "error", err)
		} else {
			if err := player.Init(); err != nil {
				logger.Warn("playing without sound", "error", err)
			}
			opts.Listener = player
		}
	}

	logger.Info("watching replay", "id", j.ID, "seed", j.Replay.Seed, "ticks", j.Replay.Outcome.Ticks)
	return tui.RunWatch(opts)
}
