package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arkanoid/internal/arkanoid"
	"github.com/vovakirdan/arkanoid/internal/config"
	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/replay"
	"github.com/vovakirdan/arkanoid/internal/storage"
)

// Options configures a game Model.
type Options struct {
	Config     config.ArkanoidConfig
	Difficulty config.DifficultyPreset
	Runtime    core.RuntimeConfig // screen size and seed; 0 seed means time-based
	Store      *storage.Store     // replay journal, may be nil
	Listener   arkanoid.Listener  // receives session events, may be nil
	Resources  []Resource         // loaded before the first tick
	Logger     *log.Logger
}

type phase int

const (
	phaseLoading phase = iota
	phasePlaying
	phaseEnded
)

// replaySavedMsg reports the outcome of journaling a finished game.
type replaySavedMsg struct {
	id  int64
	err error
}

// Model is the Bubble Tea model for one player's game. A new session is
// created for every restart.
type Model struct {
	opts   Options
	logger *log.Logger
	keys   GameKeyMap
	help   help.Model
	screen *core.Screen

	phase    phase
	required int
	loaded   int
	loadErr  error

	game     *arkanoid.Session
	recorder *replay.Recorder
	seed     int64

	releaseSeq int  // id of the latest direction key press
	steering   bool // a direction key is considered held

	savedID  int64
	quitting bool
}

// NewModel creates a new Bubble Tea model. The session is created once all
// resources have loaded.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Runtime.ScreenW == 0 || opts.Runtime.ScreenH == 0 {
		def := core.DefaultConfig()
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		opts:     opts,
		logger:   logger,
		keys:     DefaultGameKeyMap(),
		help:     h,
		screen:   core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		required: len(opts.Resources),
	}
}

// Init starts loading resources.
func (m Model) Init() tea.Cmd {
	return loadAll(m.opts.Resources)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resourceLoadedMsg:
		return m.handleLoaded(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case AnimMsg:
		if m.game == nil {
			return m, nil
		}
		m.game.AdvanceAnimation()
		return m, animCmd(m.opts.Config.AnimationInterval())

	case releaseMsg:
		if m.phase == phasePlaying && m.steering && msg.seq == m.releaseSeq {
			m.steering = false
			m.recorder.Apply(core.ActionStop)
		}
		return m, nil

	case replaySavedMsg:
		if msg.err != nil {
			m.logger.Warn("could not save replay", "error", msg.err)
			return m, nil
		}
		m.savedID = msg.id
		m.logger.Info("replay saved", "id", msg.id)
		return m, nil
	}

	return m, nil
}

// handleLoaded counts loaded resources and starts the game once every one
// of them is ready.
func (m Model) handleLoaded(msg resourceLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.loadErr = fmt.Errorf("load %s: %w", msg.name, msg.err)
		m.logger.Error("resource failed", "resource", msg.name, "error", msg.err)
		return m, tea.Quit
	}

	m.loaded++
	m.logger.Debug("resource loaded", "resource", msg.name, "loaded", m.loaded, "required", m.required)
	if m.phase != phaseLoading || m.loaded < m.required {
		return m, nil
	}

	m.start(m.opts.Runtime.Seed)
	return m, tea.Batch(
		tickCmd(m.opts.Config.TickInterval()),
		animCmd(m.opts.Config.AnimationInterval()),
	)
}

// start creates a fresh session. A zero seed is replaced by the current time.
func (m *Model) start(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m.seed = seed
	m.game = arkanoid.NewSession(m.opts.Config.ToGame(), seed, m.opts.Listener)
	m.recorder = replay.NewRecorder(m.game, seed)
	m.phase = phasePlaying
	m.steering = false
	m.savedID = 0
	m.logger.Info("game started", "seed", seed, "difficulty", m.opts.Difficulty)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		if m.phase != phaseEnded {
			return m, nil
		}
		m.start(0)
		return m, tickCmd(m.opts.Config.TickInterval())
	}

	if m.phase != phasePlaying {
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionLeft, core.ActionRight:
		m.recorder.Apply(action)
		m.steering = true
		m.releaseSeq++
		return m, releaseCmd(m.releaseSeq, m.opts.Config.ReleaseAfter())
	case core.ActionStop:
		m.steering = false
	}
	m.recorder.Apply(action)
	return m, nil
}

// handleTick processes one simulation tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.phase != phasePlaying {
		// The tick loop stops with the game and restarts on restart.
		return m, nil
	}

	res := m.game.Tick()
	if !res.Phase.Terminal() {
		return m, tickCmd(m.opts.Config.TickInterval())
	}

	m.phase = phaseEnded
	m.steering = false
	m.logger.Info("game ended", "result", res.Phase, "score", res.Score, "ticks", m.game.Ticks())
	return m, m.saveReplay()
}

// saveReplay journals the finished game off the update loop. Failures are
// logged and never interrupt play.
func (m Model) saveReplay() tea.Cmd {
	if m.opts.Store == nil {
		return nil
	}

	record, err := replay.ToRecord(m.opts.Config, m.opts.Difficulty, m.recorder.Replay(), m.game.Total())
	if err != nil {
		return func() tea.Msg { return replaySavedMsg{err: err} }
	}
	store := m.opts.Store

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		id, err := store.SaveReplay(ctx, record)
		return replaySavedMsg{id: id, err: err}
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.phase == phaseLoading {
		if m.loadErr != nil {
			return fmt.Sprintf("Error: %v\n", m.loadErr)
		}
		return centerText(fmt.Sprintf("Loading %d/%d...", m.loaded, m.required), m.opts.Runtime.ScreenW)
	}

	helpView := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys))
	m.screen.Resize(m.opts.Runtime.ScreenW, max(m.opts.Runtime.ScreenH-lipgloss.Height(helpView), 0))

	snap := m.game.Snapshot()
	drawSession(m.screen, &snap, m.status())
	if m.phase == phaseEnded {
		drawOverlay(m.screen, append(endLines(&snap), "R to restart  Q to quit")...)
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(helpView)
	return b.String()
}

// status returns the HUD status text.
func (m Model) status() string {
	switch {
	case m.phase == phaseEnded && m.savedID > 0:
		return fmt.Sprintf("replay #%d saved", m.savedID)
	case m.phase == phaseEnded:
		return m.game.Phase().String()
	}
	return ""
}

// Err returns the resource loading error that stopped the model, if any.
func (m Model) Err() error {
	return m.loadErr
}

// Session returns the current session, or nil while loading.
func (m Model) Session() *arkanoid.Session {
	return m.game
}

// Seed returns the seed of the current session.
func (m Model) Seed() int64 {
	return m.seed
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
