package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arkanoid/internal/arkanoid"
	"github.com/vovakirdan/arkanoid/internal/config"
	"github.com/vovakirdan/arkanoid/internal/core"
	"github.com/vovakirdan/arkanoid/internal/replay"
)

const maxWatchSpeed = 8

// WatchKeyMap defines the key bindings for replay playback.
type WatchKeyMap struct {
	Pause  key.Binding
	Faster key.Binding
	Slower key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k WatchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Faster, k.Slower, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k WatchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Pause, k.Faster, k.Slower}, {k.Help, k.Quit}}
}

// DefaultWatchKeyMap returns default key bindings.
func DefaultWatchKeyMap() WatchKeyMap {
	return WatchKeyMap{
		Pause:  key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause")),
		Faster: key.NewBinding(key.WithKeys("+", "=", "right"), key.WithHelp("+", "faster")),
		Slower: key.NewBinding(key.WithKeys("-", "left"), key.WithHelp("-", "slower")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// WatchOptions configures a WatchModel.
type WatchOptions struct {
	Config   config.ArkanoidConfig
	Replay   replay.Replay
	Title    string // shown in the HUD, e.g. "replay #3"
	Runtime  core.RuntimeConfig
	Listener arkanoid.Listener
}

// WatchModel plays back a recorded game at the configured tick rate.
type WatchModel struct {
	opts     WatchOptions
	player   *replay.Player
	keys     WatchKeyMap
	help     help.Model
	screen   *core.Screen
	speed    int // ticks per TickMsg
	paused   bool
	quitting bool
}

// NewWatchModel creates a playback model for opts.Replay.
func NewWatchModel(opts WatchOptions) (WatchModel, error) {
	player, err := replay.NewPlayer(opts.Config.ToGame(), opts.Replay, opts.Listener)
	if err != nil {
		return WatchModel{}, err
	}
	if opts.Runtime.ScreenW == 0 || opts.Runtime.ScreenH == 0 {
		def := core.DefaultConfig()
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}

	return WatchModel{
		opts:   opts,
		player: player,
		keys:   DefaultWatchKeyMap(),
		help:   help.New(),
		screen: core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		speed:  1,
	}, nil
}

// Init starts playback.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.opts.Config.TickInterval()),
		animCmd(m.opts.Config.AnimationInterval()),
	)
}

// Update handles messages for playback.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(m.speed*2, maxWatchSpeed)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(m.speed/2, 1)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if m.player.Done() {
			return m, nil
		}
		if !m.paused {
			for i := 0; i < m.speed && !m.player.Done(); i++ {
				m.player.Step()
			}
		}
		return m, tickCmd(m.opts.Config.TickInterval())

	case AnimMsg:
		m.player.Session().AdvanceAnimation()
		return m, animCmd(m.opts.Config.AnimationInterval())
	}

	return m, nil
}

// View renders the replay.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	helpView := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys))
	m.screen.Resize(m.opts.Runtime.ScreenW, max(m.opts.Runtime.ScreenH-lipgloss.Height(helpView), 0))

	snap := m.player.Session().Snapshot()
	drawSession(m.screen, &snap, m.status())
	if m.player.Done() {
		lines := []string{"REPLAY ENDED"}
		if snap.Phase.Terminal() {
			lines = endLines(&snap)
		}
		drawOverlay(m.screen, append(lines, "Q to quit")...)
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(helpView)
	return b.String()
}

func (m WatchModel) status() string {
	s := m.opts.Title
	if m.speed > 1 {
		s += fmt.Sprintf(" x%d", m.speed)
	}
	if m.paused {
		s += " (paused)"
	}
	return strings.TrimSpace(s)
}

// Outcome returns the state of the replayed session so far.
func (m WatchModel) Outcome() replay.Outcome {
	return m.player.Outcome()
}

// RunWatch plays a replay in the terminal until the user quits.
func RunWatch(opts WatchOptions) error {
	model, err := NewWatchModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
