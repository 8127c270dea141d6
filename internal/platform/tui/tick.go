// Package tui provides the Bubble Tea host for the arkanoid game.
// It loads resources, drives the fixed-step simulation at display rate,
// maps keys to intents and renders snapshots to the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// AnimMsg advances the decorative ball animation.
type AnimMsg time.Time

// releaseMsg fires when a direction key has not repeated for a while.
// seq identifies the key press it belongs to.
type releaseMsg struct {
	seq int
}

// tickCmd returns a Bubble Tea command that sends a tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// animCmd schedules the next animation frame. It runs independently of
// the simulation tick.
func animCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return AnimMsg(t)
	})
}

// releaseCmd emulates a key-up event for press seq after d.
func releaseCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return releaseMsg{seq: seq}
	})
}
