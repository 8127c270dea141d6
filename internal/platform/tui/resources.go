package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Resource is something the host must have before the first tick, such as
// a synthesised sound or an opened audio device.
type Resource struct {
	Name string
	Load func() error
}

// resourceLoadedMsg reports that one resource finished loading.
type resourceLoadedMsg struct {
	name string
	err  error
}

// loadCmd loads r off the update loop.
func loadCmd(r Resource) tea.Cmd {
	return func() tea.Msg {
		var err error
		if r.Load != nil {
			err = r.Load()
		}
		return resourceLoadedMsg{name: r.Name, err: err}
	}
}

// loadAll issues one load command per resource. With nothing to load it
// reports readiness straight away.
func loadAll(resources []Resource) tea.Cmd {
	if len(resources) == 0 {
		return func() tea.Msg { return resourceLoadedMsg{name: "none"} }
	}
	cmds := make([]tea.Cmd, len(resources))
	for i, r := range resources {
		cmds[i] = loadCmd(r)
	}
	return tea.Batch(cmds...)
}
