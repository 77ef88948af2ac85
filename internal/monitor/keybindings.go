package monitor

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/xmdash/internal/dashboard"
)

// Key bindings as constants for consistency.
const (
	KeyQuit         = "q"
	KeyQuitAlt      = "ctrl+c"
	KeyRefresh      = "r"
	KeyConfigure    = "c"
	KeyToggleHash   = "h"
	KeyToggleMiners = "m"
	KeySlower       = "+"
	KeySlowerAlt    = "="
	KeyFaster       = "-"
	KeyToggleHelp   = "?"
	KeySubmit       = "enter"
	KeyCollapse     = "esc"
)

// rangeKeys maps the digit keys to time-range controls in display order.
var rangeKeys = map[string]int{"1": 0, "2": 1, "3": 2, "4": 3, "5": 4}

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if key == KeyQuitAlt {
		return true, m.quit()
	}

	// The URL input owns the keyboard while the form is open.
	if m.surface.mode == ViewConfig {
		return m.handleFormKey(key)
	}

	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key == KeyCollapse {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit:
		return true, m.quit()

	case KeyRefresh:
		m.session.Tick()
		return true, nil

	case KeyConfigure:
		m.showHelp = false
		m.session.ShowConfig()
		return true, nil

	case KeyToggleHash:
		m.toggleSeries(dashboard.SeriesHashrate)
		return true, nil

	case KeyToggleMiners:
		m.toggleSeries(dashboard.SeriesMiners)
		return true, nil

	case KeySlower, KeySlowerAlt:
		m.session.SetRefreshRate(dashboard.StepRefreshRate(m.session.RefreshRate(), 1))
		return true, nil

	case KeyFaster:
		m.session.SetRefreshRate(dashboard.StepRefreshRate(m.session.RefreshRate(), -1))
		return true, nil
	}

	if idx, ok := rangeKeys[key]; ok && idx < len(dashboard.RangeOptions) {
		m.session.SetTimeRange(dashboard.RangeOptions[idx].Range)
		return true, nil
	}

	return false, nil
}

func (m *Model) handleFormKey(key string) (bool, tea.Cmd) {
	switch key {
	case KeySubmit:
		// Rejected input raises an alert on the surface and keeps the form open.
		_ = m.session.SaveConfig(m.surface.input.Value())
		return true, nil
	case KeyCollapse:
		if m.surface.form.CanCancel {
			m.session.CancelConfig()
		}
		return true, nil
	}
	m.surface.alert = ""
	return false, nil
}

// toggleSeries routes through the chart legend when a chart is live so the
// chart redraws, and falls back to the session otherwise.
func (m *Model) toggleSeries(id dashboard.SeriesID) {
	if c := m.surface.chart; c != nil && c.toggleLegend(id) {
		return
	}
	m.session.ToggleSeries(id)
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.cancel()
	return tea.Quit
}
