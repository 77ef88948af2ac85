package monitor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerMsg fires a one-shot callback.
type timerMsg struct {
	fn func()
}

// refreshMsg fires the repeating refresh timer. Messages from a replaced
// timer carry an old generation and are dropped.
type refreshMsg struct {
	gen uint64
}

// applyMsg carries the result of a background task back to the event loop.
type applyMsg struct {
	apply func()
}

// teaLoop adapts the dashboard event loop onto Bubble Tea commands. Calls
// made while handling a message queue commands; the model drains them into
// its Update return value.
type teaLoop struct {
	cmds []tea.Cmd
	tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

	gen      uint64
	interval time.Duration
	refresh  func()
}

func newTeaLoop() *teaLoop {
	return &teaLoop{tick: tea.Tick}
}

func (l *teaLoop) After(d time.Duration, fn func()) {
	l.cmds = append(l.cmds, l.tick(d, func(time.Time) tea.Msg {
		return timerMsg{fn: fn}
	}))
}

func (l *teaLoop) Every(d time.Duration, fn func()) {
	l.gen++
	l.interval = d
	l.refresh = fn
	l.cmds = append(l.cmds, l.refreshCmd())
}

func (l *teaLoop) Go(task func() func()) {
	l.cmds = append(l.cmds, func() tea.Msg {
		return applyMsg{apply: task()}
	})
}

func (l *teaLoop) refreshCmd() tea.Cmd {
	gen := l.gen
	return l.tick(l.interval, func(time.Time) tea.Msg {
		return refreshMsg{gen: gen}
	})
}

// handle runs the callback carried by msg. It reports false for messages
// that do not belong to the loop.
func (l *teaLoop) handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case timerMsg:
		if msg.fn != nil {
			msg.fn()
		}
	case refreshMsg:
		if msg.gen != l.gen || l.refresh == nil {
			return true
		}
		// Re-arm first so a callback that replaces the timer wins.
		l.cmds = append(l.cmds, l.refreshCmd())
		l.refresh()
	case applyMsg:
		if msg.apply != nil {
			msg.apply()
		}
	default:
		return false
	}
	return true
}

// drain returns the queued commands as one command, or nil.
func (l *teaLoop) drain() tea.Cmd {
	cmds := l.cmds
	l.cmds = nil
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}
