// Package monitor implements the terminal front end of the xmdash dashboard.
//
// It runs a dashboard.Session on Bubble Tea. The session drives a Surface
// that records what should be shown, and View turns that record into a
// lipgloss-styled screen.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: owns the session, the surface, the spinner and the scrolling viewport
//   - Update: routes keys, window sizes and loop messages into the session
//   - View: renders the surface for the current view mode
//
// # Key Components
//
//	Surface       - dashboard.Surface backed by plain maps of field values
//	ChartBackend  - draws the history chart as braille plots in the chart canvas
//	teaLoop       - dashboard.Loop on top of tea.Tick and tea.Cmd
//
// # Message Flow
//
// Session callbacks never block the update loop:
//
//  1. The session calls Loop.After, Loop.Every or Loop.Go while handling a message
//  2. teaLoop queues the matching tea.Cmd and Update returns the batch
//  3. Timer and fetch results come back as messages and teaLoop runs their callbacks
//  4. View() re-renders the surface
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Refresh now
//	c           - Configure API endpoint
//	1-5         - Chart range (1m, 5m, 1h, 1d, lifetime)
//	h, m        - Toggle hashrate / miners series
//	+, -        - Slower / faster refresh
//	?           - Toggle help overlay
package monitor
