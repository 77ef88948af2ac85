package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/xmdash/internal/dashboard"
	"github.com/rileyhilliard/xmdash/internal/logger"
	"github.com/rileyhilliard/xmdash/internal/storage"
)

// LayoutMode is the responsive layout chosen from the terminal width.
type LayoutMode int

const (
	// LayoutNarrow stacks every panel in one column.
	LayoutNarrow LayoutMode = iota
	// LayoutStandard puts the results and pool panels side by side.
	LayoutStandard
	// LayoutWide also fits all headline cards on one row.
	LayoutWide
)

// Width breakpoints for layout modes
const (
	BreakpointStandard = 90
	BreakpointWide     = 130
)

// defaultWidth is used until the first WindowSizeMsg arrives.
const defaultWidth = 100

const (
	headerHeight = 2
	footerHeight = 1
)

// Options configures the terminal dashboard.
type Options struct {
	Store   storage.Store
	Fetcher dashboard.Fetcher
	Logger  logger.Logger
	Clock   func() time.Time

	// URL overrides the persisted endpoint when set.
	URL string
	// RefreshRate overrides the stored refresh rate when positive.
	RefreshRate time.Duration
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	cancel context.CancelFunc

	session *dashboard.Session
	surface *Surface
	loop    *teaLoop

	spinner       spinner.Model
	bodyViewport  viewport.Model
	viewportReady bool
	width         int
	height        int
	showHelp      bool
	quitting      bool
}

// NewModel wires a dashboard session onto a terminal surface. Nothing is
// fetched until the program calls Init.
func NewModel(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	surface := NewSurface()
	loop := newTeaLoop()

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{Frames: SpinnerFrames, FPS: time.Second / 10}
	sp.Style = TitleStyle

	session := dashboard.NewSession(ctx, dashboard.Options{
		Store:       opts.Store,
		Fetcher:     opts.Fetcher,
		Surface:     surface,
		Charts:      NewChartBackend(surface),
		Loop:        loop,
		Clock:       opts.Clock,
		Logger:      opts.Logger,
		URL:         opts.URL,
		RefreshRate: opts.RefreshRate,
	})

	return Model{
		cancel:  cancel,
		session: session,
		surface: surface,
		loop:    loop,
		spinner: sp,
	}
}

// Init starts the session: the first poll and the refresh timer.
func (m Model) Init() tea.Cmd {
	m.session.Start()
	return tea.Batch(m.loop.drain(), m.spinner.Tick)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		cmds = append(cmds, cmd)
		if !handled {
			cmds = append(cmds, m.forwardKey(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	default:
		m.loop.handle(msg)
	}

	cmds = append(cmds, m.loop.drain())
	m.refreshViewport()
	return m, tea.Batch(cmds...)
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderScreen()
}

// Session exposes the underlying dashboard session.
func (m Model) Session() *dashboard.Session {
	return m.session
}

// Surface exposes what is currently shown.
func (m Model) Surface() *Surface {
	return m.surface
}

// Close cancels in-flight requests.
func (m Model) Close() {
	m.cancel()
}

// forwardKey passes unhandled keys to the focused component: the URL input
// on the config screen, the scrolling viewport everywhere else.
func (m *Model) forwardKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	if m.surface.mode == ViewConfig {
		m.surface.input, cmd = m.surface.input.Update(msg)
		return cmd
	}
	if m.viewportReady {
		m.bodyViewport, cmd = m.bodyViewport.Update(msg)
	}
	return cmd
}

func (m *Model) resizeViewport() {
	height := m.height - headerHeight - footerHeight
	if height < 1 {
		height = 1
	}
	if !m.viewportReady {
		m.bodyViewport = viewport.New(m.width, height)
		m.bodyViewport.YPosition = headerHeight
		m.viewportReady = true
	} else {
		m.bodyViewport.Width = m.width
		m.bodyViewport.Height = height
	}
	m.surface.input.Width = clampInt(m.width-16, 64)
}

func (m *Model) refreshViewport() {
	if m.viewportReady {
		m.bodyViewport.SetContent(m.renderBody())
	}
}

// LayoutMode returns the current layout mode based on terminal width.
func (m Model) LayoutMode() LayoutMode {
	w := m.contentWidth()
	switch {
	case w >= BreakpointWide:
		return LayoutWide
	case w >= BreakpointStandard:
		return LayoutStandard
	default:
		return LayoutNarrow
	}
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}
