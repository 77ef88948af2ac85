package dashboard

import (
	"context"
	"strconv"
	"time"

	"github.com/rileyhilliard/xmdash/internal/logger"
	"github.com/rileyhilliard/xmdash/internal/storage"
)

const (
	// DefaultRefreshRate is used when no rate has been stored.
	DefaultRefreshRate = 10 * time.Second
	// MinRefreshRate is the fastest accepted polling interval.
	MinRefreshRate = time.Second
)

// Options configures a Session. Store, Fetcher, Surface, Charts and Loop are
// required.
type Options struct {
	Store   storage.Store
	Fetcher Fetcher
	Surface Surface
	Charts  ChartBackend
	Loop    Loop
	Clock   func() time.Time
	Logger  logger.Logger

	// URL replaces the persisted endpoint at Start when non-empty.
	URL string
	// RefreshRate replaces the stored refresh rate at Start when positive.
	RefreshRate time.Duration
}

// Session holds the state of one running dashboard and wires its parts
// together. It is created once at startup and only used from the event loop.
type Session struct {
	store   storage.Store
	surface Surface
	loop    Loop
	log     logger.Logger

	endpoint *Endpoint
	history  *HistoryStore
	chart    *ChartController
	renderer *Renderer
	config   *ConfigManager
	cycle    *FetchCycle

	rate         time.Duration
	overrideURL  string
	overrideRate time.Duration
}

// NewSession wires a session. Nothing is fetched until Start.
func NewSession(ctx context.Context, opts Options) *Session {
	if ctx == nil {
		ctx = context.Background()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}

	s := &Session{
		store:        opts.Store,
		surface:      opts.Surface,
		loop:         opts.Loop,
		log:          log,
		rate:         DefaultRefreshRate,
		overrideURL:  opts.URL,
		overrideRate: opts.RefreshRate,
	}
	s.endpoint = NewEndpoint(opts.Store, log)
	s.history = NewHistoryStore(opts.Store, clock, log)
	s.chart = NewChartController(opts.Charts, opts.Surface, s.history, clock)
	s.renderer = NewRenderer(opts.Surface, opts.Loop, s.chart, clock)
	s.config = NewConfigManager(s.endpoint, opts.Surface, s.renderer, s.Tick)
	s.cycle = &FetchCycle{
		ctx:      ctx,
		endpoint: s.endpoint,
		fetcher:  opts.Fetcher,
		loop:     opts.Loop,
		renderer: s.renderer,
		history:  s.history,
		config:   s.config,
		log:      log,
	}
	return s
}

// Start reads the persisted endpoint, drops it when invalid, polls once
// and installs the refresh timer at the stored rate.
func (s *Session) Start() {
	s.endpoint.Reload()
	if s.overrideURL != "" {
		s.endpoint.Set(s.overrideURL)
	} else if url := s.endpoint.URL(); url != "" && !ValidateURL(url) {
		s.log.Debug("clearing invalid stored endpoint")
		s.endpoint.Clear()
	}

	rate := s.storedRate()
	if s.overrideRate > 0 {
		rate = s.overrideRate
	}

	s.cycle.Tick()
	s.SetRefreshRate(rate)
}

func (s *Session) storedRate() time.Duration {
	raw, ok, err := s.store.Get(storage.KeyRefreshRate)
	if err != nil {
		s.log.Debug("refresh rate read failed: %v", err)
		return DefaultRefreshRate
	}
	if !ok {
		return DefaultRefreshRate
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || time.Duration(ms)*time.Millisecond < MinRefreshRate {
		return DefaultRefreshRate
	}
	return time.Duration(ms) * time.Millisecond
}

// Tick polls immediately.
func (s *Session) Tick() {
	s.cycle.Tick()
}

// SetRefreshRate persists d, marks the matching refresh control active and
// replaces the refresh timer.
func (s *Session) SetRefreshRate(d time.Duration) {
	if d < MinRefreshRate {
		d = MinRefreshRate
	}
	s.rate = d
	if err := s.store.Set(storage.KeyRefreshRate, strconv.FormatInt(d.Milliseconds(), 10)); err != nil {
		s.log.Debug("refresh rate write failed: %v", err)
	}

	s.loop.Every(d, s.cycle.Tick)

	for _, opt := range RefreshOptions {
		class := ""
		if opt.Rate == d {
			class = ClassRefreshActive
		}
		s.surface.SetClass(opt.ID, class)
	}
}

// RefreshRate returns the current polling interval.
func (s *Session) RefreshRate() time.Duration {
	return s.rate
}

func (s *Session) SetTimeRange(r TimeRange) {
	s.chart.SetTimeRange(r)
}

func (s *Session) ToggleSeries(id SeriesID) {
	s.chart.ToggleSeries(id)
}

func (s *Session) ChartState() ChartState {
	return s.chart.State()
}

// ShowConfig opens the endpoint form.
func (s *Session) ShowConfig() {
	s.config.Show()
}

// SaveConfig submits the endpoint form.
func (s *Session) SaveConfig(url string) error {
	return s.config.Save(url)
}

// CancelConfig dismisses the endpoint form.
func (s *Session) CancelConfig() {
	s.config.Cancel()
}

// Editing reports whether the endpoint form is open.
func (s *Session) Editing() bool {
	return s.config.Editing()
}

func (s *Session) State() State {
	return s.cycle.State()
}

// Endpoint returns the active endpoint URL.
func (s *Session) Endpoint() string {
	return s.endpoint.URL()
}

// History returns the recorded samples.
func (s *Session) History() []HistoryEntry {
	return s.history.Load()
}

// Initialized reports whether the dashboard layout is built.
func (s *Session) Initialized() bool {
	return s.renderer.Initialized()
}
