package dashboard

import "time"

// ChartState is the user-controlled chart configuration.
type ChartState struct {
	Range TimeRange

	HashrateVisible bool
	MinersVisible   bool

	// Axis display flags follow the visibility of their series.
	LeftAxis  bool
	RightAxis bool
}

// Visible reports whether series id is shown.
func (s ChartState) Visible(id SeriesID) bool {
	switch id {
	case SeriesHashrate:
		return s.HashrateVisible
	case SeriesMiners:
		return s.MinersVisible
	}
	return false
}

// ChartController owns the single history chart bound to FieldCanvas.
type ChartController struct {
	backend ChartBackend
	surface Surface
	history *HistoryStore
	clock   func() time.Time

	chart SeriesChart
	state ChartState
}

// NewChartController creates a controller showing the whole history with
// both series visible.
func NewChartController(backend ChartBackend, surface Surface, history *HistoryStore, clock func() time.Time) *ChartController {
	if clock == nil {
		clock = time.Now
	}
	return &ChartController{
		backend: backend,
		surface: surface,
		history: history,
		clock:   clock,
		state: ChartState{
			Range:           RangeLifetime,
			HashrateVisible: true,
			MinersVisible:   true,
			LeftAxis:        true,
			RightAxis:       true,
		},
	}
}

// State returns a copy of the chart state.
func (c *ChartController) State() ChartState {
	return c.state
}

// Active reports whether a chart instance is live.
func (c *ChartController) Active() bool {
	return c.chart != nil
}

// Update draws history filtered by the current range, creating the chart on
// first use. An empty filtered history leaves the chart untouched.
func (c *ChartController) Update(history []HistoryEntry) {
	filtered := FilterByRange(history, c.state.Range, c.clock())
	if len(filtered) == 0 {
		return
	}
	data := c.data(filtered)

	if c.chart != nil {
		c.chart.Update(data)
		return
	}
	chart := c.backend.CreateSeriesChart(FieldCanvas, data)
	if chart == nil {
		return
	}
	chart.OnLegendToggle(c.ToggleSeries)
	c.chart = chart
}

// SetTimeRange switches the chart window, marks the matching range control
// active and rebuilds the chart from the stored history.
func (c *ChartController) SetTimeRange(r TimeRange) {
	c.state.Range = r
	for _, opt := range RangeOptions {
		class := ""
		if opt.Range == r {
			class = ClassRangeActive
		}
		c.surface.SetClass(opt.ID, class)
	}

	c.Destroy()
	c.Update(c.history.Load())
}

// ToggleSeries flips the visibility of a series together with its axis.
func (c *ChartController) ToggleSeries(id SeriesID) {
	switch id {
	case SeriesHashrate:
		c.state.HashrateVisible = !c.state.HashrateVisible
		c.state.LeftAxis = c.state.HashrateVisible
	case SeriesMiners:
		c.state.MinersVisible = !c.state.MinersVisible
		c.state.RightAxis = c.state.MinersVisible
	default:
		return
	}

	if c.chart != nil {
		c.chart.Update(c.data(FilterByRange(c.history.Load(), c.state.Range, c.clock())))
	}
}

// Destroy releases the chart instance. It must run before the canvas is
// removed from the surface.
func (c *ChartController) Destroy() {
	if c.chart == nil {
		return
	}
	c.chart.Destroy()
	c.chart = nil
}

func (c *ChartController) data(history []HistoryEntry) ChartData {
	labels := make([]time.Time, len(history))
	hashrate := make([]float64, len(history))
	miners := make([]float64, len(history))
	for i, e := range history {
		labels[i] = e.Time()
		hashrate[i] = SanitizeNumber(e.Hashrate)
		miners[i] = SanitizeNumber(e.Miners)
	}

	return ChartData{
		Labels: labels,
		Series: []Series{
			{
				ID:      SeriesHashrate,
				Label:   "Hashrate (KH/s)",
				Unit:    "KH/s",
				Axis:    AxisLeft,
				Values:  hashrate,
				Visible: c.state.HashrateVisible,
			},
			{
				ID:      SeriesMiners,
				Label:   "Active Miners",
				Axis:    AxisRight,
				Values:  miners,
				Visible: c.state.MinersVisible,
			},
		},
		Axes: []Axis{
			{ID: AxisLeft, Title: "Hashrate (KH/s)", Display: c.state.LeftAxis},
			{ID: AxisRight, Title: "Miners", Right: true, Display: c.state.RightAxis},
		},
	}
}
