package dashboard

import "time"

// Surface is the display the dashboard draws on. Implementations ignore
// requests for fields that are not currently shown.
type Surface interface {
	// Rebuild replaces the dashboard body with a freshly built layout.
	Rebuild(layout Layout)
	SetText(id FieldID, text string)
	SetClass(id FieldID, class string)
	// SetWidth sets a bar field to percent of its full width.
	SetWidth(id FieldID, percent float64)
	// ShowError replaces the body with an error panel. The message is plain text.
	ShowError(message string)
	ShowConfig(form ConfigForm)
	ShowLoading(message string)
	Alert(message string)
}

// ConfigForm describes the endpoint entry form.
type ConfigForm struct {
	URL       string
	CanCancel bool
	Notice    string
}

// SeriesID names a chart series.
type SeriesID string

const (
	SeriesHashrate SeriesID = "hashrate"
	SeriesMiners   SeriesID = "miners"
)

// AxisID names a vertical chart axis.
type AxisID string

const (
	AxisLeft  AxisID = "y"
	AxisRight AxisID = "y1"
)

// ChartData is everything a backend needs to draw the chart.
type ChartData struct {
	Labels []time.Time
	Series []Series
	Axes   []Axis
}

// Series is one labelled line. Values align with ChartData.Labels.
type Series struct {
	ID      SeriesID
	Label   string
	Unit    string
	Axis    AxisID
	Values  []float64
	Visible bool
}

// Axis is a vertical axis shared by the series that reference it.
type Axis struct {
	ID      AxisID
	Title   string
	Right   bool
	Display bool
}

// ChartBackend creates charts bound to a canvas field.
type ChartBackend interface {
	// CreateSeriesChart returns nil when the canvas is not on screen.
	CreateSeriesChart(canvas FieldID, data ChartData) SeriesChart
}

// SeriesChart is a live chart instance.
type SeriesChart interface {
	// Update replaces labels and series in place and redraws without animation.
	Update(data ChartData)
	Destroy()
	// OnLegendToggle registers the callback run when a legend entry is toggled.
	OnLegendToggle(fn func(SeriesID))
}

// Loop is the single event thread. All callbacks run on it.
type Loop interface {
	After(d time.Duration, fn func())
	// Every installs the repeating timer, cancelling the previous one.
	Every(d time.Duration, fn func())
	// Go runs task off the event thread and applies the closure it returns
	// back on the event thread.
	Go(task func() func())
}
