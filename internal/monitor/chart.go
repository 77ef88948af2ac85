package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/xmdash/internal/dashboard"
)

// ChartBackend draws series charts as braille plots inside the canvas of
// the dashboard chart section.
type ChartBackend struct {
	surface *Surface
}

// NewChartBackend creates a backend drawing on surface.
func NewChartBackend(surface *Surface) *ChartBackend {
	return &ChartBackend{surface: surface}
}

func (b *ChartBackend) CreateSeriesChart(canvas dashboard.FieldID, data dashboard.ChartData) dashboard.SeriesChart {
	if !b.surface.hasCanvas(canvas) {
		return nil
	}
	c := &brailleChart{surface: b.surface, canvas: canvas, data: data}
	b.surface.chart = c
	return c
}

// brailleChart is the live chart instance.
type brailleChart struct {
	surface   *Surface
	canvas    dashboard.FieldID
	data      dashboard.ChartData
	destroyed bool
	toggle    func(dashboard.SeriesID)
}

func (c *brailleChart) Update(data dashboard.ChartData) {
	if c.destroyed {
		return
	}
	c.data = data
}

func (c *brailleChart) Destroy() {
	c.destroyed = true
	if c.surface.chart == c {
		c.surface.chart = nil
	}
}

func (c *brailleChart) OnLegendToggle(fn func(dashboard.SeriesID)) {
	c.toggle = fn
}

// toggleLegend acts like a click on the legend entry for id.
func (c *brailleChart) toggleLegend(id dashboard.SeriesID) bool {
	if c.destroyed || c.toggle == nil {
		return false
	}
	c.toggle(id)
	return true
}

func seriesColor(id dashboard.SeriesID) lipgloss.Color {
	if id == dashboard.SeriesMiners {
		return ColorGraphMiners
	}
	return ColorGraph
}

func seriesKey(id dashboard.SeriesID) string {
	if id == dashboard.SeriesMiners {
		return "m"
	}
	return "h"
}

func formatSeriesValue(id dashboard.SeriesID, v float64) string {
	if id == dashboard.SeriesHashrate {
		return dashboard.FormatHashrate(v)
	}
	return dashboard.FormatNumber(v)
}

func findAxis(axes []dashboard.Axis, id dashboard.AxisID) dashboard.Axis {
	for _, a := range axes {
		if a.ID == id {
			return a
		}
	}
	return dashboard.Axis{ID: id, Display: true}
}

// renderChart draws data into a width x height block: a legend line, one
// braille band per visible series and a time axis.
func renderChart(data dashboard.ChartData, width, height int) string {
	if width < 10 {
		width = 10
	}
	if height < 4 {
		height = 4
	}

	var legend []string
	var visible []dashboard.Series
	for _, s := range data.Series {
		entry := "[" + seriesKey(s.ID) + "] ━━ " + s.Label
		if s.Visible {
			legend = append(legend, lipgloss.NewStyle().Foreground(seriesColor(s.ID)).Render(entry))
			visible = append(visible, s)
		} else {
			legend = append(legend, MutedStyle.Strikethrough(true).Render(entry))
		}
	}

	lines := []string{strings.Join(legend, "  ")}
	if len(visible) == 0 {
		lines = append(lines, MutedStyle.Render("All series hidden"))
		return strings.Join(lines, "\n")
	}

	// Each visible series gets a header line plus its own plotting band.
	band := (height - 2) / len(visible)
	if band < 2 {
		band = 2
	}
	band--

	for _, s := range visible {
		axis := findAxis(data.Axes, s.Axis)
		if axis.Display {
			_, peak := dataRange(s.Values)
			header := LabelStyle.Render(axis.Title) + MutedStyle.Render("  peak "+formatSeriesValue(s.ID, peak))
			align := lipgloss.Left
			if axis.Right {
				align = lipgloss.Right
			}
			lines = append(lines, lipgloss.PlaceHorizontal(width, align, header))
		}
		lines = append(lines, RenderBraillePlot(s.Values, width, band, seriesColor(s.ID)))
	}

	lines = append(lines, timeAxis(data, width))
	return strings.Join(lines, "\n")
}

func timeAxis(data dashboard.ChartData, width int) string {
	if len(data.Labels) == 0 {
		return ""
	}
	first := dashboard.FormatClock(data.Labels[0].Local())
	last := dashboard.FormatClock(data.Labels[len(data.Labels)-1].Local())
	if len(data.Labels) == 1 {
		return MutedStyle.Render(lipgloss.PlaceHorizontal(width, lipgloss.Right, last))
	}
	gap := width - lipgloss.Width(first) - lipgloss.Width(last)
	if gap < 1 {
		gap = 1
	}
	return MutedStyle.Render(first + strings.Repeat(" ", gap) + last)
}
