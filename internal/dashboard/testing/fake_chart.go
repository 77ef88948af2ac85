package testing

import (
	"github.com/rileyhilliard/xmdash/internal/dashboard"
)

// FakeChart is a chart instance created by FakeChartBackend.
type FakeChart struct {
	Canvas    dashboard.FieldID
	Data      dashboard.ChartData
	Updates   int
	Destroyed bool

	toggle func(dashboard.SeriesID)
}

func (c *FakeChart) Update(data dashboard.ChartData) {
	c.Data = data
	c.Updates++
}

func (c *FakeChart) Destroy() {
	c.Destroyed = true
}

func (c *FakeChart) OnLegendToggle(fn func(dashboard.SeriesID)) {
	c.toggle = fn
}

// ClickLegend simulates a click on the legend entry for id.
func (c *FakeChart) ClickLegend(id dashboard.SeriesID) {
	if c.toggle != nil {
		c.toggle(id)
	}
}

// FakeChartBackend hands out FakeCharts. With NoCanvas set it behaves as if
// the canvas were not on screen.
type FakeChartBackend struct {
	NoCanvas bool
	Created  []*FakeChart
}

func NewFakeChartBackend() *FakeChartBackend {
	return &FakeChartBackend{}
}

func (b *FakeChartBackend) CreateSeriesChart(canvas dashboard.FieldID, data dashboard.ChartData) dashboard.SeriesChart {
	if b.NoCanvas {
		return nil
	}
	c := &FakeChart{Canvas: canvas, Data: data}
	b.Created = append(b.Created, c)
	return c
}

// Last returns the most recently created chart, or nil.
func (b *FakeChartBackend) Last() *FakeChart {
	if len(b.Created) == 0 {
		return nil
	}
	return b.Created[len(b.Created)-1]
}

// Live returns the charts that have not been destroyed.
func (b *FakeChartBackend) Live() []*FakeChart {
	var out []*FakeChart
	for _, c := range b.Created {
		if !c.Destroyed {
			out = append(out, c)
		}
	}
	return out
}
