package dashboard

import (
	"fmt"
	"time"
)

const (
	firstChartDelay = 100 * time.Millisecond
	patchChartDelay = 50 * time.Millisecond
)

// WindowLabels names the hashrate averaging windows.
var WindowLabels = [HashrateWindows]string{
	"10 Seconds", "1 Minute", "15 Minutes", "1 Hour", "12 Hours", "24 Hours",
}

// Renderer turns snapshots into surface updates. The first render after a
// reset rebuilds the layout; later renders send only the fields whose text,
// class or width changed.
type Renderer struct {
	surface Surface
	loop    Loop
	chart   *ChartController
	clock   func() time.Time
	tweens  *tweener

	initialized bool
	// gen invalidates chart refreshes scheduled before a reset.
	gen uint64

	texts   map[FieldID]string
	classes map[FieldID]string
	widths  map[FieldID]float64
}

// NewRenderer creates a renderer drawing on surface.
func NewRenderer(surface Surface, loop Loop, chart *ChartController, clock func() time.Time) *Renderer {
	if clock == nil {
		clock = time.Now
	}
	r := &Renderer{
		surface: surface,
		loop:    loop,
		chart:   chart,
		clock:   clock,
		tweens:  newTweener(surface, loop),
	}
	r.clearCache()
	return r
}

// Initialized reports whether the layout is currently built.
func (r *Renderer) Initialized() bool {
	return r.initialized
}

// Render shows s and schedules a chart refresh from history.
func (r *Renderer) Render(s Snapshot, history []HistoryEntry) {
	r.renderChrome(s)
	sections := BuildSections(s, r.chart.State().Range)

	if !r.initialized {
		r.chart.Destroy()
		r.surface.Rebuild(Layout{Sections: sections})
		r.remember(sections)
		r.initialized = true
		r.scheduleChart(history, firstChartDelay)
		return
	}

	r.patch(sections)
	r.scheduleChart(history, patchChartDelay)
}

// ShowError replaces the dashboard with message and forces the badge Offline.
// The next successful render rebuilds from scratch.
func (r *Renderer) ShowError(message string) {
	if message == "" {
		message = "Unknown error"
	}
	r.Reset()
	r.surface.ShowError(message)
	r.surface.SetClass(FieldStatus, StatusOffline.Class())
	r.surface.SetText(FieldStatus, StatusOffline.String())
}

// Reset destroys the chart and forgets the built layout.
func (r *Renderer) Reset() {
	r.chart.Destroy()
	r.initialized = false
	r.gen++
	r.clearCache()
	r.tweens.reset()
}

func (r *Renderer) clearCache() {
	r.texts = make(map[FieldID]string)
	r.classes = make(map[FieldID]string)
	r.widths = make(map[FieldID]float64)
}

func (r *Renderer) scheduleChart(history []HistoryEntry, delay time.Duration) {
	gen := r.gen
	r.loop.After(delay, func() {
		if gen != r.gen || !r.initialized {
			return
		}
		r.chart.Update(history)
	})
}

func (r *Renderer) renderChrome(s Snapshot) {
	status := DeriveStatus(s)
	r.surface.SetClass(FieldStatus, status.Class())
	r.surface.SetText(FieldStatus, status.String())

	identity := fmt.Sprintf("Worker: %s | Version: %s", EscapeMarkup(s.WorkerID), EscapeMarkup(s.Version))
	if s.Uptime > 0 {
		identity += " | Uptime: " + FormatUptime(s.Uptime)
	}
	r.surface.SetText(FieldIdentity, identity)
	r.surface.SetText(FieldLastUpdate, FormatClock(r.clock()))
}

func (r *Renderer) remember(sections []Section) {
	eachField(sections, func(f Field) {
		r.texts[f.ID] = f.Text
		r.classes[f.ID] = f.Class
		r.widths[f.ID] = f.Width
		if f.Format != nil {
			r.tweens.seed(f.ID, f.Value)
		}
	})
}

func (r *Renderer) patch(sections []Section) {
	eachField(sections, func(f Field) {
		if f.Kind == FieldBar {
			if w, ok := r.widths[f.ID]; !ok || w != f.Width {
				r.surface.SetWidth(f.ID, f.Width)
				r.widths[f.ID] = f.Width
			}
		} else if t, ok := r.texts[f.ID]; !ok || t != f.Text {
			if f.Format != nil {
				r.tweens.animate(f.ID, f.Value, f.Format)
			} else {
				r.surface.SetText(f.ID, f.Text)
			}
			r.texts[f.ID] = f.Text
		}

		if c, ok := r.classes[f.ID]; !ok || c != f.Class {
			r.surface.SetClass(f.ID, f.Class)
			r.classes[f.ID] = f.Class
		}
	})
}

func eachField(sections []Section, fn func(Field)) {
	for _, sec := range sections {
		for _, item := range sec.Items {
			for _, f := range item.Fields {
				if f.ID != "" {
					fn(f)
				}
			}
		}
	}
}

func textField(id FieldID, text, class string) Field {
	return Field{ID: id, Kind: FieldText, Text: EscapeMarkup(text), Class: class}
}

func numberField(id FieldID, v float64, format func(float64) string, class string) Field {
	return Field{ID: id, Kind: FieldText, Text: EscapeMarkup(format(v)), Class: class, Value: v, Format: format}
}

func barField(id FieldID, percent float64) Field {
	return Field{ID: id, Kind: FieldBar, Width: clampPercent(percent)}
}

func row(label string, f Field) Item {
	return Item{Label: label, Fields: []Field{f}}
}

// BuildSections lays out the dashboard body for s. active marks the current
// chart range control.
func BuildSections(s Snapshot, active TimeRange) []Section {
	windows := s.Windows()
	acceptance := s.AcceptanceRate()
	res := s.Results

	minersClass := ClassHighlightRed
	if s.MinersNow() > 0 {
		minersClass = ClassHighlightGreen
	}
	errorClass := ""
	if s.Upstreams.Error > 0 {
		errorClass = ClassHighlightRed
	}

	windowItems := make([]Item, HashrateWindows)
	for i, label := range WindowLabels {
		class := ""
		if i == 0 {
			class = ClassHighlightGreen
		}
		windowItems[i] = row(label, textField(WindowField(i), FormatHashrate(windows[i]), class))
	}

	controls := make([]Control, len(RangeOptions))
	for i, opt := range RangeOptions {
		controls[i] = Control{ID: opt.ID, Label: opt.Label, Active: opt.Range == active}
	}

	ram := fmt.Sprintf("%s/%s (%.1f%%)",
		FormatBytes(s.MemoryUsed()), FormatBytes(s.Resources.Memory.Total), s.MemoryUsedPercent())

	return []Section{
		{
			Kind: SectionCards,
			Items: []Item{
				{Label: "Current Hashrate", Fields: []Field{
					numberField(FieldHashrate, windows[0], FormatHashrate, ClassHighlightGreen),
					textField(FieldHashrateCaption, "10s average", ""),
				}},
				{Label: "Active Miners", Fields: []Field{
					numberField(FieldMiners, s.MinersNow(), FormatNumber, minersClass),
					textField(FieldMinersPeak, "Peak: "+FormatNumber(s.MinersMax())+" miners", ""),
					barField(FieldMinersProgress, s.MinersProgress()),
				}},
				{Label: "Workers Connected", Fields: []Field{
					textField(FieldWorkers, FormatPlain(s.Workers), ClassHighlightBlue),
					textField(FieldWorkersRatio, fmt.Sprintf("Ratio: %.1f miners/upstream", s.Upstreams.Ratio), ""),
				}},
				{Label: "Acceptance Rate", Fields: []Field{
					numberField(FieldAcceptance, acceptance, formatAcceptance, ClassHighlightBlue),
					textField(FieldAcceptanceCaption,
						FormatNumber(res.Accepted)+" accepted, "+FormatNumber(res.Rejected)+" rejected", ""),
				}},
			},
		},
		{
			Title: "Hashrate Performance",
			Kind:  SectionMetrics,
			Items: windowItems,
		},
		{
			Title: "Mining Results",
			Kind:  SectionRows,
			Items: []Item{
				row("Accepted", textField(FieldAccepted, FormatNumber(res.Accepted), ClassHighlightGreen)),
				row("Rejected", textField(FieldRejected, FormatNumber(res.Rejected), ClassHighlightRed)),
				row("Invalid", textField(FieldInvalid, FormatNumber(res.Invalid), ClassHighlightAmber)),
				row("Expired", textField(FieldExpired, FormatNumber(res.Expired), "")),
				row("Acceptance Rate", textField(FieldAcceptanceRate, formatAcceptance(acceptance), ClassHighlightBlue)),
				row("Latency", textField(FieldLatency, FormatPlain(res.Latency)+" ms", "")),
				row("Total Hashes", textField(FieldTotalHashes, FormatNumber(res.HashesTotal), "")),
				row("Avg Submit Time", textField(FieldAvgTime, FormatPlain(res.AvgTime)+" sec", "")),
			},
		},
		{
			Title: "Pools",
			Kind:  SectionRows,
			Items: []Item{
				row("Active", textField(FieldActivePools, FormatPlain(s.Upstreams.Active), "")),
				row("Sleeping", textField(FieldSleepingPools, FormatPlain(s.Upstreams.Sleep), "")),
				row("Error", textField(FieldErrorPools, FormatPlain(s.Upstreams.Error), errorClass)),
				row("Total", textField(FieldTotalPools, FormatPlain(s.Upstreams.Total), "")),
				row("Algorithm", textField(FieldAlgorithm, s.Algo, "")),
				row("Proxy Type", textField(FieldProxyType, s.Kind, "")),
				row("Connections", textField(FieldConnections, FormatNumber(s.Connection.Total), "")),
			},
		},
		{
			Title:    "Mining Analytics",
			Kind:     SectionChart,
			Controls: controls,
			Canvas:   FieldCanvas,
			Items: []Item{
				{Label: "RAM", Fields: []Field{
					textField(FieldRAM, ram, ""),
					barField(FieldRAMBar, s.MemoryUsedPercent()),
				}},
			},
		},
	}
}
