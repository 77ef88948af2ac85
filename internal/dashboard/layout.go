package dashboard

import "time"

// FieldID addresses one element of the surface.
type FieldID string

// Chrome fields live outside the dashboard body and survive every rebuild.
const (
	FieldStatus     FieldID = "statusBadge"
	FieldIdentity   FieldID = "workerId"
	FieldLastUpdate FieldID = "lastUpdate"
)

// Headline cards.
const (
	FieldHashrate          FieldID = "hashrate"
	FieldHashrateCaption   FieldID = "hashrateCaption"
	FieldMiners            FieldID = "miners"
	FieldMinersPeak        FieldID = "minersPeak"
	FieldMinersProgress    FieldID = "minersProgress"
	FieldWorkers           FieldID = "workers"
	FieldWorkersRatio      FieldID = "workersRatio"
	FieldAcceptance        FieldID = "acceptance"
	FieldAcceptanceCaption FieldID = "acceptanceCaption"
)

// Results panel.
const (
	FieldAccepted       FieldID = "accepted"
	FieldRejected       FieldID = "rejected"
	FieldInvalid        FieldID = "invalid"
	FieldExpired        FieldID = "expired"
	FieldAcceptanceRate FieldID = "acceptanceRate"
	FieldLatency        FieldID = "latency"
	FieldTotalHashes    FieldID = "totalHashes"
	FieldAvgTime        FieldID = "avgTime"
)

// Pool panel.
const (
	FieldActivePools   FieldID = "activePools"
	FieldSleepingPools FieldID = "sleepingPools"
	FieldErrorPools    FieldID = "errorPools"
	FieldTotalPools    FieldID = "totalPools"
	FieldAlgorithm     FieldID = "algorithm"
	FieldProxyType     FieldID = "proxyType"
	FieldConnections   FieldID = "totalConnections"
)

// Chart panel.
const (
	FieldRAM      FieldID = "ramUsage"
	FieldRAMBar   FieldID = "ramBar"
	FieldCanvas   FieldID = "mainChart"
	FieldRange1m  FieldID = "range1m"
	FieldRange5m  FieldID = "range5m"
	FieldRange1h  FieldID = "range1h"
	FieldRange1d  FieldID = "range1d"
	FieldRangeAll FieldID = "rangeLifetime"
)

// Refresh-rate controls are part of the chrome.
const (
	FieldRefresh5s  FieldID = "refresh5s"
	FieldRefresh10s FieldID = "refresh10s"
	FieldRefresh30s FieldID = "refresh30s"
	FieldRefresh60s FieldID = "refresh60s"
)

// WindowField addresses the i-th hashrate window value.
func WindowField(i int) FieldID {
	return FieldID("window" + string(rune('0'+i)))
}

// Style classes applied through Surface.SetClass.
const (
	ClassStatusOnline   = "status-online"
	ClassStatusWarning  = "status-warning"
	ClassStatusOffline  = "status-offline"
	ClassHighlightGreen = "highlight-green"
	ClassHighlightRed   = "highlight-red"
	ClassHighlightBlue  = "highlight-blue"
	ClassHighlightAmber = "highlight-yellow"
	ClassRangeActive    = "chart-btn-active"
	ClassRefreshActive  = "refresh-btn-active"
)

// SectionKind tells the surface how to arrange a section.
type SectionKind int

const (
	SectionCards SectionKind = iota
	SectionMetrics
	SectionRows
	SectionChart
)

// FieldKind distinguishes text fields from progress bars.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldBar
)

// Layout is the complete dashboard body handed to Surface.Rebuild.
type Layout struct {
	Sections []Section
}

// Section is one panel of the dashboard. Chart sections also carry the
// time-range controls and the canvas the chart is bound to.
type Section struct {
	Title    string
	Kind     SectionKind
	Items    []Item
	Controls []Control
	Canvas   FieldID
}

// Item is a card, a metric tile or a labelled row.
type Item struct {
	Label  string
	Fields []Field
}

// Field is one addressable value. Fields with an empty ID are static text.
// Value and Format are set for numeric fields that animate between renders.
type Field struct {
	ID    FieldID
	Kind  FieldKind
	Text  string
	Class string
	Width float64

	Value  float64
	Format func(float64) string
}

// Control is a clickable option such as a time-range button.
type Control struct {
	ID     FieldID
	Label  string
	Active bool
}

// TimeRange is a trailing window of history. Zero means unbounded.
type TimeRange time.Duration

// RangeLifetime shows the entire history.
const RangeLifetime TimeRange = 0

// Duration returns r as a time.Duration.
func (r TimeRange) Duration() time.Duration {
	return time.Duration(r)
}

// RangeOption pairs a time-range control with its window.
type RangeOption struct {
	ID    FieldID
	Label string
	Range TimeRange
}

// RangeOptions are the supported chart windows in display order.
var RangeOptions = []RangeOption{
	{FieldRange1m, "1 Min", TimeRange(time.Minute)},
	{FieldRange5m, "5 Min", TimeRange(5 * time.Minute)},
	{FieldRange1h, "1 Hour", TimeRange(time.Hour)},
	{FieldRange1d, "1 Day", TimeRange(24 * time.Hour)},
	{FieldRangeAll, "Lifetime", RangeLifetime},
}

// RefreshOption pairs a refresh-rate control with its interval.
type RefreshOption struct {
	ID    FieldID
	Label string
	Rate  time.Duration
}

// RefreshOptions are the refresh rates offered in the chrome.
var RefreshOptions = []RefreshOption{
	{FieldRefresh5s, "5s", 5 * time.Second},
	{FieldRefresh10s, "10s", 10 * time.Second},
	{FieldRefresh30s, "30s", 30 * time.Second},
	{FieldRefresh60s, "60s", 60 * time.Second},
}

// StepRefreshRate returns the offered rate dir steps away from current.
// Rates that are not offered step to the nearest offered one.
func StepRefreshRate(current time.Duration, dir int) time.Duration {
	idx := -1
	for i, opt := range RefreshOptions {
		if opt.Rate == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		for i, opt := range RefreshOptions {
			if opt.Rate > current {
				idx = i
				if dir > 0 {
					idx--
				}
				break
			}
		}
		if idx < 0 {
			idx = len(RefreshOptions)
		}
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(RefreshOptions) {
		idx = len(RefreshOptions) - 1
	}
	return RefreshOptions[idx].Rate
}
