package cli

import (
	"time"

	"github.com/rileyhilliard/xmdash/internal/dashboard"
)

// StatusReport is the data payload of `xmdash status --format json`.
// Rates are KH/s, memory is bytes and times are seconds unless noted.
type StatusReport struct {
	Endpoint      string           `json:"endpoint"`
	FetchedAt     time.Time        `json:"fetched_at"`
	Status        string           `json:"status"`
	WorkerID      string           `json:"worker_id"`
	Version       string           `json:"version"`
	Kind          string           `json:"kind"`
	Algo          string           `json:"algo"`
	UptimeSeconds float64          `json:"uptime_seconds"`
	Hashrate      []HashrateWindow `json:"hashrate"`
	Miners        MinersReport     `json:"miners"`
	Workers       float64          `json:"workers"`
	Connections   float64          `json:"connections"`
	Upstreams     UpstreamsReport  `json:"upstreams"`
	Results       ResultsReport    `json:"results"`
	Memory        MemoryReport     `json:"memory"`
}

type HashrateWindow struct {
	Window string  `json:"window"`
	KHs    float64 `json:"khs"`
}

type MinersReport struct {
	Now float64 `json:"now"`
	Max float64 `json:"max"`
	// Percent is Now as a share of Max, clamped to [0, 100].
	Percent float64 `json:"percent"`
}

type UpstreamsReport struct {
	Active float64 `json:"active"`
	Sleep  float64 `json:"sleep"`
	Error  float64 `json:"error"`
	Total  float64 `json:"total"`
	Ratio  float64 `json:"ratio"`
}

type ResultsReport struct {
	Accepted       float64 `json:"accepted"`
	Rejected       float64 `json:"rejected"`
	Invalid        float64 `json:"invalid"`
	Expired        float64 `json:"expired"`
	AcceptanceRate float64 `json:"acceptance_rate"`
	LatencyMillis  float64 `json:"latency_ms"`
	HashesTotal    float64 `json:"hashes_total"`
	AvgTime        float64 `json:"avg_time"`
}

type MemoryReport struct {
	Total       float64 `json:"total"`
	Used        float64 `json:"used"`
	UsedPercent float64 `json:"used_percent"`
}

func newStatusReport(url string, s dashboard.Snapshot, fetchedAt time.Time) StatusReport {
	windows := s.Windows()
	hashrate := make([]HashrateWindow, len(windows))
	for i, v := range windows {
		hashrate[i] = HashrateWindow{Window: dashboard.WindowLabels[i], KHs: v}
	}

	return StatusReport{
		Endpoint:      url,
		FetchedAt:     fetchedAt.UTC(),
		Status:        dashboard.DeriveStatus(s).String(),
		WorkerID:      s.WorkerID,
		Version:       s.Version,
		Kind:          s.Kind,
		Algo:          s.Algo,
		UptimeSeconds: s.Uptime,
		Hashrate:      hashrate,
		Miners: MinersReport{
			Now:     s.MinersNow(),
			Max:     s.MinersMax(),
			Percent: s.MinersProgress(),
		},
		Workers:     s.Workers,
		Connections: s.Connection.Total,
		Upstreams: UpstreamsReport{
			Active: s.Upstreams.Active,
			Sleep:  s.Upstreams.Sleep,
			Error:  s.Upstreams.Error,
			Total:  s.Upstreams.Total,
			Ratio:  s.Upstreams.Ratio,
		},
		Results: ResultsReport{
			Accepted:       s.Results.Accepted,
			Rejected:       s.Results.Rejected,
			Invalid:        s.Results.Invalid,
			Expired:        s.Results.Expired,
			AcceptanceRate: s.AcceptanceRate(),
			LatencyMillis:  s.Results.Latency,
			HashesTotal:    s.Results.HashesTotal,
			AvgTime:        s.Results.AvgTime,
		},
		Memory: MemoryReport{
			Total:       s.Resources.Memory.Total,
			Used:        s.MemoryUsed(),
			UsedPercent: s.MemoryUsedPercent(),
		},
	}
}
