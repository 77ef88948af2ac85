package dashboard

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
)

// HashrateWindows is the number of averaging windows reported in hashrate.total.
const HashrateWindows = 6

// Unknown is shown for missing string fields.
const Unknown = "Unknown"

// Snapshot is a typed view over one sanitized poll response. Numeric fields
// are always finite; missing strings read as Unknown.
type Snapshot struct {
	Hashrate   Hashrate
	Miners     *MinerCounts // nil when the payload has no miners object
	Workers    float64
	Connection Connection
	Upstreams  Upstreams
	Results    Results
	Resources  Resources
	Algo       string
	Kind       string
	WorkerID   string
	Version    string
	Uptime     float64 // seconds
}

// Hashrate holds the averaged rates in KH/s for 10s, 1m, 15m, 1h, 12h and 24h.
type Hashrate struct {
	Total []float64
}

type MinerCounts struct {
	Now float64 `mapstructure:"now"`
	Max float64 `mapstructure:"max"`
}

type Connection struct {
	Total float64 `mapstructure:"total"`
}

// Upstreams describes the pool connections held by the proxy.
type Upstreams struct {
	Active float64 `mapstructure:"active"`
	Sleep  float64 `mapstructure:"sleep"`
	Error  float64 `mapstructure:"error"`
	Total  float64 `mapstructure:"total"`
	Ratio  float64 `mapstructure:"ratio"`
}

// Results holds share submission counters.
type Results struct {
	Accepted    float64 `mapstructure:"accepted"`
	Rejected    float64 `mapstructure:"rejected"`
	Invalid     float64 `mapstructure:"invalid"`
	Expired     float64 `mapstructure:"expired"`
	Latency     float64 `mapstructure:"latency"`
	HashesTotal float64 `mapstructure:"hashes_total"`
	AvgTime     float64 `mapstructure:"avg_time"`
}

type Resources struct {
	Memory Memory `mapstructure:"memory"`
}

// Memory sizes are in bytes.
type Memory struct {
	Total float64 `mapstructure:"total"`
	Free  float64 `mapstructure:"free"`
}

// NewSnapshot builds a Snapshot from sanitized data. Each section decodes on
// its own, so a malformed section falls back to zero values without
// affecting the others.
func NewSnapshot(data map[string]any) Snapshot {
	s := Snapshot{
		Hashrate: Hashrate{Total: hashrateTotals(data["hashrate"])},
		Workers:  SanitizeNumber(data["workers"]),
		Uptime:   SanitizeNumber(data["uptime"]),
		Algo:     stringOr(data["algo"]),
		Kind:     stringOr(data["kind"]),
		WorkerID: stringOr(data["worker_id"]),
		Version:  stringOr(data["version"]),
	}

	if raw, ok := data["miners"].(map[string]any); ok {
		var m MinerCounts
		decodeSection(raw, &m)
		s.Miners = &m
	}
	decodeSection(data["connection"], &s.Connection)
	decodeSection(data["upstreams"], &s.Upstreams)
	decodeSection(data["results"], &s.Results)
	decodeSection(data["resources"], &s.Resources)
	return s
}

// numberHook routes every float64 target through SanitizeNumber so strings,
// bools and nulls in the payload decode the same way they display.
func numberHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() == reflect.Float64 {
		return SanitizeNumber(data), nil
	}
	return data, nil
}

func decodeSection(raw any, out any) {
	m, ok := raw.(map[string]any)
	if !ok {
		return
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       numberHook,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return
	}
	if err := dec.Decode(m); err != nil {
		// Leave the section at its zero value.
		reflect.ValueOf(out).Elem().SetZero()
	}
}

func hashrateTotals(raw any) []float64 {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	arr, ok := m["total"].([]any)
	if !ok {
		return nil
	}
	out := make([]float64, len(arr))
	for i, v := range arr {
		out[i] = SanitizeNumber(v)
	}
	return out
}

func stringOr(v any) string {
	switch val := v.(type) {
	case nil:
		return Unknown
	case string:
		if val == "" {
			return Unknown
		}
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case map[string]any, []any:
		return Unknown
	default:
		return fmt.Sprint(val)
	}
}

// Windows returns the six hashrate windows, zero-padded.
func (s Snapshot) Windows() [HashrateWindows]float64 {
	var w [HashrateWindows]float64
	copy(w[:], s.Hashrate.Total)
	return w
}

// CurrentHashrate is the 10 second average.
func (s Snapshot) CurrentHashrate() float64 {
	return s.Windows()[0]
}

func (s Snapshot) MinersNow() float64 {
	if s.Miners == nil {
		return 0
	}
	return s.Miners.Now
}

func (s Snapshot) MinersMax() float64 {
	if s.Miners == nil {
		return 0
	}
	return s.Miners.Max
}

// MinersProgress is the current miner count as a percentage of the peak.
func (s Snapshot) MinersProgress() float64 {
	return clampPercent(s.MinersNow() / math.Max(1, s.MinersMax()) * 100)
}

// AcceptanceRate is accepted / (accepted + rejected) * 100, or 0 when no
// shares have been submitted.
func (s Snapshot) AcceptanceRate() float64 {
	return acceptanceRate(s.Results.Accepted, s.Results.Rejected)
}

func (s Snapshot) MemoryUsed() float64 {
	return math.Max(0, s.Resources.Memory.Total-s.Resources.Memory.Free)
}

// MemoryUsedPercent is clamped to [0, 100].
func (s Snapshot) MemoryUsedPercent() float64 {
	if s.Resources.Memory.Total <= 0 {
		return 0
	}
	return clampPercent(s.MemoryUsed() / s.Resources.Memory.Total * 100)
}

func acceptanceRate(accepted, rejected float64) float64 {
	total := accepted + rejected
	if total <= 0 {
		return 0
	}
	return accepted / total * 100
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}
