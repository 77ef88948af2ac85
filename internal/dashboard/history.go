package dashboard

import (
	"time"

	"github.com/rileyhilliard/xmdash/internal/jsonx"
	"github.com/rileyhilliard/xmdash/internal/logger"
	"github.com/rileyhilliard/xmdash/internal/storage"
)

// MaxHistoryPoints bounds the persisted history.
const MaxHistoryPoints = 2000

// HistoryEntry is one persisted sample. Timestamp is epoch milliseconds.
type HistoryEntry struct {
	Timestamp       int64   `json:"timestamp"`
	Hashrate        float64 `json:"hashrate"`
	Miners          float64 `json:"miners"`
	Workers         float64 `json:"workers"`
	AcceptanceRate  float64 `json:"acceptanceRate"`
	Accepted        float64 `json:"accepted"`
	Rejected        float64 `json:"rejected"`
	MemoryUsed      float64 `json:"memoryUsed"`
	MemoryTotal     float64 `json:"memoryTotal"`
	UpstreamsActive float64 `json:"upstreamsActive"`
	Latency         float64 `json:"latency"`
	Connections     float64 `json:"connections"`
	Algo            string  `json:"algo"`
	Kind            string  `json:"kind"`
}

// Time returns the entry timestamp.
func (e HistoryEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// NewHistoryEntry derives a sample from s taken at t.
func NewHistoryEntry(s Snapshot, t time.Time) HistoryEntry {
	return HistoryEntry{
		Timestamp:       t.UnixMilli(),
		Hashrate:        s.CurrentHashrate(),
		Miners:          s.MinersNow(),
		Workers:         s.Workers,
		AcceptanceRate:  s.AcceptanceRate(),
		Accepted:        s.Results.Accepted,
		Rejected:        s.Results.Rejected,
		MemoryUsed:      s.MemoryUsed(),
		MemoryTotal:     s.Resources.Memory.Total,
		UpstreamsActive: s.Upstreams.Active,
		Latency:         s.Results.Latency,
		Connections:     s.Connection.Total,
		Algo:            s.Algo,
		Kind:            s.Kind,
	}
}

// HistoryStore keeps the most recent samples in memory and mirrors them to
// the store after every append. Storage failures are logged at debug level
// and never surface to callers.
type HistoryStore struct {
	store  storage.Store
	key    string
	ring   *ringBuffer[HistoryEntry]
	loaded bool
	clock  func() time.Time
	log    logger.Logger
}

// NewHistoryStore creates a history store persisted under storage.KeyHistory.
func NewHistoryStore(store storage.Store, clock func() time.Time, log logger.Logger) *HistoryStore {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = logger.Noop()
	}
	return &HistoryStore{
		store: store,
		key:   storage.KeyHistory,
		ring:  newRingBuffer[HistoryEntry](MaxHistoryPoints),
		clock: clock,
		log:   log,
	}
}

// Load returns the history, reading the store on first use. Missing or
// corrupted state yields an empty history.
func (h *HistoryStore) Load() []HistoryEntry {
	h.ensureLoaded()
	return h.ring.getAll()
}

func (h *HistoryStore) ensureLoaded() {
	if h.loaded {
		return
	}
	h.loaded = true

	raw, ok, err := h.store.Get(h.key)
	if err != nil {
		h.log.Debug("history read failed: %v", err)
		return
	}
	if !ok || raw == "" {
		return
	}

	var entries []HistoryEntry
	if err := jsonx.Unmarshal([]byte(raw), &entries); err != nil {
		h.log.Debug("history discarded, not a valid array: %v", err)
		return
	}
	for _, e := range entries {
		h.ring.push(e)
	}
}

// Append records a sample derived from s, persists the history and returns it.
func (h *HistoryStore) Append(s Snapshot) []HistoryEntry {
	h.ensureLoaded()
	h.ring.push(NewHistoryEntry(s, h.clock()))

	all := h.ring.getAll()
	h.persist(all)
	return all
}

func (h *HistoryStore) persist(entries []HistoryEntry) {
	data, err := jsonx.Marshal(entries)
	if err != nil {
		h.log.Debug("history encode failed: %v", err)
		return
	}
	if err := h.store.Set(h.key, string(data)); err != nil {
		h.log.Debug("failed to save history: %v", err)
	}
}

// Len returns the number of samples held.
func (h *HistoryStore) Len() int {
	h.ensureLoaded()
	return h.ring.len()
}

// Clear drops all samples and removes the persisted history.
func (h *HistoryStore) Clear() error {
	h.loaded = true
	h.ring.reset()
	return h.store.Remove(h.key)
}

// FilterByRange returns the trailing entries no older than r before now.
// A range of zero or less returns history unchanged. The input is never
// modified.
func FilterByRange(history []HistoryEntry, r TimeRange, now time.Time) []HistoryEntry {
	if r <= 0 || len(history) == 0 {
		return history
	}
	cutoff := now.Add(-r.Duration()).UnixMilli()

	start := len(history)
	for start > 0 && history[start-1].Timestamp >= cutoff {
		start--
	}
	return history[start:len(history):len(history)]
}
