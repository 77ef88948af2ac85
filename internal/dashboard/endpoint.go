package dashboard

import (
	"github.com/rileyhilliard/xmdash/internal/logger"
	"github.com/rileyhilliard/xmdash/internal/storage"
)

// Endpoint is the active API URL backed by the persisted value.
type Endpoint struct {
	store storage.Store
	url   string
	log   logger.Logger
}

// NewEndpoint loads the persisted endpoint.
func NewEndpoint(store storage.Store, log logger.Logger) *Endpoint {
	if log == nil {
		log = logger.Noop()
	}
	e := &Endpoint{store: store, log: log}
	e.Reload()
	return e
}

// URL returns the active endpoint, or "" when none is configured.
func (e *Endpoint) URL() string {
	return e.url
}

// Persisted reads the stored endpoint. Read failures count as unset.
func (e *Endpoint) Persisted() string {
	v, ok, err := e.store.Get(storage.KeyEndpoint)
	if err != nil {
		e.log.Debug("endpoint read failed: %v", err)
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

// Reload makes the persisted endpoint active.
func (e *Endpoint) Reload() {
	e.url = e.Persisted()
}

// Set activates and persists url. The active value changes even when the
// write fails.
func (e *Endpoint) Set(url string) {
	e.url = url
	if err := e.store.Set(storage.KeyEndpoint, url); err != nil {
		e.log.Debug("endpoint write failed: %v", err)
	}
}

// Clear removes the active and persisted endpoint.
func (e *Endpoint) Clear() {
	e.url = ""
	if err := e.store.Remove(storage.KeyEndpoint); err != nil {
		e.log.Debug("endpoint remove failed: %v", err)
	}
}
