package dashboard

import (
	"context"

	"github.com/rileyhilliard/xmdash/internal/errors"
	"github.com/rileyhilliard/xmdash/internal/logger"
)

// State is the fetch cycle state.
type State int

const (
	StateUnconfigured State = iota
	StateFetching
	StateIdle
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateIdle:
		return "idle"
	default:
		return "unconfigured"
	}
}

const msgInvalidData = "Invalid data received from API"

// FetchCycle performs one poll per Tick. Ticks are not serialized: a slow
// request does not hold back the next tick, and each result is applied when
// it arrives.
type FetchCycle struct {
	ctx      context.Context
	endpoint *Endpoint
	fetcher  Fetcher
	loop     Loop
	renderer *Renderer
	history  *HistoryStore
	config   *ConfigManager
	log      logger.Logger

	state    State
	inflight int
}

// State returns the current cycle state.
func (c *FetchCycle) State() State {
	return c.state
}

// InFlight returns the number of outstanding requests.
func (c *FetchCycle) InFlight() int {
	return c.inflight
}

// Tick polls the active endpoint. Without a valid endpoint it opens the
// configuration form instead. Ticks are ignored while the form is open.
func (c *FetchCycle) Tick() {
	if c.config.Editing() {
		return
	}

	url := c.endpoint.URL()
	if url == "" {
		c.state = StateUnconfigured
		c.config.Show()
		return
	}
	if !ValidateURL(url) {
		c.log.Debug("stored endpoint rejected")
		c.renderer.ShowError(MsgInvalidStored)
		c.endpoint.Clear()
		c.state = StateUnconfigured
		c.config.ShowNotice(MsgInvalidStored)
		return
	}

	c.state = StateFetching
	c.inflight++
	ctx, fetcher := c.ctx, c.fetcher
	c.loop.Go(func() func() {
		data, err := fetcher.Fetch(ctx, url)
		return func() { c.apply(data, err) }
	})
}

func (c *FetchCycle) apply(data map[string]any, err error) {
	c.inflight--
	if c.inflight == 0 && c.state == StateFetching {
		c.state = StateIdle
	}
	if c.ctx.Err() != nil {
		return
	}
	if c.config.Editing() {
		c.log.Debug("discarding poll result while configuring")
		return
	}

	if err != nil {
		c.log.Debug("fetch error: %s", errors.Summary(err))
		c.renderer.ShowError("Failed to fetch data: " + errors.Summary(err))
		return
	}

	safe := SanitizeData(data)
	if safe == nil {
		c.renderer.ShowError(msgInvalidData)
		return
	}
	snap := NewSnapshot(safe)
	c.renderer.Render(snap, c.history.Append(snap))
}
