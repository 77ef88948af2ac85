package dashboard

import (
	"strings"

	"github.com/rileyhilliard/xmdash/internal/errors"
)

// User-facing messages of the configuration flow.
const (
	MsgEmptyURL      = "Please enter a valid API URL"
	MsgInvalidURL    = "Invalid URL. Please enter a valid http:// or https:// URL."
	MsgInvalidStored = "Invalid API URL stored. Please reconfigure."
	MsgConnecting    = "Connecting..."
	MsgLoading       = "Loading dashboard data..."
)

// ConfigManager runs the endpoint entry form.
type ConfigManager struct {
	endpoint *Endpoint
	surface  Surface
	renderer *Renderer
	tick     func()
	editing  bool
}

// NewConfigManager creates a manager that calls tick after the form closes.
func NewConfigManager(endpoint *Endpoint, surface Surface, renderer *Renderer, tick func()) *ConfigManager {
	return &ConfigManager{
		endpoint: endpoint,
		surface:  surface,
		renderer: renderer,
		tick:     tick,
	}
}

// Editing reports whether the form is on screen.
func (c *ConfigManager) Editing() bool {
	return c.editing
}

// Show displays the form pre-filled with the persisted endpoint. Cancel is
// offered only when an endpoint is persisted.
func (c *ConfigManager) Show() {
	c.ShowNotice("")
}

// ShowNotice displays the form with notice shown above it.
func (c *ConfigManager) ShowNotice(notice string) {
	c.renderer.Reset()
	c.editing = true

	current := c.endpoint.Persisted()
	c.surface.ShowConfig(ConfigForm{
		URL:       current,
		CanCancel: current != "",
		Notice:    notice,
	})
}

// Save validates entered and, when valid, persists it and polls immediately.
// Invalid input raises an alert, leaves all state unchanged and returns an
// ErrConfigInvalid error.
func (c *ConfigManager) Save(entered string) error {
	url := strings.TrimSpace(entered)
	if url == "" {
		c.surface.Alert(MsgEmptyURL)
		return errors.New(errors.ErrConfigInvalid, MsgEmptyURL, "")
	}
	if !ValidateURL(url) {
		c.surface.Alert(MsgInvalidURL)
		return errors.New(errors.ErrConfigInvalid, MsgInvalidURL,
			"Example: http://127.0.0.1:8080/1/summary")
	}

	c.endpoint.Set(url)
	c.editing = false
	c.renderer.Reset()
	c.surface.ShowLoading(MsgConnecting)
	c.tick()
	return nil
}

// Cancel closes the form and polls the persisted endpoint. Without one the
// form is shown again.
func (c *ConfigManager) Cancel() {
	c.editing = false
	c.renderer.Reset()
	c.surface.ShowLoading(MsgLoading)
	c.endpoint.Reload()
	c.tick()
}
