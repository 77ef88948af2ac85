package dashboard

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rileyhilliard/xmdash/internal/errors"
	"github.com/rileyhilliard/xmdash/internal/jsonx"
	"github.com/rileyhilliard/xmdash/internal/logger"
)

// MaxBodyBytes caps the size of a summary response.
const MaxBodyBytes = 4 << 20

// DefaultTimeout bounds a single summary request.
const DefaultTimeout = 8 * time.Second

const (
	msgInvalidType   = "Invalid response type. Expected JSON."
	msgInvalidFormat = "Invalid data format received from API"
)

// Fetcher retrieves one summary payload.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (map[string]any, error)
}

// HTTPFetcher fetches summaries over HTTP with caching disabled.
type HTTPFetcher struct {
	client *http.Client
	log    logger.Logger
}

// NewHTTPFetcher creates a fetcher whose requests time out after timeout.
func NewHTTPFetcher(timeout time.Duration, log logger.Logger) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Noop()
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Fetch issues a GET to url and returns the decoded JSON object.
//
// Errors are structured: ErrHTTP for non-2xx responses, ErrFormat for a
// missing JSON content type or a body that is not a JSON object, and
// ErrNetwork for transport failures.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfigInvalid,
			"Cannot build request", "Check the configured API URL")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	f.log.Debug("fetching %s", url)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrNetwork,
			"Request failed", "Check that the proxy is running and reachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewHTTP(resp.StatusCode)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "application/json") {
		return nil, errors.New(errors.ErrFormat, msgInvalidType,
			"Point the dashboard at the proxy's /1/summary endpoint")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrNetwork,
			"Request failed", "Check that the proxy is running and reachable")
	}
	if len(body) > MaxBodyBytes {
		return nil, errors.New(errors.ErrFormat, msgInvalidFormat, "Response exceeds 4 MiB")
	}

	var parsed any
	if err := jsonx.Unmarshal(body, &parsed); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFormat, msgInvalidFormat, "")
	}
	obj, ok := parsed.(map[string]any)
	if !ok || obj == nil {
		return nil, errors.New(errors.ErrFormat, msgInvalidFormat, "")
	}

	f.log.Debug("data received successfully")
	return obj, nil
}
