// Package fetch retrieves perk grid data from the API.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"perkgrid/internal/eventdata"
	"perkgrid/pkg/logging"
)

const (
	subsystem = "Fetch"

	// DefaultAPIRoot is used when no API root is configured.
	DefaultAPIRoot = "https://www.embercommunity.com/"

	maxBodyBytes = 4 << 20
)

// FetchError reports a network failure or a response outside the 2xx range.
type FetchError struct {
	// Status is the HTTP status, or 0 when no response was received.
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err is or wraps a *FetchError.
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// Fetcher loads the perk grid for an event.
type Fetcher interface {
	Fetch(ctx context.Context, eventID string) (eventdata.EventData, error)
}

// Client fetches perk grids over HTTP, retrying connection failures and
// 5xx responses.
type Client struct {
	apiRoot string
	http    *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithRetryMax sets the number of retries after the first attempt.
func WithRetryMax(n int) Option {
	return func(c *Client) { c.http.RetryMax = n }
}

// WithRetryWait bounds the backoff between attempts.
func WithRetryWait(min, max time.Duration) Option {
	return func(c *Client) {
		c.http.RetryWaitMin = min
		c.http.RetryWaitMax = max
	}
}

// WithTimeout sets the timeout of each attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.HTTPClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http.HTTPClient = hc }
}

// New creates a Client for apiRoot. An empty root selects DefaultAPIRoot.
func New(apiRoot string, opts ...Option) *Client {
	if apiRoot == "" {
		apiRoot = DefaultAPIRoot
	}
	if !strings.HasSuffix(apiRoot, "/") {
		apiRoot += "/"
	}

	rc := retryablehttp.NewClient()
	rc.Logger = leveledLogger{}
	rc.RetryMax = 2
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	// Hand the final response back instead of a "giving up" error so that
	// the status survives.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{apiRoot: apiRoot, http: rc}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint for eventID.
func (c *Client) URL(eventID string) string {
	return c.apiRoot + "api/v1/perk_grids/" + url.PathEscape(eventID) + ".json"
}

// Fetch retrieves and validates the perk grid for eventID. Failures to
// reach the API and non-2xx responses return a *FetchError; a 2xx body that
// is not valid event data returns an *eventdata.TypeError.
func (c *Client) Fetch(ctx context.Context, eventID string) (eventdata.EventData, error) {
	logging.Debug(subsystem, "fetching data for %s", eventID)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.URL(eventID), nil)
	if err != nil {
		return eventdata.EventData{}, newFetchError(eventID, 0, err.Error(), err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return eventdata.EventData{}, newFetchError(eventID, 0, err.Error(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return eventdata.EventData{}, newFetchError(eventID, 0, err.Error(), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return eventdata.EventData{}, newFetchError(eventID, resp.StatusCode, string(body), nil)
	}

	return eventdata.Decode(body)
}

func newFetchError(eventID string, status int, detail string, cause error) *FetchError {
	return &FetchError{
		Status:  status,
		Message: fmt.Sprintf("Problem fetching data for event id %q, error=%s", eventID, detail),
		Err:     cause,
	}
}

// leveledLogger routes retryablehttp's logging into pkg/logging.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	logging.Error(subsystem, nil, "%s%s", msg, formatKV(keysAndValues))
}

func (leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	logging.Warn(subsystem, "%s%s", msg, formatKV(keysAndValues))
}

func (leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	logging.Debug(subsystem, "%s%s", msg, formatKV(keysAndValues))
}

func (leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	logging.Debug(subsystem, "%s%s", msg, formatKV(keysAndValues))
}

func formatKV(kv []interface{}) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	return b.String()
}
