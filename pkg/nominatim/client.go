// Package nominatim provides a minimal client for the Nominatim search API,
// used to resolve a city name into a bounding box.
package nominatim

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/route-cli/internal/geo"
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org/search"
	defaultUserAgent = "route-cli/1.0 (contact: ops@sellsadvisors.com)"
)

// Client resolves free-form place names to bounding boxes.
type Client interface {
	// SearchBoundingBox returns the bounding box of the best match for the
	// query. The second return is false when Nominatim has no result.
	SearchBoundingBox(ctx context.Context, query string) (geo.BoundingBox, bool, error)
}

// Option configures the client.
type Option func(*client)

// WithBaseURL overrides the search endpoint.
func WithBaseURL(u string) Option {
	return func(c *client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second limit. Nominatim's usage policy
// caps anonymous clients at one request per second.
func WithRateLimit(rps float64) Option {
	return func(c *client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

type client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Nominatim Client with the given options.
func NewClient(opts ...Option) Client {
	c := &client{
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		limiter:    rate.NewLimiter(1, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResult is one Nominatim match. BoundingBox order on the wire is
// [south, north, west, east] as strings.
type searchResult struct {
	DisplayName string   `json:"display_name"`
	BoundingBox []string `json:"boundingbox"`
}

func (c *client) SearchBoundingBox(ctx context.Context, query string) (geo.BoundingBox, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return geo.BoundingBox{}, false, eris.Wrap(err, "nominatim: rate limit")
	}

	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return geo.BoundingBox{}, false, eris.Wrap(err, "nominatim: build request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geo.BoundingBox{}, false, eris.Wrap(err, "nominatim: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return geo.BoundingBox{}, false, eris.Errorf("nominatim: returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return geo.BoundingBox{}, false, eris.Wrap(err, "nominatim: read body")
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return geo.BoundingBox{}, false, eris.Wrap(err, "nominatim: parse response")
	}
	if len(results) == 0 || len(results[0].BoundingBox) != 4 {
		return geo.BoundingBox{}, false, nil
	}

	box, err := parseBoundingBox(results[0].BoundingBox)
	if err != nil {
		return geo.BoundingBox{}, false, err
	}
	return box, true, nil
}

func parseBoundingBox(raw []string) (geo.BoundingBox, error) {
	vals := make([]float64, 4)
	for i, s := range raw {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return geo.BoundingBox{}, eris.Wrapf(err, "nominatim: parse bbox field %q", s)
		}
		vals[i] = f
	}
	box := geo.BoundingBox{South: vals[0], North: vals[1], West: vals[2], East: vals[3]}
	if err := box.Validate(); err != nil {
		return geo.BoundingBox{}, eris.Wrap(err, "nominatim: validate bbox")
	}
	return box, nil
}
