// Package overpass provides a client for the Overpass API, fetching raw OSM
// elements (highway ways plus named nodes) for a bounding box.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/route-cli/internal/geo"
)

const (
	defaultBaseURL   = "https://overpass-api.de/api/interpreter"
	defaultUserAgent = "route-cli/1.0 (contact: ops@sellsadvisors.com)"

	// Overpass server-side timeout in seconds, embedded in the query.
	queryTimeoutSecs = 25
)

// ElementType discriminates raw OSM elements.
type ElementType string

const (
	TypeNode ElementType = "node"
	TypeWay  ElementType = "way"
)

// Element is one raw OSM element from an Overpass response. Nodes carry
// Lat/Lon, ways carry the ordered Nodes list; both carry free-form Tags.
type Element struct {
	Type  ElementType       `json:"type"`
	ID    int64             `json:"id"`
	Lat   float64           `json:"lat,omitempty"`
	Lon   float64           `json:"lon,omitempty"`
	Tags  map[string]string `json:"tags,omitempty"`
	Nodes []int64           `json:"nodes,omitempty"`
}

type response struct {
	Elements []Element `json:"elements"`
}

// Client fetches raw map elements for a query region.
type Client interface {
	// Fetch returns every highway way and named node inside the bounding
	// box, together with all nodes those ways reference.
	Fetch(ctx context.Context, box geo.BoundingBox) ([]Element, error)
}

// Option configures the client.
type Option func(*client)

// WithBaseURL overrides the Overpass interpreter endpoint.
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

// WithRateLimit sets the requests-per-second limit for Overpass calls.
func WithRateLimit(rps float64) Option {
	return func(c *client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithUserAgent overrides the User-Agent header. Public Overpass instances
// require an identifying agent.
func WithUserAgent(ua string) Option {
	return func(c *client) {
		c.userAgent = ua
	}
}

type client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates an Overpass Client with the given options.
func NewClient(opts ...Option) Client {
	c := &client{
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: 90 * time.Second},
		limiter:    rate.NewLimiter(1, 1), // public instance etiquette: 1 req/s
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// buildQuery assembles the Overpass QL statement for a bounding box. The
// trailing recursion pulls in every node referenced by a matched way so the
// builder has coordinates for all edge endpoints.
func buildQuery(box geo.BoundingBox) string {
	bbox := box.String()
	var q strings.Builder
	fmt.Fprintf(&q, "[out:json][timeout:%d];\n", queryTimeoutSecs)
	q.WriteString("(\n")
	fmt.Fprintf(&q, "  way[\"highway\"](%s);\n", bbox)
	fmt.Fprintf(&q, "  node[\"name\"](%s);\n", bbox)
	q.WriteString(");\n(._;>;);\nout body;")
	return q.String()
}

func (c *client) Fetch(ctx context.Context, box geo.BoundingBox) ([]Element, error) {
	if err := box.Validate(); err != nil {
		return nil, eris.Wrap(err, "overpass: validate bbox")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "overpass: rate limit")
	}

	form := url.Values{"data": {buildQuery(box)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "overpass: build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "overpass: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("overpass: returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "overpass: read body")
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "overpass: parse response")
	}
	return parsed.Elements, nil
}
