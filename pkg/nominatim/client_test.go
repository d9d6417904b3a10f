package nominatim

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchBoundingBox_Found(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Dammam", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{
			"display_name": "Dammam, Eastern Province, Saudi Arabia",
			"boundingbox": ["26.35", "26.55", "49.95", "50.15"]
		}]`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(1000))
	box, found, err := c.SearchBoundingBox(context.Background(), "Dammam")
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 26.35, box.South, 1e-9)
	assert.InDelta(t, 26.55, box.North, 1e-9)
	assert.InDelta(t, 49.95, box.West, 1e-9)
	assert.InDelta(t, 50.15, box.East, 1e-9)
}

func TestSearchBoundingBox_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(1000))
	_, found, err := c.SearchBoundingBox(context.Background(), "Nowhereville")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSearchBoundingBox_BadBBox(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"boundingbox": ["abc", "26.55", "49.95", "50.15"]}]`)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(1000))
	_, _, err := c.SearchBoundingBox(context.Background(), "Dammam")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse bbox field")
}

func TestSearchBoundingBox_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithRateLimit(1000))
	_, _, err := c.SearchBoundingBox(context.Background(), "Dammam")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}
