package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/route-cli/internal/config"
	"github.com/sells-group/route-cli/internal/geo"
	"github.com/sells-group/route-cli/internal/planner"
	"github.com/sells-group/route-cli/pkg/overpass"
)

type fakeOverpass struct {
	elements []overpass.Element
	err      error
}

func (f *fakeOverpass) Fetch(_ context.Context, _ geo.BoundingBox) ([]overpass.Element, error) {
	return f.elements, f.err
}

func serveTestPlanner(elements []overpass.Element) *planner.Planner {
	cfg := &config.Config{
		Routing: config.RoutingConfig{
			RoadSpeeds:        map[string]float64{"residential": 20},
			IntersectionDelay: 0.15,
		},
		Mapper: config.MapperConfig{MaxWorkers: 2},
	}
	return planner.New(cfg, &fakeOverpass{elements: elements}, nil)
}

func roadElements() []overpass.Element {
	return []overpass.Element{
		{Type: overpass.TypeNode, ID: 1, Lat: 26.280, Lon: 50.210},
		{Type: overpass.TypeNode, ID: 2, Lat: 26.285, Lon: 50.210},
		{Type: overpass.TypeNode, ID: 3, Lat: 26.290, Lon: 50.210},
		{Type: overpass.TypeWay, ID: 10, Nodes: []int64{1, 2, 3},
			Tags: map[string]string{"highway": "residential"}},
	}
}

func TestServe_Health(t *testing.T) {
	srv := httptest.NewServer(newServeMux(serveTestPlanner(nil)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestServe_Route(t *testing.T) {
	srv := httptest.NewServer(newServeMux(serveTestPlanner(roadElements())))
	defer srv.Close()

	payload := map[string]any{
		"bbox": map[string]float64{"south": 26.27, "west": 50.20, "north": 26.31, "east": 50.24},
		"from": map[string]float64{"lat": 26.280, "lon": 50.210},
		"to":   map[string]float64{"lat": 26.290, "lon": 50.210},
	}
	buf, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/route", "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reply routeReply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	assert.Equal(t, int64(1), reply.StartNode)
	assert.Equal(t, int64(3), reply.TargetNode)
	assert.Equal(t, 3, reply.Vertices)
	require.Len(t, reply.Results, 3)
	for _, r := range reply.Results {
		assert.True(t, r.Found, r.Algorithm)
		assert.Equal(t, []int64{1, 2, 3}, r.Path, r.Algorithm)
		assert.NotEmpty(t, r.MapsURL, r.Algorithm)
	}
}

func TestServe_Route_BadBody(t *testing.T) {
	srv := httptest.NewServer(newServeMux(serveTestPlanner(nil)))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/route", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServe_Route_InvalidBBox(t *testing.T) {
	srv := httptest.NewServer(newServeMux(serveTestPlanner(nil)))
	defer srv.Close()

	payload := `{"bbox":{"south":26.31,"west":50.20,"north":26.27,"east":50.24},"from":{"lat":1,"lon":1},"to":{"lat":2,"lon":2}}`
	resp, err := http.Post(srv.URL+"/route", "application/json", bytes.NewReader([]byte(payload)))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServe_Route_EmptyRegion(t *testing.T) {
	srv := httptest.NewServer(newServeMux(serveTestPlanner(nil)))
	defer srv.Close()

	payload := `{"bbox":{"south":26.27,"west":50.20,"north":26.31,"east":50.24},"from":{"lat":26.28,"lon":50.21},"to":{"lat":26.29,"lon":50.21}}`
	resp, err := http.Post(srv.URL+"/route", "application/json", bytes.NewReader([]byte(payload)))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
