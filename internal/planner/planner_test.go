package planner

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/route-cli/internal/config"
	"github.com/sells-group/route-cli/internal/geo"
	"github.com/sells-group/route-cli/internal/routing"
	"github.com/sells-group/route-cli/internal/store"
	"github.com/sells-group/route-cli/pkg/overpass"
)

// fakeClient serves canned elements and counts fetches.
type fakeClient struct {
	elements []overpass.Element
	calls    int
	err      error
}

func (f *fakeClient) Fetch(_ context.Context, _ geo.BoundingBox) ([]overpass.Element, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.elements, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Routing: config.RoutingConfig{
			RoadSpeeds:        map[string]float64{"residential": 20, "primary": 45},
			IntersectionDelay: 0.15,
		},
		Mapper: config.MapperConfig{MaxWorkers: 2},
		Cache:  config.CacheConfig{TTLHours: 1},
	}
}

// cornicheElements is a small connected network with one named place.
func cornicheElements() []overpass.Element {
	return []overpass.Element{
		{Type: overpass.TypeNode, ID: 1, Lat: 26.280, Lon: 50.210},
		{Type: overpass.TypeNode, ID: 2, Lat: 26.285, Lon: 50.210},
		{Type: overpass.TypeNode, ID: 3, Lat: 26.290, Lon: 50.210},
		{Type: overpass.TypeNode, ID: 4, Lat: 26.2801, Lon: 50.2101,
			Tags: map[string]string{"name": "Corniche Cafe", "amenity": "cafe"}},
		{Type: overpass.TypeWay, ID: 10, Nodes: []int64{1, 2, 3},
			Tags: map[string]string{"highway": "residential"}},
	}
}

var testBox = geo.BoundingBox{South: 26.27, West: 50.20, North: 26.31, East: 50.24}

func TestFetchElements_CacheRoundTrip(t *testing.T) {
	cache, err := store.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()
	require.NoError(t, cache.Migrate(context.Background()))

	client := &fakeClient{elements: cornicheElements()}
	p := New(testConfig(), client, cache)

	first, err := p.FetchElements(context.Background(), testBox)
	require.NoError(t, err)
	assert.Len(t, first, 5)
	assert.Equal(t, 1, client.calls)

	// second fetch must come from the cache
	second, err := p.FetchElements(context.Background(), testBox)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.calls)
}

func TestFetchElements_NilCache(t *testing.T) {
	client := &fakeClient{elements: cornicheElements()}
	p := New(testConfig(), client, nil)

	_, err := p.FetchElements(context.Background(), testBox)
	require.NoError(t, err)
	_, err = p.FetchElements(context.Background(), testBox)
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
}

func TestBuildNetwork_EmptyRegion(t *testing.T) {
	p := New(testConfig(), &fakeClient{}, nil)
	_, err := p.BuildNetwork(nil)
	assert.ErrorIs(t, err, ErrEmptyGraph)
}

func TestSession_EndToEnd(t *testing.T) {
	p := New(testConfig(), &fakeClient{elements: cornicheElements()}, nil)

	elements, err := p.FetchElements(context.Background(), testBox)
	require.NoError(t, err)

	n, err := p.BuildNetwork(elements)
	require.NoError(t, err)
	assert.NotEmpty(t, n.SessionID)
	assert.Equal(t, 3, n.Graph.NodeCount())

	require.NoError(t, p.MapPlaces(context.Background(), n))
	require.Len(t, n.Places, 1)
	assert.Equal(t, int64(1), n.Places[0].NearestNode)

	results := p.Compare(n, 1, 3)
	require.Len(t, results, 3)
	assert.Equal(t, routing.NameDijkstra, results[0].Algorithm)
	base := results[0].Result
	require.True(t, base.Found)
	assert.Equal(t, []int64{1, 2, 3}, base.Path)
	for _, r := range results[1:] {
		require.True(t, r.Result.Found, r.Algorithm)
		assert.InDelta(t, base.TotalCost, r.Result.TotalCost, 1e-9, r.Algorithm)
	}
}

func TestHeuristicSpeed_AutoUsesMaxCategory(t *testing.T) {
	p := New(testConfig(), &fakeClient{}, nil)
	assert.Equal(t, 45.0, p.HeuristicSpeed())

	cfg := testConfig()
	cfg.Routing.HeuristicSpeed = 120
	p = New(cfg, &fakeClient{}, nil)
	assert.Equal(t, 120.0, p.HeuristicSpeed())
}

func TestNearestNode_Coordinate(t *testing.T) {
	p := New(testConfig(), &fakeClient{elements: cornicheElements()}, nil)
	n, err := p.BuildNetwork(cornicheElements())
	require.NoError(t, err)

	id, err := p.NearestNode(n, geo.Coordinate{Lat: 26.2849, Lon: 50.2099})
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
}
