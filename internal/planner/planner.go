// Package planner orchestrates one query session: fetch raw map data (with
// caching), build the road network, map places onto it, and run the
// algorithm comparison.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/route-cli/internal/config"
	"github.com/sells-group/route-cli/internal/geo"
	"github.com/sells-group/route-cli/internal/graph"
	"github.com/sells-group/route-cli/internal/routing"
	"github.com/sells-group/route-cli/internal/store"
	"github.com/sells-group/route-cli/pkg/overpass"
)

// ErrEmptyGraph is returned when a region yields no routable road network.
var ErrEmptyGraph = errors.New("planner: no road graph in region")

// Planner wires the fetch, build, map and compare stages of a session.
type Planner struct {
	client  overpass.Client
	cache   *store.ResponseCache // nil disables caching
	cfg     *config.Config
	builder *graph.Builder
}

// New creates a Planner. The cache may be nil.
func New(cfg *config.Config, client overpass.Client, cache *store.ResponseCache) *Planner {
	return &Planner{
		client:  client,
		cache:   cache,
		cfg:     cfg,
		builder: graph.NewBuilder(cfg.Routing.RoadSpeeds, cfg.Routing.IntersectionDelay),
	}
}

// Network is the immutable per-session road network snapshot.
type Network struct {
	SessionID string
	Graph     *graph.Graph
	Coords    map[int64]geo.Coordinate
	Places    []graph.Place
}

// FetchElements returns the raw elements for a region, consulting the
// response cache before going to the network.
func (p *Planner) FetchElements(ctx context.Context, box geo.BoundingBox) ([]overpass.Element, error) {
	region := box.String()

	if p.cache != nil {
		payload, hit, err := p.cache.Get(ctx, region)
		if err != nil {
			zap.L().Warn("planner: cache lookup failed", zap.Error(err))
		} else if hit {
			var elements []overpass.Element
			if err := json.Unmarshal(payload, &elements); err == nil {
				zap.L().Info("planner: cache hit", zap.String("region", region),
					zap.Int("elements", len(elements)))
				return elements, nil
			}
			zap.L().Warn("planner: discarding corrupt cache entry", zap.String("region", region))
		}
	}

	elements, err := p.client.Fetch(ctx, box)
	if err != nil {
		return nil, eris.Wrap(err, "planner: fetch elements")
	}

	if p.cache != nil {
		payload, err := json.Marshal(elements)
		if err == nil {
			ttl := time.Duration(p.cfg.Cache.TTLHours) * time.Hour
			if err := p.cache.Put(ctx, region, payload, ttl); err != nil {
				zap.L().Warn("planner: cache store failed", zap.Error(err))
			}
		}
	}
	return elements, nil
}

// BuildNetwork constructs the session network. A region without any
// routable roads yields ErrEmptyGraph.
func (p *Planner) BuildNetwork(elements []overpass.Element) (*Network, error) {
	res := p.builder.Build(elements)
	if res.Graph.NodeCount() == 0 {
		return nil, ErrEmptyGraph
	}
	return &Network{
		SessionID: uuid.New().String(),
		Graph:     res.Graph,
		Coords:    res.Coords,
		Places:    res.Places,
	}, nil
}

// MapPlaces resolves every candidate place to its nearest road node and
// stores the result back on the network.
func (p *Planner) MapPlaces(ctx context.Context, n *Network) error {
	mapped, err := graph.MapPlaces(ctx, n.Places, n.Graph.Nodes(), n.Coords, p.cfg.Mapper.MaxWorkers)
	if err != nil {
		return eris.Wrap(err, "planner: map places")
	}
	n.Places = mapped
	return nil
}

// NearestNode resolves an arbitrary coordinate to the closest road node.
func (p *Planner) NearestNode(n *Network, coord geo.Coordinate) (int64, error) {
	return graph.NearestNode(coord, n.Graph.Nodes(), n.Coords)
}

// HeuristicSpeed returns the configured A* speed, falling back to the
// fastest road-category speed so the heuristic never overestimates.
func (p *Planner) HeuristicSpeed() float64 {
	if s := p.cfg.Routing.HeuristicSpeed; s > 0 {
		return s
	}
	return p.builder.MaxSpeed()
}

// Compare runs all three algorithms on the same query and returns their
// instrumented results in a fixed order.
func (p *Planner) Compare(n *Network, start, target int64) []routing.ComparisonResult {
	algs := routing.Algorithms(n.Coords, p.HeuristicSpeed())
	results := make([]routing.ComparisonResult, 0, len(algs))
	for _, alg := range algs {
		res := routing.Run(alg, n.Graph, start, target)
		zap.L().Info("planner: algorithm run",
			zap.String("session", n.SessionID),
			zap.String("algorithm", res.Algorithm),
			zap.Bool("found", res.Result.Found),
			zap.Float64("cost_min", res.Result.TotalCost),
			zap.Int("nodes_explored", res.Result.NodesExplored),
			zap.Duration("elapsed", res.Elapsed),
		)
		results = append(results, res)
	}
	return results
}
