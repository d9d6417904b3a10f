package graph

import (
	"context"
	"errors"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/route-cli/internal/geo"
)

// ErrNoRoutableNodes is returned when the graph has no nodes to map places
// onto.
var ErrNoRoutableNodes = errors.New("graph: no routable nodes")

// DefaultMaxWorkers caps the nearest-node worker pool.
const DefaultMaxWorkers = 8

// NearestNode returns the graph node closest to the coordinate by
// great-circle distance. Exact ties break toward the smallest node ID so
// repeated runs pick the same node regardless of input order.
func NearestNode(coord geo.Coordinate, nodeIDs []int64, coords map[int64]geo.Coordinate) (int64, error) {
	if len(nodeIDs) == 0 {
		return 0, ErrNoRoutableNodes
	}

	var (
		bestID   int64
		bestDist float64
		found    bool
	)
	for _, id := range nodeIDs {
		c, ok := coords[id]
		if !ok {
			continue
		}
		d := geo.Haversine(coord, c)
		switch {
		case !found, d < bestDist:
			bestID, bestDist, found = id, d, true
		case d == bestDist && id < bestID:
			bestID = id
		}
	}
	if !found {
		return 0, ErrNoRoutableNodes
	}
	return bestID, nil
}

// MapPlaces assigns each place its nearest graph node, fanning the
// brute-force scans out over a bounded worker pool. Workers share only the
// immutable node list and coordinate table and each writes a disjoint index
// of the output slice, so no locking is needed.
func MapPlaces(ctx context.Context, places []Place, nodeIDs []int64, coords map[int64]geo.Coordinate, maxWorkers int) ([]Place, error) {
	if len(nodeIDs) == 0 {
		return nil, ErrNoRoutableNodes
	}
	if len(places) == 0 {
		return nil, nil
	}

	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}
	workers := runtime.GOMAXPROCS(0)
	if len(places) < workers {
		workers = len(places)
	}
	if maxWorkers < workers {
		workers = maxWorkers
	}

	zap.L().Info("mapping places to nearest road nodes",
		zap.Int("places", len(places)),
		zap.Int("nodes", len(nodeIDs)),
		zap.Int("workers", workers),
	)

	mapped := make([]Place, len(places))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, place := range places {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			nearest, err := NearestNode(place.Coord, nodeIDs, coords)
			if err != nil {
				return err
			}
			place.NearestNode = nearest
			mapped[i] = place
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mapped, nil
}
