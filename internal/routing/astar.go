package routing

import (
	"go.uber.org/zap"

	"github.com/sells-group/route-cli/internal/geo"
	"github.com/sells-group/route-cli/internal/graph"
)

// AStar runs heuristic-guided label-setting search. The heuristic is the
// great-circle distance to the target converted to minutes at heuristicSpeed
// (km/h). The heuristic stays admissible, and the result optimal, as long as
// heuristicSpeed is at least the fastest speed in the edge-weighting table;
// the planner passes the table maximum for exactly that reason.
//
// A start or target without a known coordinate makes the heuristic
// undefined and is reported as no-path.
func AStar(g *graph.Graph, coords map[int64]geo.Coordinate, heuristicSpeed float64, start, target int64) PathResult {
	targetCoord, okT := coords[target]
	if _, okS := coords[start]; !okS || !okT {
		return noPath(0)
	}
	if heuristicSpeed <= 0 {
		zap.L().Warn("astar: non-positive heuristic speed, degenerating to dijkstra",
			zap.Float64("speed", heuristicSpeed))
	}

	h := func(id int64) float64 {
		if heuristicSpeed <= 0 {
			return 0
		}
		c, ok := coords[id]
		if !ok {
			// Unknown intermediate coordinate: zero is always admissible.
			return 0
		}
		return geo.Haversine(c, targetCoord) / (heuristicSpeed / 60.0)
	}

	dist := map[int64]float64{start: 0}
	parents := make(map[int64]int64)

	pq := newMinQueue()
	pq.push(pqEntry{node: start, priority: h(start), tieBreak: 0})

	explored := 0
	reached := false
	for {
		e, ok := pq.pop()
		if !ok {
			break
		}
		// tieBreak carries g(n); stale when a better g was settled since.
		if e.tieBreak > dist[e.node] {
			continue
		}
		explored++
		if e.node == target {
			reached = true
			break
		}

		g_ := dist[e.node]
		for _, arc := range g.Neighbors(e.node) {
			next := g_ + arc.Weight
			if best, ok := dist[arc.To]; !ok || next < best {
				dist[arc.To] = next
				parents[arc.To] = e.node
				pq.push(pqEntry{node: arc.To, priority: next + h(arc.To), tieBreak: next})
			}
		}
	}

	if !reached {
		return noPath(explored)
	}

	path, err := walkParents(parents, target, g.NodeCount())
	if err != nil {
		zap.L().Warn("astar: path reconstruction failed", zap.Error(err))
		return noPath(explored)
	}
	return PathResult{
		Path:          path,
		TotalCost:     dist[target],
		NodesExplored: explored,
		Found:         true,
	}
}
