package routing

import (
	"go.uber.org/zap"

	"github.com/sells-group/route-cli/internal/graph"
)

// Dijkstra runs plain label-setting search from start to target and returns
// the minimum-cost path. Early exit at the target is valid because all edge
// weights are strictly positive.
func Dijkstra(g *graph.Graph, start, target int64) PathResult {
	dist := map[int64]float64{start: 0}
	parents := make(map[int64]int64)

	pq := newMinQueue()
	pq.push(pqEntry{node: start, priority: 0})

	explored := 0
	reached := false
	for {
		e, ok := pq.pop()
		if !ok {
			break
		}
		// Stale entry: a shorter distance was settled after this was pushed.
		if e.priority > dist[e.node] {
			continue
		}
		explored++
		if e.node == target {
			reached = true
			break
		}

		for _, arc := range g.Neighbors(e.node) {
			next := e.priority + arc.Weight
			if best, ok := dist[arc.To]; !ok || next < best {
				dist[arc.To] = next
				parents[arc.To] = e.node
				pq.push(pqEntry{node: arc.To, priority: next})
			}
		}
	}

	if !reached {
		return noPath(explored)
	}

	path, err := walkParents(parents, target, g.NodeCount())
	if err != nil {
		zap.L().Warn("dijkstra: path reconstruction failed", zap.Error(err))
		return noPath(explored)
	}
	return PathResult{
		Path:          path,
		TotalCost:     dist[target],
		NodesExplored: explored,
		Found:         true,
	}
}
