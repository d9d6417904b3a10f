package routing

import (
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/route-cli/internal/geo"
	"github.com/sells-group/route-cli/internal/graph"
)

// Algorithm names as shown in comparison output.
const (
	NameDijkstra      = "Dijkstra"
	NameAStar         = "A* (A-Star)"
	NameBidirectional = "Bidirectional Dijkstra"
)

// Algorithm is one runnable shortest-path variant with its display metadata.
type Algorithm struct {
	Name            string
	TimeComplexity  string
	SpaceComplexity string
	Description     string
	run             func(g *graph.Graph, start, target int64) PathResult
}

// Algorithms returns the three comparison variants. The coordinate table
// and heuristic speed are captured for the A* heuristic; the other variants
// ignore them.
func Algorithms(coords map[int64]geo.Coordinate, heuristicSpeed float64) []Algorithm {
	return []Algorithm{
		{
			Name:            NameDijkstra,
			TimeComplexity:  "O((V + E) log V)",
			SpaceComplexity: "O(V)",
			Description:     "Classic shortest path. Explores all directions equally until target found.",
			run:             Dijkstra,
		},
		{
			Name:            NameAStar,
			TimeComplexity:  "O((V + E) log V)*",
			SpaceComplexity: "O(V)",
			Description:     "Heuristic-guided search. Uses straight-line distance to prioritize promising paths.",
			run: func(g *graph.Graph, start, target int64) PathResult {
				return AStar(g, coords, heuristicSpeed, start, target)
			},
		},
		{
			Name:            NameBidirectional,
			TimeComplexity:  "O((V + E) log V)",
			SpaceComplexity: "O(V)",
			Description:     "Searches from both ends simultaneously, meeting in the middle.",
			run:             BidirectionalDijkstra,
		},
	}
}

// Run executes one algorithm, measuring wall-clock time around the call,
// and normalizes the outcome for comparison. No algorithmic logic lives
// here beyond instrumentation.
func Run(alg Algorithm, g *graph.Graph, start, target int64) ComparisonResult {
	began := time.Now()
	result := alg.run(g, start, target)
	elapsed := time.Since(began)

	zap.L().Debug("algorithm finished",
		zap.String("algorithm", alg.Name),
		zap.Bool("found", result.Found),
		zap.Int("nodes_explored", result.NodesExplored),
		zap.Duration("elapsed", elapsed),
	)

	return ComparisonResult{
		Algorithm:       alg.Name,
		TimeComplexity:  alg.TimeComplexity,
		SpaceComplexity: alg.SpaceComplexity,
		Description:     alg.Description,
		Result:          result,
		Elapsed:         elapsed,
	}
}
