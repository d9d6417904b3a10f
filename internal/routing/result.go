// Package routing implements three label-setting shortest-path algorithms
// (Dijkstra, A*, bidirectional Dijkstra) over the road graph, plus the
// instrumented runner that makes their results comparable.
package routing

import "time"

// PathResult is the outcome of one shortest-path query. An unreachable
// target yields Found=false with a nil path; it is a normal outcome, not an
// error.
type PathResult struct {
	// Path is the node sequence from start to target inclusive.
	Path []int64
	// TotalCost is the path cost in minutes. Undefined when !Found.
	TotalCost float64
	// NodesExplored counts non-stale priority-queue extractions.
	NodesExplored int
	// Found reports whether a path exists.
	Found bool
}

// noPath returns the unreachable outcome, preserving the exploration count.
func noPath(explored int) PathResult {
	return PathResult{NodesExplored: explored}
}

// ComparisonResult wraps one algorithm invocation with instrumentation so
// the reporting layer can compare variants apples-to-apples.
type ComparisonResult struct {
	Algorithm       string
	TimeComplexity  string
	SpaceComplexity string
	Description     string
	Result          PathResult
	Elapsed         time.Duration
}

// PathLength returns the node count of the found path, zero otherwise.
func (c ComparisonResult) PathLength() int {
	return len(c.Result.Path)
}
