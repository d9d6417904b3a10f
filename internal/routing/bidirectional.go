package routing

import (
	"math"

	"go.uber.org/zap"

	"github.com/sells-group/route-cli/internal/graph"
)

// searchSide holds the per-direction state of bidirectional search.
type searchSide struct {
	g       *graph.Graph
	dist    map[int64]float64
	parents map[int64]int64
	pq      *minQueue
}

func newSearchSide(g *graph.Graph, origin int64) *searchSide {
	s := &searchSide{
		g:       g,
		dist:    map[int64]float64{origin: 0},
		parents: make(map[int64]int64),
		pq:      newMinQueue(),
	}
	s.pq.push(pqEntry{node: origin, priority: 0})
	return s
}

// settle extracts and relaxes one node. It returns the settled node and
// false when the queue produced only stale entries or ran dry.
func (s *searchSide) settle() (int64, bool) {
	for {
		e, ok := s.pq.pop()
		if !ok {
			return 0, false
		}
		if e.priority > s.dist[e.node] {
			continue
		}
		for _, arc := range s.g.Neighbors(e.node) {
			next := e.priority + arc.Weight
			if best, ok := s.dist[arc.To]; !ok || next < best {
				s.dist[arc.To] = next
				s.parents[arc.To] = e.node
				s.pq.push(pqEntry{node: arc.To, priority: next})
			}
		}
		return e.node, true
	}
}

// BidirectionalDijkstra searches forward from start and backward from target
// over the reversed graph simultaneously. It stops once the sum of the two
// frontiers' minimum priorities reaches the best start-to-target candidate
// seen so far, which guarantees that candidate is globally optimal.
func BidirectionalDijkstra(g *graph.Graph, start, target int64) PathResult {
	fwd := newSearchSide(g, start)
	bwd := newSearchSide(g.Reverse(), target)

	best := math.Inf(1)
	var meeting int64
	haveMeeting := false
	explored := 0

	for {
		fMin, fOK := fwd.pq.peekPriority()
		bMin, bOK := bwd.pq.peekPriority()
		if !fOK && !bOK {
			break
		}
		// An empty side contributes +inf, so a finite candidate ends the
		// search as soon as the other frontier alone exceeds it.
		sum := math.Inf(1)
		if fOK && bOK {
			sum = fMin + bMin
		}
		if haveMeeting && sum >= best {
			break
		}

		// Expand the side with the cheaper frontier.
		side, other := fwd, bwd
		if !fOK || (bOK && bMin < fMin) {
			side, other = bwd, fwd
		}

		node, ok := side.settle()
		if !ok {
			continue
		}
		explored++

		// Any node reached (not necessarily settled) by the opposite search
		// closes a candidate path through it.
		if od, ok := other.dist[node]; ok {
			if cand := side.dist[node] + od; cand < best {
				best = cand
				meeting = node
				haveMeeting = true
			}
		}
	}

	if !haveMeeting {
		return noPath(explored)
	}

	bound := g.NodeCount()
	fwdHalf, err := walkParents(fwd.parents, meeting, bound)
	if err != nil {
		zap.L().Warn("bidirectional: forward reconstruction failed", zap.Error(err))
		return noPath(explored)
	}
	bwdHalf, err := walkParents(bwd.parents, meeting, bound)
	if err != nil {
		zap.L().Warn("bidirectional: backward reconstruction failed", zap.Error(err))
		return noPath(explored)
	}

	// Forward half arrives start..meeting; the backward walk arrives
	// target..meeting, which reversed reads meeting..target. Drop the
	// duplicated meeting node when concatenating.
	path := make([]int64, 0, len(fwdHalf)+len(bwdHalf)-1)
	path = append(path, fwdHalf...)
	for i := len(bwdHalf) - 2; i >= 0; i-- {
		path = append(path, bwdHalf[i])
	}

	return PathResult{
		Path:          path,
		TotalCost:     best,
		NodesExplored: explored,
		Found:         true,
	}
}
