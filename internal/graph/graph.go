// Package graph builds and holds the time-weighted directed road network
// derived from raw Overpass elements, and maps points of interest onto it.
package graph

import (
	"sort"

	"github.com/sells-group/route-cli/internal/geo"
)

// Arc is one outgoing edge: target node and traversal cost in minutes.
// Weights are strictly positive because a flat intersection delay is added
// on top of the distance term.
type Arc struct {
	To     int64
	Weight float64
}

// Graph is a directed adjacency structure over OSM node IDs. It is built
// once per query session and never mutated afterwards, so concurrent
// read-only path queries are safe.
type Graph struct {
	adj       map[int64][]Arc
	edgeCount int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[int64][]Arc)}
}

// AddEdge appends a directed edge. Both endpoints gain an adjacency entry so
// sink-only nodes are still routable targets. Parallel edges are kept as-is.
func (g *Graph) AddEdge(from, to int64, weight float64) {
	g.adj[from] = append(g.adj[from], Arc{To: to, Weight: weight})
	if _, ok := g.adj[to]; !ok {
		g.adj[to] = nil
	}
	g.edgeCount++
}

// Neighbors returns the outgoing arcs of a node in insertion order. Unknown
// nodes yield nil.
func (g *Graph) Neighbors(id int64) []Arc {
	return g.adj[id]
}

// HasNode reports whether the node is an endpoint of any edge.
func (g *Graph) HasNode(id int64) bool {
	_, ok := g.adj[id]
	return ok
}

// NodeCount returns the number of distinct edge endpoints.
func (g *Graph) NodeCount() int {
	return len(g.adj)
}

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Nodes returns all node IDs in ascending order. The fixed order keeps
// nearest-node tie-breaking and tests deterministic.
func (g *Graph) Nodes() []int64 {
	ids := make([]int64, 0, len(g.adj))
	for id := range g.adj {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Reverse returns a new graph with every edge's endpoints swapped, used by
// the backward half of bidirectional search.
func (g *Graph) Reverse() *Graph {
	rev := NewGraph()
	for from, arcs := range g.adj {
		if _, ok := rev.adj[from]; !ok {
			rev.adj[from] = nil
		}
		for _, a := range arcs {
			rev.AddEdge(a.To, from, a.Weight)
		}
	}
	return rev
}

// Place is a named point of interest extracted from the raw elements.
// NearestNode is zero until the mapper assigns it.
type Place struct {
	ID          int64
	Name        string
	Category    string
	Coord       geo.Coordinate
	Street      string
	NearestNode int64
}
