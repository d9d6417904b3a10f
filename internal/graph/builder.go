package graph

import (
	"go.uber.org/zap"

	"github.com/sells-group/route-cli/internal/geo"
	"github.com/sells-group/route-cli/pkg/overpass"
)

// Popular place categories extracted from named nodes, mirroring the
// categories the planner offers for start/destination selection.
var (
	popularAmenity = map[string]bool{
		"restaurant": true, "cafe": true, "fast_food": true, "university": true,
		"hospital": true, "clinic": true, "bank": true, "atm": true,
		"place_of_worship": true, "mosque": true, "pharmacy": true,
	}
	popularShop = map[string]bool{
		"supermarket": true, "mall": true, "convenience": true,
		"clothes": true, "electronics": true, "bakery": true,
	}
	popularLeisure = map[string]bool{"park": true, "playground": true}
	popularTourism = map[string]bool{"attraction": true, "museum": true}
)

// Builder converts raw Overpass elements into a time-weighted road graph.
type Builder struct {
	// RoadSpeeds maps a highway tag value to an average speed in km/h.
	// Ways with an unlisted highway value are skipped entirely.
	RoadSpeeds map[string]float64

	// IntersectionDelay is a flat per-edge delay in minutes added on top of
	// the distance-derived travel time.
	IntersectionDelay float64
}

// NewBuilder creates a Builder with the given weighting parameters.
func NewBuilder(roadSpeeds map[string]float64, intersectionDelay float64) *Builder {
	return &Builder{RoadSpeeds: roadSpeeds, IntersectionDelay: intersectionDelay}
}

// BuildResult is the output of one graph construction pass.
type BuildResult struct {
	Graph  *Graph
	Coords map[int64]geo.Coordinate
	Places []Place
}

// Build runs the construction pass. Malformed or incomplete elements are
// dropped silently; an empty graph is a valid result the caller must check.
func (b *Builder) Build(elements []overpass.Element) *BuildResult {
	coords := make(map[int64]geo.Coordinate)
	for _, el := range elements {
		if el.Type == overpass.TypeNode {
			coords[el.ID] = geo.Coordinate{Lat: el.Lat, Lon: el.Lon}
		}
	}

	g := NewGraph()
	var places []Place
	for _, el := range elements {
		switch el.Type {
		case overpass.TypeWay:
			b.addWay(g, el, coords)
		case overpass.TypeNode:
			if p, ok := extractPlace(el, coords); ok {
				places = append(places, p)
			}
		}
	}

	zap.L().Info("graph built",
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
		zap.Int("places", len(places)),
	)
	return &BuildResult{Graph: g, Coords: coords, Places: places}
}

// MaxSpeed returns the fastest speed in the weighting table. The A*
// heuristic must assume at least this speed to stay admissible.
func (b *Builder) MaxSpeed() float64 {
	var max float64
	for _, s := range b.RoadSpeeds {
		if s > max {
			max = s
		}
	}
	return max
}

// addWay emits edges for each consecutive node pair of a highway way.
func (b *Builder) addWay(g *Graph, el overpass.Element, coords map[int64]geo.Coordinate) {
	speed, ok := b.RoadSpeeds[el.Tags["highway"]]
	if !ok || speed <= 0 {
		return
	}
	oneway := el.Tags["oneway"]

	for i := 0; i+1 < len(el.Nodes); i++ {
		u, v := el.Nodes[i], el.Nodes[i+1]
		cu, okU := coords[u]
		cv, okV := coords[v]
		if !okU || !okV {
			continue
		}

		distKM := geo.Haversine(cu, cv)
		minutes := distKM/(speed/60.0) + b.IntersectionDelay

		switch oneway {
		case "yes":
			g.AddEdge(u, v, minutes)
		case "-1":
			g.AddEdge(v, u, minutes)
		default:
			g.AddEdge(u, v, minutes)
			g.AddEdge(v, u, minutes)
		}
	}
}

// extractPlace returns a candidate Place when a named node carries one of
// the popular category tags and has a known coordinate.
func extractPlace(el overpass.Element, coords map[int64]geo.Coordinate) (Place, bool) {
	name := el.Tags["name"]
	if name == "" {
		return Place{}, false
	}

	var category string
	switch {
	case popularAmenity[el.Tags["amenity"]]:
		category = el.Tags["amenity"]
	case popularShop[el.Tags["shop"]]:
		category = "shop:" + el.Tags["shop"]
	case popularLeisure[el.Tags["leisure"]]:
		category = el.Tags["leisure"]
	case popularTourism[el.Tags["tourism"]]:
		category = el.Tags["tourism"]
	default:
		return Place{}, false
	}

	coord, ok := coords[el.ID]
	if !ok {
		return Place{}, false
	}
	return Place{
		ID:       el.ID,
		Name:     name,
		Category: category,
		Coord:    coord,
		Street:   el.Tags["addr:street"],
	}, true
}
