// Package geo provides coordinate types and great-circle distance math
// shared by the graph builder, the routing heuristics, and the API clients.
package geo

import (
	"fmt"
	"math"

	"github.com/rotisserie/eris"
)

// earthRadiusKM is the mean Earth radius used by the haversine formula.
const earthRadiusKM = 6371.0

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Haversine returns the great-circle distance between two coordinates in
// kilometers.
func Haversine(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}

// BoundingBox is a south/west/north/east query region in degrees.
type BoundingBox struct {
	South float64
	West  float64
	North float64
	East  float64
}

// Validate checks coordinate ranges and corner ordering.
func (b BoundingBox) Validate() error {
	if b.South < -90 || b.North > 90 {
		return eris.Errorf("geo: latitude out of range in bbox %v", b)
	}
	if b.West < -180 || b.East > 180 {
		return eris.Errorf("geo: longitude out of range in bbox %v", b)
	}
	if b.South >= b.North || b.West >= b.East {
		return eris.Errorf("geo: inverted bbox %v", b)
	}
	return nil
}

// String renders the box as "south,west,north,east", the order Overpass
// expects inside a query.
func (b BoundingBox) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", b.South, b.West, b.North, b.East)
}
