// Package report renders the algorithm comparison for the terminal and
// builds Google Maps directions links for found routes.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sells-group/route-cli/internal/geo"
	"github.com/sells-group/route-cli/internal/routing"
)

// maxWaypoints caps the intermediate coordinates in a Google Maps URL;
// the directions endpoint rejects long waypoint lists.
const maxWaypoints = 10

// GoogleMapsURL builds a directions link following the path's coordinates.
// It returns "" when fewer than two path nodes have known coordinates.
func GoogleMapsURL(path []int64, coords map[int64]geo.Coordinate) string {
	pts := make([]geo.Coordinate, 0, len(path))
	for _, id := range path {
		if c, ok := coords[id]; ok {
			pts = append(pts, c)
		}
	}
	if len(pts) < 2 {
		return ""
	}

	origin := pts[0]
	dest := pts[len(pts)-1]

	var url strings.Builder
	url.WriteString("https://www.google.com/maps/dir/?api=1")
	fmt.Fprintf(&url, "&origin=%g,%g", origin.Lat, origin.Lon)
	fmt.Fprintf(&url, "&destination=%g,%g", dest.Lat, dest.Lon)

	waypoints := pts[1 : len(pts)-1]
	if len(waypoints) > maxWaypoints {
		waypoints = waypoints[:maxWaypoints]
	}
	if len(waypoints) > 0 {
		parts := make([]string, len(waypoints))
		for i, c := range waypoints {
			parts[i] = fmt.Sprintf("%g,%g", c.Lat, c.Lon)
		}
		url.WriteString("&waypoints=" + strings.Join(parts, "|"))
	}
	return url.String()
}

// Complexity writes the theory table: per-algorithm asymptotic bounds and a
// one-line description.
func Complexity(w io.Writer, results []routing.ComparisonResult) {
	fmt.Fprintln(w, "Algorithm Theory & Complexity")
	fmt.Fprintln(w, "  V = vertices (road intersections), E = edges (road segments)")
	fmt.Fprintln(w, "  * A* has the same worst case but typically explores fewer nodes")
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tTIME\tSPACE\tDESCRIPTION")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.Algorithm, r.TimeComplexity, r.SpaceComplexity, r.Description)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

// Performance writes the measured comparison table.
func Performance(w io.Writer, results []routing.ComparisonResult, vertices, edges int) {
	fmt.Fprintf(w, "Performance Comparison (V = %d, E = %d)\n\n", vertices, edges)

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tTRAVEL TIME\tNODES EXPLORED\tEXEC (ms)\tPATH NODES\tSTATUS")
	for _, r := range results {
		travel, pathNodes, status := "-", "-", "no path"
		if r.Result.Found {
			travel = fmt.Sprintf("%.1f min", r.Result.TotalCost)
			pathNodes = fmt.Sprintf("%d", r.PathLength())
			status = "found"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%s\t%s\n",
			r.Algorithm, travel, r.Result.NodesExplored,
			float64(r.Elapsed.Microseconds())/1000.0, pathNodes, status)
	}
	tw.Flush()
	fmt.Fprintln(w)

	successful := found(results)
	if len(successful) == 0 {
		return
	}
	fastest := successful[0]
	least := successful[0]
	for _, r := range successful[1:] {
		if r.Elapsed < fastest.Elapsed {
			fastest = r
		}
		if r.Result.NodesExplored < least.Result.NodesExplored {
			least = r
		}
	}
	fmt.Fprintf(w, "Fastest execution:      %s (%.2f ms)\n",
		fastest.Algorithm, float64(fastest.Elapsed.Microseconds())/1000.0)
	fmt.Fprintf(w, "Fewest nodes explored:  %s (%d nodes)\n",
		least.Algorithm, least.Result.NodesExplored)

	for _, r := range successful {
		if r.Algorithm == routing.NameDijkstra || r.Result.NodesExplored == 0 {
			continue
		}
		base := byName(successful, routing.NameDijkstra)
		if base == nil || base.Result.NodesExplored == 0 {
			continue
		}
		reduction := (1 - float64(r.Result.NodesExplored)/float64(base.Result.NodesExplored)) * 100
		if reduction > 0 {
			fmt.Fprintf(w, "%s explored %.1f%% fewer nodes than %s\n",
				r.Algorithm, reduction, routing.NameDijkstra)
		}
	}
	fmt.Fprintln(w)
}

// RouteComparison reports whether the variants agreed on a single route.
func RouteComparison(w io.Writer, results []routing.ComparisonResult) {
	successful := found(results)
	if len(successful) < 2 {
		return
	}

	unique := make(map[string]bool)
	costs := make(map[string]bool)
	for _, r := range successful {
		unique[pathKey(r.Result.Path)] = true
		costs[fmt.Sprintf("%.4f", r.Result.TotalCost)] = true
	}

	fmt.Fprintln(w, "Route Analysis")
	switch {
	case len(unique) == 1:
		fmt.Fprintf(w, "  All algorithms found the same route: %d nodes, %.1f min\n\n",
			successful[0].PathLength(), successful[0].Result.TotalCost)
	case len(costs) == 1:
		fmt.Fprintf(w, "  %d different routes, all with the same optimal travel time\n", len(unique))
		fmt.Fprintln(w, "  (multiple optimal paths exist in the road network)")
		details(w, successful)
	default:
		fmt.Fprintf(w, "  %d different routes with different travel times - some may be suboptimal\n", len(unique))
		details(w, successful)
	}
}

// MapsLinks writes one Google Maps directions link per found route.
func MapsLinks(w io.Writer, results []routing.ComparisonResult, coords map[int64]geo.Coordinate) {
	fmt.Fprintln(w, "Google Maps Links")
	for _, r := range results {
		if !r.Result.Found {
			fmt.Fprintf(w, "  %s: no path found\n", r.Algorithm)
			continue
		}
		url := GoogleMapsURL(r.Result.Path, coords)
		if url == "" {
			fmt.Fprintf(w, "  %s: could not build link\n", r.Algorithm)
			continue
		}
		fmt.Fprintf(w, "  %s (%.1f min):\n    %s\n", r.Algorithm, r.Result.TotalCost, url)
	}
	fmt.Fprintln(w)
}

func details(w io.Writer, results []routing.ComparisonResult) {
	for _, r := range results {
		fmt.Fprintf(w, "  - %s: %d nodes, %.2f min\n",
			r.Algorithm, r.PathLength(), r.Result.TotalCost)
	}
	fmt.Fprintln(w)
}

func found(results []routing.ComparisonResult) []routing.ComparisonResult {
	out := make([]routing.ComparisonResult, 0, len(results))
	for _, r := range results {
		if r.Result.Found {
			out = append(out, r)
		}
	}
	return out
}

func byName(results []routing.ComparisonResult, name string) *routing.ComparisonResult {
	for i := range results {
		if results[i].Algorithm == name {
			return &results[i]
		}
	}
	return nil
}

func pathKey(path []int64) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}
