package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/route-cli/internal/geo"
	"github.com/sells-group/route-cli/internal/planner"
	"github.com/sells-group/route-cli/internal/report"
	"github.com/sells-group/route-cli/internal/routing"
)

var (
	routeBBox string
	routeFrom string
	routeTo   string
	routeJSON bool
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Compare algorithms on a route without prompts",
	Long:  "Fetches the road network for --bbox, snaps --from and --to to their nearest road nodes, and runs the full algorithm comparison.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		box, err := parseBBox(routeBBox)
		if err != nil {
			return err
		}
		from, err := parseCoordinate(routeFrom)
		if err != nil {
			return eris.Wrap(err, "--from")
		}
		to, err := parseCoordinate(routeTo)
		if err != nil {
			return eris.Wrap(err, "--to")
		}

		env := initEnv(ctx)
		defer env.Close()

		elements, err := env.planner.FetchElements(ctx, box)
		if err != nil {
			return err
		}
		n, err := env.planner.BuildNetwork(elements)
		if err != nil {
			return err
		}

		startNode, err := env.planner.NearestNode(n, from)
		if err != nil {
			return err
		}
		targetNode, err := env.planner.NearestNode(n, to)
		if err != nil {
			return err
		}

		results := env.planner.Compare(n, startNode, targetNode)

		if routeJSON {
			return json.NewEncoder(os.Stdout).Encode(routeResponse(n, startNode, targetNode, results))
		}

		fmt.Printf("Route: node %d -> node %d\n\n", startNode, targetNode)
		report.Performance(os.Stdout, results, n.Graph.NodeCount(), n.Graph.EdgeCount())
		report.RouteComparison(os.Stdout, results)
		report.MapsLinks(os.Stdout, results, n.Coords)
		return nil
	},
}

// routeResult is the machine-readable form of one algorithm run.
type routeResult struct {
	Algorithm     string  `json:"algorithm"`
	Found         bool    `json:"found"`
	TravelTimeMin float64 `json:"travel_time_min"`
	NodesExplored int     `json:"nodes_explored"`
	ElapsedMS     float64 `json:"elapsed_ms"`
	Path          []int64 `json:"path,omitempty"`
	MapsURL       string  `json:"maps_url,omitempty"`
}

type routeReply struct {
	SessionID  string        `json:"session_id"`
	StartNode  int64         `json:"start_node"`
	TargetNode int64         `json:"target_node"`
	Vertices   int           `json:"vertices"`
	Edges      int           `json:"edges"`
	Results    []routeResult `json:"results"`
}

func routeResponse(n *planner.Network, start, target int64, results []routing.ComparisonResult) routeReply {
	reply := routeReply{
		SessionID:  n.SessionID,
		StartNode:  start,
		TargetNode: target,
		Vertices:   n.Graph.NodeCount(),
		Edges:      n.Graph.EdgeCount(),
	}
	for _, r := range results {
		rr := routeResult{
			Algorithm:     r.Algorithm,
			Found:         r.Result.Found,
			NodesExplored: r.Result.NodesExplored,
			ElapsedMS:     float64(r.Elapsed.Microseconds()) / 1000.0,
		}
		if r.Result.Found {
			rr.TravelTimeMin = r.Result.TotalCost
			rr.Path = r.Result.Path
			rr.MapsURL = report.GoogleMapsURL(r.Result.Path, n.Coords)
		}
		reply.Results = append(reply.Results, rr)
	}
	return reply
}

func parseBBox(s string) (geo.BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geo.BoundingBox{}, eris.Errorf("--bbox: expected south,west,north,east, got %q", s)
	}
	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geo.BoundingBox{}, eris.Wrapf(err, "--bbox: field %q", part)
		}
		vals[i] = v
	}
	box := geo.BoundingBox{South: vals[0], West: vals[1], North: vals[2], East: vals[3]}
	if err := box.Validate(); err != nil {
		return geo.BoundingBox{}, eris.Wrap(err, "--bbox")
	}
	return box, nil
}

func parseCoordinate(s string) (geo.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geo.Coordinate{}, eris.Errorf("expected lat,lon, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geo.Coordinate{}, eris.Wrapf(err, "latitude %q", parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geo.Coordinate{}, eris.Wrapf(err, "longitude %q", parts[1])
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return geo.Coordinate{}, eris.Errorf("coordinate out of range: %q", s)
	}
	return geo.Coordinate{Lat: lat, Lon: lon}, nil
}

func init() {
	routeCmd.Flags().StringVar(&routeBBox, "bbox", "", "query region as south,west,north,east (required)")
	routeCmd.Flags().StringVar(&routeFrom, "from", "", "start coordinate as lat,lon (required)")
	routeCmd.Flags().StringVar(&routeTo, "to", "", "destination coordinate as lat,lon (required)")
	routeCmd.Flags().BoolVar(&routeJSON, "json", false, "emit machine-readable JSON instead of tables")
	routeCmd.MarkFlagRequired("bbox") //nolint:errcheck
	routeCmd.MarkFlagRequired("from") //nolint:errcheck
	routeCmd.MarkFlagRequired("to")   //nolint:errcheck
	rootCmd.AddCommand(routeCmd)
}
