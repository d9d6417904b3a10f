package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/route-cli/internal/geo"
	"github.com/sells-group/route-cli/internal/report"
	"github.com/sells-group/route-cli/internal/ui"
	"github.com/sells-group/route-cli/pkg/nominatim"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Interactively plan a route and compare algorithms",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env := initEnv(ctx)
		defer env.Close()

		prompter := ui.NewPrompter(os.Stdin, os.Stdout)
		geocoder := boundGeocoder{
			ctx: ctx,
			client: nominatim.NewClient(
				nominatim.WithBaseURL(cfg.Nominatim.BaseURL),
				nominatim.WithRateLimit(cfg.Nominatim.RateRPS),
			),
		}

		box, err := prompter.SelectRegion(geocoder)
		if err != nil {
			return err
		}

		fmt.Println("Fetching map data...")
		elements, err := env.planner.FetchElements(ctx, box)
		if err != nil {
			return err
		}

		n, err := env.planner.BuildNetwork(elements)
		if err != nil {
			return err
		}
		fmt.Printf("Road network: %d nodes, %d edges\n", n.Graph.NodeCount(), n.Graph.EdgeCount())

		if err := env.planner.MapPlaces(ctx, n); err != nil {
			return err
		}
		if len(n.Places) < 2 {
			return errors.New("need at least two named popular places in the region; try a larger area")
		}
		fmt.Printf("Found %d popular places\n\n", len(n.Places))

		start, err := prompter.SelectPlace(n.Places, "start")
		if err != nil {
			return err
		}
		var dest = start
		for dest.ID == start.ID {
			if dest, err = prompter.SelectPlace(n.Places, "destination"); err != nil {
				return err
			}
			if dest.ID == start.ID {
				fmt.Println("Destination must differ from the start place.")
			}
		}

		zap.L().Info("planning route",
			zap.String("session", n.SessionID),
			zap.String("start", start.Name),
			zap.String("destination", dest.Name),
		)

		results := env.planner.Compare(n, start.NearestNode, dest.NearestNode)

		fmt.Printf("\nRoute: %s -> %s\n\n", start.Name, dest.Name)
		report.Complexity(os.Stdout, results)
		report.Performance(os.Stdout, results, n.Graph.NodeCount(), n.Graph.EdgeCount())
		report.RouteComparison(os.Stdout, results)
		report.MapsLinks(os.Stdout, results, n.Coords)

		return nil
	},
}

// boundGeocoder adapts the context-taking Nominatim client to the prompt
// flow, which has no context of its own.
type boundGeocoder struct {
	ctx    context.Context
	client nominatim.Client
}

func (g boundGeocoder) SearchBoundingBox(query string) (geo.BoundingBox, bool, error) {
	return g.client.SearchBoundingBox(g.ctx, query)
}

func init() {
	rootCmd.AddCommand(planCmd)
}
