package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/route-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "route-cli",
	Short: "Road-network route planner",
	Long:  "Fetches OpenStreetMap road data for a region, builds a travel-time graph, and compares Dijkstra, A* and bidirectional Dijkstra on real routes.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
