package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/route-cli/internal/config"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the built-in preset regions",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tNAME\tBOUNDING BOX (S,W,N,E)")
		for i, r := range config.PresetRegions {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, r.Name, r.Box)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}
