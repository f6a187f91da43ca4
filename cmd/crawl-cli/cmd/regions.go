package cmd

import (
	"fmt"
	"os"

	"escapelog-backend/services/crawler"
	"escapelog-backend/services/crawler/region"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(regionsCmd)
	regionsCmd.AddCommand(normalizeCmd)
	regionsCmd.AddCommand(similarCmd)
}

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Region inspection utilities.",
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <location>...",
	Short: "Prints the canonical region for each given raw location string.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Raw", "Region"})

		for _, raw := range args {
			t.AppendRow(table.Row{raw, region.Normalize(raw)})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}

var similarCmd = &cobra.Command{
	Use:   "similar",
	Short: "Prints pairs of catalog regions that look like duplicates of each other.",
	Run: func(cmd *cobra.Command, args []string) {
		var pairs []crawler.RegionPair
		res, err := requireClient().R().
			SetContext(cmd.Context()).
			SetResult(&pairs).
			Get("/regions/similar")
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		if res.IsError() {
			fmt.Fprintf(os.Stderr, "%s: %s\n", res.Status(), res.String())
			os.Exit(1)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Region", "Region", "Similarity"})

		for _, p := range pairs {
			t.AppendRow(table.Row{p.Left, p.Right, fmt.Sprintf("%.3f", p.Similarity)})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
