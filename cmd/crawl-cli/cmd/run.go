package cmd

import (
	"fmt"
	"os"

	"escapelog-backend/services/crawler"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run <source>",
	Short: "Triggers a crawl of the given source and prints the run summary.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var result crawler.CrawlResult
		res, err := requireClient().R().
			SetContext(cmd.Context()).
			SetResult(&result).
			Post("/crawl/" + args[0])
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
		t.AppendRows([]table.Row{
			{"Source", result.Source},
			{"Crawled", result.TotalCrawled},
			{"Inserted", result.Inserted},
			{"Skipped", result.Skipped},
			{"Posters uploaded", result.PostersUploaded},
			{"Finished at", result.CrawledAt},
		})
		t.SetStyle(table.StyleRounded)
		t.Render()

		if len(result.Errors) > 0 {
			fmt.Printf("\n%d errors:\n", len(result.Errors))
			for _, e := range result.Errors {
				fmt.Printf("  - %s\n", e)
			}
		}
	},
}
