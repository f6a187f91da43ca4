package cmd

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var baseUrl string
var token string

var rootCmd = &cobra.Command{
	Use:   "crawl-cli",
	Short: "crawl-cli is a CLI interface for the EscapeLog catalog crawl service.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&baseUrl, "base-url", os.Getenv("ESCAPELOG_BASE_URL"),
		"Base url of the crawl service.",
	)
	rootCmd.PersistentFlags().StringVar(
		&token, "token", os.Getenv("ESCAPELOG_TOKEN"),
		"Access token of the crawl service.",
	)
}

// builds the client for commands that talk to the server. commands like
// "regions normalize" run fully offline and never call this.
func requireClient() *resty.Client {
	if baseUrl == "" {
		fmt.Fprintln(os.Stderr, "You should specify the base url of the crawl service via --base-url or the environment variable ESCAPELOG_BASE_URL.")
		os.Exit(1)
	}
	client := resty.New().SetBaseURL(baseUrl)
	if token != "" {
		client.SetAuthToken(token)
	}
	return client
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
