package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pixfetch/pkg/fetcher"
	"pixfetch/pkg/logger"
	"pixfetch/pkg/ui"
)

var searchCount int

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search Pexels and preview results without downloading",
	Long: `Search the Pexels photo library and print a preview of the results.

No images are downloaded. Use 'pixfetch fetch' to download results as
a zip archive.`,
	Example: `  # Preview the first 10 results
  pixfetch search mountains

  # Preview more results
  pixfetch search "northern lights" --count 50`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runSearch(cmd, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVarP(&searchCount, "count", "n", 10, "number of results to request (1-1000)")
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.TrimSpace(args[0])
	ui.PrintInfo("Query", query)

	flags := make(map[string]interface{})
	if searchCount != 10 {
		flags["count"] = searchCount
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	cfg := loadConfig(flags)

	resolveAPIKey(cfg)

	f := fetcher.New(cfg)

	descriptors, err := f.Search(query, cfg.Archive.Count)
	if err != nil {
		logger.WithError(err).WithField("query", query).Error("Search failed")
		ui.PrintError("Search failed", err.Error())
		os.Exit(1)
	}

	if len(descriptors) == 0 {
		ui.PrintWarning("No results found for query", query)
		return
	}

	window := descriptors
	if len(window) > fetcher.MaxPreview {
		window = window[:fetcher.MaxPreview]
	}
	ui.TerminalPreview{}.RenderPreview(window, len(descriptors))
}
