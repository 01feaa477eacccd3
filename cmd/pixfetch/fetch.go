package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pixfetch/pkg/auth"
	"pixfetch/pkg/config"
	"pixfetch/pkg/fetcher"
	"pixfetch/pkg/logger"
	"pixfetch/pkg/media"
	"pixfetch/pkg/storage"
	"pixfetch/pkg/ui"
	"pixfetch/pkg/ui/tui"
)

var (
	// Fetch command flags
	outputDir   string
	concurrent  int
	count       int
	resolution  string
	timeout     int
	accountName string
	overwrite   bool
	skipPreview bool
	useTUI      bool
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <query>",
	Short: "Search Pexels and download results as a zip archive",
	Long: `Search the Pexels photo library and download the matching images into
a single zip archive named after the query.

This command requires a Pexels API key, provided through:
  - Stored credentials (use 'pixfetch auth login' to store)
  - Environment variables (PIXFETCH_API_KEY or PEXELS_API_KEY)
  - Configuration file

Images that fail to download are skipped; the archive contains every
image that succeeded. An archive with zero entries is an error.`,
	Example: `  # Download 10 images of mountains at original resolution
  pixfetch fetch mountains

  # Download 50 medium-resolution images to a specific directory
  pixfetch fetch "northern lights" --count 50 --resolution medium --output ./photos

  # Browse results interactively before downloading
  pixfetch fetch sunsets --tui

  # Skip the preview listing entirely
  pixfetch fetch cats --no-preview`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runFetch(cmd, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for the archive (default: ./downloads)")
	fetchCmd.Flags().IntVar(&concurrent, "concurrent", 4, "number of concurrent downloads (1-8)")
	fetchCmd.Flags().IntVarP(&count, "count", "n", 10, "number of images to download (1-1000)")
	fetchCmd.Flags().StringVarP(&resolution, "resolution", "r", "original", "image resolution (small, medium, large, original)")
	fetchCmd.Flags().IntVar(&timeout, "timeout", 10, "request timeout in seconds")
	fetchCmd.Flags().StringVarP(&accountName, "account", "a", "", "use a specific stored API key")
	fetchCmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite an existing archive instead of renaming")
	fetchCmd.Flags().BoolVar(&skipPreview, "no-preview", false, "skip the result preview listing")
	fetchCmd.Flags().BoolVar(&useTUI, "tui", false, "browse results interactively before downloading")
}

func runFetch(cmd *cobra.Command, args []string) {
	query := strings.TrimSpace(args[0])

	if !useTUI {
		ui.PrintInfo("Query", query)
	}

	cfg := loadFetchConfig()

	res, err := media.ParseResolution(cfg.Archive.Resolution)
	if err != nil {
		ui.PrintError("Invalid resolution", err.Error())
		os.Exit(1)
	}

	resolveAPIKey(cfg)

	logger.WithField("version", version).Info("pixfetch starting")
	logger.WithFields(map[string]interface{}{
		"query":      query,
		"count":      cfg.Archive.Count,
		"resolution": string(res),
	}).Info("Starting fetch operation")

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

	if useTUI {
		confirmed, err := tui.Browse(query, res, window, len(descriptors))
		if err != nil {
			ui.PrintError("Result browser failed", err.Error())
			os.Exit(1)
		}
		if !confirmed {
			ui.PrintWarning("Download cancelled")
			return
		}
	} else if !skipPreview {
		ui.TerminalPreview{}.RenderPreview(window, len(descriptors))
	}

	progress := ui.NewProgressDisplay(len(descriptors))
	result, err := f.BuildArchive(query, descriptors, res, func(id string, success bool) {
		progress.Update(success)
	})
	if err != nil {
		logger.WithError(err).WithField("query", query).Error("Archive build failed")
		ui.PrintError("Archive build failed", err.Error())
		os.Exit(1)
	}
	progress.Complete()

	manager, err := storage.NewManager(cfg.Output.Directory)
	if err != nil {
		ui.PrintError("Failed to prepare output directory", err.Error())
		os.Exit(1)
	}

	path, err := manager.SaveArchive(storage.ArchiveName(query), result.Data, cfg.Output.OverwriteExisting)
	if err != nil {
		logger.WithError(err).Error("Failed to write archive")
		ui.PrintError("Failed to write archive", err.Error())
		os.Exit(1)
	}

	logger.WithFields(map[string]interface{}{
		"path":    path,
		"entries": len(result.Entries),
		"skipped": result.Skipped,
		"bytes":   result.BytesWritten,
	}).Info("Fetch completed successfully")

	ui.PrintSuccess(fmt.Sprintf("Saved %d images to %s", len(result.Entries), path))
	if result.Skipped > 0 {
		ui.PrintWarning(fmt.Sprintf("%d images could not be downloaded and were skipped", result.Skipped))
	}
}

// loadConfig applies command line flags over the layered configuration
// and initializes logging. Errors are fatal.
func loadConfig(flags map[string]interface{}) *config.Config {
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logging", err.Error())
		os.Exit(1)
	}

	return cfg
}

func loadFetchConfig() *config.Config {
	flags := make(map[string]interface{})
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if concurrent != 4 {
		flags["concurrent"] = concurrent
	}
	if count != 10 {
		flags["count"] = count
	}
	if resolution != "original" {
		flags["resolution"] = resolution
	}
	if timeout != 10 {
		flags["timeout"] = time.Duration(timeout) * time.Second
	}
	if overwrite {
		flags["overwrite"] = true
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	return loadConfig(flags)
}

// resolveAPIKey fills cfg.Pexels.APIKey from the credential manager when
// the config and environment did not provide one.
func resolveAPIKey(cfg *config.Config) {
	if accountName == "" && cfg.Pexels.APIKey != "" {
		return
	}

	credManager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	var cred *auth.Credential
	if accountName != "" {
		cred, err = credManager.Retrieve(accountName)
		if err != nil {
			ui.PrintError("Stored key not found", accountName)
			ui.PrintInfo("Stored keys", "Use 'pixfetch auth list' to see stored API keys")
			os.Exit(1)
		}
	} else {
		cred, err = credManager.RetrieveDefault()
		if err != nil {
			logger.Error("No API key found")
			ui.PrintError("No Pexels API key found", "")
			fmt.Println("\nTo store an API key securely, run:")
			fmt.Println("  pixfetch auth login")
			fmt.Println("\nYou can also set an environment variable:")
			fmt.Println("  export PIXFETCH_API_KEY=your_api_key")
			os.Exit(1)
		}
	}

	cfg.Pexels.APIKey = cred.APIKey
	logger.WithField("name", cred.Name).Info("Using stored API key")
}
