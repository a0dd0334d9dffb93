package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dex/internal/config"
	"github.com/vovakirdan/tui-dex/internal/platform/tui"
)

var flagExportDir string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive roster browser",
	Long: `Open the roster browser. Rosters load from the local cache and are
fetched from the API the first time a region is opened.

Controls:
  Up/Down        - Move through the page
  Left/Right     - Previous/next page
  a              - Show all / paged
  /              - Search by name
  :              - Base stat conditions, e.g. s:gte:100 h:gte:80
  1 / !          - Cycle type slot 1 forward/back
  2 / @          - Cycle type slot 2 forward/back
  v              - Base stats / level 50 ranges
  Tab/Shift+Tab  - Switch region
  R              - Refetch the region
  x              - Reset filters
  Ctrl+S         - Export matches to xlsx
  H              - Search history
  Q/Ctrl+C       - Quit`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&flagExportDir, "export-dir", "~/.dex/exports", "Directory for Ctrl+S exports")
}

func runBrowse(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// Get terminal size for the first layout
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	exportDir, err := config.ExpandHome(flagExportDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := tui.BrowserOptions{
		Service:    a.svc,
		Context:    ctx,
		Region:     a.region,
		PerPage:    a.cfg.Browse.PerPage,
		ShowActual: a.cfg.Browse.ShowActualStats,
		ExportDir:  filepath.Clean(exportDir),
		Width:      width,
		Height:     height,
	}

	return tui.Run(opts, a.store)
}
