// dex is a terminal Pokédex: browse, search and serve region rosters.
//
// Usage:
//
//	dex regions              - List regions and what is cached
//	dex fetch [region...]    - Download rosters into the local cache
//	dex browse               - Interactive roster browser
//	dex search [name]        - Filter a roster from the command line
//	dex stats <base...>      - Show level 50 stat ranges
//	dex export <file.xlsx>   - Write a filtered roster to a spreadsheet
//	dex history              - Show recent searches
//	dex serve ssh|http       - Serve the browser over SSH or JSON over HTTP
//
// Global flags:
//
//	--config <path>  - Config file (default: ~/.dex/config.yaml)
//	--db <path>      - Roster cache database (default: ~/.dex/roster.db)
//	--region <id>    - Region to work on (default: national)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
	flagRegion string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dex",
	Short: "dex - a Pokédex roster browser for your terminal",
	Long: `dex downloads Pokémon rosters from a Pokédex REST API, caches them
locally and lets you filter them by name, type and base stats.

Available commands:
  regions  - Show the roster sources
  fetch    - Download rosters into the local cache
  browse   - Interactive roster browser
  search   - Filter a roster from the command line
  stats    - Level 50 stat ranges for base stats
  export   - Write a filtered roster to an xlsx file
  history  - Recent searches
  serve    - Serve over SSH or HTTP

Examples:
  dex fetch --all
  dex browse --region paldea
  dex search リザ --type1 fire
  dex search --type1 any --type2 none --stat s:gte:100
  dex stats 100 --hp
  dex serve http --addr :8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML (default: ~/.dex/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to roster cache database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagRegion, "region", "", "Region ID (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}
