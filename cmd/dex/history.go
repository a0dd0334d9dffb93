package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long: `List the most recent searches run from search, export, browse or the
HTTP API, newest first.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of searches to show")
}

func runHistory(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.store.RecentSearches(flagHistoryLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No searches recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-9s  %s  %-9s  %-7s  %s\n", "Date", "Region", padRight("Name", 12), "Types", "Matches", "Stats")
	fmt.Printf("  %-16s  %-9s  %s  %-9s  %-7s  %s\n", "----", "------", padRight("----", 12), "-----", "-------", "-----")

	for _, e := range entries {
		types := "-"
		if e.Type1 != "" || e.Type2 != "" {
			types = e.Type1 + "/" + e.Type2
		}
		fmt.Printf("  %-16s  %-9s  %s  %s  %-7d  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.RegionID,
			padRight(e.Query, 12),
			padRight(types, 9),
			e.Results,
			e.Stats,
		)
	}
	return nil
}
