package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dex/internal/registry"
	"github.com/vovakirdan/tui-dex/internal/storage"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List roster regions",
	Long:  `Shows every region dex knows about and whether its roster is cached.`,
	RunE:  runRegions,
}

func runRegions(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	regions := registry.List()

	fmt.Printf("  %-9s  %-12s  %-8s  %-6s  %-8s  %s\n", "ID", "Title", "Cached", "Dual", "Avg BST", "Fetched")
	fmt.Printf("  %-9s  %-12s  %-8s  %-6s  %-8s  %s\n", "--", "-----", "------", "----", "-------", "-------")

	for _, r := range regions {
		marker := " "
		if r.ID == a.region {
			marker = "*"
		}

		info, err := a.store.RosterInfo(r.ID)
		if errors.Is(err, storage.ErrNotCached) {
			fmt.Printf("%s %-9s  %-12s  %-8s  %-6s  %-8s  %s\n", marker, r.ID, r.Title, "-", "-", "-", "never")
			continue
		}
		if err != nil {
			return err
		}

		stats, err := a.store.RegionStats(r.ID)
		if err != nil {
			return err
		}

		fmt.Printf("%s %-9s  %-12s  %-8d  %-6d  %-8.1f  %s\n",
			marker, r.ID, r.Title, info.Count, stats.DualTyped, stats.AvgTotal,
			info.FetchedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Println("Run 'dex fetch <id>' to download a roster.")
	return nil
}
