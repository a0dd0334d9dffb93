package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dex/internal/registry"
)

var (
	flagFetchAll bool
	flagClear    bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [region|url...]",
	Short: "Download rosters into the local cache",
	Long: `Download one or more region rosters from the API and replace the cached
copies. Without arguments the --region (or configured) region is fetched.
A region can also be given as its endpoint URL.

With --clear the cached copies are dropped instead and nothing is fetched.

Examples:
  dex fetch
  dex fetch galar paldea
  dex fetch http://localhost:8000/api/paldea-pokemon/
  dex fetch --all
  dex fetch --clear galar`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&flagFetchAll, "all", false, "Fetch every known region")
	fetchCmd.Flags().BoolVar(&flagClear, "clear", false, "Drop the cached rosters instead of fetching")
}

// resolveRegion accepts a region ID or an endpoint URL.
func resolveRegion(arg string) (registry.Region, error) {
	r, err := registry.Get(arg)
	if err == nil || !strings.Contains(arg, "/") {
		return r, err
	}
	if r, ok := registry.ForURL(arg); ok {
		return r, nil
	}
	return registry.Region{}, fmt.Errorf("no region serves %s", arg)
}

func runFetch(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var regions []registry.Region
	switch {
	case flagFetchAll:
		regions = registry.List()
	case len(args) > 0:
		for _, arg := range args {
			r, err := resolveRegion(arg)
			if err != nil {
				return err
			}
			regions = append(regions, r)
		}
	default:
		r, err := registry.Get(a.region)
		if err != nil {
			return err
		}
		regions = []registry.Region{r}
	}

	if flagClear {
		for _, r := range regions {
			if err := a.store.ClearRoster(r.ID); err != nil {
				return err
			}
			fmt.Printf("%-9s  %-12s  cleared\n", r.ID, r.Title)
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rosters, err := a.client.FetchAll(ctx, regions)
	if err != nil {
		return err
	}

	for _, r := range regions {
		records := rosters[r.ID]
		if err := a.store.SaveRoster(r.ID, a.client.URL(r), records); err != nil {
			return err
		}
		fmt.Printf("%-9s  %-12s  %d records\n", r.ID, r.Title, len(records))
	}
	return nil
}
