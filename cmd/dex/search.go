package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dex/internal/pokemon"
)

var (
	searchFlags queryFlags
	flagPage    int
	flagPerPage int
	flagShowAll bool
	flagActual  bool
	flagJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "Filter a roster",
	Long: `Filter the roster of a region by name, type and base stats.

Type slots take a type (kanji like 炎 or English like fire), any or none:
  --type1 any --type2 any    dual-typed Pokémon only
  --type1 any --type2 none   single-typed Pokémon only
  --type1 fire               anything with fire in either slot
  --type1 fire --type2 water fire/water in either order
Leaving both out applies no type filter.

Stat conditions use the keys h a b c d s t (t = total) and the operators
gte, lte and eq.

Examples:
  dex search リザ
  dex search --type1 炎 --type2 飛
  dex search --stat s:gte:100 --stat h:gte:80 --all
  dex search --region galar --type1 any --type2 none --actual`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchFlags.bind(searchCmd)
	searchCmd.Flags().IntVar(&flagPage, "page", 1, "Page to show (1-indexed)")
	searchCmd.Flags().IntVar(&flagPerPage, "per-page", 0, "Records per page (default from config)")
	searchCmd.Flags().BoolVar(&flagShowAll, "all", false, "Show every match instead of one page")
	searchCmd.Flags().BoolVar(&flagActual, "actual", false, "Show level 50 min〜max ranges instead of base stats")
	searchCmd.Flags().BoolVar(&flagJSON, "json", false, "Print matches as JSON")
}

func runSearch(_ *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	q, err := searchFlags.query(name)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.svc.Search(context.Background(), a.region, q)
	if err != nil {
		return err
	}

	perPage := flagPerPage
	if perPage <= 0 {
		perPage = a.cfg.Browse.PerPage
	}
	pager := pokemon.NewPager(perPage)
	pager.Page = flagPage
	pager.ShowAll = flagShowAll
	page := pager.Slice(results)

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	if len(page) == 0 {
		fmt.Println("No Pokémon match this search.")
		return nil
	}

	printRecords(page, flagActual || a.cfg.Browse.ShowActualStats)

	fmt.Println()
	if flagShowAll {
		fmt.Printf("%d matches\n", len(results))
	} else {
		fmt.Printf("%d matches, page %d/%d\n", len(results), pager.Page, pokemon.TotalPages(len(results), pager.PerPage))
	}
	return nil
}

// printRecords prints a plain text table of records.
func printRecords(records []pokemon.Record, actual bool) {
	statWidth := 4
	if actual {
		statWidth = 9
	}

	header := fmt.Sprintf("  %-10s  %s  %s", "No.", padRight("Name", 20), padRight("Type", 8))
	for _, k := range pokemon.AllStatKeys {
		header += fmt.Sprintf("  %*s", statWidth, k.Label())
	}
	fmt.Println(header)

	for _, r := range records {
		types := make([]string, 0, 2)
		for _, t := range r.Types() {
			types = append(types, string(t))
		}
		line := fmt.Sprintf("  %-10s  %s  %s", r.ID, padRight(r.DisplayName(), 20), padRight(strings.Join(types, "・"), 8))
		for _, k := range pokemon.AllStatKeys {
			cell := fmt.Sprintf("%d", r.Stats.Get(k))
			if actual && k != pokemon.StatTotal {
				cell = pokemon.ComputeStatBounds(r.Stats.Get(k), k == pokemon.StatHP).String()
			}
			line += "  " + padLeft(cell, statWidth)
		}
		fmt.Println(line)
	}
}
