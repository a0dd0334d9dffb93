package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dex/internal/export"
)

var (
	exportFlags queryFlags
	flagName    string
)

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Write a filtered roster to a spreadsheet",
	Long: `Write every Pokémon matching the filters to an xlsx file with base
stats, totals and level 50 ranges. Filters work like 'dex search'.

Examples:
  dex export national.xlsx
  dex export fast.xlsx --stat s:gte:100
  dex export --region paldea dragons.xlsx --type1 竜`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportFlags.bind(exportCmd)
	exportCmd.Flags().StringVar(&flagName, "name", "", "Name substring filter")
}

func runExport(_ *cobra.Command, args []string) error {
	q, err := exportFlags.query(flagName)
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

	if err := export.WriteXLSX(args[0], results); err != nil {
		return err
	}
	fmt.Printf("Wrote %d records to %s\n", len(results), args[0])
	return nil
}
