package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dex/internal/pokemon"
)

var flagStatsHP bool

var statsCmd = &cobra.Command{
	Use:   "stats <base...>",
	Short: "Show level 50 stat ranges",
	Long: `Print the lowest and highest level 50 stat for each base stat.

The minimum assumes 31 IVs, no EVs and a neutral nature; the maximum
assumes 31 IVs, 252 EVs and a boosting nature. HP is never affected by
nature.

Examples:
  dex stats 100
  dex stats 78 84 78 109 85 100
  dex stats 255 --hp`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsHP, "hp", false, "Use the HP formula")
}

func runStats(_ *cobra.Command, args []string) error {
	label := "Stat"
	if flagStatsHP {
		label = "HP"
	}

	fmt.Printf("  %-5s  %-5s  %-5s  %s\n", "Base", "Min", "Max", label)
	fmt.Printf("  %-5s  %-5s  %-5s  %s\n", "----", "---", "---", "----")

	for _, arg := range args {
		base, err := strconv.Atoi(arg)
		if err != nil || base < 0 {
			return fmt.Errorf("base stat %q must be a non-negative integer", arg)
		}
		b := pokemon.ComputeStatBounds(base, flagStatsHP)
		fmt.Printf("  %-5d  %-5d  %-5d  %s\n", base, b.Min, b.Max, b)
	}
	return nil
}
