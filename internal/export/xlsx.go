// Package export writes filtered rosters to spreadsheet files.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/vovakirdan/tui-dex/internal/pokemon"
)

// SheetName is the worksheet the roster is written to.
const SheetName = "Roster"

var fixedHeaders = []string{"No.", "Name", "Form", "Type 1", "Type 2"}

func colName(n int) string {
	// 1-indexed: 1 -> A, 26 -> Z, 27 -> AA
	if n <= 0 {
		return ""
	}
	out := ""
	for n > 0 {
		n--
		out = string(rune('A'+(n%26))) + out
		n /= 26
	}
	return out
}

// Headers returns the header row in column order.
func Headers() []string {
	h := append([]string(nil), fixedHeaders...)
	for _, k := range pokemon.AllStatKeys {
		h = append(h, k.Label())
	}
	for _, k := range pokemon.BattleStats {
		h = append(h, k.Label()+" range")
	}
	return h
}

// WriteXLSX writes records to path, one row per record, preserving order.
// Parent directories are created as needed.
func WriteXLSX(path string, records []pokemon.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}

	headers := Headers()
	if err := writeRows(f, SheetName, records); err != nil {
		return err
	}

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}
	lastCol := colName(len(headers))
	if err := f.SetCellStyle(SheetName, "A1", fmt.Sprintf("%s1", lastCol), headerStyleID); err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	// Keep the header visible while scrolling.
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("export: freeze header: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: cannot create directory %s: %w", dir, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

// writeRows fills the header row and one row per record. The first cell
// that cannot be set aborts the write.
func writeRows(f *excelize.File, sheet string, records []pokemon.Record) error {
	for i, h := range Headers() {
		if err := f.SetCellValue(sheet, fmt.Sprintf("%s1", colName(i+1)), h); err != nil {
			return fmt.Errorf("export: header: %w", err)
		}
	}

	for rowIdx, r := range records {
		row := rowIdx + 2
		values := []any{r.ID, r.Name, r.Form, string(r.Type1), string(r.Type2)}
		for _, k := range pokemon.AllStatKeys {
			values = append(values, r.Stats.Get(k))
		}
		for _, k := range pokemon.BattleStats {
			values = append(values, pokemon.FormatBounds(pokemon.ComputeStatBounds(r.Stats.Get(k), k == pokemon.StatHP)))
		}

		for i, v := range values {
			cell := fmt.Sprintf("%s%d", colName(i+1), row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("export: %s row %s: %w", cell, r.ID, err)
			}
		}
	}
	return nil
}
