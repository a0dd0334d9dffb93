package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dex/internal/pokemon"
)

// statLabels are the card labels in H/A/B/C/D/S order.
var statLabels = map[pokemon.StatKey]string{
	pokemon.StatHP:        "HP",
	pokemon.StatAttack:    "攻撃",
	pokemon.StatDefense:   "防御",
	pokemon.StatSpAttack:  "特攻",
	pokemon.StatSpDefense: "特防",
	pokemon.StatSpeed:     "素早さ",
	pokemon.StatTotal:     "合計",
}

// typesText joins a record's types the way the cards do: "炎・飛".
func typesText(r pokemon.Record) string {
	parts := make([]string, 0, 2)
	for _, t := range r.Types() {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, "・")
}

// statCell renders one stat as the base value or its min〜max range.
func statCell(key pokemon.StatKey, base int, actual bool) string {
	if !actual || key == pokemon.StatTotal {
		return fmt.Sprintf("%d", base)
	}
	return pokemon.ComputeStatBounds(base, key == pokemon.StatHP).String()
}

// renderCard renders the detail pane for one record.
func renderCard(theme Theme, r pokemon.Record, width int) string {
	var b strings.Builder

	b.WriteString(theme.PanelHead.Render(r.DisplayName()))
	b.WriteString("\n")
	if r.NameEN != "" {
		b.WriteString(theme.Muted.Render(r.NameEN))
		b.WriteString("\n")
	}

	badges := make([]string, 0, 2)
	for _, t := range r.Types() {
		badges = append(badges, theme.Badge(t))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, badges...))
	b.WriteString("\n\n")

	b.WriteString(theme.StatLabel.Render(""))
	b.WriteString(theme.StatValue.Render("種族値"))
	b.WriteString(theme.StatValue.Render("実数値"))
	b.WriteString("\n")
	for _, line := range pokemon.StatLines(r.Stats) {
		b.WriteString(theme.StatLabel.Render(statLabels[line.Key]))
		b.WriteString(theme.StatValue.Render(fmt.Sprintf("%d", line.Base)))
		b.WriteString(theme.StatValue.Render(line.Bounds.String()))
		b.WriteString("\n")
	}
	b.WriteString(theme.StatLabel.Render(statLabels[pokemon.StatTotal]))
	b.WriteString(theme.StatValue.Render(fmt.Sprintf("%d", r.Stats.Total())))

	style := theme.Panel
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(b.String())
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
