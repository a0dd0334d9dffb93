package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// padRight pads s to width terminal cells. Kana take two cells each, so
// fmt's rune-based padding misaligns them.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
