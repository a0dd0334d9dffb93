package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dex/internal/pokemon"
)

// Theme contains all configurable visual styles for the browser.
type Theme struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Selector  lipgloss.Style // Active type picker slot
	InputBox  lipgloss.Style
	Panel     lipgloss.Style
	PanelHead lipgloss.Style
	StatLabel lipgloss.Style
	StatValue lipgloss.Style
	Help      lipgloss.Style

	// Badge background per type
	Types map[pokemon.Type]lipgloss.Color
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Selector:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1),
		InputBox:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		PanelHead: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1),
		StatLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Width(8),
		StatValue: lipgloss.NewStyle().Align(lipgloss.Right).Width(9),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		Types: map[pokemon.Type]lipgloss.Color{
			pokemon.TypeNormal:   "250",
			pokemon.TypeFire:     "202",
			pokemon.TypeWater:    "33",
			pokemon.TypeElectric: "220",
			pokemon.TypeGrass:    "76",
			pokemon.TypeIce:      "117",
			pokemon.TypeFighting: "124",
			pokemon.TypePoison:   "128",
			pokemon.TypeGround:   "179",
			pokemon.TypeFlying:   "111",
			pokemon.TypePsychic:  "205",
			pokemon.TypeBug:      "106",
			pokemon.TypeRock:     "137",
			pokemon.TypeGhost:    "61",
			pokemon.TypeDragon:   "63",
			pokemon.TypeDark:     "95",
			pokemon.TypeSteel:    "109",
			pokemon.TypeFairy:    "218",
		},
	}
}

// Badge renders a type as a colored label.
func (t Theme) Badge(typ pokemon.Type) string {
	style := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("16"))
	if c, ok := t.Types[typ]; ok {
		style = style.Background(c)
	}
	return style.Render(string(typ))
}
