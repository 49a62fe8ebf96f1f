package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/promptguard/internal/guard"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RiskColor returns the style for a risk tier. Anything outside the
// vocabulary renders red, matching how an absent risk is treated.
func RiskColor(risk guard.Risk) lipgloss.Style {
	switch risk {
	case guard.RiskLow:
		return StyleGreen
	case guard.RiskMedium:
		return StyleYellow
	default:
		return StyleRed
	}
}

// RiskIndicator returns a colored indicator such as "● HIGH".
func RiskIndicator(risk guard.Risk) string {
	label := strings.ToUpper(string(risk))
	if !risk.Valid() {
		label = "UNKNOWN"
	}
	return RiskColor(risk).Render("● " + label)
}

// ActionPill renders one action in the color of the risk it implies.
func ActionPill(a guard.Action) string {
	switch a {
	case guard.ActionAllow:
		return StyleGreen.Render(string(a))
	case guard.ActionBlock:
		return StyleRed.Render(string(a))
	default:
		return StyleYellow.Render(string(a))
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold.
func Bold(text string) string {
	return StyleBold.Render(text)
}
