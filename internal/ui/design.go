package ui

import "github.com/charmbracelet/lipgloss"

// Palette is based on Vitesse Dark Soft:
// https://github.com/antfu/vscode-theme-vitesse/blob/main/themes/vitesse-dark-soft.json
type designTheme struct {
	Primary lipgloss.Color // #4d9375
	Blue    lipgloss.Color // #6394bf
	Yellow  lipgloss.Color // #e6cc77
	Red     lipgloss.Color // #cb7676

	Secondary lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
}

// Vitesse is the palette used for all terminal output.
var Vitesse = designTheme{
	Primary: lipgloss.Color("#4d9375"),
	Blue:    lipgloss.Color("#6394bf"),
	Yellow:  lipgloss.Color("#e6cc77"),
	Red:     lipgloss.Color("#cb7676"),

	Secondary: lipgloss.AdaptiveColor{Light: "#393a34", Dark: "#bfbaaa"},
	Muted:     lipgloss.AdaptiveColor{Light: "#999999", Dark: "#dedcd590"},
}

// AccentBold returns a bold style using the primary accent color.
func AccentBold() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Primary)
}

// MutedStyle is for secondary details such as versions and sources.
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.Muted)
}

func okStyle() lipgloss.Style   { return lipgloss.NewStyle().Foreground(Vitesse.Primary) }
func infoStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(Vitesse.Blue) }
func warnStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(Vitesse.Yellow) }
func errStyle() lipgloss.Style  { return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Red) }
