package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Disabled  lipgloss.AdaptiveColor

	// Badge colors, keyed on the badge style class
	Positive lipgloss.AdaptiveColor
	Negative lipgloss.AdaptiveColor
	Neutral  lipgloss.AdaptiveColor
	Other    lipgloss.AdaptiveColor
}

// buildTheme creates a theme from light/dark color pairs
func buildTheme(name string, primary, secondary, errorColor, border, muted, disabled, positive, negative, neutral, other [2]string) Theme {
	color := func(c [2]string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: c[0], Dark: c[1]}
	}
	return Theme{
		Name:      name,
		Primary:   color(primary),
		Secondary: color(secondary),
		Error:     color(errorColor),
		Border:    color(border),
		Muted:     color(muted),
		Disabled:  color(disabled),
		Positive:  color(positive),
		Negative:  color(negative),
		Neutral:   color(neutral),
		Other:     color(other),
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#1E40AF", "#3B82F6"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#DC2626", "#EF4444"},
		[2]string{"#D1D5DB", "#374151"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#9CA3AF", "#4B5563"},
		[2]string{"#059669", "#10B981"}, [2]string{"#DC2626", "#EF4444"}, [2]string{"#D97706", "#F59E0B"},
		[2]string{"#7C3AED", "#A855F7"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#999999", "#777777"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC0000", "#FF4444"}, [2]string{"#CC6600", "#FFAA00"},
		[2]string{"#000080", "#8080FF"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#E2E8F0", "#2D3748"}, [2]string{"#A0AEC0", "#718096"}, [2]string{"#CBD5E0", "#4A5568"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C53030", "#FC8181"}, [2]string{"#C05621", "#F6AD55"},
		[2]string{"#553C9A", "#B794F6"})
)

var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "", "default":
		SetTheme(&DefaultTheme)
		return true
	case "high-contrast":
		SetTheme(&HighContrastTheme)
		return true
	case "minimal":
		SetTheme(&MinimalTheme)
		return true
	default:
		return false
	}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// BadgeColor maps a badge style class to its color
func (t *Theme) BadgeColor(class string) lipgloss.AdaptiveColor {
	switch strings.ToLower(class) {
	case "positive":
		return t.Positive
	case "negative":
		return t.Negative
	case "neutral":
		return t.Neutral
	default:
		return t.Other
	}
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Loading lipgloss.Style

	Input lipgloss.Style
	Box   lipgloss.Style
	Raw   lipgloss.Style

	Trigger         lipgloss.Style
	TriggerDisabled lipgloss.Style
}

// GetStyles builds styles from the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Loading: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		Raw: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			Foreground(theme.Secondary).
			Padding(0, 1),

		Trigger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(theme.Primary).
			Bold(true).
			Padding(0, 2),

		TriggerDisabled: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Disabled).
			Padding(0, 2),
	}
}

// Badge renders text in the color of its badge style class
func (s *Styles) Badge(text, class string) string {
	if IsColorDisabled() {
		return "[" + text + "]"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(s.Theme.BadgeColor(class)).
		Bold(true).
		Padding(0, 1).
		Render(text)
}
