package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Neon palette shared with the dashboard.
const (
	ColorNeonPink    lipgloss.Color = "#FF2E97"
	ColorNeonCyan    lipgloss.Color = "#00F0FF"
	ColorNeonPurple  lipgloss.Color = "#B026FF"
	ColorNeonGreen   lipgloss.Color = "#39FF14"
	ColorNeonOrange  lipgloss.Color = "#FF6B1A"
	ColorNeonAmber   lipgloss.Color = "#FFB000"
	ColorDeepVoid    lipgloss.Color = "#0A0A12"
	ColorDarkSurface lipgloss.Color = "#14141F"
	ColorGlassBorder lipgloss.Color = "#3A3A5C"
)

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "#39FF14"
	ColorError   lipgloss.Color = "#FF3864"
	ColorWarning lipgloss.Color = "#FFB000"
	ColorInfo    lipgloss.Color = "#00B7FF"
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "#E6E6F0"
	ColorSecondary lipgloss.Color = "#9A9AB8"
	ColorMuted     lipgloss.Color = "#5C5C7A"
)

// GradientColors is the spinner color cycle: pink, purple, cyan, green.
var GradientColors = []lipgloss.Color{
	ColorNeonPink,
	ColorNeonPurple,
	ColorNeonCyan,
	ColorNeonGreen,
}

func SuccessStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(ColorSuccess) }
func ErrorStyle() lipgloss.Style   { return lipgloss.NewStyle().Foreground(ColorError) }
func WarningStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(ColorWarning) }
func InfoStyle() lipgloss.Style    { return lipgloss.NewStyle().Foreground(ColorInfo) }
func MutedStyle() lipgloss.Style   { return lipgloss.NewStyle().Foreground(ColorMuted) }

// DisableColors switches lipgloss to monochrome output.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// PrintWarning writes a warning line to stderr.
func PrintWarning(msg string) {
	fmt.Fprintln(os.Stderr, WarningStyle().Render(SymbolWarning)+" "+msg)
}
