package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/xmdash/internal/dashboard"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	ColorHealthy  = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink
	ColorInfo     = lipgloss.Color("#00B7FF")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent    = lipgloss.Color("#FF2E97") // Neon pink
	ColorAccentDim = lipgloss.Color("#BF40FF") // Neon purple

	// Series colors
	ColorGraph       = lipgloss.Color("#00FFFF")
	ColorGraphMiners = lipgloss.Color("#FF2E97")
)

// Thresholds for bar coloring
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	BigValueStyle = ValueStyle.
			Bold(true)

	ErrorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorCritical).
			Foreground(ColorTextPrimary).
			Padding(1, 2)

	FormBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(1, 2)

	AlertStyle = lipgloss.NewStyle().
			Foreground(ColorCritical).
			Bold(true)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ControlStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	ControlActiveStyle = lipgloss.NewStyle().
				Foreground(ColorDarkBg).
				Background(ColorAccent).
				Bold(true).
				Padding(0, 1)
)

// Status badge glyphs
const (
	StatusOnlineGlyph  = "◉"
	StatusWarningGlyph = "◔"
	StatusOfflineGlyph = "◌"
)

// SpinnerFrames are the loading animation frames.
var SpinnerFrames = []string{"◐", "◓", "◑", "◒"}

// classStyle maps a dashboard style class to a terminal style.
func classStyle(class string) lipgloss.Style {
	switch class {
	case dashboard.ClassHighlightGreen, dashboard.ClassStatusOnline:
		return ValueStyle.Foreground(ColorHealthy)
	case dashboard.ClassHighlightRed, dashboard.ClassStatusOffline:
		return ValueStyle.Foreground(ColorCritical)
	case dashboard.ClassHighlightBlue:
		return ValueStyle.Foreground(ColorInfo)
	case dashboard.ClassHighlightAmber, dashboard.ClassStatusWarning:
		return ValueStyle.Foreground(ColorWarning)
	default:
		return ValueStyle
	}
}

// statusGlyph returns the badge glyph for a status class.
func statusGlyph(class string) string {
	switch class {
	case dashboard.ClassStatusOnline:
		return StatusOnlineGlyph
	case dashboard.ClassStatusWarning:
		return StatusWarningGlyph
	default:
		return StatusOfflineGlyph
	}
}

// MetricColor returns the color for a percentage: green below 70%,
// amber below 90%, red above.
func MetricColor(percent float64) lipgloss.Color {
	switch {
	case percent >= CriticalThreshold:
		return ColorCritical
	case percent >= WarningThreshold:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// SectionHeader renders a section header with the title on the left and value on the right.
// Format: ╭─ Title ────────────────────────────────────── Value ╮
func SectionHeader(title, value string, width int) string {
	if width < 10 {
		width = 10
	}

	leftWidth := 3 + lipgloss.Width(title) + 1
	rightWidth := 1 + lipgloss.Width(value) + 2
	if value == "" {
		rightWidth = 1
	}

	fillWidth := width - leftWidth - rightWidth
	if fillWidth < 1 {
		fillWidth = 1
	}
	middle := strings.Repeat("─", fillWidth)

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	valueStyle := lipgloss.NewStyle().Foreground(ColorGraph).Bold(true)

	if value == "" {
		return borderStyle.Render("╭─ ") + TitleStyle.Render(title) + borderStyle.Render(" "+middle+"╮")
	}
	return borderStyle.Render("╭─ ") +
		TitleStyle.Render(title) +
		borderStyle.Render(" "+middle+" ") +
		valueStyle.Render(value) +
		borderStyle.Render(" ╮")
}

// SectionFooter renders the bottom border of a section.
func SectionFooter(width int) string {
	if width < 2 {
		width = 2
	}
	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	return borderStyle.Render("╰" + strings.Repeat("─", width-2) + "╯")
}

// SectionContentLine renders a content line with left and right borders, padded to width.
// Format: │ content                                              │
func SectionContentLine(content string, width int) string {
	if width < 4 {
		width = 4
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	padding := width - 4 - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}

	return borderStyle.Render("│") + " " + content + strings.Repeat(" ", padding) + " " + borderStyle.Render("│")
}
