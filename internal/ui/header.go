package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo contains information to display in the header.
type HeaderInfo struct {
	Version  string // e.g. "v0.4.0"
	Tagline  string // optional
	Endpoint string // optional summary URL
}

// HeaderWidth is the width of the header divider.
const HeaderWidth = 50

// RenderHeader renders the branded title block used by one-shot commands.
func RenderHeader(info HeaderInfo) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ColorNeonPink).
		Bold(true)
	versionStyle := lipgloss.NewStyle().Foreground(ColorNeonCyan)
	dividerStyle := lipgloss.NewStyle().Foreground(ColorGlassBorder)

	var output strings.Builder

	output.WriteString(titleStyle.Render("xmdash"))
	if info.Version != "" {
		output.WriteString(" ")
		output.WriteString(versionStyle.Render(info.Version))
	}
	output.WriteString("\n")

	if info.Tagline != "" {
		output.WriteString(lipgloss.NewStyle().Foreground(ColorSecondary).Render(info.Tagline))
		output.WriteString("\n")
	}
	if info.Endpoint != "" {
		output.WriteString(MutedStyle().Render(info.Endpoint))
		output.WriteString("\n")
	}

	output.WriteString(dividerStyle.Render(strings.Repeat("━", HeaderWidth)))
	output.WriteString("\n")

	return output.String()
}

// PrintHeader writes the styled header to w.
func PrintHeader(w io.Writer, info HeaderInfo) {
	fmt.Fprint(w, RenderHeader(info))
}
