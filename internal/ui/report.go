package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tone colors a report value.
type Tone int

const (
	ToneNormal Tone = iota
	ToneGood
	ToneWarn
	ToneBad
	ToneMuted
	ToneInfo
)

func (t Tone) style() lipgloss.Style {
	switch t {
	case ToneGood:
		return SuccessStyle()
	case ToneWarn:
		return WarningStyle()
	case ToneBad:
		return ErrorStyle()
	case ToneMuted:
		return MutedStyle()
	case ToneInfo:
		return InfoStyle()
	default:
		return lipgloss.NewStyle().Foreground(ColorPrimary)
	}
}

// ReportRow is one label/value line.
type ReportRow struct {
	Label string
	Value string
	Tone  Tone
}

// ReportSection groups rows under a title.
type ReportSection struct {
	Title string
	Rows  []ReportRow
}

// Report is the plain-terminal rendition of a dashboard snapshot.
type Report struct {
	Sections []ReportSection
}

// RenderReport renders sections as aligned label/value columns. Labels are
// padded to the widest label across the whole report so sections line up.
func RenderReport(r Report) string {
	labelWidth := 0
	for _, sec := range r.Sections {
		for _, row := range sec.Rows {
			if w := lipgloss.Width(row.Label); w > labelWidth {
				labelWidth = w
			}
		}
	}

	sectionStyle := lipgloss.NewStyle().Foreground(ColorNeonPurple).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(ColorSecondary)

	var b strings.Builder
	for i, sec := range r.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		if sec.Title != "" {
			b.WriteString(sectionStyle.Render(sec.Title))
			b.WriteString("\n")
		}
		for _, row := range sec.Rows {
			b.WriteString("  ")
			b.WriteString(labelStyle.Render(padRight(row.Label, labelWidth)))
			b.WriteString("  ")
			b.WriteString(row.Tone.style().Render(row.Value))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// padRight pads s with spaces to the given display width.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
