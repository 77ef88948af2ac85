package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestColorConstants(t *testing.T) {
	colors := []lipgloss.Color{
		ColorNeonPink,
		ColorNeonCyan,
		ColorNeonPurple,
		ColorNeonGreen,
		ColorNeonOrange,
		ColorNeonAmber,
		ColorDeepVoid,
		ColorDarkSurface,
		ColorGlassBorder,
		ColorSuccess,
		ColorError,
		ColorWarning,
		ColorInfo,
		ColorPrimary,
		ColorSecondary,
		ColorMuted,
	}

	for _, color := range colors {
		s := string(color)
		assert.True(t, len(s) == 7 && s[0] == '#', "color should be #RRGGBB: %s", s)
	}
}

func TestGradientColors(t *testing.T) {
	assert.Len(t, GradientColors, 4)
	assert.Equal(t, ColorNeonPink, GradientColors[0])
}

func TestStylesRenderText(t *testing.T) {
	for _, style := range []lipgloss.Style{SuccessStyle(), ErrorStyle(), WarningStyle(), InfoStyle(), MutedStyle()} {
		assert.Equal(t, "ok", style.Render("ok"), "ascii profile renders plain text")
	}
}
