package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/xmdash/internal/dashboard"
)

const (
	cardWidth     = 28
	chartHeight   = 12
	rowLabelWidth = 18
	minPanelWidth = 40
)

// renderScreen renders header, body and footer.
func (m Model) renderScreen() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.viewportReady {
		b.WriteString(m.bodyViewport.View())
	} else {
		b.WriteString(m.renderBody())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the title, status badge, identity line and refresh
// controls.
func (m Model) renderHeader() string {
	s := m.surface

	title := TitleStyle.Render("xmdash")

	badge := MutedStyle.Render(StatusOfflineGlyph + " Connecting")
	if text := s.Text(dashboard.FieldStatus); text != "" {
		class := s.Class(dashboard.FieldStatus)
		badge = classStyle(class).Bold(true).Render(statusGlyph(class) + " " + text)
	}

	line := title + "  " + badge
	if id := s.Text(dashboard.FieldIdentity); id != "" {
		line += LabelStyle.Render("  " + id)
	}
	if ts := s.Text(dashboard.FieldLastUpdate); ts != "" {
		line += MutedStyle.Render("  updated " + ts)
	}

	var rates []string
	for _, opt := range dashboard.RefreshOptions {
		style := ControlStyle
		if s.Class(opt.ID) == dashboard.ClassRefreshActive {
			style = ControlActiveStyle
		}
		rates = append(rates, style.Render(opt.Label))
	}
	refresh := LabelStyle.Render("Refresh ") + strings.Join(rates, "")

	return HeaderStyle.Render(line) + "\n" + FooterStyle.Render(refresh)
}

// renderBody renders the part of the screen the session controls.
func (m Model) renderBody() string {
	switch m.surface.mode {
	case ViewDashboard:
		return m.renderDashboard()
	case ViewError:
		return m.renderError()
	case ViewConfig:
		return m.renderConfig()
	default:
		return m.renderLoading()
	}
}

func (m Model) renderLoading() string {
	return "\n  " + m.spinner.View() + " " + LabelStyle.Render(m.surface.loading)
}

func (m Model) renderError() string {
	msg := AlertStyle.Render("✗ "+m.surface.errMsg) + "\n\n" +
		MutedStyle.Render("r retry | c configure endpoint")
	return "\n" + ErrorBoxStyle.Render(msg)
}

func (m Model) renderConfig() string {
	s := m.surface
	var lines []string
	lines = append(lines, TitleStyle.Render("Configure API Endpoint"), "")
	if s.form.Notice != "" {
		lines = append(lines, NoticeStyle.Render(s.form.Notice), "")
	}
	lines = append(lines,
		LabelStyle.Render("xmrig-proxy summary URL"),
		s.input.View(),
	)
	if s.alert != "" {
		lines = append(lines, "", AlertStyle.Render(s.alert))
	}

	hints := "enter save"
	if s.form.CanCancel {
		hints += " | esc cancel"
	}
	lines = append(lines, "", MutedStyle.Render(hints))

	return "\n" + FormBoxStyle.Render(strings.Join(lines, "\n"))
}

// renderDashboard renders every section of the current layout. Consecutive
// row panels share a line when the terminal is wide enough.
func (m Model) renderDashboard() string {
	width := m.contentWidth()
	sections := m.surface.layout.Sections

	var blocks []string
	for i := 0; i < len(sections); i++ {
		sec := sections[i]
		switch sec.Kind {
		case dashboard.SectionCards:
			blocks = append(blocks, m.renderCards(sec, width))
		case dashboard.SectionMetrics:
			blocks = append(blocks, m.renderMetrics(sec, width))
		case dashboard.SectionRows:
			if m.LayoutMode() != LayoutNarrow && i+1 < len(sections) && sections[i+1].Kind == dashboard.SectionRows {
				half := (width - 1) / 2
				left := m.renderRows(sec, half)
				right := m.renderRows(sections[i+1], half)
				blocks = append(blocks, lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
				i++
				continue
			}
			blocks = append(blocks, m.renderRows(sec, width))
		case dashboard.SectionChart:
			blocks = append(blocks, m.renderChartSection(sec, width))
		}
	}
	return strings.Join(blocks, "\n")
}

// renderCards renders headline cards. The first field of each card is the
// headline value, further text fields are captions and bar fields are
// progress bars.
func (m Model) renderCards(sec dashboard.Section, width int) string {
	s := m.surface
	inner := cardWidth - 4

	cards := make([]string, 0, len(sec.Items))
	for _, item := range sec.Items {
		lines := []string{LabelStyle.Render(item.Label)}
		for i, f := range item.Fields {
			switch {
			case f.Kind == dashboard.FieldBar:
				lines = append(lines, RenderGradientBar(inner, s.fieldWidth(f)))
			case i == 0:
				lines = append(lines, classStyle(s.fieldClass(f)).Bold(true).Render(s.fieldText(f)))
			default:
				lines = append(lines, MutedStyle.Render(s.fieldText(f)))
			}
		}
		cards = append(cards, CardStyle.Width(cardWidth).Render(strings.Join(lines, "\n")))
	}

	return layoutCards(cards, width)
}

// layoutCards arranges cards in rows based on terminal width.
func layoutCards(cards []string, width int) string {
	if len(cards) == 0 {
		return ""
	}

	perRow := width / (cardWidth + 3)
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := i + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderMetrics renders metric tiles three to a line.
func (m Model) renderMetrics(sec dashboard.Section, width int) string {
	s := m.surface
	lines := []string{SectionHeader(sec.Title, "", width)}

	tileWidth := (width - 4) / 3
	var tiles []string
	flush := func() {
		if len(tiles) > 0 {
			lines = append(lines, SectionContentLine(strings.Join(tiles, ""), width))
			tiles = nil
		}
	}
	for _, item := range sec.Items {
		if len(item.Fields) == 0 {
			continue
		}
		f := item.Fields[0]
		tile := LabelStyle.Render(item.Label+": ") + classStyle(s.fieldClass(f)).Render(s.fieldText(f))
		tiles = append(tiles, lipgloss.NewStyle().Width(tileWidth).Render(tile))
		if len(tiles) == 3 {
			flush()
		}
	}
	flush()

	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// renderRows renders a labelled key/value panel.
func (m Model) renderRows(sec dashboard.Section, width int) string {
	if width < minPanelWidth {
		width = minPanelWidth
	}
	s := m.surface
	lines := []string{SectionHeader(sec.Title, "", width)}
	label := LabelStyle.Width(rowLabelWidth)
	for _, item := range sec.Items {
		var values []string
		for _, f := range item.Fields {
			values = append(values, classStyle(s.fieldClass(f)).Render(s.fieldText(f)))
		}
		lines = append(lines, SectionContentLine(label.Render(item.Label)+strings.Join(values, " "), width))
	}
	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// renderChartSection renders range controls, the resource rows and the
// chart canvas.
func (m Model) renderChartSection(sec dashboard.Section, width int) string {
	s := m.surface

	trend := ""
	if c := s.chart; c != nil && sec.Canvas == c.canvas {
		for _, series := range c.data.Series {
			if series.ID == dashboard.SeriesHashrate && series.Visible {
				trend = RenderMiniSparkline(series.Values, 12)
			}
		}
	}
	lines := []string{SectionHeader(sec.Title, trend, width)}

	controls := make([]string, 0, len(sec.Controls))
	for i, c := range sec.Controls {
		style := ControlStyle
		if s.Class(c.ID) == dashboard.ClassRangeActive {
			style = ControlActiveStyle
		}
		controls = append(controls, style.Render(string(rune('1'+i))+" "+c.Label))
	}
	lines = append(lines, SectionContentLine(strings.Join(controls, ""), width))

	label := LabelStyle.Width(rowLabelWidth)
	barWidth := width - rowLabelWidth - 8
	for _, item := range sec.Items {
		for _, f := range item.Fields {
			if f.Kind == dashboard.FieldBar {
				lines = append(lines, SectionContentLine(label.Render("")+RenderGradientBar(barWidth, s.fieldWidth(f)), width))
				continue
			}
			lines = append(lines, SectionContentLine(label.Render(item.Label)+ValueStyle.Render(s.fieldText(f)), width))
		}
	}

	canvas := MutedStyle.Render("Collecting data...")
	if c := s.chart; c != nil && sec.Canvas == c.canvas {
		canvas = renderChart(c.data, width-4, chartHeight)
	}
	for _, l := range strings.Split(canvas, "\n") {
		lines = append(lines, SectionContentLine(l, width))
	}

	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	hints := []string{
		"q quit",
		"r refresh",
		"c configure",
		"1-5 range",
		"h/m series",
		"+/- rate",
		"? help",
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}
