package monitor

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rileyhilliard/xmdash/internal/dashboard"
)

// ViewMode is what the body of the screen currently shows.
type ViewMode int

const (
	ViewLoading ViewMode = iota
	ViewDashboard
	ViewError
	ViewConfig
)

// String returns a human-readable label for the view mode.
func (v ViewMode) String() string {
	switch v {
	case ViewDashboard:
		return "dashboard"
	case ViewError:
		return "error"
	case ViewConfig:
		return "config"
	default:
		return "loading"
	}
}

const endpointPlaceholder = "http://127.0.0.1:8080/1/summary"

// Surface holds what the dashboard asked to be shown. It is mutated only
// from the Bubble Tea update loop and read back by View.
type Surface struct {
	mode    ViewMode
	layout  dashboard.Layout
	texts   map[dashboard.FieldID]string
	classes map[dashboard.FieldID]string
	widths  map[dashboard.FieldID]float64

	errMsg  string
	loading string
	form    dashboard.ConfigForm
	alert   string
	input   textinput.Model

	chart *brailleChart
}

// NewSurface creates a surface showing the loading screen.
func NewSurface() *Surface {
	input := textinput.New()
	input.Placeholder = endpointPlaceholder
	input.Prompt = "› "
	input.CharLimit = 2048
	input.Width = 48

	return &Surface{
		mode:    ViewLoading,
		loading: dashboard.MsgLoading,
		texts:   make(map[dashboard.FieldID]string),
		classes: make(map[dashboard.FieldID]string),
		widths:  make(map[dashboard.FieldID]float64),
		input:   input,
	}
}

// Mode returns the current view mode.
func (s *Surface) Mode() ViewMode {
	return s.mode
}

func (s *Surface) Rebuild(layout dashboard.Layout) {
	s.mode = ViewDashboard
	s.layout = layout
	s.errMsg = ""
	s.alert = ""
	for _, sec := range layout.Sections {
		for _, item := range sec.Items {
			for _, f := range item.Fields {
				if f.ID == "" {
					continue
				}
				s.texts[f.ID] = f.Text
				s.classes[f.ID] = f.Class
				s.widths[f.ID] = f.Width
			}
		}
		for _, c := range sec.Controls {
			class := ""
			if c.Active {
				class = dashboard.ClassRangeActive
			}
			s.classes[c.ID] = class
		}
	}
}

func (s *Surface) SetText(id dashboard.FieldID, text string) {
	s.texts[id] = text
}

func (s *Surface) SetClass(id dashboard.FieldID, class string) {
	s.classes[id] = class
}

func (s *Surface) SetWidth(id dashboard.FieldID, percent float64) {
	s.widths[id] = percent
}

func (s *Surface) ShowError(message string) {
	s.mode = ViewError
	s.errMsg = message
}

func (s *Surface) ShowConfig(form dashboard.ConfigForm) {
	s.mode = ViewConfig
	s.form = form
	s.alert = ""
	s.input.SetValue(form.URL)
	s.input.CursorEnd()
	s.input.Focus()
}

func (s *Surface) ShowLoading(message string) {
	s.mode = ViewLoading
	s.loading = message
	s.input.Blur()
}

func (s *Surface) Alert(message string) {
	s.alert = message
}

// Text returns the current text of a field.
func (s *Surface) Text(id dashboard.FieldID) string {
	return s.texts[id]
}

// Class returns the current style class of a field.
func (s *Surface) Class(id dashboard.FieldID) string {
	return s.classes[id]
}

// Width returns the current width of a bar field.
func (s *Surface) Width(id dashboard.FieldID) float64 {
	return s.widths[id]
}

func (s *Surface) fieldText(f dashboard.Field) string {
	if f.ID == "" {
		return f.Text
	}
	if v, ok := s.texts[f.ID]; ok {
		return v
	}
	return f.Text
}

func (s *Surface) fieldClass(f dashboard.Field) string {
	if f.ID == "" {
		return f.Class
	}
	return s.classes[f.ID]
}

func (s *Surface) fieldWidth(f dashboard.Field) float64 {
	if v, ok := s.widths[f.ID]; ok {
		return v
	}
	return f.Width
}

// hasCanvas reports whether the dashboard currently shows canvas id.
func (s *Surface) hasCanvas(id dashboard.FieldID) bool {
	if s.mode != ViewDashboard || id == "" {
		return false
	}
	for _, sec := range s.layout.Sections {
		if sec.Canvas == id {
			return true
		}
	}
	return false
}
