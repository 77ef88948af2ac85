// Package testing provides test doubles for the dashboard package.
package testing

import (
	"sync"

	"github.com/rileyhilliard/xmdash/internal/dashboard"
)

// View names what the fake surface is currently showing.
type View string

const (
	ViewNone      View = ""
	ViewDashboard View = "dashboard"
	ViewError     View = "error"
	ViewConfig    View = "config"
	ViewLoading   View = "loading"
)

// SurfaceCall records one call made to the surface.
type SurfaceCall struct {
	Op    string
	ID    dashboard.FieldID
	Text  string
	Width float64
}

// FakeSurface records every surface operation and keeps the last value set
// for each field.
type FakeSurface struct {
	mu sync.Mutex

	View     View
	Layouts  []dashboard.Layout
	Errors   []string
	Forms    []dashboard.ConfigForm
	Loadings []string
	Alerts   []string
	Calls    []SurfaceCall

	Texts   map[dashboard.FieldID]string
	Classes map[dashboard.FieldID]string
	Widths  map[dashboard.FieldID]float64
}

// NewFakeSurface creates an empty fake surface.
func NewFakeSurface() *FakeSurface {
	return &FakeSurface{
		Texts:   make(map[dashboard.FieldID]string),
		Classes: make(map[dashboard.FieldID]string),
		Widths:  make(map[dashboard.FieldID]float64),
	}
}

func (s *FakeSurface) Rebuild(layout dashboard.Layout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.View = ViewDashboard
	s.Layouts = append(s.Layouts, layout)
	s.Calls = append(s.Calls, SurfaceCall{Op: "rebuild"})
	for _, sec := range layout.Sections {
		for _, item := range sec.Items {
			for _, f := range item.Fields {
				if f.ID == "" {
					continue
				}
				s.Texts[f.ID] = f.Text
				s.Classes[f.ID] = f.Class
				s.Widths[f.ID] = f.Width
			}
		}
		for _, c := range sec.Controls {
			if c.Active {
				s.Classes[c.ID] = dashboard.ClassRangeActive
			} else {
				s.Classes[c.ID] = ""
			}
		}
	}
}

func (s *FakeSurface) SetText(id dashboard.FieldID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Texts[id] = text
	s.Calls = append(s.Calls, SurfaceCall{Op: "text", ID: id, Text: text})
}

func (s *FakeSurface) SetClass(id dashboard.FieldID, class string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Classes[id] = class
	s.Calls = append(s.Calls, SurfaceCall{Op: "class", ID: id, Text: class})
}

func (s *FakeSurface) SetWidth(id dashboard.FieldID, percent float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Widths[id] = percent
	s.Calls = append(s.Calls, SurfaceCall{Op: "width", ID: id, Width: percent})
}

func (s *FakeSurface) ShowError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.View = ViewError
	s.Errors = append(s.Errors, message)
	s.Calls = append(s.Calls, SurfaceCall{Op: "error", Text: message})
}

func (s *FakeSurface) ShowConfig(form dashboard.ConfigForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.View = ViewConfig
	s.Forms = append(s.Forms, form)
	s.Calls = append(s.Calls, SurfaceCall{Op: "config", Text: form.URL})
}

func (s *FakeSurface) ShowLoading(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.View = ViewLoading
	s.Loadings = append(s.Loadings, message)
	s.Calls = append(s.Calls, SurfaceCall{Op: "loading", Text: message})
}

func (s *FakeSurface) Alert(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Alerts = append(s.Alerts, message)
	s.Calls = append(s.Calls, SurfaceCall{Op: "alert", Text: message})
}

// Count returns how many calls with op were recorded.
func (s *FakeSurface) Count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// CallsFor returns the recorded calls touching id.
func (s *FakeSurface) CallsFor(id dashboard.FieldID) []SurfaceCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []SurfaceCall
	for _, c := range s.Calls {
		if c.ID == id {
			out = append(out, c)
		}
	}
	return out
}

// ClearCalls forgets recorded calls but keeps field values.
func (s *FakeSurface) ClearCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = nil
}
