// Package validate checks the structural invariants of a generated town and
// collects the findings into a report.
package validate

import (
	"fmt"

	"github.com/townforge/townforge/pkg/town"
)

// Severity indicates how critical a finding is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Result is a single finding.
type Result struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report is the complete validation output.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Info     []Result `json:"info"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	return &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
		Info:     []Result{},
	}
}

// AddError records an error and marks the report invalid.
func (r *Report) AddError(msg string) {
	r.Errors = append(r.Errors, Result{Severity: SeverityError, Message: msg})
	r.Valid = false
}

// AddWarning records a warning.
func (r *Report) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, Result{Severity: SeverityWarning, Message: msg})
}

// AddInfo records an informational message.
func (r *Report) AddInfo(msg string) {
	r.Info = append(r.Info, Result{Severity: SeverityInfo, Message: msg})
}

// Check verifies the model's invariants: wards on every city patch, gates
// living on the wall and its patches, shared vertex identity between
// bordering patches, and non-degenerate patch shapes.
func Check(m *town.Model) *Report {
	report := NewReport()

	if m.Center == nil {
		report.AddError("model has no center")
	}
	if m.Border == nil {
		report.AddError("model has no border")
		return report
	}

	withinCity := 0
	for i, p := range m.Patches {
		if len(p.Shape.Vertices) < 3 {
			report.AddError(fmt.Sprintf("patch %d has %d vertices", i, len(p.Shape.Vertices)))
		}
		if p.WithinCity {
			withinCity++
			if p.Ward == nil {
				report.AddError(fmt.Sprintf("city patch %d has no ward", i))
			}
		}
	}
	if withinCity == 0 {
		report.AddError("no patches within the city")
	}

	for i, gate := range m.Border.Gates {
		if !m.Border.Shape.Contains(gate) {
			report.AddError(fmt.Sprintf("gate %d is not a border vertex instance", i))
		}
		owners := 0
		for _, p := range m.Patches {
			if p.Shape.Contains(gate) {
				owners++
			}
		}
		if owners == 0 {
			report.AddError(fmt.Sprintf("gate %d belongs to no patch", i))
		}
	}

	for i, p := range m.Patches {
		for _, q := range m.Patches[i+1:] {
			if !p.Shape.Borders(q.Shape) {
				continue
			}
			shared := 0
			for _, v := range p.Shape.Vertices {
				if q.Shape.Contains(v) {
					shared++
				}
			}
			if shared < 2 {
				report.AddError("bordering patches share fewer than two vertex instances")
			}
		}
	}

	if m.Citadel != nil {
		if c := m.Citadel.Shape.Compactness(); c < 0.75 {
			report.AddError(fmt.Sprintf("citadel compactness %.3f below 0.75", c))
		}
	}
	if m.CityRadius <= 0 {
		report.AddWarning("city radius is not positive")
	}
	if len(m.Gates) > 0 && len(m.Streets) == 0 {
		report.AddWarning("gates exist but no streets were planned")
	}

	report.AddInfo(fmt.Sprintf("%d patches, %d within city, %d gates, %d arteries",
		len(m.Patches), withinCity, len(m.Gates), len(m.Arteries)))
	return report
}
