package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/townforge/townforge/pkg/config"
	"github.com/townforge/townforge/pkg/town"
	"github.com/townforge/townforge/pkg/validate"
)

// printSummary writes a short human-readable description of the town.
func printSummary(w io.Writer, m *town.Model, report *validate.Report) {
	fmt.Fprintf(w, "%s — %d patches, seed %d\n",
		config.SizeName(m.NPatches), m.NPatches, m.Seed())

	features := ""
	if m.Plaza != nil {
		features += " plaza"
	}
	if m.Citadel != nil {
		features += " citadel"
	}
	if m.Wall != nil {
		features += " walls"
	}
	if features == "" {
		features = " none"
	}
	fmt.Fprintf(w, "features:%s\n", features)
	fmt.Fprintf(w, "gates: %d, streets: %d, roads: %d, arteries: %d\n",
		len(m.Gates), len(m.Streets), len(m.Roads), len(m.Arteries))

	counts := map[string]int{}
	buildings := 0
	for _, p := range m.Patches {
		if p.Ward == nil {
			continue
		}
		label := p.Ward.Label()
		if label == "" {
			label = "Countryside"
		}
		counts[label]++
		buildings += len(p.Ward.Geometry())
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	fmt.Fprint(w, "wards:")
	for _, label := range labels {
		fmt.Fprintf(w, " %s=%d", label, counts[label])
	}
	fmt.Fprintf(w, "\nbuildings: %d, city radius: %.1f\n", buildings, m.CityRadius)

	if report != nil && len(report.Warnings) > 0 {
		fmt.Fprintf(w, "warnings: %d\n", len(report.Warnings))
	}
}

// printReport lists validation findings.
func printReport(w io.Writer, report *validate.Report) {
	for _, r := range report.Errors {
		fmt.Fprintf(w, "  error: %s\n", r.Message)
	}
	for _, r := range report.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", r.Message)
	}
}
