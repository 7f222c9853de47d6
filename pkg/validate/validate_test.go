package validate

import (
	"testing"

	"github.com/townforge/townforge/pkg/town"
)

func TestCheckGeneratedTown(t *testing.T) {
	var m *town.Model
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		candidate, err := town.Generate(10, seed)
		if err == nil {
			m = candidate
			break
		}
	}
	if m == nil {
		t.Fatalf("no test seed produced a town")
	}

	report := Check(m)
	if !report.Valid {
		t.Fatalf("generated town failed validation: %+v", report.Errors)
	}
	if len(report.Info) == 0 {
		t.Errorf("expected an info summary")
	}
}

func TestCheckRejectsEmptyModel(t *testing.T) {
	report := Check(&town.Model{})
	if report.Valid {
		t.Fatalf("an empty model must not validate")
	}
}
