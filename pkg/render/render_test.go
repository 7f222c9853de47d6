package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/townforge/townforge/pkg/town"
)

func TestSavePNG(t *testing.T) {
	var m *town.Model
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		candidate, err := town.Generate(8, seed)
		if err == nil {
			m = candidate
			break
		}
	}
	if m == nil {
		t.Fatalf("no test seed produced a town")
	}

	path := filepath.Join(t.TempDir(), "town.png")
	r := New(nil, 2)
	if err := r.SavePNG(m, path); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("map file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Errorf("map file is empty")
	}
}

func TestRenderRejectsEmptyModel(t *testing.T) {
	r := New(nil, 2)
	if err := r.SavePNG(&town.Model{}, filepath.Join(t.TempDir(), "x.png")); err == nil {
		t.Fatalf("expected an error for an empty model")
	}
}
