package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/townforge/townforge/pkg/town"
)

func testModel(t *testing.T) *town.Model {
	t.Helper()
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		m, err := town.Generate(8, seed)
		if err == nil {
			return m
		}
	}
	t.Fatalf("no test seed produced a town")
	return nil
}

func TestDocumentRoundTripsThroughJSON(t *testing.T) {
	m := testModel(t)
	doc := FromModel(m)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, doc); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var decoded Document
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}
	if decoded.NPatches != m.NPatches || decoded.Seed != m.Seed() {
		t.Errorf("header fields lost in round trip")
	}
	if len(decoded.Patches) != len(m.Patches) {
		t.Errorf("expected %d patches, got %d", len(m.Patches), len(decoded.Patches))
	}
}

func TestDocumentYAML(t *testing.T) {
	m := testModel(t)
	var buf bytes.Buffer
	if err := Write(&buf, FromModel(m), "yaml"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "n_patches:") {
		t.Errorf("YAML output misses expected keys")
	}
}

func TestWriteRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, &Document{}, "xml"); err == nil {
		t.Fatalf("expected an error for an unknown format")
	}
}

func TestWardLabelsExported(t *testing.T) {
	m := testModel(t)
	doc := FromModel(m)
	labeled := 0
	for _, p := range doc.Patches {
		if p.WardType != "" {
			labeled++
		}
	}
	if labeled == 0 {
		t.Errorf("expected at least one labeled ward")
	}
}
