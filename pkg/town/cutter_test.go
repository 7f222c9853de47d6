package town

import (
	"math"
	"testing"

	"github.com/townforge/townforge/pkg/geom"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func square10() *geom.Polygon {
	return geom.NewPolygon(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(0, 10))
}

func TestBisectPreservesArea(t *testing.T) {
	sq := square10()
	halves := bisect(sq, sq.Vertices[0], 0.5, 0, 0)
	if len(halves) != 2 {
		t.Fatalf("expected 2 halves, got %d", len(halves))
	}
	total := halves[0].Square() + halves[1].Square()
	if !approxEqual(total, 100, 0.001) {
		t.Errorf("bisect with no gap should preserve area, got %f", total)
	}
}

func TestBisectWithGapLosesCorridor(t *testing.T) {
	sq := square10()
	halves := bisect(sq, sq.Vertices[0], 0.5, 0, 1)
	if len(halves) != 2 {
		t.Fatalf("expected 2 halves, got %d", len(halves))
	}
	total := halves[0].Square() + halves[1].Square()
	if total >= 100 {
		t.Errorf("gap should remove a strip, got total %f", total)
	}
}

func TestRadialSectorsPartitionArea(t *testing.T) {
	sq := square10()
	sectors := radial(sq, nil, 0)
	if len(sectors) != 4 {
		t.Fatalf("expected 4 sectors, got %d", len(sectors))
	}
	total := 0.0
	for _, s := range sectors {
		total += s.Square()
	}
	if !approxEqual(total, 100, 0.001) {
		t.Errorf("radial sectors should partition the area, got %f", total)
	}
}

func TestRadialWithGapShrinksSectors(t *testing.T) {
	sq := square10()
	sectors := radial(sq, nil, 1)
	total := 0.0
	for _, s := range sectors {
		total += s.Square()
	}
	if total >= 100 {
		t.Errorf("gap should shrink sectors, got total %f", total)
	}
}

func TestSemiRadialSkipsCenterVertex(t *testing.T) {
	sq := square10()
	sectors := semiRadial(sq, sq.Vertices[0], 0)
	// Two of four edges touch the chosen vertex; they yield no sector.
	if len(sectors) != 2 {
		t.Fatalf("expected 2 sectors, got %d", len(sectors))
	}
}

func TestRingPeelsShells(t *testing.T) {
	sq := square10()
	shells := ring(sq, 2)
	if len(shells) != 4 {
		t.Fatalf("expected 4 shells, got %d", len(shells))
	}
	total := 0.0
	for _, s := range shells {
		if s.Square() <= 0 {
			t.Errorf("shell with non-positive area")
		}
		total += s.Square()
	}
	if total >= 100 {
		t.Errorf("shells should leave a core, got total %f", total)
	}
}

func TestRingThickerThanInradius(t *testing.T) {
	// Thickness beyond the inradius consumes the whole square; whatever
	// remains mid-peel is smaller than a single shell slice.
	sq := square10()
	shells := ring(sq, 6)
	total := 0.0
	for _, s := range shells {
		total += s.Square()
	}
	if total <= 50 {
		t.Errorf("thick ring should consume most of the polygon, got %f", total)
	}
}
