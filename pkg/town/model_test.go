package town

import (
	"testing"

	"github.com/townforge/townforge/pkg/geom"
	"github.com/townforge/townforge/pkg/rng"
)

// gridPatches builds a 2x2 grid of 10x10 square patches sharing their
// boundary vertex instances, the way Voronoi regions do.
func gridPatches() []*Patch {
	pts := make(map[[2]int]*geom.Point)
	at := func(x, y int) *geom.Point {
		key := [2]int{x, y}
		if p, ok := pts[key]; ok {
			return p
		}
		p := geom.Pt(float64(x)*10, float64(y)*10)
		pts[key] = p
		return p
	}
	cell := func(x, y int) *Patch {
		return newPatch(geom.NewPolygon(at(x, y), at(x+1, y), at(x+1, y+1), at(x, y+1)))
	}
	return []*Patch{cell(0, 0), cell(1, 0), cell(0, 1), cell(1, 1)}
}

func TestFindCircumferenceSinglePatch(t *testing.T) {
	m := &Model{}
	p := newPatch(square10())
	ring := m.findCircumference([]*Patch{p})
	if ring.Len() != 4 {
		t.Fatalf("expected 4 vertices, got %d", ring.Len())
	}
	for i, v := range ring.Vertices {
		if v != p.Shape.Vertices[i] {
			t.Errorf("circumference must preserve vertex instances")
		}
	}
}

func TestFindCircumferenceGrid(t *testing.T) {
	m := &Model{}
	patches := gridPatches()
	ring := m.findCircumference(patches)
	if ring.Len() != 8 {
		t.Fatalf("expected 8 boundary vertices, got %d", ring.Len())
	}
	if !approxEqual(ring.Square(), 400, 0.001) {
		t.Errorf("expected boundary area 400, got %f", ring.Square())
	}
	// The shared center vertex is interior and must not appear.
	for _, v := range ring.Vertices {
		if v.X == 10 && v.Y == 10 {
			t.Errorf("interior vertex leaked into the circumference")
		}
	}
	// Boundary vertices are the patch instances themselves.
	found := false
	for _, v := range ring.Vertices {
		if v == patches[0].Shape.Vertices[0] {
			found = true
		}
	}
	if !found {
		t.Errorf("circumference should reference patch vertex instances")
	}
}

func TestSharedVertexMergePropagates(t *testing.T) {
	patches := gridPatches()
	m := &Model{Patches: patches, Inner: patches}
	// The shared corner instance appears in all four patches.
	shared := patches[0].Shape.Vertices[2]
	count := len(m.patchByVertex(shared))
	if count != 4 {
		t.Fatalf("expected the center vertex in 4 patches, got %d", count)
	}
	shared.Set(11, 11)
	for _, p := range patches {
		if !p.Shape.Contains(shared) {
			t.Errorf("mutation must not break identity membership")
		}
	}
	if patches[3].Shape.Vertices[0].X != 11 {
		t.Errorf("mutation should be visible through every patch")
	}
}

func TestGetNeighbours(t *testing.T) {
	patches := gridPatches()
	m := &Model{Patches: patches}
	left := patches[0]
	right := patches[1]
	if !left.Shape.Borders(right.Shape) {
		t.Fatalf("grid neighbors should border")
	}
	ns := m.getNeighbours(left)
	if len(ns) != 2 {
		t.Errorf("corner cell of a 2x2 grid has 2 bordering cells, got %d", len(ns))
	}
}

func TestWardTemplateMix(t *testing.T) {
	tpl := wardTemplate()
	if len(tpl) != 36 {
		t.Fatalf("expected 36 template entries, got %d", len(tpl))
	}
	counts := map[*wardKind]int{}
	for _, k := range tpl {
		counts[k]++
	}
	if counts[kindCraftsmen] != 21 {
		t.Errorf("expected 21 craftsmen entries, got %d", counts[kindCraftsmen])
	}
	if counts[kindSlum] != 5 {
		t.Errorf("expected 5 slum entries, got %d", counts[kindSlum])
	}
	if counts[kindMarket] != 2 || counts[kindPatriciate] != 2 || counts[kindMerchant] != 2 {
		t.Errorf("expected doubled market/patriciate/merchant entries")
	}
	if counts[kindCathedral] != 1 || counts[kindAdministration] != 1 || counts[kindMilitary] != 1 || counts[kindPark] != 1 {
		t.Errorf("expected single specialty entries")
	}
}

func TestCityBlockInsets(t *testing.T) {
	// Convex patch inside an unwalled city: regular streets inset 1.
	m := &Model{}
	convex := newPatch(square10())
	convex.WithinCity = true
	w := &baseWard{model: m, patch: convex}
	block := w.cityBlock()
	if !approxEqual(block.Square(), 64, 0.01) {
		t.Errorf("expected an 8x8 block, got area %f", block.Square())
	}

	concave := newPatch(geom.NewPolygon(
		geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10), geom.Pt(5, 5), geom.Pt(0, 10),
	))
	concave.WithinCity = true
	w2 := &baseWard{model: m, patch: concave}
	block2 := w2.cityBlock()
	if block2.Square() >= concave.Shape.Square() {
		t.Errorf("concave block should lose area: %f -> %f", concave.Shape.Square(), block2.Square())
	}
}

func TestCreateAlleysSubdivides(t *testing.T) {
	r := rng.New(7)
	poly := geom.NewPolygon(geom.Pt(0, 0), geom.Pt(40, 0), geom.Pt(40, 40), geom.Pt(0, 40))
	buildings := createAlleys(r, poly, 50, 0.3, 0.5, 0, true, 0)
	if len(buildings) < 2 {
		t.Fatalf("a 1600-area block with minSq 50 should subdivide, got %d buildings", len(buildings))
	}
	for _, b := range buildings {
		if b.Square() <= 0 {
			t.Errorf("building with non-positive area")
		}
		if b.Square() > 1600 {
			t.Errorf("building larger than the block")
		}
	}
}

func TestCreateOrthoBuildingProducesBlocks(t *testing.T) {
	r := rng.New(11)
	poly := geom.NewPolygon(geom.Pt(0, 0), geom.Pt(30, 0), geom.Pt(30, 20), geom.Pt(0, 20))
	blocks := createOrthoBuilding(r, poly, 40, 0.8)
	if len(blocks) == 0 {
		t.Fatalf("expected at least one block")
	}
	for _, b := range blocks {
		if b.Square() <= 0 {
			t.Errorf("block with non-positive area")
		}
	}
}

func TestCreateOrthoBuildingSmallPolyPassesThrough(t *testing.T) {
	r := rng.New(3)
	poly := geom.NewPolygon(geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(2, 2), geom.Pt(0, 2))
	blocks := createOrthoBuilding(r, poly, 40, 0.8)
	if len(blocks) != 1 || blocks[0] != poly {
		t.Fatalf("a polygon below the block size should be returned as-is")
	}
}
