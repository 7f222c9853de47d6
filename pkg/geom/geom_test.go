package geom

import (
	"math"
	"testing"
)

const tolerance = 1e-6

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func square10() *Polygon {
	return NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
}

// --- Point tests ---

func TestPointDistance(t *testing.T) {
	if d := Pt(0, 0).Distance(Pt(3, 4)); !approxEqual(d, 5, tolerance) {
		t.Errorf("expected distance 5, got %f", d)
	}
}

func TestPointNorm(t *testing.T) {
	n := Pt(3, 4).Norm(10)
	if !approxEqual(n.X, 6, tolerance) || !approxEqual(n.Y, 8, tolerance) {
		t.Errorf("expected (6,8), got (%f,%f)", n.X, n.Y)
	}
}

func TestPointRotate90(t *testing.T) {
	r := Pt(1, 0).Rotate90()
	if !approxEqual(r.X, 0, tolerance) || !approxEqual(r.Y, 1, tolerance) {
		t.Errorf("expected (0,1), got (%f,%f)", r.X, r.Y)
	}
}

func TestPointSetSharesThroughPolygons(t *testing.T) {
	v := Pt(1, 1)
	a := NewPolygon(v, Pt(2, 1), Pt(2, 2))
	b := NewPolygon(Pt(0, 0), v, Pt(0, 2))
	v.Set(5, 5)
	if a.Vertices[0].X != 5 || b.Vertices[1].X != 5 {
		t.Errorf("shared vertex mutation not observed by both polygons")
	}
}

// --- Polygon tests ---

func TestPolygonSquare(t *testing.T) {
	if a := square10().Square(); !approxEqual(a, 100, tolerance) {
		t.Errorf("expected area 100, got %f", a)
	}
	tri := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(0, 10))
	if a := tri.Square(); !approxEqual(a, 50, tolerance) {
		t.Errorf("expected area 50, got %f", a)
	}
}

func TestPolygonPerimeter(t *testing.T) {
	if p := square10().Perimeter(); !approxEqual(p, 40, tolerance) {
		t.Errorf("expected perimeter 40, got %f", p)
	}
}

func TestCompactness(t *testing.T) {
	circle := Regular(64, 10)
	if c := circle.Compactness(); c < 0.99 || c > 1.0 {
		t.Errorf("expected near-1 compactness for circle, got %f", c)
	}
	if c := square10().Compactness(); !approxEqual(c, math.Pi/4, 0.001) {
		t.Errorf("expected pi/4 for square, got %f", c)
	}
}

func TestCenterAndCentroid(t *testing.T) {
	sq := square10()
	c := sq.Center()
	if !approxEqual(c.X, 5, tolerance) || !approxEqual(c.Y, 5, tolerance) {
		t.Errorf("expected center (5,5), got (%f,%f)", c.X, c.Y)
	}
	cc := sq.Centroid()
	if !approxEqual(cc.X, 5, tolerance) || !approxEqual(cc.Y, 5, tolerance) {
		t.Errorf("expected centroid (5,5), got (%f,%f)", cc.X, cc.Y)
	}
}

func TestIsConvex(t *testing.T) {
	if !square10().IsConvex() {
		t.Errorf("square should be convex")
	}
	concave := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(5, 5), Pt(0, 10))
	if concave.IsConvex() {
		t.Errorf("L-shaped ring should not be convex")
	}
}

func TestNextPrevByIdentity(t *testing.T) {
	sq := square10()
	v := sq.Vertices[1]
	if sq.Next(v) != sq.Vertices[2] || sq.Prev(v) != sq.Vertices[0] {
		t.Errorf("Next/Prev should walk by instance")
	}
	if sq.Next(Pt(10, 0)) != nil {
		t.Errorf("value-equal but distinct instance must not be found")
	}
}

func TestFindEdgeDirected(t *testing.T) {
	sq := square10()
	if sq.FindEdge(sq.Vertices[0], sq.Vertices[1]) != 0 {
		t.Errorf("edge 0->1 should be index 0")
	}
	if sq.FindEdge(sq.Vertices[1], sq.Vertices[0]) != -1 {
		t.Errorf("reversed edge should not be found")
	}
}

func TestSmoothVertexEqPreservesRegularShape(t *testing.T) {
	tri := Regular(3, 10)
	smoothed := tri.SmoothVertexEq(3)
	c := smoothed.Center()
	if !approxEqual(c.X, 0, tolerance) || !approxEqual(c.Y, 0, tolerance) {
		t.Errorf("smoothing moved the centroid to (%f,%f)", c.X, c.Y)
	}
	r0 := smoothed.Vertices[0].Len()
	for _, v := range smoothed.Vertices {
		if !approxEqual(v.Len(), r0, tolerance) {
			t.Errorf("smoothed triangle is not regular")
		}
	}
	side0 := smoothed.Vertices[0].Distance(smoothed.Vertices[1])
	side1 := smoothed.Vertices[1].Distance(smoothed.Vertices[2])
	if !approxEqual(side0, side1, tolerance) {
		t.Errorf("smoothed triangle sides differ: %f vs %f", side0, side1)
	}
}

func TestShrinkZeroIsIdentity(t *testing.T) {
	sq := square10()
	out := sq.Shrink([]float64{0, 0, 0, 0})
	for i, v := range out.Vertices {
		orig := sq.Vertices[i]
		if !approxEqual(v.X, orig.X, tolerance) || !approxEqual(v.Y, orig.Y, tolerance) {
			t.Errorf("vertex %d moved: (%f,%f) vs (%f,%f)", i, v.X, v.Y, orig.X, orig.Y)
		}
		if v == orig {
			t.Errorf("shrink must allocate fresh points")
		}
	}
}

func TestShrinkSquare(t *testing.T) {
	out := square10().ShrinkEq(1)
	if a := out.Square(); !approxEqual(a, 64, 0.001) {
		t.Errorf("expected area 64 after shrinking 10x10 by 1, got %f", a)
	}
}

func TestBufferConcave(t *testing.T) {
	concave := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(5, 5), Pt(0, 10))
	before := concave.Square()
	out := concave.BufferEq(0.5)
	if out.Square() >= before {
		t.Errorf("buffer should reduce area: %f -> %f", before, out.Square())
	}
}

func TestCutSquareInHalves(t *testing.T) {
	sq := square10()
	halves := sq.Cut(Pt(5, -1), Pt(5, 11), 0)
	if len(halves) != 2 {
		t.Fatalf("expected 2 halves, got %d", len(halves))
	}
	total := halves[0].Square() + halves[1].Square()
	if !approxEqual(total, 100, 0.001) {
		t.Errorf("halves should partition the area, got %f", total)
	}
	if !approxEqual(halves[0].Square(), 50, 0.001) {
		t.Errorf("vertical mid-cut should be even, got %f", halves[0].Square())
	}
}

func TestCutLeftHalfFirst(t *testing.T) {
	sq := square10()
	halves := sq.Cut(Pt(5, -1), Pt(5, 11), 0)
	// Cut direction points +y; the left side is x < 5.
	c := halves[0].Center()
	if c.X >= 5 {
		t.Errorf("first half should lie left of the cut, center at (%f,%f)", c.X, c.Y)
	}
}

func TestCutWithGapRemovesCorridor(t *testing.T) {
	sq := square10()
	halves := sq.Cut(Pt(5, -1), Pt(5, 11), 1)
	if len(halves) != 2 {
		t.Fatalf("expected 2 halves, got %d", len(halves))
	}
	total := halves[0].Square() + halves[1].Square()
	if !approxEqual(total, 90, 0.01) {
		t.Errorf("gap 1 over height 10 should remove area 10, got total %f", total)
	}
}

func TestCutMissReturnsClone(t *testing.T) {
	sq := square10()
	out := sq.Cut(Pt(20, -1), Pt(20, 11), 0)
	if len(out) != 1 {
		t.Fatalf("expected 1 polygon, got %d", len(out))
	}
	if !approxEqual(out[0].Square(), 100, tolerance) {
		t.Errorf("miss should return the full shape")
	}
	if out[0].Vertices[0] == sq.Vertices[0] {
		t.Errorf("miss should return a clone, not the same instances")
	}
}

func TestSplitSharesChordInstances(t *testing.T) {
	sq := square10()
	halves := sq.Split(sq.Vertices[0], sq.Vertices[2])
	if len(halves) != 2 {
		t.Fatalf("expected 2 halves, got %d", len(halves))
	}
	if !halves[0].Contains(sq.Vertices[0]) || !halves[1].Contains(sq.Vertices[0]) {
		t.Errorf("both halves must reference the chord vertex instances")
	}
	total := halves[0].Square() + halves[1].Square()
	if !approxEqual(total, 100, tolerance) {
		t.Errorf("split halves should partition the area, got %f", total)
	}
}

func TestInterpolateWeights(t *testing.T) {
	sq := square10()
	w := sq.InterpolateWeights(Pt(5, 5))
	sum := 0.0
	for _, wi := range w {
		sum += wi
		if !approxEqual(wi, 0.25, tolerance) {
			t.Errorf("center weights should be uniform, got %v", w)
		}
	}
	if !approxEqual(sum, 1, tolerance) {
		t.Errorf("weights should sum to 1, got %f", sum)
	}
}

func TestBordersSharedEdge(t *testing.T) {
	a, b := Pt(10, 0), Pt(10, 10)
	left := NewPolygon(Pt(0, 0), a, b, Pt(0, 10))
	right := NewPolygon(a, Pt(20, 0), Pt(20, 10), b)
	if !left.Borders(right) {
		t.Errorf("polygons sharing an edge should border each other")
	}
	far := NewPolygon(Pt(30, 0), Pt(40, 0), Pt(40, 10))
	if left.Borders(far) {
		t.Errorf("disjoint polygons should not border")
	}
}
