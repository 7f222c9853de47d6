package voronoi

import (
	"math"
	"testing"

	"github.com/townforge/townforge/pkg/geom"
)

func TestAddSinglePoint(t *testing.T) {
	p := geom.Pt(0, 0)
	v := New(-100, -100, 100, 100)
	v.AddPoint(p)
	if len(v.Points) != 5 {
		t.Fatalf("expected frame + 1 point, got %d", len(v.Points))
	}
	r := v.Region(p)
	if r == nil || len(r.Vertices) == 0 {
		t.Fatalf("inserted point should own a region")
	}
}

func TestPartitioningDropsFrameRegions(t *testing.T) {
	// A ring of points around one interior point: only the interior point's
	// region avoids frame triangles.
	pts := []*geom.Point{geom.Pt(0, 0)}
	for i := 0; i < 8; i++ {
		a := float64(i) / 8 * 2 * math.Pi
		pts = append(pts, geom.Pt(50*math.Cos(a), 50*math.Sin(a)))
	}
	v := Build(pts)
	regions := v.Partitioning()
	if len(regions) == 0 {
		t.Fatalf("expected at least the central region")
	}
	for _, r := range regions {
		for _, f := range v.Frame {
			if r.Seed == f {
				t.Fatalf("partitioning must not contain frame regions")
			}
		}
	}
}

func TestNeighborRegionsShareCircumcenterInstances(t *testing.T) {
	pts := []*geom.Point{geom.Pt(0, 0), geom.Pt(20, 0)}
	for i := 0; i < 10; i++ {
		a := float64(i) / 10 * 2 * math.Pi
		pts = append(pts, geom.Pt(10+60*math.Cos(a), 60*math.Sin(a)))
	}
	v := Build(pts)
	r1 := v.Region(pts[0])
	r2 := v.Region(pts[1])
	shared := 0
	for _, t1 := range r1.Vertices {
		for _, t2 := range r2.Vertices {
			if t1 == t2 {
				if t1.C != t2.C {
					t.Fatalf("same triangle must expose one circumcenter instance")
				}
				shared++
			}
		}
	}
	if shared < 2 {
		t.Fatalf("adjacent seeds should share at least two triangles, got %d", shared)
	}
}

func TestRelaxMovesSeedTowardRegionCenter(t *testing.T) {
	pts := []*geom.Point{geom.Pt(3, 2)}
	for i := 0; i < 8; i++ {
		a := float64(i) / 8 * 2 * math.Pi
		pts = append(pts, geom.Pt(40*math.Cos(a), 40*math.Sin(a)))
	}
	v := Build(pts)
	before := v.Region(pts[0]).Center()

	relaxed := Relax(v, []*geom.Point{pts[0]})
	// The relaxed diagram holds a fresh point at the old region's center.
	found := false
	for _, p := range relaxed.Points {
		if p.Distance(before) < 1e-9 {
			found = true
		}
		if p == pts[0] {
			t.Fatalf("relaxed seed should be replaced by a fresh point")
		}
	}
	if !found {
		t.Fatalf("expected a point at the previous region center")
	}
}

func TestTriangleCircumcenterEquidistant(t *testing.T) {
	tr := NewTriangle(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, 10))
	d1 := tr.C.Distance(tr.P1)
	d2 := tr.C.Distance(tr.P2)
	d3 := tr.C.Distance(tr.P3)
	if math.Abs(d1-d2) > 1e-6 || math.Abs(d1-d3) > 1e-6 {
		t.Fatalf("circumcenter not equidistant: %f %f %f", d1, d2, d3)
	}
}
