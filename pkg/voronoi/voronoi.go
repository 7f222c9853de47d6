// Package voronoi implements an incremental Bowyer–Watson triangulation and
// the Voronoi regions derived from it. Region vertices are triangle
// circumcenters; two regions sharing an edge hold the same circumcenter
// instances, which is what gives the town mesh its shared-vertex identity.
package voronoi

import (
	"math"
	"sort"

	"github.com/townforge/townforge/pkg/geom"
)

// Triangle is a triangulation face with its circumcircle. C is allocated
// once per triangle and reused by every region incident to it.
type Triangle struct {
	P1, P2, P3 *geom.Point
	C          *geom.Point
	R          float64
}

// NewTriangle builds a triangle with a fixed winding (clockwise with the y
// axis pointing up) and its circumcenter.
func NewTriangle(p1, p2, p3 *geom.Point) *Triangle {
	s := (p2.X-p1.X)*(p2.Y+p1.Y) + (p3.X-p2.X)*(p3.Y+p2.Y) + (p1.X-p3.X)*(p1.Y+p3.Y)
	t := &Triangle{P1: p1}
	if s > 0 {
		t.P2, t.P3 = p2, p3
	} else {
		t.P2, t.P3 = p3, p2
	}

	x1 := (p1.X + t.P2.X) / 2
	y1 := (p1.Y + t.P2.Y) / 2
	x2 := (t.P2.X + t.P3.X) / 2
	y2 := (t.P2.Y + t.P3.Y) / 2

	dx1 := p1.Y - t.P2.Y
	dy1 := t.P2.X - p1.X
	dx2 := t.P2.Y - t.P3.Y
	dy2 := t.P3.X - t.P2.X

	var t2 float64
	if math.Abs(dx1) < 1e-10 {
		if math.Abs(dx2) > 1e-10 {
			t2 = (x1 - x2) / dx2
		}
	} else {
		tg1 := dy1 / dx1
		denom := dy2 - dx2*tg1
		if math.Abs(denom) > 1e-10 {
			t2 = ((y1 - y2) - (x1-x2)*tg1) / denom
		}
	}

	t.C = geom.Pt(x2+dx2*t2, y2+dy2*t2)
	t.R = t.C.Distance(p1)
	return t
}

// HasEdge reports whether the triangle has the directed edge a→b.
func (t *Triangle) HasEdge(a, b *geom.Point) bool {
	return (t.P1 == a && t.P2 == b) ||
		(t.P2 == a && t.P3 == b) ||
		(t.P3 == a && t.P1 == b)
}

func (t *Triangle) hasVertex(p *geom.Point) bool {
	return t.P1 == p || t.P2 == p || t.P3 == p
}

// Region is the Voronoi cell of a seed point; its vertices are the incident
// triangles in counterclockwise angular order around the seed.
type Region struct {
	Seed     *geom.Point
	Vertices []*Triangle
}

func (r *Region) sortVertices() {
	sort.SliceStable(r.Vertices, func(i, j int) bool {
		ai, di := r.angleDist(r.Vertices[i])
		aj, dj := r.angleDist(r.Vertices[j])
		if ai != aj {
			return ai < aj
		}
		return di < dj
	})
}

func (r *Region) angleDist(t *Triangle) (float64, float64) {
	x := t.C.X - r.Seed.X
	y := t.C.Y - r.Seed.Y
	return math.Atan2(y, x), t.C.Distance(r.Seed)
}

// Center returns the mean of the region's circumcenters as a fresh point.
func (r *Region) Center() *geom.Point {
	if len(r.Vertices) == 0 {
		return r.Seed.Clone()
	}
	c := geom.Pt(0, 0)
	for _, v := range r.Vertices {
		c.X += v.C.X
		c.Y += v.C.Y
	}
	c.X /= float64(len(r.Vertices))
	c.Y /= float64(len(r.Vertices))
	return c
}

// Borders reports whether two regions share a Voronoi edge.
func (r *Region) Borders(other *Region) bool {
	len1 := len(r.Vertices)
	len2 := len(other.Vertices)
	for i1, v1 := range r.Vertices {
		for i2, v2 := range other.Vertices {
			if v1 == v2 {
				if r.Vertices[(i1+1)%len1] == other.Vertices[(i2+len2-1)%len2] {
					return true
				}
			}
		}
	}
	return false
}

// Voronoi is an incrementally built diagram over a rectangular frame. The
// four frame corners bound every inserted point; regions touching them are
// not part of the partitioning.
type Voronoi struct {
	Triangles []*Triangle
	Points    []*geom.Point
	Frame     []*geom.Point

	regions      map[*geom.Point]*Region
	regionsDirty bool
}

// New creates a diagram whose frame spans the given rectangle.
func New(minx, miny, maxx, maxy float64) *Voronoi {
	c1 := geom.Pt(minx, miny)
	c2 := geom.Pt(minx, maxy)
	c3 := geom.Pt(maxx, miny)
	c4 := geom.Pt(maxx, maxy)

	v := &Voronoi{
		Frame:   []*geom.Point{c1, c2, c3, c4},
		Points:  []*geom.Point{c1, c2, c3, c4},
		regions: make(map[*geom.Point]*Region),
	}
	v.Triangles = append(v.Triangles, NewTriangle(c1, c2, c3), NewTriangle(c2, c3, c4))
	for _, p := range v.Points {
		v.regions[p] = v.buildRegion(p)
	}
	return v
}

// Build constructs a diagram containing all the given point instances. The
// frame extends half the point cloud's span beyond its bounding box.
func Build(vertices []*geom.Point) *Voronoi {
	if len(vertices) == 0 {
		return New(-100, -100, 100, 100)
	}
	minx, miny := math.Inf(1), math.Inf(1)
	maxx, maxy := math.Inf(-1), math.Inf(-1)
	for _, v := range vertices {
		minx = math.Min(minx, v.X)
		miny = math.Min(miny, v.Y)
		maxx = math.Max(maxx, v.X)
		maxy = math.Max(maxy, v.Y)
	}
	dx := (maxx - minx) * 0.5
	dy := (maxy - miny) * 0.5

	v := New(minx-dx/2, miny-dy/2, maxx+dx/2, maxy+dy/2)
	for _, p := range vertices {
		v.AddPoint(p)
	}
	return v
}

// AddPoint inserts a point: every triangle whose circumcircle contains it is
// removed and the resulting star polygon is retriangulated around the point.
func (v *Voronoi) AddPoint(p *geom.Point) {
	var toSplit []*Triangle
	for _, tr := range v.Triangles {
		if p.Distance(tr.C) < tr.R {
			toSplit = append(toSplit, tr)
		}
	}
	if len(toSplit) == 0 {
		return
	}
	v.Points = append(v.Points, p)

	// Boundary edges of the removed star, as parallel start/end arrays.
	var a, b []*geom.Point
	for _, t1 := range toSplit {
		e1, e2, e3 := true, true, true
		for _, t2 := range toSplit {
			if t2 == t1 {
				continue
			}
			if e1 && t2.HasEdge(t1.P2, t1.P1) {
				e1 = false
			}
			if e2 && t2.HasEdge(t1.P3, t1.P2) {
				e2 = false
			}
			if e3 && t2.HasEdge(t1.P1, t1.P3) {
				e3 = false
			}
			if !e1 && !e2 && !e3 {
				break
			}
		}
		if e1 {
			a = append(a, t1.P1)
			b = append(b, t1.P2)
		}
		if e2 {
			a = append(a, t1.P2)
			b = append(b, t1.P3)
		}
		if e3 {
			a = append(a, t1.P3)
			b = append(b, t1.P1)
		}
	}

	// Walk the boundary ring, fanning new triangles around p.
	if len(a) > 0 {
		index := 0
		for range a {
			v.Triangles = append(v.Triangles, NewTriangle(p, a[index], b[index]))
			index = indexOfPoint(a, b[index])
			if index <= 0 {
				break
			}
		}
	}

	for _, tr := range toSplit {
		v.removeTriangle(tr)
	}
	v.regionsDirty = true
}

func (v *Voronoi) removeTriangle(t *Triangle) {
	for i, tr := range v.Triangles {
		if tr == t {
			v.Triangles = append(v.Triangles[:i], v.Triangles[i+1:]...)
			return
		}
	}
}

func indexOfPoint(pts []*geom.Point, p *geom.Point) int {
	for i, q := range pts {
		if q == p {
			return i
		}
	}
	return -1
}

func (v *Voronoi) isFramePoint(p *geom.Point) bool {
	for _, f := range v.Frame {
		if f == p {
			return true
		}
	}
	return false
}

func (v *Voronoi) isReal(t *Triangle) bool {
	return !v.isFramePoint(t.P1) && !v.isFramePoint(t.P2) && !v.isFramePoint(t.P3)
}

func (v *Voronoi) buildRegion(p *geom.Point) *Region {
	r := &Region{Seed: p}
	for _, tr := range v.Triangles {
		if tr.hasVertex(p) {
			r.Vertices = append(r.Vertices, tr)
		}
	}
	r.sortVertices()
	return r
}

// Region returns the cell of the given seed point.
func (v *Voronoi) Region(p *geom.Point) *Region {
	v.refreshRegions()
	return v.regions[p]
}

func (v *Voronoi) refreshRegions() {
	if !v.regionsDirty {
		return
	}
	v.regions = make(map[*geom.Point]*Region, len(v.Points))
	for _, p := range v.Points {
		v.regions[p] = v.buildRegion(p)
	}
	v.regionsDirty = false
}

// Partitioning returns the regions whose every vertex triangle avoids the
// frame, in seed order.
func (v *Voronoi) Partitioning() []*Region {
	v.refreshRegions()
	var result []*Region
	for _, p := range v.Points {
		r := v.regions[p]
		real := len(r.Vertices) > 0
		for _, tr := range r.Vertices {
			if !v.isReal(tr) {
				real = false
				break
			}
		}
		if real {
			result = append(result, r)
		}
	}
	return result
}

// Triangulation returns the triangles not touching the frame.
func (v *Voronoi) Triangulation() []*Triangle {
	var result []*Triangle
	for _, tr := range v.Triangles {
		if v.isReal(tr) {
			result = append(result, tr)
		}
	}
	return result
}

// Relax performs one Lloyd step: every seed in toRelax moves to its region's
// center (the mean of its circumcenters) and the diagram is rebuilt over the
// updated point set.
func Relax(v *Voronoi, toRelax []*geom.Point) *Voronoi {
	regions := v.Partitioning()

	points := make([]*geom.Point, 0, len(v.Points))
	for _, p := range v.Points {
		if !v.isFramePoint(p) {
			points = append(points, p)
		}
	}

	relaxSet := make(map[*geom.Point]bool, len(toRelax))
	for _, p := range toRelax {
		relaxSet[p] = true
	}
	for _, r := range regions {
		if relaxSet[r.Seed] {
			if i := indexOfPoint(points, r.Seed); i != -1 {
				points = append(points[:i], points[i+1:]...)
			}
			points = append(points, r.Center())
		}
	}
	return Build(points)
}
