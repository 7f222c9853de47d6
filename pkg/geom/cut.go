package geom

// Cut splits the polygon by the infinite line through p1 and p2. It returns
// two halves when the line crosses the ring twice, otherwise a single clone.
// The half on the left of the p1→p2 direction comes first. A positive gap
// peels half the gap off each side of the cut, leaving a corridor.
func (p *Polygon) Cut(p1, p2 *Point, gap float64) []*Polygon {
	x1, y1 := p1.X, p1.Y
	dx1, dy1 := p2.X-x1, p2.Y-y1

	n := len(p.Vertices)
	edge1, edge2 := 0, 0
	ratio1, ratio2 := 0.0, 0.0
	count := 0

	for i := 0; i < n; i++ {
		v0 := p.Vertices[i]
		v1 := p.Vertices[(i+1)%n]
		x2, y2 := v0.X, v0.Y
		dx2, dy2 := v1.X-x2, v1.Y-y2

		t1, t2, ok := IntersectLines(x1, y1, dx1, dy1, x2, y2, dx2, dy2)
		if ok && t2 >= 0 && t2 <= 1 {
			switch count {
			case 0:
				edge1, ratio1 = i, t1
			case 1:
				edge2, ratio2 = i, t1
			}
			count++
		}
	}

	if count < 2 {
		return []*Polygon{p.Clone()}
	}

	point1 := Interpolate(p1, p2, ratio1)
	point2 := Interpolate(p1, p2, ratio2)

	half1 := &Polygon{Vertices: append(append([]*Point{point1}, p.Vertices[edge1+1:edge2+1]...), point2)}
	rest := append([]*Point{point2}, p.Vertices[edge2+1:]...)
	rest = append(rest, p.Vertices[:edge1+1]...)
	half2 := &Polygon{Vertices: append(rest, point1)}

	if gap > 0 {
		half1 = half1.Peel(point2, gap/2)
		half2 = half2.Peel(point1, gap/2)
	}

	v := p.Vector(p.Vertices[edge1])
	if Cross(dx1, dy1, v.X, v.Y) > 0 {
		return []*Polygon{half1, half2}
	}
	return []*Polygon{half2, half1}
}

// Peel cuts the polygon parallel to the edge starting at v1, d inside it,
// and returns the part away from that edge.
func (p *Polygon) Peel(v1 *Point, d float64) *Polygon {
	i1 := p.IndexOf(v1)
	if i1 == -1 {
		return p.Clone()
	}
	v2 := p.Vertices[(i1+1)%len(p.Vertices)]
	v := v2.Sub(v1)
	n := v.Rotate90().Norm(d)
	return p.Cut(v1.Add(n), v2.Add(n), 0)[0]
}

// Shrink moves edge i inward by d[i]; each new vertex is the intersection of
// the two shifted edges meeting there. The polygon must be convex.
func (p *Polygon) Shrink(d []float64) *Polygon {
	n := len(p.Vertices)
	type line struct{ x, y, dx, dy float64 }
	lines := make([]line, n)
	for i := 0; i < n; i++ {
		v0 := p.Vertices[i]
		v1 := p.Vertices[(i+1)%n]
		e := v1.Sub(v0)
		dist := 0.0
		if i < len(d) {
			dist = d[i]
		}
		off := e.Rotate90().Norm(dist)
		lines[i] = line{v0.X + off.X, v0.Y + off.Y, e.X, e.Y}
	}
	out := make([]*Point, n)
	for i := 0; i < n; i++ {
		prev := lines[(i+n-1)%n]
		cur := lines[i]
		t1, _, ok := IntersectLines(prev.x, prev.y, prev.dx, prev.dy, cur.x, cur.y, cur.dx, cur.dy)
		if !ok {
			out[i] = Pt(cur.x, cur.y)
			continue
		}
		out[i] = Pt(prev.x+prev.dx*t1, prev.y+prev.dy*t1)
	}
	return &Polygon{Vertices: out}
}

// ShrinkEq shrinks every edge by the same distance.
func (p *Polygon) ShrinkEq(d float64) *Polygon {
	dists := make([]float64, len(p.Vertices))
	for i := range dists {
		dists[i] = d
	}
	return p.Shrink(dists)
}

// Buffer is the non-convex generalization of Shrink: it cuts the polygon by
// each inward-shifted edge in turn, keeping the interior part.
func (p *Polygon) Buffer(d []float64) *Polygon {
	q := p.Clone()
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		dist := 0.0
		if i < len(d) {
			dist = d[i]
		}
		if dist == 0 {
			continue
		}
		v0 := p.Vertices[i]
		v1 := p.Vertices[(i+1)%n]
		e := v1.Sub(v0)
		off := e.Rotate90().Norm(dist)
		q = q.Cut(v0.Add(off), v1.Add(off), 0)[0]
	}
	return q
}

// BufferEq buffers every edge by the same distance.
func (p *Polygon) BufferEq(d float64) *Polygon {
	dists := make([]float64, len(p.Vertices))
	for i := range dists {
		dists[i] = d
	}
	return p.Buffer(dists)
}
