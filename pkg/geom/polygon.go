package geom

import "math"

// Polygon is an ordered ring of vertex references in counterclockwise order;
// the last vertex connects implicitly to the first. It does not own its
// points: meshes share vertex instances across polygons.
type Polygon struct {
	Vertices []*Point
}

// NewPolygon creates a polygon over the given vertex instances without
// copying them.
func NewPolygon(pts ...*Point) *Polygon {
	return &Polygon{Vertices: pts}
}

// Clone returns a polygon with fresh copies of every vertex.
func (p *Polygon) Clone() *Polygon {
	vs := make([]*Point, len(p.Vertices))
	for i, v := range p.Vertices {
		vs[i] = v.Clone()
	}
	return &Polygon{Vertices: vs}
}

// Len returns the number of vertices.
func (p *Polygon) Len() int {
	return len(p.Vertices)
}

// IndexOf returns the position of the vertex instance, or -1.
func (p *Polygon) IndexOf(v *Point) int {
	for i, q := range p.Vertices {
		if q == v {
			return i
		}
	}
	return -1
}

// Contains reports whether the vertex instance belongs to the ring.
func (p *Polygon) Contains(v *Point) bool {
	return p.IndexOf(v) != -1
}

// Square returns the unsigned area (shoelace formula).
func (p *Polygon) Square() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	s := 0.0
	for i := 0; i < n; i++ {
		v1 := p.Vertices[i]
		v2 := p.Vertices[(i+1)%n]
		s += v1.X*v2.Y - v2.X*v1.Y
	}
	return math.Abs(s) * 0.5
}

// Perimeter returns the total edge length.
func (p *Polygon) Perimeter() float64 {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		total += p.Vertices[i].Distance(p.Vertices[(i+1)%n])
	}
	return total
}

// Compactness returns 4π·area/perimeter²: 1 for a circle, smaller for
// elongated or concave shapes.
func (p *Polygon) Compactness() float64 {
	per := p.Perimeter()
	if per == 0 {
		return 0
	}
	return 4 * math.Pi * p.Square() / (per * per)
}

// Center returns the arithmetic mean of the vertices as a fresh point.
func (p *Polygon) Center() *Point {
	c := &Point{}
	n := len(p.Vertices)
	if n == 0 {
		return c
	}
	for _, v := range p.Vertices {
		c.X += v.X
		c.Y += v.Y
	}
	c.X /= float64(n)
	c.Y /= float64(n)
	return c
}

// Centroid returns the true area centroid as a fresh point.
func (p *Polygon) Centroid() *Point {
	n := len(p.Vertices)
	if n < 3 {
		return p.Center()
	}
	x, y, a := 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		v0 := p.Vertices[i]
		v1 := p.Vertices[(i+1)%n]
		f := Cross(v0.X, v0.Y, v1.X, v1.Y)
		a += f
		x += (v0.X + v1.X) * f
		y += (v0.Y + v1.Y) * f
	}
	if math.Abs(a) < epsilon {
		return p.Center()
	}
	s := 1 / (3 * a)
	return &Point{X: s * x, Y: s * y}
}

// ForEdge calls fn for every edge including the closing one.
func (p *Polygon) ForEdge(fn func(v0, v1 *Point)) {
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		fn(p.Vertices[i], p.Vertices[(i+1)%n])
	}
}

// ForSegment calls fn for every segment of an open polyline.
func (p *Polygon) ForSegment(fn func(v0, v1 *Point)) {
	for i := 0; i+1 < len(p.Vertices); i++ {
		fn(p.Vertices[i], p.Vertices[i+1])
	}
}

// Next returns the vertex after v, or nil if v is not in the ring.
func (p *Polygon) Next(v *Point) *Point {
	i := p.IndexOf(v)
	if i == -1 {
		return nil
	}
	return p.Vertices[(i+1)%len(p.Vertices)]
}

// Prev returns the vertex before v, or nil if v is not in the ring.
func (p *Polygon) Prev(v *Point) *Point {
	i := p.IndexOf(v)
	if i == -1 {
		return nil
	}
	n := len(p.Vertices)
	return p.Vertices[(i+n-1)%n]
}

// Vector returns the edge vector starting at v.
func (p *Polygon) Vector(v *Point) *Point {
	next := p.Next(v)
	if next == nil {
		return &Point{}
	}
	return next.Sub(v)
}

// FindEdge returns the index of the directed edge a→b, or -1.
func (p *Polygon) FindEdge(a, b *Point) int {
	i := p.IndexOf(a)
	if i == -1 {
		return -1
	}
	if p.Vertices[(i+1)%len(p.Vertices)] == b {
		return i
	}
	return -1
}

// Remove deletes the vertex instance from the ring.
func (p *Polygon) Remove(v *Point) {
	i := p.IndexOf(v)
	if i == -1 {
		return
	}
	p.Vertices = append(p.Vertices[:i], p.Vertices[i+1:]...)
}

// IsConvexVertex reports whether the interior angle at v turns left.
func (p *Polygon) IsConvexVertex(v *Point) bool {
	v0 := p.Prev(v)
	v2 := p.Next(v)
	if v0 == nil || v2 == nil {
		return false
	}
	return Cross(v.X-v0.X, v.Y-v0.Y, v2.X-v.X, v2.Y-v.Y) > 0
}

// IsConvex reports whether every vertex is convex.
func (p *Polygon) IsConvex() bool {
	for _, v := range p.Vertices {
		if !p.IsConvexVertex(v) {
			return false
		}
	}
	return true
}

// SmoothVertex returns a fresh point pulling v toward the average of its
// neighbors; f weighs the original position.
func (p *Polygon) SmoothVertex(v *Point, f float64) *Point {
	prev := p.Prev(v)
	next := p.Next(v)
	if prev == nil || next == nil {
		return v.Clone()
	}
	return &Point{
		X: (prev.X + v.X*f + next.X) / (2 + f),
		Y: (prev.Y + v.Y*f + next.Y) / (2 + f),
	}
}

// SmoothVertexEq returns a polygon with every vertex smoothed. The caller
// typically copies only interior vertices back.
func (p *Polygon) SmoothVertexEq(f float64) *Polygon {
	n := len(p.Vertices)
	if n < 3 {
		return p.Clone()
	}
	out := make([]*Point, n)
	for i := 0; i < n; i++ {
		v0 := p.Vertices[(i+n-1)%n]
		v1 := p.Vertices[i]
		v2 := p.Vertices[(i+1)%n]
		out[i] = &Point{
			X: (v0.X + v1.X*f + v2.X) / (2 + f),
			Y: (v0.Y + v1.Y*f + v2.Y) / (2 + f),
		}
	}
	return &Polygon{Vertices: out}
}

// Rotate rotates every vertex around the origin, in place.
func (p *Polygon) Rotate(angle float64) {
	cos, sin := math.Cos(angle), math.Sin(angle)
	for _, v := range p.Vertices {
		x := v.X*cos - v.Y*sin
		y := v.Y*cos + v.X*sin
		v.Set(x, y)
	}
}

// Offset translates every vertex by d, in place.
func (p *Polygon) Offset(d *Point) {
	for _, v := range p.Vertices {
		v.X += d.X
		v.Y += d.Y
	}
}

// Distance returns the minimal vertex distance to the point.
func (p *Polygon) Distance(q *Point) float64 {
	if len(p.Vertices) == 0 {
		return math.Inf(1)
	}
	min := p.Vertices[0].Distance(q)
	for _, v := range p.Vertices[1:] {
		if d := v.Distance(q); d < min {
			min = d
		}
	}
	return min
}

// Borders reports whether the two rings share an edge, in either direction.
func (p *Polygon) Borders(other *Polygon) bool {
	n2 := len(other.Vertices)
	for i, v := range p.Vertices {
		j := other.IndexOf(v)
		if j == -1 {
			continue
		}
		next := p.Vertices[(i+1)%len(p.Vertices)]
		if next == other.Vertices[(j+1)%n2] || next == other.Vertices[(j+n2-1)%n2] {
			return true
		}
	}
	return false
}

// MinVertex returns the vertex minimizing fn.
func (p *Polygon) MinVertex(fn func(*Point) float64) *Point {
	if len(p.Vertices) == 0 {
		return nil
	}
	best := p.Vertices[0]
	bestVal := fn(best)
	for _, v := range p.Vertices[1:] {
		if val := fn(v); val < bestVal {
			best, bestVal = v, val
		}
	}
	return best
}

// MaxVertex returns the vertex maximizing fn.
func (p *Polygon) MaxVertex(fn func(*Point) float64) *Point {
	if len(p.Vertices) == 0 {
		return nil
	}
	best := p.Vertices[0]
	bestVal := fn(best)
	for _, v := range p.Vertices[1:] {
		if val := fn(v); val > bestVal {
			best, bestVal = v, val
		}
	}
	return best
}

// Split cuts the ring along the chord between two existing vertices and
// returns the two halves. Both halves share the chord vertex instances.
func (p *Polygon) Split(v0, v1 *Point) []*Polygon {
	i1 := p.IndexOf(v0)
	i2 := p.IndexOf(v1)
	if i1 == -1 || i2 == -1 {
		return []*Polygon{p.Clone()}
	}
	return p.SplitAt(i1, i2)
}

// SplitAt cuts the ring along the chord between two vertex indices.
func (p *Polygon) SplitAt(i1, i2 int) []*Polygon {
	if i1 > i2 {
		i1, i2 = i2, i1
	}
	first := make([]*Point, 0, i2-i1+1)
	first = append(first, p.Vertices[i1:i2+1]...)
	second := make([]*Point, 0, len(p.Vertices)-(i2-i1)+1)
	second = append(second, p.Vertices[i2:]...)
	second = append(second, p.Vertices[:i1+1]...)
	return []*Polygon{
		{Vertices: first},
		{Vertices: second},
	}
}

// InterpolateWeights returns per-vertex inverse-distance weights for a point,
// normalized to sum to 1. Used for density interpolation over a patch.
func (p *Polygon) InterpolateWeights(c *Point) []float64 {
	weights := make([]float64, len(p.Vertices))
	total := 0.0
	for i, v := range p.Vertices {
		d := v.Distance(c)
		w := 1e10
		if d > 0 {
			w = 1 / d
		}
		weights[i] = w
		total += w
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// Rect returns a w×h rectangle centered at the origin.
func Rect(w, h float64) *Polygon {
	return NewPolygon(
		Pt(-w/2, -h/2),
		Pt(w/2, -h/2),
		Pt(w/2, h/2),
		Pt(-w/2, h/2),
	)
}

// Regular returns a regular n-gon with circumradius r centered at the origin.
func Regular(n int, r float64) *Polygon {
	vs := make([]*Point, n)
	for i := 0; i < n; i++ {
		a := float64(i) / float64(n) * 2 * math.Pi
		vs[i] = Pt(r*math.Cos(a), r*math.Sin(a))
	}
	return &Polygon{Vertices: vs}
}

// Circle returns a 16-gon approximation of a circle with radius r.
func Circle(r float64) *Polygon {
	return Regular(16, r)
}
