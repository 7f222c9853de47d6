// Package geom provides the 2D primitives for the town mesh. Vertices shared
// between patches are the same *Point instance, so writing through one patch
// is observed by every neighbor. Smoothing and shrinking allocate fresh
// points; cutting allocates fresh points only where the cut line crosses the
// ring and otherwise keeps the original vertex instances.
package geom

import "math"

// Point is a mutable 2D coordinate. Mesh vertices are compared by pointer
// identity, never by value.
type Point struct {
	X, Y float64
}

// Pt is a shorthand constructor.
func Pt(x, y float64) *Point {
	return &Point{X: x, Y: y}
}

// Clone returns a fresh instance with the same coordinates.
func (p *Point) Clone() *Point {
	return &Point{X: p.X, Y: p.Y}
}

// Set overwrites the coordinates in place. Every polygon holding this
// instance observes the change.
func (p *Point) Set(x, y float64) {
	p.X = x
	p.Y = y
}

// SetPt overwrites the coordinates from another point.
func (p *Point) SetPt(q *Point) {
	p.X = q.X
	p.Y = q.Y
}

// Add returns p + q as a new point.
func (p *Point) Add(q *Point) *Point {
	return &Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q as a new point.
func (p *Point) Sub(q *Point) *Point {
	return &Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p * s as a new point.
func (p *Point) Scale(s float64) *Point {
	return &Point{X: p.X * s, Y: p.Y * s}
}

// Len returns the distance from the origin.
func (p *Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Norm returns a copy scaled to the given length.
func (p *Point) Norm(length float64) *Point {
	l := p.Len()
	if l == 0 {
		return &Point{}
	}
	return &Point{X: p.X / l * length, Y: p.Y / l * length}
}

// Dot returns the dot product.
func (p *Point) Dot(q *Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Rotate90 returns p rotated 90 degrees counterclockwise.
func (p *Point) Rotate90() *Point {
	return &Point{X: -p.Y, Y: p.X}
}

// Atan returns the angle of the vector in radians.
func (p *Point) Atan() float64 {
	return math.Atan2(p.Y, p.X)
}

// Distance returns the Euclidean distance to q.
func (p *Point) Distance(q *Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Interpolate returns the point at ratio t on the segment p→q.
func Interpolate(p, q *Point, t float64) *Point {
	return &Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// MidPoint returns the midpoint of p and q.
func MidPoint(p, q *Point) *Point {
	return Interpolate(p, q, 0.5)
}
