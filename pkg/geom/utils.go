package geom

import "math"

const epsilon = 1e-10

// Cross returns the 2D cross product of (x1,y1) and (x2,y2).
func Cross(x1, y1, x2, y2 float64) float64 {
	return x1*y2 - y1*x2
}

// IntersectLines intersects the lines (x1,y1)+t1·(dx1,dy1) and
// (x2,y2)+t2·(dx2,dy2). It returns (t1, t2) and false for parallel lines.
func IntersectLines(x1, y1, dx1, dy1, x2, y2, dx2, dy2 float64) (float64, float64, bool) {
	d := dx1*dy2 - dy1*dx2
	if math.Abs(d) < epsilon {
		return 0, 0, false
	}
	t2 := ((x2-x1)*dy1 - (y2-y1)*dx1) / d
	var t1 float64
	if math.Abs(dx1) > math.Abs(dy1) {
		t1 = (x2 + t2*dx2 - x1) / dx1
	} else {
		t1 = (y2 + t2*dy2 - y1) / dy1
	}
	return t1, t2, true
}

// DistanceToSegment returns the distance from (px,py) to the segment starting
// at (x1,y1) with direction (dx,dy).
func DistanceToSegment(x1, y1, dx, dy, px, py float64) float64 {
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((px-x1)*dx + (py-y1)*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}
