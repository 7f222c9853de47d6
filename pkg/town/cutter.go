package town

import (
	"math"
	"sort"

	"github.com/townforge/townforge/pkg/geom"
)

// bisect splits poly along a line through the point at ratio on the edge
// starting at vertex, perpendicular to that edge rotated by angle. A
// positive gap leaves a corridor between the halves.
func bisect(poly *geom.Polygon, vertex *geom.Point, ratio, angle, gap float64) []*geom.Polygon {
	next := poly.Next(vertex)
	if next == nil {
		return []*geom.Polygon{poly.Clone()}
	}

	p1 := geom.Interpolate(vertex, next, ratio)
	d := next.Sub(vertex)

	cosB := math.Cos(angle)
	sinB := math.Sin(angle)
	vx := d.X*cosB - d.Y*sinB
	vy := d.Y*cosB + d.X*sinB
	p2 := geom.Pt(p1.X-vy, p1.Y+vx)

	return poly.Cut(p1, p2, gap)
}

// radial fans poly into triangles from the center to each edge, shrinking
// the two center-incident sides of each triangle by half the gap.
func radial(poly *geom.Polygon, center *geom.Point, gap float64) []*geom.Polygon {
	if center == nil {
		center = poly.Centroid()
	}
	var sectors []*geom.Polygon
	poly.ForEdge(func(v0, v1 *geom.Point) {
		sector := geom.NewPolygon(center, v0, v1)
		if gap > 0 {
			half := gap / 2
			sector = sector.Shrink([]float64{half, 0, half})
		}
		sectors = append(sectors, sector)
	})
	return sectors
}

// semiRadial fans poly from the vertex closest to the centroid, skipping
// the degenerate triangles at that vertex. The gap only applies to sides
// that are not original polygon edges.
func semiRadial(poly *geom.Polygon, center *geom.Point, gap float64) []*geom.Polygon {
	if center == nil {
		centroid := poly.Centroid()
		center = poly.MinVertex(func(v *geom.Point) float64 {
			return v.Distance(centroid)
		})
	}

	half := gap / 2
	var sectors []*geom.Polygon
	poly.ForEdge(func(v0, v1 *geom.Point) {
		if v0 == center || v1 == center {
			return
		}
		sector := geom.NewPolygon(center, v0, v1)
		if gap > 0 {
			d := []float64{half, 0, half}
			if poly.FindEdge(center, v0) != -1 {
				d[0] = 0
			}
			if poly.FindEdge(v1, center) != -1 {
				d[2] = 0
			}
			sector = sector.Shrink(d)
		}
		sectors = append(sectors, sector)
	})
	return sectors
}

// ring peels shells of the given thickness off poly, shortest edges first,
// and returns the shells. The remaining core, if any, is discarded.
func ring(poly *geom.Polygon, thickness float64) []*geom.Polygon {
	type slice struct {
		p1, p2 *geom.Point
		length float64
	}
	var slices []slice
	poly.ForEdge(func(v1, v2 *geom.Point) {
		v := v2.Sub(v1)
		n := v.Rotate90().Norm(thickness)
		slices = append(slices, slice{v1.Add(n), v2.Add(n), v.Len()})
	})

	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].length < slices[j].length
	})

	var peel []*geom.Polygon
	p := poly
	for _, sl := range slices {
		halves := p.Cut(sl.p1, sl.p2, 0)
		p = halves[0]
		if len(halves) == 2 {
			peel = append(peel, halves[1])
		}
	}
	return peel
}
