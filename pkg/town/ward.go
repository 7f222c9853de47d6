package town

import (
	"math"

	"github.com/townforge/townforge/pkg/geom"
	"github.com/townforge/townforge/pkg/rng"
)

// Street half-widths used as inset distances when carving the city block
// out of a patch.
const (
	MainStreet    = 2.0
	RegularStreet = 1.0
	Alley         = 0.6
)

// Ward is the functional role assigned to a patch, together with the
// building footprints generated for it.
type Ward interface {
	// Label names the ward kind; empty for inert countryside.
	Label() string
	// CreateGeometry fills the ward's building footprints.
	CreateGeometry()
	// Geometry returns the building footprints.
	Geometry() []*geom.Polygon
}

// baseWard carries the state shared by every ward kind. On its own it is
// the inert countryside ward with no geometry.
type baseWard struct {
	model    *Model
	patch    *Patch
	geometry []*geom.Polygon
}

func (w *baseWard) Label() string             { return "" }
func (w *baseWard) CreateGeometry()           {}
func (w *baseWard) Geometry() []*geom.Polygon { return w.geometry }

// cityBlock insets the patch by per-edge street half-widths: main streets
// along walls, arteries and the plaza, regular streets inside the city,
// alleys outside.
func (w *baseWard) cityBlock() *geom.Polygon {
	m := w.model
	var insetDist []float64

	innerPatch := m.Wall == nil || w.patch.WithinWalls
	w.patch.Shape.ForEdge(func(v0, v1 *geom.Point) {
		if m.Wall != nil && m.Wall.bordersBy(w.patch, v0, v1) {
			insetDist = append(insetDist, MainStreet)
			return
		}
		onStreet := innerPatch && m.Plaza != nil && m.Plaza.Shape.FindEdge(v1, v0) != -1
		if !onStreet {
			for _, artery := range m.Arteries {
				if artery.Contains(v0) && artery.Contains(v1) {
					onStreet = true
					break
				}
			}
		}
		switch {
		case onStreet:
			insetDist = append(insetDist, MainStreet)
		case innerPatch:
			insetDist = append(insetDist, RegularStreet)
		default:
			insetDist = append(insetDist, Alley)
		}
	})

	if w.patch.Shape.IsConvex() {
		return w.patch.Shape.Shrink(insetDist)
	}
	return w.patch.Shape.Buffer(insetDist)
}

const maxAlleyDepth = 20

// createAlleys recursively bisects poly into blocks separated by alleys.
// Blocks below a chaos-scaled threshold become buildings; larger ones
// recurse, losing their alley gap once small enough.
func createAlleys(r *rng.Rng, poly *geom.Polygon, minSq, gridChaos, sizeChaos, emptyProb float64, split bool, depth int) []*geom.Polygon {
	if depth > maxAlleyDepth {
		return alleyFallback(poly, minSq)
	}

	v := longestEdgeStart(poly)
	if v == nil || len(poly.Vertices) < 3 {
		return alleyFallback(poly, minSq)
	}

	spread := 0.8 * gridChaos
	ratio := (1-spread)/2 + r.Float()*spread

	angleSpread := math.Pi / 6 * gridChaos
	if poly.Square() < minSq*4 {
		angleSpread = 0
	}
	angle := (r.Float() - 0.5) * angleSpread

	gap := 0.0
	if split {
		gap = Alley
	}
	halves := bisect(poly, v, ratio, angle, gap)

	var buildings []*geom.Polygon
	for _, half := range halves {
		if len(half.Vertices) < 3 {
			continue
		}
		threshold := minSq * math.Pow(2, 4*sizeChaos*(r.Float()-0.5))
		if half.Square() < threshold {
			if !r.Bool(emptyProb) {
				buildings = append(buildings, half)
			}
		} else {
			shouldSplit := half.Square() > minSq/(r.Float()*r.Float())
			buildings = append(buildings, createAlleys(r, half, minSq, gridChaos, sizeChaos, emptyProb, shouldSplit, depth+1)...)
		}
	}
	if len(buildings) == 0 {
		return alleyFallback(poly, minSq)
	}
	return buildings
}

func alleyFallback(poly *geom.Polygon, minSq float64) []*geom.Polygon {
	if poly.Square() >= minSq {
		return []*geom.Polygon{poly}
	}
	return nil
}

const (
	maxOrthoDepth    = 50
	maxOrthoAttempts = 100
)

// createOrthoBuilding slices poly along two orthogonal directions derived
// from its longest edge, producing a grid-like cluster of blocks, each kept
// with the given fill probability.
func createOrthoBuilding(r *rng.Rng, poly *geom.Polygon, minBlockSq, fill float64) []*geom.Polygon {
	if poly.Square() < minBlockSq {
		return []*geom.Polygon{poly}
	}
	v0 := longestEdgeStart(poly)
	if v0 == nil {
		return []*geom.Polygon{poly}
	}
	c1 := poly.Vector(v0)
	c2 := c1.Rotate90()

	for attempt := 0; attempt < maxOrthoAttempts; attempt++ {
		blocks := orthoSlice(r, poly, c1, c2, minBlockSq, fill, 0)
		if len(blocks) > 0 {
			return blocks
		}
	}
	return []*geom.Polygon{poly}
}

func orthoSlice(r *rng.Rng, poly *geom.Polygon, c1, c2 *geom.Point, minBlockSq, fill float64, depth int) []*geom.Polygon {
	if depth > maxOrthoDepth {
		return nil
	}
	v0 := longestEdgeStart(poly)
	if v0 == nil {
		return nil
	}
	v1 := poly.Next(v0)
	v := v1.Sub(v0)

	ratio := 0.4 + r.Float()*0.2
	p1 := geom.Interpolate(v0, v1, ratio)

	// Cut along whichever basis direction is more perpendicular to the edge.
	c := c2
	if math.Abs(v.Dot(c1)) < math.Abs(v.Dot(c2)) {
		c = c1
	}

	halves := poly.Cut(p1, p1.Add(c), 0)
	var blocks []*geom.Polygon
	for _, half := range halves {
		if half.Square() < minBlockSq*math.Pow(2, r.Normal()*2-1) {
			if r.Bool(fill) {
				blocks = append(blocks, half)
			}
		} else {
			blocks = append(blocks, orthoSlice(r, half, c1, c2, minBlockSq, fill, depth+1)...)
		}
	}
	return blocks
}

// longestEdgeStart returns the vertex starting the longest edge.
func longestEdgeStart(poly *geom.Polygon) *geom.Point {
	return poly.MinVertex(func(v *geom.Point) float64 {
		return -poly.Vector(v).Len()
	})
}

// filterOutskirts thins out buildings on non-enclosed patches: the farther
// a building sits from a populated edge, scaled by local density, the less
// likely it survives.
func (w *baseWard) filterOutskirts() {
	m := w.model
	shape := w.patch.Shape

	type populatedEdge struct {
		x, y, dx, dy float64
		d            float64
	}
	var edges []populatedEdge

	addEdge := func(v1, v2 *geom.Point, factor float64) {
		dx := v2.X - v1.X
		dy := v2.Y - v1.Y
		max := 0.0
		for _, v := range shape.Vertices {
			if v == v1 || v == v2 {
				continue
			}
			d := geom.DistanceToSegment(v1.X, v1.Y, dx, dy, v.X, v.Y) * factor
			if d > max {
				max = d
			}
		}
		edges = append(edges, populatedEdge{v1.X, v1.Y, dx, dy, max})
	}

	shape.ForEdge(func(v1, v2 *geom.Point) {
		onRoad := false
		for _, artery := range m.Arteries {
			if artery.Contains(v1) && artery.Contains(v2) {
				onRoad = true
				break
			}
		}
		if onRoad {
			addEdge(v1, v2, 1)
			return
		}
		n := m.getNeighbour(w.patch, v1)
		if n != nil && n.WithinCity {
			if m.isEnclosed(n) {
				addEdge(v1, v2, 1)
			} else {
				addEdge(v1, v2, 0.4)
			}
		}
	})

	density := make([]float64, len(shape.Vertices))
	for i, v := range shape.Vertices {
		if containsPoint(m.Gates, v) {
			density[i] = 1
			continue
		}
		allCity := true
		for _, p := range m.patchByVertex(v) {
			if !p.WithinCity {
				allCity = false
				break
			}
		}
		if allCity {
			density[i] = 2 * m.rng.Float()
		}
	}

	var kept []*geom.Polygon
	for _, building := range w.geometry {
		minDist := 1.0
		for _, e := range edges {
			for _, v := range building.Vertices {
				if e.d <= 0 {
					continue
				}
				d := geom.DistanceToSegment(e.x, e.y, e.dx, e.dy, v.X, v.Y) / e.d
				if d < minDist {
					minDist = d
				}
			}
		}

		c := building.Center()
		weights := shape.InterpolateWeights(c)
		p := 0.0
		for j := range weights {
			p += density[j] * weights[j]
		}
		if p > 0 {
			minDist /= p
		}

		if m.rng.Fuzzy(1) > minDist {
			kept = append(kept, building)
		}
	}
	w.geometry = kept
}
