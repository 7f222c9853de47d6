// Package town implements the procedural generator for a medieval city
// layout: Voronoi patches, curtain walls with gates, street planning over
// the patch adjacency graph, ward assignment and per-ward building
// footprints. Generation is deterministic for a given size and seed.
package town

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/townforge/townforge/pkg/geom"
	"github.com/townforge/townforge/pkg/rng"
	"github.com/townforge/townforge/pkg/voronoi"
)

const (
	maxBuildAttempts = 10

	// Patch edges shorter than this are merged during junction
	// optimization.
	junctionThreshold = 8.0
)

// Model is a generated city. All fields are read-only after Generate
// returns.
type Model struct {
	NPatches int

	PlazaNeeded   bool
	CitadelNeeded bool
	WallsNeeded   bool

	Patches []*Patch
	Inner   []*Patch

	Plaza   *Patch
	Citadel *Patch
	Center  *geom.Point

	// Border is the city limit; Wall is the same polygon when the city is
	// walled, nil otherwise.
	Border *CurtainWall
	Wall   *CurtainWall

	// Gates collects wall and citadel gates.
	Gates []*geom.Point

	Topology *Topology

	Streets  []*geom.Polygon
	Roads    []*geom.Polygon
	Arteries []*geom.Polygon

	CityRadius float64

	seed int64
	rng  *rng.Rng
}

// Seed returns the seed the model was generated from.
func (m *Model) Seed() int64 { return m.seed }

// Generate builds a city with the given number of patches. A seed <= 0
// draws one from the host clock. Generation retries on validation failures
// up to ten times before giving up.
func Generate(nPatches int, seed int64) (*Model, error) {
	if nPatches <= 0 {
		nPatches = 15
	}
	if seed <= 0 {
		seed = time.Now().UnixMilli()%2147483646 + 1
	}

	r := rng.New(seed)
	m := &Model{
		NPatches: nPatches,
		seed:     seed,
		rng:      r,
	}
	m.PlazaNeeded = r.Bool(0.5)
	m.CitadelNeeded = r.Bool(0.5)
	m.WallsNeeded = r.Bool(0.5)

	var lastErr error
	for attempt := 0; attempt < maxBuildAttempts; attempt++ {
		if err := m.build(); err != nil {
			lastErr = err
			// Reseed from the stream itself so retries stay
			// deterministic for the original seed.
			r.Reset(int64(r.Int(1, 2147483646)))
			continue
		}
		return m, nil
	}
	return nil, fmt.Errorf("failed to build city after %d attempts: %w", maxBuildAttempts, lastErr)
}

// generateWith runs the pipeline once with explicit feature flags. Used by
// tests to pin down plaza/citadel/wall combinations.
func generateWith(nPatches int, r *rng.Rng, plaza, citadel, walls bool) (*Model, error) {
	m := &Model{
		NPatches:      nPatches,
		seed:          r.Seed(),
		rng:           r,
		PlazaNeeded:   plaza,
		CitadelNeeded: citadel,
		WallsNeeded:   walls,
	}
	if err := m.build(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) build() error {
	m.Patches = nil
	m.Inner = nil
	m.Plaza = nil
	m.Citadel = nil
	m.Center = nil
	m.Border = nil
	m.Wall = nil
	m.Gates = nil
	m.Topology = nil
	m.Streets = nil
	m.Roads = nil
	m.Arteries = nil
	m.CityRadius = 0

	if err := m.buildPatches(); err != nil {
		return err
	}
	if err := m.optimizeJunctions(); err != nil {
		return err
	}
	if err := m.buildWalls(); err != nil {
		return err
	}
	if err := m.buildStreets(); err != nil {
		return err
	}
	m.createWards()
	m.buildGeometry()
	return nil
}

// buildPatches scatters seed points on a spiral, tessellates them, relaxes
// the central cells and turns the innermost regions into patches.
func (m *Model) buildPatches() error {
	sa := m.rng.Float() * 2 * math.Pi
	points := make([]*geom.Point, m.NPatches*8)
	for i := range points {
		a := sa + math.Sqrt(float64(i))*5
		r := 0.0
		if i > 0 {
			r = 10 + float64(i)*(2+m.rng.Float())
		}
		points[i] = geom.Pt(math.Cos(a)*r, math.Sin(a)*r)
	}

	v := voronoi.Build(points)

	// Lloyd relaxation of the central cells.
	for i := 0; i < 3; i++ {
		toRelax := make([]*geom.Point, 0, 4)
		toRelax = append(toRelax, v.Points[:3]...)
		if m.NPatches < len(v.Points) {
			toRelax = append(toRelax, v.Points[m.NPatches])
		}
		v = voronoi.Relax(v, toRelax)
	}

	sort.SliceStable(v.Points, func(i, j int) bool {
		return v.Points[i].Len() < v.Points[j].Len()
	})
	regions := v.Partitioning()

	for count, reg := range regions {
		patch := patchFromRegion(reg)
		m.Patches = append(m.Patches, patch)

		if count == 0 {
			m.Center = patch.Shape.MinVertex(func(p *geom.Point) float64 {
				return p.Len()
			})
			if m.PlazaNeeded {
				m.Plaza = patch
			}
		} else if count == m.NPatches && m.CitadelNeeded {
			m.Citadel = patch
			m.Citadel.WithinCity = true
		}

		if count < m.NPatches {
			patch.WithinCity = true
			patch.WithinWalls = m.WallsNeeded
			m.Inner = append(m.Inner, patch)
		}
	}

	if m.Center == nil {
		return ErrDegeneratePatch
	}
	return nil
}

// optimizeJunctions merges patch vertices closer than the junction
// threshold, writing the midpoint into the surviving instance so every
// incident patch follows.
func (m *Model) optimizeJunctions() error {
	toOptimize := m.Inner
	if m.Citadel != nil {
		toOptimize = append(append([]*Patch{}, m.Inner...), m.Citadel)
	}

	var toClean []*Patch
	for _, w := range toOptimize {
		index := 0
		for index < len(w.Shape.Vertices) {
			v0 := w.Shape.Vertices[index]
			v1 := w.Shape.Vertices[(index+1)%len(w.Shape.Vertices)]

			if v0 != v1 && v0.Distance(v1) < junctionThreshold {
				for _, w1 := range m.patchByVertex(v1) {
					if w1 == w {
						continue
					}
					if idx := w1.Shape.IndexOf(v1); idx != -1 {
						w1.Shape.Vertices[idx] = v0
					}
					toClean = append(toClean, w1)
				}
				v0.Set((v0.X+v1.X)/2, (v0.Y+v1.Y)/2)
				w.Shape.Remove(v1)
			} else {
				index++
			}
		}
	}

	// Merging can leave the same instance twice in a ring.
	for _, w := range toClean {
		i := 0
		for i < len(w.Shape.Vertices) {
			v := w.Shape.Vertices[i]
			dup := -1
			for j := i + 1; j < len(w.Shape.Vertices); j++ {
				if w.Shape.Vertices[j] == v {
					dup = j
					break
				}
			}
			if dup != -1 {
				w.Shape.Vertices = append(w.Shape.Vertices[:dup], w.Shape.Vertices[dup+1:]...)
			} else {
				i++
			}
		}
	}

	for _, w := range toOptimize {
		if len(w.Shape.Vertices) < 3 {
			return ErrDegeneratePatch
		}
	}
	return nil
}

// buildWalls extracts the border, raises the wall and the citadel's castle,
// and prunes patches far outside the city.
func (m *Model) buildWalls() error {
	var reserved []*geom.Point
	if m.Citadel != nil {
		reserved = append(reserved, m.Citadel.Shape.Vertices...)
	}

	border, err := newCurtainWall(m.WallsNeeded, m, m.Inner, reserved)
	if err != nil {
		return err
	}
	m.Border = border
	if m.WallsNeeded {
		m.Wall = border
		m.Wall.BuildTowers()
	}

	radius := border.Radius()
	kept := m.Patches[:0]
	for _, p := range m.Patches {
		if p.Shape.Distance(m.Center) < radius*3 {
			kept = append(kept, p)
		}
	}
	m.Patches = kept

	m.Gates = append([]*geom.Point{}, border.Gates...)

	if m.Citadel != nil {
		castle, err := newCastleWard(m, m.Citadel)
		if err != nil {
			return err
		}
		castle.wall.BuildTowers()
		m.Citadel.Ward = castle

		if m.Citadel.Shape.Compactness() < 0.75 {
			return ErrBadCitadelShape
		}
		m.Gates = append(m.Gates, castle.wall.Gates...)
	}
	return nil
}

// buildStreets routes a street from every gate to the plaza (or center) and
// a road outward from every wall gate, then merges the segments into
// smoothed arteries.
func (m *Model) buildStreets() error {
	m.Topology = newTopology(m)

	for _, gate := range m.Gates {
		end := m.Center
		if m.Plaza != nil {
			g := gate
			end = m.Plaza.Shape.MinVertex(func(v *geom.Point) float64 {
				return v.Distance(g)
			})
		}

		street := m.Topology.BuildPath(gate, end, m.Topology.Outer)
		if street == nil {
			return ErrUnableToBuildStreet
		}
		m.Streets = append(m.Streets, geom.NewPolygon(street...))

		if containsPoint(m.Border.Gates, gate) {
			// Continue the street into the countryside.
			dir := gate.Norm(1000)
			var start *geom.Point
			dist := math.Inf(1)
			for _, p := range m.Topology.pts {
				if d := p.Distance(dir); d < dist {
					dist = d
					start = p
				}
			}
			if start != nil {
				if road := m.Topology.BuildPath(start, gate, m.Topology.Inner); road != nil {
					m.Roads = append(m.Roads, geom.NewPolygon(road...))
				}
			}
		}
	}

	m.tidyUpRoads()

	for _, artery := range m.Arteries {
		smoothStreet(artery)
	}
	return nil
}

func smoothStreet(street *geom.Polygon) {
	smoothed := street.SmoothVertexEq(3)
	for i := 1; i+1 < len(street.Vertices); i++ {
		street.Vertices[i].SetPt(smoothed.Vertices[i])
	}
}

type segment struct {
	v0, v1 *geom.Point
}

// tidyUpRoads deduplicates street and road edges, drops the ones inside the
// plaza and merges the rest into maximal polylines.
func (m *Model) tidyUpRoads() {
	var segments []segment

	cut := func(street *geom.Polygon) {
		if len(street.Vertices) < 2 {
			return
		}
		v0 := street.Vertices[0]
		for i := 1; i < len(street.Vertices); i++ {
			v1 := street.Vertices[i]

			if m.Plaza != nil && m.Plaza.Shape.Contains(v0) && m.Plaza.Shape.Contains(v1) {
				v0 = v1
				continue
			}

			exists := false
			for _, s := range segments {
				if s.v0 == v0 && s.v1 == v1 {
					exists = true
					break
				}
			}
			if !exists {
				segments = append(segments, segment{v0, v1})
			}
			v0 = v1
		}
	}

	for _, street := range m.Streets {
		cut(street)
	}
	for _, road := range m.Roads {
		cut(road)
	}

	m.Arteries = nil
	for len(segments) > 0 {
		seg := segments[len(segments)-1]
		segments = segments[:len(segments)-1]

		attached := false
		for _, a := range m.Arteries {
			if a.Vertices[0] == seg.v1 {
				a.Vertices = append([]*geom.Point{seg.v0}, a.Vertices...)
				attached = true
				break
			}
			if a.Vertices[len(a.Vertices)-1] == seg.v0 {
				a.Vertices = append(a.Vertices, seg.v1)
				attached = true
				break
			}
		}
		if !attached {
			m.Arteries = append(m.Arteries, geom.NewPolygon(seg.v0, seg.v1))
		}
	}
}

// createWards assigns the plaza market and gate wards, then fills the rest
// of the city from the mildly shuffled template, finally classifying the
// countryside.
func (m *Model) createWards() {
	unassigned := append([]*Patch{}, m.Inner...)

	if m.Plaza != nil {
		m.Plaza.Ward = newMarketWard(m, m.Plaza)
		unassigned = removePatch(unassigned, m.Plaza)
	}

	for _, gate := range m.Border.Gates {
		for _, patch := range m.patchByVertex(gate) {
			if !patch.WithinCity || patch.Ward != nil {
				continue
			}
			chance := 0.5
			if m.Wall == nil {
				chance = 0.2
			}
			if m.rng.Bool(chance) {
				patch.Ward = newGateWard(m, patch)
				unassigned = removePatch(unassigned, patch)
			}
		}
	}

	wards := wardTemplate()
	// Some shuffling.
	for i := 0; i < len(wards)/10; i++ {
		idx := m.rng.Int(0, len(wards)-1)
		wards[idx], wards[idx+1] = wards[idx+1], wards[idx]
	}

	for len(unassigned) > 0 {
		kind := kindSlum
		if len(wards) > 0 {
			kind = wards[0]
			wards = wards[1:]
		}

		var best *Patch
		if kind.rate == nil {
			best = unassigned[m.rng.Int(0, len(unassigned))]
		} else {
			bestVal := math.Inf(1)
			for _, p := range unassigned {
				if val := kind.rate(m, p); val < bestVal {
					best, bestVal = p, val
				}
			}
			if best == nil {
				best = unassigned[0]
			}
		}

		best.Ward = kind.make(m, best)
		unassigned = removePatch(unassigned, best)
	}

	// Outskirts: gate wards may spill outside the walls.
	if m.Wall != nil {
		for _, gate := range m.Wall.Gates {
			if !m.rng.Bool(1.0 / float64(m.NPatches-5)) {
				for _, patch := range m.patchByVertex(gate) {
					if patch.Ward == nil {
						patch.WithinCity = true
						patch.Ward = newGateWard(m, patch)
					}
				}
			}
		}
	}

	// Countryside and city radius.
	m.CityRadius = 0
	for _, patch := range m.Patches {
		if patch.WithinCity {
			for _, v := range patch.Shape.Vertices {
				m.CityRadius = math.Max(m.CityRadius, v.Len())
			}
		} else if patch.Ward == nil {
			if m.rng.Bool(0.2) && patch.Shape.Compactness() >= 0.7 {
				patch.Ward = newFarmWard(m, patch)
			} else {
				patch.Ward = newCountrysideWard(m, patch)
			}
		}
	}
}

func (m *Model) buildGeometry() {
	for _, patch := range m.Patches {
		if patch.Ward != nil {
			patch.Ward.CreateGeometry()
		}
	}
}

// findCircumference returns the outer boundary of a patch set. An edge is
// external iff no patch of the set walks it in the reverse direction; the
// external edges are then chained into a ring. Vertex instances are
// preserved.
func (m *Model) findCircumference(patches []*Patch) *geom.Polygon {
	switch len(patches) {
	case 0:
		return geom.NewPolygon()
	case 1:
		return geom.NewPolygon(patches[0].Shape.Vertices...)
	}

	var a, b []*geom.Point
	for _, w1 := range patches {
		w1.Shape.ForEdge(func(pa, pb *geom.Point) {
			for _, w2 := range patches {
				if w2 != w1 && w2.Shape.FindEdge(pb, pa) != -1 {
					return
				}
			}
			a = append(a, pa)
			b = append(b, pb)
		})
	}

	if len(a) == 0 {
		return geom.NewPolygon()
	}

	result := make([]*geom.Point, 0, len(a))
	index := 0
	for range a {
		result = append(result, a[index])
		index = indexOfPoint(a, b[index])
		if index <= 0 {
			break
		}
	}
	return geom.NewPolygon(result...)
}

func indexOfPoint(pts []*geom.Point, p *geom.Point) int {
	for i, q := range pts {
		if q == p {
			return i
		}
	}
	return -1
}

// patchByVertex returns every remaining patch holding the vertex instance.
func (m *Model) patchByVertex(v *geom.Point) []*Patch {
	var result []*Patch
	for _, p := range m.Patches {
		if p.Shape.Contains(v) {
			result = append(result, p)
		}
	}
	return result
}

// getNeighbour returns the patch sharing the edge that starts at v, or nil.
func (m *Model) getNeighbour(patch *Patch, v *geom.Point) *Patch {
	next := patch.Shape.Next(v)
	if next == nil {
		return nil
	}
	for _, p := range m.Patches {
		if p != patch && p.Shape.FindEdge(next, v) != -1 {
			return p
		}
	}
	return nil
}

// getNeighbours returns every patch bordering the given one.
func (m *Model) getNeighbours(patch *Patch) []*Patch {
	var result []*Patch
	for _, p := range m.Patches {
		if p != patch && p.Shape.Borders(patch.Shape) {
			result = append(result, p)
		}
	}
	return result
}

// isEnclosed reports whether the patch is safely inside the city: walled,
// or surrounded by city patches only.
func (m *Model) isEnclosed(patch *Patch) bool {
	if !patch.WithinCity {
		return false
	}
	if patch.WithinWalls {
		return true
	}
	for _, p := range m.getNeighbours(patch) {
		if !p.WithinCity {
			return false
		}
	}
	return true
}

func removePatch(patches []*Patch, p *Patch) []*Patch {
	for i, q := range patches {
		if q == p {
			return append(patches[:i], patches[i+1:]...)
		}
	}
	return patches
}
