package town

import (
	"math"

	"github.com/townforge/townforge/pkg/geom"
)

// CurtainWall is a closed wall around a set of patches. Gates are vertex
// instances drawn from the wall polygon itself, so they stay identical to
// the corresponding patch vertices. Segments[i] marks whether the edge
// starting at Shape.Vertices[i] carries a physical wall.
type CurtainWall struct {
	Shape    *geom.Polygon
	Gates    []*geom.Point
	Towers   []*geom.Point
	Segments []bool

	real    bool
	patches []*Patch
}

// newCurtainWall extracts the circumference of the patch set and picks
// gates. Real walls are smoothed (reserved vertices excepted) and may split
// outer patches to make room for roads.
func newCurtainWall(real bool, m *Model, patches []*Patch, reserved []*geom.Point) (*CurtainWall, error) {
	w := &CurtainWall{real: real, patches: patches}

	if len(patches) == 1 {
		w.Shape = patches[0].Shape
	} else {
		w.Shape = m.findCircumference(patches)

		if real {
			smoothFactor := math.Min(1, 40/float64(len(patches)))
			smoothed := make([]*geom.Point, len(w.Shape.Vertices))
			for i, v := range w.Shape.Vertices {
				if containsPoint(reserved, v) {
					continue
				}
				smoothed[i] = w.Shape.SmoothVertex(v, smoothFactor)
			}
			for i, v := range w.Shape.Vertices {
				if smoothed[i] != nil {
					v.SetPt(smoothed[i])
				}
			}
		}
	}

	w.Segments = make([]bool, len(w.Shape.Vertices))
	for i := range w.Segments {
		w.Segments[i] = true
	}

	if err := w.buildGates(real, m, reserved); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *CurtainWall) buildGates(real bool, m *Model, reserved []*geom.Point) error {
	var entrances []*geom.Point
	if len(w.patches) > 1 {
		// Candidates are multi-patch junctions on the wall.
		for _, v := range w.Shape.Vertices {
			if containsPoint(reserved, v) {
				continue
			}
			count := 0
			for _, p := range w.patches {
				if p.Shape.Contains(v) {
					count++
				}
			}
			if count > 1 {
				entrances = append(entrances, v)
			}
		}
	} else {
		for _, v := range w.Shape.Vertices {
			if !containsPoint(reserved, v) {
				entrances = append(entrances, v)
			}
		}
	}

	if len(entrances) == 0 {
		return ErrBadWalledArea
	}

	for {
		index := m.rng.Int(0, len(entrances))
		gate := entrances[index]
		w.Gates = append(w.Gates, gate)

		if real {
			// If a single outer patch touches the gate, split it so a road
			// can pass through.
			var outer []*Patch
			for _, p := range m.patchByVertex(gate) {
				if !containsPatch(w.patches, p) {
					outer = append(outer, p)
				}
			}
			if len(outer) == 1 && len(outer[0].Shape.Vertices) > 3 {
				w.splitOuterPatch(m, outer[0], gate, reserved)
			}
		}

		// Drop the chosen candidate and its two neighbors. The endpoint
		// cases wrap around the list the way the ring does.
		switch {
		case index == 0:
			entrances = entrances[min(2, len(entrances)):]
			if len(entrances) > 0 {
				entrances = entrances[:len(entrances)-1]
			}
		case index == len(entrances)-1:
			entrances = append(entrances[:index-1], entrances[index+1:]...)
			if len(entrances) > 0 {
				entrances = entrances[1:]
			}
		default:
			entrances = append(entrances[:index-1], entrances[index+2:]...)
		}
		if len(entrances) < 3 {
			break
		}
	}

	if len(w.Gates) == 0 {
		return ErrBadWalledArea
	}

	if real {
		for _, gate := range w.Gates {
			gate.SetPt(w.Shape.SmoothVertex(gate, 1))
		}
	}
	return nil
}

// splitOuterPatch cuts the outer patch along the chord from the gate to its
// farthest vertex by outward projection, replacing it with the two halves.
func (w *CurtainWall) splitOuterPatch(m *Model, outer *Patch, gate *geom.Point, reserved []*geom.Point) {
	wallNext := w.Shape.Next(gate)
	wallPrev := w.Shape.Prev(gate)
	if wallNext == nil || wallPrev == nil {
		return
	}
	wall := wallNext.Sub(wallPrev)
	out := geom.Pt(wall.Y, -wall.X)

	farthest := outer.Shape.MaxVertex(func(v *geom.Point) float64 {
		if w.Shape.Contains(v) || containsPoint(reserved, v) {
			return math.Inf(-1)
		}
		d := v.Sub(gate)
		l := d.Len()
		if l == 0 {
			return math.Inf(-1)
		}
		return d.Dot(out) / l
	})
	if farthest == nil || farthest == gate {
		return
	}

	halves := outer.Shape.Split(gate, farthest)
	if len(halves) != 2 {
		return
	}
	replacement := []*Patch{newPatch(halves[0]), newPatch(halves[1])}
	for i, p := range m.Patches {
		if p == outer {
			m.Patches = append(m.Patches[:i], append(replacement, m.Patches[i+1:]...)...)
			return
		}
	}
	m.Patches = append(m.Patches, replacement...)
}

// BuildTowers places a tower at every non-gate wall vertex flanked by at
// least one active segment.
func (w *CurtainWall) BuildTowers() {
	w.Towers = nil
	if !w.real {
		return
	}
	n := len(w.Shape.Vertices)
	for i, t := range w.Shape.Vertices {
		if containsPoint(w.Gates, t) {
			continue
		}
		if w.Segments[(i+n-1)%n] || w.Segments[i] {
			w.Towers = append(w.Towers, t)
		}
	}
}

// Radius returns the distance from the origin to the farthest wall vertex.
func (w *CurtainWall) Radius() float64 {
	radius := 0.0
	for _, v := range w.Shape.Vertices {
		radius = math.Max(radius, v.Len())
	}
	return radius
}

// bordersBy reports whether the wall runs along the patch edge v0→v1 with an
// active segment.
func (w *CurtainWall) bordersBy(patch *Patch, v0, v1 *geom.Point) bool {
	var index int
	if containsPatch(w.patches, patch) {
		index = w.Shape.FindEdge(v0, v1)
	} else {
		index = w.Shape.FindEdge(v1, v0)
	}
	return index != -1 && w.Segments[index]
}

// Borders reports whether any active wall segment runs along the patch.
func (w *CurtainWall) Borders(patch *Patch) bool {
	withinWalls := containsPatch(w.patches, patch)
	n := len(w.Shape.Vertices)
	for i := 0; i < n; i++ {
		if !w.Segments[i] {
			continue
		}
		v0 := w.Shape.Vertices[i]
		v1 := w.Shape.Vertices[(i+1)%n]
		var index int
		if withinWalls {
			index = patch.Shape.FindEdge(v0, v1)
		} else {
			index = patch.Shape.FindEdge(v1, v0)
		}
		if index != -1 {
			return true
		}
	}
	return false
}

func containsPoint(pts []*geom.Point, p *geom.Point) bool {
	for _, q := range pts {
		if q == p {
			return true
		}
	}
	return false
}

func containsPatch(patches []*Patch, p *Patch) bool {
	for _, q := range patches {
		if q == p {
			return true
		}
	}
	return false
}
