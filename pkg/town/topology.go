package town

import (
	"github.com/townforge/townforge/pkg/geom"
	"github.com/townforge/townforge/pkg/graph"
)

// Topology is the routing graph over patch vertices. One node exists per
// unique vertex instance; consecutive patch vertices are linked with their
// Euclidean distance. Wall and citadel vertices other than gates are
// blocked: their nodes get no links and cannot be routed through.
type Topology struct {
	model *Model
	graph *graph.Graph

	pt2node map[*geom.Point]*graph.Node
	node2pt map[*graph.Node]*geom.Point
	pts     []*geom.Point // node creation order, for deterministic scans

	// Inner nodes lie on withinCity patches, Outer nodes elsewhere.
	// Border vertices belong to neither set.
	Inner []*graph.Node
	Outer []*graph.Node

	innerSet map[*graph.Node]bool
	outerSet map[*graph.Node]bool
}

func newTopology(m *Model) *Topology {
	t := &Topology{
		model:    m,
		graph:    graph.New(),
		pt2node:  make(map[*geom.Point]*graph.Node),
		node2pt:  make(map[*graph.Node]*geom.Point),
		innerSet: make(map[*graph.Node]bool),
		outerSet: make(map[*graph.Node]bool),
	}

	blocked := make(map[*geom.Point]bool)
	if m.Citadel != nil {
		for _, v := range m.Citadel.Shape.Vertices {
			blocked[v] = true
		}
	}
	if m.Wall != nil {
		for _, v := range m.Wall.Shape.Vertices {
			blocked[v] = true
		}
	}
	for _, g := range m.Gates {
		delete(blocked, g)
	}

	border := m.Border.Shape

	for _, p := range m.Patches {
		withinCity := p.WithinCity
		verts := p.Shape.Vertices
		if len(verts) == 0 {
			continue
		}

		v1 := verts[len(verts)-1]
		n1 := t.processPoint(v1, blocked)

		for i := 0; i < len(verts); i++ {
			v0 := v1
			v1 = verts[i]
			n0 := n1
			n1 = t.processPoint(v1, blocked)

			if n0 != nil && !border.Contains(v0) {
				t.classify(n0, withinCity)
			}
			if n1 != nil && !border.Contains(v1) {
				t.classify(n1, withinCity)
			}
			if n0 != nil && n1 != nil {
				n0.Link(n1, v0.Distance(v1))
			}
		}
	}
	return t
}

func (t *Topology) processPoint(v *geom.Point, blocked map[*geom.Point]bool) *graph.Node {
	n, ok := t.pt2node[v]
	if !ok {
		n = t.graph.Add()
		t.pt2node[v] = n
		t.node2pt[n] = v
		t.pts = append(t.pts, v)
	}
	if blocked[v] {
		return nil
	}
	return n
}

func (t *Topology) classify(n *graph.Node, withinCity bool) {
	if withinCity {
		if !t.innerSet[n] {
			t.innerSet[n] = true
			t.Inner = append(t.Inner, n)
		}
	} else {
		if !t.outerSet[n] {
			t.outerSet[n] = true
			t.Outer = append(t.Outer, n)
		}
	}
}

// BuildPath routes between two vertex instances, never expanding the
// excluded nodes. Returns nil when no route exists.
func (t *Topology) BuildPath(from, to *geom.Point, exclude []*graph.Node) []*geom.Point {
	start, ok := t.pt2node[from]
	if !ok {
		return nil
	}
	goal, ok := t.pt2node[to]
	if !ok {
		return nil
	}
	path := t.graph.AStar(start, goal, exclude)
	if path == nil {
		return nil
	}
	pts := make([]*geom.Point, len(path))
	for i, n := range path {
		pts[i] = t.node2pt[n]
	}
	return pts
}
