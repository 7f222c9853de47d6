package graph

import "testing"

func TestAStarPicksCheaperRoute(t *testing.T) {
	g := New()
	a := g.Add()
	b := g.Add()
	c := g.Add()
	// Direct a-c is expensive, a-b-c is cheap.
	a.Link(c, 10)
	a.Link(b, 2)
	b.Link(c, 2)

	path := g.AStar(a, c, nil)
	if len(path) != 3 || path[0] != a || path[1] != b || path[2] != c {
		t.Fatalf("expected a-b-c, got %d nodes", len(path))
	}
}

func TestAStarStartEqualsGoal(t *testing.T) {
	g := New()
	a := g.Add()
	b := g.Add()
	a.Link(b, 1)

	path := g.AStar(a, a, nil)
	if len(path) != 1 || path[0] != a {
		t.Fatalf("expected one-node path, got %d nodes", len(path))
	}
}

func TestAStarExcludeBlocksRoute(t *testing.T) {
	g := New()
	a := g.Add()
	b := g.Add()
	c := g.Add()
	a.Link(b, 1)
	b.Link(c, 1)

	if path := g.AStar(a, c, []*Node{b}); path != nil {
		t.Fatalf("expected no path through excluded node, got %d nodes", len(path))
	}
}

func TestAStarUnreachable(t *testing.T) {
	g := New()
	a := g.Add()
	b := g.Add()
	if path := g.AStar(a, b, nil); path != nil {
		t.Fatalf("expected nil path between disconnected nodes")
	}
}

func TestUnlink(t *testing.T) {
	g := New()
	a := g.Add()
	b := g.Add()
	a.Link(b, 1)
	a.Unlink(b)
	if path := g.AStar(a, b, nil); path != nil {
		t.Fatalf("expected no path after unlink")
	}
}
