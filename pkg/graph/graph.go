// Package graph provides the undirected weighted graph used for street
// planning. Adjacency is kept in insertion order so searches are
// deterministic for a deterministic build sequence.
package graph

// Node is a graph vertex. Links are symmetric.
type Node struct {
	links   []link
	indexOf map[*Node]int
}

type link struct {
	to     *Node
	weight float64
}

// NewNode creates an unlinked node.
func NewNode() *Node {
	return &Node{indexOf: make(map[*Node]int)}
}

// Link connects n and other with the given weight in both directions,
// overwriting an existing link.
func (n *Node) Link(other *Node, weight float64) {
	n.setLink(other, weight)
	other.setLink(n, weight)
}

func (n *Node) setLink(other *Node, weight float64) {
	if i, ok := n.indexOf[other]; ok {
		n.links[i].weight = weight
		return
	}
	n.indexOf[other] = len(n.links)
	n.links = append(n.links, link{to: other, weight: weight})
}

// Unlink removes the connection between n and other in both directions.
func (n *Node) Unlink(other *Node) {
	n.removeLink(other)
	other.removeLink(n)
}

func (n *Node) removeLink(other *Node) {
	i, ok := n.indexOf[other]
	if !ok {
		return
	}
	n.links = append(n.links[:i], n.links[i+1:]...)
	delete(n.indexOf, other)
	for j := i; j < len(n.links); j++ {
		n.indexOf[n.links[j].to] = j
	}
}

// UnlinkAll disconnects the node from every neighbor.
func (n *Node) UnlinkAll() {
	for len(n.links) > 0 {
		n.Unlink(n.links[len(n.links)-1].to)
	}
}

// Graph is a collection of nodes.
type Graph struct {
	Nodes []*Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// Add creates a node, registers it and returns it.
func (g *Graph) Add() *Node {
	n := NewNode()
	g.Nodes = append(g.Nodes, n)
	return n
}

// Remove unlinks the node and drops it from the graph.
func (g *Graph) Remove(node *Node) {
	node.UnlinkAll()
	for i, n := range g.Nodes {
		if n == node {
			g.Nodes = append(g.Nodes[:i], g.Nodes[i+1:]...)
			return
		}
	}
}

// AStar finds the cheapest path from start to goal by uniform-cost search.
// Nodes in exclude are treated as already closed and never expanded.
// Returns nil when the goal is unreachable; a one-node path when
// start == goal.
func (g *Graph) AStar(start, goal *Node, exclude []*Node) []*Node {
	closed := make(map[*Node]bool, len(exclude))
	for _, n := range exclude {
		closed[n] = true
	}

	open := []*Node{start}
	cameFrom := make(map[*Node]*Node)
	gScore := map[*Node]float64{start: 0}

	for len(open) > 0 {
		best := 0
		for i := 1; i < len(open); i++ {
			if gScore[open[i]] < gScore[open[best]] {
				best = i
			}
		}
		current := open[best]
		open = append(open[:best], open[best+1:]...)

		if current == goal {
			return buildPath(cameFrom, current)
		}
		closed[current] = true

		curScore := gScore[current]
		for _, l := range current.links {
			if closed[l.to] {
				continue
			}
			score := curScore + l.weight
			if prev, seen := gScore[l.to]; seen {
				if score >= prev {
					continue
				}
			} else {
				open = append(open, l.to)
			}
			cameFrom[l.to] = current
			gScore[l.to] = score
		}
	}
	return nil
}

func buildPath(cameFrom map[*Node]*Node, current *Node) []*Node {
	path := []*Node{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		current = prev
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
