// Package mapgraph implements the layered encounter map: node traversal
// with a single active frontier, deterministic generation from a run seed,
// and path preview.
package mapgraph

import (
	"github.com/deckfall/run-api/internal/entities/run"
	"github.com/deckfall/run-api/internal/errors"
)

// Graph wraps a node set and the current position. The node slice is
// mutated in place, so a Graph can operate directly on a save's map.
type Graph struct {
	Nodes     []run.Node
	CurrentID string
}

// New builds a graph over existing nodes. The current node must exist.
func New(nodes []run.Node, currentID string) (*Graph, error) {
	if len(nodes) == 0 {
		return nil, errors.InvalidArgument("map has no nodes")
	}
	if findNode(nodes, currentID) == nil {
		return nil, errors.InvalidArgumentf("current node %s not in map", currentID)
	}
	return &Graph{Nodes: nodes, CurrentID: currentID}, nil
}

// Initialize sets the starting node states: the start node is cleared and
// current, its neighbors are available, everything else is locked.
func Initialize(nodes []run.Node, startID string) error {
	start := findNode(nodes, startID)
	if start == nil {
		return errors.InvalidArgumentf("start node %s not in map", startID)
	}

	for i := range nodes {
		nodes[i].State = run.NodeLocked
	}
	start.State = run.NodeCleared
	Recompute(nodes, startID)
	return nil
}

// Move advances to a neighboring available node. The departed node and the
// target are marked cleared (cleared is terminal), and availability is
// recomputed so that exactly the new frontier is available.
func (g *Graph) Move(targetID string) error {
	current := findNode(g.Nodes, g.CurrentID)
	target := findNode(g.Nodes, targetID)
	if target == nil {
		return errors.IllegalMovef("node %s does not exist", targetID)
	}
	if !contains(current.Neighbors, targetID) {
		return errors.IllegalMovef("node %s is not a neighbor of %s", targetID, g.CurrentID)
	}
	if target.State != run.NodeAvailable {
		return errors.IllegalMovef("node %s is not available", targetID)
	}

	current.State = run.NodeCleared
	target.State = run.NodeCleared
	g.CurrentID = targetID
	Recompute(g.Nodes, targetID)
	return nil
}

// Recompute derives every non-cleared node's state from the current
// position: neighbors of the current node become available, the rest lock.
// Availability is never stored independently of this derivation.
func Recompute(nodes []run.Node, currentID string) {
	current := findNode(nodes, currentID)
	if current == nil {
		return
	}

	for i := range nodes {
		if nodes[i].State == run.NodeCleared {
			continue
		}
		if contains(current.Neighbors, nodes[i].ID) {
			nodes[i].State = run.NodeAvailable
		} else {
			nodes[i].State = run.NodeLocked
		}
	}
}

// Available returns the IDs of the currently reachable frontier.
func (g *Graph) Available() []string {
	var out []string
	for i := range g.Nodes {
		if g.Nodes[i].State == run.NodeAvailable {
			out = append(out, g.Nodes[i].ID)
		}
	}
	return out
}

// FindPath runs a breadth-first search along directed edges and returns
// the node IDs from start to end inclusive, or nil if unreachable. Used
// for client-side hover previews; it ignores node states.
func FindPath(nodes []run.Node, startID, endID string) []string {
	type entry struct {
		id   string
		path []string
	}

	queue := []entry{{id: startID, path: []string{startID}}}
	visited := map[string]bool{startID: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.id == endID {
			return cur.path
		}

		node := findNode(nodes, cur.id)
		if node == nil {
			continue
		}
		for _, n := range node.Neighbors {
			if !visited[n] {
				visited[n] = true
				next := append(append([]string{}, cur.path...), n)
				queue = append(queue, entry{id: n, path: next})
			}
		}
	}
	return nil
}

func findNode(nodes []run.Node, id string) *run.Node {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i]
		}
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
