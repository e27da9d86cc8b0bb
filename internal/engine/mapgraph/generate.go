package mapgraph

import (
	"math/rand"

	"github.com/deckfall/run-api/internal/entities/run"
)

// layout describes the fixed topology of a run map. Interior layers are
// the only ones whose node types vary between seeds.
type layoutNode struct {
	id        string
	x, y      float64
	neighbors []string
}

var layout = [][]layoutNode{
	{
		{id: "start", x: 6.13, y: 9.2, neighbors: []string{"0a", "0b", "0c"}},
	},
	{
		{id: "0a", x: 4.75, y: 7.35, neighbors: []string{"1a", "1b"}},
		{id: "0b", x: 6.13, y: 7.35, neighbors: []string{"1c", "1d"}},
		{id: "0c", x: 7.51, y: 7.35, neighbors: []string{"1e", "1f"}},
	},
	{
		{id: "1a", x: 3.82, y: 5.45, neighbors: []string{"2a"}},
		{id: "1b", x: 4.75, y: 5.45, neighbors: []string{"2b"}},
		{id: "1c", x: 5.7, y: 5.45, neighbors: []string{"2b"}},
		{id: "1d", x: 6.6, y: 5.45, neighbors: []string{"2c"}},
		{id: "1e", x: 7.53, y: 5.45, neighbors: []string{"2c"}},
		{id: "1f", x: 8.43, y: 5.45, neighbors: []string{"2d"}},
	},
	{
		{id: "2a", x: 3.82, y: 3.55, neighbors: []string{"3a"}},
		{id: "2b", x: 5.22, y: 3.55, neighbors: []string{"3b"}},
		{id: "2c", x: 7.05, y: 3.55, neighbors: []string{"3c"}},
		{id: "2d", x: 8.43, y: 3.55, neighbors: []string{"3d"}},
	},
	{
		{id: "3a", x: 3.82, y: 1.65, neighbors: []string{"boss"}},
		{id: "3b", x: 5.22, y: 1.65, neighbors: []string{"boss"}},
		{id: "3c", x: 7.05, y: 1.65, neighbors: []string{"boss"}},
		{id: "3d", x: 8.43, y: 1.65, neighbors: []string{"boss"}},
	},
	{
		{id: "boss", x: 6.13, y: 0.68, neighbors: nil},
	},
}

// eventPool weights the interior node types. Fight dominates; the rest
// are the non-combat detours.
var eventPool = []struct {
	t      run.NodeType
	weight int
}{
	{run.NodeFight, 3},
	{run.NodeShop, 1},
	{run.NodeSmoking, 1},
	{run.NodeCheater, 1},
}

// nonCombatTypes are the types that may not chain back-to-back along one
// branch: a node whose parent resolved non-combat must roll a fight.
var nonCombatTypes = map[run.NodeType]bool{
	run.NodeShop:    true,
	run.NodeSmoking: true,
	run.NodeCheater: true,
}

// Generate builds the node set for a new run, deterministically from the
// seed. The start node, the first layer of fights, the elite layer, and
// the boss are fixed; interior layers draw from the weighted event pool,
// except that a node with a non-combat parent always rolls a fight.
// Node states are initialized for a run positioned at the start node.
func Generate(seed int64) []run.Node {
	rng := rand.New(rand.NewSource(seed))

	var nodes []run.Node
	parents := make(map[string][]string)
	lastLayer := len(layout) - 1

	for li, layer := range layout {
		for _, ln := range layer {
			var t run.NodeType
			switch li {
			case 0:
				t = run.NodeStart
			case 1:
				t = run.NodeFight
			case lastLayer - 1:
				t = run.NodeElite
			case lastLayer:
				t = run.NodeBoss
			default:
				t = rollEventType(rng)
				if nonCombatTypes[t] && hasNonCombatParent(nodes, parents[ln.id]) {
					t = run.NodeFight
				}
			}

			nodes = append(nodes, run.Node{
				ID:        ln.id,
				X:         ln.x,
				Y:         ln.y,
				Type:      t,
				Neighbors: append([]string{}, ln.neighbors...),
				State:     run.NodeLocked,
			})
			for _, n := range ln.neighbors {
				parents[n] = append(parents[n], ln.id)
			}
		}
	}

	// Generate only emits the fixed layout, so the start node always exists.
	_ = Initialize(nodes, "start")
	return nodes
}

func rollEventType(rng *rand.Rand) run.NodeType {
	total := 0
	for _, e := range eventPool {
		total += e.weight
	}
	roll := rng.Intn(total)
	for _, e := range eventPool {
		roll -= e.weight
		if roll < 0 {
			return e.t
		}
	}
	return run.NodeFight
}

func hasNonCombatParent(nodes []run.Node, parentIDs []string) bool {
	for _, id := range parentIDs {
		if p := findNode(nodes, id); p != nil && nonCombatTypes[p.Type] {
			return true
		}
	}
	return false
}
