package run

// Suit is one of the four card suits.
type Suit string

// Suits
const (
	SuitDiamond Suit = "diamond"
	SuitHeart   Suit = "heart"
	SuitSpade   Suit = "spade"
	SuitClubs   Suit = "clubs"
)

// Suits lists all four suits in deck-building order.
var Suits = []Suit{SuitDiamond, SuitHeart, SuitSpade, SuitClubs}

// Ranks lists the thirteen card ranks, ace high.
var Ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// NodeType classifies what a map node offers when entered.
type NodeType string

// Node types
const (
	NodeStart   NodeType = "start"
	NodeFight   NodeType = "fight"
	NodeElite   NodeType = "elite"
	NodeShop    NodeType = "shop"
	NodeSmoking NodeType = "smoking"
	NodeCheater NodeType = "cheater"
	NodeBoss    NodeType = "boss"
)

// IsCombat reports whether entering this node type starts an encounter.
func (t NodeType) IsCombat() bool {
	switch t {
	case NodeFight, NodeElite, NodeBoss:
		return true
	default:
		return false
	}
}

// NodeState is the traversal state of a map node. Cleared is terminal.
type NodeState string

// Node states
const (
	NodeLocked    NodeState = "locked"
	NodeAvailable NodeState = "available"
	NodeCleared   NodeState = "cleared"
)

// Status is the lifecycle state of a run save.
type Status string

// Run statuses
const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
	StatusAbandoned  Status = "abandoned"
)

// ActionType tags a monster action variant.
type ActionType string

// Monster action types
const (
	ActionAttack       ActionType = "attack"
	ActionDefend       ActionType = "defend"
	ActionHeal         ActionType = "heal"
	ActionBuff         ActionType = "buff"
	ActionDebuff       ActionType = "debuff"
	ActionWait         ActionType = "wait"
	ActionStealPercent ActionType = "steal_percent"
)

// CombatResult reports how an encounter ended.
type CombatResult string

// Combat results
const (
	CombatWon  CombatResult = "won"
	CombatLost CombatResult = "lost"
)

// Deck and combat limits
const (
	DeckSize     = 52
	HandSize     = 8
	PlayZoneMax  = 5
	MaxDiscards  = 3
	DefaultMaxHP = 100
)
