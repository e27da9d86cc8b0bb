// Package run defines the persisted entities of a roguelike run: the map
// graph, the player, and the optional active combat. These are plain data
// structs; the state machines that mutate them live under internal/engine.
package run

import "time"

// Card is a single playing card. Cards are immutable; identity is the
// suit/rank pair and every card exists in exactly one deck partition at a
// time (see DeckState).
type Card struct {
	Suit Suit   `json:"suit"`
	Rank string `json:"rank"`
}

// ID returns the stable identity of the card, e.g. "spade_K".
func (c Card) ID() string {
	return string(c.Suit) + "_" + c.Rank
}

// Node is a vertex in the run's branching map.
type Node struct {
	ID        string    `json:"id"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Type      NodeType  `json:"type"`
	Neighbors []string  `json:"neighbors"`
	State     NodeState `json:"state"`
}

// Player holds the run-scoped player resources. It is owned by the run
// save; combat and map code mutate it only through the session operations.
type Player struct {
	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`
	Gold  int `json:"gold"`
}

// MonsterAction is one step of a monster's cyclic behavior sequence.
type MonsterAction struct {
	Type        ActionType `json:"type"`
	Value       int        `json:"value"`
	Description string     `json:"description,omitempty"`
}

// Monster is an encounter participant. Actions form a ring: Cursor points
// at the next action to execute and wraps modulo len(Actions).
type Monster struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	MaxHP          int             `json:"maxHp"`
	HP             int             `json:"hp"`
	Shield         int             `json:"shield"`
	Actions        []MonsterAction `json:"actions"`
	Cursor         int             `json:"actionCursor"`
	ActionsPerTurn int             `json:"actionsPerTurn,omitempty"`
	GoldRewardMin  int             `json:"goldRewardMin,omitempty"`
	GoldRewardMax  int             `json:"goldRewardMax,omitempty"`
}

// Alive reports whether the monster can still act.
func (m *Monster) Alive() bool {
	return m.HP > 0
}

// DeckState partitions the 52-card deck during a combat. A card belongs to
// exactly one slice; hand, play zone, discard pile, used pile, and the
// remaining draw pool together always cover the whole deck.
type DeckState struct {
	Hand      []Card `json:"hand"`
	PlayZone  []Card `json:"playZone"`
	Discard   []Card `json:"discardPile"`
	Used      []Card `json:"usedThisCombat"`
	Remaining []Card `json:"remainingDeck"`
}

// CombatState is the persisted state of an unresolved encounter. It exists
// only between StartCombat and EndCombat; Result stays empty while the
// encounter is live.
type CombatState struct {
	EncounterID  string       `json:"encounterId"`
	RngSeed      int64        `json:"rngSeed"`
	Turn         int          `json:"turn"`
	Monsters     []*Monster   `json:"monsters"`
	Deck         DeckState    `json:"deckState"`
	DiscardsUsed int          `json:"discardsUsed"`
	PlayerShield int          `json:"playerShield"`
	StolenGold   int          `json:"stolenGold,omitempty"`
	Result       CombatResult `json:"result,omitempty"`
	FinishedAt   *time.Time   `json:"finishedAt,omitempty"`
}

// Finished reports whether the encounter already resolved. A finished
// combat must never be resolved a second time.
func (c *CombatState) Finished() bool {
	return c != nil && c.Result != ""
}

// RunSave is the root aggregate: one document per run, at most one
// in-progress run per account. ClientTick is the optimistic-concurrency
// token; it increments on every accepted mutating operation.
type RunSave struct {
	ID            string       `json:"id"`
	AccountID     string       `json:"accountId"`
	Status        Status       `json:"status"`
	Seed          int64        `json:"seed"`
	Difficulty    string       `json:"difficulty"`
	MapNodes      []Node       `json:"mapNodes"`
	StartNodeID   string       `json:"startNodeId"`
	CurrentNodeID string       `json:"currentNodeId"`
	PathTaken     []string     `json:"pathTaken"`
	Player        Player       `json:"player"`
	Combat        *CombatState `json:"activeCombat"`
	ClientTick    int64        `json:"clientTick"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// CombatActive reports whether the save has an unresolved encounter.
func (s *RunSave) CombatActive() bool {
	return s.Combat != nil && !s.Combat.Finished()
}

// Node returns the node with the given ID, or nil.
func (s *RunSave) Node(id string) *Node {
	for i := range s.MapNodes {
		if s.MapNodes[i].ID == id {
			return &s.MapNodes[i]
		}
	}
	return nil
}
