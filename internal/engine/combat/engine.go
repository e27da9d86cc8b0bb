// Package combat implements the turn-based encounter state machine: staged
// hands scored against monsters, monster intent rings, and the deck
// partition bookkeeping that keeps all 52 cards accounted for.
package combat

import (
	"log/slog"
	"math/rand"

	"github.com/deckfall/run-api/internal/engine/hand"
	"github.com/deckfall/run-api/internal/entities/run"
	"github.com/deckfall/run-api/internal/errors"
)

// Phase is the combat turn phase.
type Phase string

// Phases. Won and Lost are terminal.
const (
	PhasePlayer  Phase = "player"
	PhaseMonster Phase = "monster"
	PhaseWon     Phase = "won"
	PhaseLost    Phase = "lost"
)

// NewEncounter deals a fresh combat state for the given monsters. The rng
// seed drives the deck shuffle, recycle shuffles, and the reward roll, so
// an encounter replays identically from the same seed.
func NewEncounter(encounterID string, rngSeed int64, monsters []*run.Monster) (*run.CombatState, error) {
	if encounterID == "" {
		return nil, errors.InvalidArgument("encounter ID cannot be empty")
	}
	if len(monsters) == 0 {
		return nil, errors.InvalidArgument("encounter needs at least one monster")
	}
	for _, m := range monsters {
		if len(m.Actions) == 0 {
			return nil, errors.InvalidArgumentf("monster %s has no actions", m.Name)
		}
		if m.HP <= 0 {
			m.HP = m.MaxHP
		}
	}

	rng := rand.New(rand.NewSource(rngSeed))
	return &run.CombatState{
		EncounterID: encounterID,
		RngSeed:     rngSeed,
		Turn:        1,
		Monsters:    monsters,
		Deck:        deal(rng),
	}, nil
}

// Engine drives one encounter. It owns the combat state and mutates the
// player only through the documented action effects.
type Engine struct {
	state  *run.CombatState
	player *run.Player
	phase  Phase
	rng    *rand.Rand

	goldReward int
}

// Config holds the dependencies for a combat engine.
type Config struct {
	State  *run.CombatState
	Player *run.Player
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.State == nil {
		vb.RequiredField("State")
	}
	if c.Player == nil {
		vb.RequiredField("Player")
	}

	return vb.Build()
}

// New resumes an engine over an unresolved combat state.
func New(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if cfg.State.Finished() {
		return nil, errors.NoActiveCombat("encounter already resolved")
	}

	// Re-seeding per turn keeps shuffles deterministic without replaying
	// the whole rng stream on resume.
	return &Engine{
		state:  cfg.State,
		player: cfg.Player,
		phase:  PhasePlayer,
		rng:    rand.New(rand.NewSource(cfg.State.RngSeed + int64(cfg.State.Turn))),
	}, nil
}

// Phase returns the current turn phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// State returns the underlying combat state.
func (e *Engine) State() *run.CombatState {
	return e.state
}

// GoldReward returns the rolled reward after a win, zero otherwise.
func (e *Engine) GoldReward() int {
	return e.goldReward
}

// Stage moves a card from the hand into the play zone.
func (e *Engine) Stage(cardID string) error {
	if e.phase != PhasePlayer {
		return errors.FailedPreconditionf("cannot stage cards during the %s phase", e.phase)
	}
	if len(e.state.Deck.PlayZone) >= run.PlayZoneMax {
		return errors.FailedPreconditionf("play zone holds at most %d cards", run.PlayZoneMax)
	}

	rest, c, ok := removeCard(e.state.Deck.Hand, cardID)
	if !ok {
		return errors.InvalidArgumentf("card %s is not in hand", cardID)
	}
	e.state.Deck.Hand = rest
	e.state.Deck.PlayZone = append(e.state.Deck.PlayZone, c)
	return nil
}

// Unstage returns a staged card to the hand.
func (e *Engine) Unstage(cardID string) error {
	rest, c, ok := removeCard(e.state.Deck.PlayZone, cardID)
	if !ok {
		return errors.InvalidArgumentf("card %s is not staged", cardID)
	}
	e.state.Deck.PlayZone = rest
	e.state.Deck.Hand = append(e.state.Deck.Hand, c)
	return nil
}

// PlayOutcome reports what a played hand did.
type PlayOutcome struct {
	HandType hand.Type
	Score    int
	Absorbed int
	Damage   int
}

// PlayHand evaluates the staged cards, applies the score as damage to the
// first living monster (shield absorbs first), retires the staged cards to
// the used pile, and refills the hand. On a kill of the last monster the
// combat ends Won and the gold reward is rolled; otherwise the monster
// phase begins.
func (e *Engine) PlayHand() (*PlayOutcome, error) {
	if e.phase != PhasePlayer {
		return nil, errors.FailedPreconditionf("cannot play during the %s phase", e.phase)
	}
	staged := e.state.Deck.PlayZone
	if len(staged) == 0 {
		return nil, errors.FailedPrecondition("no cards staged")
	}

	handType, score, err := hand.Evaluate(staged)
	if err != nil {
		return nil, err
	}

	target := e.firstAliveMonster()
	if target == nil {
		return nil, errors.Internal("combat running with no living monster")
	}
	absorbed := damageMonster(target, score)

	e.state.Deck.Used = append(e.state.Deck.Used, staged...)
	e.state.Deck.PlayZone = nil
	refill(&e.state.Deck, e.rng)

	slog.Debug("hand played",
		"encounter_id", e.state.EncounterID,
		"hand_type", string(handType),
		"score", score,
		"target", target.Name,
		"target_hp", target.HP)

	if e.firstAliveMonster() == nil {
		e.phase = PhaseWon
		e.goldReward = rollReward(e.rng, e.state.Monsters)
	} else {
		e.phase = PhaseMonster
	}

	return &PlayOutcome{
		HandType: handType,
		Score:    score,
		Absorbed: absorbed,
		Damage:   score - absorbed,
	}, nil
}

// DiscardStaged sends the staged cards to the discard pile (still
// recyclable) and refills the hand. It does not advance the turn; the
// player still has to play. At most 3 discards per combat.
func (e *Engine) DiscardStaged() error {
	if e.phase != PhasePlayer {
		return errors.FailedPreconditionf("cannot discard during the %s phase", e.phase)
	}
	if e.state.DiscardsUsed >= run.MaxDiscards {
		return errors.FailedPreconditionf("all %d discards used", run.MaxDiscards)
	}
	if len(e.state.Deck.PlayZone) == 0 {
		return errors.FailedPrecondition("no cards staged")
	}

	e.state.Deck.Discard = append(e.state.Deck.Discard, e.state.Deck.PlayZone...)
	e.state.Deck.PlayZone = nil
	refill(&e.state.Deck, e.rng)
	e.state.DiscardsUsed++
	return nil
}

// ActionOutcome reports one executed monster action.
type ActionOutcome struct {
	MonsterID string
	Action    run.MonsterAction
	Stolen    int
}

// MonsterTurn consumes each living monster's configured number of actions,
// applies the effects, and hands control back to the player unless the
// player died. Intents advance as each action is consumed.
func (e *Engine) MonsterTurn() ([]ActionOutcome, error) {
	if e.phase != PhaseMonster {
		return nil, errors.FailedPreconditionf("cannot run the monster turn during the %s phase", e.phase)
	}

	var outcomes []ActionOutcome
	for _, m := range e.state.Monsters {
		if !m.Alive() {
			continue
		}
		perTurn := m.ActionsPerTurn
		if perTurn < 1 {
			perTurn = 1
		}
		for i := 0; i < perTurn; i++ {
			action := consumeAction(m)
			outcome := ActionOutcome{MonsterID: m.ID, Action: action}

			switch action.Type {
			case run.ActionAttack:
				e.player.HP -= action.Value
				if e.player.HP < 0 {
					e.player.HP = 0
				}
			case run.ActionDefend:
				m.Shield += action.Value
			case run.ActionHeal:
				m.HP += action.Value
				if m.HP > m.MaxHP {
					m.HP = m.MaxHP
				}
			case run.ActionStealPercent:
				stolen := e.player.Gold * clampPercent(action.Value) / 100
				e.player.Gold -= stolen
				e.state.StolenGold += stolen
				outcome.Stolen = stolen
			case run.ActionWait, run.ActionBuff, run.ActionDebuff:
				// Wait is a no-op; buff/debuff round-trip in the schema
				// but have no resolution effect yet.
			}

			outcomes = append(outcomes, outcome)
			if e.player.HP == 0 {
				e.phase = PhaseLost
				return outcomes, nil
			}
		}
	}

	e.state.Turn++
	e.phase = PhasePlayer
	e.rng = rand.New(rand.NewSource(e.state.RngSeed + int64(e.state.Turn)))
	return outcomes, nil
}

// Intent returns the next action each living monster will take, without
// advancing any cursor.
func (e *Engine) Intent() map[string]run.MonsterAction {
	intents := make(map[string]run.MonsterAction)
	for _, m := range e.state.Monsters {
		if m.Alive() {
			intents[m.ID] = peekAction(m)
		}
	}
	return intents
}

func (e *Engine) firstAliveMonster() *run.Monster {
	for _, m := range e.state.Monsters {
		if m.Alive() {
			return m
		}
	}
	return nil
}

// damageMonster applies damage with shield absorption first and returns
// the absorbed amount. HP floors at zero; death is terminal.
func damageMonster(m *run.Monster, dmg int) int {
	absorbed := dmg
	if m.Shield < absorbed {
		absorbed = m.Shield
	}
	m.Shield -= absorbed
	remaining := dmg - absorbed

	m.HP -= remaining
	if m.HP < 0 {
		m.HP = 0
	}
	return absorbed
}

// peekAction reads the action at the cursor without advancing.
func peekAction(m *run.Monster) run.MonsterAction {
	return m.Actions[m.Cursor%len(m.Actions)]
}

// consumeAction reads the action at the cursor and advances it, wrapping
// modulo the sequence length.
func consumeAction(m *run.Monster) run.MonsterAction {
	action := m.Actions[m.Cursor%len(m.Actions)]
	m.Cursor = (m.Cursor + 1) % len(m.Actions)
	return action
}

// rollReward sums a random roll in each monster's configured reward range.
func rollReward(rng *rand.Rand, monsters []*run.Monster) int {
	total := 0
	for _, m := range monsters {
		if m.GoldRewardMax <= m.GoldRewardMin {
			total += m.GoldRewardMin
			continue
		}
		total += m.GoldRewardMin + rng.Intn(m.GoldRewardMax-m.GoldRewardMin+1)
	}
	return total
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
