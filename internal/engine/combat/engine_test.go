package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckfall/run-api/internal/entities/run"
	"github.com/deckfall/run-api/internal/errors"
)

func testMonster(hp int, actions ...run.MonsterAction) *run.Monster {
	if len(actions) == 0 {
		actions = []run.MonsterAction{{Type: run.ActionAttack, Value: 10}}
	}
	return &run.Monster{
		ID:            "monster_1",
		Name:          "test",
		MaxHP:         hp,
		HP:            hp,
		Actions:       actions,
		GoldRewardMin: 10,
		GoldRewardMax: 20,
	}
}

func testEngine(t *testing.T, monster *run.Monster, player *run.Player) *Engine {
	t.Helper()

	state, err := NewEncounter("enc_1", 42, []*run.Monster{monster})
	require.NoError(t, err)

	e, err := New(&Config{State: state, Player: player})
	require.NoError(t, err)
	return e
}

func deckCardCount(d run.DeckState) int {
	return len(d.Hand) + len(d.PlayZone) + len(d.Discard) + len(d.Used) + len(d.Remaining)
}

func TestNewEncounter_DealsFullDeck(t *testing.T) {
	state, err := NewEncounter("enc_1", 7, []*run.Monster{testMonster(100)})
	require.NoError(t, err)

	assert.Len(t, state.Deck.Hand, run.HandSize)
	assert.Len(t, state.Deck.Remaining, run.DeckSize-run.HandSize)
	assert.Equal(t, 1, state.Turn)

	seen := make(map[string]bool)
	for _, c := range append(append([]run.Card{}, state.Deck.Hand...), state.Deck.Remaining...) {
		assert.False(t, seen[c.ID()], "card %s dealt twice", c.ID())
		seen[c.ID()] = true
	}
	assert.Len(t, seen, run.DeckSize)
}

func TestNewEncounter_DeterministicBySeed(t *testing.T) {
	a, err := NewEncounter("enc_1", 99, []*run.Monster{testMonster(100)})
	require.NoError(t, err)
	b, err := NewEncounter("enc_2", 99, []*run.Monster{testMonster(100)})
	require.NoError(t, err)

	assert.Equal(t, a.Deck.Hand, b.Deck.Hand)
	assert.Equal(t, a.Deck.Remaining, b.Deck.Remaining)
}

func TestPlayHand_ShieldAbsorbsFirst(t *testing.T) {
	monster := testMonster(100)
	monster.Shield = 10
	player := &run.Player{HP: 100, MaxHP: 100}
	e := testEngine(t, monster, player)

	// Force a known staged hand worth 15: a ten and a five, high card.
	e.state.Deck.PlayZone = []run.Card{
		{Suit: run.SuitSpade, Rank: "10"},
		{Suit: run.SuitHeart, Rank: "5"},
	}

	outcome, err := e.PlayHand()
	require.NoError(t, err)

	assert.Equal(t, 15, outcome.Score)
	assert.Equal(t, 10, outcome.Absorbed)
	assert.Equal(t, 0, monster.Shield)
	assert.Equal(t, 95, monster.HP, "shield 10 against 15 damage leaves hp reduced by exactly 5")
	assert.Equal(t, PhaseMonster, e.Phase())
}

func TestPlayHand_MovesCardsToUsedAndRefills(t *testing.T) {
	player := &run.Player{HP: 100, MaxHP: 100}
	e := testEngine(t, testMonster(1000), player)

	for i := 0; i < 5; i++ {
		require.NoError(t, e.Stage(e.state.Deck.Hand[0].ID()))
	}
	require.Len(t, e.state.Deck.PlayZone, 5)

	_, err := e.PlayHand()
	require.NoError(t, err)

	assert.Len(t, e.state.Deck.Hand, run.HandSize)
	assert.Len(t, e.state.Deck.Used, 5)
	assert.Empty(t, e.state.Deck.PlayZone)
	assert.Equal(t, run.DeckSize, deckCardCount(e.state.Deck))
}

func TestPlayHand_RequiresStagedCards(t *testing.T) {
	e := testEngine(t, testMonster(100), &run.Player{HP: 100, MaxHP: 100})

	_, err := e.PlayHand()
	require.Error(t, err)
	assert.True(t, errors.IsFailedPrecondition(err))
}

func TestPlayHand_KillRollsReward(t *testing.T) {
	monster := testMonster(10)
	player := &run.Player{HP: 100, MaxHP: 100}
	e := testEngine(t, monster, player)

	e.state.Deck.PlayZone = []run.Card{
		{Suit: run.SuitSpade, Rank: "K"},
		{Suit: run.SuitHeart, Rank: "K"},
	}

	_, err := e.PlayHand()
	require.NoError(t, err)

	assert.Equal(t, 0, monster.HP)
	assert.Equal(t, PhaseWon, e.Phase())
	assert.GreaterOrEqual(t, e.GoldReward(), monster.GoldRewardMin)
	assert.LessOrEqual(t, e.GoldReward(), monster.GoldRewardMax)
}

func TestStage_Limits(t *testing.T) {
	e := testEngine(t, testMonster(100), &run.Player{HP: 100, MaxHP: 100})

	for i := 0; i < run.PlayZoneMax; i++ {
		require.NoError(t, e.Stage(e.state.Deck.Hand[0].ID()))
	}

	err := e.Stage(e.state.Deck.Hand[0].ID())
	require.Error(t, err)
	assert.True(t, errors.IsFailedPrecondition(err))

	err = e.Stage("spade_X")
	require.Error(t, err)

	// Unstage returns the card to hand.
	staged := e.state.Deck.PlayZone[0]
	require.NoError(t, e.Unstage(staged.ID()))
	assert.Len(t, e.state.Deck.PlayZone, run.PlayZoneMax-1)
	assert.Len(t, e.state.Deck.Hand, 4)
}

func TestDiscardStaged(t *testing.T) {
	e := testEngine(t, testMonster(100), &run.Player{HP: 100, MaxHP: 100})

	t.Run("discarded cards stay recyclable and the turn does not advance", func(t *testing.T) {
		require.NoError(t, e.Stage(e.state.Deck.Hand[0].ID()))
		require.NoError(t, e.DiscardStaged())

		assert.Equal(t, PhasePlayer, e.Phase(), "discard must not hand the turn to the monster")
		assert.Len(t, e.state.Deck.Discard, 1)
		assert.Empty(t, e.state.Deck.Used)
		assert.Len(t, e.state.Deck.Hand, run.HandSize)
		assert.Equal(t, 1, e.state.DiscardsUsed)
	})

	t.Run("fourth discard is rejected without state change", func(t *testing.T) {
		e.state.DiscardsUsed = run.MaxDiscards
		require.NoError(t, e.Stage(e.state.Deck.Hand[0].ID()))

		before := len(e.state.Deck.Discard)
		err := e.DiscardStaged()
		require.Error(t, err)
		assert.True(t, errors.IsFailedPrecondition(err))
		assert.Len(t, e.state.Deck.Discard, before)
		assert.Equal(t, run.MaxDiscards, e.state.DiscardsUsed)
	})

	t.Run("discard with nothing staged is rejected", func(t *testing.T) {
		e.state.DiscardsUsed = 0
		e.state.Deck.Hand = append(e.state.Deck.Hand, e.state.Deck.PlayZone...)
		e.state.Deck.PlayZone = nil

		err := e.DiscardStaged()
		require.Error(t, err)
		assert.True(t, errors.IsFailedPrecondition(err))
	})
}

func TestRefill_RecyclesDiscardPile(t *testing.T) {
	rngState, err := NewEncounter("enc_1", 3, []*run.Monster{testMonster(100)})
	require.NoError(t, err)
	e, err := New(&Config{State: rngState, Player: &run.Player{HP: 100, MaxHP: 100}})
	require.NoError(t, err)

	// Drain the draw pool into the discard pile, keeping a 3-card hand.
	d := &e.state.Deck
	d.Discard = append(d.Discard, d.Remaining...)
	d.Discard = append(d.Discard, d.Hand[3:]...)
	d.Hand = d.Hand[:3]
	d.Remaining = nil

	refill(d, e.rng)

	assert.Len(t, d.Hand, run.HandSize)
	assert.Equal(t, run.DeckSize, deckCardCount(*d))
	assert.NotEmpty(t, d.Remaining, "recycled discards feed the draw pool")
}

func TestMonsterTurn_IntentRing(t *testing.T) {
	monster := testMonster(500,
		run.MonsterAction{Type: run.ActionAttack, Value: 10},
		run.MonsterAction{Type: run.ActionDefend, Value: 15},
	)
	player := &run.Player{HP: 100, MaxHP: 100}
	e := testEngine(t, monster, player)

	assert.Equal(t, run.ActionAttack, e.Intent()[monster.ID].Type)

	e.state.Deck.PlayZone = e.state.Deck.Hand[:1]
	e.state.Deck.Hand = e.state.Deck.Hand[1:]
	_, err := e.PlayHand()
	require.NoError(t, err)

	outcomes, err := e.MonsterTurn()
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, run.ActionAttack, outcomes[0].Action.Type)
	assert.Equal(t, 90, player.HP)

	// Peek now shows the defend, and wraps after another consumption.
	assert.Equal(t, run.ActionDefend, e.Intent()[monster.ID].Type)
	assert.Equal(t, 1, monster.Cursor)

	e.state.Deck.PlayZone = e.state.Deck.Hand[:1]
	e.state.Deck.Hand = e.state.Deck.Hand[1:]
	_, err = e.PlayHand()
	require.NoError(t, err)
	_, err = e.MonsterTurn()
	require.NoError(t, err)

	assert.Equal(t, 15, monster.Shield)
	assert.Equal(t, run.ActionAttack, e.Intent()[monster.ID].Type, "cursor wraps around the ring")
	assert.Equal(t, 0, monster.Cursor)
}

func TestMonsterTurn_ActionsPerTurn(t *testing.T) {
	monster := testMonster(500,
		run.MonsterAction{Type: run.ActionAttack, Value: 5},
		run.MonsterAction{Type: run.ActionAttack, Value: 7},
	)
	monster.ActionsPerTurn = 2
	player := &run.Player{HP: 100, MaxHP: 100}
	e := testEngine(t, monster, player)

	e.state.Deck.PlayZone = e.state.Deck.Hand[:1]
	e.state.Deck.Hand = e.state.Deck.Hand[1:]
	_, err := e.PlayHand()
	require.NoError(t, err)

	outcomes, err := e.MonsterTurn()
	require.NoError(t, err)
	assert.Len(t, outcomes, 2)
	assert.Equal(t, 88, player.HP)
	assert.Equal(t, PhasePlayer, e.Phase())
	assert.Equal(t, 2, e.state.Turn)
}

func TestMonsterTurn_StealPercentFloors(t *testing.T) {
	monster := testMonster(500, run.MonsterAction{Type: run.ActionStealPercent, Value: 25})
	player := &run.Player{HP: 100, MaxHP: 100, Gold: 10}
	e := testEngine(t, monster, player)

	e.state.Deck.PlayZone = e.state.Deck.Hand[:1]
	e.state.Deck.Hand = e.state.Deck.Hand[1:]
	_, err := e.PlayHand()
	require.NoError(t, err)

	outcomes, err := e.MonsterTurn()
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, 2, outcomes[0].Stolen, "floor(10 * 25 / 100)")
	assert.Equal(t, 8, player.Gold)
	assert.Equal(t, 2, e.state.StolenGold)
}

func TestMonsterTurn_HealClampsToMaxHP(t *testing.T) {
	monster := testMonster(100, run.MonsterAction{Type: run.ActionHeal, Value: 50})
	monster.HP = 80
	player := &run.Player{HP: 100, MaxHP: 100}
	e := testEngine(t, monster, player)

	e.state.Deck.PlayZone = e.state.Deck.Hand[:1]
	e.state.Deck.Hand = e.state.Deck.Hand[1:]
	_, err := e.PlayHand()
	require.NoError(t, err)

	_, err = e.MonsterTurn()
	require.NoError(t, err)
	assert.Equal(t, 100, monster.HP)
}

func TestMonsterTurn_PlayerDeathIsTerminal(t *testing.T) {
	monster := testMonster(500, run.MonsterAction{Type: run.ActionAttack, Value: 50})
	player := &run.Player{HP: 10, MaxHP: 100}
	e := testEngine(t, monster, player)

	e.state.Deck.PlayZone = e.state.Deck.Hand[:1]
	e.state.Deck.Hand = e.state.Deck.Hand[1:]
	_, err := e.PlayHand()
	require.NoError(t, err)

	_, err = e.MonsterTurn()
	require.NoError(t, err)
	assert.Equal(t, 0, player.HP)
	assert.Equal(t, PhaseLost, e.Phase())

	_, err = e.PlayHand()
	require.Error(t, err, "terminal phase rejects further play")
}

func TestNew_RejectsResolvedCombat(t *testing.T) {
	state, err := NewEncounter("enc_1", 1, []*run.Monster{testMonster(100)})
	require.NoError(t, err)
	state.Result = run.CombatWon

	_, err = New(&Config{State: state, Player: &run.Player{HP: 100, MaxHP: 100}})
	require.Error(t, err)
	assert.True(t, errors.IsNoActiveCombat(err))
}

func TestRosterPick(t *testing.T) {
	m := RosterPick(1, "monster_abc")
	require.NotNil(t, m)
	assert.Equal(t, "monster_abc", m.ID)
	assert.Equal(t, m.MaxHP, m.HP)

	// Same seed picks the same template; template stays untouched.
	m2 := RosterPick(1, "monster_def")
	assert.Equal(t, m.Name, m2.Name)
	m.Actions[0].Value = 9999
	assert.NotEqual(t, 9999, RosterPick(1, "monster_ghi").Actions[0].Value)
}
