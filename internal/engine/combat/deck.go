package combat

import (
	"math/rand"

	"github.com/deckfall/run-api/internal/entities/run"
)

// newDeck builds the full 52-card deck in suit-major order.
func newDeck() []run.Card {
	deck := make([]run.Card, 0, run.DeckSize)
	for _, suit := range run.Suits {
		for _, rank := range run.Ranks {
			deck = append(deck, run.Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// deal shuffles a fresh deck and splits off the opening hand.
func deal(rng *rand.Rand) run.DeckState {
	deck := newDeck()
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	return run.DeckState{
		Hand:      deck[:run.HandSize],
		Remaining: deck[run.HandSize:],
	}
}

// refill draws the hand back up to 8 cards. When the draw pool runs short
// the discard pile is shuffled back into it; cards in the used pile stay
// out for the rest of the combat.
func refill(d *run.DeckState, rng *rand.Rand) {
	needed := run.HandSize - len(d.Hand)
	if needed <= 0 {
		return
	}

	if len(d.Remaining) < needed && len(d.Discard) > 0 {
		recycled := d.Discard
		d.Discard = nil
		rng.Shuffle(len(recycled), func(i, j int) { recycled[i], recycled[j] = recycled[j], recycled[i] })
		d.Remaining = append(d.Remaining, recycled...)
	}

	if needed > len(d.Remaining) {
		needed = len(d.Remaining)
	}
	d.Hand = append(d.Hand, d.Remaining[:needed]...)
	d.Remaining = d.Remaining[needed:]
}

// removeCard removes the card with the given identity from the slice,
// reporting whether it was present.
func removeCard(cards []run.Card, id string) ([]run.Card, run.Card, bool) {
	for i, c := range cards {
		if c.ID() == id {
			out := append(cards[:i:i], cards[i+1:]...)
			return out, c, true
		}
	}
	return cards, run.Card{}, false
}
