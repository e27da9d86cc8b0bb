// Package hand scores staged card hands with poker-style rankings. The
// evaluator is a pure function: same cards in, same score out.
package hand

import (
	"math"

	"github.com/deckfall/run-api/internal/entities/run"
	"github.com/deckfall/run-api/internal/errors"
)

// Type is a poker hand ranking tier.
type Type string

// Hand types, strongest first.
const (
	RoyalFlush    Type = "royal_flush"
	StraightFlush Type = "straight_flush"
	FourOfAKind   Type = "four_of_a_kind"
	FullHouse     Type = "full_house"
	Flush         Type = "flush"
	Straight      Type = "straight"
	ThreeOfAKind  Type = "three_of_a_kind"
	TwoPair       Type = "two_pair"
	Pair          Type = "pair"
	HighCard      Type = "high_card"
)

// multipliers maps each tier to its fixed score multiplier.
var multipliers = map[Type]float64{
	RoyalFlush:    10,
	StraightFlush: 8,
	FourOfAKind:   7,
	FullHouse:     6,
	Flush:         5,
	Straight:      4,
	ThreeOfAKind:  3,
	TwoPair:       2,
	Pair:          1.5,
	HighCard:      1,
}

// rankValues maps rank symbols to values 2..14, ace high.
var rankValues = map[string]int{
	"2": 2, "3": 3, "4": 4, "5": 5, "6": 6, "7": 7, "8": 8, "9": 9,
	"10": 10, "J": 11, "Q": 12, "K": 13, "A": 14,
}

// Multiplier returns the score multiplier for a hand type.
func Multiplier(t Type) float64 {
	return multipliers[t]
}

// Evaluate scores a staged hand of 1 to 5 cards. Straights and flushes only
// apply at exactly 5 cards; smaller hands use multiplicity tiers alone.
// The score is round(sum of rank values * tier multiplier).
func Evaluate(cards []run.Card) (Type, int, error) {
	if len(cards) == 0 {
		return "", 0, errors.InvalidArgument("cannot evaluate an empty hand")
	}
	if len(cards) > run.PlayZoneMax {
		return "", 0, errors.InvalidArgumentf("cannot evaluate %d cards, play zone holds at most %d", len(cards), run.PlayZoneMax)
	}

	sum := 0
	counts := make(map[int]int, len(cards))
	for _, c := range cards {
		v, ok := rankValues[c.Rank]
		if !ok {
			return "", 0, errors.InvalidArgumentf("unknown card rank %q", c.Rank)
		}
		sum += v
		counts[v]++
	}

	t := classify(cards, counts)
	score := int(math.Round(float64(sum) * multipliers[t]))
	return t, score, nil
}

func classify(cards []run.Card, counts map[int]int) Type {
	flush := len(cards) == 5 && isFlush(cards)
	straight := len(cards) == 5 && isStraight(counts)

	if straight && flush {
		// A straight flush through the ten is the royal tier.
		if counts[10] > 0 {
			return RoyalFlush
		}
		return StraightFlush
	}

	pairs := 0
	trips := false
	quads := false
	for _, n := range counts {
		switch n {
		case 2:
			pairs++
		case 3:
			trips = true
		case 4:
			quads = true
		}
	}

	switch {
	case quads:
		return FourOfAKind
	case trips && pairs > 0:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case trips:
		return ThreeOfAKind
	case pairs >= 2:
		return TwoPair
	case pairs == 1:
		return Pair
	default:
		return HighCard
	}
}

func isFlush(cards []run.Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// isStraight requires 5 distinct consecutive values, or the wheel
// {A,2,3,4,5} with the ace still counting 14 toward the sum.
func isStraight(counts map[int]int) bool {
	if len(counts) != 5 {
		return false
	}

	low, high := 15, 1
	for v := range counts {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	if high-low == 4 {
		return true
	}

	wheel := counts[14] == 1 && counts[2] == 1 && counts[3] == 1 && counts[4] == 1 && counts[5] == 1
	return wheel
}
