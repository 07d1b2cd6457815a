package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// HandRank is the strength of a hand within one variant. Lower values are
// stronger for every variant, including the low games and Badugi. Equal
// values are exact ties.
type HandRank uint16

// noRank is larger than any valid HandRank.
const noRank HandRank = 0xFFFF

// Category classifies a hand. It never orders hands; compare HandRank values
// for that.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush

	BadugiOne
	BadugiTwo
	BadugiThree
	BadugiFour

	// UnknownCategory is reported for a rank outside a table's range.
	UnknownCategory Category = 0xFF
)

var categoryNames = [...]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	BadugiOne:     "One-Card Hand",
	BadugiTwo:     "Two-Card Hand",
	BadugiThree:   "Three-Card Hand",
	BadugiFour:    "Badugi",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "Unknown"
}

// CompareHands compares two ranks and returns 1 if a wins, -1 if b wins, 0 for tie.
func CompareHands(a, b HandRank) int {
	if a < b {
		return 1
	} else if a > b {
		return -1
	}
	return 0
}

// HandResult is one evaluated hand: its strength, its category and the cards
// that make it. For five card games Cards holds the winning five card subset.
type HandResult struct {
	Rank     HandRank
	Category Category
	Cards    []Card

	rules Rules
}

// Beats reports whether h is strictly stronger than o.
func (h HandResult) Beats(o HandResult) bool {
	return h.Rank < o.Rank
}

func (h HandResult) String() string {
	return fmt.Sprintf("%s [%s] (%d)", h.Description(), FormatCards(h.Cards), h.Rank)
}

var rankNames = [...]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "Jack", "Queen", "King", "Ace"}

func rankName(idx uint8) string { return rankNames[idx] }

func rankPlural(idx uint8) string { return rankNames[idx] + "s" }

// Description renders the hand the way players call it at the table, e.g.
// "Kings Full of 9s", "7-5-4-3-2" or "Jack-high 3-card hand".
func (h HandResult) Description() string {
	if h.Category >= BadugiOne {
		return describeBadugi(h.Cards)
	}

	var counts [13]uint8
	var mask uint16
	for _, c := range h.Cards {
		counts[c.rankIndex()]++
		mask |= c.rankBit()
	}
	// groups ordered by count then rank, both descending
	var groups []uint8
	for n := uint8(4); n >= 1; n-- {
		for r := 12; r >= 0; r-- {
			if counts[r] == n {
				groups = append(groups, uint8(r))
			}
		}
	}
	if len(groups) == 0 {
		return h.Category.String()
	}

	switch h.Category {
	case StraightFlush:
		return rankName(straightTop(mask, h.rules)) + " High Straight Flush"
	case FourOfAKind:
		return "Quad " + rankPlural(groups[0])
	case FullHouse:
		return rankPlural(groups[0]) + " Full of " + rankPlural(groups[1])
	case Flush:
		return rankName(groups[0]) + " High Flush"
	case Straight:
		return rankName(straightTop(mask, h.rules)) + " High Straight"
	case ThreeOfAKind:
		return "Trip " + rankPlural(groups[0])
	case TwoPair:
		return "Two Pair of " + rankPlural(groups[0]) + " and " + rankPlural(groups[1])
	case Pair:
		return "Pair of " + rankPlural(groups[0])
	}

	switch h.rules {
	case DeuceToSevenRules:
		return lowString(groups, false)
	case AceToFiveRules:
		return lowString(groups, true)
	default:
		return rankName(groups[0]) + " High"
	}
}

// lowString renders distinct ranks high to low as "8-6-4-3-2". Aces sort
// last when aceLow is set.
func lowString(ranks []uint8, aceLow bool) string {
	parts := make([]string, 0, len(ranks))
	var ace bool
	for _, r := range ranks {
		if aceLow && r == 12 {
			ace = true
			continue
		}
		parts = append(parts, Rank(r+uint8(Two)).String())
	}
	if ace {
		parts = append(parts, "A")
	}
	return strings.Join(parts, "-")
}

// straightTop returns the rank index of the top card of a five card straight
// mask, honouring the wheel only where the rules allow it.
func straightTop(mask uint16, rules Rules) uint8 {
	if mask == wheelMask && rules.wheel() {
		return 3
	}
	return uint8(bits.Len16(mask) - 1)
}

func describeBadugi(cards []Card) string {
	if len(cards) == 0 {
		return "No Hand"
	}
	var top uint8
	for _, c := range cards {
		if v := aceLowValue(c); v > top {
			top = v
		}
	}
	name := "Ace"
	if top > 0 {
		name = rankNames[top-1]
	}
	if len(cards) == 4 {
		return name + "-high Badugi"
	}
	return fmt.Sprintf("%s-high %d-card hand", name, len(cards))
}
