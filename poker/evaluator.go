package poker

import "fmt"

const suitFlags = 0xF000

// Evaluate5 returns the rank of exactly five cards. Cards are validated and
// checked for duplicates before any lookup.
func (t *Table) Evaluate5(cards [5]Card) (HandRank, error) {
	if err := checkCards(cards[:]); err != nil {
		return 0, err
	}
	return t.eval5(cards[0], cards[1], cards[2], cards[3], cards[4])
}

// eval5 assumes valid, distinct cards. A flush shares one suit flag across
// all five cards; the flush table is indexed by the OR of the rank bits and
// everything else by the product of the rank primes.
func (t *Table) eval5(a, b, c, d, e Card) (HandRank, error) {
	if a&b&c&d&e&suitFlags != 0 {
		return t.lookup(uint32(a|b|c|d|e)>>rankBitBase, true)
	}
	return t.lookup(a.Prime()*b.Prime()*c.Prime()*d.Prime()*e.Prime(), false)
}

// Evaluate returns the best rank that can be made from 5 to 7 cards.
func (t *Table) Evaluate(cards []Card) (HandRank, error) {
	res, err := BestOf(t, cards)
	if err != nil {
		return 0, err
	}
	return res.Rank, nil
}

// EvaluateBatch evaluates many hands and writes ranks into out.
// If out is nil or smaller than hands, a new slice is allocated and returned.
// Evaluation stops at the first invalid hand.
func (t *Table) EvaluateBatch(hands [][]Card, out []HandRank) ([]HandRank, error) {
	if len(out) < len(hands) {
		out = make([]HandRank, len(hands))
	} else {
		out = out[:len(hands)]
	}

	for i, hand := range hands {
		r, err := t.Evaluate(hand)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i, err)
		}
		out[i] = r
	}

	return out, nil
}

func (t *Table) result(r HandRank, cards []Card) HandResult {
	return HandResult{Rank: r, Category: t.Category(r), Cards: cards, rules: t.rules}
}
