package poker

// combos[n][k] lists every k-subset of n positions in lexicographic order.
var combos = func() [8][6][][]uint8 {
	var table [8][6][][]uint8
	for n := 1; n < len(table); n++ {
		for k := 1; k <= n && k < len(table[n]); k++ {
			table[n][k] = subsets(n, k)
		}
	}
	return table
}()

func subsets(n, k int) [][]uint8 {
	var out [][]uint8
	idx := make([]uint8, k)
	for i := range idx {
		idx[i] = uint8(i)
	}
	for {
		out = append(out, append([]uint8(nil), idx...))
		i := k - 1
		for i >= 0 && int(idx[i]) == n-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// BestOf evaluates every five card subset of 5 to 7 distinct cards and
// returns the strongest. When several subsets share the best rank the first
// one found is returned; only the rank is meaningful for comparison.
func BestOf(t *Table, cards []Card) (HandResult, error) {
	if err := checkCount("hand", cards, 5, 7); err != nil {
		return HandResult{}, err
	}
	if err := checkCards(cards); err != nil {
		return HandResult{}, err
	}
	return bestOf(t, cards)
}

func bestOf(t *Table, cards []Card) (HandResult, error) {
	best := noRank
	var bestIdx []uint8
	for _, idx := range combos[len(cards)][5] {
		r, err := t.eval5(cards[idx[0]], cards[idx[1]], cards[idx[2]], cards[idx[3]], cards[idx[4]])
		if err != nil {
			return HandResult{}, err
		}
		if r < best {
			best, bestIdx = r, idx
		}
	}
	return t.result(best, pick(cards, bestIdx)), nil
}

// omahaHand is one legal Omaha holding: two hole cards and three board cards.
type omahaHand [5]Card

// eachOmaha calls fn for every two-from-hole, three-from-board hand.
// Iteration stops at the first error.
func eachOmaha(hole, board []Card, fn func(h omahaHand) error) error {
	for _, hi := range combos[len(hole)][2] {
		for _, bi := range combos[len(board)][3] {
			h := omahaHand{hole[hi[0]], hole[hi[1]], board[bi[0]], board[bi[1]], board[bi[2]]}
			if err := fn(h); err != nil {
				return err
			}
		}
	}
	return nil
}

// BestOmaha returns the strongest hand that uses exactly two cards from hole
// and exactly three from board. Hole holds 4 to 6 cards and board 3 to 5.
func BestOmaha(t *Table, hole, board []Card) (HandResult, error) {
	if err := checkOmaha(hole, board); err != nil {
		return HandResult{}, err
	}
	return bestOmaha(t, hole, board)
}

func checkOmaha(hole, board []Card) error {
	if err := checkCount("hole", hole, 4, 6); err != nil {
		return err
	}
	if err := checkCount("board", board, 3, 5); err != nil {
		return err
	}
	return checkCards(hole, board)
}

func bestOmaha(t *Table, hole, board []Card) (HandResult, error) {
	best := noRank
	var bestHand omahaHand
	err := eachOmaha(hole, board, func(h omahaHand) error {
		r, err := t.eval5(h[0], h[1], h[2], h[3], h[4])
		if err != nil {
			return err
		}
		if r < best {
			best, bestHand = r, h
		}
		return nil
	})
	if err != nil {
		return HandResult{}, err
	}
	return t.result(best, append([]Card(nil), bestHand[:]...)), nil
}

func pick(cards []Card, idx []uint8) []Card {
	out := make([]Card, len(idx))
	for i, j := range idx {
		out[i] = cards[j]
	}
	return out
}
