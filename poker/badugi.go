package poker

// Badugi ranks are grouped by hand size, four-card hands first. Within a
// size the colex index of the ace-low rank set orders hands by their highest
// card, then the next highest, and so on.
var badugiOffsets = [5]HandRank{
	4: 0,
	3: 715,  // C(13,4)
	2: 1001, // + C(13,3)
	1: 1079, // + C(13,2)
}

// BadugiSize is the number of distinct Badugi ranks.
const BadugiSize = 1092

var binomial = func() [14][5]uint16 {
	var c [14][5]uint16
	for n := range c {
		c[n][0] = 1
		for k := 1; k < len(c[n]) && k <= n; k++ {
			c[n][k] = c[n-1][k-1]
			if k < n {
				c[n][k] += c[n-1][k]
			}
		}
	}
	return c
}()

// EvaluateBadugi scores exactly four cards. The hand plays the largest
// subset with no repeated suit and no repeated rank, aces low.
func EvaluateBadugi(cards []Card) (HandResult, error) {
	if err := checkCount("hand", cards, 4, 4); err != nil {
		return HandResult{}, err
	}
	if err := checkCards(cards); err != nil {
		return HandResult{}, err
	}
	return evaluateBadugi(cards), nil
}

func evaluateBadugi(cards []Card) HandResult {
	best := noRank
	var bestSet []uint8
	for k := 4; k >= 1; k-- {
		for _, idx := range combos[len(cards)][k] {
			r, ok := badugiRank(cards, idx)
			if ok && r < best {
				best, bestSet = r, idx
			}
		}
		if bestSet != nil {
			break
		}
	}
	return HandResult{
		Rank:     best,
		Category: BadugiOne + Category(len(bestSet)-1),
		Cards:    pick(cards, bestSet),
	}
}

// badugiRank scores the subset idx, reporting false when two cards share a
// suit or a rank.
func badugiRank(cards []Card, idx []uint8) (HandRank, bool) {
	var suits uint16
	var values uint16
	for _, i := range idx {
		c := cards[i]
		s := c.suitFlag()
		v := uint16(1) << aceLowValue(c)
		if suits&s != 0 || values&v != 0 {
			return 0, false
		}
		suits |= s
		values |= v
	}

	var colex uint16
	k := 1
	for v := 0; v < 13; v++ {
		if values&(1<<v) != 0 {
			colex += binomial[v][k]
			k++
		}
	}
	return badugiOffsets[len(idx)] + HandRank(colex), true
}
