package poker

import (
	"math/rand/v2"
)

// Deck represents a standard 52-card deck
type Deck struct {
	all   [52]Card // Fixed size backing array
	cards []Card   // Cards still in play, a prefix of all
	next  int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a new shuffled deck with explicit RNG. A nil rng leaves
// the deck unshuffled, clubs first.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.fill()
	d.Shuffle()
	return d
}

func (d *Deck) fill() {
	i := 0
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			d.all[i] = encode(rank, suit)
			i++
		}
	}
	d.cards = d.all[:]
	d.next = 0
}

// Remove takes known cards (hole cards, a fixed board) out of the deck and
// reshuffles what is left. Cards not in the deck are ignored.
func (d *Deck) Remove(cards ...Card) {
	dead := NewCardSet(cards...)
	kept := d.cards[:0]
	for _, c := range d.cards {
		if !dead.Contains(c) {
			kept = append(kept, c)
		}
	}
	d.cards = kept
	d.Shuffle()
}

// Shuffle shuffles the remaining cards using Fisher-Yates
func (d *Deck) Shuffle() {
	d.next = 0
	if d.rng == nil {
		return
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the deck. It returns nil when fewer than n remain.
// The returned slice aliases the deck and is only valid until the next
// shuffle.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards
}

// DealOne deals a single card from the deck
func (d *Deck) DealOne() (Card, bool) {
	if d.next >= len(d.cards) {
		return 0, false
	}
	card := d.cards[d.next]
	d.next++
	return card, true
}

// Reset restores all 52 cards and reshuffles
func (d *Deck) Reset() {
	d.fill()
	d.Shuffle()
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
