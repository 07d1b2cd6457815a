package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card is a playing card packed into a single word:
//
//	bits 0-7   prime assigned to the rank (2 for deuces .. 41 for aces)
//	bits 8-11  rank index (0 for deuces .. 12 for aces)
//	bits 12-15 one-hot suit flag
//	bits 16-28 one-hot rank bit
//
// The prime and rank-bit fields let the evaluator hash a five card hand with
// one multiplication and detect flushes with one AND. The layout is part of
// the table artifact format and must not change.
type Card uint32

// Rank is a card rank from Two (2) to Ace (14).
type Rank uint8

// Suit is one of the four card suits.
type Suit uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const (
	primeMask   = 0xFF
	rankShift   = 8
	suitShift   = 12
	rankBitBase = 16
)

// rankPrimes maps rank index to its prime. Changing this invalidates every
// serialized table.
var rankPrimes = [13]uint32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// NewCard encodes a rank and suit.
func NewCard(rank Rank, suit Suit) (Card, error) {
	if rank < Two || rank > Ace {
		return 0, fmt.Errorf("%w: rank %d out of range", ErrInvalidCard, rank)
	}
	if suit > Spades {
		return 0, fmt.Errorf("%w: suit %d out of range", ErrInvalidCard, suit)
	}
	return encode(uint8(rank-Two), uint8(suit)), nil
}

// MustCard is like NewCard but panics on invalid input. It is intended for
// constants and tests.
func MustCard(rank Rank, suit Suit) Card {
	c, err := NewCard(rank, suit)
	if err != nil {
		panic(err)
	}
	return c
}

func encode(rankIdx, suit uint8) Card {
	return Card(rankPrimes[rankIdx] |
		uint32(rankIdx)<<rankShift |
		uint32(1)<<(suitShift+uint32(suit)) |
		uint32(1)<<(rankBitBase+uint32(rankIdx)))
}

// Rank returns the rank of the card (Two..Ace).
func (c Card) Rank() Rank {
	return Rank(c.rankIndex()) + Two
}

// Suit returns the suit of the card.
func (c Card) Suit() Suit {
	return Suit(bits.TrailingZeros32(uint32(c.suitFlag())))
}

// Prime returns the prime associated with the card's rank.
func (c Card) Prime() uint32 {
	return uint32(c) & primeMask
}

func (c Card) rankIndex() uint8 {
	return uint8(uint32(c)>>rankShift) & 0xF
}

func (c Card) suitFlag() uint16 {
	return uint16(uint32(c)>>suitShift) & 0xF
}

func (c Card) rankBit() uint16 {
	return uint16(uint32(c) >> rankBitBase)
}

// index is a dense 0-51 ordinal used for card sets.
func (c Card) index() int {
	return int(c.rankIndex())*4 + int(c.Suit())
}

// Valid reports whether c is a well-formed encoding produced by NewCard.
func (c Card) Valid() bool {
	idx := c.rankIndex()
	if idx > 12 {
		return false
	}
	flag := c.suitFlag()
	if bits.OnesCount16(flag) != 1 {
		return false
	}
	return c == encode(idx, uint8(bits.TrailingZeros16(flag)))
}

// String returns the two character form, e.g. "As" or "Td".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string([]byte{rankChars[c.rankIndex()], suitChars[c.Suit()]})
}

// String returns the single character rank symbol.
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankChars[r-Two])
}

// String returns the single character suit symbol.
func (s Suit) String() string {
	if s > Spades {
		return "?"
	}
	return string(suitChars[s])
}

// ParseCard parses a card such as "As", "td" or "10h".
func ParseCard(s string) (Card, error) {
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	ri := strings.IndexByte(rankChars, upper(s[0]))
	if ri < 0 {
		return 0, fmt.Errorf("%w: unknown rank in %q", ErrInvalidCard, s)
	}
	si := strings.IndexByte(suitChars, lower(s[1]))
	if si < 0 {
		return 0, fmt.Errorf("%w: unknown suit in %q", ErrInvalidCard, s)
	}
	return encode(uint8(ri), uint8(si)), nil
}

// ParseCards parses a run of cards. Cards may be concatenated ("AsKd") or
// separated by spaces or commas ("As Kd", "As,Kd").
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	var cards []Card
	for _, field := range fields {
		field = strings.ReplaceAll(field, "10", "T")
		if len(field)%2 != 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCard, field)
		}
		for i := 0; i < len(field); i += 2 {
			c, err := ParseCard(field[i : i+2])
			if err != nil {
				return nil, err
			}
			cards = append(cards, c)
		}
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards renders cards as a space separated list.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// CardSet is a set of cards backed by a 64-bit mask.
type CardSet uint64

// Add inserts c into the set.
func (cs *CardSet) Add(c Card) {
	*cs |= 1 << c.index()
}

// Contains reports whether c is in the set.
func (cs CardSet) Contains(c Card) bool {
	return cs&(1<<c.index()) != 0
}

// Len returns the number of cards in the set.
func (cs CardSet) Len() int {
	return bits.OnesCount64(uint64(cs))
}

// Cards lists the members in index order: deuces first, clubs before
// spades within a rank.
func (cs CardSet) Cards() []Card {
	cards := make([]Card, 0, cs.Len())
	for m := uint64(cs); m != 0; m &= m - 1 {
		idx := bits.TrailingZeros64(m)
		cards = append(cards, encode(uint8(idx/4), uint8(idx%4)))
	}
	return cards
}

// NewCardSet builds a set from cards.
func NewCardSet(cards ...Card) CardSet {
	var cs CardSet
	for _, c := range cards {
		cs.Add(c)
	}
	return cs
}

// checkCards validates every card and rejects repeats across all pools.
func checkCards(pools ...[]Card) error {
	var seen CardSet
	for _, pool := range pools {
		for _, c := range pool {
			if !c.Valid() {
				return fmt.Errorf("%w: 0x%08x", ErrInvalidCard, uint32(c))
			}
			if seen.Contains(c) {
				return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
			}
			seen.Add(c)
		}
	}
	return nil
}
