package poker

import (
	"fmt"
	"strings"
)

// Variant is one of the supported games. The set is closed.
type Variant uint8

const (
	High Variant = iota
	DeuceToSeven
	AceToFive
	OmahaHigh
	OmahaHiLo
	Dramaha
	Badugi
)

// Variants lists every variant in declaration order.
var Variants = []Variant{High, DeuceToSeven, AceToFive, OmahaHigh, OmahaHiLo, Dramaha, Badugi}

var variantNames = [...]string{
	High:         "high",
	DeuceToSeven: "deuce-to-seven",
	AceToFive:    "ace-to-five",
	OmahaHigh:    "omaha",
	OmahaHiLo:    "omaha-hilo",
	Dramaha:      "dramaha",
	Badugi:       "badugi",
}

var variantAliases = map[string]Variant{
	"holdem":   High,
	"2-7":      DeuceToSeven,
	"27":       DeuceToSeven,
	"a-5":      AceToFive,
	"razz":     AceToFive,
	"plo":      OmahaHigh,
	"omaha-hi": OmahaHigh,
	"omaha8":   OmahaHiLo,
	"plo8":     OmahaHiLo,
	"drawmaha": Dramaha,
}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("variant(%d)", uint8(v))
}

// ParseVariant accepts a variant name or a common alias such as "plo8" or
// "drawmaha".
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range variantNames {
		if name == s {
			return Variant(i), nil
		}
	}
	if v, ok := variantAliases[s]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("unknown variant %q", s)
}

// Split reports whether the variant awards more than one half of the pot.
func (v Variant) Split() bool {
	return v == OmahaHiLo || v == Dramaha
}

// Result is the outcome of evaluating one player's cards. Hi is always set.
// Lo is set only in hi/lo games and only when the hand qualifies for low.
// Draw is the five card draw half of Dramaha.
type Result struct {
	Variant Variant
	Hi      HandResult
	Lo      *HandResult
	Draw    *HandResult
}

// Game evaluates hands for one variant. Implementations are stateless and
// safe for concurrent use.
type Game interface {
	Variant() Variant
	// Evaluate scores hole and board cards. Board is empty for games
	// without community cards.
	Evaluate(hole, board []Card) (Result, error)
}

// NewGame returns the evaluator for v backed by tables.
func NewGame(v Variant, tables *Tables) (Game, error) {
	var (
		rules Rules
		err   error
		table *Table
	)
	switch v {
	case High, OmahaHigh, OmahaHiLo, Dramaha:
		rules = HighRules
	case DeuceToSeven:
		rules = DeuceToSevenRules
	case AceToFive:
		rules = AceToFiveRules
	case Badugi:
		return badugiGame{}, nil
	default:
		return nil, fmt.Errorf("unknown variant %d", uint8(v))
	}
	if table, err = tables.Table(rules); err != nil {
		return nil, err
	}

	switch v {
	case High, DeuceToSeven, AceToFive:
		return bestFiveGame{variant: v, table: table}, nil
	case OmahaHigh:
		return omahaGame{table: table}, nil
	case OmahaHiLo:
		lo, err := tables.Table(AceToFiveRules)
		if err != nil {
			return nil, err
		}
		return omahaHiLoGame{hi: table, lo: lo}, nil
	default:
		return dramahaGame{table: table}, nil
	}
}

// bestFiveGame plays the best five of up to seven cards (hold'em, stud,
// lowball, razz).
type bestFiveGame struct {
	variant Variant
	table   *Table
}

func (g bestFiveGame) Variant() Variant { return g.variant }

func (g bestFiveGame) Evaluate(hole, board []Card) (Result, error) {
	if err := checkCount("board", board, 0, 5); err != nil {
		return Result{}, err
	}
	cards := make([]Card, 0, len(hole)+len(board))
	cards = append(cards, hole...)
	cards = append(cards, board...)
	if err := checkCount("hand", cards, 5, 7); err != nil {
		return Result{}, err
	}
	if err := checkCards(cards); err != nil {
		return Result{}, err
	}
	hi, err := bestOf(g.table, cards)
	if err != nil {
		return Result{}, err
	}
	return Result{Variant: g.variant, Hi: hi}, nil
}

type omahaGame struct {
	table *Table
}

func (omahaGame) Variant() Variant { return OmahaHigh }

func (g omahaGame) Evaluate(hole, board []Card) (Result, error) {
	if err := checkOmaha(hole, board); err != nil {
		return Result{}, err
	}
	hi, err := bestOmaha(g.table, hole, board)
	if err != nil {
		return Result{}, err
	}
	return Result{Variant: OmahaHigh, Hi: hi}, nil
}

type omahaHiLoGame struct {
	hi, lo *Table
}

func (omahaHiLoGame) Variant() Variant { return OmahaHiLo }

func (g omahaHiLoGame) Evaluate(hole, board []Card) (Result, error) {
	if err := checkOmaha(hole, board); err != nil {
		return Result{}, err
	}
	hi, lo, err := bestOmahaHiLo(g.hi, g.lo, hole, board)
	if err != nil {
		return Result{}, err
	}
	return Result{Variant: OmahaHiLo, Hi: hi, Lo: lo}, nil
}

// dramahaGame pays half the pot to the best Omaha hand and half to the best
// five card draw hand, which is the hole cards themselves.
type dramahaGame struct {
	table *Table
}

func (dramahaGame) Variant() Variant { return Dramaha }

func (g dramahaGame) Evaluate(hole, board []Card) (Result, error) {
	if err := checkCount("hole", hole, 5, 5); err != nil {
		return Result{}, err
	}
	if err := checkCount("board", board, 3, 5); err != nil {
		return Result{}, err
	}
	if err := checkCards(hole, board); err != nil {
		return Result{}, err
	}
	hi, err := bestOmaha(g.table, hole, board)
	if err != nil {
		return Result{}, err
	}
	draw, err := bestOf(g.table, hole)
	if err != nil {
		return Result{}, err
	}
	return Result{Variant: Dramaha, Hi: hi, Draw: &draw}, nil
}

type badugiGame struct{}

func (badugiGame) Variant() Variant { return Badugi }

func (badugiGame) Evaluate(hole, board []Card) (Result, error) {
	if err := checkCount("board", board, 0, 0); err != nil {
		return Result{}, err
	}
	hi, err := EvaluateBadugi(hole)
	if err != nil {
		return Result{}, err
	}
	return Result{Variant: Badugi, Hi: hi}, nil
}
