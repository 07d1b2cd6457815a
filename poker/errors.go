package poker

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCard reports a rank or suit outside the valid range, or a
	// card word that was not produced by NewCard.
	ErrInvalidCard = errors.New("invalid card")

	// ErrDuplicateCard reports the same card used twice within one evaluation.
	ErrDuplicateCard = errors.New("duplicate card")

	// ErrInsufficientCards reports a pool with fewer cards than the variant needs.
	ErrInsufficientCards = errors.New("insufficient cards")

	// ErrWrongCardCount reports a pool whose size the variant does not accept.
	ErrWrongCardCount = errors.New("wrong card count")

	// ErrTableUnavailable reports that lookup tables could not be generated
	// or loaded. Evaluation cannot proceed without them.
	ErrTableUnavailable = errors.New("lookup table unavailable")

	// ErrUnknownCombination means a lookup table is incomplete or corrupt.
	// It is never returned for valid input against a correctly built table.
	ErrUnknownCombination = errors.New("unknown card combination")

	// ErrMixedVariants reports a showdown between results of different
	// variants, whose ranks come from different tables.
	ErrMixedVariants = errors.New("results from different variants")
)

// CardCountError describes a card pool whose size does not fit the variant.
type CardCountError struct {
	Pool string // "hole", "board" or "hand"
	Min  int
	Max  int
	Got  int
}

func (e *CardCountError) Error() string {
	want := fmt.Sprintf("%d", e.Min)
	if e.Max != e.Min {
		want = fmt.Sprintf("%d-%d", e.Min, e.Max)
	}
	return fmt.Sprintf("%s: want %s cards, got %d", e.Pool, want, e.Got)
}

// Unwrap maps the error onto ErrInsufficientCards when the pool is short and
// ErrWrongCardCount otherwise.
func (e *CardCountError) Unwrap() error {
	if e.Got < e.Min {
		return ErrInsufficientCards
	}
	return ErrWrongCardCount
}

func checkCount(pool string, cards []Card, lo, hi int) error {
	if n := len(cards); n < lo || n > hi {
		return &CardCountError{Pool: pool, Min: lo, Max: hi, Got: n}
	}
	return nil
}
