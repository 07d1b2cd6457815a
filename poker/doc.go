// Package poker evaluates poker hands for high, lowball, Omaha-family and
// Badugi games.
//
// Cards are packed words (see Card). Five card hands are ranked by a
// precomputed Table: flushes index a direct array by their rank bits and
// everything else is looked up by the product of rank primes through a
// minimal perfect hash. Each rule set (high, 2-7 low, A-5 low) has its own
// Table; Tables bundles them and can be generated with NewTables or loaded
// from an artifact with UnmarshalTables.
//
// HandRank values are ordered the same way for every variant: lower is
// stronger and equal is a tie.
//
// Typical use:
//
//	tables, err := poker.NewTables()
//	if err != nil {
//		return err
//	}
//	game, err := poker.NewGame(poker.OmahaHiLo, tables)
//	if err != nil {
//		return err
//	}
//	res, err := game.Evaluate(poker.MustParseCards("As2sKdQd"), poker.MustParseCards("3h4h9c"))
package poker
