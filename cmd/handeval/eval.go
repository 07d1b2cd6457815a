package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sanity-io/litter"

	"github.com/lox/pokereval/poker"
)

// EvalCmd evaluates fully known hands and shows who wins each half.
type EvalCmd struct {
	Variant string   `arg:"" help:"Variant: high, 2-7, razz, omaha, omaha-hilo, dramaha or badugi"`
	Hands   []string `arg:"" help:"Hole cards per player, e.g. 'AsKs' 'QhQd'"`
	Board   string   `short:"b" help:"Board cards, e.g. 'Td7s8h'"`
	Dump    bool     `help:"Dump the raw results"`
}

func (c *EvalCmd) Run(g *Globals) error {
	e, err := g.load()
	if err != nil {
		return err
	}
	v, err := poker.ParseVariant(c.Variant)
	if err != nil {
		return err
	}
	tables, err := e.tables()
	if err != nil {
		return err
	}
	game, err := poker.NewGame(v, tables)
	if err != nil {
		return err
	}

	holes, err := parseHands(c.Hands)
	if err != nil {
		return err
	}
	board, err := poker.ParseCards(c.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}

	results, awards, err := evaluateHands(game, holes, board)
	if err != nil {
		return err
	}
	if c.Dump {
		litter.Dump(results, awards)
	}
	renderEval(os.Stdout, holes, board, results, awards)
	return nil
}

// parseHands parses one argument per player. "-" or an empty argument is a
// player with no known cards.
func parseHands(args []string) ([][]poker.Card, error) {
	holes := make([][]poker.Card, len(args))
	for i, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "-" || arg == "" {
			continue
		}
		cards, err := poker.ParseCards(arg)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		holes[i] = cards
	}
	return holes, nil
}

// evaluateHands scores every hand after checking that no card repeats
// between players.
func evaluateHands(game poker.Game, holes [][]poker.Card, board []poker.Card) ([]poker.Result, poker.Awards, error) {
	var seen poker.CardSet
	for _, c := range board {
		seen.Add(c)
	}
	for i, h := range holes {
		for _, c := range h {
			if seen.Contains(c) {
				return nil, poker.Awards{}, fmt.Errorf("hand %d: %w: %s", i+1, poker.ErrDuplicateCard, c)
			}
			seen.Add(c)
		}
	}

	results := make([]poker.Result, len(holes))
	for i, h := range holes {
		r, err := game.Evaluate(h, board)
		if err != nil {
			return nil, poker.Awards{}, fmt.Errorf("hand %d: %w", i+1, err)
		}
		results[i] = r
	}
	awards, err := poker.Showdown(results)
	if err != nil {
		return nil, poker.Awards{}, err
	}
	return results, awards, nil
}

func renderEval(out io.Writer, holes [][]poker.Card, board []poker.Card, results []poker.Result, awards poker.Awards) {
	if len(board) > 0 {
		fmt.Fprintf(out, "%s\n%s\n\n", headerStyle.Render("board"), formatCards(board))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("best"),
		headerStyle.Render("rank"),
		headerStyle.Render("result"))

	for i, r := range results {
		row := func(hand, label string, h poker.HandResult, mark string) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				hand,
				categoryStyle.Render(label+h.Description()),
				dimStyle.Render(fmt.Sprintf("%d", h.Rank)),
				mark)
		}
		hand := handStyle.Render(formatCards(holes[i]))
		row(hand, "", r.Hi, winnerMark(awards.Hi, i, "high"))
		if r.Lo != nil {
			row("", "low: ", *r.Lo, winnerMark(awards.Lo, i, "low"))
		} else if r.Variant == poker.OmahaHiLo {
			fmt.Fprintf(w, "\t%s\t\t\n", dimStyle.Render("no low"))
		}
		if r.Draw != nil {
			row("", "draw: ", *r.Draw, winnerMark(awards.Draw, i, "draw"))
		}
	}
	_ = w.Flush()
}
