package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sanity-io/litter"

	"github.com/lox/pokereval/internal/simulator"
	"github.com/lox/pokereval/poker"
)

// EquityCmd estimates each player's share of the pot by dealing out the
// unknown cards.
type EquityCmd struct {
	Variant       string   `arg:"" help:"Variant: high, 2-7, razz, omaha, omaha-hilo, dramaha or badugi"`
	Hands         []string `arg:"" help:"Known hole cards per player; '-' for a random hand"`
	Board         string   `short:"b" help:"Known board cards"`
	Samples       int      `short:"n" help:"Number of deals (default from config)"`
	Seed          *int64   `help:"Random seed for reproducible results"`
	Workers       int      `short:"w" help:"Parallel workers (default from config)"`
	Possibilities bool     `short:"p" help:"Show how often each player makes each hand category"`
	NoProgress    bool     `help:"Disable the progress bar"`
	Dump          bool     `help:"Dump the raw result"`
}

func (c *EquityCmd) Run(g *Globals) error {
	e, err := g.load()
	if err != nil {
		return err
	}
	v, err := poker.ParseVariant(c.Variant)
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
	tables, err := e.tables()
	if err != nil {
		return err
	}

	timeout, err := e.config.Simulation.TimeoutDuration()
	if err != nil {
		return err
	}
	cfg := simulator.Config{
		Variant: v,
		Players: holes,
		Board:   board,
		Samples: e.config.Simulation.Samples,
		Workers: e.config.Workers,
		Seed:    e.config.Simulation.Seed,
		Timeout: timeout,
		Logger:  e.logger.WithPrefix("simulator"),
	}
	if c.Samples > 0 {
		cfg.Samples = c.Samples
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	switch {
	case c.Seed != nil:
		cfg.Seed = *c.Seed
	case cfg.Seed == 0:
		cfg.Seed = time.Now().UnixNano()
	}
	e.logger.Debug("Starting equity run", "variant", v, "samples", cfg.Samples, "workers", cfg.Workers, "seed", cfg.Seed)

	ctx, cancel := signalContext(e.logger)
	defer cancel()

	var res *simulator.Result
	if !c.NoProgress && isatty.IsTerminal(os.Stderr.Fd()) {
		res, err = runWithProgress(ctx, cfg, tables)
	} else {
		var sim *simulator.Simulator
		sim, err = simulator.New(cfg, tables)
		if err == nil {
			res, err = sim.Run(ctx)
		}
	}
	if err != nil {
		return err
	}

	if c.Dump {
		litter.Dump(res)
	}
	renderEquity(os.Stdout, res, c.Possibilities)
	return nil
}

func renderEquity(out io.Writer, res *simulator.Result, possibilities bool) {
	if len(res.Board) > 0 {
		fmt.Fprintf(out, "%s\n%s\n\n", headerStyle.Render("board"), formatCards(res.Board))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("equity"),
		headerStyle.Render("±95%"),
		headerStyle.Render("wins"),
		headerStyle.Render("scoops"))
	for _, p := range res.Players {
		eq := p.Equity
		lo, hi := eq.ConfidenceInterval95()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			handStyle.Render(playerLabel(p.Hole)),
			winStyle.Render(formatPercent(eq.Mean())),
			dimStyle.Render(formatPercent((hi-lo)/2)),
			tieStyle.Render(formatPercent(float64(eq.Wins)/float64(max(eq.Samples, 1)))),
			tieStyle.Render(formatPercent(float64(eq.Scoops)/float64(max(eq.Samples, 1)))))
	}
	_ = w.Flush()

	if possibilities {
		fmt.Fprintln(out)
		renderCategories(out, res)
	}

	fmt.Fprintf(out, "\n%s\n", dimStyle.Render(fmt.Sprintf("%s: %d samples in %v (%s)",
		res.Variant, res.Samples, res.Elapsed.Truncate(time.Millisecond), res.ID)))
}

// categoryOrder lists categories strongest first for display.
var categoryOrder = []poker.Category{
	poker.BadugiFour, poker.BadugiThree, poker.BadugiTwo, poker.BadugiOne,
	poker.StraightFlush, poker.FourOfAKind, poker.FullHouse, poker.Flush,
	poker.Straight, poker.ThreeOfAKind, poker.TwoPair, poker.Pair, poker.HighCard,
}

func renderCategories(out io.Writer, res *simulator.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, headerStyle.Render("category"))
	for _, p := range res.Players {
		fmt.Fprintf(w, "\t%s", handStyle.Render(playerLabel(p.Hole)))
	}
	fmt.Fprintln(w)

	for _, cat := range categoryOrder {
		seen := false
		for _, p := range res.Players {
			if p.Equity.Categories[cat] > 0 {
				seen = true
				break
			}
		}
		if !seen {
			continue
		}
		fmt.Fprint(w, categoryStyle.Render(cat.String()))
		for _, p := range res.Players {
			fmt.Fprintf(w, "\t%s", formatPercent(p.Equity.CategoryFrequency(cat)))
		}
		fmt.Fprintln(w)
	}
	_ = w.Flush()
}

func playerLabel(hole []poker.Card) string {
	if len(hole) == 0 {
		return "random"
	}
	return formatCards(hole)
}
