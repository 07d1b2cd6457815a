// Package simulator estimates pot equity by dealing out the unknown cards of
// a hand many times and scoring every deal with a poker.Game.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokereval/internal/logging"
	"github.com/lox/pokereval/internal/randutil"
	"github.com/lox/pokereval/internal/runid"
	"github.com/lox/pokereval/internal/statistics"
	"github.com/lox/pokereval/poker"
)

// chunkSize is the number of deals one unit of work covers. Each chunk has
// its own random stream so results do not depend on the worker count.
const chunkSize = 1000

// ErrTimeout is returned when a run exceeds Config.Timeout.
var ErrTimeout = errors.New("simulation timed out")

// Config holds configuration for an equity run.
type Config struct {
	Variant poker.Variant
	// Players holds each player's known hole cards. Missing cards, up to
	// HoleSize, are dealt at random.
	Players [][]poker.Card
	Board   []poker.Card
	// HoleSize and BoardSize default to the variant's usual deal.
	HoleSize  int
	BoardSize int

	Samples int
	Workers int
	Seed    int64
	Timeout time.Duration // zero means no limit

	Clock  quartz.Clock
	Logger *log.Logger
	// Progress, when set, is called from a single goroutine after each
	// completed chunk.
	Progress func(done, total int)
}

// PlayerResult is one player's equity.
type PlayerResult struct {
	Hole   []poker.Card
	Equity statistics.Equity
}

// Result is the outcome of a run.
type Result struct {
	ID      string
	Variant poker.Variant
	Board   []poker.Card
	Samples int
	Players []PlayerResult
	Elapsed time.Duration
}

// Simulator runs equity simulations for one configuration.
type Simulator struct {
	config Config
	game   poker.Game
	dead   poker.CardSet
}

// defaultDeal is the usual hole and board size for each variant.
func defaultDeal(v poker.Variant) (hole, board int) {
	switch v {
	case poker.High:
		return 2, 5
	case poker.DeuceToSeven:
		return 5, 0
	case poker.AceToFive:
		return 7, 0
	case poker.OmahaHigh, poker.OmahaHiLo:
		return 4, 5
	case poker.Dramaha:
		return 5, 5
	default:
		return 4, 0
	}
}

// New validates config and prepares a simulator.
func New(config Config, tables *poker.Tables) (*Simulator, error) {
	game, err := poker.NewGame(config.Variant, tables)
	if err != nil {
		return nil, err
	}

	hole, board := defaultDeal(config.Variant)
	if config.HoleSize == 0 {
		config.HoleSize = hole
	}
	if config.BoardSize == 0 {
		config.BoardSize = board
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = logging.Discard()
	}

	if len(config.Players) < 2 {
		return nil, fmt.Errorf("need at least 2 players, got %d", len(config.Players))
	}
	if config.Samples < 1 {
		return nil, fmt.Errorf("invalid samples: %d", config.Samples)
	}
	if len(config.Board) > config.BoardSize {
		return nil, fmt.Errorf("board has %d cards, %s deals %d", len(config.Board), config.Variant, config.BoardSize)
	}
	need := config.BoardSize + len(config.Players)*config.HoleSize
	if need > 52 {
		return nil, fmt.Errorf("%d players need %d cards", len(config.Players), need)
	}

	var dead poker.CardSet
	add := func(cards []poker.Card) error {
		for _, c := range cards {
			if !c.Valid() {
				return fmt.Errorf("%w: %#x", poker.ErrInvalidCard, uint32(c))
			}
			if dead.Contains(c) {
				return fmt.Errorf("%w: %s", poker.ErrDuplicateCard, c)
			}
			dead.Add(c)
		}
		return nil
	}
	for i, p := range config.Players {
		if len(p) > config.HoleSize {
			return nil, fmt.Errorf("player %d has %d hole cards, %s deals %d", i+1, len(p), config.Variant, config.HoleSize)
		}
		if err := add(p); err != nil {
			return nil, fmt.Errorf("player %d: %w", i+1, err)
		}
	}
	if err := add(config.Board); err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}

	return &Simulator{config: config, game: game, dead: dead}, nil
}

// Run deals config.Samples hands and returns every player's equity. It
// stops early when ctx is cancelled or the timeout elapses.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	id, err := runid.New("sim")
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger.With("run", id, "variant", cfg.Variant)
	start := cfg.Clock.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var timedOut atomic.Bool
	if cfg.Timeout > 0 {
		timer := cfg.Clock.AfterFunc(cfg.Timeout, func() {
			timedOut.Store(true)
			cancel()
		}, "simulator", "timeout")
		defer timer.Stop()
	}

	chunks := (cfg.Samples + chunkSize - 1) / chunkSize
	logger.Debug("Starting simulation", "samples", cfg.Samples, "chunks", chunks, "workers", cfg.Workers)

	work := make(chan int)
	results := make(chan []statistics.Equity, cfg.Workers)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(work)
		for i := 0; i < chunks; i++ {
			select {
			case work <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < cfg.Workers; w++ {
		g.Go(func() error {
			for chunk := range work {
				n := min(chunkSize, cfg.Samples-chunk*chunkSize)
				tally, err := s.runChunk(gctx, chunk, n)
				if err != nil {
					return err
				}
				select {
				case results <- tally:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	totals := make([]statistics.Equity, len(cfg.Players))
	done := 0
	for tally := range results {
		for i := range totals {
			totals[i].Merge(&tally[i])
		}
		done += tally[0].Samples
		if cfg.Progress != nil {
			cfg.Progress(done, cfg.Samples)
		}
	}

	if err := g.Wait(); err != nil {
		if timedOut.Load() {
			return nil, fmt.Errorf("%w after %v (%d of %d samples)", ErrTimeout, cfg.Timeout, done, cfg.Samples)
		}
		return nil, err
	}

	res := &Result{
		ID:      id,
		Variant: cfg.Variant,
		Board:   cfg.Board,
		Samples: done,
		Players: make([]PlayerResult, len(cfg.Players)),
		Elapsed: cfg.Clock.Since(start),
	}
	for i := range totals {
		if err := totals[i].Validate(); err != nil {
			return nil, fmt.Errorf("player %d statistics: %w", i+1, err)
		}
		res.Players[i] = PlayerResult{Hole: cfg.Players[i], Equity: totals[i]}
	}
	logger.Debug("Simulation complete", "samples", done, "elapsed", res.Elapsed)
	return res, nil
}

// runChunk deals n hands from the chunk's own random stream.
func (s *Simulator) runChunk(ctx context.Context, chunk, n int) ([]statistics.Equity, error) {
	cfg := s.config
	rng := randutil.Stream(cfg.Seed, uint64(chunk))
	deck := poker.NewDeck(rng)
	deck.Remove(s.dead.Cards()...)

	players := len(cfg.Players)
	tally := make([]statistics.Equity, players)
	holes := make([][]poker.Card, players)
	for i := range holes {
		holes[i] = make([]poker.Card, 0, cfg.HoleSize)
	}
	board := make([]poker.Card, 0, cfg.BoardSize)
	results := make([]poker.Result, players)

	for sample := 0; sample < n; sample++ {
		if sample%100 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		deck.Shuffle()
		for i, known := range cfg.Players {
			holes[i] = append(append(holes[i][:0], known...), deck.Deal(cfg.HoleSize-len(known))...)
		}
		board = append(append(board[:0], cfg.Board...), deck.Deal(cfg.BoardSize-len(cfg.Board))...)

		for i := range holes {
			r, err := s.game.Evaluate(holes[i], board)
			if err != nil {
				return nil, fmt.Errorf("evaluate player %d: %w", i+1, err)
			}
			results[i] = r
		}
		awards, err := poker.Showdown(results)
		if err != nil {
			return nil, err
		}
		shares := awards.Shares(players)
		for i := range tally {
			tally[i].Add(statistics.Outcome{
				Share:    shares[i],
				Scoop:    awards.Scoop(i),
				Category: results[i].Hi.Category,
			})
		}
	}
	return tally, nil
}
