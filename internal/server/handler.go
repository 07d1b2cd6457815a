package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/lox/pokereval/internal/runid"
	"github.com/lox/pokereval/internal/simulator"
	"github.com/lox/pokereval/poker"
)

func errorResponse(id, code, message string) *Response {
	return &Response{
		ID:    id,
		Type:  MessageTypeError,
		Error: &ErrorData{Code: code, Message: message},
	}
}

// handle answers one request. Requests without an id get a generated one.
func (s *Server) handle(ctx context.Context, req *Request) *Response {
	id := req.ID
	if id == "" {
		id = runid.Must("req")
	}
	logger := s.logger.With("id", id, "type", req.Type, "variant", req.Variant)
	logger.Debug("Handling request")

	var resp *Response
	switch req.Type {
	case "", MessageTypeEvaluate:
		resp = s.evaluate(id, req)
	case MessageTypeEquity:
		resp = s.equity(ctx, id, req)
	default:
		resp = errorResponse(id, CodeUnknownType, "Unknown message type: "+req.Type.String())
	}

	if resp.Error != nil {
		logger.Debug("Request failed", "code", resp.Error.Code, "error", resp.Error.Message)
	}
	return resp
}

// parse decodes the variant and cards of a request.
func (s *Server) parse(id string, req *Request) (poker.Game, [][]poker.Card, []poker.Card, *Response) {
	v, err := poker.ParseVariant(req.Variant)
	if err != nil {
		return nil, nil, nil, errorResponse(id, CodeInvalidVariant, err.Error())
	}
	game, ok := s.games[v]
	if !ok {
		return nil, nil, nil, errorResponse(id, CodeTableUnavailable, fmt.Sprintf("no tables loaded for %s", v))
	}
	if len(req.Hole) == 0 {
		return nil, nil, nil, errorResponse(id, CodeInvalidCards, "no hole cards")
	}

	holes := make([][]poker.Card, len(req.Hole))
	for i, h := range req.Hole {
		cards, err := poker.ParseCards(h)
		if err != nil {
			return nil, nil, nil, errorResponse(id, CodeInvalidCards, fmt.Sprintf("player %d: %v", i+1, err))
		}
		holes[i] = cards
	}
	board, err := poker.ParseCards(req.Board)
	if err != nil {
		return nil, nil, nil, errorResponse(id, CodeInvalidCards, fmt.Sprintf("board: %v", err))
	}
	return game, holes, board, nil
}

func (s *Server) evaluate(id string, req *Request) *Response {
	game, holes, board, errResp := s.parse(id, req)
	if errResp != nil {
		return errResp
	}

	// Cards may not repeat across players either.
	var seen poker.CardSet
	for _, h := range append(holes, board) {
		for _, c := range h {
			if seen.Contains(c) {
				return errorResponse(id, CodeInvalidCards, fmt.Sprintf("%v: %s", poker.ErrDuplicateCard, c))
			}
			seen.Add(c)
		}
	}

	results := make([]poker.Result, len(holes))
	for i, h := range holes {
		r, err := game.Evaluate(h, board)
		if err != nil {
			return errorResponse(id, evaluationCode(err), fmt.Sprintf("player %d: %v", i+1, err))
		}
		results[i] = r
	}

	resp := &Response{
		ID:      id,
		Type:    MessageTypeResult,
		Variant: game.Variant().String(),
		Hands:   make([]HandReport, len(results)),
	}
	for i, r := range results {
		resp.Hands[i] = handReport(r)
	}
	awards, err := poker.Showdown(results)
	if err != nil {
		return errorResponse(id, CodeEvaluation, err.Error())
	}
	resp.Winners = &Winners{Hi: awards.Hi, Lo: awards.Lo, Draw: awards.Draw}
	return resp
}

func (s *Server) equity(ctx context.Context, id string, req *Request) *Response {
	game, holes, board, errResp := s.parse(id, req)
	if errResp != nil {
		return errResp
	}

	samples := req.Samples
	if samples <= 0 || samples > s.config.Samples {
		samples = s.config.Samples
	}
	sim, err := simulator.New(simulator.Config{
		Variant: game.Variant(),
		Players: holes,
		Board:   board,
		Samples: samples,
		Workers: s.config.Workers,
		Seed:    req.Seed,
		Timeout: s.config.SimTimeout,
		Clock:   s.config.Clock,
		Logger:  s.logger,
	}, s.tables)
	if err != nil {
		code := evaluationCode(err)
		if code == CodeEvaluation {
			code = CodeSimulation
		}
		return errorResponse(id, code, err.Error())
	}

	res, err := sim.Run(ctx)
	if err != nil {
		return errorResponse(id, CodeSimulation, err.Error())
	}
	return &Response{
		ID:      id,
		Type:    MessageTypeEquityResult,
		Variant: res.Variant.String(),
		Equity:  equityReports(res.Players),
		Samples: res.Samples,
	}
}

func evaluationCode(err error) string {
	switch {
	case errors.Is(err, poker.ErrInvalidCard), errors.Is(err, poker.ErrDuplicateCard),
		errors.Is(err, poker.ErrInsufficientCards), errors.Is(err, poker.ErrWrongCardCount):
		return CodeInvalidCards
	case errors.Is(err, poker.ErrTableUnavailable):
		return CodeTableUnavailable
	default:
		return CodeEvaluation
	}
}
