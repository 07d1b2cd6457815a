package server

import (
	"github.com/lox/pokereval/internal/simulator"
	"github.com/lox/pokereval/poker"
)

// MessageType identifies a websocket message.
type MessageType string

const (
	// Client to server
	MessageTypeEvaluate MessageType = "evaluate"
	MessageTypeEquity   MessageType = "equity"

	// Server to client
	MessageTypeResult       MessageType = "result"
	MessageTypeEquityResult MessageType = "equity_result"
	MessageTypeError        MessageType = "error"
)

func (mt MessageType) String() string {
	return string(mt)
}

// Error codes sent in ErrorData.
const (
	CodeInvalidMessage   = "invalid_message"
	CodeUnknownType      = "unknown_message_type"
	CodeInvalidVariant   = "invalid_variant"
	CodeInvalidCards     = "invalid_cards"
	CodeEvaluation       = "evaluation_failed"
	CodeSimulation       = "simulation_failed"
	CodeTableUnavailable = "table_unavailable"
)

// Request is a client message. Hole holds one card string per player,
// e.g. ["AsKs", "QhQd"]. An empty Type means evaluate.
type Request struct {
	ID      string      `json:"id,omitempty"`
	Type    MessageType `json:"type,omitempty"`
	Variant string      `json:"variant"`
	Hole    []string    `json:"hole"`
	Board   string      `json:"board,omitempty"`

	// Equity requests only
	Samples int   `json:"samples,omitempty"`
	Seed    int64 `json:"seed,omitempty"`
}

// Response is a server message. Exactly one of Hands, Equity or Error is
// populated, according to Type.
type Response struct {
	ID      string         `json:"id"`
	Type    MessageType    `json:"type"`
	Variant string         `json:"variant,omitempty"`
	Hands   []HandReport   `json:"hands,omitempty"`
	Winners *Winners       `json:"winners,omitempty"`
	Equity  []EquityReport `json:"equity,omitempty"`
	Samples int            `json:"samples,omitempty"`
	Error   *ErrorData     `json:"error,omitempty"`
}

// HandData describes one evaluated hand.
type HandData struct {
	Rank        uint16 `json:"rank"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Cards       string `json:"cards"`
}

// HandReport is one player's evaluation.
type HandReport struct {
	Hi   HandData  `json:"hi"`
	Lo   *HandData `json:"lo,omitempty"`
	Draw *HandData `json:"draw,omitempty"`
}

// Winners lists the winning player indexes of each half.
type Winners struct {
	Hi   []int `json:"hi"`
	Lo   []int `json:"lo,omitempty"`
	Draw []int `json:"draw,omitempty"`
}

// EquityReport is one player's simulated equity.
type EquityReport struct {
	Equity   float64 `json:"equity"`
	StdError float64 `json:"stdError"`
	Wins     int     `json:"wins"`
	Scoops   int     `json:"scoops"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func handData(h poker.HandResult) HandData {
	return HandData{
		Rank:        uint16(h.Rank),
		Category:    h.Category.String(),
		Description: h.Description(),
		Cards:       poker.FormatCards(h.Cards),
	}
}

func handReport(r poker.Result) HandReport {
	report := HandReport{Hi: handData(r.Hi)}
	if r.Lo != nil {
		lo := handData(*r.Lo)
		report.Lo = &lo
	}
	if r.Draw != nil {
		draw := handData(*r.Draw)
		report.Draw = &draw
	}
	return report
}

func equityReports(players []simulator.PlayerResult) []EquityReport {
	out := make([]EquityReport, len(players))
	for i, p := range players {
		out[i] = EquityReport{
			Equity:   p.Equity.Mean(),
			StdError: p.Equity.StdError(),
			Wins:     p.Equity.Wins,
			Scoops:   p.Equity.Scoops,
		}
	}
	return out
}
