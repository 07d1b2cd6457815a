// Command handeval evaluates poker hands, estimates equity and serves
// evaluations over websockets.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/pokereval/internal/config"
	"github.com/lox/pokereval/internal/logging"
	"github.com/lox/pokereval/internal/tablestore"
	"github.com/lox/pokereval/poker"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every subcommand.
type Globals struct {
	Config   string `short:"c" default:"pokereval.hcl" type:"path" help:"HCL config file; missing means defaults"`
	Tables   string `type:"path" help:"Table artifact path (overrides config)"`
	LogLevel string `help:"Log level: debug, info, warn or error (overrides config)"`
	JSONLogs bool   `name:"json-logs" help:"Log as JSON"`
	NoColor  bool   `help:"Disable colour output"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Eval    EvalCmd          `cmd:"" help:"Evaluate and compare hands"`
	Equity  EquityCmd        `cmd:"" help:"Estimate equity by simulation"`
	Serve   ServeCmd         `cmd:"" help:"Run the websocket evaluation server"`
}

// env is the loaded configuration plus what every command needs from it.
type env struct {
	config *config.Config
	logger *log.Logger
}

func (g *Globals) load() (*env, error) {
	if g.NoColor || termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if g.Tables != "" {
		cfg.TablesPath = g.Tables
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}

	logger, err := logging.New(os.Stderr, logging.Options{
		Level:      cfg.LogLevel,
		Timestamps: true,
		JSON:       g.JSONLogs,
	})
	if err != nil {
		return nil, err
	}
	return &env{config: cfg, logger: logger}, nil
}

func (e *env) tables() (*poker.Tables, error) {
	return tablestore.Open(e.config.TablesPath, e.logger.WithPrefix("tables"))
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handeval"),
		kong.Description("Poker hand evaluation for hold'em, lowball, Omaha, Dramaha and Badugi"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
