// Command gen-tables builds the hand strength lookup tables and writes them
// as a binary artifact that other tools load at startup.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/pokereval/internal/logging"
	"github.com/lox/pokereval/internal/tablestore"
	"github.com/lox/pokereval/poker"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Output   string           `arg:"" optional:"" default:"tables.bin" type:"path" help:"Artifact path"`
	Verify   bool             `help:"Reload the written artifact and compare it with the generated tables"`
	LogLevel string           `default:"info" enum:"debug,info,warn,error" help:"Log level"`
}

func (c *CLI) Run() error {
	logger, err := logging.New(os.Stderr, logging.Options{Level: c.LogLevel, Prefix: "gen-tables", Timestamps: true})
	if err != nil {
		return err
	}

	start := time.Now()
	tables, err := poker.NewTables()
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	logger.Info("Generated tables",
		"high", tables.High.Size(),
		"deuce_to_seven", tables.DeuceToSeven.Size(),
		"ace_to_five", tables.AceToFive.Size(),
		"elapsed", time.Since(start).Round(time.Millisecond))

	if err := tablestore.Save(c.Output, tables); err != nil {
		return fmt.Errorf("write %s: %w", c.Output, err)
	}
	if info, err := os.Stat(c.Output); err == nil {
		logger.Info("Wrote artifact", "path", c.Output, "bytes", info.Size())
	}

	if c.Verify {
		return verify(c.Output, tables, logger)
	}
	return nil
}

func verify(path string, want *poker.Tables, logger *log.Logger) error {
	got, err := tablestore.Load(path)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if !got.Equal(want) {
		return errors.New("verify: reloaded tables differ from generated tables")
	}
	logger.Info("Verified artifact", "path", path)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gen-tables"),
		kong.Description("Generate poker hand lookup tables"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
