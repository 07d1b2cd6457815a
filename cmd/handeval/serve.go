package main

import (
	"github.com/lox/pokereval/internal/server"
)

// ServeCmd runs the websocket evaluation server.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	e, err := g.load()
	if err != nil {
		return err
	}
	if c.Addr != "" {
		e.config.Server.Address = c.Addr
	}

	tables, err := e.tables()
	if err != nil {
		return err
	}
	cfg, err := server.ConfigFrom(e.config)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(e.logger)
	defer cancel()
	return server.New(cfg, tables, e.logger).ListenAndServe(ctx)
}
