package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/textgrab"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Fetcher   textgrab.Fetcher
	Parser    textgrab.Parser
	Store     textgrab.ResultStore
	Selectors textgrab.SelectorConfig
	Limiter   textgrab.HostLimiter
	Logger    *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URLs []string `arg:"" name:"url" help:"Pages to save (http, https, ftp or ftps URLs)"`
}
