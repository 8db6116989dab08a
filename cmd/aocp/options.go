package main

import (
	"errors"
	"log/slog"
	"strings"
)

var errNoGrammar = errors.New("no grammar given (use --grammar or AOCP_GRAMMAR)")

// options are the command-line flags. Environment variables fill in flags
// that are not given on the command line.
type options struct {
	Grammar  string `long:"grammar" short:"g" env:"AOCP_GRAMMAR" description:"Grammar file (.yaml, .yml, .json or .toml)"`
	Input    string `long:"input" short:"i" env:"AOCP_INPUT" description:"Input file (default: stdin)"`
	Lines    bool   `long:"lines" short:"l" description:"Parse each non-empty line separately"`
	JSON     bool   `long:"json" description:"Print results as JSON"`
	Schema   bool   `long:"schema" description:"Print the grammar JSON schema and exit"`
	Watch    bool   `long:"watch" short:"w" description:"Re-run whenever the grammar file changes"`
	LogLevel string `long:"log-level" env:"AOCP_LOG_LEVEL" default:"warn" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"Log level"`
}

// validate checks flag combinations that go-flags cannot express.
func (o options) validate() error {
	if !o.Schema && o.Grammar == "" {
		return errNoGrammar
	}
	return nil
}

// level maps LogLevel to a slog level, defaulting to warn.
func (o options) level() slog.Level {
	switch strings.ToLower(o.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	}
	return slog.LevelWarn
}
