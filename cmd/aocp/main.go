// Command aocp applies a grammar file to puzzle input and prints the parsed
// value.
//
//	aocp -g points.yaml -i input.txt
//	aocp -g rules.toml --lines --json < input.txt
//	aocp --schema > grammar.schema.json
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	flags "github.com/jessevdk/go-flags"
)

func main() {
	var opts options
	p := flags.NewParser(&opts, flags.Default)
	if _, err := p.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(2)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: opts.level(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdin, os.Stdout, os.Stderr); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "aocp: %v\n", err)
		os.Exit(1)
	}
}
