package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/color"
	"github.com/k0kubun/pp/v3"

	"github.com/randalmurphal/aocp/grammar"
	"github.com/randalmurphal/aocp/parser"
)

var errKeyCollision = errors.New("map keys collide in JSON output")

// run executes one invocation of the command.
func run(ctx context.Context, opts options, stdin io.Reader, stdout, stderr io.Writer) error {
	if err := opts.validate(); err != nil {
		return err
	}

	if opts.Schema {
		return writeJSON(stdout, grammar.Schema())
	}

	input, err := readInput(opts.Input, stdin)
	if err != nil {
		return err
	}

	if !opts.Watch {
		p, err := grammar.Compile(opts.Grammar)
		if err != nil {
			return err
		}
		return evaluate(p, input, opts, stdout)
	}

	for u := range grammar.Watch(ctx, opts.Grammar) {
		if u.Err != nil {
			color.New(color.FgRed).Fprintf(stderr, "aocp: %v\n", u.Err)
			continue
		}
		if err := evaluate(u.Parser, input, opts, stdout); err != nil {
			color.New(color.FgRed).Fprintf(stderr, "aocp: %v\n", err)
		}
	}
	return nil
}

// readInput returns the contents of path, or of stdin when path is empty or "-".
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// evaluate parses input, whole or line by line, and prints the result.
func evaluate(p parser.Parser, input string, opts options, w io.Writer) error {
	var result any
	if opts.Lines {
		values := []any{}
		for i, line := range strings.Split(input, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			v, err := p.Parse(line)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			values = append(values, v)
		}
		result = values
	} else {
		v, err := p.Parse(input)
		if err != nil {
			return err
		}
		result = v
	}

	if opts.JSON {
		out, err := jsonable(result)
		if err != nil {
			return err
		}
		return writeJSON(w, out)
	}
	printer := pp.New()
	printer.SetColoringEnabled(!color.NoColor)
	_, err := printer.Fprintln(w, result)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// jsonable converts parsed values into types encoding/json accepts:
// map[any]any gets string keys, sets become arrays and record structs become
// objects keyed by exported field name, so maps nested in records are
// converted too. Keys that render to the same string, like 1 and "1", are
// an error rather than a silent overwrite.
func jsonable(v any) (any, error) {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			conv, err := jsonable(item)
			if err != nil {
				return nil, err
			}
			out[i] = conv
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			key := fmt.Sprint(k)
			if _, dup := out[key]; dup {
				return nil, fmt.Errorf("%w: %q", errKeyCollision, key)
			}
			conv, err := jsonable(item)
			if err != nil {
				return nil, err
			}
			out[key] = conv
		}
		return out, nil
	case *parser.HashSet:
		return jsonable(t.Values())
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Struct {
		return v, nil
	}
	out := make(map[string]any, rv.NumField())
	for i := range rv.NumField() {
		field := rv.Type().Field(i)
		if !field.IsExported() {
			continue
		}
		conv, err := jsonable(rv.Field(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field.Name, err)
		}
		out[field.Name] = conv
	}
	return out, nil
}
