package grammar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/aocp/parser"
)

// Format is a grammar file encoding.
type Format string

// Supported grammar file formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
// Returns ErrFormat for unknown extensions.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrFormat, path)
}

// Decode parses a grammar document. Unknown fields are rejected.
func Decode(data []byte, format Format) (*Node, error) {
	var n Node
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&n); err != nil {
			return nil, fmt.Errorf("%w: yaml: %w", ErrFormat, err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&n); err != nil {
			return nil, fmt.Errorf("%w: json: %w", ErrFormat, err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &n)
		if err != nil {
			return nil, fmt.Errorf("%w: toml: %w", ErrFormat, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := lo.Map(undecoded, func(k toml.Key, _ int) string { return k.String() })
			return nil, fmt.Errorf("%w: toml: unknown keys %s", ErrFormat, strings.Join(keys, ", "))
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	return &n, nil
}

// Load reads and decodes a grammar file, choosing the format by extension.
func Load(path string) (*Node, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	return Decode(data, format)
}

// Compile loads a grammar file and builds its parser.
func Compile(path string) (parser.Parser, error) {
	n, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Build(n)
}

// MustCompile is like Compile but panics on error.
// Use only for grammars known to be valid (e.g., in tests).
func MustCompile(path string) parser.Parser {
	p, err := Compile(path)
	if err != nil {
		panic(fmt.Sprintf("grammar.MustCompile(%q): %v", path, err))
	}
	return p
}
