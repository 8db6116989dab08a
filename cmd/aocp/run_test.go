package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	flags "github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for one writer and concurrent readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func decodeJSON(t *testing.T, data []byte) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func TestRun_JSON(t *testing.T) {
	grammarPath := writeFile(t, "pairs.yaml", heredoc.Doc(`
		type: list
		subparser:
		  type: tuple
		  splitter: ","
		  fields:
		    - type: int
		    - type: int
	`))

	var stdout, stderr bytes.Buffer
	opts := options{Grammar: grammarPath, JSON: true}
	err := run(context.Background(), opts, strings.NewReader("1,2\n3,4\n"), &stdout, &stderr)
	require.NoError(t, err)

	want := []any{[]any{1.0, 2.0}, []any{3.0, 4.0}}
	if diff := cmp.Diff(want, decodeJSON(t, stdout.Bytes())); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, stderr.String())
}

func TestRun_Lines(t *testing.T) {
	grammarPath := writeFile(t, "dict.json", `{"type": "dict", "entry_splitter": ",", "pair_splitter": "=", "value": {"type": "int"}}`)
	inputPath := writeFile(t, "input.txt", "a=1,b=2\n\nc=3\n")

	var stdout bytes.Buffer
	opts := options{Grammar: grammarPath, Input: inputPath, Lines: true, JSON: true}
	require.NoError(t, run(context.Background(), opts, strings.NewReader(""), &stdout, &bytes.Buffer{}))

	want := []any{
		map[string]any{"a": 1.0, "b": 2.0},
		map[string]any{"c": 3.0},
	}
	if diff := cmp.Diff(want, decodeJSON(t, stdout.Bytes())); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_LineError(t *testing.T) {
	grammarPath := writeFile(t, "int.toml", "type = \"int\"\n")

	opts := options{Grammar: grammarPath, Lines: true}
	err := run(context.Background(), opts, strings.NewReader("1\nx\n"), &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestRun_SetAsJSON(t *testing.T) {
	grammarPath := writeFile(t, "set.yaml", "type: set\nsubparser: {type: int}\n")

	var stdout bytes.Buffer
	opts := options{Grammar: grammarPath, JSON: true}
	require.NoError(t, run(context.Background(), opts, strings.NewReader("3 1 3 2"), &stdout, &bytes.Buffer{}))

	assert.Equal(t, []any{1.0, 2.0, 3.0}, decodeJSON(t, stdout.Bytes()))
}

func TestRun_PrettyPrint(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	grammarPath := writeFile(t, "sort.yaml", "type: sort\n")

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), options{Grammar: grammarPath}, strings.NewReader("cba"), &stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), "abc")
}

func TestRun_Schema(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), options{Schema: true}, strings.NewReader(""), &stdout, &bytes.Buffer{}))

	schema, ok := decodeJSON(t, stdout.Bytes()).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "aocp grammar", schema["title"])
}

func TestRun_Errors(t *testing.T) {
	err := run(context.Background(), options{}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, errNoGrammar)

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	err = run(context.Background(), options{Grammar: missing}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	grammarPath := writeFile(t, "int.yaml", "type: int\n")
	err = run(context.Background(), options{Grammar: grammarPath, Input: missing}, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_Watch(t *testing.T) {
	grammarPath := writeFile(t, "int.yaml", "type: int\n")

	ctx, cancel := context.WithCancel(context.Background())
	var stdout syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, options{Grammar: grammarPath, Watch: true, JSON: true}, strings.NewReader("n=42"), &stdout, &bytes.Buffer{})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "42")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestOptions_Env(t *testing.T) {
	t.Setenv("AOCP_GRAMMAR", "g.yaml")
	t.Setenv("AOCP_LOG_LEVEL", "debug")

	var opts options
	_, err := flags.NewParser(&opts, flags.None).ParseArgs([]string{"--lines"})
	require.NoError(t, err)

	assert.Equal(t, "g.yaml", opts.Grammar)
	assert.True(t, opts.Lines)
	assert.Equal(t, slog.LevelDebug, opts.level())
	assert.NoError(t, opts.validate())
}

func TestOptions_Level(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "INFO", want: slog.LevelInfo},
		{level: "warn", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "", want: slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, options{LogLevel: tt.level}.level())
		})
	}
}

type labelledGroup struct {
	Name   string
	Counts map[any]any
	hidden int
}

func TestJSONable(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{
			name: "nested maps",
			in:   map[any]any{1: []any{map[any]any{"k": true}}},
			want: map[string]any{"1": []any{map[string]any{"k": true}}},
		},
		{
			name: "record with map field",
			in:   labelledGroup{Name: "a", Counts: map[any]any{2: "x"}},
			want: map[string]any{"Name": "a", "Counts": map[string]any{"2": "x"}},
		},
		{
			name: "scalars untouched",
			in:   []any{1, "a", []int{2}},
			want: []any{1, "a", []int{2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jsonable(tt.in)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("jsonable() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJSONable_KeyCollision(t *testing.T) {
	_, err := jsonable(map[any]any{1: "a", "1": "b"})
	assert.ErrorIs(t, err, errKeyCollision)

	_, err = jsonable(labelledGroup{Counts: map[any]any{1: "a", "1": "b"}})
	assert.ErrorIs(t, err, errKeyCollision)
}
