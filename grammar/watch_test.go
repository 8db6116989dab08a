package grammar

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.yaml")
	require.NoError(t, os.WriteFile(path, []byte("type: int\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := Watch(ctx, path)

	first := receive(t, updates)
	require.NoError(t, first.Err)
	got, err := first.Parser.Parse("a1")
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	// Editors may truncate before writing, so intermediate updates can fail.
	require.NoError(t, os.WriteFile(path, []byte("type: sort\n"), 0o644))
	waitFor(t, updates, func(u Update) bool {
		if u.Err != nil {
			return false
		}
		v, err := u.Parser.Parse("ba")
		return err == nil && v == "ab"
	})

	require.NoError(t, os.WriteFile(path, []byte("type: nope\n"), 0o644))
	waitFor(t, updates, func(u Update) bool {
		return u.Err != nil
	})

	cancel()
	for range updates {
	}
}

func TestWatch_InitialError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	u := receive(t, Watch(ctx, filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorIs(t, u.Err, os.ErrNotExist)
}

// waitFor consumes updates until one satisfies ok.
func waitFor(t *testing.T, ch <-chan Update, ok func(Update) bool) {
	t.Helper()
	deadline := time.After(10 * time.Second)
	for {
		select {
		case u, open := <-ch:
			require.True(t, open, "watch channel closed")
			if ok(u) {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for grammar update")
		}
	}
}

// receive waits for the next update, failing the test after a timeout.
func receive(t *testing.T, ch <-chan Update) Update {
	t.Helper()
	select {
	case u, ok := <-ch:
		require.True(t, ok, "watch channel closed")
		return u
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for grammar update")
		return Update{}
	}
}
