package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFileWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "terms.txt")
	require.NoError(t, os.WriteFile(path, []byte("sql\n"), 0o644))

	var calls atomic.Int32
	w := New(path, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}, nil)
	w.SetDebounce(20 * time.Millisecond)

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("sql\npython\n"), 0o644))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestFileWatcherStartMissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "terms.txt"), func(context.Context) error { return nil }, nil)
	assert.Error(t, w.Start(context.Background()))
	w.Stop()
}

func TestFileWatcherStopIsIdempotent(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "terms.txt"), func(context.Context) error { return nil }, nil)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Start(context.Background()))
	w.Stop()
	w.Stop()
}
