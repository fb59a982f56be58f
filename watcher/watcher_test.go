package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/gendefaults/errors"
)

const testDebounce = 50 * time.Millisecond

func setup(t *testing.T) (string, *Watcher, *int32) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cbl-defaults.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	w, err := New(path, testDebounce)
	require.NoError(t, err)

	var calls int32
	w.OnChange(func(changed string) error {
		assert.Equal(t, w.Path(), changed)
		atomic.AddInt32(&calls, 1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	t.Cleanup(func() {
		cancel()
		<-w.Done()
	})
	return path, w, &calls
}

func TestWatcherFiresOnWrite(t *testing.T) {
	path, _, calls := setup(t)

	require.NoError(t, os.WriteFile(path, []byte(`{"a": 1}`), 0644))

	assert.Eventually(t, func() bool { return atomic.LoadInt32(calls) == 1 },
		2*time.Second, 10*time.Millisecond)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	path, _, calls := setup(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"a": 1}`), 0644))
	}

	assert.Eventually(t, func() bool { return atomic.LoadInt32(calls) >= 1 },
		2*time.Second, 10*time.Millisecond)
	time.Sleep(4 * testDebounce)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	path, _, calls := setup(t)
	dir := filepath.Dir(path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(path+"~", []byte("{}"), 0644))

	time.Sleep(4 * testDebounce)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestWatcherKeepsGoingAfterCallbackError(t *testing.T) {
	path, w, calls := setup(t)
	var failures int32
	w.OnChange(func(string) error {
		atomic.AddInt32(&failures, 1)
		return errors.New("regeneration failed")
	})

	require.NoError(t, os.WriteFile(path, []byte(`{"a": 1}`), 0644))
	assert.Eventually(t, func() bool { return atomic.LoadInt32(calls) == 1 },
		2*time.Second, 10*time.Millisecond)

	time.Sleep(2 * testDebounce)
	require.NoError(t, os.WriteFile(path, []byte(`{"a": 2}`), 0644))
	assert.Eventually(t, func() bool { return atomic.LoadInt32(calls) == 2 },
		2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&failures))
}

func TestWatcherStopsWithContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cbl-defaults.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	w, err := New(path, testDebounce)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	cancel()

	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.NoError(t, w.Stop())
}

func TestIsBackupFile(t *testing.T) {
	assert.True(t, isBackupFile("/x/cbl-defaults.json~"))
	assert.True(t, isBackupFile("/x/.cbl-defaults.json.swp"))
	assert.True(t, isBackupFile("/x/.#cbl-defaults.json"))
	assert.False(t, isBackupFile("/x/cbl-defaults.json"))
}
