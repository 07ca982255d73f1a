package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for concurrent use.
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

func TestWatchCmd_Flags(t *testing.T) {
	for _, name := range []string{"query", "lang", "user", "settle"} {
		assert.NotNil(t, watchCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "500ms", watchCmd.Flags().Lookup("settle").DefValue)
}

func TestWatchCmd_NotADirectory(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeTempFile(t, "file.txt", "x")

	_, err := execute("watch", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestWatchLoop_SettlesBeforeProcessing(t *testing.T) {
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	var mu sync.Mutex
	var processed []string

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, events, errs, 50*time.Millisecond, func(p string) {
			mu.Lock()
			processed = append(processed, p)
			mu.Unlock()
		})
	}()

	events <- fsnotify.Event{Name: path, Op: fsnotify.Create}
	events <- fsnotify.Event{Name: path, Op: fsnotify.Write}
	events <- fsnotify.Event{Name: path, Op: fsnotify.Write}
	events <- fsnotify.Event{Name: filepath.Join(dir, ".hidden"), Op: fsnotify.Create}
	events <- fsnotify.Event{Name: path, Op: fsnotify.Chmod}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(processed) == 1
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(150 * time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{path}, processed)
}

func TestWatchLoop_StopsWhenEventsClose(t *testing.T) {
	events := make(chan fsnotify.Event)
	close(events)

	err := watchLoop(context.Background(), events, nil, time.Millisecond, func(string) {
		t.Fatal("nothing should be processed")
	})

	assert.NoError(t, err)
}

func TestWatchLoop_SkipsDirectories(t *testing.T) {
	events := make(chan fsnotify.Event)
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0700))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	called := false
	go func() {
		events <- fsnotify.Event{Name: sub, Op: fsnotify.Create}
	}()
	err := watchLoop(ctx, events, nil, 10*time.Millisecond, func(string) { called = true })

	require.NoError(t, err)
	assert.False(t, called)
}

func TestProcessWatched(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	watchQuery = "invoice"
	path := writeTempFile(t, "invoice.txt", "The invoice is overdue. Please pay the invoice.")

	out := &syncBuffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	processWatched(context.Background(), cmd, path)

	assert.Contains(t, out.String(), "invoice.txt: completed (")
}

func TestProcessWatched_ReadError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out := &syncBuffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	processWatched(context.Background(), cmd, filepath.Join(t.TempDir(), "gone.txt"))

	assert.Contains(t, out.String(), "failed to read")
}
