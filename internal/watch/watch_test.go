package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFile_CallsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sight.txt")
	require.NoError(t, os.WriteFile(path, []byte("line{}"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, 20*time.Millisecond, func() { changes <- struct{}{} }, nil)
	}()

	// Give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)

	// Unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("line{ line:p4=0, 0, 1, 1; }"), 0644))

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("onChange was not called")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "sight.txt")

	err := File(context.Background(), path, DefaultSettle, func() {}, nil)
	require.Error(t, err)
}
