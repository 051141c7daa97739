package fileops_test

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/arthur-debert/keyfs/pkg/keyfs/fileops"
	"github.com/arthur-debert/keyfs/pkg/keyfs/filesystem"
)

func TestCompress(t *testing.T) {
	t.Run("round-trips through gzip", func(t *testing.T) {
		fs := filesystem.NewTestFileSystem()
		payload := bytes.Repeat([]byte("compress me "), 100)
		if err := fs.WriteFile("data.txt", payload, 0644); err != nil {
			t.Fatalf("test setup failed: %v", err)
		}

		future := fileops.Compress(fs, "data.txt", "data.txt.gz")
		out, err := future.Wait(context.Background())
		if err != nil {
			t.Fatalf("compression failed: %v", err)
		}
		if out != "data.txt.gz" {
			t.Errorf("expected output path data.txt.gz, got %s", out)
		}

		compressed, err := fs.ReadFile("data.txt.gz")
		if err != nil {
			t.Fatalf("reading compressed file failed: %v", err)
		}
		zr, err := gzip.NewReader(bytes.NewReader(compressed))
		if err != nil {
			t.Fatalf("output is not valid gzip: %v", err)
		}
		decompressed, err := io.ReadAll(zr)
		if err != nil {
			t.Fatalf("decompression failed: %v", err)
		}
		if !bytes.Equal(decompressed, payload) {
			t.Error("round-trip content mismatch")
		}
	})

	t.Run("rejects with the underlying error", func(t *testing.T) {
		fs := filesystem.NewTestFileSystem()
		future := fileops.Compress(fs, "ghost.txt", "out.gz")
		if _, err := future.Wait(context.Background()); err == nil {
			t.Fatal("expected the future to reject for a missing source")
		}
	})

	t.Run("wait honors context cancellation", func(t *testing.T) {
		fs := filesystem.NewTestFileSystem()
		if err := fs.WriteFile("data.txt", []byte("x"), 0644); err != nil {
			t.Fatalf("test setup failed: %v", err)
		}
		future := fileops.Compress(fs, "data.txt", "out.gz")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := future.Wait(ctx); err != nil && err != context.Canceled {
			t.Fatalf("expected context.Canceled or success, got %v", err)
		}

		// The operation itself still completes.
		select {
		case <-future.Done():
		case <-time.After(5 * time.Second):
			t.Fatal("compression never completed")
		}
	})
}
