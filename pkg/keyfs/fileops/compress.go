package fileops

import (
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/arthur-debert/keyfs/pkg/keyfs/filesystem"
)

// Future resolves with the output path of an asynchronous operation or the
// underlying I/O error. Compression is the sole asynchronous operation in
// this module.
type Future struct {
	done chan struct{}
	path string
	err  error
}

// Wait blocks until the operation completes or ctx is done.
func (f *Future) Wait(ctx context.Context) (string, error) {
	select {
	case <-f.done:
		return f.path, f.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Done returns a channel closed when the operation completes.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Compress streams src through a gzip encoder to dst. The returned Future
// resolves with dst on success.
func Compress(fsys filesystem.FullFileSystem, src, dst string) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.path, f.err = compress(fsys, src, dst)
	}()
	return f
}

func compress(fsys filesystem.FullFileSystem, src, dst string) (string, error) {
	in, err := fsys.Open(src)
	if err != nil {
		return "", fmt.Errorf("compress %s: %w", src, err)
	}
	defer in.Close()

	out, err := fsys.Create(dst)
	if err != nil {
		return "", fmt.Errorf("compress to %s: %w", dst, err)
	}

	zw := gzip.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		zw.Close()
		out.Close()
		return "", fmt.Errorf("compress %s: %w", src, err)
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return "", fmt.Errorf("compress %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("compress to %s: %w", dst, err)
	}
	return dst, nil
}
