// Package snapshot implements domain.SnapshotReader for recognition ingresses
// whose snapshot_url denotes bytes the ingestion host can read directly
package snapshot

import (
	"context"
	"io"
	"net/url"
	"os"
	"strings"

	perr "attendance/internal/platform/errors"
)

// DefaultMaxBytes bounds how much of a local snapshot file is read. A longer
// file is not rejected: only its first DefaultMaxBytes bytes are returned (and
// hashed). Fingerprinting never blocks on an unbounded read
const DefaultMaxBytes = 8 << 20 // 8 MiB

// LocalFileReader reads snapshot bytes from the local filesystem when the
// locator is a bare path or a file:// URL rooted under Root. Any other scheme
// (http, https, s3, ...) is treated as not-local: ReadIfLocal returns ok=false
// so the caller falls back to hashing the locator string, exactly as §5/§9
// document for the object-store variant
type LocalFileReader struct {
	// Root confines reads to one directory; empty means no confinement
	Root string

	// MaxBytes caps how much of the file is read; zero uses DefaultMaxBytes
	MaxBytes int64
}

// NewLocalFileReader constructs a LocalFileReader rooted at dir
func NewLocalFileReader(dir string) *LocalFileReader {
	return &LocalFileReader{Root: dir, MaxBytes: DefaultMaxBytes}
}

// ReadIfLocal implements domain.SnapshotReader
func (r *LocalFileReader) ReadIfLocal(_ context.Context, locator string) ([]byte, bool, error) {
	path, ok := r.localPath(locator)
	if !ok {
		return nil, false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) || os.IsPermission(err) {
			// A locator that looks local but can't be read falls back to the
			// locator string itself, per the documented fallback behavior
			return nil, false, nil
		}
		return nil, false, perr.Wrapf(err, perr.ErrorCodeUnavailable, "open snapshot %q", path)
	}
	defer f.Close()

	max := r.MaxBytes
	if max <= 0 {
		max = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(f, max))
	if err != nil {
		return nil, false, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read snapshot %q", path)
	}
	return data, true, nil
}

func (r *LocalFileReader) localPath(locator string) (string, bool) {
	if locator == "" {
		return "", false
	}

	path := locator
	if u, err := url.Parse(locator); err == nil && u.Scheme != "" {
		if u.Scheme != "file" {
			return "", false
		}
		path = u.Path
	}

	if r.Root != "" && !strings.HasPrefix(path, r.Root) {
		path = r.Root + string(os.PathSeparator) + strings.TrimPrefix(path, string(os.PathSeparator))
	}
	return path, true
}
