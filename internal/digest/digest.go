// Package digest computes streaming content digests for local files.
// The distribution manifest publishes SHA-1 digests, so that is the
// only algorithm here. Files are read in fixed-size chunks to bound
// memory use regardless of file size.
package digest

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// chunkSize matches the fetcher's streaming chunk size.
const chunkSize = 8 * 1024

// File returns the hex-encoded SHA-1 digest of the file at path.
// A missing file yields an error wrapping fs.ErrNotExist; other read
// errors propagate as-is.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for digest: %w", err)
	}
	defer f.Close()

	h := sha1.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("digest %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Matches reports whether the file at path exists and has the expected
// digest. A missing file is a plain false, not an error; genuine read
// errors propagate. Comparison is case-insensitive.
func Matches(path, expected string) (bool, error) {
	got, err := File(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return strings.EqualFold(got, expected), nil
}
