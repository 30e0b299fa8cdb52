package jre

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz/lzma"
)

const lzmaSuffix = ".lzma"

// Decompress expands an LZMA payload next to itself, stripping the
// .lzma suffix, and returns the output path. The output is written to a
// temporary file and renamed into place so a crash never leaves a
// truncated payload under the final name. When deleteAfter is set the
// compressed file is removed on success.
func Decompress(path string, deleteAfter bool) (string, error) {
	if !strings.HasSuffix(path, lzmaSuffix) {
		return "", fmt.Errorf("not an lzma payload: %s", path)
	}
	outPath := strings.TrimSuffix(path, lzmaSuffix)

	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open payload: %w", err)
	}
	defer in.Close()

	r, err := lzma.NewReader(bufio.NewReader(in))
	if err != nil {
		return "", fmt.Errorf("read lzma header: %w", err)
	}

	tmpPath := outPath + ".part"
	out, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create output: %w", err)
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("decompress %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close output: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename output: %w", err)
	}

	if deleteAfter {
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("remove compressed payload: %w", err)
		}
	}

	return outPath, nil
}
