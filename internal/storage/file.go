// filepath: internal/storage/file.go
// Package storage provides functionality for storing and managing files.
// This file handles the bounded, atomic write of upload data.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrSizeExceeded is returned when an upload stream delivers more bytes
// than the configured limit allows.
var ErrSizeExceeded = errors.New("upload size limit exceeded")

// ErrStreamRead is returned when the upload stream itself fails, either
// from malformed multipart framing or a client that disconnected mid-upload.
var ErrStreamRead = errors.New("upload stream read failed")

// SaveFileAtomic streams data to the destination path without ever exposing
// a partial file. The data is written to a uniquely named temp file in the
// same directory and renamed into place on success; any failure (oversized
// stream, broken client connection, disk error) removes the temp file.
//
// maxBytes bounds the actual bytes consumed from the reader, independent of
// any client-supplied length header. Exceeding it returns ErrSizeExceeded.
func SaveFileAtomic(data io.Reader, path string, maxBytes int64) (int64, error) {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".upload-%s.tmp", uuid.NewString()))

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return 0, fmt.Errorf("could not create temp file: %w", err)
	}

	// Read one byte past the limit so an exactly-at-limit upload succeeds
	// while an oversized one is detected without draining the stream.
	written, err := copyBounded(f, io.LimitReader(data, maxBytes+1))
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return 0, err
	}
	if written > maxBytes {
		f.Close()
		os.Remove(tmpPath)
		return 0, ErrSizeExceeded
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("could not finalize temp file: %w", err)
	}

	// Atomic within one filesystem since the temp file shares the
	// destination directory. Overwrites an existing file (last write wins).
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("could not move file into place: %w", err)
	}

	return written, nil
}

// copyBounded is io.Copy with the read and write sides kept apart, so the
// caller can tell a broken upload stream from a failing disk.
func copyBounded(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			wn, werr := dst.Write(buf[:n])
			written += int64(wn)
			if werr != nil {
				return written, fmt.Errorf("could not write file: %w", werr)
			}
			if wn < n {
				return written, fmt.Errorf("could not write file: %w", io.ErrShortWrite)
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, fmt.Errorf("%w: %v", ErrStreamRead, rerr)
		}
	}
}
