// Package upload turns inbound multipart file parts into stored assets.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// MaxFileSize is the largest accepted upload (5 MiB).
const MaxFileSize = 5 * 1024 * 1024

var (
	// ErrUnsupportedMediaType is returned when the declared mime type is not
	// in the image allow-list.
	ErrUnsupportedMediaType = errors.New("unsupported media type (use jpg, png, webp or gif)")

	// ErrFileTooLarge is returned when the upload exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("file exceeds the 5MB limit")
)

// allowedMIME は受け付ける画像のMIMEタイプです。
var allowedMIME = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

var whitespace = regexp.MustCompile(`\s+`)

// StoredFile describes a successfully stored upload.
type StoredFile struct {
	// Path is the public, storage-relative path (e.g. /uploads/123_pic.png).
	Path string

	// MIME is the declared content type of the file.
	MIME string

	// OriginalName is the filename as sent by the client.
	OriginalName string
}

// Storage writes uploaded files into a local directory served under /uploads.
// Names are prefixed with the creation timestamp, so a stored file is never
// overwritten.
type Storage struct {
	dir string
}

// NewStorage creates the upload directory if needed and returns a Storage.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %q: %w", dir, err)
	}
	return &Storage{dir: dir}, nil
}

// Save validates and stores a single file part. The content is written to a
// temporary file first and renamed into place, so a failed write never leaves
// a partial file behind.
func (s *Storage) Save(fh *multipart.FileHeader) (*StoredFile, error) {
	mime := fh.Header.Get("Content-Type")
	if _, ok := allowedMIME[mime]; !ok {
		return nil, ErrUnsupportedMediaType
	}
	if fh.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	name := uniqueName(fh.Filename)

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}

	if err := copyAndClose(tmp, src); err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	return &StoredFile{
		Path:         "/uploads/" + name,
		MIME:         mime,
		OriginalName: fh.Filename,
	}, nil
}

func copyAndClose(dst *os.File, src io.Reader) error {
	// MaxFileSize+1 so an undeclared oversize body is still caught
	n, err := io.Copy(dst, io.LimitReader(src, MaxFileSize+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write upload: %w", err)
	}
	if n > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// uniqueName builds a collision-resistant filename: millisecond timestamp
// prefix plus the sanitized original base name with a lowercased extension.
func uniqueName(original string) string {
	base := filepath.Base(original)
	ext := strings.ToLower(filepath.Ext(base))
	stem := whitespace.ReplaceAllString(strings.TrimSuffix(base, filepath.Ext(base)), "_")
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), stem, ext)
}
