// Package storage uploads catalog images to an S3-compatible bucket
// (AWS S3 or Cloudflare R2) and maps public URLs back to object keys.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"path"
	"strings"
	"time"
)

// MaxImageBytes is the largest accepted image upload.
const MaxImageBytes = 5 << 20

var (
	ErrEmptyFile        = errors.New("file is empty")
	ErrFileTooLarge     = fmt.Errorf("file exceeds %d bytes", MaxImageBytes)
	ErrMissingExtension = errors.New("file name has no extension")
	ErrNotConfigured    = errors.New("object storage not configured")
)

// ObjectStore stores objects under keys and exposes them by public URL.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
	// KeyFromURL returns the key of an object served from this store, or
	// false when url points elsewhere.
	KeyFromURL(url string) (string, bool)
}

// ValidateUpload checks an upload before anything is sent to the bucket.
func ValidateUpload(filename string, size int64) error {
	switch {
	case size <= 0:
		return ErrEmptyFile
	case size > MaxImageBytes:
		return ErrFileTooLarge
	case extension(filename) == "":
		return ErrMissingExtension
	}
	return nil
}

const keyAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewKey builds "folder/<unix-ms>-<random>.<ext>" for an uploaded file.
func NewKey(folder, filename string, now time.Time, rnd *rand.Rand) string {
	suffix := make([]byte, 11)
	for i := range suffix {
		suffix[i] = keyAlphabet[rnd.IntN(len(keyAlphabet))]
	}
	name := fmt.Sprintf("%d-%s.%s", now.UnixMilli(), suffix, extension(filename))

	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return path.Join(folder, name)
}

func extension(filename string) string {
	ext := path.Ext(strings.TrimSpace(filename))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
