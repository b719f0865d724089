// Package media stores uploaded post images.
package media

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Prefix is the key directory of post images.
const Prefix = "posts/"

// Store saves images under generated keys and resolves them to URLs.
type Store interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (key string, err error)
	URL(key string) string
	Delete(ctx context.Context, key string) error
}

// NewKey returns a unique key keeping the extension of filename.
func NewKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return Prefix + uuid.NewString() + ext
}

func joinURL(base, key string) string {
	if base == "" {
		return key
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(key, "/")
}
