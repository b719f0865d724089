package media

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalStore keeps images on disk under root and serves them from baseURL.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(root, Prefix), 0o755); err != nil {
		return nil, errors.Wrapf(err, "create media root %s", root)
	}
	return &LocalStore{root: root, baseURL: baseURL}, nil
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Save(_ context.Context, filename, _ string, r io.Reader) (string, error) {
	key := NewKey(filename)
	f, err := os.Create(s.path(key))
	if err != nil {
		return "", errors.Wrap(err, "create image file")
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", errors.Wrap(err, "write image file")
	}
	return key, nil
}

func (s *LocalStore) URL(key string) string {
	return joinURL(s.baseURL, key)
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "delete image %s", key)
	}
	return nil
}

// path confines key to the media root.
func (s *LocalStore) path(key string) string {
	clean := filepath.Clean("/" + strings.TrimPrefix(key, "/"))
	return filepath.Join(s.root, clean)
}
