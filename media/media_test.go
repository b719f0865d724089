package media

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	key := NewKey("Small.GIF")
	assert.True(t, strings.HasPrefix(key, "posts/"))
	assert.True(t, strings.HasSuffix(key, ".gif"))
	assert.NotEqual(t, key, NewKey("Small.GIF"))
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "/media/posts/a.gif", joinURL("/media/", "posts/a.gif"))
	assert.Equal(t, "/media/posts/a.gif", joinURL("/media", "/posts/a.gif"))
	assert.Equal(t, "posts/a.gif", joinURL("", "posts/a.gif"))
}

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := NewLocalStore(root, "/media/")
	require.NoError(t, err)

	key, err := store.Save(ctx, "small.gif", "image/gif", bytes.NewReader([]byte("GIF89a")))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, key))
	require.NoError(t, err)
	assert.Equal(t, "GIF89a", string(data))
	assert.Equal(t, "/media/"+key, store.URL(key))

	require.NoError(t, store.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(root, key))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx, key))
}

func TestLocalStore_PathStaysInRoot(t *testing.T) {
	store := &LocalStore{root: "/srv/media", baseURL: "/media/"}
	assert.Equal(t, "/srv/media/etc/passwd", store.path("../../etc/passwd"))
}
