package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Put(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(LocalConfig{Dir: dir, BaseURL: "/media/"})
	require.NoError(t, err)
	assert.True(t, store.IsLocal())

	url, err := store.Put(context.Background(), "audio/abc.mp3", "audio/mpeg", strings.NewReader("ID3"), 3)
	require.NoError(t, err)
	assert.Equal(t, "/media/audio/abc.mp3", url)

	got, err := os.ReadFile(filepath.Join(dir, "audio", "abc.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "ID3", string(got))
}

func TestLocalStore_Put_rejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStore(LocalConfig{Dir: t.TempDir()})
	require.NoError(t, err)

	for _, key := range []string{"../etc/passwd", "/abs.mp3", "a/../../b.mp3", ""} {
		_, err := store.Put(context.Background(), key, "", strings.NewReader("x"), 1)
		assert.Error(t, err, key)
	}
}

func TestNewLocalStore_requiresDir(t *testing.T) {
	_, err := NewLocalStore(LocalConfig{})
	assert.Error(t, err)
}

func TestLocalStore_Delete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(LocalConfig{Dir: dir})
	require.NoError(t, err)
	_, err = store.Put(context.Background(), "images/a.png", "image/png", strings.NewReader("png"), 3)
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "images/a.png"))
	_, err = os.Stat(filepath.Join(dir, "images", "a.png"))
	assert.True(t, os.IsNotExist(err))

	// already gone
	assert.NoError(t, store.Delete(context.Background(), "images/a.png"))
	assert.Error(t, store.Delete(context.Background(), "../outside.png"))
}
