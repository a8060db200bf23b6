package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/carevault/apiserver/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalClient_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "uploads")
	client, err := NewLocalClient(dir)
	require.NoError(t, err)
	require.NoError(t, client.EnsureBucket(ctx))

	require.NoError(t, client.Put(ctx, "documents/a.txt", strings.NewReader("hello"), 5, "text/plain"))

	rc, err := client.Get(ctx, "documents/a.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, client.Delete(ctx, "documents/a.txt"))
	_, err = os.Stat(filepath.Join(dir, "documents", "a.txt"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, client.Delete(ctx, "documents/a.txt"))

	_, err = client.Get(ctx, "documents/a.txt")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalClient_RejectsEscapingKeys(t *testing.T) {
	client, err := NewLocalClient(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../secret", "documents/../../etc/passwd", "."} {
		err := client.Put(context.Background(), key, strings.NewReader("x"), 1, "")
		assert.Error(t, err, key)
	}
}

func TestNewKey(t *testing.T) {
	key, err := NewKey("documents", "Policy Final.PDF")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "documents/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	other, err := NewKey("/yp-folder/4/", `C:\scans\consent.png`)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(other, "yp-folder/4/"))
	assert.True(t, strings.HasSuffix(other, ".png"))
	assert.NotEqual(t, key, other)

	_, err = NewKey(" ", "x.txt")
	assert.Error(t, err)
}

func TestNew_SelectsLocalBackend(t *testing.T) {
	cfg := config.Config{Uploads: config.UploadConfig{Backend: "local", Dir: filepath.Join(t.TempDir(), "files")}}

	store, err := New(context.Background(), cfg)
	require.NoError(t, err)

	info, err := os.Stat(store.Bucket())
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	cfg.Uploads.Backend = "ftp"
	_, err = New(context.Background(), cfg)
	assert.Error(t, err)
}
