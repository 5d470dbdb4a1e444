package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docanalytics/internal/config"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := NewLocal(root)
	require.NoError(t, err)

	info, err := s.Put(ctx, "documents/abc.pdf", strings.NewReader("%PDF-1.4"), PutObjectOptions{
		Size:        8,
		ContentType: "application/pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "documents/abc.pdf", info.Key)
	assert.Equal(t, int64(8), info.Size)
	assert.FileExists(t, filepath.Join(root, "documents", "abc.pdf"))

	rc, got, err := s.Get(ctx, "documents/abc.pdf")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.4", string(body))
	assert.Equal(t, int64(8), got.Size)
	assert.Equal(t, "application/pdf", got.ContentType)

	require.NoError(t, s.Delete(ctx, "documents/abc.pdf"))
	assert.NoFileExists(t, filepath.Join(root, "documents", "abc.pdf"))

	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, "documents/abc.pdf"))
}

func TestLocalStorage_Errors(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	t.Run("missing object", func(t *testing.T) {
		_, _, err := s.Get(ctx, "documents/none.pdf")
		assert.ErrorIs(t, err, ErrObjectNotFound)
	})

	t.Run("key escaping root", func(t *testing.T) {
		_, err := s.Put(ctx, "../outside.pdf", strings.NewReader("x"), PutObjectOptions{Size: 1})
		assert.ErrorContains(t, err, "invalid object key")

		_, _, err = s.Get(ctx, "/etc/passwd")
		assert.Error(t, err)
	})

	t.Run("size mismatch leaves nothing behind", func(t *testing.T) {
		_, err := s.Put(ctx, "documents/short.pdf", strings.NewReader("abc"), PutObjectOptions{Size: 10})
		assert.ErrorContains(t, err, "size mismatch")

		_, _, err = s.Get(ctx, "documents/short.pdf")
		assert.ErrorIs(t, err, ErrObjectNotFound)
	})

	t.Run("unknown size accepted", func(t *testing.T) {
		info, err := s.Put(ctx, "documents/any.docx", strings.NewReader("abcd"), PutObjectOptions{Size: -1})
		require.NoError(t, err)
		assert.Equal(t, int64(4), info.Size)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.ErrorIs(t, s.Delete(cctx, "documents/any.docx"), context.Canceled)
	})
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("local driver", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested")
		s, err := New(ctx, config.StorageConfig{Driver: DriverLocal, LocalDir: dir}, zap.NewNop())
		require.NoError(t, err)
		assert.NotNil(t, s)
		st, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, st.IsDir())
	})

	t.Run("minio requires endpoint", func(t *testing.T) {
		_, err := New(ctx, config.StorageConfig{Driver: DriverMinIO}, nil)
		assert.EqualError(t, err, "minio endpoint is required")
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := New(ctx, config.StorageConfig{Driver: "ftp"}, nil)
		assert.EqualError(t, err, `unknown storage driver "ftp"`)
	})
}
