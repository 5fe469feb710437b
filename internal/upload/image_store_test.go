package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a *multipart.FileHeader the way a real upload request
// would deliver it.
func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	files := req.MultipartForm.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

func TestLocalImageStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalImageStore(dir)
	require.NoError(t, err)

	t.Run("Stores an allowed image under a generated name", func(t *testing.T) {
		fh := fileHeader(t, "photo.PNG", "image/png", []byte("png-bytes"))

		publicPath, err := store.Save(fh)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(publicPath, PublicPrefix+"/product-"))
		assert.True(t, strings.HasSuffix(publicPath, ".png"))

		onDisk := filepath.Join(dir, filepath.Base(publicPath))
		data, err := os.ReadFile(onDisk)
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)
	})

	t.Run("Generated names do not collide", func(t *testing.T) {
		a, err := store.Save(fileHeader(t, "photo.jpg", "image/jpeg", []byte("a")))
		require.NoError(t, err)
		b, err := store.Save(fileHeader(t, "photo.jpg", "image/jpeg", []byte("b")))
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("Disallowed extension is rejected", func(t *testing.T) {
		fh := fileHeader(t, "notes.txt", "text/plain", []byte("nope"))

		_, err := store.Save(fh)
		assert.ErrorIs(t, err, ErrInvalidImageType)
	})

	t.Run("Allowed extension with disallowed content type is rejected", func(t *testing.T) {
		fh := fileHeader(t, "script.png", "application/octet-stream", []byte("nope"))

		_, err := store.Save(fh)
		assert.ErrorIs(t, err, ErrInvalidImageType)
	})

	t.Run("Rejected uploads leave nothing on disk", func(t *testing.T) {
		before, err := os.ReadDir(dir)
		require.NoError(t, err)

		_, err = store.Save(fileHeader(t, "notes.txt", "text/plain", []byte("nope")))
		assert.Error(t, err)

		after, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})
}

func TestLocalImageStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalImageStore(dir)
	require.NoError(t, err)

	t.Run("Removes a stored file by public path", func(t *testing.T) {
		publicPath, err := store.Save(fileHeader(t, "photo.gif", "image/gif", []byte("gif")))
		require.NoError(t, err)

		require.NoError(t, store.Remove(publicPath))
		_, statErr := os.Stat(filepath.Join(dir, filepath.Base(publicPath)))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("Missing file is not an error", func(t *testing.T) {
		assert.NoError(t, store.Remove(PublicPrefix+"/product-gone.png"))
	})

	t.Run("Path traversal cannot reach outside the upload dir", func(t *testing.T) {
		outside := filepath.Join(filepath.Dir(dir), "victim.txt")
		require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

		_ = store.Remove("/uploads/../victim.txt")

		_, statErr := os.Stat(outside)
		assert.NoError(t, statErr)
	})
}

func TestNewLocalImageStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewLocalImageStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
