package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["photo"][0]
}

func TestSavePhotoStoresUnderRandomName(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := ls.SavePhoto(uploadFileHeader(t, "broken-mouse.jpg", []byte("jpegdata")))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored, "uploads"+string(filepath.Separator)))
	assert.True(t, strings.HasSuffix(stored, ".jpg"))
	assert.NotContains(t, stored, "broken-mouse")

	data, err := os.ReadFile(ls.GetFullPath(stored))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegdata"), data)
}

func TestSavePhotoRejectsUnsupportedExtension(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = ls.SavePhoto(uploadFileHeader(t, "report.pdf", []byte("%PDF")))
	assert.Error(t, err)

	_, err = ls.SavePhoto(uploadFileHeader(t, "noextension", []byte("data")))
	assert.Error(t, err)
}

func TestSavePhotoNilHeader(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := ls.SavePhoto(nil)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestDeletePhotoIsIdempotent(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := ls.SavePhoto(uploadFileHeader(t, "pic.png", []byte("pngdata")))
	require.NoError(t, err)

	require.NoError(t, ls.DeletePhoto(stored))
	_, statErr := os.Stat(ls.GetFullPath(stored))
	assert.True(t, os.IsNotExist(statErr))

	// Second delete of the same photo must also succeed
	assert.NoError(t, ls.DeletePhoto(stored))
	assert.NoError(t, ls.DeletePhoto(""))
}

func TestDeletePhotoIgnoresDirectoryComponents(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := ls.SavePhoto(uploadFileHeader(t, "pic.webp", []byte("webpdata")))
	require.NoError(t, err)

	// A path with traversal components still resolves to the base name only
	require.NoError(t, ls.DeletePhoto("../../etc/"+filepath.Base(stored)))
	_, statErr := os.Stat(ls.GetFullPath(stored))
	assert.True(t, os.IsNotExist(statErr))
}
