package upload

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultAllowed = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(filepath.Join(t.TempDir(), "images"), 5*1024*1024, defaultAllowed, nil)
}

// encodePNG returns an in-memory PNG of the given dimensions.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, jpeg.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

// makeUpload builds a real multipart request and hands back the parsed file,
// the same shape the handler passes to the service.
func makeUpload(t *testing.T, filename, contentType string, data []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	return file, header
}

func decodeStored(t *testing.T, s *Service, filename string) (image.Config, string) {
	t.Helper()
	f, err := os.Open(filepath.Join(s.ImagesDir(), filename))
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	return cfg, format
}

func TestStore_SmallImageKeptAndReencoded(t *testing.T) {
	s := newTestService(t)

	file, header := makeUpload(t, "tiny.png", "image/png", encodePNG(t, 10, 10))
	stored, err := s.Store(file, header)
	require.NoError(t, err)

	assert.Equal(t, "tiny.png", stored.OriginalName)
	assert.Contains(t, stored.Filename, "optimized-")

	cfg, format := decodeStored(t, s, stored.Filename)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 10, cfg.Width)
	assert.Equal(t, 10, cfg.Height)
}

func TestStore_LargeImageBoundedTo800(t *testing.T) {
	s := newTestService(t)

	file, header := makeUpload(t, "wide.jpg", "image/jpeg", encodeJPEG(t, 2000, 1000))
	stored, err := s.Store(file, header)
	require.NoError(t, err)

	cfg, format := decodeStored(t, s, stored.Filename)
	assert.Equal(t, "jpeg", format)
	assert.LessOrEqual(t, cfg.Width, 800)
	assert.LessOrEqual(t, cfg.Height, 800)
	// aspect ratio preserved: 2000x1000 -> 800x400
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 400, cfg.Height)
}

func TestStore_RawFileRemovedAfterNormalize(t *testing.T) {
	s := newTestService(t)

	file, header := makeUpload(t, "a.png", "image/png", encodePNG(t, 20, 20))
	stored, err := s.Store(file, header)
	require.NoError(t, err)

	names, err := s.List()
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, stored.Filename, names[0])
}

func TestStore_RejectsForeignMimeType(t *testing.T) {
	s := newTestService(t)

	file, header := makeUpload(t, "notes.txt", "text/plain", []byte("hello"))
	_, err := s.Store(file, header)
	require.Error(t, err)

	var tne *TypeNotAllowedError
	require.ErrorAs(t, err, &tne)
	assert.Equal(t, "text/plain", tne.Mime)
	assert.Contains(t, tne.Error(), "text/plain")
	assert.Contains(t, tne.Error(), "image/jpeg")

	// nothing was written
	names, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStore_RejectsOversizeBeforeProcessing(t *testing.T) {
	s := NewService(filepath.Join(t.TempDir(), "images"), 100, defaultAllowed, nil)

	file, header := makeUpload(t, "big.png", "image/png", encodePNG(t, 50, 50))
	_, err := s.Store(file, header)
	require.ErrorIs(t, err, ErrTooLarge)

	names, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStore_SequentialUploadsGetDistinctNames(t *testing.T) {
	s := newTestService(t)
	data := encodePNG(t, 10, 10)

	file1, header1 := makeUpload(t, "same.png", "image/png", data)
	first, err := s.Store(file1, header1)
	require.NoError(t, err)

	file2, header2 := makeUpload(t, "same.png", "image/png", data)
	second, err := s.Store(file2, header2)
	require.NoError(t, err)

	assert.NotEqual(t, first.Filename, second.Filename)

	names, err := s.List()
	require.NoError(t, err)
	assert.Len(t, names, 2)
}

func TestDelete(t *testing.T) {
	s := newTestService(t)

	require.ErrorIs(t, s.Delete("absent.png"), ErrNotFound)
	require.ErrorIs(t, s.Delete("../escape.png"), ErrNotFound)

	file, header := makeUpload(t, "gone.png", "image/png", encodePNG(t, 10, 10))
	stored, err := s.Store(file, header)
	require.NoError(t, err)

	require.NoError(t, s.Delete(stored.Filename))

	names, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStore_UndecodableImageLeavesRawFile(t *testing.T) {
	s := newTestService(t)

	// claims to be a PNG but the bytes are not an image
	file, header := makeUpload(t, "fake.png", "image/png", []byte("not an image at all"))
	_, err := s.Store(file, header)
	require.Error(t, err)

	// the raw temp file stays behind on a normalization failure
	entries, err := os.ReadDir(s.ImagesDir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "optimized-")
}
