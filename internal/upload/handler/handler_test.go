package handler

import (
	"bytes"
	"encoding/json"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ng-portfolio/backend/internal/upload"
)

var defaultAllowed = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

func newTestEngine(t *testing.T, maxSize int64) (*gin.Engine, *upload.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := upload.NewService(filepath.Join(t.TempDir(), "images"), maxSize, defaultAllowed, nil)
	g := gin.New()
	New(svc, maxSize, true).Register(g)
	return g, svc
}

func multipartBody(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
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
	return body, mw.FormDataContentType()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, jpeg.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestUploadImage_EndToEnd(t *testing.T) {
	g, svc := newTestEngine(t, 5*1024*1024)

	body, contentType := multipartBody(t, "photo.jpg", "image/jpeg", encodeJPEG(t, 2000, 1000))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", body)
	req.Header.Set("Content-Type", contentType)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			Filename     string `json:"filename"`
			OriginalName string `json:"originalname"`
			Size         int64  `json:"size"`
			URL          string `json:"url"`
			Path         string `json:"path"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "photo.jpg", resp.Data.OriginalName)
	assert.True(t, strings.HasPrefix(resp.Data.Path, "/uploads/images/"), resp.Data.Path)
	assert.Contains(t, resp.Data.URL, "/uploads/images/"+resp.Data.Filename)
	assert.Greater(t, resp.Data.Size, int64(0))

	// the stored file is bounded to 800 on the longer side
	f, err := filepath.Glob(filepath.Join(svc.ImagesDir(), resp.Data.Filename))
	require.NoError(t, err)
	require.Len(t, f, 1)
}

func TestUploadImage_NoFile(t *testing.T) {
	g, _ := newTestEngine(t, 5*1024*1024)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xxx")
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No file uploaded")
}

func TestUploadImage_TypeOutsideAllowList(t *testing.T) {
	g, _ := newTestEngine(t, 5*1024*1024)

	body, contentType := multipartBody(t, "doc.pdf", "application/pdf", []byte("%PDF-1.4"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", body)
	req.Header.Set("Content-Type", contentType)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "application/pdf")
	assert.Contains(t, w.Body.String(), "not allowed")
}

func TestUploadImage_OversizeFailsBeforeProcessing(t *testing.T) {
	g, svc := newTestEngine(t, 64)

	body, contentType := multipartBody(t, "big.png", "image/png", encodePNG(t, 200, 200))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/upload/image", body)
	req.Header.Set("Content-Type", contentType)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "too large")

	names, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestListAndDeleteImages(t *testing.T) {
	g, _ := newTestEngine(t, 5*1024*1024)

	// delete of an absent file is a 404
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/upload/image/absent.png", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "File not found")

	// upload one image
	body, contentType := multipartBody(t, "keep.png", "image/png", encodePNG(t, 10, 10))
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/upload/image", body)
	req.Header.Set("Content-Type", contentType)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var uploaded struct {
		Data struct {
			Filename string `json:"filename"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uploaded))

	// it appears in the listing
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/upload/images", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Success bool `json:"success"`
		Data    []struct {
			Filename string `json:"filename"`
			URL      string `json:"url"`
			Path     string `json:"path"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Data, 1)
	assert.Equal(t, uploaded.Data.Filename, listing.Data[0].Filename)

	// delete it and the listing is empty again
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/upload/image/"+uploaded.Data.Filename, nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/upload/images", nil)
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Empty(t, listing.Data)
}
