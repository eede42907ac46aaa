package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync"
	"time"
)

// Progress is the streamed upload state: a run of intermediate percentages
// terminating in either completed or error.
type Progress struct {
	Percent   int
	Uploading bool
	Completed bool
	Err       string
}

// UploadResult mirrors the server's upload response data.
type UploadResult struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
	Path         string `json:"path"`
}

// ImageInfo is one entry from the server's image listing.
type ImageInfo struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Path     string `json:"path"`
}

// Uploader talks to the upload API on behalf of the editor. It keeps a single
// shared progress holder: starting a second upload before the first finishes
// simply overwrites it; the editor UI does not run uploads concurrently.
type Uploader struct {
	baseURL string
	client  *http.Client

	mu    sync.RWMutex
	state Progress
}

func NewUploader(baseURL string) *Uploader {
	return &Uploader{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Progress returns the current upload state.
func (u *Uploader) Progress() Progress {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.state
}

// ResetProgress clears the shared progress holder.
func (u *Uploader) ResetProgress() {
	u.setProgress(Progress{})
}

func (u *Uploader) setProgress(p Progress) {
	u.mu.Lock()
	u.state = p
	u.mu.Unlock()
}

// progressReader reports bytes consumed from the request body as a percentage
// of the total, feeding the shared holder.
type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	u     *Uploader
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		pct := 0
		if p.total > 0 {
			pct = int(100 * p.read / p.total)
		}
		if pct > 100 {
			pct = 100
		}
		p.u.setProgress(Progress{Percent: pct, Uploading: true})
	}
	return n, err
}

// UploadImage posts the file under field "image" and returns the stored image
// description. Failures land in the progress holder as a terminal error state
// alongside the returned error.
func (u *Uploader) UploadImage(ctx context.Context, filename, contentType string, data io.Reader) (*UploadResult, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, fmt.Errorf("read upload source: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finish multipart body: %w", err)
	}

	u.setProgress(Progress{Percent: 0, Uploading: true})

	total := int64(body.Len())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/api/upload/image",
		&progressReader{r: body, total: total, u: u})
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.ContentLength = total

	resp, err := u.client.Do(req)
	if err != nil {
		u.setProgress(Progress{Err: err.Error()})
		return nil, fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool          `json:"success"`
		Message string        `json:"message"`
		Error   string        `json:"error"`
		Data    *UploadResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		u.setProgress(Progress{Err: err.Error()})
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !envelope.Success || envelope.Data == nil {
		msg := envelope.Error
		if msg == "" {
			msg = fmt.Sprintf("upload failed with status %d", resp.StatusCode)
		}
		u.setProgress(Progress{Err: msg})
		return nil, fmt.Errorf("upload rejected: %s", msg)
	}

	u.setProgress(Progress{Percent: 100, Completed: true})
	return envelope.Data, nil
}

// ListImages fetches the server's image directory listing.
func (u *Uploader) ListImages(ctx context.Context) ([]ImageInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+"/api/upload/images", nil)
	if err != nil {
		return nil, err
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer resp.Body.Close()
	var envelope struct {
		Success bool        `json:"success"`
		Data    []ImageInfo `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode image listing: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list images failed with status %d", resp.StatusCode)
	}
	return envelope.Data, nil
}

// DeleteImage removes a stored image by filename.
func (u *Uploader) DeleteImage(ctx context.Context, filename string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u.baseURL+"/api/upload/image/"+filename, nil)
	if err != nil {
		return err
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("image %s not found", filename)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("delete image failed with status %d", resp.StatusCode)
	}
	return nil
}
