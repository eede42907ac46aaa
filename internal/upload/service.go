package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ng-portfolio/backend/pkg/logger"
)

var (
	// ErrNotFound marks a delete of a filename not present in the images directory.
	ErrNotFound = errors.New("file not found")
	// ErrTooLarge marks an upload over the configured byte limit.
	ErrTooLarge = errors.New("file too large")
)

// TypeNotAllowedError reports an upload whose MIME type is outside the
// allow-list, naming the offending type and the allowed set.
type TypeNotAllowedError struct {
	Mime    string
	Allowed []string
}

func (e *TypeNotAllowedError) Error() string {
	return fmt.Sprintf("File type %s not allowed. Allowed types: %s", e.Mime, strings.Join(e.Allowed, ", "))
}

// imageExtPattern matches the extensions listed by GET /images.
var imageExtPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)

// Archive is an optional off-site copy of normalized images (object storage).
// All archive operations are best-effort; disk stays the source of truth.
type Archive interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
}

// StoredImage describes one successfully uploaded and normalized image.
// The file on disk is immutable once created; a re-upload always produces a
// new file.
type StoredImage struct {
	Filename     string
	OriginalName string
	Size         int64
}

// Service validates, stores and normalizes uploaded images under a dedicated
// images directory.
type Service struct {
	imagesDir string
	maxSize   int64
	allowed   []string
	archive   Archive
}

// NewService builds an upload service. allowedTypes is the MIME allow-list
// (defaulted by config); archive may be nil.
func NewService(imagesDir string, maxSize int64, allowedTypes []string, archive Archive) *Service {
	return &Service{imagesDir: imagesDir, maxSize: maxSize, allowed: allowedTypes, archive: archive}
}

// ImagesDir returns the directory holding normalized images, for static serving.
func (s *Service) ImagesDir() string { return s.imagesDir }

func (s *Service) typeAllowed(mime string) bool {
	for _, t := range s.allowed {
		if t == mime {
			return true
		}
	}
	return false
}

// Store validates the upload, writes the raw bytes under a collision-resistant
// name, normalizes them to a bounded-dimension JPEG and deletes the raw file.
// On a normalization failure the raw temp file is left on disk for
// inspection.
func (s *Service) Store(file multipart.File, header *multipart.FileHeader) (*StoredImage, error) {
	if header.Size > s.maxSize {
		return nil, fmt.Errorf("%w (max %d bytes)", ErrTooLarge, s.maxSize)
	}

	mime := strings.TrimSpace(strings.Split(header.Header.Get("Content-Type"), ";")[0])
	if mime == "" {
		mime = "application/octet-stream"
	}
	if !s.typeAllowed(mime) {
		return nil, &TypeNotAllowedError{Mime: mime, Allowed: s.allowed}
	}

	if err := os.MkdirAll(s.imagesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create images directory: %w", err)
	}

	// Collision-resistant name: random UUID + timestamp + original extension.
	ext := filepath.Ext(header.Filename)
	rawName := uuid.NewString() + "-" + strconv.FormatInt(time.Now().UnixMilli(), 10) + ext
	rawPath := filepath.Join(s.imagesDir, rawName)

	dst, err := os.Create(rawPath)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(rawPath)
		return nil, fmt.Errorf("write upload file: %w", err)
	}
	dst.Close()

	optimizedName := "optimized-" + rawName
	optimizedPath := filepath.Join(s.imagesDir, optimizedName)
	if err := normalizeImage(rawPath, optimizedPath); err != nil {
		// the raw file intentionally stays behind for inspection
		return nil, fmt.Errorf("process image: %w", err)
	}
	if err := os.Remove(rawPath); err != nil {
		logger.Warnf("could not remove raw upload %s: %v", rawName, err)
	}

	if s.archive != nil {
		s.archiveCopy(optimizedName, optimizedPath)
	}

	return &StoredImage{
		Filename:     optimizedName,
		OriginalName: header.Filename,
		Size:         header.Size,
	}, nil
}

// archiveCopy mirrors the normalized file into object storage, best-effort.
func (s *Service) archiveCopy(name, path string) {
	f, err := os.Open(path)
	if err != nil {
		logger.Warnf("archive: cannot open %s: %v", name, err)
		return
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		logger.Warnf("archive: cannot stat %s: %v", name, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.archive.Put(ctx, "images/"+name, f, st.Size(), "image/jpeg"); err != nil {
		logger.Warnf("archive: upload of %s failed: %v", name, err)
	}
}

// List returns the filenames in the images directory matching known image
// extensions. Order is whatever the filesystem reports.
func (s *Service) List() ([]string, error) {
	entries, err := os.ReadDir(s.imagesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read images directory: %w", err)
	}
	out := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtPattern.MatchString(e.Name()) {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

// Delete unlinks a stored image by filename. It does not reconcile portfolio
// content references to the file; a dangling URL is accepted.
func (s *Service) Delete(filename string) error {
	if filename == "" || filename != filepath.Base(filename) {
		return ErrNotFound
	}
	path := filepath.Join(s.imagesDir, filename)
	if _, err := os.Stat(path); err != nil {
		return ErrNotFound
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if s.archive != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.archive.Remove(ctx, "images/"+filename); err != nil {
			logger.Warnf("archive: remove of %s failed: %v", filename, err)
		}
	}
	return nil
}
