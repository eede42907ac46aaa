package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ng-portfolio/backend/internal/upload"
	"github.com/ng-portfolio/backend/pkg/logger"
	"github.com/ng-portfolio/backend/pkg/metrics"
)

// multipartOverhead is the slack allowed on top of the file size limit for
// multipart boundaries and headers when capping the request body.
const multipartOverhead = 512 * 1024

// Handler serves the image upload API under /api/upload.
type Handler struct {
	svc     *upload.Service
	maxSize int64
	devMode bool
}

func New(svc *upload.Service, maxSize int64, devMode bool) *Handler {
	return &Handler{svc: svc, maxSize: maxSize, devMode: devMode}
}

func (h *Handler) Register(r *gin.Engine) {
	grp := r.Group("/api/upload")
	grp.POST("/image", h.UploadImage)
	grp.GET("/images", h.ListImages)
	grp.DELETE("/image/:filename", h.DeleteImage)
}

func (h *Handler) errorMessage(err error) string {
	if h.devMode {
		return err.Error()
	}
	return "Something went wrong"
}

// imageURL builds the absolute, host-qualified link for a stored filename.
func imageURL(c *gin.Context, filename string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + "/uploads/images/" + filename
}

// UploadImage accepts exactly one file under field "image". The request body
// is capped before multipart parsing so oversized uploads fail without ever
// reaching image processing.
func (h *Handler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize+multipartOverhead)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "File too large",
				"message": "Upload exceeds the configured size limit",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	stored, err := h.svc.Store(file, header)
	if err != nil {
		var tne *upload.TypeNotAllowedError
		switch {
		case errors.As(err, &tne):
			c.JSON(http.StatusBadRequest, gin.H{"error": tne.Error()})
		case errors.Is(err, upload.ErrTooLarge):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "File too large",
				"message": err.Error(),
			})
		default:
			logger.Errorf("upload error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Upload failed",
				"message": h.errorMessage(err),
			})
		}
		return
	}

	metrics.ImagesUploaded.Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Image uploaded successfully",
		"data": gin.H{
			"filename":     stored.Filename,
			"originalname": stored.OriginalName,
			"size":         stored.Size,
			"url":          imageURL(c, stored.Filename),
			"path":         "/uploads/images/" + stored.Filename,
		},
	})
}

// ListImages returns a directory listing of stored images, not a database
// query; order is filesystem order.
func (h *Handler) ListImages(c *gin.Context) {
	names, err := h.svc.List()
	if err != nil {
		logger.Errorf("error reading uploads directory: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to retrieve images",
			"message": h.errorMessage(err),
		})
		return
	}
	out := make([]gin.H, 0, len(names))
	for _, name := range names {
		out = append(out, gin.H{
			"filename": name,
			"url":      imageURL(c, name),
			"path":     "/uploads/images/" + name,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
}

// DeleteImage unlinks by filename. It does not check whether the portfolio
// document still references the file.
func (h *Handler) DeleteImage(c *gin.Context) {
	filename := c.Param("filename")
	if err := h.svc.Delete(filename); err != nil {
		if errors.Is(err, upload.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
			return
		}
		logger.Errorf("delete error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Delete failed",
			"message": h.errorMessage(err),
		})
		return
	}
	metrics.ImagesDeleted.Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image deleted successfully"})
}
