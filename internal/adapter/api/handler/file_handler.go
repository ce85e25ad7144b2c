package handler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"unimarket/internal/usecase"
	"unimarket/pkg/errors"
	"unimarket/pkg/logger"
	"unimarket/pkg/response"
)

type FileHandler struct {
	media       usecase.MediaHost
	maxFileSize int64
}

var fileHandler *FileHandler

func SetupFileHandler(media usecase.MediaHost, maxFileSize int64) {
	fileHandler = NewFileHandler(media, maxFileSize)
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

func NewFileHandler(media usecase.MediaHost, maxFileSize int64) *FileHandler {
	return &FileHandler{
		media:       media,
		maxFileSize: maxFileSize,
	}
}

var allowedFileTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var folderNamePattern = regexp.MustCompile(`[^a-z0-9-]`)

func sanitizeFolderName(folder string) string {
	folder = strings.ToLower(strings.TrimSpace(folder))
	return folderNamePattern.ReplaceAllString(folder, "")
}

// UploadFile accepts a multipart image and returns its durable public URL.
// Size and type limits are enforced here; the media host does not validate.
func (h *FileHandler) UploadFile(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	if file.Size > h.maxFileSize {
		return response.Error(c, errors.BadRequest(
			fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxFileSize/(1024*1024)), nil))
	}

	fileType := file.Header.Get("Content-Type")
	if !allowedFileTypes[fileType] {
		return response.Error(c, errors.BadRequest("File type not supported", nil))
	}

	folder := sanitizeFolderName(c.FormValue("folder"))
	if folder == "" {
		folder = "uploads"
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	url, err := h.media.UploadFile(c.Request().Context(), src, fileType, folder)
	if err != nil {
		logger.Error("Upload to media host failed: %v", err)
		return response.Error(c, errors.Internal("Failed to upload file", err))
	}

	return response.Created(c, map[string]string{"url": url})
}
