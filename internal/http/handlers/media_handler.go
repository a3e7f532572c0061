package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/videocrew-backend/internal/http/handlers/common"
	"github.com/ignatzorin/videocrew-backend/internal/http/response"
	"github.com/ignatzorin/videocrew-backend/internal/metrics"
	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/pkg/apperror"
	"github.com/ignatzorin/videocrew-backend/internal/service"
)

// multipartOverhead запас на заголовки multipart сверх лимита файла.
const multipartOverhead = 1 << 20

// MediaHandler управляет загрузкой и удалением медиа-файлов.
type MediaHandler struct {
	service *service.MediaService
}

// NewMediaHandler создаёт новый хэндлер.
func NewMediaHandler(service *service.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// uploadResponse описывает загруженный файл.
type uploadResponse struct {
	ID           string                  `json:"_id"`
	Filename     string                  `json:"filename"`
	OriginalName string                  `json:"originalname"`
	MimeType     string                  `json:"mimetype"`
	Size         int64                   `json:"size"`
	URL          string                  `json:"url"`
	Type         string                  `json:"type"`
	Dimensions   *models.MediaDimensions `json:"dimensions,omitempty"`
}

// UploadImage обрабатывает POST /api/upload/image (поле image).
func (h *MediaHandler) UploadImage(c *gin.Context) {
	h.upload(c, models.MediaTypeImage, "Image uploaded successfully")
}

// UploadVideo обрабатывает POST /api/upload/video (поле video).
func (h *MediaHandler) UploadVideo(c *gin.Context) {
	h.upload(c, models.MediaTypeVideo, "Video uploaded successfully")
}

// upload принимает один файл; имя поля формы совпадает с типом медиа.
func (h *MediaHandler) upload(c *gin.Context, kind, successMessage string) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.service.MaxBytes(kind)+multipartOverhead)

	fileHeader, err := c.FormFile(kind)
	if err != nil {
		metrics.RecordUpload(kind, "rejected")
		if isBodyTooLarge(err) {
			_ = c.Error(h.service.FileTooLargeError(kind))
			return
		}
		_ = c.Error(apperror.BadRequest(fmt.Sprintf("No %s file uploaded", kind)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		metrics.RecordUpload(kind, "error")
		_ = c.Error(apperror.Internal(fmt.Errorf("media handler: не удалось открыть файл: %w", err)))
		return
	}
	defer file.Close()

	uploadedBy := models.DefaultUploader
	if admin, err := common.CurrentAdmin(c); err == nil {
		uploadedBy = admin.Email
	}

	media, err := h.service.Upload(c.Request.Context(), service.UploadInput{
		Kind:         kind,
		OriginalName: fileHeader.Filename,
		Size:         fileHeader.Size,
		File:         file,
		UploadedBy:   uploadedBy,
	})
	if err != nil {
		if apperror.IsInternal(err) {
			metrics.RecordUpload(kind, "error")
		} else {
			metrics.RecordUpload(kind, "rejected")
		}
		_ = c.Error(err)
		return
	}

	metrics.RecordUpload(kind, "accepted")
	response.Created(c, successMessage, uploadResponse{
		ID:           media.ID,
		Filename:     media.Filename,
		OriginalName: media.OriginalName,
		MimeType:     media.MimeType,
		Size:         media.Size,
		URL:          media.URL,
		Type:         media.Type,
		Dimensions:   media.Dimensions,
	})
}

// List обрабатывает GET /api/upload и GET /api/media.
func (h *MediaHandler) List(c *gin.Context) {
	files, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, files)
}

// Delete обрабатывает DELETE /api/upload/:id.
func (h *MediaHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Message(c, "Media file deleted successfully")
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
