package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/videocrew-backend/internal/logger"
	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/pkg/apperror"
	"github.com/ignatzorin/videocrew-backend/internal/repository"
	"github.com/ignatzorin/videocrew-backend/internal/storage"
)

// sniffLen сколько байт читается для определения типа файла.
const sniffLen = 512

// Разрешённые MIME-типы видео (определяются по содержимому файла).
var allowedVideoMimeTypes = map[string]bool{
	"video/mp4":       true,
	"video/quicktime": true,
	"video/x-msvideo": true,
	"video/x-ms-wmv":  true,
	"video/x-flv":     true,
	"video/webm":      true,
	"video/x-m4v":     true,
}

var safeExtRegex = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// MediaRepository описывает хранилище записей о файлах.
type MediaRepository interface {
	Create(ctx context.Context, media *models.MediaFile) error
	GetByID(ctx context.Context, id string) (*models.MediaFile, error)
	List(ctx context.Context) ([]models.MediaFile, error)
	Delete(ctx context.Context, id string) error
}

// FileStore файловое хранилище загрузок.
type FileStore interface {
	Save(ctx context.Context, subdir, filename string, r io.Reader, maxBytes int64) (int64, error)
	Delete(ctx context.Context, subdir, filename string) error
	Path(subdir, filename string) string
}

// MediaConfig параметры загрузки файлов.
type MediaConfig struct {
	BaseURL       string
	MountPath     string
	MaxImageBytes int64
	MaxVideoBytes int64
}

// UploadInput файл, полученный из multipart-запроса.
type UploadInput struct {
	Kind         string
	OriginalName string
	Size         int64
	File         io.ReadSeeker
	UploadedBy   string
}

type uploadPolicy struct {
	subdir      string
	maxBytes    int64
	allowed     func(mime string) bool
	typeMessage string
}

// MediaService управляет загрузкой и удалением медиа-файлов.
type MediaService struct {
	repo     MediaRepository
	files    FileStore
	cfg      MediaConfig
	events   EventPublisher
	policies map[string]uploadPolicy
	now      func() time.Time
}

// NewMediaService создаёт сервис медиа-файлов.
func NewMediaService(repo MediaRepository, files FileStore, cfg MediaConfig, events EventPublisher) *MediaService {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.MountPath = "/" + strings.Trim(cfg.MountPath, "/")

	return &MediaService{
		repo:   repo,
		files:  files,
		cfg:    cfg,
		events: publisherOrNoop(events),
		policies: map[string]uploadPolicy{
			models.MediaTypeImage: {
				subdir:      storage.ImagesDir,
				maxBytes:    cfg.MaxImageBytes,
				allowed:     func(mime string) bool { return strings.HasPrefix(mime, "image/") },
				typeMessage: "Only image files are allowed",
			},
			models.MediaTypeVideo: {
				subdir:      storage.VideosDir,
				maxBytes:    cfg.MaxVideoBytes,
				allowed:     func(mime string) bool { return allowedVideoMimeTypes[mime] },
				typeMessage: "Only video files (mp4, avi, mov, wmv, flv, webm, m4v) are allowed",
			},
		},
		now: time.Now,
	}
}

// MaxBytes возвращает лимит размера для типа загрузки.
func (s *MediaService) MaxBytes(kind string) int64 {
	return s.policies[kind].maxBytes
}

// FileTooLargeError возвращает ошибку превышения размера для типа загрузки.
func (s *MediaService) FileTooLargeError(kind string) error {
	return apperror.BadRequest(fmt.Sprintf("File too large. Maximum size is %dMB", s.MaxBytes(kind)>>20))
}

// Upload проверяет файл, сохраняет его на диск и создаёт запись.
// Размер и тип проверяются до записи на диск.
func (s *MediaService) Upload(ctx context.Context, in UploadInput) (*models.MediaFile, error) {
	policy, ok := s.policies[in.Kind]
	if !ok {
		return nil, apperror.BadRequest("Invalid field name")
	}

	if in.Size > policy.maxBytes {
		return nil, s.FileTooLargeError(in.Kind)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(in.File, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, apperror.Internal(fmt.Errorf("media service: чтение файла: %w", err))
	}

	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown || !policy.allowed(kind.MIME.Value) {
		return nil, apperror.BadRequest(policy.typeMessage)
	}
	mimeType := kind.MIME.Value

	if _, err := in.File.Seek(0, io.SeekStart); err != nil {
		return nil, apperror.Internal(fmt.Errorf("media service: не удалось сбросить позицию файла: %w", err))
	}

	filename := s.generateFilename(in.OriginalName, kind.Extension)
	written, err := s.files.Save(ctx, policy.subdir, filename, in.File, policy.maxBytes)
	if err != nil {
		if errors.Is(err, storage.ErrFileTooLarge) {
			return nil, s.FileTooLargeError(in.Kind)
		}
		return nil, apperror.Internal(fmt.Errorf("media service: %w", err))
	}

	uploadedBy := strings.TrimSpace(in.UploadedBy)
	if uploadedBy == "" {
		uploadedBy = models.DefaultUploader
	}

	media := &models.MediaFile{
		Filename:     filename,
		OriginalName: in.OriginalName,
		URL:          s.publicURL(policy.subdir, filename),
		Type:         in.Kind,
		Size:         written,
		MimeType:     mimeType,
		UploadedBy:   uploadedBy,
	}
	if in.Kind == models.MediaTypeImage {
		media.Dimensions = s.imageDimensions(policy.subdir, filename)
	}

	if err := s.repo.Create(ctx, media); err != nil {
		if rmErr := s.files.Delete(context.Background(), policy.subdir, filename); rmErr != nil {
			logger.Log.WithError(rmErr).WithField("filename", filename).Warn("media service: не удалось удалить файл после ошибки записи")
		}
		return nil, apperror.Internal(fmt.Errorf("media service: %w", err))
	}

	logger.Log.WithFields(map[string]interface{}{
		"media_id": media.ID,
		"filename": filename,
		"type":     media.Type,
		"size":     media.Size,
	}).Info("media service: файл загружен")
	s.events.Publish(EventMediaUploaded, media)

	return media, nil
}

// List возвращает файлы от новых к старым.
func (s *MediaService) List(ctx context.Context) ([]models.MediaFile, error) {
	files, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("media service: %w", err))
	}
	return files, nil
}

// Delete удаляет файл с диска и запись о нём.
// Если записи нет, файловая система не затрагивается.
func (s *MediaService) Delete(ctx context.Context, id string) error {
	if !models.IsValidID(id) {
		return apperror.Validation([]apperror.FieldError{{Field: "id", Message: "Valid ID is required"}})
	}

	media, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapMediaErr(err)
	}

	if err := s.files.Delete(ctx, subdirFor(media.Type), media.Filename); err != nil {
		return apperror.Internal(fmt.Errorf("media service: %w", err))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapMediaErr(err)
	}

	s.events.Publish(EventMediaDeleted, map[string]string{"_id": media.ID, "filename": media.Filename})
	return nil
}

func (s *MediaService) generateFilename(originalName, sniffedExt string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !safeExtRegex.MatchString(ext) {
		ext = "." + sniffedExt
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), suffix, ext)
}

func (s *MediaService) publicURL(subdir, filename string) string {
	return s.cfg.BaseURL + s.cfg.MountPath + "/" + subdir + "/" + filename
}

// maxOrientationPixels ограничивает полное декодирование JPEG ради EXIF-ориентации.
const maxOrientationPixels = 12_000_000

// imageDimensions читает размеры из заголовка изображения без декодирования пикселей.
// Для JPEG разумного размера размеры уточняются с учётом EXIF-ориентации.
// Форматы, которые не удалось разобрать, сохраняются без размеров.
func (s *MediaService) imageDimensions(subdir, filename string) *models.MediaDimensions {
	path := s.files.Path(subdir, filename)
	log := logger.Log.WithField("filename", filename)

	f, err := os.Open(path)
	if err != nil {
		log.WithError(err).Debug("media service: размеры изображения не определены")
		return nil
	}
	cfg, format, err := image.DecodeConfig(f)
	f.Close()
	if err != nil {
		log.WithError(err).Debug("media service: размеры изображения не определены")
		return nil
	}

	dims := &models.MediaDimensions{Width: cfg.Width, Height: cfg.Height}
	if format != "jpeg" || int64(cfg.Width)*int64(cfg.Height) > maxOrientationPixels {
		return dims
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		log.WithError(err).Debug("media service: EXIF-ориентация не прочитана")
		return dims
	}
	b := img.Bounds()
	return &models.MediaDimensions{Width: b.Dx(), Height: b.Dy()}
}

func subdirFor(mediaType string) string {
	if mediaType == models.MediaTypeVideo {
		return storage.VideosDir
	}
	return storage.ImagesDir
}

func mapMediaErr(err error) error {
	if errors.Is(err, repository.ErrMediaFileNotFound) {
		return apperror.ErrMediaFileNotFound
	}
	return apperror.Internal(fmt.Errorf("media service: %w", err))
}
