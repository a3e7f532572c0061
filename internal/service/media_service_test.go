package service

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/pkg/apperror"
	"github.com/ignatzorin/videocrew-backend/internal/repository"
	"github.com/ignatzorin/videocrew-backend/internal/storage"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(w, h, color.NRGBA{R: 200, A: 255}), imaging.PNG))
	return buf.Bytes()
}

// pngHeaderOnly возвращает PNG, в котором есть только заголовок IHDR.
// Полное декодирование такого файла невозможно.
func pngHeaderOnly(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 6 // RGBA

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

// jpegWithOrientation кодирует JPEG w×h и добавляет EXIF с заданной ориентацией.
func jpegWithOrientation(t *testing.T, w, h int, orientation uint16) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, imaging.New(w, h, color.NRGBA{G: 200, A: 255}), imaging.JPEG))
	raw := buf.Bytes()

	var exif bytes.Buffer
	exif.WriteString("Exif\x00\x00")
	exif.WriteString("MM\x00\x2a\x00\x00\x00\x08")
	_ = binary.Write(&exif, binary.BigEndian, uint16(1))
	_ = binary.Write(&exif, binary.BigEndian, []uint16{0x0112, 3})
	_ = binary.Write(&exif, binary.BigEndian, uint32(1))
	_ = binary.Write(&exif, binary.BigEndian, []uint16{orientation, 0})
	_ = binary.Write(&exif, binary.BigEndian, uint32(0))

	var out bytes.Buffer
	out.Write(raw[:2]) // SOI
	out.Write([]byte{0xFF, 0xE1})
	_ = binary.Write(&out, binary.BigEndian, uint16(exif.Len()+2))
	out.Write(exif.Bytes())
	out.Write(raw[2:])
	return out.Bytes()
}

func mp4Bytes() []byte {
	head := []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00}
	return append(head, bytes.Repeat([]byte{0x01}, 64)...)
}

func newTestMediaService(t *testing.T, repo MediaRepository) (*MediaService, *storage.MediaStorage, *recordingPublisher) {
	t.Helper()
	files := storage.NewMediaStorage(t.TempDir())
	require.NoError(t, files.EnsureDirs())
	events := &recordingPublisher{}
	svc := NewMediaService(repo, files, MediaConfig{
		BaseURL:       "http://localhost:5000/",
		MountPath:     "uploads",
		MaxImageBytes: 1 << 20,
		MaxVideoBytes: 2 << 20,
	}, events)
	return svc, files, events
}

func dirEntries(t *testing.T, files *storage.MediaStorage, subdir string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(files.Root(), subdir))
	require.NoError(t, err)
	return entries
}

func TestMediaService_UploadImage(t *testing.T) {
	repo := &mockMediaRepo{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.MediaFile")).Return(nil)
	svc, files, events := newTestMediaService(t, repo)

	data := pngBytes(t, 4, 3)
	media, err := svc.Upload(context.Background(), UploadInput{
		Kind:         models.MediaTypeImage,
		OriginalName: "Poster.PNG",
		Size:         int64(len(data)),
		File:         bytes.NewReader(data),
		UploadedBy:   "admin@videocrew.example",
	})
	require.NoError(t, err)

	assert.Equal(t, "image/png", media.MimeType)
	assert.Equal(t, models.MediaTypeImage, media.Type)
	assert.Equal(t, int64(len(data)), media.Size)
	assert.True(t, strings.HasSuffix(media.Filename, ".png"))
	assert.Equal(t, "http://localhost:5000/uploads/images/"+media.Filename, media.URL)
	assert.Equal(t, "Poster.PNG", media.OriginalName)
	assert.Equal(t, "admin@videocrew.example", media.UploadedBy)
	require.NotNil(t, media.Dimensions)
	assert.Equal(t, models.MediaDimensions{Width: 4, Height: 3}, *media.Dimensions)

	assert.Len(t, dirEntries(t, files, storage.ImagesDir), 1)
	assert.Equal(t, []string{EventMediaUploaded}, events.types())
	repo.AssertExpectations(t)
}

func TestMediaService_UploadVideoDefaultsUploader(t *testing.T) {
	repo := &mockMediaRepo{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.MediaFile")).Return(nil)
	svc, files, _ := newTestMediaService(t, repo)

	data := mp4Bytes()
	media, err := svc.Upload(context.Background(), UploadInput{
		Kind:         models.MediaTypeVideo,
		OriginalName: "reel",
		Size:         int64(len(data)),
		File:         bytes.NewReader(data),
	})
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", media.MimeType)
	assert.Equal(t, models.DefaultUploader, media.UploadedBy)
	assert.True(t, strings.HasSuffix(media.Filename, ".mp4"))
	assert.Nil(t, media.Dimensions)
	assert.Len(t, dirEntries(t, files, storage.VideosDir), 1)
}

func TestMediaService_UploadRejectionsWriteNothing(t *testing.T) {
	tests := []struct {
		name    string
		in      func(t *testing.T) UploadInput
		message string
	}{
		{
			name: "oversized image",
			in: func(t *testing.T) UploadInput {
				data := pngBytes(t, 2, 2)
				return UploadInput{Kind: models.MediaTypeImage, OriginalName: "a.png", Size: 5 << 20, File: bytes.NewReader(data)}
			},
			message: "File too large. Maximum size is 1MB",
		},
		{
			name: "video sent as image",
			in: func(t *testing.T) UploadInput {
				data := mp4Bytes()
				return UploadInput{Kind: models.MediaTypeImage, OriginalName: "a.png", Size: int64(len(data)), File: bytes.NewReader(data)}
			},
			message: "Only image files are allowed",
		},
		{
			name: "image sent as video",
			in: func(t *testing.T) UploadInput {
				data := pngBytes(t, 2, 2)
				return UploadInput{Kind: models.MediaTypeVideo, OriginalName: "a.mp4", Size: int64(len(data)), File: bytes.NewReader(data)}
			},
			message: "Only video files (mp4, avi, mov, wmv, flv, webm, m4v) are allowed",
		},
		{
			name: "text with image extension",
			in: func(t *testing.T) UploadInput {
				data := []byte("just some text pretending to be an image")
				return UploadInput{Kind: models.MediaTypeImage, OriginalName: "a.jpg", Size: int64(len(data)), File: bytes.NewReader(data)}
			},
			message: "Only image files are allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockMediaRepo{}
			svc, files, events := newTestMediaService(t, repo)

			_, err := svc.Upload(context.Background(), tt.in(t))
			require.Error(t, err)

			appErr, ok := err.(*apperror.AppError)
			require.True(t, ok)
			assert.Equal(t, 400, appErr.HTTPStatus)
			assert.Equal(t, tt.message, appErr.Message)

			assert.Empty(t, dirEntries(t, files, storage.ImagesDir))
			assert.Empty(t, dirEntries(t, files, storage.VideosDir))
			assert.Empty(t, events.types())
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestMediaService_UploadRemovesFileWhenRecordFails(t *testing.T) {
	repo := &mockMediaRepo{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.MediaFile")).Return(errors.New("db down"))
	svc, files, _ := newTestMediaService(t, repo)

	data := pngBytes(t, 2, 2)
	_, err := svc.Upload(context.Background(), UploadInput{
		Kind: models.MediaTypeImage, OriginalName: "a.png", Size: int64(len(data)), File: bytes.NewReader(data),
	})
	require.Error(t, err)
	assert.Equal(t, apperror.MsgInternal, err.(*apperror.AppError).Message)
	assert.Empty(t, dirEntries(t, files, storage.ImagesDir))
}

func TestMediaService_Delete(t *testing.T) {
	repo := &mockMediaRepo{}
	svc, files, events := newTestMediaService(t, repo)
	ctx := context.Background()

	media := &models.MediaFile{ID: models.NewID(), Filename: "1700000000000-abcdef12.png", Type: models.MediaTypeImage}
	_, err := files.Save(ctx, storage.ImagesDir, media.Filename, bytes.NewReader([]byte("x")), 10)
	require.NoError(t, err)

	repo.On("GetByID", mock.Anything, media.ID).Return(media, nil).Once()
	repo.On("Delete", mock.Anything, media.ID).Return(nil).Once()
	require.NoError(t, svc.Delete(ctx, media.ID))
	assert.Empty(t, dirEntries(t, files, storage.ImagesDir))
	assert.Equal(t, []string{EventMediaDeleted}, events.types())

	repo.On("GetByID", mock.Anything, media.ID).Return(nil, repository.ErrMediaFileNotFound).Once()
	assert.Equal(t, apperror.ErrMediaFileNotFound, svc.Delete(ctx, media.ID))
	repo.AssertNumberOfCalls(t, "Delete", 1)
}

func TestMediaService_DeleteMissingFileStillRemovesRecord(t *testing.T) {
	repo := &mockMediaRepo{}
	svc, _, _ := newTestMediaService(t, repo)

	media := &models.MediaFile{ID: models.NewID(), Filename: "gone.mp4", Type: models.MediaTypeVideo}
	repo.On("GetByID", mock.Anything, media.ID).Return(media, nil)
	repo.On("Delete", mock.Anything, media.ID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), media.ID))
	repo.AssertExpectations(t)
}

func TestMediaService_UploadImageReadsDimensionsFromHeader(t *testing.T) {
	repo := &mockMediaRepo{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.MediaFile")).Return(nil)
	svc, _, _ := newTestMediaService(t, repo)

	// 100000×100000 RGBA потребовал бы десятки гигабайт при декодировании.
	data := pngHeaderOnly(100000, 100000)
	media, err := svc.Upload(context.Background(), UploadInput{
		Kind:         models.MediaTypeImage,
		OriginalName: "huge.png",
		Size:         int64(len(data)),
		File:         bytes.NewReader(data),
	})
	require.NoError(t, err)
	require.NotNil(t, media.Dimensions)
	assert.Equal(t, models.MediaDimensions{Width: 100000, Height: 100000}, *media.Dimensions)
}

func TestMediaService_UploadJPEGAppliesOrientation(t *testing.T) {
	repo := &mockMediaRepo{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.MediaFile")).Return(nil)
	svc, _, _ := newTestMediaService(t, repo)

	// Ориентация 6: поворот на 90°, ширина и высота меняются местами.
	data := jpegWithOrientation(t, 4, 3, 6)
	media, err := svc.Upload(context.Background(), UploadInput{
		Kind:         models.MediaTypeImage,
		OriginalName: "photo.jpg",
		Size:         int64(len(data)),
		File:         bytes.NewReader(data),
	})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", media.MimeType)
	require.NotNil(t, media.Dimensions)
	assert.Equal(t, models.MediaDimensions{Width: 3, Height: 4}, *media.Dimensions)
}
