package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Подкаталоги для разных типов файлов.
const (
	ImagesDir = "images"
	VideosDir = "videos"
)

// ErrFileTooLarge возвращается, если поток оказался больше заявленного лимита.
var ErrFileTooLarge = errors.New("storage: file exceeds size limit")

// MediaStorage отвечает за файловое хранилище загрузок.
type MediaStorage struct {
	rootPath string
}

// NewMediaStorage создаёт файловое хранилище. Каталоги создаются в EnsureDirs.
func NewMediaStorage(rootPath string) *MediaStorage {
	return &MediaStorage{rootPath: rootPath}
}

// Root возвращает корневой каталог хранилища.
func (s *MediaStorage) Root() string {
	return s.rootPath
}

// EnsureDirs создаёт корневой каталог и подкаталоги для изображений и видео.
func (s *MediaStorage) EnsureDirs() error {
	for _, dir := range []string{ImagesDir, VideosDir} {
		path := filepath.Join(s.rootPath, dir)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("storage: не удалось создать каталог %s: %w", path, err)
		}
	}
	return nil
}

// Path возвращает абсолютный путь к файлу в подкаталоге.
func (s *MediaStorage) Path(subdir, filename string) string {
	return filepath.Join(s.rootPath, subdir, sanitizeFilename(filename))
}

// Save записывает файл через временный файл и переименование.
// Возвращает количество записанных байт.
func (s *MediaStorage) Save(ctx context.Context, subdir, filename string, r io.Reader, maxBytes int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	targetPath := s.Path(subdir, filename)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return 0, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	limitedReader := io.LimitedReader{R: r, N: maxBytes + 1}
	written, err := io.Copy(f, &limitedReader)
	if err != nil {
		_ = os.Remove(tempPath)
		return 0, fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if written > maxBytes {
		_ = os.Remove(tempPath)
		return 0, ErrFileTooLarge
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return 0, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		_ = os.Remove(tempPath)
		return 0, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return written, nil
}

// Delete удаляет файл из хранилища. Отсутствующий файл ошибкой не считается.
func (s *MediaStorage) Delete(ctx context.Context, subdir, filename string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(s.Path(subdir, filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// sanitizeFilename удаляет потенциально опасные символы.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" || name == "." {
		name = "file"
	}
	return name
}
