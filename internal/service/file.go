package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/msomdec/user-records/internal/domain"
	"github.com/msomdec/user-records/internal/metrics"
)

// DefaultMaxUploadSize is the upload limit used when none is configured.
const DefaultMaxUploadSize = 10 * 1024 * 1024 // 10MB

// FileService orchestrates file uploads, downloads, and deletion.
type FileService struct {
	files   domain.FileStore
	maxSize int64
}

// NewFileService creates a new FileService. maxSize <= 0 selects
// DefaultMaxUploadSize.
func NewFileService(files domain.FileStore, maxSize int64) *FileService {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	return &FileService{files: files, maxSize: maxSize}
}

// MaxSize reports the upload limit in bytes.
func (s *FileService) MaxSize() int64 {
	return s.maxSize
}

// Upload validates and stores a file under a freshly generated key.
func (s *FileService) Upload(ctx context.Context, filename, contentType string, data []byte) (*domain.StoredFile, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", domain.ErrInvalidInput)
	}
	if int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("%w: file exceeds %d byte limit", domain.ErrInvalidInput, s.maxSize)
	}

	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		name = "upload"
	}

	file := &domain.StoredFile{
		Key:         uuid.NewString(),
		Filename:    name,
		ContentType: contentType,
	}
	if err := s.files.Save(ctx, file, data); err != nil {
		return nil, fmt.Errorf("save file: %w", err)
	}

	metrics.RecordUpload(file.Size)
	return file, nil
}

// Download returns the stored file metadata and bytes.
func (s *FileService) Download(ctx context.Context, key string) (*domain.StoredFile, []byte, error) {
	if _, err := uuid.Parse(key); err != nil {
		return nil, nil, domain.ErrNotFound
	}
	return s.files.Get(ctx, key)
}

// Delete removes a stored file.
func (s *FileService) Delete(ctx context.Context, key string) error {
	if _, err := uuid.Parse(key); err != nil {
		return domain.ErrNotFound
	}
	return s.files.Delete(ctx, key)
}
