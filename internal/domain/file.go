package domain

import (
	"context"
	"time"
)

// StoredFile holds metadata about an uploaded file.
type StoredFile struct {
	Key         string
	Filename    string // Original upload filename
	ContentType string
	Size        int64
	CreatedAt   time.Time
}

// FileStore abstracts raw file storage for uploads and downloads.
type FileStore interface {
	Save(ctx context.Context, file *StoredFile, data []byte) error
	Get(ctx context.Context, key string) (*StoredFile, []byte, error)
	Delete(ctx context.Context, key string) error
}
