package handler

import (
	"time"

	"github.com/msomdec/user-records/internal/domain"
)

// FileDTO is the JSON representation of an uploaded file.
type FileDTO struct {
	Key         string `json:"key"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
	CreatedAt   string `json:"createdAt"`
}

func toFileDTO(f *domain.StoredFile) FileDTO {
	return FileDTO{
		Key:         f.Key,
		Filename:    f.Filename,
		ContentType: f.ContentType,
		Size:        f.Size,
		URL:         "/files/" + f.Key,
		CreatedAt:   f.CreatedAt.Format(time.RFC3339),
	}
}
