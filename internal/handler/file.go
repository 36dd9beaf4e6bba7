package handler

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/msomdec/user-records/internal/service"
)

// multipartOverhead leaves room for form boundaries and headers on top of
// the file itself.
const multipartOverhead = 1 << 20

// FileHandler handles file upload, download, and deletion.
type FileHandler struct {
	files *service.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(files *service.FileService) *FileHandler {
	return &FileHandler{files: files}
}

// HandleUpload stores the multipart "file" field.
// POST /files
func (h *FileHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.files.MaxSize()+multipartOverhead)
	if err := r.ParseMultipartForm(h.files.MaxSize()); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or malformed form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("read upload", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Detect content type from file bytes (more reliable than multipart header).
	contentType := http.DetectContentType(data)

	stored, err := h.files.Upload(r.Context(), header.Filename, contentType, data)
	if err != nil {
		writeServiceError(w, "upload file", err)
		return
	}

	w.Header().Set("Location", "/files/"+stored.Key)
	writeJSON(w, http.StatusCreated, toFileDTO(stored))
}

// HandleDownload sends a stored file as an attachment.
// GET /files/{key}
func (h *FileHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	file, data, err := h.files.Download(r.Context(), r.PathValue("key"))
	if err != nil {
		writeServiceError(w, "download file", err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// HandleDelete removes a stored file.
// DELETE /files/{key}
func (h *FileHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.files.Delete(r.Context(), r.PathValue("key")); err != nil {
		writeServiceError(w, "delete file", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
