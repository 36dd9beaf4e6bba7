package handler

import (
	"net/http"
	"time"

	"github.com/msomdec/user-records/internal/metrics"
	"github.com/msomdec/user-records/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Writes are rate
// limited per client through limiter.
func RegisterRoutes(
	mux *http.ServeMux,
	db Pinger,
	users *service.UserService,
	files *service.FileService,
	limiter *service.TokenBucket,
	slowMaxDelay time.Duration,
) {
	uh := NewUserHandler(users)
	fh := NewFileHandler(files)

	mux.HandleFunc("GET /healthz", HandleHealthz(db))
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /slow", HandleSlow(slowMaxDelay))

	mux.HandleFunc("GET /users/generate", uh.HandleGenerate)
	mux.HandleFunc("GET /users/generate.json", uh.HandleGenerateJSON)
	mux.HandleFunc("GET /users/stream", uh.HandleStream)
	mux.HandleFunc("GET /users", uh.HandleList)
	mux.Handle("POST /users", RateLimit(limiter, http.HandlerFunc(uh.HandleCreate)))
	mux.HandleFunc("GET /users/{id}", uh.HandleGet)

	mux.Handle("POST /files", RateLimit(limiter, http.HandlerFunc(fh.HandleUpload)))
	mux.HandleFunc("GET /files/{key}", fh.HandleDownload)
	mux.HandleFunc("DELETE /files/{key}", fh.HandleDelete)

	mux.HandleFunc("GET /", HandleHome)
}
