package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/msomdec/user-records/internal/handler"
	"github.com/msomdec/user-records/internal/repository/sqlite"
	"github.com/msomdec/user-records/internal/service"
)

type testOptions struct {
	burst    float64
	maxCount int
}

func newTestMux(t *testing.T, opts testOptions) *http.ServeMux {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.CreateSchema(context.Background()); err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if opts.burst == 0 {
		opts.burst = 1000
	}

	users := service.NewUserService(db.Users(), service.NewGenerator(gofakeit.New(3), opts.maxCount))
	files := service.NewFileService(db.FileStore(), 1024)
	limiter := service.NewTokenBucket(1, opts.burst)
	t.Cleanup(limiter.Close)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, db, users, files, limiter, 0)
	return mux
}

func newTestServer(t *testing.T, opts testOptions) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler.RequestLogger(handler.SecurityHeaders(newTestMux(t, opts))))
	t.Cleanup(srv.Close)
	return srv
}
