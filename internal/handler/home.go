package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/user-records/internal/view"
)

// homeStreamCount is how many users the home page streams in on load.
const homeStreamCount = 10

// HandleHome renders the home page. Any other unmatched path is a 404.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.HomePage(homeStreamCount).Render(r.Context(), w); err != nil {
		slog.Error("render home page", "error", err)
	}
}
