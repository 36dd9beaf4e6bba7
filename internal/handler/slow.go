package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/msomdec/user-records/internal/service"
)

// HandleSlow returns a handler that waits a random time up to maxDelay
// before answering, to imitate a slow downstream dependency.
// GET /slow
func HandleSlow(maxDelay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := service.SimulateLatency(r.Context(), maxDelay)
		if err != nil {
			slog.Debug("slow request abandoned", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"delayMs": d.Milliseconds()})
	}
}
