package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/user-records/internal/domain"
	"github.com/msomdec/user-records/internal/service"
	"github.com/msomdec/user-records/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

const (
	defaultGenerateCount = 100
	maxUserBodyBytes     = 1 << 20 // 1MB
)

// UserHandler handles synthetic user generation and stored user records.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// HandleGenerate renders generated users as an HTML list.
// GET /users/generate?count=N
func (h *UserHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	count, err := queryInt(r, "count", defaultGenerateCount)
	if err != nil {
		writeServiceError(w, "parse count", err)
		return
	}

	html, err := h.users.GenerateHTML(r.Context(), count)
	if err != nil {
		writeServiceError(w, "generate users", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, html)
}

// HandleGenerateJSON returns generated users wrapped in a UsersResponse.
// GET /users/generate.json?amount=N
func (h *UserHandler) HandleGenerateJSON(w http.ResponseWriter, r *http.Request) {
	amount, err := queryInt(r, "amount", defaultGenerateCount)
	if err != nil {
		writeServiceError(w, "parse amount", err)
		return
	}

	resp, err := h.users.GenerateResponse(amount)
	if err != nil {
		writeServiceError(w, "generate users", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleStream streams generated users as datastar element patches appended
// to #users, one event per user as it is generated.
// GET /users/stream?count=N
func (h *UserHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	count, err := queryInt(r, "count", defaultGenerateCount)
	if err != nil {
		writeServiceError(w, "parse count", err)
		return
	}

	users, err := h.users.Generate(count)
	if err != nil {
		writeServiceError(w, "generate users", err)
		return
	}

	sse := datastar.NewSSE(w, r)
	for u := range users {
		err := sse.PatchElementTempl(
			view.UserItem(u),
			datastar.WithSelectorID("users"),
			datastar.WithModeAppend(),
		)
		if err != nil {
			slog.Debug("user stream closed", "error", err)
			return
		}
	}
}

// HandleList renders every stored user as an HTML list.
// GET /users
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	html, err := h.users.ListHTML(r.Context())
	if err != nil {
		writeServiceError(w, "list users", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, html)
}

// HandleCreate persists a user from a JSON body and returns it with its ID.
// POST /users
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUserBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	user, err := h.users.CreateFromJSON(r.Context(), body)
	if err != nil {
		// A missing row right after insert is a consistency fault, not a
		// client error.
		if errors.Is(err, domain.ErrNotFound) {
			slog.Error("create user", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeServiceError(w, "create user", err)
		return
	}

	w.Header().Set("Location", "/users/"+strconv.FormatInt(user.ID, 10))
	writeJSON(w, http.StatusCreated, user)
}

// HandleGet returns one stored user.
// GET /users/{id}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, "get user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
