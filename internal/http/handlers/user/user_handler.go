package user

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appcommon "usersvc/internal/app/common"
	appuser "usersvc/internal/app/user"
	"usersvc/internal/http/binding"
	"usersvc/internal/http/responses"
	"usersvc/internal/logging"
)

type Handler struct {
	service appuser.Service
	logger  logging.Logger
}

func NewHandler(service appuser.Service, logger logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "user_http_handler"),
	}
}

// List GET /users?page=&limit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, ok := queryInt(w, r, "page")
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	users, err := h.service.GetAll(ctx, appuser.ListUsersInput{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		h.writeServiceError(w, err, "failed to list users")
		return
	}

	responses.WriteJSON(w, http.StatusOK, users)
}

// Create POST /users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateUserRequest
	if !binding.BindAndValidate(w, r, &req) {
		return
	}

	u, err := h.service.Create(ctx, req.toInput())
	if err != nil {
		h.writeServiceError(w, err, "failed to create user")
		return
	}

	responses.WriteJSON(w, http.StatusCreated, u)
}

// GetByID GET /users/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	u, err := h.service.Get(ctx, id)
	if err != nil {
		h.writeServiceError(w, err, "failed to get user", "id", id)
		return
	}

	responses.WriteJSON(w, http.StatusOK, u)
}

// Update PATCH /users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !binding.BindAndValidate(w, r, &req) {
		return
	}

	u, err := h.service.Update(ctx, id, req.toInput())
	if err != nil {
		h.writeServiceError(w, err, "failed to update user", "id", id)
		return
	}

	responses.WriteJSON(w, http.StatusOK, u)
}

// Delete DELETE /users/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.writeServiceError(w, err, "failed to delete user", "id", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps the service error kinds to status codes. The cause of
// a storage failure is logged but never sent to the client.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, msg string, kv ...any) {
	switch appcommon.KindOf(err) {
	case appcommon.KindNotFound:
		responses.WriteError(w, http.StatusNotFound, appcommon.PublicMessage(err))
	default:
		h.logger.Error(msg, append(kv, "error", err)...)
		responses.WriteError(w, http.StatusInternalServerError, appcommon.PublicMessage(err))
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		responses.WriteBadRequest(w, "invalid user id")
		return 0, false
	}
	return id, true
}

// queryInt returns 0 for an absent parameter so the service applies its default.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		responses.WriteBadRequest(w, "invalid "+name)
		return 0, false
	}
	return v, true
}
