package health

import (
	"context"
	"net/http"
	"time"

	"usersvc/internal/http/responses"
	"usersvc/internal/logging"
)

const (
	statusOK       = "ok"
	statusDown     = "down"
	statusDisabled = "disabled"

	pingTimeout = 2 * time.Second
)

// Pinger is satisfied by db.Client and cache.RedisClient.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Response struct {
	Status string `json:"status"`
	DB     string `json:"db"`
	Redis  string `json:"redis"`
}

type Handler struct {
	db     Pinger
	cache  Pinger
	logger logging.Logger
}

// NewHandler builds the health handler. A nil cache is reported as disabled.
func NewHandler(db Pinger, cache Pinger, logger logging.Logger) *Handler {
	return &Handler{
		db:     db,
		cache:  cache,
		logger: logger.With("component", "health_handler"),
	}
}

// Check GET /health
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	resp := Response{
		Status: statusOK,
		DB:     h.ping(ctx, "db", h.db),
		Redis:  h.ping(ctx, "redis", h.cache),
	}

	status := http.StatusOK
	if resp.DB == statusDown || resp.Redis == statusDown {
		resp.Status = statusDown
		status = http.StatusServiceUnavailable
	}

	responses.WriteJSON(w, status, resp)
}

func (h *Handler) ping(ctx context.Context, name string, p Pinger) string {
	if p == nil {
		return statusDisabled
	}
	if err := p.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", "dependency", name, "error", err)
		return statusDown
	}
	return statusOK
}
