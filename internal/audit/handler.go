package audit

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/sentinel/internal/platform/httpx"
	"github.com/noah-isme/sentinel/internal/shared"
)

// Handler serves the audit log listing.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers audit log routes. Authentication is applied by the
// router; any authenticated caller may read the log.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listLogs)
}

type logView struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	ActorName  string    `json:"actorName,omitempty"`
	ActorEmail string    `json:"actorEmail,omitempty"`
	Action     string    `json:"action"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func (h *Handler) listLogs(w http.ResponseWriter, r *http.Request) {
	req := shared.ParsePageRequest(r.URL.Query())
	entries, meta, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list logs", slog.Any("error", err))
		httpx.RespondError(w, h.logger, err)
		return
	}
	views := make([]logView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, logView{
			ID:         entry.ID.String(),
			UserID:     entry.UserID.String(),
			ActorName:  entry.ActorName,
			ActorEmail: entry.ActorEmail,
			Action:     entry.Action,
			Details:    entry.Details,
			Timestamp:  entry.CreatedAt,
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"logs": views, "meta": meta})
}
