package users

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/noah-isme/sentinel/internal/platform/httpx"
	"github.com/noah-isme/sentinel/internal/rbac"
	"github.com/noah-isme/sentinel/internal/shared"
)

// Handler manages user management endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
	rbac      rbac.Middleware
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbac rbac.Middleware) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
		rbac:      rbac,
	}
}

// MountRoutes registers user routes. The router applies the authentication
// gate before any of these run; role gates are layered per group.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listUsers)
	r.Get("/{id}", h.getUser)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireRoles("admin", "manager"))
		r.Post("/", h.createUser)
		r.Put("/{id}", h.updateUser)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireRoles("admin"))
		r.Delete("/{id}", h.deleteUser)
	})
}

// userView is the outward user shape. The credential hash has no field
// here, so it cannot leak into a response.
type userView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Photo     string    `json:"photo,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserView(user User) userView {
	return userView{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		Photo:     user.Photo,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
	Status   string `json:"status" validate:"required,oneof=Active Inactive"`
	Photo    string `json:"photo"`
}

// updateUserRequest has no password field: credential changes are rejected
// on the general update path by never reading them from the body.
type updateUserRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Role   *string `json:"role"`
	Status *string `json:"status" validate:"omitempty,oneof=Active Inactive"`
	Photo  *string `json:"photo"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	req := shared.ParsePageRequest(r.URL.Query())
	items, meta, err := h.service.List(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	views := make([]userView, 0, len(items))
	for _, user := range items {
		views = append(views, toUserView(user))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": views, "meta": meta})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toUserView(user))
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := h.validate(req); errs != nil {
		httpx.ValidationErrors(w, errs)
		return
	}
	actor, _ := shared.IdentityFromContext(r.Context())
	user, err := h.service.Create(r.Context(), actor, CreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Status:   req.Status,
		Photo:    req.Photo,
	})
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"message": "User created",
		"user":    toUserView(user),
	})
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := h.validate(req); errs != nil {
		httpx.ValidationErrors(w, errs)
		return
	}
	actor, _ := shared.IdentityFromContext(r.Context())
	user, err := h.service.Update(r.Context(), actor, id, UpdateInput{
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Status: req.Status,
		Photo:  req.Photo,
	})
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"message": "User updated",
		"user":    toUserView(user),
	})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	actor, _ := shared.IdentityFromContext(r.Context())
	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// DashboardStats serves the dashboard counters. Mounted by the router under
// /dashboard/stats for any authenticated caller.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		h.logger.Error("dashboard stats", slog.Any("error", err))
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "user not found")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) validate(req any) []httpx.FieldError {
	if err := h.validator.Struct(req); err != nil {
		var errs []httpx.FieldError
		for _, fieldErr := range err.(validator.ValidationErrors) {
			errs = append(errs, httpx.FieldError{Field: fieldErr.Field(), Message: fieldErr.Error()})
		}
		return errs
	}
	return nil
}
