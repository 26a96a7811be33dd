package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kycbridge/internal/lead"
	"kycbridge/internal/platform/middleware"
	"kycbridge/pkg/sentinel"
)

// Service defines the lead operations the HTTP layer depends on.
type Service interface {
	Create(ctx context.Context, req lead.CreateRequest) (*lead.Lead, error)
	ByExternalID(ctx context.Context, externalUserID string) (*lead.Lead, error)
	ByEmail(ctx context.Context, email string) (*lead.Lead, error)
	ByPhone(ctx context.Context, phone string) (*lead.Lead, error)
	List(ctx context.Context) ([]*lead.Lead, error)
}

// Handler exposes the lead intake and lookup endpoints.
type Handler struct {
	logger       *slog.Logger
	leads        Service
	jwtValidator middleware.JWTValidator
}

// New creates a new lead Handler.
func New(leads Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		leads:        leads,
		jwtValidator: jwtValidator,
	}
}

// Register registers the lead routes with the chi router. All routes require
// an operator token.
func (h *Handler) Register(r chi.Router) {
	leadRouter := chi.NewRouter()
	leadRouter.Use(middleware.Recovery(h.logger))
	leadRouter.Use(middleware.RequestID)
	leadRouter.Use(middleware.Logger(h.logger))
	leadRouter.Use(middleware.Timeout(30 * time.Second))
	leadRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
	leadRouter.Post("/", h.handleCreate)
	leadRouter.Get("/", h.handleList)
	leadRouter.Get("/{externalUserID}", h.handleByExternalID)
	leadRouter.Get("/by-email/{email}", h.handleByEmail)
	leadRouter.Get("/by-phone/{phone}", h.handleByPhone)

	r.Mount("/leads", leadRouter)
}

// envelope mirrors the response shape the partner-facing tooling expects.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req lead.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.leads.Create(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, lead.ErrValidation), errors.Is(err, sentinel.ErrDuplicate):
			h.logger.WarnContext(ctx, "lead rejected",
				"request_id", middleware.GetRequestID(ctx),
				"error", err.Error(),
			)
			h.writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.ErrorContext(ctx, "failed to create lead",
				"request_id", middleware.GetRequestID(ctx),
				"error", err.Error(),
			)
			h.writeError(w, http.StatusInternalServerError, "failed to create lead")
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, envelope{Status: "SUCCESS", Data: l})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	all, err := h.leads.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list leads", "error", err.Error())
		h.writeError(w, http.StatusInternalServerError, "failed to list leads")
		return
	}
	h.writeJSON(w, http.StatusOK, envelope{Status: "SUCCESS", Data: all})
}

func (h *Handler) handleByExternalID(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, func(ctx context.Context) (*lead.Lead, error) {
		return h.leads.ByExternalID(ctx, chi.URLParam(r, "externalUserID"))
	})
}

func (h *Handler) handleByEmail(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, func(ctx context.Context) (*lead.Lead, error) {
		return h.leads.ByEmail(ctx, chi.URLParam(r, "email"))
	})
}

func (h *Handler) handleByPhone(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, func(ctx context.Context) (*lead.Lead, error) {
		return h.leads.ByPhone(ctx, chi.URLParam(r, "phone"))
	})
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, find func(context.Context) (*lead.Lead, error)) {
	ctx := r.Context()
	l, err := find(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		h.logger.ErrorContext(ctx, "lead lookup failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		h.writeError(w, http.StatusInternalServerError, "lead lookup failed")
		return
	}
	h.writeJSON(w, http.StatusOK, envelope{Status: "SUCCESS", Data: l})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err.Error())
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, envelope{Status: "ERROR", Message: message})
}
