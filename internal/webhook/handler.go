package webhook

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kycbridge/internal/platform/metrics"
	"kycbridge/internal/platform/middleware"
)

// Processor is the routing capability the HTTP layer depends on.
type Processor interface {
	Process(ctx context.Context, e Event) (Outcome, error)
}

// Handler receives provider webhook callbacks. The route is intentionally
// unauthenticated: the provider does not carry our operator tokens, and every
// event is validated against stored lead state before it has any effect.
type Handler struct {
	logger  *slog.Logger
	service Processor
	metrics *metrics.Metrics
}

func NewHandler(service Processor, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
		metrics: m,
	}
}

// Register registers the webhook route with the chi router.
func (h *Handler) Register(r chi.Router) {
	webhookRouter := chi.NewRouter()
	webhookRouter.Use(middleware.Recovery(h.logger))
	webhookRouter.Use(middleware.RequestID)
	webhookRouter.Use(middleware.Logger(h.logger))
	webhookRouter.Use(middleware.Timeout(60 * time.Second))
	webhookRouter.Post("/sumsub", h.handleEvent)

	r.Mount("/webhooks", webhookRouter)
}

// Plain-text acknowledgement bodies. The provider only inspects the status
// code, the body is for humans reading its delivery log.
const (
	ackOK              = "OK"
	ackIgnored         = "Ignored"
	ackMissingExternal = "Missing externalUserId"
	ackLeadNotFound    = "Lead not found"
)

func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.metrics != nil {
		h.metrics.IncrementWebhooksReceived()
	}

	var event Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		h.logger.WarnContext(ctx, "undecodable webhook body", "error", err)
		writeText(w, http.StatusBadRequest, "Invalid body")
		return
	}

	outcome, err := h.service.Process(ctx, event)
	if err != nil {
		h.logger.ErrorContext(ctx, "webhook processing failed",
			"external_user_id", event.ExternalUserID,
			"type", event.Type,
			"error", err,
		)
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	switch outcome {
	case OutcomeIgnoredLevel:
		writeText(w, http.StatusOK, ackIgnored)
	case OutcomeMissingExternalID:
		writeText(w, http.StatusOK, ackMissingExternal)
	case OutcomeLeadNotFound:
		writeText(w, http.StatusOK, ackLeadNotFound)
	default:
		writeText(w, http.StatusOK, ackOK)
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
