package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"readiness/internal/readiness/metrics"
	"readiness/internal/readiness/models"
	"readiness/internal/readiness/service"
	"readiness/pkg/platform/httputil"
	"readiness/pkg/requestcontext"
)

// Service defines the readiness operations exposed over HTTP.
type Service interface {
	Evaluate(ctx context.Context, id models.PersonID) (*models.PersonReadiness, error)
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	Deadlines(ctx context.Context) ([]models.DeadlineNotice, error)
	RecordCompletion(ctx context.Context, in service.RecordInput) error
}

// Handler wires readiness endpoints to the readiness service.
type Handler struct {
	service Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(service Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Register mounts readiness endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/readiness/dashboard", h.HandleDashboard)
	r.Get("/readiness/deadlines", h.HandleDeadlines)
	r.Get("/readiness/people/{personID}", h.HandleGetReadiness)
	r.Put("/readiness/people/{personID}/records", h.HandleRecordCompletion)
}

// HandleGetReadiness handles GET /readiness/people/{personID}.
func (h *Handler) HandleGetReadiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	personID, err := models.ParsePersonID(chi.URLParam(r, "personID"))
	if err != nil {
		h.logger.WarnContext(ctx, "invalid person id", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Evaluate(ctx, personID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromReadiness(result))
}

// HandleDashboard handles GET /readiness/dashboard.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Dashboard(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDashboard(result))
}

// HandleDeadlines handles GET /readiness/deadlines. Notices are computed, not
// published; publishing belongs to the background scanner.
func (h *Handler) HandleDeadlines(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	notices, err := h.service.Deadlines(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	asOf := models.DateOf(requestcontext.Now(ctx))
	httputil.WriteJSON(w, http.StatusOK, FromNotices(asOf, notices))
}

// HandleRecordCompletion handles PUT /readiness/people/{personID}/records and
// replies with the recomputed readiness.
func (h *Handler) HandleRecordCompletion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	personID, err := models.ParsePersonID(chi.URLParam(r, "personID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req RecordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode record request", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(ctx, "invalid record request", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.RecordCompletion(ctx, req.ToInput(personID)); err != nil {
		h.logger.ErrorContext(ctx, "record completion failed",
			"request_id", requestID,
			"person_id", personID.String(),
			"requirement", req.Requirement,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Evaluate(ctx, personID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "record completion applied",
		"request_id", requestID,
		"person_id", personID.String(),
		"requirement", req.Requirement,
		"overall", result.Overall.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromReadiness(result))
}
