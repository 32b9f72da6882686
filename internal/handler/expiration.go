package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/huduglue/watchtower/internal/errors"
	"github.com/huduglue/watchtower/internal/model"
	"github.com/huduglue/watchtower/internal/service"
	"github.com/huduglue/watchtower/pkg/tracing"
)

type ExpirationHandler struct {
	svc    service.ExpirationService
	logger *slog.Logger
}

func NewExpirationHandler(svc service.ExpirationService, logger *slog.Logger) *ExpirationHandler {
	return &ExpirationHandler{svc: svc, logger: logger}
}

func (h *ExpirationHandler) Create(w http.ResponseWriter, r *http.Request) {
	tracer := tracing.NewTracer(tracing.GetTracer("expiration-handler"))
	ctx, span := tracer.StartServerSpan(r.Context(), "Create")
	defer span.End()

	var e model.Expiration
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.svc.Create(ctx, e)
	if err != nil {
		if errors.IsInvalid(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		} else {
			tracer.RecordError(span, err)
			h.logger.Error("Create failed", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ExpirationHandler) List(w http.ResponseWriter, r *http.Request) {
	tracer := tracing.NewTracer(tracing.GetTracer("expiration-handler"))
	ctx, span := tracer.StartServerSpan(r.Context(), "List")
	defer span.End()

	items, err := h.svc.List(ctx)
	if err != nil {
		tracer.RecordError(span, err)
		h.logger.Error("List failed", slog.Any("error", err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(items)
}

// ListUpcoming returns records expiring within ?days= (default 30).
func (h *ExpirationHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	tracer := tracing.NewTracer(tracing.GetTracer("expiration-handler"))
	ctx, span := tracer.StartServerSpan(r.Context(), "ListUpcoming")
	defer span.End()

	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 0 {
			http.Error(w, "invalid days parameter", http.StatusBadRequest)
			return
		}
		days = d
	}

	items, err := h.svc.ListUpcoming(ctx, days)
	if err != nil {
		tracer.RecordError(span, err)
		h.logger.Error("ListUpcoming failed", slog.Any("error", err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(items)
}

func (h *ExpirationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tracer := tracing.NewTracer(tracing.GetTracer("expiration-handler"))
	ctx, span := tracer.StartServerSpan(r.Context(), "Delete")
	defer span.End()

	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(ctx, id); err != nil {
		if errors.IsNotFound(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			tracer.RecordError(span, err)
			h.logger.Error("Delete failed", "id", id, "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
