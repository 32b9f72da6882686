package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/huduglue/watchtower/internal/errors"
	"github.com/huduglue/watchtower/internal/model"
	"github.com/huduglue/watchtower/internal/service"
	"github.com/huduglue/watchtower/pkg/tracing"
)

// CheckRunner triggers a synchronous check of one monitor. Implemented
// by the checker; used by the scheduler-facing trigger endpoint.
type CheckRunner interface {
	Check(ctx context.Context, m *model.Monitor) error
}

type MonitorHandler struct {
	svc    service.MonitorService
	runner CheckRunner
	logger *slog.Logger
}

func NewMonitorHandler(svc service.MonitorService, runner CheckRunner, logger *slog.Logger) *MonitorHandler {
	return &MonitorHandler{svc: svc, runner: runner, logger: logger}
}

func (h *MonitorHandler) Create(w http.ResponseWriter, r *http.Request) {
	tracer := tracing.NewTracer(tracing.GetTracer("monitor-handler"))
	ctx, span := tracer.StartServerSpan(r.Context(), "Create")
	defer span.End()

	var m model.Monitor
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		h.logger.Warn("Invalid request body for Create")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.svc.Create(ctx, m)
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

func (h *MonitorHandler) List(w http.ResponseWriter, r *http.Request) {
	tracer := tracing.NewTracer(tracing.GetTracer("monitor-handler"))
	ctx, span := tracer.StartServerSpan(r.Context(), "List")
	defer span.End()

	monitors, err := h.svc.List(ctx)
	if err != nil {
		tracer.RecordError(span, err)
		h.logger.Error("List failed", slog.Any("error", err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(monitors)
}

func (h *MonitorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	tracer := tracing.NewTracer(tracing.GetTracer("monitor-handler"))
	ctx, span := tracer.StartServerSpan(r.Context(), "GetByID")
	defer span.End()

	id := chi.URLParam(r, "id")
	m, err := h.svc.GetByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			tracer.RecordError(span, err)
			h.logger.Error("GetByID failed", "id", id, "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(m)
}

func (h *MonitorHandler) Update(w http.ResponseWriter, r *http.Request) {
	tracer := tracing.NewTracer(tracing.GetTracer("monitor-handler"))
	ctx, span := tracer.StartServerSpan(r.Context(), "Update")
	defer span.End()

	var m model.Monitor
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	m.ID = chi.URLParam(r, "id")

	updated, err := h.svc.Update(ctx, m)
	if err != nil {
		if errors.IsNotFound(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else if errors.IsInvalid(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		} else {
			tracer.RecordError(span, err)
			h.logger.Error("Update failed", "id", m.ID, "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *MonitorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tracer := tracing.NewTracer(tracing.GetTracer("monitor-handler"))
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

// TriggerCheck runs one synchronous check of the monitor and returns the
// refreshed record. This is the scheduler-facing trigger; probe failures
// land in the monitor's status fields, not in the response code.
func (h *MonitorHandler) TriggerCheck(w http.ResponseWriter, r *http.Request) {
	tracer := tracing.NewTracer(tracing.GetTracer("monitor-handler"))
	ctx, span := tracer.StartServerSpan(r.Context(), "TriggerCheck")
	defer span.End()

	id := chi.URLParam(r, "id")
	m, err := h.svc.GetByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			tracer.RecordError(span, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := h.runner.Check(ctx, m); err != nil {
		tracer.RecordError(span, err)
		h.logger.Error("TriggerCheck failed to persist", "id", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(m)
}
