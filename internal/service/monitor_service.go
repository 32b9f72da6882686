package service

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	appErr "github.com/huduglue/watchtower/internal/errors"
	"github.com/huduglue/watchtower/internal/model"
	"github.com/huduglue/watchtower/internal/storage"
)

func getOrgIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(model.ContextOrgIDKey)
	if val == nil {
		return "", appErr.NewInternal("context missing org_id - verify auth middleware runs before service methods")
	}

	orgID, ok := val.(string)
	if !ok || orgID == "" {
		return "", appErr.NewInternal("invalid org_id in context - got %T (%v)", val, val)
	}
	return orgID, nil
}

// MonitorService is the org-scoped application layer over monitor
// storage. ListDue and RecordCheck are the scheduler-facing methods used
// by the background checker and are not org-scoped.
type MonitorService interface {
	Create(ctx context.Context, m model.Monitor) (*model.Monitor, error)
	GetByID(ctx context.Context, id string) (*model.Monitor, error)
	List(ctx context.Context) ([]model.Monitor, error)
	Update(ctx context.Context, m model.Monitor) (*model.Monitor, error)
	Delete(ctx context.Context, id string) error

	ListDue(ctx context.Context, now time.Time) ([]model.Monitor, error)
	RecordCheck(ctx context.Context, m *model.Monitor) error
}

type monitorService struct {
	store  storage.MonitorStorage
	logger *slog.Logger
	tracer trace.Tracer
}

func NewMonitorService(store storage.MonitorStorage, logger *slog.Logger) MonitorService {
	l := logger.With("layer", "service", "component", "monitorService")
	return &monitorService{
		store:  store,
		logger: l,
		tracer: otel.Tracer("monitor-service"),
	}
}

func (s *monitorService) Create(ctx context.Context, m model.Monitor) (*model.Monitor, error) {
	ctx, span := s.tracer.Start(ctx, "Create")
	defer span.End()

	orgID, err := getOrgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	m.OrgID = orgID

	if err := validateMonitor(&m); err != nil {
		s.logger.Warn("invalid monitor", slog.String("url", m.URL), slog.String("error", err.Error()))
		return nil, err
	}

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.Status = model.StatusUnknown
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.store.Save(ctx, &m); err != nil {
		s.logger.Error("failed to create monitor", slog.String("id", m.ID), slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, appErr.NewInternal("failed to create monitor: %v", err)
	}

	span.SetAttributes(attribute.String("monitor.id", m.ID))
	s.logger.Info("Create succeeded", slog.String("id", m.ID), slog.String("org_id", orgID))
	return &m, nil
}

func (s *monitorService) GetByID(ctx context.Context, id string) (*model.Monitor, error) {
	ctx, span := s.tracer.Start(ctx, "GetByID")
	defer span.End()
	span.SetAttributes(attribute.String("monitor.id", id))

	orgID, err := getOrgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	m, err := s.store.FindByID(ctx, id)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.NewNotFound("monitor with ID %s", id)
		}
		s.logger.Error("failed to fetch monitor", slog.String("id", id), slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, appErr.NewInternal("failed to fetch monitor: %v", err)
	}

	// Monitors from other organizations are reported as missing, not
	// forbidden.
	if m.OrgID != orgID {
		s.logger.Warn("monitor access denied",
			slog.String("id", id),
			slog.String("requested_by", orgID),
			slog.String("owned_by", m.OrgID))
		return nil, appErr.NewNotFound("monitor with ID %s", id)
	}

	return &m, nil
}

func (s *monitorService) List(ctx context.Context) ([]model.Monitor, error) {
	ctx, span := s.tracer.Start(ctx, "List")
	defer span.End()

	orgID, err := getOrgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	monitors, err := s.store.FindAllByOrgID(ctx, orgID)
	if err != nil {
		s.logger.Error("failed to fetch monitors",
			slog.String("org_id", orgID),
			slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, appErr.NewInternal("failed to fetch monitors: %v", err)
	}

	span.SetAttributes(attribute.Int("monitor.count", len(monitors)))
	return monitors, nil
}

func (s *monitorService) Update(ctx context.Context, m model.Monitor) (*model.Monitor, error) {
	ctx, span := s.tracer.Start(ctx, "Update")
	defer span.End()
	span.SetAttributes(attribute.String("monitor.id", m.ID))

	orgID, err := getOrgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	m.OrgID = orgID

	if err := validateMonitor(&m); err != nil {
		return nil, err
	}
	m.UpdatedAt = time.Now()

	if err := s.store.Update(ctx, &m); err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.NewNotFound("monitor with ID %s", m.ID)
		}
		s.logger.Error("failed to update monitor", slog.String("id", m.ID), slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, appErr.NewInternal("failed to update monitor: %v", err)
	}

	return s.GetByID(ctx, m.ID)
}

func (s *monitorService) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "Delete")
	defer span.End()
	span.SetAttributes(attribute.String("monitor.id", id))

	orgID, err := getOrgIDFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id, orgID); err != nil {
		if appErr.IsNotFound(err) {
			return appErr.NewNotFound("monitor with ID %s", id)
		}
		s.logger.Error("failed to delete monitor", slog.String("id", id), slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return appErr.NewInternal("failed to delete monitor: %v", err)
	}

	s.logger.Info("Delete succeeded", slog.String("id", id), slog.String("org_id", orgID))
	return nil
}

// ListDue fetches monitors whose check interval has elapsed. Called by
// the background checker across all organizations.
func (s *monitorService) ListDue(ctx context.Context, now time.Time) ([]model.Monitor, error) {
	ctx, span := s.tracer.Start(ctx, "ListDue")
	defer span.End()

	monitors, err := s.store.FindDue(ctx, now)
	if err != nil {
		s.logger.Error("failed to fetch due monitors", slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, appErr.NewInternal("failed to fetch due monitors: %v", err)
	}

	span.SetAttributes(attribute.Int("monitor.due", len(monitors)))
	return monitors, nil
}

// RecordCheck persists the observed state written by a probe. The write
// covers the whole observed-state group at once.
func (s *monitorService) RecordCheck(ctx context.Context, m *model.Monitor) error {
	ctx, span := s.tracer.Start(ctx, "RecordCheck")
	defer span.End()
	span.SetAttributes(
		attribute.String("monitor.id", m.ID),
		attribute.String("monitor.status", m.Status),
	)

	if err := s.store.UpdateCheckResult(ctx, m); err != nil {
		if appErr.IsNotFound(err) {
			s.logger.Warn("monitor vanished before check write", slog.String("id", m.ID))
			return appErr.NewNotFound("monitor with ID %s", m.ID)
		}
		s.logger.Error("failed to record check", slog.String("id", m.ID), slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return appErr.NewInternal("failed to record check: %v", err)
	}
	return nil
}

func validateMonitor(m *model.Monitor) error {
	if m.Name == "" {
		return appErr.NewInvalid("monitor requires a name")
	}
	u, err := url.Parse(m.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return appErr.NewInvalid("monitor requires an http or https URL")
	}
	if m.CheckIntervalMinutes <= 0 {
		m.CheckIntervalMinutes = 5
	}
	if m.SSLWarningDays <= 0 {
		m.SSLWarningDays = 30
	}
	if m.DomainWarningDays <= 0 {
		m.DomainWarningDays = 30
	}
	return nil
}
