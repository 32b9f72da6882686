package service

import (
	"context"
	"log/slog"
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

type ExpirationService interface {
	Create(ctx context.Context, e model.Expiration) (*model.Expiration, error)
	List(ctx context.Context) ([]model.Expiration, error)
	ListUpcoming(ctx context.Context, days int) ([]model.Expiration, error)
	Delete(ctx context.Context, id string) error
}

type expirationService struct {
	store  storage.ExpirationStorage
	logger *slog.Logger
	tracer trace.Tracer
}

func NewExpirationService(store storage.ExpirationStorage, logger *slog.Logger) ExpirationService {
	l := logger.With("layer", "service", "component", "expirationService")
	return &expirationService{
		store:  store,
		logger: l,
		tracer: otel.Tracer("expiration-service"),
	}
}

func (s *expirationService) Create(ctx context.Context, e model.Expiration) (*model.Expiration, error) {
	ctx, span := s.tracer.Start(ctx, "Create")
	defer span.End()

	orgID, err := getOrgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	e.OrgID = orgID

	if e.Name == "" || e.ExpiresAt.IsZero() {
		return nil, appErr.NewInvalid("expiration requires a name and an expiry timestamp")
	}
	if e.WarningDays <= 0 {
		e.WarningDays = 30
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := s.store.Save(ctx, &e); err != nil {
		s.logger.Error("failed to create expiration", slog.String("id", e.ID), slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, appErr.NewInternal("failed to create expiration: %v", err)
	}

	span.SetAttributes(attribute.String("expiration.id", e.ID))
	return &e, nil
}

func (s *expirationService) List(ctx context.Context) ([]model.Expiration, error) {
	ctx, span := s.tracer.Start(ctx, "List")
	defer span.End()

	orgID, err := getOrgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.store.FindAllByOrgID(ctx, orgID)
	if err != nil {
		s.logger.Error("failed to fetch expirations", slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, appErr.NewInternal("failed to fetch expirations: %v", err)
	}
	return items, nil
}

// ListUpcoming returns records expiring within the given number of days.
func (s *expirationService) ListUpcoming(ctx context.Context, days int) ([]model.Expiration, error) {
	ctx, span := s.tracer.Start(ctx, "ListUpcoming")
	defer span.End()
	span.SetAttributes(attribute.Int("expiration.window_days", days))

	orgID, err := getOrgIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	before := time.Now().AddDate(0, 0, days)
	items, err := s.store.FindUpcoming(ctx, orgID, before)
	if err != nil {
		s.logger.Error("failed to fetch upcoming expirations", slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, appErr.NewInternal("failed to fetch upcoming expirations: %v", err)
	}
	return items, nil
}

func (s *expirationService) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "Delete")
	defer span.End()
	span.SetAttributes(attribute.String("expiration.id", id))

	orgID, err := getOrgIDFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id, orgID); err != nil {
		if appErr.IsNotFound(err) {
			return appErr.NewNotFound("expiration with ID %s", id)
		}
		s.logger.Error("failed to delete expiration", slog.String("id", id), slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return appErr.NewInternal("failed to delete expiration: %v", err)
	}
	return nil
}
