package storage

import (
	"context"
	"time"

	"github.com/huduglue/watchtower/internal/model"
)

// MonitorStorage persists monitor records. UpdateCheckResult writes the
// whole observed-state group (plus SSL facts) in a single statement so a
// monitor's status is never partially updated.
type MonitorStorage interface {
	Ping(ctx context.Context) error
	Save(ctx context.Context, m *model.Monitor) error
	FindByID(ctx context.Context, id string) (model.Monitor, error)
	FindAllByOrgID(ctx context.Context, orgID string) ([]model.Monitor, error)
	FindDue(ctx context.Context, now time.Time) ([]model.Monitor, error)
	Update(ctx context.Context, m *model.Monitor) error
	UpdateCheckResult(ctx context.Context, m *model.Monitor) error
	Delete(ctx context.Context, id, orgID string) error
}

// ExpirationStorage persists generic expiration records.
type ExpirationStorage interface {
	Save(ctx context.Context, e *model.Expiration) error
	FindByID(ctx context.Context, id string) (model.Expiration, error)
	FindAllByOrgID(ctx context.Context, orgID string) ([]model.Expiration, error)
	FindUpcoming(ctx context.Context, orgID string, before time.Time) ([]model.Expiration, error)
	Delete(ctx context.Context, id, orgID string) error
}
