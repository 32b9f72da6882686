package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	appErr "github.com/huduglue/watchtower/internal/errors"
	"github.com/huduglue/watchtower/internal/model"
)

const monitorColumns = `
	id, org_id, name, url,
	check_interval_minutes, enabled, ssl_warning_days, domain_warning_days,
	notify_on_down, notify_on_ssl_expiry, notify_on_domain_expiry,
	last_checked_at, last_status_code, last_response_time_ms, status, last_error,
	ssl_enabled, ssl_expires_at, ssl_issued_at, ssl_issuer, ssl_subject, ssl_serial, ssl_version,
	domain_expires_at, domain_registrar,
	created_at, updated_at
`

type PostgresMonitorStorage struct {
	db *pgxpool.Pool
}

func NewPostgresMonitorStorage(pool *pgxpool.Pool) MonitorStorage {
	return &PostgresMonitorStorage{pool}
}

func (ps *PostgresMonitorStorage) Ping(ctx context.Context) error {
	return ps.db.Ping(ctx)
}

type scannable interface {
	Scan(dest ...any) error
}

func scanMonitor(row scannable) (model.Monitor, error) {
	var m model.Monitor
	err := row.Scan(
		&m.ID, &m.OrgID, &m.Name, &m.URL,
		&m.CheckIntervalMinutes, &m.Enabled, &m.SSLWarningDays, &m.DomainWarningDays,
		&m.NotifyOnDown, &m.NotifyOnSSLExpiry, &m.NotifyOnDomainExpiry,
		&m.LastCheckedAt, &m.LastStatusCode, &m.LastResponseTimeMS, &m.Status, &m.LastError,
		&m.SSLEnabled, &m.SSLExpiresAt, &m.SSLIssuedAt, &m.SSLIssuer, &m.SSLSubject, &m.SSLSerial, &m.SSLVersion,
		&m.DomainExpiresAt, &m.DomainRegistrar,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func (ps *PostgresMonitorStorage) Save(ctx context.Context, m *model.Monitor) error {
	const query = `
		INSERT INTO monitors(
			id, org_id, name, url,
			check_interval_minutes, enabled, ssl_warning_days, domain_warning_days,
			notify_on_down, notify_on_ssl_expiry, notify_on_domain_expiry,
			status, last_error, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := ps.db.Exec(ctx, query,
		m.ID, m.OrgID, m.Name, m.URL,
		m.CheckIntervalMinutes, m.Enabled, m.SSLWarningDays, m.DomainWarningDays,
		m.NotifyOnDown, m.NotifyOnSSLExpiry, m.NotifyOnDomainExpiry,
		m.Status, m.LastError, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save monitor: %w", err)
	}
	return nil
}

func (ps *PostgresMonitorStorage) FindByID(ctx context.Context, id string) (model.Monitor, error) {
	query := `SELECT ` + monitorColumns + ` FROM monitors WHERE id = $1`

	m, err := scanMonitor(ps.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Monitor{}, fmt.Errorf("monitor %s: %w", id, appErr.ErrNotFound)
		}
		return model.Monitor{}, fmt.Errorf("find by id failed: %w", err)
	}
	return m, nil
}

func (ps *PostgresMonitorStorage) FindAllByOrgID(ctx context.Context, orgID string) ([]model.Monitor, error) {
	query := `SELECT ` + monitorColumns + ` FROM monitors WHERE org_id = $1 ORDER BY name`

	rows, err := ps.db.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return collectMonitors(rows)
}

// FindDue returns enabled monitors whose interval has elapsed since the
// last check (or that have never been checked). Not org-scoped: the
// background checker runs across all tenants.
func (ps *PostgresMonitorStorage) FindDue(ctx context.Context, now time.Time) ([]model.Monitor, error) {
	query := `SELECT ` + monitorColumns + `
		FROM monitors
		WHERE enabled
		  AND (last_checked_at IS NULL
		       OR last_checked_at + make_interval(mins => check_interval_minutes) <= $1)
	`

	rows, err := ps.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return collectMonitors(rows)
}

func collectMonitors(rows pgx.Rows) ([]model.Monitor, error) {
	var monitors []model.Monitor
	for rows.Next() {
		m, err := scanMonitor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		monitors = append(monitors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return monitors, nil
}

// Update rewrites the user-editable configuration fields.
func (ps *PostgresMonitorStorage) Update(ctx context.Context, m *model.Monitor) error {
	const query = `
		UPDATE monitors
		SET name = $1, url = $2,
		    check_interval_minutes = $3, enabled = $4,
		    ssl_warning_days = $5, domain_warning_days = $6,
		    notify_on_down = $7, notify_on_ssl_expiry = $8, notify_on_domain_expiry = $9,
		    updated_at = $10
		WHERE id = $11 AND org_id = $12
	`

	tag, err := ps.db.Exec(ctx, query,
		m.Name, m.URL,
		m.CheckIntervalMinutes, m.Enabled,
		m.SSLWarningDays, m.DomainWarningDays,
		m.NotifyOnDown, m.NotifyOnSSLExpiry, m.NotifyOnDomainExpiry,
		m.UpdatedAt,
		m.ID, m.OrgID,
	)
	if err != nil {
		return fmt.Errorf("failed to update monitor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("monitor %s: %w", m.ID, appErr.ErrNotFound)
	}
	return nil
}

// UpdateCheckResult writes the whole observed-state group plus SSL facts
// in one statement, whatever the check outcome was.
func (ps *PostgresMonitorStorage) UpdateCheckResult(ctx context.Context, m *model.Monitor) error {
	const query = `
		UPDATE monitors
		SET last_checked_at = $1, last_status_code = $2, last_response_time_ms = $3,
		    status = $4, last_error = $5,
		    ssl_enabled = $6, ssl_expires_at = $7, ssl_issued_at = $8,
		    ssl_issuer = $9, ssl_subject = $10, ssl_serial = $11, ssl_version = $12,
		    updated_at = $13
		WHERE id = $14
	`

	tag, err := ps.db.Exec(ctx, query,
		m.LastCheckedAt, m.LastStatusCode, m.LastResponseTimeMS,
		m.Status, m.LastError,
		m.SSLEnabled, m.SSLExpiresAt, m.SSLIssuedAt,
		m.SSLIssuer, m.SSLSubject, m.SSLSerial, m.SSLVersion,
		time.Now(),
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update check result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("monitor %s: %w", m.ID, appErr.ErrNotFound)
	}
	return nil
}

func (ps *PostgresMonitorStorage) Delete(ctx context.Context, id, orgID string) error {
	const query = `DELETE FROM monitors WHERE id = $1 AND org_id = $2`

	tag, err := ps.db.Exec(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete monitor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("monitor %s: %w", id, appErr.ErrNotFound)
	}
	return nil
}
