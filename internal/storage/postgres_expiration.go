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

const expirationColumns = `id, org_id, name, kind, expires_at, warning_days, created_at, updated_at`

type PostgresExpirationStorage struct {
	db *pgxpool.Pool
}

func NewPostgresExpirationStorage(pool *pgxpool.Pool) ExpirationStorage {
	return &PostgresExpirationStorage{pool}
}

func scanExpiration(row scannable) (model.Expiration, error) {
	var e model.Expiration
	err := row.Scan(
		&e.ID, &e.OrgID, &e.Name, &e.Kind,
		&e.ExpiresAt, &e.WarningDays,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (ps *PostgresExpirationStorage) Save(ctx context.Context, e *model.Expiration) error {
	const query = `
		INSERT INTO expirations(id, org_id, name, kind, expires_at, warning_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := ps.db.Exec(ctx, query,
		e.ID, e.OrgID, e.Name, e.Kind, e.ExpiresAt, e.WarningDays, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save expiration: %w", err)
	}
	return nil
}

func (ps *PostgresExpirationStorage) FindByID(ctx context.Context, id string) (model.Expiration, error) {
	query := `SELECT ` + expirationColumns + ` FROM expirations WHERE id = $1`

	e, err := scanExpiration(ps.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Expiration{}, fmt.Errorf("expiration %s: %w", id, appErr.ErrNotFound)
		}
		return model.Expiration{}, fmt.Errorf("find by id failed: %w", err)
	}
	return e, nil
}

func (ps *PostgresExpirationStorage) FindAllByOrgID(ctx context.Context, orgID string) ([]model.Expiration, error) {
	query := `SELECT ` + expirationColumns + ` FROM expirations WHERE org_id = $1 ORDER BY expires_at`

	rows, err := ps.db.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return collectExpirations(rows)
}

func (ps *PostgresExpirationStorage) FindUpcoming(ctx context.Context, orgID string, before time.Time) ([]model.Expiration, error) {
	query := `SELECT ` + expirationColumns + `
		FROM expirations
		WHERE org_id = $1 AND expires_at <= $2
		ORDER BY expires_at
	`

	rows, err := ps.db.Query(ctx, query, orgID, before)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return collectExpirations(rows)
}

func collectExpirations(rows pgx.Rows) ([]model.Expiration, error) {
	var items []model.Expiration
	for rows.Next() {
		e, err := scanExpiration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return items, nil
}

func (ps *PostgresExpirationStorage) Delete(ctx context.Context, id, orgID string) error {
	const query = `DELETE FROM expirations WHERE id = $1 AND org_id = $2`

	tag, err := ps.db.Exec(ctx, query, id, orgID)
	if err != nil {
		return fmt.Errorf("failed to delete expiration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expiration %s: %w", id, appErr.ErrNotFound)
	}
	return nil
}
