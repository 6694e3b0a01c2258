// Package repository persists the scoring configuration singleton.
package repository

import (
	"context"
	"errors"

	"pipeline_crm_backend/internal/scoring/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrConfigMissing = errors.New("scoring configuration not initialized")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetConfig returns the current criterion set together with its generation.
// The config row is share-locked for the duration of the read so a
// concurrent save can never expose a half-written criteria list.
func (r *Repository) GetConfig(ctx context.Context) (domain.Config, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Config{}, err
	}
	defer tx.Rollback(ctx)

	cfg, err := readConfig(ctx, tx)
	if err != nil {
		return domain.Config{}, err
	}

	return cfg, tx.Commit(ctx)
}

// ReplaceConfig swaps the whole criterion set in one transaction and bumps
// the generation. The exclusive lock on the config row serializes
// concurrent saves (last writer wins).
func (r *Repository) ReplaceConfig(ctx context.Context, criteria []domain.Criterion) (domain.Config, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Config{}, err
	}
	defer tx.Rollback(ctx)

	var generation int64
	err = tx.QueryRow(ctx, `
		UPDATE scoring_config
		SET generation = generation + 1, updated_at = now()
		WHERE id = 1
		RETURNING generation
	`).Scan(&generation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Config{}, ErrConfigMissing
		}
		return domain.Config{}, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM scoring_criteria`); err != nil {
		return domain.Config{}, err
	}

	for position, criterion := range criteria {
		_, err := tx.Exec(ctx, `
			INSERT INTO scoring_criteria (key, label, kind, weight, enabled, threshold, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, criterion.Key, criterion.Label, string(criterion.Kind), criterion.Weight, criterion.Enabled, criterion.Threshold, position)
		if err != nil {
			return domain.Config{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Config{}, err
	}

	return domain.Config{Generation: generation, Criteria: criteria}, nil
}

// EnsureDefault installs the given criterion set only when no criteria have
// been saved yet. Returns true when the defaults were installed.
func (r *Repository) EnsureDefault(ctx context.Context, criteria []domain.Criterion) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var generation int64
	err = tx.QueryRow(ctx, `SELECT generation FROM scoring_config WHERE id = 1 FOR UPDATE`).Scan(&generation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrConfigMissing
		}
		return false, err
	}

	var existing int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM scoring_criteria`).Scan(&existing); err != nil {
		return false, err
	}
	if existing > 0 {
		return false, tx.Commit(ctx)
	}

	for position, criterion := range criteria {
		_, err := tx.Exec(ctx, `
			INSERT INTO scoring_criteria (key, label, kind, weight, enabled, threshold, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, criterion.Key, criterion.Label, string(criterion.Kind), criterion.Weight, criterion.Enabled, criterion.Threshold, position)
		if err != nil {
			return false, err
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE scoring_config SET generation = generation + 1, updated_at = now() WHERE id = 1`); err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}

func readConfig(ctx context.Context, tx pgx.Tx) (domain.Config, error) {
	var cfg domain.Config
	err := tx.QueryRow(ctx, `SELECT generation FROM scoring_config WHERE id = 1 FOR SHARE`).Scan(&cfg.Generation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Config{}, ErrConfigMissing
		}
		return domain.Config{}, err
	}

	rows, err := tx.Query(ctx, `
		SELECT key, label, kind, weight, enabled, threshold
		FROM scoring_criteria
		ORDER BY position ASC
	`)
	if err != nil {
		return domain.Config{}, err
	}
	defer rows.Close()

	cfg.Criteria = make([]domain.Criterion, 0)
	for rows.Next() {
		var criterion domain.Criterion
		var kind string
		if err := rows.Scan(&criterion.Key, &criterion.Label, &kind, &criterion.Weight, &criterion.Enabled, &criterion.Threshold); err != nil {
			return domain.Config{}, err
		}
		criterion.Kind = domain.Kind(kind)
		cfg.Criteria = append(cfg.Criteria, criterion)
	}
	if rows.Err() != nil {
		return domain.Config{}, rows.Err()
	}

	return cfg, nil
}
