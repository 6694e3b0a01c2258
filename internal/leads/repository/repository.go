// Package repository provides the lead projections consumed and written by
// the scoring and matching engines.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	matchingdomain "pipeline_crm_backend/internal/matching/domain"
	scoringdomain "pipeline_crm_backend/internal/scoring/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Lead is the engine-facing lead record.
type Lead struct {
	ID             uuid.UUID
	FirstName      string
	LastName       string
	Phone          *string
	Email          *string
	AssignedAgent  *uuid.UUID
	InterestType   *string
	BudgetMin      *float64
	BudgetMax      *float64
	PreferredAreas []string
	LastContactAt  *time.Time
	Score          *int
	LastScoredAt   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// snapshotColumns computes the scoring facts at read time so the evaluator
// stays clock-free. Day counts are derived from now() in the database.
const snapshotColumns = `
	l.id,
	(l.budget_min IS NOT NULL OR l.budget_max IS NOT NULL) AS has_budget,
	l.budget_max::float8,
	(cardinality(l.preferred_areas) > 0) AS has_preferred_area,
	(coalesce(l.phone, '') <> '') AS has_phone,
	(coalesce(l.email, '') <> '') AS has_email,
	(l.assigned_agent_id IS NOT NULL) AS has_assigned_agent,
	(coalesce(l.interest_type, '') <> '') AS interest_declared,
	(extract(epoch FROM (now() - l.last_contact_at)) / 86400.0)::float8 AS days_since_contact,
	(extract(epoch FROM (now() - l.created_at)) / 86400.0)::float8 AS days_since_created,
	(SELECT count(*) FROM lead_notes n WHERE n.lead_id = l.id)::int AS note_count,
	l.score,
	l.last_scored_at`

// GetSnapshot loads the scoring projection for one lead.
func (r *Repository) GetSnapshot(ctx context.Context, leadID uuid.UUID) (scoringdomain.LeadSnapshot, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+snapshotColumns+` FROM leads l WHERE l.id = $1`, leadID)
	snapshot, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return scoringdomain.LeadSnapshot{}, ErrNotFound
		}
		return scoringdomain.LeadSnapshot{}, err
	}
	return snapshot, nil
}

// ListSnapshots loads the scoring projection for the whole lead population.
func (r *Repository) ListSnapshots(ctx context.Context) ([]scoringdomain.LeadSnapshot, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+snapshotColumns+` FROM leads l ORDER BY l.created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := make([]scoringdomain.LeadSnapshot, 0)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return snapshots, nil
}

// UpdateScore persists a newly computed score. Score and last_scored_at are
// written in the same statement so they stay consistent.
func (r *Repository) UpdateScore(ctx context.Context, leadID uuid.UUID, score int, scoredAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET score = $2, last_scored_at = $3, updated_at = now()
		WHERE id = $1
	`, leadID, score, scoredAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetPreferences loads the matching input stated by the lead.
func (r *Repository) GetPreferences(ctx context.Context, leadID uuid.UUID) (matchingdomain.LeadPreferences, error) {
	var prefs matchingdomain.LeadPreferences
	var interest *string
	err := r.pool.QueryRow(ctx, `
		SELECT interest_type, budget_min::float8, budget_max::float8, preferred_areas
		FROM leads WHERE id = $1
	`, leadID).Scan(&interest, &prefs.BudgetMin, &prefs.BudgetMax, &prefs.PreferredAreas)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return matchingdomain.LeadPreferences{}, ErrNotFound
		}
		return matchingdomain.LeadPreferences{}, err
	}
	if interest != nil {
		prefs.InterestType = *interest
	}
	return prefs, nil
}

// AttachProperty links a property to a lead. Re-attaching an existing pair
// updates the match type instead of failing.
func (r *Repository) AttachProperty(ctx context.Context, leadID, propertyID uuid.UUID, matchType string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lead_properties (lead_id, property_id, match_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (lead_id, property_id)
		DO UPDATE SET match_type = EXCLUDED.match_type, updated_at = now()
	`, leadID, propertyID, matchType)
	return err
}

// ListFilter narrows the lead list. Unscored selects leads whose score is
// null; it is a distinct filter from ScoreMin/ScoreMax = 0 and wins over
// them when set.
type ListFilter struct {
	ScoreMin *int
	ScoreMax *int
	Unscored bool
	Limit    int
	Offset   int
}

// List returns leads matching the filter, best scores first, unscored last.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Lead, error) {
	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 4)

	if filter.Unscored {
		conditions = append(conditions, "l.score IS NULL")
	} else {
		if filter.ScoreMin != nil {
			args = append(args, *filter.ScoreMin)
			conditions = append(conditions, fmt.Sprintf("l.score >= $%d", len(args)))
		}
		if filter.ScoreMax != nil {
			args = append(args, *filter.ScoreMax)
			conditions = append(conditions, fmt.Sprintf("l.score <= $%d", len(args)))
		}
	}

	query := `
		SELECT l.id, l.first_name, l.last_name, l.phone, l.email, l.assigned_agent_id,
			l.interest_type, l.budget_min::float8, l.budget_max::float8, l.preferred_areas,
			l.last_contact_at, l.score, l.last_scored_at, l.created_at, l.updated_at
		FROM leads l`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY l.score DESC NULLS LAST, l.created_at DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		var lead Lead
		if err := rows.Scan(
			&lead.ID, &lead.FirstName, &lead.LastName, &lead.Phone, &lead.Email, &lead.AssignedAgent,
			&lead.InterestType, &lead.BudgetMin, &lead.BudgetMax, &lead.PreferredAreas,
			&lead.LastContactAt, &lead.Score, &lead.LastScoredAt, &lead.CreatedAt, &lead.UpdatedAt,
		); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return leads, nil
}

// GetByID returns one lead record.
func (r *Repository) GetByID(ctx context.Context, leadID uuid.UUID) (Lead, error) {
	var lead Lead
	err := r.pool.QueryRow(ctx, `
		SELECT l.id, l.first_name, l.last_name, l.phone, l.email, l.assigned_agent_id,
			l.interest_type, l.budget_min::float8, l.budget_max::float8, l.preferred_areas,
			l.last_contact_at, l.score, l.last_scored_at, l.created_at, l.updated_at
		FROM leads l WHERE l.id = $1
	`, leadID).Scan(
		&lead.ID, &lead.FirstName, &lead.LastName, &lead.Phone, &lead.Email, &lead.AssignedAgent,
		&lead.InterestType, &lead.BudgetMin, &lead.BudgetMax, &lead.PreferredAreas,
		&lead.LastContactAt, &lead.Score, &lead.LastScoredAt, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSnapshot(row rowScanner) (scoringdomain.LeadSnapshot, error) {
	var snapshot scoringdomain.LeadSnapshot
	err := row.Scan(
		&snapshot.ID,
		&snapshot.HasBudget,
		&snapshot.BudgetMax,
		&snapshot.HasPreferredArea,
		&snapshot.HasPhone,
		&snapshot.HasEmail,
		&snapshot.HasAssignedAgent,
		&snapshot.InterestDeclared,
		&snapshot.DaysSinceContact,
		&snapshot.DaysSinceCreated,
		&snapshot.NoteCount,
		&snapshot.Score,
		&snapshot.LastScoredAt,
	)
	return snapshot, err
}
