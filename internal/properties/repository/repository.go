// Package repository provides the property projection consumed by the
// matching engine.
package repository

import (
	"context"
	"errors"

	"pipeline_crm_backend/internal/matching/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("property not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const propertyColumns = `
	p.id, p.title, p.price::float8, p.currency, p.location, p.listing_type,
	p.property_type, p.status, p.bedrooms, p.area_sqm::float8, p.created_at`

// ListCandidates returns every property the ranker should consider. Archived
// properties are excluded; soft-available and terminal statuses stay in, the
// availability facet grades them.
func (r *Repository) ListCandidates(ctx context.Context) ([]domain.Property, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+propertyColumns+`
		FROM properties p
		WHERE p.archived_at IS NULL
		ORDER BY p.created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := make([]domain.Property, 0)
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return properties, nil
}

// GetByID returns one property.
func (r *Repository) GetByID(ctx context.Context, propertyID uuid.UUID) (domain.Property, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties p WHERE p.id = $1`, propertyID)
	property, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Property{}, ErrNotFound
		}
		return domain.Property{}, err
	}
	return property, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner) (domain.Property, error) {
	var property domain.Property
	err := row.Scan(
		&property.ID,
		&property.Title,
		&property.Price,
		&property.Currency,
		&property.Location,
		&property.ListingType,
		&property.Type,
		&property.Status,
		&property.Bedrooms,
		&property.Area,
		&property.CreatedAt,
	)
	return property, err
}
