package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pitch-booking/internal/data/entity"
	"pitch-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VenueRepository interface {
	Create(ctx context.Context, venue *entity.Venue) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error)
	FindByName(ctx context.Context, name string) (*entity.Venue, error)
	FindAll(ctx context.Context, limit, offset int, nameFilter *string) ([]*entity.Venue, error)
	CountAll(ctx context.Context, nameFilter *string) (int64, error)
	Update(ctx context.Context, venue *entity.Venue) error
	Delete(ctx context.Context, id uuid.UUID) error

	// GetOrCreateDefault provisions a venue with uniform daily working
	// hours when no record exists for the name yet. Concurrent callers
	// converge on one row via the unique name index.
	GetOrCreateDefault(ctx context.Context, name string, hourlyPrice float64, currency string) (*entity.Venue, error)
}

type venueRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVenueRepository(db database.PgxIface, log *zap.Logger) VenueRepository {
	return &venueRepository{
		db:  db,
		log: log.With(zap.String("repository", "venue")),
	}
}

// Working hours for venues provisioned on first reference.
const (
	defaultOpenClock  = "09:00"
	defaultCloseClock = "23:00"
	defaultFieldCount = 1
)

func scanVenue(row pgx.Row) (*entity.Venue, error) {
	var venue entity.Venue
	var hoursJSON []byte

	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.Location,
		&venue.HourlyPrice,
		&venue.Currency,
		&venue.FieldCount,
		&hoursJSON,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(hoursJSON) > 0 {
		if err := json.Unmarshal(hoursJSON, &venue.WorkingHours); err != nil {
			return nil, fmt.Errorf("decode working hours: %w", err)
		}
	}

	return &venue, nil
}

const venueColumns = `id, name, location, hourly_price, currency, field_count, working_hours, created_at, updated_at`

func (r *venueRepository) Create(ctx context.Context, venue *entity.Venue) error {
	hoursJSON, err := json.Marshal(venue.WorkingHours)
	if err != nil {
		return fmt.Errorf("encode working hours: %w", err)
	}

	query := `
		INSERT INTO venues (id, name, location, hourly_price, currency,
		                   field_count, working_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.db.Exec(ctx, query,
		venue.ID,
		venue.Name,
		venue.Location,
		venue.HourlyPrice,
		venue.Currency,
		venue.FieldCount,
		hoursJSON,
		venue.CreatedAt,
		venue.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create venue",
			zap.Error(err),
			zap.String("name", venue.Name),
		)
		return fmt.Errorf("create venue %s: %w", venue.Name, err)
	}

	return nil
}

func (r *venueRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1 AND deleted_at IS NULL`

	venue, err := scanVenue(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find venue by ID",
			zap.Error(err),
			zap.String("venue_id", id.String()),
		)
		return nil, fmt.Errorf("find venue by ID %s: %w", id.String(), err)
	}

	return venue, nil
}

func (r *venueRepository) FindByName(ctx context.Context, name string) (*entity.Venue, error) {
	// Case-insensitive partial match; exact matches sort first so a venue
	// named "Arena" wins over "Arena North" for the query "arena".
	query := `
		SELECT ` + venueColumns + `
		FROM venues
		WHERE name ILIKE $1 AND deleted_at IS NULL
		ORDER BY (LOWER(name) = LOWER($2)) DESC, name
		LIMIT 1
	`

	venue, err := scanVenue(r.db.QueryRow(ctx, query, "%"+name+"%", name))
	if err != nil {
		r.log.Error("Failed to find venue by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find venue by name %s: %w", name, err)
	}

	return venue, nil
}

func (r *venueRepository) FindAll(ctx context.Context, limit, offset int, nameFilter *string) ([]*entity.Venue, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + venueColumns + ` FROM venues WHERE deleted_at IS NULL`)

	args := []interface{}{}
	argCount := 1

	if nameFilter != nil && *nameFilter != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND name ILIKE $%d", argCount))
		args = append(args, "%"+*nameFilter+"%")
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all venues",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all venues: %w", err)
	}
	defer rows.Close()

	var venues []*entity.Venue
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			r.log.Error("Failed to scan venue row", zap.Error(err))
			return nil, fmt.Errorf("scan venue row: %w", err)
		}
		venues = append(venues, venue)
	}

	return venues, nil
}

func (r *venueRepository) CountAll(ctx context.Context, nameFilter *string) (int64, error) {
	query := `SELECT COUNT(*) FROM venues WHERE deleted_at IS NULL`
	args := []interface{}{}

	if nameFilter != nil && *nameFilter != "" {
		query += ` AND name ILIKE $1`
		args = append(args, "%"+*nameFilter+"%")
	}

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count venues", zap.Error(err))
		return 0, fmt.Errorf("count venues: %w", err)
	}

	return count, nil
}

func (r *venueRepository) Update(ctx context.Context, venue *entity.Venue) error {
	hoursJSON, err := json.Marshal(venue.WorkingHours)
	if err != nil {
		return fmt.Errorf("encode working hours: %w", err)
	}

	query := `
		UPDATE venues
		SET name = $2, location = $3, hourly_price = $4, currency = $5,
		    field_count = $6, working_hours = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		venue.ID,
		venue.Name,
		venue.Location,
		venue.HourlyPrice,
		venue.Currency,
		venue.FieldCount,
		hoursJSON,
		venue.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update venue",
			zap.Error(err),
			zap.String("venue_id", venue.ID.String()),
		)
		return fmt.Errorf("update venue %s: %w", venue.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("venue %s not found", venue.ID.String())
	}

	return nil
}

func (r *venueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE venues SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete venue",
			zap.Error(err),
			zap.String("venue_id", id.String()),
		)
		return fmt.Errorf("delete venue %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("venue %s not found", id.String())
	}

	r.log.Info("Venue deleted", zap.String("venue_id", id.String()))
	return nil
}

func (r *venueRepository) GetOrCreateDefault(ctx context.Context, name string, hourlyPrice float64, currency string) (*entity.Venue, error) {
	hours := entity.UniformWorkingHours(defaultOpenClock, defaultCloseClock)
	hoursJSON, err := json.Marshal(hours)
	if err != nil {
		return nil, fmt.Errorf("encode working hours: %w", err)
	}

	now := time.Now()
	insert := `
		INSERT INTO venues (id, name, location, hourly_price, currency,
		                   field_count, working_hours, created_at, updated_at)
		VALUES ($1, $2, '', $3, $4, $5, $6, $7, $7)
		ON CONFLICT (name) DO NOTHING
	`

	_, err = r.db.Exec(ctx, insert,
		uuid.New(), name, hourlyPrice, currency, defaultFieldCount, hoursJSON, now)
	if err != nil {
		r.log.Error("Failed to provision default venue",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("provision venue %s: %w", name, err)
	}

	venue, err := r.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %s missing after provisioning", name)
	}

	r.log.Info("Venue provisioned with defaults",
		zap.String("venue_id", venue.ID.String()),
		zap.String("name", name),
	)

	return venue, nil
}
