package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pitch-booking/internal/data/entity"
	"pitch-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error

	// FindByVenueFieldDate returns the non-cancelled reservations for one
	// physical field on one calendar day, ordered by creation time.
	FindByVenueFieldDate(ctx context.Context, venueID uuid.UUID, field int, date time.Time) ([]*entity.Reservation, error)

	// CreateIfFree inserts the reservation unless its interval overlaps an
	// existing non-cancelled reservation on the same field and date. The
	// overlap check and the insert run in one transaction serialized per
	// (venue, field, date) by an advisory lock, so two racing callers can
	// never both succeed. Returns the colliding reservation when taken.
	CreateIfFree(ctx context.Context, reservation *entity.Reservation) (*entity.Reservation, error)

	// RescheduleIfFree moves the reservation to a new date and interval
	// under the same lock discipline, excluding the reservation itself
	// from the overlap check. On success the row carries the new slot and
	// the given status. Returns the colliding reservation when taken.
	RescheduleIfFree(ctx context.Context, id uuid.UUID, date time.Time, startMin, endMin int, status entity.ReservationStatus) (*entity.Reservation, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, code, venue_id, field_number, user_id, date, start_min, end_min,
	       price, status, payment_status, participants, notes, created_at, updated_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var res entity.Reservation
	var participantsJSON []byte

	err := row.Scan(
		&res.ID,
		&res.Code,
		&res.VenueID,
		&res.FieldNumber,
		&res.UserID,
		&res.Date,
		&res.StartMin,
		&res.EndMin,
		&res.Price,
		&res.Status,
		&res.PaymentStatus,
		&participantsJSON,
		&res.Notes,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(participantsJSON) > 0 {
		if err := json.Unmarshal(participantsJSON, &res.Participants); err != nil {
			return nil, fmt.Errorf("decode participants: %w", err)
		}
	}

	return &res, nil
}

// slotLockKey serializes writers touching the same field and day. Postgres
// advisory locks are keyed on a bigint, so the triple is hashed server-side
// with hashtextextended.
func slotLockKey(venueID uuid.UUID, field int, date time.Time) string {
	return fmt.Sprintf("%s:%d:%s", venueID.String(), field, date.Format("2006-01-02"))
}

// findOverlapTx runs the half-open overlap test inside the caller's
// transaction: an existing row [s, e) conflicts with [startMin, endMin)
// iff s < endMin AND e > startMin.
func findOverlapTx(ctx context.Context, tx pgx.Tx, venueID uuid.UUID, field int, date time.Time, startMin, endMin int, exclude uuid.UUID) (*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE venue_id = $1
		  AND field_number = $2
		  AND date = $3
		  AND status <> 'cancelled'
		  AND id <> $4
		  AND start_min < $6
		  AND end_min > $5
		ORDER BY created_at
		LIMIT 1
	`

	return scanReservation(tx.QueryRow(ctx, query, venueID, field, date, exclude, startMin, endMin))
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return res, nil
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1
		ORDER BY date DESC, start_min DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reservations by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, nil
}

func (r *reservationRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reservations by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count reservations by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *reservationRepository) FindByVenueFieldDate(ctx context.Context, venueID uuid.UUID, field int, date time.Time) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE venue_id = $1 AND field_number = $2 AND date = $3
		  AND status <> 'cancelled'
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, venueID, field, date)
	if err != nil {
		r.log.Error("Failed to find reservations for field/date",
			zap.Error(err),
			zap.String("venue_id", venueID.String()),
			zap.Int("field", field),
			zap.String("date", date.Format("2006-01-02")),
		)
		return nil, fmt.Errorf("find reservations for venue %s field %d: %w", venueID.String(), field, err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, nil
}

func (r *reservationRepository) CreateIfFree(ctx context.Context, reservation *entity.Reservation) (*entity.Reservation, error) {
	participantsJSON, err := json.Marshal(reservation.Participants)
	if err != nil {
		return nil, fmt.Errorf("encode participants: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin create reservation: %w", err)
	}
	defer tx.Rollback(ctx)

	lockKey := slotLockKey(reservation.VenueID, reservation.FieldNumber, reservation.Date)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, lockKey); err != nil {
		return nil, fmt.Errorf("acquire slot lock %s: %w", lockKey, err)
	}

	conflict, err := findOverlapTx(ctx, tx,
		reservation.VenueID, reservation.FieldNumber, reservation.Date,
		reservation.StartMin, reservation.EndMin, uuid.Nil)
	if err != nil {
		r.log.Error("Failed to check slot availability",
			zap.Error(err),
			zap.String("venue_id", reservation.VenueID.String()),
			zap.Int("field", reservation.FieldNumber),
		)
		return nil, fmt.Errorf("check slot availability: %w", err)
	}
	if conflict != nil {
		return conflict, nil
	}

	insert := `
		INSERT INTO reservations (id, code, venue_id, field_number, user_id, date,
		                         start_min, end_min, price, status, payment_status,
		                         participants, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = tx.Exec(ctx, insert,
		reservation.ID,
		reservation.Code,
		reservation.VenueID,
		reservation.FieldNumber,
		reservation.UserID,
		reservation.Date,
		reservation.StartMin,
		reservation.EndMin,
		reservation.Price,
		reservation.Status,
		reservation.PaymentStatus,
		participantsJSON,
		reservation.Notes,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert reservation",
			zap.Error(err),
			zap.String("code", reservation.Code),
		)
		return nil, fmt.Errorf("insert reservation %s: %w", reservation.Code, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reservation %s: %w", reservation.Code, err)
	}

	return nil, nil
}

func (r *reservationRepository) RescheduleIfFree(ctx context.Context, id uuid.UUID, date time.Time, startMin, endMin int, status entity.ReservationStatus) (*entity.Reservation, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reschedule: %w", err)
	}
	defer tx.Rollback(ctx)

	// The lock covers the target day; the row's previous day needs no lock
	// since moving out of a window only frees time.
	current, err := scanReservation(tx.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("load reservation %s: %w", id.String(), err)
	}
	if current == nil {
		return nil, fmt.Errorf("reservation %s not found", id.String())
	}

	lockKey := slotLockKey(current.VenueID, current.FieldNumber, date)
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, lockKey); err != nil {
		return nil, fmt.Errorf("acquire slot lock %s: %w", lockKey, err)
	}

	conflict, err := findOverlapTx(ctx, tx,
		current.VenueID, current.FieldNumber, date, startMin, endMin, id)
	if err != nil {
		r.log.Error("Failed to check slot availability for reschedule",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("check slot availability: %w", err)
	}
	if conflict != nil {
		return conflict, nil
	}

	update := `
		UPDATE reservations
		SET date = $2, start_min = $3, end_min = $4, status = $5, updated_at = NOW()
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, update, id, date, startMin, endMin, status)
	if err != nil {
		r.log.Error("Failed to reschedule reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("reschedule reservation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return nil, fmt.Errorf("reservation %s not found", id.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reschedule %s: %w", id.String(), err)
	}

	return nil, nil
}

func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	participantsJSON, err := json.Marshal(reservation.Participants)
	if err != nil {
		return fmt.Errorf("encode participants: %w", err)
	}

	query := `
		UPDATE reservations
		SET price = $2, payment_status = $3, participants = $4, notes = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.Price,
		reservation.PaymentStatus,
		participantsJSON,
		reservation.Notes,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return fmt.Errorf("update reservation %s: %w", reservation.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", reservation.ID.String())
	}

	return nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	query := `UPDATE reservations SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	return nil
}
