package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"renthub/internal/domain"
	"renthub/internal/models"
)

const bookingColumns = `b.id, b.start_date, b.end_date, b.status, b.booker_id, b.item_id,
                 i.name, b.created_at, b.updated_at, b.version`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (start_date, end_date, status, booker_id, item_id, created_at, updated_at, version)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query,
		booking.Start.UTC(),
		booking.End.UTC(),
		booking.Status,
		booking.BookerID,
		booking.ItemID,
		now,
		now,
		1,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	booking.Version = 1

	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
              FROM bookings b JOIN items i ON i.id = b.item_id
              WHERE b.id = ?`
	booking, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatusWithVersion applies a status transition only when the row
// still carries fromVersion. A lost race surfaces as ErrConcurrentModification.
func (db *DB) UpdateBookingStatusWithVersion(ctx context.Context, id, fromVersion int64, status string) error {
	query := `UPDATE bookings SET status = ?, version = version + 1, updated_at = ? WHERE id = ? AND version = ?`
	result, err := db.ExecContext(ctx, query, status, time.Now().UTC(), id, fromVersion)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrConcurrentModification
	}
	return nil
}

func (db *DB) GetBookingsByBooker(ctx context.Context, bookerID int64, filter models.StateFilter,
	now time.Time, from, size int) ([]*models.Booking, error) {
	return db.listBookings(ctx, "b.booker_id = ?", bookerID, filter, now, from, size)
}

func (db *DB) GetBookingsByOwner(ctx context.Context, ownerID int64, filter models.StateFilter,
	now time.Time, from, size int) ([]*models.Booking, error) {
	return db.listBookings(ctx, "i.owner_id = ?", ownerID, filter, now, from, size)
}

// listBookings is the single query behind both actor-scoped listings. The state
// filter becomes a WHERE clause against now; results are ordered by start
// descending and windowed with a record offset.
func (db *DB) listBookings(ctx context.Context, actorClause string, actorID int64,
	filter models.StateFilter, now time.Time, from, size int) ([]*models.Booking, error) {
	args := []interface{}{actorID}
	var clause string

	switch filter {
	case models.FilterAll:
		clause = ""
	case models.FilterPast:
		clause = " AND b.end_date < ?"
		args = append(args, now.UTC())
	case models.FilterFuture:
		clause = " AND b.start_date > ?"
		args = append(args, now.UTC())
	case models.FilterCurrent:
		clause = " AND b.start_date < ? AND b.end_date > ?"
		args = append(args, now.UTC(), now.UTC())
	case models.FilterWaiting:
		clause = " AND b.status = ?"
		args = append(args, models.StatusWaiting)
	case models.FilterRejected:
		clause = " AND b.status = ?"
		args = append(args, models.StatusRejected)
	default:
		return nil, fmt.Errorf("unsupported state: %s: %w", filter, domain.ErrInvalidRequest)
	}

	query := `SELECT ` + bookingColumns + `
              FROM bookings b JOIN items i ON i.id = b.item_id
              WHERE ` + actorClause + clause + `
              ORDER BY b.start_date DESC
              LIMIT ? OFFSET ?`
	args = append(args, size, from)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (db *DB) GetBookingsByItem(ctx context.Context, itemID int64) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + `
              FROM bookings b JOIN items i ON i.id = b.item_id
              WHERE b.item_id = ?`
	rows, err := db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by item: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetBookingsByItems fetches bookings for all given items in one query so that
// list endpoints stay free of per-item lookups.
func (db *DB) GetBookingsByItems(ctx context.Context, itemIDs []int64) ([]*models.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(itemIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]interface{}, 0, len(itemIDs))
	for _, id := range itemIDs {
		args = append(args, id)
	}

	query := `SELECT ` + bookingColumns + `
              FROM bookings b JOIN items i ON i.id = b.item_id
              WHERE b.item_id IN (` + placeholders + `)`
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings by items: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountApprovedFinished counts approved bookings of an item by a user that
// ended strictly before now. Comment creation is allowed only when it is >= 1.
func (db *DB) CountApprovedFinished(ctx context.Context, itemID, userID int64, now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE item_id = ? AND booker_id = ? AND status = ? AND end_date < ?`
	var count int
	err := db.QueryRowContext(ctx, query, itemID, userID, models.StatusApproved, now.UTC()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count finished bookings: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	b := &models.Booking{}
	err := row.Scan(
		&b.ID, &b.Start, &b.End, &b.Status, &b.BookerID, &b.ItemID,
		&b.ItemName, &b.CreatedAt, &b.UpdatedAt, &b.Version,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func scanBookings(rows *sql.Rows) ([]*models.Booking, error) {
	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
