package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

// Filter narrows ListBookings. Zero values mean no filtering.
type Filter struct {
	SlotID string
	Email  string
}

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	ListBookings(ctx context.Context, filter Filter) ([]Booking, error)
	CountForSlot(ctx context.Context, slotID string) (int, error)
	InsertBooking(ctx context.Context, b Booking) (*Booking, error)
}

type RepositoryImpl struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db, tx: nil}
}

// getQueryer returns the appropriate database interface for queries (either tx or db)
func (r *RepositoryImpl) getQueryer() interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *RepositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	txRepo := &RepositoryImpl{db: r.db, tx: tx}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (r *RepositoryImpl) ListBookings(ctx context.Context, filter Filter) ([]Booking, error) {
	query := `SELECT id, slot_id, name, email, created_at FROM booking`
	conditions := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if filter.SlotID != "" {
		args = append(args, filter.SlotID)
		conditions = append(conditions, fmt.Sprintf("slot_id = $%d", len(args)))
	}
	if filter.Email != "" {
		args = append(args, NormalizeEmail(filter.Email))
		conditions = append(conditions, fmt.Sprintf("lower(email) = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at"

	rows, err := r.getQueryer().QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query bookings: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	bookings := make([]Booking, 0, 16)
	for rows.Next() {
		var b Booking
		var createdMillis int64
		if err := rows.Scan(&b.ID, &b.SlotID, &b.Name, &b.Email, &createdMillis); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		b.CreatedAt = time.UnixMilli(createdMillis)
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *RepositoryImpl) CountForSlot(ctx context.Context, slotID string) (int, error) {
	query := `SELECT COUNT(*) FROM booking WHERE slot_id = $1`

	var count int
	if err := r.getQueryer().QueryRowContext(ctx, query, slotID).Scan(&count); err != nil {
		err := fmt.Errorf("could not count bookings for slot %s: %w", slotID, err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

// InsertBooking persists b. A violation of the unique email index is mapped
// to ErrDuplicateEmail so callers can tell the candidate apart from an
// infrastructure failure.
func (r *RepositoryImpl) InsertBooking(ctx context.Context, b Booking) (*Booking, error) {
	query := `INSERT INTO booking (id, slot_id, name, email, created_at)
              VALUES ($1, $2, $3, $4, $5)`

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	_, err := r.getQueryer().ExecContext(ctx, query, b.ID, b.SlotID, b.Name, b.Email, b.CreatedAt.UnixMilli())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		err := fmt.Errorf("could not insert booking: %w", err)
		log.Error(err)
		return nil, err
	}
	return &b, nil
}

// isUniqueViolation recognizes the unique index violation of both backing
// stores: Postgres (pgx, SQLSTATE 23505) in production and SQLite in tests.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
