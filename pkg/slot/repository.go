package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	ListSlots(ctx context.Context) ([]Slot, error)
	GetSlot(ctx context.Context, id string) (*Slot, error)
	StoreSlot(ctx context.Context, s Slot) (string, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// ListSlots returns every slot ordered ascending by start time.
func (r *RepositoryImpl) ListSlots(ctx context.Context) ([]Slot, error) {
	query := `SELECT id, start_time, end_time, capacity, host_id, meeting_url
              FROM slot
              ORDER BY start_time`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query slots: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	slots := make([]Slot, 0, 32)
	for rows.Next() {
		s, err := scanSlot(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *RepositoryImpl) GetSlot(ctx context.Context, id string) (*Slot, error) {
	query := `SELECT id, start_time, end_time, capacity, host_id, meeting_url
              FROM slot
              WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	s, err := scanSlot(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		err := fmt.Errorf("could not scan slot: %w", err)
		log.Error(err)
		return nil, err
	}
	return &s, nil
}

func (r *RepositoryImpl) StoreSlot(ctx context.Context, s Slot) (string, error) {
	query := `INSERT INTO slot (id, start_time, end_time, capacity, host_id, meeting_url)
              VALUES ($1, $2, $3, $4, $5, $6)`

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	var hostID any
	if s.HostID != "" {
		hostID = s.HostID
	}
	_, err := r.db.ExecContext(ctx, query, s.ID, s.StartTime.UnixMilli(), s.EndTime.UnixMilli(), s.Capacity, hostID, s.MeetingURL)
	if err != nil {
		err := fmt.Errorf("could not store slot: %w", err)
		log.Error(err)
		return "", err
	}
	return s.ID, nil
}

func scanSlot(scan func(dest ...any) error) (Slot, error) {
	var id, meetingURL string
	var hostID sql.NullString
	var startMillis, endMillis int64
	var capacity int
	if err := scan(&id, &startMillis, &endMillis, &capacity, &hostID, &meetingURL); err != nil {
		return Slot{}, err
	}
	return Slot{
		ID:         id,
		StartTime:  time.UnixMilli(startMillis),
		EndTime:    time.UnixMilli(endMillis),
		Capacity:   capacity,
		HostID:     hostID.String,
		MeetingURL: meetingURL,
	}, nil
}
