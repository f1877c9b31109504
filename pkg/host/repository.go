package host

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	ListHosts(ctx context.Context) ([]Host, error)
	GetHost(ctx context.Context, id string) (*Host, error)
	StoreHost(ctx context.Context, h Host) (string, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListHosts(ctx context.Context) ([]Host, error) {
	query := `SELECT id, name, company, title, bio, photo_url, email
              FROM host
              ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query hosts: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	hosts := make([]Host, 0, 8)
	for rows.Next() {
		var h Host
		if err := rows.Scan(&h.ID, &h.Name, &h.Company, &h.Title, &h.Bio, &h.PhotoURL, &h.Email); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		hosts = append(hosts, h)
	}
	return hosts, rows.Err()
}

func (r *RepositoryImpl) GetHost(ctx context.Context, id string) (*Host, error) {
	query := `SELECT id, name, company, title, bio, photo_url, email
              FROM host
              WHERE id = $1`

	var h Host
	err := r.db.QueryRowContext(ctx, query, id).Scan(&h.ID, &h.Name, &h.Company, &h.Title, &h.Bio, &h.PhotoURL, &h.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHostNotFound
		}
		err := fmt.Errorf("could not scan host: %w", err)
		log.Error(err)
		return nil, err
	}
	return &h, nil
}

func (r *RepositoryImpl) StoreHost(ctx context.Context, h Host) (string, error) {
	query := `INSERT INTO host (id, name, company, title, bio, photo_url, email)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, query, h.ID, h.Name, h.Company, h.Title, h.Bio, h.PhotoURL, h.Email)
	if err != nil {
		err := fmt.Errorf("could not store host: %w", err)
		log.Error(err)
		return "", err
	}
	return h.ID, nil
}
