package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/productzak/fairway-tracker/internal/core/domain"
)

// PostgresSessionRepository is the alternative backend for deployments that
// outgrow the flat file. The heterogeneous optional fields live in a JSONB
// payload column; id, date, type and created_at are real columns for
// indexing and ordering.
type PostgresSessionRepository struct {
	db *sqlx.DB
}

func NewPostgresSessionRepository(db *sqlx.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

type sessionRow struct {
	ID        string    `db:"id"`
	Date      string    `db:"date"`
	Type      string    `db:"type"`
	CreatedAt time.Time `db:"created_at"`
	Data      []byte    `db:"data"`
}

func (r *PostgresSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	query := `
		INSERT INTO sessions (id, date, type, created_at, data)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = r.db.ExecContext(ctx, query, session.ID, session.Date, session.Type, session.CreatedAt, data)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("session %s already exists", session.ID)
		}
		return err
	}
	return nil
}

func (r *PostgresSessionRepository) List(ctx context.Context) ([]*domain.Session, error) {
	rows := []sessionRow{}

	query := `SELECT id, date, type, created_at, data FROM sessions ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	sessions := make([]*domain.Session, 0, len(rows))
	for _, row := range rows {
		var session domain.Session
		if err := json.Unmarshal(row.Data, &session); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSessionData, err)
		}
		sessions = append(sessions, &session)
	}
	return sessions, nil
}

func (r *PostgresSessionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
