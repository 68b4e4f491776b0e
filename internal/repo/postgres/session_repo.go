package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, login, created_at) VALUES ($1, $2, $3)`,
		s.ID, s.Login, time.UnixMilli(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create session: %w", mapError(err))
	}
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	var (
		s         domain.Session
		createdAt time.Time
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, login, created_at FROM sessions WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Login, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", mapError(err))
	}
	s.CreatedAt = createdAt.UnixMilli()
	return &s, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return expectAffected(res)
}
