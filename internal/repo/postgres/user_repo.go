package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Upsert stores the user's token and profile. Watermarks of an existing
// user are kept.
func (r *UserRepo) Upsert(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (login, token, scopes, avatar_url, last_viewed_at, feature_last_viewed_enabled_at)
         VALUES ($1, $2, $3, $4, $5, $6)
         ON CONFLICT (login) DO UPDATE
         SET token = EXCLUDED.token,
             scopes = EXCLUDED.scopes,
             avatar_url = EXCLUDED.avatar_url,
             updated_at = now()`,
		u.Login,
		u.Token,
		strings.Join(u.Scopes, ","),
		u.AvatarURL,
		u.LastViewedAt,
		u.FeatureLastViewedEnabledAt,
	)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", u.Login, mapError(err))
	}
	return nil
}

func (r *UserRepo) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	var (
		u      domain.User
		scopes string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT login, token, scopes, avatar_url, last_viewed_at, feature_last_viewed_enabled_at
         FROM users
         WHERE login = $1`,
		login,
	).Scan(&u.Login, &u.Token, &scopes, &u.AvatarURL, &u.LastViewedAt, &u.FeatureLastViewedEnabledAt)
	if err != nil {
		return nil, fmt.Errorf("get user by login: %w", mapError(err))
	}
	if scopes != "" {
		u.Scopes = strings.Split(scopes, ",")
	}
	return &u, nil
}

func (r *UserRepo) SetLastViewed(ctx context.Context, login string, at int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
         SET last_viewed_at = $2,
             updated_at = now()
         WHERE login = $1`,
		login, at,
	)
	if err != nil {
		return fmt.Errorf("set last viewed: %w", err)
	}
	return expectAffected(res)
}

// EnableLastViewed turns the new-activity feature on for the user. Only the
// first call has an effect.
func (r *UserRepo) EnableLastViewed(ctx context.Context, login string, at int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users
         SET feature_last_viewed_enabled_at = $2,
             updated_at = now()
         WHERE login = $1 AND feature_last_viewed_enabled_at = 0`,
		login, at,
	)
	if err != nil {
		return fmt.Errorf("enable last viewed: %w", err)
	}
	return nil
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
