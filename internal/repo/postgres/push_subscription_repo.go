package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

type PushSubscriptionRepo struct {
	db *sql.DB
}

func NewPushSubscriptionRepo(db *sql.DB) *PushSubscriptionRepo {
	return &PushSubscriptionRepo{db: db}
}

// Add stores a subscription. Re-subscribing the same endpoint refreshes its
// keys.
func (r *PushSubscriptionRepo) Add(ctx context.Context, s *domain.PushSubscription) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO push_subscriptions (id, login, endpoint, p256dh, auth)
         VALUES ($1, $2, $3, $4, $5)
         ON CONFLICT (login, endpoint) DO UPDATE
         SET p256dh = EXCLUDED.p256dh,
             auth = EXCLUDED.auth`,
		s.ID, s.Login, s.Endpoint, s.P256dh, s.Auth,
	)
	if err != nil {
		return fmt.Errorf("add push subscription: %w", mapError(err))
	}
	return nil
}

func (r *PushSubscriptionRepo) ListByLogin(ctx context.Context, login string) ([]domain.PushSubscription, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, login, endpoint, p256dh, auth
         FROM push_subscriptions
         WHERE login = $1
         ORDER BY created_at`,
		login,
	)
	if err != nil {
		return nil, fmt.Errorf("list push subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]domain.PushSubscription, 0)
	for rows.Next() {
		var s domain.PushSubscription
		if err := rows.Scan(&s.ID, &s.Login, &s.Endpoint, &s.P256dh, &s.Auth); err != nil {
			return nil, fmt.Errorf("scan push subscription: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate push subscriptions: %w", err)
	}
	return subs, nil
}

func (r *PushSubscriptionRepo) DeleteByEndpoint(ctx context.Context, login, endpoint string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM push_subscriptions WHERE login = $1 AND endpoint = $2`,
		login, endpoint,
	)
	if err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}
	return expectAffected(res)
}
