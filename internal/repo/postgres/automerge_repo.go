package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

type AutomergeRepo struct {
	db *sql.DB
}

func NewAutomergeRepo(db *sql.DB) *AutomergeRepo {
	return &AutomergeRepo{db: db}
}

func (r *AutomergeRepo) Get(ctx context.Context, ref domain.PullRequestRef) (domain.AutomergeOption, error) {
	var opt string
	err := r.db.QueryRowContext(ctx,
		`SELECT merge_type FROM automerge_options
         WHERE owner = $1 AND repo = $2 AND number = $3`,
		ref.Owner, ref.Repo, ref.Number,
	).Scan(&opt)
	if err != nil {
		return "", fmt.Errorf("get automerge option: %w", mapError(err))
	}
	return domain.AutomergeOption(opt), nil
}

func (r *AutomergeRepo) Set(ctx context.Context, ref domain.PullRequestRef, opt domain.AutomergeOption) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO automerge_options (owner, repo, number, merge_type)
         VALUES ($1, $2, $3, $4)
         ON CONFLICT (owner, repo, number) DO UPDATE
         SET merge_type = EXCLUDED.merge_type,
             updated_at = now()`,
		ref.Owner, ref.Repo, ref.Number, string(opt),
	)
	if err != nil {
		return fmt.Errorf("set automerge option: %w", mapError(err))
	}
	return nil
}
