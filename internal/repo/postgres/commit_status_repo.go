package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

type CommitStatusRepo struct {
	db *sql.DB
}

func NewCommitStatusRepo(db *sql.DB) *CommitStatusRepo {
	return &CommitStatusRepo{db: db}
}

func (r *CommitStatusRepo) Get(ctx context.Context, ref domain.PullRequestRef, sha string) (domain.CommitState, error) {
	var state string
	err := r.db.QueryRowContext(ctx,
		`SELECT state FROM commit_statuses
         WHERE owner = $1 AND repo = $2 AND number = $3 AND sha = $4`,
		ref.Owner, ref.Repo, ref.Number, sha,
	).Scan(&state)
	if err != nil {
		return "", fmt.Errorf("get commit status: %w", mapError(err))
	}
	return domain.CommitState(state), nil
}

// Transition stores state for the commit and reports whether it differs
// from what was stored before. A repeated delivery of the same state leaves
// the row untouched and returns false.
func (r *CommitStatusRepo) Transition(ctx context.Context, ref domain.PullRequestRef, sha string, state domain.CommitState) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO commit_statuses (owner, repo, number, sha, state)
         VALUES ($1, $2, $3, $4, $5)
         ON CONFLICT (owner, repo, number, sha) DO UPDATE
         SET state = EXCLUDED.state,
             updated_at = now()
         WHERE commit_statuses.state <> EXCLUDED.state
         RETURNING 1`,
		ref.Owner, ref.Repo, ref.Number, sha, string(state),
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("transition commit status: %w", mapError(err))
	}
	return true, nil
}

// ForgetPullRequest drops everything stored for a closed PR.
func (r *CommitStatusRepo) ForgetPullRequest(ctx context.Context, ref domain.PullRequestRef) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin forget PR tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM commit_statuses WHERE owner = $1 AND repo = $2 AND number = $3`,
		ref.Owner, ref.Repo, ref.Number,
	); err != nil {
		return fmt.Errorf("delete commit statuses: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM automerge_options WHERE owner = $1 AND repo = $2 AND number = $3`,
		ref.Owner, ref.Repo, ref.Number,
	); err != nil {
		return fmt.Errorf("delete automerge option: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit forget PR tx: %w", err)
	}
	return nil
}
