package service

import (
	"context"
	"iter"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
	"github.com/PolymerLabs/project-health-sub000/internal/github"
)

type UserRepository interface {
	GetByLogin(ctx context.Context, login string) (*domain.User, error)
	Upsert(ctx context.Context, u *domain.User) error
	SetLastViewed(ctx context.Context, login string, at int64) error
	EnableLastViewed(ctx context.Context, login string, at int64) error
}

type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type CommitStatusRepository interface {
	Get(ctx context.Context, ref domain.PullRequestRef, sha string) (domain.CommitState, error)
	Transition(ctx context.Context, ref domain.PullRequestRef, sha string, state domain.CommitState) (bool, error)
	ForgetPullRequest(ctx context.Context, ref domain.PullRequestRef) error
}

type AutomergeRepository interface {
	Get(ctx context.Context, ref domain.PullRequestRef) (domain.AutomergeOption, error)
	Set(ctx context.Context, ref domain.PullRequestRef, opt domain.AutomergeOption) error
}

type PushSubscriptionRepository interface {
	Add(ctx context.Context, s *domain.PushSubscription) error
	DeleteByEndpoint(ctx context.Context, login, endpoint string) error
}

type Notifier interface {
	Send(ctx context.Context, login string, n domain.Notification) error
}

// GitHub is the subset of the GitHub client the services use.
type GitHub interface {
	SearchPullRequests(ctx context.Context, token, query string) iter.Seq2[github.PullRequestNode, error]
	PullRequestsForCommit(ctx context.Context, token, owner, repo, sha string) ([]github.CommitPullRequest, error)
	Viewer(ctx context.Context, token string) (*github.Viewer, error)
	Merge(ctx context.Context, token string, ref domain.PullRequestRef, method string) error
	PullRequestAuthor(ctx context.Context, token string, ref domain.PullRequestRef) (string, error)
}
