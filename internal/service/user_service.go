package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

type UserService struct {
	users     UserRepository
	sessions  SessionRepository
	automerge AutomergeRepository
	subs      PushSubscriptionRepository
	github    GitHub
	now       func() time.Time
}

func NewUserService(users UserRepository, sessions SessionRepository, automerge AutomergeRepository, subs PushSubscriptionRepository, gh GitHub) *UserService {
	return &UserService{
		users:     users,
		sessions:  sessions,
		automerge: automerge,
		subs:      subs,
		github:    gh,
		now:       time.Now,
	}
}

// Register stores the owner of token and opens a session for them. The
// new-activity feature starts counting from the first registration.
func (s *UserService) Register(ctx context.Context, token string, scopes []string) (*domain.User, *domain.Session, error) {
	viewer, err := s.github.Viewer(ctx, token)
	if err != nil {
		return nil, nil, upstreamError(err)
	}

	now := s.now().UnixMilli()
	user := &domain.User{
		Login:     viewer.Login,
		Token:     token,
		Scopes:    scopes,
		AvatarURL: viewer.AvatarURL,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("upsert user: %w", err)
	}
	if err := s.users.EnableLastViewed(ctx, user.Login, now); err != nil {
		return nil, nil, fmt.Errorf("enable last viewed: %w", err)
	}

	session := &domain.Session{ID: uuid.NewString(), Login: user.Login, CreatedAt: now}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}
	return user, session, nil
}

// Authenticate resolves a session id to its user.
func (s *UserService) Authenticate(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeUnauthenticated, "no session")
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewDomainError(domain.ErrorCodeUnauthenticated, "unknown session")
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	user, err := s.users.GetByLogin(ctx, session.Login)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewDomainError(domain.ErrorCodeUnauthenticated, "unknown user")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *UserService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// MarkViewed moves the user's last-viewed watermark to now and returns it.
func (s *UserService) MarkViewed(ctx context.Context, login string) (int64, error) {
	now := s.now().UnixMilli()
	if err := s.users.SetLastViewed(ctx, login, now); err != nil {
		return 0, fmt.Errorf("set last viewed: %w", err)
	}
	return now, nil
}

// SetAutomerge stores the merge method for one of the user's own PRs.
// Automerge acts with the author's token, so nobody else may choose it.
func (s *UserService) SetAutomerge(ctx context.Context, user *domain.User, ref domain.PullRequestRef, opt domain.AutomergeOption) error {
	if ref.Owner == "" || ref.Repo == "" || ref.Number <= 0 {
		return domain.NewDomainError(domain.ErrorCodeBadRequest, "owner, repo and number are required")
	}
	if !opt.Valid() {
		return domain.NewDomainError(domain.ErrorCodeBadRequest, fmt.Sprintf("unknown automerge option %q", opt))
	}

	author, err := s.github.PullRequestAuthor(ctx, user.Token, ref)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.WrapDomainError(domain.ErrorCodeNotFound, "pull request not found", err)
	}
	if err != nil {
		return upstreamError(err)
	}
	if !strings.EqualFold(author, user.Login) {
		return domain.NewDomainError(domain.ErrorCodeForbidden, "automerge can only be set by the pull request author")
	}

	if err := s.automerge.Set(ctx, ref, opt); err != nil {
		return fmt.Errorf("set automerge option: %w", err)
	}
	return nil
}

func (s *UserService) GetAutomerge(ctx context.Context, ref domain.PullRequestRef) (domain.AutomergeOption, error) {
	opt, err := s.automerge.Get(ctx, ref)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.AutomergeManual, nil
	}
	if err != nil {
		return "", fmt.Errorf("get automerge option: %w", err)
	}
	return opt, nil
}

func (s *UserService) Subscribe(ctx context.Context, login string, sub domain.PushSubscription) (*domain.PushSubscription, error) {
	if !strings.HasPrefix(sub.Endpoint, "https://") || sub.P256dh == "" || sub.Auth == "" {
		return nil, domain.NewDomainError(domain.ErrorCodeBadRequest, "subscription needs an https endpoint and keys")
	}
	sub.ID = uuid.NewString()
	sub.Login = login
	if err := s.subs.Add(ctx, &sub); err != nil {
		return nil, fmt.Errorf("add push subscription: %w", err)
	}
	return &sub, nil
}

func (s *UserService) Unsubscribe(ctx context.Context, login, endpoint string) error {
	err := s.subs.DeleteByEndpoint(ctx, login, endpoint)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.WrapDomainError(domain.ErrorCodeNotFound, "subscription not found", err)
	}
	if err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}
	return nil
}
