package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
	"github.com/PolymerLabs/project-health-sub000/internal/github"
)

type AutomergeService struct {
	options  AutomergeRepository
	users    UserRepository
	github   GitHub
	notifier Notifier
	icon     string
	logger   *slog.Logger
}

func NewAutomergeService(options AutomergeRepository, users UserRepository, gh GitHub, notifier Notifier, icon string, logger *slog.Logger) *AutomergeService {
	return &AutomergeService{
		options:  options,
		users:    users,
		github:   gh,
		notifier: notifier,
		icon:     icon,
		logger:   logger,
	}
}

// MergeTarget is the PR an automerge is attempted for.
type MergeTarget struct {
	Ref    domain.PullRequestRef
	Author string
	Title  string
	URL    string
}

// Trigger merges the PR with the author's stored option. The outcome is
// reported to the author as a notification; merge failures are not
// returned since nobody waits on the result.
func (s *AutomergeService) Trigger(ctx context.Context, t MergeTarget) error {
	opt, err := s.options.Get(ctx, t.Ref)
	if errors.Is(err, domain.ErrNotFound) || opt == domain.AutomergeManual {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get automerge option: %w", err)
	}

	author, err := s.users.GetByLogin(ctx, t.Author)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("automerge author is not registered", "login", t.Author, "pr", t.URL)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get author: %w", err)
	}

	s.logger.Info("automerging pull request", "pr", t.URL, "method", opt)
	n := domain.Notification{
		Icon: s.icon,
		Data: map[string]any{"url": t.URL},
		Tag:  automergeTag(t.Ref),
	}
	if err := s.github.Merge(ctx, author.Token, t.Ref, string(opt)); err != nil {
		s.logger.Warn("automerge failed", "pr", t.URL, "error", err)
		n.Title = "Automerge failed"
		n.Body = fmt.Sprintf("%s: %s", t.Title, github.ErrorMessage(err))
		n.RequireInteraction = true
	} else {
		n.Title = "Automerge complete"
		n.Body = t.Title
	}

	if err := s.notifier.Send(ctx, t.Author, n); err != nil {
		s.logger.Error("failed to send automerge notification", "login", t.Author, "error", err)
	}
	return nil
}

func automergeTag(ref domain.PullRequestRef) string {
	return fmt.Sprintf("automerge-%s/%s#%d", ref.Owner, ref.Repo, ref.Number)
}
