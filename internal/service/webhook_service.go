package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

type WebhookService struct {
	statuses  CommitStatusRepository
	github    GitHub
	notifier  Notifier
	automerge *AutomergeService
	// token is used for lookups that no user is attached to.
	token  string
	icon   string
	logger *slog.Logger
}

func NewWebhookService(statuses CommitStatusRepository, gh GitHub, notifier Notifier, automerge *AutomergeService, token, icon string, logger *slog.Logger) *WebhookService {
	return &WebhookService{
		statuses:  statuses,
		github:    gh,
		notifier:  notifier,
		automerge: automerge,
		token:     token,
		icon:      icon,
		logger:    logger,
	}
}

func (s *WebhookService) Handle(ctx context.Context, hook domain.Hook) error {
	switch h := hook.(type) {
	case domain.StatusHook:
		return s.handleStatus(ctx, h)
	case domain.PullRequestHook:
		return s.handlePullRequest(ctx, h)
	case domain.PullRequestReviewHook:
		return s.handleReview(ctx, h)
	default:
		panic(fmt.Sprintf("unknown webhook type %T", hook))
	}
}

// handleStatus acts on a commit status only when it differs from the last
// one stored for the PR, so redelivered hooks are no-ops.
func (s *WebhookService) handleStatus(ctx context.Context, h domain.StatusHook) error {
	if s.token == "" {
		s.logger.Warn("ignoring status hook, no github token configured", "sha", h.SHA)
		return nil
	}

	prs, err := s.github.PullRequestsForCommit(ctx, s.token, h.Owner, h.Repo, h.SHA)
	if err != nil {
		return upstreamError(err)
	}

	for _, pr := range prs {
		changed, err := s.statuses.Transition(ctx, pr.Ref, h.SHA, h.State)
		if err != nil {
			return fmt.Errorf("store commit status: %w", err)
		}
		if !changed || !h.State.Final() {
			continue
		}

		title := "Status checks failed"
		if h.State == domain.CommitStateSuccess {
			title = "Status checks passed"
		}
		s.notify(ctx, pr.Author, domain.Notification{
			Title: title,
			Body:  fmt.Sprintf("%s/%s#%d %s", pr.Ref.Owner, pr.Ref.Repo, pr.Ref.Number, pr.Title),
			Icon:  s.icon,
			Data:  map[string]any{"url": pr.URL},
			Tag:   fmt.Sprintf("status-%s/%s#%d", pr.Ref.Owner, pr.Ref.Repo, pr.Ref.Number),
		})

		if h.State == domain.CommitStateSuccess && pr.Approved {
			if err := s.automerge.Trigger(ctx, MergeTarget{Ref: pr.Ref, Author: pr.Author, Title: pr.Title, URL: pr.URL}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *WebhookService) handlePullRequest(ctx context.Context, h domain.PullRequestHook) error {
	switch h.Action {
	case "review_requested":
		if h.RequestedReviewer == "" {
			return nil
		}
		s.notify(ctx, h.RequestedReviewer, domain.Notification{
			Title: fmt.Sprintf("%s requested your review", h.Author),
			Body:  fmt.Sprintf("%s/%s#%d %s", h.Ref.Owner, h.Ref.Repo, h.Ref.Number, h.Title),
			Icon:  s.icon,
			Data:  map[string]any{"url": h.URL},
			Tag:   fmt.Sprintf("review-requested-%s/%s#%d", h.Ref.Owner, h.Ref.Repo, h.Ref.Number),
		})
	case "closed":
		if err := s.statuses.ForgetPullRequest(ctx, h.Ref); err != nil {
			return fmt.Errorf("forget closed pull request: %w", err)
		}
	}
	return nil
}

func (s *WebhookService) handleReview(ctx context.Context, h domain.PullRequestReviewHook) error {
	if h.Action != "submitted" || h.Reviewer == h.Author {
		return nil
	}

	var title string
	switch h.State {
	case domain.ReviewStateApproved:
		title = fmt.Sprintf("%s approved your PR", h.Reviewer)
	case domain.ReviewStateChangesRequested:
		title = fmt.Sprintf("%s requested changes", h.Reviewer)
	case domain.ReviewStateCommented:
		title = fmt.Sprintf("%s commented on your PR", h.Reviewer)
	default:
		return nil
	}
	s.notify(ctx, h.Author, domain.Notification{
		Title: title,
		Body:  fmt.Sprintf("%s/%s#%d %s", h.Ref.Owner, h.Ref.Repo, h.Ref.Number, h.Title),
		Icon:  s.icon,
		Data:  map[string]any{"url": h.URL},
		Tag:   fmt.Sprintf("review-%s/%s#%d", h.Ref.Owner, h.Ref.Repo, h.Ref.Number),
	})

	if h.State != domain.ReviewStateApproved {
		return nil
	}
	state, err := s.statuses.Get(ctx, h.Ref, h.HeadSHA)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get commit status: %w", err)
	}
	if state != domain.CommitStateSuccess {
		return nil
	}
	return s.automerge.Trigger(ctx, MergeTarget{Ref: h.Ref, Author: h.Author, Title: h.Title, URL: h.URL})
}

func (s *WebhookService) notify(ctx context.Context, login string, n domain.Notification) {
	if err := s.notifier.Send(ctx, login, n); err != nil {
		s.logger.Error("failed to send notification", "login", login, "title", n.Title, "error", err)
	}
}
