package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/PolymerLabs/project-health-sub000/internal/dashdata"
	"github.com/PolymerLabs/project-health-sub000/internal/domain"
	"github.com/PolymerLabs/project-health-sub000/internal/github"
)

const enrichConcurrency = 8

type DashboardService struct {
	users     UserRepository
	statuses  CommitStatusRepository
	automerge AutomergeRepository
	github    GitHub
	logger    *slog.Logger
}

func NewDashboardService(users UserRepository, statuses CommitStatusRepository, automerge AutomergeRepository, gh GitHub, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		users:     users,
		statuses:  statuses,
		automerge: automerge,
		github:    gh,
		logger:    logger,
	}
}

type incomingSearch struct {
	query     string
	requested bool
}

func incomingSearches(login string) []incomingSearch {
	return []incomingSearch{
		{query: "is:open is:pr archived:false review-requested:" + login, requested: true},
		{query: "is:open is:pr archived:false reviewed-by:" + login + " -author:" + login},
		{query: "is:open is:pr archived:false mentions:" + login + " -author:" + login},
	}
}

// FetchUserData builds the dashboard of login using token for every GitHub
// request.
func (s *DashboardService) FetchUserData(ctx context.Context, login, token string) (*domain.DashboardData, error) {
	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	searches := incomingSearches(login)
	var (
		outgoing []github.PullRequestNode
		incoming = make([][]github.PullRequestNode, len(searches))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		nodes, err := collect(s.github.SearchPullRequests(gctx, token, "is:open is:pr archived:false author:"+login))
		outgoing = nodes
		return err
	})
	for i, search := range searches {
		g.Go(func() error {
			nodes, err := collect(s.github.SearchPullRequests(gctx, token, search.query))
			incoming[i] = nodes
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, upstreamError(err)
	}

	w := dashdata.Watermark{LastViewed: user.LastViewedAt, FeatureEnabledAt: user.FeatureLastViewedEnabledAt}
	requested := make(map[string]bool)
	var merged []github.PullRequestNode
	for i, nodes := range incoming {
		for _, n := range nodes {
			if n.Author != nil && n.Author.Login == login {
				continue
			}
			if _, seen := requested[n.ID]; !seen {
				merged = append(merged, n)
			}
			requested[n.ID] = requested[n.ID] || searches[i].requested
		}
	}

	outgoingPRs, err := fanOut(ctx, outgoing, func(ctx context.Context, n *github.PullRequestNode) (*domain.PullRequest, error) {
		return s.buildOutgoing(ctx, login, n, w)
	})
	if err != nil {
		return nil, err
	}
	incomingPRs, err := fanOut(ctx, merged, func(ctx context.Context, n *github.PullRequestNode) (*domain.PullRequest, error) {
		return s.buildIncoming(login, n, requested[n.ID], w)
	})
	if err != nil {
		return nil, err
	}

	dashdata.SortOutgoing(outgoingPRs)
	dashdata.SortIncoming(incomingPRs)

	return &domain.DashboardData{
		Login:       user.Login,
		AvatarURL:   user.AvatarURL,
		LastViewed:  user.LastViewedAt,
		OutgoingPRs: outgoingPRs,
		IncomingPRs: incomingPRs,
	}, nil
}

func (s *DashboardService) buildOutgoing(ctx context.Context, login string, n *github.PullRequestNode, w dashdata.Watermark) (*domain.PullRequest, error) {
	pr, err := n.PullRequest()
	if err != nil {
		s.logger.Warn("skipping pull request", "id", n.ID, "error", err)
		return nil, nil
	}

	reviews := dashdata.ReduceReviews(dashdata.ExcludePending(dashdata.ExcludeAuthor(n.Reviews(), login)))

	latest := n.LatestCommit()
	if latest != nil && latest.CheckState == domain.CheckStateNone {
		state, err := s.statuses.Get(ctx, pr.Ref, latest.OID)
		switch {
		case err == nil:
			latest.CheckState = state.CheckState()
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("get commit status: %w", err)
		}
	}

	pr.Status = dashdata.ClassifyOutgoing(n.RequestedReviewers(), reviews, latest)
	pr.Events = dashdata.OutgoingTimeline(reviews)

	opt, err := s.automerge.Get(ctx, pr.Ref)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		opt = domain.AutomergeManual
	case err != nil:
		return nil, fmt.Errorf("get automerge option: %w", err)
	}
	pr.AutomergeOpts = &opt

	last, ok := dashdata.LastActivity(login, &pr, n.LastComment())
	pr.HasNewActivity = dashdata.HasNewActivity(last, ok, w)
	return &pr, nil
}

func (s *DashboardService) buildIncoming(login string, n *github.PullRequestNode, requested bool, w dashdata.Watermark) (*domain.PullRequest, error) {
	pr, err := n.PullRequest()
	if err != nil {
		s.logger.Warn("skipping pull request", "id", n.ID, "error", err)
		return nil, nil
	}

	in := dashdata.IncomingInput{
		Viewer:    login,
		URL:       pr.URL,
		Requested: requested,
		Reviews:   n.Reviews(),
		Commits:   n.Commits(),
		Mention:   n.LatestMention(login),
	}
	pr.Status = dashdata.ClassifyIncoming(in)
	pr.Events = dashdata.IncomingTimeline(in)

	last, ok := dashdata.LastActivity(login, &pr, n.LastComment())
	pr.HasNewActivity = dashdata.HasNewActivity(last, ok, w)
	return &pr, nil
}

// fanOut runs build for every node concurrently and keeps the input order.
// A nil result drops the node.
func fanOut(ctx context.Context, nodes []github.PullRequestNode, build func(context.Context, *github.PullRequestNode) (*domain.PullRequest, error)) ([]domain.PullRequest, error) {
	results := make([]*domain.PullRequest, len(nodes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i := range nodes {
		g.Go(func() error {
			pr, err := build(gctx, &nodes[i])
			results[i] = pr
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	prs := make([]domain.PullRequest, 0, len(results))
	for _, pr := range results {
		if pr != nil {
			prs = append(prs, *pr)
		}
	}
	return prs, nil
}

func collect(seq iter.Seq2[github.PullRequestNode, error]) ([]github.PullRequestNode, error) {
	var nodes []github.PullRequestNode
	for n, err := range seq {
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func upstreamError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, github.ErrRateLimited) {
		return domain.WrapDomainError(domain.ErrorCodeUpstream, "github rate limit exceeded", err)
	}
	return domain.WrapDomainError(domain.ErrorCodeUpstream, "github request failed", err)
}
