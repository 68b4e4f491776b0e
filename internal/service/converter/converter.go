package converter

import (
	"github.com/PolymerLabs/project-health-sub000/api/openapi"
	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

func DashboardToOpenAPI(d *domain.DashboardData) (openapi.DashboardData, error) {
	if d == nil {
		return openapi.DashboardData{}, nil
	}

	outgoing, err := pullRequestsToOpenAPI(d.OutgoingPRs)
	if err != nil {
		return openapi.DashboardData{}, err
	}
	incoming, err := pullRequestsToOpenAPI(d.IncomingPRs)
	if err != nil {
		return openapi.DashboardData{}, err
	}

	return openapi.DashboardData{
		Login:       d.Login,
		AvatarUrl:   d.AvatarURL,
		LastViewed:  d.LastViewed,
		OutgoingPrs: outgoing,
		IncomingPrs: incoming,
	}, nil
}

func pullRequestsToOpenAPI(prs []domain.PullRequest) ([]openapi.PullRequest, error) {
	out := make([]openapi.PullRequest, 0, len(prs))
	for i := range prs {
		pr, err := PullRequestToOpenAPI(&prs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}
	return out, nil
}

func PullRequestToOpenAPI(p *domain.PullRequest) (openapi.PullRequest, error) {
	if p == nil {
		return openapi.PullRequest{}, nil
	}

	events := make([]openapi.Event, 0, len(p.Events))
	for _, e := range p.Events {
		ev, err := EventToOpenAPI(e)
		if err != nil {
			return openapi.PullRequest{}, err
		}
		events = append(events, ev)
	}

	var automerge *openapi.AutomergeOption
	if p.AutomergeOpts != nil {
		opt := openapi.AutomergeOption(*p.AutomergeOpts)
		automerge = &opt
	}

	return openapi.PullRequest{
		Id:             p.ID,
		Owner:          p.Ref.Owner,
		Repo:           p.Ref.Repo,
		Number:         p.Ref.Number,
		Author:         p.Author,
		AvatarUrl:      p.AvatarURL,
		Title:          p.Title,
		Url:            p.URL,
		CreatedAt:      p.CreatedAt,
		Mergeable:      openapi.Mergeable(p.MergeableState),
		Events:         events,
		Status:         StatusToOpenAPI(p.Status),
		HasNewActivity: p.HasNewActivity,
		AutomergeOpts:  automerge,
	}, nil
}

// EventToOpenAPI fails on event types it does not know about.
func EventToOpenAPI(e domain.Event) (openapi.Event, error) {
	var out openapi.Event
	var err error

	switch ev := e.(type) {
	case domain.OutgoingReviewEvent:
		reviews := make([]openapi.Review, 0, len(ev.Reviews))
		for _, r := range ev.Reviews {
			reviews = append(reviews, reviewToOpenAPI(r))
		}
		err = out.FromOutgoingReviewEvent(openapi.OutgoingReviewEvent{Reviews: reviews, Latest: ev.Latest})
	case domain.MyReviewEvent:
		err = out.FromMyReviewEvent(openapi.MyReviewEvent{Review: reviewToOpenAPI(ev.Review)})
	case domain.NewCommitsEvent:
		err = out.FromNewCommitsEvent(openapi.NewCommitsEvent{
			Count:        ev.Count,
			Additions:    ev.Additions,
			Deletions:    ev.Deletions,
			ChangedFiles: ev.ChangedFiles,
			LastPushedAt: ev.LastPushedAt,
			Url:          ev.URL,
		})
	case domain.MentionedEvent:
		err = out.FromMentionedEvent(openapi.MentionedEvent{
			Text:        ev.Text,
			MentionedAt: ev.MentionedAt,
			Url:         ev.URL,
		})
	default:
		return openapi.Event{}, domain.UnknownEventError(e)
	}
	return out, err
}

func StatusToOpenAPI(s domain.Status) openapi.Status {
	out := openapi.Status{Type: openapi.StatusType(s.Kind)}
	if s.Kind == domain.StatusWaitingReview {
		reviewers := append([]string{}, s.Reviewers...)
		out.Reviewers = &reviewers
	}
	return out
}

func reviewToOpenAPI(r domain.Review) openapi.Review {
	return openapi.Review{
		Author:    r.Author,
		State:     openapi.ReviewState(r.State),
		CreatedAt: r.CreatedAt,
	}
}

func AutomergeFromOpenAPI(req *openapi.AutomergeRequest) (domain.PullRequestRef, domain.AutomergeOption) {
	if req == nil {
		return domain.PullRequestRef{}, ""
	}
	return domain.PullRequestRef{Owner: req.Owner, Repo: req.Repo, Number: req.Number}, domain.AutomergeOption(req.Option)
}

func PushSubscriptionFromOpenAPI(s *openapi.PushSubscription) domain.PushSubscription {
	if s == nil {
		return domain.PushSubscription{}
	}
	return domain.PushSubscription{
		Endpoint: s.Endpoint,
		P256dh:   s.Keys.P256dh,
		Auth:     s.Keys.Auth,
	}
}
