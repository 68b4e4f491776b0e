package github

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	gogithub "github.com/google/go-github/v66/github"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

// ErrUnsupportedEvent is returned for deliveries of events nothing reacts to.
var ErrUnsupportedEvent = errors.New("unsupported webhook event")

// ErrInvalidPayload covers bad signatures and malformed bodies.
var ErrInvalidPayload = errors.New("invalid webhook payload")

// ParseWebhook validates the delivery signature against secret and decodes
// it. An empty secret skips signature validation.
func ParseWebhook(r *http.Request, secret []byte) (domain.Hook, error) {
	payload, err := gogithub.ValidatePayload(r, secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	eventType := gogithub.WebHookType(r)
	switch eventType {
	case "status", "pull_request", "pull_request_review":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEvent, eventType)
	}

	event, err := gogithub.ParseWebHook(eventType, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	switch e := event.(type) {
	case *gogithub.StatusEvent:
		state := domain.CommitState(e.GetState())
		if !state.Valid() {
			return nil, fmt.Errorf("%w: unknown commit state %q", ErrInvalidPayload, e.GetState())
		}
		return domain.StatusHook{
			Owner: e.GetRepo().GetOwner().GetLogin(),
			Repo:  e.GetRepo().GetName(),
			SHA:   e.GetSHA(),
			State: state,
		}, nil
	case *gogithub.PullRequestEvent:
		pr := e.GetPullRequest()
		return domain.PullRequestHook{
			Action:            e.GetAction(),
			Ref:               refOf(e.GetRepo(), pr.GetNumber()),
			Author:            pr.GetUser().GetLogin(),
			Title:             pr.GetTitle(),
			URL:               pr.GetHTMLURL(),
			HeadSHA:           pr.GetHead().GetSHA(),
			RequestedReviewer: e.GetRequestedReviewer().GetLogin(),
		}, nil
	case *gogithub.PullRequestReviewEvent:
		pr := e.GetPullRequest()
		return domain.PullRequestReviewHook{
			Action:   e.GetAction(),
			Ref:      refOf(e.GetRepo(), pr.GetNumber()),
			Author:   pr.GetUser().GetLogin(),
			Title:    pr.GetTitle(),
			URL:      pr.GetHTMLURL(),
			HeadSHA:  pr.GetHead().GetSHA(),
			Reviewer: e.GetReview().GetUser().GetLogin(),
			State:    domain.ReviewState(strings.ToUpper(e.GetReview().GetState())),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedEvent, event)
	}
}

func refOf(repo *gogithub.Repository, number int) domain.PullRequestRef {
	return domain.PullRequestRef{Owner: repo.GetOwner().GetLogin(), Repo: repo.GetName(), Number: number}
}
