package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	gogithub "github.com/google/go-github/v66/github"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

func (c *Client) rest(token string) (*gogithub.Client, error) {
	gh := gogithub.NewClient(c.httpClient).WithAuthToken(token)
	if c.restBaseURL != "" {
		base, err := url.Parse(c.restBaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse rest base url: %w", err)
		}
		gh.BaseURL = base
	}
	return gh, nil
}

// Merge merges a PR with the given method (merge, squash or rebase).
func (c *Client) Merge(ctx context.Context, token string, ref domain.PullRequestRef, method string) error {
	gh, err := c.rest(token)
	if err != nil {
		return err
	}

	_, _, err = gh.PullRequests.Merge(ctx, ref.Owner, ref.Repo, ref.Number, "", &gogithub.PullRequestOptions{
		MergeMethod: method,
	})
	if err != nil {
		return fmt.Errorf("merge %s/%s#%d: %w", ref.Owner, ref.Repo, ref.Number, err)
	}
	return nil
}

// PullRequestAuthor returns the login of the PR's author. A PR the token
// cannot see yields domain.ErrNotFound.
func (c *Client) PullRequestAuthor(ctx context.Context, token string, ref domain.PullRequestRef) (string, error) {
	gh, err := c.rest(token)
	if err != nil {
		return "", err
	}

	pr, _, err := gh.PullRequests.Get(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		var apiErr *gogithub.ErrorResponse
		if errors.As(err, &apiErr) && apiErr.Response != nil && apiErr.Response.StatusCode == http.StatusNotFound {
			return "", fmt.Errorf("get %s/%s#%d: %w", ref.Owner, ref.Repo, ref.Number, domain.ErrNotFound)
		}
		return "", fmt.Errorf("get %s/%s#%d: %w", ref.Owner, ref.Repo, ref.Number, err)
	}
	return pr.GetUser().GetLogin(), nil
}

// ErrorMessage prefers the message GitHub put in an API error response over
// the full error text.
func ErrorMessage(err error) string {
	var apiErr *gogithub.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
