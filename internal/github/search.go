package github

import (
	"context"
	"fmt"
	"iter"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

// SearchPullRequests yields every PR matching a GitHub search query,
// following result pages lazily. Non-PR results are skipped.
func (c *Client) SearchPullRequests(ctx context.Context, token, query string) iter.Seq2[PullRequestNode, error] {
	return func(yield func(PullRequestNode, error) bool) {
		pages := Pages(ctx, c, token, searchPullRequestsQuery, map[string]any{"query": query},
			func(p *searchPage) PageInfo { return p.Search.PageInfo })

		for page, err := range pages {
			if err != nil {
				yield(PullRequestNode{}, fmt.Errorf("search pull requests %q: %w", query, err))
				return
			}
			for _, node := range page.Search.Nodes {
				if !node.IsPullRequest() {
					continue
				}
				if !yield(node, nil) {
					return
				}
			}
		}
	}
}

// PullRequestsForCommit finds open PRs in owner/repo whose head is sha.
func (c *Client) PullRequestsForCommit(ctx context.Context, token, owner, repo, sha string) ([]CommitPullRequest, error) {
	var data struct {
		Search struct {
			Nodes []commitPullRequestNode `json:"nodes"`
		} `json:"search"`
	}
	query := fmt.Sprintf("repo:%s/%s is:pr is:open %s", owner, repo, sha)
	if err := c.Query(ctx, token, commitPullRequestsQuery, map[string]any{"query": query}, &data); err != nil {
		return nil, fmt.Errorf("find pull requests for commit %s: %w", sha, err)
	}

	var out []CommitPullRequest
	for _, n := range data.Search.Nodes {
		if n.Typename != "PullRequest" || n.HeadRefOID != sha || n.Author == nil {
			continue
		}
		out = append(out, CommitPullRequest{
			Ref:      domain.PullRequestRef{Owner: n.Repository.Owner.Login, Repo: n.Repository.Name, Number: n.Number},
			Author:   n.Author.Login,
			Title:    n.Title,
			URL:      n.URL,
			HeadSHA:  n.HeadRefOID,
			Approved: n.ReviewDecision == "APPROVED",
		})
	}
	return out, nil
}

// Viewer returns the account the token belongs to.
func (c *Client) Viewer(ctx context.Context, token string) (*Viewer, error) {
	var data struct {
		Viewer Viewer `json:"viewer"`
	}
	if err := c.Query(ctx, token, viewerQuery, nil, &data); err != nil {
		return nil, fmt.Errorf("get viewer: %w", err)
	}
	return &data.Viewer, nil
}
