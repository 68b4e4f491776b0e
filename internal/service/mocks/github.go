package mocks

import (
	"context"
	"iter"
	"sync"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
	"github.com/PolymerLabs/project-health-sub000/internal/github"
)

type MergeCall struct {
	Token  string
	Ref    domain.PullRequestRef
	Method string
}

type MockGitHub struct {
	mu sync.Mutex

	Searches   map[string][]github.PullRequestNode
	SearchErrs map[string]error
	// BlockSearch makes searches wait for their context and record its error.
	BlockSearch bool
	SearchCtxErr error

	CommitPRs    []github.CommitPullRequest
	CommitPRsErr error

	ViewerResult *github.Viewer
	ViewerErr    error

	MergeErr error
	Merged   []MergeCall
	Queries  []string

	Authors   map[domain.PullRequestRef]string
	AuthorErr error
}

func (m *MockGitHub) SearchPullRequests(ctx context.Context, token, query string) iter.Seq2[github.PullRequestNode, error] {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	nodes, err := m.Searches[query], m.SearchErrs[query]
	m.mu.Unlock()

	return func(yield func(github.PullRequestNode, error) bool) {
		if m.BlockSearch {
			<-ctx.Done()
			m.mu.Lock()
			m.SearchCtxErr = ctx.Err()
			m.mu.Unlock()
			yield(github.PullRequestNode{}, ctx.Err())
			return
		}
		for _, n := range nodes {
			if !yield(n, nil) {
				return
			}
		}
		if err != nil {
			yield(github.PullRequestNode{}, err)
		}
	}
}

func (m *MockGitHub) PullRequestsForCommit(ctx context.Context, token, owner, repo, sha string) ([]github.CommitPullRequest, error) {
	return m.CommitPRs, m.CommitPRsErr
}

func (m *MockGitHub) Viewer(ctx context.Context, token string) (*github.Viewer, error) {
	return m.ViewerResult, m.ViewerErr
}

func (m *MockGitHub) PullRequestAuthor(ctx context.Context, token string, ref domain.PullRequestRef) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AuthorErr != nil {
		return "", m.AuthorErr
	}
	author, ok := m.Authors[ref]
	if !ok {
		return "", domain.ErrNotFound
	}
	return author, nil
}

func (m *MockGitHub) Merge(ctx context.Context, token string, ref domain.PullRequestRef, method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Merged = append(m.Merged, MergeCall{Token: token, Ref: ref, Method: method})
	return m.MergeErr
}
