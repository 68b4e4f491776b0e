package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
	"github.com/PolymerLabs/project-health-sub000/internal/github"
	"github.com/PolymerLabs/project-health-sub000/internal/service/mocks"
)

var discardLogger = slog.New(slog.DiscardHandler)

func node(t *testing.T, raw string) github.PullRequestNode {
	t.Helper()
	var n github.PullRequestNode
	require.NoError(t, json.Unmarshal([]byte(raw), &n))
	return n
}

func at(clock string) int64 {
	ts, err := time.Parse(time.RFC3339, "2024-01-01T"+clock+"Z")
	if err != nil {
		panic(err)
	}
	return ts.UnixMilli()
}

const outgoingQuery = "is:open is:pr archived:false author:me"

func dashboardFixture(t *testing.T) (*mocks.MockGitHub, *mocks.MockUserRepository, *mocks.MockCommitStatusRepository, *mocks.MockAutomergeRepository) {
	searches := incomingSearches("me")

	gh := &mocks.MockGitHub{Searches: map[string][]github.PullRequestNode{
		outgoingQuery: {
			node(t, `{"__typename":"PullRequest","id":"O1","number":1,"url":"https://github.com/o/r/pull/1",
				"createdAt":"2024-01-01T10:00:00Z","author":{"login":"me"},
				"repository":{"name":"r","owner":{"login":"o"}},
				"reviews":{"nodes":[{"author":{"login":"bob"},"state":"APPROVED","submittedAt":"2024-01-01T11:00:00Z"}]},
				"commits":{"nodes":[{"commit":{"oid":"head1","committedDate":"2024-01-01T10:30:00Z","status":null}}]}}`),
			node(t, `{"__typename":"PullRequest","id":"O2","number":2,"url":"https://github.com/o/r/pull/2",
				"createdAt":"2024-01-01T12:00:00Z","author":{"login":"me"},
				"repository":{"name":"r","owner":{"login":"o"}}}`),
			node(t, `{"__typename":"PullRequest","id":"O3","number":3,"createdAt":"2024-01-01T13:00:00Z","author":null,
				"repository":{"name":"r","owner":{"login":"o"}}}`),
		},
		searches[0].query: {
			node(t, `{"__typename":"PullRequest","id":"I1","number":11,"url":"https://github.com/o/r/pull/11",
				"createdAt":"2024-01-01T09:00:00Z","author":{"login":"bob"},
				"repository":{"name":"r","owner":{"login":"o"}}}`),
		},
		searches[1].query: {
			node(t, `{"__typename":"PullRequest","id":"I2","number":12,"url":"https://github.com/o/r/pull/12",
				"createdAt":"2024-01-01T08:00:00Z","author":{"login":"cid"},
				"repository":{"name":"r","owner":{"login":"o"}},
				"reviews":{"nodes":[{"author":{"login":"me"},"state":"CHANGES_REQUESTED","submittedAt":"2024-01-01T10:00:00Z","commit":{"oid":"aaa"}}]},
				"commits":{"nodes":[
					{"commit":{"oid":"aaa","committedDate":"2024-01-01T09:50:00Z","additions":9}},
					{"commit":{"oid":"bbb","pushedDate":"2024-01-01T11:00:00Z","committedDate":"2024-01-01T10:55:00Z","additions":3,"deletions":1,"changedFiles":2}}
				]}}`),
			node(t, `{"__typename":"PullRequest","id":"I4","number":14,"url":"https://github.com/o/r/pull/14",
				"createdAt":"2024-01-01T07:00:00Z","author":{"login":"dee"},
				"repository":{"name":"r","owner":{"login":"o"}},
				"reviews":{"nodes":[{"author":{"login":"me"},"state":"APPROVED","submittedAt":"2024-01-01T10:00:00Z"}]}}`),
		},
		searches[2].query: {
			node(t, `{"__typename":"PullRequest","id":"I2","number":12,"author":{"login":"cid"},
				"repository":{"name":"r","owner":{"login":"o"}}}`),
			node(t, `{"__typename":"PullRequest","id":"I3","number":13,"author":{"login":"me"},
				"repository":{"name":"r","owner":{"login":"o"}}}`),
		},
	}}

	users := &mocks.MockUserRepository{Users: map[string]*domain.User{
		"me": {Login: "me", Token: "tok", AvatarURL: "https://avatars/me", LastViewedAt: at("09:30:00")},
	}}
	statuses := &mocks.MockCommitStatusRepository{States: map[string]domain.CommitState{
		mocks.StatusKey(domain.PullRequestRef{Owner: "o", Repo: "r", Number: 1}, "head1"): domain.CommitStateSuccess,
	}}
	automerge := &mocks.MockAutomergeRepository{Options: map[domain.PullRequestRef]domain.AutomergeOption{
		{Owner: "o", Repo: "r", Number: 1}: domain.AutomergeSquash,
	}}
	return gh, users, statuses, automerge
}

func ids(prs []domain.PullRequest) []string {
	out := make([]string, len(prs))
	for i, pr := range prs {
		out[i] = pr.ID
	}
	return out
}

func byID(prs []domain.PullRequest, id string) domain.PullRequest {
	for _, pr := range prs {
		if pr.ID == id {
			return pr
		}
	}
	return domain.PullRequest{}
}

func TestDashboardService_FetchUserData(t *testing.T) {
	gh, users, statuses, automerge := dashboardFixture(t)
	svc := NewDashboardService(users, statuses, automerge, gh, discardLogger)

	data, err := svc.FetchUserData(context.Background(), "me", "tok")

	require.NoError(t, err)
	assert.Equal(t, "me", data.Login)
	assert.Equal(t, "https://avatars/me", data.AvatarURL)
	assert.Equal(t, at("09:30:00"), data.LastViewed)

	assert.Equal(t, []string{"O2", "O1"}, ids(data.OutgoingPRs))
	assert.Equal(t, []string{"I2", "I1", "I4"}, ids(data.IncomingPRs))

	o1 := byID(data.OutgoingPRs, "O1")
	assert.Equal(t, domain.StatusPendingMerge, o1.Status.Kind)
	assert.True(t, o1.HasNewActivity)
	require.NotNil(t, o1.AutomergeOpts)
	assert.Equal(t, domain.AutomergeSquash, *o1.AutomergeOpts)
	require.Len(t, o1.Events, 1)
	assert.Equal(t, domain.EventKindOutgoingReview, o1.Events[0].Kind())

	o2 := byID(data.OutgoingPRs, "O2")
	assert.Equal(t, domain.StatusNoReviewers, o2.Status.Kind)
	assert.False(t, o2.HasNewActivity)
	assert.Equal(t, domain.AutomergeManual, *o2.AutomergeOpts)

	i1 := byID(data.IncomingPRs, "I1")
	assert.Equal(t, domain.StatusReviewRequired, i1.Status.Kind)
	assert.Empty(t, i1.Events)
	assert.False(t, i1.HasNewActivity)

	i2 := byID(data.IncomingPRs, "I2")
	assert.Equal(t, domain.StatusApprovalRequired, i2.Status.Kind)
	assert.True(t, i2.HasNewActivity)
	require.Len(t, i2.Events, 2)
	assert.Equal(t, domain.NewCommitsEvent{
		Count:        1,
		Additions:    3,
		Deletions:    1,
		ChangedFiles: 2,
		LastPushedAt: at("11:00:00"),
		URL:          "https://github.com/o/r/pull/12/files/aaa..bbb",
	}, i2.Events[1])

	i4 := byID(data.IncomingPRs, "I4")
	assert.Equal(t, domain.StatusNoActionRequired, i4.Status.Kind)
	assert.False(t, i4.HasNewActivity)
	assert.Nil(t, i4.AutomergeOpts)
}

func TestDashboardService_FetchUserDataErrors(t *testing.T) {
	t.Run("search failure is an upstream error", func(t *testing.T) {
		gh, users, statuses, automerge := dashboardFixture(t)
		gh.SearchErrs = map[string]error{outgoingQuery: github.ErrRateLimited}
		svc := NewDashboardService(users, statuses, automerge, gh, discardLogger)

		_, err := svc.FetchUserData(context.Background(), "me", "tok")

		var de *domain.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, domain.ErrorCodeUpstream, de.Code)
		assert.ErrorIs(t, err, github.ErrRateLimited)
	})

	t.Run("unknown user", func(t *testing.T) {
		gh, _, statuses, automerge := dashboardFixture(t)
		svc := NewDashboardService(&mocks.MockUserRepository{}, statuses, automerge, gh, discardLogger)

		_, err := svc.FetchUserData(context.Background(), "me", "tok")

		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		gh, users, statuses, automerge := dashboardFixture(t)
		automerge.GetErr = errors.New("db down")
		svc := NewDashboardService(users, statuses, automerge, gh, discardLogger)

		_, err := svc.FetchUserData(context.Background(), "me", "tok")

		require.ErrorIs(t, err, automerge.GetErr)
	})
}
