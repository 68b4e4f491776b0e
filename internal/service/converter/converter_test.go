package converter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolymerLabs/project-health-sub000/api/openapi"
	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

type bogusEvent struct{ domain.MentionedEvent }

func TestPullRequestToOpenAPI(t *testing.T) {
	opt := domain.AutomergeSquash
	pr := &domain.PullRequest{
		ID:             "PR_1",
		Ref:            domain.PullRequestRef{Owner: "o", Repo: "r", Number: 7},
		Author:         "bob",
		Title:          "Fix it",
		URL:            "https://github.com/o/r/pull/7",
		CreatedAt:      1000,
		MergeableState: domain.MergeableStateMergeable,
		Events: []domain.Event{
			domain.OutgoingReviewEvent{
				Reviews: []domain.Review{{Author: "ann", State: domain.ReviewStateApproved, CreatedAt: 2000}},
				Latest:  2000,
			},
			domain.MentionedEvent{Text: "hi @me", MentionedAt: 3000, URL: "u"},
		},
		Status:         domain.WaitingReview([]string{"cid"}),
		HasNewActivity: true,
		AutomergeOpts:  &opt,
	}

	out, err := PullRequestToOpenAPI(pr)
	require.NoError(t, err)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id":"PR_1","owner":"o","repo":"r","number":7,"author":"bob","avatarUrl":"",
		"title":"Fix it","url":"https://github.com/o/r/pull/7","createdAt":1000,
		"mergeable":"MERGEABLE",
		"events":[
			{"type":"OutgoingReviewEvent","reviews":[{"author":"ann","state":"APPROVED","createdAt":2000}],"latest":2000},
			{"type":"MentionedEvent","text":"hi @me","mentionedAt":3000,"url":"u"}
		],
		"status":{"type":"WaitingReview","reviewers":["cid"]},
		"hasNewActivity":true,
		"automergeOpts":"squash"
	}`, string(b))

	v, err := out.Events[1].ValueByDiscriminator()
	require.NoError(t, err)
	assert.Equal(t, openapi.MentionedEvent{Type: "MentionedEvent", Text: "hi @me", MentionedAt: 3000, Url: "u"}, v)
}

func TestStatusToOpenAPI(t *testing.T) {
	assert.Equal(t, openapi.Status{Type: openapi.StatusTypeNoReviewers}, StatusToOpenAPI(domain.NewStatus(domain.StatusNoReviewers)))
	assert.Equal(t, openapi.Status{Type: openapi.StatusTypeWaitingReview, Reviewers: &[]string{}}, StatusToOpenAPI(domain.WaitingReview(nil)))
}

func TestEventToOpenAPIUnknown(t *testing.T) {
	_, err := EventToOpenAPI(bogusEvent{})
	require.Error(t, err)
}

func TestDashboardToOpenAPIEmptyLists(t *testing.T) {
	out, err := DashboardToOpenAPI(&domain.DashboardData{Login: "me"})
	require.NoError(t, err)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"login":"me","avatarUrl":"","lastViewed":0,"outgoingPrs":[],"incomingPrs":[]}`, string(b))
}
