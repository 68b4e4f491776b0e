package dashdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

func raw(author string, state domain.ReviewState, at int64) RawReview {
	return RawReview{Author: author, State: state, CreatedAt: at}
}

func TestReduceReviews(t *testing.T) {
	tests := []struct {
		name string
		in   []RawReview
		want []domain.Review
	}{
		{
			name: "empty",
			in:   nil,
			want: []domain.Review{},
		},
		{
			name: "one review per author",
			in: []RawReview{
				raw("bob", domain.ReviewStateCommented, 1),
				raw("alice", domain.ReviewStateApproved, 2),
			},
			want: []domain.Review{
				{Author: "alice", State: domain.ReviewStateApproved, CreatedAt: 2},
				{Author: "bob", State: domain.ReviewStateCommented, CreatedAt: 1},
			},
		},
		{
			name: "changes requested is sticky against a later comment",
			in: []RawReview{
				raw("bob", domain.ReviewStateChangesRequested, 1),
				raw("bob", domain.ReviewStateCommented, 2),
			},
			want: []domain.Review{{Author: "bob", State: domain.ReviewStateChangesRequested, CreatedAt: 1}},
		},
		{
			name: "approval is sticky against a later dismissal",
			in: []RawReview{
				raw("bob", domain.ReviewStateApproved, 1),
				raw("bob", domain.ReviewStateDismissed, 5),
			},
			want: []domain.Review{{Author: "bob", State: domain.ReviewStateApproved, CreatedAt: 1}},
		},
		{
			name: "newer important review replaces older important review",
			in: []RawReview{
				raw("bob", domain.ReviewStateApproved, 1),
				raw("bob", domain.ReviewStateChangesRequested, 2),
			},
			want: []domain.Review{{Author: "bob", State: domain.ReviewStateChangesRequested, CreatedAt: 2}},
		},
		{
			name: "newer approval replaces comment",
			in: []RawReview{
				raw("bob", domain.ReviewStateCommented, 1),
				raw("bob", domain.ReviewStateApproved, 2),
			},
			want: []domain.Review{{Author: "bob", State: domain.ReviewStateApproved, CreatedAt: 2}},
		},
		{
			name: "older review does not replace newer one",
			in: []RawReview{
				raw("bob", domain.ReviewStateCommented, 5),
				raw("bob", domain.ReviewStateCommented, 3),
			},
			want: []domain.Review{{Author: "bob", State: domain.ReviewStateCommented, CreatedAt: 5}},
		},
		{
			name: "pending review never replaces a submitted one",
			in: []RawReview{
				raw("bob", domain.ReviewStateCommented, 5),
				raw("bob", domain.ReviewStatePending, domain.NotSubmitted),
			},
			want: []domain.Review{{Author: "bob", State: domain.ReviewStateCommented, CreatedAt: 5}},
		},
		{
			name: "reviews without author are dropped",
			in: []RawReview{
				raw("", domain.ReviewStateApproved, 1),
				raw("bob", domain.ReviewStateApproved, 1),
			},
			want: []domain.Review{{Author: "bob", State: domain.ReviewStateApproved, CreatedAt: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReduceReviews(tt.in))
		})
	}
}

func TestReduceReviews_UniqueAuthorsAndIdempotent(t *testing.T) {
	states := []domain.ReviewState{
		domain.ReviewStateCommented,
		domain.ReviewStateApproved,
		domain.ReviewStateChangesRequested,
		domain.ReviewStateDismissed,
	}
	var in []RawReview
	for i := 0; i < 40; i++ {
		author := []string{"ann", "bob", "cid", "dee"}[i%4]
		in = append(in, raw(author, states[(i*7)%len(states)], int64(100-i)))
	}

	reduced := ReduceReviews(in)

	seen := map[string]bool{}
	for _, r := range reduced {
		require.False(t, seen[r.Author], "duplicate author %s", r.Author)
		seen[r.Author] = true
	}
	assert.Len(t, reduced, 4)

	again := make([]RawReview, 0, len(reduced))
	for _, r := range reduced {
		again = append(again, RawReview{Author: r.Author, State: r.State, CreatedAt: r.CreatedAt})
	}
	assert.Equal(t, reduced, ReduceReviews(again))
}

func TestExcludeHelpers(t *testing.T) {
	in := []RawReview{
		raw("me", domain.ReviewStateApproved, 1),
		raw("bob", domain.ReviewStatePending, domain.NotSubmitted),
		raw("bob", domain.ReviewStateCommented, 2),
	}

	assert.Equal(t, []RawReview{in[1], in[2]}, ExcludeAuthor(in, "me"))
	assert.Equal(t, []RawReview{in[0], in[2]}, ExcludePending(in))
}

func TestSelectRelevantReview(t *testing.T) {
	tests := []struct {
		name    string
		reviews []RawReview
		want    RawReview
		wantOK  bool
	}{
		{
			name:    "no reviews",
			reviews: nil,
		},
		{
			name: "only other authors",
			reviews: []RawReview{
				raw("bob", domain.ReviewStateApproved, 1),
			},
		},
		{
			name: "only pending",
			reviews: []RawReview{
				raw("me", domain.ReviewStatePending, domain.NotSubmitted),
			},
		},
		{
			name: "newest comment when only comments",
			reviews: []RawReview{
				raw("me", domain.ReviewStateCommented, 1),
				raw("me", domain.ReviewStateCommented, 2),
			},
			want:   raw("me", domain.ReviewStateCommented, 2),
			wantOK: true,
		},
		{
			name: "older approval outranks newer comment",
			reviews: []RawReview{
				raw("me", domain.ReviewStateApproved, 1),
				raw("me", domain.ReviewStateCommented, 2),
				raw("me", domain.ReviewStatePending, domain.NotSubmitted),
			},
			want:   raw("me", domain.ReviewStateApproved, 1),
			wantOK: true,
		},
		{
			name: "newest important review wins",
			reviews: []RawReview{
				raw("me", domain.ReviewStateChangesRequested, 1),
				raw("bob", domain.ReviewStateCommented, 2),
				raw("me", domain.ReviewStateApproved, 3),
			},
			want:   raw("me", domain.ReviewStateApproved, 3),
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectRelevantReview(tt.reviews, "me")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
