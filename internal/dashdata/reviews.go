package dashdata

import (
	"sort"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

// ReduceReviews keeps one review per author. An important review
// (approved or changes requested) is never replaced by an unimportant one;
// otherwise the newer review wins. Reviews without an author are dropped.
// The result is ordered by author login.
func ReduceReviews(raw []RawReview) []domain.Review {
	byAuthor := make(map[string]domain.Review, len(raw))
	for _, r := range raw {
		if r.Author == "" {
			continue
		}
		existing, ok := byAuthor[r.Author]
		if !ok {
			byAuthor[r.Author] = r.Review()
			continue
		}
		if existing.State.Important() && !r.State.Important() {
			continue
		}
		if r.CreatedAt > existing.CreatedAt {
			byAuthor[r.Author] = r.Review()
		}
	}

	out := make([]domain.Review, 0, len(byAuthor))
	for _, r := range byAuthor {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Author < out[j].Author })
	return out
}

// ExcludeAuthor returns the reviews not written by login.
func ExcludeAuthor(raw []RawReview, login string) []RawReview {
	out := make([]RawReview, 0, len(raw))
	for _, r := range raw {
		if r.Author != login {
			out = append(out, r)
		}
	}
	return out
}

// ExcludePending drops reviews that have not been submitted yet.
func ExcludePending(raw []RawReview) []RawReview {
	out := make([]RawReview, 0, len(raw))
	for _, r := range raw {
		if r.State == domain.ReviewStatePending || r.CreatedAt == domain.NotSubmitted {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SelectRelevantReview picks the viewer's review that best describes where
// they stand on the PR. reviews must be in chronological order. The newest
// approval or change request wins over any comment-only review; with no
// such review the newest submitted review is used.
func SelectRelevantReview(reviews []RawReview, viewer string) (RawReview, bool) {
	var (
		relevant RawReview
		found    bool
	)
	for i := len(reviews) - 1; i >= 0; i-- {
		r := reviews[i]
		if r.Author != viewer || r.State == domain.ReviewStatePending {
			continue
		}
		if !found {
			relevant, found = r, true
		} else if r.State.Important() {
			relevant = r
		}
		if relevant.State.Important() {
			break
		}
	}
	return relevant, found
}
