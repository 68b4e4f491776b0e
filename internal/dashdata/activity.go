package dashdata

import (
	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

// LastActivity returns the time of the latest action on pr that the viewer
// did not perform themselves. ok is false when there is no such action, in
// particular whenever the most recent action is the viewer's own.
func LastActivity(viewer string, pr *domain.PullRequest, lastComment *Comment) (last int64, ok bool) {
	if pr.Author != viewer {
		last, ok = pr.CreatedAt, true
	}

	if n := len(pr.Events); n > 0 {
		switch e := pr.Events[n-1].(type) {
		case domain.OutgoingReviewEvent:
			if len(e.Reviews) > 0 {
				last, ok = e.Reviews[len(e.Reviews)-1].CreatedAt, true
			}
		case domain.MyReviewEvent:
			if e.Review.Author == viewer {
				return 0, false
			}
			last, ok = e.Review.CreatedAt, true
		case domain.NewCommitsEvent:
			last, ok = e.LastPushedAt, true
		case domain.MentionedEvent:
			last, ok = e.MentionedAt, true
		default:
			panic(domain.UnknownEventError(e))
		}
	}

	if lastComment != nil && (!ok || lastComment.CreatedAt > last) {
		if lastComment.Author == viewer {
			return 0, false
		}
		last, ok = lastComment.CreatedAt, true
	}
	return last, ok
}

// HasNewActivity compares the result of LastActivity with the viewer's
// watermark. Activity from before the feature was enabled for the viewer is
// never reported.
func HasNewActivity(last int64, ok bool, w Watermark) bool {
	if !ok {
		return false
	}
	return last > max(w.LastViewed, w.FeatureEnabledAt)
}
