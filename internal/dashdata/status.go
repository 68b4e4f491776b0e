package dashdata

import "github.com/PolymerLabs/project-health-sub000/internal/domain"

// ClassifyOutgoing returns the status of a PR authored by the viewer.
// reviews must already be reduced and exclude the viewer's own reviews.
// When latest is nil nothing is known about the head commit and the
// approval count decides; otherwise change requests older than the latest
// push are treated as addressed and the head commit's checks are consulted.
func ClassifyOutgoing(reviewRequests []string, reviews []domain.Review, latest *Commit) domain.Status {
	if len(reviewRequests)+len(reviews) == 0 {
		return domain.NewStatus(domain.StatusNoReviewers)
	}
	if latest == nil {
		return classifyOutgoingBasic(reviewRequests, reviews)
	}
	return classifyOutgoingWithChecks(reviewRequests, reviews, latest)
}

func classifyOutgoingBasic(reviewRequests []string, reviews []domain.Review) domain.Status {
	reviewerCount := len(reviewRequests) + len(reviews)
	approved := 0
	for _, r := range reviews {
		switch r.State {
		case domain.ReviewStateChangesRequested:
			return domain.NewStatus(domain.StatusPendingChanges)
		case domain.ReviewStateApproved:
			approved++
		}
	}
	if approved == reviewerCount {
		return domain.NewStatus(domain.StatusPendingMerge)
	}
	return domain.WaitingReview(waitingOn(reviewRequests, reviews))
}

func classifyOutgoingWithChecks(reviewRequests []string, reviews []domain.Review, latest *Commit) domain.Status {
	approved := false
	for _, r := range reviews {
		switch r.State {
		case domain.ReviewStateChangesRequested:
			if r.CreatedAt > latest.PushedAt {
				return domain.NewStatus(domain.StatusPendingChanges)
			}
		case domain.ReviewStateApproved:
			approved = true
		}
	}
	if !approved {
		return domain.WaitingReview(waitingOn(reviewRequests, reviews))
	}

	switch latest.CheckState {
	case domain.CheckStatePending:
		return domain.NewStatus(domain.StatusChecksPending)
	case domain.CheckStateError, domain.CheckStateFailure:
		return domain.NewStatus(domain.StatusChecksFailed)
	case domain.CheckStateSuccess, domain.CheckStateNone:
		return domain.NewStatus(domain.StatusPendingMerge)
	default:
		return domain.NewStatus(domain.StatusUnknown)
	}
}

// waitingOn lists requested reviewers followed by reviewers who have not
// approved, without duplicates.
func waitingOn(reviewRequests []string, reviews []domain.Review) []string {
	seen := make(map[string]struct{}, len(reviewRequests)+len(reviews))
	out := make([]string, 0, len(reviewRequests)+len(reviews))
	add := func(login string) {
		if _, ok := seen[login]; ok {
			return
		}
		seen[login] = struct{}{}
		out = append(out, login)
	}
	for _, login := range reviewRequests {
		add(login)
	}
	for _, r := range reviews {
		if r.State != domain.ReviewStateApproved {
			add(r.Author)
		}
	}
	return out
}

// ClassifyIncoming returns the status of a PR from the point of view of a
// reviewer who did not author it.
func ClassifyIncoming(in IncomingInput) domain.Status {
	review, ok := SelectRelevantReview(in.Reviews, in.Viewer)
	if !ok {
		if in.Requested {
			return domain.NewStatus(domain.StatusReviewRequired)
		}
		return domain.NewStatus(domain.StatusNewActivity)
	}

	switch {
	case review.State == domain.ReviewStateChangesRequested && len(commitsAfter(in.Commits, review.CreatedAt)) == 0:
		return domain.NewStatus(domain.StatusChangesRequested)
	case review.State != domain.ReviewStateApproved:
		return domain.NewStatus(domain.StatusApprovalRequired)
	default:
		return domain.NewStatus(domain.StatusNoActionRequired)
	}
}

func commitsAfter(commits []Commit, ts int64) []Commit {
	var out []Commit
	for _, c := range commits {
		if c.PushedAt > ts {
			out = append(out, c)
		}
	}
	return out
}
