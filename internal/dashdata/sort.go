package dashdata

import (
	"sort"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

// SortOutgoing orders PRs newest first.
func SortOutgoing(prs []domain.PullRequest) {
	sort.SliceStable(prs, func(i, j int) bool { return prs[i].CreatedAt > prs[j].CreatedAt })
}

// SortIncoming orders PRs by their latest event, most recent first, then
// moves PRs that need nothing from the viewer below the actionable ones
// without disturbing the order within either group.
func SortIncoming(prs []domain.PullRequest) {
	type ranked struct {
		pr         domain.PullRequest
		latest     int64
		actionable bool
	}
	rs := make([]ranked, len(prs))
	for i := range prs {
		rs[i] = ranked{pr: prs[i], latest: latestEventTime(&prs[i]), actionable: prs[i].Status.Actionable()}
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].latest > rs[j].latest })
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].actionable && !rs[j].actionable })
	for i := range rs {
		prs[i] = rs[i].pr
	}
}

// latestEventTime ignores the viewer's own review so that reviewing a PR
// does not bring it back to the top.
func latestEventTime(pr *domain.PullRequest) int64 {
	var latest int64
	for _, ev := range pr.Events {
		switch e := ev.(type) {
		case domain.MyReviewEvent:
			continue
		case domain.OutgoingReviewEvent, domain.NewCommitsEvent, domain.MentionedEvent:
			latest = max(latest, e.Time())
		default:
			panic(domain.UnknownEventError(e))
		}
	}
	if latest == 0 {
		return pr.CreatedAt
	}
	return latest
}
