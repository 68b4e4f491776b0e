package dashdata

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

const mentionMaxRunes = 300

// OutgoingTimeline builds the events of a PR authored by the viewer from its
// reduced, non-self reviews. Change requests are shown in preference to
// approvals, approvals in preference to anything else.
func OutgoingTimeline(reviews []domain.Review) []domain.Event {
	if len(reviews) == 0 {
		return nil
	}

	group := filterReviews(reviews, domain.ReviewStateChangesRequested)
	if len(group) == 0 {
		group = filterReviews(reviews, domain.ReviewStateApproved)
	}
	if len(group) == 0 {
		group = append([]domain.Review(nil), reviews...)
	}
	sort.SliceStable(group, func(i, j int) bool { return group[i].CreatedAt < group[j].CreatedAt })

	return []domain.Event{domain.OutgoingReviewEvent{
		Reviews: group,
		Latest:  group[len(group)-1].CreatedAt,
	}}
}

func filterReviews(reviews []domain.Review, state domain.ReviewState) []domain.Review {
	var out []domain.Review
	for _, r := range reviews {
		if r.State == state {
			out = append(out, r)
		}
	}
	return out
}

// IncomingTimeline builds the events of a PR the viewer is reviewing. The
// result is sorted with SortEvents.
func IncomingTimeline(in IncomingInput) []domain.Event {
	review, ok := SelectRelevantReview(in.Reviews, in.Viewer)
	if !ok {
		if in.Mention == nil {
			return nil
		}
		return []domain.Event{mentionEvent(*in.Mention)}
	}

	events := []domain.Event{domain.MyReviewEvent{Review: review.Review()}}
	if in.Mention != nil && in.Mention.CreatedAt > review.CreatedAt {
		events = append(events, mentionEvent(*in.Mention))
	}
	if newCommits := commitsAfter(in.Commits, review.CreatedAt); len(newCommits) > 0 {
		events = append(events, newCommitsEvent(in.URL, review.CommitOID, newCommits))
	}
	SortEvents(events)
	return events
}

func newCommitsEvent(prURL, fromOID string, commits []Commit) domain.NewCommitsEvent {
	ev := domain.NewCommitsEvent{Count: len(commits)}
	for _, c := range commits {
		ev.Additions += c.Additions
		ev.Deletions += c.Deletions
		ev.ChangedFiles += c.ChangedFiles
		if c.PushedAt > ev.LastPushedAt {
			ev.LastPushedAt = c.PushedAt
		}
	}

	last := commits[len(commits)-1].OID
	if fromOID == "" {
		ev.URL = prURL + "/files"
	} else {
		ev.URL = fmt.Sprintf("%s/files/%s..%s", prURL, fromOID, last)
	}
	return ev
}

func mentionEvent(m Mention) domain.MentionedEvent {
	return domain.MentionedEvent{
		Text:        TruncateMention(m.Text),
		MentionedAt: m.CreatedAt,
		URL:         m.URL,
	}
}

// TruncateMention shortens text to 300 runes followed by an ellipsis.
func TruncateMention(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= mentionMaxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:mentionMaxRunes]) + "…"
}

// SortEvents orders events oldest first. Events without a timestamp keep
// their slot and the timestamped ones are sorted around them.
func SortEvents(events []domain.Event) {
	var (
		slots []int
		timed []domain.Event
	)
	for i, e := range events {
		if e.Time() != 0 {
			slots = append(slots, i)
			timed = append(timed, e)
		}
	}
	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].Time() < timed[j].Time()
	})
	for k, i := range slots {
		events[i] = timed[k]
	}
}
