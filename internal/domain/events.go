package domain

import "fmt"

type EventKind string

const (
	EventKindOutgoingReview EventKind = "OutgoingReviewEvent"
	EventKindMyReview       EventKind = "MyReviewEvent"
	EventKindNewCommits     EventKind = "NewCommitsEvent"
	EventKindMentioned      EventKind = "MentionedEvent"
)

// Event is a timeline entry of a dashboard pull request. The set of
// implementations is closed; consumers switch on the concrete type and treat
// anything else as a programming error.
type Event interface {
	Kind() EventKind
	// Time returns the ordering timestamp in epoch ms, 0 when unknown.
	Time() int64
	isEvent()
}

// OutgoingReviewEvent groups the reviews shown on an outgoing PR. Reviews
// are ordered oldest first.
type OutgoingReviewEvent struct {
	Reviews []Review
	Latest  int64
}

type MyReviewEvent struct {
	Review Review
}

type NewCommitsEvent struct {
	Count        int
	Additions    int
	Deletions    int
	ChangedFiles int
	LastPushedAt int64
	URL          string
}

type MentionedEvent struct {
	Text        string
	MentionedAt int64
	URL         string
}

func (OutgoingReviewEvent) Kind() EventKind { return EventKindOutgoingReview }
func (MyReviewEvent) Kind() EventKind       { return EventKindMyReview }
func (NewCommitsEvent) Kind() EventKind     { return EventKindNewCommits }
func (MentionedEvent) Kind() EventKind      { return EventKindMentioned }

func (e OutgoingReviewEvent) Time() int64 { return e.Latest }
func (e MyReviewEvent) Time() int64       { return e.Review.CreatedAt }
func (e NewCommitsEvent) Time() int64     { return e.LastPushedAt }
func (e MentionedEvent) Time() int64      { return e.MentionedAt }

func (OutgoingReviewEvent) isEvent() {}
func (MyReviewEvent) isEvent()       {}
func (NewCommitsEvent) isEvent()     {}
func (MentionedEvent) isEvent()      {}

// UnknownEventError is raised when a switch over Event meets a type outside
// the closed set.
func UnknownEventError(e Event) error {
	return fmt.Errorf("unknown event type %T", e)
}
