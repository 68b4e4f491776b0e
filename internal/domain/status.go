package domain

import "fmt"

type StatusKind string

const (
	StatusUnknown          StatusKind = "UnknownStatus"
	StatusNoActionRequired StatusKind = "NoActionRequired"
	StatusNewActivity      StatusKind = "NewActivity"
	StatusChecksPending    StatusKind = "StatusChecksPending"
	StatusWaitingReview    StatusKind = "WaitingReview"
	StatusPendingChanges   StatusKind = "PendingChanges"
	StatusPendingMerge     StatusKind = "PendingMerge"
	StatusChecksFailed     StatusKind = "StatusChecksFailed"
	StatusNoReviewers      StatusKind = "NoReviewers"
	StatusReviewRequired   StatusKind = "ReviewRequired"
	StatusApprovalRequired StatusKind = "ApprovalRequired"
	StatusMergeRequired    StatusKind = "MergeRequired"
	StatusChangesRequested StatusKind = "ChangesRequested"
)

// Status is the single classification of a dashboard PR. Reviewers is only
// set for StatusWaitingReview.
type Status struct {
	Kind      StatusKind
	Reviewers []string
}

func NewStatus(kind StatusKind) Status {
	return Status{Kind: kind}
}

func WaitingReview(reviewers []string) Status {
	return Status{Kind: StatusWaitingReview, Reviewers: reviewers}
}

// Actionable reports whether the PR needs something from the viewer. Non
// actionable PRs sink to the bottom of the incoming list.
func (s Status) Actionable() bool {
	switch s.Kind {
	case StatusUnknown,
		StatusChangesRequested,
		StatusNoActionRequired,
		StatusNewActivity,
		StatusChecksPending:
		return false
	case StatusWaitingReview,
		StatusPendingChanges,
		StatusPendingMerge,
		StatusChecksFailed,
		StatusNoReviewers,
		StatusReviewRequired,
		StatusApprovalRequired,
		StatusMergeRequired:
		return true
	default:
		panic(fmt.Sprintf("unknown status kind %q", s.Kind))
	}
}
