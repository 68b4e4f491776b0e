// Package dashdata derives the dashboard view of a pull request from
// already fetched GitHub data: reduced reviews, a status classification, an
// event timeline and the new-activity flag. Everything here is pure and safe
// to call concurrently.
package dashdata

import "github.com/PolymerLabs/project-health-sub000/internal/domain"

// RawReview is a review as returned by GitHub, before reduction.
// CreatedAt is the submission time in epoch ms or domain.NotSubmitted.
type RawReview struct {
	Author    string
	State     domain.ReviewState
	CreatedAt int64
	CommitOID string
}

func (r RawReview) Review() domain.Review {
	return domain.Review{Author: r.Author, State: r.State, CreatedAt: r.CreatedAt}
}

// Commit is a PR commit. PushedAt falls back to the commit date when GitHub
// does not report a push date.
type Commit struct {
	OID          string
	PushedAt     int64
	Additions    int
	Deletions    int
	ChangedFiles int
	CheckState   domain.CheckState
}

type Mention struct {
	Text      string
	CreatedAt int64
	URL       string
}

type Comment struct {
	Author    string
	CreatedAt int64
}

// IncomingInput describes a PR authored by someone else from the viewer's
// perspective. Reviews and Commits are in chronological order.
type IncomingInput struct {
	Viewer    string
	URL       string
	Requested bool
	Reviews   []RawReview
	Commits   []Commit
	Mention   *Mention
}

// Watermark holds the timestamps new activity is compared against.
type Watermark struct {
	LastViewed       int64
	FeatureEnabledAt int64
}
