package github

import (
	"errors"
	"regexp"
	"time"

	"github.com/PolymerLabs/project-health-sub000/internal/dashdata"
	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

// ErrMissingAuthor marks a PR whose author account no longer exists.
var ErrMissingAuthor = errors.New("pull request has no author")

type Actor struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatarUrl"`
}

type repository struct {
	Name  string `json:"name"`
	Owner struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type reviewNode struct {
	Author      *Actor     `json:"author"`
	State       string     `json:"state"`
	SubmittedAt *time.Time `json:"submittedAt"`
	Commit      *struct {
		OID string `json:"oid"`
	} `json:"commit"`
}

type commitNode struct {
	OID           string     `json:"oid"`
	PushedDate    *time.Time `json:"pushedDate"`
	CommittedDate time.Time  `json:"committedDate"`
	Additions     int        `json:"additions"`
	Deletions     int        `json:"deletions"`
	ChangedFiles  int        `json:"changedFiles"`
	Status        *struct {
		State string `json:"state"`
	} `json:"status"`
}

type commentNode struct {
	Author    *Actor    `json:"author"`
	BodyText  string    `json:"bodyText"`
	CreatedAt time.Time `json:"createdAt"`
	URL       string    `json:"url"`
}

// PullRequestNode is a search result as returned by GitHub. Conversion to
// dashdata inputs happens through its methods.
type PullRequestNode struct {
	Typename   string     `json:"__typename"`
	ID         string     `json:"id"`
	Number     int        `json:"number"`
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	CreatedAt  time.Time  `json:"createdAt"`
	Mergeable  string     `json:"mergeable"`
	BodyText   string     `json:"bodyText"`
	Author     *Actor     `json:"author"`
	Repository repository `json:"repository"`

	ReviewRequests struct {
		Nodes []struct {
			RequestedReviewer *struct {
				Typename string `json:"__typename"`
				Login    string `json:"login"`
			} `json:"requestedReviewer"`
		} `json:"nodes"`
	} `json:"reviewRequests"`
	ReviewsConn struct {
		Nodes []reviewNode `json:"nodes"`
	} `json:"reviews"`
	CommitsConn struct {
		Nodes []struct {
			Commit commitNode `json:"commit"`
		} `json:"nodes"`
	} `json:"commits"`
	CommentsConn struct {
		Nodes []commentNode `json:"nodes"`
	} `json:"comments"`
}

func (n *PullRequestNode) IsPullRequest() bool {
	return n.Typename == "PullRequest"
}

func (n *PullRequestNode) Ref() domain.PullRequestRef {
	return domain.PullRequestRef{Owner: n.Repository.Owner.Login, Repo: n.Repository.Name, Number: n.Number}
}

// PullRequest returns the dashboard projection without events or status.
func (n *PullRequestNode) PullRequest() (domain.PullRequest, error) {
	if n.Author == nil || n.Author.Login == "" {
		return domain.PullRequest{}, ErrMissingAuthor
	}

	mergeable := domain.MergeableState(n.Mergeable)
	switch mergeable {
	case domain.MergeableStateMergeable, domain.MergeableStateConflicting:
	default:
		mergeable = domain.MergeableStateUnknown
	}

	return domain.PullRequest{
		ID:             n.ID,
		Ref:            n.Ref(),
		Author:         n.Author.Login,
		AvatarURL:      n.Author.AvatarURL,
		Title:          n.Title,
		URL:            n.URL,
		CreatedAt:      n.CreatedAt.UnixMilli(),
		MergeableState: mergeable,
	}, nil
}

// RequestedReviewers lists user logins with a pending review request.
// Team requests are skipped.
func (n *PullRequestNode) RequestedReviewers() []string {
	var out []string
	for _, rr := range n.ReviewRequests.Nodes {
		if rr.RequestedReviewer == nil || rr.RequestedReviewer.Typename != "User" {
			continue
		}
		out = append(out, rr.RequestedReviewer.Login)
	}
	return out
}

func (n *PullRequestNode) Reviews() []dashdata.RawReview {
	out := make([]dashdata.RawReview, 0, len(n.ReviewsConn.Nodes))
	for _, r := range n.ReviewsConn.Nodes {
		raw := dashdata.RawReview{State: domain.ReviewState(r.State), CreatedAt: domain.NotSubmitted}
		if r.Author != nil {
			raw.Author = r.Author.Login
		}
		if r.SubmittedAt != nil {
			raw.CreatedAt = r.SubmittedAt.UnixMilli()
		}
		if r.Commit != nil {
			raw.CommitOID = r.Commit.OID
		}
		out = append(out, raw)
	}
	return out
}

func (n *PullRequestNode) Commits() []dashdata.Commit {
	out := make([]dashdata.Commit, 0, len(n.CommitsConn.Nodes))
	for _, node := range n.CommitsConn.Nodes {
		c := node.Commit
		pushed := c.CommittedDate
		if c.PushedDate != nil {
			pushed = *c.PushedDate
		}
		commit := dashdata.Commit{
			OID:          c.OID,
			PushedAt:     pushed.UnixMilli(),
			Additions:    c.Additions,
			Deletions:    c.Deletions,
			ChangedFiles: c.ChangedFiles,
		}
		if c.Status != nil {
			commit.CheckState = checkState(c.Status.State)
		}
		out = append(out, commit)
	}
	return out
}

// LatestCommit returns the head commit, nil when GitHub returned none.
func (n *PullRequestNode) LatestCommit() *dashdata.Commit {
	commits := n.Commits()
	if len(commits) == 0 {
		return nil
	}
	return &commits[len(commits)-1]
}

func (n *PullRequestNode) LastComment() *dashdata.Comment {
	comments := n.CommentsConn.Nodes
	if len(comments) == 0 {
		return nil
	}
	last := comments[len(comments)-1]
	c := &dashdata.Comment{CreatedAt: last.CreatedAt.UnixMilli()}
	if last.Author != nil {
		c.Author = last.Author.Login
	}
	return c
}

// LatestMention finds the newest comment by someone else that mentions
// login, falling back to the PR description.
func (n *PullRequestNode) LatestMention(login string) *dashdata.Mention {
	handle := mentionPattern(login)
	comments := n.CommentsConn.Nodes
	for i := len(comments) - 1; i >= 0; i-- {
		c := comments[i]
		if c.Author != nil && c.Author.Login == login {
			continue
		}
		if handle.MatchString(c.BodyText) {
			return &dashdata.Mention{Text: c.BodyText, CreatedAt: c.CreatedAt.UnixMilli(), URL: c.URL}
		}
	}
	if n.Author != nil && n.Author.Login != login && handle.MatchString(n.BodyText) {
		return &dashdata.Mention{Text: n.BodyText, CreatedAt: n.CreatedAt.UnixMilli(), URL: n.URL}
	}
	return nil
}

// mentionPattern matches @login case-insensitively. Logins may contain
// hyphens, so @bob must not match @bobby or @bob-bot.
func mentionPattern(login string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)@` + regexp.QuoteMeta(login) + `(?:[^A-Za-z0-9-]|$)`)
}

func checkState(s string) domain.CheckState {
	switch s {
	case "EXPECTED", "PENDING":
		return domain.CheckStatePending
	case "ERROR":
		return domain.CheckStateError
	case "FAILURE":
		return domain.CheckStateFailure
	case "SUCCESS":
		return domain.CheckStateSuccess
	default:
		return domain.CheckState(s)
	}
}

type searchPage struct {
	Search struct {
		PageInfo PageInfo          `json:"pageInfo"`
		Nodes    []PullRequestNode `json:"nodes"`
	} `json:"search"`
}

// CommitPullRequest is an open PR whose head is a given commit.
type CommitPullRequest struct {
	Ref      domain.PullRequestRef
	Author   string
	Title    string
	URL      string
	HeadSHA  string
	Approved bool
}

type commitPullRequestNode struct {
	Typename       string     `json:"__typename"`
	Number         int        `json:"number"`
	Title          string     `json:"title"`
	URL            string     `json:"url"`
	HeadRefOID     string     `json:"headRefOid"`
	ReviewDecision string     `json:"reviewDecision"`
	Author         *Actor     `json:"author"`
	Repository     repository `json:"repository"`
}

type Viewer struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatarUrl"`
}
