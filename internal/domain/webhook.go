package domain

// Hook is a decoded GitHub webhook delivery. Implementations are the three
// event types the service reacts to.
type Hook interface {
	EventName() string
	isHook()
}

type StatusHook struct {
	Owner string
	Repo  string
	SHA   string
	State CommitState
}

type PullRequestHook struct {
	Action            string
	Ref               PullRequestRef
	Author            string
	Title             string
	URL               string
	HeadSHA           string
	RequestedReviewer string
}

type PullRequestReviewHook struct {
	Action   string
	Ref      PullRequestRef
	Author   string
	Title    string
	URL      string
	HeadSHA  string
	Reviewer string
	State    ReviewState
}

func (StatusHook) EventName() string            { return "status" }
func (PullRequestHook) EventName() string       { return "pull_request" }
func (PullRequestReviewHook) EventName() string { return "pull_request_review" }

func (StatusHook) isHook()            {}
func (PullRequestHook) isHook()       {}
func (PullRequestReviewHook) isHook() {}
