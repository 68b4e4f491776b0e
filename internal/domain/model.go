package domain

type ReviewState string

const (
	ReviewStatePending          ReviewState = "PENDING"
	ReviewStateCommented        ReviewState = "COMMENTED"
	ReviewStateApproved         ReviewState = "APPROVED"
	ReviewStateChangesRequested ReviewState = "CHANGES_REQUESTED"
	ReviewStateDismissed        ReviewState = "DISMISSED"
)

// Important reports whether the state decides a PR's outcome. Important
// reviews are never overwritten by a later unimportant one.
func (s ReviewState) Important() bool {
	return s == ReviewStateApproved || s == ReviewStateChangesRequested
}

// NotSubmitted marks a review without a submission time.
const NotSubmitted int64 = -1

type Review struct {
	Author    string
	State     ReviewState
	CreatedAt int64
}

type MergeableState string

const (
	MergeableStateMergeable   MergeableState = "MERGEABLE"
	MergeableStateConflicting MergeableState = "CONFLICTING"
	MergeableStateUnknown     MergeableState = "UNKNOWN"
)

// CheckState is the combined status-check state of a commit as reported by
// the GraphQL API. The empty value means no checks were reported.
type CheckState string

const (
	CheckStateNone    CheckState = ""
	CheckStateError   CheckState = "ERROR"
	CheckStateFailure CheckState = "FAILURE"
	CheckStatePending CheckState = "PENDING"
	CheckStateSuccess CheckState = "SUCCESS"
)

// PullRequestRef identifies a pull request across repositories.
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

type PullRequest struct {
	ID             string
	Ref            PullRequestRef
	Author         string
	AvatarURL      string
	Title          string
	URL            string
	CreatedAt      int64
	MergeableState MergeableState
	Events         []Event
	Status         Status
	HasNewActivity bool
	AutomergeOpts  *AutomergeOption
}

type DashboardData struct {
	Login       string
	AvatarURL   string
	LastViewed  int64
	OutgoingPRs []PullRequest
	IncomingPRs []PullRequest
}

type User struct {
	Login                      string
	Token                      string
	Scopes                     []string
	AvatarURL                  string
	LastViewedAt               int64
	FeatureLastViewedEnabledAt int64
}

type Session struct {
	ID        string
	Login     string
	CreatedAt int64
}

// CommitState is the check-run state persisted per commit from status
// webhooks. Values are lowercase as delivered by GitHub.
type CommitState string

const (
	CommitStateError   CommitState = "error"
	CommitStateFailure CommitState = "failure"
	CommitStatePending CommitState = "pending"
	CommitStateSuccess CommitState = "success"
)

func (s CommitState) Valid() bool {
	switch s {
	case CommitStateError, CommitStateFailure, CommitStatePending, CommitStateSuccess:
		return true
	default:
		return false
	}
}

// Final reports whether no further transition is expected for the commit.
func (s CommitState) Final() bool {
	return s != CommitStatePending
}

func (s CommitState) CheckState() CheckState {
	switch s {
	case CommitStateError:
		return CheckStateError
	case CommitStateFailure:
		return CheckStateFailure
	case CommitStatePending:
		return CheckStatePending
	case CommitStateSuccess:
		return CheckStateSuccess
	default:
		return CheckStateNone
	}
}

type AutomergeOption string

const (
	AutomergeManual AutomergeOption = "manual"
	AutomergeMerge  AutomergeOption = "merge"
	AutomergeSquash AutomergeOption = "squash"
	AutomergeRebase AutomergeOption = "rebase"
)

func (o AutomergeOption) Valid() bool {
	switch o {
	case AutomergeManual, AutomergeMerge, AutomergeSquash, AutomergeRebase:
		return true
	default:
		return false
	}
}

type PushSubscription struct {
	ID       string
	Login    string
	Endpoint string
	P256dh   string
	Auth     string
}

type Notification struct {
	Title              string         `json:"title"`
	Body               string         `json:"body"`
	Icon               string         `json:"icon,omitempty"`
	Data               map[string]any `json:"data,omitempty"`
	Tag                string         `json:"tag,omitempty"`
	RequireInteraction bool           `json:"requireInteraction"`
}
