package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

// StatusKey builds the key MockCommitStatusRepository.States is indexed by.
func StatusKey(ref domain.PullRequestRef, sha string) string {
	return fmt.Sprintf("%s/%s#%d@%s", ref.Owner, ref.Repo, ref.Number, sha)
}

type MockCommitStatusRepository struct {
	mu sync.Mutex

	States        map[string]domain.CommitState
	GetErr        error
	TransitionErr error
	ForgetErr     error

	Forgotten []domain.PullRequestRef
}

func (m *MockCommitStatusRepository) Get(ctx context.Context, ref domain.PullRequestRef, sha string) (domain.CommitState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", m.GetErr
	}
	state, ok := m.States[StatusKey(ref, sha)]
	if !ok {
		return "", domain.ErrNotFound
	}
	return state, nil
}

func (m *MockCommitStatusRepository) Transition(ctx context.Context, ref domain.PullRequestRef, sha string, state domain.CommitState) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TransitionErr != nil {
		return false, m.TransitionErr
	}
	if m.States == nil {
		m.States = map[string]domain.CommitState{}
	}
	key := StatusKey(ref, sha)
	if prev, ok := m.States[key]; ok && prev == state {
		return false, nil
	}
	m.States[key] = state
	return true, nil
}

func (m *MockCommitStatusRepository) ForgetPullRequest(ctx context.Context, ref domain.PullRequestRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Forgotten = append(m.Forgotten, ref)
	return m.ForgetErr
}
