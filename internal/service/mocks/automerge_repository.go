package mocks

import (
	"context"
	"sync"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

type MockAutomergeRepository struct {
	mu sync.Mutex

	Options map[domain.PullRequestRef]domain.AutomergeOption
	GetErr  error
	SetErr  error
}

func (m *MockAutomergeRepository) Get(ctx context.Context, ref domain.PullRequestRef) (domain.AutomergeOption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", m.GetErr
	}
	opt, ok := m.Options[ref]
	if !ok {
		return "", domain.ErrNotFound
	}
	return opt, nil
}

func (m *MockAutomergeRepository) Set(ctx context.Context, ref domain.PullRequestRef, opt domain.AutomergeOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.Options == nil {
		m.Options = map[domain.PullRequestRef]domain.AutomergeOption{}
	}
	m.Options[ref] = opt
	return nil
}
