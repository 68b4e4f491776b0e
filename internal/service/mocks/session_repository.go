package mocks

import (
	"context"
	"sync"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

type MockSessionRepository struct {
	mu sync.Mutex

	Sessions  map[string]*domain.Session
	GetErr    error
	CreateErr error
	DeleteErr error

	Created []domain.Session
	Deleted []string
}

func (m *MockSessionRepository) Create(ctx context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created = append(m.Created, *s)
	return m.CreateErr
}

func (m *MockSessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	s, ok := m.Sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, id)
	return m.DeleteErr
}
