package mocks

import (
	"context"
	"sync"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

type MockUserRepository struct {
	mu sync.Mutex

	Users               map[string]*domain.User
	GetByLoginErr       error
	UpsertErr           error
	SetLastViewedErr    error
	EnableLastViewedErr error

	Upserted   []domain.User
	LastViewed map[string]int64
	EnabledAt  map[string]int64
}

func (m *MockUserRepository) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetByLoginErr != nil {
		return nil, m.GetByLoginErr
	}
	u, ok := m.Users[login]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) Upsert(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Upserted = append(m.Upserted, *u)
	return m.UpsertErr
}

func (m *MockUserRepository) SetLastViewed(ctx context.Context, login string, at int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetLastViewedErr != nil {
		return m.SetLastViewedErr
	}
	if m.LastViewed == nil {
		m.LastViewed = map[string]int64{}
	}
	m.LastViewed[login] = at
	return nil
}

func (m *MockUserRepository) EnableLastViewed(ctx context.Context, login string, at int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.EnableLastViewedErr != nil {
		return m.EnableLastViewedErr
	}
	if m.EnabledAt == nil {
		m.EnabledAt = map[string]int64{}
	}
	if _, ok := m.EnabledAt[login]; !ok {
		m.EnabledAt[login] = at
	}
	return nil
}
