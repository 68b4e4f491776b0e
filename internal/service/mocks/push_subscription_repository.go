package mocks

import (
	"context"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

type MockPushSubscriptionRepository struct {
	AddErr    error
	DeleteErr error

	Added   []domain.PushSubscription
	Deleted []string
}

func (m *MockPushSubscriptionRepository) Add(ctx context.Context, s *domain.PushSubscription) error {
	m.Added = append(m.Added, *s)
	return m.AddErr
}

func (m *MockPushSubscriptionRepository) DeleteByEndpoint(ctx context.Context, login, endpoint string) error {
	m.Deleted = append(m.Deleted, endpoint)
	return m.DeleteErr
}
