package mocks

import (
	"context"
	"sync"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

type SentNotification struct {
	Login        string
	Notification domain.Notification
}

type MockNotifier struct {
	mu sync.Mutex

	Err  error
	Sent []SentNotification
}

func (m *MockNotifier) Send(ctx context.Context, login string, n domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentNotification{Login: login, Notification: n})
	return m.Err
}
