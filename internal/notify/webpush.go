// Package notify delivers push notifications to a user's registered
// browsers.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
)

type SubscriptionStore interface {
	ListByLogin(ctx context.Context, login string) ([]domain.PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, login, endpoint string) error
}

type VAPIDConfig struct {
	Subject    string
	PublicKey  string
	PrivateKey string
	TTL        int
}

type WebPushSender struct {
	subs       SubscriptionStore
	vapid      VAPIDConfig
	httpClient *http.Client
	logger     *slog.Logger
}

func NewWebPushSender(subs SubscriptionStore, vapid VAPIDConfig, httpClient *http.Client, logger *slog.Logger) *WebPushSender {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if vapid.TTL <= 0 {
		vapid.TTL = 60 * 60 * 24
	}
	return &WebPushSender{
		subs:       subs,
		vapid:      vapid,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Send pushes n to every subscription of login. Subscriptions the push
// service reports as gone are removed. Delivery continues past failures and
// the failures are returned together.
func (s *WebPushSender) Send(ctx context.Context, login string, n domain.Notification) error {
	subs, err := s.subs.ListByLogin(ctx, login)
	if err != nil {
		return fmt.Errorf("list push subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return nil
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	var errs []error
	for _, sub := range subs {
		if err := s.sendOne(ctx, sub, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *WebPushSender) sendOne(ctx context.Context, sub domain.PushSubscription, payload []byte) error {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys:     webpush.Keys{Auth: sub.Auth, P256dh: sub.P256dh},
	}, &webpush.Options{
		HTTPClient:      s.httpClient,
		Subscriber:      s.vapid.Subject,
		VAPIDPublicKey:  s.vapid.PublicKey,
		VAPIDPrivateKey: s.vapid.PrivateKey,
		TTL:             s.vapid.TTL,
	})
	if err != nil {
		return fmt.Errorf("send web push to %s: %w", sub.Endpoint, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		s.logger.Info("removing expired push subscription", "login", sub.Login, "endpoint", sub.Endpoint)
		if err := s.subs.DeleteByEndpoint(ctx, sub.Login, sub.Endpoint); err != nil {
			return fmt.Errorf("delete expired subscription: %w", err)
		}
		return nil
	case resp.StatusCode >= 400:
		return fmt.Errorf("web push to %s: status %d", sub.Endpoint, resp.StatusCode)
	}
	return nil
}

// LogSender only logs notifications. It is used when no VAPID keys are
// configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, login string, n domain.Notification) error {
	s.logger.Info("notification", "login", login, "title", n.Title, "body", n.Body, "tag", n.Tag)
	return nil
}
