package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolymerLabs/project-health-sub000/api/openapi"
	"github.com/PolymerLabs/project-health-sub000/internal/domain"
	"github.com/PolymerLabs/project-health-sub000/internal/github"
	"github.com/PolymerLabs/project-health-sub000/internal/service"
	"github.com/PolymerLabs/project-health-sub000/internal/service/mocks"
)

const webhookSecret = "s3cret"

type apiFixture struct {
	server    *Server
	logger    *slog.Logger
	router    http.Handler
	users     *mocks.MockUserRepository
	sessions  *mocks.MockSessionRepository
	statuses  *mocks.MockCommitStatusRepository
	automerge *mocks.MockAutomergeRepository
	subs      *mocks.MockPushSubscriptionRepository
	github    *mocks.MockGitHub
}

func newAPIFixture() *apiFixture {
	f := &apiFixture{
		users: &mocks.MockUserRepository{Users: map[string]*domain.User{
			"me": {Login: "me", Token: "tok", AvatarURL: "https://avatars/me", LastViewedAt: 42},
		}},
		sessions:  &mocks.MockSessionRepository{Sessions: map[string]*domain.Session{"s1": {ID: "s1", Login: "me"}}},
		statuses:  &mocks.MockCommitStatusRepository{},
		automerge: &mocks.MockAutomergeRepository{},
		subs:      &mocks.MockPushSubscriptionRepository{},
		github:    &mocks.MockGitHub{},
	}
	logger := slog.New(slog.DiscardHandler)
	notifier := &mocks.MockNotifier{}

	automerge := service.NewAutomergeService(f.automerge, f.users, f.github, notifier, "", logger)
	app := service.NewApp(
		service.NewDashboardService(f.users, f.statuses, f.automerge, f.github, logger),
		service.NewUserService(f.users, f.sessions, f.automerge, f.subs, f.github),
		service.NewWebhookService(f.statuses, f.github, notifier, automerge, "", "", logger),
		automerge,
	)
	f.server = NewServer(app, logger, webhookSecret)
	f.logger = logger
	f.router = NewRouter(f.server, logger, 0)
	return f
}

func (f *apiFixture) do(method, target, body string, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	for _, opt := range opts {
		opt(r)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)
	return w
}

func withCookie(r *http.Request) {
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "s1"})
}

func withBearer(r *http.Request) {
	r.Header.Set("Authorization", "Bearer s1")
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp openapi.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return string(resp.Error.Code)
}

func TestHealthCheck(t *testing.T) {
	f := newAPIFixture()

	w := f.do(http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestOpenAPISpec(t *testing.T) {
	f := newAPIFixture()

	w := f.do(http.MethodGet, "/openapi.yaml", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/dash-data")
}

func TestSession(t *testing.T) {
	f := newAPIFixture()

	tests := []struct {
		name string
		opt  func(*http.Request)
		want int
	}{
		{name: "no session", opt: func(*http.Request) {}, want: http.StatusUnauthorized},
		{name: "unknown session", opt: func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, want: http.StatusUnauthorized},
		{name: "cookie", opt: withCookie, want: http.StatusOK},
		{name: "bearer", opt: withBearer, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(http.MethodGet, "/api/dash-data", "", tt.opt)

			require.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Equal(t, "UNAUTHENTICATED", errorCode(t, w))
			}
		})
	}
}

func TestHandleDashData(t *testing.T) {
	t.Run("empty dashboard", func(t *testing.T) {
		f := newAPIFixture()

		w := f.do(http.MethodGet, "/api/dash-data", "", withCookie)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"login":"me","avatarUrl":"https://avatars/me","lastViewed":42,"outgoingPrs":[],"incomingPrs":[]}`, w.Body.String())
		assert.Len(t, f.github.Queries, 4)
	})

	t.Run("github failure", func(t *testing.T) {
		f := newAPIFixture()
		f.github.SearchErrs = map[string]error{"is:open is:pr archived:false author:me": github.ErrRateLimited}

		w := f.do(http.MethodGet, "/api/dash-data", "", withCookie)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "UPSTREAM", errorCode(t, w))
	})
}

func TestRequestTimeout(t *testing.T) {
	f := newAPIFixture()
	f.github.BlockSearch = true
	f.router = NewRouter(f.server, f.logger, 50*time.Millisecond)

	start := time.Now()
	w := f.do(http.MethodGet, "/api/dash-data", "", withCookie)

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.ErrorIs(t, f.github.SearchCtxErr, context.DeadlineExceeded)
}

func TestHandleLastViewed(t *testing.T) {
	f := newAPIFixture()

	w := f.do(http.MethodPost, "/api/last-viewed", "", withBearer)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		LastViewedAt int64 `json:"lastViewedAt"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Positive(t, resp.LastViewedAt)
	assert.Equal(t, resp.LastViewedAt, f.users.LastViewed["me"])
}

func TestHandleAutomerge(t *testing.T) {
	f := newAPIFixture()
	f.github.Authors = map[domain.PullRequestRef]string{
		{Owner: "o", Repo: "r", Number: 7}: "me",
		{Owner: "o", Repo: "r", Number: 8}: "bob",
	}

	w := f.do(http.MethodGet, "/api/automerge/o/r/7", "", withCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"option":"manual"}`, w.Body.String())

	w = f.do(http.MethodPost, "/api/automerge", `{"owner":"o","repo":"r","number":7,"option":"squash"}`, withCookie)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(http.MethodGet, "/api/automerge/o/r/7", "", withCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"option":"squash"}`, w.Body.String())

	w = f.do(http.MethodPost, "/api/automerge", `{"owner":"o","repo":"r","number":7,"option":"octopus"}`, withCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, w))

	w = f.do(http.MethodPost, "/api/automerge", `{"owner":"o","repo":"r","number":8,"option":"squash"}`, withCookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w))

	w = f.do(http.MethodPost, "/api/automerge", `{`, withCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodGet, "/api/automerge/o/r/seven", "", withCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePushSubscription(t *testing.T) {
	f := newAPIFixture()

	w := f.do(http.MethodPost, "/api/push-subscription",
		`{"endpoint":"https://push.example/abc","keys":{"p256dh":"k","auth":"a"}}`, withCookie)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, f.subs.Added, 1)
	assert.Equal(t, domain.PushSubscription{
		ID:       f.subs.Added[0].ID,
		Login:    "me",
		Endpoint: "https://push.example/abc",
		P256dh:   "k",
		Auth:     "a",
	}, f.subs.Added[0])
	assert.Contains(t, w.Body.String(), f.subs.Added[0].ID)

	w = f.do(http.MethodPost, "/api/push-subscription", `{"endpoint":"https://push.example/abc"}`, withCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodDelete, "/api/push-subscription", "", withCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(http.MethodDelete, "/api/push-subscription?endpoint=https%3A%2F%2Fpush.example%2Fabc", "", withCookie)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"https://push.example/abc"}, f.subs.Deleted)

	f.subs.DeleteErr = domain.ErrNotFound
	w = f.do(http.MethodDelete, "/api/push-subscription?endpoint=x", "", withCookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleLogout(t *testing.T) {
	f := newAPIFixture()

	w := f.do(http.MethodPost, "/api/logout", "", withCookie)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"s1"}, f.sessions.Deleted)
}

func signedWebhook(event, body string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("X-GitHub-Event", event)
		mac := hmac.New(sha256.New, []byte(webhookSecret))
		mac.Write([]byte(body))
		r.Header.Set("X-Hub-Signature-256", "sha256="+hex.EncodeToString(mac.Sum(nil)))
	}
}

func TestHandleWebhook(t *testing.T) {
	closed := `{"action":"closed","pull_request":{"number":7,"user":{"login":"bob"}},"repository":{"name":"r","owner":{"login":"o"}}}`

	t.Run("closed pull request", func(t *testing.T) {
		f := newAPIFixture()

		w := f.do(http.MethodPost, "/api/webhook", closed, signedWebhook("pull_request", closed))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []domain.PullRequestRef{{Owner: "o", Repo: "r", Number: 7}}, f.statuses.Forgotten)
	})

	t.Run("unsupported event", func(t *testing.T) {
		f := newAPIFixture()
		body := `{"zen":"Keep it logically awesome."}`

		w := f.do(http.MethodPost, "/api/webhook", body, signedWebhook("ping", body))

		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("bad signature", func(t *testing.T) {
		f := newAPIFixture()

		w := f.do(http.MethodPost, "/api/webhook", closed, signedWebhook("pull_request", "tampered"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, f.statuses.Forgotten)
	})
}
