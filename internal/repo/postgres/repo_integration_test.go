package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
	"github.com/PolymerLabs/project-health-sub000/internal/repo/postgres"
	testpg "github.com/PolymerLabs/project-health-sub000/internal/tests/postgres"
)

func TestRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	ctx := context.Background()
	db, teardown, err := testpg.Setup(ctx)
	require.NoError(t, err)
	defer teardown()

	users := postgres.NewUserRepo(db)
	sessions := postgres.NewSessionRepo(db)
	statuses := postgres.NewCommitStatusRepo(db)
	automerge := postgres.NewAutomergeRepo(db)
	subs := postgres.NewPushSubscriptionRepo(db)

	require.NoError(t, users.Upsert(ctx, &domain.User{Login: "me", Token: "t1", Scopes: []string{"repo", "user"}}))

	t.Run("UserUpsertKeepsWatermarks", func(t *testing.T) {
		require.NoError(t, users.SetLastViewed(ctx, "me", 42))
		require.NoError(t, users.EnableLastViewed(ctx, "me", 7))
		require.NoError(t, users.EnableLastViewed(ctx, "me", 9))
		require.NoError(t, users.Upsert(ctx, &domain.User{Login: "me", Token: "t2", Scopes: []string{"repo", "user"}}))

		u, err := users.GetByLogin(ctx, "me")

		require.NoError(t, err)
		assert.Equal(t, "t2", u.Token)
		assert.Equal(t, []string{"repo", "user"}, u.Scopes)
		assert.Equal(t, int64(42), u.LastViewedAt)
		assert.Equal(t, int64(7), u.FeatureLastViewedEnabledAt)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		_, err := users.GetByLogin(ctx, "ghost")
		require.ErrorIs(t, err, domain.ErrNotFound)

		require.ErrorIs(t, users.SetLastViewed(ctx, "ghost", 1), domain.ErrNotFound)
	})

	t.Run("Sessions", func(t *testing.T) {
		s := &domain.Session{ID: uuid.NewString(), Login: "me", CreatedAt: 1000}
		require.NoError(t, sessions.Create(ctx, s))

		got, err := sessions.Get(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, s, got)

		_, err = sessions.Get(ctx, "not-a-uuid")
		require.ErrorIs(t, err, domain.ErrNotFound)

		err = sessions.Create(ctx, &domain.Session{ID: uuid.NewString(), Login: "ghost", CreatedAt: 1})
		require.ErrorIs(t, err, domain.ErrNotFound)

		require.NoError(t, sessions.Delete(ctx, s.ID))
		_, err = sessions.Get(ctx, s.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("CommitStatusTransitions", func(t *testing.T) {
		ref := domain.PullRequestRef{Owner: "o", Repo: "r", Number: 1}

		changed, err := statuses.Transition(ctx, ref, "abc", domain.CommitStatePending)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = statuses.Transition(ctx, ref, "abc", domain.CommitStatePending)
		require.NoError(t, err)
		assert.False(t, changed)

		changed, err = statuses.Transition(ctx, ref, "abc", domain.CommitStateSuccess)
		require.NoError(t, err)
		assert.True(t, changed)

		state, err := statuses.Get(ctx, ref, "abc")
		require.NoError(t, err)
		assert.Equal(t, domain.CommitStateSuccess, state)
	})

	t.Run("AutomergeAndForget", func(t *testing.T) {
		ref := domain.PullRequestRef{Owner: "o", Repo: "r", Number: 2}
		require.NoError(t, automerge.Set(ctx, ref, domain.AutomergeSquash))
		require.NoError(t, automerge.Set(ctx, ref, domain.AutomergeRebase))
		_, err := statuses.Transition(ctx, ref, "def", domain.CommitStateFailure)
		require.NoError(t, err)

		opt, err := automerge.Get(ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, domain.AutomergeRebase, opt)

		require.NoError(t, statuses.ForgetPullRequest(ctx, ref))

		_, err = automerge.Get(ctx, ref)
		require.ErrorIs(t, err, domain.ErrNotFound)
		_, err = statuses.Get(ctx, ref, "def")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("AutomergeInvalidOption", func(t *testing.T) {
		err := automerge.Set(ctx, domain.PullRequestRef{Owner: "o", Repo: "r", Number: 3}, "yolo")

		var de *domain.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, domain.ErrorCodeBadRequest, de.Code)
	})

	t.Run("PushSubscriptions", func(t *testing.T) {
		sub := &domain.PushSubscription{ID: uuid.NewString(), Login: "me", Endpoint: "https://push/1", P256dh: "k1", Auth: "a1"}
		require.NoError(t, subs.Add(ctx, sub))
		require.NoError(t, subs.Add(ctx, &domain.PushSubscription{ID: uuid.NewString(), Login: "me", Endpoint: "https://push/1", P256dh: "k2", Auth: "a2"}))

		list, err := subs.ListByLogin(ctx, "me")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, sub.ID, list[0].ID)
		assert.Equal(t, "k2", list[0].P256dh)

		require.NoError(t, subs.DeleteByEndpoint(ctx, "me", "https://push/1"))
		require.ErrorIs(t, subs.DeleteByEndpoint(ctx, "me", "https://push/1"), domain.ErrNotFound)
	})
}
