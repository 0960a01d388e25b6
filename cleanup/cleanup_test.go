package cleanup

import (
	"context"
	"errors"
	"testing"

	"github.com/anyproto/any-sync/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shopbeat/shopbeat-push-server/domain"
	"github.com/shopbeat/shopbeat-push-server/registry"
	"github.com/shopbeat/shopbeat-push-server/registry/mock_registry"
)

var ctx = context.Background()

func TestCleanup_ReconcileFailures(t *testing.T) {
	t.Run("evicts by hint", func(t *testing.T) {
		fx := newFixture(t)
		fx.registry.EXPECT().Evict(ctx, "u7").Return(true, nil)
		removed, err := fx.ReconcileFailures(ctx, []domain.FailedDelivery{
			{Token: "t7", Reason: domain.ReasonUnregistered, UserId: "u7"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
	})
	t.Run("transient reasons are ignored", func(t *testing.T) {
		fx := newFixture(t)
		removed, err := fx.ReconcileFailures(ctx, []domain.FailedDelivery{
			{Token: "t1", Reason: domain.ReasonRateLimited, UserId: "u1"},
			{Token: "t2", Reason: domain.ReasonUnavailable, UserId: "u2"},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, removed)
	})
	t.Run("falls back to reverse lookup", func(t *testing.T) {
		fx := newFixture(t)
		fx.registry.EXPECT().LookupByToken("t3").Return("u3", true)
		fx.registry.EXPECT().Evict(ctx, "u3").Return(true, nil)
		removed, err := fx.ReconcileFailures(ctx, []domain.FailedDelivery{
			{Token: "t3", Reason: domain.ReasonInvalidToken},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
	})
	t.Run("orphaned token is left in place", func(t *testing.T) {
		fx := newFixture(t)
		fx.registry.EXPECT().LookupByToken("ghost").Return("", false)
		removed, err := fx.ReconcileFailures(ctx, []domain.FailedDelivery{
			{Token: "ghost", Reason: domain.ReasonUnregistered},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, removed)
	})
	t.Run("idempotent for already-removed users", func(t *testing.T) {
		fx := newFixture(t)
		failures := []domain.FailedDelivery{
			{Token: "t7", Reason: domain.ReasonUnregistered, UserId: "u7"},
		}
		fx.registry.EXPECT().Evict(ctx, "u7").Return(true, nil)
		removed, err := fx.ReconcileFailures(ctx, failures)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		fx.registry.EXPECT().Evict(ctx, "u7").Return(false, nil)
		removed, err = fx.ReconcileFailures(ctx, failures)
		require.NoError(t, err)
		assert.Equal(t, 0, removed)
	})
	t.Run("store failure aborts one token, not the batch", func(t *testing.T) {
		fx := newFixture(t)
		fx.registry.EXPECT().Evict(ctx, "u1").Return(false, errors.New("mongo down"))
		fx.registry.EXPECT().Evict(ctx, "u2").Return(true, nil)
		removed, err := fx.ReconcileFailures(ctx, []domain.FailedDelivery{
			{Token: "t1", Reason: domain.ReasonUnregistered, UserId: "u1"},
			{Token: "t2", Reason: domain.ReasonUnregistered, UserId: "u2"},
		})
		require.Error(t, err)
		assert.Equal(t, 1, removed)
	})
}

type fixture struct {
	Cleanup
	registry *mock_registry.MockTokenRegistry
	a        *app.App
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	fx := &fixture{
		Cleanup:  New(),
		registry: mock_registry.NewMockTokenRegistry(ctrl),
		a:        new(app.App),
	}
	fx.registry.EXPECT().Name().Return(registry.CName).AnyTimes()
	fx.registry.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.registry.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.registry.EXPECT().Close(gomock.Any()).AnyTimes()

	fx.a.Register(fx.registry).
		Register(fx.Cleanup)
	require.NoError(t, fx.a.Start(ctx))
	t.Cleanup(func() {
		require.NoError(t, fx.a.Close(ctx))
		ctrl.Finish()
	})
	return fx
}
