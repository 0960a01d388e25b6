package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/anyproto/any-sync/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shopbeat/shopbeat-push-server/domain"
	"github.com/shopbeat/shopbeat-push-server/repo/registrationrepo"
	"github.com/shopbeat/shopbeat-push-server/repo/registrationrepo/mock_registrationrepo"
)

var ctx = context.Background()

func TestRegistry_Register(t *testing.T) {
	t.Run("last write wins per userId", func(t *testing.T) {
		fx := newFixture(t)
		fx.repo.EXPECT().Set(gomock.Any(), gomock.Any(), true).Return(nil).Times(2)

		count, err := fx.Register(ctx, "u1", "token-first-000000", domain.RoleUser, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = fx.Register(ctx, "u1", "token-second-00000", domain.RoleUser, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		regs := fx.Snapshot()
		require.Len(t, regs, 1)
		assert.Equal(t, "token-second-00000", regs[0].Token)
	})
	t.Run("invalid input", func(t *testing.T) {
		fx := newFixture(t)
		_, err := fx.Register(ctx, "", "token-000000000000", domain.RoleUser, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = fx.Register(ctx, "u1", "", domain.RoleUser, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = fx.Register(ctx, "u1", "short", domain.RoleUser, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
	t.Run("store failure leaves cache untouched", func(t *testing.T) {
		fx := newFixture(t)
		fx.repo.EXPECT().Set(gomock.Any(), gomock.Any(), true).Return(errors.New("mongo down"))
		_, err := fx.Register(ctx, "u1", "token-000000000000", domain.RoleUser, nil)
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
		assert.Len(t, fx.Snapshot(), 0)
	})
	t.Run("defaults role to user", func(t *testing.T) {
		fx := newFixture(t)
		fx.repo.EXPECT().Set(gomock.Any(), gomock.Any(), true).DoAndReturn(
			func(_ context.Context, reg domain.Registration, _ bool) error {
				assert.Equal(t, domain.RoleUser, reg.Role)
				assert.True(t, reg.Valid)
				return nil
			})
		_, err := fx.Register(ctx, "u1", "token-000000000000", "", nil)
		require.NoError(t, err)
	})
}

func TestRegistry_ConcurrentRegister(t *testing.T) {
	fx := newFixture(t)

	var (
		storeMu   sync.Mutex
		lastStore = map[string]string{}
	)
	fx.repo.EXPECT().Set(gomock.Any(), gomock.Any(), true).DoAndReturn(
		func(_ context.Context, reg domain.Registration, _ bool) error {
			storeMu.Lock()
			lastStore[reg.UserId] = reg.Token
			storeMu.Unlock()
			return nil
		}).AnyTimes()

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := fx.Register(ctx, "u-shared", fmt.Sprintf("token-shared-%06d", i), domain.RoleUser, nil)
			assert.NoError(t, err)
			_, err = fx.Register(ctx, fmt.Sprintf("u-%02d", i), fmt.Sprintf("token-own-%08d", i), domain.RoleUser, nil)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// one registration per userId, and for every user the cached token is
	// the one the last committed store write carries
	regs := fx.Snapshot()
	require.Len(t, regs, workers+1)
	storeMu.Lock()
	defer storeMu.Unlock()
	for _, reg := range regs {
		assert.Equal(t, lastStore[reg.UserId], reg.Token, reg.UserId)
	}
}

func TestRegistry_Unregister(t *testing.T) {
	t.Run("by userId", func(t *testing.T) {
		fx := newFixture(t)
		fx.register(t, "u1", "token-000000000000")
		fx.repo.EXPECT().Delete(gomock.Any(), "u1").Return(true, nil)
		removed, err := fx.Unregister(ctx, "u1", "")
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		assert.Len(t, fx.Snapshot(), 0)
	})
	t.Run("by token removes first match in userId order", func(t *testing.T) {
		fx := newFixture(t)
		fx.register(t, "u2", "shared-token-00000")
		fx.register(t, "u1", "shared-token-00000")
		fx.repo.EXPECT().Delete(gomock.Any(), "u1").Return(true, nil)
		removed, err := fx.Unregister(ctx, "", "shared-token-00000")
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		regs := fx.Snapshot()
		require.Len(t, regs, 1)
		assert.Equal(t, "u2", regs[0].UserId)
	})
	t.Run("unknown token is a no-op", func(t *testing.T) {
		fx := newFixture(t)
		removed, err := fx.Unregister(ctx, "", "nobody-owns-this-0")
		require.NoError(t, err)
		assert.Equal(t, 0, removed)
	})
	t.Run("neither userId nor token", func(t *testing.T) {
		fx := newFixture(t)
		_, err := fx.Unregister(ctx, "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestRegistry_Evict(t *testing.T) {
	fx := newFixture(t)
	fx.register(t, "u1", "token-000000000000")
	fx.repo.EXPECT().Delete(gomock.Any(), "u1").Return(true, nil)
	removed, err := fx.Evict(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, removed)

	// already gone: idempotent no-op
	fx.repo.EXPECT().Delete(gomock.Any(), "u1").Return(false, nil)
	removed, err = fx.Evict(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRegistry_Count(t *testing.T) {
	fx := newFixture(t)
	fx.repo.EXPECT().ListAll(gomock.Any()).Return([]domain.Registration{
		{UserId: "u1", Token: "t1", Valid: true},
		{UserId: "u2", Token: "t2", Valid: true},
	}, nil)
	count, err := fx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRegistry_Resync(t *testing.T) {
	fx := newFixture(t)
	fx.register(t, "stale", "token-000000000000")
	fx.repo.EXPECT().ListAll(gomock.Any()).Return([]domain.Registration{
		{UserId: "fresh", Token: "t1", Valid: true},
	}, nil)
	require.NoError(t, fx.Resync(ctx))
	regs := fx.Snapshot()
	require.Len(t, regs, 1)
	assert.Equal(t, "fresh", regs[0].UserId)
}

type fixture struct {
	TokenRegistry
	repo *mock_registrationrepo.MockRegistrationRepo
	a    *app.App
}

func (fx *fixture) register(t *testing.T, userId, token string) {
	fx.repo.EXPECT().Set(gomock.Any(), gomock.Any(), true).Return(nil)
	_, err := fx.Register(ctx, userId, token, domain.RoleUser, nil)
	require.NoError(t, err)
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	fx := &fixture{
		TokenRegistry: New(),
		repo:          mock_registrationrepo.NewMockRegistrationRepo(ctrl),
		a:             new(app.App),
	}
	fx.repo.EXPECT().Name().Return(registrationrepo.CName).AnyTimes()
	fx.repo.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.repo.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.repo.EXPECT().Close(gomock.Any()).AnyTimes()
	// startup resync
	fx.repo.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

	fx.a.Register(testConfig{}).
		Register(fx.repo).
		Register(fx.TokenRegistry)
	require.NoError(t, fx.a.Start(ctx))
	t.Cleanup(func() {
		require.NoError(t, fx.a.Close(ctx))
		ctrl.Finish()
	})
	return fx
}

type testConfig struct{}

func (t testConfig) Init(a *app.App) (err error) {
	return
}

func (t testConfig) Name() (name string) {
	return "config"
}

func (t testConfig) GetRegistry() Config {
	return Config{MinTokenLength: 10}
}
