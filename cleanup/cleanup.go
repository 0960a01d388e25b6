package cleanup

import (
	"context"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/shopbeat/shopbeat-push-server/domain"
	"github.com/shopbeat/shopbeat-push-server/registry"
)

const CName = "push.cleanup"

var log = logger.NewNamed(CName)

func New() Cleanup {
	return new(cleanup)
}

// Cleanup maps permanently-failed tokens back to their owners and evicts
// them through the registry, which stays the single writer of
// registration state.
type Cleanup interface {
	ReconcileFailures(ctx context.Context, failures []domain.FailedDelivery) (removed int, err error)
	app.Component
}

type cleanup struct {
	registry registry.TokenRegistry
}

func (c *cleanup) Init(a *app.App) (err error) {
	c.registry = a.MustComponent(registry.CName).(registry.TokenRegistry)
	return
}

func (c *cleanup) Name() (name string) {
	return CName
}

// ReconcileFailures is idempotent: evicting an already-removed userId is
// a no-op. A token whose owner can't be resolved is logged as orphaned
// and left in place rather than guessed at. Store failures abort only the
// one token and the rest of the batch still runs.
func (c *cleanup) ReconcileFailures(ctx context.Context, failures []domain.FailedDelivery) (removed int, err error) {
	for _, failure := range failures {
		if !failure.Reason.Permanent() {
			continue
		}
		userId := failure.UserId
		if userId == "" {
			var ok bool
			if userId, ok = c.registry.LookupByToken(failure.Token); !ok {
				log.Warn("orphaned token, owner unresolved",
					zap.Stringer("reason", failure.Reason))
				continue
			}
		}
		ok, evictErr := c.registry.Evict(ctx, userId)
		if evictErr != nil {
			log.Error("evict failed", zap.String("userId", userId), zap.Error(evictErr))
			err = evictErr
			continue
		}
		if ok {
			log.Info("registration removed after permanent failure",
				zap.String("userId", userId),
				zap.Stringer("reason", failure.Reason))
			removed++
		}
	}
	return
}
