//go:generate mockgen -destination mock_registry/mock_registry.go github.com/shopbeat/shopbeat-push-server/registry TokenRegistry

package registry

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/shopbeat/shopbeat-push-server/domain"
	"github.com/shopbeat/shopbeat-push-server/repo/registrationrepo"
)

const CName = "push.registry"

var log = logger.NewNamed(CName)

func New() TokenRegistry {
	return new(tokenRegistry)
}

// TokenRegistry is the in-process cache over the registration store and
// the sole writer of registration state. The store stays the source of
// truth: every mutation hits the store first and the cache only after a
// successful write.
type TokenRegistry interface {
	Register(ctx context.Context, userId, token string, role domain.Role, device map[string]string) (activeUsers int, err error)
	Unregister(ctx context.Context, userId, token string) (removed int, err error)
	Evict(ctx context.Context, userId string) (removed bool, err error)
	Snapshot() []domain.Registration
	LookupByToken(token string) (userId string, ok bool)
	ValidateToken(token string) error
	Count(ctx context.Context) (count int, err error)
	Resync(ctx context.Context) (err error)
	app.ComponentRunnable
}

type tokenRegistry struct {
	repo registrationrepo.RegistrationRepo
	conf Config

	mu        sync.RWMutex
	regs      map[string]domain.Registration
	userLocks map[string]*sync.Mutex
}

func (r *tokenRegistry) Init(a *app.App) (err error) {
	r.repo = a.MustComponent(registrationrepo.CName).(registrationrepo.RegistrationRepo)
	r.conf = a.MustComponent("config").(configSource).GetRegistry()
	r.regs = make(map[string]domain.Registration)
	r.userLocks = make(map[string]*sync.Mutex)
	return
}

func (r *tokenRegistry) Name() (name string) {
	return CName
}

func (r *tokenRegistry) Run(ctx context.Context) (err error) {
	if err = r.Resync(ctx); err != nil {
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	log.Info("registry loaded", zap.Int("registrations", len(r.regs)))
	return
}

func (r *tokenRegistry) Register(ctx context.Context, userId, token string, role domain.Role, device map[string]string) (activeUsers int, err error) {
	if userId == "" {
		return 0, domain.InvalidInputf("userId is required")
	}
	if err = r.ValidateToken(token); err != nil {
		return 0, err
	}
	if role == "" {
		role = domain.RoleUser
	}
	unlock := r.lockUser(userId)
	defer unlock()

	now := time.Now().Unix()
	reg := domain.Registration{
		UserId:  userId,
		Token:   token,
		Role:    role,
		Device:  device,
		Valid:   true,
		Created: now,
		Updated: now,
	}
	if err = r.repo.Set(ctx, reg, true); err != nil {
		return 0, domain.StoreUnavailable(err)
	}
	r.mu.Lock()
	if prev, ok := r.regs[userId]; ok {
		reg.Created = prev.Created
	}
	r.regs[userId] = reg
	activeUsers = len(r.regs)
	r.mu.Unlock()
	return
}

// Unregister removes by userId when given; otherwise it removes the first
// registration owning the token, scanning in userId order. First-match is
// a policy choice: one physical device maps to one user in practice.
func (r *tokenRegistry) Unregister(ctx context.Context, userId, token string) (removed int, err error) {
	if userId == "" {
		if token == "" {
			return 0, domain.InvalidInputf("userId or token is required")
		}
		var ok bool
		if userId, ok = r.LookupByToken(token); !ok {
			return 0, nil
		}
	}
	ok, err := r.Evict(ctx, userId)
	if err != nil {
		return 0, err
	}
	if ok {
		removed = 1
	}
	return
}

// Evict deletes the registration from both the store and the cache.
// Evicting an unknown userId is a no-op, not an error.
func (r *tokenRegistry) Evict(ctx context.Context, userId string) (removed bool, err error) {
	unlock := r.lockUser(userId)
	defer unlock()

	removedFromStore, err := r.repo.Delete(ctx, userId)
	if err != nil {
		return false, domain.StoreUnavailable(err)
	}
	r.mu.Lock()
	_, cached := r.regs[userId]
	delete(r.regs, userId)
	r.mu.Unlock()
	return removedFromStore || cached, nil
}

// Snapshot returns a point-in-time copy sorted by userId, so an in-flight
// broadcast is isolated from concurrent registry mutation.
func (r *tokenRegistry) Snapshot() []domain.Registration {
	r.mu.RLock()
	regs := make([]domain.Registration, 0, len(r.regs))
	for _, reg := range r.regs {
		regs = append(regs, reg)
	}
	r.mu.RUnlock()
	slices.SortFunc(regs, func(a, b domain.Registration) int {
		return strings.Compare(a.UserId, b.UserId)
	})
	return regs
}

func (r *tokenRegistry) LookupByToken(token string) (userId string, ok bool) {
	for _, reg := range r.Snapshot() {
		if reg.Token == token {
			return reg.UserId, true
		}
	}
	return "", false
}

func (r *tokenRegistry) ValidateToken(token string) error {
	if token == "" {
		return domain.InvalidInputf("token is required")
	}
	if len(token) < r.conf.minLength() {
		return domain.InvalidInputf("token is shorter than %d characters", r.conf.minLength())
	}
	if r.conf.TokenPrefix != "" && !strings.HasPrefix(token, r.conf.TokenPrefix) {
		return domain.InvalidInputf("token must start with %q", r.conf.TokenPrefix)
	}
	return nil
}

// Count reloads from the store before counting so a drifted cache
// self-heals instead of reporting stale numbers.
func (r *tokenRegistry) Count(ctx context.Context) (count int, err error) {
	if err = r.Resync(ctx); err != nil {
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.regs), nil
}

// Resync replaces the cache with the store contents. The load runs outside
// the user locks, so a registration committed between ListAll and the swap
// can be missing from the cache until the next resync; the store stays
// authoritative either way.
func (r *tokenRegistry) Resync(ctx context.Context) (err error) {
	regs, err := r.repo.ListAll(ctx)
	if err != nil {
		return domain.StoreUnavailable(err)
	}
	r.mu.Lock()
	r.regs = make(map[string]domain.Registration, len(regs))
	for _, reg := range regs {
		r.regs[reg.UserId] = reg
	}
	r.mu.Unlock()
	return
}

// lockUser serializes writes per userId so concurrent registrations for
// the same user can't interleave between store write and cache update.
// Lock entries are never reclaimed; distinct users bound their number.
func (r *tokenRegistry) lockUser(userId string) func() {
	r.mu.Lock()
	l, ok := r.userLocks[userId]
	if !ok {
		l = new(sync.Mutex)
		r.userLocks[userId] = l
	}
	r.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func (r *tokenRegistry) Close(ctx context.Context) (err error) {
	return nil
}
