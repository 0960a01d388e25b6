//go:generate mockgen -destination mock_engine/mock_engine.go github.com/shopbeat/shopbeat-push-server/engine Engine

package engine

import (
	"context"
	"strings"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/shopbeat/shopbeat-push-server/cleanup"
	"github.com/shopbeat/shopbeat-push-server/domain"
	"github.com/shopbeat/shopbeat-push-server/registry"
	"github.com/shopbeat/shopbeat-push-server/sender"
)

const CName = "push.engine"

var log = logger.NewNamed(CName)

func New() Engine {
	return new(engine)
}

// Engine turns one broadcast request into a single batched transport call
// and feeds the classified outcomes back into registry cleanup. It only
// ever reads a snapshot of the registry; all resulting mutation goes
// through the cleanup coordinator.
type Engine interface {
	Broadcast(ctx context.Context, req domain.BroadcastRequest) (report domain.DeliveryReport, err error)
	app.Component
}

type engine struct {
	registry registry.TokenRegistry
	sender   sender.Sender
	cleanup  cleanup.Cleanup
}

func (e *engine) Init(a *app.App) (err error) {
	e.registry = a.MustComponent(registry.CName).(registry.TokenRegistry)
	e.sender = a.MustComponent(sender.CName).(sender.Sender)
	e.cleanup = a.MustComponent(cleanup.CName).(cleanup.Cleanup)
	return
}

func (e *engine) Name() (name string) {
	return CName
}

// target keeps the owner hint positionally aligned with its token, so a
// permanent failure for outcome[i] can be reconciled without a scan.
type target struct {
	token  string
	userId string
}

func (e *engine) Broadcast(ctx context.Context, req domain.BroadcastRequest) (report domain.DeliveryReport, err error) {
	if strings.TrimSpace(req.Title) == "" {
		return report, domain.InvalidInputf("title is required")
	}
	if strings.TrimSpace(req.Body) == "" {
		return report, domain.InvalidInputf("body is required")
	}

	var targets []target
	if len(req.Targets) > 0 {
		if targets, err = e.resolveExplicit(req.Targets); err != nil {
			return report, err
		}
	} else {
		targets = e.resolveSnapshot()
	}
	if len(targets) == 0 {
		// nothing registered yet is a normal state, not an error
		log.Info("broadcast resolved no targets")
		return report, nil
	}

	tokens := make([]string, len(targets))
	for i, tgt := range targets {
		tokens[i] = tgt.token
	}
	payload := domain.PushPayload{Title: req.Title, Body: req.Body, Data: req.Data}
	outcomes, err := e.sender.SendBatch(ctx, payload, tokens)
	if err != nil {
		return domain.DeliveryReport{}, err
	}

	report.Attempted = len(tokens)
	var failures []domain.FailedDelivery
	for i, outcome := range outcomes {
		if outcome.Success {
			report.Success++
			continue
		}
		report.Failure++
		if outcome.Reason.Permanent() {
			failures = append(failures, domain.FailedDelivery{
				Token:  targets[i].token,
				Reason: outcome.Reason,
				UserId: targets[i].userId,
			})
		} else {
			log.Warn("transient delivery failure, registration kept",
				zap.Stringer("reason", outcome.Reason))
		}
	}
	if len(failures) > 0 {
		if removed, cleanupErr := e.cleanup.ReconcileFailures(ctx, failures); cleanupErr != nil {
			log.Error("failure reconciliation incomplete", zap.Error(cleanupErr))
		} else {
			log.Info("stale registrations removed", zap.Int("removed", removed))
		}
	}
	log.Info("broadcast complete",
		zap.Int("success", report.Success),
		zap.Int("failure", report.Failure),
		zap.Int("attempted", report.Attempted))
	return report, nil
}

// resolveExplicit maps each requested target onto a delivery token with
// set semantics. An entry matching a registered userId addresses that
// user's current token; anything else is treated as a raw token and must
// pass the registration validation policy.
func (e *engine) resolveExplicit(requested []string) (targets []target, err error) {
	snapshot := e.registry.Snapshot()
	byUser := make(map[string]domain.Registration, len(snapshot))
	owners := make(map[string]string, len(snapshot))
	for _, reg := range snapshot {
		byUser[reg.UserId] = reg
		if _, ok := owners[reg.Token]; !ok {
			owners[reg.Token] = reg.UserId
		}
	}
	seen := make(map[string]struct{}, len(requested))
	for _, entry := range requested {
		var tgt target
		if reg, ok := byUser[entry]; ok {
			tgt = target{token: reg.Token, userId: reg.UserId}
		} else {
			if err = e.registry.ValidateToken(entry); err != nil {
				return nil, err
			}
			tgt = target{token: entry, userId: owners[entry]}
		}
		if _, dup := seen[tgt.token]; dup {
			continue
		}
		seen[tgt.token] = struct{}{}
		targets = append(targets, tgt)
	}
	return
}

// resolveSnapshot extracts one delivery attempt per distinct valid token.
// Duplicate tokens across users coalesce; the first owner in userId order
// keeps the hint slot.
func (e *engine) resolveSnapshot() (targets []target) {
	seen := make(map[string]struct{})
	for _, reg := range e.registry.Snapshot() {
		if !reg.Valid {
			continue
		}
		if _, dup := seen[reg.Token]; dup {
			continue
		}
		seen[reg.Token] = struct{}{}
		targets = append(targets, target{token: reg.Token, userId: reg.UserId})
	}
	return
}
