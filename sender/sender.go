//go:generate mockgen -destination mock_sender/mock_sender.go github.com/shopbeat/shopbeat-push-server/sender Provider

package sender

import (
	"context"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/shopbeat/shopbeat-push-server/domain"
	"github.com/shopbeat/shopbeat-push-server/metric"
)

const CName = "push.sender"

var log = logger.NewNamed(CName)

func New() Sender {
	return new(sender)
}

// Sender is the push transport facade. The concrete provider (FCM in
// production) registers itself during Init of its own component.
type Sender interface {
	RegisterProvider(provider Provider)
	SendBatch(ctx context.Context, payload domain.PushPayload, tokens []string) (outcomes []domain.DeliveryOutcome, err error)
	SendOne(ctx context.Context, payload domain.PushPayload, token string) (outcome domain.DeliveryOutcome, err error)
	app.Component
}

// Provider fans a payload out to a batch of tokens and reports one
// outcome per input token, preserving input order.
type Provider interface {
	SendBatch(ctx context.Context, payload domain.PushPayload, tokens []string) (outcomes []domain.DeliveryOutcome, err error)
	SendOne(ctx context.Context, payload domain.PushPayload, token string) (outcome domain.DeliveryOutcome, err error)
}

type sender struct {
	provider Provider
	metrics  metrics
}

func (s *sender) Init(a *app.App) (err error) {
	registerMetrics(a.MustComponent(metric.CName).(metric.Metric).Registry(), s)
	return
}

func (s *sender) Name() (name string) {
	return CName
}

func (s *sender) RegisterProvider(provider Provider) {
	s.provider = provider
}

func (s *sender) SendBatch(ctx context.Context, payload domain.PushPayload, tokens []string) (outcomes []domain.DeliveryOutcome, err error) {
	if s.provider == nil {
		return nil, domain.ErrTransportUnavailable
	}
	st := time.Now()
	if outcomes, err = s.provider.SendBatch(ctx, payload, tokens); err != nil {
		return nil, domain.TransportUnavailable(err)
	}
	if len(outcomes) != len(tokens) {
		log.Error("provider broke the one-outcome-per-token contract",
			zap.Int("tokens", len(tokens)), zap.Int("outcomes", len(outcomes)))
		return nil, domain.ErrTransportUnavailable
	}
	var failed int
	for _, outcome := range outcomes {
		if !outcome.Success {
			failed++
		}
	}
	s.metrics.sendCount.Add(1)
	s.metrics.sendTokens.Add(int64(len(tokens)))
	s.metrics.sendFailures.Add(int64(failed))
	log.Info("batch sent",
		zap.Int("tokens", len(tokens)),
		zap.Int("failed", failed),
		zap.Duration("dur", time.Since(st)))
	return
}

func (s *sender) SendOne(ctx context.Context, payload domain.PushPayload, token string) (outcome domain.DeliveryOutcome, err error) {
	if s.provider == nil {
		return domain.DeliveryOutcome{}, domain.ErrTransportUnavailable
	}
	if outcome, err = s.provider.SendOne(ctx, payload, token); err != nil {
		return domain.DeliveryOutcome{}, domain.TransportUnavailable(err)
	}
	s.metrics.sendCount.Add(1)
	s.metrics.sendTokens.Add(1)
	if !outcome.Success {
		s.metrics.sendFailures.Add(1)
	}
	return
}
