package fcm

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/shopbeat/shopbeat-push-server/domain"
	"github.com/shopbeat/shopbeat-push-server/sender"
)

const CName = "push.provider.fcm"

var log = logger.NewNamed(CName)

func New() FCM {
	return new(fcm)
}

type FCM interface {
	app.Component
}

type fcm struct {
}

func (f *fcm) Init(a *app.App) (err error) {
	s := a.MustComponent(sender.CName).(sender.Sender)
	conf := a.MustComponent("config").(configSource).GetFCM()

	provider, err := newProvider(conf.CredentialsFile)
	if err != nil {
		return err
	}
	s.RegisterProvider(provider)
	return
}

func (f *fcm) Name() (name string) {
	return CName
}

func newProvider(credentialsFile string) (sender.Provider, error) {
	opt := option.WithCredentialsFile(credentialsFile)
	fcmApp, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return nil, err
	}
	client, err := fcmApp.Messaging(context.Background())
	if err != nil {
		return nil, err
	}
	return &fcmProvider{client: client}, nil
}

type fcmProvider struct {
	client *messaging.Client
}

const batchSize = 500

func (f *fcmProvider) SendBatch(ctx context.Context, payload domain.PushPayload, tokens []string) (outcomes []domain.DeliveryOutcome, err error) {
	outcomes = make([]domain.DeliveryOutcome, 0, len(tokens))
	nextBatch := tokens
	for len(nextBatch) > 0 {
		var batch []string
		if len(nextBatch) > batchSize {
			batch = nextBatch[:batchSize]
			nextBatch = nextBatch[batchSize:]
		} else {
			batch = nextBatch
			nextBatch = nil
		}
		var response *messaging.BatchResponse
		if response, err = f.client.SendEachForMulticast(ctx, buildMulticastMessage(payload, batch)); err != nil {
			return nil, err
		}
		for i, resp := range response.Responses {
			outcome := domain.DeliveryOutcome{Token: batch[i], Success: resp.Error == nil}
			if resp.Error != nil {
				outcome.Reason = classify(resp.Error)
				log.Warn("fcm resp error",
					zap.Error(resp.Error),
					zap.Stringer("reason", outcome.Reason))
			}
			outcomes = append(outcomes, outcome)
		}
		log.Info("push sent", zap.Int("success", response.SuccessCount), zap.Int("failure", response.FailureCount))
	}
	return outcomes, nil
}

func (f *fcmProvider) SendOne(ctx context.Context, payload domain.PushPayload, token string) (outcome domain.DeliveryOutcome, err error) {
	outcome = domain.DeliveryOutcome{Token: token, Success: true}
	if _, err = f.client.Send(ctx, buildMessage(payload, token)); err != nil {
		outcome.Success = false
		outcome.Reason = classify(err)
		err = nil
	}
	return
}

// classify maps FCM errors onto the failure taxonomy. Only unregistered
// tokens and malformed tokens are permanent; everything else leaves the
// registration alone.
func classify(err error) domain.FailureReason {
	switch {
	case messaging.IsUnregistered(err):
		return domain.ReasonUnregistered
	case messaging.IsInvalidArgument(err):
		return domain.ReasonInvalidToken
	default:
		return domain.ReasonUnavailable
	}
}

func buildMulticastMessage(payload domain.PushPayload, tokens []string) *messaging.MulticastMessage {
	return &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
	}
}

func buildMessage(payload domain.PushPayload, token string) *messaging.Message {
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
	}
}
