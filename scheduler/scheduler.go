//go:generate mockgen -destination mock_scheduler/mock_scheduler.go github.com/shopbeat/shopbeat-push-server/scheduler Scheduler

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/shopbeat/shopbeat-push-server/domain"
	"github.com/shopbeat/shopbeat-push-server/engine"
	"github.com/shopbeat/shopbeat-push-server/repo/auditrepo"
)

const CName = "push.scheduler"

var log = logger.NewNamed(CName)

const fireTimeout = time.Minute

func New() Scheduler {
	return new(scheduler)
}

// Scheduler closes the shop once per calendar day at the configured
// wall-clock time in the configured timezone and broadcasts the closing
// message. RunNow executes the identical routine on demand.
type Scheduler interface {
	RunNow(ctx context.Context) (report domain.DeliveryReport, err error)
	app.ComponentRunnable
}

type scheduler struct {
	conf   Config
	engine engine.Engine
	audit  auditrepo.AuditRepo

	loc          *time.Location
	hour, minute int
	cron         *cron.Cron
}

func (s *scheduler) Init(a *app.App) (err error) {
	s.engine = a.MustComponent(engine.CName).(engine.Engine)
	s.audit = a.MustComponent(auditrepo.CName).(auditrepo.AuditRepo)
	s.conf = a.MustComponent("config").(configSource).GetScheduler()
	if s.loc, err = s.conf.location(); err != nil {
		return fmt.Errorf("scheduler timezone: %w", err)
	}
	if s.hour, s.minute, err = s.conf.fireAt(); err != nil {
		return fmt.Errorf("scheduler fire time: %w", err)
	}
	return
}

func (s *scheduler) Name() (name string) {
	return CName
}

func (s *scheduler) Run(ctx context.Context) (err error) {
	if !s.conf.Enabled {
		log.Info("daily close disabled")
		return
	}
	s.cron = cron.New(cron.WithLocation(s.loc))
	spec := fmt.Sprintf("%d %d * * *", s.minute, s.hour)
	if _, err = s.cron.AddFunc(spec, s.fire); err != nil {
		return
	}
	s.cron.Start()
	log.Info("daily close scheduled",
		zap.String("at", fmt.Sprintf("%02d:%02d", s.hour, s.minute)),
		zap.String("tz", s.loc.String()))
	return
}

func (s *scheduler) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), fireTimeout)
	defer cancel()
	// errors are audited inside execute; the next day's fire must happen
	// no matter what went wrong today
	_, _ = s.execute(ctx, "schedule")
}

func (s *scheduler) RunNow(ctx context.Context) (report domain.DeliveryReport, err error) {
	return s.execute(ctx, "manual")
}

func (s *scheduler) execute(ctx context.Context, trigger string) (report domain.DeliveryReport, err error) {
	report, err = s.closeShop(ctx, trigger)
	if err != nil {
		log.Error("close routine failed", zap.String("trigger", trigger), zap.Error(err))
		if auditErr := s.audit.AddLog(ctx, domain.AuditRecord{
			Kind:      domain.AuditError,
			Trigger:   trigger,
			Message:   err.Error(),
			LocalTime: s.localNow(),
		}); auditErr != nil {
			log.Error("error audit write failed", zap.Error(auditErr))
		}
	}
	return
}

func (s *scheduler) closeShop(ctx context.Context, trigger string) (report domain.DeliveryReport, err error) {
	status, err := s.audit.GetShopStatus(ctx)
	if err != nil {
		return report, domain.StoreUnavailable(err)
	}
	if !status.IsOpen {
		// repeat fire on an already-closed day
		log.Debug("shop already closed, nothing to do", zap.String("trigger", trigger))
		return report, nil
	}
	if err = s.audit.SetShopStatus(ctx, domain.ShopStatus{
		IsOpen:     false,
		UpdatedBy:  trigger,
		AutoClosed: true,
	}); err != nil {
		return report, domain.StoreUnavailable(err)
	}
	if report, err = s.engine.Broadcast(ctx, domain.BroadcastRequest{
		Title: s.conf.title(),
		Body:  s.conf.body(),
	}); err != nil {
		return report, err
	}
	if auditErr := s.audit.AddLog(ctx, domain.AuditRecord{
		Kind:      domain.AuditDailyClose,
		Trigger:   trigger,
		Message:   "shop closed, closing message broadcast",
		LocalTime: s.localNow(),
		Success:   report.Success,
		Failure:   report.Failure,
		Attempted: report.Attempted,
	}); auditErr != nil {
		log.Error("audit write failed", zap.Error(auditErr))
	}
	return
}

func (s *scheduler) localNow() string {
	return time.Now().In(s.loc).Format("2006-01-02 15:04:05 MST")
}

func (s *scheduler) Close(ctx context.Context) (err error) {
	if s.cron != nil {
		stopCtx := s.cron.Stop()
		<-stopCtx.Done()
	}
	return
}
