package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"go.uber.org/zap"

	"github.com/shopbeat/shopbeat-push-server/api"
	"github.com/shopbeat/shopbeat-push-server/cleanup"
	"github.com/shopbeat/shopbeat-push-server/config"
	"github.com/shopbeat/shopbeat-push-server/db"
	"github.com/shopbeat/shopbeat-push-server/engine"
	"github.com/shopbeat/shopbeat-push-server/metric"
	"github.com/shopbeat/shopbeat-push-server/registry"
	"github.com/shopbeat/shopbeat-push-server/repo/auditrepo"
	"github.com/shopbeat/shopbeat-push-server/repo/registrationrepo"
	"github.com/shopbeat/shopbeat-push-server/scheduler"
	"github.com/shopbeat/shopbeat-push-server/sender"
	"github.com/shopbeat/shopbeat-push-server/sender/provider/fcm"
)

var log = logger.NewNamed("main")

var flagConfigFile = flag.String("c", "etc/config.yml", "path to config file")

func main() {
	flag.Parse()

	conf, err := config.NewFromFile(*flagConfigFile)
	if err != nil {
		log.Fatal("can't open config file", zap.Error(err))
	}

	a := new(app.App)
	a.Register(conf).
		Register(metric.New()).
		Register(db.New()).
		Register(registrationrepo.New()).
		Register(auditrepo.New()).
		Register(registry.New()).
		Register(sender.New()).
		Register(fcm.New()).
		Register(cleanup.New()).
		Register(engine.New()).
		Register(scheduler.New()).
		Register(api.New())

	ctx := context.Background()
	if err = a.Start(ctx); err != nil {
		log.Fatal("can't start app", zap.Error(err))
	}
	log.Info("app started")

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
	sig := <-exit
	log.Info("stopping app", zap.String("signal", sig.String()))

	closeCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err = a.Close(closeCtx); err != nil {
		log.Fatal("close error", zap.Error(err))
	}
	log.Info("goodbye")
}
