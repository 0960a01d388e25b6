package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/anyproto/any-sync/app"
	"github.com/anyproto/any-sync/app/logger"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/shopbeat/shopbeat-push-server/engine"
	"github.com/shopbeat/shopbeat-push-server/metric"
	"github.com/shopbeat/shopbeat-push-server/registry"
	"github.com/shopbeat/shopbeat-push-server/repo/auditrepo"
	"github.com/shopbeat/shopbeat-push-server/scheduler"
)

const CName = "api"

var log = logger.NewNamed(CName)

type configSource interface {
	GetAPI() Config
}

type Config struct {
	ListenAddr string `yaml:"listenAddr"`
}

func New() Service {
	return new(service)
}

// Service is the thin HTTP boundary: it decodes, delegates to the core
// components and encodes. No broadcast or registry logic lives here.
type Service interface {
	app.ComponentRunnable
}

type service struct {
	conf      Config
	registry  registry.TokenRegistry
	engine    engine.Engine
	scheduler scheduler.Scheduler
	audit     auditrepo.AuditRepo

	server *http.Server
}

func (s *service) Init(a *app.App) (err error) {
	s.conf = a.MustComponent("config").(configSource).GetAPI()
	s.registry = a.MustComponent(registry.CName).(registry.TokenRegistry)
	s.engine = a.MustComponent(engine.CName).(engine.Engine)
	s.scheduler = a.MustComponent(scheduler.CName).(scheduler.Scheduler)
	s.audit = a.MustComponent(auditrepo.CName).(auditrepo.AuditRepo)

	r := chi.NewRouter()
	r.Use(s.requestLog)
	r.Get("/", s.health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(
		a.MustComponent(metric.CName).(metric.Metric).Registry(),
		promhttp.HandlerOpts{},
	))
	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/unregister", s.unregister)
		r.Get("/token-count", s.tokenCount)
		r.Post("/broadcast", s.broadcast)
		r.Get("/shop-status", s.getShopStatus)
		r.Post("/shop-status", s.setShopStatus)
		r.Post("/close-shop", s.closeShop)
		r.Get("/audit-logs", s.auditLogs)
	})
	s.server = &http.Server{
		Addr:         s.conf.ListenAddr,
		Handler:      r,
		ReadTimeout:  time.Second * 15,
		WriteTimeout: time.Second * 30,
	}
	return
}

func (s *service) Name() (name string) {
	return CName
}

func (s *service) Run(ctx context.Context) (err error) {
	ln, err := net.Listen("tcp", s.conf.ListenAddr)
	if err != nil {
		return
	}
	log.Info("listening", zap.String("addr", ln.Addr().String()))
	go func() {
		if serveErr := s.server.Serve(ln); serveErr != nil && serveErr != http.ErrServerClosed {
			log.Error("serve", zap.Error(serveErr))
		}
	}()
	return
}

func (s *service) Close(ctx context.Context) (err error) {
	if s.server == nil {
		return
	}
	return s.server.Shutdown(ctx)
}

func (s *service) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := time.Now()
		next.ServeHTTP(w, r)
		log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("dur", time.Since(st)))
	})
}
