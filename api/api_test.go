package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anyproto/any-sync/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shopbeat/shopbeat-push-server/domain"
	"github.com/shopbeat/shopbeat-push-server/engine"
	"github.com/shopbeat/shopbeat-push-server/engine/mock_engine"
	"github.com/shopbeat/shopbeat-push-server/metric"
	"github.com/shopbeat/shopbeat-push-server/registry"
	"github.com/shopbeat/shopbeat-push-server/registry/mock_registry"
	"github.com/shopbeat/shopbeat-push-server/repo/auditrepo"
	"github.com/shopbeat/shopbeat-push-server/repo/auditrepo/mock_auditrepo"
	"github.com/shopbeat/shopbeat-push-server/scheduler"
	"github.com/shopbeat/shopbeat-push-server/scheduler/mock_scheduler"
)

var ctx = context.Background()

func TestAPI_Health(t *testing.T) {
	fx := newFixture(t)
	resp := fx.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "online", fx.body(t, resp)["status"])
}

func TestAPI_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fx := newFixture(t)
		fx.registry.EXPECT().
			Register(gomock.Any(), "u1", "token-000000000000", domain.RoleUser, map[string]string{"os": "android"}).
			Return(3, nil)
		resp := fx.do(t, http.MethodPost, "/api/register", map[string]any{
			"userId":     "u1",
			"token":      "token-000000000000",
			"role":       "user",
			"deviceInfo": map[string]string{"os": "android"},
		})
		assert.Equal(t, http.StatusOK, resp.Code)
		body := fx.body(t, resp)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(3), body["activeUsers"])
	})
	t.Run("invalid input maps to 400", func(t *testing.T) {
		fx := newFixture(t)
		fx.registry.EXPECT().
			Register(gomock.Any(), "", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(0, domain.InvalidInputf("userId is required"))
		resp := fx.do(t, http.MethodPost, "/api/register", map[string]any{"token": "token-000000000000"})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, false, fx.body(t, resp)["success"])
	})
}

func TestAPI_Unregister(t *testing.T) {
	fx := newFixture(t)
	fx.registry.EXPECT().Unregister(gomock.Any(), "u1", "").Return(1, nil)
	resp := fx.do(t, http.MethodPost, "/api/unregister", map[string]any{"userId": "u1"})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, float64(1), fx.body(t, resp)["removed"])
}

func TestAPI_TokenCount(t *testing.T) {
	fx := newFixture(t)
	fx.registry.EXPECT().Count(gomock.Any()).Return(0, nil)
	resp := fx.do(t, http.MethodGet, "/api/token-count", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	body := fx.body(t, resp)
	assert.Equal(t, float64(0), body["activeUsers"])
	assert.Equal(t, "no devices registered yet", body["message"])
}

func TestAPI_Broadcast(t *testing.T) {
	t.Run("report passthrough", func(t *testing.T) {
		fx := newFixture(t)
		fx.engine.EXPECT().Broadcast(gomock.Any(), domain.BroadcastRequest{
			Title: "hello",
			Body:  "world",
		}).Return(domain.DeliveryReport{Success: 2, Failure: 1, Attempted: 3}, nil)
		resp := fx.do(t, http.MethodPost, "/api/broadcast", map[string]any{"title": "hello", "body": "world"})
		assert.Equal(t, http.StatusOK, resp.Code)
		body := fx.body(t, resp)
		assert.Equal(t, float64(2), body["successCount"])
		assert.Equal(t, float64(1), body["failureCount"])
		assert.Equal(t, float64(3), body["totalAttempted"])
	})
	t.Run("transport failure maps to 502", func(t *testing.T) {
		fx := newFixture(t)
		fx.engine.EXPECT().Broadcast(gomock.Any(), gomock.Any()).
			Return(domain.DeliveryReport{}, domain.ErrTransportUnavailable)
		resp := fx.do(t, http.MethodPost, "/api/broadcast", map[string]any{"title": "hello", "body": "world"})
		assert.Equal(t, http.StatusBadGateway, resp.Code)
	})
}

func TestAPI_CloseShop(t *testing.T) {
	fx := newFixture(t)
	fx.scheduler.EXPECT().RunNow(gomock.Any()).Return(domain.DeliveryReport{Success: 5, Attempted: 5}, nil)
	resp := fx.do(t, http.MethodPost, "/api/close-shop", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, float64(5), fx.body(t, resp)["successCount"])
}

func TestAPI_AuditLogs(t *testing.T) {
	fx := newFixture(t)
	fx.audit.EXPECT().ListLogs(gomock.Any(), 10).Return([]domain.AuditRecord{
		{Id: "1", Kind: domain.AuditDailyClose, Message: "shop closed"},
	}, nil)
	resp := fx.do(t, http.MethodGet, "/api/audit-logs?limit=10", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	logs := fx.body(t, resp)["logs"].([]any)
	require.Len(t, logs, 1)
}

type fixture struct {
	Service
	srv       *service
	registry  *mock_registry.MockTokenRegistry
	engine    *mock_engine.MockEngine
	scheduler *mock_scheduler.MockScheduler
	audit     *mock_auditrepo.MockAuditRepo
	a         *app.App
}

func (fx *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	fx.srv.server.Handler.ServeHTTP(rec, req)
	return rec
}

func (fx *fixture) body(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	fx := &fixture{
		Service:   New(),
		registry:  mock_registry.NewMockTokenRegistry(ctrl),
		engine:    mock_engine.NewMockEngine(ctrl),
		scheduler: mock_scheduler.NewMockScheduler(ctrl),
		audit:     mock_auditrepo.NewMockAuditRepo(ctrl),
		a:         new(app.App),
	}
	fx.srv = fx.Service.(*service)
	fx.registry.EXPECT().Name().Return(registry.CName).AnyTimes()
	fx.registry.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.registry.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.registry.EXPECT().Close(gomock.Any()).AnyTimes()
	fx.engine.EXPECT().Name().Return(engine.CName).AnyTimes()
	fx.engine.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.scheduler.EXPECT().Name().Return(scheduler.CName).AnyTimes()
	fx.scheduler.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.scheduler.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.scheduler.EXPECT().Close(gomock.Any()).AnyTimes()
	fx.audit.EXPECT().Name().Return(auditrepo.CName).AnyTimes()
	fx.audit.EXPECT().Init(gomock.Any()).AnyTimes()
	fx.audit.EXPECT().Run(gomock.Any()).AnyTimes()
	fx.audit.EXPECT().Close(gomock.Any()).AnyTimes()

	fx.a.Register(testConfig{}).
		Register(metric.New()).
		Register(fx.registry).
		Register(fx.engine).
		Register(fx.scheduler).
		Register(fx.audit).
		Register(fx.Service)
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

func (t testConfig) GetAPI() Config {
	return Config{ListenAddr: "127.0.0.1:0"}
}
