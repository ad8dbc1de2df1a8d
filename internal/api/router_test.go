package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/variantapi/internal/api/middleware"
	"github.com/jafarshop/variantapi/internal/config"
	"github.com/jafarshop/variantapi/internal/domain"
	"github.com/jafarshop/variantapi/internal/service"
	"github.com/jafarshop/variantapi/internal/shopify"
	"github.com/jafarshop/variantapi/pkg/metrics"
)

type stubExecutor struct{}

func (stubExecutor) Execute(context.Context, string, map[string]interface{}) (*shopify.GraphQLResponse, error) {
	return &shopify.GraphQLResponse{Data: json.RawMessage(`{}`)}, nil
}

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Environment: "test",
		Provision:   config.ProvisionConfig{Mode: domain.ResolutionModeAugment},
	}
	m := metrics.NewProvisionMetrics(prometheus.NewRegistry())
	svc := service.NewVariantService(stubExecutor{}, cfg.Provision, m, zap.NewNop())
	return NewRouter(cfg, svc, zap.NewNop())
}

func TestHealthEndpoint(t *testing.T) {
	r := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok", "message": "API is running"}`, w.Body.String())
}

func TestRootListsEndpoints(t *testing.T) {
	r := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "POST /create-custom-variant")
}

func TestRequestIDAssignedAndEchoed(t *testing.T) {
	r := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))
}
