package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/variantapi/internal/config"
	"github.com/jafarshop/variantapi/internal/domain"
	"github.com/jafarshop/variantapi/internal/service"
	"github.com/jafarshop/variantapi/internal/shopify"
	"github.com/jafarshop/variantapi/pkg/metrics"
)

type fakeExecutor struct {
	executeFunc func(ctx context.Context, query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error)
	calls       int
}

func (f *fakeExecutor) Execute(ctx context.Context, query string, variables map[string]interface{}) (*shopify.GraphQLResponse, error) {
	f.calls++
	if f.executeFunc != nil {
		return f.executeFunc(ctx, query, variables)
	}
	return &shopify.GraphQLResponse{Data: json.RawMessage(`{}`)}, nil
}

func newTestRouter(t *testing.T, exec service.Executor, cfg config.ProvisionConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := metrics.NewProvisionMetrics(prometheus.NewRegistry())
	svc := service.NewVariantService(exec, cfg, m, zap.NewNop())

	r := gin.New()
	r.POST("/create-custom-variant", HandleCreateCustomVariant(svc, zap.NewNop()))
	r.GET("/introspection-test", HandleIntrospectionTest(svc, zap.NewNop()))
	return r
}

func augmentConfig() config.ProvisionConfig {
	return config.ProvisionConfig{
		Mode:             domain.ResolutionModeAugment,
		CustomOptionName: "Custom",
	}
}

func postJSON(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/create-custom-variant", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func graphQLScript(t *testing.T, responses map[string]string) *fakeExecutor {
	t.Helper()
	return &fakeExecutor{
		executeFunc: func(_ context.Context, query string, _ map[string]interface{}) (*shopify.GraphQLResponse, error) {
			data, ok := responses[query]
			if !ok {
				t.Fatalf("unexpected GraphQL document:\n%s", query)
			}
			return &shopify.GraphQLResponse{
				Data: json.RawMessage(data),
				Raw:  json.RawMessage(data),
			}, nil
		},
	}
}

func TestCreateCustomVariantRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing productId", `{"price": 10}`},
		{"missing price", `{"productId": "123"}`},
		{"null price", `{"productId": "123", "price": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{}
			r := newTestRouter(t, exec, augmentConfig())

			w := postJSON(t, r, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, "productId and price are required", body["error"])
			assert.Equal(t, 0, exec.calls)
		})
	}
}

func TestCreateCustomVariantRejectsInvalidJSON(t *testing.T) {
	exec := &fakeExecutor{}
	r := newTestRouter(t, exec, augmentConfig())

	w := postJSON(t, r, `{"productId": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, exec.calls)
}

func TestCreateCustomVariantSuccess(t *testing.T) {
	exec := graphQLScript(t, map[string]string{
		shopify.ProductOptionsQuery:          `{"product": {"id": "gid://shopify/Product/123", "options": []}}`,
		shopify.ProductVariantCreateMutation: `{"productVariantCreate": {"variant": {"id": "gid://shopify/ProductVariant/999", "sku": "custom-1"}, "userErrors": []}}`,
	})
	r := newTestRouter(t, exec, augmentConfig())

	w := postJSON(t, r, `{"productId": 123, "price": "49.90", "title": "Custom Size"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Custom variant created successfully.", body["message"])
	assert.Equal(t, "gid://shopify/ProductVariant/999", body["variantId"])
	assert.Contains(t, body["sku"], "custom-")
	assert.Contains(t, body["option"], "Custom Size - ")
	require.Len(t, body["selectedOptions"], 1)
}

func TestCreateCustomVariantSurfacesUserErrors(t *testing.T) {
	exec := graphQLScript(t, map[string]string{
		shopify.ProductOptionsQuery:          `{"product": {"id": "gid://shopify/Product/123", "options": []}}`,
		shopify.ProductVariantCreateMutation: `{"productVariantCreate": {"variant": null, "userErrors": [{"field": ["sku"], "message": "SKU already taken"}]}}`,
	})
	r := newTestRouter(t, exec, augmentConfig())

	w := postJSON(t, r, `{"productId": "123", "price": 10}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "productVariantCreate userErrors", body["error"])
	userErrors := body["userErrors"].([]interface{})
	require.Len(t, userErrors, 1)
	assert.Equal(t, "SKU already taken", userErrors[0].(map[string]interface{})["message"])
	assert.NotEmpty(t, body["selectedOptions"])
}

func TestCreateCustomVariantMissingVariantID(t *testing.T) {
	exec := graphQLScript(t, map[string]string{
		shopify.ProductOptionsQuery:          `{"product": {"id": "gid://shopify/Product/123", "options": []}}`,
		shopify.ProductVariantCreateMutation: `{"productVariantCreate": {"variant": null, "userErrors": []}}`,
	})
	r := newTestRouter(t, exec, augmentConfig())

	w := postJSON(t, r, `{"productId": "123", "price": 10}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Variant ID could not be retrieved.", body["error"])
	assert.NotNil(t, body["debug"])
}

func TestCreateCustomVariantProductNotFound(t *testing.T) {
	exec := graphQLScript(t, map[string]string{
		shopify.ProductOptionsQuery: `{"product": null}`,
	})
	r := newTestRouter(t, exec, augmentConfig())

	w := postJSON(t, r, `{"productId": "123", "price": 10}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Product could not be read.", body["error"])
	assert.NotNil(t, body["debug"])
}

func TestCreateCustomVariantMetafieldFailureStillSucceeds(t *testing.T) {
	exec := graphQLScript(t, map[string]string{
		shopify.ProductOptionsQuery:          `{"product": {"id": "gid://shopify/Product/123", "options": []}}`,
		shopify.ProductVariantCreateMutation: `{"productVariantCreate": {"variant": {"id": "gid://shopify/ProductVariant/999", "sku": "custom-1"}, "userErrors": []}}`,
		shopify.MetafieldsSetMutation:        `{"metafieldsSet": {"userErrors": [{"field": ["type"], "message": "invalid type"}]}}`,
	})
	cfg := augmentConfig()
	cfg.SetDeletableMetafield = true
	r := newTestRouter(t, exec, cfg)

	w := postJSON(t, r, `{"productId": "123", "price": 10}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "gid://shopify/ProductVariant/999", body["variantId"])
	assert.Equal(t, false, body["isDeletable"])
}

func TestIntrospectionTestForwardsPayloadVerbatim(t *testing.T) {
	payload := `{"data": {"__schema": {"mutationType": {"name": "Mutation"}}}}`
	exec := &fakeExecutor{
		executeFunc: func(context.Context, string, map[string]interface{}) (*shopify.GraphQLResponse, error) {
			return &shopify.GraphQLResponse{
				Data: json.RawMessage(`{"__schema": {"mutationType": {"name": "Mutation"}}}`),
				Raw:  json.RawMessage(payload),
			}, nil
		},
	}
	r := newTestRouter(t, exec, augmentConfig())

	req := httptest.NewRequest(http.MethodGet, "/introspection-test", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, payload, w.Body.String())
}
