package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-shopping-be/internal/bootstrap"
	"ai-shopping-be/internal/config"
	"ai-shopping-be/internal/dto"
	"ai-shopping-be/internal/pkg/logger"
	"ai-shopping-be/internal/pkg/serverutils"
	"ai-shopping-be/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{Port: "0", CorsAllowedOrigins: "*"},
		Interpret: config.InterpretConfig{
			RelevanceEnabled: true,
			TruncateMaxChars: 120,
			ParseCacheTTL:    time.Minute,
			ParseCacheClean:  time.Minute,
		},
	}
	return New(cfg, bootstrap.NewContainerWithLogger(cfg, logger.NewNopLogger()))
}

func post(t *testing.T, s *Server, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var raw []byte
	switch b := body.(type) {
	case string:
		raw = []byte(b)
	default:
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.GetApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, body []byte) serverutils.Response[T] {
	t.Helper()
	var res serverutils.Response[T]
	require.NoError(t, json.Unmarshal(body, &res), string(body))
	return res
}

func TestParseEndpoint(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{
		"tool_name":   "search_restaurants",
		"content":     `{"restaurants":[{"name":"Saffron Table","cuisine":"Indian","rating":4.5}]}`,
		"vertical_id": "dining",
	}

	resp, raw := post(t, s, "/api/interpret/v1/parse", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	first := decode[dto.ParseResponse](t, raw)
	assert.True(t, first.Success)
	assert.False(t, first.Data.Cached)
	assert.Equal(t, model.TypeRestaurants, first.Data.Result.Type)
	require.Len(t, first.Data.Result.Restaurants, 1)
	assert.Equal(t, "Saffron Table", first.Data.Result.Restaurants[0].Name)

	_, raw = post(t, s, "/api/interpret/v1/parse", body)
	second := decode[dto.ParseResponse](t, raw)
	assert.True(t, second.Data.Cached)
	assert.Equal(t, first.Data.Id, second.Data.Id)
}

func TestParseEndpoint_BroadenPrompt(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{
		"tool_name":   "search_restaurants",
		"content":     map[string]any{"restaurants": []any{map[string]any{"name": "Olive Bistro", "cuisine": "Italian"}}},
		"vertical_id": "dining",
		"context":     map[string]any{"latest_user_query": "thai food"},
	}

	_, raw := post(t, s, "/api/interpret/v1/parse", body)
	res := decode[dto.ParseResponse](t, raw)
	assert.True(t, res.Data.Result.RequireBroadenPrompt)
	assert.Equal(t, []string{"cuisine: thai"}, res.Data.Result.ActiveFilters)
}

func TestParseEndpoint_Validation(t *testing.T) {
	s := newTestServer(t)

	resp, raw := post(t, s, "/api/interpret/v1/parse", map[string]any{"content": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body serverutils.ErrorBody
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Errors, "ParseRequest.ToolName")
	assert.Contains(t, body.Errors, "ParseRequest.VerticalId")

	resp, _ = post(t, s, "/api/interpret/v1/parse", "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTruncateEndpoint(t *testing.T) {
	s := newTestServer(t)
	items := make([]string, 10)
	for i := range items {
		items[i] = `{"name":"item ` + strings.Repeat("x", i) + `"}`
	}
	doc := `{"items":[` + strings.Join(items, ",") + `]}`

	_, raw := post(t, s, "/api/interpret/v1/truncate", map[string]any{"json_text": doc})
	res := decode[dto.TruncateResponse](t, raw)
	assert.True(t, res.Data.Truncated)
	assert.LessOrEqual(t, res.Data.Length, 120)
	assert.True(t, json.Valid([]byte(res.Data.Text)))
	assert.Equal(t, len(doc), res.Data.OriginalLength)
}

func TestRerankEndpoint(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{
		"vertical_id": "food",
		"kind":        "menu",
		"query":       "veg",
		"products": []any{
			map[string]any{"id": "1", "name": "Paneer Tikka", "itemType": "veg", "available": true},
			map[string]any{"id": "2", "name": "Chicken 65", "itemType": "non_veg", "available": true},
		},
	}

	resp, raw := post(t, s, "/api/interpret/v1/rerank", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	res := decode[dto.RerankResponse](t, raw)
	require.Len(t, res.Data.Products, 1)
	assert.Equal(t, "Paneer Tikka", res.Data.Products[0].Name)
	require.NotNil(t, res.Data.Constraints)
	assert.Equal(t, model.DietVeg, res.Data.Constraints.Diet)

	resp, _ = post(t, s, "/api/interpret/v1/rerank", map[string]any{"vertical_id": "food", "kind": "tables"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVariantsEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, raw := post(t, s, "/api/interpret/v1/variants", map[string]any{"text": "**Coca Cola**\n- 300ml @ ₹40\n- 500ml @ ₹65\n"})
	res := decode[dto.VariantsResponse](t, raw)
	require.Len(t, res.Data.Segments, 1)
	assert.Len(t, res.Data.Segments[0].Products, 2)
}

func TestSanitizeEndpoint(t *testing.T) {
	s := newTestServer(t)
	big := `[` + strings.TrimSuffix(strings.Repeat(`{"name":"milk packet"},`, 20), ",") + `]`
	body := map[string]any{
		"messages": []any{
			map[string]any{"role": "user", "content": []any{map[string]any{"type": "text", "text": "milk"}}},
			map[string]any{"role": "user", "content": []any{map[string]any{"type": "tool_result", "tool_use_id": "t1", "content": big}}},
		},
	}

	resp, raw := post(t, s, "/api/interpret/v1/sanitize", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	res := decode[dto.SanitizeResponse](t, raw)
	assert.Equal(t, 1, res.Data.Truncated)
	assert.LessOrEqual(t, len(res.Data.Messages[1].Content[0].Content), 120)

	resp, _ = post(t, s, "/api/interpret/v1/sanitize", map[string]any{
		"messages": []any{map[string]any{"role": "system", "content": []any{}}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.GetApp().Test(httptest.NewRequest(http.MethodGet, "/api/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
