package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/infrastructure/ai"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func sampleMetrics() *dto.SalesMetricsDTO {
	return &dto.SalesMetricsDTO{
		TotalSales: decimal.NewFromInt(125000),
		OrderCount: 48,
		TopSellingProducts: []dto.TopProductDTO{
			{Product: "Wood Pallets 3", Quantity: 120, Revenue: decimal.NewFromInt(42000)},
		},
	}
}

// claudeServer simula la Messages API devolviendo text como contenido.
func claudeServer(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": text}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AnthropicService
// ──────────────────────────────────────────────────────────────────────────────

func TestAnthropic_SinAPIKeyDevuelveError(t *testing.T) {
	svc := ai.NewAnthropicService("", "claude-3-5-haiku-20241022")
	_, err := svc.GenerateInsights(context.Background(), sampleMetrics())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestAnthropic_ParseaJSONEnvueltoEnMarkdown(t *testing.T) {
	text := "Here you go:\n```json\n{\"insights\":[" +
		"{\"type\":\"trend\",\"title\":\"Wood leads\",\"description\":\"Wood pallets drive revenue.\",\"confidence\":140}," +
		"{\"type\":\"bogus\",\"title\":\"Ignored\",\"description\":\"x\",\"confidence\":50}," +
		"{\"type\":\"risk\",\"title\":\"Stock\",\"description\":\"Low stock.\",\"confidence\":-5}]}\n```"
	srv := claudeServer(t, http.StatusOK, text)

	svc := ai.NewAnthropicService("test-key", "m").WithEndpoint(srv.URL)
	out, err := svc.GenerateInsights(context.Background(), sampleMetrics())
	require.NoError(t, err)
	require.Len(t, out, 2, "los tipos desconocidos se descartan")
	assert.Equal(t, "trend", out[0].Type)
	assert.Equal(t, 100, out[0].Confidence)
	assert.Equal(t, "risk", out[1].Type)
	assert.Equal(t, 0, out[1].Confidence)
}

func TestAnthropic_ErrorHTTPIncluyeTipo(t *testing.T) {
	srv := claudeServer(t, http.StatusTooManyRequests, "")
	svc := ai.NewAnthropicService("test-key", "m").WithEndpoint(srv.URL)
	_, err := svc.GenerateInsights(context.Background(), sampleMetrics())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_error")
}

func TestAnthropic_RespuestaSinJSON(t *testing.T) {
	srv := claudeServer(t, http.StatusOK, "no structured output today")
	svc := ai.NewAnthropicService("test-key", "m").WithEndpoint(srv.URL)
	_, err := svc.GenerateInsights(context.Background(), sampleMetrics())
	require.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests StaticInsights
// ──────────────────────────────────────────────────────────────────────────────

func TestStatic_CuatroTiposConCifrasReales(t *testing.T) {
	out, err := ai.NewStaticInsights().GenerateInsights(context.Background(), sampleMetrics())
	require.NoError(t, err)
	require.Len(t, out, 4)
	types := []string{out[0].Type, out[1].Type, out[2].Type, out[3].Type}
	assert.Equal(t, []string{ai.InsightTrend, ai.InsightOpportunity, ai.InsightRisk, ai.InsightAnomaly}, types)
	assert.Contains(t, out[0].Description, "Wood Pallets 3")
}

func TestStatic_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ai.NewStaticInsights().GenerateInsights(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
