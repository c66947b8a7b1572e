package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/pricingengine/internal/pricing/application"
	"github.com/wyfcoding/pricingengine/pkg/config"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := application.NewPricingService(config.EngineConfig{
		DefaultSteps:       100,
		MaxSteps:           1000,
		DefaultSimulations: 10000,
		MaxSimulations:     100000,
	}, nil)

	router := gin.New()
	NewPricingHandler(service).RegisterRoutes(router.Group(""))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestPriceOptionEndpoint(t *testing.T) {
	router := setupRouter()

	recorder := postJSON(t, router, "/api/v1/pricing/option/price", gin.H{
		"model":            "BLACK_SCHOLES",
		"option_type":      "CALL",
		"option_style":     "EUROPEAN",
		"spot":             100,
		"strike":           100,
		"risk_free_rate":   0.05,
		"volatility":       0.2,
		"time_to_maturity": 1,
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	var body struct {
		Code int `json:"code"`
		Data struct {
			Price string `json:"price"`
		} `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Price == "" {
		t.Errorf("missing price in response: %s", recorder.Body.String())
	}
}

func TestPriceOptionEndpointValidation(t *testing.T) {
	router := setupRouter()

	// 缺少必填字段
	recorder := postJSON(t, router, "/api/v1/pricing/option/price", gin.H{
		"model": "BLACK_SCHOLES",
	})
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}

	// 美式 + Black-Scholes 模型不匹配
	recorder = postJSON(t, router, "/api/v1/pricing/option/price", gin.H{
		"model":            "BLACK_SCHOLES",
		"option_type":      "PUT",
		"option_style":     "AMERICAN",
		"spot":             100,
		"strike":           100,
		"risk_free_rate":   0.05,
		"volatility":       0.2,
		"time_to_maturity": 1,
	})
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
}

func TestImpliedVolatilityEndpoint(t *testing.T) {
	router := setupRouter()

	recorder := postJSON(t, router, "/api/v1/pricing/option/implied-volatility", gin.H{
		"option_type":      "CALL",
		"spot":             100,
		"strike":           100,
		"risk_free_rate":   0.05,
		"time_to_maturity": 1,
		"market_price":     10.4506,
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}
}

func TestImpliedVolatilityEndpointUnprocessable(t *testing.T) {
	router := setupRouter()

	// 到期期权无法反解波动率
	recorder := postJSON(t, router, "/api/v1/pricing/option/implied-volatility", gin.H{
		"option_type":      "CALL",
		"spot":             100,
		"strike":           100,
		"risk_free_rate":   0.05,
		"time_to_maturity": 0,
		"market_price":     5,
	})
	if recorder.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422, body = %s", recorder.Code, recorder.Body.String())
	}
}
