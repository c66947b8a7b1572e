package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/pricingengine/internal/pricing/application"
	"github.com/wyfcoding/pricingengine/internal/pricing/domain"
	"github.com/wyfcoding/pricingengine/pkg/logger"
	"github.com/wyfcoding/pricingengine/pkg/response"
)

// PricingHandler 期权定价 HTTP 处理器
type PricingHandler struct {
	service *application.PricingService
}

// NewPricingHandler 创建处理器实例
func NewPricingHandler(service *application.PricingService) *PricingHandler {
	return &PricingHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *PricingHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/pricing")
	{
		api.POST("/option/price", h.PriceOption)
		api.POST("/option/implied-volatility", h.ImpliedVolatility)
	}
}

// PriceOptionRequest 期权定价请求
type PriceOptionRequest struct {
	Model          string  `json:"model" binding:"required"`
	OptionType     string  `json:"option_type" binding:"required"`
	OptionStyle    string  `json:"option_style" binding:"required"`
	Spot           float64 `json:"spot" binding:"required,gt=0"`
	Strike         float64 `json:"strike" binding:"required,gt=0"`
	RiskFreeRate   float64 `json:"risk_free_rate" binding:"gte=0"`
	Volatility     float64 `json:"volatility" binding:"gte=0"`
	TimeToMaturity float64 `json:"time_to_maturity" binding:"gte=0"`
	DividendYield  float64 `json:"dividend_yield" binding:"gte=0"`
	NumSteps       int     `json:"num_steps" binding:"gte=0"`
	NumSimulations int     `json:"num_simulations" binding:"gte=0"`
	Seed           int64   `json:"seed"`
}

// ImpliedVolRequest 隐含波动率请求
type ImpliedVolRequest struct {
	OptionType     string  `json:"option_type" binding:"required"`
	Spot           float64 `json:"spot" binding:"required,gt=0"`
	Strike         float64 `json:"strike" binding:"required,gt=0"`
	RiskFreeRate   float64 `json:"risk_free_rate" binding:"gte=0"`
	TimeToMaturity float64 `json:"time_to_maturity" binding:"gte=0"`
	DividendYield  float64 `json:"dividend_yield" binding:"gte=0"`
	MarketPrice    float64 `json:"market_price" binding:"required,gt=0"`
}

// PriceOption 期权定价
func (h *PricingHandler) PriceOption(c *gin.Context) {
	var req PriceOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := application.PriceOptionCommand{
		Model:          req.Model,
		OptionType:     req.OptionType,
		OptionStyle:    req.OptionStyle,
		Spot:           req.Spot,
		Strike:         req.Strike,
		RiskFreeRate:   req.RiskFreeRate,
		Volatility:     req.Volatility,
		TimeToMaturity: req.TimeToMaturity,
		DividendYield:  req.DividendYield,
		NumSteps:       req.NumSteps,
		NumSimulations: req.NumSimulations,
		Seed:           req.Seed,
	}

	result, err := h.service.PriceOption(c.Request.Context(), cmd)
	if err != nil {
		logger.Warn(c.Request.Context(), "option pricing failed", "error", err)
		response.ErrorWithStatus(c, statusForError(err), err.Error())
		return
	}
	response.Success(c, result)
}

// ImpliedVolatility 隐含波动率反解
func (h *PricingHandler) ImpliedVolatility(c *gin.Context) {
	var req ImpliedVolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := application.ImpliedVolCommand{
		OptionType:     req.OptionType,
		Spot:           req.Spot,
		Strike:         req.Strike,
		RiskFreeRate:   req.RiskFreeRate,
		TimeToMaturity: req.TimeToMaturity,
		DividendYield:  req.DividendYield,
		MarketPrice:    req.MarketPrice,
	}

	result, err := h.service.ImpliedVolatility(c.Request.Context(), cmd)
	if err != nil {
		logger.Warn(c.Request.Context(), "implied volatility failed", "error", err)
		response.ErrorWithStatus(c, statusForError(err), err.Error())
		return
	}
	response.Success(c, result)
}

// statusForError 领域错误到 HTTP 状态码的映射
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrModelStyleMismatch),
		errors.Is(err, domain.ErrUnsupportedModelStyle):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNonConvergence),
		errors.Is(err, domain.ErrDegenerateMarketData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
