package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/pricingengine/internal/fixedincome/application"
	"github.com/wyfcoding/pricingengine/internal/fixedincome/domain"
	"github.com/wyfcoding/pricingengine/pkg/logger"
	"github.com/wyfcoding/pricingengine/pkg/response"
)

// FixedIncomeHandler 固定收益 HTTP 处理器
type FixedIncomeHandler struct {
	service *application.FixedIncomeService
}

// NewFixedIncomeHandler 创建处理器实例
func NewFixedIncomeHandler(service *application.FixedIncomeService) *FixedIncomeHandler {
	return &FixedIncomeHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *FixedIncomeHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/fixedincome")
	{
		api.POST("/bond/price", h.PriceBond)
		api.POST("/swap/price", h.PriceSwap)
	}
}

// CurvePointRequest 收益率曲线节点
type CurvePointRequest struct {
	Maturity float64 `json:"maturity" binding:"gte=0"`
	Rate     float64 `json:"rate"`
}

// PriceBondRequest 债券定价请求
type PriceBondRequest struct {
	Face        float64             `json:"face" binding:"required,gt=0"`
	CouponRate  float64             `json:"coupon_rate" binding:"gte=0"`
	Maturity    float64             `json:"maturity" binding:"required,gt=0"`
	Frequency   string              `json:"frequency"`
	Curve       []CurvePointRequest `json:"curve" binding:"required,min=1,dive"`
	MarketPrice float64             `json:"market_price" binding:"gte=0"`
}

// PriceSwapRequest 利率互换定价请求
type PriceSwapRequest struct {
	Notional  float64             `json:"notional" binding:"required,gt=0"`
	FixedRate float64             `json:"fixed_rate"`
	Maturity  float64             `json:"maturity" binding:"required,gt=0"`
	Frequency string              `json:"frequency"`
	Curve     []CurvePointRequest `json:"curve" binding:"required,min=1,dive"`
}

func toCurveDTO(points []CurvePointRequest) []application.CurvePointDTO {
	curve := make([]application.CurvePointDTO, len(points))
	for i, pt := range points {
		curve[i] = application.CurvePointDTO{Maturity: pt.Maturity, Rate: pt.Rate}
	}
	return curve
}

// PriceBond 债券定价
func (h *FixedIncomeHandler) PriceBond(c *gin.Context) {
	var req PriceBondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := application.PriceBondCommand{
		Face:        req.Face,
		CouponRate:  req.CouponRate,
		Maturity:    req.Maturity,
		Frequency:   req.Frequency,
		Curve:       toCurveDTO(req.Curve),
		MarketPrice: req.MarketPrice,
	}

	result, err := h.service.PriceBond(c.Request.Context(), cmd)
	if err != nil {
		logger.Warn(c.Request.Context(), "bond pricing failed", "error", err)
		response.ErrorWithStatus(c, statusForError(err), err.Error())
		return
	}
	response.Success(c, result)
}

// PriceSwap 利率互换定价
func (h *FixedIncomeHandler) PriceSwap(c *gin.Context) {
	var req PriceSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := application.PriceSwapCommand{
		Notional:  req.Notional,
		FixedRate: req.FixedRate,
		Maturity:  req.Maturity,
		Frequency: req.Frequency,
		Curve:     toCurveDTO(req.Curve),
	}

	result, err := h.service.PriceSwap(c.Request.Context(), cmd)
	if err != nil {
		logger.Warn(c.Request.Context(), "swap pricing failed", "error", err)
		response.ErrorWithStatus(c, statusForError(err), err.Error())
		return
	}
	response.Success(c, result)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNonConvergence):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
