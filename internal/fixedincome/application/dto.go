package application

import "github.com/shopspring/decimal"

// CurvePointDTO 收益率曲线节点
type CurvePointDTO struct {
	Maturity float64 `json:"maturity"`
	Rate     float64 `json:"rate"`
}

// PriceBondCommand 债券定价命令
// CouponRate 为 0 时按零息债券处理
// 到期收益率默认由曲线隐含价格反解，MarketPrice 大于 0 时改用市场价
type PriceBondCommand struct {
	Face        float64
	CouponRate  float64
	Maturity    float64
	Frequency   string
	Curve       []CurvePointDTO
	MarketPrice float64
}

// PriceBondResult 债券定价结果
type PriceBondResult struct {
	Price            decimal.Decimal `json:"price"`
	YieldToMaturity  decimal.Decimal `json:"yield_to_maturity"`
	ModifiedDuration float64         `json:"modified_duration"`
	MacaulayDuration float64         `json:"macaulay_duration,omitempty"`
	Convexity        float64         `json:"convexity"`
}

// PriceSwapCommand 利率互换定价命令
type PriceSwapCommand struct {
	Notional  float64
	FixedRate float64
	Maturity  float64
	Frequency string
	Curve     []CurvePointDTO
}

// PriceSwapResult 利率互换定价结果
type PriceSwapResult struct {
	PresentValue decimal.Decimal `json:"present_value"`
	FixedLeg     decimal.Decimal `json:"fixed_leg"`
	FloatingLeg  decimal.Decimal `json:"floating_leg"`
	FairSwapRate decimal.Decimal `json:"fair_swap_rate"`
	DV01         decimal.Decimal `json:"dv01"`
	Duration     float64         `json:"duration"`
}
