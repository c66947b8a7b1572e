package domain

import (
	"fmt"
	"strings"
)

// OptionType 期权类型
type OptionType string

const (
	OptionTypeCall OptionType = "CALL" // 看涨期权
	OptionTypePut  OptionType = "PUT"  // 看跌期权
)

// OptionStyle 行权方式
type OptionStyle string

const (
	OptionStyleEuropean OptionStyle = "EUROPEAN" // 欧式
	OptionStyleAmerican OptionStyle = "AMERICAN" // 美式
)

// PricingModel 定价模型标签
type PricingModel string

const (
	ModelBlackScholes PricingModel = "BLACK_SCHOLES"
	ModelBinomial     PricingModel = "BINOMIAL"
	ModelMonteCarlo   PricingModel = "MONTE_CARLO"
)

// ParseOptionType 解析期权类型（大小写不敏感）
func ParseOptionType(s string) (OptionType, error) {
	switch OptionType(strings.ToUpper(s)) {
	case OptionTypeCall:
		return OptionTypeCall, nil
	case OptionTypePut:
		return OptionTypePut, nil
	}
	return "", fmt.Errorf("%w: option type %q", ErrInvalidInput, s)
}

// ParseOptionStyle 解析行权方式（大小写不敏感）
func ParseOptionStyle(s string) (OptionStyle, error) {
	switch OptionStyle(strings.ToUpper(s)) {
	case OptionStyleEuropean:
		return OptionStyleEuropean, nil
	case OptionStyleAmerican:
		return OptionStyleAmerican, nil
	}
	return "", fmt.Errorf("%w: option style %q", ErrInvalidInput, s)
}

// ParsePricingModel 解析定价模型标签（大小写不敏感，接受 - 与 _）
func ParsePricingModel(s string) (PricingModel, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(s, "-", "_"))
	switch PricingModel(normalized) {
	case ModelBlackScholes:
		return ModelBlackScholes, nil
	case ModelBinomial:
		return ModelBinomial, nil
	case ModelMonteCarlo:
		return ModelMonteCarlo, nil
	}
	return "", fmt.Errorf("%w: pricing model %q", ErrInvalidInput, s)
}

// MarketData 定价输入的市场数据
// 构造后不可变，每次请求单独构造，调用间不共享
type MarketData struct {
	Spot           float64 // 标的资产价格
	Strike         float64 // 执行价格
	RiskFreeRate   float64 // 连续复利无风险利率
	Volatility     float64 // 年化波动率
	TimeToMaturity float64 // 到期时间（年）；0 表示到期日当天
	DividendYield  float64 // 连续股息率
}

// NewMarketData 构造并校验市场数据
// 校验失败时返回 ErrInvalidInput 并指明字段
func NewMarketData(spot, strike, riskFreeRate, volatility, timeToMaturity, dividendYield float64) (MarketData, error) {
	if spot <= 0 {
		return MarketData{}, fmt.Errorf("%w: spot must be > 0, got %v", ErrInvalidInput, spot)
	}
	if strike <= 0 {
		return MarketData{}, fmt.Errorf("%w: strike must be > 0, got %v", ErrInvalidInput, strike)
	}
	if riskFreeRate < 0 {
		return MarketData{}, fmt.Errorf("%w: riskFreeRate must be >= 0, got %v", ErrInvalidInput, riskFreeRate)
	}
	if volatility < 0 || volatility > 2 {
		return MarketData{}, fmt.Errorf("%w: volatility must be in [0, 2], got %v", ErrInvalidInput, volatility)
	}
	if timeToMaturity < 0 {
		return MarketData{}, fmt.Errorf("%w: timeToMaturity must be >= 0, got %v", ErrInvalidInput, timeToMaturity)
	}
	if dividendYield < 0 {
		return MarketData{}, fmt.Errorf("%w: dividendYield must be >= 0, got %v", ErrInvalidInput, dividendYield)
	}
	return MarketData{
		Spot:           spot,
		Strike:         strike,
		RiskFreeRate:   riskFreeRate,
		Volatility:     volatility,
		TimeToMaturity: timeToMaturity,
		DividendYield:  dividendYield,
	}, nil
}

// IntrinsicValue 按类型计算内在价值
func (md MarketData) IntrinsicValue(typ OptionType) float64 {
	if typ == OptionTypeCall {
		return max(0, md.Spot-md.Strike)
	}
	return max(0, md.Strike-md.Spot)
}

// Greeks 希腊字母
// 约定：vega 与 rho 按 1 个百分点的变动报告，theta 按自然日报告；
// T<=0 时全部为零（与真实极限 delta 存在已知的不连续）
type Greeks struct {
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
}
