package application

import (
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/pricingengine/internal/pricing/domain"
)

// PriceOptionCommand 期权定价命令
type PriceOptionCommand struct {
	Model          string
	OptionType     string
	OptionStyle    string
	Spot           float64
	Strike         float64
	RiskFreeRate   float64
	Volatility     float64
	TimeToMaturity float64
	DividendYield  float64
	NumSteps       int
	NumSimulations int
	Seed           int64
}

// ImpliedVolCommand 隐含波动率求解命令
type ImpliedVolCommand struct {
	OptionType     string
	Spot           float64
	Strike         float64
	RiskFreeRate   float64
	TimeToMaturity float64
	DividendYield  float64
	MarketPrice    float64
}

// GreeksDTO 希腊字母
// vega/rho 对应 1% 变动，theta 对应 1 自然日
type GreeksDTO struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Theta float64 `json:"theta"`
	Rho   float64 `json:"rho"`
}

// PriceOptionResult 定价结果
type PriceOptionResult struct {
	Model    string          `json:"model"`
	Price    decimal.Decimal `json:"price"`
	StdError decimal.Decimal `json:"std_error,omitempty"`
	Greeks   GreeksDTO       `json:"greeks"`
}

// ImpliedVolResult 隐含波动率结果
type ImpliedVolResult struct {
	ImpliedVolatility decimal.Decimal `json:"implied_volatility"`
	Iterations        int             `json:"iterations"`
}

func toGreeksDTO(g domain.Greeks) GreeksDTO {
	return GreeksDTO{Delta: g.Delta, Gamma: g.Gamma, Vega: g.Vega, Theta: g.Theta, Rho: g.Rho}
}
