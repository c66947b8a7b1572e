package domain

import "fmt"

// Pricer 期权定价器统一接口
type Pricer interface {
	Price() (float64, error)
	CalculateGreeks() (Greeks, error)
}

// ModelParams 模型可调参数，零值表示使用默认
type ModelParams struct {
	NumSteps       int
	NumSimulations int
	Seed           int64
	Workers        int
}

// NewPricer 按模型分发定价器
// BLACK_SCHOLES 仅接受欧式；MONTE_CARLO 拒绝美式；BINOMIAL 两者皆可
func NewPricer(model PricingModel, data MarketData, typ OptionType, style OptionStyle, params ModelParams) (Pricer, error) {
	switch model {
	case ModelBlackScholes:
		return NewBlackScholesPricer(data, typ, style)
	case ModelBinomial:
		steps := params.NumSteps
		if steps == 0 {
			steps = DefaultBinomialSteps
		}
		return NewBinomialTreePricer(data, typ, style, steps)
	case ModelMonteCarlo:
		simulations := params.NumSimulations
		if simulations == 0 {
			simulations = DefaultSimulations
		}
		return NewMonteCarloPricer(data, typ, style, simulations, params.Seed, params.Workers)
	default:
		return nil, fmt.Errorf("%w: unknown pricing model %q", ErrInvalidInput, model)
	}
}
