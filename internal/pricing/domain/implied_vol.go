package domain

import (
	"fmt"
	"math"
)

// 隐含波动率求解参数
const (
	ivInitialGuess  = 0.5
	ivMaxIterations = 100
	ivTolerance     = 1e-6
	ivMinVega       = 1e-10
	ivFloor         = 0.01
)

// SolveImpliedVolatility 用 Newton-Raphson 反解隐含波动率
// 以 Black-Scholes 价格为 oracle；输入中的波动率字段被忽略。
// 返回波动率与实际迭代次数；不收敛时返回 ErrNonConvergence，不重试。
func SolveImpliedVolatility(data MarketData, typ OptionType, marketPrice float64) (float64, int, error) {
	if marketPrice <= 0 {
		return 0, 0, fmt.Errorf("%w: marketPrice must be > 0, got %v", ErrInvalidInput, marketPrice)
	}
	if data.TimeToMaturity <= 0 {
		// 到期时价格固定为内在价值，对波动率无敏感度
		return 0, 0, fmt.Errorf("%w: option at expiry has zero vega", ErrDegenerateMarketData)
	}

	sigma := ivInitialGuess

	for iter := 1; iter <= ivMaxIterations; iter++ {
		trial := data
		trial.Volatility = sigma

		pricer := BlackScholesPricer{Data: trial, Type: typ}
		price, err := pricer.Price()
		if err != nil {
			return 0, iter, err
		}

		diff := price - marketPrice
		if math.Abs(diff) < ivTolerance {
			return sigma, iter, nil
		}

		greeks, err := pricer.CalculateGreeks()
		if err != nil {
			return 0, iter, err
		}
		// 报告口径是每 1% 波动率变动，此处需要原始导数 dPrice/dSigma
		vegaRaw := greeks.Vega * 100.0

		if math.Abs(vegaRaw) < ivMinVega {
			return 0, iter, fmt.Errorf("%w: vega %v too small at sigma %v", ErrNonConvergence, vegaRaw, sigma)
		}

		sigma = sigma - diff/vegaRaw

		// 保证波动率为正
		if sigma <= 0 {
			sigma = ivFloor
		}
	}

	return 0, ivMaxIterations, fmt.Errorf("%w: implied volatility not found in %d iterations", ErrNonConvergence, ivMaxIterations)
}
