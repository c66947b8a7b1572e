package domain

import (
	"fmt"
	"math"
)

// BlackScholesPricer Black-Scholes 闭式欧式定价器
// 同时作为隐含波动率求解的价格 oracle
type BlackScholesPricer struct {
	Data MarketData
	Type OptionType
}

// NewBlackScholesPricer 创建 Black-Scholes 定价器
// 美式行权在任何计算前被拒绝
func NewBlackScholesPricer(data MarketData, typ OptionType, style OptionStyle) (*BlackScholesPricer, error) {
	if style == OptionStyleAmerican {
		return nil, fmt.Errorf("%w: Black-Scholes prices European options only", ErrModelStyleMismatch)
	}
	return &BlackScholesPricer{Data: data, Type: typ}, nil
}

// d1 计算 d1 参数
func (p *BlackScholesPricer) d1() float64 {
	md := p.Data
	numerator := math.Log(md.Spot/md.Strike) +
		(md.RiskFreeRate-md.DividendYield+0.5*md.Volatility*md.Volatility)*md.TimeToMaturity
	return numerator / (md.Volatility * math.Sqrt(md.TimeToMaturity))
}

// d2 计算 d2 参数
func (p *BlackScholesPricer) d2() float64 {
	return p.d1() - p.Data.Volatility*math.Sqrt(p.Data.TimeToMaturity)
}

// Price 计算期权理论价格
// T<=0 时返回内在价值；sigma=0 时标的无风险漂移，价格确定
func (p *BlackScholesPricer) Price() (float64, error) {
	md := p.Data

	if md.TimeToMaturity <= 0 {
		return md.IntrinsicValue(p.Type), nil
	}

	discount := math.Exp(-md.DividendYield * md.TimeToMaturity)
	pvStrike := md.Strike * math.Exp(-md.RiskFreeRate*md.TimeToMaturity)

	if md.Volatility == 0 {
		if p.Type == OptionTypeCall {
			return max(0, md.Spot*discount-pvStrike), nil
		}
		return max(0, pvStrike-md.Spot*discount), nil
	}

	d1 := p.d1()
	d2 := p.d2()

	if p.Type == OptionTypeCall {
		return md.Spot*discount*normCdf(d1) - pvStrike*normCdf(d2), nil
	}
	return pvStrike*normCdf(-d2) - md.Spot*discount*normCdf(-d1), nil
}

// CalculateGreeks 计算希腊字母
// vega/rho 按 1% 变动报告，theta 按自然日报告；T<=0 时全部为零
func (p *BlackScholesPricer) CalculateGreeks() (Greeks, error) {
	md := p.Data

	if md.TimeToMaturity <= 0 {
		return Greeks{}, nil
	}

	discount := math.Exp(-md.DividendYield * md.TimeToMaturity)
	pvStrike := md.Strike * math.Exp(-md.RiskFreeRate*md.TimeToMaturity)

	if md.Volatility == 0 {
		// 退化情形：价格是远期的确定函数，delta 退化为指示函数
		var greeks Greeks
		forwardITM := md.Spot*discount > pvStrike
		if p.Type == OptionTypeCall && forwardITM {
			greeks.Delta = discount
		}
		if p.Type == OptionTypePut && !forwardITM {
			greeks.Delta = -discount
		}
		return greeks, nil
	}

	d1 := p.d1()
	d2 := p.d2()
	sqrtT := math.Sqrt(md.TimeToMaturity)

	var greeks Greeks

	// Delta
	if p.Type == OptionTypeCall {
		greeks.Delta = discount * normCdf(d1)
	} else {
		greeks.Delta = -discount * normCdf(-d1)
	}

	// Gamma（看涨看跌相同）
	greeks.Gamma = discount * normPdf(d1) / (md.Spot * md.Volatility * sqrtT)

	// Vega（看涨看跌相同），按波动率 1% 变动
	greeks.Vega = md.Spot * discount * normPdf(d1) * sqrtT / 100.0

	// Theta，按自然日
	term1 := -(md.Spot * discount * normPdf(d1) * md.Volatility) / (2.0 * sqrtT)
	term2 := md.DividendYield * md.Spot * discount
	term3 := md.RiskFreeRate * md.Strike * math.Exp(-md.RiskFreeRate*md.TimeToMaturity)
	if p.Type == OptionTypeCall {
		greeks.Theta = (term1 + term2*normCdf(d1) - term3*normCdf(d2)) / 365.0
	} else {
		greeks.Theta = (term1 - term2*normCdf(-d1) + term3*normCdf(-d2)) / 365.0
	}

	// Rho，按利率 1% 变动
	rhoBase := md.Strike * md.TimeToMaturity * math.Exp(-md.RiskFreeRate*md.TimeToMaturity)
	if p.Type == OptionTypeCall {
		greeks.Rho = rhoBase * normCdf(d2) / 100.0
	} else {
		greeks.Rho = -rhoBase * normCdf(-d2) / 100.0
	}

	return greeks, nil
}

// normCdf 标准正态分布累积分布函数
func normCdf(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// normPdf 标准正态分布概率密度函数
func normPdf(x float64) float64 {
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}
