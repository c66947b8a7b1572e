package domain

import (
	"fmt"
	"math"
)

// DefaultBinomialSteps 二叉树默认步数
const DefaultBinomialSteps = 100

// BinomialTreePricer Cox-Ross-Rubinstein 二叉树定价器
// 支持欧式与美式行权；反向归纳为对显式数组的纯函数计算，空间复杂度 O(n)
type BinomialTreePricer struct {
	Data  MarketData
	Type  OptionType
	Style OptionStyle
	Steps int
}

// NewBinomialTreePricer 创建二叉树定价器
func NewBinomialTreePricer(data MarketData, typ OptionType, style OptionStyle, steps int) (*BinomialTreePricer, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: numSteps must be > 0, got %d", ErrInvalidInput, steps)
	}
	return &BinomialTreePricer{Data: data, Type: typ, Style: style, Steps: steps}, nil
}

// payoff 节点行权收益
func (p *BinomialTreePricer) payoff(spot float64) float64 {
	if p.Type == OptionTypeCall {
		return max(0, spot-p.Data.Strike)
	}
	return max(0, p.Data.Strike-spot)
}

// latticeParams CRR 参数：dt, u, d
func (p *BinomialTreePricer) latticeParams() (float64, float64, float64) {
	dt := p.Data.TimeToMaturity / float64(p.Steps)
	u := math.Exp(p.Data.Volatility * math.Sqrt(dt))
	return dt, u, 1 / u
}

// evolve 构建终端收益并反向归纳
// 返回根节点价格以及第 1、2 层的期权价值，供 delta/gamma 直接从格点提取
func (p *BinomialTreePricer) evolve() (float64, [2]float64, [3]float64, error) {
	md := p.Data
	var level1 [2]float64
	var level2 [3]float64

	if md.TimeToMaturity <= 0 {
		return md.IntrinsicValue(p.Type), level1, level2, nil
	}
	if md.Volatility == 0 {
		// u=d=1 时格点塌缩，风险中性概率无定义
		return 0, level1, level2, fmt.Errorf("%w: zero volatility collapses the lattice", ErrDegenerateMarketData)
	}

	n := p.Steps
	dt, u, d := p.latticeParams()

	// 风险中性概率
	a := math.Exp((md.RiskFreeRate - md.DividendYield) * dt)
	prob := (a - d) / (u - d)
	if prob < 0 || prob > 1 {
		return 0, level1, level2, fmt.Errorf("%w: risk-neutral probability %v outside [0, 1]", ErrDegenerateMarketData, prob)
	}

	// 终端收益
	values := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		spot := md.Spot * math.Pow(u, float64(n-i)) * math.Pow(d, float64(i))
		values[i] = p.payoff(spot)
	}

	// 步数不超过 2 时终端层就是第 1/2 层，反向循环不会再经过它们
	if n == 1 {
		copy(level1[:], values[:2])
	}
	if n == 2 {
		copy(level2[:], values[:3])
	}

	// 反向归纳
	discount := math.Exp(-md.RiskFreeRate * dt)
	for step := n - 1; step >= 0; step-- {
		for i := 0; i <= step; i++ {
			continuation := discount * (prob*values[i] + (1-prob)*values[i+1])
			if p.Style == OptionStyleAmerican {
				spot := md.Spot * math.Pow(u, float64(step-i)) * math.Pow(d, float64(i))
				continuation = max(continuation, p.payoff(spot))
			}
			values[i] = continuation
		}
		switch step {
		case 2:
			copy(level2[:], values[:3])
		case 1:
			copy(level1[:], values[:2])
		}
	}

	return values[0], level1, level2, nil
}

// Price 计算期权价格；T<=0 时返回内在价值
func (p *BinomialTreePricer) Price() (float64, error) {
	price, _, _, err := p.evolve()
	return price, err
}

// CalculateGreeks 计算希腊字母
// delta/gamma 直接取自格点前两层的有限差分；vega/theta/rho 通过微扰重算
func (p *BinomialTreePricer) CalculateGreeks() (Greeks, error) {
	md := p.Data
	if md.TimeToMaturity <= 0 {
		return Greeks{}, nil
	}

	price, level1, level2, err := p.evolve()
	if err != nil {
		return Greeks{}, err
	}

	_, u, d := p.latticeParams()
	var greeks Greeks

	// Delta：第一层上下节点差分
	greeks.Delta = (level1[0] - level1[1]) / (md.Spot*u - md.Spot*d)

	// Gamma：第二层三节点的二阶差分；单步树没有第二层，记为 0
	if p.Steps >= 2 {
		su2 := md.Spot * u * u
		sd2 := md.Spot * d * d
		deltaUp := (level2[0] - level2[1]) / (su2 - md.Spot)
		deltaDown := (level2[1] - level2[2]) / (md.Spot - sd2)
		greeks.Gamma = (deltaUp - deltaDown) / (0.5 * (su2 - sd2))
	}

	// Vega：波动率 +1% 重算
	vegaPricer := *p
	vegaPricer.Data.Volatility += 0.01
	vegaPrice, err := vegaPricer.Price()
	if err != nil {
		return Greeks{}, err
	}
	greeks.Vega = vegaPrice - price

	// Theta：时间 -1 自然日重算
	if md.TimeToMaturity > 1.0/365.0 {
		thetaPricer := *p
		thetaPricer.Data.TimeToMaturity -= 1.0 / 365.0
		thetaPrice, err := thetaPricer.Price()
		if err != nil {
			return Greeks{}, err
		}
		greeks.Theta = thetaPrice - price
	}

	// Rho：利率 +1% 重算
	rhoPricer := *p
	rhoPricer.Data.RiskFreeRate += 0.01
	rhoPrice, err := rhoPricer.Price()
	if err != nil {
		return Greeks{}, err
	}
	greeks.Rho = rhoPrice - price

	return greeks, nil
}
