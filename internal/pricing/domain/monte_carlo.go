package domain

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultSimulations 蒙特卡洛默认模拟次数
const DefaultSimulations = 100000

// MonteCarloPricer 几何布朗运动终值抽样的蒙特卡洛定价器
// 仅支持欧式行权；固定 Seed 时结果完全可复现，与 Workers 数量无关
type MonteCarloPricer struct {
	Data        MarketData
	Type        OptionType
	Simulations int
	Seed        int64
	Workers     int
}

// NewMonteCarloPricer 创建蒙特卡洛定价器
// 美式期权没有对应的模拟估值方法，直接拒绝
func NewMonteCarloPricer(data MarketData, typ OptionType, style OptionStyle, simulations int, seed int64, workers int) (*MonteCarloPricer, error) {
	if style == OptionStyleAmerican {
		return nil, fmt.Errorf("%w: MONTE_CARLO does not support AMERICAN exercise", ErrUnsupportedModelStyle)
	}
	if simulations <= 0 {
		return nil, fmt.Errorf("%w: numSimulations must be > 0, got %d", ErrInvalidInput, simulations)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &MonteCarloPricer{Data: data, Type: typ, Simulations: simulations, Seed: seed, Workers: workers}, nil
}

// normalDraws 并行生成标准正态抽样
// 每个 worker 持有独立子流（Seed+w），写入互不重叠的切片段，保证确定性
func (p *MonteCarloPricer) normalDraws() ([]float64, error) {
	draws := make([]float64, p.Simulations)
	chunk := (p.Simulations + p.Workers - 1) / p.Workers

	var g errgroup.Group
	for w := 0; w < p.Workers; w++ {
		start := w * chunk
		if start >= p.Simulations {
			break
		}
		end := min(start+chunk, p.Simulations)
		rng := rand.New(rand.NewSource(p.Seed + int64(w)))
		g.Go(func() error {
			for i := start; i < end; i++ {
				draws[i] = rng.NormFloat64()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return draws, nil
}

// priceFromDraws 在给定抽样下对一组市场数据估值
// 复用同一抽样对微扰后的市场数据重算，即共同随机数法
func (p *MonteCarloPricer) priceFromDraws(md MarketData, draws []float64) float64 {
	if md.TimeToMaturity <= 0 {
		return md.IntrinsicValue(p.Type)
	}

	drift := (md.RiskFreeRate - md.DividendYield - 0.5*md.Volatility*md.Volatility) * md.TimeToMaturity
	diffusion := md.Volatility * math.Sqrt(md.TimeToMaturity)
	discount := math.Exp(-md.RiskFreeRate * md.TimeToMaturity)

	var sum float64
	for _, z := range draws {
		terminal := md.Spot * math.Exp(drift+diffusion*z)
		if p.Type == OptionTypeCall {
			sum += max(0, terminal-md.Strike)
		} else {
			sum += max(0, md.Strike-terminal)
		}
	}
	return discount * sum / float64(len(draws))
}

// Price 计算期权价格
func (p *MonteCarloPricer) Price() (float64, error) {
	price, _, err := p.PriceWithStdError()
	return price, err
}

// PriceWithStdError 计算价格与估计量标准误
func (p *MonteCarloPricer) PriceWithStdError() (float64, float64, error) {
	md := p.Data
	if md.TimeToMaturity <= 0 {
		return md.IntrinsicValue(p.Type), 0, nil
	}

	draws, err := p.normalDraws()
	if err != nil {
		return 0, 0, err
	}

	drift := (md.RiskFreeRate - md.DividendYield - 0.5*md.Volatility*md.Volatility) * md.TimeToMaturity
	diffusion := md.Volatility * math.Sqrt(md.TimeToMaturity)
	discount := math.Exp(-md.RiskFreeRate * md.TimeToMaturity)

	var sum, sumSq float64
	for _, z := range draws {
		terminal := md.Spot * math.Exp(drift+diffusion*z)
		var payoff float64
		if p.Type == OptionTypeCall {
			payoff = max(0, terminal-md.Strike)
		} else {
			payoff = max(0, md.Strike-terminal)
		}
		payoff *= discount
		sum += payoff
		sumSq += payoff * payoff
	}

	n := float64(len(draws))
	mean := sum / n
	// 单条路径没有样本方差
	if len(draws) < 2 {
		return mean, 0, nil
	}
	variance := (sumSq - sum*sum/n) / (n - 1)
	stdError := math.Sqrt(variance / n)
	return mean, stdError, nil
}

// CalculateGreeks 共同随机数法的微扰希腊字母
// delta/gamma 为现货 ±1% 的中心差分，vega/theta/rho 与树定价器同口径
func (p *MonteCarloPricer) CalculateGreeks() (Greeks, error) {
	md := p.Data
	if md.TimeToMaturity <= 0 {
		return Greeks{}, nil
	}

	draws, err := p.normalDraws()
	if err != nil {
		return Greeks{}, err
	}

	base := p.priceFromDraws(md, draws)
	var greeks Greeks

	// Delta、Gamma：现货中心差分
	h := md.Spot * 0.01
	up := md
	up.Spot += h
	down := md
	down.Spot -= h
	priceUp := p.priceFromDraws(up, draws)
	priceDown := p.priceFromDraws(down, draws)
	greeks.Delta = (priceUp - priceDown) / (2 * h)
	greeks.Gamma = (priceUp - 2*base + priceDown) / (h * h)

	// Vega
	bumped := md
	bumped.Volatility += 0.01
	greeks.Vega = p.priceFromDraws(bumped, draws) - base

	// Theta
	if md.TimeToMaturity > 1.0/365.0 {
		bumped = md
		bumped.TimeToMaturity -= 1.0 / 365.0
		greeks.Theta = p.priceFromDraws(bumped, draws) - base
	}

	// Rho
	bumped = md
	bumped.RiskFreeRate += 0.01
	greeks.Rho = p.priceFromDraws(bumped, draws) - base

	return greeks, nil
}
