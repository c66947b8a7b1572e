package domain

import (
	"fmt"
	"math"
)

// InterestRateSwap 支付固定、收取浮动的普通利率互换
// 浮动腿按曲线隐含远期估值，等价于 notional*(1-DF(T))
type InterestRateSwap struct {
	Notional  float64
	FixedRate float64
	Maturity  float64
	Frequency CompoundingFrequency
}

// NewInterestRateSwap 创建利率互换
func NewInterestRateSwap(notional, fixedRate, maturity float64, frequency CompoundingFrequency) (*InterestRateSwap, error) {
	if notional <= 0 {
		return nil, fmt.Errorf("%w: notional must be > 0, got %v", ErrInvalidInput, notional)
	}
	if maturity <= 0 {
		return nil, fmt.Errorf("%w: maturity must be > 0, got %v", ErrInvalidInput, maturity)
	}
	return &InterestRateSwap{Notional: notional, FixedRate: fixedRate, Maturity: maturity, Frequency: frequency}, nil
}

// annuity 固定腿年金因子 Σ dt*DF(t_i)
func (s *InterestRateSwap) annuity(curve *YieldCurve) float64 {
	periods := float64(s.Frequency.PeriodsPerYear())
	dt := 1 / periods

	var sum float64
	for t := dt; t < s.Maturity+1e-9; t += dt {
		sum += dt * curve.DiscountFactor(t)
	}
	return sum
}

// FixedLegValue 固定腿现值
func (s *InterestRateSwap) FixedLegValue(curve *YieldCurve) float64 {
	return s.Notional * s.FixedRate * s.annuity(curve)
}

// FloatingLegValue 浮动腿现值
func (s *InterestRateSwap) FloatingLegValue(curve *YieldCurve) float64 {
	return s.Notional * (1 - curve.DiscountFactor(s.Maturity))
}

// PresentValue 固定支付方视角的净现值：浮动腿减固定腿
func (s *InterestRateSwap) PresentValue(curve *YieldCurve) float64 {
	return s.FloatingLegValue(curve) - s.FixedLegValue(curve)
}

// FairSwapRate 使净现值为零的固定利率
func (s *InterestRateSwap) FairSwapRate(curve *YieldCurve) float64 {
	return (1 - curve.DiscountFactor(s.Maturity)) / s.annuity(curve)
}

// DV01 曲线平移 ±1bp 的净现值变化均值
func (s *InterestRateSwap) DV01(curve *YieldCurve) float64 {
	const bump = 1e-4
	pvUp := s.PresentValue(curve.ParallelShift(bump))
	pvDown := s.PresentValue(curve.ParallelShift(-bump))
	return (pvUp - pvDown) / 2
}

// Duration 曲线平移 ±10bp 的有效久期
// 净现值接近零（平价互换）时久期无意义，返回 0
func (s *InterestRateSwap) Duration(curve *YieldCurve) float64 {
	pv := s.PresentValue(curve)
	if math.Abs(pv) < 1e-9*s.Notional {
		return 0
	}
	const bump = 1e-3
	pvUp := s.PresentValue(curve.ParallelShift(bump))
	pvDown := s.PresentValue(curve.ParallelShift(-bump))
	return (pvDown - pvUp) / (2 * bump * pv)
}
