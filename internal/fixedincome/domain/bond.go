package domain

import (
	"fmt"
	"math"
)

// CashFlow 单笔现金流：支付时点（年）与金额
type CashFlow struct {
	Time   float64
	Amount float64
}

// 久期与凸性数值微分的利率扰动（1bp）
const durationBump = 1e-4

// ZeroCouponBond 零息债券
type ZeroCouponBond struct {
	Face     float64
	Maturity float64
}

// NewZeroCouponBond 创建零息债券
func NewZeroCouponBond(face, maturity float64) (*ZeroCouponBond, error) {
	if face <= 0 {
		return nil, fmt.Errorf("%w: face value must be > 0, got %v", ErrInvalidInput, face)
	}
	if maturity <= 0 {
		return nil, fmt.Errorf("%w: maturity must be > 0, got %v", ErrInvalidInput, maturity)
	}
	return &ZeroCouponBond{Face: face, Maturity: maturity}, nil
}

// Price 按曲线贴现的价格
func (b *ZeroCouponBond) Price(curve *YieldCurve) float64 {
	return b.Face * curve.DiscountFactor(b.Maturity)
}

// YieldToMaturity 由价格反解连续复利收益率，闭式解 -ln(P/F)/T
func (b *ZeroCouponBond) YieldToMaturity(price float64) (float64, error) {
	if price <= 0 {
		return 0, fmt.Errorf("%w: price must be > 0, got %v", ErrInvalidInput, price)
	}
	return -math.Log(price/b.Face) / b.Maturity, nil
}

// ModifiedDuration 连续复利下零息债券久期即剩余期限
func (b *ZeroCouponBond) ModifiedDuration() float64 {
	return b.Maturity
}

// Convexity 连续复利下为期限平方
func (b *ZeroCouponBond) Convexity() float64 {
	return b.Maturity * b.Maturity
}

// CouponBond 固定票息债券，票息按频率均匀支付至到期
type CouponBond struct {
	Face       float64
	CouponRate float64
	Maturity   float64
	Frequency  CompoundingFrequency
}

// NewCouponBond 创建附息债券
func NewCouponBond(face, couponRate, maturity float64, frequency CompoundingFrequency) (*CouponBond, error) {
	if face <= 0 {
		return nil, fmt.Errorf("%w: face value must be > 0, got %v", ErrInvalidInput, face)
	}
	if couponRate < 0 {
		return nil, fmt.Errorf("%w: coupon rate must be >= 0, got %v", ErrInvalidInput, couponRate)
	}
	if maturity <= 0 {
		return nil, fmt.Errorf("%w: maturity must be > 0, got %v", ErrInvalidInput, maturity)
	}
	return &CouponBond{Face: face, CouponRate: couponRate, Maturity: maturity, Frequency: frequency}, nil
}

// CashFlows 全部现金流，末笔含本金
func (b *CouponBond) CashFlows() []CashFlow {
	periods := float64(b.Frequency.PeriodsPerYear())
	dt := 1 / periods
	coupon := b.Face * b.CouponRate / periods

	var flows []CashFlow
	for t := dt; t < b.Maturity-1e-9; t += dt {
		flows = append(flows, CashFlow{Time: t, Amount: coupon})
	}
	flows = append(flows, CashFlow{Time: b.Maturity, Amount: coupon + b.Face})
	return flows
}

// Price 按曲线贴现的价格
func (b *CouponBond) Price(curve *YieldCurve) float64 {
	var price float64
	for _, cf := range b.CashFlows() {
		price += cf.Amount * curve.DiscountFactor(cf.Time)
	}
	return price
}

// priceAtYield 单一连续复利折现率下的价格
func (b *CouponBond) priceAtYield(yield float64) float64 {
	var price float64
	for _, cf := range b.CashFlows() {
		price += cf.Amount * math.Exp(-yield*cf.Time)
	}
	return price
}

// YieldToMaturity 由市场价反解连续复利到期收益率
// 牛顿迭代，导数过小或越界时退化为 [-0.5, 1.0] 上的二分
func (b *CouponBond) YieldToMaturity(marketPrice float64) (float64, error) {
	if marketPrice <= 0 {
		return 0, fmt.Errorf("%w: market price must be > 0, got %v", ErrInvalidInput, marketPrice)
	}

	const (
		tolerance     = 1e-8
		maxIterations = 100
		lowerBound    = -0.5
		upperBound    = 1.0
	)

	yield := b.CouponRate
	for i := 0; i < maxIterations; i++ {
		diff := b.priceAtYield(yield) - marketPrice
		if math.Abs(diff) < tolerance {
			return yield, nil
		}
		derivative := (b.priceAtYield(yield+durationBump) - b.priceAtYield(yield-durationBump)) / (2 * durationBump)
		if math.Abs(derivative) < 1e-12 {
			break
		}
		next := yield - diff/derivative
		if next < lowerBound || next > upperBound || math.IsNaN(next) {
			break
		}
		yield = next
	}

	// 二分兜底：价格对收益率单调递减
	lo, hi := lowerBound, upperBound
	if b.priceAtYield(lo) < marketPrice || b.priceAtYield(hi) > marketPrice {
		return 0, fmt.Errorf("%w: yield to maturity outside [%v, %v]", ErrNonConvergence, lo, hi)
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		if b.priceAtYield(mid) > marketPrice {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < tolerance {
			return (lo + hi) / 2, nil
		}
	}
	return 0, fmt.Errorf("%w: yield to maturity did not converge", ErrNonConvergence)
}

// ModifiedDuration 曲线平移 ±1bp 的有效久期
func (b *CouponBond) ModifiedDuration(curve *YieldCurve) float64 {
	price := b.Price(curve)
	priceUp := b.Price(curve.ParallelShift(durationBump))
	priceDown := b.Price(curve.ParallelShift(-durationBump))
	return (priceDown - priceUp) / (2 * durationBump * price)
}

// MacaulayDuration 现金流现值加权平均期限
func (b *CouponBond) MacaulayDuration(curve *YieldCurve) float64 {
	var weighted, price float64
	for _, cf := range b.CashFlows() {
		pv := cf.Amount * curve.DiscountFactor(cf.Time)
		weighted += cf.Time * pv
		price += pv
	}
	return weighted / price
}

// Convexity 曲线平移 ±1bp 的有效凸性
func (b *CouponBond) Convexity(curve *YieldCurve) float64 {
	price := b.Price(curve)
	priceUp := b.Price(curve.ParallelShift(durationBump))
	priceDown := b.Price(curve.ParallelShift(-durationBump))
	return (priceUp + priceDown - 2*price) / (durationBump * durationBump * price)
}
