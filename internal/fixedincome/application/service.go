package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/pricingengine/internal/fixedincome/domain"
	"github.com/wyfcoding/pricingengine/pkg/logger"
	"github.com/wyfcoding/pricingengine/pkg/metrics"
)

const resultPrecision = 6

// FixedIncomeService 固定收益应用服务
type FixedIncomeService struct {
	metrics *metrics.Metrics
}

// NewFixedIncomeService 创建固定收益应用服务
func NewFixedIncomeService(m *metrics.Metrics) *FixedIncomeService {
	return &FixedIncomeService{metrics: m}
}

func (s *FixedIncomeService) buildCurve(points []CurvePointDTO) (*domain.YieldCurve, error) {
	curvePoints := make([]domain.CurvePoint, len(points))
	for i, pt := range points {
		curvePoints[i] = domain.CurvePoint{Maturity: pt.Maturity, Rate: pt.Rate}
	}
	return domain.NewYieldCurve(curvePoints)
}

// PriceBond 债券定价：价格、久期、凸性，可选 YTM 反解
func (s *FixedIncomeService) PriceBond(ctx context.Context, cmd PriceBondCommand) (*PriceBondResult, error) {
	start := time.Now()
	result, err := s.priceBond(ctx, cmd)
	s.observe("BOND", start, err)
	return result, err
}

func (s *FixedIncomeService) priceBond(ctx context.Context, cmd PriceBondCommand) (*PriceBondResult, error) {
	curve, err := s.buildCurve(cmd.Curve)
	if err != nil {
		return nil, err
	}

	// 零息债券
	if cmd.CouponRate == 0 {
		bond, err := domain.NewZeroCouponBond(cmd.Face, cmd.Maturity)
		if err != nil {
			return nil, err
		}
		price := bond.Price(curve)
		yieldPrice := price
		if cmd.MarketPrice > 0 {
			yieldPrice = cmd.MarketPrice
		}
		yield, err := bond.YieldToMaturity(yieldPrice)
		if err != nil {
			return nil, err
		}
		logger.Debug(ctx, "zero-coupon bond priced", "price", price, "ytm", yield)
		return &PriceBondResult{
			Price:            decimal.NewFromFloat(price).Round(resultPrecision),
			YieldToMaturity:  decimal.NewFromFloat(yield).Round(resultPrecision),
			ModifiedDuration: bond.ModifiedDuration(),
			MacaulayDuration: bond.Maturity,
			Convexity:        bond.Convexity(),
		}, nil
	}

	frequency := domain.CompoundingSemiAnnual
	if cmd.Frequency != "" {
		frequency, err = domain.ParseCompoundingFrequency(cmd.Frequency)
		if err != nil {
			return nil, err
		}
	}

	bond, err := domain.NewCouponBond(cmd.Face, cmd.CouponRate, cmd.Maturity, frequency)
	if err != nil {
		return nil, err
	}

	price := bond.Price(curve)
	yieldPrice := price
	if cmd.MarketPrice > 0 {
		yieldPrice = cmd.MarketPrice
	}
	yield, err := bond.YieldToMaturity(yieldPrice)
	if err != nil {
		return nil, err
	}

	result := &PriceBondResult{
		Price:            decimal.NewFromFloat(price).Round(resultPrecision),
		YieldToMaturity:  decimal.NewFromFloat(yield).Round(resultPrecision),
		ModifiedDuration: bond.ModifiedDuration(curve),
		MacaulayDuration: bond.MacaulayDuration(curve),
		Convexity:        bond.Convexity(curve),
	}

	logger.Debug(ctx, "coupon bond priced", "price", price, "ytm", yield, "duration", result.ModifiedDuration)
	return result, nil
}

// PriceSwap 利率互换定价：净现值、两腿现值、平价互换利率与 DV01
func (s *FixedIncomeService) PriceSwap(ctx context.Context, cmd PriceSwapCommand) (*PriceSwapResult, error) {
	start := time.Now()
	result, err := s.priceSwap(ctx, cmd)
	s.observe("SWAP", start, err)
	return result, err
}

func (s *FixedIncomeService) priceSwap(ctx context.Context, cmd PriceSwapCommand) (*PriceSwapResult, error) {
	curve, err := s.buildCurve(cmd.Curve)
	if err != nil {
		return nil, err
	}

	frequency := domain.CompoundingQuarterly
	if cmd.Frequency != "" {
		frequency, err = domain.ParseCompoundingFrequency(cmd.Frequency)
		if err != nil {
			return nil, err
		}
	}

	swap, err := domain.NewInterestRateSwap(cmd.Notional, cmd.FixedRate, cmd.Maturity, frequency)
	if err != nil {
		return nil, err
	}

	pv := swap.PresentValue(curve)
	logger.Debug(ctx, "swap priced", "pv", pv, "fair_rate", swap.FairSwapRate(curve))
	return &PriceSwapResult{
		PresentValue: decimal.NewFromFloat(pv).Round(resultPrecision),
		FixedLeg:     decimal.NewFromFloat(swap.FixedLegValue(curve)).Round(resultPrecision),
		FloatingLeg:  decimal.NewFromFloat(swap.FloatingLegValue(curve)).Round(resultPrecision),
		FairSwapRate: decimal.NewFromFloat(swap.FairSwapRate(curve)).Round(8),
		DV01:         decimal.NewFromFloat(swap.DV01(curve)).Round(resultPrecision),
		Duration:     swap.Duration(curve),
	}, nil
}

func (s *FixedIncomeService) observe(product string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	s.metrics.PricingRequestsTotal.WithLabelValues(product, outcome).Inc()
	s.metrics.PricingDuration.WithLabelValues(product).Observe(time.Since(start).Seconds())
}
