package application

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/wyfcoding/pricingengine/internal/fixedincome/domain"
)

func testCurveDTO() []CurvePointDTO {
	return []CurvePointDTO{
		{Maturity: 1, Rate: 0.03},
		{Maturity: 5, Rate: 0.04},
		{Maturity: 10, Rate: 0.045},
	}
}

func TestPriceZeroCouponBond(t *testing.T) {
	service := NewFixedIncomeService(nil)

	result, err := service.PriceBond(context.Background(), PriceBondCommand{
		Face:     1000,
		Maturity: 5,
		Curve:    testCurveDTO(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := result.Price.InexactFloat64(); math.Abs(got-818.7308) > 1e-3 {
		t.Errorf("price = %v, want 818.7308", got)
	}
	// 曲线隐含价格反解的收益率就是 5 年期零息利率
	if got := result.YieldToMaturity.InexactFloat64(); math.Abs(got-0.04) > 1e-6 {
		t.Errorf("ytm = %v, want 0.04", got)
	}
	if result.ModifiedDuration != 5 {
		t.Errorf("duration = %v, want 5", result.ModifiedDuration)
	}
}

func TestPriceCouponBondWithYTM(t *testing.T) {
	service := NewFixedIncomeService(nil)

	result, err := service.PriceBond(context.Background(), PriceBondCommand{
		Face:        1000,
		CouponRate:  0.05,
		Maturity:    5,
		Frequency:   "SEMI_ANNUAL",
		Curve:       testCurveDTO(),
		MarketPrice: 1000,
	})
	if err != nil {
		t.Fatal(err)
	}

	// 市场价平价时，连续复利收益率为 2*ln(1+0.05/2)
	want := 2 * math.Log(1.025)
	if got := result.YieldToMaturity.InexactFloat64(); math.Abs(got-want) > 1e-4 {
		t.Errorf("ytm = %v, want %v at par market price", got, want)
	}
	if result.MacaulayDuration <= 0 {
		t.Errorf("macaulay duration = %v, want > 0", result.MacaulayDuration)
	}
}

func TestPriceCouponBondDefaultYTM(t *testing.T) {
	service := NewFixedIncomeService(nil)

	// 不提供市场价时，收益率由曲线隐含价格反解
	result, err := service.PriceBond(context.Background(), PriceBondCommand{
		Face:       1000,
		CouponRate: 0.05,
		Maturity:   5,
		Frequency:  "SEMI_ANNUAL",
		Curve:      testCurveDTO(),
	})
	if err != nil {
		t.Fatal(err)
	}

	got := result.YieldToMaturity.InexactFloat64()
	// 曲线在 1-5 年区间的利率介于 3% 与 4% 之间
	if got < 0.03 || got > 0.045 {
		t.Errorf("ytm = %v, want within curve rate range", got)
	}
}

func TestPriceBondInvalidCurve(t *testing.T) {
	service := NewFixedIncomeService(nil)

	_, err := service.PriceBond(context.Background(), PriceBondCommand{
		Face:     1000,
		Maturity: 5,
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestPriceSwapService(t *testing.T) {
	service := NewFixedIncomeService(nil)

	result, err := service.PriceSwap(context.Background(), PriceSwapCommand{
		Notional:  1_000_000,
		FixedRate: 0.035,
		Maturity:  5,
		Frequency: "SEMI_ANNUAL",
		Curve:     testCurveDTO(),
	})
	if err != nil {
		t.Fatal(err)
	}

	pv := result.PresentValue.InexactFloat64()
	fixed := result.FixedLeg.InexactFloat64()
	floating := result.FloatingLeg.InexactFloat64()
	if math.Abs(pv-(floating-fixed)) > 1e-3 {
		t.Errorf("pv %v != floating %v - fixed %v", pv, floating, fixed)
	}

	// 固定利率低于平价利率，付固定方 PV 为正
	if fair := result.FairSwapRate.InexactFloat64(); fair > 0.035 && pv <= 0 {
		t.Errorf("pv = %v, want > 0 with fair rate %v", pv, fair)
	}
	if result.DV01.InexactFloat64() <= 0 {
		t.Errorf("dv01 = %v, want > 0 for payer swap", result.DV01)
	}
}

func TestPriceSwapDefaultFrequencyQuarterly(t *testing.T) {
	service := NewFixedIncomeService(nil)

	cmd := PriceSwapCommand{
		Notional:  1_000_000,
		FixedRate: 0.035,
		Maturity:  5,
		Curve:     testCurveDTO(),
	}

	// 不指定频率时按季度腿估值
	defaulted, err := service.PriceSwap(context.Background(), cmd)
	if err != nil {
		t.Fatal(err)
	}
	cmd.Frequency = "QUARTERLY"
	quarterly, err := service.PriceSwap(context.Background(), cmd)
	if err != nil {
		t.Fatal(err)
	}
	if !defaulted.PresentValue.Equal(quarterly.PresentValue) {
		t.Errorf("default pv = %v, quarterly pv = %v", defaulted.PresentValue, quarterly.PresentValue)
	}

	cmd.Frequency = "SEMI_ANNUAL"
	semi, err := service.PriceSwap(context.Background(), cmd)
	if err != nil {
		t.Fatal(err)
	}
	if defaulted.FixedLeg.Equal(semi.FixedLeg) {
		t.Errorf("default fixed leg %v should differ from semi-annual %v", defaulted.FixedLeg, semi.FixedLeg)
	}
}
