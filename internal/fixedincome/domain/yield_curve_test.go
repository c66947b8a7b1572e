package domain

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(t *testing.T, got, want, tolerance float64, name string) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("%s = %v, want %v (tolerance %v)", name, got, want, tolerance)
	}
}

func testCurve(t *testing.T) *YieldCurve {
	t.Helper()
	curve, err := NewYieldCurve([]CurvePoint{
		{Maturity: 1, Rate: 0.03},
		{Maturity: 5, Rate: 0.04},
		{Maturity: 10, Rate: 0.045},
	})
	if err != nil {
		t.Fatal(err)
	}
	return curve
}

func TestYieldCurveInterpolation(t *testing.T) {
	curve := testCurve(t)

	// 节点处取节点值
	almostEqual(t, curve.Rate(1), 0.03, 1e-12, "rate at node")
	almostEqual(t, curve.Rate(5), 0.04, 1e-12, "rate at node")

	// 节点间线性插值
	almostEqual(t, curve.Rate(3), 0.035, 1e-12, "interpolated rate")
	almostEqual(t, curve.Rate(7.5), 0.0425, 1e-12, "interpolated rate")

	// 两端平坦外推
	almostEqual(t, curve.Rate(0.5), 0.03, 1e-12, "short-end extrapolation")
	almostEqual(t, curve.Rate(20), 0.045, 1e-12, "long-end extrapolation")
}

func TestYieldCurveDiscountFactor(t *testing.T) {
	curve := testCurve(t)

	almostEqual(t, curve.DiscountFactor(0), 1, 1e-12, "DF at zero")
	almostEqual(t, curve.DiscountFactor(5), math.Exp(-0.04*5), 1e-12, "DF at node")

	// 贴现因子单调递减
	prev := 1.0
	for _, tm := range []float64{0.5, 1, 2, 5, 8, 10, 15} {
		df := curve.DiscountFactor(tm)
		if df >= prev {
			t.Errorf("DF(%v) = %v not below previous %v", tm, df, prev)
		}
		prev = df
	}
}

func TestYieldCurveForwardRate(t *testing.T) {
	curve := testCurve(t)

	// f(t1,t2) = (r2*t2 - r1*t1)/(t2-t1)
	forward, err := curve.ForwardRate(1, 5)
	if err != nil {
		t.Fatal(err)
	}
	almostEqual(t, forward, (0.04*5-0.03*1)/4, 1e-12, "forward rate")

	// 远期与分段贴现的一致性
	df := curve.DiscountFactor(1) * math.Exp(-forward*4)
	almostEqual(t, df, curve.DiscountFactor(5), 1e-12, "forward consistency")

	if _, err := curve.ForwardRate(5, 5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
	if _, err := curve.ForwardRate(-1, 5); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestYieldCurveParallelShift(t *testing.T) {
	curve := testCurve(t)
	shifted := curve.ParallelShift(0.01)

	almostEqual(t, shifted.Rate(3), curve.Rate(3)+0.01, 1e-12, "shifted rate")
	// 原曲线不受影响
	almostEqual(t, curve.Rate(3), 0.035, 1e-12, "original rate unchanged")
}

func TestYieldCurveValidation(t *testing.T) {
	if _, err := NewYieldCurve(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty curve err = %v, want ErrInvalidInput", err)
	}

	_, err := NewYieldCurve([]CurvePoint{{Maturity: 5, Rate: 0.04}, {Maturity: 1, Rate: 0.03}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unsorted curve err = %v, want ErrInvalidInput", err)
	}

	_, err = NewYieldCurve([]CurvePoint{{Maturity: -1, Rate: 0.03}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative maturity err = %v, want ErrInvalidInput", err)
	}
}

func TestCompoundingConversion(t *testing.T) {
	freq := CompoundingSemiAnnual
	rate := 0.05

	continuous := freq.ToContinuous(rate)
	almostEqual(t, freq.FromContinuous(continuous), rate, 1e-12, "compounding round trip")

	if got := freq.PeriodsPerYear(); got != 2 {
		t.Errorf("PeriodsPerYear = %d, want 2", got)
	}

	parsed, err := ParseCompoundingFrequency("semi-annual")
	if err != nil {
		t.Fatal(err)
	}
	if parsed != CompoundingSemiAnnual {
		t.Errorf("parsed = %v, want SEMI_ANNUAL", parsed)
	}

	if _, err := ParseCompoundingFrequency("weekly"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}
