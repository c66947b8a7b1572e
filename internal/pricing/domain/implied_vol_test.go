package domain

import (
	"errors"
	"math"
	"testing"
)

func TestImpliedVolatilityRoundTrip(t *testing.T) {
	cases := []struct {
		typ OptionType
		vol float64
	}{
		{OptionTypeCall, 0.25},
		{OptionTypePut, 0.25},
		{OptionTypeCall, 0.45},
		{OptionTypePut, 0.12},
	}

	for _, tc := range cases {
		data := mustMarketData(t, 100, 105, 0.05, tc.vol, 0.75, 0.01)
		pricer, err := NewBlackScholesPricer(data, tc.typ, OptionStyleEuropean)
		if err != nil {
			t.Fatal(err)
		}
		price, err := pricer.Price()
		if err != nil {
			t.Fatal(err)
		}

		sigma, iterations, err := SolveImpliedVolatility(data, tc.typ, price)
		if err != nil {
			t.Fatalf("SolveImpliedVolatility(%v, vol=%v): %v", tc.typ, tc.vol, err)
		}
		if math.Abs(sigma-tc.vol) > 0.01 {
			t.Errorf("implied vol = %v, want %v within 0.01", sigma, tc.vol)
		}
		if iterations <= 0 {
			t.Errorf("iterations = %d, want > 0", iterations)
		}
	}
}

func TestImpliedVolatilityUnreachablePrice(t *testing.T) {
	// 看涨价格不可能超过现货
	data := mustMarketData(t, 100, 100, 0.05, 0.2, 1, 0)
	_, _, err := SolveImpliedVolatility(data, OptionTypeCall, 150)
	if !errors.Is(err, ErrNonConvergence) {
		t.Errorf("err = %v, want ErrNonConvergence", err)
	}
}

func TestImpliedVolatilityExpired(t *testing.T) {
	data := mustMarketData(t, 100, 100, 0.05, 0.2, 0, 0)
	_, _, err := SolveImpliedVolatility(data, OptionTypeCall, 5)
	if !errors.Is(err, ErrDegenerateMarketData) {
		t.Errorf("err = %v, want ErrDegenerateMarketData", err)
	}
}

func TestImpliedVolatilityInvalidPrice(t *testing.T) {
	data := mustMarketData(t, 100, 100, 0.05, 0.2, 1, 0)
	_, _, err := SolveImpliedVolatility(data, OptionTypeCall, 0)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}
