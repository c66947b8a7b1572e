package domain

import (
	"errors"
	"math"
	"testing"
)

func TestMonteCarloWithinStandardError(t *testing.T) {
	data := mustMarketData(t, 100, 100, 0.05, 0.2, 1, 0)

	for _, typ := range []OptionType{OptionTypeCall, OptionTypePut} {
		bs, _ := NewBlackScholesPricer(data, typ, OptionStyleEuropean)
		want, err := bs.Price()
		if err != nil {
			t.Fatal(err)
		}

		mc, err := NewMonteCarloPricer(data, typ, OptionStyleEuropean, 200000, 42, 4)
		if err != nil {
			t.Fatal(err)
		}
		got, stdError, err := mc.PriceWithStdError()
		if err != nil {
			t.Fatal(err)
		}
		if stdError <= 0 {
			t.Fatalf("stdError = %v, want > 0", stdError)
		}
		if math.Abs(got-want) > 3*stdError {
			t.Errorf("%s: simulated %v vs closed form %v exceeds 3 std errors (%v)", typ, got, want, stdError)
		}
	}
}

func TestMonteCarloDeterministicSeed(t *testing.T) {
	data := mustMarketData(t, 100, 110, 0.03, 0.3, 0.5, 0.01)

	price := func(workers int) float64 {
		mc, err := NewMonteCarloPricer(data, OptionTypeCall, OptionStyleEuropean, 50000, 7, workers)
		if err != nil {
			t.Fatal(err)
		}
		p, err := mc.Price()
		if err != nil {
			t.Fatal(err)
		}
		return p
	}

	first := price(4)
	second := price(4)
	if first != second {
		t.Errorf("same seed produced %v then %v", first, second)
	}
}

func TestMonteCarloRejectsAmerican(t *testing.T) {
	data := mustMarketData(t, 100, 100, 0.05, 0.2, 1, 0)
	_, err := NewMonteCarloPricer(data, OptionTypePut, OptionStyleAmerican, 1000, 1, 1)
	if !errors.Is(err, ErrUnsupportedModelStyle) {
		t.Errorf("err = %v, want ErrUnsupportedModelStyle", err)
	}
}

func TestMonteCarloInvalidSimulations(t *testing.T) {
	data := mustMarketData(t, 100, 100, 0.05, 0.2, 1, 0)
	_, err := NewMonteCarloPricer(data, OptionTypeCall, OptionStyleEuropean, 0, 1, 1)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestMonteCarloSingleSimulation(t *testing.T) {
	data := mustMarketData(t, 100, 100, 0.05, 0.2, 1, 0)

	mc, err := NewMonteCarloPricer(data, OptionTypeCall, OptionStyleEuropean, 1, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	price, stdError, err := mc.PriceWithStdError()
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(price) || math.IsNaN(stdError) {
		t.Fatalf("price = %v, stdError = %v, want finite", price, stdError)
	}
	if stdError != 0 {
		t.Errorf("stdError = %v, want 0 for a single path", stdError)
	}
}

func TestMonteCarloGreeksNearClosedForm(t *testing.T) {
	data := mustMarketData(t, 100, 100, 0.05, 0.2, 1, 0)

	bs, _ := NewBlackScholesPricer(data, OptionTypeCall, OptionStyleEuropean)
	want, err := bs.CalculateGreeks()
	if err != nil {
		t.Fatal(err)
	}

	mc, err := NewMonteCarloPricer(data, OptionTypeCall, OptionStyleEuropean, 500000, 42, 4)
	if err != nil {
		t.Fatal(err)
	}
	got, err := mc.CalculateGreeks()
	if err != nil {
		t.Fatal(err)
	}

	// 共同随机数下微扰估计的噪声很小
	almostEqual(t, got.Delta, want.Delta, 0.02, "mc delta")
	almostEqual(t, got.Vega, want.Vega, 0.05, "mc vega")
	almostEqual(t, got.Rho, want.Rho, 0.05, "mc rho")
}

func TestMonteCarloExpiredOption(t *testing.T) {
	data := mustMarketData(t, 120, 100, 0.05, 0.2, 0, 0)

	mc, err := NewMonteCarloPricer(data, OptionTypeCall, OptionStyleEuropean, 1000, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	price, err := mc.Price()
	if err != nil {
		t.Fatal(err)
	}
	almostEqual(t, price, 20, 1e-12, "expired call intrinsic")
}
