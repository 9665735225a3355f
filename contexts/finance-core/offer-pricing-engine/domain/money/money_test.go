package money

import (
	"errors"
	"math"
	"testing"

	domainerrors "creatorhub/contexts/finance-core/offer-pricing-engine/domain/errors"
)

func TestPercentOfRoundsHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		amount  int64
		percent float64
		want    int64
	}{
		{amount: 12500, percent: 20, want: 2500},
		{amount: 999, percent: 10, want: 100},
		{amount: 333, percent: 50, want: 167},
		{amount: -333, percent: 50, want: -167},
		{amount: 1000, percent: 12.345, want: 123},
		{amount: 200, percent: 12.25, want: 25},
		{amount: math.MaxInt64, percent: 50, want: math.MaxInt64/2 + 1},
	}
	for _, tc := range cases {
		got, err := PercentOf(tc.amount, tc.percent)
		if err != nil || got != tc.want {
			t.Fatalf("PercentOf(%d, %v): expected %d, got %d err=%v", tc.amount, tc.percent, tc.want, got, err)
		}
	}
}

func TestPercentOfRejectsOutOfRangeResults(t *testing.T) {
	for _, percent := range []float64{200, math.Inf(1), math.NaN()} {
		if _, err := PercentOf(math.MaxInt64-10, percent); !errors.Is(err, domainerrors.ErrAmountOverflow) {
			t.Fatalf("percent %v: expected overflow, got %v", percent, err)
		}
	}
}

func TestCheckedArithmetic(t *testing.T) {
	if _, err := Mul(math.MaxInt64/2+1, 2); !errors.Is(err, domainerrors.ErrAmountOverflow) {
		t.Fatalf("expected multiply overflow, got %v", err)
	}
	if _, err := Mul(math.MinInt64, -1); !errors.Is(err, domainerrors.ErrAmountOverflow) {
		t.Fatalf("expected negation overflow, got %v", err)
	}
	if got, err := Mul(6250, 2); err != nil || got != 12500 {
		t.Fatalf("expected 12500, got %d err=%v", got, err)
	}
	if _, err := Add(math.MaxInt64, 1); !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected add overflow to count as invalid input, got %v", err)
	}
	if got, err := Add(math.MaxInt64-1, 1); err != nil || got != math.MaxInt64 {
		t.Fatalf("expected max int64, got %d err=%v", got, err)
	}
}

func TestSplitKeepsEveryMinorUnit(t *testing.T) {
	major, minor, digits := Split(9007199254740993, USD)
	if major != 90071992547409 || minor != 93 || digits != 2 {
		t.Fatalf("unexpected split: %d %d %d", major, minor, digits)
	}
	major, minor, _ = Split(math.MinInt64, SGD)
	if major != 92233720368547758 || minor != 8 {
		t.Fatalf("unexpected split of min int64: %d %d", major, minor)
	}
}
