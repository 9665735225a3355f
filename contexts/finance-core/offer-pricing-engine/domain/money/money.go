package money

import (
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"

	domainerrors "creatorhub/contexts/finance-core/offer-pricing-engine/domain/errors"
)

// Currency is an ISO 4217 code from the supported set.
type Currency string

const (
	USD Currency = "USD"
	MYR Currency = "MYR"
	SGD Currency = "SGD"

	DefaultCurrency = USD
)

// Info describes how a supported currency is displayed.
type Info struct {
	Code        Currency
	Symbol      string
	Name        string
	MinorDigits int
}

var supported = map[Currency]Info{
	USD: {Code: USD, Symbol: "$", Name: "US Dollar", MinorDigits: 2},
	MYR: {Code: MYR, Symbol: "RM", Name: "Malaysian Ringgit", MinorDigits: 2},
	SGD: {Code: SGD, Symbol: "S$", Name: "Singapore Dollar", MinorDigits: 2},
}

// Parse normalizes a currency code and rejects codes outside the supported set.
func Parse(code string) (Currency, error) {
	normalized := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := supported[normalized]; !ok {
		return "", domainerrors.ErrUnsupportedCurrency
	}
	return normalized, nil
}

func (c Currency) IsSupported() bool {
	_, ok := supported[c]
	return ok
}

func (c Currency) Info() (Info, bool) {
	info, ok := supported[c]
	return info, ok
}

// Symbol falls back to the code itself for unknown currencies.
func (c Currency) Symbol() string {
	if info, ok := supported[c]; ok {
		return info.Symbol
	}
	return string(c)
}

func Supported() []Currency {
	items := make([]Currency, 0, len(supported))
	for code := range supported {
		items = append(items, code)
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	return items
}

// Mul multiplies two minor-unit quantities, failing instead of wrapping.
func Mul(a int64, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	product := a * b
	if product/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, &domainerrors.AmountOverflowError{Operation: "multiply"}
	}
	return product, nil
}

// Add sums two minor-unit amounts, failing instead of wrapping.
func Add(a int64, b int64) (int64, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, &domainerrors.AmountOverflowError{Operation: "add"}
	}
	return sum, nil
}

// PercentOf returns round(amount * percent / 100) in minor units, rounding
// half away from zero. It is the only place fractional cents are resolved.
// The percent is read as the shortest decimal that prints it, so 12.345
// means exactly 12.345.
func PercentOf(amountMinor int64, percent float64) (int64, error) {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return 0, &domainerrors.AmountOverflowError{Operation: "percent"}
	}
	ratio, ok := new(big.Rat).SetString(strconv.FormatFloat(percent, 'g', -1, 64))
	if !ok {
		return 0, &domainerrors.AmountOverflowError{Operation: "percent"}
	}
	ratio.Mul(ratio, big.NewRat(amountMinor, 100))

	quotient, remainder := new(big.Int).QuoRem(ratio.Num(), ratio.Denom(), new(big.Int))
	twice := new(big.Int).Abs(remainder)
	twice.Lsh(twice, 1)
	if twice.Cmp(ratio.Denom()) >= 0 {
		quotient.Add(quotient, big.NewInt(int64(ratio.Num().Sign())))
	}
	if !quotient.IsInt64() {
		return 0, &domainerrors.AmountOverflowError{Operation: "percent"}
	}
	return quotient.Int64(), nil
}

// Split breaks the magnitude of amountMinor into whole major units and the
// remaining minor units, along with the currency's minor digit count. It
// never goes through floating point.
func Split(amountMinor int64, c Currency) (major uint64, minor uint64, digits int) {
	digits = 2
	if info, ok := supported[c]; ok {
		digits = info.MinorDigits
	}
	magnitude := uint64(amountMinor)
	if amountMinor < 0 {
		magnitude = uint64(-(amountMinor + 1)) + 1
	}
	scale := uint64(1)
	for i := 0; i < digits; i++ {
		scale *= 10
	}
	return magnitude / scale, magnitude % scale, digits
}
