package money

import (
	"log/slog"
	"math"
)

// RateTable maps from -> to -> multiplier. Rates are fixed for display
// purposes and are not refreshed from a live source.
type RateTable map[Currency]map[Currency]float64

func DefaultRates() RateTable {
	return RateTable{
		USD: {MYR: 4.70, SGD: 1.35},
		MYR: {USD: 0.21, SGD: 0.29},
		SGD: {USD: 0.74, MYR: 3.48},
	}
}

func (t RateTable) Rate(from Currency, to Currency) (float64, bool) {
	targets, ok := t[from]
	if !ok {
		return 0, false
	}
	rate, ok := targets[to]
	return rate, ok
}

type Converter struct {
	Rates  RateTable
	Logger *slog.Logger
}

func NewConverter(rates RateTable, logger *slog.Logger) Converter {
	if rates == nil {
		rates = DefaultRates()
	}
	return Converter{Rates: rates, Logger: logger}
}

// Convert is advisory display logic: an unknown pair is logged and the
// amount is returned unconverted instead of failing.
func (c Converter) Convert(amountMinor int64, from Currency, to Currency) int64 {
	if from == to {
		return amountMinor
	}
	rate, ok := c.Rates.Rate(from, to)
	if !ok {
		logger := c.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("currency conversion rate missing",
			"event", "currency_conversion_rate_missing",
			"module", "finance-core/offer-pricing-engine",
			"layer", "domain",
			"from", string(from),
			"to", string(to),
		)
		return amountMinor
	}
	return int64(math.Round(float64(amountMinor) * rate))
}
