package httpadapter

import (
	"fmt"
	"strings"

	domainerrors "creatorhub/contexts/finance-core/offer-pricing-engine/domain/errors"
	"creatorhub/contexts/finance-core/offer-pricing-engine/domain/money"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// AmountFormatter renders minor-unit amounts for display using the
// marketplace symbol table and locale-aware digit grouping.
type AmountFormatter struct {
	printer *message.Printer
}

func NewAmountFormatter(tag language.Tag) AmountFormatter {
	return AmountFormatter{printer: message.NewPrinter(tag)}
}

func (f AmountFormatter) Format(amountMinor int64, code money.Currency) string {
	printer := f.printer
	if printer == nil {
		printer = message.NewPrinter(language.English)
	}
	sign := ""
	if amountMinor < 0 {
		sign = "-"
	}
	major, minor, digits := money.Split(amountMinor, code)
	out := sign + code.Symbol() + printer.Sprintf("%d", major)
	if digits == 0 {
		return out
	}
	return out + decimalSeparator(printer) + fmt.Sprintf("%0*d", digits, minor)
}

func decimalSeparator(printer *message.Printer) string {
	if separator := strings.Trim(printer.Sprintf("%.1f", 1.5), "15"); separator != "" {
		return separator
	}
	return "."
}

// parseCurrencyCode rejects strings that are not ISO 4217 codes before
// checking them against the supported set.
func parseCurrencyCode(raw string) (money.Currency, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(raw)))
	if err != nil {
		return "", domainerrors.ErrUnsupportedCurrency
	}
	return money.Parse(unit.String())
}
