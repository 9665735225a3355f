package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("offer pricing input is invalid")
	ErrIdempotencyKeyMissing = errors.New("idempotency key is required")
	ErrIdempotencyConflict   = errors.New("idempotency key already used with different payload")
	ErrNotFound              = errors.New("offer quote not found")
	ErrUnsupportedCurrency   = errors.New("currency is not supported")
	ErrCurrencyMismatch      = errors.New("line items span more than one currency")
	ErrRateCardNotFound      = errors.New("rate card not found")
	ErrDuplicateRateCard     = errors.New("more than one active rate card for creator, deliverable and currency")
	ErrAmountOverflow        = errors.New("amount exceeds the supported range")
)

// CurrencyMismatchError reports the first line item whose currency differs
// from the rest of the offer.
type CurrencyMismatchError struct {
	Expected string
	Found    string
	Index    int
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("line item %d has currency %s, expected %s", e.Index, e.Found, e.Expected)
}

func (e *CurrencyMismatchError) Is(target error) bool {
	return target == ErrCurrencyMismatch
}

type RateCardNotFoundError struct {
	CreatorID       string
	DeliverableType string
}

func (e *RateCardNotFoundError) Error() string {
	return fmt.Sprintf("no active rate card for creator %q and deliverable %q", e.CreatorID, e.DeliverableType)
}

func (e *RateCardNotFoundError) Is(target error) bool {
	return target == ErrRateCardNotFound
}

// AmountOverflowError reports arithmetic whose result does not fit in int64
// minor units. It also matches ErrInvalidInput.
type AmountOverflowError struct {
	Operation string
}

func (e *AmountOverflowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, ErrAmountOverflow.Error())
}

func (e *AmountOverflowError) Is(target error) bool {
	return target == ErrAmountOverflow || target == ErrInvalidInput
}
