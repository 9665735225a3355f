package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("content safety input is invalid")
	ErrInvalidPatternTable = errors.New("pattern table is invalid")
	ErrUnknownCategory     = errors.New("unknown violation category")
	ErrUnknownField        = errors.New("unknown profile field")
	ErrNotFound            = errors.New("violation log not found")
)

// PatternError pins a table compilation failure to the category and rule
// that caused it.
type PatternError struct {
	Category string
	Rule     string
	Reason   string
	Err      error
}

func (e *PatternError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("pattern table category %q: %s", e.Category, e.Reason)
	}
	return fmt.Sprintf("pattern table rule %s/%s: %s", e.Category, e.Rule, e.Reason)
}

func (e *PatternError) Is(target error) bool {
	return target == ErrInvalidPatternTable
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
