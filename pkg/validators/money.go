package validators

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrDescriptionEmpty = invalid("description can't be empty")
	ErrAmountMissing    = invalid("amount is required")
	ErrAmountNegative   = invalid("amount can't be negative")
	ErrAmountInvalid    = invalid("amount must be a finite number")
	ErrAmountPrecision  = invalid("amount can't have more than 2 decimal places")
	ErrBudgetMissing    = invalid("budget is required")
	ErrBudgetNegative   = invalid("budget can't be negative")
	ErrBudgetInvalid    = invalid("budget must be a finite number")
	ErrCategoryEmpty    = invalid("category name can't be empty")
	ErrColorInvalid     = invalid("color must be a hex value like #fa0 or #ffaa00")
)

var colorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func DescriptionValidator(d string) error {
	if strings.TrimSpace(d) == "" {
		return ErrDescriptionEmpty
	}

	return nil
}

func AmountValidator(a *float64) error {
	if a == nil {
		return ErrAmountMissing
	}

	if math.IsNaN(*a) || math.IsInf(*a, 0) {
		return ErrAmountInvalid
	}

	if *a < 0 {
		return ErrAmountNegative
	}

	if decimal.NewFromFloat(*a).Exponent() < -2 {
		return ErrAmountPrecision
	}

	return nil
}

func BudgetValidator(b *float64) error {
	if b == nil {
		return ErrBudgetMissing
	}

	if math.IsNaN(*b) || math.IsInf(*b, 0) {
		return ErrBudgetInvalid
	}

	if *b < 0 {
		return ErrBudgetNegative
	}

	return nil
}

// ColorValidator accepts an empty color since it's optional
func ColorValidator(c string) error {
	if c == "" {
		return nil
	}

	if !colorRe.MatchString(c) {
		return ErrColorInvalid
	}

	return nil
}
