package common

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// ParseAmount reads a money value written either as a plain number ("1234.56") or in
// Brazilian notation ("R$ 1.234,56"). Only strictly positive values are accepted.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "R$"), "r$")
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")

	if s == "" {
		return decimal.Zero, errors.Wrap(ErrInvalidAmount, "empty amount")
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastComma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Mark(errors.Wrapf(err, "invalid amount %q", raw), ErrInvalidAmount)
	}

	amount = amount.Round(2)

	if !amount.IsPositive() {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "amount %s is not positive", amount)
	}

	return amount, nil
}
