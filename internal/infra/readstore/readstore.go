package readstore

import (
	"github.com/shopspring/decimal"

	"pitchbook/internal/pkg/errs"
)

// Numerics travel as text between Postgres and the decimal type; casting in
// SQL keeps float64 out of the money path entirely.

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errs.Wrap(err, "malformed numeric value")
	}
	return d, nil
}

func parseDecimalPtr(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := parseDecimal(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
