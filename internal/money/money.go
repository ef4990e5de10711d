// Package money provides the fixed-precision monetary type used for every
// balance and transaction amount in the engine. Values carry at most four
// fractional digits and all arithmetic is exact; binary floating point is
// never involved.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits every Amount is kept at.
const Scale = 4

// Amount is an immutable fixed-point monetary value. The zero value is 0.
type Amount struct {
	dec decimal.Decimal
}

// Parse converts a decimal string such as "1.5" or "-0.0042" into an Amount.
// It fails if the string is not a valid decimal or carries more than four
// fractional digits.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if !d.Equal(d.Round(Scale)) {
		return Amount{}, fmt.Errorf("amount %q exceeds %d fractional digits", s, Scale)
	}
	return Amount{dec: d.Round(Scale)}, nil
}

// MustParse is Parse for constants and tests; it panics on invalid input.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromDecimal adapts a decimal read back from storage. Same precision rule
// as Parse.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	if !d.Equal(d.Round(Scale)) {
		return Amount{}, fmt.Errorf("amount %s exceeds %d fractional digits", d, Scale)
	}
	return Amount{dec: d.Round(Scale)}, nil
}

func (a Amount) Add(b Amount) Amount { return Amount{dec: a.dec.Add(b.dec)} }
func (a Amount) Sub(b Amount) Amount { return Amount{dec: a.dec.Sub(b.dec)} }

func (a Amount) IsNegative() bool { return a.dec.IsNegative() }
func (a Amount) IsPositive() bool { return a.dec.IsPositive() }
func (a Amount) IsZero() bool     { return a.dec.IsZero() }

// Cmp returns -1, 0 or 1 comparing a against b.
func (a Amount) Cmp(b Amount) int { return a.dec.Cmp(b.dec) }

func (a Amount) Equal(b Amount) bool    { return a.dec.Equal(b.dec) }
func (a Amount) LessThan(b Amount) bool { return a.dec.LessThan(b.dec) }

// Decimal exposes the underlying decimal for database drivers.
func (a Amount) Decimal() decimal.Decimal { return a.dec }

// String renders the value with exactly four fractional digits, the format
// used in snapshot output ("2.5" -> "2.5000").
func (a Amount) String() string { return a.dec.StringFixed(Scale) }

// MarshalJSON emits the fixed four-digit rendering as a JSON string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string or a bare number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
