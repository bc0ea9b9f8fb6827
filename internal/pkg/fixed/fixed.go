// Package fixed implements a two-decimal fixed-point number used for money
// and rating means. Values are stored as int64 hundredths, so arithmetic never
// goes through float64.
package fixed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Scale is the number of units in 1.00.
const Scale = 100

// Decimal is a signed amount in hundredths (1.00 == Decimal(100)).
type Decimal int64

var ErrInvalidDecimal = errors.New("fixed: invalid decimal")

// FromInt converts a whole number into a Decimal.
func FromInt(v int64) Decimal {
	return Decimal(v * Scale)
}

// FromCents wraps an amount already expressed in hundredths.
func FromCents(c int64) Decimal {
	return Decimal(c)
}

// Parse reads "20", "20.5", "20.50" or "-3.25". More than two fractional
// digits is an error rather than a silent rounding.
func Parse(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidDecimal
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" && (!hasDot || frac == "") {
		return 0, ErrInvalidDecimal
	}
	if hasDot && (frac == "" || len(frac) > 2) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}

	var w int64
	if whole != "" {
		v, err := strconv.ParseInt(whole, 10, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
		}
		w = v
	}

	var f int64
	if frac != "" {
		for len(frac) < 2 {
			frac += "0"
		}
		v, err := strconv.ParseInt(frac, 10, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
		}
		f = v
	}

	d := Decimal(w*Scale + f)
	if neg {
		d = -d
	}
	return d, nil
}

// Cents returns the raw hundredths.
func (d Decimal) Cents() int64 {
	return int64(d)
}

// MulFrac returns d * num / den rounded half away from zero.
func (d Decimal) MulFrac(num, den int64) Decimal {
	if den == 0 {
		panic("fixed: zero denominator")
	}
	return Decimal(divRound(int64(d)*num, den))
}

// Mul returns d * o rounded half away from zero to hundredths.
func (d Decimal) Mul(o Decimal) Decimal {
	return Decimal(divRound(int64(d)*int64(o), Scale))
}

// Float64 is for display and tolerance checks only.
func (d Decimal) Float64() float64 {
	return float64(d) / Scale
}

func (d Decimal) String() string {
	v := int64(d)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/Scale, v%Scale)
}

// MarshalJSON emits a JSON number with exactly two decimals.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalJSON accepts both 20.5 and "20.50".
func (d *Decimal) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Average returns sum/count as a Decimal where sum is in whole units.
func Average(sum, count int64) Decimal {
	if count <= 0 {
		return 0
	}
	return Decimal(divRound(sum*Scale, count))
}

func divRound(num, den int64) int64 {
	if den < 0 {
		num, den = -num, -den
	}
	if num >= 0 {
		return (num*2 + den) / (den * 2)
	}
	return -((-num*2 + den) / (den * 2))
}
