package fifo

import (
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Money is an exact monetary amount: a unit price, a cost or a gain.
//
// Money carries no currency, displaying it for a given currency is left to the
// renderer package. Additions, subtractions and multiplications are exact, no
// rounding ever happens.
type Money struct {
	value decimal.Decimal
}

// M creates Money from any numeric value.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses a decimal amount like "12.5" or "$12.50". It does not check the sign.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d}, nil
}

func (m Money) Equal(n Money) bool   { return m.value.Equal(n.value) }
func (m Money) IsZero() bool         { return m.value.IsZero() }
func (m Money) IsPositive() bool     { return m.value.IsPositive() }
func (m Money) IsNegative() bool     { return m.value.IsNegative() }
func (m Money) Add(n Money) Money    { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money    { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money { return Money{value: m.value.Mul(q.decimal())} }

// Decimal returns the exact amount.
func (m Money) Decimal() decimal.Decimal { return m.value }

// String returns the exact amount without any currency formatting.
func (m Money) String() string { return m.value.String() }

// MarshalJSON encodes money as a JSON number with all its digits.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	return m.value.UnmarshalJSON(b)
}
