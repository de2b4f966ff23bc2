package fifo

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Quantity is a whole number of shares.
type Quantity int64

// Q is a convenient factory for Quantity.
func Q[T int | int32 | int64 | uint | uint32](value T) Quantity {
	return Quantity(value)
}

// ParseQuantity parses a base 10 share count. It does not check the sign.
func ParseQuantity(s string) (Quantity, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return Quantity(v), nil
}

func (q Quantity) IsPositive() bool { return q > 0 }
func (q Quantity) IsZero() bool     { return q == 0 }
func (q Quantity) String() string   { return strconv.FormatInt(int64(q), 10) }

// decimal returns q as a decimal, for money arithmetic.
func (q Quantity) decimal() decimal.Decimal { return decimal.NewFromInt(int64(q)) }
