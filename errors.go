package fifo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is matched by errors returned for a non positive quantity or price,
	// or a purchase the position cannot hold.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInsufficientHoldings is matched by errors returned when selling more shares than held.
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	// ErrEmptyLedger is returned when reading the front of an empty ledger.
	ErrEmptyLedger = errors.New("empty ledger")
)

// ArgumentError reports which argument of an operation was rejected.
type ArgumentError struct {
	Op    string // "buy", "sell", "unrealized"
	Field string // "quantity" or "price"
	Value string
	Rule  string // broken rule, "must be positive" if empty.
}

func (e *ArgumentError) Error() string {
	rule := e.Rule
	if rule == "" {
		rule = "must be positive"
	}
	return fmt.Sprintf("%s %s %s, got %s", e.Op, e.Field, rule, e.Value)
}

func (e *ArgumentError) Unwrap() error { return ErrInvalidArgument }

// InsufficientHoldingsError is returned by a sale larger than the position.
type InsufficientHoldingsError struct {
	Requested Quantity
	Available Quantity
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("cannot sell %v shares, position is only %v", e.Requested, e.Available)
}

func (e *InsufficientHoldingsError) Unwrap() error { return ErrInsufficientHoldings }

// checkArgs validates the arguments common to buy and sell.
func checkArgs(op string, quantity Quantity, price Money) error {
	if !quantity.IsPositive() {
		return &ArgumentError{Op: op, Field: "quantity", Value: quantity.String()}
	}
	if !price.IsPositive() {
		return &ArgumentError{Op: op, Field: "price", Value: price.String()}
	}
	return nil
}
