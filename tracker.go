package fifo

import (
	"fmt"
	"math"
	"slices"
)

// Tracker tracks the position in a single security and the capital gains
// realized by selling it, matching sales to purchases First-In-First-Out.
//
// Every operation either succeeds or fails without modifying the tracker.
// A Tracker is not safe for concurrent use.
type Tracker struct {
	ledger   Ledger
	realized Money
	buys     int // number of purchases so far, used to number lots.
	sales    []Sale
}

// NewTracker creates a tracker with no shares and no realized gain.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Buy records the purchase of quantity shares at unitPrice each.
//
// The position is bounded by math.MaxInt64 shares, a purchase beyond that
// fails with an *ArgumentError on the quantity.
func (t *Tracker) Buy(quantity Quantity, unitPrice Money) error {
	if err := checkArgs("buy", quantity, unitPrice); err != nil {
		return err
	}
	if room := math.MaxInt64 - t.ledger.TotalQuantity(); quantity > room {
		return &ArgumentError{Op: "buy", Field: "quantity", Value: quantity.String(), Rule: fmt.Sprintf("must be at most %v", room)}
	}
	t.buys++
	t.ledger.AppendBack(Lot{Seq: t.buys, Quantity: quantity, UnitCost: unitPrice})
	return nil
}

// Sell records the sale of quantity shares at unitPrice each, and returns the
// capital gain (negative for a loss) realized by this sale.
//
// Shares are taken from the oldest lots first. The sale fails with an
// *InsufficientHoldingsError if quantity exceeds the current position.
func (t *Tracker) Sell(quantity Quantity, unitPrice Money) (Money, error) {
	if err := checkArgs("sell", quantity, unitPrice); err != nil {
		return Money{}, err
	}
	if pos := t.ledger.TotalQuantity(); quantity > pos {
		return Money{}, &InsufficientHoldingsError{Requested: quantity, Available: pos}
	}

	sale := Sale{
		Seq:       len(t.sales) + 1,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}

	remaining := quantity
	for remaining > 0 {
		front, err := t.ledger.RemoveFront()
		if err != nil {
			// The position was checked above, the ledger cannot run out of lots.
			return Money{}, fmt.Errorf("selling %v shares, %v left to match: %w", quantity, remaining, err)
		}

		sold := front
		if front.Quantity > remaining {
			// Partial sale from this lot
			var residual Lot
			sold, residual = front.split(remaining)
			t.ledger.InsertFront(residual)
		}
		// Full sale of this lot otherwise, including when it holds exactly the remaining shares.

		gain := sold.gainAt(unitPrice)
		sale.Matches = append(sale.Matches, Match{Lot: sold, Gain: gain})
		sale.Gain = sale.Gain.Add(gain)
		remaining -= sold.Quantity
	}

	t.realized = t.realized.Add(sale.Gain)
	t.sales = append(t.sales, sale)
	return sale.Gain, nil
}

// TotalRealizedGain returns the sum of the gains of all the sales so far.
func (t *Tracker) TotalRealizedGain() Money { return t.realized }

// CurrentQuantity returns the number of shares held.
func (t *Tracker) CurrentQuantity() Quantity { return t.ledger.TotalQuantity() }

// IsEmpty returns true if no shares are held.
func (t *Tracker) IsEmpty() bool { return t.ledger.IsEmpty() }

// Lots returns the lots held, oldest first.
func (t *Tracker) Lots() []Lot { return t.ledger.Lots() }

// Sales returns all the sales so far, oldest first.
func (t *Tracker) Sales() []Sale {
	sales := slices.Clone(t.sales)
	for i := range sales {
		sales[i].Matches = slices.Clone(sales[i].Matches)
	}
	return sales
}

// LastSale returns the most recent sale, if any.
func (t *Tracker) LastSale() (Sale, bool) {
	if len(t.sales) == 0 {
		return Sale{}, false
	}
	s := t.sales[len(t.sales)-1]
	s.Matches = slices.Clone(s.Matches)
	return s, true
}

// CostBasis returns the total purchase cost of the shares held.
func (t *Tracker) CostBasis() Money {
	var cost Money
	for lot := range t.ledger.All() {
		cost = cost.Add(lot.Cost())
	}
	return cost
}

// UnrealizedGain returns the gain that selling all the shares held at markPrice would realize.
func (t *Tracker) UnrealizedGain(markPrice Money) (Money, error) {
	if !markPrice.IsPositive() {
		return Money{}, &ArgumentError{Op: "unrealized", Field: "price", Value: markPrice.String()}
	}
	var gain Money
	for lot := range t.ledger.All() {
		gain = gain.Add(lot.gainAt(markPrice))
	}
	return gain, nil
}

// Snapshot returns the current state of the tracker.
func (t *Tracker) Snapshot() Position {
	return Position{
		Quantity:     t.CurrentQuantity(),
		CostBasis:    t.CostBasis(),
		RealizedGain: t.realized,
		Lots:         t.Lots(),
		Sales:        t.Sales(),
	}
}
