package fifo

import (
	"iter"
)

// Ledger is the ordered list of lots currently held.
//
// In a Ledger lots are always in purchase order: the front lot is the oldest
// one, and the next one to be matched by a sale. Lots are added at the back
// when bought, and taken from the front when sold. A partially sold lot is
// put back at the front.
//
// The zero value is an empty ledger ready to use.
type Ledger struct {
	lots []Lot // ring buffer, len(lots) is the capacity.
	head int   // index of the front lot.
	n    int   // number of lots.
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Len returns the number of lots.
func (l *Ledger) Len() int { return l.n }

// IsEmpty returns true iff there are no lots left.
func (l *Ledger) IsEmpty() bool { return l.n == 0 }

// AppendBack adds a lot after the newest one.
func (l *Ledger) AppendBack(lot Lot) {
	l.grow()
	l.lots[l.index(l.n)] = lot
	l.n++
}

// InsertFront adds a lot before the oldest one, making it the next one to be sold.
func (l *Ledger) InsertFront(lot Lot) {
	l.grow()
	l.head = l.index(len(l.lots) - 1)
	l.lots[l.head] = lot
	l.n++
}

// Front returns the oldest lot, without removing it.
func (l *Ledger) Front() (Lot, error) {
	if l.n == 0 {
		return Lot{}, ErrEmptyLedger
	}
	return l.lots[l.head], nil
}

// RemoveFront removes and returns the oldest lot.
func (l *Ledger) RemoveFront() (Lot, error) {
	if l.n == 0 {
		return Lot{}, ErrEmptyLedger
	}
	lot := l.lots[l.head]
	l.lots[l.head] = Lot{}
	l.head = l.index(1)
	l.n--
	return lot, nil
}

// TotalQuantity returns the sum of all lots quantity.
func (l *Ledger) TotalQuantity() Quantity {
	var total Quantity
	for lot := range l.All() {
		total += lot.Quantity
	}
	return total
}

// All iterates over the lots, from the oldest to the newest.
func (l *Ledger) All() iter.Seq[Lot] {
	return func(yield func(Lot) bool) {
		for i := range l.n {
			if !yield(l.lots[l.index(i)]) {
				return
			}
		}
	}
}

// Lots returns a copy of the lots, from the oldest to the newest.
func (l *Ledger) Lots() []Lot {
	lots := make([]Lot, 0, l.n)
	for lot := range l.All() {
		lots = append(lots, lot)
	}
	return lots
}

// index returns the position in the ring of the i-th lot from the front.
// i may be up to len(l.lots)-1 past the front, which wraps to just before it.
func (l *Ledger) index(i int) int {
	return (l.head + i) % len(l.lots)
}

// grow makes room for at least one more lot.
func (l *Ledger) grow() {
	if l.n < len(l.lots) {
		return
	}
	lots := make([]Lot, max(4, 2*len(l.lots)))
	for i := range l.n {
		lots[i] = l.lots[l.index(i)]
	}
	l.lots, l.head = lots, 0
}
