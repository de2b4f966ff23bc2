package fifo

// Lot represents a single purchase of shares, used for FIFO cost basis calculations.
//
// A Lot is a value: selling part of a lot never changes it, the ledger holds
// a new residual Lot instead.
type Lot struct {
	Seq      int      // 1-based number of the purchase that created the lot.
	Quantity Quantity // shares remaining in the lot, always positive in a ledger.
	UnitCost Money    // purchase price per share, always positive.
}

// Cost returns the total cost of the lot (quantity * unit cost).
func (l Lot) Cost() Money { return l.UnitCost.Mul(l.Quantity) }

// split returns the part of l that is sold and the residual lot, when n shares
// are taken out of it. It requires 0 < n < l.Quantity.
func (l Lot) split(n Quantity) (sold, residual Lot) {
	sold = Lot{Seq: l.Seq, Quantity: n, UnitCost: l.UnitCost}
	residual = Lot{Seq: l.Seq, Quantity: l.Quantity - n, UnitCost: l.UnitCost}
	return sold, residual
}

// gainAt returns the gain of selling the whole lot at price.
func (l Lot) gainAt(price Money) Money {
	return price.Sub(l.UnitCost).Mul(l.Quantity)
}

func (l Lot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("seq", l.Seq)
	w.Append("quantity", l.Quantity)
	w.Append("unitCost", l.UnitCost)
	return w.MarshalJSON()
}

// Match is the slice of a lot consumed by a sale.
type Match struct {
	Lot  Lot   // the consumed part: its Quantity is the number of shares sold from the lot.
	Gain Money // (sale price - Lot.UnitCost) * Lot.Quantity
}

func (m Match) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("lot", m.Lot)
	w.Append("gain", m.Gain)
	return w.MarshalJSON()
}
