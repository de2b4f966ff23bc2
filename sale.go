package fifo

// Sale is a completed sale and the lots it was matched against.
type Sale struct {
	Seq       int // 1-based number of the sale.
	Quantity  Quantity
	UnitPrice Money
	Gain      Money   // sum of the Matches gain.
	Matches   []Match // in matching order, oldest lot first.
}

// Proceeds returns the total revenue of the sale.
func (s Sale) Proceeds() Money { return s.UnitPrice.Mul(s.Quantity) }

// Cost returns the cost basis of the shares sold.
func (s Sale) Cost() Money {
	var cost Money
	for _, m := range s.Matches {
		cost = cost.Add(m.Lot.Cost())
	}
	return cost
}

func (s Sale) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("seq", s.Seq)
	w.Append("quantity", s.Quantity)
	w.Append("unitPrice", s.UnitPrice)
	w.Append("gain", s.Gain)
	w.Append("matches", s.Matches)
	return w.MarshalJSON()
}

// Position is a snapshot of a Tracker.
type Position struct {
	Quantity     Quantity
	CostBasis    Money
	RealizedGain Money
	Lots         []Lot
	Sales        []Sale
}

// MarshalJSON encodes the position with a stable key order.
func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("quantity", p.Quantity)
	w.Append("costBasis", p.CostBasis)
	w.Append("realizedGain", p.RealizedGain)
	w.Append("lots", nonNil(p.Lots))
	w.Append("sales", nonNil(p.Sales))
	return w.MarshalJSON()
}

// nonNil makes nil slices encode as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
