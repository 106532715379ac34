package engine

// Side identifies which side of the book an order belongs to.
type Side string

const (
	Buy  Side = "Buy"
	Sell Side = "Sell"
)

// Order is a submission: a participant's request to buy or sell at a limit
// price. amount > 0 is expected of the caller; the engine does not reject
// amount == 0, it just produces a trivially empty Receipt.
type Order struct {
	Price  uint64 `json:"price"`
	Amount uint64 `json:"amount"`
	Side   Side   `json:"side"`
	Signer string `json:"signer"`
}

// PartialOrder is either a resting order on the book or a match record
// copied out of one. Amount is fixed at the order's original size for its
// whole lifetime; Remaining tracks how much of it is still unfilled. For a
// match record specifically, Amount instead carries the quantity traded in
// that match and Remaining is always 0 (match records are built by
// matchLevel).
type PartialOrder struct {
	Price     uint64 `json:"price"`
	Amount    uint64 `json:"amount"`
	Remaining uint64 `json:"remaining"`
	Side      Side   `json:"side"`
	Signer    string `json:"signer"`
	Ordinal   uint64 `json:"ordinal"`
}

// Receipt records the outcome of a single Process call: the taker's
// ordinal and the ordered list of maker partials it consumed.
type Receipt struct {
	Ordinal uint64         `json:"ordinal"`
	Matches []PartialOrder `json:"matches"`
}

func (o Order) intoPartial(ordinal uint64) *PartialOrder {
	return &PartialOrder{
		Price:     o.Price,
		Amount:    o.Amount,
		Remaining: o.Amount,
		Side:      o.Side,
		Signer:    o.Signer,
		Ordinal:   ordinal,
	}
}
