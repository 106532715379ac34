package engine

// Engine is a single-threaded limit order book matching engine. It does not
// lock internally: callers that need concurrent access are expected to
// serialize it themselves, the way the trading platform's HTTP front end
// does with a single request-scoped mutex.
type Engine struct {
	ordinal uint64
	book    *OrderBook
	history []Receipt
}

func NewEngine() *Engine {
	return &Engine{book: NewOrderBook()}
}

func (e *Engine) OrderBook() *OrderBook { return e.book }

func (e *Engine) History() []Receipt { return e.history }

// Process admits order, matches it against the opposite side at prices that
// cross, rests any unfilled residual on its own side, and returns the
// receipt of everything it traded against. Orders are never rejected here;
// funding checks belong to the caller.
func (e *Engine) Process(order Order) Receipt {
	e.ordinal++
	taker := order.intoPartial(e.ordinal)

	var matches []PartialOrder
	switch order.Side {
	case Buy:
		e.book.EligibleAsks(taker.Price, func(level *PriceLevel) bool {
			matches = append(matches, matchLevel(taker, level)...)
			return taker.Remaining > 0
		})
	case Sell:
		e.book.EligibleBids(taker.Price, func(level *PriceLevel) bool {
			matches = append(matches, matchLevel(taker, level)...)
			return taker.Remaining > 0
		})
	}

	if taker.Remaining > 0 {
		e.book.Rest(taker)
	}
	e.book.PruneEmptyLevels()

	receipt := Receipt{Ordinal: taker.Ordinal, Matches: matches}
	e.history = append(e.history, receipt)
	return receipt
}

// matchLevel drains level against taker in FIFO order until either side is
// exhausted. Makers signed by the same party as the taker are set aside
// rather than traded against, then put back at the head of the level once
// the walk stops. They were popped from the head, so each has a lower
// ordinal than anything still resting there: the level stays in ordinal
// order and they keep their original ordinal and priority.
func matchLevel(taker *PartialOrder, level *PriceLevel) []PartialOrder {
	var matches []PartialOrder
	var selfTrades []*PartialOrder

	for taker.Remaining > 0 && len(level.Orders) > 0 {
		maker := level.Orders[0]

		if maker.Signer == taker.Signer {
			selfTrades = append(selfTrades, maker)
			level.Orders = level.Orders[1:]
			continue
		}

		traded := maker.Remaining
		if taker.Remaining < traded {
			traded = taker.Remaining
		}

		matches = append(matches, PartialOrder{
			Price:   maker.Price,
			Amount:  traded,
			Side:    maker.Side,
			Signer:  maker.Signer,
			Ordinal: maker.Ordinal,
		})

		maker.Remaining -= traded
		taker.Remaining -= traded

		if maker.Remaining == 0 {
			level.Orders = level.Orders[1:]
		}
	}

	level.Orders = append(selfTrades, level.Orders...)
	return matches
}
