package engine

import "github.com/google/btree"

// PriceLevel holds every order resting at a single price, in strict ordinal
// order: earliest-admitted first. A level is never left in the book empty.
type PriceLevel struct {
	Price  uint64
	Orders []*PartialOrder
}

// bidItem orders the bid tree so Ascend visits highest price first: best
// bid, like the book's GetBestBid/PriceLevelItem convention.
type bidItem struct{ level *PriceLevel }

func (b *bidItem) Less(than btree.Item) bool {
	return b.level.Price > than.(*bidItem).level.Price
}

// askItem orders the ask tree so Ascend visits lowest price first: best ask.
type askItem struct{ level *PriceLevel }

func (a *askItem) Less(than btree.Item) bool {
	return a.level.Price < than.(*askItem).level.Price
}

const bookDegree = 32

// OrderBook is the pair of price-indexed trees backing one matching engine.
// Bids are keyed for descending-price traversal, asks for ascending.
type OrderBook struct {
	Bids *btree.BTree
	Asks *btree.BTree
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		Bids: btree.New(bookDegree),
		Asks: btree.New(bookDegree),
	}
}

// Rest admits a partial order as resting liquidity on its own side.
func (ob *OrderBook) Rest(o *PartialOrder) {
	if o.Side == Buy {
		ob.restBid(o)
	} else {
		ob.restAsk(o)
	}
}

func (ob *OrderBook) restBid(o *PartialOrder) {
	probe := &bidItem{level: &PriceLevel{Price: o.Price}}
	if found := ob.Bids.Get(probe); found != nil {
		lvl := found.(*bidItem).level
		lvl.Orders = append(lvl.Orders, o)
		return
	}
	probe.level.Orders = []*PartialOrder{o}
	ob.Bids.ReplaceOrInsert(probe)
}

func (ob *OrderBook) restAsk(o *PartialOrder) {
	probe := &askItem{level: &PriceLevel{Price: o.Price}}
	if found := ob.Asks.Get(probe); found != nil {
		lvl := found.(*askItem).level
		lvl.Orders = append(lvl.Orders, o)
		return
	}
	probe.level.Orders = []*PartialOrder{o}
	ob.Asks.ReplaceOrInsert(probe)
}

// EligibleAsks visits ask levels priced at or below maxPrice in ascending
// price order, stopping as soon as visit returns false or a level prices
// above maxPrice.
func (ob *OrderBook) EligibleAsks(maxPrice uint64, visit func(*PriceLevel) bool) {
	ob.Asks.Ascend(func(i btree.Item) bool {
		lvl := i.(*askItem).level
		if lvl.Price > maxPrice {
			return false
		}
		return visit(lvl)
	})
}

// EligibleBids visits bid levels priced at or above minPrice in descending
// price order, stopping as soon as visit returns false or a level prices
// below minPrice.
func (ob *OrderBook) EligibleBids(minPrice uint64, visit func(*PriceLevel) bool) {
	ob.Bids.Ascend(func(i btree.Item) bool {
		lvl := i.(*bidItem).level
		if lvl.Price < minPrice {
			return false
		}
		return visit(lvl)
	})
}

// PruneEmptyLevels removes every price level left with no resting orders.
// Matching can empty a level without removing it, so this runs once after
// each Process call rather than inline during the match loop.
func (ob *OrderBook) PruneEmptyLevels() {
	var emptyBids, emptyAsks []uint64
	ob.Bids.Ascend(func(i btree.Item) bool {
		lvl := i.(*bidItem).level
		if len(lvl.Orders) == 0 {
			emptyBids = append(emptyBids, lvl.Price)
		}
		return true
	})
	for _, price := range emptyBids {
		ob.Bids.Delete(&bidItem{level: &PriceLevel{Price: price}})
	}

	ob.Asks.Ascend(func(i btree.Item) bool {
		lvl := i.(*askItem).level
		if len(lvl.Orders) == 0 {
			emptyAsks = append(emptyAsks, lvl.Price)
		}
		return true
	})
	for _, price := range emptyAsks {
		ob.Asks.Delete(&askItem{level: &PriceLevel{Price: price}})
	}
}

// Snapshot flattens the book into asks-then-bids, each side in ascending
// price, each level in ordinal order.
func (ob *OrderBook) Snapshot() []PartialOrder {
	var out []PartialOrder
	ob.Asks.Ascend(func(i btree.Item) bool {
		lvl := i.(*askItem).level
		for _, o := range lvl.Orders {
			out = append(out, *o)
		}
		return true
	})
	// Bids are keyed for descending traversal on Ascend, so Descend here
	// walks them lowest price first.
	ob.Bids.Descend(func(i btree.Item) bool {
		lvl := i.(*bidItem).level
		for _, o := range lvl.Orders {
			out = append(out, *o)
		}
		return true
	})
	return out
}

func (ob *OrderBook) BidLevelCount() int { return ob.Bids.Len() }
func (ob *OrderBook) AskLevelCount() int { return ob.Asks.Len() }
