package engine

import "testing"

func submit(t *testing.T, e *Engine, side Side, signer string, price, amount uint64) Receipt {
	t.Helper()
	return e.Process(Order{Price: price, Amount: amount, Side: side, Signer: signer})
}

func TestNoMatchWhenBookIsEmpty(t *testing.T) {
	e := NewEngine()
	receipt := submit(t, e, Buy, "ALICE", 10, 1)
	if len(receipt.Matches) != 0 {
		t.Fatalf("expected no matches, got %v", receipt.Matches)
	}
	if e.OrderBook().BidLevelCount() != 1 {
		t.Fatalf("expected the order to rest on the bid side")
	}
}

func TestNoMatchWhenPricesDoNotCross(t *testing.T) {
	e := NewEngine()
	submit(t, e, Sell, "ALICE", 11, 1)
	receipt := submit(t, e, Buy, "BOB", 10, 1)
	if len(receipt.Matches) != 0 {
		t.Fatalf("expected no matches for non-crossing prices, got %v", receipt.Matches)
	}
	if e.OrderBook().AskLevelCount() != 1 || e.OrderBook().BidLevelCount() != 1 {
		t.Fatalf("expected both orders resting untouched")
	}
}

// S1: a full match against a single resting maker, with a residual taker.
func TestFullMakerMatchLeavesTakerResidual(t *testing.T) {
	e := NewEngine()
	submit(t, e, Sell, "ALICE", 10, 1)
	receipt := submit(t, e, Buy, "BOB", 10, 2)

	if len(receipt.Matches) != 1 {
		t.Fatalf("expected exactly one match, got %v", receipt.Matches)
	}
	m := receipt.Matches[0]
	if m.Signer != "ALICE" || m.Amount != 1 || m.Remaining != 0 || m.Ordinal != 1 {
		t.Fatalf("unexpected match record: %+v", m)
	}
	if e.OrderBook().AskLevelCount() != 0 {
		t.Fatalf("expected the ask side to be emptied")
	}
	if e.OrderBook().BidLevelCount() != 1 {
		t.Fatalf("expected BOB's residual to rest")
	}
	lvl, _ := e.OrderBook().Bids.Get(&bidItem{level: &PriceLevel{Price: 10}}).(*bidItem), true
	resting := lvl.level.Orders
	if len(resting) != 1 || resting[0].Remaining != 1 || resting[0].Amount != 2 {
		t.Fatalf("unexpected resting bid: %+v", resting)
	}
}

// S2: a taker fully consumed by a single maker leaves the maker resting
// with a reduced remaining.
func TestPartialMakerConsumptionRestsReducedResidual(t *testing.T) {
	e := NewEngine()
	submit(t, e, Sell, "ALICE", 10, 5)
	receipt := submit(t, e, Buy, "BOB", 10, 2)

	if len(receipt.Matches) != 1 || receipt.Matches[0].Amount != 2 {
		t.Fatalf("unexpected matches: %v", receipt.Matches)
	}
	if e.OrderBook().AskLevelCount() != 1 {
		t.Fatalf("expected ALICE's order to still be resting")
	}
	found := e.OrderBook().Asks.Get(&askItem{level: &PriceLevel{Price: 10}}).(*askItem)
	if len(found.level.Orders) != 1 || found.level.Orders[0].Remaining != 3 || found.level.Orders[0].Amount != 5 {
		t.Fatalf("expected ALICE's resting order reduced to remaining=3, amount unchanged: %+v", found.level.Orders)
	}
	if found.level.Orders[0].Ordinal != 1 {
		t.Fatalf("expected the reduced maker to keep its original ordinal")
	}
}

// S3: a taker walks two makers at the same price level in ordinal order.
func TestTakerWalksMultipleMakersInFIFOOrder(t *testing.T) {
	e := NewEngine()
	submit(t, e, Sell, "ALICE", 10, 1)
	submit(t, e, Sell, "CHARLIE", 10, 1)
	receipt := submit(t, e, Buy, "BOB", 10, 2)

	if len(receipt.Matches) != 2 {
		t.Fatalf("expected two matches, got %v", receipt.Matches)
	}
	if receipt.Matches[0].Signer != "ALICE" || receipt.Matches[0].Ordinal != 1 {
		t.Fatalf("expected ALICE matched first: %+v", receipt.Matches[0])
	}
	if receipt.Matches[1].Signer != "CHARLIE" || receipt.Matches[1].Ordinal != 2 {
		t.Fatalf("expected CHARLIE matched second: %+v", receipt.Matches[1])
	}
	if e.OrderBook().AskLevelCount() != 0 {
		t.Fatalf("expected the ask side fully drained")
	}
}

// S4: a taker's own resting order at a crossing level is skipped and
// reinserted, trading instead against the next maker in line.
func TestSelfTradeIsSuppressedAndReinserted(t *testing.T) {
	e := NewEngine()
	submit(t, e, Sell, "ALICE", 10, 1)
	submit(t, e, Sell, "CHARLIE", 10, 1)
	receipt := submit(t, e, Buy, "ALICE", 10, 2)

	if len(receipt.Matches) != 1 || receipt.Matches[0].Signer != "CHARLIE" {
		t.Fatalf("expected exactly one match against CHARLIE, got %v", receipt.Matches)
	}
	found := e.OrderBook().Asks.Get(&askItem{level: &PriceLevel{Price: 10}}).(*askItem)
	if len(found.level.Orders) != 1 || found.level.Orders[0].Signer != "ALICE" || found.level.Orders[0].Ordinal != 1 {
		t.Fatalf("expected ALICE's sell order still resting with ordinal 1: %+v", found.level.Orders)
	}
	bids := e.OrderBook().Bids.Get(&bidItem{level: &PriceLevel{Price: 10}}).(*bidItem)
	if len(bids.level.Orders) != 1 || bids.level.Orders[0].Remaining != 1 {
		t.Fatalf("expected ALICE's buy residual remaining=1: %+v", bids.level.Orders)
	}
}

// S5: when every maker at a crossing level belongs to the taker, nothing
// trades and the level is restored untouched.
func TestSelfTradeSuppressionAcrossWholeLevel(t *testing.T) {
	e := NewEngine()
	submit(t, e, Sell, "ALICE", 10, 3)
	receipt := submit(t, e, Buy, "ALICE", 10, 1)

	if len(receipt.Matches) != 0 {
		t.Fatalf("expected no matches, got %v", receipt.Matches)
	}
	found := e.OrderBook().Asks.Get(&askItem{level: &PriceLevel{Price: 10}}).(*askItem)
	if len(found.level.Orders) != 1 || found.level.Orders[0].Remaining != 3 {
		t.Fatalf("expected ALICE's sell order untouched: %+v", found.level.Orders)
	}
	if e.OrderBook().BidLevelCount() != 1 {
		t.Fatalf("expected ALICE's buy order to rest since it could not cross")
	}
}

// S6: ordinals increment once per submitted order regardless of how many
// matches or self-trade suppressions the order triggers.
func TestOrdinalIncrementsPerSubmission(t *testing.T) {
	e := NewEngine()
	submit(t, e, Sell, "ALICE", 10, 1)
	submit(t, e, Sell, "CHARLIE", 10, 1)
	r := submit(t, e, Buy, "BOB", 10, 2)
	if r.Ordinal != 3 {
		t.Fatalf("expected the third submission to carry ordinal 3, got %d", r.Ordinal)
	}
	if len(e.History()) != 3 {
		t.Fatalf("expected one receipt recorded per submission, got %d", len(e.History()))
	}
}

func TestQuantityIsConservedAcrossAMatch(t *testing.T) {
	e := NewEngine()
	submit(t, e, Sell, "ALICE", 10, 4)
	r := submit(t, e, Buy, "BOB", 10, 6)

	var traded uint64
	for _, m := range r.Matches {
		traded += m.Amount
	}
	residual := e.OrderBook().Bids.Get(&bidItem{level: &PriceLevel{Price: 10}}).(*bidItem).level.Orders[0].Remaining
	if traded+residual != 6 {
		t.Fatalf("expected traded(%d) + residual(%d) == original amount 6", traded, residual)
	}
}

func TestNoEmptyPriceLevelSurvives(t *testing.T) {
	e := NewEngine()
	submit(t, e, Sell, "ALICE", 10, 1)
	submit(t, e, Buy, "BOB", 10, 1)
	if e.OrderBook().AskLevelCount() != 0 || e.OrderBook().BidLevelCount() != 0 {
		t.Fatalf("expected both sides empty after an exact full match")
	}
}

func TestOrderBookSnapshotOrdersAsksThenBidsAscending(t *testing.T) {
	e := NewEngine()
	submit(t, e, Sell, "ALICE", 12, 1)
	submit(t, e, Sell, "CHARLIE", 11, 1)
	submit(t, e, Buy, "BOB", 9, 1)
	submit(t, e, Buy, "DAVE", 8, 1)

	snap := e.OrderBook().Snapshot()
	if len(snap) != 4 {
		t.Fatalf("expected 4 resting orders, got %d", len(snap))
	}
	if snap[0].Price != 11 || snap[1].Price != 12 {
		t.Fatalf("expected asks ascending by price: %+v", snap[:2])
	}
	if snap[2].Price != 8 || snap[3].Price != 9 {
		t.Fatalf("expected bids ascending by price: %+v", snap[2:])
	}
}
