package platform

import (
	"fmt"

	"centralbook/src/engine"
	"centralbook/src/ledger"
)

// Platform is the single entry point the HTTP and CLI front ends talk to.
// It owns the transaction journal; the matching engine owns its own receipt
// history independently.
type Platform struct {
	ledger  *ledger.Ledger
	engine  *engine.Engine
	journal []ledger.Tx
}

func New() *Platform {
	return &Platform{
		ledger: ledger.New(),
		engine: engine.NewEngine(),
	}
}

func (p *Platform) BalanceOf(signer string) (uint64, error) {
	return p.ledger.BalanceOf(signer)
}

func (p *Platform) Deposit(signer string, amount uint64) (ledger.Tx, error) {
	tx, err := p.ledger.Deposit(signer, amount)
	if err != nil {
		return ledger.Tx{}, err
	}
	p.journal = append(p.journal, tx)
	return tx, nil
}

func (p *Platform) Withdraw(signer string, amount uint64) (ledger.Tx, error) {
	tx, err := p.ledger.Withdraw(signer, amount)
	if err != nil {
		return ledger.Tx{}, err
	}
	p.journal = append(p.journal, tx)
	return tx, nil
}

func (p *Platform) Send(sender, recipient string, amount uint64) (withdrawTx, depositTx ledger.Tx, err error) {
	withdrawTx, depositTx, err = p.ledger.Send(sender, recipient, amount)
	if err != nil {
		return ledger.Tx{}, ledger.Tx{}, err
	}
	p.journal = append(p.journal, withdrawTx, depositTx)
	return withdrawTx, depositTx, nil
}

func (p *Platform) TxLog() []ledger.Tx {
	return p.journal
}

func (p *Platform) OrderBook() []engine.PartialOrder {
	return p.engine.OrderBook().Snapshot()
}

// Order admits a new order into the matching engine and settles every match
// it produces through the ledger. Buy orders are funding-checked up front
// against price*amount; sell orders are never funding-checked, since a
// seller only ever receives funds. A ledger error during settlement means a
// trade the funding check should have prevented from happening at all, and
// is treated as an unreachable invariant violation rather than a recoverable
// error.
func (p *Platform) Order(order engine.Order) (engine.Receipt, error) {
	balance, err := p.ledger.BalanceOf(order.Signer)
	if err != nil {
		return engine.Receipt{}, err
	}
	if order.Side == engine.Buy {
		required := order.Amount * order.Price
		if balance < required {
			return engine.Receipt{}, &ledger.AccountUnderFundedError{Signer: order.Signer, Required: required}
		}
	}

	receipt := p.engine.Process(order)

	for _, match := range receipt.Matches {
		total := match.Amount * match.Price

		var sender, recipient string
		switch order.Side {
		case engine.Buy:
			sender, recipient = order.Signer, match.Signer
		case engine.Sell:
			sender, recipient = match.Signer, order.Signer
		}

		withdrawTx, depositTx, err := p.ledger.Send(sender, recipient, total)
		if err != nil {
			panic(fmt.Sprintf("settlement invariant violated: %v", err))
		}
		p.journal = append(p.journal, withdrawTx, depositTx)
	}

	return receipt, nil
}
