package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// TxKind distinguishes the two primitive balance movements a Tx records.
// A Send is logged as a Withdraw on the sender and a Deposit on the
// recipient, each with its own Tx.
type TxKind string

const (
	TxDeposit  TxKind = "Deposit"
	TxWithdraw TxKind = "Withdraw"
)

// Tx records a single account's balance movement. Kind, Account and Amount
// are the movement itself, so replaying the journal in order reproduces the
// balances; ID and Timestamp are purely observational.
type Tx struct {
	ID        string `json:"id"`
	Kind      TxKind `json:"kind"`
	Account   string `json:"account"`
	Amount    uint64 `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

func newTx(kind TxKind, account string, amount uint64) Tx {
	return Tx{
		ID:        uuid.New().String(),
		Kind:      kind,
		Account:   account,
		Amount:    amount,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Ledger tracks per-account balances. It holds no notion of orders or
// matching; the trading platform is the only caller that knows why a
// balance is moving.
type Ledger struct {
	mu       sync.RWMutex
	balances map[string]uint64
}

func New() *Ledger {
	return &Ledger{balances: make(map[string]uint64)}
}

func (l *Ledger) BalanceOf(signer string) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	balance, ok := l.balances[signer]
	if !ok {
		return 0, &AccountNotFoundError{Signer: signer}
	}
	return balance, nil
}

// Deposit credits signer, creating the account if it doesn't yet exist.
func (l *Ledger) Deposit(signer string, amount uint64) (Tx, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance := l.balances[signer]
	credited := balance + amount
	if credited < balance {
		return Tx{}, &AccountOverFundedError{Signer: signer, Amount: amount}
	}
	l.balances[signer] = credited
	return newTx(TxDeposit, signer, amount), nil
}

// Withdraw debits signer. The account must exist and hold at least amount.
func (l *Ledger) Withdraw(signer string, amount uint64) (Tx, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[signer]
	if !ok {
		return Tx{}, &AccountNotFoundError{Signer: signer}
	}
	if balance < amount {
		return Tx{}, &AccountUnderFundedError{Signer: signer, Required: amount}
	}
	l.balances[signer] = balance - amount
	return newTx(TxWithdraw, signer, amount), nil
}

// Send moves amount from sender to recipient as a single atomic step. Both
// accounts must already exist, and the move is validated end to end before
// either balance is touched: the sender must be able to afford it and the
// recipient's credit must not overflow. This pre-validates rather than
// withdrawing first and crediting after, so a failed Send never leaves
// funds withdrawn but stranded. A send to oneself leaves the balance
// unchanged.
func (l *Ledger) Send(sender, recipient string, amount uint64) (withdrawTx, depositTx Tx, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	recipientBalance, ok := l.balances[recipient]
	if !ok {
		return Tx{}, Tx{}, &AccountNotFoundError{Signer: recipient}
	}
	senderBalance, ok := l.balances[sender]
	if !ok {
		return Tx{}, Tx{}, &AccountNotFoundError{Signer: sender}
	}
	if senderBalance < amount {
		return Tx{}, Tx{}, &AccountUnderFundedError{Signer: sender, Required: amount}
	}
	if sender == recipient {
		return newTx(TxWithdraw, sender, amount), newTx(TxDeposit, recipient, amount), nil
	}
	credited := recipientBalance + amount
	if credited < recipientBalance {
		return Tx{}, Tx{}, &AccountOverFundedError{Signer: recipient, Amount: amount}
	}

	l.balances[sender] = senderBalance - amount
	l.balances[recipient] = credited

	return newTx(TxWithdraw, sender, amount), newTx(TxDeposit, recipient, amount), nil
}
