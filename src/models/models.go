package models

// AccountBalanceRequest is the body of POST /account.
type AccountBalanceRequest struct {
	Signer string `json:"signer"`
}

// AccountUpdateRequest is the body of POST /account/deposit and
// POST /account/withdraw.
type AccountUpdateRequest struct {
	Signer string `json:"signer"`
	Amount uint64 `json:"amount"`
}

// SendRequest is the body of POST /account/send.
type SendRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount uint64 `json:"amount"`
}

// ErrorResponse is the body returned for any non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MetricsResponse summarizes the venue's own domain counters, not
// infrastructure latency percentiles.
type MetricsResponse struct {
	OrdersReceived int64 `json:"orders_received"`
	TradesSettled  int64 `json:"trades_settled"`
	Deposits       int64 `json:"deposits"`
	Withdrawals    int64 `json:"withdrawals"`
	Sends          int64 `json:"sends"`
}
