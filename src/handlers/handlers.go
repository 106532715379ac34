package handlers

import (
	"errors"
	"strconv"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"centralbook/src/engine"
	"centralbook/src/ledger"
	"centralbook/src/models"
	"centralbook/src/platform"
)

func itoa(n uint64) string { return strconv.FormatUint(n, 10) }

// Handler wires the venue's HTTP surface onto a single platform.Platform.
// It also keeps the domain counters /metrics reports: how many orders,
// trades, and account operations the venue has actually processed, not
// infrastructure-level request latency.
type Handler struct {
	platform *platform.Platform

	ordersReceived atomic.Int64
	tradesSettled  atomic.Int64
	deposits       atomic.Int64
	withdrawals    atomic.Int64
	sends          atomic.Int64
}

func New(p *platform.Platform) *Handler {
	return &Handler{platform: p}
}

func ledgerStatus(err error) int {
	var notFound *ledger.AccountNotFoundError
	var underFunded *ledger.AccountUnderFundedError
	var overFunded *ledger.AccountOverFundedError
	switch {
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &underFunded), errors.As(err, &overFunded):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// logFailure logs a failed request with its status and whatever fields the
// caller has on hand (signer, amount, side, ...), then builds the JSON error
// body. 5xx is logged at Error, everything else at Warn.
func logFailure(c *fiber.Ctx, status int, err error, fields map[string]string) error {
	event := log.Warn()
	if status >= fiber.StatusInternalServerError {
		event = log.Error()
	}
	event = event.
		Str("path", c.Path()).
		Str("method", c.Method()).
		Int("status", status).
		Err(err)
	for k, v := range fields {
		event = event.Str(k, v)
	}
	event.Msg("Request failed")

	return c.Status(status).JSON(models.ErrorResponse{Error: err.Error()})
}

// AccountBalance handles POST /account. It replies with the balance as a
// plain text body, matching the CLI's expectation of a bare number.
func (h *Handler) AccountBalance(c *fiber.Ctx) error {
	var req models.AccountBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return logFailure(c, fiber.StatusBadRequest, err, nil)
	}

	balance, err := h.platform.BalanceOf(req.Signer)
	if err != nil {
		return logFailure(c, ledgerStatus(err), err, map[string]string{"signer": req.Signer})
	}
	return c.SendString(itoa(balance))
}

// Deposit handles POST /account/deposit.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	var req models.AccountUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return logFailure(c, fiber.StatusBadRequest, err, nil)
	}

	tx, err := h.platform.Deposit(req.Signer, req.Amount)
	if err != nil {
		return logFailure(c, ledgerStatus(err), err, map[string]string{"signer": req.Signer, "amount": itoa(req.Amount)})
	}
	h.deposits.Add(1)
	return c.Status(fiber.StatusCreated).JSON(tx)
}

// Withdraw handles POST /account/withdraw.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	var req models.AccountUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return logFailure(c, fiber.StatusBadRequest, err, nil)
	}

	tx, err := h.platform.Withdraw(req.Signer, req.Amount)
	if err != nil {
		return logFailure(c, ledgerStatus(err), err, map[string]string{"signer": req.Signer, "amount": itoa(req.Amount)})
	}
	h.withdrawals.Add(1)
	return c.Status(fiber.StatusCreated).JSON(tx)
}

// Send handles POST /account/send.
func (h *Handler) Send(c *fiber.Ctx) error {
	var req models.SendRequest
	if err := c.BodyParser(&req); err != nil {
		return logFailure(c, fiber.StatusBadRequest, err, nil)
	}

	withdrawTx, depositTx, err := h.platform.Send(req.From, req.To, req.Amount)
	if err != nil {
		return logFailure(c, ledgerStatus(err), err, map[string]string{
			"from": req.From, "to": req.To, "amount": itoa(req.Amount),
		})
	}
	h.sends.Add(1)
	return c.Status(fiber.StatusCreated).JSON([]ledger.Tx{withdrawTx, depositTx})
}

// SubmitOrder handles POST /order.
func (h *Handler) SubmitOrder(c *fiber.Ctx) error {
	var order engine.Order
	if err := c.BodyParser(&order); err != nil {
		return logFailure(c, fiber.StatusBadRequest, err, nil)
	}
	if err := validateOrder(order); err != nil {
		return logFailure(c, fiber.StatusBadRequest, err, map[string]string{
			"signer": order.Signer, "side": string(order.Side),
		})
	}

	h.ordersReceived.Add(1)
	receipt, err := h.platform.Order(order)
	if err != nil {
		return logFailure(c, ledgerStatus(err), err, map[string]string{
			"signer": order.Signer, "side": string(order.Side),
			"price": itoa(order.Price), "amount": itoa(order.Amount),
		})
	}
	h.tradesSettled.Add(int64(len(receipt.Matches)))
	return c.Status(fiber.StatusCreated).JSON(receipt)
}

// OrderBook handles GET /orderbook.
func (h *Handler) OrderBook(c *fiber.Ctx) error {
	return c.JSON(h.platform.OrderBook())
}

// TxLog handles GET /txlog.
func (h *Handler) TxLog(c *fiber.Ctx) error {
	return c.JSON(h.platform.TxLog())
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Metrics handles GET /metrics.
func (h *Handler) Metrics(c *fiber.Ctx) error {
	return c.JSON(models.MetricsResponse{
		OrdersReceived: h.ordersReceived.Load(),
		TradesSettled:  h.tradesSettled.Load(),
		Deposits:       h.deposits.Load(),
		Withdrawals:    h.withdrawals.Load(),
		Sends:          h.sends.Load(),
	})
}

type validationError struct {
	reason string
}

func (e *validationError) Error() string { return e.reason }

func validateOrder(order engine.Order) error {
	if order.Signer == "" {
		return &validationError{"signer is required"}
	}
	if order.Amount == 0 {
		return &validationError{"amount must be greater than zero"}
	}
	if order.Side != engine.Buy && order.Side != engine.Sell {
		return &validationError{"side must be Buy or Sell"}
	}
	return nil
}
