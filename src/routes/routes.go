package routes

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"centralbook/src/config"
	"centralbook/src/handlers"
	"centralbook/src/middleware"
)

// Per-route rate-limit weights. Admitting an order or moving funds is the
// expensive, risk-bearing operation on this venue, so those routes are
// charged extra against a client's budget on top of the baseline read cost;
// a client hammering /order or /account/send exhausts its budget far
// sooner than one only polling /orderbook or /txlog.
const (
	weightRead          = 1
	weightOrderEntry    = 4
	weightFundsTransfer = 4
)

// SetupRoutes wires the venue's middleware chain and HTTP surface onto app.
// CORS runs first, then ServiceAvailability, so maintenance mode and overload
// shedding happen before any other work; the request logger and the
// optional rate limiter sit behind it. Every handler then runs under one
// process-wide lock.
func SetupRoutes(app *fiber.App, h *handlers.Handler, cfg *config.Config) {
	app.Use(cors.New(cors.Config{AllowOrigins: "*"}))

	serviceAvailability := middleware.NewServiceAvailability(cfg.MaxConcurrentRequests, cfg.MaintenanceMode)
	app.Use(serviceAvailability.Middleware())
	app.Use(middleware.RequestLogger(false))

	if !cfg.RateLimitDisabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
		app.Use(rateLimiter.Middleware(weightRead))
		app.Use("/order", rateLimiter.Middleware(weightOrderEntry))
		app.Use("/account/send", rateLimiter.Middleware(weightFundsTransfer))
	}

	// The engine and the platform's journal do no locking of their own, so
	// handlers are serialized behind a single mutex held for the whole call.
	var platformMu sync.Mutex
	app.Use(func(c *fiber.Ctx) error {
		platformMu.Lock()
		defer platformMu.Unlock()
		return c.Next()
	})

	app.Get("/health", h.HealthCheck)
	app.Get("/metrics", h.Metrics)

	app.Post("/account", h.AccountBalance)
	app.Post("/account/deposit", h.Deposit)
	app.Post("/account/withdraw", h.Withdraw)
	app.Post("/account/send", h.Send)

	app.Post("/order", h.SubmitOrder)
	app.Get("/orderbook", h.OrderBook)
	app.Get("/txlog", h.TxLog)
}
