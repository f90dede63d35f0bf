package main

import (
	"context"
	"os/signal"
	"syscall"

	evbus "github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/levankh14/stripe/internal/checkout"
	"github.com/levankh14/stripe/internal/config"
	"github.com/levankh14/stripe/internal/domain"
	"github.com/levankh14/stripe/internal/logging"
	"github.com/levankh14/stripe/internal/payments"
	"github.com/levankh14/stripe/internal/poller"
	"github.com/levankh14/stripe/internal/store"
)

func main() {
	logger := logging.NewLogger()
	defer func() { _ = logger.Sync() }()
	logger.Info("checkout starting...")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orderStore := store.New(cfg, logger)
	order, err := orderStore.FetchOrder(ctx, demoOrder())
	if err != nil {
		logger.Fatalf("order fetch: %v", err)
	}
	logger.Infow("order loaded",
		"order_id", order.ID,
		"total", orderStore.FormatPrice(order.Total, order.Currency))

	sdk := payments.NewStripeClient(cfg.PublishableKey, logger)
	statusPoller := poller.New(orderStore, cfg.PollInterval, cfg.PollTimeout, logger)

	bus := evbus.New()
	subscribeRenderer(bus, logger)

	session := checkout.NewSession(
		cfg,
		orderStore,
		sdk,
		statusPoller,
		checkout.NewBusSink(bus),
		func(url string) { logger.Infow("redirecting customer", "url", url) },
		logger,
	)

	if err := session.Start(ctx, cfg.PageURL); err != nil {
		logger.Fatalf("checkout start: %v", err)
	}
	session.Run(ctx)
	logger.Info("checkout stopped")
}

// subscribeRenderer attaches a console renderer to the sink topics. A real
// frontend would subscribe its DOM bindings here instead.
func subscribeRenderer(bus evbus.Bus, logger *zap.SugaredLogger) {
	must := func(err error) {
		if err != nil {
			logger.Fatalf("renderer subscription: %v", err)
		}
	}
	must(bus.Subscribe(checkout.TopicView, func(v domain.ViewState) {
		logger.Infow("view",
			"stage", v.Stage, "receiver", v.Receiver, "note", v.Note, "error", v.ErrorMessage)
	}))
	must(bus.Subscribe(checkout.TopicButtonLabel, func(label string) {
		logger.Infow("pay button", "label", label)
	}))
	must(bus.Subscribe(checkout.TopicMethods, func(visible []string, tabs bool) {
		logger.Infow("payment methods", "visible", visible, "tabs", tabs)
	}))
	must(bus.Subscribe(checkout.TopicCodeVerification, func(src *domain.PaymentSource) {
		logger.Infow("verification code required", "source", src.ID)
	}))
}

// demoOrder mirrors the sample cart the demo storefront submits.
func demoOrder() *domain.OrderRequest {
	return &domain.OrderRequest{
		User: domain.OrderUser{
			FirstName: "Radoslaw",
			LastName:  "Peew",
			Contact:   "+359888788009",
		},
		Tip: 100,
		Products: []domain.OrderProduct{
			{
				ID:    9,
				Count: 5,
				Notes: "only fresh tomatos ;)",
				Addons: []domain.OrderAddon{
					{ID: 8, Count: 1, CategoryID: 7},
					{ID: 10, Count: 1, CategoryID: 5},
				},
			},
			{
				ID:     7,
				Count:  1,
				Pointz: true,
				Addons: []domain.OrderAddon{
					{ID: 8, Count: 1, CategoryID: 6},
				},
			},
		},
	}
}
