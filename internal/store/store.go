package store

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/rs/xid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/levankh14/stripe/internal/config"
	"github.com/levankh14/stripe/internal/domain"
)

// Store talks to the backend order service and holds the current order
// snapshot. The snapshot is replaced on successful fetches only; a failed
// fetch leaves the previous one untouched.
type Store struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker[*resty.Response]
	log     *zap.SugaredLogger
	sfg     singleflight.Group // Prevents duplicate concurrent order fetches

	mu       sync.RWMutex
	snapshot domain.OrderSnapshot
}

func New(cfg *config.Config, log *zap.SugaredLogger) *Store {
	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   cfg.RequestTimeout,
	}
	client := resty.NewWithClient(httpClient).
		SetBaseURL(cfg.BackendURL).
		SetHeader("Content-Type", "application/json")

	breaker := gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
		Name: "backend",
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("circuit breaker %v changed state from %v to %v", name, from, to)
		},
	})

	return &Store{client: client, breaker: breaker, log: log}
}

type orderResponse struct {
	Order *domain.OrderSnapshot `json:"order"`
	Error string                `json:"error"`
}

type intentResponse struct {
	Intent *domain.PaymentIntent `json:"paymentIntent"`
	Error  string                `json:"error"`
}

// FetchOrder creates the order on the backend and replaces the held snapshot
// with the response. Concurrent calls collapse into a single request.
func (s *Store) FetchOrder(ctx context.Context, req *domain.OrderRequest) (*domain.OrderSnapshot, error) {
	v, err, _ := s.sfg.Do("order", func() (interface{}, error) {
		return s.fetchOrder(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.OrderSnapshot), nil
}

func (s *Store) fetchOrder(ctx context.Context, req *domain.OrderRequest) (*domain.OrderSnapshot, error) {
	var out orderResponse
	resp, err := s.breaker.Execute(func() (*resty.Response, error) {
		return s.client.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&out).
			SetError(&out).
			Post("/orders")
	})
	if err != nil {
		return nil, fmt.Errorf("order fetch failed: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("order fetch: %w: %s", ErrServer, out.Error)
	}
	if resp.IsError() || out.Order == nil {
		return nil, fmt.Errorf("order fetch: %w: status %s", ErrServer, resp.Status())
	}

	s.mu.Lock()
	s.snapshot = *out.Order
	s.mu.Unlock()
	return out.Order, nil
}

// CreatePaymentIntent asks the backend to open a payment intent for the held
// order. Requests carry an idempotency key so a retried call cannot open a
// second intent for the same click.
func (s *Store) CreatePaymentIntent(ctx context.Context) (*domain.PaymentIntent, error) {
	s.mu.RLock()
	orderID := s.snapshot.ID
	s.mu.RUnlock()
	if orderID == "" {
		return nil, ErrNoOrder
	}

	var out intentResponse
	resp, err := s.breaker.Execute(func() (*resty.Response, error) {
		return s.client.R().
			SetContext(ctx).
			SetHeader("Idempotency-Key", xid.New().String()).
			SetBody(map[string]string{"orderId": orderID}).
			SetResult(&out).
			SetError(&out).
			Post("/pay")
	})
	if err != nil {
		return nil, fmt.Errorf("create payment intent failed: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("create payment intent: %w: %s", ErrServer, out.Error)
	}
	if resp.IsError() || out.Intent == nil {
		return nil, fmt.Errorf("create payment intent: %w: status %s", ErrServer, resp.Status())
	}
	return out.Intent, nil
}

// IntentStatus retrieves the current status of a payment intent. The response
// is the same {paymentIntent, error} pair the confirmation calls produce.
func (s *Store) IntentStatus(ctx context.Context, intentID string) (domain.PaymentResult, error) {
	var out domain.PaymentResult
	resp, err := s.breaker.Execute(func() (*resty.Response, error) {
		return s.client.R().
			SetContext(ctx).
			SetResult(&out).
			SetError(&out).
			Get(fmt.Sprintf("/payment_intents/%s/status", intentID))
	})
	if err != nil {
		return domain.PaymentResult{}, fmt.Errorf("intent status failed: %w", err)
	}
	if resp.IsError() && out.Err == nil {
		return domain.PaymentResult{}, fmt.Errorf("intent status: %w: status %s", ErrServer, resp.Status())
	}
	return out, nil
}

// Total returns the amount of the held order in minor currency units.
func (s *Store) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Total
}

// Order returns a copy of the held snapshot.
func (s *Store) Order() domain.OrderSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
