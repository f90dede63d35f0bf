package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/levankh14/stripe/internal/config"
	"github.com/levankh14/stripe/internal/domain"
	"github.com/levankh14/stripe/internal/payments"
	"github.com/levankh14/stripe/internal/poller"
)

// fakeStore implements OrderStore for testing
type fakeStore struct {
	Intent    *domain.PaymentIntent
	CreateErr error
	Amount    int64
}

func (f *fakeStore) CreatePaymentIntent(_ context.Context) (*domain.PaymentIntent, error) {
	return f.Intent, f.CreateErr
}

func (f *fakeStore) Total() int64 {
	return f.Amount
}

func (f *fakeStore) FormatPrice(amount int64, _ string) string {
	return fmt.Sprintf("$%.2f", float64(amount)/100)
}

// fakeSDK implements payments.Client and records every call. Sequence keeps
// the global call order so tests can check the wallet two-step contract.
type fakeSDK struct {
	mu sync.Mutex

	ConfirmResults []domain.PaymentResult
	ConfirmErr     error
	ConfirmCalls   []*payments.ConfirmParams

	Source     *domain.PaymentSource
	SourceErr  error
	SourceReqs []*payments.SourceRequest

	Retrieved     *domain.PaymentSource
	RetrieveErr   error
	RetrieveCalls [][2]string

	Sequence []string
}

func (f *fakeSDK) record(entry string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sequence = append(f.Sequence, entry)
}

func (f *fakeSDK) ConfirmCardPayment(_ context.Context, _ string, params *payments.ConfirmParams) (domain.PaymentResult, error) {
	f.mu.Lock()
	f.ConfirmCalls = append(f.ConfirmCalls, params)
	n := len(f.ConfirmCalls)
	f.Sequence = append(f.Sequence, "confirm")
	f.mu.Unlock()

	if f.ConfirmErr != nil {
		return domain.PaymentResult{}, f.ConfirmErr
	}
	idx := n - 1
	if idx >= len(f.ConfirmResults) {
		idx = len(f.ConfirmResults) - 1
	}
	return f.ConfirmResults[idx], nil
}

func (f *fakeSDK) CreateSource(_ context.Context, req *payments.SourceRequest) (*domain.PaymentSource, error) {
	f.mu.Lock()
	f.SourceReqs = append(f.SourceReqs, req)
	f.Sequence = append(f.Sequence, "create_source")
	f.mu.Unlock()
	return f.Source, f.SourceErr
}

func (f *fakeSDK) RetrieveSource(_ context.Context, id, clientSecret string) (*domain.PaymentSource, error) {
	f.mu.Lock()
	f.RetrieveCalls = append(f.RetrieveCalls, [2]string{id, clientSecret})
	f.Sequence = append(f.Sequence, "retrieve_source")
	f.mu.Unlock()
	return f.Retrieved, f.RetrieveErr
}

// fakeStatusClient implements poller.StatusClient with a scripted status
// progression; the last status repeats once the script runs out.
type fakeStatusClient struct {
	mu       sync.Mutex
	Statuses []domain.IntentStatus
	Err      error
	IDs      []string
}

func (c *fakeStatusClient) IntentStatus(_ context.Context, intentID string) (domain.PaymentResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.IDs = append(c.IDs, intentID)
	if c.Err != nil {
		return domain.PaymentResult{}, c.Err
	}
	idx := len(c.IDs) - 1
	if idx >= len(c.Statuses) {
		idx = len(c.Statuses) - 1
	}
	return domain.PaymentResult{
		Intent: &domain.PaymentIntent{ID: intentID, Status: c.Statuses[idx]},
	}, nil
}

func (c *fakeStatusClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.IDs)
}

func (c *fakeStatusClient) PolledIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.IDs))
	copy(out, c.IDs)
	return out
}

// fakeSink records everything the session renders.
type fakeSink struct {
	mu      sync.Mutex
	Views   []domain.ViewState
	Labels  []string
	Visible []string
	Tabs    bool
	Prompts []*domain.PaymentSource
}

func (s *fakeSink) Apply(view domain.ViewState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Views = append(s.Views, view)
}

func (s *fakeSink) SetButtonLabel(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Labels = append(s.Labels, label)
}

func (s *fakeSink) ShowMethods(visible []string, tabs bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Visible = visible
	s.Tabs = tabs
}

func (s *fakeSink) PromptCodeVerification(source *domain.PaymentSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Prompts = append(s.Prompts, source)
}

func (s *fakeSink) LastView() (domain.ViewState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Views) == 0 {
		return domain.ViewState{}, false
	}
	return s.Views[len(s.Views)-1], true
}

func (s *fakeSink) LastLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Labels) == 0 {
		return ""
	}
	return s.Labels[len(s.Labels)-1]
}

func testConfig() *config.Config {
	return &config.Config{
		BackendURL:     "http://localhost:0",
		PublishableKey: "pk_test_123",
		PageURL:        "http://localhost:8000/checkout",
		Country:        "US",
		Currency:       "usd",
		PaymentMethods: []string{"card"},
		RequestTimeout: time.Second,
		PollInterval:   2 * time.Millisecond,
		PollTimeout:    200 * time.Millisecond,
	}
}

// newTestSession wires a session with fakes and a fast poller.
func newTestSession(cfg *config.Config, st *fakeStore, sdk *fakeSDK, sc *fakeStatusClient, navigate func(string)) (*Session, *fakeSink) {
	sink := &fakeSink{}
	log := zap.NewNop().Sugar()
	p := poller.New(sc, cfg.PollInterval, cfg.PollTimeout, log)
	return NewSession(cfg, st, sdk, p, sink, navigate, log), sink
}

func heldIntent() *domain.PaymentIntent {
	return &domain.PaymentIntent{
		ID:           "pi_42",
		ClientSecret: "pi_42_secret_abc",
		Amount:       1050,
		Currency:     "usd",
		Status:       domain.StatusRequiresPaymentMethod,
	}
}
