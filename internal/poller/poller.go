package poller

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/levankh14/stripe/internal/domain"
)

// StatusClient answers payment intent status queries against the backend.
type StatusClient interface {
	IntentStatus(ctx context.Context, intentID string) (domain.PaymentResult, error)
}

const (
	DefaultInterval = 500 * time.Millisecond
	DefaultTimeout  = 30 * time.Second
)

// StatusPoller repeatedly queries a payment intent until it reaches a
// terminal status or a wall-clock deadline passes.
type StatusPoller struct {
	client   StatusClient
	interval time.Duration
	timeout  time.Duration
	log      *zap.SugaredLogger
}

func New(client StatusClient, interval, timeout time.Duration, log *zap.SugaredLogger) *StatusPoller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &StatusPoller{client: client, interval: interval, timeout: timeout, log: log}
}

// Poll queries the intent status at a fixed interval until the status is
// terminal or the deadline passes. The deadline is measured against the loop
// start, so one slow request may overrun it by its own latency. On timeout the
// last response is returned for a final interpretation and a warning is
// logged; that is not an error. A canceled context stops the loop without
// delivering a result, including for a request already in flight.
func (p *StatusPoller) Poll(ctx context.Context, intentID string) (domain.PaymentResult, error) {
	deadline := time.Now().Add(p.timeout)
	var last domain.PaymentResult

	for {
		res, err := p.client.IntentStatus(ctx, intentID)
		if ctx.Err() != nil {
			return domain.PaymentResult{}, ctx.Err()
		}
		if err != nil {
			p.log.Warnf("intent status request failed: %v", err)
		} else {
			last = res
			if res.Intent != nil && res.Intent.Status.IsTerminal() {
				return last, nil
			}
		}

		if !time.Now().Before(deadline) {
			p.log.Warnf("polling timed out for intent %v", intentID)
			return last, nil
		}

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return domain.PaymentResult{}, ctx.Err()
		case <-timer.C:
		}
	}
}
