package payments

import (
	"context"

	"github.com/levankh14/stripe/internal/domain"
)

// ConfirmParams selects how a payment intent confirmation is performed.
// A nil ConfirmParams means a full confirmation of the intent as it stands,
// letting the SDK run any required follow-up action.
type ConfirmParams struct {
	// PaymentMethodID confirms with an existing payment method, as produced
	// by the payment request button.
	PaymentMethodID string
	// CardToken confirms with card details the SDK elements collected.
	CardToken    string
	BillingName  string
	BillingEmail string
	// HandleActions lets the SDK run a required follow-up action such as a
	// 3-D Secure challenge. The wallet flow leaves it off for its first step
	// so the browser payment sheet can close before any challenge starts.
	HandleActions bool
}

// SourceRequest carries the common data for creating a non-card payment
// source.
type SourceRequest struct {
	Type                string                `json:"type"`
	Amount              int64                 `json:"amount"`
	Currency            string                `json:"currency"`
	Owner               domain.SourceOwner    `json:"owner"`
	ReturnURL           string                `json:"return_url"`
	StatementDescriptor string                `json:"statement_descriptor"`
	Metadata            domain.SourceMetadata `json:"metadata"`
}

// Client is the capability surface of the payment SDK the checkout session
// consumes. Card tokenization, 3-D Secure and redirect handling live behind
// it. Confirmation calls return transport failures as the error; declines
// arrive inside the PaymentResult.
type Client interface {
	ConfirmCardPayment(ctx context.Context, clientSecret string, params *ConfirmParams) (domain.PaymentResult, error)
	CreateSource(ctx context.Context, req *SourceRequest) (*domain.PaymentSource, error)
	RetrieveSource(ctx context.Context, id, clientSecret string) (*domain.PaymentSource, error)
}
