package payments

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/levankh14/stripe/internal/domain"
)

const defaultAPIBase = "https://api.stripe.com/v1"

// StripeClient drives the payment API the way the browser SDK does, with the
// publishable key and intent client secrets. Follow-up actions that need a
// browser (3-D Secure challenges) cannot run here; intents requiring one come
// back with their requires_action status untouched.
type StripeClient struct {
	client *resty.Client
	key    string
	log    *zap.SugaredLogger
}

func NewStripeClient(publishableKey string, log *zap.SugaredLogger) *StripeClient {
	httpClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	client := resty.NewWithClient(httpClient).SetBaseURL(defaultAPIBase)
	return &StripeClient{client: client, key: publishableKey, log: log}
}

// SetBaseURL points the client at a different API host. Used by tests.
func (c *StripeClient) SetBaseURL(url string) {
	c.client.SetBaseURL(url)
}

// intentIDFromSecret extracts the intent id from a client secret of the form
// "pi_123_secret_456".
func intentIDFromSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret")
	if !found || id == "" {
		return "", fmt.Errorf("malformed client secret")
	}
	return id, nil
}

type wireIntent struct {
	domain.PaymentIntent
	Error *domain.PaymentError `json:"error"`
}

func (c *StripeClient) ConfirmCardPayment(ctx context.Context, clientSecret string, params *ConfirmParams) (domain.PaymentResult, error) {
	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return domain.PaymentResult{}, err
	}

	form := map[string]string{
		"key":           c.key,
		"client_secret": clientSecret,
	}
	if params != nil {
		if params.PaymentMethodID != "" {
			form["payment_method"] = params.PaymentMethodID
		}
		if params.CardToken != "" {
			form["payment_method_data[type]"] = "card"
			form["payment_method_data[card][token]"] = params.CardToken
		}
		if params.BillingName != "" {
			form["payment_method_data[billing_details][name]"] = params.BillingName
		}
		if params.BillingEmail != "" {
			form["payment_method_data[billing_details][email]"] = params.BillingEmail
		}
	}

	var out wireIntent
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&out).
		SetError(&out).
		Post(fmt.Sprintf("/payment_intents/%s/confirm", intentID))
	if err != nil {
		return domain.PaymentResult{}, fmt.Errorf("confirm payment intent failed: %w", err)
	}
	if out.Error != nil {
		return domain.PaymentResult{Err: out.Error}, nil
	}
	if resp.IsError() {
		return domain.PaymentResult{}, fmt.Errorf("confirm payment intent: unexpected status %s", resp.Status())
	}
	intent := out.PaymentIntent
	return domain.PaymentResult{Intent: &intent}, nil
}

type wireSource struct {
	ID           string             `json:"id"`
	ClientSecret string             `json:"client_secret"`
	Type         string             `json:"type"`
	Flow         domain.SourceFlow  `json:"flow"`
	Owner        domain.SourceOwner `json:"owner"`
	Redirect     *struct {
		URL string `json:"url"`
	} `json:"redirect"`
	Metadata map[string]string    `json:"metadata"`
	Error    *domain.PaymentError `json:"error"`
}

func (w *wireSource) toDomain() *domain.PaymentSource {
	src := &domain.PaymentSource{
		ID:           w.ID,
		ClientSecret: w.ClientSecret,
		Type:         w.Type,
		Flow:         w.Flow,
		Owner:        w.Owner,
		Metadata:     domain.SourceMetadata{PaymentIntentID: w.Metadata["paymentIntent"]},
	}
	if w.Redirect != nil {
		src.RedirectURL = w.Redirect.URL
	}
	return src
}

func (c *StripeClient) CreateSource(ctx context.Context, req *SourceRequest) (*domain.PaymentSource, error) {
	form := map[string]string{
		"key":                     c.key,
		"type":                    req.Type,
		"amount":                  fmt.Sprint(req.Amount),
		"currency":                req.Currency,
		"owner[name]":             req.Owner.Name,
		"owner[email]":            req.Owner.Email,
		"redirect[return_url]":    req.ReturnURL,
		"statement_descriptor":    req.StatementDescriptor,
		"metadata[paymentIntent]": req.Metadata.PaymentIntentID,
	}

	var out wireSource
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&out).
		SetError(&out).
		Post("/sources")
	if err != nil {
		return nil, fmt.Errorf("create source failed: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("create source: %s", out.Error.Message)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create source: unexpected status %s", resp.Status())
	}
	return out.toDomain(), nil
}

func (c *StripeClient) RetrieveSource(ctx context.Context, id, clientSecret string) (*domain.PaymentSource, error) {
	var out wireSource
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":           c.key,
			"client_secret": clientSecret,
		}).
		SetResult(&out).
		SetError(&out).
		Get(fmt.Sprintf("/sources/%s", id))
	if err != nil {
		return nil, fmt.Errorf("retrieve source failed: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("retrieve source: %s", out.Error.Message)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("retrieve source: unexpected status %s", resp.Status())
	}
	return out.toDomain(), nil
}
