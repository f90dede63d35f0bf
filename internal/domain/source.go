package domain

// SourceFlow describes how the customer completes authorization of a
// non-card payment source.
type SourceFlow string

const (
	FlowNone             SourceFlow = "none"
	FlowRedirect         SourceFlow = "redirect"
	FlowCodeVerification SourceFlow = "code_verification"
	FlowReceiver         SourceFlow = "receiver"
)

type SourceOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SourceMetadata links a source back to the payment intent it was created
// for. The key matches what the payment SDK stores on the wire.
type SourceMetadata struct {
	PaymentIntentID string `json:"paymentIntent"`
}

// PaymentSource is a tokenized non-card payment method. It is consumed once
// to pick the activation branch and never mutated afterwards.
type PaymentSource struct {
	ID           string         `json:"id"`
	ClientSecret string         `json:"client_secret"`
	Type         string         `json:"type"`
	Flow         SourceFlow     `json:"flow"`
	RedirectURL  string         `json:"redirect_url,omitempty"`
	Owner        SourceOwner    `json:"owner"`
	Metadata     SourceMetadata `json:"metadata"`
}
