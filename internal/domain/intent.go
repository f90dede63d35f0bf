package domain

type IntentStatus string

const (
	StatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	StatusRequiresConfirmation  IntentStatus = "requires_confirmation"
	StatusRequiresAction        IntentStatus = "requires_action"
	StatusProcessing            IntentStatus = "processing"
	StatusSucceeded             IntentStatus = "succeeded"
	StatusCanceled              IntentStatus = "canceled"
)

// IsTerminal reports whether no further status change is expected without a
// new customer action. These are the statuses the poller stops on.
func (s IntentStatus) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusProcessing || s == StatusCanceled
}

// String representation (for logging)
func (s IntentStatus) String() string {
	return string(s)
}

// PaymentIntent is a server-side record of a payment attempt. Only Status
// changes over its lifetime; every other field is set at creation.
type PaymentIntent struct {
	ID           string       `json:"id"`
	ClientSecret string       `json:"client_secret"`
	Amount       int64        `json:"amount"`
	Currency     string       `json:"currency"`
	Status       IntentStatus `json:"status"`
}

// PaymentError carries the human-readable failure reported by the payment
// SDK, e.g. a declined card.
type PaymentError struct {
	Message string `json:"message"`
}

func (e *PaymentError) Error() string {
	return e.Message
}

// PaymentResult is the {paymentIntent, error} pair returned by confirmations
// and status polls.
type PaymentResult struct {
	Intent *PaymentIntent `json:"paymentIntent"`
	Err    *PaymentError  `json:"error,omitempty"`
}
