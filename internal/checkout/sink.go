package checkout

import "github.com/levankh14/stripe/internal/domain"

// Sink receives state machine output for rendering. Implementations must be
// a pure function of the values passed in; the session never reads back from
// its sink.
type Sink interface {
	Apply(view domain.ViewState)
	SetButtonLabel(label string)
	ShowMethods(visible []string, tabs bool)
	PromptCodeVerification(source *domain.PaymentSource)
}
