package checkout

import "github.com/levankh14/stripe/internal/domain"

// Event is an input consumed by the session loop. Events are handled one at
// a time in arrival order, never reentrantly.
type Event interface {
	isEvent()
}

// Submit is the payment form submission.
type Submit struct {
	Method string
	Name   string
	Email  string
	// CardToken carries the SDK-tokenized card when Method is "card".
	CardToken string
}

func (Submit) isEvent() {}

// MethodSelected re-labels the pay button for the newly selected method.
type MethodSelected struct {
	Method string
}

func (MethodSelected) isEvent() {}

// WalletAuthorized is emitted by the payment request button once the customer
// approves payment in the browser sheet. Complete must be invoked with the
// outcome of the first confirmation step before any further call runs, so the
// sheet can close.
type WalletAuthorized struct {
	PaymentMethodID string
	Complete        func(success bool)
}

func (WalletAuthorized) isEvent() {}

// pollFinished feeds a poll result back into the state machine.
type pollFinished struct {
	result domain.PaymentResult
}

func (pollFinished) isEvent() {}
