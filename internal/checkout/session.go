package checkout

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/levankh14/stripe/internal/config"
	"github.com/levankh14/stripe/internal/domain"
	"github.com/levankh14/stripe/internal/payments"
	"github.com/levankh14/stripe/internal/poller"
)

const statementDescriptor = "Stripe Payments Demo"

// Notes shown on the confirmation screen. Succeeded and processing intents
// share the success stage and differ only in this text.
const (
	noteReceiptSent         = "We just sent your receipt to your email address, and your items will be on their way shortly."
	notePendingConfirmation = "We'll send your receipt and ship your items as soon as your payment is confirmed."
)

// OrderStore is the slice of the order store the session needs.
type OrderStore interface {
	CreatePaymentIntent(ctx context.Context) (*domain.PaymentIntent, error)
	Total() int64
	FormatPrice(amount int64, currency string) string
}

// Session is the checkout state machine. It owns the single ViewState and the
// held payment intent; both are written only from its own transition logic.
// All transitions are serialized through the event loop, so no branch ever
// races another for the UI state.
type Session struct {
	cfg      *config.Config
	store    OrderStore
	sdk      payments.Client
	poller   *poller.StatusPoller
	sink     Sink
	navigate func(url string)
	log      *zap.SugaredLogger

	pageURL string
	intent  *domain.PaymentIntent
	view    domain.ViewState
	events  chan Event
}

func NewSession(
	cfg *config.Config,
	store OrderStore,
	sdk payments.Client,
	statusPoller *poller.StatusPoller,
	sink Sink,
	navigate func(url string),
	log *zap.SugaredLogger,
) *Session {
	if navigate == nil {
		navigate = func(string) {}
	}
	return &Session{
		cfg:      cfg,
		store:    store,
		sdk:      sdk,
		poller:   statusPoller,
		sink:     sink,
		navigate: navigate,
		log:      log,
		view:     domain.ViewState{Stage: domain.StageLoading},
		events:   make(chan Event, 16),
	}
}

// Start runs the entry decision for the page the customer landed on and
// leaves the session ready to consume events.
func (s *Session) Start(ctx context.Context, pageURL string) error {
	s.pageURL = pageURL
	u, err := url.Parse(pageURL)
	if err != nil {
		return fmt.Errorf("invalid page url: %w", err)
	}
	q := u.Query()

	switch {
	case q.Get("source") != "" && q.Get("client_secret") != "":
		// Returning from a redirect-based payment method. Rebuild state from
		// the source and watch the intent it references, never the source
		// itself.
		s.apply(domain.ViewState{Stage: domain.StageProcessing})
		src, err := s.sdk.RetrieveSource(ctx, q.Get("source"), q.Get("client_secret"))
		if err != nil {
			s.apply(domain.ViewState{Stage: domain.StageError})
			return fmt.Errorf("retrieve source: %w", err)
		}
		s.startPolling(ctx, src.Metadata.PaymentIntentID)

	case q.Get("payment_intent") != "":
		// Returning from a redirect-based card confirmation, e.g. 3-D Secure.
		s.apply(domain.ViewState{Stage: domain.StageProcessing})
		s.startPolling(ctx, q.Get("payment_intent"))

	default:
		s.apply(domain.ViewState{Stage: domain.StageCheckout})
		intent, err := s.store.CreatePaymentIntent(ctx)
		if err != nil {
			return fmt.Errorf("create payment intent: %w", err)
		}
		s.intent = intent
		s.showMethods()
	}
	return nil
}

// Run consumes session events until the context is canceled. Events are
// processed strictly one at a time, so every transition sees the previous one
// completed.
func (s *Session) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.events:
			s.handle(ctx, ev)
		}
	}
}

// Dispatch queues an event for the session loop.
func (s *Session) Dispatch(ev Event) {
	s.events <- ev
}

// View returns the current UI state.
func (s *Session) View() domain.ViewState {
	return s.view
}

// Intent returns the payment intent held for the form submission, if any.
func (s *Session) Intent() *domain.PaymentIntent {
	return s.intent
}

func (s *Session) handle(ctx context.Context, ev Event) {
	switch ev := ev.(type) {
	case Submit:
		s.handleSubmit(ctx, ev)
	case MethodSelected:
		s.sink.SetButtonLabel(s.buttonLabel(ev.Method))
	case WalletAuthorized:
		s.handleWallet(ctx, ev)
	case pollFinished:
		s.applyResult(ev.result)
	}
}

func (s *Session) handleSubmit(ctx context.Context, ev Submit) {
	if s.intent == nil {
		s.log.Errorw("submit without a held payment intent", "method", ev.Method)
		s.apply(domain.ViewState{Stage: domain.StageError})
		return
	}

	if ev.Method == "card" {
		res, err := s.sdk.ConfirmCardPayment(ctx, s.intent.ClientSecret, &payments.ConfirmParams{
			CardToken:     ev.CardToken,
			BillingName:   ev.Name,
			BillingEmail:  ev.Email,
			HandleActions: true,
		})
		if err != nil {
			s.log.Errorw("card confirmation failed", "err", err)
			s.apply(domain.ViewState{Stage: domain.StageError})
			return
		}
		s.applyResult(res)
		return
	}

	src, err := s.sdk.CreateSource(ctx, &payments.SourceRequest{
		Type:                ev.Method,
		Amount:              s.intent.Amount,
		Currency:            s.intent.Currency,
		Owner:               domain.SourceOwner{Name: ev.Name, Email: ev.Email},
		ReturnURL:           s.pageURL,
		StatementDescriptor: statementDescriptor,
		Metadata:            domain.SourceMetadata{PaymentIntentID: s.intent.ID},
	})
	if err != nil {
		s.log.Errorw("source creation failed", "method", ev.Method, "err", err)
		s.apply(domain.ViewState{Stage: domain.StageError})
		return
	}
	s.activateSource(ctx, src)
}

func (s *Session) activateSource(ctx context.Context, src *domain.PaymentSource) {
	switch src.Flow {
	case domain.FlowNone:
		// Chargeable right away; the SDK takes it from here.
	case domain.FlowRedirect:
		s.sink.SetButtonLabel("Redirecting…")
		s.navigate(src.RedirectURL)
	case domain.FlowCodeVerification:
		s.sink.PromptCodeVerification(src)
	case domain.FlowReceiver:
		// The customer is shown remittance details; confirmation arrives
		// asynchronously, so watch the intent the source references.
		s.apply(domain.ViewState{Stage: domain.StageSuccess, Receiver: true})
		s.startPolling(ctx, src.Metadata.PaymentIntentID)
	default:
		s.log.Warnw("unknown source flow", "source", src.ID, "flow", src.Flow)
	}
}

// handleWallet runs the two-step confirmation of the payment request button.
// The first step skips action handling so the browser payment sheet can
// close; its outcome must reach the widget callback before anything else
// runs. Only an error-free first step is followed by the full confirmation,
// and only the full confirmation feeds the interpretation rule.
func (s *Session) handleWallet(ctx context.Context, ev WalletAuthorized) {
	if s.intent == nil {
		s.log.Errorw("wallet payment without a held payment intent")
		ev.Complete(false)
		s.apply(domain.ViewState{Stage: domain.StageError})
		return
	}

	first, err := s.sdk.ConfirmCardPayment(ctx, s.intent.ClientSecret, &payments.ConfirmParams{
		PaymentMethodID: ev.PaymentMethodID,
	})
	if err != nil {
		ev.Complete(false)
		s.log.Errorw("wallet confirmation failed", "err", err)
		s.apply(domain.ViewState{Stage: domain.StageError})
		return
	}
	if first.Err != nil {
		ev.Complete(false)
		s.applyResult(first)
		return
	}
	ev.Complete(true)

	second, err := s.sdk.ConfirmCardPayment(ctx, s.intent.ClientSecret, nil)
	if err != nil {
		s.log.Errorw("wallet confirmation failed", "err", err)
		s.apply(domain.ViewState{Stage: domain.StageError})
		return
	}
	s.applyResult(second)
}

func (s *Session) startPolling(ctx context.Context, intentID string) {
	go func() {
		res, err := s.poller.Poll(ctx, intentID)
		if err != nil {
			// Canceled. Any in-flight result is discarded without a callback.
			s.log.Debugf("polling stopped: %v", err)
			return
		}
		s.Dispatch(pollFinished{result: res})
	}()
}

// applyResult maps a {paymentIntent, error} pair onto the UI state. Shared by
// card confirmations, wallet confirmations and poll results.
func (s *Session) applyResult(res domain.PaymentResult) {
	switch {
	case res.Err != nil:
		s.apply(domain.ViewState{Stage: domain.StageError, ErrorMessage: res.Err.Message})
	case res.Intent == nil:
		s.apply(domain.ViewState{Stage: domain.StageError})
	case res.Intent.Status == domain.StatusSucceeded:
		// Fully confirmed by the bank.
		s.apply(domain.ViewState{Stage: domain.StageSuccess, Note: noteReceiptSent})
	case res.Intent.Status == domain.StatusProcessing:
		// Bank confirmation pending. Same stage as succeeded, different note;
		// the receiver variant stays up until the confirmation lands.
		s.apply(domain.ViewState{
			Stage:    domain.StageSuccess,
			Receiver: s.view.Receiver,
			Note:     notePendingConfirmation,
		})
	default:
		s.apply(domain.ViewState{Stage: domain.StageError})
	}
}

func (s *Session) apply(view domain.ViewState) {
	s.view = view
	s.sink.Apply(view)
}

func (s *Session) buttonLabel(methodID string) string {
	return ButtonLabel(methodID, s.store.FormatPrice(s.store.Total(), s.cfg.Currency))
}

func (s *Session) showMethods() {
	visible := VisibleMethods(s.cfg.PaymentMethods, s.cfg.Country, s.cfg.Currency)
	s.sink.ShowMethods(visible, ShowTabs(visible))
	if len(visible) > 0 {
		s.sink.SetButtonLabel(s.buttonLabel(visible[0]))
	}
}
