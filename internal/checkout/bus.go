package checkout

import (
	evbus "github.com/asaskevich/EventBus"

	"github.com/levankh14/stripe/internal/domain"
)

// Topics published by BusSink.
const (
	TopicView             = "checkout:view"
	TopicButtonLabel      = "checkout:button"
	TopicMethods          = "checkout:methods"
	TopicCodeVerification = "checkout:code_verification"
)

// BusSink forwards state machine output onto an event bus so renderers can
// subscribe without the session knowing about them.
type BusSink struct {
	bus evbus.Bus
}

func NewBusSink(bus evbus.Bus) *BusSink {
	return &BusSink{bus: bus}
}

func (s *BusSink) Apply(view domain.ViewState) {
	s.bus.Publish(TopicView, view)
}

func (s *BusSink) SetButtonLabel(label string) {
	s.bus.Publish(TopicButtonLabel, label)
}

func (s *BusSink) ShowMethods(visible []string, tabs bool) {
	s.bus.Publish(TopicMethods, visible, tabs)
}

func (s *BusSink) PromptCodeVerification(source *domain.PaymentSource) {
	s.bus.Publish(TopicCodeVerification, source)
}
