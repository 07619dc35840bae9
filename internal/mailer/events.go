package mailer

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

// Event topics published by the HTTP layer and consumed here
const (
	TopicMembershipCheckout  = "membership:checkout"
	TopicNewsletterSubscribe = "newsletter:subscribe"
)

// MembershipCheckoutEvent is published after a membership checkout
// session is successfully created
type MembershipCheckoutEvent struct {
	Email    string
	TierName string
	Cycle    string
}

// Subscribe attaches the mailer's handlers to the event bus. Handlers run
// asynchronously so email latency never sits on the request path.
func (m *Mailer) Subscribe(bus EventBus.Bus) error {
	if err := bus.SubscribeAsync(TopicMembershipCheckout, m.onMembershipCheckout, false); err != nil {
		return err
	}
	return bus.SubscribeAsync(TopicNewsletterSubscribe, m.onNewsletterSubscribe, false)
}

// onMembershipCheckout fires the two notification emails. Failures are
// logged and swallowed; they never affect the checkout response.
func (m *Mailer) onMembershipCheckout(evt MembershipCheckoutEvent) {
	if m.adminAddr != "" {
		subject := fmt.Sprintf("New membership checkout: %s (%s)", evt.TierName, evt.Cycle)
		if err := m.Send(m.adminAddr, subject, membershipAdminBody(evt)); err != nil {
			zap.L().Warn("admin membership notification failed", zap.Error(err))
		}
	}
	if evt.Email != "" {
		subject := fmt.Sprintf("Your %s membership checkout", evt.TierName)
		if err := m.Send(evt.Email, subject, membershipUserBody(evt)); err != nil {
			zap.L().Warn("user membership notification failed",
				zap.String("to", evt.Email), zap.Error(err))
		}
	}
}

func (m *Mailer) onNewsletterSubscribe(email string) {
	if err := m.Send(email, "Welcome to the Ventaro newsletter", newsletterBody(email)); err != nil {
		zap.L().Warn("newsletter confirmation failed", zap.String("to", email), zap.Error(err))
	}
}
