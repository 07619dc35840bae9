package payment

import (
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
)

// Gateway abstracts the hosted-checkout API of the payment provider
type Gateway interface {
	CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeGateway calls Stripe's checkout-session API. The API key is set
// globally at application startup.
type StripeGateway struct{}

func NewStripeGateway(secretKey string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{}
}

func (g *StripeGateway) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}
