package restapi

import (
	"github.com/ventaroai/ventaro-server/internal/app"
	"github.com/ventaroai/ventaro-server/internal/payment"
)

// paymentCreator holds the process-wide session creator so its reuse
// cache survives across requests.
var paymentCreator *payment.Creator

// RegisterRoutes wires every handler group into the web server. Must be
// called after webserver.Init.
func RegisterRoutes(appCtx app.AppContext) {
	cfg := appCtx.Config()
	paymentCreator = payment.NewCreator(
		payment.NewStripeGateway(cfg.Stripe.SecretKey),
		cfg.Stripe,
		cfg.Web.SiteURL,
	)

	registerAuthRoutes()
	registerProductRoutes()
	registerCheckoutRoutes()
	registerMembershipRoutes()
	registerEntitlementRoutes()
	registerNewsletterRoutes()
	registerAdminProductRoutes()
}

// OverridePaymentCreator swaps the session creator (used in tests)
func OverridePaymentCreator(creator *payment.Creator) {
	paymentCreator = creator
}
