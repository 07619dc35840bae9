package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ventaroai/ventaro-server/internal/mailer"
	"github.com/ventaroai/ventaro-server/internal/membership"
	"github.com/ventaroai/ventaro-server/internal/webserver"
	"github.com/ventaroai/ventaro-server/pkg/metrics"
)

type membershipCheckoutPayload struct {
	TierID       string `json:"tier_id"`
	BillingCycle string `json:"billing_cycle"`
}

func registerMembershipRoutes() {
	webserver.PubGET("/membership/tiers", listTiers)
	webserver.ApiPOST("/membership/checkout", createMembershipCheckout)
}

func listTiers(c echo.Context) error {
	repo := membership.NewGormTierRepository(GetDB(c))
	tiers, err := repo.ListActive(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query tiers", err.Error())
	}
	return ok(c, tiers)
}

// createMembershipCheckout validates the tier and billing cycle, creates
// a subscription-mode session and fires the two best-effort notification
// emails. Email failures never change the HTTP response.
func createMembershipCheckout(c echo.Context) error {
	claims := webserver.CurrentUser(c)
	if claims == nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
	}

	cfg := GetApp(c).Config()
	if cfg.Stripe.SecretKey == "" {
		return fail(c, http.StatusInternalServerError, "CONFIG_ERROR", "Payment gateway not configured", nil)
	}

	var payload membershipCheckoutPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse membership request", err.Error())
	}
	if payload.TierID == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "tier_id is required", nil)
	}

	svc := membership.NewService(membership.NewGormTierRepository(GetDB(c)))
	tier, priceID, err := svc.ResolveCheckout(c.Request().Context(), payload.TierID, payload.BillingCycle)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_TIER", err.Error(), nil)
	}

	session, err := paymentCreator.CreateSubscriptionSession(
		priceID, claims.Email, tier.ID, payload.BillingCycle,
		c.Request().Header.Get("Origin"))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "GATEWAY_ERROR", "Failed to create membership session", err.Error())
	}

	metrics.CounterInc(metrics.MembershipCheckout)
	GetApp(c).Bus().Publish(mailer.TopicMembershipCheckout, mailer.MembershipCheckoutEvent{
		Email:    claims.Email,
		TierName: tier.Name,
		Cycle:    payload.BillingCycle,
	})

	return ok(c, session)
}
