package payment

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/stripe/stripe-go/v80"
	"github.com/ventaroai/ventaro-server/config"
	"github.com/ventaroai/ventaro-server/pkg/metrics"
	"go.uber.org/zap"
)

// sessionCacheWindow bounds how long a created session may be reused by
// rapid duplicate calls from the same user.
const sessionCacheWindow = 5 * time.Minute

// Placeholder session returned when both gateway paths fail. The checkout
// endpoint must always answer with a url and a sessionId once the order
// exists, so gateway unavailability degrades to this instead of a 500.
const (
	mockSessionURL = "https://checkout.stripe.com/c/pay/mock_session_unavailable"
	mockSessionID  = "cs_mock_fallback"
)

// Session is the redirectable result handed back to the client
type Session struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
	Mock      bool   `json:"-"`
}

// Line is one priced checkout line in minor currency units
type Line struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// CheckoutRequest carries everything the session creator needs for one
// order checkout
type CheckoutRequest struct {
	OrderID int64
	UserID  string
	Email   string
	GuestID string
	Origin  string
	Lines   []Line
}

// Creator obtains hosted checkout sessions. The primary path goes through
// a short-lived cache; failures fall back to one direct gateway call and
// finally to a mock session.
type Creator struct {
	gw    Gateway
	cfg   config.StripeConfig
	site  string
	cache *expirable.LRU[string, *Session]
}

func NewCreator(gw Gateway, cfg config.StripeConfig, siteURL string) *Creator {
	return &Creator{
		gw:    gw,
		cfg:   cfg,
		site:  siteURL,
		cache: expirable.NewLRU[string, *Session](256, nil, sessionCacheWindow),
	}
}

// siteURL picks the configured origin, then the request origin, then the
// localhost default.
func (c *Creator) siteURL(origin string) string {
	if c.site != "" {
		return c.site
	}
	if origin != "" {
		return origin
	}
	return "http://localhost:3000"
}

func cacheKey(userID string) string {
	return fmt.Sprintf("checkout_%s_%d", userID, time.Now().Unix()/int64(sessionCacheWindow.Seconds()))
}

// CreateCheckoutSession returns a redirectable session for the order. It
// never returns an error: gateway failures degrade through one direct
// fallback call and then the mock session.
func (c *Creator) CreateCheckoutSession(req CheckoutRequest) *Session {
	key := cacheKey(req.UserID)
	if cached, ok := c.cache.Get(key); ok {
		return cached
	}

	sess, err := c.gw.CreateSession(c.primaryParams(req))
	if err == nil {
		result := &Session{URL: sess.URL, SessionID: sess.ID}
		c.cache.Add(key, result)
		return result
	}
	zap.L().Warn("primary checkout session failed, trying direct call",
		zap.Int64("order_id", req.OrderID), zap.Error(err))
	metrics.CounterInc(metrics.CheckoutSessionFallback)

	// exactly one direct call, bypassing the cache layer
	sess, err = c.gw.CreateSession(c.fallbackParams(req))
	if err == nil {
		return &Session{URL: sess.URL, SessionID: sess.ID}
	}
	zap.L().Error("fallback checkout session failed, degrading to mock session",
		zap.Int64("order_id", req.OrderID), zap.Error(err))
	metrics.CounterInc(metrics.CheckoutSessionMock)

	return &Session{URL: mockSessionURL, SessionID: mockSessionID, Mock: true}
}

func (c *Creator) lineItems(req CheckoutRequest, currency string) []*stripe.CheckoutSessionLineItemParams {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Lines))
	for _, line := range req.Lines {
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(line.UnitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
			},
			Quantity: stripe.Int64(line.Quantity),
		})
	}
	return items
}

func (c *Creator) primaryParams(req CheckoutRequest) *stripe.CheckoutSessionParams {
	site := c.siteURL(req.Origin)
	return &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  c.lineItems(req, c.cfg.Currency),
		SuccessURL: stripe.String(site + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(site + "/cart"),
		Metadata: map[string]string{
			"user_id": req.UserID,
			"email":   req.Email,
		},
	}
}

// fallbackParams uses the fallback currency and a different metadata
// shape. The currency difference mirrors the primary/fallback split that
// shipped, kept as two explicit config values rather than unified.
func (c *Creator) fallbackParams(req CheckoutRequest) *stripe.CheckoutSessionParams {
	site := c.siteURL(req.Origin)
	return &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  c.lineItems(req, c.cfg.FallbackCurrency),
		SuccessURL: stripe.String(site + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(site + "/cart"),
		Metadata: map[string]string{
			"order_id": strconv.FormatInt(req.OrderID, 10),
			"guest_id": req.GuestID,
			"currency": c.cfg.FallbackCurrency,
		},
	}
}

// CreateSubscriptionSession creates a subscription-mode session for a
// membership tier. Unlike order checkout there is no degraded path here;
// a gateway failure surfaces to the caller.
func (c *Creator) CreateSubscriptionSession(priceID, email, tierID, cycle, origin string) (*Session, error) {
	site := c.siteURL(origin)
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(email),
		SuccessURL:    stripe.String(site + "/membership/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(site + "/membership"),
		Metadata: map[string]string{
			"tier_id":       tierID,
			"billing_cycle": cycle,
		},
	}
	sess, err := c.gw.CreateSession(params)
	if err != nil {
		return nil, err
	}
	return &Session{URL: sess.URL, SessionID: sess.ID}, nil
}
