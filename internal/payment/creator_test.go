package payment

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v80"
	"github.com/ventaroai/ventaro-server/config"
)

// MockGateway implements Gateway for testing
type MockGateway struct {
	Errs   []error // one entry per expected call, nil means success
	Params []*stripe.CheckoutSessionParams
}

func (m *MockGateway) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	call := len(m.Params)
	m.Params = append(m.Params, params)
	if call < len(m.Errs) && m.Errs[call] != nil {
		return nil, m.Errs[call]
	}
	return &stripe.CheckoutSession{
		ID:  "cs_test_" + strconv.Itoa(call),
		URL: "https://checkout.stripe.com/c/pay/cs_test_" + strconv.Itoa(call),
	}, nil
}

func stripeTestConfig() config.StripeConfig {
	return config.StripeConfig{
		SecretKey:        "sk_test",
		Currency:         "usd",
		FallbackCurrency: "aud",
	}
}

func checkoutRequest() CheckoutRequest {
	return CheckoutRequest{
		OrderID: 42,
		UserID:  "u1",
		Email:   "u1@example.com",
		GuestID: "guest_abc",
		Origin:  "https://shop.example.com",
		Lines:   []Line{{Name: "AI Tools Mastery Guide 2025", UnitAmount: 2500, Quantity: 2}},
	}
}

func TestCreateCheckoutSession_Primary(t *testing.T) {
	gw := &MockGateway{}
	creator := NewCreator(gw, stripeTestConfig(), "")

	sess := creator.CreateCheckoutSession(checkoutRequest())

	require.NotNil(t, sess)
	assert.False(t, sess.Mock)
	assert.NotEmpty(t, sess.URL)
	assert.NotEmpty(t, sess.SessionID)

	require.Len(t, gw.Params, 1)
	params := gw.Params[0]
	assert.Equal(t, string(stripe.CheckoutSessionModePayment), *params.Mode)
	require.Len(t, params.LineItems, 1)
	assert.Equal(t, "usd", *params.LineItems[0].PriceData.Currency)
	assert.Equal(t, int64(2500), *params.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, "u1", params.Metadata["user_id"])
	assert.Equal(t, "u1@example.com", params.Metadata["email"])
	// no configured site url, the request origin wins
	assert.Contains(t, *params.SuccessURL, "https://shop.example.com/checkout/success")
}

func TestCreateCheckoutSession_CachedWithinWindow(t *testing.T) {
	gw := &MockGateway{}
	creator := NewCreator(gw, stripeTestConfig(), "")

	first := creator.CreateCheckoutSession(checkoutRequest())
	second := creator.CreateCheckoutSession(checkoutRequest())

	assert.Same(t, first, second)
	assert.Len(t, gw.Params, 1)
}

func TestCreateCheckoutSession_FallbackUsesOtherCurrency(t *testing.T) {
	gw := &MockGateway{Errs: []error{errors.New("rate limited"), nil}}
	creator := NewCreator(gw, stripeTestConfig(), "")

	sess := creator.CreateCheckoutSession(checkoutRequest())

	require.NotNil(t, sess)
	assert.False(t, sess.Mock)
	require.Len(t, gw.Params, 2)

	fallback := gw.Params[1]
	assert.Equal(t, "aud", *fallback.LineItems[0].PriceData.Currency)
	assert.Equal(t, "42", fallback.Metadata["order_id"])
	assert.Equal(t, "guest_abc", fallback.Metadata["guest_id"])
	assert.Equal(t, "aud", fallback.Metadata["currency"])
	_, hasUser := fallback.Metadata["user_id"]
	assert.False(t, hasUser)
}

func TestCreateCheckoutSession_BothPathsFailDegradesToMock(t *testing.T) {
	gw := &MockGateway{Errs: []error{errors.New("down"), errors.New("still down")}}
	creator := NewCreator(gw, stripeTestConfig(), "")

	sess := creator.CreateCheckoutSession(checkoutRequest())

	require.NotNil(t, sess)
	assert.True(t, sess.Mock)
	assert.Equal(t, mockSessionURL, sess.URL)
	assert.Equal(t, mockSessionID, sess.SessionID)
	// exactly one fallback attempt, never a retry loop
	assert.Len(t, gw.Params, 2)
}

func TestCreateCheckoutSession_MockNotCached(t *testing.T) {
	gw := &MockGateway{Errs: []error{errors.New("down"), errors.New("down"), nil}}
	creator := NewCreator(gw, stripeTestConfig(), "")

	first := creator.CreateCheckoutSession(checkoutRequest())
	second := creator.CreateCheckoutSession(checkoutRequest())

	assert.True(t, first.Mock)
	// the next attempt goes back to the gateway instead of replaying the mock
	assert.False(t, second.Mock)
	assert.Len(t, gw.Params, 3)
}

func TestSiteURL_ConfiguredOriginWins(t *testing.T) {
	gw := &MockGateway{}
	creator := NewCreator(gw, stripeTestConfig(), "https://www.ventaroai.com")

	creator.CreateCheckoutSession(checkoutRequest())

	require.Len(t, gw.Params, 1)
	assert.Contains(t, *gw.Params[0].SuccessURL, "https://www.ventaroai.com/")
}

func TestSiteURL_LocalhostDefault(t *testing.T) {
	gw := &MockGateway{}
	creator := NewCreator(gw, stripeTestConfig(), "")

	req := checkoutRequest()
	req.Origin = ""
	creator.CreateCheckoutSession(req)

	require.Len(t, gw.Params, 1)
	assert.Contains(t, *gw.Params[0].SuccessURL, "http://localhost:3000/")
}

func TestCreateSubscriptionSession_Params(t *testing.T) {
	gw := &MockGateway{}
	creator := NewCreator(gw, stripeTestConfig(), "https://www.ventaroai.com")

	sess, err := creator.CreateSubscriptionSession("price_123", "m@example.com", "pro", "monthly", "")

	require.NoError(t, err)
	assert.NotEmpty(t, sess.URL)

	require.Len(t, gw.Params, 1)
	params := gw.Params[0]
	assert.Equal(t, string(stripe.CheckoutSessionModeSubscription), *params.Mode)
	require.Len(t, params.LineItems, 1)
	assert.Equal(t, "price_123", *params.LineItems[0].Price)
	assert.Equal(t, int64(1), *params.LineItems[0].Quantity)
	assert.Equal(t, "m@example.com", *params.CustomerEmail)
	assert.Equal(t, "pro", params.Metadata["tier_id"])
	assert.Equal(t, "monthly", params.Metadata["billing_cycle"])
}

func TestCreateSubscriptionSession_ErrorSurfaces(t *testing.T) {
	gw := &MockGateway{Errs: []error{errors.New("invalid price")}}
	creator := NewCreator(gw, stripeTestConfig(), "")

	sess, err := creator.CreateSubscriptionSession("price_bad", "m@example.com", "pro", "monthly", "")

	require.Error(t, err)
	assert.Nil(t, sess)
	assert.Len(t, gw.Params, 1)
}
