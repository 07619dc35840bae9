package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/ventaroai/ventaro-server/internal/catalog"
	"github.com/ventaroai/ventaro-server/internal/ordering"
	"github.com/ventaroai/ventaro-server/internal/payment"
	"github.com/ventaroai/ventaro-server/internal/webserver"
	"github.com/ventaroai/ventaro-server/pkg/common"
	"github.com/ventaroai/ventaro-server/pkg/metrics"
)

type checkoutPayload struct {
	Items []ordering.CartItem `json:"items"`
}

func registerCheckoutRoutes() {
	webserver.ApiPOST("/checkout", createCheckout)
}

// createCheckout runs the purchase funnel: resolve products, persist the
// order, create the payment session. Steps are strictly sequential and
// storage problems degrade rather than fail; only configuration and
// unresolved cart lines surface as errors.
func createCheckout(c echo.Context) error {
	claims := webserver.CurrentUser(c)
	if claims == nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
	}

	cfg := GetApp(c).Config()
	if cfg.Stripe.SecretKey == "" {
		return fail(c, http.StatusInternalServerError, "CONFIG_ERROR", "Payment gateway not configured", nil)
	}

	var payload checkoutPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse checkout request", err.Error())
	}
	if len(payload.Items) == 0 {
		return fail(c, http.StatusBadRequest, "EMPTY_CART", "No items provided", nil)
	}

	metrics.CounterInc(metrics.CheckoutAttempt)
	ctx := c.Request().Context()

	ids := make([]string, 0, len(payload.Items))
	for _, item := range payload.Items {
		ids = append(ids, item.ID)
	}

	resolver := catalog.NewResolver(catalog.NewGormProductRepository(GetDB(c)))
	products, err := resolver.Resolve(ctx, ids)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "PRODUCT_FETCH_ERROR", "Failed to fetch products", err.Error())
	}

	svc := ordering.NewService(ordering.NewGormOrderRepository(GetDB(c)))
	order, orderItems, err := svc.CreateOrder(ctx, claims.UserID, payload.Items, products)
	if err != nil {
		if errors.Is(err, ordering.ErrUnresolvedItem) {
			return fail(c, http.StatusInternalServerError, "ORDER_ERROR", err.Error(), nil)
		}
		return fail(c, http.StatusInternalServerError, "ORDER_ERROR", "Failed to create order", err.Error())
	}

	lines := make([]payment.Line, 0, len(orderItems))
	for _, item := range orderItems {
		product, _ := catalog.Match(products, item.ProductID)
		lines = append(lines, payment.Line{
			Name:       product.Name,
			UnitAmount: item.UnitPrice.Mul(decimal.NewFromInt(100)).IntPart(),
			Quantity:   int64(item.Quantity),
		})
	}

	session := paymentCreator.CreateCheckoutSession(payment.CheckoutRequest{
		OrderID: order.ID,
		UserID:  claims.UserID,
		Email:   claims.Email,
		GuestID: common.GuestID(),
		Origin:  c.Request().Header.Get("Origin"),
		Lines:   lines,
	})

	return ok(c, session)
}
