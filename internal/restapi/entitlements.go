package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ventaroai/ventaro-server/internal/entitlement"
	"github.com/ventaroai/ventaro-server/internal/webserver"
)

func registerEntitlementRoutes() {
	webserver.ApiGET("/entitlements", listEntitlements)
}

func listEntitlements(c echo.Context) error {
	claims := webserver.CurrentUser(c)
	if claims == nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
	}

	svc := entitlement.NewService(entitlement.NewGormPurchaseRepository(GetDB(c)))
	owned := svc.Owned(c.Request().Context(), entitlement.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Level:  claims.Level,
	})
	return ok(c, owned)
}
