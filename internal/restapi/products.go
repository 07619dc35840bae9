package restapi

import (
	"github.com/labstack/echo/v4"
	"github.com/ventaroai/ventaro-server/internal/catalog"
	"github.com/ventaroai/ventaro-server/internal/webserver"
)

func registerProductRoutes() {
	webserver.PubGET("/products", listProducts)
}

// listProducts serves the browsable catalog. It shares the checkout
// resolver's fallback snapshot, so browsing and checkout can never show
// different products while the store is down.
func listProducts(c echo.Context) error {
	resolver := catalog.NewResolver(catalog.NewGormProductRepository(GetDB(c)))
	return ok(c, resolver.ListProducts(c.Request().Context()))
}
