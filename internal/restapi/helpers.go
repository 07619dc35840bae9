package restapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ventaroai/ventaro-server/internal/app"
	"github.com/ventaroai/ventaro-server/internal/webserver"
	"gorm.io/gorm"
)

// GetApp extracts the application context injected by the web server
func GetApp(c echo.Context) app.AppContext {
	return c.Get(webserver.AppCtxKey).(app.AppContext)
}

// GetDB returns the request-scoped database handle
func GetDB(c echo.Context) *gorm.DB {
	return GetApp(c).DB()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(200, data)
}

// fail writes a JSON error body. The error field always carries the
// human-readable message; code and detail add machine context.
func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	body := map[string]interface{}{
		"error": message,
		"code":  code,
	}
	if detail != nil {
		body["detail"] = detail
	}
	return c.JSON(status, body)
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(200, map[string]interface{}{
		"data":      rows,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}
