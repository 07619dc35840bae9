package webserver

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/ventaroai/ventaro-server/internal/app"
	"go.uber.org/zap"
)

// AppCtxKey is the echo context key holding the application context
const AppCtxKey = "appctx"

var server *WebServer

// WebServer wraps echo with an authenticated /api group, a public group
// and an admin-gated group.
type WebServer struct {
	appCtx app.AppContext
	root   *echo.Echo
	pub    *echo.Group
	api    *echo.Group
	admin  *echo.Group
}

// Init builds the global web server instance
func Init(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = NewJsoniterSerializer()

	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppCtxKey, appCtx)
			return next(c)
		}
	})

	secret := appCtx.Config().Web.Secret

	s := &WebServer{
		appCtx: appCtx,
		root:   e,
		pub:    e.Group("/api"),
		api:    e.Group("/api", JwtMiddleware(secret)),
		admin:  e.Group("/api/admin", JwtMiddleware(secret), AdminOnly),
	}
	server = s
	return s
}

// Echo exposes the underlying echo instance (used in tests)
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// Start blocks serving HTTP on the configured address
func (s *WebServer) Start() error {
	cfg := s.appCtx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("web server listening on %s", addr)
	return s.root.Start(addr)
}

// Route registry, used by restapi handler files

func PubGET(path string, h echo.HandlerFunc)  { server.pub.GET(path, h) }
func PubPOST(path string, h echo.HandlerFunc) { server.pub.POST(path, h) }

func ApiGET(path string, h echo.HandlerFunc)    { server.api.GET(path, h) }
func ApiPOST(path string, h echo.HandlerFunc)   { server.api.POST(path, h) }
func ApiPUT(path string, h echo.HandlerFunc)    { server.api.PUT(path, h) }
func ApiDELETE(path string, h echo.HandlerFunc) { server.api.DELETE(path, h) }

func AdminGET(path string, h echo.HandlerFunc)    { server.admin.GET(path, h) }
func AdminPOST(path string, h echo.HandlerFunc)   { server.admin.POST(path, h) }
func AdminPUT(path string, h echo.HandlerFunc)    { server.admin.PUT(path, h) }
func AdminDELETE(path string, h echo.HandlerFunc) { server.admin.DELETE(path, h) }
