package restapi

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v80"
	"github.com/ventaroai/ventaro-server/config"
	"github.com/ventaroai/ventaro-server/internal/app"
	"github.com/ventaroai/ventaro-server/internal/catalog"
	"github.com/ventaroai/ventaro-server/internal/domain"
	"github.com/ventaroai/ventaro-server/internal/payment"
	"github.com/ventaroai/ventaro-server/internal/webserver"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// scriptedGateway implements payment.Gateway with one scripted outcome
// per expected call
type scriptedGateway struct {
	Errs   []error
	Params []*stripe.CheckoutSessionParams
}

func (g *scriptedGateway) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	call := len(g.Params)
	g.Params = append(g.Params, params)
	if call < len(g.Errs) && g.Errs[call] != nil {
		return nil, g.Errs[call]
	}
	return &stripe.CheckoutSession{
		ID:  "cs_test_" + strconv.Itoa(call),
		URL: "https://checkout.stripe.com/c/pay/cs_test_" + strconv.Itoa(call),
	}, nil
}

type testEnv struct {
	echo *echo.Echo
	db   *gorm.DB
	cfg  *config.AppConfig
	gw   *scriptedGateway
}

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	return &config.AppConfig{
		System: config.SysConfig{Appid: "ventaro-test", Location: "UTC", Workdir: t.TempDir()},
		Web:    config.WebConfig{Secret: "test-secret", SiteURL: "https://www.ventaroai.com"},
		Stripe: config.StripeConfig{
			SecretKey:        "sk_test",
			Currency:         "usd",
			FallbackCurrency: "aud",
		},
	}
}

// setup builds a full request stack around an in-memory style database
// and a scripted payment gateway.
func setup(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	cfg := testConfig(t)
	application := app.NewTestApplication(cfg, db)

	ws := webserver.Init(application)
	RegisterRoutes(application)

	gw := &scriptedGateway{}
	OverridePaymentCreator(payment.NewCreator(gw, cfg.Stripe, cfg.Web.SiteURL))

	return &testEnv{echo: ws.Echo(), db: db, cfg: cfg, gw: gw}
}

func (e *testEnv) seedProducts(t *testing.T) {
	t.Helper()
	for _, p := range catalog.Fallback() {
		row := p
		row.ID = catalog.CanonicalID(p.ID)
		row.CreatedAt = time.Now()
		row.UpdatedAt = time.Now()
		require.NoError(t, e.db.Create(&row).Error)
	}
}

func (e *testEnv) seedTiers(t *testing.T) {
	t.Helper()
	yearly := decimal.NewFromFloat(990.00)
	tiers := []domain.MembershipTier{
		{ID: "pro", Name: "Pro", Level: 2, PriceMonthly: decimal.NewFromFloat(99.00),
			PriceYearly: &yearly, StripePriceMonthly: "price_pro_m", StripePriceYearly: "price_pro_y", Active: true},
		{ID: "elite", Name: "Elite", Level: 3, PriceMonthly: decimal.NewFromFloat(249.00),
			StripePriceMonthly: "price_elite_m", Active: true},
	}
	for _, tier := range tiers {
		require.NoError(t, e.db.Create(&tier).Error)
	}
}

func (e *testEnv) token(t *testing.T, user *domain.User) string {
	t.Helper()
	token, err := webserver.IssueToken(e.cfg.Web.Secret, user, time.Hour)
	require.NoError(t, err)
	return token
}

func (e *testEnv) userToken(t *testing.T) string {
	return e.token(t, &domain.User{ID: "u1", Email: "u1@example.com", Level: domain.UserLevelUser})
}

func (e *testEnv) adminToken(t *testing.T) string {
	return e.token(t, &domain.User{ID: "a1", Email: "admin@ventaroai.com", Level: domain.UserLevelAdmin})
}

// request performs one HTTP round trip through the echo stack
func (e *testEnv) request(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.echo.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
