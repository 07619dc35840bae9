package restapi

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ventaroai/ventaro-server/internal/domain"
)

func TestMembershipCheckout_RequiresAuthentication(t *testing.T) {
	env := setup(t)
	env.seedTiers(t)

	rec := env.request(http.MethodPost, "/api/membership/checkout", "",
		`{"tier_id":"pro","billing_cycle":"monthly"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, env.gw.Params)
}

func TestMembershipCheckout_MissingTierID(t *testing.T) {
	env := setup(t)
	env.seedTiers(t)

	rec := env.request(http.MethodPost, "/api/membership/checkout", env.userToken(t),
		`{"billing_cycle":"monthly"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeBody(t, rec)["code"])
}

func TestMembershipCheckout_UnknownTier(t *testing.T) {
	env := setup(t)
	env.seedTiers(t)

	rec := env.request(http.MethodPost, "/api/membership/checkout", env.userToken(t),
		`{"tier_id":"platinum","billing_cycle":"monthly"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_TIER", decodeBody(t, rec)["code"])
	assert.Empty(t, env.gw.Params)
}

func TestMembershipCheckout_CycleWithoutPrice(t *testing.T) {
	env := setup(t)
	env.seedTiers(t)

	// the elite tier has no yearly price configured
	rec := env.request(http.MethodPost, "/api/membership/checkout", env.userToken(t),
		`{"tier_id":"elite","billing_cycle":"yearly"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_TIER", decodeBody(t, rec)["code"])
	assert.Empty(t, env.gw.Params)
}

func TestMembershipCheckout_HappyPath(t *testing.T) {
	env := setup(t)
	env.seedTiers(t)

	rec := env.request(http.MethodPost, "/api/membership/checkout", env.userToken(t),
		`{"tier_id":"pro","billing_cycle":"monthly"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["url"])

	require.Len(t, env.gw.Params, 1)
	params := env.gw.Params[0]
	require.Len(t, params.LineItems, 1)
	assert.Equal(t, "price_pro_m", *params.LineItems[0].Price)
	assert.Equal(t, "u1@example.com", *params.CustomerEmail)
	assert.Equal(t, "pro", params.Metadata["tier_id"])
}

func TestMembershipCheckout_GatewayFailure(t *testing.T) {
	env := setup(t)
	env.seedTiers(t)
	env.gw.Errs = []error{errors.New("stripe rejected the price")}

	rec := env.request(http.MethodPost, "/api/membership/checkout", env.userToken(t),
		`{"tier_id":"pro","billing_cycle":"monthly"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "GATEWAY_ERROR", decodeBody(t, rec)["code"])
	// no session means no notification emails were attempted
	assert.Zero(t, countRows(t, env.db, &domain.EmailLog{}))
}

func TestListTiers_Public(t *testing.T) {
	env := setup(t)
	env.seedTiers(t)

	rec := env.request(http.MethodGet, "/api/membership/tiers", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pro")
	assert.Contains(t, rec.Body.String(), "Elite")
}
