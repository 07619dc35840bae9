package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ventaroai/ventaro-server/internal/domain"
)

func TestAdminProducts_ForbiddenForRegularUser(t *testing.T) {
	env := setup(t)

	rec := env.request(http.MethodGet, "/api/admin/products", env.userToken(t), "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminProducts_CreateAndList(t *testing.T) {
	env := setup(t)
	token := env.adminToken(t)

	rec := env.request(http.MethodPost, "/api/admin/products", token,
		`{"name":"AI Agency Playbook","price":"45.00","category":"ebook"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	created := decodeBody(t, rec)
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, true, created["active"])

	rec = env.request(http.MethodGet, "/api/admin/products?q=playbook", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 1, body["total"])
}

func TestAdminProducts_CreateRejectsUnknownCategory(t *testing.T) {
	env := setup(t)

	rec := env.request(http.MethodPost, "/api/admin/products", env.adminToken(t),
		`{"name":"Mystery","price":"5.00","category":"mystery"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, countRows(t, env.db, &domain.Product{}))
}

func TestAdminProducts_UpdateAndDelete(t *testing.T) {
	env := setup(t)
	env.seedProducts(t)
	token := env.adminToken(t)

	id := "3fb7e8a1-52c4-4ed0-9f11-0c1a4a6b2d06"
	rec := env.request(http.MethodPut, "/api/admin/products/"+id, token,
		`{"name":"Test Product v2","price":"2.00","category":"test","active":false}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var p domain.Product
	require.NoError(t, env.db.Where("id = ?", id).First(&p).Error)
	assert.Equal(t, "Test Product v2", p.Name)
	assert.False(t, p.Active)

	rec = env.request(http.MethodDelete, "/api/admin/products/"+id, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.ErrorContains(t, env.db.Where("id = ?", id).First(&p).Error, "record not found")
}

func TestAdminProducts_GetNotFound(t *testing.T) {
	env := setup(t)

	rec := env.request(http.MethodGet, "/api/admin/products/missing", env.adminToken(t), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
