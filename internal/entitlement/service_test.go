package entitlement

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ventaroai/ventaro-server/internal/catalog"
	"github.com/ventaroai/ventaro-server/internal/domain"
)

// MockPurchaseRepository implements PurchaseRepository for testing
type MockPurchaseRepository struct {
	Purchases []domain.Purchase
	Err       error
	Calls     int
}

func (m *MockPurchaseRepository) ListByUserOrEmail(_ context.Context, _, _ string) ([]domain.Purchase, error) {
	m.Calls++
	return m.Purchases, m.Err
}

func TestOwned_AdminShortCircuits(t *testing.T) {
	mock := &MockPurchaseRepository{Err: errors.New("should never be called")}
	svc := NewService(mock)

	owned := svc.Owned(context.Background(), Identity{
		UserID: "a1",
		Email:  "admin@ventaroai.com",
		Level:  domain.UserLevelAdmin,
	})

	assert.True(t, owned.All)
	assert.Zero(t, mock.Calls, "admin lookups must not hit the store")
	assert.True(t, owned.Has("anything-at-all"))
}

func TestOwned_RegularUser(t *testing.T) {
	mock := &MockPurchaseRepository{Purchases: []domain.Purchase{
		{UserID: "u1", ProductID: catalog.IDToolsMasteryGuide},
		{UserID: "u1", ProductID: catalog.IDPromptsArsenal},
		{UserID: "u1", ProductID: catalog.IDPromptsArsenal}, // duplicate grant
	}}
	svc := NewService(mock)

	owned := svc.Owned(context.Background(), Identity{UserID: "u1", Email: "u1@example.com", Level: domain.UserLevelUser})

	assert.False(t, owned.All)
	assert.Len(t, owned.ProductIDs, 2)
	assert.Equal(t, 1, mock.Calls)
}

func TestOwned_StoreErrorYieldsEmptySet(t *testing.T) {
	mock := &MockPurchaseRepository{Err: errors.New("no such table: purchases")}
	svc := NewService(mock)

	owned := svc.Owned(context.Background(), Identity{UserID: "u1", Level: domain.UserLevelUser})

	assert.False(t, owned.All)
	assert.Empty(t, owned.ProductIDs)
	assert.False(t, owned.Has(catalog.IDToolsMasteryGuide))
}

func TestHas_LegacyAliasMatchesCanonicalGrant(t *testing.T) {
	owned := Entitlements{ProductIDs: []string{catalog.IDToolsMasteryGuide}}

	assert.True(t, owned.Has("1"))
	assert.True(t, owned.Has("ai-tools-mastery-guide-2025"))
	assert.True(t, owned.Has(catalog.IDToolsMasteryGuide))
	assert.False(t, owned.Has("2"))
}
