package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ventaroai/ventaro-server/internal/domain"
	"github.com/ventaroai/ventaro-server/pkg/common"
)

// MockProductRepository implements ProductRepository for testing
type MockProductRepository struct {
	Products   []domain.Product
	Err        error
	LastLookup []string
	Calls      int
}

func (m *MockProductRepository) FindByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	m.Calls++
	m.LastLookup = ids
	return m.Products, m.Err
}

func (m *MockProductRepository) ListActive(_ context.Context) ([]domain.Product, error) {
	m.Calls++
	return m.Products, m.Err
}

func TestCanonicalID_AllSchemes(t *testing.T) {
	// the legacy numeric id, the current slug and the uuid itself all
	// normalize to the same canonical identifier
	assert.Equal(t, IDToolsMasteryGuide, CanonicalID("1"))
	assert.Equal(t, IDToolsMasteryGuide, CanonicalID("ai-tools-mastery-guide-2025"))
	assert.Equal(t, IDToolsMasteryGuide, CanonicalID(IDToolsMasteryGuide))
}

func TestCanonicalID_UnknownPassesThrough(t *testing.T) {
	assert.Equal(t, "mystery-product", CanonicalID("mystery-product"))
}

func TestCanonicalIDs_DeduplicatesAcrossSchemes(t *testing.T) {
	ids := CanonicalIDs([]string{"1", "ai-tools-mastery-guide-2025", IDToolsMasteryGuide, "2"})
	assert.Equal(t, []string{IDToolsMasteryGuide, IDPromptsArsenal}, ids)
}

func TestResolve_StoreHit(t *testing.T) {
	stored := domain.Product{ID: IDPromptsArsenal, Name: "AI Prompts Arsenal 2025", Active: true}
	mock := &MockProductRepository{Products: []domain.Product{stored}}
	resolver := NewResolver(mock)

	products, err := resolver.Resolve(context.Background(), []string{"2"})

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, IDPromptsArsenal, products[0].ID)
	// the lookup must use the canonical form, not the legacy alias
	assert.Equal(t, []string{IDPromptsArsenal}, mock.LastLookup)
}

func TestResolve_MissingTableFallsBack(t *testing.T) {
	mock := &MockProductRepository{Err: &pgconn.PgError{Code: common.PgUndefinedTable}}
	resolver := NewResolver(mock)

	products, err := resolver.Resolve(context.Background(), []string{"1"})

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "AI Tools Mastery Guide 2025", products[0].Name)
	assert.True(t, products[0].Price.Equal(fallbackProducts[0].Price))
}

func TestResolve_InvalidKeyFallsBack(t *testing.T) {
	mock := &MockProductRepository{Err: &pgconn.PgError{Code: common.PgInvalidTextRepr}}
	resolver := NewResolver(mock)

	products, err := resolver.Resolve(context.Background(), []string{"5"})

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Weekly Support Contract", products[0].Name)
}

func TestResolve_GenericErrorFallsBack(t *testing.T) {
	mock := &MockProductRepository{Err: errors.New("connection refused")}
	resolver := NewResolver(mock)

	products, err := resolver.Resolve(context.Background(), []string{"3", "4"})

	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestResolve_EmptyStoreResultFallsBack(t *testing.T) {
	mock := &MockProductRepository{Products: nil}
	resolver := NewResolver(mock)

	products, err := resolver.Resolve(context.Background(), []string{"6"})

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Test Product", products[0].Name)
}

func TestResolve_NothingMatchesAnywhere(t *testing.T) {
	mock := &MockProductRepository{Err: errors.New("down")}
	resolver := NewResolver(mock)

	products, err := resolver.Resolve(context.Background(), []string{"not-a-product"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProductFetch)
	assert.Nil(t, products)
}

func TestListProducts_StoreErrorServesSnapshot(t *testing.T) {
	mock := &MockProductRepository{Err: errors.New("down")}
	resolver := NewResolver(mock)

	products := resolver.ListProducts(context.Background())

	assert.Len(t, products, len(fallbackProducts))
}

func TestMatch_LegacyAliasAgainstCanonicalRow(t *testing.T) {
	products := []domain.Product{{ID: IDToolsMasteryGuide, Name: "AI Tools Mastery Guide 2025"}}

	p, found := Match(products, "1")

	require.True(t, found)
	assert.Equal(t, IDToolsMasteryGuide, p.ID)
}

func TestMatch_CanonicalAgainstLegacyFallbackRow(t *testing.T) {
	// the fallback snapshot keeps legacy ids, a client may still send the uuid
	p, found := Match(Fallback(), IDCoachingSession)

	require.True(t, found)
	assert.Equal(t, "60-Minute AI Coaching Session", p.Name)
}

func TestMatch_Unknown(t *testing.T) {
	_, found := Match(Fallback(), "nope")
	assert.False(t, found)
}

func TestFallback_ReturnsCopy(t *testing.T) {
	a := Fallback()
	a[0].Name = "mutated"
	assert.Equal(t, "AI Tools Mastery Guide 2025", Fallback()[0].Name)
}
