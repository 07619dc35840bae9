package catalog

import (
	"context"

	"github.com/pkg/errors"
	"github.com/ventaroai/ventaro-server/internal/domain"
	"github.com/ventaroai/ventaro-server/pkg/common"
	"github.com/ventaroai/ventaro-server/pkg/metrics"
	"go.uber.org/zap"
)

// ErrProductFetch signals that neither the backing store nor the fallback
// catalog produced any product for the requested identifiers.
var ErrProductFetch = errors.New("failed to fetch products")

// Resolver maps client-supplied product identifiers to canonical product
// records, degrading to the static fallback catalog when the backing
// store is unavailable.
type Resolver struct {
	repo ProductRepository
}

func NewResolver(repo ProductRepository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve returns the canonical products matching the requested ids.
// Store errors never fail the request: missing table, key-format
// rejection, empty results and any other store error all degrade to the
// fallback catalog. An empty final set returns ErrProductFetch.
func (r *Resolver) Resolve(ctx context.Context, requested []string) ([]domain.Product, error) {
	canonical := CanonicalIDs(requested)

	products, err := r.repo.FindByIDs(ctx, canonical)
	if err != nil {
		switch {
		case common.IsMissingTable(err):
			zap.L().Warn("products table missing, using fallback catalog", zap.Error(err))
		case common.IsInvalidKey(err):
			zap.L().Warn("product id rejected by store, using fallback catalog",
				zap.Strings("ids", canonical), zap.Error(err))
		default:
			zap.L().Warn("product lookup failed, using fallback catalog", zap.Error(err))
		}
		metrics.CounterInc(metrics.CheckoutCatalogFallback)
		products = fallbackSubset(requested)
	} else if len(products) == 0 {
		metrics.CounterInc(metrics.CheckoutCatalogFallback)
		products = fallbackSubset(requested)
	}

	if len(products) == 0 {
		return nil, ErrProductFetch
	}
	return products, nil
}

// ListProducts returns the browsable catalog, falling back to the static
// snapshot on any store error so browsing pages stay consistent with the
// checkout resolver.
func (r *Resolver) ListProducts(ctx context.Context) []domain.Product {
	products, err := r.repo.ListActive(ctx)
	if err != nil || len(products) == 0 {
		if err != nil {
			zap.L().Warn("catalog listing failed, using fallback catalog", zap.Error(err))
		}
		return Fallback()
	}
	return products
}

// Match finds the resolved product for one cart line. The requested id may
// be the product's stored id, its canonical form, or a legacy alias.
func Match(products []domain.Product, requestedID string) (domain.Product, bool) {
	canonical := CanonicalID(requestedID)
	for _, p := range products {
		if p.ID == requestedID || p.ID == canonical || CanonicalID(p.ID) == canonical {
			return p, true
		}
	}
	return domain.Product{}, false
}
