package entitlement

import (
	"context"

	"github.com/ventaroai/ventaro-server/internal/catalog"
	"github.com/ventaroai/ventaro-server/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Identity is the authenticated caller asking for their entitlements
type Identity struct {
	UserID string
	Email  string
	Level  string
}

// Entitlements is the set of product/session identifiers a user owns.
// All short-circuits membership checks for administrative identities.
type Entitlements struct {
	All        bool     `json:"all"`
	ProductIDs []string `json:"product_ids"`
}

// Has reports whether the set contains the given product id, comparing
// canonical forms so legacy ids still match.
func (e Entitlements) Has(productID string) bool {
	if e.All {
		return true
	}
	canonical := catalog.CanonicalID(productID)
	for _, id := range e.ProductIDs {
		if id == productID || catalog.CanonicalID(id) == canonical {
			return true
		}
	}
	return false
}

// PurchaseRepository reads recorded purchase grants
type PurchaseRepository interface {
	ListByUserOrEmail(ctx context.Context, userID, email string) ([]domain.Purchase, error)
}

// GormPurchaseRepository is the GORM implementation of PurchaseRepository
type GormPurchaseRepository struct {
	db *gorm.DB
}

func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

func (r *GormPurchaseRepository) ListByUserOrEmail(ctx context.Context, userID, email string) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	err := r.db.WithContext(ctx).
		Where("user_id = ? OR email = ?", userID, email).
		Find(&purchases).Error
	return purchases, err
}

// Service resolves the products a user owns
type Service struct {
	repo PurchaseRepository
}

func NewService(repo PurchaseRepository) *Service {
	return &Service{repo: repo}
}

// Owned returns the caller's entitlement set. Administrative identities
// own everything without a store query. Any store error yields an empty
// set: callers must treat "no entitlements" as the safe default.
func (s *Service) Owned(ctx context.Context, identity Identity) Entitlements {
	if identity.Level == domain.UserLevelAdmin {
		return Entitlements{All: true}
	}

	purchases, err := s.repo.ListByUserOrEmail(ctx, identity.UserID, identity.Email)
	if err != nil {
		zap.L().Warn("entitlement lookup failed, returning empty set",
			zap.String("user_id", identity.UserID), zap.Error(err))
		return Entitlements{}
	}

	seen := make(map[string]struct{}, len(purchases))
	ids := make([]string, 0, len(purchases))
	for _, p := range purchases {
		if _, ok := seen[p.ProductID]; ok {
			continue
		}
		seen[p.ProductID] = struct{}{}
		ids = append(ids, p.ProductID)
	}
	return Entitlements{ProductIDs: ids}
}
