package catalog

import (
	"context"

	"github.com/ventaroai/ventaro-server/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository is the backing-store lookup used by the resolver
type ProductRepository interface {
	// FindByIDs fetches active products for all ids in one batch query
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	// ListActive returns the active catalog for browsing pages
	ListActive(ctx context.Context) ([]domain.Product, error)
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Where("active = ?", true).
		Find(&products).Error
	return products, err
}

func (r *GormProductRepository) ListActive(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&products).Error
	return products, err
}
