package ordering

import (
	"context"
	"time"

	"github.com/ventaroai/ventaro-server/internal/domain"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for orders
type OrderRepository interface {
	// CreateOrder inserts a new order header
	CreateOrder(ctx context.Context, order *domain.Order) error

	// CreateOrderItems inserts all order lines in one batch
	CreateOrderItems(ctx context.Context, items []domain.OrderItem) error

	// GetByID retrieves an order by id
	GetByID(ctx context.Context, id int64) (*domain.Order, error)

	// ListByUser retrieves a user's orders, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Order, error)

	// PurgeStalePending deletes pending orders older than the cutoff and
	// returns the number of rows removed
	PurgeStalePending(ctx context.Context, days int) (int64, error)
}

// GormOrderRepository is the GORM implementation of OrderRepository
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) CreateOrderItems(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *GormOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) PurgeStalePending(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	res := r.db.WithContext(ctx).
		Where("status = ?", domain.OrderStatusPending).
		Where("created_at < ?", cutoff).
		Delete(&domain.Order{})
	return res.RowsAffected, res.Error
}
