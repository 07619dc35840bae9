package ordering

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/ventaroai/ventaro-server/internal/catalog"
	"github.com/ventaroai/ventaro-server/internal/domain"
	"github.com/ventaroai/ventaro-server/pkg/common"
	"github.com/ventaroai/ventaro-server/pkg/metrics"
	"go.uber.org/zap"
)

// ErrUnresolvedItem means a cart line matched none of the resolved
// products. This is fatal for the whole request and is checked before any
// persistence happens.
var ErrUnresolvedItem = errors.New("cart item does not match any resolved product")

// CartItem is a single requested line. The id may be legacy or canonical.
type CartItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// Service creates order headers and order lines. Storage failures degrade
// to a synthesized in-memory order so the purchase funnel stays up.
type Service struct {
	repo OrderRepository
}

func NewService(repo OrderRepository) *Service {
	return &Service{repo: repo}
}

// CreateOrder validates every cart line against the resolved products,
// computes the total from snapshot prices and persists the order plus its
// lines. The order-item insert is best effort: a failure there is logged
// and checkout proceeds without the rows.
func (s *Service) CreateOrder(ctx context.Context, userID string, items []CartItem, products []domain.Product) (*domain.Order, []domain.OrderItem, error) {
	type line struct {
		product  domain.Product
		quantity int
	}

	lines := make([]line, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		product, ok := catalog.Match(products, item.ID)
		if !ok {
			return nil, nil, errors.Wrap(ErrUnresolvedItem, item.ID)
		}
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		lines = append(lines, line{product: product, quantity: qty})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(qty))))
	}

	now := time.Now()
	order := &domain.Order{
		ID:        common.UUIDint64(),
		UserID:    userID,
		Status:    domain.OrderStatusPending,
		Total:     total,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		if common.IsRecoverableStoreError(err) {
			zap.L().Warn("order table unavailable, synthesizing order", zap.Error(err))
		} else {
			zap.L().Warn("order insert failed, synthesizing order", zap.Error(err))
		}
		metrics.CounterInc(metrics.CheckoutOrderFallback)
		order.ID = common.UUIDint64()
		order.Synthetic = true
	}

	orderItems := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		orderItems = append(orderItems, domain.OrderItem{
			ID:        common.UUIDint64(),
			OrderID:   order.ID,
			ProductID: l.product.ID,
			Quantity:  l.quantity,
			UnitPrice: l.product.Price,
			CreatedAt: now,
		})
	}

	if !order.Synthetic {
		if err := s.repo.CreateOrderItems(ctx, orderItems); err != nil {
			// best effort, no retry and no rollback of the header
			zap.L().Error("order items insert failed, continuing checkout",
				zap.Int64("order_id", order.ID), zap.Error(err))
		}
	}

	return order, orderItems, nil
}
