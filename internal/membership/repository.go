package membership

import (
	"context"

	"github.com/ventaroai/ventaro-server/internal/domain"
	"gorm.io/gorm"
)

// TierRepository reads membership tier reference data
type TierRepository interface {
	// GetActive retrieves an active tier by id
	GetActive(ctx context.Context, id string) (*domain.MembershipTier, error)

	// ListActive returns all active tiers ordered by level
	ListActive(ctx context.Context) ([]domain.MembershipTier, error)
}

// MembershipRepository reads user membership state
type MembershipRepository interface {
	// GetActiveByUser retrieves the user's active membership, if any
	GetActiveByUser(ctx context.Context, userID string) (*domain.UserMembership, error)
}

// GormTierRepository is the GORM implementation of TierRepository
type GormTierRepository struct {
	db *gorm.DB
}

func NewGormTierRepository(db *gorm.DB) *GormTierRepository {
	return &GormTierRepository{db: db}
}

func (r *GormTierRepository) GetActive(ctx context.Context, id string) (*domain.MembershipTier, error) {
	var tier domain.MembershipTier
	err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&tier).Error
	if err != nil {
		return nil, err
	}
	return &tier, nil
}

func (r *GormTierRepository) ListActive(ctx context.Context) ([]domain.MembershipTier, error) {
	var tiers []domain.MembershipTier
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("level ASC").
		Find(&tiers).Error
	return tiers, err
}

// GormMembershipRepository is the GORM implementation of MembershipRepository
type GormMembershipRepository struct {
	db *gorm.DB
}

func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

func (r *GormMembershipRepository) GetActiveByUser(ctx context.Context, userID string) (*domain.UserMembership, error) {
	var m domain.UserMembership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, domain.MembershipActive).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}
