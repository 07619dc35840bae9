package membership

import (
	"context"

	"github.com/pkg/errors"
	"github.com/ventaroai/ventaro-server/internal/domain"
)

var (
	// ErrTierNotFound means the requested tier does not exist or is inactive
	ErrTierNotFound = errors.New("membership tier not found")

	// ErrNoPriceForCycle means the tier has no configured price for the
	// requested billing cycle
	ErrNoPriceForCycle = errors.New("no price configured for billing cycle")

	// ErrInvalidCycle means the billing cycle is neither monthly nor yearly
	ErrInvalidCycle = errors.New("invalid billing cycle")
)

// Service validates membership checkout requests against tier reference
// data
type Service struct {
	tiers TierRepository
}

func NewService(tiers TierRepository) *Service {
	return &Service{tiers: tiers}
}

// ResolveCheckout looks up the tier and picks the gateway price for the
// requested billing cycle. A missing tier, an unknown cycle, or a cycle
// with no configured price are all rejected before any session or email
// side effect happens.
func (s *Service) ResolveCheckout(ctx context.Context, tierID, cycle string) (*domain.MembershipTier, string, error) {
	tier, err := s.tiers.GetActive(ctx, tierID)
	if err != nil {
		return nil, "", ErrTierNotFound
	}

	switch cycle {
	case domain.BillingMonthly:
		if tier.StripePriceMonthly == "" {
			return nil, "", ErrNoPriceForCycle
		}
		return tier, tier.StripePriceMonthly, nil
	case domain.BillingYearly:
		if tier.PriceYearly == nil || tier.StripePriceYearly == "" {
			return nil, "", ErrNoPriceForCycle
		}
		return tier, tier.StripePriceYearly, nil
	default:
		return nil, "", ErrInvalidCycle
	}
}

// UserTierLevel returns the tier level for a user's active membership,
// defaulting to zero when the user has none.
func UserTierLevel(ctx context.Context, memberships MembershipRepository, tiers TierRepository, userID string) int {
	m, err := memberships.GetActiveByUser(ctx, userID)
	if err != nil {
		return 0
	}
	tier, err := tiers.GetActive(ctx, m.TierID)
	if err != nil {
		return 0
	}
	return tier.Level
}
