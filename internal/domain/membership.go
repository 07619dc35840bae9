package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Billing cycles
const (
	BillingMonthly = "monthly"
	BillingYearly  = "yearly"
)

// Membership status values
const (
	MembershipActive    = "active"
	MembershipCancelled = "cancelled"
	MembershipPastDue   = "past_due"
)

// MembershipTier is static reference data. Level is ordinal; a higher
// level grants access to everything a lower level does.
type MembershipTier struct {
	ID                 string           `gorm:"primaryKey;size:64" json:"id"`
	Name               string           `json:"name"`
	Level              int              `gorm:"index" json:"level"`
	PriceMonthly       decimal.Decimal  `gorm:"type:decimal(12,2)" json:"price_monthly"`
	PriceYearly        *decimal.Decimal `gorm:"type:decimal(12,2)" json:"price_yearly"`
	StripePriceMonthly string           `gorm:"size:128" json:"stripe_price_monthly"`
	StripePriceYearly  string           `gorm:"size:128" json:"stripe_price_yearly"`
	Features           string           `gorm:"type:text" json:"features"`
	Active             bool             `gorm:"index" json:"active"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// UserMembership links a user to their current tier. Mutated exclusively
// by webhook handling, read by the tier gate.
type UserMembership struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"size:128;index" json:"user_id"`
	TierID       string    `gorm:"size:64;index" json:"tier_id"`
	BillingCycle string    `gorm:"size:16" json:"billing_cycle"`
	Status       string    `gorm:"size:16;index" json:"status"`
	RenewsAt     time.Time `json:"renews_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
