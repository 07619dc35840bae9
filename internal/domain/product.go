package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product categories
const (
	CategoryEbook    = "ebook"
	CategoryPrompts  = "prompts"
	CategoryVideo    = "video"
	CategoryCoaching = "coaching"
	CategorySupport  = "support"
	CategoryTest     = "test"
)

// Product is a catalog item. Rows are immutable once listed; price changes
// produce new rows rather than edits so order snapshots stay meaningful.
type Product struct {
	ID        string          `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string          `gorm:"index" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
	Category  string          `gorm:"size:32;index" json:"category"`
	Image     string          `gorm:"size:1024" json:"image"`
	Active    bool            `gorm:"index" json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
