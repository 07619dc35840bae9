package domain

import "time"

// User levels. Admin is a capability on the identity record; gated
// surfaces check the level rather than comparing email literals.
const (
	UserLevelAdmin = "admin"
	UserLevelUser  = "user"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:128" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255" json:"email"`
	Password  string    `gorm:"size:128" json:"-"`
	Realname  string    `gorm:"size:128" json:"realname"`
	Level     string    `gorm:"size:16;index" json:"level"`
	TierLevel int       `json:"tier_level"`
	Status    string    `gorm:"size:16" json:"status"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Purchase records that a user owns a specific product or coaching
// session. Written by webhook handling, read by entitlement lookups.
type Purchase struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:128;index" json:"user_id"`
	Email     string    `gorm:"size:255;index" json:"email"`
	ProductID string    `gorm:"size:64;index" json:"product_id"`
	SessionID string    `gorm:"size:128" json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
}
