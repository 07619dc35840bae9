package domain

import "time"

// SysConfig is a runtime-tunable system setting (category + name + value)
type SysConfig struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Sort      int       `json:"sort"`
	Type      string    `gorm:"size:64;index" json:"type"`
	Name      string    `gorm:"size:128;index" json:"name"`
	Value     string    `gorm:"size:255" json:"value"`
	Remark    string    `gorm:"size:255" json:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SysScheduler is a database-driven maintenance task definition
type SysScheduler struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `json:"name"`
	TaskType    string    `gorm:"size:64;index" json:"task_type"`
	Interval    int       `json:"interval"` // seconds
	Status      string    `gorm:"size:16" json:"status"`
	LastRunAt   time.Time `json:"last_run_at"`
	NextRunAt   time.Time `json:"next_run_at"`
	LastResult  string    `gorm:"size:32" json:"last_result"`
	LastMessage string    `gorm:"size:255" json:"last_message"`
	Remark      string    `gorm:"size:255" json:"remark"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EmailLog is an audit row for every outbound mail attempt
type EmailLog struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	To       string    `gorm:"size:255;index" json:"to"`
	Subject  string    `gorm:"size:255" json:"subject"`
	Provider string    `gorm:"size:32" json:"provider"`
	Status   string    `gorm:"size:16" json:"status"`
	ErrorMsg string    `gorm:"size:512" json:"error_msg"`
	SentAt   time.Time `json:"sent_at"`
}

// NewsletterSubscriber is a double-opt-in newsletter signup
type NewsletterSubscriber struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255" json:"email"`
	Status    string    `gorm:"size:16" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
