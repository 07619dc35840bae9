package app

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/ventaroai/ventaro-server/internal/catalog"
	"github.com/ventaroai/ventaro-server/internal/domain"
	"github.com/ventaroai/ventaro-server/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *Application) checkAdmin() {
	const adminEmail = "admin@ventaroai.com"
	const defaultPassword = "ventaro"

	hashedPassword := common.Sha256HashWithSalt(defaultPassword, common.GetSecretSalt())

	var admin domain.User
	err := a.gormDB.Where("level = ?", domain.UserLevelAdmin).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.User{
			ID:        uuid.NewString(),
			Email:     adminEmail,
			Password:  hashedPassword,
			Realname:  "administrator",
			Level:     domain.UserLevelAdmin,
			Status:    common.ENABLED,
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default admin account", zap.String("email", adminEmail))
		}
		return
	case err != nil:
		zap.L().Error("failed to query admin account", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(admin.Password) == ""
	resetStatus := !strings.EqualFold(admin.Status, common.ENABLED)
	if !resetPassword && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.User{}).Where("id = ?", admin.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair admin account", zap.Error(err))
		return
	}
	zap.L().Warn("repaired default admin account",
		zap.String("email", admin.Email),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("statusEnabled", resetStatus))
}

type configSchema struct {
	Key         string
	Default     string
	Description string
}

var configSchemas = []configSchema{
	{Key: "site.url", Default: "", Description: "Public site origin for checkout redirect URLs"},
	{Key: "site.notify_email", Default: "chase@ventaroai.com", Description: "Admin notification address"},
	{Key: "checkout.purge_days", Default: "90", Description: "Days before stale pending orders are purged"},
	{Key: "mail.log_keep_days", Default: "30", Description: "Days to keep email audit logs"},
}

func (a *Application) checkSettings() {
	for sortid, schema := range configSchemas {
		parts := strings.SplitN(schema.Key, ".", 2)
		if len(parts) != 2 {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}

		category := parts[0]
		name := parts[1]

		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				ID:     common.UUIDint64(),
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}

// checkTiers initializes the membership tier reference data
func (a *Application) checkTiers() {
	yearly := func(v float64) *decimal.Decimal {
		d := decimal.NewFromFloat(v)
		return &d
	}
	defaultTiers := []domain.MembershipTier{
		{
			ID:                 "starter",
			Name:               "Starter",
			Level:              1,
			PriceMonthly:       decimal.NewFromFloat(29.00),
			PriceYearly:        yearly(290.00),
			StripePriceMonthly: "price_starter_monthly",
			StripePriceYearly:  "price_starter_yearly",
			Features:           `["AI toolbox","Community access"]`,
			Active:             true,
		},
		{
			ID:                 "pro",
			Name:               "Pro",
			Level:              2,
			PriceMonthly:       decimal.NewFromFloat(79.00),
			PriceYearly:        yearly(790.00),
			StripePriceMonthly: "price_pro_monthly",
			StripePriceYearly:  "price_pro_yearly",
			Features:           `["AI toolbox","Community access","Monthly group coaching"]`,
			Active:             true,
		},
		{
			ID:                 "elite",
			Name:               "Elite",
			Level:              3,
			PriceMonthly:       decimal.NewFromFloat(199.00),
			StripePriceMonthly: "price_elite_monthly",
			Features:           `["Everything in Pro","1:1 coaching","Priority support"]`,
			Active:             true,
		},
	}

	for _, tier := range defaultTiers {
		var count int64
		a.gormDB.Model(&domain.MembershipTier{}).Where("id = ?", tier.ID).Count(&count)
		if count == 0 {
			tier.CreatedAt = time.Now()
			tier.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&tier).Error; err != nil {
				zap.L().Error("failed to create default tier", zap.String("id", tier.ID), zap.Error(err))
			} else {
				zap.L().Info("initialized default tier", zap.String("id", tier.ID))
			}
		}
	}
}

// checkProducts seeds the store catalog from the fallback snapshot so the
// two sources start out identical.
func (a *Application) checkProducts() {
	for _, p := range catalog.Fallback() {
		canonical := catalog.CanonicalID(p.ID)
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("id = ?", canonical).Count(&count)
		if count == 0 {
			p.ID = canonical
			p.CreatedAt = time.Now()
			p.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("name", p.Name))
			}
		}
	}
}

// checkSchedulers initializes default maintenance tasks
func (a *Application) checkSchedulers() {
	defaultSchedulers := []domain.SysScheduler{
		{
			Name:     "Purge Stale Pending Orders",
			TaskType: "purge_pending_orders",
			Interval: 86400,
			Status:   common.ENABLED,
			Remark:   "Removes pending orders never completed by the gateway",
		},
		{
			Name:     "Prune Email Log",
			TaskType: "prune_email_log",
			Interval: 86400,
			Status:   common.ENABLED,
			Remark:   "Removes old email delivery audit rows",
		},
	}

	for _, sched := range defaultSchedulers {
		var count int64
		a.gormDB.Model(&domain.SysScheduler{}).
			Where("task_type = ?", sched.TaskType).
			Count(&count)

		if count == 0 {
			sched.NextRunAt = time.Now().Add(time.Duration(sched.Interval) * time.Second)
			if err := a.gormDB.Create(&sched).Error; err != nil {
				zap.L().Error("failed to create default scheduler",
					zap.String("name", sched.Name),
					zap.Error(err))
			} else {
				zap.L().Info("initialized default scheduler",
					zap.String("name", sched.Name),
					zap.String("task_type", sched.TaskType))
			}
		}
	}
}
