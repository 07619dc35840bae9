package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ventaroai/ventaro-server/internal/domain"
	"github.com/ventaroai/ventaro-server/internal/ordering"
	"go.uber.org/zap"
)

// StartSchedulerService runs enabled schedulers periodically
func (a *Application) StartSchedulerService(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.runSchedulers()
			}
		}
	}()
}

// runSchedulers executes enabled schedulers that are due
func (a *Application) runSchedulers() {
	var schedulers []domain.SysScheduler
	a.gormDB.Where("status = ?", "enabled").Find(&schedulers)
	now := time.Now()
	for _, sched := range schedulers {
		if sched.NextRunAt.IsZero() || now.After(sched.NextRunAt) || now.Equal(sched.NextRunAt) {
			a.runScheduler(&sched)
			a.gormDB.Model(&domain.SysScheduler{}).
				Where("id = ?", sched.ID).
				Update("next_run_at", now.Add(time.Duration(sched.Interval)*time.Second))
		}
	}
}

func (a *Application) runScheduler(sched *domain.SysScheduler) {
	var result, message string
	switch sched.TaskType {
	case "purge_pending_orders":
		result, message = a.runPurgePendingOrders()
	case "prune_email_log":
		result, message = a.runPruneEmailLog()
	default:
		return
	}

	a.gormDB.Model(&domain.SysScheduler{}).Where("id = ?", sched.ID).Updates(map[string]interface{}{
		"last_run_at":  time.Now(),
		"last_result":  result,
		"last_message": message,
	})
}

func (a *Application) runPurgePendingOrders() (string, string) {
	days := a.GetSettingsInt64Value("checkout", "purge_days")
	if days <= 0 {
		days = 90
	}
	repo := ordering.NewGormOrderRepository(a.gormDB)
	removed, err := repo.PurgeStalePending(context.Background(), int(days))
	if err != nil {
		zap.L().Error("purge pending orders failed", zap.Error(err))
		return "failed", err.Error()
	}
	return "success", fmt.Sprintf("removed %d stale pending orders", removed)
}

func (a *Application) runPruneEmailLog() (string, string) {
	keepDays := a.GetSettingsInt64Value("mail", "log_keep_days")
	if keepDays <= 0 {
		keepDays = 30
	}
	res := a.gormDB.
		Where("sent_at < ?", time.Now().AddDate(0, 0, -int(keepDays))).
		Delete(&domain.EmailLog{})
	if res.Error != nil {
		zap.L().Error("prune email log failed", zap.Error(res.Error))
		return "failed", res.Error.Error()
	}
	return "success", fmt.Sprintf("removed %d email log rows", res.RowsAffected)
}

// RunSchedulerNow triggers a scheduler execution immediately by ID
func (a *Application) RunSchedulerNow(id int64) error {
	var sched domain.SysScheduler
	if err := a.gormDB.First(&sched, id).Error; err != nil {
		return err
	}

	a.runScheduler(&sched)

	now := time.Now()
	a.gormDB.Model(&domain.SysScheduler{}).Where("id = ?", sched.ID).Updates(map[string]interface{}{
		"last_run_at": now,
		"next_run_at": now.Add(time.Duration(sched.Interval) * time.Second),
	})
	return nil
}
