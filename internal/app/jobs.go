package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/ventaroai/ventaro-server/internal/domain"
	"github.com/ventaroai/ventaro-server/pkg/metrics"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		keepDays := a.GetSettingsInt64Value("mail", "log_keep_days")
		if keepDays <= 0 {
			keepDays = 30
		}
		a.gormDB.
			Where("sent_at < ?", time.Now().AddDate(0, 0, -int(keepDays))).
			Delete(&domain.EmailLog{})
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedSystemMonitorTask samples host cpu/mem into the metrics store
func (a *Application) SchedSystemMonitorTask() {
	if percents, err := cpu.Percent(time.Second, false); err == nil && len(percents) > 0 {
		metrics.GaugeSet(metrics.SystemCpuUsage, percents[0])
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		metrics.GaugeSet(metrics.SystemMemUsage, vm.UsedPercent)
	}
}
