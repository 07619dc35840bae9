package app

import (
	"sync"
	"time"

	"github.com/spf13/cast"
	"github.com/ventaroai/ventaro-server/internal/domain"
	"go.uber.org/zap"
)

const settingsCacheTTL = 60 * time.Second

// ConfigManager caches SysConfig rows so hot paths never query the
// settings table per request.
type ConfigManager struct {
	app      *Application
	mu       sync.RWMutex
	values   map[string]string
	loadedAt time.Time
}

func NewConfigManager(app *Application) *ConfigManager {
	return &ConfigManager{app: app, values: make(map[string]string)}
}

func (m *ConfigManager) reloadIfStale() {
	m.mu.RLock()
	fresh := time.Since(m.loadedAt) < settingsCacheTTL
	m.mu.RUnlock()
	if fresh {
		return
	}

	var rows []domain.SysConfig
	if err := m.app.gormDB.Find(&rows).Error; err != nil {
		zap.L().Warn("failed to reload settings", zap.Error(err))
		return
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Type+"."+row.Name] = row.Value
	}

	m.mu.Lock()
	m.values = values
	m.loadedAt = time.Now()
	m.mu.Unlock()
}

func (m *ConfigManager) get(category, key string) string {
	m.reloadIfStale()
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[category+"."+key]
}

func (m *ConfigManager) GetString(category, key string) string {
	return m.get(category, key)
}

func (m *ConfigManager) GetInt64(category, key string) int64 {
	return cast.ToInt64(m.get(category, key))
}

func (m *ConfigManager) GetBool(category, key string) bool {
	return cast.ToBool(m.get(category, key))
}
