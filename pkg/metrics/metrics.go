package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
)

// Checkout funnel metric names
const (
	CheckoutAttempt         = "checkout_attempt"
	CheckoutCatalogFallback = "checkout_catalog_fallback"
	CheckoutOrderFallback   = "checkout_order_fallback"
	CheckoutSessionFallback = "checkout_session_fallback"
	CheckoutSessionMock     = "checkout_session_mock"
	MembershipCheckout      = "membership_checkout"
	SystemCpuUsage          = "system_cpu_usage"
	SystemMemUsage          = "system_mem_usage"
)

var (
	storage tstorage.Storage
	mu      sync.Mutex
)

// InitMetrics opens the embedded time-series store under workdir
func InitMetrics(workdir string) error {
	mu.Lock()
	defer mu.Unlock()
	st, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(30*24*time.Hour),
	)
	if err != nil {
		return err
	}
	storage = st
	return nil
}

// CounterInc records a single occurrence of the named metric
func CounterInc(name string) {
	insert(name, 1)
}

// GaugeSet records an instantaneous value for the named metric
func GaugeSet(name string, value float64) {
	insert(name, value)
}

func insert(name string, value float64) {
	mu.Lock()
	st := storage
	mu.Unlock()
	if st == nil {
		return
	}
	_ = st.InsertRows([]tstorage.Row{
		{
			Metric:    name,
			DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: value},
		},
	})
}

// Select returns data points for a metric in the [start, end] range
func Select(name string, start, end int64) ([]*tstorage.DataPoint, error) {
	mu.Lock()
	st := storage
	mu.Unlock()
	if st == nil {
		return nil, nil
	}
	return st.Select(name, nil, start, end)
}

// Close flushes and closes the metrics store
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}
