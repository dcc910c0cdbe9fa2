package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	PagesFetched      uint64            `json:"pages_fetched"`
	ProductsExtracted uint64            `json:"products_extracted"`
	ProductsWritten   uint64            `json:"products_written"`
	ErrorsTotal       uint64            `json:"errors_total"`
	RunSecondsAvg     float64           `json:"run_seconds_avg"`
	ErrorsByType      map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByComponent map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	pagesFetched      uint64
	productsExtracted uint64
	productsWritten   uint64
	errorsTotal       uint64

	runCount uint64
	runNanos uint64

	statsMu           sync.Mutex
	errorsByType      = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncPagesFetched(_ string) {
	atomic.AddUint64(&pagesFetched, 1)
}

func IncProductsExtracted(_ string) {
	atomic.AddUint64(&productsExtracted, 1)
}

func IncProductsWritten(_ string) {
	atomic.AddUint64(&productsWritten, 1)
}

func ObserveRunDuration(seconds float64) {
	if seconds <= 0 {
		return
	}
	atomic.AddUint64(&runCount, 1)
	atomic.AddUint64(&runNanos, uint64(seconds*1e9))
}

func IncError(errType, component string) {
	if errType == "" {
		errType = ErrorUnknown
	}
	if component == "" {
		component = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	errorsTypeCopy := copyMap(errorsByType)
	errorsComponentCopy := copyMap(errorsByComponent)
	statsMu.Unlock()

	count := atomic.LoadUint64(&runCount)
	avg := 0.0
	if count > 0 {
		avg = float64(atomic.LoadUint64(&runNanos)) / float64(count) / 1e9
	}

	return StatsSnapshot{
		PagesFetched:      atomic.LoadUint64(&pagesFetched),
		ProductsExtracted: atomic.LoadUint64(&productsExtracted),
		ProductsWritten:   atomic.LoadUint64(&productsWritten),
		ErrorsTotal:       atomic.LoadUint64(&errorsTotal),
		RunSecondsAvg:     avg,
		ErrorsByType:      errorsTypeCopy,
		ErrorsByComponent: errorsComponentCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
