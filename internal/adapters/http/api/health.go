// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"runtime"
	"sync"

	"github.com/okian/badger/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	metrics http.Handler

	mu     sync.Mutex
	lastGC uint32
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz requests and returns Prometheus metrics
// after refreshing the runtime gauges.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.sampleRuntime()
	h.metrics.ServeHTTP(w, r)
}

func (h *HealthHandler) sampleRuntime() {
	h.mu.Lock()
	defer h.mu.Unlock()

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	metrics.UpdateSystemMemoryUsage(ms.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	// PauseNs is a ring of the most recent 256 pauses.
	from := h.lastGC
	if ms.NumGC-from > uint32(len(ms.PauseNs)) {
		from = ms.NumGC - uint32(len(ms.PauseNs))
	}
	for i := from; i < ms.NumGC; i++ {
		pause := ms.PauseNs[i%uint32(len(ms.PauseNs))]
		metrics.RecordSystemGCPauseTime(float64(pause) / 1e6)
	}
	h.lastGC = ms.NumGC
}
