// Package telemetry provides Prometheus metrics for the bot daemon.
package telemetry

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	// Counters
	PollCycles        prometheus.Counter
	NotificationsSent prometheus.Counter
	SendFailures      prometheus.Counter
	UpstreamErrors    prometheus.Counter
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		PollCycles = promauto.NewCounter(prometheus.CounterOpts{Name: "bot_poll_cycles_total", Help: "Number of completed polling cycles"})
		NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{Name: "bot_notifications_sent_total", Help: "Number of match alerts delivered"})
		SendFailures = promauto.NewCounter(prometheus.CounterOpts{Name: "bot_notification_send_failures_total", Help: "Number of alert deliveries rejected by the transport"})
		UpstreamErrors = promauto.NewCounter(prometheus.CounterOpts{Name: "bot_pandascore_errors_total", Help: "Number of failed PandaScore API calls"})
	})
}

// IncPollCycle counts one completed polling cycle.
func IncPollCycle() {
	if PollCycles != nil {
		PollCycles.Inc()
	}
}

// IncNotificationSent counts one delivered alert.
func IncNotificationSent() {
	if NotificationsSent != nil {
		NotificationsSent.Inc()
	}
}

// IncSendFailure counts one rejected delivery.
func IncSendFailure() {
	if SendFailures != nil {
		SendFailures.Inc()
	}
}

// IncUpstreamError counts one failed upstream API call.
func IncUpstreamError() {
	if UpstreamErrors != nil {
		UpstreamErrors.Inc()
	}
}

// Serve exposes /metrics on addr in a background goroutine. A no-op when
// addr is empty.
func Serve(addr string) {
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Metrics listener started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics listener stopped", "error", err)
		}
	}()
}
