package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lodge",
			Name:      "bookings_created_total",
			Help:      "Bookings created.",
		},
	)

	bookingsSettled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lodge",
			Name:      "bookings_settled_total",
			Help:      "Bookings moved to a terminal status.",
		},
		[]string{"status"},
	)

	sweepRuns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lodge",
			Name:      "booking_sweep_runs_total",
			Help:      "Expired-booking sweep executions.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lodge",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and path.",
		},
		[]string{"method", "path"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, bookingsSettled, sweepRuns, httpRequests)
	})
}

// IncBookingCreated increments the created-bookings counter.
func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncBookingSettled increments the terminal-status counter for a status label.
func IncBookingSettled(status string) {
	bookingsSettled.WithLabelValues(status).Inc()
}

// IncSweepRun increments the sweep execution counter.
func IncSweepRun() {
	sweepRuns.Inc()
}

// IncHTTP increments the request counter for a method and path.
func IncHTTP(method, path string) {
	httpRequests.WithLabelValues(method, path).Inc()
}
