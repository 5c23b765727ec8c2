package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the checkout Process flow, end to end
	CheckoutDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_process_latency_seconds",
		Help:    "Latency of checkout processing",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of checkouts completed
	CheckoutProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_processed_total",
		Help: "Total number of checkouts processed successfully",
	})

	// Total number of checkouts rejected or failed
	CheckoutFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_failed_total",
		Help: "Total number of checkouts that failed",
	})

	// Audit rows appended, by entity and action
	AuditRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_records_total",
		Help: "Total number of audit log rows appended",
	}, []string{"entity", "action"})
)

func Init() {
	prometheus.MustRegister(
		CheckoutDuration,
		CheckoutProcessed,
		CheckoutFailed,
		AuditRecords,
	)
}
