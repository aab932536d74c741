package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SubscriptionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_subscriptions_created_total",
			Help: "Total number of subscriptions created",
		},
		[]string{"kind"},
	)

	SubscriptionCancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_subscription_cancellations_total",
			Help: "Total number of subscription cancellations",
		},
		[]string{"kind"},
	)

	PaymentsRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_payments_recorded_total",
			Help: "Total number of payment records created",
		},
		[]string{"type", "method"},
	)

	CheckInsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_checkins_total",
			Help: "Total number of member check-ins",
		},
	)

	CheckOutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_checkouts_total",
			Help: "Total number of member check-outs",
		},
	)

	ReportsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_reports_generated_total",
			Help: "Total number of report snapshots generated",
		},
		[]string{"type"},
	)

	EmailsQueuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_emails_queued_total",
			Help: "Total number of emails queued",
		},
		[]string{"type", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSubscription(kind string) {
	SubscriptionsCreatedTotal.WithLabelValues(kind).Inc()
}

func RecordSubscriptionCancellation(kind string) {
	SubscriptionCancellationsTotal.WithLabelValues(kind).Inc()
}

func RecordPayment(paymentType, method string) {
	PaymentsRecordedTotal.WithLabelValues(paymentType, method).Inc()
}

func RecordCheckIn() {
	CheckInsTotal.Inc()
}

func RecordCheckOut() {
	CheckOutsTotal.Inc()
}

func RecordReport(reportType string) {
	ReportsGeneratedTotal.WithLabelValues(reportType).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsQueuedTotal.WithLabelValues(emailType, status).Inc()
}
