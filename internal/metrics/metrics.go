package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "greenjourney_searches_total",
		Help: "The total number of journey searches, by outcome",
	}, []string{"outcome"})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "greenjourney_search_duration_seconds",
		Help:    "Time spent loading, pricing and ranking search results",
		Buckets: prometheus.DefBuckets,
	})

	PendingCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "greenjourney_pending_bookings_created_total",
		Help: "The total number of priced selections awaiting payment",
	})

	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "greenjourney_bookings_created_total",
		Help: "The total number of paid bookings",
	})

	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "greenjourney_bookings_cancelled_total",
		Help: "The total number of cancelled bookings",
	})

	PaymentsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "greenjourney_payments_rejected_total",
		Help: "The total number of payments that failed card validation",
	})
)
