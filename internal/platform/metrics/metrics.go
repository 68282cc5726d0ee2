package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReservationOpsTotal counts engine operations by outcome, where outcome
	// is "success" or the name of the error kind returned.
	ReservationOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seatlock_reservation_operations_total",
			Help: "Total number of reservation engine operations.",
		},
		[]string{"op", "outcome"},
	)

	SeatLockContentionTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seatlock_seat_lock_contention_total",
			Help: "Seat lock acquisitions lost to another owner.",
		},
	)

	SweptHoldsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seatlock_swept_holds_total",
			Help: "Expired holds removed by the sweeper.",
		},
	)

	NotifyFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seatlock_notify_failures_total",
			Help: "Availability notifications that could not be delivered.",
		},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seatlock_http_requests_total",
			Help: "Total number of http requests handled by the service.",
		},
		[]string{"path", "method", "code"},
	)
)
