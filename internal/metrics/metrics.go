package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	slotRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barber_booking",
			Name:      "slot_requests_total",
			Help:      "Count of availability slot lookups.",
		},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barber_booking",
			Name:      "bookings_created_total",
			Help:      "Count of bookings accepted.",
		},
	)

	bookingConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barber_booking",
			Name:      "booking_conflicts_total",
			Help:      "Count of submissions rejected because the slot was taken.",
		},
		[]string{"stage"}, // precheck or insert
	)

	statusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barber_booking",
			Name:      "booking_status_transitions_total",
			Help:      "Count of admin status transitions by target status.",
		},
		[]string{"status"},
	)

	notificationsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barber_booking",
			Name:      "notifications_failed_total",
			Help:      "Count of confirmation emails that could not be sent.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(slotRequests, bookingsCreated, bookingConflicts, statusTransitions, notificationsFailed)
	})
}

func IncSlotRequests() {
	slotRequests.Inc()
}

func IncBookingsCreated() {
	bookingsCreated.Inc()
}

func IncBookingConflict(stage string) {
	bookingConflicts.WithLabelValues(stage).Inc()
}

func IncStatusTransition(status string) {
	statusTransitions.WithLabelValues(status).Inc()
}

func IncNotificationFailed() {
	notificationsFailed.Inc()
}
