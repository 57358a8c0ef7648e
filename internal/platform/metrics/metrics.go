package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_created_total",
			Help: "Tickets created, by initial status",
		},
		[]string{"status"},
	)

	ticketAssignments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_assignments_total",
			Help: "Ticket holder assignments, by mode and result",
		},
		[]string{"mode", "result"},
	)

	ticketValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_validations_total",
			Help: "Ticket validation attempts, by outcome",
		},
		[]string{"outcome"},
	)

	ticketCodeCollisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticket_code_collisions_total",
			Help: "Generated ticket codes rejected by the store as duplicates",
		},
	)

	eventCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_cache_lookups_total",
			Help: "Event listing cache lookups, by result",
		},
		[]string{"result"},
	)
)

func TrackTicketsCreated(status string, n int) {
	ticketsCreated.WithLabelValues(status).Add(float64(n))
}

func TrackAssignment(mode, result string) {
	ticketAssignments.WithLabelValues(mode, result).Inc()
}

func TrackValidation(outcome string) {
	ticketValidations.WithLabelValues(outcome).Inc()
}

func TrackCodeCollision() {
	ticketCodeCollisions.Inc()
}

func TrackEventCache(hit bool) {
	if hit {
		eventCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	eventCacheLookups.WithLabelValues("miss").Inc()
}
