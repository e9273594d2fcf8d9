// Package metrics holds the scheduler's Prometheus instruments. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/vaxscheduler/internal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "vaxscheduler"
	subsystem = "scheduler"
)

type Metrics struct {
	Reservations        *prometheus.CounterVec
	ReservationDuration prometheus.Histogram
	ReservationRetries  prometheus.Counter
	Commands            *prometheus.CounterVec
	EventsPublished     *prometheus.CounterVec
}

// New creates the instruments and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Reservations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reservations_total",
			Help:      "Reservation attempts by outcome",
		}, []string{"outcome"}),
		ReservationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reservation_duration_seconds",
			Help:      "Time spent in a reservation including its retry",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		ReservationRetries: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reservation_retries_total",
			Help:      "Reservations whose unit of work was run a second time",
		}),
		Commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "commands_total",
			Help:      "Commands handled by the interactive front end",
		}, []string{"command", "outcome"}),
		EventsPublished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "events_published_total",
			Help:      "Appointment events handed to the broker",
		}, []string{"status"}),
	}
}

func (m *Metrics) ReservationFinished(err error, d time.Duration) {
	if m == nil {
		return
	}
	m.Reservations.WithLabelValues(Outcome(err)).Inc()
	m.ReservationDuration.Observe(d.Seconds())
}

func (m *Metrics) ReservationRetried() {
	if m == nil {
		return
	}
	m.ReservationRetries.Inc()
}

func (m *Metrics) CommandHandled(command string, err error) {
	if m == nil {
		return
	}
	m.Commands.WithLabelValues(command, Outcome(err)).Inc()
}

func (m *Metrics) EventPublished(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.EventsPublished.WithLabelValues(status).Inc()
}

// Outcome maps an operation result to a low-cardinality label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, common.ErrReservationFailed):
		return "reservation_failed"
	case errors.Is(err, common.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, common.ErrNoAvailability):
		return "no_availability"
	case errors.Is(err, common.ErrNotFound):
		return "not_found"
	case errors.Is(err, common.ErrDuplicateKey):
		return "duplicate_key"
	case errors.Is(err, common.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, common.ErrAuthFailure):
		return "auth_failure"
	case errors.Is(err, common.ErrStorageUnavailable):
		return "storage_unavailable"
	default:
		return "error"
	}
}
