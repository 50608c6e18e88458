// Package metrics collects Prometheus metrics for the scheduling core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the recording interface the services depend on.
type Collector interface {
	RecordInterviewCreated()
	RecordBookingAttempt()
	RecordBookingWin()
	RecordBookingConflict()
	RecordCandidatesImported(count int)
	RecordImportRejected()
}

// PrometheusCollector implements Collector on a Prometheus registry.
type PrometheusCollector struct {
	interviewsCreated  prometheus.Counter
	bookingAttempts    prometheus.Counter
	bookingWins        prometheus.Counter
	bookingConflicts   prometheus.Counter
	candidatesImported prometheus.Counter
	importsRejected    prometheus.Counter
}

// NewCollector creates a PrometheusCollector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		interviewsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_interviews_created_total",
			Help: "Total interviews created.",
		}),
		bookingAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_booking_attempts_total",
			Help: "Total slot booking attempts.",
		}),
		bookingWins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_booking_wins_total",
			Help: "Booking attempts that claimed the cell.",
		}),
		bookingConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_booking_conflicts_total",
			Help: "Booking attempts that lost the race to an occupied cell.",
		}),
		candidatesImported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_candidates_imported_total",
			Help: "Candidate rows accepted from spreadsheet imports.",
		}),
		importsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scheduler_imports_rejected_total",
			Help: "Spreadsheet imports rejected outright.",
		}),
	}

	reg.MustRegister(
		c.interviewsCreated,
		c.bookingAttempts,
		c.bookingWins,
		c.bookingConflicts,
		c.candidatesImported,
		c.importsRejected,
	)
	return c
}

func (c *PrometheusCollector) RecordInterviewCreated() { c.interviewsCreated.Inc() }

func (c *PrometheusCollector) RecordBookingAttempt() { c.bookingAttempts.Inc() }

func (c *PrometheusCollector) RecordBookingWin() { c.bookingWins.Inc() }

func (c *PrometheusCollector) RecordBookingConflict() { c.bookingConflicts.Inc() }

func (c *PrometheusCollector) RecordCandidatesImported(count int) {
	c.candidatesImported.Add(float64(count))
}

func (c *PrometheusCollector) RecordImportRejected() { c.importsRejected.Inc() }

// Nop is a Collector that records nothing. Useful in tests.
type Nop struct{}

func (Nop) RecordInterviewCreated()            {}
func (Nop) RecordBookingAttempt()              {}
func (Nop) RecordBookingWin()                  {}
func (Nop) RecordBookingConflict()             {}
func (Nop) RecordCandidatesImported(count int) {}
func (Nop) RecordImportRejected()              {}
