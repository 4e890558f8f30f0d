package calendar

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "availcal",
		Subsystem: "calendar",
		Name:      "sessions_opened_total",
		Help:      "Calendar editing sessions opened.",
	})

	operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "availcal",
		Subsystem: "calendar",
		Name:      "operations_total",
		Help:      "Calendar session operations by outcome.",
	}, []string{"operation", "result"})

	saves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "availcal",
		Subsystem: "calendar",
		Name:      "saves_total",
		Help:      "Availability saves by outcome.",
	}, []string{"outcome"})

	skippedRanges = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "availcal",
		Subsystem: "calendar",
		Name:      "skipped_ranges_total",
		Help:      "Stored ranges dropped by lenient decoding.",
	})
)
