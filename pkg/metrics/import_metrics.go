package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ImportRowsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "praxis_import_rows_added_total",
		Help: "Client rows added by spreadsheet imports.",
	})
	ImportRowsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "praxis_import_rows_skipped_total",
		Help: "Client rows skipped as duplicates by spreadsheet imports.",
	})
	ImportDiagnostics = promauto.NewCounter(prometheus.CounterOpts{
		Name: "praxis_import_diagnostics_total",
		Help: "Diagnostic messages produced by spreadsheet imports.",
	})
	ReciprocalTasksConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "praxis_reciprocal_tasks_confirmed_total",
		Help: "Reciprocal relationship tasks confirmed by users.",
	})
	ReciprocalTasksSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "praxis_reciprocal_tasks_skipped_total",
		Help: "Reciprocal relationship tasks skipped by users.",
	})
)
