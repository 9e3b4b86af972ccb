// Package metrics holds the Prometheus collectors shared by the parser
// front end, the type repositories and the scanner.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry collects only jsig's own metrics so that a text file dump
// stays small.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// SignaturesParsed counts signature parses.
	// Labels: kind (class, field, method, constructor), outcome (ok, error)
	SignaturesParsed = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jsig",
		Subsystem: "signature",
		Name:      "parsed_total",
		Help:      "Signatures parsed, by declaration kind and outcome",
	}, []string{"kind", "outcome"})

	// RepositoryLookups counts type repository traffic.
	// Labels: table (parameterized, variable), result (hit, miss, registered, shared)
	RepositoryLookups = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jsig",
		Subsystem: "repository",
		Name:      "lookups_total",
		Help:      "Type repository lookups and registrations",
	}, []string{"table", "result"})

	// ClassLoads counts class loader requests.
	// Labels: outcome (loaded, cached, missing, error)
	ClassLoads = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jsig",
		Subsystem: "loader",
		Name:      "class_loads_total",
		Help:      "Class loader requests by outcome",
	}, []string{"outcome"})

	// ScanDuration measures the time spent resolving one class.
	ScanDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: "jsig",
		Subsystem: "scan",
		Name:      "class_duration_seconds",
		Help:      "Time to parse and resolve every signature of a class",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	// ScanFailures counts members whose signature failed to parse or resolve.
	// Labels: reason (format, not_present, malformed, load)
	ScanFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jsig",
		Subsystem: "scan",
		Name:      "failures_total",
		Help:      "Members that failed to parse or resolve, by reason",
	}, []string{"reason"})
)

// Outcome maps an error to the outcome label used by SignaturesParsed.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// WriteFile dumps the registry in the text exposition format.
func WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
