// Package metrics exposes translation statistics as Prometheus metrics.
//
// Metrics:
//   - logalizer_lines_total: input lines by outcome
//   - logalizer_entries_total: matched lines appended to or suppressed from the translation
//   - logalizer_rule_hits_total: matched lines per rule, labelled by print template
//   - logalizer_translate_duration_seconds: time spent translating one log
//
// logalizer runs as a one-shot command, so metrics are written to a
// node-exporter textfile rather than served.
package metrics

import (
	"time"

	"github.com/bimmerbailey/logalizer/internal/errors"
	"github.com/bimmerbailey/logalizer/internal/translate"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "logalizer"

// Collector records translation events. It satisfies translate.Recorder.
type Collector struct {
	registry *prometheus.Registry

	linesTotal   *prometheus.CounterVec
	entriesTotal *prometheus.CounterVec
	ruleHits     *prometheus.CounterVec
	duration     prometheus.Histogram
}

var _ translate.Recorder = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with registry.
// A nil registry gets a fresh one.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		linesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lines_total",
				Help:      "Total number of input lines by outcome",
			},
			[]string{"outcome"},
		),
		entriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entries_total",
				Help:      "Total number of translation entries by outcome",
			},
			[]string{"outcome"},
		),
		ruleHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_hits_total",
				Help:      "Total number of lines matched per translation rule",
			},
			[]string{"rule"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "translate_duration_seconds",
				Help:      "Duration of a single log translation in seconds",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
			},
		),
	}

	registry.MustRegister(c.linesTotal, c.entriesTotal, c.ruleHits, c.duration)

	// Pre-create outcome series so they are present at zero.
	for _, outcome := range []translate.LineOutcome{
		translate.LineDeleted,
		translate.LineMatched,
		translate.LineUnmatched,
		translate.LineBlacklisted,
	} {
		c.linesTotal.WithLabelValues(string(outcome))
	}
	c.entriesTotal.WithLabelValues(entryAppended)
	c.entriesTotal.WithLabelValues(entrySuppressed)

	return c
}

const (
	entryAppended   = "appended"
	entrySuppressed = "suppressed"
)

// ObserveLine counts one input line. rule is empty unless the line matched.
func (c *Collector) ObserveLine(outcome translate.LineOutcome, rule string) {
	c.linesTotal.WithLabelValues(string(outcome)).Inc()
	if outcome == translate.LineMatched {
		c.ruleHits.WithLabelValues(rule).Inc()
	}
}

// ObserveEntry counts one matched line by whether it was appended.
func (c *Collector) ObserveEntry(appended bool) {
	if appended {
		c.entriesTotal.WithLabelValues(entryAppended).Inc()
		return
	}
	c.entriesTotal.WithLabelValues(entrySuppressed).Inc()
}

// ObserveDuration records how long one translation took.
func (c *Collector) ObserveDuration(d time.Duration) {
	c.duration.Observe(d.Seconds())
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes every registered metric to path in the text
// exposition format. The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return errors.FileOp(err, errors.ErrFileWrite, "write metrics textfile", path)
	}
	return nil
}
