// Package metrics records batch run metrics in the Prometheus textfile format,
// to be picked up by the node exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Run collects the metrics of one training or prediction run
type Run struct {
	registry *prometheus.Registry
	start    time.Time

	Samples  prometheus.Counter
	Files    prometheus.Counter
	Success  prometheus.Gauge
	Duration prometheus.Gauge
	Last     prometheus.Gauge
}

// NewRun creates the metrics of a run in mode ("train" or "predict")
func NewRun(mode string) *Run {
	labels := prometheus.Labels{"mode": mode}
	r := &Run{
		registry: prometheus.NewRegistry(),
		start:    time.Now(),
		Samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "castanet", Name: "samples_total",
			Help: "Samples read from the input files.", ConstLabels: labels,
		}),
		Files: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "castanet", Name: "input_files_total",
			Help: "Input files processed.", ConstLabels: labels,
		}),
		Success: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "castanet", Name: "success_rate_percent",
			Help: "Share of labelled samples classified correctly.", ConstLabels: labels,
		}),
		Duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "castanet", Name: "run_duration_seconds",
			Help: "Wall time of the run.", ConstLabels: labels,
		}),
		Last: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "castanet", Name: "last_run_timestamp_seconds",
			Help: "Unix time the run finished.", ConstLabels: labels,
		}),
	}
	r.registry.MustRegister(r.Samples, r.Files, r.Success, r.Duration, r.Last)
	return r
}

// Write stamps the duration and writes the textfile. An empty name disables it.
func (r *Run) Write(name string) error {
	r.Duration.Set(time.Since(r.start).Seconds())
	r.Last.SetToCurrentTime()
	if name == "" {
		return nil
	}
	return prometheus.WriteToTextfile(name, r.registry)
}
