package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus gauges.
type PrometheusRecorder struct {
	reg               *prom.Registry
	textfile          string
	checks            *prom.GaugeVec
	lastPassed        prom.Gauge
	lastTimestamp     prom.Gauge
	generatorDuration *prom.GaugeVec
	generatorFailed   *prom.GaugeVec
}

// NewPrometheusRecorder constructs and registers the run metrics. Flush
// writes them to textfile.
func NewPrometheusRecorder(reg *prom.Registry, textfile string) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg:      reg,
		textfile: textfile,
		checks: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "exposeparity",
			Name:      "checks",
			Help:      "Check results of the last run by status",
		}, []string{"status"}),
		lastPassed: prom.NewGauge(prom.GaugeOpts{
			Namespace: "exposeparity",
			Name:      "last_run_passed",
			Help:      "1 when the last run found the outputs in parity",
		}),
		lastTimestamp: prom.NewGauge(prom.GaugeOpts{
			Namespace: "exposeparity",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
		generatorDuration: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "exposeparity",
			Name:      "generator_duration_seconds",
			Help:      "Wall time of each generator in the last run",
		}, []string{"implementation"}),
		generatorFailed: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "exposeparity",
			Name:      "generator_failed",
			Help:      "1 when the generator failed in the last run",
		}, []string{"implementation"}),
	}
	reg.MustRegister(pr.checks, pr.lastPassed, pr.lastTimestamp, pr.generatorDuration, pr.generatorFailed)
	return pr
}

func (p *PrometheusRecorder) ObserveGenerator(implementation string, d time.Duration, failed bool) {
	p.generatorDuration.WithLabelValues(implementation).Set(d.Seconds())
	p.generatorFailed.WithLabelValues(implementation).Set(boolToFloat(failed))
}

func (p *PrometheusRecorder) RecordRun(counts map[string]int, passed bool, finished time.Time) {
	p.checks.Reset()
	for status, n := range counts {
		p.checks.WithLabelValues(status).Set(float64(n))
	}
	p.lastPassed.Set(boolToFloat(passed))
	p.lastTimestamp.Set(float64(finished.Unix()))
}

// Flush writes all registered metrics to the textfile.
func (p *PrometheusRecorder) Flush() error {
	if p.textfile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p.textfile), 0o750); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prom.WriteToTextfile(p.textfile, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
