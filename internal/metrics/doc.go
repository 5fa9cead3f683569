// Package metrics records parity run outcomes for Prometheus.
//
// Components receive a Recorder. NoopRecorder is the default when no
// textfile is configured; PrometheusRecorder keeps gauges in its own
// registry and writes them atomically in the node-exporter textfile format
// so a cron-driven check can be scraped without running a server.
package metrics
