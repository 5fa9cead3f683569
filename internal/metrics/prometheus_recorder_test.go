package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gaugeValues gathers reg into name{label-values} -> value.
func gaugeValues(t *testing.T, reg *prom.Registry) map[string]float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]float64)
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				key += "{" + lp.GetValue() + "}"
			}
			out[key] = m.GetGauge().GetValue()
		}
	}
	return out
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	path := filepath.Join(t.TempDir(), "textfile", "exposeparity.prom")
	pr := NewPrometheusRecorder(reg, path)

	pr.ObserveGenerator("shell", 1500*time.Millisecond, false)
	pr.ObserveGenerator("python", 2*time.Second, true)
	pr.RecordRun(map[string]int{"match": 5, "mismatch": 1}, false, time.Unix(1700000000, 0))

	values := gaugeValues(t, reg)
	assert.InDelta(t, 5.0, values["exposeparity_checks{match}"], 0)
	assert.InDelta(t, 0.0, values["exposeparity_last_run_passed"], 0)
	assert.InDelta(t, 1.5, values["exposeparity_generator_duration_seconds{shell}"], 0.0001)
	assert.InDelta(t, 1.0, values["exposeparity_generator_failed{python}"], 0)

	require.NoError(t, pr.Flush())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `exposeparity_checks{status="mismatch"} 1`)
	assert.Contains(t, out, "exposeparity_last_run_passed 0")
	assert.Contains(t, out, "exposeparity_last_run_timestamp_seconds 1.7e+09")
	assert.Contains(t, out, `exposeparity_generator_duration_seconds{implementation="python"} 2`)
}

func TestPrometheusRecorder_RecordRunResetsStatuses(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg, "")
	pr.RecordRun(map[string]int{"missing": 3}, false, time.Now())
	pr.RecordRun(map[string]int{"match": 2}, true, time.Now())

	values := gaugeValues(t, reg)
	_, stale := values["exposeparity_checks{missing}"]
	assert.False(t, stale)
	assert.InDelta(t, 2.0, values["exposeparity_checks{match}"], 0)
	assert.InDelta(t, 1.0, values["exposeparity_last_run_passed"], 0)
	require.NoError(t, pr.Flush(), "no textfile configured")
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveGenerator("shell", time.Second, false)
	r.RecordRun(nil, true, time.Now())
	require.NoError(t, r.Flush())
}
