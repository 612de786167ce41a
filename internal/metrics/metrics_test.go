package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/location-screen/internal/model"
	"github.com/sells-group/location-screen/internal/screen"
)

func sampleResult() *screen.Result {
	return &screen.Result{
		RunID:    "run-1",
		Duration: 1500 * time.Millisecond,
		Scanned:  10,
		Flagged: []model.Verdict{
			{ID: "a", Reasons: []string{"Business type: gym", "Closes early at 5pm"}},
			{ID: "b", Reasons: []string{"Bar/pub with no daytime hours"}},
			{ID: "c", Reasons: []string{"Night-only indicators: late night", "Night-only hours detected"}},
		},
		Failures: []screen.Failure{{ID: "d", Error: "boom"}},
	}
}

func TestObserve(t *testing.T) {
	m := New()
	m.Observe(sampleResult())

	assert.Equal(t, 10.0, testutil.ToFloat64(m.scanned))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.flagged))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures))
	assert.Equal(t, 1.5, testutil.ToFloat64(m.lastDuration))

	for rule, want := range map[string]float64{
		"business_type":    1,
		"bar_no_daytime":   1,
		"closes_early":     1,
		"night_indicators": 1,
		"night_only_hours": 1,
	} {
		assert.Equal(t, want, testutil.ToFloat64(m.reasons.WithLabelValues(rule)), rule)
	}
}

func TestObserve_Accumulates(t *testing.T) {
	m := New()
	m.Observe(sampleResult())
	m.Observe(&screen.Result{Scanned: 5, Duration: time.Second})
	m.Observe(nil)

	assert.Equal(t, 15.0, testutil.ToFloat64(m.scanned))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.flagged))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lastDuration))
}

func TestNew_PrePopulatesRules(t *testing.T) {
	m := New()
	assert.Equal(t, len(Rules), testutil.CollectAndCount(m.reasons))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Observe(sampleResult())

	path := filepath.Join(t.TempDir(), "location_screen.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "location_screen_locations_scanned_total 10")
	assert.Contains(t, out, "location_screen_locations_flagged_total 3")
	assert.Contains(t, out, `location_screen_reasons_total{rule="closes_early"} 1`)
	assert.Contains(t, out, "location_screen_last_run_duration_seconds 1.5")

	expected := `
# HELP location_screen_classification_failures_total Total locations skipped because classification failed.
# TYPE location_screen_classification_failures_total counter
location_screen_classification_failures_total 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"location_screen_classification_failures_total"))
}

func TestWriteTextfile_BadPath(t *testing.T) {
	err := New().WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics: write textfile")
}
