package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	Init(prometheus.NewRegistry())

	ObserveLoad(ResultSuccess, 20*time.Millisecond)
	ObserveLoad(ResultError, time.Millisecond)
	ObserveLoad(ResultSuccess, time.Millisecond)
	assert.Equal(t, float64(2), testutil.ToFloat64(loadTotal.WithLabelValues(ResultSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(loadTotal.WithLabelValues(ResultError)))

	ObserveEnrichment("")
	ObserveEnrichment("not_found")
	ObserveEnrichment("not_found")
	assert.Equal(t, float64(1), testutil.ToFloat64(enrichTotal.WithLabelValues(ResultSuccess, "")))
	assert.Equal(t, float64(2), testutil.ToFloat64(enrichTotal.WithLabelValues(ResultError, "not_found")))

	loadedAt := time.Unix(1700000000, 0)
	SetSnapshot(9, 1, loadedAt)
	assert.Equal(t, float64(9), testutil.ToFloat64(fleetSize))
	assert.Equal(t, float64(1), testutil.ToFloat64(failedEnrichment))
	assert.Equal(t, float64(1700000000), testutil.ToFloat64(snapshotAge))
}
