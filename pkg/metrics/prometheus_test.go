package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordCalc("ma", "ok", 2*time.Millisecond)
	r.RecordCalc("ma", "ok", time.Millisecond)
	r.RecordCalc("nope", "lookup_error", 0)
	r.RecordValidation(false, []string{"out_of_range", "out_of_range", "invalid_enum"})
	r.RecordValidation(true, nil)
	r.RecordCache("hit")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.calcTotal.WithLabelValues("ma", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.calcTotal.WithLabelValues("nope", "lookup_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.validationTotal.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.validationTotal.WithLabelValues("ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.validationErrors.WithLabelValues("out_of_range")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheRequests.WithLabelValues("hit")))

	n, err := testutil.GatherAndCount(reg, "stratlab_calc_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
}
