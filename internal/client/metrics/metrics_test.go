package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.CacheLookup("recipe", true)
	m.CacheLookup("recipe", false)
	m.CacheLookup("recipe", false)
	m.RemoteRequest("get_recipe", time.Now(), nil)
	m.RemoteRequest("get_recipe", time.Now(), errors.New("boom"))
	m.PreferenceMutation("add_saved", ResultOK)
	m.PreferenceMutation("add_saved", ResultDenied)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("recipe", ResultHit)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("recipe", ResultMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.remoteRequests.WithLabelValues("get_recipe", StatusFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.preferenceMutations.WithLabelValues("add_saved", ResultDenied)))

	n, err := testutil.GatherAndCount(reg, "gophrecipes_cache_requests_total", "gophrecipes_remote_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestMetrics_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	require.Error(t, err)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CacheLookup("x", true)
		m.RemoteRequest("x", time.Now(), nil)
		m.PreferenceMutation("x", ResultOK)
	})
}
