package metrics_test

import (
	"testing"

	"github.com/nikolayk812/foodcart/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.CartMutations.WithLabelValues("add").Inc()
	m.CheckoutAttempts.WithLabelValues("ok").Inc()
	m.Reviews.WithLabelValues("ok").Inc()
	m.CartTotal.Set(12.99)

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	assert.InDelta(t, 12.99, testutil.ToFloat64(m.CartTotal), 0.0001)
}

func TestNew_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)

	assert.Panics(t, func() { metrics.New(reg) })
}
