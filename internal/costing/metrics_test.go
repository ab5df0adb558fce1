package costing

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordOutcomes(t *testing.T) {
	f := newFixture(t)
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	e := f.engine(func(o *Options) { o.Metrics = m })

	unpriced := f.product("Trüf")
	r := f.recipe("Risotto", nil, productLine(unpriced.ID, 1, f.kg.ID))
	_, err := e.CostRecipe(bg, testOrg, r.ID, f.outlet1.ID)
	require.NoError(t, err)
	_, err = e.CostRecipe(bg, testOrg, r.ID, 0)
	require.ErrorIs(t, err, ErrMissingOutletContext)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.calculations.WithLabelValues("recipe", "incomplete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calculations.WithLabelValues("recipe", "missing_outlet")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.missingLines.WithLabelValues("recipe")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	f := newFixture(t)
	r := f.recipe("Boş", nil)
	_, err := f.engine().CostRecipe(bg, testOrg, r.ID, f.outlet1.ID)
	require.NoError(t, err)
}
