package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	Init(reg)

	SubmissionsTotal.WithLabelValues("retry").Inc()
	LLMCalls.WithLabelValues("hint", Outcome(errors.New("x"))).Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["quiz_submissions_total"])
	assert.True(t, names["llm_calls_total"])

	assert.Equal(t, 1.0, testutil.ToFloat64(LLMCalls.WithLabelValues("hint", "error")))
	assert.Panics(t, func() { Init(reg) })
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "error", Outcome(errors.New("boom")))
}
