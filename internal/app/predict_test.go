package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictionContext_OnlyChangedFlags(t *testing.T) {
	flags := predictCmd.Flags()
	t.Cleanup(func() {
		for _, name := range []string{"stress", "fatigue", "activity"} {
			f := flags.Lookup(name)
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})

	pc := predictionContext(predictCmd)
	assert.Nil(t, pc.StressLevel)
	assert.Nil(t, pc.FatigueLevel)
	assert.Nil(t, pc.ActivityIntensity)

	require.NoError(t, flags.Set("stress", "0.9"))
	pc = predictionContext(predictCmd)
	require.NotNil(t, pc.StressLevel)
	assert.InDelta(t, 0.9, *pc.StressLevel, 1e-9)
	assert.Nil(t, pc.FatigueLevel)
	assert.Nil(t, pc.ActivityIntensity)
}
