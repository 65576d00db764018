package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTriggerRate_ParsesConfiguredValue(t *testing.T) {
	rate := triggerRate("5-S")

	assert.Equal(t, int64(5), rate.Limit)
	assert.Equal(t, time.Second, rate.Period)
}

func TestTriggerRate_MalformedValueFallsBackToDefault(t *testing.T) {
	for _, malformed := range []string{"", "lots", "10-X", "-5-M"} {
		rate := triggerRate(malformed)

		assert.Equal(t, int64(10), rate.Limit, "input %q", malformed)
		assert.Equal(t, time.Minute, rate.Period, "input %q", malformed)
	}
}
