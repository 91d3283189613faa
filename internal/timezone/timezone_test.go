package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation_FallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Location("Mars/Olympus_Mons"))
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, "America/Sao_Paulo", Location("America/Sao_Paulo").String())
}

func TestTodayIn(t *testing.T) {
	// 01:30 UTC is still the previous day in São Paulo (UTC-3).
	now := time.Date(2025, 10, 21, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 10, 21, 0, 0, 0, 0, time.UTC), TodayIn("UTC", now))
	assert.Equal(t, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), TodayIn("America/Sao_Paulo", now))
}
