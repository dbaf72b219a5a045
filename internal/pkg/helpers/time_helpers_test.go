package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("15/03/2026")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestParseDateRange(t *testing.T) {
	start, end, err := ParseDateRange("2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", FormatDate(start))
	assert.Equal(t, "2026-01-31", FormatDate(end))

	// Single-day range is valid
	_, _, err = ParseDateRange("2026-01-01", "2026-01-01")
	assert.NoError(t, err)
}

func TestParseDateRangeRejectsInverted(t *testing.T) {
	_, _, err := ParseDateRange("2026-02-01", "2026-01-01")
	assert.Error(t, err)
}

func TestParseDateRangeRequiresBothEndpoints(t *testing.T) {
	_, _, err := ParseDateRange("", "2026-01-31")
	assert.Error(t, err)

	_, _, err = ParseDateRange("2026-01-01", "")
	assert.Error(t, err)
}

func TestParseDurationFallsBack(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("not-a-duration", time.Minute))
}
