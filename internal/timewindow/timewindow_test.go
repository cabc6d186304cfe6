package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestParseDefaultsToThisMonth(t *testing.T) {
	w, err := Parse(now, "", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), w.End)
}

func TestParseNamedRanges(t *testing.T) {
	w, err := Parse(now, "last_month", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), w.End)

	w, err = Parse(now, "this_year", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), w.Start)

	_, err = Parse(now, "fortnight", "", "", "")
	assert.Error(t, err)
}

func TestParseExplicitDatesWin(t *testing.T) {
	w, err := Parse(now, "this_year", "2026-01-10", "2026-01-20", "90")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), w.Start)
	// End is exclusive, so the 20th itself is covered.
	assert.Equal(t, time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC), w.End)
	assert.True(t, w.Contains(time.Date(2026, 1, 20, 23, 0, 0, 0, time.UTC)))

	_, err = Parse(now, "", "2026-01-10", "", "")
	assert.Error(t, err, "half a date pair is rejected")

	_, err = Parse(now, "", "2026-01-20", "2026-01-10", "")
	assert.Error(t, err, "inverted bounds are rejected")
}

func TestParseDays(t *testing.T) {
	w, err := Parse(now, "", "", "", "30")
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -30), w.Start)
	assert.Equal(t, now, w.End)

	for _, bad := range []string{"0", "-5", "abc"} {
		_, err := Parse(now, "", "", "", bad)
		assert.Error(t, err, bad)
	}
}
