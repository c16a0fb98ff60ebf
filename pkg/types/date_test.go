package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2026-10-13 ")
	require.NoError(t, err)
	assert.Equal(t, Date("2026-10-13"), d)

	for _, bad := range []string{"", "13-10-2026", "2026-13-01", "2026-02-30", "2026/10/13"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestDate_Weekday(t *testing.T) {
	wd, err := Date("2026-10-13").Weekday()
	require.NoError(t, err)
	assert.Equal(t, time.Tuesday, wd)

	wd, err = Date("2026-10-18").Weekday()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, wd)
}

func TestDate_At(t *testing.T) {
	loc := time.FixedZone("CET", 3600)

	at, err := Date("2026-10-13").At(9*60+30, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 13, 9, 30, 0, 0, loc), at)
}

func TestDate_AddDays(t *testing.T) {
	d, err := Date("2026-12-31").AddDays(1)
	require.NoError(t, err)
	assert.Equal(t, Date("2027-01-01"), d)

	d, err = Date("2026-03-01").AddDays(-1)
	require.NoError(t, err)
	assert.Equal(t, Date("2026-02-28"), d)
}

func TestDate_Between(t *testing.T) {
	start, end := Date("2026-10-12"), Date("2026-10-14")

	assert.True(t, Date("2026-10-12").Between(start, end))
	assert.True(t, Date("2026-10-13").Between(start, end))
	assert.True(t, Date("2026-10-14").Between(start, end))
	assert.False(t, Date("2026-10-11").Between(start, end))
	assert.False(t, Date("2026-10-15").Between(start, end))
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Date("2026-10-13"), d)

	require.NoError(t, d.Scan("2026-10-14T00:00:00Z"))
	assert.Equal(t, Date("2026-10-14"), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(3.14))
}
