package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/compensation-engine/calendar"
)

func TestParse_RoundTrips(t *testing.T) {
	d, err := calendar.Parse("2020-04-01")
	require.NoError(t, err)
	assert.Equal(t, 2020, d.Year())
	assert.Equal(t, time.April, d.Month())
	assert.Equal(t, 1, d.Day())
	assert.Equal(t, "2020-04-01", d.String())
}

func TestParse_RejectsGarbage(t *testing.T) {
	_, err := calendar.Parse("not-a-date")
	assert.Error(t, err)

	_, err = calendar.Parse("2020/04/01")
	assert.Error(t, err, "only ISO calendar dates are accepted")
}

func TestDaysInclusive_SameDayIsOneDay(t *testing.T) {
	// GIVEN: interest accruing from and to the same date
	// THEN: exactly one day accrues, never zero
	d := calendar.NewDate(2024, time.June, 10)
	assert.Equal(t, 1, calendar.DaysInclusive(d, d))
}

func TestDaysInclusive_FullYear(t *testing.T) {
	from := calendar.NewDate(2020, time.April, 1)
	to := calendar.NewDate(2021, time.March, 31)
	assert.Equal(t, 365, calendar.DaysInclusive(from, to))
}

func TestDaysInclusive_LeapYearSpanCountsExtraDay(t *testing.T) {
	// 2019-04-01 .. 2020-03-31 crosses Feb 29, 2020.
	from := calendar.NewDate(2019, time.April, 1)
	to := calendar.NewDate(2020, time.March, 31)
	assert.Equal(t, 366, calendar.DaysInclusive(from, to))
}

func TestComparisons(t *testing.T) {
	a := calendar.NewDate(2020, time.March, 31)
	b := calendar.NewDate(2020, time.April, 1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.BeforeOrEqual(a))
	assert.True(t, a.AfterOrEqual(a))
	assert.False(t, a.Equal(b))
}

func TestTextMarshalling(t *testing.T) {
	d := calendar.NewDate(2026, time.January, 15)

	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", string(b))

	var back calendar.Date
	require.NoError(t, back.UnmarshalText(b))
	assert.True(t, d.Equal(back))
}
