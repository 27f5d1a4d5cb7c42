package compensation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/compensation-engine/calendar"
	"github.com/warp/compensation-engine/compensation"
	"github.com/warp/compensation-engine/money"
)

func date(y int, m time.Month, d int) calendar.Date { return calendar.NewDate(y, m, d) }

// =============================================================================
// STATUTORY RATE SELECTION
// =============================================================================

func TestStatutoryRate_ReformBoundary(t *testing.T) {
	// GIVEN: accrual starting the day before the 2020 reform
	// THEN: the old 5% rate applies; from the reform day, 3%
	pre, err := compensation.StatutoryRate(date(2020, time.March, 31))
	require.NoError(t, err)
	assert.True(t, pre.Equal(decimal.RequireFromString("0.05")))

	post, err := compensation.StatutoryRate(date(2020, time.April, 1))
	require.NoError(t, err)
	assert.True(t, post.Equal(decimal.RequireFromString("0.03")))
}

func TestStatutoryRate_OnlyTwoRatesExist(t *testing.T) {
	five := decimal.RequireFromString("0.05")
	three := decimal.RequireFromString("0.03")
	for _, d := range []calendar.Date{
		date(1990, time.January, 1),
		date(2019, time.December, 31),
		date(2020, time.April, 2),
		date(2030, time.June, 15),
	} {
		rate, err := compensation.StatutoryRate(d)
		require.NoError(t, err)
		assert.True(t, rate.Equal(five) || rate.Equal(three), "date %s produced rate %s", d, rate)
	}
}

func TestStatutoryRate_MissingDateIsError(t *testing.T) {
	_, err := compensation.StatutoryRate(calendar.Date{})
	assert.ErrorIs(t, err, compensation.ErrMissingDate)
}

// =============================================================================
// SIMPLE INTEREST
// =============================================================================

func TestSimpleInterest_FullPostReformYear(t *testing.T) {
	// 1,000,000 x 3% x 365/365 = 30,000 exactly
	res, err := compensation.SimpleInterest(
		money.FromYen(1_000_000),
		decimal.RequireFromString("0.03"),
		date(2020, time.April, 1),
		date(2021, time.March, 31),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(30_000), res.Amount.Yen())
	assert.Equal(t, 365, res.Days)
}

func TestSimpleInterest_LeapYearSpanKeeps365Divisor(t *testing.T) {
	// GIVEN: a pre-reform year-long span crossing Feb 29, 2020 (366 days)
	// THEN: the extra day raises the count but the divisor stays 365
	// 1,000,000 x 5% x 366/365 = 50,136.98... -> 50,137
	res, err := compensation.SimpleInterest(
		money.FromYen(1_000_000),
		decimal.RequireFromString("0.05"),
		date(2019, time.April, 1),
		date(2020, time.March, 31),
	)
	require.NoError(t, err)
	assert.Equal(t, 366, res.Days)
	assert.Equal(t, int64(50_137), res.Amount.Yen())
}

func TestSimpleInterest_SameDayIsOneDay(t *testing.T) {
	d := date(2024, time.June, 10)
	res, err := compensation.SimpleInterest(
		money.FromYen(365_000), decimal.RequireFromString("0.05"), d, d)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Days)
	assert.Equal(t, int64(50), res.Amount.Yen(), "365,000 x 5% x 1/365 = 50")
}

func TestSimpleInterest_HalfYenRoundsUp(t *testing.T) {
	// 18,250 x 1% x 1/365 = 0.5 exactly -> 1
	d := date(2024, time.January, 1)
	res, err := compensation.SimpleInterest(
		money.FromYen(18_250), decimal.RequireFromString("0.01"), d, d)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Amount.Yen())

	// 18,249 under the same terms is just below .5 -> 0
	res, err = compensation.SimpleInterest(
		money.FromYen(18_249), decimal.RequireFromString("0.01"), d, d)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Amount.Yen())
}

func TestSimpleInterest_NonPositiveInputsAreSoftZero(t *testing.T) {
	d := date(2024, time.January, 1)

	res, err := compensation.SimpleInterest(
		money.Zero(), decimal.RequireFromString("0.03"), d, d.AddDays(30))
	require.NoError(t, err, "zero principal is a valid no-interest outcome")
	assert.True(t, res.Amount.IsZero())
	assert.Contains(t, res.Detail, "no interest due")

	res, err = compensation.SimpleInterest(
		money.FromYen(100_000), decimal.Zero, d, d.AddDays(30))
	require.NoError(t, err)
	assert.True(t, res.Amount.IsZero())
}

func TestSimpleInterest_ReversedPeriodIsHardError(t *testing.T) {
	_, err := compensation.SimpleInterest(
		money.FromYen(100_000),
		decimal.RequireFromString("0.03"),
		date(2024, time.June, 10),
		date(2024, time.June, 9),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, compensation.ErrEndBeforeStart)
	assert.True(t, compensation.IsValidation(err))

	var orderErr *compensation.DateOrderError
	require.ErrorAs(t, err, &orderErr)
	assert.Equal(t, "2024-06-10", orderErr.Start.String())
}

func TestSimpleInterest_DetailCarriesEveryFigure(t *testing.T) {
	// The detail string is contract: reports render it verbatim.
	res, err := compensation.SimpleInterest(
		money.FromYen(1_000_000),
		decimal.RequireFromString("0.03"),
		date(2020, time.April, 1),
		date(2021, time.March, 31),
	)
	require.NoError(t, err)
	assert.Contains(t, res.Detail, "1000000 yen")
	assert.Contains(t, res.Detail, "3%")
	assert.Contains(t, res.Detail, "365 days")
	assert.Contains(t, res.Detail, "/ 365")
	assert.Contains(t, res.Detail, "= 30000 yen")
	assert.Contains(t, res.Detail, "2020-04-01")
	assert.Contains(t, res.Detail, "2021-03-31")
	assert.Contains(t, res.Detail, "inclusive")
}
