package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/compensation-engine/calendar"
	"github.com/warp/compensation-engine/compensation"
	"github.com/warp/compensation-engine/money"
	"github.com/warp/compensation-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleCase() compensation.CaseInput {
	return compensation.CaseInput{
		Person: compensation.PersonInfo{
			Age:             42,
			FaultPercentage: decimal.NewFromInt(10),
			AnnualIncome:    money.FromYen(6_000_000),
		},
		Medical: compensation.MedicalInfo{
			HospitalMonths:   1,
			OutpatientMonths: 3,
			DisabilityGrade:  12,
			MedicalExpenses:  money.FromYen(150_000),
		},
		Income: compensation.IncomeInfo{
			LostWorkDays: 10,
			DailyIncome:  money.FromYen(20_000),
		},
		Interest: &compensation.InterestInput{
			Principal: money.FromYen(500_000),
			StartDate: calendar.NewDate(2022, time.May, 1),
			EndDate:   calendar.NewDate(2023, time.April, 30),
		},
	}
}

func TestSaveAndGetCase_RoundTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sqlite.CaseRecord{ID: "case-1", Name: "Rear-end collision", Input: sampleCase()}
	require.NoError(t, store.SaveCase(ctx, rec))

	got, err := store.GetCase(ctx, "case-1")
	require.NoError(t, err)
	assert.Equal(t, "Rear-end collision", got.Name)
	assert.Equal(t, 42, got.Input.Person.Age)
	assert.True(t, got.Input.Person.FaultPercentage.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(6_000_000), got.Input.Person.AnnualIncome.Yen())
	assert.Equal(t, 12, got.Input.Medical.DisabilityGrade)
	require.NotNil(t, got.Input.Interest)
	assert.Equal(t, "2022-05-01", got.Input.Interest.StartDate.String())
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSaveCase_UpsertReplacesInput(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sqlite.CaseRecord{ID: "case-1", Name: "v1", Input: sampleCase()}
	require.NoError(t, store.SaveCase(ctx, rec))

	updated := sampleCase()
	updated.Medical.DisabilityGrade = 9
	require.NoError(t, store.SaveCase(ctx, sqlite.CaseRecord{ID: "case-1", Name: "v2", Input: updated}))

	got, err := store.GetCase(ctx, "case-1")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Name)
	assert.Equal(t, 9, got.Input.Medical.DisabilityGrade)
}

func TestGetCase_MissingIsNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetCase(context.Background(), "nope")
	assert.ErrorIs(t, err, sqlite.ErrCaseNotFound)
}

func TestListCases(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCase(ctx, sqlite.CaseRecord{ID: "a", Name: "first", Input: sampleCase()}))
	require.NoError(t, store.SaveCase(ctx, sqlite.CaseRecord{ID: "b", Name: "second", Input: sampleCase()}))

	cases, err := store.ListCases(ctx)
	require.NoError(t, err)
	assert.Len(t, cases, 2)
}

func TestDeleteCase(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCase(ctx, sqlite.CaseRecord{ID: "a", Name: "first", Input: sampleCase()}))
	require.NoError(t, store.DeleteCase(ctx, "a"))

	_, err := store.GetCase(ctx, "a")
	assert.ErrorIs(t, err, sqlite.ErrCaseNotFound)

	assert.ErrorIs(t, store.DeleteCase(ctx, "a"), sqlite.ErrCaseNotFound)
}

func TestCaseWithoutInterest_RoundTrips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	input := sampleCase()
	input.Interest = nil
	require.NoError(t, store.SaveCase(ctx, sqlite.CaseRecord{ID: "x", Name: "no interest", Input: input}))

	got, err := store.GetCase(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, got.Input.Interest)
}
