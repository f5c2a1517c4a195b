package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamboard/collab-core/models"
)

func TestTalliesCountPerTypeAndMode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "ana@corp.io"

	for _, request := range []models.VacationRequest{
		{Type: models.RequestVacation, Mode: models.RequestModeDays, Dates: []string{"2026-09-07", "2026-09-08"}},
		{Type: models.RequestSickLeave, Mode: models.RequestModeHours, Hours: 4},
		{Type: models.RequestWorkRemotely, Mode: models.RequestModeDays, Dates: []string{"2026-09-14"}},
		{Type: models.RequestWorkRemotely, Mode: models.RequestModeHours, Hours: 2.5},
	} {
		require.NoError(t, f.requests.Append(ctx, email, request))
	}

	tally, err := f.vacations.Tallies(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, 2, tally.Vacation)
	assert.Equal(t, 1, tally.SickLeave)
	assert.Equal(t, 2, tally.WorkRemotely)
}

func TestTalliesEmptyForUnknownUser(t *testing.T) {
	f := newFixture(t)

	tally, err := f.vacations.Tallies(context.Background(), "nobody@corp.io")
	require.NoError(t, err)
	assert.Equal(t, Tally{}, tally)
}

func TestRemainingVacationDaysUsesDefaultAllowance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "ana@corp.io"

	remaining, err := f.vacations.RemainingVacationDays(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)

	require.NoError(t, f.requests.Append(ctx, email, models.VacationRequest{
		Type: models.RequestVacation, Mode: models.RequestModeDays, Dates: []string{"2026-09-07", "2026-09-08"},
	}))

	remaining, err = f.vacations.RemainingVacationDays(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
}

func TestRemainingVacationDaysHonorsProfileOverride(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "ana@corp.io"

	require.NoError(t, f.users.SaveAll(ctx, []models.User{{Email: email, VacationDaysLeft: 10}}))

	remaining, err := f.vacations.RemainingVacationDays(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, 10, remaining)
}

func TestHourModeRequestsDoNotTouchTheAllowance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "ana@corp.io"

	require.NoError(t, f.vacations.Submit(ctx, email, models.VacationRequest{
		Type: models.RequestSickLeave, Mode: models.RequestModeHours, Hours: 8,
	}))

	remaining, err := f.vacations.RemainingVacationDays(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)
}

func TestSubmitValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "ana@corp.io"

	err := f.vacations.Submit(ctx, email, models.VacationRequest{Type: models.RequestVacation, Mode: models.RequestModeDays})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	err = f.vacations.Submit(ctx, email, models.VacationRequest{Type: models.RequestSickLeave, Mode: models.RequestModeHours})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSubmitRejectsOverAllowanceVacation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.vacations.now = fixedClock(testBase)
	email := "ana@corp.io"

	require.NoError(t, f.vacations.Submit(ctx, email, models.VacationRequest{
		Type: models.RequestVacation, Mode: models.RequestModeDays, Dates: []string{"2026-09-07", "2026-09-08"},
	}))

	// Two more days would exceed the remaining one.
	err := f.vacations.Submit(ctx, email, models.VacationRequest{
		Type: models.RequestVacation, Mode: models.RequestModeDays, Dates: []string{"2026-09-21", "2026-09-22"},
	})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	// The last remaining day still goes through.
	require.NoError(t, f.vacations.Submit(ctx, email, models.VacationRequest{
		Type: models.RequestVacation, Mode: models.RequestModeDays, Dates: []string{"2026-09-21"},
	}))

	requests, err := f.requests.ForUser(ctx, email)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, models.ISOTime(testBase), requests[1].CreatedAt)
}
