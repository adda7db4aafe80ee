package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

func TestStatsService_GetSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("Should build parallel chart arrays and totals", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		ledger := new(MockLedgerRepository)
		service := NewStatsService(accounts, ledger)

		accounts.On("GetByID", ctx, "acc-1").Return(&domain.Account{ID: "acc-1", CurrentDay: 4, GoalDuration: "12 weeks"}, nil)
		ledger.On("ListByAccount", ctx, "acc-1").Return([]domain.DailyTotal{
			{Day: 1, Measure: domain.MeasureCalories, Total: 300},
			{Day: 1, Measure: domain.MeasureWorkouts, Total: 2},
			{Day: 3, Measure: domain.MeasureCalories, Total: 500},
			{Day: 4, Measure: domain.MeasureWorkouts, Total: 1},
		}, nil)

		summary, err := service.GetSummary(ctx, "acc-1")
		require.NoError(t, err)

		assert.Equal(t, 4, summary.CurrentDay)
		assert.Equal(t, "12 weeks", summary.GoalDuration)
		assert.Equal(t, []int{1, 3, 4}, summary.Days)
		assert.Equal(t, []int{300, 500, 0}, summary.Calories)
		assert.Equal(t, []int{2, 0, 1}, summary.Workouts)
		assert.Equal(t, 800, summary.TotalCalories)
		assert.Equal(t, 3, summary.TotalWorkouts)
		assert.InDelta(t, 400.0, summary.AverageCalories, 0.001)
		assert.Equal(t, 3, summary.DaysLogged)
		assert.Equal(t, 3, summary.BestCalorieDay)
		assert.Equal(t, 2, summary.LoggingStreak)
	})

	t.Run("Should return empty arrays for a fresh account", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		ledger := new(MockLedgerRepository)
		service := NewStatsService(accounts, ledger)

		accounts.On("GetByID", ctx, "acc-1").Return(&domain.Account{ID: "acc-1", CurrentDay: 1}, nil)
		ledger.On("ListByAccount", ctx, "acc-1").Return([]domain.DailyTotal{}, nil)

		summary, err := service.GetSummary(ctx, "acc-1")
		require.NoError(t, err)

		assert.NotNil(t, summary.Days)
		assert.Empty(t, summary.Days)
		assert.Zero(t, summary.AverageCalories)
		assert.Zero(t, summary.BestCalorieDay)
		assert.Zero(t, summary.LoggingStreak)
	})

	t.Run("Should propagate missing accounts", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		ledger := new(MockLedgerRepository)
		service := NewStatsService(accounts, ledger)

		accounts.On("GetByID", ctx, "ghost").Return(nil, domain.ErrAccountNotFound)

		_, err := service.GetSummary(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorContains(t, err, "stats service: load account")
		ledger.AssertNotCalled(t, "ListByAccount")
	})
}

func TestLoggingStreak(t *testing.T) {
	tests := []struct {
		name       string
		logged     []int
		currentDay int
		want       int
	}{
		{"nothing logged", nil, 5, 0},
		{"today logged", []int{3, 4, 5}, 5, 3},
		{"today not yet logged", []int{2, 3, 4}, 5, 3},
		{"gap breaks the streak", []int{1, 2, 4, 5}, 5, 2},
		{"stale history", []int{1, 2}, 6, 0},
		{"first day", []int{1}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, loggingStreak(tt.logged, tt.currentDay))
		})
	}
}
