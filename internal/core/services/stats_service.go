package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

type StatsService struct {
	accounts domain.AccountRepository
	ledger   domain.LedgerRepository
}

func NewStatsService(accounts domain.AccountRepository, ledger domain.LedgerRepository) *StatsService {
	return &StatsService{
		accounts: accounts,
		ledger:   ledger,
	}
}

// GetSummary builds the chart data for the account's whole program so far.
func (s *StatsService) GetSummary(ctx context.Context, accountID string) (*domain.LedgerSummary, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("stats service: load account: %w", err)
	}

	totals, err := s.ledger.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("stats service: list ledger: %w", err)
	}

	days := domain.MergeDailyTotals(totals)

	summary := &domain.LedgerSummary{
		CurrentDay:   account.CurrentDay,
		GoalDuration: account.GoalDuration,
		Days:         make([]int, 0, len(days)),
		Calories:     make([]int, 0, len(days)),
		Workouts:     make([]int, 0, len(days)),
		DaysLogged:   len(days),
	}

	for _, d := range days {
		summary.Days = append(summary.Days, d.Day)
		summary.Calories = append(summary.Calories, d.Calories)
		summary.Workouts = append(summary.Workouts, d.CompletedCount)
		summary.TotalWorkouts += d.CompletedCount
	}

	dietDays := 0
	best := -1
	for _, t := range totals {
		if t.Measure != domain.MeasureCalories {
			continue
		}
		dietDays++
		summary.TotalCalories += t.Total
		if t.Total > best || (t.Total == best && t.Day < summary.BestCalorieDay) {
			best = t.Total
			summary.BestCalorieDay = t.Day
		}
	}
	if dietDays > 0 {
		summary.AverageCalories = float64(summary.TotalCalories) / float64(dietDays)
	}

	summary.LoggingStreak = loggingStreak(summary.Days, account.CurrentDay)

	return summary, nil
}

// loggingStreak counts consecutive logged days ending at the current day, or
// at the day before when nothing has been logged today yet.
func loggingStreak(loggedDays []int, currentDay int) int {
	logged := make(map[int]bool, len(loggedDays))
	for _, d := range loggedDays {
		logged[d] = true
	}

	day := currentDay
	if !logged[day] {
		day--
	}

	streak := 0
	for day >= domain.FirstDay && logged[day] {
		streak++
		day--
	}
	return streak
}
