package services

import (
	"context"
	"fmt"
	"iter"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/metrics"
)

// LedgerNotifier is told about every account whose ledger changed.
type LedgerNotifier interface {
	Enqueue(accountID string)
}

type LedgerService struct {
	accounts domain.AccountRepository
	ledger   domain.LedgerRepository
	notifier LedgerNotifier
}

func NewLedgerService(accounts domain.AccountRepository, ledger domain.LedgerRepository, notifier LedgerNotifier) *LedgerService {
	return &LedgerService{
		accounts: accounts,
		ledger:   ledger,
		notifier: notifier,
	}
}

type RecordCaloriesInput struct {
	AccountID string
	Calories  int

	// RequestedDay is whatever day the client sent. It is never used: the
	// target day is always the account's stored current day.
	RequestedDay   int
	IdempotencyKey string
}

type RecordWorkoutInput struct {
	AccountID      string
	ItemIDs        []int
	IdempotencyKey string
}

type LedgerView struct {
	CurrentDay int
	Days       []domain.LedgerDay
}

// AdvanceDay moves the account to its next program day and returns it.
func (s *LedgerService) AdvanceDay(ctx context.Context, accountID string) (int, error) {
	day, err := s.accounts.IncrementCurrentDay(ctx, accountID)
	metrics.RecordLedgerOperation("advance_day", err)
	if err != nil {
		return 0, fmt.Errorf("ledger service: advance day: %w", err)
	}
	return day, nil
}

func (s *LedgerService) RecordCalories(ctx context.Context, input RecordCaloriesInput) (domain.AccumulationResult, error) {
	res, err := s.record(ctx, input.AccountID, domain.MeasureCalories, input.Calories, input.IdempotencyKey)
	metrics.RecordLedgerOperation("record_calories", err)
	return res, err
}

func (s *LedgerService) RecordWorkoutCompletion(ctx context.Context, input RecordWorkoutInput) (domain.AccumulationResult, error) {
	completed, err := domain.CompletedItems(input.ItemIDs)
	if err != nil {
		metrics.RecordLedgerOperation("record_workout", err)
		return domain.AccumulationResult{}, err
	}

	res, err := s.record(ctx, input.AccountID, domain.MeasureWorkouts, completed, input.IdempotencyKey)
	metrics.RecordLedgerOperation("record_workout", err)
	return res, err
}

func (s *LedgerService) record(ctx context.Context, accountID string, measure domain.Measure, amount int, key string) (domain.AccumulationResult, error) {
	if amount < 0 || amount > domain.MaxAmount {
		return domain.AccumulationResult{}, domain.ErrInvalidAmount
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return domain.AccumulationResult{}, fmt.Errorf("ledger service: load account: %w", err)
	}

	acc := domain.Accumulation{
		AccountID:      account.ID,
		Day:            account.CurrentDay,
		Measure:        measure,
		Amount:         amount,
		IdempotencyKey: key,
	}
	if err := acc.Validate(); err != nil {
		return domain.AccumulationResult{}, err
	}

	res, err := s.ledger.Accumulate(ctx, acc)
	if err != nil {
		return domain.AccumulationResult{}, fmt.Errorf("ledger service: accumulate %s: %w", measure, err)
	}

	metrics.RecordAccumulation(measure, amount, res.Replayed)
	if !res.Replayed && s.notifier != nil {
		s.notifier.Enqueue(account.ID)
	}

	return res, nil
}

// GetLedger returns the account's current day together with its merged ledger.
func (s *LedgerService) GetLedger(ctx context.Context, accountID string) (*LedgerView, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("ledger service: load account: %w", err)
	}

	totals, err := s.ledger.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("ledger service: list ledger: %w", err)
	}

	return &LedgerView{
		CurrentDay: account.CurrentDay,
		Days:       domain.MergeDailyTotals(totals),
	}, nil
}

// Days yields the account's ledger in ascending day order. Every range over
// the returned sequence re-reads the store, so it can be restarted.
func (s *LedgerService) Days(ctx context.Context, accountID string) iter.Seq2[domain.LedgerDay, error] {
	return func(yield func(domain.LedgerDay, error) bool) {
		totals, err := s.ledger.ListByAccount(ctx, accountID)
		if err != nil {
			yield(domain.LedgerDay{}, fmt.Errorf("ledger service: list ledger: %w", err))
			return
		}

		for _, day := range domain.MergeDailyTotals(totals) {
			if !yield(day, nil) {
				return
			}
		}
	}
}
