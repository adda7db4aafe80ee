package domain

import "context"

type LedgerRepository interface {
	// Accumulate adds acc.Amount to the (account, day) aggregate of acc.Measure,
	// creating it when absent, and returns the new total. The add must be a
	// single atomic upsert so concurrent writers never lose an update.
	//
	// When acc.IdempotencyKey is set and was already applied for the account,
	// the stored result is returned with Replayed set and nothing is written.
	// A key reused for a different measure or amount yields ErrIdempotencyConflict.
	Accumulate(ctx context.Context, acc Accumulation) (AccumulationResult, error)

	// ListByAccount returns every stored aggregate of the account ordered by day.
	ListByAccount(ctx context.Context, accountID string) ([]DailyTotal, error)
}
