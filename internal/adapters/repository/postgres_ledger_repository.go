package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

var _ domain.LedgerRepository = (*PostgresLedgerRepository)(nil)

// upsertQueries holds one atomic insert-or-add statement per measure.
// Each measure lives in its own table keyed by (account_id, day).
var upsertQueries = map[domain.Measure]string{
	domain.MeasureCalories: upsertQuery("diet_entries", "calories"),
	domain.MeasureWorkouts: upsertQuery("workout_entries", "completed_count"),
}

func upsertQuery(table, column string) string {
	return fmt.Sprintf(`
		INSERT INTO %[1]s (account_id, day, %[2]s, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (account_id, day) DO UPDATE
		SET %[2]s = %[1]s.%[2]s + EXCLUDED.%[2]s,
		    updated_at = NOW()
		RETURNING %[2]s`, table, column)
}

type PostgresLedgerRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewPostgresLedgerRepository(db *sqlx.DB, timeout time.Duration) *PostgresLedgerRepository {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &PostgresLedgerRepository{
		db:      db,
		timeout: timeout,
	}
}

type storedSubmission struct {
	Measure domain.Measure `db:"measure"`
	Day     int            `db:"day"`
	Amount  int            `db:"amount"`
	Total   int            `db:"total"`
}

func (r *PostgresLedgerRepository) Accumulate(ctx context.Context, acc domain.Accumulation) (domain.AccumulationResult, error) {
	query, ok := upsertQueries[acc.Measure]
	if !ok {
		return domain.AccumulationResult{}, domain.ErrUnknownMeasure
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if acc.IdempotencyKey == "" {
		var total int
		if err := r.db.QueryRowxContext(ctx, query, acc.AccountID, acc.Day, acc.Amount).Scan(&total); err != nil {
			return domain.AccumulationResult{}, r.mapWriteError(err)
		}
		return domain.AccumulationResult{Day: acc.Day, Total: total}, nil
	}

	return r.accumulateOnce(ctx, query, acc)
}

// accumulateOnce claims the idempotency key and applies the upsert in one
// transaction. A concurrent duplicate blocks on the key's unique index until
// the first commits, then reads the stored outcome.
func (r *PostgresLedgerRepository) accumulateOnce(ctx context.Context, query string, acc domain.Accumulation) (domain.AccumulationResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.AccumulationResult{}, wrapStoreError("begin accumulate", err)
	}
	defer tx.Rollback()

	claim, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_submissions (account_id, idempotency_key, measure, day, amount, total, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, NOW())
		ON CONFLICT (account_id, idempotency_key) DO NOTHING`,
		acc.AccountID, acc.IdempotencyKey, string(acc.Measure), acc.Day, acc.Amount)
	if err != nil {
		return domain.AccumulationResult{}, r.mapWriteError(err)
	}

	claimed, err := claim.RowsAffected()
	if err != nil {
		return domain.AccumulationResult{}, wrapStoreError("claim idempotency key", err)
	}

	if claimed == 0 {
		var prev storedSubmission
		err := tx.GetContext(ctx, &prev, `
			SELECT measure, day, amount, total
			FROM ledger_submissions
			WHERE account_id = $1 AND idempotency_key = $2`,
			acc.AccountID, acc.IdempotencyKey)
		if err != nil {
			return domain.AccumulationResult{}, wrapStoreError("load idempotent submission", err)
		}
		if prev.Measure != acc.Measure || prev.Amount != acc.Amount {
			return domain.AccumulationResult{}, domain.ErrIdempotencyConflict
		}
		return domain.AccumulationResult{Day: prev.Day, Total: prev.Total, Replayed: true}, nil
	}

	var total int
	if err := tx.QueryRowxContext(ctx, query, acc.AccountID, acc.Day, acc.Amount).Scan(&total); err != nil {
		return domain.AccumulationResult{}, r.mapWriteError(err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE ledger_submissions SET total = $3
		WHERE account_id = $1 AND idempotency_key = $2`,
		acc.AccountID, acc.IdempotencyKey, total); err != nil {
		return domain.AccumulationResult{}, wrapStoreError("record idempotent submission", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.AccumulationResult{}, wrapStoreError("commit accumulate", err)
	}

	return domain.AccumulationResult{Day: acc.Day, Total: total}, nil
}

func (r *PostgresLedgerRepository) mapWriteError(err error) error {
	switch pgCode(err) {
	case pgForeignKeyViolation, pgInvalidTextRepr:
		return domain.ErrAccountNotFound
	case pgNumericOutOfRange, pgCheckViolation:
		return domain.ErrDailyTotalExceeded
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrAccountNotFound
	}
	return wrapStoreError("accumulate", err)
}

func (r *PostgresLedgerRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.DailyTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	totals := []domain.DailyTotal{}

	query := `
		SELECT day, 'calories' AS measure, calories AS total
		FROM diet_entries WHERE account_id = $1
		UNION ALL
		SELECT day, 'workouts' AS measure, completed_count AS total
		FROM workout_entries WHERE account_id = $1
		ORDER BY day ASC, measure ASC`

	if err := r.db.SelectContext(ctx, &totals, query, accountID); err != nil {
		if pgCode(err) == pgInvalidTextRepr {
			return totals, nil
		}
		return nil, wrapStoreError("list ledger", err)
	}

	return totals, nil
}
