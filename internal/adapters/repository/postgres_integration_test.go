package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-fit/internal/adapters/repository/migrations"
	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupTestDB(t *testing.T) *sqlx.DB {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		envOr("DB_USER", "kanso_user"),
		envOr("DB_PASSWORD", "secret"),
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_NAME", "kanso_db"),
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.Apply(context.Background(), db.DB))
	cleanup(t, db)
	t.Cleanup(func() { cleanup(t, db) })

	return db
}

func cleanup(t *testing.T, db *sqlx.DB) {
	_, err := db.Exec("TRUNCATE TABLE ledger_submissions, workout_entries, diet_entries, accounts CASCADE")
	require.NoError(t, err, "Failed to clean up database")
}

func createTestAccount(t *testing.T, repo *PostgresAccountRepository, username string) *domain.Account {
	account, err := domain.NewAccount(uuid.New().String(), username)
	require.NoError(t, err)
	require.NoError(t, account.SetPassword("password123"))
	require.NoError(t, repo.Create(context.Background(), account))
	return account
}

func TestPostgresRepositories_Integration(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	accounts := NewPostgresAccountRepository(db, 5*time.Second)
	ledger := NewPostgresLedgerRepository(db, 5*time.Second)

	account := createTestAccount(t, accounts, "integration-runner")

	t.Run("Duplicate username is rejected", func(t *testing.T) {
		dup, _ := domain.NewAccount(uuid.New().String(), "integration-runner")
		dup.PasswordHash = "hash"
		assert.ErrorIs(t, accounts.Create(ctx, dup), domain.ErrUsernameTaken)
	})

	t.Run("Calories accumulate per day across advances", func(t *testing.T) {
		res, err := ledger.Accumulate(ctx, domain.Accumulation{
			AccountID: account.ID, Day: 1, Measure: domain.MeasureCalories, Amount: 300,
		})
		require.NoError(t, err)
		assert.Equal(t, 300, res.Total)

		day, err := accounts.IncrementCurrentDay(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, day)

		res, err = ledger.Accumulate(ctx, domain.Accumulation{
			AccountID: account.ID, Day: day, Measure: domain.MeasureCalories, Amount: 450,
		})
		require.NoError(t, err)
		assert.Equal(t, 450, res.Total)

		totals, err := ledger.ListByAccount(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, []domain.DailyTotal{
			{Day: 1, Measure: domain.MeasureCalories, Total: 300},
			{Day: 2, Measure: domain.MeasureCalories, Total: 450},
		}, totals)
	})

	t.Run("Keyed accumulation replays instead of double counting", func(t *testing.T) {
		acc := domain.Accumulation{
			AccountID: account.ID, Day: 5, Measure: domain.MeasureWorkouts, Amount: 2, IdempotencyKey: "retry-1",
		}

		first, err := ledger.Accumulate(ctx, acc)
		require.NoError(t, err)
		second, err := ledger.Accumulate(ctx, acc)
		require.NoError(t, err)

		assert.Equal(t, 2, first.Total)
		assert.False(t, first.Replayed)
		assert.Equal(t, 2, second.Total)
		assert.True(t, second.Replayed)

		acc.Amount = 3
		_, err = ledger.Accumulate(ctx, acc)
		assert.ErrorIs(t, err, domain.ErrIdempotencyConflict)
	})

	t.Run("Totals stop at the daily limit for both measures", func(t *testing.T) {
		for _, measure := range []domain.Measure{domain.MeasureCalories, domain.MeasureWorkouts} {
			acc := domain.Accumulation{AccountID: account.ID, Day: 9, Measure: measure, Amount: domain.MaxDailyTotal - 5}
			_, err := ledger.Accumulate(ctx, acc)
			require.NoError(t, err)

			acc.Amount = 6
			acc.IdempotencyKey = "over-" + string(measure)
			_, err = ledger.Accumulate(ctx, acc)
			assert.ErrorIs(t, err, domain.ErrDailyTotalExceeded, measure)

			acc.Amount = 5
			res, err := ledger.Accumulate(ctx, acc)
			require.NoError(t, err, "the rejected request must not keep its key")
			assert.Equal(t, domain.MaxDailyTotal, res.Total)
		}
	})

	t.Run("Unknown account cannot be advanced", func(t *testing.T) {
		_, err := accounts.IncrementCurrentDay(ctx, uuid.New().String())
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)

		_, err = accounts.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestPostgresRepositories_Concurrency(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	accounts := NewPostgresAccountRepository(db, 5*time.Second)
	ledger := NewPostgresLedgerRepository(db, 5*time.Second)

	account := createTestAccount(t, accounts, "concurrent-runner")

	const workers = 20

	var wg sync.WaitGroup
	for range workers {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := ledger.Accumulate(ctx, domain.Accumulation{
				AccountID: account.ID, Day: 1, Measure: domain.MeasureCalories, Amount: 5,
			})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := accounts.IncrementCurrentDay(ctx, account.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	totals, err := ledger.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, workers*5, totals[0].Total)

	stored, err := accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FirstDay+workers, stored.CurrentDay)
}
