package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

var _ domain.AccountRepository = (*PostgresAccountRepository)(nil)

const accountColumns = `id, username, email, password_hash, age, height, weight, goal,
	risk_level, program_level, goal_duration, picture_ref, current_day, created_at, updated_at`

type PostgresAccountRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewPostgresAccountRepository(db *sqlx.DB, timeout time.Duration) *PostgresAccountRepository {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &PostgresAccountRepository{
		db:      db,
		timeout: timeout,
	}
}

func (r *PostgresAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO accounts (
			id, username, email, password_hash, age, height, weight, goal,
			risk_level, program_level, goal_duration, picture_ref, current_day, created_at, updated_at
		) VALUES (
			:id, :username, :email, :password_hash, :age, :height, :weight, :goal,
			:risk_level, :program_level, :goal_duration, :picture_ref, :current_day, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, account); err != nil {
		if pgCode(err) == pgUniqueViolation {
			return domain.ErrUsernameTaken
		}
		return wrapStoreError("create account", err)
	}

	return nil
}

func (r *PostgresAccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.getOne(ctx, "get account by username", `SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username)
}

func (r *PostgresAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getOne(ctx, "get account by id", `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

func (r *PostgresAccountRepository) getOne(ctx context.Context, op, query string, arg any) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var account domain.Account
	if err := r.db.GetContext(ctx, &account, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) || pgCode(err) == pgInvalidTextRepr {
			return nil, domain.ErrAccountNotFound
		}
		return nil, wrapStoreError(op, err)
	}

	return &account, nil
}

func (r *PostgresAccountRepository) UpdateProfile(ctx context.Context, account *domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		UPDATE accounts
		SET email = :email,
		    age = :age,
		    height = :height,
		    weight = :weight,
		    goal = :goal,
		    risk_level = :risk_level,
		    program_level = :program_level,
		    goal_duration = :goal_duration,
		    picture_ref = :picture_ref,
		    updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, account)
	if err != nil {
		if pgCode(err) == pgInvalidTextRepr {
			return domain.ErrAccountNotFound
		}
		return wrapStoreError("update profile", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return wrapStoreError("update profile", err)
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

func (r *PostgresAccountRepository) IncrementCurrentDay(ctx context.Context, id string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		UPDATE accounts
		SET current_day = current_day + 1,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING current_day`

	var day int
	if err := r.db.QueryRowxContext(ctx, query, id).Scan(&day); err != nil {
		if errors.Is(err, sql.ErrNoRows) || pgCode(err) == pgInvalidTextRepr {
			return 0, domain.ErrAccountNotFound
		}
		return 0, wrapStoreError("increment current day", err)
	}

	return day, nil
}
