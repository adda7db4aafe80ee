package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

var (
	_ domain.AccountRepository = (*InMemoryAccountRepository)(nil)
	_ domain.LedgerRepository  = (*InMemoryLedgerRepository)(nil)
)

// InMemoryAccountRepository backs the "memory" storage driver and tests.
// Stored accounts are copied in and out so callers never share state.
type InMemoryAccountRepository struct {
	store      map[string]*domain.Account
	byUsername map[string]string

	mu sync.RWMutex
}

func NewInMemoryAccountRepository() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{
		store:      make(map[string]*domain.Account),
		byUsername: make(map[string]string),
	}
}

func (r *InMemoryAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[account.Username]; taken {
		return domain.ErrUsernameTaken
	}

	stored := *account
	r.store[account.ID] = &stored
	r.byUsername[account.Username] = account.ID
	return nil
}

func (r *InMemoryAccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	account := *r.store[id]
	return &account, nil
}

func (r *InMemoryAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.store[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	account := *stored
	return &account, nil
}

func (r *InMemoryAccountRepository) UpdateProfile(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[account.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}

	updated := *account
	updated.Username = stored.Username
	updated.PasswordHash = stored.PasswordHash
	updated.CurrentDay = stored.CurrentDay
	r.store[account.ID] = &updated
	return nil
}

func (r *InMemoryAccountRepository) IncrementCurrentDay(ctx context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.store[id]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	stored.CurrentDay++
	return stored.CurrentDay, nil
}

type ledgerKey struct {
	accountID string
	day       int
	measure   domain.Measure
}

type submissionKey struct {
	accountID string
	key       string
}

type submission struct {
	measure domain.Measure
	amount  int
	result  domain.AccumulationResult
}

type InMemoryLedgerRepository struct {
	totals      map[ledgerKey]int
	submissions map[submissionKey]submission

	mu sync.Mutex
}

func NewInMemoryLedgerRepository() *InMemoryLedgerRepository {
	return &InMemoryLedgerRepository{
		totals:      make(map[ledgerKey]int),
		submissions: make(map[submissionKey]submission),
	}
}

func (r *InMemoryLedgerRepository) Accumulate(ctx context.Context, acc domain.Accumulation) (domain.AccumulationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sk submissionKey
	if acc.IdempotencyKey != "" {
		sk = submissionKey{accountID: acc.AccountID, key: acc.IdempotencyKey}
		if prev, ok := r.submissions[sk]; ok {
			if prev.measure != acc.Measure || prev.amount != acc.Amount {
				return domain.AccumulationResult{}, domain.ErrIdempotencyConflict
			}
			res := prev.result
			res.Replayed = true
			return res, nil
		}
	}

	k := ledgerKey{accountID: acc.AccountID, day: acc.Day, measure: acc.Measure}
	total, err := domain.AddWithinLimit(r.totals[k], acc.Amount)
	if err != nil {
		return domain.AccumulationResult{}, err
	}
	r.totals[k] = total

	res := domain.AccumulationResult{Day: acc.Day, Total: total}
	if acc.IdempotencyKey != "" {
		r.submissions[sk] = submission{measure: acc.Measure, amount: acc.Amount, result: res}
	}
	return res, nil
}

func (r *InMemoryLedgerRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.DailyTotal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	totals := []domain.DailyTotal{}
	for k, v := range r.totals {
		if k.accountID == accountID {
			totals = append(totals, domain.DailyTotal{Day: k.day, Measure: k.measure, Total: v})
		}
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Day != totals[j].Day {
			return totals[i].Day < totals[j].Day
		}
		return totals[i].Measure < totals[j].Measure
	})

	return totals, nil
}
