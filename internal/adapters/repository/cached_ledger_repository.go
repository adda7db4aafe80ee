package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

var _ domain.LedgerRepository = (*CachedLedgerRepository)(nil)

const ledgerCacheTTL = 30 * time.Minute

// CachedLedgerRepository keeps each account's ledger listing in Redis.
// Redis failures never fail a request; the underlying store stays the source of truth.
type CachedLedgerRepository struct {
	next  domain.LedgerRepository
	cache *redis.Client
	log   logrus.FieldLogger
}

func NewCachedLedgerRepository(next domain.LedgerRepository, cache *redis.Client, log logrus.FieldLogger) *CachedLedgerRepository {
	return &CachedLedgerRepository{
		next:  next,
		cache: cache,
		log:   log.WithField("component", "ledger_cache"),
	}
}

func (r *CachedLedgerRepository) cacheKey(accountID string) string {
	return fmt.Sprintf("ledger:%s", accountID)
}

// genKey is bumped on every write. Fills watch it so a listing read before a
// write is never stored after that write's invalidation.
func (r *CachedLedgerRepository) genKey(accountID string) string {
	return fmt.Sprintf("ledger:%s:gen", accountID)
}

func (r *CachedLedgerRepository) invalidate(ctx context.Context, accountID string) {
	gen := r.genKey(accountID)
	_, err := r.cache.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.cacheKey(accountID))
		pipe.Incr(ctx, gen)
		pipe.Expire(ctx, gen, 2*ledgerCacheTTL)
		return nil
	})
	if err != nil {
		r.log.WithError(err).WithField("account_id", accountID).Warn("failed to invalidate ledger cache")
	}
}

func (r *CachedLedgerRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.DailyTotal, error) {
	key := r.cacheKey(accountID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var totals []domain.DailyTotal
		if err := json.Unmarshal([]byte(val), &totals); err == nil {
			return totals, nil
		}

		r.log.WithField("account_id", accountID).Warn("corrupted ledger cache entry, cleaning up key")
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.log.WithError(err).Warn("redis read error")
	}

	return r.load(ctx, accountID)
}

// Refresh reloads the listing from the store and overwrites the cached copy.
func (r *CachedLedgerRepository) Refresh(ctx context.Context, accountID string) (int, error) {
	totals, err := r.load(ctx, accountID)
	return len(totals), err
}

func (r *CachedLedgerRepository) load(ctx context.Context, accountID string) ([]domain.DailyTotal, error) {
	var (
		totals  []domain.DailyTotal
		loadErr error
		loaded  bool
	)

	err := r.cache.Watch(ctx, func(tx *redis.Tx) error {
		totals, loadErr = r.next.ListByAccount(ctx, accountID)
		loaded = true
		if loadErr != nil {
			return loadErr
		}

		data, err := json.Marshal(totals)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.cacheKey(accountID), data, ledgerCacheTTL)
			return nil
		})
		return err
	}, r.genKey(accountID))

	if !loaded {
		r.log.WithError(err).Warn("redis watch error")
		return r.next.ListByAccount(ctx, accountID)
	}
	if loadErr != nil {
		return nil, loadErr
	}

	switch {
	case err == nil:
	case errors.Is(err, redis.TxFailedErr):
		r.log.WithField("account_id", accountID).Debug("ledger written during load, listing not cached")
	default:
		r.log.WithError(err).Warn("redis set error")
	}

	return totals, nil
}

func (r *CachedLedgerRepository) Accumulate(ctx context.Context, acc domain.Accumulation) (domain.AccumulationResult, error) {
	res, err := r.next.Accumulate(ctx, acc)
	if err != nil {
		return res, err
	}
	if !res.Replayed {
		r.invalidate(ctx, acc.AccountID)
	}
	return res, nil
}
