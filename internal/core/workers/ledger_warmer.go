package workers

import (
	"context"

	"github.com/sirupsen/logrus"
)

type LedgerRefresher interface {
	// Refresh reloads the account's ledger into the cache and reports how many rows it holds.
	Refresh(ctx context.Context, accountID string) (int, error)
}

type WarmJob struct {
	AccountID string
}

// LedgerWarmer reloads an account's ledger into the cache after a write, so
// the next read of the ledger or stats hits a warm, current entry.
type LedgerWarmer struct {
	ledger LedgerRefresher
	jobs   chan WarmJob
	log    logrus.FieldLogger
}

func NewLedgerWarmer(ledger LedgerRefresher, queueSize int, log logrus.FieldLogger) *LedgerWarmer {
	if queueSize <= 0 {
		queueSize = 100
	}
	return &LedgerWarmer{
		ledger: ledger,
		jobs:   make(chan WarmJob, queueSize),
		log:    log.WithField("component", "ledger_warmer"),
	}
}

func (w *LedgerWarmer) Start(ctx context.Context) {
	go func() {
		w.log.Info("ledger warmer started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.log.Info("ledger warmer shutting down")
				return
			}
		}
	}()
}

// Enqueue never blocks; when the queue is full the job is dropped and the
// cache simply fills on the next read.
func (w *LedgerWarmer) Enqueue(accountID string) {
	select {
	case w.jobs <- WarmJob{AccountID: accountID}:
	default:
		w.log.WithField("account_id", accountID).Warn("warm queue full, dropping job")
	}
}

func (w *LedgerWarmer) processJob(ctx context.Context, job WarmJob) {
	rows, err := w.ledger.Refresh(ctx, job.AccountID)
	if err != nil {
		w.log.WithError(err).WithField("account_id", job.AccountID).Warn("failed to warm ledger")
		return
	}
	w.log.WithFields(logrus.Fields{
		"account_id": job.AccountID,
		"rows":       rows,
	}).Debug("ledger warmed")
}
