package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// MaxAmount bounds a single accumulation.
	MaxAmount = 100_000

	// MaxDailyTotal bounds every (account, day, measure) aggregate so it fits
	// the narrowest column that stores one.
	MaxDailyTotal = math.MaxInt32
)

var (
	ErrInvalidAmount       = fmt.Errorf("%w: amount must be an integer between 0 and %d", ErrInvalidInput, MaxAmount)
	ErrDailyTotalExceeded  = fmt.Errorf("%w: daily total would exceed %d", ErrInvalidInput, MaxDailyTotal)
	ErrInvalidDay          = fmt.Errorf("%w: day must be a positive integer", ErrInvalidInput)
	ErrUnknownMeasure      = fmt.Errorf("%w: unknown ledger measure", ErrInvalidInput)
	ErrInvalidWorkoutItem  = fmt.Errorf("%w: workout item ids must be positive", ErrInvalidInput)
	ErrInvalidIdempotency  = fmt.Errorf("%w: idempotency key must be 1-128 printable characters", ErrInvalidInput)
	ErrIdempotencyConflict = fmt.Errorf("%w: idempotency key reused with a different request", ErrConflict)
)

const MaxIdempotencyKeyLen = 128

// AddWithinLimit returns total+amount, or ErrDailyTotalExceeded when the sum
// would pass MaxDailyTotal.
func AddWithinLimit(total, amount int) (int, error) {
	if amount > MaxDailyTotal-total {
		return total, ErrDailyTotalExceeded
	}
	return total + amount, nil
}

// Measure names one of the per-day aggregates kept in the ledger.
type Measure string

const (
	MeasureCalories Measure = "calories"
	MeasureWorkouts Measure = "workouts"
)

func (m Measure) Valid() bool {
	return m == MeasureCalories || m == MeasureWorkouts
}

// Accumulation is a request to add Amount to the (AccountID, Day) aggregate of
// Measure. A non-empty IdempotencyKey makes the request replay-safe.
type Accumulation struct {
	AccountID      string
	Day            int
	Measure        Measure
	Amount         int
	IdempotencyKey string
}

func (a Accumulation) Validate() error {
	if strings.TrimSpace(a.AccountID) == "" {
		return ErrAccountNotFound
	}
	if !a.Measure.Valid() {
		return ErrUnknownMeasure
	}
	if a.Day < FirstDay {
		return ErrInvalidDay
	}
	if a.Amount < 0 || a.Amount > MaxAmount {
		return ErrInvalidAmount
	}
	if a.IdempotencyKey != "" {
		if utf8.RuneCountInString(a.IdempotencyKey) > MaxIdempotencyKeyLen || strings.TrimSpace(a.IdempotencyKey) != a.IdempotencyKey {
			return ErrInvalidIdempotency
		}
	}
	return nil
}

type AccumulationResult struct {
	Day   int
	Total int

	// Replayed is true when the idempotency key had already been applied and
	// Total is the stored outcome of that earlier request.
	Replayed bool
}

// DailyTotal is one stored aggregate, as listed by the ledger store.
type DailyTotal struct {
	Day     int     `json:"day" db:"day"`
	Measure Measure `json:"measure" db:"measure"`
	Total   int     `json:"total" db:"total"`
}

type LedgerDay struct {
	Day            int `json:"day"`
	Calories       int `json:"calories"`
	CompletedCount int `json:"completed_count"`
}

// MergeDailyTotals folds per-measure aggregates into one row per day,
// ordered by ascending day.
func MergeDailyTotals(totals []DailyTotal) []LedgerDay {
	byDay := make(map[int]*LedgerDay, len(totals))
	for _, t := range totals {
		d, ok := byDay[t.Day]
		if !ok {
			d = &LedgerDay{Day: t.Day}
			byDay[t.Day] = d
		}
		switch t.Measure {
		case MeasureCalories:
			d.Calories += t.Total
		case MeasureWorkouts:
			d.CompletedCount += t.Total
		}
	}

	days := make([]LedgerDay, 0, len(byDay))
	for _, d := range byDay {
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Day < days[j].Day
	})
	return days
}

// CompletedItems returns how many distinct workout items were checked off.
func CompletedItems(itemIDs []int) (int, error) {
	seen := make(map[int]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		if id <= 0 {
			return 0, ErrInvalidWorkoutItem
		}
		seen[id] = struct{}{}
	}
	return len(seen), nil
}
