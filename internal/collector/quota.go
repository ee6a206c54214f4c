// Package collector implements quota-aware collection against the YouTube
// Data API: catalog pagination, batched statistics/metadata fetches, and
// the in-process daily quota budget.
package collector

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrQuotaExhausted is returned once cumulative consumed units reach the
// daily ceiling. Callers check it with errors.Is.
var ErrQuotaExhausted = errors.New("daily API quota exhausted")

// QuotaTracker enforces the daily unit budget for one process lifetime.
// There is no calendar reset; the caller runs at most once per real day.
type QuotaTracker struct {
	dailyLimit int
	used       int
	logger     *zap.Logger
}

// NewQuotaTracker creates a tracker with the given daily limit.
func NewQuotaTracker(dailyLimit int, logger *zap.Logger) *QuotaTracker {
	if dailyLimit <= 0 {
		dailyLimit = 10000 // YouTube Data API v3 default
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuotaTracker{dailyLimit: dailyLimit, logger: logger}
}

// Consume records units against the budget. The overshoot is recorded even
// when the call fails, so repeated calls after exhaustion keep counting and
// keep failing.
func (q *QuotaTracker) Consume(units int) error {
	q.used += units

	if float64(q.used) > float64(q.dailyLimit)*0.9 {
		q.logger.Warn("API quota nearing daily limit",
			zap.Int("used", q.used),
			zap.Int("limit", q.dailyLimit),
		)
	}

	if q.used >= q.dailyLimit {
		return fmt.Errorf("%w: used %d of %d units", ErrQuotaExhausted, q.used, q.dailyLimit)
	}
	return nil
}

// Used returns the units consumed so far.
func (q *QuotaTracker) Used() int {
	return q.used
}

// Remaining returns the units left before the daily limit.
func (q *QuotaTracker) Remaining() int {
	return q.dailyLimit - q.used
}

// Limit returns the daily limit.
func (q *QuotaTracker) Limit() int {
	return q.dailyLimit
}
