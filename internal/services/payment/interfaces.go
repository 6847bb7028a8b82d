package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Service moves money between profile balances.
type Service interface {
	// Deposit credits a client's balance, capped at DepositCapRatio of the
	// client's outstanding job total.
	Deposit(ctx context.Context, clientID uint, amount decimal.Decimal) (*DepositResult, error)
	// PayJob transfers amount from the job's client to its contractor and
	// marks the job paid. Client solvency is the caller's responsibility.
	PayJob(ctx context.Context, jobID uint, amount decimal.Decimal) (Outcome, error)
}

// CacheInvalidator drops cached snapshots of profiles whose balance moved.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context, ids ...uint) error
}

// MetricsCollector receives one call per finished operation.
type MetricsCollector interface {
	RecordOutcome(operation string, outcome Outcome, duration time.Duration)
	RecordVolume(operation string, amount decimal.Decimal)
	RecordError(operation string, err error)
}
