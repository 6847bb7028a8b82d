package repositories

import (
	"context"
	"errors"
	"time"

	"jobpay/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrTxNotOpen     = errors.New("transaction is not open")
	ErrTxAlreadyOpen = errors.New("transaction already opened")
)

// PaymentRepository is the persistence surface of the payment service.
// Reads go to the system of record; mutations only happen through a
// PaymentTransaction.
type PaymentRepository interface {
	GetClientProfile(ctx context.Context, id uint) (*models.Profile, error)
	GetJob(ctx context.Context, id uint) (*models.Job, error)
	// GetJobWithContractAndProfiles fails with ErrJobNotFound unless the job,
	// its contract and both of the contract's profiles resolve.
	GetJobWithContractAndProfiles(ctx context.Context, id uint) (*models.Job, error)
	// SumUnpaidJobPrices totals unpaid jobs on the client's non-terminated contracts.
	SumUnpaidJobPrices(ctx context.Context, clientID uint) (decimal.Decimal, error)
	// NewTransaction returns an unopened handle; nothing touches the database
	// until Begin.
	NewTransaction() PaymentTransaction
}

// PaymentTransaction is a lazily opened database transaction. Rollback is
// safe to call at any point, including before Begin and after Commit.
type PaymentTransaction interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	// UpdateBalance locks the profile row and moves its balance by delta.
	// It reports the number of rows written; zero means the row is gone.
	UpdateBalance(profileID uint, delta decimal.Decimal) (int64, error)
	// MarkJobPaid locks the job row and flips it to paid. Zero rows means the
	// job is gone or someone else already paid it.
	MarkJobPaid(jobID uint, paidAt time.Time) (int64, error)
}
