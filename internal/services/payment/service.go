package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobpay/internal/logger"
	"jobpay/internal/repositories"

	"github.com/shopspring/decimal"
)

type service struct {
	repo    repositories.PaymentRepository
	cache   CacheInvalidator
	metrics MetricsCollector
	log     *logger.Logger
	now     func() time.Time
}

// NewService creates the payment service. cache and metrics are optional.
func NewService(
	repo repositories.PaymentRepository,
	cache CacheInvalidator,
	metrics MetricsCollector,
	log *logger.Logger,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	if log == nil {
		log = logger.Nop()
	}

	return &service{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		log:     log.With("service", "payment"),
		now:     time.Now,
	}
}

func (s *service) Deposit(ctx context.Context, clientID uint, amount decimal.Decimal) (*DepositResult, error) {
	start := time.Now()
	amount = amount.Round(2)
	result, err := s.deposit(ctx, clientID, amount)
	if err != nil {
		s.metrics.RecordError(OperationDeposit, err)
		s.metrics.RecordOutcome(OperationDeposit, OutcomeFailed, time.Since(start))
		return nil, err
	}

	s.metrics.RecordOutcome(OperationDeposit, result.Outcome, time.Since(start))
	if result.Outcome.IsSuccess() {
		s.metrics.RecordVolume(OperationDeposit, amount)
	}
	return result, nil
}

func (s *service) deposit(ctx context.Context, clientID uint, amount decimal.Decimal) (*DepositResult, error) {
	tx := s.repo.NewTransaction()
	defer s.rollback(tx, OperationDeposit)

	if !amount.IsPositive() {
		return &DepositResult{Outcome: OutcomeMustExceedZero}, nil
	}

	profile, err := s.repo.GetClientProfile(ctx, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return &DepositResult{Outcome: OutcomeClientDoesNotExist}, nil
		}
		return nil, fatal(err)
	}

	outstanding, err := s.repo.SumUnpaidJobPrices(ctx, clientID)
	if err != nil {
		return nil, fatal(err)
	}

	if outstanding.IsZero() || amount.GreaterThan(outstanding.Mul(DepositCapRatio)) {
		balance := profile.Balance
		return &DepositResult{Outcome: OutcomeDepositExceedsMaxAmount, Balance: &balance}, nil
	}

	if err := tx.Begin(ctx); err != nil {
		return nil, fatal(err)
	}

	rows, err := tx.UpdateBalance(clientID, amount)
	if err != nil {
		return nil, fatal(err)
	}
	if rows == 0 {
		s.log.Warn("deposit updated no rows", "profile_id", clientID)
		return &DepositResult{Outcome: OutcomeFailed}, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, fatal(err)
	}
	s.invalidate(ctx, clientID)

	updated, err := s.repo.GetClientProfile(ctx, clientID)
	if err != nil {
		s.log.Warn("deposit re-read failed", "profile_id", clientID, "error", err)
		return &DepositResult{Outcome: OutcomeFailed}, nil
	}

	balance := updated.Balance
	return &DepositResult{Outcome: OutcomeSuccess, Balance: &balance}, nil
}

func (s *service) PayJob(ctx context.Context, jobID uint, amount decimal.Decimal) (Outcome, error) {
	start := time.Now()
	amount = amount.Round(2)
	outcome, err := s.payJob(ctx, jobID, amount)
	if err != nil {
		s.metrics.RecordError(OperationPayJob, err)
	}

	s.metrics.RecordOutcome(OperationPayJob, outcome, time.Since(start))
	if outcome.IsSuccess() {
		s.metrics.RecordVolume(OperationPayJob, amount)
	}
	return outcome, err
}

func (s *service) payJob(ctx context.Context, jobID uint, amount decimal.Decimal) (Outcome, error) {
	tx := s.repo.NewTransaction()
	defer s.rollback(tx, OperationPayJob)

	if !amount.IsPositive() {
		return OutcomeMustExceedZero, nil
	}

	job, err := s.repo.GetJobWithContractAndProfiles(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return OutcomeJobDoesNotExist, nil
		}
		return OutcomeFailed, fatal(err)
	}

	if !job.Price.IsPositive() || amount.GreaterThan(job.Price) {
		return OutcomePaymentAmountExceedsJobPay, nil
	}
	if job.Paid {
		return OutcomeJobAlreadyPaid, nil
	}
	if job.Contract.IsTerminated() {
		return OutcomeContractTerminated, nil
	}

	clientID := job.Contract.Client.ID
	contractorID := job.Contract.Contractor.ID

	if err := tx.Begin(ctx); err != nil {
		return OutcomeFailed, fatal(err)
	}

	// Claim the job first: a concurrent payment of the same job blocks on this
	// row and then sees zero rows.
	rows, err := tx.MarkJobPaid(jobID, s.now())
	if err != nil {
		return OutcomeFailed, fatal(err)
	}
	if rows == 0 {
		s.log.Warn("job payment lost the claim", "job_id", jobID)
		return OutcomeFailed, nil
	}

	rows, err = tx.UpdateBalance(contractorID, amount)
	if err != nil {
		return OutcomeFailed, fatal(err)
	}
	if rows == 0 {
		s.log.Warn("contractor credit updated no rows", "job_id", jobID, "profile_id", contractorID)
		return OutcomeFailed, nil
	}

	rows, err = tx.UpdateBalance(clientID, amount.Neg())
	if err != nil {
		return OutcomeFailed, fatal(err)
	}
	if rows == 0 {
		s.log.Warn("client debit updated no rows", "job_id", jobID, "profile_id", clientID)
		return OutcomeFailed, nil
	}

	if err := tx.Commit(); err != nil {
		return OutcomeFailed, fatal(err)
	}
	s.invalidate(ctx, clientID, contractorID)

	updated, err := s.repo.GetJob(ctx, jobID)
	if err != nil || !updated.Paid {
		s.log.Warn("job payment re-read failed", "job_id", jobID, "error", err)
		return OutcomeFailed, nil
	}

	return OutcomeSuccess, nil
}

func (s *service) rollback(tx repositories.PaymentTransaction, operation string) {
	if err := tx.Rollback(); err != nil {
		s.log.Error("rollback failed", "operation", operation, "error", err)
	}
}

func (s *service) invalidate(ctx context.Context, ids ...uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCache(ctx, ids...); err != nil {
		s.log.Warn("profile cache invalidation failed", "profile_ids", ids, "error", err)
	}
}

func fatal(err error) error {
	return fmt.Errorf("%w: %w", ErrProcessingFailed, err)
}
