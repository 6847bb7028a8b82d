package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobpay/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetClientProfile(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Where("id = ? AND type = ?", id, models.ProfileTypeClient).
		Take(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get client profile: %w", err)
	}
	return &profile, nil
}

func (r *paymentRepository) GetJob(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

func (r *paymentRepository) GetJobWithContractAndProfiles(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Preload("Contract.Client").
		Preload("Contract.Contractor").
		First(&job, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job.Contract == nil || job.Contract.Client == nil || job.Contract.Contractor == nil {
		return nil, ErrJobNotFound
	}
	return &job, nil
}

func (r *paymentRepository) SumUnpaidJobPrices(ctx context.Context, clientID uint) (decimal.Decimal, error) {
	// Summed in Go: SQL SUM over NUMERIC comes back as a float on some drivers.
	var prices []decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Joins("JOIN contracts ON contracts.id = jobs.contract_id").
		Where("contracts.client_id = ? AND contracts.status <> ? AND jobs.paid = ?",
			clientID, models.ContractStatusTerminated, false).
		Pluck("jobs.price", &prices).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum unpaid jobs: %w", err)
	}
	return decimal.Sum(decimal.Zero, prices...), nil
}

func (r *paymentRepository) NewTransaction() PaymentTransaction {
	return &paymentTx{db: r.db}
}

type paymentTx struct {
	db   *gorm.DB
	tx   *gorm.DB
	done bool
}

func (t *paymentTx) Begin(ctx context.Context) error {
	if t.tx != nil {
		return ErrTxAlreadyOpen
	}
	tx := t.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	t.tx = tx
	return nil
}

func (t *paymentTx) Commit() error {
	if err := t.active(); err != nil {
		return err
	}
	t.done = true
	if err := t.tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (t *paymentTx) Rollback() error {
	if t.tx == nil || t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback().Error; err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}

func (t *paymentTx) UpdateBalance(profileID uint, delta decimal.Decimal) (int64, error) {
	if err := t.active(); err != nil {
		return 0, err
	}

	var locked models.Profile
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "balance").
		Where("id = ?", profileID).
		Take(&locked).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to lock profile %d: %w", profileID, err)
	}

	result := t.tx.Model(&models.Profile{}).
		Where("id = ?", profileID).
		Update("balance", locked.Balance.Add(delta).Round(2))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update balance of profile %d: %w", profileID, result.Error)
	}
	return result.RowsAffected, nil
}

func (t *paymentTx) MarkJobPaid(jobID uint, paidAt time.Time) (int64, error) {
	if err := t.active(); err != nil {
		return 0, err
	}

	var locked models.Job
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "paid").
		Where("id = ?", jobID).
		Take(&locked).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to lock job %d: %w", jobID, err)
	}
	if locked.Paid {
		return 0, nil
	}

	result := t.tx.Model(&models.Job{}).
		Where("id = ? AND paid = ?", jobID, false).
		Updates(map[string]interface{}{
			"paid":         true,
			"payment_date": paidAt,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark job %d paid: %w", jobID, result.Error)
	}
	return result.RowsAffected, nil
}

func (t *paymentTx) active() error {
	if t.tx == nil || t.done {
		return ErrTxNotOpen
	}
	return nil
}
