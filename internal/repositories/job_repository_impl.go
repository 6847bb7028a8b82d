package repositories

import (
	"context"
	"errors"
	"fmt"

	"jobpay/internal/models"

	"gorm.io/gorm"
)

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) GetForClient(ctx context.Context, clientID, jobID uint) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Joins("JOIN contracts ON contracts.id = jobs.contract_id").
		Where("jobs.id = ? AND contracts.client_id = ?", jobID, clientID).
		Preload("Contract.Client").
		Take(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job.Contract == nil || job.Contract.Client == nil {
		return nil, ErrJobNotFound
	}
	return &job, nil
}

func (r *jobRepository) ListUnpaid(ctx context.Context, profileID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Joins("JOIN contracts ON contracts.id = jobs.contract_id").
		Where("(contracts.client_id = ? OR contracts.contractor_id = ?) AND contracts.status <> ? AND jobs.paid = ?",
			profileID, profileID, models.ContractStatusTerminated, false).
		Order("jobs.id ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unpaid jobs: %w", err)
	}
	return jobs, nil
}
