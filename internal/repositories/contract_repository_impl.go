package repositories

import (
	"context"
	"errors"
	"fmt"

	"jobpay/internal/models"

	"gorm.io/gorm"
)

type contractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) GetForProfile(ctx context.Context, profileID, contractID uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).
		Preload("Client", "type = ?", models.ProfileTypeClient).
		Preload("Contractor", "type = ?", models.ProfileTypeContractor).
		Where("id = ? AND (client_id = ? OR contractor_id = ?)", contractID, profileID, profileID).
		Take(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, fmt.Errorf("failed to get contract: %w", err)
	}
	if contract.Client == nil || contract.Contractor == nil {
		return nil, ErrContractNotFound
	}
	return &contract, nil
}

func (r *contractRepository) ListActive(ctx context.Context, profileID uint) ([]models.Contract, error) {
	var contracts []models.Contract
	err := r.db.WithContext(ctx).
		Preload("Jobs", func(db *gorm.DB) *gorm.DB {
			return db.Order("jobs.id ASC")
		}).
		Where("(client_id = ? OR contractor_id = ?) AND status <> ?",
			profileID, profileID, models.ContractStatusTerminated).
		Where("EXISTS (SELECT 1 FROM jobs WHERE jobs.contract_id = contracts.id)").
		Order("contracts.id ASC").
		Find(&contracts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}
