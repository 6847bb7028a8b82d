package repositories

import (
	"context"
	"errors"

	"jobpay/internal/models"
)

var ErrContractNotFound = errors.New("contract not found")

// ContractRepository serves the contract lookups of the HTTP layer. Every
// query is scoped to contracts the profile is a party to.
type ContractRepository interface {
	// GetForProfile loads the contract with both parties. A contract whose
	// parties do not carry the expected profile types is reported as not found.
	GetForProfile(ctx context.Context, profileID, contractID uint) (*models.Contract, error)
	// ListActive returns non-terminated contracts that have at least one job,
	// with their jobs.
	ListActive(ctx context.Context, profileID uint) ([]models.Contract, error)
}
