package handlers

import (
	"errors"

	apperrors "jobpay/internal/errors"
	"jobpay/internal/logger"
	"jobpay/internal/middleware"
	"jobpay/internal/repositories"
	"jobpay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// ContractHandler serves read-only contract endpoints for the caller.
type ContractHandler struct {
	contracts repositories.ContractRepository
	log       *logger.Logger
}

func NewContractHandler(contracts repositories.ContractRepository, log *logger.Logger) *ContractHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ContractHandler{contracts: contracts, log: log.With("handler", "contract")}
}

// GetContract handles GET /contracts/:id.
func (h *ContractHandler) GetContract(c *fiber.Ctx) error {
	profile, ok := middleware.CallerProfile(c)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, apperrors.ErrProfileRequired)
	}

	contractID, err := c.ParamsInt("id")
	if err != nil || contractID <= 0 {
		return utils.BadRequest(c, apperrors.ErrInvalidContractID.WithMessage("contractId: %s in path is invalid", c.Params("id")))
	}

	contract, err := h.contracts.GetForProfile(c.UserContext(), profile.ID, uint(contractID))
	if err != nil {
		if errors.Is(err, repositories.ErrContractNotFound) {
			return utils.NotFound(c, apperrors.ErrContractNotFound.WithMessage("the contract with the contractId: %d does not exist for this profile", contractID))
		}
		h.log.Error("failed to load contract", "contract_id", contractID, "profile_id", profile.ID, "error", err)
		return utils.InternalError(c)
	}
	return utils.Success(c, contract)
}

// ListContracts handles GET /contracts.
func (h *ContractHandler) ListContracts(c *fiber.Ctx) error {
	profile, ok := middleware.CallerProfile(c)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, apperrors.ErrProfileRequired)
	}

	contracts, err := h.contracts.ListActive(c.UserContext(), profile.ID)
	if err != nil {
		h.log.Error("failed to list contracts", "profile_id", profile.ID, "error", err)
		return utils.InternalError(c)
	}
	return utils.Success(c, contracts)
}
