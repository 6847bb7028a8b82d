package handlers

import (
	"encoding/json"
	"errors"

	apperrors "jobpay/internal/errors"
	"jobpay/internal/logger"
	"jobpay/internal/middleware"
	"jobpay/internal/repositories"
	"jobpay/internal/services/payment"
	"jobpay/internal/utils"
	"jobpay/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// PaymentHandler adapts the payment service to HTTP.
type PaymentHandler struct {
	payments payment.Service
	jobs     repositories.JobRepository
	log      *logger.Logger
}

func NewPaymentHandler(payments payment.Service, jobs repositories.JobRepository, log *logger.Logger) *PaymentHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &PaymentHandler{
		payments: payments,
		jobs:     jobs,
		log:      log.With("handler", "payment"),
	}
}

type paymentRequest struct {
	PaymentAmount json.RawMessage `json:"paymentAmount"`
}

type depositResponse struct {
	NewBalance decimal.Decimal `json:"newBalance"`
}

// PayJob handles POST /jobs/:id/pay.
func (h *PaymentHandler) PayJob(c *fiber.Ctx) error {
	profile, ok := middleware.CallerProfile(c)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, apperrors.ErrProfileRequired)
	}

	amount, invalid := parseAmount(c)
	if invalid != nil {
		return utils.BadRequest(c, invalid)
	}

	jobID, err := c.ParamsInt("id")
	if err != nil || jobID <= 0 {
		return utils.NotFound(c, apperrors.ErrJobNotFound.WithMessage("the job with the jobId: %s does not exist for this profile", c.Params("id")))
	}

	ctx := c.UserContext()
	job, err := h.jobs.GetForClient(ctx, profile.ID, uint(jobID))
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return utils.NotFound(c, apperrors.ErrJobNotFound.WithMessage("the job with the jobId: %d does not exist for this profile", jobID))
		}
		h.log.Error("failed to load job", "job_id", jobID, "profile_id", profile.ID, "error", err)
		return utils.InternalError(c)
	}

	// The caller profile may be a cache snapshot; solvency uses the payer row.
	payer := job.Contract.Client
	if !payer.IsClient() {
		return utils.NotFound(c, apperrors.ErrJobNotFound.WithMessage("the job with the jobId: %d does not exist for this profile", jobID))
	}
	if payer.Balance.LessThan(job.Price) {
		return utils.BadRequest(c, apperrors.ErrInsufficientFunds)
	}

	outcome, err := h.payments.PayJob(ctx, job.ID, amount)
	if err != nil {
		h.log.Error("job payment failed", "job_id", job.ID, "error", err)
		return utils.InternalError(c)
	}
	if !outcome.IsSuccess() {
		return utils.Error(c, fiber.StatusUnprocessableEntity, outcomeError(outcome))
	}

	return c.SendStatus(fiber.StatusOK)
}

// Deposit handles POST /balances/deposit/:userId.
func (h *PaymentHandler) Deposit(c *fiber.Ctx) error {
	profile, ok := middleware.CallerProfile(c)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, apperrors.ErrProfileRequired)
	}

	userID, err := c.ParamsInt("userId")
	if err != nil || userID <= 0 || uint(userID) != profile.ID {
		return utils.Error(c, fiber.StatusConflict, apperrors.ErrClientMismatch)
	}

	amount, invalid := parseAmount(c)
	if invalid != nil {
		return utils.BadRequest(c, invalid)
	}

	result, err := h.payments.Deposit(c.UserContext(), profile.ID, amount)
	if err != nil {
		h.log.Error("deposit failed", "profile_id", profile.ID, "error", err)
		return utils.InternalError(c)
	}
	if !result.Outcome.IsSuccess() || result.Balance == nil {
		return utils.Error(c, fiber.StatusUnprocessableEntity, outcomeError(result.Outcome))
	}

	return utils.Success(c, depositResponse{NewBalance: *result.Balance})
}

// ListUnpaid handles GET /jobs/unpaid.
func (h *PaymentHandler) ListUnpaid(c *fiber.Ctx) error {
	profile, ok := middleware.CallerProfile(c)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, apperrors.ErrProfileRequired)
	}

	jobs, err := h.jobs.ListUnpaid(c.UserContext(), profile.ID)
	if err != nil {
		h.log.Error("failed to list unpaid jobs", "profile_id", profile.ID, "error", err)
		return utils.InternalError(c)
	}
	return utils.Success(c, jobs)
}

func parseAmount(c *fiber.Ctx) (decimal.Decimal, *apperrors.DomainError) {
	var req paymentRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return decimal.Zero, apperrors.ErrInvalidAmount.WithMessage("request body is not valid JSON")
		}
	}

	amount, err := validation.ParseAmount(req.PaymentAmount)
	if err != nil {
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			return decimal.Zero, domainErr
		}
		return decimal.Zero, apperrors.ErrInvalidAmount
	}
	return amount, nil
}

func outcomeError(outcome payment.Outcome) *apperrors.DomainError {
	return &apperrors.DomainError{Code: outcome.String(), Message: outcome.Message()}
}
