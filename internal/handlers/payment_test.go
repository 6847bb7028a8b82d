package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "jobpay/internal/errors"
	"jobpay/internal/middleware"
	"jobpay/internal/models"
	"jobpay/internal/repositories"
	"jobpay/internal/services/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Deposit(ctx context.Context, clientID uint, amount decimal.Decimal) (*payment.DepositResult, error) {
	args := m.Called(ctx, clientID, amount.String())
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.DepositResult), args.Error(1)
}

func (m *MockPaymentService) PayJob(ctx context.Context, jobID uint, amount decimal.Decimal) (payment.Outcome, error) {
	args := m.Called(ctx, jobID, amount.String())
	return args.Get(0).(payment.Outcome), args.Error(1)
}

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) GetForClient(ctx context.Context, clientID, jobID uint) (*models.Job, error) {
	args := m.Called(ctx, clientID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) ListUnpaid(ctx context.Context, profileID uint) ([]models.Job, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Job), args.Error(1)
}

func newPaymentApp(svc payment.Service, jobs repositories.JobRepository, caller *models.Profile) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if caller != nil {
			c.Locals(middleware.ProfileLocal, caller)
		}
		return c.Next()
	})
	h := NewPaymentHandler(svc, jobs, nil)
	app.Post("/jobs/:id/pay", h.PayJob)
	app.Post("/balances/deposit/:userId", h.Deposit)
	app.Get("/jobs/unpaid", h.ListUnpaid)
	return app
}

func client(balance string) *models.Profile {
	return &models.Profile{ID: 1, Type: models.ProfileTypeClient, Balance: decimal.RequireFromString(balance)}
}

func decodeError(t *testing.T, body io.Reader) apperrors.DomainError {
	t.Helper()
	var out apperrors.DomainError
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

// jobPaidBy returns a job of price 100 whose contract client holds payerBalance
// in the database.
func jobPaidBy(payerBalance string) *models.Job {
	return &models.Job{
		ID:    10,
		Price: decimal.RequireFromString("100"),
		Contract: &models.Contract{
			ID:       5,
			ClientID: 1,
			Client:   client(payerBalance),
		},
	}
}

func TestPaymentHandler_PayJob(t *testing.T) {
	job := jobPaidBy("500")

	tests := []struct {
		name       string
		caller     *models.Profile
		path       string
		body       string
		setupMock  func(*MockPaymentService, *MockJobRepository)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "no caller",
			path:       "/jobs/10/pay",
			body:       `{"paymentAmount": 100}`,
			wantStatus: fiber.StatusUnauthorized,
			wantCode:   apperrors.ErrProfileRequired.Code,
		},
		{
			name:       "missing amount",
			caller:     client("500"),
			path:       "/jobs/10/pay",
			body:       `{}`,
			wantStatus: fiber.StatusBadRequest,
			wantCode:   apperrors.ErrMissingAmount.Code,
		},
		{
			name:       "negative amount",
			caller:     client("500"),
			path:       "/jobs/10/pay",
			body:       `{"paymentAmount": -3}`,
			wantStatus: fiber.StatusBadRequest,
			wantCode:   apperrors.ErrInvalidAmount.Code,
		},
		{
			name:       "non-numeric job id",
			caller:     client("500"),
			path:       "/jobs/abc/pay",
			body:       `{"paymentAmount": 100}`,
			wantStatus: fiber.StatusNotFound,
			wantCode:   apperrors.ErrJobNotFound.Code,
		},
		{
			name:   "job not on caller's contracts",
			caller: client("500"),
			path:   "/jobs/10/pay",
			body:   `{"paymentAmount": 100}`,
			setupMock: func(svc *MockPaymentService, jobs *MockJobRepository) {
				jobs.On("GetForClient", mock.Anything, uint(1), uint(10)).Return(nil, repositories.ErrJobNotFound)
			},
			wantStatus: fiber.StatusNotFound,
			wantCode:   apperrors.ErrJobNotFound.Code,
		},
		{
			name:   "insufficient funds",
			caller: client("99.99"),
			path:   "/jobs/10/pay",
			body:   `{"paymentAmount": 50}`,
			setupMock: func(svc *MockPaymentService, jobs *MockJobRepository) {
				jobs.On("GetForClient", mock.Anything, uint(1), uint(10)).Return(jobPaidBy("99.99"), nil)
			},
			wantStatus: fiber.StatusBadRequest,
			wantCode:   apperrors.ErrInsufficientFunds.Code,
		},
		{
			name:   "stale caller snapshot does not hide insufficient funds",
			caller: client("5000"),
			path:   "/jobs/10/pay",
			body:   `{"paymentAmount": 100}`,
			setupMock: func(svc *MockPaymentService, jobs *MockJobRepository) {
				jobs.On("GetForClient", mock.Anything, uint(1), uint(10)).Return(jobPaidBy("0"), nil)
			},
			wantStatus: fiber.StatusBadRequest,
			wantCode:   apperrors.ErrInsufficientFunds.Code,
		},
		{
			name:   "payer row is not a client",
			caller: client("500"),
			path:   "/jobs/10/pay",
			body:   `{"paymentAmount": 100}`,
			setupMock: func(svc *MockPaymentService, jobs *MockJobRepository) {
				j := jobPaidBy("500")
				j.Contract.Client.Type = models.ProfileTypeContractor
				jobs.On("GetForClient", mock.Anything, uint(1), uint(10)).Return(j, nil)
			},
			wantStatus: fiber.StatusNotFound,
			wantCode:   apperrors.ErrJobNotFound.Code,
		},
		{
			name:   "non-success outcome",
			caller: client("500"),
			path:   "/jobs/10/pay",
			body:   `{"paymentAmount": "100"}`,
			setupMock: func(svc *MockPaymentService, jobs *MockJobRepository) {
				jobs.On("GetForClient", mock.Anything, uint(1), uint(10)).Return(job, nil)
				svc.On("PayJob", mock.Anything, uint(10), "100").Return(payment.OutcomeJobAlreadyPaid, nil)
			},
			wantStatus: fiber.StatusUnprocessableEntity,
			wantCode:   string(payment.OutcomeJobAlreadyPaid),
		},
		{
			name:   "zero amount reaches the service",
			caller: client("500"),
			path:   "/jobs/10/pay",
			body:   `{"paymentAmount": 0}`,
			setupMock: func(svc *MockPaymentService, jobs *MockJobRepository) {
				jobs.On("GetForClient", mock.Anything, uint(1), uint(10)).Return(job, nil)
				svc.On("PayJob", mock.Anything, uint(10), "0").Return(payment.OutcomeMustExceedZero, nil)
			},
			wantStatus: fiber.StatusUnprocessableEntity,
			wantCode:   string(payment.OutcomeMustExceedZero),
		},
		{
			name:   "service failure",
			caller: client("500"),
			path:   "/jobs/10/pay",
			body:   `{"paymentAmount": 100}`,
			setupMock: func(svc *MockPaymentService, jobs *MockJobRepository) {
				jobs.On("GetForClient", mock.Anything, uint(1), uint(10)).Return(job, nil)
				svc.On("PayJob", mock.Anything, uint(10), "100").Return(payment.OutcomeFailed, payment.ErrProcessingFailed)
			},
			wantStatus: fiber.StatusInternalServerError,
			wantCode:   apperrors.ErrInternal.Code,
		},
		{
			name:   "paid",
			caller: client("500"),
			path:   "/jobs/10/pay",
			body:   `{"paymentAmount": 100}`,
			setupMock: func(svc *MockPaymentService, jobs *MockJobRepository) {
				jobs.On("GetForClient", mock.Anything, uint(1), uint(10)).Return(job, nil)
				svc.On("PayJob", mock.Anything, uint(10), "100").Return(payment.OutcomeSuccess, nil)
			},
			wantStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPaymentService)
			jobs := new(MockJobRepository)
			if tt.setupMock != nil {
				tt.setupMock(svc, jobs)
			}

			req := httptest.NewRequest("POST", tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := newPaymentApp(svc, jobs, tt.caller).Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp.Body).Code)
			}
			svc.AssertExpectations(t)
			jobs.AssertExpectations(t)
		})
	}
}

func TestPaymentHandler_Deposit(t *testing.T) {
	newBalance := decimal.RequireFromString("1500")

	tests := []struct {
		name        string
		path        string
		body        string
		setupMock   func(*MockPaymentService)
		wantStatus  int
		wantCode    string
		wantBalance string
	}{
		{
			name:       "other profile",
			path:       "/balances/deposit/2",
			body:       `{"paymentAmount": 100}`,
			wantStatus: fiber.StatusConflict,
			wantCode:   apperrors.ErrClientMismatch.Code,
		},
		{
			name:       "non-numeric user id",
			path:       "/balances/deposit/me",
			body:       `{"paymentAmount": 100}`,
			wantStatus: fiber.StatusConflict,
			wantCode:   apperrors.ErrClientMismatch.Code,
		},
		{
			name:       "invalid amount",
			path:       "/balances/deposit/1",
			body:       `{"paymentAmount": "lots"}`,
			wantStatus: fiber.StatusBadRequest,
			wantCode:   apperrors.ErrInvalidAmount.Code,
		},
		{
			name:       "malformed body",
			path:       "/balances/deposit/1",
			body:       `{"paymentAmount":`,
			wantStatus: fiber.StatusBadRequest,
			wantCode:   apperrors.ErrInvalidAmount.Code,
		},
		{
			name: "over the cap",
			path: "/balances/deposit/1",
			body: `{"paymentAmount": 600}`,
			setupMock: func(svc *MockPaymentService) {
				balance := decimal.RequireFromString("1000")
				svc.On("Deposit", mock.Anything, uint(1), "600").
					Return(&payment.DepositResult{Outcome: payment.OutcomeDepositExceedsMaxAmount, Balance: &balance}, nil)
			},
			wantStatus: fiber.StatusUnprocessableEntity,
			wantCode:   string(payment.OutcomeDepositExceedsMaxAmount),
		},
		{
			name: "service failure",
			path: "/balances/deposit/1",
			body: `{"paymentAmount": 100}`,
			setupMock: func(svc *MockPaymentService) {
				svc.On("Deposit", mock.Anything, uint(1), "100").Return(nil, errors.New("boom"))
			},
			wantStatus: fiber.StatusInternalServerError,
			wantCode:   apperrors.ErrInternal.Code,
		},
		{
			name: "deposited",
			path: "/balances/deposit/1",
			body: `{"paymentAmount": 500}`,
			setupMock: func(svc *MockPaymentService) {
				svc.On("Deposit", mock.Anything, uint(1), "500").
					Return(&payment.DepositResult{Outcome: payment.OutcomeSuccess, Balance: &newBalance}, nil)
			},
			wantStatus:  fiber.StatusOK,
			wantBalance: "1500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockPaymentService)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			req := httptest.NewRequest("POST", tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := newPaymentApp(svc, new(MockJobRepository), client("1000")).Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp.Body).Code)
			}
			if tt.wantBalance != "" {
				var out depositResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
				assert.True(t, decimal.RequireFromString(tt.wantBalance).Equal(out.NewBalance))
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestPaymentHandler_ListUnpaid(t *testing.T) {
	jobs := new(MockJobRepository)
	jobs.On("ListUnpaid", mock.Anything, uint(1)).Return([]models.Job{
		{ID: 3, Price: decimal.RequireFromString("200")},
		{ID: 4, Price: decimal.RequireFromString("300")},
	}, nil)

	resp, err := newPaymentApp(new(MockPaymentService), jobs, client("0")).Test(httptest.NewRequest("GET", "/jobs/unpaid", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []models.Job
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 2)
	assert.Equal(t, uint(3), out[0].ID)
	jobs.AssertExpectations(t)
}
