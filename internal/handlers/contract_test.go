package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	apperrors "jobpay/internal/errors"
	"jobpay/internal/middleware"
	"jobpay/internal/models"
	"jobpay/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) GetForProfile(ctx context.Context, profileID, contractID uint) (*models.Contract, error) {
	args := m.Called(ctx, profileID, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *MockContractRepository) ListActive(ctx context.Context, profileID uint) ([]models.Contract, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Contract), args.Error(1)
}

func newContractApp(contracts repositories.ContractRepository, caller *models.Profile) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if caller != nil {
			c.Locals(middleware.ProfileLocal, caller)
		}
		return c.Next()
	})
	h := NewContractHandler(contracts, nil)
	app.Get("/contracts", h.ListContracts)
	app.Get("/contracts/:id", h.GetContract)
	return app
}

func TestContractHandler_GetContract(t *testing.T) {
	tests := []struct {
		name       string
		caller     *models.Profile
		path       string
		setupMock  func(*MockContractRepository)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "no caller",
			path:       "/contracts/5",
			wantStatus: fiber.StatusUnauthorized,
			wantCode:   apperrors.ErrProfileRequired.Code,
		},
		{
			name:       "invalid id",
			caller:     client("0"),
			path:       "/contracts/abc",
			wantStatus: fiber.StatusBadRequest,
			wantCode:   apperrors.ErrInvalidContractID.Code,
		},
		{
			name:   "not a party",
			caller: client("0"),
			path:   "/contracts/5",
			setupMock: func(m *MockContractRepository) {
				m.On("GetForProfile", mock.Anything, uint(1), uint(5)).Return(nil, repositories.ErrContractNotFound)
			},
			wantStatus: fiber.StatusNotFound,
			wantCode:   apperrors.ErrContractNotFound.Code,
		},
		{
			name:   "lookup failure",
			caller: client("0"),
			path:   "/contracts/5",
			setupMock: func(m *MockContractRepository) {
				m.On("GetForProfile", mock.Anything, uint(1), uint(5)).Return(nil, errors.New("db down"))
			},
			wantStatus: fiber.StatusInternalServerError,
			wantCode:   apperrors.ErrInternal.Code,
		},
		{
			name:   "found",
			caller: client("0"),
			path:   "/contracts/5",
			setupMock: func(m *MockContractRepository) {
				m.On("GetForProfile", mock.Anything, uint(1), uint(5)).Return(&models.Contract{
					ID:           5,
					Status:       models.ContractStatusInProgress,
					ClientID:     1,
					Client:       client("0"),
					ContractorID: 2,
					Contractor:   &models.Profile{ID: 2, Type: models.ProfileTypeContractor},
				}, nil)
			},
			wantStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contracts := new(MockContractRepository)
			if tt.setupMock != nil {
				tt.setupMock(contracts)
			}

			resp, err := newContractApp(contracts, tt.caller).Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp.Body).Code)
			} else {
				var out models.Contract
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
				assert.Equal(t, uint(5), out.ID)
				require.NotNil(t, out.Contractor)
				assert.Equal(t, models.ProfileTypeContractor, out.Contractor.Type)
			}
			contracts.AssertExpectations(t)
		})
	}
}

func TestContractHandler_ListContracts(t *testing.T) {
	contracts := new(MockContractRepository)
	contracts.On("ListActive", mock.Anything, uint(1)).Return([]models.Contract{
		{ID: 5, Status: models.ContractStatusInProgress, Jobs: []models.Job{{ID: 10}}},
	}, nil)

	resp, err := newContractApp(contracts, client("0")).Test(httptest.NewRequest("GET", "/contracts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []models.Contract
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	assert.Len(t, out[0].Jobs, 1)
	contracts.AssertExpectations(t)

	failing := new(MockContractRepository)
	failing.On("ListActive", mock.Anything, uint(1)).Return(nil, errors.New("db down"))
	resp, err = newContractApp(failing, client("0")).Test(httptest.NewRequest("GET", "/contracts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
