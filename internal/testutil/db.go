// Package testutil provides in-memory databases and fixtures for tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"jobpay/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory sqlite database with the payment schema.
// A single connection keeps the database alive and serializes transactions,
// standing in for row locks that sqlite does not have.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Profile{}, &models.Contract{}, &models.Job{}))
	return db
}

func CreateProfile(t *testing.T, db *gorm.DB, kind models.ProfileType, balance string) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		FirstName:  "Unit",
		LastName:   "Test",
		Profession: "Tester",
		Balance:    decimal.RequireFromString(balance),
		Type:       kind,
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func CreateContract(t *testing.T, db *gorm.DB, clientID, contractorID uint, status models.ContractStatus) *models.Contract {
	t.Helper()
	contract := &models.Contract{
		Terms:        "for unit tests",
		Status:       status,
		ClientID:     clientID,
		ContractorID: contractorID,
	}
	require.NoError(t, db.Create(contract).Error)
	return contract
}

func CreateJob(t *testing.T, db *gorm.DB, contractID uint, price string, paid bool) *models.Job {
	t.Helper()
	job := &models.Job{
		Description: "unit test job",
		Price:       decimal.RequireFromString(price),
		ContractID:  contractID,
	}
	if paid {
		now := time.Now()
		job.Paid = true
		job.PaymentDate = &now
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

// Balance reads a profile balance straight from the database.
func Balance(t *testing.T, db *gorm.DB, profileID uint) decimal.Decimal {
	t.Helper()
	var profile models.Profile
	require.NoError(t, db.First(&profile, profileID).Error)
	return profile.Balance
}

// RequireDecimal asserts that got equals the decimal written in want.
func RequireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.RequireFromString(want).Equal(got), "expected %s, got %s", want, got)
}
