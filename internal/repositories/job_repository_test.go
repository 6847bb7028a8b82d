package repositories

import (
	"context"
	"testing"

	"jobpay/internal/models"
	"jobpay/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewJobRepository(db)
	ctx := context.Background()

	client := testutil.CreateProfile(t, db, models.ProfileTypeClient, "0")
	contractor := testutil.CreateProfile(t, db, models.ProfileTypeContractor, "0")
	stranger := testutil.CreateProfile(t, db, models.ProfileTypeContractor, "0")

	active := testutil.CreateContract(t, db, client.ID, contractor.ID, models.ContractStatusInProgress)
	terminated := testutil.CreateContract(t, db, client.ID, contractor.ID, models.ContractStatusTerminated)

	unpaid := testutil.CreateJob(t, db, active.ID, "100", false)
	testutil.CreateJob(t, db, active.ID, "200", true)
	testutil.CreateJob(t, db, terminated.ID, "300", false)

	t.Run("client can load own job", func(t *testing.T) {
		job, err := repo.GetForClient(ctx, client.ID, unpaid.ID)
		require.NoError(t, err)
		assert.Equal(t, unpaid.ID, job.ID)
		require.NotNil(t, job.Contract)
		assert.Equal(t, active.ID, job.Contract.ID)
		require.NotNil(t, job.Contract.Client)
		assert.Equal(t, client.ID, job.Contract.Client.ID)
		assert.True(t, job.Contract.Client.IsClient())
	})

	t.Run("contractor is not the payer", func(t *testing.T) {
		_, err := repo.GetForClient(ctx, contractor.ID, unpaid.ID)
		assert.ErrorIs(t, err, ErrJobNotFound)
	})

	t.Run("unpaid jobs for both sides of the contract", func(t *testing.T) {
		for _, id := range []uint{client.ID, contractor.ID} {
			jobs, err := repo.ListUnpaid(ctx, id)
			require.NoError(t, err)
			require.Len(t, jobs, 1)
			assert.Equal(t, unpaid.ID, jobs[0].ID)
		}

		jobs, err := repo.ListUnpaid(ctx, stranger.ID)
		require.NoError(t, err)
		assert.Empty(t, jobs)
	})
}

func TestProfileRepository_GetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewProfileRepository(db, nil, nil)
	ctx := context.Background()

	client := testutil.CreateProfile(t, db, models.ProfileTypeClient, "12.50")

	profile, err := repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProfileTypeClient, profile.Type)
	testutil.RequireDecimal(t, "12.5", profile.Balance)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	assert.NoError(t, repo.InvalidateCache(ctx, client.ID))
}
