package repositories

import (
	"context"
	"errors"

	"jobpay/internal/models"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrJobNotFound     = errors.New("job not found")
)

// ProfileCache is the snapshot cache used to identify callers.
type ProfileCache interface {
	CacheProfile(ctx context.Context, profile *models.Profile) error
	GetProfile(ctx context.Context, id uint) (*models.Profile, bool, error)
	InvalidateProfiles(ctx context.Context, ids ...uint) error
}

// ProfileRepository resolves caller profiles.
type ProfileRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Profile, error)
	InvalidateCache(ctx context.Context, ids ...uint) error
}

// JobRepository serves the job lookups of the HTTP layer.
type JobRepository interface {
	// GetForClient returns the job only when its contract belongs to clientID.
	// Contract.Client is loaded from the database, never from the cache.
	GetForClient(ctx context.Context, clientID, jobID uint) (*models.Job, error)
	// ListUnpaid returns unpaid jobs on non-terminated contracts where the
	// profile is either the client or the contractor.
	ListUnpaid(ctx context.Context, profileID uint) ([]models.Job, error)
}
