package repositories

import (
	"context"
	"errors"
	"fmt"

	"jobpay/internal/logger"
	"jobpay/internal/models"

	"gorm.io/gorm"
)

type profileRepository struct {
	db    *gorm.DB
	cache ProfileCache
	log   *logger.Logger
}

// NewProfileRepository creates a profile repository. cache may be nil.
func NewProfileRepository(db *gorm.DB, cache ProfileCache, log *logger.Logger) ProfileRepository {
	if log == nil {
		log = logger.Nop()
	}
	return &profileRepository{
		db:    db,
		cache: cache,
		log:   log.With("repository", "profile"),
	}
}

func (r *profileRepository) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	if r.cache != nil {
		profile, found, err := r.cache.GetProfile(ctx, id)
		if err != nil {
			r.log.Warn("profile cache read failed", "profile_id", id, "error", err)
		} else if found {
			return profile, nil
		}
	}

	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.CacheProfile(ctx, &profile); err != nil {
			r.log.Warn("failed to cache profile", "profile_id", id, "error", err)
		}
	}
	return &profile, nil
}

func (r *profileRepository) InvalidateCache(ctx context.Context, ids ...uint) error {
	if r.cache == nil || len(ids) == 0 {
		return nil
	}
	if err := r.cache.InvalidateProfiles(ctx, ids...); err != nil {
		return fmt.Errorf("failed to invalidate profile cache: %w", err)
	}
	return nil
}
