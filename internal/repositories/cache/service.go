package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"jobpay/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService stores JSON snapshots in redis. Snapshots are only used to
// identify callers; balances that drive payments are always read from the
// database.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

func ProfileKey(id uint) string {
	return GenerateKey("profile", "id", id)
}

// Profile caching
func (s *CacheService) CacheProfile(ctx context.Context, profile *models.Profile) error {
	if profile == nil {
		return fmt.Errorf("cannot cache nil profile")
	}
	return s.Set(ctx, ProfileKey(profile.ID), profile)
}

func (s *CacheService) GetProfile(ctx context.Context, id uint) (*models.Profile, bool, error) {
	var profile models.Profile
	found, err := s.Get(ctx, ProfileKey(id), &profile)
	if err != nil || !found {
		return nil, false, err
	}
	return &profile, true, nil
}

// InvalidateProfiles drops the snapshots of every given profile.
func (s *CacheService) InvalidateProfiles(ctx context.Context, ids ...uint) error {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, ProfileKey(id))
	}
	return s.Delete(ctx, keys...)
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
