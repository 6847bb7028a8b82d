// Package middleware identifies the caller of payment endpoints.
package middleware

import (
	"errors"
	"strconv"
	"strings"

	apperrors "jobpay/internal/errors"
	"jobpay/internal/logger"
	"jobpay/internal/models"
	"jobpay/internal/repositories"
	"jobpay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	// ProfileHeader carries the caller's profile id when no bearer token is used.
	ProfileHeader = "profile_id"
	// ProfileLocal is the fiber locals key holding the caller's *models.Profile.
	ProfileLocal = "profile"
)

var errNoIdentity = errors.New("no caller identity")

// ProfileMiddleware resolves the calling profile and stores it in the request
// locals. It only identifies the caller; it does not authorize anything.
type ProfileMiddleware struct {
	profiles  repositories.ProfileRepository
	jwtSecret string
	log       *logger.Logger
}

// NewProfileMiddleware creates the middleware. With an empty jwtSecret bearer
// tokens are ignored and only the profile_id header is read.
func NewProfileMiddleware(profiles repositories.ProfileRepository, jwtSecret string, log *logger.Logger) *ProfileMiddleware {
	if log == nil {
		log = logger.Nop()
	}
	return &ProfileMiddleware{
		profiles:  profiles,
		jwtSecret: jwtSecret,
		log:       log.With("middleware", "profile"),
	}
}

func (m *ProfileMiddleware) Handler(c *fiber.Ctx) error {
	id, err := m.callerID(c)
	if err != nil {
		m.log.Debug("caller not identified", "path", c.Path(), "error", err)
		return utils.Error(c, fiber.StatusUnauthorized, apperrors.ErrProfileRequired)
	}

	profile, err := m.profiles.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return utils.Error(c, fiber.StatusUnauthorized, apperrors.ErrProfileRequired)
		}
		m.log.Error("failed to load caller profile", "profile_id", id, "error", err)
		return utils.Error(c, fiber.StatusInternalServerError, apperrors.ErrInternal)
	}

	c.Locals(ProfileLocal, profile)
	return c.Next()
}

func (m *ProfileMiddleware) callerID(c *fiber.Ctx) (uint, error) {
	if auth := c.Get(fiber.HeaderAuthorization); auth != "" && m.jwtSecret != "" {
		if !strings.HasPrefix(auth, "Bearer ") {
			return 0, errors.New("invalid authorization format")
		}
		claims, err := utils.ParseProfileToken(strings.TrimPrefix(auth, "Bearer "), m.jwtSecret)
		if err != nil {
			return 0, err
		}
		return claims.ProfileID, nil
	}

	raw := c.Get(ProfileHeader)
	if raw == "" {
		return 0, errNoIdentity
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errNoIdentity
	}
	return uint(id), nil
}

// CallerProfile returns the profile stored by ProfileMiddleware.
func CallerProfile(c *fiber.Ctx) (*models.Profile, bool) {
	profile, ok := c.Locals(ProfileLocal).(*models.Profile)
	return profile, ok && profile != nil
}
