package services

import (
	"context"
	"strings"

	"github.com/vytor/intuition/internal/errors"
	"github.com/vytor/intuition/internal/logger"
	"github.com/vytor/intuition/internal/models"
	"github.com/vytor/intuition/internal/repository"
)

const (
	maxUsernameLength = 64
	maxAge            = 130
)

// ProfileService handles profile-related business logic
type ProfileService interface {
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	CreateProfile(ctx context.Context, username string) (*models.Profile, error)
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (*models.Profile, error)
	DeleteProfile(ctx context.Context, id int64) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing profiles")

	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		log.Error("failed to list profiles: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return profiles, nil
}

func (s *profileService) CreateProfile(ctx context.Context, username string) (*models.Profile, error) {
	log := logger.FromContext(ctx)
	username = strings.TrimSpace(username)
	log.Debug("creating profile: username=%s", username)

	if username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}
	if len(username) > maxUsernameLength {
		return nil, errors.NewValidationError("username", "is too long")
	}

	profile, err := s.profileRepo.Upsert(ctx, username)
	if err != nil {
		log.Error("failed to create profile: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting profile: id=%d", id)

	profile, err := s.profileRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get profile: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", id)
	}

	return profile, nil
}

// UpdateProfile stores the user info fields present in update and leaves the
// others untouched.
func (s *profileService) UpdateProfile(ctx context.Context, id int64, update models.ProfileUpdate) (*models.Profile, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating profile: id=%d", id)

	if update.DisplayName != nil {
		name := strings.TrimSpace(*update.DisplayName)
		if name == "" {
			return nil, errors.NewValidationError("display_name", "cannot be blank")
		}
		update.DisplayName = &name
	}
	if update.Age != nil && (*update.Age < 0 || *update.Age > maxAge) {
		return nil, errors.NewValidationError("age", "must be between 0 and 130")
	}

	profile, err := s.profileRepo.Update(ctx, id, update)
	if err != nil {
		log.Error("failed to update profile: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", id)
	}

	return profile, nil
}

func (s *profileService) DeleteProfile(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting profile: id=%d", id)

	if err := s.profileRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete profile: %v", err)
		return errors.NewInternalError(err)
	}

	return nil
}
