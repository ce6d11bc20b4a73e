package manageprofile

import (
	"context"
	"strings"

	apperrors "calculators/internal/common/errors"
	"calculators/internal/common/logger"
	validateprofile "calculators/internal/engines/insurance/validate-profile"
	"calculators/internal/models"
	"calculators/internal/repository"
)

const (
	TaskType = "manage-profile"
)

// Service creates, updates, views and deletes broker profiles. Profiles are
// validated before they reach the store.
type Service struct {
	logger    logger.Logger
	store     repository.ProfileStore
	validator *validateprofile.Service
}

func NewService(deps ServiceDependencies) *Service {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	store := deps.Store
	if store == nil {
		store = repository.NewProfileMemoryStore()
	}
	validator := deps.Validator
	if validator == nil {
		validator = validateprofile.NewService(validateprofile.ServiceDependencies{Logger: log}, nil)
	}
	return &Service{
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		store:     store,
		validator: validator,
	}
}

// ViewProfile returns the stored profile or a PROFILE_NOT_FOUND error.
func (s *Service) ViewProfile(ctx context.Context, userID string) (*models.BrokerProfile, error) {
	if err := requireUserID(userID); err != nil {
		return nil, err
	}
	return s.store.FindByUserID(ctx, strings.TrimSpace(userID))
}

// CreateProfile reports false when a profile for the user already exists.
func (s *Service) CreateProfile(ctx context.Context, p *models.BrokerProfile) (bool, error) {
	if p == nil {
		return false, apperrors.NewInvalidArgumentError("Profile cannot be nil")
	}
	if err := s.validator.Validate(p); err != nil {
		return false, err
	}
	p = withTrimmedUserID(p)

	created, err := s.store.Save(ctx, p)
	if err != nil {
		return false, err
	}
	s.logger.Info("Profile create", map[string]interface{}{
		"userId":  p.UserID,
		"name":    logger.RedactName(p.FirstName),
		"created": created,
	})
	return created, nil
}

// UpdateProfile reports false when no profile for the user exists.
func (s *Service) UpdateProfile(ctx context.Context, p *models.BrokerProfile) (bool, error) {
	if p == nil {
		return false, apperrors.NewInvalidArgumentError("Profile cannot be nil")
	}
	if err := s.validator.Validate(p); err != nil {
		return false, err
	}
	p = withTrimmedUserID(p)

	updated, err := s.store.Update(ctx, p)
	if err != nil {
		return false, err
	}
	s.logger.Info("Profile update", map[string]interface{}{
		"userId":  p.UserID,
		"updated": updated,
	})
	return updated, nil
}

// DeleteProfile reports false when no profile for the user exists.
func (s *Service) DeleteProfile(ctx context.Context, userID string) (bool, error) {
	if err := requireUserID(userID); err != nil {
		return false, err
	}
	return s.store.Delete(ctx, strings.TrimSpace(userID))
}

func (s *Service) ProfileExists(ctx context.Context, userID string) (bool, error) {
	return s.store.Exists(ctx, strings.TrimSpace(userID))
}

func (s *Service) ProfileCount(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

func (s *Service) ClearAllProfiles(ctx context.Context) error {
	return s.store.DeleteAll(ctx)
}

func requireUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return apperrors.NewInvalidArgumentError("User ID cannot be empty")
	}
	return nil
}

// withTrimmedUserID returns a copy of p keyed by its trimmed user ID.
func withTrimmedUserID(p *models.BrokerProfile) *models.BrokerProfile {
	trimmed := *p
	trimmed.UserID = strings.TrimSpace(p.UserID)
	return &trimmed
}
