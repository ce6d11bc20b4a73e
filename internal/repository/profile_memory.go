package repository

import (
	"context"
	"sync"

	apperrors "calculators/internal/common/errors"
	"calculators/internal/models"
)

// ProfileMemoryStore is a map-backed ProfileStore.
type ProfileMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*models.BrokerProfile
}

func NewProfileMemoryStore() *ProfileMemoryStore {
	return &ProfileMemoryStore{profiles: make(map[string]*models.BrokerProfile)}
}

func (s *ProfileMemoryStore) FindByUserID(_ context.Context, userID string) (*models.BrokerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, apperrors.NewProfileNotFoundError(userID)
	}
	return cloneProfile(p), nil
}

func (s *ProfileMemoryStore) Save(_ context.Context, profile *models.BrokerProfile) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[profile.UserID]; ok {
		return false, nil
	}
	s.profiles[profile.UserID] = cloneProfile(profile)
	return true, nil
}

func (s *ProfileMemoryStore) Update(_ context.Context, profile *models.BrokerProfile) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[profile.UserID]; !ok {
		return false, nil
	}
	s.profiles[profile.UserID] = cloneProfile(profile)
	return true, nil
}

func (s *ProfileMemoryStore) Delete(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[userID]; !ok {
		return false, nil
	}
	delete(s.profiles, userID)
	return true, nil
}

func (s *ProfileMemoryStore) Exists(_ context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.profiles[userID]
	return ok, nil
}

func (s *ProfileMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles), nil
}

func (s *ProfileMemoryStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = make(map[string]*models.BrokerProfile)
	return nil
}
