package repository

import (
	"context"
	"sync"

	"calculators/internal/models"

	"github.com/google/uuid"
)

// ObservationMemoryLog is a slice-backed ObservationLog.
type ObservationMemoryLog struct {
	mu      sync.RWMutex
	entries []models.CalorieObservation
}

func NewObservationMemoryLog() *ObservationMemoryLog {
	return &ObservationMemoryLog{}
}

func (l *ObservationMemoryLog) Append(_ context.Context, obs models.CalorieObservation) (models.CalorieObservation, error) {
	if obs.ID == "" {
		obs.ID = uuid.New().String()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, obs)
	return obs, nil
}

func (l *ObservationMemoryLog) List(_ context.Context) ([]models.CalorieObservation, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.CalorieObservation(nil), l.entries...), nil
}

func (l *ObservationMemoryLog) FindByRequest(_ context.Context, req models.CalorieRequest, tolerance float64) ([]models.CalorieObservation, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return matching(l.entries, req, tolerance), nil
}

func (l *ObservationMemoryLog) Count(_ context.Context) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries), nil
}

func (l *ObservationMemoryLog) Clear(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	return nil
}
