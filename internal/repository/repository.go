// Package repository holds the profile, quote and calorie-observation stores.
// Every store is an explicit value handed to the services that need it.
package repository

import (
	"context"

	"calculators/internal/models"
)

// Store names used in metrics and errors.
const (
	StoreProfiles     = "profiles"
	StoreQuotes       = "quotes"
	StoreObservations = "observations"
)

// ProfileStore keeps broker profiles keyed by user ID.
type ProfileStore interface {
	// FindByUserID returns a PROFILE_NOT_FOUND error when no profile is stored.
	FindByUserID(ctx context.Context, userID string) (*models.BrokerProfile, error)
	// Save reports false when a profile with the same user ID already exists.
	Save(ctx context.Context, profile *models.BrokerProfile) (bool, error)
	// Update reports false when no profile with the user ID exists.
	Update(ctx context.Context, profile *models.BrokerProfile) (bool, error)
	Delete(ctx context.Context, userID string) (bool, error)
	Exists(ctx context.Context, userID string) (bool, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

// QuoteStore keeps saved quotes keyed by identification number.
type QuoteStore interface {
	// Insert returns a DUPLICATE_QUOTE error when the identification number is taken.
	Insert(ctx context.Context, quote *models.Quote) error
	// Get returns a QUOTE_NOT_FOUND error for unknown identification numbers.
	Get(ctx context.Context, identificationNumber int) (*models.Quote, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

// ObservationLog is the append-only calorie calculation history.
type ObservationLog interface {
	// Append stores obs, assigning an ID when it has none, and returns the stored entry.
	Append(ctx context.Context, obs models.CalorieObservation) (models.CalorieObservation, error)
	// List returns every entry, oldest first.
	List(ctx context.Context) ([]models.CalorieObservation, error)
	// FindByRequest returns the entries whose request matches req within tolerance.
	FindByRequest(ctx context.Context, req models.CalorieRequest, tolerance float64) ([]models.CalorieObservation, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

func cloneProfile(p *models.BrokerProfile) *models.BrokerProfile {
	c := *p
	c.Address = models.Address{
		StreetAddress: cloneString(p.Address.StreetAddress),
		City:          cloneString(p.Address.City),
		County:        cloneString(p.Address.County),
		PostCode:      cloneString(p.Address.PostCode),
	}
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func matching(entries []models.CalorieObservation, req models.CalorieRequest, tolerance float64) []models.CalorieObservation {
	var out []models.CalorieObservation
	for _, e := range entries {
		if e.Request.Matches(req, tolerance) {
			out = append(out, e)
		}
	}
	return out
}
