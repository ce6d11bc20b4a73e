package repository

import (
	"context"
	"sync"

	apperrors "calculators/internal/common/errors"
	"calculators/internal/models"
)

// QuoteMemoryStore is a map-backed QuoteStore. Quotes never expire.
type QuoteMemoryStore struct {
	mu     sync.RWMutex
	quotes map[int]models.Quote
}

func NewQuoteMemoryStore() *QuoteMemoryStore {
	return &QuoteMemoryStore{quotes: make(map[int]models.Quote)}
}

func (s *QuoteMemoryStore) Insert(_ context.Context, quote *models.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quotes[quote.IdentificationNumber]; ok {
		return apperrors.NewDuplicateQuoteError(quote.IdentificationNumber)
	}
	s.quotes[quote.IdentificationNumber] = *quote
	return nil
}

func (s *QuoteMemoryStore) Get(_ context.Context, identificationNumber int) (*models.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quotes[identificationNumber]
	if !ok {
		return nil, apperrors.NewQuoteNotFoundError(identificationNumber)
	}
	return &q, nil
}

func (s *QuoteMemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quotes), nil
}

func (s *QuoteMemoryStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes = make(map[int]models.Quote)
	return nil
}
