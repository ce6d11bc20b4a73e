package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"calculators/internal/common/database"
	apperrors "calculators/internal/common/errors"
	"calculators/internal/common/metrics"
	"calculators/internal/models"

	"github.com/redis/go-redis/v9"
)

// QuoteRedisStore keeps each quote as a JSON value under <prefix>:quote:<id>.
// A positive ttl expires quotes; zero keeps them until DeleteAll.
type QuoteRedisStore struct {
	rdb *database.RedisClient
	ttl time.Duration
}

func NewQuoteRedisStore(rdb *database.RedisClient, ttl time.Duration) *QuoteRedisStore {
	return &QuoteRedisStore{rdb: rdb, ttl: ttl}
}

func (s *QuoteRedisStore) key(id int) string {
	return s.rdb.Key("quote", strconv.Itoa(id))
}

func (s *QuoteRedisStore) Insert(ctx context.Context, quote *models.Quote) error {
	data, err := json.Marshal(quote)
	if err != nil {
		return apperrors.NewStoreUnavailableError(StoreQuotes, "insert", err)
	}

	ok, err := s.rdb.Client.SetNX(ctx, s.key(quote.IdentificationNumber), data, s.ttl).Result()
	metrics.ObserveStore(StoreQuotes, "insert", err)
	if err != nil {
		return apperrors.NewStoreUnavailableError(StoreQuotes, "insert", err)
	}
	if !ok {
		return apperrors.NewDuplicateQuoteError(quote.IdentificationNumber)
	}
	return nil
}

func (s *QuoteRedisStore) Get(ctx context.Context, identificationNumber int) (*models.Quote, error) {
	val, err := s.rdb.Client.Get(ctx, s.key(identificationNumber)).Result()
	if errors.Is(err, redis.Nil) {
		metrics.ObserveStore(StoreQuotes, "get", nil)
		return nil, apperrors.NewQuoteNotFoundError(identificationNumber)
	}
	metrics.ObserveStore(StoreQuotes, "get", err)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(StoreQuotes, "get", err)
	}

	var q models.Quote
	if err := json.Unmarshal([]byte(val), &q); err != nil {
		return nil, apperrors.NewStoreUnavailableError(StoreQuotes, "get", err)
	}
	return &q, nil
}

func (s *QuoteRedisStore) Count(ctx context.Context) (int, error) {
	keys, err := s.keys(ctx)
	metrics.ObserveStore(StoreQuotes, "count", err)
	if err != nil {
		return 0, apperrors.NewStoreUnavailableError(StoreQuotes, "count", err)
	}
	return len(keys), nil
}

func (s *QuoteRedisStore) DeleteAll(ctx context.Context) error {
	keys, err := s.keys(ctx)
	if err == nil && len(keys) > 0 {
		err = s.rdb.Client.Del(ctx, keys...).Err()
	}
	metrics.ObserveStore(StoreQuotes, "delete_all", err)
	if err != nil {
		return apperrors.NewStoreUnavailableError(StoreQuotes, "delete_all", err)
	}
	return nil
}

func (s *QuoteRedisStore) keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.rdb.Client.Scan(ctx, 0, s.rdb.Key("quote", "*"), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}
