package repository

import (
	"context"
	"encoding/json"

	"calculators/internal/common/database"
	apperrors "calculators/internal/common/errors"
	"calculators/internal/common/metrics"
	"calculators/internal/models"

	"github.com/google/uuid"
)

// ObservationRedisLog keeps the history as a Redis list of JSON entries.
type ObservationRedisLog struct {
	rdb *database.RedisClient
	key string
}

func NewObservationRedisLog(rdb *database.RedisClient) *ObservationRedisLog {
	return &ObservationRedisLog{rdb: rdb, key: rdb.Key("observations")}
}

func (l *ObservationRedisLog) Append(ctx context.Context, obs models.CalorieObservation) (models.CalorieObservation, error) {
	if obs.ID == "" {
		obs.ID = uuid.New().String()
	}

	data, err := json.Marshal(obs)
	if err == nil {
		err = l.rdb.Client.RPush(ctx, l.key, data).Err()
	}
	metrics.ObserveStore(StoreObservations, "append", err)
	if err != nil {
		return models.CalorieObservation{}, apperrors.NewStoreUnavailableError(StoreObservations, "append", err)
	}
	return obs, nil
}

func (l *ObservationRedisLog) List(ctx context.Context) ([]models.CalorieObservation, error) {
	vals, err := l.rdb.Client.LRange(ctx, l.key, 0, -1).Result()
	metrics.ObserveStore(StoreObservations, "list", err)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError(StoreObservations, "list", err)
	}

	entries := make([]models.CalorieObservation, 0, len(vals))
	for _, v := range vals {
		var obs models.CalorieObservation
		if err := json.Unmarshal([]byte(v), &obs); err != nil {
			return nil, apperrors.NewStoreUnavailableError(StoreObservations, "list", err)
		}
		entries = append(entries, obs)
	}
	return entries, nil
}

func (l *ObservationRedisLog) FindByRequest(ctx context.Context, req models.CalorieRequest, tolerance float64) ([]models.CalorieObservation, error) {
	entries, err := l.List(ctx)
	if err != nil {
		return nil, err
	}
	return matching(entries, req, tolerance), nil
}

func (l *ObservationRedisLog) Count(ctx context.Context) (int, error) {
	n, err := l.rdb.Client.LLen(ctx, l.key).Result()
	metrics.ObserveStore(StoreObservations, "count", err)
	if err != nil {
		return 0, apperrors.NewStoreUnavailableError(StoreObservations, "count", err)
	}
	return int(n), nil
}

func (l *ObservationRedisLog) Clear(ctx context.Context) error {
	err := l.rdb.Client.Del(ctx, l.key).Err()
	metrics.ObserveStore(StoreObservations, "clear", err)
	if err != nil {
		return apperrors.NewStoreUnavailableError(StoreObservations, "clear", err)
	}
	return nil
}
