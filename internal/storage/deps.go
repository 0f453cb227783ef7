package storage

import (
	"context"

	"ecovision/internal/schema"
	"ecovision/internal/storage/lrucache"
)

type climateService interface {
	GetReadings(ctx context.Context, indicators []schema.Reading) ([]schema.Reading, error)
}

type lruLocalCache[K comparable, V any] interface {
	BatchGet(keys []K) ([]V, []K)
	Update(rows []lrucache.CacheItem[K, V])
	GetValues() []V
}

type redisCache[V any] interface {
	BatchGet(ctx context.Context, keys []string) ([]V, []string, error)
	Update(keys []string, values []V)
}
