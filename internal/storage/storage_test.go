package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ecovision/internal/schema"
	"ecovision/internal/storage/lrucache"

	"github.com/stretchr/testify/require"
)

type lruCacheMock struct {
	batchGetFunc func(keys []string) ([]schema.Reading, []string)
	values       []schema.Reading

	mu      sync.Mutex
	updated []lrucache.CacheItem[string, schema.Reading]
}

func (m *lruCacheMock) BatchGet(keys []string) ([]schema.Reading, []string) {
	return m.batchGetFunc(keys)
}

func (m *lruCacheMock) GetValues() []schema.Reading {
	return m.values
}

func (m *lruCacheMock) Update(rows []lrucache.CacheItem[string, schema.Reading]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updated = append(m.updated, rows...)
}

func (m *lruCacheMock) updatedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.updated))
	for _, u := range m.updated {
		keys = append(keys, u.Key)
	}
	return keys
}

type redisCacheMock struct {
	batchGetFunc func(ctx context.Context, keys []string) ([]schema.Reading, []string, error)

	mu      sync.Mutex
	updated []string
}

func (m *redisCacheMock) BatchGet(ctx context.Context, keys []string) ([]schema.Reading, []string, error) {
	return m.batchGetFunc(ctx, keys)
}

func (m *redisCacheMock) Update(keys []string, values []schema.Reading) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updated = append(m.updated, keys...)
}

func (m *redisCacheMock) updatedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.updated...)
}

type climateServiceMock struct {
	getReadingsFunc func(ctx context.Context, indicators []schema.Reading) ([]schema.Reading, error)
}

func (m *climateServiceMock) GetReadings(ctx context.Context, indicators []schema.Reading) ([]schema.Reading, error) {
	return m.getReadingsFunc(ctx, indicators)
}

var (
	co2 = schema.Reading{
		IndicatorId: "co2",
		Priority:    1,
		Measurement: schema.Measurement{Value: 421, Unit: "ppm"},
	}
	temperature = schema.Reading{
		IndicatorId: "temperature",
		Priority:    2,
		Measurement: schema.Measurement{Value: 1.2, Unit: "°C"},
	}
	seaLevel = schema.Reading{
		IndicatorId: "sea-level",
		Priority:    3,
		Measurement: schema.Measurement{Value: 101.4, Unit: "mm"},
	}
)

func TestStorage_Get(t *testing.T) {
	tests := []struct {
		name           string
		ctxFunc        func() (context.Context, context.CancelFunc)
		input          map[string]schema.Reading
		lruBatchGet    func(keys []string) ([]schema.Reading, []string)
		redisBatchGet  func(ctx context.Context, keys []string) ([]schema.Reading, []string, error)
		climateGet     func(ctx context.Context, indicators []schema.Reading) ([]schema.Reading, error)
		expectedResult []schema.Reading
		expectedErr    string
	}{
		{
			name: "All found in LRU",
			ctxFunc: func() (context.Context, context.CancelFunc) {
				return context.WithCancel(context.Background())
			},
			input: map[string]schema.Reading{"co2": co2, "temperature": temperature},
			lruBatchGet: func(keys []string) ([]schema.Reading, []string) {
				return []schema.Reading{co2, temperature}, []string{}
			},
			redisBatchGet: func(ctx context.Context, keys []string) ([]schema.Reading, []string, error) {
				return nil, nil, nil
			},
			climateGet: func(ctx context.Context, indicators []schema.Reading) ([]schema.Reading, error) {
				return nil, nil
			},
			expectedResult: []schema.Reading{co2, temperature},
		},
		{
			name: "Missing in LRU, found in Redis and climate API",
			ctxFunc: func() (context.Context, context.CancelFunc) {
				return context.WithCancel(context.Background())
			},
			input: map[string]schema.Reading{"co2": co2, "temperature": temperature, "sea-level": seaLevel},
			lruBatchGet: func(keys []string) ([]schema.Reading, []string) {
				return []schema.Reading{co2}, []string{"temperature", "sea-level"}
			},
			redisBatchGet: func(ctx context.Context, keys []string) ([]schema.Reading, []string, error) {
				return []schema.Reading{temperature}, []string{"sea-level"}, nil
			},
			climateGet: func(ctx context.Context, indicators []schema.Reading) ([]schema.Reading, error) {
				fetched := seaLevel
				fetched.Priority = 0
				return []schema.Reading{fetched}, nil
			},
			expectedResult: []schema.Reading{co2, temperature, seaLevel},
		},
		{
			name: "Redis error and climate API error",
			ctxFunc: func() (context.Context, context.CancelFunc) {
				return context.WithCancel(context.Background())
			},
			input: map[string]schema.Reading{"co2": co2, "temperature": temperature},
			lruBatchGet: func(keys []string) ([]schema.Reading, []string) {
				return []schema.Reading{}, []string{"co2", "temperature"}
			},
			redisBatchGet: func(ctx context.Context, keys []string) ([]schema.Reading, []string, error) {
				return nil, nil, errors.New("redis error")
			},
			climateGet: func(ctx context.Context, indicators []schema.Reading) ([]schema.Reading, error) {
				return nil, errors.New("climate error")
			},
			expectedResult: []schema.Reading{},
			expectedErr:    "climate error",
		},
		{
			name: "Climate API error with cached readings",
			ctxFunc: func() (context.Context, context.CancelFunc) {
				return context.WithCancel(context.Background())
			},
			input: map[string]schema.Reading{"co2": co2, "temperature": temperature},
			lruBatchGet: func(keys []string) ([]schema.Reading, []string) {
				return []schema.Reading{co2}, []string{"temperature"}
			},
			redisBatchGet: func(ctx context.Context, keys []string) ([]schema.Reading, []string, error) {
				return []schema.Reading{}, []string{"temperature"}, nil
			},
			climateGet: func(ctx context.Context, indicators []schema.Reading) ([]schema.Reading, error) {
				return nil, errors.New("climate error")
			},
			expectedResult: []schema.Reading{co2},
		},
		{
			name: "Context canceled before Redis fetch",
			ctxFunc: func() (context.Context, context.CancelFunc) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx, cancel
			},
			input: map[string]schema.Reading{"co2": co2},
			lruBatchGet: func(keys []string) ([]schema.Reading, []string) {
				return []schema.Reading{}, []string{"co2"}
			},
			redisBatchGet: func(ctx context.Context, keys []string) ([]schema.Reading, []string, error) {
				return []schema.Reading{co2}, []string{}, nil
			},
			climateGet: func(ctx context.Context, indicators []schema.Reading) ([]schema.Reading, error) {
				return nil, nil
			},
			expectedResult: []schema.Reading{},
		},
		{
			name: "Context expires while the climate API is slow",
			ctxFunc: func() (context.Context, context.CancelFunc) {
				return context.WithTimeout(context.Background(), 5*time.Millisecond)
			},
			input: map[string]schema.Reading{"co2": co2},
			lruBatchGet: func(keys []string) ([]schema.Reading, []string) {
				return []schema.Reading{}, []string{"co2"}
			},
			redisBatchGet: func(ctx context.Context, keys []string) ([]schema.Reading, []string, error) {
				return []schema.Reading{}, []string{"co2"}, nil
			},
			climateGet: func(ctx context.Context, indicators []schema.Reading) ([]schema.Reading, error) {
				time.Sleep(50 * time.Millisecond)
				return []schema.Reading{co2}, nil
			},
			expectedResult: []schema.Reading{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := tc.ctxFunc()
			defer cancel()

			s := &Storage{
				lruLocalCache:  &lruCacheMock{batchGetFunc: tc.lruBatchGet},
				redisCache:     &redisCacheMock{batchGetFunc: tc.redisBatchGet},
				climateService: &climateServiceMock{getReadingsFunc: tc.climateGet},
			}

			result, err := s.Get(ctx, tc.input)
			if tc.expectedErr != "" {
				require.ErrorContains(t, err, tc.expectedErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.expectedResult, result)
		})
	}
}

func TestStorage_GetFillsCachesFromClimateAPI(t *testing.T) {
	lru := &lruCacheMock{
		batchGetFunc: func(keys []string) ([]schema.Reading, []string) {
			return []schema.Reading{}, []string{"co2"}
		},
	}
	redis := &redisCacheMock{
		batchGetFunc: func(ctx context.Context, keys []string) ([]schema.Reading, []string, error) {
			return []schema.Reading{}, []string{"co2"}, nil
		},
	}
	s := &Storage{
		lruLocalCache:  lru,
		redisCache:     redis,
		climateService: &climateServiceMock{getReadingsFunc: func(ctx context.Context, indicators []schema.Reading) ([]schema.Reading, error) {
			return []schema.Reading{co2}, nil
		}},
	}

	result, err := s.Get(context.Background(), map[string]schema.Reading{"co2": co2})
	require.NoError(t, err)
	require.Equal(t, []schema.Reading{co2}, result)
	require.Equal(t, []string{"co2"}, redis.updatedKeys())
	require.Equal(t, []string{"co2"}, lru.updatedKeys())
}

func TestStorage_PeriodicUpdater(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lru := &lruCacheMock{values: []schema.Reading{co2}}
	redis := &redisCacheMock{}
	climate := &climateServiceMock{getReadingsFunc: func(ctx context.Context, indicators []schema.Reading) ([]schema.Reading, error) {
		fresh := co2
		fresh.Measurement.Value = 422
		return []schema.Reading{fresh}, nil
	}}

	New(ctx, lru, redis, climate, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		return len(redis.updatedKeys()) > 0
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, "co2", lru.updatedKeys()[0])
}

func TestExtractKeys(t *testing.T) {
	keys := extractKeys(map[string]schema.Reading{
		"co2":         co2,
		"temperature": temperature,
		"sea-level":   seaLevel,
	})
	require.ElementsMatch(t, []string{"co2", "temperature", "sea-level"}, keys)
}
