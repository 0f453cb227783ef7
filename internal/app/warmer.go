package app

import (
	"context"
	"errors"
	"time"

	"ecovision/internal/schema"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

const warmUpKey = "ecovision:warmup:indicators"

// startWarmUpper preloads the readings of the indicators cached by a previous
// run and keeps exporting the cached indicator ids every period.
func startWarmUpper(ctx context.Context,
	store warmUpStore,
	period time.Duration,
	cache readingsCache,
	storage readingsStorage,
) {
	go exportIDsPeriodically(ctx, period, cache, store)

	go warmup(ctx, store, storage)
}

func warmup(ctx context.Context, store warmUpStore, s readingsStorage) {
	ids, err := store.Get(ctx, warmUpKey)
	if errors.Is(err, redis.Nil) {
		log.Info().Msg("nothing to warm up")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("couldn't warm up")
		return
	}
	if len(ids) == 0 {
		return
	}

	readings, err := s.Get(ctx, toMap(ids))
	if err != nil {
		log.Error().Err(err).Msg("couldn't warm up")
		return
	}
	log.Info().Int("requested", len(ids)).Int("loaded", len(readings)).Msg("warmed up")
}

func toMap(ids []string) map[string]schema.Reading {
	result := make(map[string]schema.Reading, len(ids))
	for _, id := range ids {
		result[id] = schema.Reading{IndicatorId: id}
	}
	return result
}

func exportIDs(ctx context.Context, cache readingsCache, store warmUpStore) error {
	values := cache.GetValues()
	ids := make([]string, 0, len(values))
	for _, v := range values {
		ids = append(ids, v.IndicatorId)
	}
	return store.Set(ctx, warmUpKey, ids, 0)
}

func exportIDsPeriodically(ctx context.Context, interval time.Duration, cache readingsCache, store warmUpStore) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("stopping warm-up export")
			return
		case <-ticker.C:
			if err := exportIDs(ctx, cache, store); err != nil {
				log.Error().Err(err).Msg("couldn't export cached indicator ids")
			}
		}
	}
}
