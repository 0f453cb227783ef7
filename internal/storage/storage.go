package storage

import (
	"context"
	"fmt"
	"time"

	"ecovision/internal/schema"
	"ecovision/internal/storage/lrucache"

	"github.com/rs/zerolog/log"
)

type Storage struct {
	lruLocalCache  lruLocalCache[string, schema.Reading]
	redisCache     redisCache[schema.Reading]
	climateService climateService
}

type redisRes struct {
	found    []schema.Reading
	notFound []schema.Reading
}

type climateRes struct {
	readings []schema.Reading
	err      error
}

// New return storage of indicator readings, refreshed every period
func New(ctx context.Context,
	lruLocalCache lruLocalCache[string, schema.Reading],
	redisCache redisCache[schema.Reading],
	climateService climateService,
	period time.Duration) *Storage {
	s := &Storage{
		lruLocalCache:  lruLocalCache,
		redisCache:     redisCache,
		climateService: climateService,
	}

	go s.runPeriodicUpdater(ctx, period)

	return s
}

// Get returns readings for the requested indicators. Readings that are not
// available before ctx is done are left out and fetched in the background.
// The climate API error is returned only when no reading was found at all.
func (s *Storage) Get(ctx context.Context, indicators map[string]schema.Reading) ([]schema.Reading, error) {
	keys := extractKeys(indicators)

	result := make([]schema.Reading, 0, len(indicators))

	foundInLru, notFoundInLru := s.lruLocalCache.BatchGet(keys)
	result = append(result, foundInLru...)
	if len(notFoundInLru) == 0 {
		return result, nil
	}

	redisCh := make(chan redisRes, 1)
	climateCh := make(chan climateRes, 1)
	go s.fetchFromRedis(ctx, getRows(notFoundInLru, indicators), redisCh, indicators)

	var rRes redisRes
	select {
	case rRes = <-redisCh:
		result = append(result, rRes.found...)
	case <-ctx.Done():
		go s.asyncUpdateCache(getRows(notFoundInLru, indicators), indicators)
		return result, nil
	}

	if len(rRes.notFound) == 0 {
		return result, nil
	}

	go s.fetchFromClimate(ctx, rRes.notFound, climateCh)
	select {
	case res := <-climateCh:
		if res.err != nil {
			if len(result) == 0 {
				return result, fmt.Errorf("fetch readings: %w", res.err)
			}
			return result, nil
		}
		if res.readings == nil {
			go s.asyncUpdateCache(rRes.notFound, indicators)
			return result, nil
		}
		fetched := withPriorities(res.readings, indicators)
		s.saveToCaches(fetched)
		result = append(result, fetched...)
	case <-ctx.Done():
		go s.asyncUpdateCache(rRes.notFound, indicators)
	}
	return result, nil
}

func extractKeys(indicators map[string]schema.Reading) []string {
	result := make([]string, 0, len(indicators))
	for k := range indicators {
		result = append(result, k)
	}
	return result
}

func extractKeysFromSlice(readings []schema.Reading) []string {
	result := make([]string, 0, len(readings))
	for _, val := range readings {
		result = append(result, val.IndicatorId)
	}
	return result
}

func getRows(notFound []string, indicators map[string]schema.Reading) []schema.Reading {
	result := make([]schema.Reading, 0, len(notFound))
	for _, v := range notFound {
		result = append(result, indicators[v])
	}
	return result
}

func withPriorities(readings []schema.Reading, indicators map[string]schema.Reading) []schema.Reading {
	for i, v := range readings {
		if row, ok := indicators[v.IndicatorId]; ok {
			readings[i].Priority = row.Priority
		}
	}
	return readings
}

func toCacheEntities(readings []schema.Reading) []lrucache.CacheItem[string, schema.Reading] {
	result := make([]lrucache.CacheItem[string, schema.Reading], 0, len(readings))
	for _, val := range readings {
		result = append(result, lrucache.CacheItem[string, schema.Reading]{
			Key:      val.IndicatorId,
			Value:    val,
			Priority: val.Priority,
		})
	}
	return result
}

func (s *Storage) saveToCaches(readings []schema.Reading) {
	if len(readings) == 0 {
		return
	}
	s.redisCache.Update(extractKeysFromSlice(readings), readings)
	s.lruLocalCache.Update(toCacheEntities(readings))
}

func (s *Storage) asyncUpdateCache(notFound []schema.Reading, indicators map[string]schema.Reading) {
	found, err := s.climateService.GetReadings(context.Background(), notFound)
	if err != nil {
		log.Warn().Err(err).Int("indicators", len(notFound)).Msg("background reading fetch failed")
		return
	}
	s.saveToCaches(withPriorities(found, indicators))
}

// gets from redis and send to chan, promotes hits into the local cache
func (s *Storage) fetchFromRedis(ctx context.Context, rows []schema.Reading, out chan<- redisRes, indicators map[string]schema.Reading) {
	var res redisRes
	select {
	case <-ctx.Done():
		res = redisRes{notFound: rows}
	default:
		found, notFound, err := s.redisCache.BatchGet(ctx, extractKeysFromSlice(rows))
		if err != nil {
			log.Warn().Err(err).Msg("redis batch get failed")
			res = redisRes{notFound: rows}
		} else {
			res = redisRes{found: withPriorities(found, indicators), notFound: getRows(notFound, indicators)}
		}
	}
	out <- res
	if len(res.found) != 0 {
		s.lruLocalCache.Update(toCacheEntities(res.found))
	}
}

// gets from the climate api and send to chan, no readings when ctx is done
func (s *Storage) fetchFromClimate(ctx context.Context, rows []schema.Reading, out chan<- climateRes) {
	var res climateRes
	select {
	case <-ctx.Done():
	default:
		found, err := s.climateService.GetReadings(ctx, rows)
		if err != nil {
			log.Warn().Err(err).Msg("climate api fetch failed")
		}
		res = climateRes{readings: found, err: err}
	}
	out <- res
}

// re-fetches every cached reading once per period
func (s *Storage) runPeriodicUpdater(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cached := s.lruLocalCache.GetValues()
			if len(cached) == 0 {
				continue
			}
			fresh, err := s.climateService.GetReadings(ctx, cached)
			if err != nil {
				log.Error().Err(err).Msg("periodic reading update failed")
				continue
			}
			byID := make(map[string]schema.Reading, len(cached))
			for _, r := range cached {
				byID[r.IndicatorId] = r
			}
			s.saveToCaches(withPriorities(fresh, byID))
		case <-ctx.Done():
			return
		}
	}
}
