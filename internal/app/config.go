package app

import (
	"errors"
	"time"

	"ecovision/internal/env"
	"ecovision/internal/footprint"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChanSize int
	RedisTTL      time.Duration

	LRUCacheSize int
	LRUChanSize  int

	ClimateURL        string
	ClimateTimeout    time.Duration
	UpdatePeriod      time.Duration
	RefreshTimeout    time.Duration
	WarmupSaverPeriod time.Duration

	Factors           footprint.Factors
	RateLimitRPS      float64
	RateLimitBurst    int
	AnimationDuration time.Duration
}

func loadConfig() (Config, error) {
	cfg := Config{
		Port:          env.GetEnv("PORT", "8080"),
		RedisAddr:     env.GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: env.GetEnv("REDIS_PASSWORD", ""),
		ClimateURL:    env.GetEnv("CLIMATE_URL", "http://localhost:8081/v2/indicators"),
		Factors:       loadFactors(),
	}

	var errs []error
	intVar := func(dst *int, key string, def int) {
		v, err := env.GetInt(key, def)
		errs = append(errs, err)
		*dst = v
	}
	durationVar := func(dst *time.Duration, key string, def time.Duration) {
		v, err := env.GetDuration(key, def)
		errs = append(errs, err)
		*dst = v
	}

	intVar(&cfg.RedisDB, "REDIS_DB", 0)
	intVar(&cfg.RedisChanSize, "REDIS_CHAN_SIZE", 1000)
	durationVar(&cfg.RedisTTL, "REDIS_TTL", 24*time.Hour)
	intVar(&cfg.LRUCacheSize, "LRU_CACHE_SIZE", 1000)
	intVar(&cfg.LRUChanSize, "LRU_CHAN_SIZE", 1000)
	durationVar(&cfg.ClimateTimeout, "CLIMATE_TIMEOUT", time.Second)
	durationVar(&cfg.UpdatePeriod, "UPDATE_CACHE_PERIOD", time.Hour)
	durationVar(&cfg.RefreshTimeout, "REFRESH_TIMEOUT", 2*time.Second)
	durationVar(&cfg.WarmupSaverPeriod, "WARMUP_SAVER_PERIOD", time.Hour)
	intVar(&cfg.RateLimitBurst, "RATE_LIMIT_BURST", 20)
	durationVar(&cfg.AnimationDuration, "ANIMATION_DURATION", time.Second)

	rps, err := env.GetFloat("RATE_LIMIT_RPS", 10)
	errs = append(errs, err)
	cfg.RateLimitRPS = rps

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	if cfg.ClimateURL == "" {
		return Config{}, errors.New("CLIMATE_URL is empty")
	}
	if cfg.UpdatePeriod <= 0 || cfg.WarmupSaverPeriod <= 0 {
		return Config{}, errors.New("UPDATE_CACHE_PERIOD and WARMUP_SAVER_PERIOD must be positive")
	}
	if cfg.LRUCacheSize <= 0 {
		return Config{}, errors.New("LRU_CACHE_SIZE must be positive")
	}
	return cfg, nil
}

// loadFactors reads emission factor overrides. Malformed, non-positive and
// non-finite values keep the default factor.
func loadFactors() footprint.Factors {
	f := footprint.DefaultFactors()

	override := func(dst *float64, key string) {
		v, err := env.GetFloat(key, *dst)
		if err != nil || !footprint.ValidFactor(v) {
			log.Warn().Str("key", key).Float64("default", *dst).Msg("ignoring emission factor override")
			return
		}
		*dst = v
	}

	override(&f.Electricity, "FACTOR_ELECTRICITY")
	override(&f.CarTravel, "FACTOR_CAR_TRAVEL")
	override(&f.MeatMeals, "FACTOR_MEAT_MEALS")
	override(&f.Flights, "FACTOR_FLIGHTS")
	return f
}
