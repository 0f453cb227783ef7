package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecovision/internal/client"
	"ecovision/internal/dashboard"
	"ecovision/internal/env"
	"ecovision/internal/footprint"
	"ecovision/internal/handler"
	"ecovision/internal/middleware"
	"ecovision/internal/schema"
	"ecovision/internal/service"
	"ecovision/internal/storage"
	"ecovision/internal/storage/lrucache"
	redisStorage "ecovision/internal/storage/redis"
	"ecovision/internal/wrapper"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type App struct{}

const (
	successCode = 0
	failureCode = 1

	shutdownTimeout = 5 * time.Second
)

func New() *App {
	return &App{}
}

func (a *App) Run() (exitCode int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env.LoadEnv()
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg, err := loadConfig()
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return failureCode
	}

	lruCache := lrucache.NewLRUCache[string, schema.Reading](ctx,
		cfg.LRUCacheSize,
		cfg.LRUChanSize,
	)
	rdb := redisStorage.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rdb.Close()
	redisReadings := redisStorage.NewClient[schema.Reading](ctx,
		rdb,
		marshalJSON[schema.Reading],
		unmarshalJSON[schema.Reading],
		cfg.RedisChanSize,
		cfg.RedisTTL,
	)
	warmUpIDs := redisStorage.NewClient[[]string](ctx,
		rdb,
		marshalJSON[[]string],
		unmarshalJSON[[]string],
		1,
		0,
	)

	climateClient, err := client.NewClient(cfg.ClimateURL, cfg.ClimateTimeout)
	if err != nil {
		log.Error().Err(err).Msg("couldn't initialize a climate client")
		return failureCode
	}
	climateWrapper := wrapper.New(climateClient, cfg.ClimateTimeout)
	indicatorStorage := storage.New(ctx, lruCache, redisReadings, climateWrapper, cfg.UpdatePeriod)
	readings := service.New(indicatorStorage)

	startWarmUpper(ctx, warmUpIDs, cfg.WarmupSaverPeriod, lruCache, indicatorStorage)

	estimator := footprint.New(footprint.WithFactors(cfg.Factors))

	boardCfg := dashboard.DefaultConfig()
	boardCfg.AnimationDuration = cfg.AnimationDuration
	board := dashboard.NewBoard(boardCfg, readings, estimator)

	footprintHandler := handler.NewFootprint(estimator, board)
	dashboardHandler := handler.NewDashboard(board, cfg.RefreshTimeout)
	pageHandler := handler.NewPage(board)

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	defer limiter.Stop()

	api := func(h http.HandlerFunc) http.Handler {
		return limiter.Middleware(middleware.JsonMiddleware(h))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", pageHandler.Handle)
	mux.Handle("/api/v1/footprint", api(footprintHandler.Handle))
	mux.Handle("/api/v1/dashboard", api(dashboardHandler.State))
	mux.Handle("/api/v1/panel", api(dashboardHandler.Panel))
	mux.Handle("/api/v1/map-layer", api(dashboardHandler.MapLayer))
	mux.Handle("/api/v1/disasters/filter", api(dashboardHandler.DisasterFilter))
	mux.Handle("/api/v1/disasters/details", api(dashboardHandler.DisasterDetails))
	mux.Handle("/api/v1/feed/filter", api(dashboardHandler.FeedFilter))
	mux.Handle("/api/v1/feed/action", api(dashboardHandler.FeedAction))
	mux.Handle("/api/v1/solutions/launch", api(dashboardHandler.LaunchSolution))
	mux.Handle("/api/v1/refresh", api(dashboardHandler.Refresh))
	mux.HandleFunc("/api/health", health)
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.Logging(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("couldn't shut down the server")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("EcoVision dashboard listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Server crashed")
		return failureCode
	}

	return successCode
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func marshalJSON[V any](v V) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalJSON[V any](s string) (V, error) {
	var v V
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		var zero V
		return zero, err
	}
	return v, nil
}
