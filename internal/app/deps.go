package app

import (
	"context"
	"time"

	"ecovision/internal/schema"
)

type readingsCache interface {
	GetValues() []schema.Reading
}

type readingsStorage interface {
	Get(ctx context.Context, indicators map[string]schema.Reading) ([]schema.Reading, error)
}

type warmUpStore interface {
	Get(ctx context.Context, key string) ([]string, error)
	Set(ctx context.Context, key string, value []string, expiration time.Duration) error
}
