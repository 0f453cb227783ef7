package service

import (
	"context"

	"ecovision/internal/schema"
)

type storage interface {
	Get(ctx context.Context, indicators map[string]schema.Reading) ([]schema.Reading, error)
}
