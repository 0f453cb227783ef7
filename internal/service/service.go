package service

import (
	"context"

	"ecovision/internal/schema"
)

type Service struct {
	storage storage
}

func New(storage storage) *Service {
	return &Service{
		storage: storage,
	}
}

// Get returns the latest readings of the requested indicators. When an
// indicator is requested twice the first request wins.
func (s *Service) Get(ctx context.Context, indicators []schema.Reading) ([]schema.Reading, error) {
	if len(indicators) == 0 {
		return []schema.Reading{}, nil
	}

	return s.storage.Get(ctx, collectToMap(removeDuplicates(indicators)))
}

func collectToMap(indicators []schema.Reading) map[string]schema.Reading {
	result := make(map[string]schema.Reading, len(indicators))
	for _, val := range indicators {
		result[val.IndicatorId] = val
	}
	return result
}

func removeDuplicates(indicators []schema.Reading) []schema.Reading {
	seen := make(map[string]struct{}, len(indicators))
	list := make([]schema.Reading, 0, len(indicators))
	for _, item := range indicators {
		if _, ok := seen[item.IndicatorId]; ok {
			continue
		}
		seen[item.IndicatorId] = struct{}{}
		list = append(list, item)
	}
	return list
}
