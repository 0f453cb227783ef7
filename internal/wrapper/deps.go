package wrapper

import (
	"context"

	"ecovision/internal/dto/indicators_v2_dto"
)

type climateClient interface {
	FetchReadings(ctx context.Context, request indicators_v2_dto.RequestBody) (*indicators_v2_dto.ResponseBody, error)
}
