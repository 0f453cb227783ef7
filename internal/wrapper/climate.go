package wrapper

import (
	"context"
	"time"

	"ecovision/internal/dto/indicators_v2_dto"
	"ecovision/internal/schema"
)

type Service struct {
	climateClient climateClient
	timeout       time.Duration
}

func New(climateClient climateClient,
	timeout time.Duration,
) *Service {
	return &Service{
		climateClient: climateClient,
		timeout:       timeout,
	}
}

// GetReadings fetches the latest readings of the given indicators from the climate API
func (s *Service) GetReadings(ctx context.Context, indicators []schema.Reading) ([]schema.Reading, error) {
	if len(indicators) == 0 {
		return []schema.Reading{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	readings, err := s.climateClient.FetchReadings(ctx, toDto(indicators))
	if err != nil {
		return nil, err
	}

	return toSchema(readings), nil
}

func toSchema(readings *indicators_v2_dto.ResponseBody) []schema.Reading {
	rows := make([]schema.Reading, 0, len(readings.Rows))

	for _, val := range readings.Rows {
		rows = append(rows, schema.Reading{
			IndicatorId: val.IndicatorID,
			Measurement: schema.Measurement{
				Value:      val.Reading.Value,
				Unit:       val.Reading.Unit,
				ObservedAt: val.Reading.ObservedAt,
			},
		})
	}
	return rows
}

func toDto(indicators []schema.Reading) indicators_v2_dto.RequestBody {
	rows := make([]indicators_v2_dto.RequestRow, 0, len(indicators))

	for _, val := range indicators {
		rows = append(rows, indicators_v2_dto.RequestRow{
			IndicatorID: val.IndicatorId,
			Priority:    val.Priority,
		})
	}

	return indicators_v2_dto.RequestBody{
		Rows: rows,
	}
}
