package wrapper

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"ecovision/internal/dto/indicators_v2_dto"
	"ecovision/internal/schema"
)

type climateClientMock struct {
	fetchFunc func(ctx context.Context, request indicators_v2_dto.RequestBody) (*indicators_v2_dto.ResponseBody, error)
}

func (m *climateClientMock) FetchReadings(ctx context.Context, request indicators_v2_dto.RequestBody) (*indicators_v2_dto.ResponseBody, error) {
	return m.fetchFunc(ctx, request)
}

func TestService_GetReadings(t *testing.T) {
	observedAt := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	sampleIDs := []schema.Reading{
		{IndicatorId: "co2"},
		{IndicatorId: "temperature"},
	}
	dtoResponse := &indicators_v2_dto.ResponseBody{
		Rows: []indicators_v2_dto.ResponseRow{
			{
				IndicatorID: "co2",
				Reading:     indicators_v2_dto.Reading{Value: 421, Unit: "ppm", ObservedAt: observedAt},
			},
			{
				IndicatorID: "temperature",
				Reading:     indicators_v2_dto.Reading{Value: 1.2, Unit: "°C", ObservedAt: observedAt},
			},
		},
	}
	expectedSchema := []schema.Reading{
		{
			IndicatorId: "co2",
			Measurement: schema.Measurement{Value: 421, Unit: "ppm", ObservedAt: observedAt},
		},
		{
			IndicatorId: "temperature",
			Measurement: schema.Measurement{Value: 1.2, Unit: "°C", ObservedAt: observedAt},
		},
	}

	testCases := []struct {
		name          string
		fetchResponse *indicators_v2_dto.ResponseBody
		fetchError    error
		inputIDs      []schema.Reading
		expectedRows  []schema.Reading
		expectedError string
	}{
		{
			name:          "Successful response",
			fetchResponse: dtoResponse,
			inputIDs:      sampleIDs,
			expectedRows:  expectedSchema,
		},
		{
			name:          "Climate client error",
			fetchError:    errors.New("fetch error"),
			inputIDs:      sampleIDs,
			expectedError: "fetch error",
		},
		{
			name:          "Empty input returns empty slice",
			fetchResponse: dtoResponse,
			inputIDs:      []schema.Reading{},
			expectedRows:  []schema.Reading{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &Service{
				climateClient: &climateClientMock{
					fetchFunc: func(ctx context.Context, request indicators_v2_dto.RequestBody) (*indicators_v2_dto.ResponseBody, error) {
						if _, ok := ctx.Deadline(); !ok {
							t.Error("expected a deadline on the upstream context")
						}
						return tc.fetchResponse, tc.fetchError
					},
				},
				timeout: 100 * time.Millisecond,
			}
			rows, err := svc.GetReadings(context.Background(), tc.inputIDs)
			if tc.expectedError != "" {
				if err == nil || err.Error() != tc.expectedError {
					t.Fatalf("expected error %q, got %v", tc.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(rows, tc.expectedRows) {
				t.Errorf("expected rows %v, got %v", tc.expectedRows, rows)
			}
		})
	}
}

func TestToDto(t *testing.T) {
	input := []schema.Reading{
		{IndicatorId: "co2", Priority: 1},
		{IndicatorId: "sea-level"},
	}
	expected := indicators_v2_dto.RequestBody{
		Rows: []indicators_v2_dto.RequestRow{
			{IndicatorID: "co2", Priority: 1},
			{IndicatorID: "sea-level"},
		},
	}

	if result := toDto(input); !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %v, got %v", expected, result)
	}
}
